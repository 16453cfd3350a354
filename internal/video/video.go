package video

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"io"
	"os/exec"

	"github.com/ivlev/seamcarver/internal/system"
)

// DefaultQuality is the CRF/CQ value used when Params.Quality is zero.
const DefaultQuality = 23

var ErrNoFrames = errors.New("video: no frames")

// Params describes one carving animation.
type Params struct {
	FPS     int
	Encoder string
	Quality int
}

// FrameWriter accepts the frames of one video.
type FrameWriter interface {
	WriteFrame(img image.Image) error
	Frames() int
	Close() error
}

// FrameEncoder starts videos of a fixed frame size.
type FrameEncoder interface {
	Start(ctx context.Context, videoPath string, size image.Point, params Params) (FrameWriter, error)
}

// FFmpegEncoder pipes raw RGBA frames into an ffmpeg subprocess.
type FFmpegEncoder struct {
	// Binary defaults to "ffmpeg".
	Binary string
}

func NewFFmpegEncoder() *FFmpegEncoder {
	return &FFmpegEncoder{Binary: "ffmpeg"}
}

// Stream is one running ffmpeg process accepting frames of a fixed size.
type Stream struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	size   image.Point
	frames int
	closed bool
}

func (e *FFmpegEncoder) Start(ctx context.Context, videoPath string, size image.Point, params Params) (FrameWriter, error) {
	if size.X <= 0 || size.Y <= 0 {
		return nil, fmt.Errorf("video: invalid frame size %v", size)
	}
	bin := e.Binary
	if bin == "" {
		bin = "ffmpeg"
	}

	cmd := exec.CommandContext(ctx, bin, buildFFmpegArgs(size.X, size.Y, videoPath, params)...)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("stdin pipe error: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("ffmpeg start error: %w", err)
	}

	return &Stream{cmd: cmd, stdin: stdin, size: size}, nil
}

// WriteFrame sends one frame. Frames smaller than the stream size are
// anchored at the top-left corner of a black canvas.
func (s *Stream) WriteFrame(img image.Image) error {
	if s.closed {
		return errors.New("video: stream closed")
	}
	if err := writeRawRGBA(s.stdin, img, s.size); err != nil {
		return fmt.Errorf("write raw error: %w", err)
	}
	s.frames++
	return nil
}

// Frames returns the number of frames written so far.
func (s *Stream) Frames() int { return s.frames }

// Close finishes the video and waits for ffmpeg.
func (s *Stream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.stdin.Close()
	if err := s.cmd.Wait(); err != nil {
		return fmt.Errorf("ffmpeg wait error: %w", err)
	}
	if s.frames == 0 {
		return ErrNoFrames
	}
	return nil
}

func buildFFmpegArgs(inputW, inputH int, videoPath string, params Params) []string {
	fps := params.FPS
	if fps <= 0 {
		fps = 30
	}
	quality := params.Quality
	if quality <= 0 {
		quality = DefaultQuality
	}
	encoderName := params.Encoder
	if encoderName == "" {
		encoderName = "libx264"
	}

	args := []string{
		"-y",
		"-f", "rawvideo",
		"-pixel_format", "rgba",
		"-video_size", fmt.Sprintf("%dx%d", inputW, inputH),
		"-framerate", fmt.Sprintf("%d", fps),
		"-i", "-",
		// yuv420p требует чётных размеров
		"-vf", "pad=ceil(iw/2)*2:ceil(ih/2)*2",
		"-pix_fmt", "yuv420p",
		"-c:v", encoderName,
	}

	// Качество в зависимости от энкодера
	switch encoderName {
	case "h264_videotoolbox":
		bitrate := quality * 100
		args = append(args, "-b:v", fmt.Sprintf("%dk", bitrate))
	case "h264_nvenc":
		args = append(args, "-cq", fmt.Sprintf("%d", quality))
	default: // libx264
		args = append(args, "-crf", fmt.Sprintf("%d", quality), "-preset", "medium")
	}

	args = append(args, videoPath)
	return args
}

func writeRawRGBA(w io.Writer, img image.Image, size image.Point) error {
	bounds := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if ok && bounds.Size() == size && rgba.Stride == size.X*4 && bounds.Min == (image.Point{}) {
		_, err := w.Write(rgba.Pix)
		return err
	}

	canvas := system.GetImage(image.Rectangle{Max: size})
	defer system.PutImage(canvas)
	draw.Draw(canvas, canvas.Bounds(), image.Black, image.Point{}, draw.Src)
	draw.Draw(canvas, bounds.Sub(bounds.Min), img, bounds.Min, draw.Src)
	_, err := w.Write(canvas.Pix)
	return err
}
