package engine

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/ivlev/seamcarver/internal/config"
	"github.com/ivlev/seamcarver/internal/plan"
	"github.com/ivlev/seamcarver/internal/seam"
	"github.com/ivlev/seamcarver/internal/source"
	"github.com/ivlev/seamcarver/internal/video"
)

type fakeWriter struct {
	enc    *fakeEncoder
	path   string
	size   image.Point
	frames int
}

func (w *fakeWriter) WriteFrame(img image.Image) error {
	w.enc.mu.Lock()
	defer w.enc.mu.Unlock()
	if img.Bounds().Size() != w.size {
		w.enc.badFrames++
	}
	w.frames++
	w.enc.frames[w.path]++
	return nil
}

func (w *fakeWriter) Frames() int { return w.frames }

func (w *fakeWriter) Close() error { return nil }

type fakeEncoder struct {
	mu        sync.Mutex
	frames    map[string]int
	params    []video.Params
	badFrames int
}

func (e *fakeEncoder) Start(_ context.Context, path string, size image.Point, params video.Params) (video.FrameWriter, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.frames == nil {
		e.frames = make(map[string]int)
	}
	e.frames[path] = 0
	e.params = append(e.params, params)
	return &fakeWriter{enc: e, path: path, size: size}, nil
}

func writeTestPNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 40), G: uint8(y * 60), B: uint8((x * y) % 256), A: 255})
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
}

func decodeSize(t *testing.T, path string) image.Point {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	return image.Pt(cfg.Width, cfg.Height)
}

func TestSteps(t *testing.T) {
	V, H := seam.Vertical, seam.Horizontal
	tests := []struct {
		order      string
		cols, rows int
		want       []seam.Orientation
	}{
		{config.OrderColumnsFirst, 2, 1, []seam.Orientation{V, V, H}},
		{config.OrderRowsFirst, 2, 1, []seam.Orientation{H, V, V}},
		{config.OrderInterleave, 3, 1, []seam.Orientation{V, H, V, V}},
		{config.OrderInterleave, 0, 2, []seam.Orientation{H, H}},
		{"", 0, 0, []seam.Orientation{}},
	}
	for _, tt := range tests {
		got := Steps(tt.cols, tt.rows, tt.order)
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("Steps(%d, %d, %q) mismatch (-want +got):\n%s", tt.cols, tt.rows, tt.order, diff)
		}
	}
}

func TestRunCarvesEveryImage(t *testing.T) {
	in := t.TempDir()
	writeTestPNG(t, filepath.Join(in, "a.png"), 6, 4)
	writeTestPNG(t, filepath.Join(in, "b.png"), 7, 5)

	cfg := config.Default()
	cfg.InputPath = in
	cfg.OutputDir = t.TempDir()
	cfg.RemoveColumns = 2
	cfg.RemoveRows = 1
	cfg.Order = config.OrderInterleave
	cfg.Workers = 2
	cfg.Overlay = true
	cfg.EnergyMap = true
	cfg.Compare = true
	cfg.Plot = true
	cfg.Animate = true
	cfg.AnimationFPS = 12

	src, err := source.Open(in)
	require.NoError(t, err)
	p, err := plan.FromConfig(cfg, src)
	require.NoError(t, err)
	require.NoError(t, src.Close())

	anim := &fakeEncoder{}
	project := NewCarveProject(cfg, p, anim, zaptest.NewLogger(t))
	rep, err := project.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, rep.Results, 2)
	assert.NotEmpty(t, rep.RunID)
	assert.Equal(t, 6, rep.Summary.Seams)

	wantSizes := map[string]image.Point{"a": image.Pt(4, 3), "b": image.Pt(5, 4)}
	for name, size := range wantSizes {
		out := filepath.Join(cfg.OutputDir, name+"_carved.png")
		assert.Equal(t, size, decodeSize(t, out), name)
		for _, suffix := range []string{"_energy.png", "_seam_vertical.png", "_seam_horizontal.png", "_compare.png", "_costs.png"} {
			assert.FileExists(t, filepath.Join(cfg.OutputDir, name+"_carved"+suffix))
		}
		// one frame before carving plus one per seam
		assert.Equal(t, 4, anim.frames[filepath.Join(cfg.OutputDir, name+"_carved_carving.mp4")], name)
	}
	assert.Zero(t, anim.badFrames)
	for _, params := range anim.params {
		assert.Equal(t, AnimationParams(cfg), params)
	}

	for _, r := range rep.Results {
		assert.NoError(t, r.Err)
		assert.Len(t, r.SeamCosts, 3)
		for _, c := range r.SeamCosts {
			assert.GreaterOrEqual(t, c, 0.0)
		}
	}
}

func TestRunReportsFailedJobs(t *testing.T) {
	in := t.TempDir()
	good := filepath.Join(in, "good.png")
	writeTestPNG(t, good, 4, 4)

	cfg := config.Default()
	cfg.OutputDir = t.TempDir()
	cfg.Workers = 1
	p := &plan.Plan{Version: plan.CurrentVersion, Jobs: []plan.Job{
		{ID: 1, Input: good, RemoveColumns: 1},
		{ID: 2, Input: filepath.Join(in, "missing.png"), RemoveColumns: 1},
		{ID: 3, Input: good, TargetWidth: 9},
	}}

	rep, err := NewCarveProject(cfg, p, nil, nil).Run(context.Background())
	require.ErrorIs(t, err, ErrJobsFailed)
	require.NotNil(t, rep)
	assert.NoError(t, rep.Results[0].Err)
	assert.Error(t, rep.Results[1].Err)
	assert.ErrorIs(t, rep.Results[2].Err, plan.ErrInvalidJob)
	assert.Equal(t, 2, rep.Summary.Failed)
	assert.Equal(t, image.Pt(3, 4), decodeSize(t, filepath.Join(cfg.OutputDir, "good_carved.png")))
}

func TestRunHonoursCancellation(t *testing.T) {
	in := t.TempDir()
	path := filepath.Join(in, "pic.png")
	writeTestPNG(t, path, 8, 8)

	cfg := config.Default()
	cfg.OutputDir = t.TempDir()
	p := &plan.Plan{Jobs: []plan.Job{{ID: 1, Input: path, RemoveColumns: 4}}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewCarveProject(cfg, p, nil, nil).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunRejectsEmptyPlan(t *testing.T) {
	_, err := NewCarveProject(config.Default(), &plan.Plan{}, nil, nil).Run(context.Background())
	assert.ErrorIs(t, err, plan.ErrInvalidJob)
}

func TestOutputPath(t *testing.T) {
	cfg := config.Default()
	cfg.OutputDir = "out"
	assert.Equal(t, filepath.Join("out", "doc_p001_carved.png"), OutputPath(cfg, plan.Job{}, "doc_p001"))
	assert.Equal(t, "x.png", OutputPath(cfg, plan.Job{Output: "x.png"}, "doc_p001"))
}
