package engine

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ivlev/seamcarver/internal/carver"
	"github.com/ivlev/seamcarver/internal/config"
	"github.com/ivlev/seamcarver/internal/energy"
	"github.com/ivlev/seamcarver/internal/grid"
	"github.com/ivlev/seamcarver/internal/plan"
	"github.com/ivlev/seamcarver/internal/report"
	"github.com/ivlev/seamcarver/internal/seam"
	"github.com/ivlev/seamcarver/internal/source"
	"github.com/ivlev/seamcarver/internal/system"
	"github.com/ivlev/seamcarver/internal/video"
	"github.com/ivlev/seamcarver/internal/visual"
)

// Steps returns the orientation of every seam to remove, in order.
func Steps(cols, rows int, order string) []seam.Orientation {
	steps := make([]seam.Orientation, 0, cols+rows)
	repeat := func(o seam.Orientation, n int) {
		for i := 0; i < n; i++ {
			steps = append(steps, o)
		}
	}

	switch order {
	case config.OrderRowsFirst:
		repeat(seam.Horizontal, rows)
		repeat(seam.Vertical, cols)
	case config.OrderInterleave:
		for cols > 0 || rows > 0 {
			if cols > 0 {
				steps = append(steps, seam.Vertical)
				cols--
			}
			if rows > 0 {
				steps = append(steps, seam.Horizontal)
				rows--
			}
		}
	default:
		repeat(seam.Vertical, cols)
		repeat(seam.Horizontal, rows)
	}
	return steps
}

// OutputPath is where job j writes its carved picture.
func OutputPath(cfg *config.Config, j plan.Job, name string) string {
	if j.Output != "" {
		return j.Output
	}
	return filepath.Join(cfg.OutputDir, name+"_carved.png")
}

func (p *CarveProject) runJob(ctx context.Context, j plan.Job, runLog *zap.Logger) (res report.JobResult) {
	start := time.Now()
	res = report.JobResult{ID: fmt.Sprintf("%d", j.ID), Input: j.Input}
	defer func() { res.Duration = time.Since(start) }()

	log := runLog.With(zap.Int("job", j.ID), zap.String("input", j.Input), zap.Int("page", j.Page))

	src, err := source.Open(j.Input)
	if err != nil {
		res.Err = fmt.Errorf("open source: %w", err)
		return res
	}
	defer src.Close()

	if j.Page >= src.PageCount() {
		res.Err = fmt.Errorf("%w: job %d: page %d of %d", plan.ErrInvalidJob, j.ID, j.Page, src.PageCount())
		return res
	}

	original, err := src.RenderPage(j.Page, p.Config.DPI)
	if err != nil {
		res.Err = fmt.Errorf("render page %d: %w", j.Page, err)
		return res
	}
	g, err := grid.FromImage(original)
	if err != nil {
		res.Err = err
		return res
	}
	res.SourceWidth, res.SourceHeight = g.Width(), g.Height()

	cols, rows, err := j.Resolve(g.Width(), g.Height())
	if err != nil {
		res.Err = err
		return res
	}
	params := j.Params(p.Config)
	fn, err := energy.New(params.Energy)
	if err != nil {
		res.Err = err
		return res
	}

	c, err := carver.New(g, carver.WithEnergy(fn), carver.WithLogger(log))
	if err != nil {
		res.Err = err
		return res
	}

	res.Output = OutputPath(p.Config, j, src.Name(j.Page))
	if err := os.MkdirAll(filepath.Dir(res.Output), 0755); err != nil {
		res.Err = fmt.Errorf("create output dir: %w", err)
		return res
	}
	base := strings.TrimSuffix(res.Output, filepath.Ext(res.Output))

	if err := p.writeBeforeOutputs(c, base); err != nil {
		res.Err = err
		return res
	}

	log.Debug("carving", zap.Int("columns", cols), zap.Int("rows", rows), zap.String("energy", params.Energy))
	res.SeamCosts, err = p.carve(ctx, c, Steps(cols, rows, params.Order), base, log)
	res.Width, res.Height = c.Width(), c.Height()
	if err != nil {
		res.Err = err
		return res
	}

	carved := c.Picture()
	if err := savePNG(res.Output, carved.ToImage()); err != nil {
		res.Err = err
		return res
	}

	if err := p.writeAfterOutputs(original, carved, res.SeamCosts, base, src.Name(j.Page)); err != nil {
		res.Err = err
		return res
	}

	log.Info("job done",
		zap.String("output", res.Output),
		zap.Int("width", res.Width),
		zap.Int("height", res.Height),
		zap.Int("seams", len(res.SeamCosts)),
	)
	return res
}

// carve removes one seam per step, streaming a frame after each removal
// when an animation is requested.
func (p *CarveProject) carve(ctx context.Context, c *carver.SeamCarver, steps []seam.Orientation, base string, log *zap.Logger) ([]float64, error) {
	var sink video.FrameWriter
	var frameRect image.Rectangle
	videoPath := base + "_carving.mp4"
	if p.Config.Animate && p.Encoder != nil {
		frameRect = image.Rect(0, 0, c.Width(), c.Height())
		s, err := p.Encoder.Start(ctx, videoPath, frameRect.Size(), AnimationParams(p.Config))
		if err != nil {
			return nil, fmt.Errorf("start animation: %w", err)
		}
		sink = s
	}

	emit := func() error {
		if sink == nil {
			return nil
		}
		frame := system.GetImage(frameRect)
		defer system.PutImage(frame)
		visual.Frame(frame, c.Picture())
		return sink.WriteFrame(frame)
	}

	costs := make([]float64, 0, len(steps))
	err := emit()
	for _, o := range steps {
		if err != nil {
			break
		}
		if err = ctx.Err(); err != nil {
			break
		}
		var cost float64
		cost, err = c.Carve(o)
		if err != nil {
			err = fmt.Errorf("carve %s seam %d: %w", o, len(costs)+1, err)
			break
		}
		costs = append(costs, cost)
		err = emit()
	}

	if sink != nil {
		if cerr := sink.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("finish animation: %w", cerr)
		}
		if err == nil {
			log.Debug("animation written", zap.String("path", videoPath), zap.Int("frames", sink.Frames()))
		}
	}
	return costs, err
}

func (p *CarveProject) writeBeforeOutputs(c *carver.SeamCarver, base string) error {
	if p.Config.EnergyMap {
		s, err := c.EnergySurface()
		if err != nil {
			return err
		}
		if err := savePNG(base+"_energy.png", visual.EnergyImage(s)); err != nil {
			return err
		}
	}

	if p.Config.Overlay {
		for _, o := range []seam.Orientation{seam.Vertical, seam.Horizontal} {
			s, _, err := c.FindSeam(o)
			if err != nil {
				return err
			}
			img, err := visual.SeamOverlay(c.Picture(), s, o, visual.SeamColor)
			if err != nil {
				return err
			}
			if err := savePNG(fmt.Sprintf("%s_seam_%s.png", base, o), img); err != nil {
				return err
			}
		}
	}
	return nil
}

func (p *CarveProject) writeAfterOutputs(original image.Image, carved *grid.Grid, costs []float64, base, title string) error {
	if p.Config.Compare {
		if err := savePNG(base+"_compare.png", visual.Comparison(original, carved)); err != nil {
			return err
		}
	}
	if p.Config.Plot && len(costs) > 0 {
		if err := report.PlotCosts(costs, title, base+"_costs.png"); err != nil {
			return err
		}
	}
	return nil
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
