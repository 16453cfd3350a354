package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ivlev/seamcarver/internal/config"
	"github.com/ivlev/seamcarver/internal/plan"
	"github.com/ivlev/seamcarver/internal/report"
	"github.com/ivlev/seamcarver/internal/system"
	"github.com/ivlev/seamcarver/internal/video"
)

// jobMemoryEstimate is the memory one job is assumed to need when the
// worker count is derived from the machine.
const jobMemoryEstimate = 256 << 20

var ErrJobsFailed = errors.New("engine: some jobs failed")

// CarveProject runs a plan: every job is carved on its own goroutine.
type CarveProject struct {
	Config *config.Config
	Plan   *plan.Plan
	// Encoder records carving animations; nil disables them.
	Encoder video.FrameEncoder
	Log     *zap.Logger
}

// RunReport is what Run hands back to the caller.
type RunReport struct {
	RunID   string
	Results []report.JobResult
	Summary report.Summary
}

func NewCarveProject(cfg *config.Config, p *plan.Plan, enc video.FrameEncoder, log *zap.Logger) *CarveProject {
	if log == nil {
		log = zap.NewNop()
	}
	return &CarveProject{
		Config:  cfg,
		Plan:    p,
		Encoder: enc,
		Log:     log,
	}
}

// AnimationParams maps the run configuration onto encoder settings.
func AnimationParams(cfg *config.Config) video.Params {
	return video.Params{FPS: cfg.AnimationFPS, Encoder: cfg.VideoEncoder}
}

// Workers returns the configured worker count, or one sized to the host.
func (p *CarveProject) Workers() int {
	if p.Config.Workers > 0 {
		return p.Config.Workers
	}
	return system.DefaultWorkers(jobMemoryEstimate)
}

// Run carves every job of the plan. A failing job does not stop the
// others; Run then returns ErrJobsFailed alongside the full report.
// Cancelling ctx stops all jobs between seams and Run returns ctx.Err().
func (p *CarveProject) Run(ctx context.Context) (*RunReport, error) {
	if p.Plan == nil || len(p.Plan.Jobs) == 0 {
		return nil, fmt.Errorf("%w: plan has no jobs", plan.ErrInvalidJob)
	}
	for _, j := range p.Plan.Jobs {
		if err := j.Validate(); err != nil {
			return nil, err
		}
	}

	start := time.Now()
	runID := uuid.NewString()
	log := p.Log.With(zap.String("run", runID))

	workers := p.Workers()
	log.Info("carving started",
		zap.Int("jobs", len(p.Plan.Jobs)),
		zap.Int("workers", workers),
	)

	results := make([]report.JobResult, len(p.Plan.Jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, j := range p.Plan.Jobs {
		g.Go(func() error {
			res := p.runJob(gctx, j, log)
			results[i] = res
			if res.Err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				log.Error("job failed", zap.Int("job", j.ID), zap.String("input", j.Input), zap.Error(res.Err))
			}
			return nil
		})
	}

	waitErr := g.Wait()
	rep := &RunReport{
		RunID:   runID,
		Results: results,
		Summary: report.Summarize(runID, p.Config.BuildVersion, results, time.Since(start)),
	}

	if waitErr != nil {
		return rep, waitErr
	}
	if err := ctx.Err(); err != nil {
		return rep, err
	}

	log.Info("carving finished",
		zap.Int("seams", rep.Summary.Seams),
		zap.Int("failed", rep.Summary.Failed),
		zap.Duration("elapsed", rep.Summary.Duration),
	)
	if rep.Summary.Failed > 0 {
		return rep, fmt.Errorf("%w: %d of %d", ErrJobsFailed, rep.Summary.Failed, rep.Summary.Jobs)
	}
	return rep, nil
}
