package plan

import (
	"errors"
	"fmt"

	"github.com/ivlev/seamcarver/internal/config"
	"github.com/ivlev/seamcarver/internal/source"
)

// CurrentVersion is written into every generated plan.
const CurrentVersion = "1.0"

// ErrInvalidJob is returned for jobs that cannot be carved.
var ErrInvalidJob = errors.New("plan: invalid job")

// Validate checks the job without looking at the source picture.
func (j Job) Validate() error {
	if j.Input == "" {
		return fmt.Errorf("%w: job %d has no input", ErrInvalidJob, j.ID)
	}
	if j.Page < 0 {
		return fmt.Errorf("%w: job %d: negative page %d", ErrInvalidJob, j.ID, j.Page)
	}
	if j.TargetWidth < 0 || j.TargetHeight < 0 || j.RemoveColumns < 0 || j.RemoveRows < 0 {
		return fmt.Errorf("%w: job %d: negative size", ErrInvalidJob, j.ID)
	}
	if j.TargetWidth > 0 && j.RemoveColumns > 0 {
		return fmt.Errorf("%w: job %d: target_width and remove_columns both set", ErrInvalidJob, j.ID)
	}
	if j.TargetHeight > 0 && j.RemoveRows > 0 {
		return fmt.Errorf("%w: job %d: target_height and remove_rows both set", ErrInvalidJob, j.ID)
	}
	return nil
}

// Resolve turns the job's targets into seam counts for a width x height
// source. Growing a picture is not supported, and at least one pixel must
// remain in each direction.
func (j Job) Resolve(width, height int) (cols, rows int, err error) {
	if err := j.Validate(); err != nil {
		return 0, 0, err
	}
	cols, rows = j.RemoveColumns, j.RemoveRows
	if j.TargetWidth > 0 {
		cols = width - j.TargetWidth
	}
	if j.TargetHeight > 0 {
		rows = height - j.TargetHeight
	}
	if cols < 0 || rows < 0 {
		return 0, 0, fmt.Errorf("%w: job %d: target %dx%d exceeds source %dx%d",
			ErrInvalidJob, j.ID, j.TargetWidth, j.TargetHeight, width, height)
	}
	if cols >= width || rows >= height {
		return 0, 0, fmt.Errorf("%w: job %d: removing %d columns and %d rows from %dx%d leaves nothing",
			ErrInvalidJob, j.ID, cols, rows, width, height)
	}
	return cols, rows, nil
}

// Params merges the job with the run-wide defaults.
func (j Job) Params(cfg *config.Config) config.CarveParams {
	p := config.CarveParams{
		RemoveColumns: j.RemoveColumns,
		RemoveRows:    j.RemoveRows,
		Order:         j.Order,
		Energy:        j.Energy,
	}
	if p.Order == "" {
		p.Order = cfg.Order
	}
	if p.Energy == "" {
		p.Energy = cfg.Energy
	}
	return p
}

// FromConfig builds a plan with one job per page of src using the sizes in
// cfg. cfg.Page >= 0 restricts the plan to a single page.
func FromConfig(cfg *config.Config, src source.Source) (*Plan, error) {
	pages := src.PageCount()
	if pages == 0 {
		return nil, fmt.Errorf("%w: source %s has no pages", ErrInvalidJob, cfg.InputPath)
	}

	first, last := 0, pages-1
	if cfg.Page >= 0 {
		if cfg.Page >= pages {
			return nil, fmt.Errorf("%w: page %d of %d", ErrInvalidJob, cfg.Page, pages)
		}
		first, last = cfg.Page, cfg.Page
	}

	p := &Plan{Version: CurrentVersion}
	for i := first; i <= last; i++ {
		p.Jobs = append(p.Jobs, Job{
			ID:            len(p.Jobs) + 1,
			Input:         cfg.InputPath,
			Page:          i,
			TargetWidth:   cfg.TargetWidth,
			TargetHeight:  cfg.TargetHeight,
			RemoveColumns: cfg.RemoveColumns,
			RemoveRows:    cfg.RemoveRows,
			Energy:        cfg.Energy,
			Order:         cfg.Order,
		})
	}
	return p, nil
}
