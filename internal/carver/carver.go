// Package carver resizes a picture by repeatedly removing its
// lowest-energy seam.
package carver

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/ivlev/seamcarver/internal/energy"
	"github.com/ivlev/seamcarver/internal/grid"
	"github.com/ivlev/seamcarver/internal/seam"
)

// SeamCarver owns a pixel grid and shrinks it one seam at a time.
//
// Energies and seams computed before a removal are never valid after it:
// the cached energy surface is tagged with the grid version and rebuilt
// whenever the version moves. A SeamCarver is not safe for concurrent use.
type SeamCarver struct {
	grid     *grid.Grid
	energyFn energy.Func
	log      *zap.Logger

	version      uint64
	surface      *energy.Surface
	surfaceValid bool
	surfaceVer   uint64
}

// Option configures a SeamCarver.
type Option func(*SeamCarver)

// WithEnergy replaces the default dual-gradient energy function.
func WithEnergy(fn energy.Func) Option {
	return func(c *SeamCarver) {
		if fn != nil {
			c.energyFn = fn
		}
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *zap.Logger) Option {
	return func(c *SeamCarver) {
		if l != nil {
			c.log = l
		}
	}
}

// New creates a carver over a private copy of g.
func New(g *grid.Grid, opts ...Option) (*SeamCarver, error) {
	if g == nil || g.Width() < 1 || g.Height() < 1 {
		return nil, fmt.Errorf("new seam carver: %w", grid.ErrInvalidGrid)
	}
	c := &SeamCarver{
		grid:     g.Clone(),
		energyFn: energy.DualGradient,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *SeamCarver) Width() int  { return c.grid.Width() }
func (c *SeamCarver) Height() int { return c.grid.Height() }

// Version increases by one on every successful removal.
func (c *SeamCarver) Version() uint64 { return c.version }

// Picture returns a snapshot of the current grid.
func (c *SeamCarver) Picture() *grid.Grid {
	return c.grid.Clone()
}

// Energy returns the energy of the pixel at column x, row y of the current grid.
func (c *SeamCarver) Energy(x, y int) (float64, error) {
	return c.energyFn(c.grid, x, y)
}

// EnergySurface returns the energy of every pixel of the current grid.
// The returned surface must not be modified.
func (c *SeamCarver) EnergySurface() (*energy.Surface, error) {
	if c.surfaceValid && c.surfaceVer == c.version {
		return c.surface, nil
	}
	s, err := energy.NewSurface(c.grid, c.energyFn)
	if err != nil {
		return nil, err
	}
	c.surface, c.surfaceVer, c.surfaceValid = s, c.version, true
	return s, nil
}

// FindVerticalSeam returns the column to remove in each row, top to bottom.
func (c *SeamCarver) FindVerticalSeam() ([]int, error) {
	s, _, err := c.FindSeam(seam.Vertical)
	return s, err
}

// FindHorizontalSeam returns the row to remove in each column, left to right.
func (c *SeamCarver) FindHorizontalSeam() ([]int, error) {
	s, _, err := c.FindSeam(seam.Horizontal)
	return s, err
}

// FindSeam returns the minimum-energy seam in orientation o and its total energy.
func (c *SeamCarver) FindSeam(o seam.Orientation) ([]int, float64, error) {
	s, err := c.EnergySurface()
	if err != nil {
		return nil, 0, err
	}
	return seam.Find(s, o)
}

// RemoveSeam dispatches on orientation.
func (c *SeamCarver) RemoveSeam(o seam.Orientation, s []int) error {
	if o == seam.Horizontal {
		return c.RemoveHorizontalSeam(s)
	}
	return c.RemoveVerticalSeam(s)
}

// Carve finds and removes one seam in orientation o and returns the energy
// of the removed seam.
func (c *SeamCarver) Carve(o seam.Orientation) (float64, error) {
	s, cost, err := c.FindSeam(o)
	if err != nil {
		return 0, err
	}
	if err := c.RemoveSeam(o, s); err != nil {
		return 0, err
	}
	return cost, nil
}
