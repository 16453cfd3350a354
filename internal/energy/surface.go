package energy

import (
	"fmt"

	"github.com/ivlev/seamcarver/internal/grid"
)

// Surface is a dense row-major table of energies. It is a snapshot: it does
// not track later changes to the grid it was computed from.
type Surface struct {
	Width  int
	Height int
	Values []float64
}

// NewSurface computes fn for every pixel of g.
func NewSurface(g *grid.Grid, fn Func) (*Surface, error) {
	if g == nil {
		return nil, fmt.Errorf("energy surface: %w", grid.ErrInvalidGrid)
	}
	if fn == nil {
		fn = DualGradient
	}
	w, h := g.Width(), g.Height()
	s := &Surface{Width: w, Height: h, Values: make([]float64, w*h)}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			e, err := fn(g, x, y)
			if err != nil {
				return nil, err
			}
			s.Values[y*w+x] = e
		}
	}
	return s, nil
}

// SurfaceFromRows builds a surface from rows of precomputed energies.
func SurfaceFromRows(rows [][]float64) (*Surface, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("energy surface: %w", grid.ErrInvalidGrid)
	}
	w, h := len(rows[0]), len(rows)
	s := &Surface{Width: w, Height: h, Values: make([]float64, 0, w*h)}
	for y, row := range rows {
		if len(row) != w {
			return nil, fmt.Errorf("energy surface row %d: %w", y, grid.ErrInvalidGrid)
		}
		s.Values = append(s.Values, row...)
	}
	return s, nil
}

// At returns the energy at (x, y). The caller guarantees bounds.
func (s *Surface) At(x, y int) float64 {
	return s.Values[y*s.Width+x]
}

// Transpose returns a copy with rows and columns swapped.
func (s *Surface) Transpose() *Surface {
	t := &Surface{Width: s.Height, Height: s.Width, Values: make([]float64, len(s.Values))}
	for y := 0; y < s.Height; y++ {
		for x := 0; x < s.Width; x++ {
			t.Values[x*t.Width+y] = s.Values[y*s.Width+x]
		}
	}
	return t
}

// MaxBelow returns the largest energy strictly below limit, or 0 when
// there is none.
func (s *Surface) MaxBelow(limit float64) float64 {
	m := 0.0
	for _, v := range s.Values {
		if v < limit && v > m {
			m = v
		}
	}
	return m
}
