package seam

import (
	"fmt"
	"math"

	"github.com/ivlev/seamcarver/internal/energy"
	"github.com/ivlev/seamcarver/internal/grid"
)

// FindVertical returns the minimum-energy vertical seam of s and its total
// energy.
func FindVertical(s *energy.Surface) ([]int, float64, error) {
	return find(s)
}

// FindHorizontal returns the minimum-energy horizontal seam of s: one row
// index per column.
func FindHorizontal(s *energy.Surface) ([]int, float64, error) {
	if err := checkSurface(s); err != nil {
		return nil, 0, err
	}
	return find(s.Transpose())
}

// Find dispatches on orientation.
func Find(s *energy.Surface, o Orientation) ([]int, float64, error) {
	if o == Horizontal {
		return FindHorizontal(s)
	}
	return FindVertical(s)
}

// find runs the DP on a surface whose layers are its rows.
func find(s *energy.Surface) ([]int, float64, error) {
	if err := checkSurface(s); err != nil {
		return nil, 0, err
	}
	w, h := s.Width, s.Height

	distTo := make([]float64, w*h)
	edgeTo := make([]int32, w*h)

	// The top row has no predecessors; on an energy surface built with the
	// border rule every entry equals energy.MaxEnergy.
	for x := 0; x < w; x++ {
		distTo[x] = s.Values[x]
		edgeTo[x] = -1
	}

	for y := 1; y < h; y++ {
		prev := distTo[(y-1)*w : y*w]
		row := distTo[y*w : (y+1)*w]
		edges := edgeTo[y*w : (y+1)*w]
		for k := 0; k < w; k++ {
			// Minimum over the at most three sources of (k, y); lower x wins ties.
			best, from := math.Inf(1), int32(-1)
			for x := k - 1; x <= k+1; x++ {
				if x < 0 || x >= w {
					continue
				}
				if prev[x] < best {
					best, from = prev[x], int32(x)
				}
			}
			row[k] = best + s.Values[y*w+k]
			edges[k] = from
		}
	}

	last := distTo[(h-1)*w:]
	end := 0
	for x := 1; x < w; x++ {
		if last[x] < last[end] {
			end = x
		}
	}

	seam := make([]int, h)
	seam[h-1] = end
	for y := h - 1; y > 0; y-- {
		seam[y-1] = int(edgeTo[y*w+seam[y]])
	}
	return seam, last[end], nil
}

func checkSurface(s *energy.Surface) error {
	if s == nil || s.Width < 1 || s.Height < 1 || len(s.Values) != s.Width*s.Height {
		return fmt.Errorf("seam search: %w", grid.ErrInvalidGrid)
	}
	return nil
}

// Cost sums the energies of s along seam in orientation o.
func Cost(s *energy.Surface, seam []int, o Orientation) (float64, error) {
	if err := checkSurface(s); err != nil {
		return 0, err
	}
	if o == Horizontal {
		s = s.Transpose()
	}
	if err := Validate(seam, s.Height, s.Width); err != nil {
		return 0, err
	}
	total := 0.0
	for y, x := range seam {
		total += s.At(x, y)
	}
	return total, nil
}
