package seam

import (
	"errors"
	"fmt"
	"math"

	"github.com/ivlev/seamcarver/internal/energy"
)

// MaxExhaustivePaths bounds the work Exhaustive accepts.
const MaxExhaustivePaths = 1 << 20

var ErrTooLarge = errors.New("seam: surface too large to enumerate")

// Exhaustive walks every seam of s in orientation o and returns the lowest
// total energy. It exists to cross-check the DP on small pictures.
func Exhaustive(s *energy.Surface, o Orientation) (float64, error) {
	if err := checkSurface(s); err != nil {
		return 0, err
	}
	if o == Horizontal {
		s = s.Transpose()
	}

	// Upper bound: W starts, at most three choices per row.
	bound := float64(s.Width) * math.Pow(3, float64(s.Height-1))
	if bound > MaxExhaustivePaths {
		return 0, fmt.Errorf("%w: %dx%d", ErrTooLarge, s.Width, s.Height)
	}

	best := math.Inf(1)
	var walk func(x, y int, acc float64)
	walk = func(x, y int, acc float64) {
		acc += s.At(x, y)
		if y == s.Height-1 {
			best = math.Min(best, acc)
			return
		}
		for k := max(x-1, 0); k <= min(x+1, s.Width-1); k++ {
			walk(k, y+1, acc)
		}
	}
	for x := 0; x < s.Width; x++ {
		walk(x, 0, 0)
	}
	return best, nil
}
