package seam

import "fmt"

// Validate checks that seam has exactly length entries, each in [0, bound),
// with adjacent entries differing by at most one.
func Validate(seam []int, length, bound int) error {
	if len(seam) != length {
		return fmt.Errorf("%w: length %d, want %d", ErrInvalidSeam, len(seam), length)
	}
	for i, v := range seam {
		if v < 0 || v >= bound {
			return fmt.Errorf("%w: entry %d = %d outside [0, %d)", ErrInvalidSeam, i, v, bound)
		}
		if i > 0 && abs(v-seam[i-1]) > 1 {
			return fmt.Errorf("%w: step %d -> %d at entry %d", ErrInvalidSeam, seam[i-1], v, i)
		}
	}
	return nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
