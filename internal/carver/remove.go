package carver

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/ivlev/seamcarver/internal/grid"
	"github.com/ivlev/seamcarver/internal/seam"
)

// RemoveVerticalSeam deletes pixel s[y] from every row y. The grid becomes
// one column narrower. On error the grid is unchanged.
func (c *SeamCarver) RemoveVerticalSeam(s []int) error {
	w, h := c.grid.Width(), c.grid.Height()
	if w <= 1 {
		return fmt.Errorf("remove vertical seam: %w: width %d", seam.ErrInvalidSeam, w)
	}
	if err := seam.Validate(s, h, w); err != nil {
		return fmt.Errorf("remove vertical seam: %w", err)
	}

	old := c.grid.Pixels()
	pixels := make([]grid.Pixel, 0, (w-1)*h)
	for y := 0; y < h; y++ {
		row := old[y*w : (y+1)*w]
		pixels = append(pixels, row[:s[y]]...)
		pixels = append(pixels, row[s[y]+1:]...)
	}
	return c.replace(pixels, w-1, h, seam.Vertical)
}

// RemoveHorizontalSeam deletes pixel s[x] from every column x. The grid
// becomes one row shorter. On error the grid is unchanged.
func (c *SeamCarver) RemoveHorizontalSeam(s []int) error {
	w, h := c.grid.Width(), c.grid.Height()
	if h <= 1 {
		return fmt.Errorf("remove horizontal seam: %w: height %d", seam.ErrInvalidSeam, h)
	}
	if err := seam.Validate(s, w, h); err != nil {
		return fmt.Errorf("remove horizontal seam: %w", err)
	}

	old := c.grid.Pixels()
	pixels := make([]grid.Pixel, w*(h-1))
	for x := 0; x < w; x++ {
		cut := s[x]
		for y := 0; y < h-1; y++ {
			src := y
			if y >= cut {
				src = y + 1
			}
			pixels[y*w+x] = old[src*w+x]
		}
	}
	return c.replace(pixels, w, h-1, seam.Horizontal)
}

func (c *SeamCarver) replace(pixels []grid.Pixel, w, h int, o seam.Orientation) error {
	if err := c.grid.Replace(pixels, w, h); err != nil {
		return err
	}
	c.version++
	c.surfaceValid = false
	c.surface = nil
	c.log.Debug("seam removed",
		zap.Stringer("orientation", o),
		zap.Int("width", w),
		zap.Int("height", h),
		zap.Uint64("version", c.version),
	)
	return nil
}
