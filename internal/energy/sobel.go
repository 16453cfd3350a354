package energy

import (
	"fmt"
	"math"

	"github.com/ivlev/seamcarver/internal/grid"
)

// Sobel kernels
var (
	sobelX = [3][3]int{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	}
	sobelY = [3][3]int{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	}
)

// Sobel returns the gradient magnitude of the pixel luminance under the 3x3
// Sobel operator. Border pixels get MaxEnergy like DualGradient.
func Sobel(g *grid.Grid, x, y int) (float64, error) {
	if !g.Contains(x, y) {
		return 0, fmt.Errorf("energy at (%d, %d): %w", x, y, grid.ErrOutOfBounds)
	}
	if onBorder(g, x, y) {
		return MaxEnergy, nil
	}

	pix := g.Pixels()
	w := g.Width()
	var sumX, sumY int
	for ky := -1; ky <= 1; ky++ {
		for kx := -1; kx <= 1; kx++ {
			l := luminance(pix[(y+ky)*w+x+kx])
			sumX += l * sobelX[ky+1][kx+1]
			sumY += l * sobelY[ky+1][kx+1]
		}
	}
	return math.Sqrt(float64(sumX*sumX + sumY*sumY)), nil
}

// luminance uses the Rec. 601 weights scaled to integers.
func luminance(p grid.Pixel) int {
	return (299*int(p.R()) + 587*int(p.G()) + 114*int(p.B())) / 1000
}
