// Package energy assigns every pixel of a grid a non-negative importance
// score. High energy marks detail worth keeping; seams follow low energy.
package energy

import (
	"fmt"
	"math"

	"github.com/ivlev/seamcarver/internal/grid"
)

// MaxEnergy is the fixed energy of every border pixel.
const MaxEnergy = 1000.0

// Func computes the energy of the pixel at (x, y). Implementations must be
// pure and return grid.ErrOutOfBounds for coordinates outside the grid.
type Func func(g *grid.Grid, x, y int) (float64, error)

// DualGradient returns sqrt(Δx² + Δy²) where Δx² sums the squared R, G and B
// differences between the right and left neighbours and Δy² does the same
// for the pixels below and above. Border pixels get MaxEnergy.
func DualGradient(g *grid.Grid, x, y int) (float64, error) {
	if !g.Contains(x, y) {
		return 0, fmt.Errorf("energy at (%d, %d): %w", x, y, grid.ErrOutOfBounds)
	}
	if onBorder(g, x, y) {
		return MaxEnergy, nil
	}

	pix := g.Pixels()
	w := g.Width()
	dx := gradientSquare(pix[y*w+x-1], pix[y*w+x+1])
	dy := gradientSquare(pix[(y-1)*w+x], pix[(y+1)*w+x])
	return math.Sqrt(float64(dx + dy)), nil
}

// gradientSquare sums squared channel differences; alpha is ignored.
func gradientSquare(before, after grid.Pixel) int {
	r := int(after.R()) - int(before.R())
	g := int(after.G()) - int(before.G())
	b := int(after.B()) - int(before.B())
	return r*r + g*g + b*b
}

func onBorder(g *grid.Grid, x, y int) bool {
	return x == 0 || y == 0 || x == g.Width()-1 || y == g.Height()-1
}
