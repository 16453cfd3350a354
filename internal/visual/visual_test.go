package visual

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/seamcarver/internal/energy"
	"github.com/ivlev/seamcarver/internal/grid"
	"github.com/ivlev/seamcarver/internal/seam"
)

func solidGrid(t *testing.T, w, h int, p grid.Pixel) *grid.Grid {
	t.Helper()
	pixels := make([]grid.Pixel, w*h)
	for i := range pixels {
		pixels[i] = p
	}
	g, err := grid.FromPixels(w, h, pixels)
	require.NoError(t, err)
	return g
}

func TestEnergyImage(t *testing.T) {
	s, err := energy.SurfaceFromRows([][]float64{
		{1000, 1000, 1000},
		{1000, 50, 1000},
		{1000, 100, 1000},
	})
	require.NoError(t, err)

	img := EnergyImage(s)
	assert.Equal(t, image.Rect(0, 0, 3, 3), img.Bounds())
	assert.Equal(t, uint8(255), img.GrayAt(0, 0).Y, "border clamps to white")
	assert.Equal(t, uint8(255), img.GrayAt(1, 2).Y, "largest interior energy is white")
	assert.Equal(t, uint8(128), img.GrayAt(1, 1).Y)
}

func TestEnergyImageAllBorder(t *testing.T) {
	s, err := energy.SurfaceFromRows([][]float64{{1000, 1000}})
	require.NoError(t, err)
	assert.Equal(t, uint8(255), EnergyImage(s).GrayAt(1, 0).Y)
}

func TestSeamOverlay(t *testing.T) {
	g := solidGrid(t, 3, 2, grid.RGB(0, 0, 0))

	img, err := SeamOverlay(g, []int{2, 1}, seam.Vertical, SeamColor)
	require.NoError(t, err)
	assert.Equal(t, SeamColor, img.NRGBAAt(2, 0))
	assert.Equal(t, SeamColor, img.NRGBAAt(1, 1))
	assert.Equal(t, color.NRGBA{A: 255}, img.NRGBAAt(0, 0))

	img, err = SeamOverlay(g, []int{0, 1, 1}, seam.Horizontal, SeamColor)
	require.NoError(t, err)
	assert.Equal(t, SeamColor, img.NRGBAAt(0, 0))
	assert.Equal(t, SeamColor, img.NRGBAAt(2, 1))

	_, err = SeamOverlay(g, []int{0, 1}, seam.Horizontal, SeamColor)
	assert.ErrorIs(t, err, seam.ErrInvalidSeam)
}

func TestComparison(t *testing.T) {
	orig := image.NewNRGBA(image.Rect(0, 0, 6, 4))
	carved := solidGrid(t, 4, 3, grid.RGB(9, 9, 9))

	out := Comparison(orig, carved)
	assert.Equal(t, image.Rect(0, 0, 6+2*4, 4), out.Bounds())
	assert.Equal(t, color.NRGBA{R: 9, G: 9, B: 9, A: 255}, out.NRGBAAt(6, 0))
	assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, out.NRGBAAt(6, 3), "padding below the carved panel")
}

func TestFrameCentres(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 5, 3))
	Frame(dst, solidGrid(t, 3, 1, grid.RGB(200, 100, 50)))

	assert.Equal(t, color.RGBA{A: 255}, dst.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{R: 200, G: 100, B: 50, A: 255}, dst.RGBAAt(1, 1))
	assert.Equal(t, color.RGBA{R: 200, G: 100, B: 50, A: 255}, dst.RGBAAt(3, 1))
	assert.Equal(t, color.RGBA{A: 255}, dst.RGBAAt(4, 1))
}
