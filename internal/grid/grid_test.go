package grid

import (
	"image"
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsEmptySize(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
	}{
		{"zero width", 0, 3},
		{"zero height", 3, 0},
		{"negative", -1, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.width, tt.height)
			assert.ErrorIs(t, err, ErrInvalidGrid)
		})
	}
}

func TestFromRows(t *testing.T) {
	g, err := FromRows([][]Pixel{
		{1, 2, 3},
		{4, 5, 6},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, g.Width())
	assert.Equal(t, 2, g.Height())

	p, err := g.At(2, 1)
	require.NoError(t, err)
	assert.Equal(t, Pixel(6), p)

	_, err = FromRows(nil)
	assert.ErrorIs(t, err, ErrInvalidGrid)

	_, err = FromRows([][]Pixel{{1, 2}, {3}})
	assert.ErrorIs(t, err, ErrInvalidGrid, "ragged rows must be rejected")
}

func TestAtOutOfBounds(t *testing.T) {
	g, err := New(4, 3)
	require.NoError(t, err)

	for _, pt := range []image.Point{{-1, 0}, {0, -1}, {4, 0}, {0, 3}, {4, 3}} {
		_, err := g.At(pt.X, pt.Y)
		assert.ErrorIs(t, err, ErrOutOfBounds, "point %v", pt)
		assert.ErrorIs(t, g.Set(pt.X, pt.Y, 1), ErrOutOfBounds, "point %v", pt)
	}
}

func TestReplace(t *testing.T) {
	g, err := FromPixels(2, 2, []Pixel{1, 2, 3, 4})
	require.NoError(t, err)

	err = g.Replace([]Pixel{9, 8, 7}, 2, 2)
	assert.ErrorIs(t, err, ErrInvalidGrid)
	assert.Equal(t, 2, g.Width(), "failed replace must not change the grid")
	assert.Equal(t, []Pixel{1, 2, 3, 4}, g.Pixels())

	require.NoError(t, g.Replace([]Pixel{9, 8}, 1, 2))
	assert.Equal(t, 1, g.Width())
	assert.Equal(t, 2, g.Height())

	_, err = g.At(1, 0)
	assert.ErrorIs(t, err, ErrOutOfBounds, "bounds follow the new dimensions")
}

func TestCloneIsIndependent(t *testing.T) {
	g, err := FromPixels(2, 1, []Pixel{1, 2})
	require.NoError(t, err)

	c := g.Clone()
	require.NoError(t, c.Set(0, 0, 42))

	p, _ := g.At(0, 0)
	assert.Equal(t, Pixel(1), p)
}

func TestPixelChannels(t *testing.T) {
	p := RGBA(0x12, 0x34, 0x56, 0x78)
	assert.Equal(t, Pixel(0x78123456), p)
	assert.Equal(t, uint8(0x12), p.R())
	assert.Equal(t, uint8(0x34), p.G())
	assert.Equal(t, uint8(0x56), p.B())
	assert.Equal(t, uint8(0x78), p.A())
	assert.Equal(t, uint8(0xff), RGB(1, 2, 3).A())
}

func TestImageRoundTripKeepsAlpha(t *testing.T) {
	src := image.NewNRGBA(image.Rect(10, 20, 13, 22))
	want := [][]color.NRGBA{
		{{255, 0, 0, 255}, {0, 255, 0, 128}, {0, 0, 255, 0}},
		{{1, 2, 3, 4}, {200, 100, 50, 255}, {9, 9, 9, 9}},
	}
	for y, row := range want {
		for x, c := range row {
			src.SetNRGBA(10+x, 20+y, c)
		}
	}

	g, err := FromImage(src)
	require.NoError(t, err)
	assert.Equal(t, 3, g.Width())
	assert.Equal(t, 2, g.Height())

	out := g.ToImage()
	assert.Equal(t, image.Rect(0, 0, 3, 2), out.Bounds())
	for y, row := range want {
		for x, c := range row {
			if diff := cmp.Diff(c, out.NRGBAAt(x, y)); diff != "" {
				t.Errorf("pixel (%d,%d) mismatch (-want +got):\n%s", x, y, diff)
			}
		}
	}
}

func TestFromImageGray(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 2, 1))
	src.SetGray(1, 0, color.Gray{Y: 77})

	g, err := FromImage(src)
	require.NoError(t, err)

	p, err := g.At(1, 0)
	require.NoError(t, err)
	assert.Equal(t, RGB(77, 77, 77), p)
}

func TestFromImageRejectsEmpty(t *testing.T) {
	_, err := FromImage(nil)
	assert.ErrorIs(t, err, ErrInvalidGrid)

	_, err = FromImage(image.NewRGBA(image.Rect(0, 0, 0, 5)))
	assert.ErrorIs(t, err, ErrInvalidGrid)
}
