package grid

import (
	"fmt"
	"image"
	"image/color"
)

// FromImage converts a decoded image into a grid. Colors are stored
// un-premultiplied so alpha survives a round trip through ToImage.
func FromImage(img image.Image) (*Grid, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", ErrInvalidGrid)
	}
	bounds := img.Bounds()
	g, err := New(bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, err
	}

	// Быстрый путь для NRGBA без конвертации цвета
	if src, ok := img.(*image.NRGBA); ok {
		for y := 0; y < g.height; y++ {
			off := src.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			for x := 0; x < g.width; x++ {
				p := src.Pix[off+x*4 : off+x*4+4 : off+x*4+4]
				g.pixels[y*g.width+x] = RGBA(p[0], p[1], p[2], p[3])
			}
		}
		return g, nil
	}

	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			g.pixels[y*g.width+x] = RGBA(c.R, c.G, c.B, c.A)
		}
	}
	return g, nil
}

// ToImage renders the grid into a new NRGBA image anchored at the origin.
func (g *Grid) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, g.width, g.height))
	g.DrawInto(img, image.Point{})
	return img
}

// DrawInto copies the grid into dst with its top-left corner at origin.
// Pixels falling outside dst are skipped.
func (g *Grid) DrawInto(dst *image.NRGBA, origin image.Point) {
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			pt := image.Pt(origin.X+x, origin.Y+y)
			if !pt.In(dst.Rect) {
				continue
			}
			p := g.pixels[y*g.width+x]
			off := dst.PixOffset(pt.X, pt.Y)
			dst.Pix[off+0] = p.R()
			dst.Pix[off+1] = p.G()
			dst.Pix[off+2] = p.B()
			dst.Pix[off+3] = p.A()
		}
	}
}
