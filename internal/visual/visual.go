// Package visual renders diagnostic pictures of a carving run: energy maps,
// seam overlays, side-by-side comparisons and animation frames.
package visual

import (
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"

	"github.com/ivlev/seamcarver/internal/energy"
	"github.com/ivlev/seamcarver/internal/grid"
	"github.com/ivlev/seamcarver/internal/seam"
)

// SeamColor is the default overlay color.
var SeamColor = color.NRGBA{R: 255, A: 255}

// EnergyImage maps a surface to grayscale, scaled so the largest interior
// energy is white. Border pixels (MaxEnergy) are clamped to white as well.
func EnergyImage(s *energy.Surface) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, s.Width, s.Height))

	maxVal := s.MaxBelow(energy.MaxEnergy)
	if maxVal == 0 {
		maxVal = energy.MaxEnergy
	}

	for y := 0; y < s.Height; y++ {
		for x := 0; x < s.Width; x++ {
			v := s.At(x, y) / maxVal
			if v > 1 {
				v = 1
			}
			img.SetGray(x, y, color.Gray{Y: uint8(v*255 + 0.5)})
		}
	}
	return img
}

// SeamOverlay draws seam over a copy of g.
func SeamOverlay(g *grid.Grid, s []int, o seam.Orientation, c color.NRGBA) (*image.NRGBA, error) {
	length, bound := g.Height(), g.Width()
	if o == seam.Horizontal {
		length, bound = g.Width(), g.Height()
	}
	if err := seam.Validate(s, length, bound); err != nil {
		return nil, err
	}

	img := g.ToImage()
	for i, v := range s {
		if o == seam.Horizontal {
			img.SetNRGBA(i, v, c)
		} else {
			img.SetNRGBA(v, i, c)
		}
	}
	return img, nil
}

// Comparison places three panels left to right: the original, the carved
// result and the original uniformly scaled to the carved size.
func Comparison(original image.Image, carved *grid.Grid) *image.NRGBA {
	ob := original.Bounds()
	cw, ch := carved.Width(), carved.Height()

	height := ob.Dy()
	if ch > height {
		height = ch
	}
	out := image.NewNRGBA(image.Rect(0, 0, ob.Dx()+2*cw, height))
	draw.Draw(out, out.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	draw.Draw(out, image.Rect(0, 0, ob.Dx(), ob.Dy()), original, ob.Min, draw.Src)
	carved.DrawInto(out, image.Pt(ob.Dx(), 0))

	scaled := image.Rect(ob.Dx()+cw, 0, ob.Dx()+2*cw, ch)
	xdraw.CatmullRom.Scale(out, scaled, original, ob, xdraw.Src, nil)
	return out
}

// Frame renders g centred on dst over a black background. dst keeps its
// size, so every frame of an animation has the source dimensions.
func Frame(dst *image.RGBA, g *grid.Grid) {
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)

	b := dst.Bounds()
	off := image.Pt(b.Min.X+(b.Dx()-g.Width())/2, b.Min.Y+(b.Dy()-g.Height())/2)
	r := image.Rectangle{Min: off, Max: off.Add(image.Pt(g.Width(), g.Height()))}
	draw.Draw(dst, r, g.ToImage(), image.Point{}, draw.Over)
}
