package grid

import "fmt"

// Grid is a mutable width x height array of pixels stored row-major.
//
// A Grid is not safe for concurrent mutation.
type Grid struct {
	width  int
	height int
	pixels []Pixel
}

// New creates a grid of the given size filled with transparent black.
func New(width, height int) (*Grid, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: size %dx%d", ErrInvalidGrid, width, height)
	}
	return &Grid{
		width:  width,
		height: height,
		pixels: make([]Pixel, width*height),
	}, nil
}

// FromPixels wraps an existing row-major pixel slice. The slice is copied.
func FromPixels(width, height int, pixels []Pixel) (*Grid, error) {
	if err := checkStorage(width, height, pixels); err != nil {
		return nil, err
	}
	cp := make([]Pixel, len(pixels))
	copy(cp, pixels)
	return &Grid{width: width, height: height, pixels: cp}, nil
}

// FromRows builds a grid from rows of pixels; every row must have the same length.
func FromRows(rows [][]Pixel) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: empty pixel source", ErrInvalidGrid)
	}
	width, height := len(rows[0]), len(rows)
	pixels := make([]Pixel, 0, width*height)
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d pixels, want %d", ErrInvalidGrid, y, len(row), width)
		}
		pixels = append(pixels, row...)
	}
	return &Grid{width: width, height: height, pixels: pixels}, nil
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

// Contains reports whether (x, y) lies inside the grid.
func (g *Grid) Contains(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// At returns the pixel at column x, row y.
func (g *Grid) At(x, y int) (Pixel, error) {
	if !g.Contains(x, y) {
		return 0, fmt.Errorf("%w: (%d, %d) in %dx%d", ErrOutOfBounds, x, y, g.width, g.height)
	}
	return g.pixels[y*g.width+x], nil
}

// Set writes the pixel at column x, row y.
func (g *Grid) Set(x, y int, p Pixel) error {
	if !g.Contains(x, y) {
		return fmt.Errorf("%w: (%d, %d) in %dx%d", ErrOutOfBounds, x, y, g.width, g.height)
	}
	g.pixels[y*g.width+x] = p
	return nil
}

// Pixels returns the backing row-major storage. Callers must not retain it
// across a Replace.
func (g *Grid) Pixels() []Pixel {
	return g.pixels
}

// Replace swaps the backing storage and dimensions in one step. The old
// storage is discarded. On error the grid is left untouched.
func (g *Grid) Replace(pixels []Pixel, width, height int) error {
	if err := checkStorage(width, height, pixels); err != nil {
		return err
	}
	g.pixels = pixels
	g.width = width
	g.height = height
	return nil
}

// Clone returns a deep copy.
func (g *Grid) Clone() *Grid {
	cp := make([]Pixel, len(g.pixels))
	copy(cp, g.pixels)
	return &Grid{width: g.width, height: g.height, pixels: cp}
}

func checkStorage(width, height int, pixels []Pixel) error {
	if width < 1 || height < 1 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidGrid, width, height)
	}
	if len(pixels) != width*height {
		return fmt.Errorf("%w: %d pixels for %dx%d", ErrInvalidGrid, len(pixels), width, height)
	}
	return nil
}
