package seam

import (
	"errors"
	"fmt"
)

// ErrInvalidSeam is returned for a seam of the wrong length, with an index
// out of range, with a step larger than one, or for a removal that would
// leave an empty grid.
var ErrInvalidSeam = errors.New("seam: invalid seam")

// Orientation selects the direction a seam runs in.
type Orientation int

const (
	// Vertical seams run top to bottom and remove one column.
	Vertical Orientation = iota
	// Horizontal seams run left to right and remove one row.
	Horizontal
)

func (o Orientation) String() string {
	switch o {
	case Vertical:
		return "vertical"
	case Horizontal:
		return "horizontal"
	default:
		return fmt.Sprintf("Orientation(%d)", int(o))
	}
}
