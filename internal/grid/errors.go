package grid

import "errors"

var (
	// ErrInvalidGrid is returned for a nil or empty pixel source, a dimension
	// below 1, or storage that does not match the declared dimensions.
	ErrInvalidGrid = errors.New("grid: invalid grid")

	// ErrOutOfBounds is returned when a coordinate lies outside the grid.
	ErrOutOfBounds = errors.New("grid: coordinate out of bounds")
)
