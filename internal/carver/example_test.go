package carver_test

import (
	"fmt"

	"github.com/ivlev/seamcarver/internal/carver"
	"github.com/ivlev/seamcarver/internal/grid"
)

func ExampleSeamCarver_RemoveVerticalSeam() {
	g, _ := grid.New(4, 3)
	c, _ := carver.New(g)

	s, _ := c.FindVerticalSeam()
	fmt.Println("seam:", s)

	_ = c.RemoveVerticalSeam(s)
	fmt.Printf("%dx%d\n", c.Width(), c.Height())
	// Output:
	// seam: [0 1 0]
	// 3x3
}
