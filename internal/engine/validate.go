package engine

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/ivlev/seamcarver/internal/energy"
	"github.com/ivlev/seamcarver/internal/grid"
	"github.com/ivlev/seamcarver/internal/seam"
	"github.com/ivlev/seamcarver/internal/source"
)

var ErrValidationFailed = errors.New("engine: validation failed")

// Reference is a YAML file describing the expected energies (rounded to two
// decimals) and, optionally, the expected seams of one picture.
type Reference struct {
	Input          string      `yaml:"input"`
	Page           int         `yaml:"page"`
	Energy         [][]float64 `yaml:"energy"`
	VerticalSeam   []int       `yaml:"vertical_seam,omitempty"`
	HorizontalSeam []int       `yaml:"horizontal_seam,omitempty"`
}

// ReadReference loads a reference file. A relative input path is resolved
// against the directory of the reference file.
func ReadReference(path string) (*Reference, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var ref Reference
	if err := yaml.Unmarshal(data, &ref); err != nil {
		return nil, fmt.Errorf("parse reference %s: %w", path, err)
	}
	if ref.Input != "" && !filepath.IsAbs(ref.Input) {
		ref.Input = filepath.Join(filepath.Dir(path), ref.Input)
	}
	return &ref, nil
}

// Mismatch is one pixel whose rounded energy differs from the reference.
type Mismatch struct {
	X, Y      int
	Want, Got float64
}

// SeamCheck records what was verified about one seam orientation.
type SeamCheck struct {
	Orientation seam.Orientation
	Seam        []int
	Cost        float64
	// Optimum is the exhaustive minimum; only set when Exhaustive is true.
	Optimum    float64
	Exhaustive bool
	Problems   []string
}

// Validation is the outcome of checking one picture.
type Validation struct {
	Energy     [][]float64
	Mismatches []Mismatch
	Problems   []string
	Seams      []SeamCheck
}

func (v *Validation) OK() bool {
	if len(v.Mismatches) > 0 || len(v.Problems) > 0 {
		return false
	}
	for _, s := range v.Seams {
		if len(s.Problems) > 0 {
			return false
		}
	}
	return true
}

// Err returns ErrValidationFailed when any check failed.
func (v *Validation) Err() error {
	if v.OK() {
		return nil
	}
	return ErrValidationFailed
}

// Validate computes the energy of every pixel of g, compares it with ref
// and checks both seams. ref may be nil, in which case only the seams are
// checked.
func Validate(g *grid.Grid, fn energy.Func, ref *Reference) (*Validation, error) {
	surface, err := energy.NewSurface(g, fn)
	if err != nil {
		return nil, err
	}

	v := &Validation{Energy: make([][]float64, surface.Height)}
	for y := range v.Energy {
		v.Energy[y] = make([]float64, surface.Width)
		for x := range v.Energy[y] {
			// Округляем до двух знаков, как в эталоне
			v.Energy[y][x] = math.Round(surface.At(x, y)*100) / 100
		}
	}

	if ref != nil && ref.Energy != nil {
		v.compareEnergy(ref.Energy)
	}

	for _, o := range []seam.Orientation{seam.Vertical, seam.Horizontal} {
		var want []int
		if ref != nil {
			want = ref.VerticalSeam
			if o == seam.Horizontal {
				want = ref.HorizontalSeam
			}
		}
		check, err := checkSeam(surface, o, want)
		if err != nil {
			return nil, err
		}
		v.Seams = append(v.Seams, check)
	}
	return v, nil
}

func (v *Validation) compareEnergy(want [][]float64) {
	if len(want) != len(v.Energy) {
		v.Problems = append(v.Problems, fmt.Sprintf("reference has %d rows, picture has %d", len(want), len(v.Energy)))
		return
	}
	for y, row := range want {
		if len(row) != len(v.Energy[y]) {
			v.Problems = append(v.Problems, fmt.Sprintf("reference row %d has %d values, picture has %d", y, len(row), len(v.Energy[y])))
			return
		}
		for x, e := range row {
			if got := v.Energy[y][x]; got != e {
				v.Mismatches = append(v.Mismatches, Mismatch{X: x, Y: y, Want: e, Got: got})
			}
		}
	}
}

func checkSeam(s *energy.Surface, o seam.Orientation, want []int) (SeamCheck, error) {
	found, cost, err := seam.Find(s, o)
	if err != nil {
		return SeamCheck{}, err
	}
	check := SeamCheck{Orientation: o, Seam: found, Cost: cost}

	length, bound := s.Height, s.Width
	if o == seam.Horizontal {
		length, bound = s.Width, s.Height
	}
	if err := seam.Validate(found, length, bound); err != nil {
		check.Problems = append(check.Problems, err.Error())
	}

	best, err := seam.Exhaustive(s, o)
	switch {
	case errors.Is(err, seam.ErrTooLarge):
	case err != nil:
		return SeamCheck{}, err
	default:
		check.Exhaustive = true
		check.Optimum = best
		if cost > best+1e-9 {
			check.Problems = append(check.Problems, fmt.Sprintf("seam energy %.2f exceeds optimum %.2f", cost, best))
		}
	}

	if want != nil && !slices.Equal(found, want) {
		check.Problems = append(check.Problems, fmt.Sprintf("expected seam %v got %v", want, found))
	}
	return check, nil
}

// Print writes the energy matrix and every failed check to w.
func (v *Validation) Print(w io.Writer) {
	fmt.Fprintln(w, "Validating energy calculated for each pixel.")
	for _, row := range v.Energy {
		for _, e := range row {
			fmt.Fprintf(w, "%9.2f ", e)
		}
		fmt.Fprintln(w)
	}
	for _, m := range v.Mismatches {
		fmt.Fprintf(w, "For pixel (%d, %d) expected energy value %f got %f\n", m.X, m.Y, m.Want, m.Got)
	}
	for _, p := range v.Problems {
		fmt.Fprintf(w, "[!] %s\n", p)
	}
	for _, s := range v.Seams {
		fmt.Fprintf(w, "%s seam: %v energy %.2f", s.Orientation, s.Seam, s.Cost)
		if s.Exhaustive {
			fmt.Fprintf(w, " (optimum %.2f)", s.Optimum)
		}
		fmt.Fprintln(w)
		for _, p := range s.Problems {
			fmt.Fprintf(w, "[!] %s\n", p)
		}
	}
}

// ValidateFile checks the picture named by the reference at refPath.
// fallbackInput is used when the reference names no input.
func ValidateFile(refPath, fallbackInput string, dpi int, fn energy.Func) (*Validation, error) {
	ref, err := ReadReference(refPath)
	if err != nil {
		return nil, err
	}
	input := ref.Input
	if input == "" {
		input = fallbackInput
	}
	if input == "" {
		return nil, fmt.Errorf("reference %s names no input", refPath)
	}

	src, err := source.Open(input)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	g, err := source.LoadGrid(src, ref.Page, dpi)
	if err != nil {
		return nil, err
	}
	return Validate(g, fn, ref)
}
