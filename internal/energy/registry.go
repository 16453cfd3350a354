package energy

import (
	"errors"
	"fmt"
)

// ErrUnknownVariant is returned by New for an unsupported energy name.
var ErrUnknownVariant = errors.New("energy: unknown variant")

const (
	VariantDualGradient = "dual-gradient"
	VariantSobel        = "sobel"
)

// New returns the energy function registered under variant.
// The empty string selects the dual-gradient model.
func New(variant string) (Func, error) {
	switch variant {
	case VariantDualGradient, "":
		return DualGradient, nil
	case VariantSobel:
		return Sobel, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, variant)
	}
}

// Variants lists the registered variant names.
func Variants() []string {
	return []string{VariantDualGradient, VariantSobel}
}
