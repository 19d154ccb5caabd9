// Copyright 2025 The Gopave Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"errors"

	"github.com/cpmech/gosl/io"
	"github.com/go-playground/validator/v10"
)

// Kind identifies which admissibility rule an input violates
type Kind string

// stable validation failure kinds
const (
	BadLayerCount          Kind = "bad_layer_count"
	VectorLengthMismatch   Kind = "vector_length_mismatch"
	PoissonOutOfRange      Kind = "poisson_out_of_range"
	ModulusOutOfRange      Kind = "modulus_out_of_range"
	ThicknessOutOfRange    Kind = "thickness_out_of_range"
	InterfaceCodeUnknown   Kind = "interface_code_unknown"
	WheelTypeUnknown       Kind = "wheel_type_unknown"
	PressureOutOfRange     Kind = "pressure_out_of_range"
	ContactRadiusOutOfRange Kind = "contact_radius_out_of_range"
	TwinSpacingOutOfRange  Kind = "twin_spacing_out_of_range"
	ModulusContrastExcessive Kind = "modulus_contrast_excessive"
	LayerTooThin           Kind = "layer_too_thin"
)

// InvalidInputError reports the first admissibility rule violated by a Job
type InvalidInputError struct {
	Kind   Kind   // which rule
	Detail string // offending values
}

// Error returns a message with the kind and the offending values
func (o *InvalidInputError) Error() string {
	return io.Sf("invalid input (%s): %s", o.Kind, o.Detail)
}

// fieldKinds maps Job struct fields to failure kinds for tag violations
var fieldKinds = map[string]Kind{
	"Nlayers":     BadLayerCount,
	"Poisson":     PoissonOutOfRange,
	"Young":       ModulusOutOfRange,
	"Thick":       ThicknessOutOfRange,
	"Iface":       InterfaceCodeUnknown,
	"Wheel":       WheelTypeUnknown,
	"PressureMPa": PressureOutOfRange,
	"PressureKPa": PressureOutOfRange,
	"Radius":      ContactRadiusOutOfRange,
	"Spacing":     TwinSpacingOutOfRange,
}

// jobValidator checks the declarative range tags on Job
var jobValidator = validator.New()

// Validate checks all admissibility rules and returns an
// *InvalidInputError describing the first violated one.
// The rules are checked in a fixed order so the reported kind is
// deterministic for a given job.
func (o *Job) Validate() error {

	// vector lengths first: the range tags assume consistent arrays
	n := o.Nlayers
	if n < MinLayers || n > MaxLayers {
		return &InvalidInputError{BadLayerCount, io.Sf("nlayers=%d must be within [%d,%d]", n, MinLayers, MaxLayers)}
	}
	if len(o.Poisson) != n || len(o.Young) != n || len(o.Thick) != n {
		return &InvalidInputError{VectorLengthMismatch,
			io.Sf("len(poisson)=%d len(young)=%d len(thick)=%d must all equal nlayers=%d",
				len(o.Poisson), len(o.Young), len(o.Thick), n)}
	}
	if len(o.Iface) != n-1 {
		return &InvalidInputError{VectorLengthMismatch,
			io.Sf("len(iface)=%d must equal nlayers-1=%d", len(o.Iface), n-1)}
	}

	// declarative scalar ranges
	if err := jobValidator.Struct(o); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			kind, ok := fieldKinds[fe.StructField()]
			if !ok {
				kind = VectorLengthMismatch
			}
			return &InvalidInputError{kind, io.Sf("field %s: value %v violates rule %q", fe.StructField(), fe.Value(), fe.Tag())}
		}
		return &InvalidInputError{VectorLengthMismatch, err.Error()}
	}

	// pressure: exactly one of the two unit fields
	if o.PressureMPa > 0 && o.PressureKPa > 0 {
		return &InvalidInputError{PressureOutOfRange,
			io.Sf("pressure_mpa=%g and pressure_kpa=%g are both set; exactly one is allowed", o.PressureMPa, o.PressureKPa)}
	}
	if o.Pressure() <= 0 || o.Pressure() > MaxPressureMPa {
		return &InvalidInputError{PressureOutOfRange, io.Sf("pressure=%g MPa must be within (0,%g]", o.Pressure(), MaxPressureMPa)}
	}

	// twin wheels need a spacing
	if o.Wheel == WheelTwin && (o.Spacing <= 0 || o.Spacing > MaxSpacingM) {
		return &InvalidInputError{TwinSpacingOutOfRange, io.Sf("spacing=%g m must be within (0,%g] for twin wheels", o.Spacing, MaxSpacingM)}
	}

	// non-platform thickness bounds; the platform thickness is symbolic
	for i := 0; i < n-1; i++ {
		if o.Thick[i] > MaxThicknessM {
			return &InvalidInputError{ThicknessOutOfRange,
				io.Sf("layer %d thickness=%g m exceeds %g m; model it as platform instead", i, o.Thick[i], MaxThicknessM)}
		}
	}
	for i := 0; i < n-1; i++ {
		if o.Thick[i] < MinThicknessM {
			return &InvalidInputError{LayerTooThin,
				io.Sf("layer %d thickness=%g mm is below the %g mm minimum", i, o.Thick[i]*1000, MinThicknessM*1000)}
		}
	}

	// modulus contrast guards the condition number of the system matrix
	emin, emax := o.Young[0], o.Young[0]
	for _, e := range o.Young {
		if e < emin {
			emin = e
		}
		if e > emax {
			emax = e
		}
	}
	if emax/emin > MaxContrast {
		return &InvalidInputError{ModulusContrastExcessive,
			io.Sf("modulus contrast %g:1 exceeds %g:1", emax/emin, MaxContrast)}
	}
	return nil
}
