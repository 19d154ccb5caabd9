// Copyright 2025 The Gopave Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from a (.pav) JSON file
package inp

import (
	"encoding/json"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// interface condition codes between a layer and the layer below it
const (
	Bonded     = 0 // full continuity of uz, ur, sigz and taurz
	SemiBonded = 1 // average of the bonded and unbonded solutions
	Unbonded   = 2 // uz and sigz continuous; taurz zero on both faces
)

// wheel type codes
const (
	WheelSingle = 1 // isolated wheel
	WheelTwin   = 2 // standard twin wheels
)

// practical admissibility bounds
const (
	MinLayers      = 2       // at least one course over the platform
	MaxLayers      = 20      // practical computation limit
	MaxYoungMPa    = 100000  // high-performance concrete
	MaxPressureMPa = 5.0     // extreme upper bound; heavy truck is 0.7-0.9
	MaxRadiusM     = 1.0     // truck tire is 0.10-0.15
	MaxSpacingM    = 2.0     // twin wheel centre-to-centre
	MaxThicknessM  = 10.0    // thicker courses belong to the platform
	MinThicknessM  = 0.01    // thinner layers destabilise the system matrix
	MaxContrast    = 10000.0 // max(E)/min(E) condition-number guard
)

// Job holds the definition of one pavement response computation
type Job struct {

	// global information
	Desc string `json:"desc"` // description of the job

	// layer stack, surface down to the semi-infinite platform
	Nlayers int       `json:"nlayers" validate:"gte=2,lte=20"`        // number of layers including the platform
	Poisson []float64 `json:"poisson" validate:"dive,gt=0,lt=0.5"`    // Poisson ratio of each layer
	Young   []float64 `json:"young" validate:"dive,gt=0,lte=100000"`  // Young modulus of each layer [MPa]
	Thick   []float64 `json:"thick" validate:"dive,gte=0"`            // thickness of each layer [m]; platform value is symbolic
	Iface   []int     `json:"iface" validate:"dive,gte=0,lte=2"`      // interface with layer below: 0=bonded 1=semi-bonded 2=unbonded

	// load
	Wheel       int     `json:"wheel" validate:"oneof=1 2"`           // 1=single 2=twin
	PressureMPa float64 `json:"pressure_mpa" validate:"gte=0,lte=5"`  // contact pressure [MPa]; exclusive with pressure_kpa
	PressureKPa float64 `json:"pressure_kpa" validate:"gte=0,lte=5000"` // contact pressure [kPa]; exclusive with pressure_mpa
	Radius      float64 `json:"radius" validate:"gt=0,lte=1"`         // contact radius [m]
	Spacing     float64 `json:"spacing" validate:"gte=0,lte=2"`       // twin wheel centre-to-centre distance [m]

	// observations
	Zcoords []float64 `json:"zcoords" validate:"dive,gte=0"` // requested observation depths [m]

	// numerical parameters
	Niter     int    `json:"niter"`     // quadrature breakpoint budget; default 40, clamped to [25,50]
	Solver    string `json:"solver"`    // "direct" or "trmm"; default "direct"
	CheckCond bool   `json:"checkcond"` // estimate the condition number at every node (costly)
}

// SetDefaults sets default values
func (o *Job) SetDefaults() {
	o.Nlayers = 3
	o.Poisson = []float64{0.35, 0.35, 0.35}
	o.Young = []float64{5000, 200, 50}
	o.Thick = []float64{0.15, 0.30, 0}
	o.Iface = []int{Bonded, Bonded}
	o.Wheel = WheelSingle
	o.PressureMPa = 0.662
	o.Radius = 0.125
	o.Niter = 40
	o.Solver = "direct"
}

// Pressure returns the contact pressure in MPa regardless of which
// field the job carries
func (o *Job) Pressure() float64 {
	if o.PressureKPa > 0 {
		return o.PressureKPa / 1000.0
	}
	return o.PressureMPa
}

// NiterClamped returns the breakpoint budget restricted to the
// admissible range
func (o *Job) NiterClamped() int {
	n := o.Niter
	if n == 0 {
		n = 40
	}
	if n < 25 {
		n = 25
	}
	if n > 50 {
		n = 50
	}
	return n
}

// CumulativeDepths returns the interface depths [0, h0, h0+h1, ...]
// excluding the symbolic platform thickness
func CumulativeDepths(thick []float64) (depths []float64) {
	depths = make([]float64, len(thick))
	for i := 0; i < len(thick)-1; i++ {
		depths[i+1] = depths[i] + thick[i]
	}
	return
}

// TotalDepth returns the depth of the last finite interface
func TotalDepth(thick []float64) (sum float64) {
	for i := 0; i < len(thick)-1; i++ {
		sum += thick[i]
	}
	return
}

// ReadJob reads and validates a job input file; panics on failure
func ReadJob(fnamepath string) *Job {

	// read file
	b := io.ReadFile(fnamepath)

	// decode
	var job Job
	job.SetDefaults()
	err := json.Unmarshal(b, &job)
	if err != nil {
		chk.Panic("ReadJob: cannot unmarshal job file %q:\n%v", fnamepath, err)
	}
	if job.Desc == "" {
		job.Desc = io.Sf("job %s", filepath.Base(fnamepath))
	}

	// validate
	if err = job.Validate(); err != nil {
		chk.Panic("ReadJob: invalid job file %q:\n%v", fnamepath, err)
	}
	return &job
}
