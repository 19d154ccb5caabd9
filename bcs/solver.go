// Copyright 2025 The Gopave Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bcs

import (
	"log/slog"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Solver computes the layer coefficients for one Hankel parameter.
// The returned vector has length 4N-2: four coefficients (A,B,C,D) per
// non-platform layer followed by the two platform coefficients.
type Solver interface {
	SolveForM(m float64) (coefs []float64, err error)
	Name() string
}

// allocators holds all available solvers
var allocators = make(map[string]func(sys *System, log *slog.Logger) Solver)

// GetSolver returns a solver by name; name == "" selects "direct"
func GetSolver(name string, sys *System, log *slog.Logger) (Solver, error) {
	if name == "" {
		name = "direct"
	}
	alloc, ok := allocators[name]
	if !ok {
		return nil, chk.Err("bcs: unknown solver %q", name)
	}
	if log == nil {
		log = discard
	}
	return alloc(sys, log), nil
}

// SolveError reports a failed solve at one quadrature node
type SolveError struct {
	M        float64 // the Hankel parameter
	Residual float64 // residual norm of the equilibrated system
	Reason   string  // short description
}

// Error returns the failure description
func (o *SolveError) Error() string {
	return io.Sf("solve failed at m=%g (residual=%g): %s", o.M, o.Residual, o.Reason)
}

// discard drops all records; used when no sink is injected
var discard = slog.New(slog.DiscardHandler)
