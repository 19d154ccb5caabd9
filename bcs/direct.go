// Copyright 2025 The Gopave Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bcs

import (
	"errors"
	"log/slog"
	"math"

	"github.com/cpmech/gosl/la"
	"gonum.org/v1/gonum/mat"
)

// tolerances of the direct solver
const (
	ResidualTol = 1e-6 // gate on the equilibrated residual norm
	CondWarn    = 1e12 // SVD condition estimate warning threshold
)

// Direct solves the clamped boundary-condition system by partial-pivot
// LU after two-sided L-infinity equilibration. The clamping happens in
// Assemble; the equilibration keeps the pivoting honest across the
// thirteen-plus orders of magnitude spanned by the raw entries.
type Direct struct {
	sys       *System
	log       *slog.Logger
	CheckCond bool // estimate the condition number of every node (costly)
}

// add solver to factory
func init() {
	allocators["direct"] = func(sys *System, log *slog.Logger) Solver {
		return &Direct{sys: sys, log: log}
	}
}

// Name returns "direct"
func (o *Direct) Name() string { return "direct" }

// SolveForM assembles, equilibrates and solves the system for one
// Hankel parameter, returning the 4N-2 coefficient vector
func (o *Direct) SolveForM(m float64) ([]float64, error) {
	k := o.sys.Size()
	a := o.sys.Assemble(m)
	b := o.sys.Rhs()

	// two-sided equilibration: rows and columns scaled to unit
	// L-infinity norm of the raw matrix
	rs := make([]float64, k)
	cs := make([]float64, k)
	for i := 0; i < k; i++ {
		max := 0.0
		for j := 0; j < k; j++ {
			if v := math.Abs(a[i][j]); v > max {
				max = v
			}
		}
		rs[i] = 1.0
		if max > 0 {
			rs[i] = 1.0 / max
		}
	}
	for j := 0; j < k; j++ {
		max := 0.0
		for i := 0; i < k; i++ {
			if v := math.Abs(a[i][j]); v > max {
				max = v
			}
		}
		cs[j] = 1.0
		if max > 0 {
			cs[j] = 1.0 / max
		}
	}

	// scaled system diag(r)*A*diag(c) * y = diag(r)*b
	sa := la.MatAlloc(k, k)
	sb := make([]float64, k)
	for i := 0; i < k; i++ {
		for j := 0; j < k; j++ {
			sa[i][j] = rs[i] * a[i][j] * cs[j]
		}
		sb[i] = rs[i] * b[i]
	}

	// partial-pivot LU on the equilibrated matrix
	dense := mat.NewDense(k, k, nil)
	for i := 0; i < k; i++ {
		dense.SetRow(i, sa[i])
	}
	var lu mat.LU
	lu.Factorize(dense)
	y := mat.NewVecDense(k, nil)
	if err := lu.SolveVecTo(y, false, mat.NewVecDense(k, sb)); err != nil {
		// an ill-conditioned solve still produces a candidate; the
		// residual gate below decides whether to keep it
		var cond mat.Condition
		if !errors.As(err, &cond) {
			return nil, &SolveError{M: m, Residual: math.Inf(1), Reason: "singular equilibrated matrix"}
		}
	}

	// residual of the equilibrated system
	res := make([]float64, k)
	yv := make([]float64, k)
	for i := 0; i < k; i++ {
		yv[i] = y.AtVec(i)
	}
	la.MatVecMul(res, 1, sa, yv)
	for i := 0; i < k; i++ {
		res[i] -= sb[i]
	}
	if rnorm := la.VecNorm(res); rnorm > ResidualTol {
		return nil, &SolveError{M: m, Residual: rnorm, Reason: "residual above tolerance"}
	}

	// optional conditioning estimate
	if o.CheckCond {
		if cond := condEstimate(dense); cond > CondWarn {
			o.log.Warn("ill-conditioned boundary system", "m", m, "cond", cond)
		}
	}

	// undo the column scaling
	x := make([]float64, k)
	for j := 0; j < k; j++ {
		x[j] = cs[j] * yv[j]
	}
	for _, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, &SolveError{M: m, Residual: math.Inf(1), Reason: "non-finite coefficient"}
		}
	}
	return x, nil
}

// condEstimate returns the 2-norm condition number from the singular
// values of a
func condEstimate(a *mat.Dense) float64 {
	var svd mat.SVD
	if !svd.Factorize(a, mat.SVDNone) {
		return math.Inf(1)
	}
	sv := svd.Values(nil)
	min := sv[len(sv)-1]
	if min < 1e-300 {
		return math.Inf(1)
	}
	return sv[0] / min
}
