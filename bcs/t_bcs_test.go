// Copyright 2025 The Gopave Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bcs

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
)

// threeLayers returns a typical asphalt/base/platform stack in
// normalised form
func threeLayers(iface0, iface1 int) *System {
	poisson := []float64{0.35, 0.35, 0.35}
	young := []float64{5500.0, 600.0, 50.0}
	lam := []float64{0.04 / 0.19, 1.0}
	return NewSystem(poisson, young, lam, []int{iface0, iface1})
}

func Test_system01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("system01. assembly shape and surface rows")

	sys := threeLayers(0, 0)
	chk.IntAssert(sys.Size(), 10)

	m := 2.5
	a := sys.Assemble(m)
	chk.IntAssert(len(a), 10)
	chk.IntAssert(len(a[0]), 10)

	// surface rows involve only the first layer's coefficients
	for j := 4; j < 10; j++ {
		chk.Scalar(tst, io.Sf("A[0][%d]", j), 1e-17, a[0][j], 0)
		chk.Scalar(tst, io.Sf("A[1][%d]", j), 1e-17, a[1][j], 0)
	}
	nu0 := 0.35
	chk.Scalar(tst, "A[0][0]", 1e-15, a[0][0], m*m)
	chk.Scalar(tst, "A[0][1]", 1e-15, a[0][1], m*(1-2*nu0))
	chk.Scalar(tst, "A[0][3]", 1e-15, a[0][3], -m*(1-2*nu0))
	chk.Scalar(tst, "A[1][0]", 1e-15, a[1][0], -m*m)

	// unit surface load on the right-hand side
	b := sys.Rhs()
	chk.Scalar(tst, "b[0]", 1e-17, b[0], 1)
	chk.Scalar(tst, "norm(b[1:])", 1e-17, la.VecNorm(b[1:]), 0)
}

func Test_system02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("system02. exponential clamping")

	sys := threeLayers(0, 0)

	// past the clamp threshold no entry may blow up
	m := 80.0 // m*lam(platform interface) = 80 > ExpClamp
	a := sys.Assemble(m)
	for i := range a {
		for j := range a[i] {
			if v := math.Abs(a[i][j]); v > 1e13 {
				tst.Errorf("entry A[%d][%d]=%g escaped the clamp", i, j, a[i][j])
				return
			}
		}
	}
}

func Test_direct01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("direct01. equilibrated LU solve")

	sys := threeLayers(0, 0)
	solver, err := GetSolver("direct", sys, nil)
	if err != nil {
		tst.Errorf("%v", err)
		return
	}

	for _, m := range []float64{0.5, 2.0, 8.0, 25.0, 120.0} {
		x, err := solver.SolveForM(m)
		if err != nil {
			tst.Errorf("m=%g: %v", m, err)
			return
		}
		chk.IntAssert(len(x), 10)
		for i, v := range x {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				tst.Errorf("m=%g: coefficient %d is not finite", m, i)
				return
			}
		}

		// the solution satisfies the raw system
		a := sys.Assemble(m)
		b := sys.Rhs()
		res := make([]float64, len(b))
		la.MatVecMul(res, 1, a, x)
		for i := range res {
			res[i] -= b[i]
		}
		rnorm := la.VecNorm(res)
		io.Pforan("m=%8g  residual = %g\n", m, rnorm)
		if rnorm > 1e-5 {
			tst.Errorf("m=%g: raw residual %g too large", m, rnorm)
			return
		}
	}
}

func Test_direct02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("direct02. continuity of the solved coefficients")

	// with a bonded stack the vertical stress and displacement rows
	// must match across each interface; verify via the block formulas
	sys := threeLayers(0, 0)
	solver, _ := GetSolver("direct", sys, nil)
	m := 3.0
	x, err := solver.SolveForM(m)
	if err != nil {
		tst.Errorf("%v", err)
		return
	}

	for j := 0; j < sys.N-1; j++ {
		up := layerFace(m, sys.Lam[j], sys.Nu[j], sys.Young[j], 0, true)
		lo := layerFace(m, sys.Lam[j], sys.Nu[j+1], sys.Young[j+1], 0, false)
		ncols := 4
		if j == sys.N-2 {
			ncols = 2
		}
		for r := 0; r < 4; r++ {
			vu, vl := 0.0, 0.0
			for c := 0; c < 4; c++ {
				vu += up[r][c] * x[4*j+c]
			}
			for c := 0; c < ncols; c++ {
				vl += lo[r][c] * x[4*(j+1)+c]
			}
			chk.Scalar(tst, io.Sf("interface %d row %d", j, r), 1e-6, vu, vl)
		}
	}
}

func Test_direct03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("direct03. unbonded interface releases the shear")

	sys := threeLayers(0, 2)
	solver, _ := GetSolver("direct", sys, nil)
	m := 3.0
	x, err := solver.SolveForM(m)
	if err != nil {
		tst.Errorf("%v", err)
		return
	}

	// shear of the upper layer vanishes on the unbonded interface
	j := 1
	up := layerFace(m, sys.Lam[j], sys.Nu[j], sys.Young[j], 2, true)
	tau := 0.0
	for c := 0; c < 4; c++ {
		tau += up[2][c] * x[4*j+c]
	}
	chk.Scalar(tst, "tau upper face", 1e-6, tau, 0)

	// and of the lower layer too
	lo := layerFace(m, sys.Lam[j], sys.Nu[j+1], sys.Young[j+1], 2, false)
	tau = 0.0
	for c := 0; c < 2; c++ {
		tau += lo[3][c] * x[4*(j+1)+c]
	}
	chk.Scalar(tst, "tau lower face", 1e-6, tau, 0)
}

func Test_trmm01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("trmm01. bounded transmission solver")

	sys := threeLayers(0, 0)
	solver, err := GetSolver("trmm", sys, nil)
	if err != nil {
		tst.Errorf("%v", err)
		return
	}

	for _, m := range []float64{1.0, 10.0, 100.0, 1000.0} {
		x, err := solver.SolveForM(m)
		if err != nil {
			tst.Errorf("m=%g: %v", m, err)
			return
		}
		for i, v := range x {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				tst.Errorf("m=%g: coefficient %d is not finite", m, i)
				return
			}
		}
		// growing modes are excluded by construction
		for i := 0; i < sys.N-1; i++ {
			chk.Scalar(tst, io.Sf("m=%g C[%d]", m, i), 1e-17, x[4*i+2], 0)
			chk.Scalar(tst, io.Sf("m=%g D[%d]", m, i), 1e-17, x[4*i+3], 0)
		}
	}

	// layer matrices stay within the boundedness gate for any m*h
	tr := buildTR(5000.0, 1.0, 0.35, 5500.0)
	if !tr.stable() {
		tst.Errorf("layer matrices failed the boundedness gate")
	}
}

func Test_trmm02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("trmm02. deep-decay agreement with the direct solver")

	// far past the clamp threshold both solvers must agree that the
	// platform response is numerically zero
	sys := threeLayers(0, 0)
	direct, _ := GetSolver("direct", sys, nil)
	trmm, _ := GetSolver("trmm", sys, nil)

	m := 900.0 // beyond StableThreshold
	xd, errd := direct.SolveForM(m)
	xt, errt := trmm.SolveForM(m)
	if errt != nil {
		tst.Errorf("trmm: %v", errt)
		return
	}

	// platform decaying amplitudes at depth 1: exp(-900) kills both
	pi := 4 * (sys.N - 1)
	decay := math.Exp(-m * sys.Lam[sys.N-2])
	if errd == nil {
		chk.Scalar(tst, "platform response (direct)", 1e-12, xd[pi]*decay, 0)
	}
	chk.Scalar(tst, "platform response (trmm)", 1e-12, xt[pi]*decay, 0)
}

func Test_solver01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("solver01. registry")

	sys := threeLayers(0, 0)
	if _, err := GetSolver("nosuch", sys, nil); err == nil {
		tst.Errorf("expected an error for an unknown solver name")
	}
	s, err := GetSolver("", sys, nil)
	if err != nil {
		tst.Errorf("%v", err)
		return
	}
	chk.StrAssert(s.Name(), "direct")
}
