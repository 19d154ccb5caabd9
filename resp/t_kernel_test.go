// Copyright 2025 The Gopave Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resp

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_kernel01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("kernel01. integrand structure")

	c := Coefs{A: 0.3, B: -0.2, C: 0.05, D: 0.01}
	m, L, nu := 2.0, 0.4, 0.35
	f := Eval(m, L, nu, c)

	// the two J1/r-weighted pieces share one formula
	chk.Scalar(tst, "Teta2 == SigR2", 1e-17, f.Teta2, f.SigR2)

	// the stress and interior displacement pieces are linear in the
	// coefficients
	c2 := Coefs{A: 2 * c.A, B: 2 * c.B, C: 2 * c.C, D: 2 * c.D}
	f2 := Eval(m, L, nu, c2)
	chk.Scalar(tst, "SigZ linear", 1e-13, f2.SigZ, 2*f.SigZ)
	chk.Scalar(tst, "SigR1 linear", 1e-13, f2.SigR1, 2*f.SigR1)
	chk.Scalar(tst, "Wi linear", 1e-13, f2.Wi, 2*f.Wi)

	// the surface form ignores the decaying amplitudes
	cAB := Coefs{A: 9.9, B: -7.7, C: c.C, D: c.D}
	fAB := Eval(m, 0, nu, cAB)
	fCD := Eval(m, 0, nu, Coefs{C: c.C, D: c.D})
	chk.Scalar(tst, "W from C,D only", 1e-15, fAB.W, fCD.W)
}

func Test_kernel02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("kernel02. clamped growing exponential")

	c := Coefs{A: 1, B: 1, C: 1, D: 1}
	f := Eval(50.0, 1.0, 0.35, c) // m*L = 50 > clamp threshold
	for _, v := range []float64{f.SigZ, f.SigR1, f.SigR2, f.Teta1, f.Teta2, f.Wi} {
		if math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v) > 1e10 {
			tst.Errorf("clamped integrand escaped: %g", v)
			return
		}
	}
}

func Test_kernel03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("kernel03. coefficient extraction")

	// three layers: 4+4+2 coefficients
	x := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	c0 := LayerCoefs(x, 0, 3)
	chk.Scalar(tst, "A0", 1e-17, c0.A, 1)
	chk.Scalar(tst, "D0", 1e-17, c0.D, 4)
	c2 := LayerCoefs(x, 2, 3)
	chk.Scalar(tst, "A2", 1e-17, c2.A, 9)
	chk.Scalar(tst, "B2", 1e-17, c2.B, 10)
	chk.Scalar(tst, "C2 (platform)", 1e-17, c2.C, 0)
	chk.Scalar(tst, "D2 (platform)", 1e-17, c2.D, 0)
}
