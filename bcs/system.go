// Copyright 2025 The Gopave Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package bcs assembles and solves the boundary-condition system that
// determines the Burmister layer coefficients for one Hankel parameter.
// All quantities are normalised: the Hankel parameter is m*H and the
// interface depths are fractions of the total finite thickness H.
package bcs

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// ExpClamp is the threshold on m*h beyond which entries carrying
// exp(+m*h) are set to zero. Past this point those terms would dominate
// the matrix by more than thirteen orders of magnitude and the modes
// they represent cannot be resolved in double precision.
const ExpClamp = 30.0

// StableThreshold is the m*h value beyond which the transmission and
// reflection solver is preferred over the direct one
const StableThreshold = 700.0

// System holds one layer stack in normalised transform-domain form.
// Layer i < N-1 contributes four coefficients (A,B,C,D); the platform
// contributes two (its growing modes are excluded at infinity).
type System struct {
	N     int       // number of layers including the platform
	Nu    []float64 // [N] Poisson ratio per layer
	Young []float64 // [N] Young modulus per layer [MPa]
	Lam   []float64 // [N-1] normalised cumulative interface depths; Lam[N-2] == 1
	Iface []int     // [N-1] effective interface codes: Bonded or Unbonded only
}

// NewSystem builds a System from per-layer data. lam holds the
// normalised depth of the interface below each non-platform layer.
// Semi-bonded codes must be resolved by the caller before reaching
// this point.
func NewSystem(poisson, youngMPa, lam []float64, iface []int) (o *System) {
	n := len(poisson)
	chk.IntAssert(len(youngMPa), n)
	chk.IntAssert(len(lam), n-1)
	chk.IntAssert(len(iface), n-1)
	return &System{N: n, Nu: poisson, Young: youngMPa, Lam: lam, Iface: iface}
}

// Size returns the number of unknowns 4N-2
func (o *System) Size() int { return 4*o.N - 2 }

// expPair returns exp(-m*lam) and exp(+m*lam) with the growing factor
// clamped to zero past ExpClamp
func expPair(m, lam float64) (em, ep float64) {
	em = math.Exp(-m * lam)
	if m*lam > ExpClamp {
		return em, 0
	}
	return em, math.Exp(m * lam)
}

// Assemble fills the 4N-2 boundary-condition matrix for one Hankel
// parameter. Rows 0-1 impose the surface conditions (zero shear and
// the unit normal load whose physical scale enters after integration);
// each interface contributes four continuity rows according to its
// bonding code.
func (o *System) Assemble(m float64) (mat [][]float64) {
	k := o.Size()
	mat = la.MatAlloc(k, k)

	// surface: zero shear and unit vertical stress at z=0
	nu0 := o.Nu[0]
	mat[0][0] = m * m
	mat[0][1] = m * (1 - 2*nu0)
	mat[0][2] = m * m
	mat[0][3] = -m * (1 - 2*nu0)
	mat[1][0] = -m * m
	mat[1][1] = 2 * m * nu0
	mat[1][2] = m * m
	mat[1][3] = 2 * m * nu0

	// interface continuity blocks
	for j := 0; j < o.N-1; j++ {
		o.interfaceBlock(mat, j, m)
	}
	return
}

// Rhs fills the right-hand side: zeros except the unit surface load
func (o *System) Rhs() (b []float64) {
	b = make([]float64, o.Size())
	b[0] = 1
	return
}

// interfaceBlock writes the four continuity rows of interface j
// (between layers j and j+1) at rows 2+4j..5+4j. The upper layer block
// occupies its own four columns; the lower block enters negated so
// each row reads "upper quantity minus lower quantity equals zero".
func (o *System) interfaceBlock(mat [][]float64, j int, m float64) {
	lam := o.Lam[j]
	row := 2 + 4*j
	cu := 4 * j       // first column of the upper layer
	cl := 4 * (j + 1) // first column of the lower layer
	platform := j == o.N-2

	upper := layerFace(m, lam, o.Nu[j], o.Young[j], o.Iface[j], true)
	lower := layerFace(m, lam, o.Nu[j+1], o.Young[j+1], o.Iface[j], false)

	ncols := 4
	if platform {
		ncols = 2 // platform carries only the decaying modes
	}
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			mat[row+r][cu+c] = upper[r][c]
		}
		for c := 0; c < ncols; c++ {
			mat[row+r][cl+c] = -lower[r][c]
		}
	}
}

// layerFace evaluates the 4x4 continuity block of one layer at an
// interface. Row order: sigma_z, u_z, tau_rz, u_r for a bonded
// interface; for an unbonded one the shear rows are split so that the
// shear stress vanishes on both faces while u_r is free:
//   row0 sigma_z, row1 u_z, row2 tau(upper face)=0, row3 tau(lower face)=0
// Columns multiply (A, B, C, D); the compliance (1+nu)/E scales the
// displacement rows.
func layerFace(m, lam, nu, young float64, iface int, upper bool) (blk [4][4]float64) {
	em, ep := expPair(m, lam)
	c := (1 + nu) / young

	sigz := [4]float64{
		m * m * em,
		m * (1 - 2*nu + m*lam) * em,
		m * m * ep,
		-m * (1 - 2*nu - m*lam) * ep,
	}
	uz := [4]float64{
		m * m * c * em,
		m * (2 - 4*nu + m*lam) * c * em,
		-m * m * c * ep,
		m * (2 - 4*nu - m*lam) * c * ep,
	}
	tau := [4]float64{
		-m * m * em,
		m * (2*nu - m*lam) * em,
		m * m * ep,
		m * (2*nu + m*lam) * ep,
	}
	ur := [4]float64{
		m * m * c * em,
		-m * (1 - m*lam) * c * em,
		m * m * c * ep,
		m * (1 + m*lam) * c * ep,
	}

	if iface == 0 { // bonded: full continuity
		blk[0] = sigz
		blk[1] = uz
		blk[2] = tau
		blk[3] = ur
		return
	}
	// unbonded: sigma_z and u_z continuous; shear vanishes face by face
	blk[0] = sigz
	blk[1] = uz
	if upper {
		blk[2] = tau
	} else {
		blk[3] = tau
	}
	return
}
