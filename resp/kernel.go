// Copyright 2025 The Gopave Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package resp evaluates the transform-domain response integrands of
// one layer at one observation depth. Every piece is a first-degree
// polynomial in the layer coefficients (A,B,C,D); the Bessel weights
// and the physical load scale are applied by the integrator.
package resp

import (
	"math"

	"github.com/romeoolouro/gopave/bcs"
)

// Coefs holds the four Burmister coefficients of one layer
type Coefs struct {
	A, B, C, D float64
}

// LayerCoefs extracts the coefficients of layer i from the solution
// vector of the boundary system. The platform carries only the two
// decaying modes.
func LayerCoefs(x []float64, i, nlayers int) (c Coefs) {
	c.A = x[4*i]
	c.B = x[4*i+1]
	if i < nlayers-1 {
		c.C = x[4*i+2]
		c.D = x[4*i+3]
	}
	return
}

// Integrand holds the values of all response integrands at one
// (m, depth) pair:
//   SigZ        -- vertical stress, weighted by J0(m*r)*J1(m*a)
//   SigR1       -- radial stress J0-part
//   SigR2       -- radial stress J1/r-part (subtracted)
//   Teta1       -- tangential stress J0-part
//   Teta2       -- tangential stress J1/r-part (added)
//   Wi          -- interior vertical displacement, weighted by J1(m*a)/m
//   W           -- surface vertical displacement (closed surface form)
type Integrand struct {
	SigZ  float64
	SigR1 float64
	SigR2 float64
	Teta1 float64
	Teta2 float64
	Wi    float64
	W     float64
}

// Eval computes all integrand pieces for one layer at normalised depth
// L. Terms carrying exp(+m*L) are clamped past the overflow threshold,
// matching the clamping used during assembly.
func Eval(m, L, nu float64, c Coefs) (f Integrand) {
	em := math.Exp(-m * L)
	ep := 0.0
	if m*L <= bcs.ExpClamp {
		ep = math.Exp(m * L)
	}
	ae := c.A * em
	be := c.B * em
	ce := c.C * ep
	de := c.D * ep

	f.SigZ = m*m*ae + m*(1-2*nu+m*L)*be + m*m*ce - m*(1-2*nu-m*L)*de
	f.SigR1 = m*m*ae - m*(1+2*nu-m*L)*be + m*m*ce + m*(1+2*nu+m*L)*de
	f.SigR2 = m*m*ae - m*(1-m*L)*be + m*m*ce + m*(1+m*L)*de
	f.Teta1 = -2*nu*m*be + 2*nu*m*de
	f.Teta2 = f.SigR2
	f.Wi = -m*m*ae - m*(2-4*nu+m*L)*be + m*m*ce - m*(2-4*nu-m*L)*de
	f.W = 1 - 2*m*m*c.C + 2*m*(1-2*nu)*c.D
	return
}
