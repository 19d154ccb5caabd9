// Copyright 2025 The Gopave Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ana provides closed-form solutions used to verify the
// numerical engine
package ana

import "math"

// CircularLoadHalfSpace is the Boussinesq solution for a uniform
// circular pressure on a homogeneous elastic half-space, evaluated on
// the load axis
type CircularLoadHalfSpace struct {
	E  float64 // Young modulus [MPa]
	Nu float64 // Poisson ratio
	P  float64 // contact pressure [MPa]
	A  float64 // contact radius [m]
}

// StressZ returns the vertical stress at depth z on the axis [MPa],
// compression positive
func (o CircularLoadHalfSpace) StressZ(z float64) float64 {
	if z == 0 {
		return o.P
	}
	c := z * z / (o.A*o.A + z*z)
	return o.P * (1 - c*math.Sqrt(c))
}

// StressR returns the radial (= tangential) stress at depth z on the
// axis [MPa], compression positive
func (o CircularLoadHalfSpace) StressR(z float64) float64 {
	s := math.Sqrt(o.A*o.A + z*z)
	c := z * z / (o.A*o.A + z*z)
	return o.P / 2 * ((1+2*o.Nu) - 2*(1+o.Nu)*z/s + c*math.Sqrt(c))
}

// Deflection returns the vertical displacement at depth z on the axis
// [mm], downward positive
func (o CircularLoadHalfSpace) Deflection(z float64) float64 {
	t := z / o.A
	s := math.Sqrt(1 + t*t)
	u := o.P * (1 + o.Nu) * o.A / o.E * ((1-2*o.Nu)*(s-t) + 1/s)
	return u * 1000
}

// SurfaceDeflection returns the axis deflection at the surface [mm]
func (o CircularLoadHalfSpace) SurfaceDeflection() float64 {
	return 2 * (1 - o.Nu*o.Nu) * o.P * o.A / o.E * 1000
}

// StrainZ returns the vertical strain at depth z on the axis
// [microstrain] from the axis stresses and Hooke's law
func (o CircularLoadHalfSpace) StrainZ(z float64) float64 {
	sz := o.StressZ(z)
	sr := o.StressR(z)
	return (sz - 2*o.Nu*sr) / o.E * 1e6
}
