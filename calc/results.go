// Copyright 2025 The Gopave Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package calc

import (
	"math"

	"github.com/cpmech/gosl/io"
)

// faces of a layer at its interfaces
const (
	FaceTop    = "top"
	FaceBottom = "bottom"
)

// Station holds the solicitations at the top or bottom face of one
// layer under the load axis. Stresses are in MPa (compression
// positive on sigma_z), strains in microstrain, deflections in mm.
type Station struct {
	Layer int     // layer index, 0 = surface course
	Face  string  // "top" or "bottom"
	Z     float64 // physical depth [m]

	SigZ    float64 // vertical stress
	SigR    float64 // radial stress
	SigTeta float64 // tangential stress
	SigT    float64 // critical horizontal stress
	EpsZ    float64 // vertical strain
	EpsT    float64 // critical horizontal strain
	W       float64 // vertical deflection
	W1      float64 // deflection at the curvature control offset
}

// PointResult holds the solicitations at one requested depth
type PointResult struct {
	Z       float64 // requested depth [m]
	SigZ    float64
	SigR    float64
	SigTeta float64
	SigT    float64
	EpsZ    float64
	EpsT    float64
	W       float64
}

// Results is the immutable outcome of one Run
type Results struct {
	Stations  []Station     // 2N-1 interface stations, surface downward
	Points    []PointResult // one entry per requested depth, same order
	ElapsedMs float64       // wall-clock duration of the computation
	Warnings  []string      // skipped-node diagnostics; never fatal
}

// String returns a compact multi-line summary of the interface table
func (o *Results) String() (l string) {
	l = io.Sf("%3s %-6s %8s %8s %8s %9s %9s %8s\n", "lay", "face", "z[m]", "sigZ", "sigT", "epsZ", "epsT", "w[mm]")
	for _, s := range o.Stations {
		l += io.Sf("%3d %-6s %8.3f %8.3f %8.3f %9.1f %9.1f %8.2f\n",
			s.Layer, s.Face, s.Z, s.SigZ, s.SigT, s.EpsZ, s.EpsT, s.W)
	}
	return
}

// roundTo rounds x to the given number of decimal places
func roundTo(x float64, decimals int) float64 {
	mult := math.Pow(10, float64(decimals))
	return math.Round(x*mult) / mult
}

// roundStation applies the reporting precision: stresses to 3 decimals
// [MPa], strains to 1 decimal [microstrain], deflections to 2 [mm]
func roundStation(s *Station) {
	s.SigZ = roundTo(s.SigZ, 3)
	s.SigR = roundTo(s.SigR, 3)
	s.SigTeta = roundTo(s.SigTeta, 3)
	s.SigT = roundTo(s.SigT, 3)
	s.EpsZ = roundTo(s.EpsZ, 1)
	s.EpsT = roundTo(s.EpsT, 1)
	s.W = roundTo(s.W, 2)
	s.W1 = roundTo(s.W1, 2)
}
