// Copyright 2025 The Gopave Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hankel

import (
	"sort"

	"github.com/cpmech/gosl/chk"
)

// four-point Gauss-Legendre rule on [-1,1]
var (
	gaussPoints  = []float64{-0.86114, -0.33998, 0.33998, 0.86114}
	gaussWeights = []float64{0.34786, 0.65215, 0.65215, 0.34786}
)

// TinyOffset replaces a zero radial offset so the 1/r branch of the
// tangential kernel stays finite
const TinyOffset = 1e-6

// Grid holds the nodes and weights of the quadrature over m in [0,inf),
// in the normalised variable m*H. Both slices are sorted by M.
type Grid struct {
	M []float64 // nodes
	W []float64 // weights
}

// NewGrid builds the integration grid.
//  alpha   -- normalised contact radius a/H
//  offsets -- normalised radial observation offsets r/H; zeros are
//             replaced by TinyOffset
//  niter   -- breakpoint budget; the breakpoint set is truncated to
//             niter+3 values
// The breakpoints are {0} U {j0n/offset} U {j1n/alpha}. The first panel
// is subdivided in six, the second in two; the remaining breakpoints
// bound one panel each. Every panel carries four Gauss-Legendre nodes.
func NewGrid(alpha float64, offsets []float64, niter int) (o *Grid) {

	if alpha <= 0 {
		chk.Panic("hankel: normalised contact radius must be positive. alpha=%g is invalid", alpha)
	}

	// breakpoint set anchored on the scaled Bessel zeros
	breaks := []float64{0}
	for _, r := range offsets {
		if r == 0 {
			r = TinyOffset
		}
		for _, z := range j0zeros {
			breaks = append(breaks, z/r)
		}
	}
	for _, z := range j1zeros {
		breaks = append(breaks, z/alpha)
	}
	sort.Float64s(breaks)
	breaks = dedup(breaks)
	if len(breaks) < 3 {
		chk.Panic("hankel: %d breakpoints are not enough to build panels", len(breaks))
	}
	if max := niter + 3; len(breaks) > max {
		breaks = breaks[:max]
	}

	// panel endpoints: refine the first two intervals where the
	// integrand oscillates fastest
	const eps = 1e-5
	d1 := (breaks[1]-breaks[0])/6.0 - eps
	d2 := (breaks[2]-breaks[1])/2.0 - eps
	var ends []float64
	for v := breaks[0]; v < breaks[1]; v += d1 {
		ends = append(ends, v)
	}
	for v := breaks[1] + d2; v < breaks[2]; v += d2 {
		ends = append(ends, v)
	}
	ends = append(ends, breaks[3:]...)

	// four Gauss-Legendre nodes per panel
	o = new(Grid)
	for i := 0; i < len(ends)-1; i++ {
		mid := (ends[i] + ends[i+1]) / 2.0
		hlf := (ends[i+1] - ends[i]) / 2.0
		for j := 0; j < 4; j++ {
			o.M = append(o.M, mid+gaussPoints[j]*hlf)
			o.W = append(o.W, gaussWeights[j]*hlf)
		}
	}

	// keep nodes ascending so accumulation order is deterministic
	idx := make([]int, len(o.M))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return o.M[idx[a]] < o.M[idx[b]] })
	m := make([]float64, len(idx))
	w := make([]float64, len(idx))
	for i, j := range idx {
		m[i] = o.M[j]
		w[i] = o.W[j]
	}
	o.M, o.W = m, w
	return
}

// Size returns the number of quadrature nodes
func (o *Grid) Size() int { return len(o.M) }

// dedup removes exact duplicates from a sorted slice
func dedup(s []float64) []float64 {
	out := s[:1]
	for _, v := range s[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}
