// Copyright 2025 The Gopave Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package calc integrates the transform-domain responses back to
// physical space and composes the wheel and interface variants into
// the final solicitations.
package calc

import (
	"log/slog"
	"math"
	"time"

	"github.com/romeoolouro/gopave/hankel"
	"github.com/romeoolouro/gopave/inp"
)

// pointMap records where one requested depth reads its values from.
// At an interface the horizontal quantities come from the bottom face
// of the layer above (tension in bound layers) and the vertical ones
// from the top face of the layer below (compression on the platform).
type pointMap struct {
	z          float64
	horizontal int // station index for SigR/SigTeta/SigT/EpsT
	vertical   int // station index for SigZ/EpsZ/W
}

// Calc computes the mechanical response of one validated job. A Calc
// is immutable after New and safe for concurrent Run calls.
type Calc struct {
	job *inp.Job
	log *slog.Logger

	// normalised geometry
	htot  float64   // total finite thickness H [m]
	lam   []float64 // [N-1] cumulative interface depths / H
	alpha float64   // contact radius / H
	rho1  float64   // curvature control offset / H

	offsets  []float64  // accumulation offsets / H: one for single, three for twin
	stations []statDesc // interface stations then extra depth stations
	points   []pointMap
	grid     *hankel.Grid
}

// New validates the job and prepares the integration grid and the
// station list. The job is not mutated.
func New(job *inp.Job, log *slog.Logger) (o *Calc, err error) {
	if err = job.Validate(); err != nil {
		return
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	o = &Calc{job: job, log: log}
	o.htot = inp.TotalDepth(job.Thick)
	depths := inp.CumulativeDepths(job.Thick)
	o.lam = make([]float64, job.Nlayers-1)
	for i := range o.lam {
		o.lam[i] = depths[i+1] / o.htot
	}
	o.alpha = job.Radius / o.htot

	// accumulation offsets and the curvature control offset
	if job.Wheel == inp.WheelSingle {
		o.offsets = []float64{0}
		o.rho1 = 3 * job.Radius / 10 / o.htot
	} else {
		d := job.Spacing
		o.offsets = []float64{0, d / 2 / o.htot, d / o.htot}
		o.rho1 = math.Sqrt((d/2)*(d/2)+(job.Radius/2)*(job.Radius/2)) / o.htot
	}

	// interface stations: top and bottom of every layer, platform top
	for i := 0; i < job.Nlayers; i++ {
		top := 0.0
		if i > 0 {
			top = o.lam[i-1]
		}
		o.stations = append(o.stations, statDesc{layer: i, L: top, surface: i == 0})
		if i < job.Nlayers-1 {
			o.stations = append(o.stations, statDesc{layer: i, L: o.lam[i]})
		}
	}

	// requested depths: reuse interface stations where they match,
	// otherwise append a dedicated station inside the owning layer
	const tol = 1e-9
	for _, z := range job.Zcoords {
		pm := pointMap{z: z}
		matched := false
		if z < tol {
			pm.horizontal, pm.vertical = 0, 0
			matched = true
		}
		for j := 1; j < job.Nlayers && !matched; j++ {
			if math.Abs(z-depths[j]) < tol {
				pm.horizontal = 2*(j-1) + 1 // bottom face of the layer above
				pm.vertical = 2 * j         // top face of the layer below
				matched = true
			}
		}
		if !matched {
			layer := job.Nlayers - 1
			for j := 0; j < job.Nlayers-1; j++ {
				if z < depths[j+1] {
					layer = j
					break
				}
			}
			o.stations = append(o.stations, statDesc{layer: layer, L: z / o.htot})
			pm.horizontal = len(o.stations) - 1
			pm.vertical = pm.horizontal
		}
		o.points = append(o.points, pm)
	}

	// quadrature grid anchored on the scaled Bessel zeros
	gridOffsets := append(append([]float64{}, o.offsets...), o.rho1)
	o.grid = hankel.NewGrid(o.alpha, gridOffsets, job.NiterClamped())
	o.log.Debug("integration grid ready", "nodes", o.grid.Size(), "alpha", o.alpha)
	return
}

// Run executes the computation and returns the immutable results. If
// any interface is semi-bonded the whole pipeline runs twice, once
// with every semi-bonded interface forced bonded and once forced
// unbonded, and the outputs are averaged.
func (o *Calc) Run() (res *Results, err error) {
	t0 := time.Now()
	o.log.Info("computation started", "layers", o.job.Nlayers, "wheel", o.job.Wheel, "solver", o.job.Solver)

	variants := o.interfaceVariants()
	var blended *runOutput
	var warns []string
	for _, iface := range variants {
		out, w, e := o.runVariant(iface)
		if e != nil {
			return nil, e
		}
		warns = append(warns, w...)
		if blended == nil {
			blended = out
			continue
		}
		for si := range o.stations {
			blended.SigZ[si] = (blended.SigZ[si] + out.SigZ[si]) / 2
			blended.SigR[si] = (blended.SigR[si] + out.SigR[si]) / 2
			blended.SigTeta[si] = (blended.SigTeta[si] + out.SigTeta[si]) / 2
			blended.SigT[si] = (blended.SigT[si] + out.SigT[si]) / 2
			blended.EpsZ[si] = (blended.EpsZ[si] + out.EpsZ[si]) / 2
			blended.EpsT[si] = (blended.EpsT[si] + out.EpsT[si]) / 2
			blended.W[si] = (blended.W[si] + out.W[si]) / 2
			blended.W1[si] = (blended.W1[si] + out.W1[si]) / 2
		}
	}
	for _, w := range warns {
		o.log.Warn("quadrature node skipped", "detail", w)
	}

	// assemble the rounded interface table
	res = &Results{Warnings: warns}
	depths := inp.CumulativeDepths(o.job.Thick)
	for si, st := range o.stations {
		if si >= 2*o.job.Nlayers-1 {
			break // extra depth stations are not part of the table
		}
		face := FaceTop
		z := depths[st.layer]
		if si%2 == 1 { // odd stations are bottom faces
			face = FaceBottom
			z = depths[st.layer+1]
		}
		s := Station{
			Layer: st.layer, Face: face, Z: z,
			SigZ: blended.SigZ[si], SigR: blended.SigR[si],
			SigTeta: blended.SigTeta[si], SigT: blended.SigT[si],
			EpsZ: blended.EpsZ[si], EpsT: blended.EpsT[si],
			W: blended.W[si], W1: blended.W1[si],
		}
		roundStation(&s)
		res.Stations = append(res.Stations, s)
	}

	// requested depths read from their mapped stations
	for _, pm := range o.points {
		h, v := pm.horizontal, pm.vertical
		pt := PointResult{
			Z:       pm.z,
			SigZ:    roundTo(blended.SigZ[v], 3),
			SigR:    roundTo(blended.SigR[h], 3),
			SigTeta: roundTo(blended.SigTeta[h], 3),
			SigT:    roundTo(blended.SigT[h], 3),
			EpsZ:    roundTo(blended.EpsZ[v], 1),
			EpsT:    roundTo(blended.EpsT[h], 1),
			W:       roundTo(blended.W[v], 2),
		}
		res.Points = append(res.Points, pt)
	}

	res.ElapsedMs = float64(time.Since(t0)) / float64(time.Millisecond)
	o.log.Info("computation finished", "elapsed_ms", res.ElapsedMs, "warnings", len(warns))
	return
}

// interfaceVariants resolves semi-bonded interfaces into the two
// extremal configurations; fully determined stacks yield one variant
func (o *Calc) interfaceVariants() [][]int {
	hasSemi := false
	for _, c := range o.job.Iface {
		if c == inp.SemiBonded {
			hasSemi = true
			break
		}
	}
	if !hasSemi {
		return [][]int{o.job.Iface}
	}
	bonded := make([]int, len(o.job.Iface))
	unbonded := make([]int, len(o.job.Iface))
	for i, c := range o.job.Iface {
		bonded[i] = c
		unbonded[i] = c
		if c == inp.SemiBonded {
			bonded[i] = inp.Bonded
			unbonded[i] = inp.Unbonded
		}
	}
	return [][]int{bonded, unbonded}
}

// Compute validates the job, runs the computation and returns the
// results in one call
func Compute(job *inp.Job, log *slog.Logger) (*Results, error) {
	c, err := New(job, log)
	if err != nil {
		return nil, err
	}
	return c.Run()
}
