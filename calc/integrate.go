// Copyright 2025 The Gopave Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package calc

import (
	"errors"
	"fmt"
	"math"
	"runtime"
	"sync"

	"github.com/romeoolouro/gopave/bcs"
	"github.com/romeoolouro/gopave/inp"
	"github.com/romeoolouro/gopave/resp"
)

// chunkSize fixes how many quadrature nodes one worker accumulates at
// a time. The reduction walks chunks in index order, so results are
// bit-identical for any worker count.
const chunkSize = 32

// ErrCalculation is wrapped by the error returned when every quadrature
// node of a run failed
var ErrCalculation = errors.New("calculation failed")

// indices into the per-station raw sums
const (
	iSigZ = iota // vertical stress, J0*J1 weighted
	iR1          // radial stress, J0 part
	iR2          // radial stress, J1/r part
	iT1          // tangential stress, J0 part
	iT2          // tangential stress, J1/r part
	iW           // deflection
	iW1          // deflection at the curvature offset
	nSums
)

// statDesc describes one accumulation station in normalised form
type statDesc struct {
	layer   int
	L       float64 // normalised depth z/H
	surface bool    // z == 0: closed surface forms apply
}

// rawSums holds the accumulated integrand sums: [offset][station][nSums]
type rawSums [][][nSums]float64

func newRawSums(noffsets, nstations int) (s rawSums) {
	s = make(rawSums, noffsets)
	for i := range s {
		s[i] = make([][nSums]float64, nstations)
	}
	return
}

func (o rawSums) add(other rawSums) {
	for i := range o {
		for j := range o[i] {
			for k := 0; k < nSums; k++ {
				o[i][j][k] += other[i][j][k]
			}
		}
	}
}

// runOutput holds the composed per-station solicitations of one
// pipeline run (one interface variant)
type runOutput struct {
	SigZ, SigR, SigTeta, SigT []float64
	EpsZ, EpsT                []float64
	W, W1                     []float64
}

func newRunOutput(n int) *runOutput {
	return &runOutput{
		SigZ: make([]float64, n), SigR: make([]float64, n),
		SigTeta: make([]float64, n), SigT: make([]float64, n),
		EpsZ: make([]float64, n), EpsT: make([]float64, n),
		W: make([]float64, n), W1: make([]float64, n),
	}
}

// runVariant executes the whole integration pipeline for one effective
// interface configuration and composes the wheel combination
func (o *Calc) runVariant(iface []int) (*runOutput, []string, error) {

	sys := bcs.NewSystem(o.job.Poisson, o.job.Young, o.lam, iface)
	solver, err := bcs.GetSolver(o.job.Solver, sys, o.log)
	if err != nil {
		return nil, nil, err
	}
	if d, ok := solver.(*bcs.Direct); ok {
		d.CheckCond = o.job.CheckCond
	}

	sums, warns, failed := o.accumulate(solver)
	if failed == o.grid.Size() {
		return nil, warns, fmt.Errorf("%w: all %d quadrature nodes failed", ErrCalculation, o.grid.Size())
	}

	// physical per-offset solicitations
	nst := len(o.stations)
	p := o.job.Pressure()
	alpha := o.alpha
	sigZ := make([][]float64, len(o.offsets))
	sigR := make([][]float64, len(o.offsets))
	sigTeta := make([][]float64, len(o.offsets))
	w := make([][]float64, len(o.offsets))
	w1 := make([][]float64, len(o.offsets))
	for oi, rho := range o.offsets {
		sigZ[oi] = make([]float64, nst)
		sigR[oi] = make([]float64, nst)
		sigTeta[oi] = make([]float64, nst)
		w[oi] = make([]float64, nst)
		w1[oi] = make([]float64, nst)
		for si, st := range o.stations {
			nu := o.job.Poisson[st.layer]
			young := o.job.Young[st.layer]
			s := &sums[oi][si]
			if st.surface {
				switch {
				case rho < alpha:
					sigZ[oi][si] = p
				case rho == alpha:
					sigZ[oi][si] = p / 2
				default:
					sigZ[oi][si] = 0
				}
				w[oi][si] = 2000 * p * o.job.Radius * s[iW] * (1 - nu*nu) / young
				w1[oi][si] = 2000 * p * o.job.Radius * s[iW1] * (1 - nu*nu) / young
			} else {
				sigZ[oi][si] = p * alpha * s[iSigZ]
				w[oi][si] = -1000 * p * o.job.Radius * s[iW] * (1 + nu) / young
				w1[oi][si] = -1000 * p * o.job.Radius * s[iW1] * (1 + nu) / young
			}
			sigR[oi][si] = -p * alpha * (s[iR1] - s[iR2])
			sigTeta[oi][si] = -p * alpha * (s[iT1] + s[iT2])
		}
	}

	// wheel composition
	out := newRunOutput(nst)
	if o.job.Wheel == inp.WheelSingle {
		for si, st := range o.stations {
			nu := o.job.Poisson[st.layer]
			young := o.job.Young[st.layer]
			sz, sr := sigZ[0][si], sigR[0][si]
			out.SigZ[si] = sz
			out.SigR[si] = sr
			out.SigTeta[si] = sr // axisymmetric axis: tangential equals radial
			out.SigT[si] = sr
			out.EpsZ[si] = (sz*1e6 - 2e6*nu*sr) / young
			out.EpsT[si] = (sr*1e6 - 1e6*nu*(sz+sr)) / young
			out.W[si] = w[0][si]
			out.W1[si] = w1[0][si]
		}
		return out, warns, nil
	}

	// twin wheels: on-axis (near+far) versus between-wheels (twice mid)
	for si, st := range o.stations {
		nu := o.job.Poisson[st.layer]
		young := o.job.Young[st.layer]

		sz13 := sigZ[0][si] + sigZ[2][si]
		sz22 := 2 * sigZ[1][si]
		sr13 := sigR[0][si] + sigR[2][si]
		sr22 := 2 * sigR[1][si]
		st13 := sigTeta[0][si] + sigTeta[2][si]
		st22 := 2 * sigTeta[1][si]

		out.SigZ[si] = math.Max(sz13, sz22)
		out.SigR[si] = math.Min(sr13, sr22)
		out.SigTeta[si] = math.Min(st13, st22)
		out.SigT[si] = math.Min(out.SigR[si], out.SigTeta[si])

		ez13 := (sz13*1e6 - 1e6*nu*(sr13+st13)) / young
		ez22 := (sz22*1e6 - 1e6*nu*(sr22+st22)) / young
		er13 := (sr13*1e6 - 1e6*nu*(sz13+st13)) / young
		er22 := (sr22*1e6 - 1e6*nu*(sz22+st22)) / young
		et13 := (st13*1e6 - 1e6*nu*(sz13+sr13)) / young
		et22 := (st22*1e6 - 1e6*nu*(sz22+sr22)) / young

		out.EpsZ[si] = math.Max(ez13, ez22)
		out.EpsT[si] = math.Min(math.Min(er13, er22), math.Min(et13, et22))

		out.W[si] = 2 * w[1][si]
		out.W1[si] = 2 * w1[1][si]
	}
	return out, warns, nil
}

// accumulate walks the quadrature grid and sums the weighted integrand
// values for every offset and station. The node loop fans out in fixed
// chunks to a worker pool; partial sums reduce in chunk order.
func (o *Calc) accumulate(solver bcs.Solver) (total rawSums, warns []string, failed int) {

	nnodes := o.grid.Size()
	nchunks := (nnodes + chunkSize - 1) / chunkSize
	parts := make([]chunkPartial, nchunks)

	nw := runtime.GOMAXPROCS(0)
	if nw > nchunks {
		nw = nchunks
	}
	jobs := make(chan int, nchunks)
	var wg sync.WaitGroup
	for w := 0; w < nw; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for ci := range jobs {
				lo := ci * chunkSize
				hi := lo + chunkSize
				if hi > nnodes {
					hi = nnodes
				}
				parts[ci] = o.accumulateChunk(solver, lo, hi)
			}
		}()
	}
	for ci := 0; ci < nchunks; ci++ {
		jobs <- ci
	}
	close(jobs)
	wg.Wait()

	total = newRawSums(len(o.offsets), len(o.stations))
	for ci := 0; ci < nchunks; ci++ {
		total.add(parts[ci].sums)
		warns = append(warns, parts[ci].warns...)
		failed += parts[ci].failed
	}
	return
}

// chunkPartial holds the private accumulation state of one node chunk
type chunkPartial struct {
	sums   rawSums
	warns  []string
	failed int
}

// accumulateChunk processes the nodes [lo,hi) into private sums
func (o *Calc) accumulateChunk(solver bcs.Solver, lo, hi int) (p chunkPartial) {
	p.sums = newRawSums(len(o.offsets), len(o.stations))
	for n := lo; n < hi; n++ {
		m := o.grid.M[n]
		wq := o.grid.W[n]

		x, err := solver.SolveForM(m)
		if err != nil {
			p.warns = append(p.warns, err.Error())
			p.failed++
			continue
		}

		j1a := math.J1(m * o.alpha)
		j0r1 := math.J0(m * o.rho1)

		for si, st := range o.stations {
			nu := o.job.Poisson[st.layer]
			c := resp.LayerCoefs(x, st.layer, o.job.Nlayers)
			f := resp.Eval(m, st.L, nu, c)
			fdispl := f.Wi
			if st.surface {
				fdispl = f.W
			}
			for oi, rho := range o.offsets {
				j0r := math.J0(m * rho)
				br2 := 0.5 // limit of J1(x)/x split as (J0-J2)/2 on the axis
				if rho != 0 {
					br2 = math.J1(m*rho) / (m * rho)
				}
				s := &p.sums[oi][si]
				if !st.surface {
					s[iSigZ] += wq * f.SigZ * j0r * j1a
				}
				s[iR1] += wq * f.SigR1 * j0r * j1a
				s[iR2] += wq * f.SigR2 * j1a * br2
				s[iT1] += wq * f.Teta1 * j0r * j1a
				s[iT2] += wq * f.Teta2 * j1a * br2
				s[iW] += wq * fdispl * j0r * j1a / m
				s[iW1] += wq * fdispl * j0r1 * j1a / m
			}
		}
	}
	return
}
