// Copyright 2025 The Gopave Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package calc

import (
	"testing"
	"time"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/romeoolouro/gopave/inp"
)

// tableau returns the semi-rigid stack of the French reference tables
// with a configurable base interface
func tableau(ifaceBase int) *inp.Job {
	var job inp.Job
	job.SetDefaults()
	job.Desc = "semi-rigid reference structure"
	job.Nlayers = 3
	job.Poisson = []float64{0.35, 0.35, 0.35}
	job.Young = []float64{7000, 23000, 120}
	job.Thick = []float64{0.06, 0.15, 0}
	job.Iface = []int{inp.Bonded, ifaceBase}
	job.Wheel = inp.WheelSingle
	job.PressureMPa = 0.662
	job.PressureKPa = 0
	job.Radius = 0.1125
	job.Zcoords = []float64{0.21}
	return &job
}

func Test_scenarioA(tst *testing.T) {

	//verbose()
	chk.PrintTitle("scenarioA. flexible pavement, vertical strain on the platform")

	var job inp.Job
	job.SetDefaults()
	job.Desc = "flexible reference structure"
	job.Poisson = []float64{0.35, 0.35, 0.35}
	job.Young = []float64{5500, 600, 50}
	job.Thick = []float64{0.04, 0.15, 0}
	job.Iface = []int{inp.Bonded, inp.Bonded}
	job.PressureMPa = 0.662
	job.Radius = 0.1125
	job.Zcoords = []float64{0.19}

	res, err := Compute(&job, nil)
	if err != nil {
		tst.Errorf("%v", err)
		return
	}
	io.Pforan("epsZ(0.19) = %v\n", res.Points[0].EpsZ)
	chk.Scalar(tst, "epsZ at platform top", 4.0, res.Points[0].EpsZ, 711.5)
}

func Test_scenarioB(tst *testing.T) {

	//verbose()
	chk.PrintTitle("scenarioB. semi-rigid, semi-bonded base interface")

	res, err := Compute(tableau(inp.SemiBonded), nil)
	if err != nil {
		tst.Errorf("%v", err)
		return
	}
	io.Pforan("sigT(0.21) = %v\n", res.Points[0].SigT)
	chk.Scalar(tst, "sigT at base bottom", 0.003, res.Points[0].SigT, 0.612)
}

func Test_scenarioC(tst *testing.T) {

	//verbose()
	chk.PrintTitle("scenarioC. semi-rigid, bonded base interface")

	res, err := Compute(tableau(inp.Bonded), nil)
	if err != nil {
		tst.Errorf("%v", err)
		return
	}
	io.Pforan("sigT(0.21) = %v\n", res.Points[0].SigT)
	chk.Scalar(tst, "sigT at base bottom", 0.003, res.Points[0].SigT, 0.815)
}

func Test_scenarioD(tst *testing.T) {

	//verbose()
	chk.PrintTitle("scenarioD. twin wheels over a stiff course")

	var job inp.Job
	job.SetDefaults()
	job.Desc = "twin wheel stiffness contrast"
	job.Nlayers = 2
	job.Poisson = []float64{0.35, 0.35}
	job.Young = []float64{5000, 50}
	job.Thick = []float64{0.20, 0}
	job.Iface = []int{inp.Bonded}
	job.Wheel = inp.WheelTwin
	job.PressureMPa = 0.662
	job.Radius = 0.125
	job.Spacing = 0.375
	job.Zcoords = []float64{0}

	res, err := Compute(&job, nil)
	if err != nil {
		tst.Errorf("%v", err)
		return
	}
	io.Pforan("w(0) = %v mm\n", res.Points[0].W)
	if res.Points[0].W <= 0 {
		tst.Errorf("between-wheel surface deflection %g must be positive", res.Points[0].W)
	}
}

func Test_scenarioE(tst *testing.T) {

	//verbose()
	chk.PrintTitle("scenarioE. performance envelope")

	var job inp.Job
	job.SetDefaults()
	job.Desc = "five layers, ten observation points"
	job.Nlayers = 5
	job.Poisson = []float64{0.35, 0.35, 0.25, 0.35, 0.35}
	job.Young = []float64{6000, 9000, 500, 200, 60}
	job.Thick = []float64{0.06, 0.12, 0.25, 0.30, 0}
	job.Iface = []int{inp.Bonded, inp.Bonded, inp.SemiBonded, inp.Bonded}
	job.PressureMPa = 0.662
	job.Radius = 0.125
	job.Zcoords = []float64{0, 0.03, 0.06, 0.18, 0.30, 0.43, 0.55, 0.73, 1.0, 1.5}

	t0 := time.Now()
	res, err := Compute(&job, nil)
	if err != nil {
		tst.Errorf("%v", err)
		return
	}
	elapsed := time.Since(t0)
	io.Pforan("elapsed = %v\n", elapsed)
	chk.IntAssert(len(res.Points), 10)
	if elapsed > 2*time.Second {
		tst.Errorf("computation took %v, budget is 2s", elapsed)
	}
}
