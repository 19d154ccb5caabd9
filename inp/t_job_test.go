// Copyright 2025 The Gopave Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"errors"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func Test_job01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("job01. defaults and derived quantities")

	var job Job
	job.SetDefaults()
	if err := job.Validate(); err != nil {
		tst.Errorf("default job must be valid: %v", err)
		return
	}

	chk.Scalar(tst, "pressure [MPa]", 1e-15, job.Pressure(), 0.662)
	chk.IntAssert(job.NiterClamped(), 40)

	job.Niter = 10
	chk.IntAssert(job.NiterClamped(), 25)
	job.Niter = 99
	chk.IntAssert(job.NiterClamped(), 50)

	job.PressureMPa = 0
	job.PressureKPa = 662
	chk.Scalar(tst, "pressure from kPa", 1e-15, job.Pressure(), 0.662)

	depths := CumulativeDepths([]float64{0.04, 0.15, 0})
	io.Pforan("depths = %v\n", depths)
	chk.Vector(tst, "cumulative depths", 1e-15, depths, []float64{0, 0.04, 0.19})
	chk.Scalar(tst, "total depth", 1e-15, TotalDepth([]float64{0.04, 0.15, 0}), 0.19)
}

func Test_job02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("job02. validation kinds")

	newJob := func() *Job {
		var job Job
		job.SetDefaults()
		return &job
	}

	expectKind := func(job *Job, kind Kind) {
		err := job.Validate()
		if err == nil {
			tst.Errorf("expected %q failure, got nil", kind)
			return
		}
		var ierr *InvalidInputError
		if !errors.As(err, &ierr) {
			tst.Errorf("expected *InvalidInputError, got %T", err)
			return
		}
		if ierr.Kind != kind {
			tst.Errorf("expected kind %q, got %q (%s)", kind, ierr.Kind, ierr.Detail)
		}
	}

	job := newJob()
	job.Nlayers = 1
	expectKind(job, BadLayerCount)

	job = newJob()
	job.Poisson = []float64{0.35, 0.35}
	expectKind(job, VectorLengthMismatch)

	job = newJob()
	job.Iface = []int{0}
	expectKind(job, VectorLengthMismatch)

	job = newJob()
	job.Poisson[1] = 0.5
	expectKind(job, PoissonOutOfRange)

	job = newJob()
	job.Young[0] = 200000
	expectKind(job, ModulusOutOfRange)

	job = newJob()
	job.Thick[0] = -0.1
	expectKind(job, ThicknessOutOfRange)

	job = newJob()
	job.Thick[0] = 12.0
	expectKind(job, ThicknessOutOfRange)

	job = newJob()
	job.Thick[0] = 0.005
	expectKind(job, LayerTooThin)

	job = newJob()
	job.Iface[0] = 3
	expectKind(job, InterfaceCodeUnknown)

	job = newJob()
	job.Wheel = 5
	expectKind(job, WheelTypeUnknown)

	job = newJob()
	job.PressureMPa = 6
	expectKind(job, PressureOutOfRange)

	job = newJob()
	job.PressureMPa = 0.662
	job.PressureKPa = 662
	expectKind(job, PressureOutOfRange)

	job = newJob()
	job.Radius = 1.5
	expectKind(job, ContactRadiusOutOfRange)

	job = newJob()
	job.Wheel = WheelTwin
	job.Spacing = 0
	expectKind(job, TwinSpacingOutOfRange)

	job = newJob()
	job.Young = []float64{100000, 200, 5}
	expectKind(job, ModulusContrastExcessive)
}
