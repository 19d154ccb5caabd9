// Copyright 2025 The Gopave Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package main is the foreign-function boundary of the engine. Built
// with -buildmode=c-shared it exposes the calculation to P/Invoke and
// other C callers. The core never assumes this layer exists.
package main

/*
#include <stdlib.h>
#include <string.h>

typedef struct {
	int nlayer;
	double* poisson_ratio;
	double* young_modulus;
	double* thickness;
	int* bonded_interface;
	int wheel_type;
	double pressure_kpa;
	double wheel_radius_m;
	double wheel_spacing_m;
	int nz;
	double* z_coords;
} PavementInputC;

typedef struct {
	int success;
	int error_code;
	char error_message[256];
	int nz;
	double calculation_time_ms;
	double* deflection_mm;
	double* vertical_stress_kpa;
	double* horizontal_strain;
	double* radial_strain;
	double* shear_stress_kpa;
} PavementOutputC;
*/
import "C"

import (
	"sync"
	"unsafe"

	"github.com/romeoolouro/gopave/calc"
	"github.com/romeoolouro/gopave/inp"
)

// stable wire error codes
const (
	codeSuccess      = 0
	codeInvalidInput = 1
	codeNullPointer  = 2
	codeAllocation   = 3
	codeCalculation  = 4
	codeUnknown      = 99
)

// last-error slot; the C original uses thread-local storage, which Go
// cannot offer, so a mutex-guarded slot serves all goroutines
var (
	lastErrMu sync.Mutex
	lastErr   string
	lastErrC  *C.char = C.CString("")

	versionOnce sync.Once
	versionC    *C.char
)

func setLastError(msg string) {
	lastErrMu.Lock()
	lastErr = msg
	C.free(unsafe.Pointer(lastErrC))
	lastErrC = C.CString(msg)
	lastErrMu.Unlock()
}

// setMessage copies msg into the fixed message buffer of the output
func setMessage(out *C.PavementOutputC, msg string) {
	b := []byte(msg)
	if len(b) > 255 {
		b = b[:255]
	}
	for i, c := range b {
		out.error_message[i] = C.char(c)
	}
	out.error_message[len(b)] = 0
}

// jobFromC converts the C input into a validated core job
func jobFromC(in *C.PavementInputC) (*inp.Job, error) {
	n := int(in.nlayer)
	job := &inp.Job{
		Desc:        "foreign call",
		Nlayers:     n,
		Poisson:     append([]float64{}, unsafe.Slice((*float64)(unsafe.Pointer(in.poisson_ratio)), n)...),
		Young:       append([]float64{}, unsafe.Slice((*float64)(unsafe.Pointer(in.young_modulus)), n)...),
		Thick:       append([]float64{}, unsafe.Slice((*float64)(unsafe.Pointer(in.thickness)), n)...),
		PressureKPa: float64(in.pressure_kpa),
		Radius:      float64(in.wheel_radius_m),
		Spacing:     float64(in.wheel_spacing_m),
		Zcoords:     append([]float64{}, unsafe.Slice((*float64)(unsafe.Pointer(in.z_coords)), int(in.nz))...),
		Niter:       40,
		Solver:      "direct",
	}
	ifc := unsafe.Slice((*C.int)(unsafe.Pointer(in.bonded_interface)), n-1)
	job.Iface = make([]int, n-1)
	for i, c := range ifc {
		job.Iface[i] = int(c)
	}
	if in.wheel_type == 1 {
		job.Wheel = inp.WheelTwin
	} else {
		job.Wheel = inp.WheelSingle
	}
	return job, job.Validate()
}

// calculate is shared by the two exported entry points
func calculate(in *C.PavementInputC, out *C.PavementOutputC, solver string) (code C.int) {
	defer func() {
		if r := recover(); r != nil {
			msg := "unknown internal failure"
			setLastError(msg)
			if out != nil {
				out.success = 0
				out.error_code = codeUnknown
				setMessage(out, msg)
			}
			code = codeUnknown
		}
	}()

	if in == nil || out == nil {
		setLastError("null input or output pointer")
		if out != nil {
			out.success = 0
			out.error_code = codeNullPointer
			setMessage(out, lastErr)
		}
		return codeNullPointer
	}
	*out = C.PavementOutputC{}

	if in.nlayer < 2 || in.poisson_ratio == nil || in.young_modulus == nil ||
		in.thickness == nil || in.bonded_interface == nil || in.z_coords == nil || in.nz <= 0 {
		setLastError("incomplete input structure")
		out.error_code = codeInvalidInput
		setMessage(out, lastErr)
		return codeInvalidInput
	}

	job, err := jobFromC(in)
	if err != nil {
		setLastError(err.Error())
		out.error_code = codeInvalidInput
		setMessage(out, err.Error())
		return codeInvalidInput
	}
	job.Solver = solver

	res, err := calc.Compute(job, nil)
	if err != nil {
		setLastError(err.Error())
		out.error_code = codeCalculation
		setMessage(out, err.Error())
		return codeCalculation
	}

	nz := len(res.Points)
	bytes := C.size_t(nz) * C.size_t(unsafe.Sizeof(C.double(0)))
	out.deflection_mm = (*C.double)(C.malloc(bytes))
	out.vertical_stress_kpa = (*C.double)(C.malloc(bytes))
	out.horizontal_strain = (*C.double)(C.malloc(bytes))
	out.radial_strain = (*C.double)(C.malloc(bytes))
	out.shear_stress_kpa = (*C.double)(C.malloc(bytes))
	if out.deflection_mm == nil || out.vertical_stress_kpa == nil ||
		out.horizontal_strain == nil || out.radial_strain == nil || out.shear_stress_kpa == nil {
		PavementFreeOutput(out)
		setLastError("output allocation failed")
		out.error_code = codeAllocation
		setMessage(out, lastErr)
		return codeAllocation
	}

	defl := unsafe.Slice((*float64)(unsafe.Pointer(out.deflection_mm)), nz)
	sigz := unsafe.Slice((*float64)(unsafe.Pointer(out.vertical_stress_kpa)), nz)
	epsh := unsafe.Slice((*float64)(unsafe.Pointer(out.horizontal_strain)), nz)
	epsr := unsafe.Slice((*float64)(unsafe.Pointer(out.radial_strain)), nz)
	shear := unsafe.Slice((*float64)(unsafe.Pointer(out.shear_stress_kpa)), nz)
	for i, p := range res.Points {
		defl[i] = p.W
		sigz[i] = p.SigZ * 1000 // MPa -> kPa
		epsh[i] = p.EpsT
		epsr[i] = p.EpsT // radial equals horizontal on the load axis
		shear[i] = 0     // vanishes on the axis by symmetry
	}

	out.success = 1
	out.error_code = codeSuccess
	out.nz = C.int(nz)
	out.calculation_time_ms = C.double(res.ElapsedMs)
	setLastError("")
	return codeSuccess
}

// PavementCalculate runs the direct solver
//
//export PavementCalculate
func PavementCalculate(in *C.PavementInputC, out *C.PavementOutputC) C.int {
	return calculate(in, out, "direct")
}

// PavementCalculateStable runs the transmission/reflection solver for
// extreme m*h products
//
//export PavementCalculateStable
func PavementCalculateStable(in *C.PavementInputC, out *C.PavementOutputC) C.int {
	return calculate(in, out, "trmm")
}

// PavementValidateInput checks the input without computing
//
//export PavementValidateInput
func PavementValidateInput(in *C.PavementInputC, msg *C.char, msgSize C.int) C.int {
	if in == nil {
		setLastError("null input pointer")
		return codeNullPointer
	}
	if in.nlayer < 2 || in.poisson_ratio == nil || in.young_modulus == nil ||
		in.thickness == nil || in.bonded_interface == nil {
		setLastError("incomplete input structure")
		return codeInvalidInput
	}
	if _, err := jobFromC(in); err != nil {
		setLastError(err.Error())
		if msg != nil && msgSize > 1 {
			b := []byte(err.Error())
			if len(b) > int(msgSize)-1 {
				b = b[:int(msgSize)-1]
			}
			dst := unsafe.Slice((*byte)(unsafe.Pointer(msg)), len(b)+1)
			copy(dst, b)
			dst[len(b)] = 0
		}
		return codeInvalidInput
	}
	return codeSuccess
}

// PavementFreeOutput releases the arrays allocated by the calculation;
// safe on nil and on already-freed outputs
//
//export PavementFreeOutput
func PavementFreeOutput(out *C.PavementOutputC) {
	if out == nil {
		return
	}
	free := func(p **C.double) {
		if *p != nil {
			C.free(unsafe.Pointer(*p))
			*p = nil
		}
	}
	free(&out.deflection_mm)
	free(&out.vertical_stress_kpa)
	free(&out.horizontal_strain)
	free(&out.radial_strain)
	free(&out.shear_stress_kpa)
	out.nz = 0
}

// PavementGetVersion returns the engine semantic version
//
//export PavementGetVersion
func PavementGetVersion() *C.char {
	versionOnce.Do(func() { versionC = C.CString(calc.Version) })
	return versionC
}

// PavementGetLastError returns the description of the last failure.
// The returned string is owned by the library; do not free it.
//
//export PavementGetLastError
func PavementGetLastError() *C.char {
	lastErrMu.Lock()
	defer lastErrMu.Unlock()
	return lastErrC
}

func main() {}
