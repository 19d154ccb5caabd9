// Copyright 2025 The Gopave Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package out formats computation results for terminals and files
package out

import (
	"encoding/json"
	"os"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/romeoolouro/gopave/calc"
	"github.com/romeoolouro/gopave/inp"
)

// Report bundles a job with its results for serialisation
type Report struct {
	Job     *inp.Job      `json:"job"`
	Results *calc.Results `json:"results"`
}

// TextReport returns the solicitations formatted as fixed-width tables
func TextReport(job *inp.Job, res *calc.Results) (l string) {
	l = io.Sf("\n%s\n", job.Desc)
	l += io.Sf("layers=%d wheel=%d p=%g MPa a=%g m\n", job.Nlayers, job.Wheel, job.Pressure(), job.Radius)
	l += "\ninterface solicitations:\n"
	l += res.String()
	if len(res.Points) > 0 {
		l += "\nrequested depths:\n"
		l += io.Sf("%8s %8s %8s %9s %9s %8s\n", "z[m]", "sigZ", "sigT", "epsZ", "epsT", "w[mm]")
		for _, p := range res.Points {
			l += io.Sf("%8.3f %8.3f %8.3f %9.1f %9.1f %8.2f\n", p.Z, p.SigZ, p.SigT, p.EpsZ, p.EpsT, p.W)
		}
	}
	if len(res.Warnings) > 0 {
		l += io.Sf("\n%d quadrature nodes skipped\n", len(res.Warnings))
	}
	l += io.Sf("\nelapsed: %.1f ms\n", res.ElapsedMs)
	return
}

// WriteJSON writes the report to a file
func WriteJSON(fnamepath string, job *inp.Job, res *calc.Results) error {
	b, err := json.MarshalIndent(Report{Job: job, Results: res}, "", "  ")
	if err != nil {
		return chk.Err("out: cannot marshal report: %v", err)
	}
	if err := os.WriteFile(fnamepath, b, 0644); err != nil {
		return chk.Err("out: cannot write report to %q: %v", fnamepath, err)
	}
	return nil
}
