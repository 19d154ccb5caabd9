// Copyright 2025 The Gopave Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"log/slog"
	"os"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/lmittmann/tint"

	"github.com/romeoolouro/gopave/calc"
	"github.com/romeoolouro/gopave/inp"
	"github.com/romeoolouro/gopave/out"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			io.PfRed("\nERROR: %v\n", err)
			chk.Verbose = true
			for i := 5; i > 3; i-- {
				chk.CallerInfo(i)
			}
			os.Exit(1)
		}
	}()

	// read input parameters
	fnamepath, fnkey := io.ArgToFilename(0, "data/flexible", ".pav", true)
	verbose := io.ArgToBool(1, true)
	saveJSON := io.ArgToBool(2, false)

	// message
	if verbose {
		io.PfWhite("\nGopave Version %s -- Multilayer Elastic Pavement Responses\n", calc.Version)
		io.Pf("Copyright 2025 The Gopave Authors. All rights reserved.\n")
		io.Pf("Use of this source code is governed by a BSD-style\n")
		io.Pf("license that can be found in the LICENSE file.\n")

		io.Pf("\n%v\n", io.ArgsTable("INPUT ARGUMENTS",
			"job file path", "fnamepath", fnamepath,
			"show messages", "verbose", verbose,
			"write JSON report", "saveJSON", saveJSON,
		))
	}

	// logging sink
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelInfo
	}
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: level}))

	// run
	job := inp.ReadJob(fnamepath)
	res, err := calc.Compute(job, logger)
	if err != nil {
		chk.Panic("computation failed:\n%v", err)
	}

	// report
	io.Pf("%s", out.TextReport(job, res))
	if saveJSON {
		fn := io.Sf("%s_results.json", fnkey)
		if err := out.WriteJSON(fn, job, res); err != nil {
			chk.Panic("cannot write report:\n%v", err)
		}
		io.Pf("file <%s> written\n", fn)
	}
}
