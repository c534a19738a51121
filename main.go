// Copyright 2017 The Lrs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/cpmech/lrs/inp"
	"github.com/cpmech/lrs/out"
)

func main() {

	// input data
	verbose := true
	writeEps := true

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			io.PfRed("ERROR: %v\n", err)
		}
	}()

	// message
	io.PfWhite("\nlrs -- Locally Refined B-spline surfaces\n\n")

	// simulation filenamepath
	flag.Parse()
	var fnamepath string
	if len(flag.Args()) > 0 {
		fnamepath = flag.Arg(0)
	} else {
		chk.Panic("simulation filename is missing.\nUsage: lrs filename.sim [verbose] [writeEps]")
	}
	if io.FnExt(fnamepath) == "" {
		fnamepath += ".sim"
	}
	if len(flag.Args()) > 1 {
		verbose = io.Atob(flag.Arg(1))
	}
	if len(flag.Args()) > 2 {
		writeEps = io.Atob(flag.Arg(2))
	}

	// read script and build the initial surface
	sim, err := inp.ReadSim(filepath.Dir(fnamepath), filepath.Base(fnamepath))
	if err != nil {
		chk.Panic("cannot load simulation:\n%v", err)
	}
	srf, err := sim.MakeSurface()
	if err != nil {
		chk.Panic("cannot build initial surface:\n%v", err)
	}
	if verbose {
		io.Pf("initial surface: nbasis=%d nlines=%d nelements=%d\n", srf.NbasisFunctions(), srf.Nmeshlines(), srf.Nelements())
	}

	// run refinement stages
	for i := range sim.Stages {
		if verbose {
			io.Pf("stage %d: %s\n", i, sim.Stages[i].Desc)
		}
		if err = sim.ApplyStage(srf, i); err != nil {
			chk.Panic("stage %d failed:\n%v", i, err)
		}
		if verbose {
			io.Pf("  nbasis=%d nlines=%d nelements=%d\n", srf.NbasisFunctions(), srf.Nmeshlines(), srf.Nelements())
		}
	}

	// report
	if srf.IsLinearlyIndependent(false) {
		io.PfGreen("basis is linearly independent\n")
	} else {
		io.PfRed("basis is linearly DEPENDENT\n")
	}

	// write results
	out.SaveLrs(sim.Data.DirOut, sim.Data.Fnkey, srf)
	if writeEps {
		out.SavePostscriptMesh(sim.Data.DirOut, sim.Data.Fnkey, srf)
	}
}
