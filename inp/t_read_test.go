// Copyright 2017 The Lrs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/cpmech/lrs/lrs"
	"github.com/cpmech/lrs/out"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// biquad builds the bi-quadratic 3x3 patch used by the io tests
func biquad(tst *testing.T) *lrs.Surface {
	kn := []float64{0, 0, 0, 1, 2, 3, 3, 3}
	coefs := make([]float64, 25)
	for i := range coefs {
		coefs[i] = 1.0 + 0.1*float64(i)
	}
	o, err := lrs.NewSurface(5, 5, 3, 3, kn, kn, coefs, 1, false)
	if err != nil {
		tst.Errorf("cannot build surface:\n%v", err)
		return nil
	}
	return o
}

func Test_read01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("read01. text format round trip")

	o := biquad(tst)
	if o == nil {
		return
	}
	if err := o.InsertConstULine(1.5, 0, 3, 1); err != nil {
		tst.Errorf("%v", err)
		return
	}

	buf := out.WriteLrs(o)
	s, err := ReadLrs(buf.Bytes())
	if err != nil {
		tst.Errorf("cannot read surface back:\n%v", err)
		return
	}

	chk.IntAssert(s.NbasisFunctions(), o.NbasisFunctions())
	chk.IntAssert(s.Nmeshlines(), o.Nmeshlines())
	chk.IntAssert(s.Nelements(), o.Nelements())
	chk.Scalar(tst, "start u", 1e-15, s.StartU, 0)
	chk.Scalar(tst, "end v", 1e-15, s.EndV, 3)

	for _, p := range [][]float64{{0.7, 0.7}, {1.6, 2.2}, {3, 3}} {
		xo, err := o.Point(p[0], p[1])
		if err != nil {
			tst.Errorf("%v", err)
			return
		}
		xs, err := s.Point(p[0], p[1])
		if err != nil {
			tst.Errorf("%v", err)
			return
		}
		chk.Scalar(tst, io.Sf("point(%g,%g)", p[0], p[1]), 1e-14, xs[0], xo[0])
	}

	// the reconstructed surface can keep refining
	if err := s.InsertConstVLine(0.5, 0, 3, 1); err != nil {
		tst.Errorf("%v", err)
		return
	}
	if err := s.CheckSupportGraph(); err != nil {
		tst.Errorf("support graph is inconsistent:\n%v", err)
		return
	}
}

func Test_read02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("read02. malformed input is rejected")

	// truncated stream
	if _, err := ReadLrs([]byte("3 3 25 8")); err == nil {
		tst.Errorf("truncated header must be rejected\n")
		return
	}

	// garbage token
	if _, err := ReadLrs([]byte("3 3 x 8 9 1 0")); err == nil {
		tst.Errorf("non-numeric token must be rejected\n")
		return
	}

	// comments are fine
	o := biquad(tst)
	if o == nil {
		return
	}
	b := append([]byte("# a comment\n# another\n"), out.WriteLrs(o).Bytes()...)
	if _, err := ReadLrs(b); err != nil {
		tst.Errorf("comment lines must be skipped: %v\n", err)
		return
	}
}

func Test_sim01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sim01. simulation script")

	sim, err := ReadSim("data", "lrs01.sim")
	if err != nil {
		tst.Errorf("cannot read script:\n%v", err)
		return
	}
	chk.IntAssert(len(sim.Stages), 2)

	s, err := sim.MakeSurface()
	if err != nil {
		tst.Errorf("cannot build surface:\n%v", err)
		return
	}
	chk.IntAssert(s.NbasisFunctions(), 25)
	chk.IntAssert(s.Strategy, lrs.MINSPAN)

	// stage 0: the central constant-u line
	if err = sim.ApplyStage(s, 0); err != nil {
		tst.Errorf("stage 0 failed:\n%v", err)
		return
	}
	chk.IntAssert(s.NbasisFunctions(), 30)
	chk.IntAssert(s.Nelements(), 12)

	// stage 1: element refinement
	if err = sim.ApplyStage(s, 1); err != nil {
		tst.Errorf("stage 1 failed:\n%v", err)
		return
	}
	if err = s.CheckSupportGraph(); err != nil {
		tst.Errorf("support graph is inconsistent:\n%v", err)
		return
	}
}
