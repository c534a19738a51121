// Copyright 2017 The Lrs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lrs

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func Test_ref01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ref01. one central constant-u line")

	o := biquad3x3(tst)
	if o == nil {
		return
	}
	err := o.InsertConstULine(1.5, 0, 3, 1)
	if err != nil {
		tst.Errorf("insertion failed:\n%v", err)
		return
	}
	io.Pforan("nbasis=%d nlines=%d nelements=%d\n", len(o.B), len(o.M), len(o.E))

	// three functions split per row, two children absorbed: net +1 per row
	chk.IntAssert(o.NbasisFunctions(), 30)
	chk.IntAssert(o.Nelements(), 12)
	chk.IntAssert(o.Nmeshlines(), 9)

	if err = o.CheckSupportGraph(); err != nil {
		tst.Errorf("support graph is inconsistent:\n%v", err)
		return
	}
	checkTiling(tst, o)
	checkPartitionOfUnity(tst, o, 7)
}

func Test_ref02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ref02. evaluation invariance under refinement")

	o := biquad3x3var(tst)
	if o == nil {
		return
	}
	pts := [][]float64{{0.7, 0.7}, {1.3, 2.2}, {2.9, 0.4}, {0.1, 2.95}, {1.5, 1.5}, {3, 3}}
	before := make([]float64, len(pts))
	for i, p := range pts {
		x, err := o.Point(p[0], p[1])
		if err != nil {
			tst.Errorf("%v", err)
			return
		}
		before[i] = x[0]
	}

	if err := o.InsertConstULine(1.5, 0, 3, 1); err != nil {
		tst.Errorf("%v", err)
		return
	}
	if err := o.InsertConstVLine(0.5, 0, 2, 1); err != nil {
		tst.Errorf("%v", err)
		return
	}
	if err := o.InsertConstULine(2.5, 1, 3, 1); err != nil {
		tst.Errorf("%v", err)
		return
	}

	for i, p := range pts {
		x, err := o.Point(p[0], p[1])
		if err != nil {
			tst.Errorf("%v", err)
			return
		}
		chk.Scalar(tst, io.Sf("point(%g,%g)", p[0], p[1]), 1e-12, x[0], before[i])
	}
}

func Test_ref03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ref03. refinement idempotence")

	o := biquad3x3var(tst)
	if o == nil {
		return
	}
	if err := o.InsertConstULine(1.5, 0, 3, 1); err != nil {
		tst.Errorf("%v", err)
		return
	}
	nb, nm, ne := len(o.B), len(o.M), len(o.E)
	x1, err := o.Point(0.7, 0.7)
	if err != nil {
		tst.Errorf("%v", err)
		return
	}

	// the duplicate is absorbed by the merge and splits nothing
	if err = o.InsertConstULine(1.5, 0, 3, 1); err != nil {
		tst.Errorf("%v", err)
		return
	}
	chk.IntAssert(len(o.B), nb)
	chk.IntAssert(len(o.M), nm)
	chk.IntAssert(len(o.E), ne)
	x2, err := o.Point(0.7, 0.7)
	if err != nil {
		tst.Errorf("%v", err)
		return
	}
	chk.Scalar(tst, "point after duplicate insertion", 1e-15, x2[0], x1[0])
}

func Test_ref04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ref04. multiplicity merge of partial lines")

	o := biquad3x3(tst)
	if o == nil {
		return
	}
	if err := o.InsertConstULine(1.5, 0, 1.5, 1); err != nil {
		tst.Errorf("%v", err)
		return
	}
	if err := o.InsertConstULine(1.5, 1, 3, 2); err != nil {
		tst.Errorf("%v", err)
		return
	}

	// a single constant-u segment at u=1.5 spanning the whole domain with
	// multiplicity two
	found := 0
	for _, m := range o.M {
		if !m.SpanU && math.Abs(m.ConstPar-1.5) < 1e-15 {
			found++
			chk.Scalar(tst, "start", 1e-15, m.Start, 0)
			chk.Scalar(tst, "stop", 1e-15, m.Stop, 3)
			chk.IntAssert(m.Mult, 2)
		}
	}
	chk.IntAssert(found, 1)

	if err := o.CheckSupportGraph(); err != nil {
		tst.Errorf("support graph is inconsistent:\n%v", err)
		return
	}
	checkTiling(tst, o)
	checkPartitionOfUnity(tst, o, 7)
}

func Test_ref05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ref05. boundary requests, strict merging and malformed input")

	o := biquad3x3(tst)
	if o == nil {
		return
	}
	nb, nm, ne := len(o.B), len(o.M), len(o.E)

	// outside the domain: ignored with no mutation
	if err := o.InsertConstULine(-1, 0, 3, 1); err != nil {
		tst.Errorf("out-of-domain request must not fail: %v", err)
		return
	}
	chk.IntAssert(len(o.B), nb)
	chk.IntAssert(len(o.M), nm)
	chk.IntAssert(len(o.E), ne)

	// on the boundary: the merged line replaces the old one; nothing splits
	if err := o.InsertConstULine(0, 0, 3, 1); err != nil {
		tst.Errorf("boundary request must not fail: %v", err)
		return
	}
	chk.IntAssert(len(o.B), nb)
	chk.IntAssert(len(o.M), nm)
	chk.IntAssert(len(o.E), ne)

	// zero-length interval: rejected
	if err := o.InsertConstULine(1.5, 2, 2, 1); err == nil {
		tst.Errorf("zero-length interval must be rejected\n")
		return
	}
	chk.IntAssert(len(o.M), nm)

	// strict merging reports multiplicity mismatches instead of promoting
	o.StrictMerge = true
	if err := o.InsertConstULine(0, 0, 3, 1); err == nil {
		tst.Errorf("strict merge must fail on multiplicity mismatch\n")
		return
	}
}

func Test_ref06(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ref06. knot-insertion round trip")

	o := biquad3x3var(tst)
	if o == nil {
		return
	}
	x1, err := o.Point(1.7, 2.3)
	if err != nil {
		tst.Errorf("%v", err)
		return
	}

	// one constant-u line at every interior knot: all absorbed
	for _, u := range []float64{1, 2} {
		if err = o.InsertConstULine(u, 0, 3, 1); err != nil {
			tst.Errorf("%v", err)
			return
		}
	}
	chk.IntAssert(o.NbasisFunctions(), 25) // n1*n2
	x2, err := o.Point(1.7, 2.3)
	if err != nil {
		tst.Errorf("%v", err)
		return
	}
	chk.Scalar(tst, "point after round trip", 1e-12, x2[0], x1[0])
}

func Test_ref07(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ref07. refinement strategies")

	// safe: central cross spanning the support union
	o := biquad3x3(tst)
	if o == nil {
		return
	}
	o.Strategy = SAFE
	if err := o.RefineElement(4, 1); err != nil {
		tst.Errorf("%v", err)
		return
	}
	if err := o.CheckSupportGraph(); err != nil {
		tst.Errorf("support graph is inconsistent:\n%v", err)
		return
	}
	checkTiling(tst, o)
	checkPartitionOfUnity(tst, o, 7)

	// minspan: the cross spans only the shortest support
	o = biquad3x3(tst)
	o.Strategy = MINSPAN
	if err := o.RefineElement(4, 1); err != nil {
		tst.Errorf("%v", err)
		return
	}
	if err := o.CheckSupportGraph(); err != nil {
		tst.Errorf("support graph is inconsistent:\n%v", err)
		return
	}
	checkTiling(tst, o)
	checkPartitionOfUnity(tst, o, 7)

	// isotropic tiling of the element
	o = biquad3x3(tst)
	o.Strategy = ISOTROPIC_FUNC
	if err := o.RefineElement(4, 1); err != nil {
		tst.Errorf("%v", err)
		return
	}
	if err := o.CheckSupportGraph(); err != nil {
		tst.Errorf("support graph is inconsistent:\n%v", err)
		return
	}
	checkTiling(tst, o)
	checkPartitionOfUnity(tst, o, 7)

	// isotropic on element extents
	o = biquad3x3(tst)
	o.Strategy = ISOTROPIC_ELEM
	if err := o.RefineElement(4, 1); err != nil {
		tst.Errorf("%v", err)
		return
	}
	checkTiling(tst, o)
	checkPartitionOfUnity(tst, o, 7)
}

func Test_ref08(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ref08. function refinement and symmetry")

	o := biquad3x3(tst)
	if o == nil {
		return
	}
	o.Symmetry = true
	o.GenerateIDs()

	// refine the first function: its support is [0,1]x[0,1]; the central
	// cross appears there and mirrored at the opposite corner
	if err := o.RefineBasisFunctions([]int{0}, 1); err != nil {
		tst.Errorf("%v", err)
		return
	}
	hasU05, hasU25 := false, false
	for _, m := range o.M {
		if !m.SpanU && math.Abs(m.ConstPar-0.5) < 1e-15 {
			hasU05 = true
		}
		if !m.SpanU && math.Abs(m.ConstPar-2.5) < 1e-15 {
			hasU25 = true
		}
	}
	if !hasU05 || !hasU25 {
		tst.Errorf("symmetric refinement must create both mirrored lines\n")
		return
	}
	if err := o.CheckSupportGraph(); err != nil {
		tst.Errorf("support graph is inconsistent:\n%v", err)
		return
	}
	checkTiling(tst, o)
	checkPartitionOfUnity(tst, o, 7)
}

func Test_ref09(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ref09. aspect ratio control")

	o := biquad3x3(tst)
	if o == nil {
		return
	}
	o.MaxAspect = 2
	o.AspectFix = true

	// a line close to an existing knot produces 4:1 elements; the fix must
	// bring every element back within the bound
	if err := o.InsertConstULine(0.25, 0, 3, 1); err != nil {
		tst.Errorf("%v", err)
		return
	}
	if err := o.postFix(); err != nil {
		tst.Errorf("%v", err)
		return
	}
	for i, e := range o.E {
		ratio := math.Max(e.Du()/e.Dv(), e.Dv()/e.Du())
		if ratio > o.MaxAspect+1e-14 {
			tst.Errorf("element %d still violates the aspect bound: %g\n", i, ratio)
			return
		}
	}
	checkTiling(tst, o)
	checkPartitionOfUnity(tst, o, 7)
}
