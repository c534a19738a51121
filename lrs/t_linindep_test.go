// Copyright 2017 The Lrs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lrs

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_li01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("li01. tensor-product sets are independent")

	o := biquad3x3(tst)
	if o == nil {
		return
	}
	if !o.IsLinearlyIndependent(chk.Verbose) {
		tst.Errorf("the initial tensor-product basis must be independent\n")
		return
	}

	// a full-span refinement preserves independence
	if err := o.InsertConstULine(1.5, 0, 3, 1); err != nil {
		tst.Errorf("%v", err)
		return
	}
	if !o.IsLinearlyIndependent(chk.Verbose) {
		tst.Errorf("independence must be preserved by a full-span line\n")
		return
	}

	// and so do partial refinements on this small mesh
	if err := o.InsertConstVLine(0.5, 0, 1.5, 1); err != nil {
		tst.Errorf("%v", err)
		return
	}
	if !o.IsLinearlyIndependent(chk.Verbose) {
		tst.Errorf("independence must be preserved by the partial line\n")
		return
	}
}

func Test_li02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("li02. dependent sets are detected")

	o := biquad3x3(tst)
	if o == nil {
		return
	}

	// force a dependent set: a duplicated function makes two identical rows
	// in the projection matrix, so the rank drops below the count
	dup := NewBasisfunction(o.B[7].Ku, o.B[7].Kv, o.B[7].C, o.B[7].W)
	o.B = append(o.B, dup)
	o.updateSupport(dup, o.E)

	if o.IsLinearlyIndependent(chk.Verbose) {
		tst.Errorf("a duplicated function must be flagged as dependent\n")
		return
	}
}

func Test_li03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("li03. multiplicity promotion keeps an independent basis")

	o := biquad3x3(tst)
	if o == nil {
		return
	}
	if err := o.InsertConstULine(1.5, 0, 3, 2); err != nil {
		tst.Errorf("%v", err)
		return
	}
	ku, _ := o.GlobalKnots()
	chk.Vector(tst, "global knots u", 1e-15, ku, []float64{0, 0, 0, 1, 1.5, 1.5, 2, 3, 3, 3})
	if !o.IsLinearlyIndependent(chk.Verbose) {
		tst.Errorf("the doubled line must keep independence\n")
		return
	}
	checkPartitionOfUnity(tst, o, 7)
}
