// Copyright 2017 The Lrs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lrs

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// biquad3x3 returns the bi-quadratic uniform 3x3 patch used throughout the
// tests: orders (3,3), knots (0,0,0,1,2,3,3,3) in both directions, d=1 and
// unit coefficients. It has 25 basis functions and 9 elements
func biquad3x3(tst *testing.T) *Surface {
	kn := []float64{0, 0, 0, 1, 2, 3, 3, 3}
	coefs := make([]float64, 25)
	for i := range coefs {
		coefs[i] = 1.0
	}
	o, err := NewSurface(5, 5, 3, 3, kn, kn, coefs, 1, false)
	if err != nil {
		tst.Errorf("cannot build surface:\n%v", err)
		return nil
	}
	return o
}

// biquad3x3var is the same patch with varying coefficients, for tests that
// must see a non-constant surface
func biquad3x3var(tst *testing.T) *Surface {
	kn := []float64{0, 0, 0, 1, 2, 3, 3, 3}
	coefs := make([]float64, 25)
	for j := 0; j < 5; j++ {
		for i := 0; i < 5; i++ {
			coefs[j*5+i] = 1.0 + float64(i)*0.25 + float64(j)*float64(j)*0.125
		}
	}
	o, err := NewSurface(5, 5, 3, 3, kn, kn, coefs, 1, false)
	if err != nil {
		tst.Errorf("cannot build surface:\n%v", err)
		return nil
	}
	return o
}

// checkTiling verifies that the element rectangles tile the whole domain
func checkTiling(tst *testing.T, o *Surface) {
	area := 0.0
	for _, e := range o.E {
		area += e.Area()
	}
	chk.Scalar(tst, "sum of element areas", 1e-12, area, (o.EndU-o.StartU)*(o.EndV-o.StartV))
}

// checkPartitionOfUnity evaluates the surface (which must have d=1 and unit
// coefficients) on a grid of interior points
func checkPartitionOfUnity(tst *testing.T, o *Surface, npts int) {
	du := (o.EndU - o.StartU) / float64(npts+1)
	dv := (o.EndV - o.StartV) / float64(npts+1)
	for i := 1; i <= npts; i++ {
		for j := 1; j <= npts; j++ {
			u := o.StartU + float64(i)*du
			v := o.StartV + float64(j)*dv
			x, err := o.Point(u, v)
			if err != nil {
				tst.Errorf("point evaluation failed:\n%v", err)
				return
			}
			chk.Scalar(tst, io.Sf("sum N(%g,%g)", u, v), 1e-10, x[0], 1.0)
		}
	}
}
