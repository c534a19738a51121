// Copyright 2017 The Lrs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/gm"

	"github.com/cpmech/lrs/lrs"
)

// FromNurbs builds a locally refined surface from an initial tensor-product
// NURBS entity. The control points are taken in homogeneous coordinates so
// that a rational input stays rational
func FromNurbs(nurbs *gm.Nurbs) (o *lrs.Surface, err error) {
	if nurbs.Gnd() != 2 {
		return nil, chk.Err("only surfaces can be converted. gnd=%d is invalid", nurbs.Gnd())
	}
	pu := nurbs.Ord(0)
	pv := nurbs.Ord(1)
	n1 := nurbs.NumBasis(0)
	n2 := nurbs.NumBasis(1)
	knotU := make([]float64, n1+pu)
	knotV := make([]float64, n2+pv)
	for k := range knotU {
		knotU[k] = nurbs.U(0, k)
	}
	for k := range knotV {
		knotV[k] = nurbs.U(1, k)
	}
	ndim := 3
	coefs := make([]float64, 0, n1*n2*(ndim+1))
	for j := 0; j < n2; j++ {
		for i := 0; i < n1; i++ {
			q := nurbs.GetQl(j*n1 + i) // (x, y, z, w) with dehomogenised x,y,z
			w := q[3]
			coefs = append(coefs, q[0]*w, q[1]*w, q[2]*w, w)
		}
	}
	return lrs.NewSurface(n1, n2, pu, pv, knotU, knotV, coefs, ndim, true)
}

// NurbsData builds a locally refined surface from gosl NURBS input data as
// read from mesh files
func NurbsData(d *gm.NurbsD, controlpts [][]float64) (o *lrs.Surface, err error) {
	nurbs := new(gm.Nurbs)
	nurbs.Init(d.Gnd, d.Ords, d.Knots)
	nurbs.SetControl(controlpts, d.Ctrls)
	return FromNurbs(nurbs)
}
