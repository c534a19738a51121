// Copyright 2017 The Lrs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package lrs implements locally refined (LR) B-spline surfaces: the active set of
// basis functions, the mesh-line segments carrying local knot insertions, the
// rectangular elements tiling the parametric domain, and the refinement engine
// that keeps the three collections mutually consistent
package lrs

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// Tol is the absolute tolerance for parametric coordinate comparisons
const Tol = 1e-14

// Basisfunction holds one bivariate tensor-product B-spline given by its local
// knot vectors in each parameter direction, a control point and a scaling weight
type Basisfunction struct {
	Id    int        // identifier stamped by Surface.GenerateIDs; -1 when not set
	Ku    []float64  // local knot vector along u [pu+1]
	Kv    []float64  // local knot vector along v [pv+1]
	C     []float64  // control point [ndim] (+1 if rational; homogeneous coordinates)
	W     float64    // scaling weight
	Elems []*Element // elements whose interior is contained in this function's support
}

// NewBasisfunction allocates a new basis function with copies of the given
// local knot vectors and control point
//  Input:
//   ku -- local knot vector along u with pu+1 entries, weakly monotone
//   kv -- local knot vector along v with pv+1 entries, weakly monotone
//   c  -- control point components
//   w  -- scaling weight
func NewBasisfunction(ku, kv, c []float64, w float64) (o *Basisfunction) {
	o = new(Basisfunction)
	o.Id = -1
	o.Ku = make([]float64, len(ku))
	o.Kv = make([]float64, len(kv))
	o.C = make([]float64, len(c))
	copy(o.Ku, ku)
	copy(o.Kv, kv)
	copy(o.C, c)
	o.W = w
	for i := 0; i < len(ku)-1; i++ {
		if ku[i+1] < ku[i] {
			chk.Panic("local knot vector (u) must be non-decreasing. %v is invalid", ku)
		}
	}
	for i := 0; i < len(kv)-1; i++ {
		if kv[i+1] < kv[i] {
			chk.Panic("local knot vector (v) must be non-decreasing. %v is invalid", kv)
		}
	}
	if !(ku[0] < ku[len(ku)-1]) || !(kv[0] < kv[len(kv)-1]) {
		chk.Panic("basis function has empty support: ku=%v kv=%v", ku, kv)
	}
	return
}

// Umin returns the left end of the support along u
func (o *Basisfunction) Umin() float64 { return o.Ku[0] }

// Umax returns the right end of the support along u
func (o *Basisfunction) Umax() float64 { return o.Ku[len(o.Ku)-1] }

// Vmin returns the left end of the support along v
func (o *Basisfunction) Vmin() float64 { return o.Kv[0] }

// Vmax returns the right end of the support along v
func (o *Basisfunction) Vmax() float64 { return o.Kv[len(o.Kv)-1] }

// Overlaps tells whether the element's closure is contained in this
// function's parametric support
func (o *Basisfunction) Overlaps(e *Element) bool {
	return o.Umin() <= e.Umin+Tol && e.Umax <= o.Umax()+Tol &&
		o.Vmin() <= e.Vmin+Tol && e.Vmax <= o.Vmax()+Tol
}

// AddSupport connects an element to this function if the support covers it.
// Returns true if the connection was made
func (o *Basisfunction) AddSupport(e *Element) bool {
	if !o.Overlaps(e) {
		return false
	}
	for _, x := range o.Elems {
		if x == e {
			return true // already connected
		}
	}
	o.Elems = append(o.Elems, e)
	return true
}

// RemoveSupport disconnects an element from this function
func (o *Basisfunction) RemoveSupport(e *Element) {
	for i, x := range o.Elems {
		if x == e {
			o.Elems = append(o.Elems[:i], o.Elems[i+1:]...)
			return
		}
	}
}

// Equals compares two basis functions; they are equal if and only if both
// local knot vectors coincide elementwise
func (o *Basisfunction) Equals(b *Basisfunction) bool {
	if len(o.Ku) != len(b.Ku) || len(o.Kv) != len(b.Kv) {
		return false
	}
	for i := range o.Ku {
		if math.Abs(o.Ku[i]-b.Ku[i]) > Tol {
			return false
		}
	}
	for i := range o.Kv {
		if math.Abs(o.Kv[i]-b.Kv[i]) > Tol {
			return false
		}
	}
	return true
}

// Absorb adds another (coincident) function's contribution into this one:
// the weights accumulate and the control point becomes the weighted average
func (o *Basisfunction) Absorb(b *Basisfunction) {
	w := o.W + b.W
	for i := range o.C {
		o.C[i] = (o.C[i]*o.W + b.C[i]*b.W) / w
	}
	o.W = w
}

// Evaluate computes w * Nu(u) * Nv(v)
//  Input:
//   fromRightU, fromRightV -- select the right-continuous convention on each
//                            axis; pass false at the top/right domain edge so
//                            that the surface evaluates left-continuously
func (o *Basisfunction) Evaluate(u, v float64, fromRightU, fromRightV bool) float64 {
	return o.W * bspOne(o.Ku, u, fromRightU) * bspOne(o.Kv, v, fromRightV)
}

// EvaluateDerivs computes the basis value and its partial derivatives up to
// total order nderiv, in the triangular layout
//  [N, Nu, Nv, Nuu, Nuv, Nvv, ...]
// The result has (nderiv+1)(nderiv+2)/2 entries
func (o *Basisfunction) EvaluateDerivs(res []float64, u, v float64, nderiv int, fromRightU, fromRightV bool) {
	du := bspDers(o.Ku, u, fromRightU, nderiv)
	dv := bspDers(o.Kv, v, fromRightV, nderiv)
	k := 0
	for t := 0; t <= nderiv; t++ {
		for j := 0; j <= t; j++ { // j counts v-derivatives
			res[k] = o.W * du[t-j] * dv[j]
			k++
		}
	}
}

// bspOne evaluates the single univariate B-spline defined by the local knot
// vector kn (order p = len(kn)-1) using the Cox-de Boor recursion
func bspOne(kn []float64, x float64, fromRight bool) float64 {
	p := len(kn) - 1 // order
	N := make([]float64, p)
	for i := 0; i < p; i++ {
		if inSpan(kn[i], kn[i+1], x, fromRight) {
			N[i] = 1
		}
	}
	for d := 1; d < p; d++ {
		for i := 0; i+d < p; i++ {
			var a, b float64
			if den := kn[i+d] - kn[i]; den > Tol {
				a = (x - kn[i]) / den * N[i]
			}
			if den := kn[i+d+1] - kn[i+1]; den > Tol {
				b = (kn[i+d+1] - x) / den * N[i+1]
			}
			N[i] = a + b
		}
	}
	return N[0]
}

// bspDers evaluates the single univariate B-spline of kn and its derivatives
// up to order maxd. Derivatives of order >= degree+1 are zero
func bspDers(kn []float64, x float64, fromRight bool, maxd int) (ders []float64) {
	p := len(kn) - 1 // order

	// table N[d][i] with all lower-degree functions at x
	N := make([][]float64, p)
	N[0] = make([]float64, p)
	for i := 0; i < p; i++ {
		if inSpan(kn[i], kn[i+1], x, fromRight) {
			N[0][i] = 1
		}
	}
	for d := 1; d < p; d++ {
		N[d] = make([]float64, p-d)
		for i := 0; i+d < p; i++ {
			var a, b float64
			if den := kn[i+d] - kn[i]; den > Tol {
				a = (x - kn[i]) / den * N[d-1][i]
			}
			if den := kn[i+d+1] - kn[i+1]; den > Tol {
				b = (kn[i+d+1] - x) / den * N[d-1][i+1]
			}
			N[d][i] = a + b
		}
	}

	// derivative recursion on the degree ladder
	var der func(m, d, i int) float64
	der = func(m, d, i int) float64 {
		if m == 0 {
			return N[d][i]
		}
		if m > d {
			return 0
		}
		res := 0.0
		if den := kn[i+d] - kn[i]; den > Tol {
			res += float64(d) / den * der(m-1, d-1, i)
		}
		if den := kn[i+d+1] - kn[i+1]; den > Tol {
			res -= float64(d) / den * der(m-1, d-1, i+1)
		}
		return res
	}
	ders = make([]float64, maxd+1)
	for m := 0; m <= maxd; m++ {
		ders[m] = der(m, p-1, 0)
	}
	return
}

// inSpan tests membership of x in one knot span with the selected convention
func inSpan(lo, hi, x float64, fromRight bool) bool {
	if fromRight {
		return lo <= x && x < hi
	}
	return lo < x && x <= hi
}
