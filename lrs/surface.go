// Copyright 2017 The Lrs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lrs

import (
	"math"
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// parametric edges
const (
	WEST = iota
	EAST
	SOUTH
	NORTH
	SOUTH_WEST
	SOUTH_EAST
	NORTH_WEST
	NORTH_EAST
)

// Surface holds one locally refined B-spline surface: the active basis
// functions, the mesh-line segments, the elements tiling the parametric
// domain, and the refinement settings. The bidirectional support relation
// between basis functions and elements is maintained as an invariant by
// every mutating operation
type Surface struct {

	// description
	Ndim     int     // dimension of the control points (geometry space)
	Rational bool    // rational (homogeneous) control points
	Pu       int     // polynomial order (degree+1) along u
	Pv       int     // polynomial order (degree+1) along v
	StartU   float64 // parametric start along u
	StartV   float64 // parametric start along v
	EndU     float64 // parametric end along u
	EndV     float64 // parametric end along v

	// core storage for the building blocks
	B []*Basisfunction // active basis functions
	M []*Meshline      // mesh-line segments
	E []*Element       // elements

	// refinement settings
	Strategy    int     // SAFE, MINSPAN, ISOTROPIC_ELEM or ISOTROPIC_FUNC
	RefMult     int     // default multiplicity for refinement requests
	Symmetry    bool    // replicate line requests at the mirrored parametric location
	MaxTjoints  int     // cap on T-joints per element; 0 means unlimited
	CloseGaps   bool    // extend new line endpoints to the nearest enclosing segment
	MaxAspect   float64 // maximum element aspect ratio; 0 means unlimited
	AspectFix   bool    // post-fix (instead of reject) elements violating MaxAspect
	StrictMerge bool    // error out on multiplicity mismatch when merging mesh lines
}

// NewSurface builds a locally refined surface from an initial tensor-product
// spline given as raw arrays
//  Input:
//   n1, n2         -- number of basis functions along u and v
//   pu, pv         -- polynomial orders (degree+1)
//   knotU          -- global knot vector along u [n1+pu]
//   knotV          -- global knot vector along v [n2+pv]
//   coefs          -- control points, row-major over (v,u), each with
//                     ndim (+1 if rational) components
//   ndim           -- geometry dimension
//   rational       -- homogeneous (NURBS) coefficients
func NewSurface(n1, n2, pu, pv int, knotU, knotV, coefs []float64, ndim int, rational bool) (o *Surface, err error) {

	// check
	if n1 < pu || n2 < pv {
		return nil, chk.Err("need at least as many basis functions as the order: n1=%d n2=%d pu=%d pv=%d", n1, n2, pu, pv)
	}
	if len(knotU) != n1+pu || len(knotV) != n2+pv {
		return nil, chk.Err("knot vector lengths must be n+p: len(knotU)=%d != %d or len(knotV)=%d != %d", len(knotU), n1+pu, len(knotV), n2+pv)
	}
	nc := ndim
	if rational {
		nc++
	}
	if len(coefs) != n1*n2*nc {
		return nil, chk.Err("control point array must have %d components. %d is incorrect", n1*n2*nc, len(coefs))
	}
	for i := 0; i < len(knotU)-1; i++ {
		if knotU[i+1] < knotU[i] {
			return nil, chk.Err("knot vector (u) must be non-decreasing")
		}
	}
	for i := 0; i < len(knotV)-1; i++ {
		if knotV[i+1] < knotV[i] {
			return nil, chk.Err("knot vector (v) must be non-decreasing")
		}
	}

	// surface
	o = new(Surface)
	o.Ndim = ndim
	o.Rational = rational
	o.Pu, o.Pv = pu, pv
	o.StartU, o.EndU = knotU[0], knotU[n1]
	o.StartV, o.EndV = knotV[0], knotV[n2]
	o.RefMult = 1
	o.Strategy = SAFE

	// basis functions
	for j := 0; j < n2; j++ {
		for i := 0; i < n1; i++ {
			b := NewBasisfunction(knotU[i:i+pu+1], knotV[j:j+pv+1], coefs[(j*n1+i)*nc:(j*n1+i+1)*nc], 1.0)
			o.B = append(o.B, b)
		}
	}

	// initial mesh lines: one segment per unique knot carrying its multiplicity
	var uniqueU, uniqueV []float64
	for i := 0; i < n1+pu; i++ {
		mult := 1
		for i+1 < n1+pu && knotU[i] == knotU[i+1] {
			i++
			mult++
		}
		o.M = append(o.M, &Meshline{SpanU: false, ConstPar: knotU[i], Start: o.StartV, Stop: o.EndV, Mult: mult})
		uniqueU = append(uniqueU, knotU[i])
	}
	for i := 0; i < n2+pv; i++ {
		mult := 1
		for i+1 < n2+pv && knotV[i] == knotV[i+1] {
			i++
			mult++
		}
		o.M = append(o.M, &Meshline{SpanU: true, ConstPar: knotV[i], Start: o.StartU, Stop: o.EndU, Mult: mult})
		uniqueV = append(uniqueV, knotV[i])
	}

	// elements tile the unique-knot boxes
	for j := 0; j < len(uniqueV)-1; j++ {
		for i := 0; i < len(uniqueU)-1; i++ {
			o.E = append(o.E, NewElement(uniqueU[i], uniqueV[j], uniqueU[i+1], uniqueV[j+1]))
		}
	}

	// support graph
	for _, b := range o.B {
		o.updateSupport(b, o.E)
	}
	return
}

// updateSupport connects f to every element in elems covered by f's support,
// updating both sides of the support graph
func (o *Surface) updateSupport(f *Basisfunction, elems []*Element) {
	for _, e := range elems {
		if f.AddSupport(e) {
			e.AddSupportFunction(f)
		}
	}
}

// NbasisFunctions returns the number of active basis functions
func (o *Surface) NbasisFunctions() int { return len(o.B) }

// Nelements returns the number of elements
func (o *Surface) Nelements() int { return len(o.E) }

// Nmeshlines returns the number of mesh-line segments
func (o *Surface) Nmeshlines() int { return len(o.M) }

// GenerateIDs stamps stable 0-based identifiers on all basis functions and
// elements, in storage order
func (o *Surface) GenerateIDs() {
	for i, b := range o.B {
		b.Id = i
	}
	for i, e := range o.E {
		e.Id = i
	}
}

// ElementContaining performs a linear search for the element containing the
// parametric point (u,v). The search is tie-broken by first match and the
// top/right domain boundary attaches to the element whose upper bound closes
// the domain. Returns -1 if the point lies outside the domain
func (o *Surface) ElementContaining(u, v float64) int {
	for i, e := range o.E {
		if e.Umin <= u && e.Vmin <= v {
			if (u < e.Umax || (u == o.EndU && u <= e.Umax)) &&
				(v < e.Vmax || (v == o.EndV && v <= e.Vmax)) {
				return i
			}
		}
	}
	return -1
}

// Point evaluates the surface at the parametric point (u,v)
func (o *Surface) Point(u, v float64) (x []float64, err error) {
	iel := o.ElementContaining(u, v)
	if iel < 0 {
		return nil, chk.Err("point (%g,%g) is outside the parametric domain [%g,%g] x [%g,%g]", u, v, o.StartU, o.EndU, o.StartV, o.EndV)
	}
	nc := o.Ndim
	if o.Rational {
		nc++
	}
	xh := make([]float64, nc)
	for _, f := range o.E[iel].Supp {
		bev := f.Evaluate(u, v, u != o.EndU, v != o.EndV)
		for k := 0; k < nc; k++ {
			xh[k] += bev * f.C[k]
		}
	}
	if o.Rational {
		x = make([]float64, o.Ndim)
		for k := 0; k < o.Ndim; k++ {
			x[k] = xh[k] / xh[o.Ndim]
		}
		return
	}
	return xh, nil
}

// ComputeBasis evaluates all basis functions supported on the element
// containing (u,v), together with their partial derivatives up to total
// order nderiv. Each row has (nderiv+1)(nderiv+2)/2 entries laid out as
// [N, Nu, Nv, Nuu, Nuv, Nvv, ...]. With iel >= 0 the given element is used
// instead of searching; with iel == -1 and no containing element, all of
// the active functions are evaluated
func (o *Surface) ComputeBasis(u, v float64, nderiv, iel int) (res [][]float64, err error) {
	funcs := o.B
	if iel < 0 {
		iel = o.ElementContaining(u, v)
	}
	if iel >= 0 {
		if iel >= len(o.E) {
			return nil, chk.Err("element index %d is out of range. nelements=%d", iel, len(o.E))
		}
		funcs = o.E[iel].Supp
	}
	nn := (nderiv + 1) * (nderiv + 2) / 2
	res = la.MatAlloc(len(funcs), nn)
	for i, f := range funcs {
		f.EvaluateDerivs(res[i], u, v, nderiv, u != o.EndU, v != o.EndV)
	}
	return
}

// GlobalUniqueKnots returns the sorted unique knot values on each axis,
// collected from the perpendicular mesh-line segments
func (o *Surface) GlobalUniqueKnots() (knotU, knotV []float64) {
	for _, m := range o.M {
		if m.SpanU {
			knotV = append(knotV, m.ConstPar)
		} else {
			knotU = append(knotU, m.ConstPar)
		}
	}
	sort.Float64s(knotU)
	sort.Float64s(knotV)
	knotU = dedup(knotU)
	knotV = dedup(knotV)
	return
}

// GlobalKnots returns the global knot vectors with each unique value
// replicated by the multiplicity of its mesh-line segment
func (o *Surface) GlobalKnots() (knotU, knotV []float64) {
	uu, uv := o.GlobalUniqueKnots()
	for _, k := range uu {
		mult := 1
		for _, m := range o.M {
			if !m.SpanU && math.Abs(m.ConstPar-k) < Tol {
				mult = m.Mult
				break
			}
		}
		for j := 0; j < mult; j++ {
			knotU = append(knotU, k)
		}
	}
	for _, k := range uv {
		mult := 1
		for _, m := range o.M {
			if m.SpanU && math.Abs(m.ConstPar-k) < Tol {
				mult = m.Mult
				break
			}
		}
		for j := 0; j < mult; j++ {
			knotV = append(knotV, k)
		}
	}
	return
}

// EdgeFunctions collects the basis functions clamped to a parametric edge.
// depth selects how many repeated end knots qualify (1 for the outermost layer)
func (o *Surface) EdgeFunctions(edge, depth int) (funcs []*Basisfunction) {
	onW := func(b *Basisfunction) bool { return b.Ku[o.Pu-depth] == o.StartU }
	onE := func(b *Basisfunction) bool { return b.Ku[depth] == o.EndU }
	onS := func(b *Basisfunction) bool { return b.Kv[o.Pv-depth] == o.StartV }
	onN := func(b *Basisfunction) bool { return b.Kv[depth] == o.EndV }
	for _, b := range o.B {
		keep := false
		switch edge {
		case WEST:
			keep = onW(b)
		case EAST:
			keep = onE(b)
		case SOUTH:
			keep = onS(b)
		case NORTH:
			keep = onN(b)
		case SOUTH_WEST:
			keep = onS(b) && onW(b)
		case SOUTH_EAST:
			keep = onS(b) && onE(b)
		case NORTH_WEST:
			keep = onN(b) && onW(b)
		case NORTH_EAST:
			keep = onN(b) && onE(b)
		}
		if keep {
			funcs = append(funcs, b)
		}
	}
	return
}

// EdgeElements collects the elements touching a parametric edge
func (o *Surface) EdgeElements(edge int) (elems []*Element) {
	for _, e := range o.E {
		keep := false
		switch edge {
		case WEST:
			keep = e.Umin == o.StartU
		case EAST:
			keep = e.Umax == o.EndU
		case SOUTH:
			keep = e.Vmin == o.StartV
		case NORTH:
			keep = e.Vmax == o.EndV
		}
		if keep {
			elems = append(elems, e)
		}
	}
	return
}

// CheckSupportGraph verifies the bidirectional support relation; it returns
// an error describing the first inconsistency found. Used by tests and by
// readers after reconstructing a surface
func (o *Surface) CheckSupportGraph() (err error) {
	for _, b := range o.B {
		for _, e := range b.Elems {
			if !b.Overlaps(e) {
				return chk.Err("support graph: function does not cover registered element %v", e)
			}
			found := false
			for _, f := range e.Supp {
				if f == b {
					found = true
					break
				}
			}
			if !found {
				return chk.Err("support graph: element %v is missing the back reference", e)
			}
		}
		if len(b.Elems) < 1 {
			return chk.Err("support graph: basis function with empty support list")
		}
	}
	for _, e := range o.E {
		for _, f := range e.Supp {
			found := false
			for _, x := range f.Elems {
				if x == e {
					found = true
					break
				}
			}
			if !found {
				return chk.Err("support graph: function is missing the back reference to %v", e)
			}
		}
	}
	return
}

// dedup removes consecutive duplicates from a sorted slice
func dedup(vals []float64) []float64 {
	if len(vals) == 0 {
		return vals
	}
	out := vals[:1]
	for _, v := range vals[1:] {
		if math.Abs(v-out[len(out)-1]) > Tol {
			out = append(out, v)
		}
	}
	return out
}
