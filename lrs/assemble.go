// Copyright 2017 The Lrs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lrs

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// RawBasis is one basis function record as stored by readers and codecs
type RawBasis struct {
	Ku []float64 // local knot vector along u
	Kv []float64 // local knot vector along v
	C  []float64 // control point
	W  float64   // weight
}

// RawLine is one mesh-line record
type RawLine struct {
	SpanU    bool    // runs along u (constant-v line)
	ConstPar float64 // fixed perpendicular parameter
	Start    float64 // segment start
	Stop     float64 // segment stop
	Mult     int     // multiplicity
}

// RawElement is one element record; Supp holds indices into the basis table
type RawElement struct {
	Umin, Vmin, Umax, Vmax float64
	Supp                   []int
}

// Assemble reconstructs a surface from raw records, rebuilding the support
// graph from the element records and computing the parameter range from the
// element bounds. The result is checked for consistency before being returned
func Assemble(pu, pv, ndim int, rational bool, basis []RawBasis, lines []RawLine, elems []RawElement) (o *Surface, err error) {

	o = new(Surface)
	o.Pu, o.Pv = pu, pv
	o.Ndim = ndim
	o.Rational = rational
	o.RefMult = 1
	o.Strategy = SAFE

	nc := ndim
	if rational {
		nc++
	}
	for i, r := range basis {
		if len(r.Ku) != pu+1 || len(r.Kv) != pv+1 {
			return nil, chk.Err("basis record %d: knot vectors must have %d and %d entries", i, pu+1, pv+1)
		}
		if len(r.C) != nc {
			return nil, chk.Err("basis record %d: control point must have %d components. %d is incorrect", i, nc, len(r.C))
		}
		o.B = append(o.B, NewBasisfunction(r.Ku, r.Kv, r.C, r.W))
	}
	for i, r := range lines {
		if r.Mult < 1 {
			return nil, chk.Err("mesh-line record %d: multiplicity must be at least 1", i)
		}
		if !(r.Start < r.Stop) {
			return nil, chk.Err("mesh-line record %d: start must be smaller than stop", i)
		}
		o.M = append(o.M, &Meshline{SpanU: r.SpanU, ConstPar: r.ConstPar, Start: r.Start, Stop: r.Stop, Mult: r.Mult})
	}

	o.StartU, o.StartV = math.MaxFloat64, math.MaxFloat64
	o.EndU, o.EndV = -math.MaxFloat64, -math.MaxFloat64
	for i, r := range elems {
		if !(r.Umin < r.Umax) || !(r.Vmin < r.Vmax) {
			return nil, chk.Err("element record %d: empty rectangle", i)
		}
		e := NewElement(r.Umin, r.Vmin, r.Umax, r.Vmax)
		for _, ib := range r.Supp {
			if ib < 0 || ib >= len(o.B) {
				return nil, chk.Err("element record %d: basis index %d is out of range", i, ib)
			}
			e.AddSupportFunction(o.B[ib])
			o.B[ib].Elems = append(o.B[ib].Elems, e)
		}
		o.E = append(o.E, e)
		o.StartU = math.Min(o.StartU, r.Umin)
		o.StartV = math.Min(o.StartV, r.Vmin)
		o.EndU = math.Max(o.EndU, r.Umax)
		o.EndV = math.Max(o.EndV, r.Vmax)
	}

	if err = o.CheckSupportGraph(); err != nil {
		return nil, err
	}
	return
}

// Snapshot dumps the surface into raw records (the inverse of Assemble).
// GenerateIDs is called to obtain stable basis indices
func (o *Surface) Snapshot() (basis []RawBasis, lines []RawLine, elems []RawElement) {
	o.GenerateIDs()
	for _, b := range o.B {
		basis = append(basis, RawBasis{Ku: b.Ku, Kv: b.Kv, C: b.C, W: b.W})
	}
	for _, m := range o.M {
		lines = append(lines, RawLine{SpanU: m.SpanU, ConstPar: m.ConstPar, Start: m.Start, Stop: m.Stop, Mult: m.Mult})
	}
	for _, e := range o.E {
		ids := make([]int, len(e.Supp))
		for i, f := range e.Supp {
			ids[i] = f.Id
		}
		elems = append(elems, RawElement{Umin: e.Umin, Vmin: e.Vmin, Umax: e.Umax, Vmax: e.Vmax, Supp: ids})
	}
	return
}
