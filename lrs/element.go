// Copyright 2017 The Lrs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lrs

import "github.com/cpmech/gosl/io"

// Element is one axis-aligned rectangle of the parametric domain together
// with the set of basis functions whose support covers it
type Element struct {
	Id   int              // identifier stamped by Surface.GenerateIDs; -1 when not set
	Umin float64          // left bound
	Vmin float64          // bottom bound
	Umax float64          // right bound
	Vmax float64          // top bound
	Supp []*Basisfunction // basis functions supported on this element
}

// NewElement allocates a new element without support functions
func NewElement(umin, vmin, umax, vmax float64) (o *Element) {
	o = new(Element)
	o.Id = -1
	o.Umin, o.Vmin, o.Umax, o.Vmax = umin, vmin, umax, vmax
	return
}

// Du returns the extent along u
func (o *Element) Du() float64 { return o.Umax - o.Umin }

// Dv returns the extent along v
func (o *Element) Dv() float64 { return o.Vmax - o.Vmin }

// Area returns the parametric area
func (o *Element) Area() float64 { return o.Du() * o.Dv() }

// AddSupportFunction registers a basis function on this element
func (o *Element) AddSupportFunction(f *Basisfunction) {
	for _, x := range o.Supp {
		if x == f {
			return
		}
	}
	o.Supp = append(o.Supp, f)
}

// RemoveSupportFunction unregisters a basis function from this element
func (o *Element) RemoveSupportFunction(f *Basisfunction) {
	for i, x := range o.Supp {
		if x == f {
			o.Supp = append(o.Supp[:i], o.Supp[i+1:]...)
			return
		}
	}
}

// Split divides this element at par, shrinking it in place and returning the
// newly created half. Each half inherits every support function whose support
// still covers it; both sides of the support graph are kept in sync
//  Input:
//   splitU -- true means cut at u=par (left/right halves); false cuts at v=par
func (o *Element) Split(splitU bool, par float64) (newElem *Element) {
	if splitU {
		newElem = NewElement(par, o.Vmin, o.Umax, o.Vmax)
		o.Umax = par
	} else {
		newElem = NewElement(o.Umin, par, o.Umax, o.Vmax)
		o.Vmax = par
	}
	for i := 0; i < len(o.Supp); i++ {
		f := o.Supp[i]
		if f.AddSupport(newElem) {
			newElem.AddSupportFunction(f)
		}
		if !f.Overlaps(o) {
			f.RemoveSupport(o)
			o.Supp = append(o.Supp[:i], o.Supp[i+1:]...)
			i--
		}
	}
	return
}

// String returns a one-line description of this element
func (o *Element) String() string {
	return io.Sf("(%g, %g) x (%g, %g) nsupp=%d", o.Umin, o.Umax, o.Vmin, o.Vmax, len(o.Supp))
}
