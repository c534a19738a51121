// Copyright 2017 The Lrs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lrs

import (
	"math"

	"github.com/cpmech/gosl/io"
)

// Meshline is one axis-parallel mesh-line segment at a fixed perpendicular
// parameter, with an integer knot multiplicity.
//  A segment with SpanU==true runs along the u axis (constant v);
//  a segment with SpanU==false runs along the v axis (constant u)
type Meshline struct {
	SpanU    bool    // runs along u (constant-v line); otherwise along v (constant-u line)
	ConstPar float64 // the fixed parameter perpendicular to the segment
	Start    float64 // segment start (along the running axis)
	Stop     float64 // segment stop (along the running axis)
	Mult     int     // knot multiplicity carried by this segment; >= 1
}

// SplitsBasis tells whether this segment forces a knot insertion in b:
// the constant parameter lies strictly inside b's open support interval in the
// perpendicular direction and [Start,Stop] covers b's support in the running
// direction (closed, tolerant)
func (o *Meshline) SplitsBasis(b *Basisfunction) bool {
	if o.SpanU {
		return b.Vmin() < o.ConstPar && o.ConstPar < b.Vmax() &&
			o.Start <= b.Umin()+Tol && b.Umax() <= o.Stop+Tol
	}
	return b.Umin() < o.ConstPar && o.ConstPar < b.Umax() &&
		o.Start <= b.Vmin()+Tol && b.Vmax() <= o.Stop+Tol
}

// ContainedInBasis tells whether b's local knot vector already carries the
// constant parameter with multiplicity >= Mult, so that splitting b against
// this segment would produce nothing new
func (o *Meshline) ContainedInBasis(b *Basisfunction) bool {
	kn := b.Ku
	if o.SpanU {
		kn = b.Kv
	}
	count := 0
	for _, k := range kn {
		if math.Abs(k-o.ConstPar) < Tol {
			count++
		}
	}
	return count >= o.Mult
}

// SplitsElement tells whether this segment crosses the element completely:
// the constant parameter lies strictly between the element's bounds in the
// perpendicular direction and the element's extent in the running direction
// lies inside [Start,Stop]
func (o *Meshline) SplitsElement(e *Element) bool {
	if o.SpanU {
		return e.Vmin < o.ConstPar && o.ConstPar < e.Vmax &&
			o.Start <= e.Umin+Tol && e.Umax <= o.Stop+Tol
	}
	return e.Umin < o.ConstPar && o.ConstPar < e.Umax &&
		o.Start <= e.Vmin+Tol && e.Vmax <= o.Stop+Tol
}

// Touches tells whether this segment reaches the element without fully
// crossing it (the segment creates T-joints on the element's boundary)
func (o *Meshline) Touches(e *Element) bool {
	if o.SplitsElement(e) {
		return false
	}
	if o.SpanU {
		return e.Vmin < o.ConstPar && o.ConstPar < e.Vmax &&
			o.Start < e.Umax-Tol && e.Umin+Tol < o.Stop
	}
	return e.Umin < o.ConstPar && o.ConstPar < e.Umax &&
		o.Start < e.Vmax-Tol && e.Vmin+Tol < o.Stop
}

// String returns a one-line description of this segment
func (o *Meshline) String() string {
	if o.SpanU {
		return io.Sf("v=%g: u in [%g, %g] (m=%d)", o.ConstPar, o.Start, o.Stop, o.Mult)
	}
	return io.Sf("u=%g: v in [%g, %g] (m=%d)", o.ConstPar, o.Start, o.Stop, o.Mult)
}
