// Copyright 2017 The Lrs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lrs

import (
	"math"
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// refinement strategies: how an element to be refined is converted into
// mesh-line requests
const (
	SAFE           = iota // central cross spanning the union of all supports touching the element
	MINSPAN               // central cross spanning the shortest support touching the element
	ISOTROPIC_ELEM        // tile with the minimum extent among the supports' elements
	ISOTROPIC_FUNC        // tile with the minimum single-knot span among the supports
)

// lineRequest is one pending mesh-line insertion produced by a strategy
type lineRequest struct {
	constU          bool    // constant-u line (runs along v)
	at, start, stop float64 // line position and span
	mult            int     // multiplicity
}

// InsertConstULine inserts the mesh-line segment u=cst for v in [start,stop]
// with the given multiplicity
func (o *Surface) InsertConstULine(cst, start, stop float64, mult int) error {
	return o.InsertLine(true, cst, start, stop, mult)
}

// InsertConstVLine inserts the mesh-line segment v=cst for u in [start,stop]
// with the given multiplicity
func (o *Surface) InsertConstVLine(cst, start, stop float64, mult int) error {
	return o.InsertLine(false, cst, start, stop, mult)
}

// InsertLine inserts one axis-parallel mesh-line segment and restores all
// invariants: the segment is merged with collinear overlapping segments,
// every split basis function is replaced by its children (with absorption of
// coincident functions), crossed elements are halved, and newly created
// functions are re-split against all existing segments until a fixpoint is
// reached.
//  Requests outside the parametric domain are ignored with no mutation.
//  Zero-length intervals are rejected
func (o *Surface) InsertLine(constU bool, cst, start, stop float64, mult int) (err error) {

	// reject malformed / out-of-domain requests
	if stop-start < Tol {
		return chk.Err("zero-length mesh-line interval: start=%g stop=%g", start, stop)
	}
	if mult < 1 {
		return chk.Err("mesh-line multiplicity must be at least 1. %d is invalid", mult)
	}
	if constU {
		if cst < o.StartU-Tol || cst > o.EndU+Tol {
			return // no-op: the split has nothing to act on
		}
	} else {
		if cst < o.StartV-Tol || cst > o.EndV+Tol {
			return
		}
	}

	newline := &Meshline{SpanU: !constU, ConstPar: cst, Start: start, Stop: stop, Mult: mult}

	// phase 0: merge with collinear segments whose intervals touch or overlap
	for i := 0; i < len(o.M); i++ {
		m := o.M[i]
		if m.SpanU == newline.SpanU && math.Abs(m.ConstPar-cst) < Tol &&
			m.Start <= newline.Stop+Tol && m.Stop+Tol >= newline.Start {
			if m.Start < newline.Start {
				newline.Start = m.Start
			}
			if m.Stop > newline.Stop {
				newline.Stop = m.Stop
			}
			if m.Mult != newline.Mult {
				if o.StrictMerge {
					return chk.Err("cannot merge mesh lines with different multiplicities: %v and %v", newline, m)
				}
				// the higher multiplicity wins: isotropic refinement routinely
				// merges lines of different multiplicities, and a request at an
				// existing knot with a higher multiplicity promotes it
				if m.Mult > newline.Mult {
					newline.Mult = m.Mult
				}
			}
			o.M = append(o.M[:i], o.M[i+1:]...)
			i--
		}
	}

	nOld := len(o.B)
	nRemoved := 0

	// phase 1: split every existing function crossed by the new line
	for i := 0; i < nOld-nRemoved; i++ {
		if newline.SplitsBasis(o.B[i]) && !newline.ContainedInBasis(o.B[i]) {
			o.split(constU, i, cst, newline.Mult)
			i-- // splitting removes the function at i
			nRemoved++
		}
	}

	// phase 1: halve every element crossed by the new line
	for i := 0; i < len(o.E); i++ {
		if newline.SplitsElement(o.E[i]) {
			o.E = append(o.E, o.E[i].Split(!newline.SpanU, cst))
		}
	}

	// connect the new functions to the element halves their supports cover
	for _, b := range o.B[nOld-nRemoved:] {
		o.updateSupport(b, o.E)
	}

	// phase 2: re-test the new functions against every segment until stable
	o.M = append(o.M, newline)
	first := nOld - nRemoved - 1
	if first < 0 {
		first = 0
	}
	for i := first; i < len(o.B); i++ {
		for _, m := range o.M {
			if m.SplitsBasis(o.B[i]) && !m.ContainedInBasis(o.B[i]) {
				o.split(!m.SpanU, i, m.ConstPar, m.Mult)
				i-- // index i now holds the next function; the children were appended
				break
			}
		}
	}
	return
}

// split performs the Boehm knot insertion of newKnot into the local knot
// vector of the function at index idx, replacing it with up to two children.
// Children coincident with an existing function are absorbed into it.
// Children still straddling newKnot are split recursively while mult > 1.
// Returns the number of genuinely new basis functions
func (o *Surface) split(insertInU bool, idx int, newKnot float64, mult int) (nnew int) {

	b := o.B[idx]
	knot := b.Kv
	if insertInU {
		knot = b.Ku
	}
	p := len(knot) - 1
	if newKnot < knot[0] || knot[p] < newKnot {
		return 0
	}
	ii := 0
	for knot[ii] < newKnot {
		ii++
	}
	alpha1 := 1.0
	if ii != p {
		alpha1 = (newKnot - knot[0]) / (knot[p-1] - knot[0])
	}
	alpha2 := 1.0
	if ii != 1 {
		alpha2 = (knot[p] - newKnot) / (knot[p] - knot[1])
	}
	newKnots := make([]float64, p+2)
	newKnots[0] = newKnot
	copy(newKnots[1:], knot)
	sort.Float64s(newKnots)

	var b1, b2 *Basisfunction
	if insertInU {
		b1 = NewBasisfunction(newKnots[:p+1], b.Kv, b.C, b.W*alpha1)
		b2 = NewBasisfunction(newKnots[1:], b.Kv, b.C, b.W*alpha2)
	} else {
		b1 = NewBasisfunction(b.Ku, newKnots[:p+1], b.C, b.W*alpha1)
		b2 = NewBasisfunction(b.Ku, newKnots[1:], b.C, b.W*alpha2)
	}

	// for each child, search the support lists of the parent's elements that
	// the child covers for a coincident function
	for _, e := range b.Elems {
		for _, f := range e.Supp {
			if b1 != nil && b1.Overlaps(e) && f.Equals(b1) {
				f.Absorb(b1)
				b1 = nil
			} else if b2 != nil && b2.Overlaps(e) && f.Equals(b2) {
				f.Absorb(b2)
				b2 = nil
			}
		}
	}

	// replace the parent by the surviving children
	o.B = append(o.B[:idx], o.B[idx+1:]...)
	parentElems := b.Elems
	if b1 != nil {
		o.B = append(o.B, b1)
		o.updateSupport(b1, parentElems)
		straddles := insertInU && b1.Ku[p] != newKnot || !insertInU && b1.Kv[p] != newKnot
		if mult > 1 && straddles {
			nnew += o.split(insertInU, len(o.B)-1, newKnot, mult-1)
		} else {
			nnew++
		}
	}
	if b2 != nil {
		o.B = append(o.B, b2)
		o.updateSupport(b2, parentElems)
		straddles := insertInU && b2.Ku[0] != newKnot || !insertInU && b2.Kv[0] != newKnot
		if mult > 1 && straddles {
			nnew += o.split(insertInU, len(o.B)-1, newKnot, mult-1)
		} else {
			nnew++
		}
	}

	// disconnect the parent
	for _, e := range parentElems {
		e.RemoveSupportFunction(b)
	}
	return
}

// RefineElement refines one element with the current strategy
func (o *Surface) RefineElement(id, mult int) error {
	return o.RefineElements([]int{id}, mult)
}

// RefineElements refines the listed elements with the current strategy.
// mult <= 0 selects the surface's default multiplicity
func (o *Surface) RefineElements(ids []int, mult int) (err error) {
	if mult <= 0 {
		mult = o.RefMult
	}
	var reqs []lineRequest
	for _, id := range ids {
		if id < 0 || id >= len(o.E) {
			return chk.Err("element index %d is out of range. nelements=%d", id, len(o.E))
		}
		reqs = append(reqs, o.elementLineRequests(o.E[id], mult)...)
	}
	return o.submit(reqs)
}

// RefineBasisFunctions refines the listed basis functions: each receives a
// central constant-u and constant-v line across its support.
// mult <= 0 selects the surface's default multiplicity
func (o *Surface) RefineBasisFunctions(ids []int, mult int) (err error) {
	if mult <= 0 {
		mult = o.RefMult
	}
	var reqs []lineRequest
	for _, id := range ids {
		if id < 0 || id >= len(o.B) {
			return chk.Err("basis function index %d is out of range. nbasis=%d", id, len(o.B))
		}
		b := o.B[id]
		reqs = append(reqs,
			lineRequest{true, (b.Umin() + b.Umax()) / 2.0, b.Vmin(), b.Vmax(), mult},
			lineRequest{false, (b.Vmin() + b.Vmax()) / 2.0, b.Umin(), b.Umax(), mult},
		)
	}
	return o.submit(reqs)
}

// submit runs the pending line requests through InsertLine, replicating them
// at the mirrored location first if symmetry is on, and applies the
// configured post-refinement fixes
func (o *Surface) submit(reqs []lineRequest) (err error) {
	if o.Symmetry {
		n := len(reqs)
		for i := 0; i < n; i++ {
			reqs = append(reqs, o.mirror(reqs[i]))
		}
	}
	for _, r := range reqs {
		if err = o.InsertLine(r.constU, r.at, r.start, r.stop, r.mult); err != nil {
			return
		}
	}
	return o.postFix()
}

// mirror reflects a line request about the centre of the parametric domain
func (o *Surface) mirror(r lineRequest) lineRequest {
	if r.constU {
		return lineRequest{true, o.StartU + o.EndU - r.at, o.StartV + o.EndV - r.stop, o.StartV + o.EndV - r.start, r.mult}
	}
	return lineRequest{false, o.StartV + o.EndV - r.at, o.StartU + o.EndU - r.stop, o.StartU + o.EndU - r.start, r.mult}
}

// elementLineRequests converts one element into mesh-line requests according
// to the current strategy
func (o *Surface) elementLineRequests(e *Element, mult int) (reqs []lineRequest) {

	umin, umax := e.Umin, e.Umax
	vmin, vmax := e.Vmin, e.Vmax

	switch o.Strategy {

	case SAFE:
		// widest u- and v-extent among all supports touching the element
		for _, f := range e.Supp {
			umin = utl.Min(umin, f.Umin())
			umax = utl.Max(umax, f.Umax())
			vmin = utl.Min(vmin, f.Vmin())
			vmax = utl.Max(vmax, f.Vmax())
		}
		reqs = append(reqs,
			lineRequest{true, (e.Umin + e.Umax) / 2.0, vmin, vmax, mult},
			lineRequest{false, (e.Vmin + e.Vmax) / 2.0, umin, umax, mult},
		)

	case MINSPAN:
		// shortest u- and v-extent among all supports touching the element
		minDu, minDv := math.MaxFloat64, math.MaxFloat64
		for _, f := range e.Supp {
			if f.Umax()-f.Umin() < minDu {
				umin, umax = f.Umin(), f.Umax()
				minDu = umax - umin
			}
			if f.Vmax()-f.Vmin() < minDv {
				vmin, vmax = f.Vmin(), f.Vmax()
				minDv = vmax - vmin
			}
		}
		reqs = append(reqs,
			lineRequest{true, (e.Umin + e.Umax) / 2.0, vmin, vmax, mult},
			lineRequest{false, (e.Vmin + e.Vmax) / 2.0, umin, umax, mult},
		)

	case ISOTROPIC_FUNC, ISOTROPIC_ELEM:
		du, dv := o.isotropicSpans(e)
		u := e.Umin + du
		for u < e.Umax-Tol {
			reqs = append(reqs, lineRequest{true, u, vmin, vmax, mult})
			u += du
		}
		v := e.Vmin + dv
		for v < e.Vmax-Tol {
			reqs = append(reqs, lineRequest{false, v, umin, umax, mult})
			v += dv
		}
	}
	return
}

// isotropicSpans computes the tiling spans for the isotropic strategies: the
// minimum nonzero single-knot span (ISOTROPIC_FUNC) or the minimum extent of
// the supports' elements (ISOTROPIC_ELEM), halved when all spans are equal
func (o *Surface) isotropicSpans(e *Element) (du, dv float64) {
	minDu, minDv := math.MaxFloat64, math.MaxFloat64
	firstU, firstV := true, true
	allDuEq, allDvEq := true, true

	consider := func(span float64, min *float64, first, allEq *bool) {
		if math.Abs(span) < Tol {
			return // zero spans carry no geometry
		}
		if !*first && math.Abs(*min-span) > Tol {
			*allEq = false
		}
		if span < *min {
			*min = span
		}
		*first = false
	}

	for _, f := range e.Supp {
		if o.Strategy == ISOTROPIC_FUNC {
			for j := 0; j < o.Pu; j++ {
				consider(f.Ku[j+1]-f.Ku[j], &minDu, &firstU, &allDuEq)
			}
			for j := 0; j < o.Pv; j++ {
				consider(f.Kv[j+1]-f.Kv[j], &minDv, &firstV, &allDvEq)
			}
		} else {
			for _, ee := range f.Elems {
				consider(ee.Du(), &minDu, &firstU, &allDuEq)
				consider(ee.Dv(), &minDv, &firstV, &allDvEq)
			}
		}
	}
	du, dv = minDu, minDv
	if allDuEq {
		du = minDu / 2.0
	}
	if allDvEq {
		dv = minDv / 2.0
	}
	return
}

// postFix applies the configured a-posteriori mesh fixes after a batch of
// insertions: gap closing, T-joint capping and aspect-ratio control
func (o *Surface) postFix() (err error) {
	if o.CloseGaps {
		if err = o.closeGapsFix(); err != nil {
			return
		}
	}
	if o.MaxTjoints > 0 {
		if err = o.maxTjointsFix(); err != nil {
			return
		}
	}
	if o.MaxAspect > 0 {
		if err = o.aspectRatioFix(); err != nil {
			return
		}
	}
	return
}

// closeGapsFix extends segment endpoints that stop strictly inside the domain
// without terminating on an enclosing perpendicular segment, walking each
// endpoint out to the nearest perpendicular segment that covers it
func (o *Surface) closeGapsFix() (err error) {
	for changed := true; changed; {
		changed = false
		var exts []lineRequest
		for _, m := range o.M {
			lo, hi := o.StartV, o.EndV
			if m.SpanU {
				lo, hi = o.StartU, o.EndU
			}
			start, stop := m.Start, m.Stop
			if m.Start > lo+Tol && !o.endsOnSegment(m, m.Start) {
				start = o.nearestCrossing(m, m.Start, -1)
			}
			if m.Stop < hi-Tol && !o.endsOnSegment(m, m.Stop) {
				stop = o.nearestCrossing(m, m.Stop, +1)
			}
			if start < m.Start-Tol || stop > m.Stop+Tol {
				exts = append(exts, lineRequest{!m.SpanU, m.ConstPar, start, stop, m.Mult})
			}
		}
		for _, r := range exts {
			if err = o.InsertLine(r.constU, r.at, r.start, r.stop, r.mult); err != nil {
				return
			}
			changed = true
		}
	}
	return
}

// endsOnSegment tells whether the endpoint at parameter t of segment m lies
// on a perpendicular segment covering m's constant parameter
func (o *Surface) endsOnSegment(m *Meshline, t float64) bool {
	for _, p := range o.M {
		if p.SpanU != m.SpanU && math.Abs(p.ConstPar-t) < Tol &&
			p.Start <= m.ConstPar+Tol && m.ConstPar <= p.Stop+Tol {
			return true
		}
	}
	return false
}

// nearestCrossing walks from t in the given direction to the closest
// perpendicular segment covering m's constant parameter; falls back to the
// domain edge when none exists
func (o *Surface) nearestCrossing(m *Meshline, t float64, dir int) float64 {
	lo, hi := o.StartV, o.EndV
	if m.SpanU {
		lo, hi = o.StartU, o.EndU
	}
	best := lo
	if dir > 0 {
		best = hi
	}
	for _, p := range o.M {
		if p.SpanU == m.SpanU {
			continue
		}
		if !(p.Start <= m.ConstPar+Tol && m.ConstPar <= p.Stop+Tol) {
			continue
		}
		if dir < 0 && p.ConstPar < t-Tol && p.ConstPar > best {
			best = p.ConstPar
		}
		if dir > 0 && p.ConstPar > t+Tol && p.ConstPar < best {
			best = p.ConstPar
		}
	}
	return best
}

// maxTjointsFix extends partial segments across elements carrying more
// T-joints than the configured cap
func (o *Surface) maxTjointsFix() (err error) {
	for changed := true; changed; {
		changed = false
		for _, e := range o.E {
			var touching []*Meshline
			for _, m := range o.M {
				if m.Touches(e) {
					touching = append(touching, m)
				}
			}
			if len(touching) <= o.MaxTjoints {
				continue
			}
			for _, m := range touching {
				lo, hi := e.Umin, e.Umax
				if !m.SpanU {
					lo, hi = e.Vmin, e.Vmax
				}
				start := utl.Min(m.Start, lo)
				stop := utl.Max(m.Stop, hi)
				if err = o.InsertLine(!m.SpanU, m.ConstPar, start, stop, m.Mult); err != nil {
					return
				}
			}
			changed = true
			break // the element list changed; rescan
		}
	}
	return
}

// aspectRatioFix bisects elements whose extent ratio exceeds the bound along
// their long axis. Without the fix flag, a violating element is an error
func (o *Surface) aspectRatioFix() (err error) {
	for changed := true; changed; {
		changed = false
		for i, e := range o.E {
			ratio := utl.Max(e.Du()/e.Dv(), e.Dv()/e.Du())
			if ratio <= o.MaxAspect+Tol {
				continue
			}
			if !o.AspectFix {
				return chk.Err("element %d has aspect ratio %g above the %g bound", i, ratio, o.MaxAspect)
			}
			// bisect along the long axis, spanning the union of supports so the
			// element is guaranteed to split
			umin, umax, vmin, vmax := e.Umin, e.Umax, e.Vmin, e.Vmax
			for _, f := range e.Supp {
				umin = utl.Min(umin, f.Umin())
				umax = utl.Max(umax, f.Umax())
				vmin = utl.Min(vmin, f.Vmin())
				vmax = utl.Max(vmax, f.Vmax())
			}
			if e.Du() > e.Dv() {
				err = o.InsertLine(true, (e.Umin+e.Umax)/2.0, vmin, vmax, o.RefMult)
			} else {
				err = o.InsertLine(false, (e.Vmin+e.Vmax)/2.0, umin, umax, o.RefMult)
			}
			if err != nil {
				return
			}
			changed = true
			break // the element list changed; rescan
		}
	}
	return
}
