// Copyright 2017 The Lrs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input side of lrs: the (.sim) JSON refinement
// scripts, the (.lrs) text format reader, and the adapter building a surface
// from a gosl NURBS entity
package inp

import (
	"strconv"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/cpmech/lrs/lrs"
)

// tokens is a whitespace-separated token stream with position tracking for
// error messages. Comment lines beginning with '#' are skipped
type tokens struct {
	vals []string
	pos  int
}

func newTokens(b []byte) (o *tokens) {
	o = new(tokens)
	for _, line := range strings.Split(string(b), "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "#") {
			continue
		}
		o.vals = append(o.vals, strings.Fields(line)...)
	}
	return
}

func (o *tokens) next() (string, error) {
	if o.pos >= len(o.vals) {
		return "", chk.Err("premature end of stream after %d tokens", o.pos)
	}
	o.pos++
	return o.vals[o.pos-1], nil
}

func (o *tokens) float() (float64, error) {
	s, err := o.next()
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, chk.Err("token %d: cannot parse %q as a number", o.pos, s)
	}
	return v, nil
}

func (o *tokens) integer() (int, error) {
	s, err := o.next()
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, chk.Err("token %d: cannot parse %q as an integer", o.pos, s)
	}
	return v, nil
}

func (o *tokens) floats(n int) (vals []float64, err error) {
	vals = make([]float64, n)
	for i := 0; i < n; i++ {
		if vals[i], err = o.float(); err != nil {
			return nil, err
		}
	}
	return
}

// ReadLrs parses the text representation of a locally refined surface:
// a header with "pu pv nbasis nlines nelements ndim rational", one record per
// basis function (local knot vectors, control point, weight), one per
// mesh-line segment (axis flag, constant parameter, start, stop,
// multiplicity) and one per element (rectangle and support indices).
// Lines beginning with '#' are comments. No partial state is kept on errors
func ReadLrs(b []byte) (o *lrs.Surface, err error) {

	t := newTokens(b)

	// header
	var pu, pv, nb, nm, ne, ndim, irat int
	if pu, err = t.integer(); err != nil {
		return
	}
	if pv, err = t.integer(); err != nil {
		return
	}
	if nb, err = t.integer(); err != nil {
		return
	}
	if nm, err = t.integer(); err != nil {
		return
	}
	if ne, err = t.integer(); err != nil {
		return
	}
	if ndim, err = t.integer(); err != nil {
		return
	}
	if irat, err = t.integer(); err != nil {
		return
	}
	rational := irat != 0
	nc := ndim
	if rational {
		nc++
	}
	if pu < 1 || pv < 1 || nb < 1 || nm < 1 || ne < 1 || ndim < 1 {
		return nil, chk.Err("malformed header: pu=%d pv=%d nb=%d nm=%d ne=%d ndim=%d", pu, pv, nb, nm, ne, ndim)
	}

	// basis functions
	basis := make([]lrs.RawBasis, nb)
	for i := 0; i < nb; i++ {
		if basis[i].Ku, err = t.floats(pu + 1); err != nil {
			return
		}
		if basis[i].Kv, err = t.floats(pv + 1); err != nil {
			return
		}
		if basis[i].C, err = t.floats(nc); err != nil {
			return
		}
		if basis[i].W, err = t.float(); err != nil {
			return
		}
	}

	// mesh lines
	lines := make([]lrs.RawLine, nm)
	for i := 0; i < nm; i++ {
		var flag int
		if flag, err = t.integer(); err != nil {
			return
		}
		lines[i].SpanU = flag != 0
		if lines[i].ConstPar, err = t.float(); err != nil {
			return
		}
		if lines[i].Start, err = t.float(); err != nil {
			return
		}
		if lines[i].Stop, err = t.float(); err != nil {
			return
		}
		if lines[i].Mult, err = t.integer(); err != nil {
			return
		}
	}

	// elements
	elems := make([]lrs.RawElement, ne)
	for i := 0; i < ne; i++ {
		if elems[i].Umin, err = t.float(); err != nil {
			return
		}
		if elems[i].Vmin, err = t.float(); err != nil {
			return
		}
		if elems[i].Umax, err = t.float(); err != nil {
			return
		}
		if elems[i].Vmax, err = t.float(); err != nil {
			return
		}
		var ns int
		if ns, err = t.integer(); err != nil {
			return
		}
		elems[i].Supp = make([]int, ns)
		for j := 0; j < ns; j++ {
			if elems[i].Supp[j], err = t.integer(); err != nil {
				return
			}
		}
	}

	return lrs.Assemble(pu, pv, ndim, rational, basis, lines, elems)
}

// ReadLrsFile reads a (.lrs) text file
func ReadLrsFile(fnamepath string) (o *lrs.Surface, err error) {
	b, err := io.ReadFile(fnamepath)
	if err != nil {
		return nil, chk.Err("cannot read %q:\n%v", fnamepath, err)
	}
	return ReadLrs(b)
}
