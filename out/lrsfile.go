// Copyright 2017 The Lrs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package out implements the output side of lrs: the (.lrs) text writer, the
// PostScript mesh rendering, plotting of the parameter domain, and a compact
// binary snapshot codec
package out

import (
	"bytes"

	"github.com/cpmech/gosl/io"

	"github.com/cpmech/lrs/lrs"
)

// WriteLrs writes the text representation of a surface; the format is the
// one read by inp.ReadLrs
func WriteLrs(s *lrs.Surface) (buf *bytes.Buffer) {
	s.GenerateIDs()
	buf = new(bytes.Buffer)
	irat := 0
	if s.Rational {
		irat = 1
	}
	io.Ff(buf, "# LRSPLINE\n")
	io.Ff(buf, "#\tp1\tp2\tNbasis\tNline\tNel\tdim\trat\n")
	io.Ff(buf, "\t%d\t%d\t%d\t%d\t%d\t%d\t%d\n", s.Pu, s.Pv, len(s.B), len(s.M), len(s.E), s.Ndim, irat)
	io.Ff(buf, "# Basis functions:\n")
	for _, b := range s.B {
		for _, k := range b.Ku {
			io.Ff(buf, "%g ", k)
		}
		for _, k := range b.Kv {
			io.Ff(buf, "%g ", k)
		}
		for _, c := range b.C {
			io.Ff(buf, "%g ", c)
		}
		io.Ff(buf, "%g\n", b.W)
	}
	io.Ff(buf, "# Mesh lines:\n")
	for _, m := range s.M {
		flag := 0
		if m.SpanU {
			flag = 1
		}
		io.Ff(buf, "%d %g %g %g %d\n", flag, m.ConstPar, m.Start, m.Stop, m.Mult)
	}
	io.Ff(buf, "# Elements:\n")
	for _, e := range s.E {
		io.Ff(buf, "%g %g %g %g %d", e.Umin, e.Vmin, e.Umax, e.Vmax, len(e.Supp))
		for _, f := range e.Supp {
			io.Ff(buf, " %d", f.Id)
		}
		io.Ff(buf, "\n")
	}
	return
}

// SaveLrs writes the text representation to dirout/fnkey.lrs
func SaveLrs(dirout, fnkey string, s *lrs.Surface) {
	io.WriteFileVD(dirout, fnkey+".lrs", WriteLrs(s))
}

// PrintElements prints one line per element
func PrintElements(s *lrs.Surface) {
	for i, e := range s.E {
		if i < 10 {
			io.Pf(" ")
		}
		io.Pf("%d: %v\n", i, e)
	}
}
