// Copyright 2017 The Lrs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"github.com/cpmech/gosl/chk"
	"github.com/fxamacker/cbor/v2"

	"github.com/cpmech/lrs/lrs"
)

// snapshot is the compact binary representation of a surface
type snapshot struct {
	Pu       int        `cbor:"1,keyasint"`
	Pv       int        `cbor:"2,keyasint"`
	Ndim     int        `cbor:"3,keyasint"`
	Rational bool       `cbor:"4,keyasint,omitempty"`
	Basis    []snapBas  `cbor:"5,keyasint"`
	Lines    []snapLine `cbor:"6,keyasint"`
	Elems    []snapElem `cbor:"7,keyasint"`
}

type snapBas struct {
	_  struct{} `cbor:",toarray"`
	Ku []float64
	Kv []float64
	C  []float64
	W  float64
}

type snapLine struct {
	_        struct{} `cbor:",toarray"`
	SpanU    bool
	ConstPar float64
	Start    float64
	Stop     float64
	Mult     int
}

type snapElem struct {
	_                      struct{} `cbor:",toarray"`
	Umin, Vmin, Umax, Vmax float64
	Supp                   []int
}

// EncodeCBOR serialises a surface into a compact binary snapshot
func EncodeCBOR(s *lrs.Surface) (b []byte, err error) {
	basis, lines, elems := s.Snapshot()
	snap := snapshot{Pu: s.Pu, Pv: s.Pv, Ndim: s.Ndim, Rational: s.Rational}
	for _, r := range basis {
		snap.Basis = append(snap.Basis, snapBas{Ku: r.Ku, Kv: r.Kv, C: r.C, W: r.W})
	}
	for _, r := range lines {
		snap.Lines = append(snap.Lines, snapLine{SpanU: r.SpanU, ConstPar: r.ConstPar, Start: r.Start, Stop: r.Stop, Mult: r.Mult})
	}
	for _, r := range elems {
		snap.Elems = append(snap.Elems, snapElem{Umin: r.Umin, Vmin: r.Vmin, Umax: r.Umax, Vmax: r.Vmax, Supp: r.Supp})
	}
	if b, err = cbor.Marshal(snap); err != nil {
		return nil, chk.Err("cannot encode surface:\n%v", err)
	}
	return
}

// DecodeCBOR rebuilds a surface from a binary snapshot
func DecodeCBOR(b []byte) (s *lrs.Surface, err error) {
	var snap snapshot
	if err = cbor.Unmarshal(b, &snap); err != nil {
		return nil, chk.Err("cannot decode surface:\n%v", err)
	}
	var basis []lrs.RawBasis
	var lines []lrs.RawLine
	var elems []lrs.RawElement
	for _, r := range snap.Basis {
		basis = append(basis, lrs.RawBasis{Ku: r.Ku, Kv: r.Kv, C: r.C, W: r.W})
	}
	for _, r := range snap.Lines {
		lines = append(lines, lrs.RawLine{SpanU: r.SpanU, ConstPar: r.ConstPar, Start: r.Start, Stop: r.Stop, Mult: r.Mult})
	}
	for _, r := range snap.Elems {
		elems = append(elems, lrs.RawElement{Umin: r.Umin, Vmin: r.Vmin, Umax: r.Umax, Vmax: r.Vmax, Supp: r.Supp})
	}
	return lrs.Assemble(snap.Pu, snap.Pv, snap.Ndim, snap.Rational, basis, lines, elems)
}
