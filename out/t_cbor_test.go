// Copyright 2017 The Lrs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cpmech/lrs/lrs"
)

func Test_cbor01(tst *testing.T) {

	kn := []float64{0, 0, 0, 1, 2, 3, 3, 3}
	coefs := make([]float64, 25)
	for i := range coefs {
		coefs[i] = 0.5 + 0.25*float64(i)
	}
	o, err := lrs.NewSurface(5, 5, 3, 3, kn, kn, coefs, 1, false)
	require.NoError(tst, err)
	require.NoError(tst, o.InsertConstULine(1.5, 0, 3, 1))
	require.NoError(tst, o.InsertConstVLine(2.5, 1, 3, 1))

	b, err := EncodeCBOR(o)
	require.NoError(tst, err)
	require.NotEmpty(tst, b)

	s, err := DecodeCBOR(b)
	require.NoError(tst, err)
	require.Equal(tst, o.NbasisFunctions(), s.NbasisFunctions())
	require.Equal(tst, o.Nmeshlines(), s.Nmeshlines())
	require.Equal(tst, o.Nelements(), s.Nelements())
	require.Equal(tst, o.Pu, s.Pu)
	require.Equal(tst, o.Rational, s.Rational)
	require.NoError(tst, s.CheckSupportGraph())

	for _, p := range [][]float64{{0.7, 0.7}, {1.6, 2.2}, {2.9, 2.9}} {
		xo, err := o.Point(p[0], p[1])
		require.NoError(tst, err)
		xs, err := s.Point(p[0], p[1])
		require.NoError(tst, err)
		require.InDelta(tst, xo[0], xs[0], 1e-14)
	}
}

func Test_cbor02(tst *testing.T) {

	// corrupted payloads must not produce partial surfaces
	_, err := DecodeCBOR([]byte{0xff, 0x00, 0x13})
	require.Error(tst, err)
}
