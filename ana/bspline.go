// Copyright 2017 The Lrs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ana implements reference solutions for verification: a global
// tensor-product B-spline surface with classical (span-based) evaluation and
// classical global knot insertion. The implementation is deliberately
// independent from the lrs core so that the two can check each other
package ana

import (
	"github.com/cpmech/gosl/chk"
)

// TensorSurface is a global tensor-product B-spline surface
type TensorSurface struct {
	Pu, Pv int       // polynomial orders (degree+1)
	N1, N2 int       // number of basis functions along u and v
	Ku     []float64 // global knot vector along u [N1+Pu]
	Kv     []float64 // global knot vector along v [N2+Pv]
	Coefs  []float64 // control points, row-major over (v,u), Nc components each
	Nc     int       // number of components per control point
}

// NewTensorSurface builds a tensor-product surface from raw arrays
func NewTensorSurface(n1, n2, pu, pv int, knotU, knotV, coefs []float64, nc int) (o *TensorSurface, err error) {
	if len(knotU) != n1+pu || len(knotV) != n2+pv {
		return nil, chk.Err("knot vector lengths must be n+p")
	}
	if len(coefs) != n1*n2*nc {
		return nil, chk.Err("control point array must have %d components. %d is incorrect", n1*n2*nc, len(coefs))
	}
	o = &TensorSurface{Pu: pu, Pv: pv, N1: n1, N2: n2, Nc: nc}
	o.Ku = append([]float64{}, knotU...)
	o.Kv = append([]float64{}, knotV...)
	o.Coefs = append([]float64{}, coefs...)
	return
}

// findSpan locates the knot span containing t: the index s with
// kn[s] <= t < kn[s+1]; the last nonzero span closes at the right end
func findSpan(kn []float64, n, deg int, t float64) int {
	if t >= kn[n] {
		return n - 1
	}
	s := deg
	for s < n-1 && t >= kn[s+1] {
		s++
	}
	return s
}

// basisFuns computes the deg+1 basis functions that are nonzero on the span
// s at parameter t (The NURBS Book, algorithm A2.2)
func basisFuns(kn []float64, s, deg int, t float64) (N []float64) {
	N = make([]float64, deg+1)
	left := make([]float64, deg+1)
	right := make([]float64, deg+1)
	N[0] = 1
	for j := 1; j <= deg; j++ {
		left[j] = t - kn[s+1-j]
		right[j] = kn[s+j] - t
		saved := 0.0
		for r := 0; r < j; r++ {
			tmp := N[r] / (right[r+1] + left[j-r])
			N[r] = saved + right[r+1]*tmp
			saved = left[j-r] * tmp
		}
		N[j] = saved
	}
	return
}

// Point evaluates the surface at the parametric point (u,v)
func (o *TensorSurface) Point(u, v float64) (x []float64) {
	du, dv := o.Pu-1, o.Pv-1
	su := findSpan(o.Ku, o.N1, du, u)
	sv := findSpan(o.Kv, o.N2, dv, v)
	Nu := basisFuns(o.Ku, su, du, u)
	Nv := basisFuns(o.Kv, sv, dv, v)
	x = make([]float64, o.Nc)
	for b := 0; b <= dv; b++ {
		j := sv - dv + b
		for a := 0; a <= du; a++ {
			i := su - du + a
			for k := 0; k < o.Nc; k++ {
				x[k] += Nu[a] * Nv[b] * o.Coefs[(j*o.N1+i)*o.Nc+k]
			}
		}
	}
	return
}

// InsertKnotU performs one classical (Boehm) global knot insertion at u=t,
// increasing N1 by one while representing the same surface
func (o *TensorSurface) InsertKnotU(t float64) {
	deg := o.Pu - 1
	s := findSpan(o.Ku, o.N1, deg, t)
	n1 := o.N1 + 1
	coefs := make([]float64, n1*o.N2*o.Nc)
	for j := 0; j < o.N2; j++ {
		for i := 0; i < n1; i++ {
			dst := (j*n1 + i) * o.Nc
			switch {
			case i <= s-deg:
				copy(coefs[dst:dst+o.Nc], o.Coefs[(j*o.N1+i)*o.Nc:])
			case i > s:
				copy(coefs[dst:dst+o.Nc], o.Coefs[(j*o.N1+i-1)*o.Nc:])
			default:
				a := (t - o.Ku[i]) / (o.Ku[i+deg] - o.Ku[i])
				for k := 0; k < o.Nc; k++ {
					coefs[dst+k] = a*o.Coefs[(j*o.N1+i)*o.Nc+k] + (1.0-a)*o.Coefs[(j*o.N1+i-1)*o.Nc+k]
				}
			}
		}
	}
	knots := make([]float64, 0, len(o.Ku)+1)
	knots = append(knots, o.Ku[:s+1]...)
	knots = append(knots, t)
	knots = append(knots, o.Ku[s+1:]...)
	o.Ku = knots
	o.Coefs = coefs
	o.N1 = n1
}

// InsertKnotV performs one classical global knot insertion at v=t
func (o *TensorSurface) InsertKnotV(t float64) {
	deg := o.Pv - 1
	s := findSpan(o.Kv, o.N2, deg, t)
	n2 := o.N2 + 1
	coefs := make([]float64, o.N1*n2*o.Nc)
	for j := 0; j < n2; j++ {
		for i := 0; i < o.N1; i++ {
			dst := (j*o.N1 + i) * o.Nc
			switch {
			case j <= s-deg:
				copy(coefs[dst:dst+o.Nc], o.Coefs[(j*o.N1+i)*o.Nc:])
			case j > s:
				copy(coefs[dst:dst+o.Nc], o.Coefs[((j-1)*o.N1+i)*o.Nc:])
			default:
				a := (t - o.Kv[j]) / (o.Kv[j+deg] - o.Kv[j])
				for k := 0; k < o.Nc; k++ {
					coefs[dst+k] = a*o.Coefs[(j*o.N1+i)*o.Nc+k] + (1.0-a)*o.Coefs[((j-1)*o.N1+i)*o.Nc+k]
				}
			}
		}
	}
	knots := make([]float64, 0, len(o.Kv)+1)
	knots = append(knots, o.Kv[:s+1]...)
	knots = append(knots, t)
	knots = append(knots, o.Kv[s+1:]...)
	o.Kv = knots
	o.Coefs = coefs
	o.N2 = n2
}
