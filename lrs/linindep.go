// Copyright 2017 The Lrs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lrs

import (
	"math"
	"math/big"

	"github.com/cpmech/gosl/io"
)

// IsLinearlyIndependent decides whether the current set of basis functions is
// linearly independent ("the LR space has a basis"). The projection matrix C
// from the LR basis to the underlying global tensor-product space is built by
// iterated univariate knot insertion in exact rational arithmetic and its
// rank is determined by partial-pivoted Gauss-Jordan elimination.
//  Exact rationals are mandatory here: floating point produces spurious rank
//  deficiencies on meshes with near-coincident insertion coefficients
func (o *Surface) IsLinearlyIndependent(verbose bool) bool {

	knotsU, knotsV := o.GlobalKnots()
	nb := len(o.B)
	n1 := len(knotsU) - o.Pu
	n2 := len(knotsV) - o.Pv
	fullDim := n1 * n2
	fullVerbose := fullDim < 30 && nb < 50
	sparseVerbose := fullDim < 250 && nb < 100

	// scaling factors turning all knots into integers, assuming every knot is
	// a multiple of the smallest span
	smallU, smallV := math.MaxFloat64, math.MaxFloat64
	for i := 0; i < len(knotsU)-1; i++ {
		if d := knotsU[i+1] - knotsU[i]; d > Tol && d < smallU {
			smallU = d
		}
	}
	for i := 0; i < len(knotsV)-1; i++ {
		if d := knotsV[i+1] - knotsV[i]; d > Tol && d < smallV {
			smallV = d
		}
	}
	eps := math.Min(smallU, smallV) / 1000.0

	// projection matrix: one exact-rational row per basis function
	C := make([][]*big.Rat, nb)
	for i, b := range o.B {

		// where this function's local knots begin in the global vectors
		startU := knotStart(knotsU, b.Ku, o.Pu)
		startV := knotStart(knotsV, b.Kv, o.Pv)

		// iterated univariate knot insertion in each direction
		rowU := insertRow(b.Ku, knotsU, startU, o.Pu, smallU, eps)
		rowV := insertRow(b.Kv, knotsV, startV, o.Pv, smallV, eps)

		// outer product scattered into the global row
		total := make([]*big.Rat, fullDim)
		for k := range total {
			total[k] = new(big.Rat)
		}
		for i1 := range rowU {
			for i2 := range rowV {
				total[(startV+i2)*n1+(startU+i1)].Mul(rowV[i2], rowU[i1])
			}
		}
		C[i] = total
	}

	if verbose && sparseVerbose {
		printRatMatrix(C, fullVerbose)
	}

	// partial-pivoted Gauss-Jordan, tolerating leading all-zero columns
	zeroCols := 0
	for i := 0; i < nb && i+zeroCols < fullDim; i++ {
		maxPivot := new(big.Rat)
		maxI := -1
		for j := i; j < nb; j++ {
			if a := new(big.Rat).Abs(C[j][i+zeroCols]); a.Cmp(maxPivot) > 0 {
				maxPivot = a
				maxI = j
			}
		}
		if maxI == -1 {
			i--
			zeroCols++
			continue
		}
		C[i], C[maxI] = C[maxI], C[i]
		for j := i + 1; j < nb; j++ {
			if C[j][i+zeroCols].Sign() == 0 {
				continue
			}
			scale := new(big.Rat).Quo(C[j][i+zeroCols], C[i][i+zeroCols])
			for k := i + zeroCols; k < fullDim; k++ {
				C[j][k].Sub(C[j][k], new(big.Rat).Mul(C[i][k], scale))
			}
		}
	}

	if verbose && sparseVerbose {
		printRatMatrix(C, fullVerbose)
	}

	rank := nb
	if fullDim-zeroCols < nb {
		rank = fullDim - zeroCols
	}
	if verbose {
		io.Pf("matrix size : %d x %d\n", nb, fullDim)
		io.Pf("matrix rank : %d\n", rank)
	}
	return rank == nb
}

// knotStart locates the offset of a local knot vector inside the global one:
// the index of the first entry of the run aligning the local vector's leading
// multiplicity
func knotStart(global, local []float64, p int) int {
	start := len(global) - 1
	for ; start >= 0; start-- {
		if math.Abs(global[start]-local[0]) < Tol {
			break
		}
	}
	for j := 0; j < p; j++ {
		if start >= 0 && math.Abs(global[start]-local[j]) < Tol {
			start--
		} else {
			break
		}
	}
	return start + 1
}

// insertRow builds the exact-rational coordinate row of one univariate
// B-spline (local knots loc) in the global spline space, via the Oslo
// relation applied once per missing global knot. Knots are mapped to
// integers by division with the smallest global span
func insertRow(loc, global []float64, start, p int, small, eps float64) []*big.Rat {
	lk := make([]float64, len(loc))
	copy(lk, loc)
	row := []*big.Rat{big.NewRat(1, 1)}
	cur := start + 1
	for j := 0; j < len(lk)-1; j, cur = j+1, cur+1 {
		if math.Abs(lk[j+1]-global[cur]) < Tol {
			continue
		}
		newRow := make([]*big.Rat, len(row)+1)
		for k := range newRow {
			newRow[k] = new(big.Rat)
		}
		z := int64(global[cur]/small + eps)
		deg := p - 1
		for k := range row {
			kn := func(x int) int64 { return int64(lk[x+k]/small + eps) }
			if z < kn(0) || z > kn(deg+1) {
				newRow[k] = big.NewRat(1, 1)
				continue
			}
			alpha1 := big.NewRat(1, 1)
			if kn(deg) > z {
				alpha1 = big.NewRat(z-kn(0), kn(deg)-kn(0))
			}
			alpha2 := big.NewRat(1, 1)
			if z > kn(1) {
				alpha2 = big.NewRat(kn(deg+1)-z, kn(deg+1)-kn(1))
			}
			newRow[k].Add(newRow[k], new(big.Rat).Mul(row[k], alpha1))
			newRow[k+1].Add(newRow[k+1], new(big.Rat).Mul(row[k], alpha2))
		}
		lk = append(lk[:j+1], append([]float64{global[cur]}, lk[j+1:]...)...)
		row = newRow
	}
	return row
}

// printRatMatrix prints the rational matrix; small instances show the
// entries, larger ones show the sparsity pattern
func printRatMatrix(C [][]*big.Rat, full bool) {
	for _, row := range C {
		io.Pf("|")
		for _, c := range row {
			if c.Sign() == 0 {
				if full {
					io.Pf("\t")
				} else {
					io.Pf(" ")
				}
			} else {
				if full {
					io.Pf("%v\t", c.RatString())
				} else {
					io.Pf("x")
				}
			}
		}
		io.Pf("|\n")
	}
	io.Pf("\n")
}
