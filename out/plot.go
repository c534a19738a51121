// Copyright 2017 The Lrs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/plt"

	"github.com/cpmech/lrs/lrs"
)

// PlotMesh draws the parameter-space mesh with one line per mesh-line
// segment; the line width grows with the knot multiplicity. The plot is
// saved as dirout/fnkey.png unless show is true
func PlotMesh(s *lrs.Surface, dirout, fnkey string, show bool) {
	plt.SetForPng(1, 600, 150)
	for _, m := range s.M {
		var x, y []float64
		if m.SpanU {
			x = []float64{m.Start, m.Stop}
			y = []float64{m.ConstPar, m.ConstPar}
		} else {
			x = []float64{m.ConstPar, m.ConstPar}
			y = []float64{m.Start, m.Stop}
		}
		plt.Plot(x, y, io.Sf("'k-', lw=%d, clip_on=0", m.Mult))
	}
	plt.Gll("$u$", "$v$", "")
	plt.Equal()
	plt.AxisRange(s.StartU, s.EndU, s.StartV, s.EndV)
	if show {
		plt.Show()
		return
	}
	plt.SaveD(dirout, fnkey+".png")
}

// PlotElements draws the element rectangles with their ids at the centres
func PlotElements(s *lrs.Surface, dirout, fnkey string, show bool) {
	plt.SetForPng(1, 600, 150)
	s.GenerateIDs()
	for _, e := range s.E {
		x := []float64{e.Umin, e.Umax, e.Umax, e.Umin, e.Umin}
		y := []float64{e.Vmin, e.Vmin, e.Vmax, e.Vmax, e.Vmin}
		plt.Plot(x, y, "'b-', clip_on=0")
		plt.Text((e.Umin+e.Umax)/2.0, (e.Vmin+e.Vmax)/2.0, io.Sf("%d", e.Id), "ha='center', size=7")
	}
	plt.Gll("$u$", "$v$", "")
	plt.Equal()
	if show {
		plt.Show()
		return
	}
	plt.SaveD(dirout, fnkey+".png")
}
