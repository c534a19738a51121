// Copyright 2017 The Lrs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"bytes"
	"time"

	"github.com/cpmech/gosl/io"

	"github.com/cpmech/lrs/lrs"
)

// WritePostscriptMesh renders the parameter-space mesh as an EPS document.
// Mesh lines with multiplicity greater than one are fanned out by a fraction
// of the smallest knot span so that duplicate knot lines stay visible
func WritePostscriptMesh(s *lrs.Surface) (buf *bytes.Buffer) {

	knotU, knotV := s.GlobalUniqueKnots()
	minSpanU := knotU[1] - knotU[0]
	for i := 1; i < len(knotU)-1; i++ {
		if d := knotU[i+1] - knotU[i]; d < minSpanU {
			minSpanU = d
		}
	}
	minSpanV := knotV[1] - knotV[0]
	for i := 1; i < len(knotV)-1; i++ {
		if d := knotV[i+1] - knotV[i]; d < minSpanV {
			minSpanV = d
		}
	}

	// bounding box
	dx := s.EndU - s.StartU
	dy := s.EndV - s.StartV
	scale := 1000.0 / dy
	if dx > dy {
		scale = 1000.0 / dx
	}

	// duplicate-knot-line display width
	dklRange := minSpanU * scale / 6.0
	if minSpanU > minSpanV {
		dklRange = minSpanV * scale / 6.0
	}
	xmin := int((s.StartU - dx/100.0) * scale)
	ymin := int((s.StartV - dy/100.0) * scale)
	xmax := int((s.EndU+dx/100.0)*scale + dklRange)
	ymax := int((s.EndV+dy/100.0)*scale + dklRange)

	buf = new(bytes.Buffer)
	io.Ff(buf, "%%!PS-Adobe-3.0 EPSF-3.0\n")
	io.Ff(buf, "%%%%Creator: lrs\n")
	io.Ff(buf, "%%%%Title: LR-spline index domain\n")
	io.Ff(buf, "%%%%CreationDate: %s\n", time.Now().Format("02/01/2006"))
	io.Ff(buf, "%%%%Origin: 0 0\n")
	io.Ff(buf, "%%%%BoundingBox: %d %d %d %d\n", xmin, ymin, xmax, ymax)

	io.Ff(buf, "0 setgray\n")
	io.Ff(buf, "1 setlinewidth\n")
	for _, m := range s.M {
		io.Ff(buf, "newpath\n")
		dm := 0.0
		if m.Mult > 1 {
			dm = dklRange / float64(m.Mult-1)
		}
		for k := 0; k < m.Mult; k++ {
			off := dm * float64(k)
			if m.SpanU {
				io.Ff(buf, "%g %g moveto\n", m.Start*scale, m.ConstPar*scale+off)
				stop := m.Stop * scale
				if m.Stop == s.EndU {
					stop += dklRange
				}
				io.Ff(buf, "%g %g lineto\n", stop, m.ConstPar*scale+off)
			} else {
				io.Ff(buf, "%g %g moveto\n", m.ConstPar*scale+off, m.Start*scale)
				stop := m.Stop * scale
				if m.Stop == s.EndV {
					stop += dklRange
				}
				io.Ff(buf, "%g %g lineto\n", m.ConstPar*scale+off, stop)
			}
		}
		io.Ff(buf, "stroke\n")
	}
	io.Ff(buf, "%%%%EOF\n")
	return
}

// SavePostscriptMesh writes the EPS rendering to dirout/fnkey.eps
func SavePostscriptMesh(dirout, fnkey string, s *lrs.Surface) {
	io.WriteFileVD(dirout, fnkey+".eps", WritePostscriptMesh(s))
}
