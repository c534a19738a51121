// Copyright 2017 The Lrs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"encoding/json"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/cpmech/lrs/lrs"
)

// Data holds global data for refinement simulations
type Data struct {
	Desc    string `json:"desc"`    // description of simulation
	DirOut  string `json:"dirout"`  // directory for output; e.g. /tmp/lrs
	Fnkey   string `json:"fnkey"`   // filename key for output files
	LrsFile string `json:"lrsfile"` // read the initial surface from a (.lrs) text file instead of "surface"
}

// SurfaceData holds the initial tensor-product spline given as raw arrays
type SurfaceData struct {
	N1       int       `json:"n1"`       // number of basis functions along u
	N2       int       `json:"n2"`       // number of basis functions along v
	Pu       int       `json:"pu"`       // order (degree+1) along u
	Pv       int       `json:"pv"`       // order (degree+1) along v
	KnotsU   []float64 `json:"knotsu"`   // global knot vector along u [n1+pu]
	KnotsV   []float64 `json:"knotsv"`   // global knot vector along v [n2+pv]
	Coefs    []float64 `json:"coefs"`    // control points, row-major over (v,u)
	Ndim     int       `json:"ndim"`     // geometry dimension
	Rational bool      `json:"rational"` // homogeneous (NURBS) coefficients
}

// Settings holds the refinement knobs
type Settings struct {
	Strategy    string  `json:"strategy"`    // "safe", "minspan", "isoelem" or "isofunc"
	Mult        int     `json:"mult"`        // default multiplicity for refinement requests
	Symmetry    bool    `json:"symmetry"`    // replicate line requests at the mirrored location
	MaxTjoints  int     `json:"maxtjoints"`  // cap on T-joints per element; 0 means unlimited
	CloseGaps   bool    `json:"closegaps"`   // extend endpoints to the nearest enclosing segment
	MaxAspect   float64 `json:"maxaspect"`   // maximum element aspect ratio; 0 means unlimited
	AspectFix   bool    `json:"aspectfix"`   // post-fix violating elements instead of rejecting
	StrictMerge bool    `json:"strictmerge"` // error out on multiplicity mismatch during merging
}

// LineReq is one direct mesh-line request within a stage
type LineReq struct {
	At    float64 `json:"at"`    // constant parameter of the line
	Start float64 `json:"start"` // span start
	Stop  float64 `json:"stop"`  // span stop
	Mult  int     `json:"mult"`  // multiplicity; 0 means the stage default
}

// Stage holds one refinement stage
type Stage struct {
	Desc      string    `json:"desc"`      // description of stage
	Elements  []int     `json:"elements"`  // element indices to refine with the strategy
	Functions []int     `json:"functions"` // basis function indices to refine centrally
	Ulines    []LineReq `json:"ulines"`    // direct constant-u line requests
	Vlines    []LineReq `json:"vlines"`    // direct constant-v line requests
	Mult      int       `json:"mult"`      // multiplicity for this stage; 0 means the default
}

// Simulation holds a full refinement script read from a (.sim) JSON file
type Simulation struct {
	Data    Data        `json:"data"`     // global data
	Surface SurfaceData `json:"surface"`  // initial tensor-product surface
	Set     Settings    `json:"settings"` // refinement settings
	Stages  []Stage     `json:"stages"`   // refinement stages
	Dir     string      // directory where the .sim file was read from
}

// ReadSim reads a simulation script from a JSON (.sim) file
//  Note: returns nil on errors
func ReadSim(dir, fn string) (o *Simulation, err error) {
	fnamepath := filepath.Join(dir, fn)
	b, err := io.ReadFile(fnamepath)
	if err != nil {
		return nil, chk.Err("cannot read simulation file %q:\n%v", fnamepath, err)
	}
	o = new(Simulation)
	if err = json.Unmarshal(b, o); err != nil {
		return nil, chk.Err("cannot parse simulation file %q:\n%v", fnamepath, err)
	}
	o.Dir = dir
	o.SetDefault()
	return
}

// SetDefault fills unset values with defaults
func (o *Simulation) SetDefault() {
	if o.Data.DirOut == "" {
		o.Data.DirOut = "/tmp/lrs"
	}
	if o.Data.Fnkey == "" {
		o.Data.Fnkey = "lrs"
	}
	if o.Set.Strategy == "" {
		o.Set.Strategy = "safe"
	}
	if o.Set.Mult < 1 {
		o.Set.Mult = 1
	}
}

// Strategy converts the strategy name into the lrs constant
func (o *Simulation) Strategy() (int, error) {
	switch o.Set.Strategy {
	case "safe":
		return lrs.SAFE, nil
	case "minspan":
		return lrs.MINSPAN, nil
	case "isoelem":
		return lrs.ISOTROPIC_ELEM, nil
	case "isofunc":
		return lrs.ISOTROPIC_FUNC, nil
	}
	return 0, chk.Err("unknown refinement strategy %q", o.Set.Strategy)
}

// MakeSurface builds the initial surface and applies the settings
func (o *Simulation) MakeSurface() (s *lrs.Surface, err error) {
	if o.Data.LrsFile != "" {
		s, err = ReadLrsFile(filepath.Join(o.Dir, o.Data.LrsFile))
	} else {
		d := &o.Surface
		s, err = lrs.NewSurface(d.N1, d.N2, d.Pu, d.Pv, d.KnotsU, d.KnotsV, d.Coefs, d.Ndim, d.Rational)
	}
	if err != nil {
		return
	}
	strat, err := o.Strategy()
	if err != nil {
		return nil, err
	}
	s.Strategy = strat
	s.RefMult = o.Set.Mult
	s.Symmetry = o.Set.Symmetry
	s.MaxTjoints = o.Set.MaxTjoints
	s.CloseGaps = o.Set.CloseGaps
	s.MaxAspect = o.Set.MaxAspect
	s.AspectFix = o.Set.AspectFix
	s.StrictMerge = o.Set.StrictMerge
	return
}

// ApplyStage runs one refinement stage on a surface
func (o *Simulation) ApplyStage(s *lrs.Surface, idx int) (err error) {
	if idx < 0 || idx >= len(o.Stages) {
		return chk.Err("stage index %d is out of range. nstages=%d", idx, len(o.Stages))
	}
	stg := &o.Stages[idx]
	mult := stg.Mult
	if mult < 1 {
		mult = o.Set.Mult
	}
	for _, r := range stg.Ulines {
		m := r.Mult
		if m < 1 {
			m = mult
		}
		if err = s.InsertConstULine(r.At, r.Start, r.Stop, m); err != nil {
			return
		}
	}
	for _, r := range stg.Vlines {
		m := r.Mult
		if m < 1 {
			m = mult
		}
		if err = s.InsertConstVLine(r.At, r.Start, r.Stop, m); err != nil {
			return
		}
	}
	if len(stg.Elements) > 0 {
		if err = s.RefineElements(stg.Elements, mult); err != nil {
			return
		}
	}
	if len(stg.Functions) > 0 {
		if err = s.RefineBasisFunctions(stg.Functions, mult); err != nil {
			return
		}
	}
	return
}
