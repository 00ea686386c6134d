/*
 * calculate.go, part of godissolve.
 *
 * Copyright 2026 The godissolve Authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package procedure

import (
	"fmt"
	"math"
	"strings"

	dissolve "github.com/rmera/godissolve"
	"github.com/rmera/godissolve/lineparser"
)

var siteKeywordNames = []string{"I", "J", "K", "L"}

// calculate holds what all calculate nodes have: the Select nodes supplying
// their sites, and the buffer for their value.
type calculate struct {
	nodeBase
	sites []NodeRef
	value []float64
}

func newCalculate(name string, dim int, sites ...NodeRef) calculate {
	return calculate{nodeBase: newBase(name), sites: sites, value: make([]float64, dim)}
}

func (C *calculate) IsContextRelevant(c ContextType) bool { return c == AnalysisContext }

// Dimensionality returns the number of components of the calculated value.
func (C *calculate) Dimensionality() int { return len(C.value) }

// NSites returns the number of sites the node needs.
func (C *calculate) NSites() int { return len(C.sites) }

func (C *calculate) unlink(dead NodeRef) {
	for i := range C.sites {
		unlinkRef(&C.sites[i], dead)
	}
}

// currentSites returns the current sites of the node's Select nodes.
func (C *calculate) currentSites(ctx *Context) ([]*dissolve.Site, error) {
	ret := make([]*dissolve.Site, len(C.sites))
	for i, r := range C.sites {
		if r == NoNode {
			return nil, fmt.Errorf("site %s is not set", siteKeywordNames[i])
		}
		s, err := ctx.CurrentSite(r)
		if err != nil {
			return nil, fmt.Errorf("site %s: %w", siteKeywordNames[i], err)
		}
		ret[i] = s
	}
	return ret, nil
}

func (C *calculate) siteKeywords(P *Procedure) []keyword {
	ret := make([]keyword, len(C.sites))
	for i := range C.sites {
		ret[i] = refKeyword(siteKeywordNames[i], &C.sites[i], false, P, SelectNode)
	}
	return ret
}

func (C *calculate) keywords(P *Procedure) []keyword { return C.siteKeywords(P) }

// CalculateDistance calculates the minimum image distance between two sites.
type CalculateDistance struct{ calculate }

// NewCalculateDistance returns a node calculating the distance between the current
// sites of the Select nodes i and j.
func NewCalculateDistance(name string, i, j NodeRef) *CalculateDistance {
	return &CalculateDistance{newCalculate(name, 1, i, j)}
}

func (C *CalculateDistance) Type() NodeType { return CalculateDistanceNode }

func (C *CalculateDistance) Execute(ctx *Context) error {
	s, err := C.currentSites(ctx)
	if err != nil {
		return err
	}
	C.value[0] = ctx.Config.Box.MinimumDistance(s[0].Origin, s[1].Origin)
	ctx.setValue(C.ref, C.value)
	return nil
}

// CalculateAngle calculates the angle, in degrees, between three sites, the
// second being the vertex.
type CalculateAngle struct{ calculate }

// NewCalculateAngle returns a node calculating the angle i-j-k between the current
// sites of three Select nodes.
func NewCalculateAngle(name string, i, j, k NodeRef) *CalculateAngle {
	return &CalculateAngle{newCalculate(name, 1, i, j, k)}
}

func (C *CalculateAngle) Type() NodeType { return CalculateAngleNode }

func (C *CalculateAngle) Execute(ctx *Context) error {
	s, err := C.currentSites(ctx)
	if err != nil {
		return err
	}
	C.value[0] = ctx.Config.Box.Angle(s[0].Origin, s[1].Origin, s[2].Origin)
	ctx.setValue(C.ref, C.value)
	return nil
}

// Axis is one of the axes of a site's local frame.
type Axis int

const (
	XAxis Axis = iota
	YAxis
	ZAxis
)

func (a Axis) String() string { return [...]string{"X", "Y", "Z"}[a] }

func parseAxis(s string) (Axis, error) {
	switch strings.ToUpper(s) {
	case "X":
		return XAxis, nil
	case "Y":
		return YAxis, nil
	case "Z":
		return ZAxis, nil
	}
	return 0, fmt.Errorf("'%s' is not an axis (X, Y or Z)", s)
}

// CalculateAxisAngle calculates the angle, in degrees, between an axis of the
// frame of one site and an axis of the frame of another.
type CalculateAxisAngle struct {
	calculate
	axes      [2]Axis
	symmetric bool
}

// NewCalculateAxisAngle returns a node calculating the angle between axis ai of the
// current site of i, and axis aj of the current site of j.
func NewCalculateAxisAngle(name string, i NodeRef, ai Axis, j NodeRef, aj Axis) *CalculateAxisAngle {
	return &CalculateAxisAngle{calculate: newCalculate(name, 1, i, j), axes: [2]Axis{ai, aj}}
}

func (C *CalculateAxisAngle) Type() NodeType { return CalculateAxisAngleNode }

// SetSymmetric folds angles above 90 degrees back into 0-90.
func (C *CalculateAxisAngle) SetSymmetric(s bool) { C.symmetric = s }

func (C *CalculateAxisAngle) Execute(ctx *Context) error {
	s, err := C.currentSites(ctx)
	if err != nil {
		return err
	}
	for i, site := range s {
		if !site.HasAxes() {
			return fmt.Errorf("site %s has no axes", siteKeywordNames[i])
		}
	}
	a := s[0].Axes.Vec(int(C.axes[0]))
	b := s[1].Axes.Vec(int(C.axes[1]))
	cos := (a[0]*b[0] + a[1]*b[1] + a[2]*b[2]) / (math.Sqrt(a[0]*a[0]+a[1]*a[1]+a[2]*a[2]) * math.Sqrt(b[0]*b[0]+b[1]*b[1]+b[2]*b[2]))
	angle := dissolve.Rad2Deg(math.Acos(math.Max(-1, math.Min(1, cos))))
	if C.symmetric && angle > 90 {
		angle = 180 - angle
	}
	C.value[0] = angle
	ctx.setValue(C.ref, C.value)
	return nil
}

func (C *CalculateAxisAngle) keywords(P *Procedure) []keyword {
	axis := func(name string, a *Axis) keyword {
		return keyword{
			name: name, minArgs: 1, maxArgs: 1,
			read: func(r *reader, args []string) error {
				var err error
				*a, err = parseAxis(args[0])
				return err
			},
			write: func(W *lineparser.Writer) error { return W.WriteLine("%s  %s", name, *a) },
		}
	}
	kws := C.siteKeywords(P)
	return append(kws,
		axis("AxisI", &C.axes[0]),
		axis("AxisJ", &C.axes[1]),
		boolKeyword("Symmetric", &C.symmetric, false))
}

// CalculateVector calculates the minimum image vector from one site to another,
// optionally expressed in the frame of the first site.
type CalculateVector struct {
	calculate
	rotate bool
}

// NewCalculateVector returns a node calculating the vector from the current site
// of i to the current site of j.
func NewCalculateVector(name string, i, j NodeRef) *CalculateVector {
	return &CalculateVector{calculate: newCalculate(name, 3, i, j)}
}

func (C *CalculateVector) Type() NodeType { return CalculateVectorNode }

// SetRotateIntoFrame sets whether the vector is expressed in the frame of site I.
func (C *CalculateVector) SetRotateIntoFrame(r bool) { C.rotate = r }

func (C *CalculateVector) Execute(ctx *Context) error {
	s, err := C.currentSites(ctx)
	if err != nil {
		return err
	}
	v := ctx.Config.Box.MinimumVectorN(s[0].Origin.Vec(0), s[1].Origin.Vec(0))
	if C.rotate {
		if !s[0].HasAxes() {
			return fmt.Errorf("site I has no axes to rotate into")
		}
		var r [3]float64
		for i := 0; i < 3; i++ {
			ax := s[0].Axes.Vec(i)
			r[i] = v[0]*ax[0] + v[1]*ax[1] + v[2]*ax[2]
		}
		v = r
	}
	copy(C.value, v[:])
	ctx.setValue(C.ref, C.value)
	return nil
}

func (C *CalculateVector) keywords(P *Procedure) []keyword {
	return append(C.siteKeywords(P), boolKeyword("RotateIntoFrame", &C.rotate, false))
}
