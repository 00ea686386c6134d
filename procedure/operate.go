/*
 * operate.go, part of godissolve.
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

	"github.com/rmera/godissolve/data"
	"github.com/rmera/godissolve/genericlist"
	"gonum.org/v1/gonum/floats"
)

// operate holds what all Operate nodes have. They work on the context's operand.
type operate struct{ nodeBase }

func (O *operate) IsContextRelevant(c ContextType) bool { return c == OperateContext }

func operand(ctx *Context) (*data.Data1D, error) {
	if ctx.operand == nil {
		return nil, fmt.Errorf("no data to operate on")
	}
	return ctx.operand, nil
}

// OperateNormalise scales the data so the sum of the absolute values is Value.
type OperateNormalise struct {
	operate
	value float64
}

func NewOperateNormalise(name string, value float64) *OperateNormalise {
	return &OperateNormalise{operate{newBase(name)}, value}
}

func (O *OperateNormalise) Type() NodeType { return OperateNormaliseNode }

func (O *OperateNormalise) Execute(ctx *Context) error {
	D, err := operand(ctx)
	if err != nil {
		return err
	}
	sum := floats.Norm(D.Values(), 1)
	if sum == 0 {
		ctx.Msg.Warn("%s: data sum to zero and can't be normalised", O.name)
		return nil
	}
	D.Scale(O.value / sum)
	return nil
}

func (O *OperateNormalise) keywords(*Procedure) []keyword {
	return []keyword{floatKeyword("Value", &O.value)}
}

// OperateMultiply multiplies the data by Value.
type OperateMultiply struct {
	operate
	value float64
}

func NewOperateMultiply(name string, value float64) *OperateMultiply {
	return &OperateMultiply{operate{newBase(name)}, value}
}

func (O *OperateMultiply) Type() NodeType { return OperateMultiplyNode }

func (O *OperateMultiply) Execute(ctx *Context) error {
	D, err := operand(ctx)
	if err != nil {
		return err
	}
	D.Scale(O.value)
	return nil
}

func (O *OperateMultiply) keywords(*Procedure) []keyword {
	return []keyword{floatKeyword("Value", &O.value)}
}

// OperateDivide divides the data by Value.
type OperateDivide struct {
	operate
	value float64
}

func NewOperateDivide(name string, value float64) *OperateDivide {
	return &OperateDivide{operate{newBase(name)}, value}
}

func (O *OperateDivide) Type() NodeType { return OperateDivideNode }

func (O *OperateDivide) Execute(ctx *Context) error {
	D, err := operand(ctx)
	if err != nil {
		return err
	}
	if O.value == 0 {
		return fmt.Errorf("division by zero")
	}
	D.Scale(1 / O.value)
	return nil
}

func (O *OperateDivide) keywords(*Procedure) []keyword {
	return []keyword{floatKeyword("Value", &O.value)}
}

// siteOperate is an Operate node that uses the site counts of Select nodes.
type siteOperate struct {
	operate
	sites []NodeRef
}

func (O *siteOperate) unlink(dead NodeRef) { O.sites = unlinkRefs(O.sites, dead) }

// AddSites adds Select nodes whose site counts are used.
func (O *siteOperate) AddSites(sel ...NodeRef) { O.sites = append(O.sites, sel...) }

// averages returns the average number of sites selected by each Select node.
func (O *siteOperate) averages(ctx *Context) ([]float64, error) {
	ret := make([]float64, 0, len(O.sites))
	for _, r := range O.sites {
		name := ctx.proc().NodeName(r)
		st, err := genericlist.Retrieve[*SiteStats](ctx.List, name, ctx.Prefix)
		if err != nil {
			return nil, err
		}
		if st.AverageSites() == 0 {
			return nil, fmt.Errorf("Select '%s' selected no sites", name)
		}
		ret = append(ret, st.AverageSites())
	}
	return ret, nil
}

func (O *siteOperate) keywords(P *Procedure) []keyword {
	return []keyword{refsKeyword("Site", &O.sites, true, P, SelectNode)}
}

// OperateSitePopulationNormalise divides the data by the average number of
// sites selected by each of its Select nodes.
type OperateSitePopulationNormalise struct{ siteOperate }

func NewOperateSitePopulationNormalise(name string, sel ...NodeRef) *OperateSitePopulationNormalise {
	return &OperateSitePopulationNormalise{siteOperate{operate{newBase(name)}, sel}}
}

func (O *OperateSitePopulationNormalise) Type() NodeType { return OperateSitePopulationNormaliseNode }

func (O *OperateSitePopulationNormalise) Execute(ctx *Context) error {
	D, err := operand(ctx)
	if err != nil {
		return err
	}
	avg, err := O.averages(ctx)
	if err != nil {
		return err
	}
	for _, a := range avg {
		D.Scale(1 / a)
	}
	return nil
}

// OperateNumberDensityNormalise divides the data by the number density of the
// sites selected by each of its Select nodes, in the configuration's box.
type OperateNumberDensityNormalise struct{ siteOperate }

func NewOperateNumberDensityNormalise(name string, sel ...NodeRef) *OperateNumberDensityNormalise {
	return &OperateNumberDensityNormalise{siteOperate{operate{newBase(name)}, sel}}
}

func (O *OperateNumberDensityNormalise) Type() NodeType { return OperateNumberDensityNormaliseNode }

func (O *OperateNumberDensityNormalise) Execute(ctx *Context) error {
	D, err := operand(ctx)
	if err != nil {
		return err
	}
	avg, err := O.averages(ctx)
	if err != nil {
		return err
	}
	v, err := boxVolume(ctx)
	if err != nil {
		return err
	}
	for _, a := range avg {
		D.Scale(v / a)
	}
	return nil
}

// boxVolume returns the volume of the configuration's box, averaged over the
// ranks that have one. All ranks must call it.
func boxVolume(ctx *Context) (float64, error) {
	buf := make([]float64, 2)
	if ctx.Config != nil && ctx.Config.Box != nil {
		buf[0], buf[1] = ctx.Config.Box.Volume(), 1
	}
	if err := ctx.Pool.AllSum(buf); err != nil {
		return 0, err
	}
	if buf[1] == 0 {
		return 0, fmt.Errorf("no box to take the volume from")
	}
	return buf[0] / buf[1], nil
}

// OperateSphericalShellNormalise divides each point by the volume of the
// spherical shell of its bin, taking x as the bin centres.
type OperateSphericalShellNormalise struct{ operate }

func NewOperateSphericalShellNormalise(name string) *OperateSphericalShellNormalise {
	return &OperateSphericalShellNormalise{operate{newBase(name)}}
}

func (O *OperateSphericalShellNormalise) Type() NodeType { return OperateSphericalShellNormaliseNode }

func (O *OperateSphericalShellNormalise) Execute(ctx *Context) error {
	D, err := operand(ctx)
	if err != nil {
		return err
	}
	x := D.X()
	if len(x) < 2 {
		return fmt.Errorf("need at least two points to know the bin width")
	}
	half := 0.5 * (x[1] - x[0])
	D.DivideEach(func(r float64, i int) float64 {
		lo, hi := math.Max(r-half, 0), r+half
		return 4.0 / 3.0 * math.Pi * (hi*hi*hi - lo*lo*lo)
	})
	return nil
}
