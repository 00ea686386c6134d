/*
 * site.go, part of godissolve.
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

package dissolve

import (
	v3 "github.com/rmera/godissolve/v3"
)

// SpeciesSite defines a site on a species: an origin computed from one or more atoms
// and, optionally, a local frame from the x and y axis atoms.
type SpeciesSite struct {
	Name         string
	Origin       []int
	MassWeighted bool
	XAxis        []int
	YAxis        []int
}

// HasAxes returns true if the site defines a local frame.
func (S *SpeciesSite) HasAxes() bool {
	return len(S.XAxis) > 0 && len(S.YAxis) > 0
}

// Site is an instance of a site in a configuration.
type Site struct {
	Molecule int        //index of the molecule in the configuration
	Atom     int        //configuration index of the atom, for sites on a single atom, or -1
	Origin   *v3.Matrix //1x3
	Axes     *v3.Matrix //3x3, the rows are the x, y and z axes. nil if the site has no axes.
}

// HasAxes returns true if the site has a local frame.
func (S *Site) HasAxes() bool {
	return S.Axes != nil
}

// Axis returns a view of the ith axis (0=x, 1=y, 2=z) of the site. Panics if the site has no axes.
func (S *Site) Axis(i int) *v3.Matrix {
	if S.Axes == nil {
		panic("Site: Requested axis for a site without axes")
	}
	return S.Axes.VecView(i)
}

// average returns the (optionally mass-weighted) average position of the given atoms
// of a molecule, unfolded around the first of them.
func (C *Configuration) average(mol *Molecule, atoms []int, massWeighted bool) [3]float64 {
	ref := C.Coords.Vec(mol.Offset + atoms[0])
	var sum [3]float64
	wsum := 0.0
	for _, i := range atoms {
		w := 1.0
		if massWeighted {
			w = mol.Species.Atoms[i].Mass
		}
		d := C.Box.MinimumVectorN(ref, C.Coords.Vec(mol.Offset+i))
		for k := 0; k < 3; k++ {
			sum[k] += w * d[k]
		}
		wsum += w
	}
	for k := 0; k < 3; k++ {
		sum[k] = ref[k] + sum[k]/wsum
	}
	return sum
}

// siteOf computes the site S for the molecule mol.
func (C *Configuration) siteOf(mol *Molecule, S *SpeciesSite) *Site {
	o := C.average(mol, S.Origin, S.MassWeighted)
	site := &Site{Molecule: mol.Index, Atom: -1, Origin: v3.NewVec(o[0], o[1], o[2])}
	if len(S.Origin) == 1 {
		site.Atom = mol.Offset + S.Origin[0]
	}
	if !S.HasAxes() {
		return site
	}
	xp := C.average(mol, S.XAxis, false)
	yp := C.average(mol, S.YAxis, false)
	x := C.Box.MinimumVectorN(o, xp)
	y := C.Box.MinimumVectorN(o, yp)
	xn := norm(x)
	for k := 0; k < 3; k++ {
		x[k] /= xn
	}
	//orthogonalise y with respect to x
	d := x[0]*y[0] + x[1]*y[1] + x[2]*y[2]
	for k := 0; k < 3; k++ {
		y[k] -= d * x[k]
	}
	yn := norm(y)
	for k := 0; k < 3; k++ {
		y[k] /= yn
	}
	z := [3]float64{x[1]*y[2] - x[2]*y[1], x[2]*y[0] - x[0]*y[2], x[0]*y[1] - x[1]*y[0]}
	site.Axes = v3.Zeros(3)
	site.Axes.SetVec(0, x)
	site.Axes.SetVec(1, y)
	site.Axes.SetVec(2, z)
	return site
}

// SiteStack returns the instances of the site with the given name for all molecules
// of species sp in the configuration, in molecule order.
func (C *Configuration) SiteStack(sp *Species, name string) ([]*Site, error) {
	S := sp.Site(name)
	if S == nil {
		return nil, newError("SiteStack", "Species %s has no site named %s", sp.Name, name)
	}
	ret := make([]*Site, 0, C.SpeciesPopulation(sp))
	for _, mol := range C.Molecules {
		if mol.Species != sp {
			continue
		}
		ret = append(ret, C.siteOf(mol, S))
	}
	return ret, nil
}
