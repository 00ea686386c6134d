/*
 * species.go, part of godissolve.
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
	"slices"

	v3 "github.com/rmera/godissolve/v3"
)

// SpeciesAtom is an atom in a species definition.
type SpeciesAtom struct {
	Index  int
	Symbol string  //element
	Name   string  //label, unique or not
	Type   string  //forcefield atom type name, empty if not assigned
	Charge float64 //partial charge, e
	Mass   float64 //amu
}

// SpeciesBond is a bond between atoms I and J.
type SpeciesBond struct {
	I, J   int
	Form   BondForm
	Params []float64
}

// SpeciesAngle is the angle I-J-K, J being the central atom.
type SpeciesAngle struct {
	I, J, K int
	Form    AngleForm
	Params  []float64
}

// SpeciesTorsion is the torsion I-J-K-L around the J-K bond.
type SpeciesTorsion struct {
	I, J, K, L int
	Form       TorsionForm
	Params     []float64
}

// SpeciesImproper is an improper torsion I-J-K-L.
type SpeciesImproper struct {
	I, J, K, L int
	Form       TorsionForm
	Params     []float64
}

// Species is the definition of a molecule: its atoms, connectivity,
// intramolecular terms and the sites defined on it.
type Species struct {
	Name       string
	Forcefield string //name of the forcefield used to assign the terms, if any
	Atoms      []*SpeciesAtom
	Bonds      []*SpeciesBond
	Angles     []*SpeciesAngle
	Torsions   []*SpeciesTorsion
	Impropers  []*SpeciesImproper
	Sites      []*SpeciesSite
}

// NewSpecies returns an empty species with the given name.
func NewSpecies(name string) *Species {
	return &Species{Name: name}
}

// Len returns the number of atoms in the species.
func (S *Species) Len() int {
	return len(S.Atoms)
}

// AddAtom appends an atom to the species and returns it.
// The mass is taken from the element, or left at zero if the element is unknown.
func (S *Species) AddAtom(symbol, name, atype string, charge float64) *SpeciesAtom {
	m, _ := ElementMass(symbol)
	at := &SpeciesAtom{Index: len(S.Atoms), Symbol: symbol, Name: name, Type: atype, Charge: charge, Mass: m}
	S.Atoms = append(S.Atoms, at)
	return at
}

// Atom returns the ith atom. Panics if out of range.
func (S *Species) Atom(i int) *SpeciesAtom {
	if i < 0 || i >= len(S.Atoms) {
		panic("Species: Requested Atom out of bounds")
	}
	return S.Atoms[i]
}

// AddBond adds a bond between atoms i and j, without parameters.
func (S *Species) AddBond(i, j int) (*SpeciesBond, error) {
	if i < 0 || j < 0 || i >= len(S.Atoms) || j >= len(S.Atoms) || i == j {
		return nil, newError("AddBond", "Invalid atom indices %d, %d for species %s with %d atoms", i, j, S.Name, len(S.Atoms))
	}
	if S.HasBond(i, j) {
		return nil, newError("AddBond", "Bond %d-%d already exists in species %s", i, j, S.Name)
	}
	b := &SpeciesBond{I: i, J: j}
	S.Bonds = append(S.Bonds, b)
	return b, nil
}

// HasBond returns true if atoms i and j are bonded.
func (S *Species) HasBond(i, j int) bool {
	for _, b := range S.Bonds {
		if (b.I == i && b.J == j) || (b.I == j && b.J == i) {
			return true
		}
	}
	return false
}

// Bonded returns the indexes of the atoms bonded to atom i, in ascending order.
func (S *Species) Bonded(i int) []int {
	ret := make([]int, 0, 4)
	for _, b := range S.Bonds {
		if b.I == i {
			ret = append(ret, b.J)
		} else if b.J == i {
			ret = append(ret, b.I)
		}
	}
	slices.Sort(ret)
	return ret
}

// AddSite adds a site to the species. The site name must be unique within the species
// and all atom indexes must be valid.
func (S *Species) AddSite(site *SpeciesSite) error {
	if site.Name == "" {
		return newError("AddSite", "Site in species %s has no name", S.Name)
	}
	if S.Site(site.Name) != nil {
		return newError("AddSite", "Site %s already exists in species %s", site.Name, S.Name)
	}
	if len(site.Origin) == 0 {
		return newError("AddSite", "Site %s in species %s has no origin atoms", site.Name, S.Name)
	}
	if (len(site.XAxis) == 0) != (len(site.YAxis) == 0) {
		return newError("AddSite", "Site %s in species %s must define both x and y axis atoms, or neither", site.Name, S.Name)
	}
	for _, l := range [][]int{site.Origin, site.XAxis, site.YAxis} {
		for _, v := range l {
			if v < 0 || v >= len(S.Atoms) {
				return newError("AddSite", "Site %s refers to atom %d, but species %s has %d atoms", site.Name, v, S.Name, len(S.Atoms))
			}
		}
	}
	S.Sites = append(S.Sites, site)
	return nil
}

// Site returns the site with the given name, or nil.
func (S *Species) Site(name string) *SpeciesSite {
	for _, v := range S.Sites {
		if v.Name == name {
			return v
		}
	}
	return nil
}

// Mass returns the total mass of the species.
func (S *Species) Mass() float64 {
	m := 0.0
	for _, a := range S.Atoms {
		m += a.Mass
	}
	return m
}

// Charge returns the total charge of the species.
func (S *Species) Charge() float64 {
	q := 0.0
	for _, a := range S.Atoms {
		q += a.Charge
	}
	return q
}

// IntramolecularEnergy returns the energy of the bonded terms of the species for the
// given coordinates. If box is not nil minimum image vectors are used.
func (S *Species) IntramolecularEnergy(coords *v3.Matrix, box *Box) float64 {
	r := func(i int) [3]float64 { return coords.Vec(i) }
	vec := func(a, b [3]float64) [3]float64 {
		if box != nil {
			return box.MinimumVectorN(a, b)
		}
		return [3]float64{b[0] - a[0], b[1] - a[1], b[2] - a[2]}
	}
	E := 0.0
	for _, b := range S.Bonds {
		if b.Form == BondNone {
			continue
		}
		E += b.Form.Energy(norm(vec(r(b.I), r(b.J))), b.Params)
	}
	for _, a := range S.Angles {
		if a.Form == AngleNone {
			continue
		}
		E += a.Form.Energy(angleBetween(vec(r(a.J), r(a.I)), vec(r(a.J), r(a.K))), a.Params)
	}
	unfold := func(i, j, k, l int) float64 {
		ri := r(i)
		rj := add(ri, vec(ri, r(j)))
		rk := add(rj, vec(r(j), r(k)))
		rl := add(rk, vec(r(k), r(l)))
		return Rad2Deg(Dihedral(v3.NewVec(ri[0], ri[1], ri[2]), v3.NewVec(rj[0], rj[1], rj[2]), v3.NewVec(rk[0], rk[1], rk[2]), v3.NewVec(rl[0], rl[1], rl[2])))
	}
	for _, t := range S.Torsions {
		if t.Form == TorsionNone {
			continue
		}
		E += t.Form.Energy(unfold(t.I, t.J, t.K, t.L), t.Params)
	}
	for _, t := range S.Impropers {
		if t.Form == TorsionNone {
			continue
		}
		E += t.Form.Energy(unfold(t.I, t.J, t.K, t.L), t.Params)
	}
	return E
}
