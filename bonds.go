/*
 * bonds.go, part of godissolve.
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
	"sort"

	v3 "github.com/rmera/godissolve/v3"
)

const (
	tooclose = 0.63
	bondtol  = 0.45
)

// Covalent radii from Cordero et al., 2008 (DOI:10.1039/B801115J).
// H is given a longer radius, the extra bonds are dropped by the
// maximum bond count.
var symbolCovrad = map[string]float64{
	"H":  0.4,
	"C":  0.76, //sp3
	"O":  0.66,
	"N":  0.71,
	"P":  1.07,
	"S":  1.05,
	"K":  2.03,
	"Ca": 1.76,
	"Mg": 1.41,
	"Cl": 1.02,
	"Na": 1.66,
	"Cu": 1.32,
	"Zn": 1.22,
	"Fe": 1.52, //hs
	"Si": 1.11,
	"F":  0.57,
	"Br": 1.2,
	"I":  1.39,
}

// Maximum number of bonds for each element. Elements not
// present are not checked.
var symbolMaxBonds = map[string]int{
	"H":  1,
	"C":  4,
	"O":  2,
	"F":  1,
	"Cl": 1,
	"Br": 1,
	"I":  1,
}

// AddMissingBonds adds bonds between the atoms of the species that are closer than
// the sum of their covalent radii plus a tolerance, in the given coordinates. Shorter
// bonds are added first, and no bonds are added to atoms that already have the maximum
// number of bonds for their element. If box is not nil, minimum image distances are
// used. It returns the number of bonds added.
func (S *Species) AddMissingBonds(coords *v3.Matrix, box *Box) (int, error) {
	if coords == nil || coords.NVecs() != S.Len() {
		return 0, newError("AddMissingBonds", "Species %s has %d atoms, coordinates don't match", S.Name, S.Len())
	}
	type candidate struct {
		i, j int
		d    float64
	}
	var cands []candidate
	for i := 0; i < S.Len(); i++ {
		for j := i + 1; j < S.Len(); j++ {
			if S.HasBond(i, j) {
				continue
			}
			r1, ok1 := symbolCovrad[S.Atoms[i].Symbol]
			r2, ok2 := symbolCovrad[S.Atoms[j].Symbol]
			if !ok1 || !ok2 {
				return 0, newError("AddMissingBonds", "No covalent radius for the atoms %d (%s) or %d (%s) of species %s", i, S.Atoms[i].Symbol, j, S.Atoms[j].Symbol, S.Name)
			}
			var d float64
			if box != nil {
				d = box.MinimumDistance(coords.VecView(i), coords.VecView(j))
			} else {
				a, b := coords.Vec(i), coords.Vec(j)
				d = norm([3]float64{b[0] - a[0], b[1] - a[1], b[2] - a[2]})
			}
			if d < r1+r2+bondtol && d > tooclose {
				cands = append(cands, candidate{i, j, d})
			}
		}
	}
	sort.SliceStable(cands, func(a, b int) bool { return cands[a].d < cands[b].d })
	nbonds := make([]int, S.Len())
	for i := range nbonds {
		nbonds[i] = len(S.Bonded(i))
	}
	full := func(i int) bool {
		m, ok := symbolMaxBonds[S.Atoms[i].Symbol]
		return ok && nbonds[i] >= m
	}
	added := 0
	for _, c := range cands {
		if full(c.i) || full(c.j) {
			continue
		}
		if _, err := S.AddBond(c.i, c.j); err != nil {
			return added, err
		}
		nbonds[c.i]++
		nbonds[c.j]++
		added++
	}
	return added, nil
}
