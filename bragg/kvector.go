/*
 * kvector.go, part of godissolve.
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

package bragg

import (
	"fmt"
	"math"
	"sort"

	dissolve "github.com/rmera/godissolve"
)

// KVector is a reciprocal lattice vector, by its integer indices, and the
// reflection it contributes to.
type KVector struct {
	H, K, L    int
	Reflection int
}

// Cartesian returns the Cartesian k-vector for the given reciprocal axes (one per row).
func (kv KVector) Cartesian(rAxes [3][3]float64) [3]float64 {
	var k [3]float64
	for j := 0; j < 3; j++ {
		k[j] = float64(kv.H)*rAxes[0][j] + float64(kv.K)*rAxes[1][j] + float64(kv.L)*rAxes[2][j]
	}
	return k
}

func reciprocal(box *dissolve.Box) [3][3]float64 {
	r := box.ReciprocalAxes()
	var ret [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			ret[i][j] = r.At(i, j)
		}
	}
	return ret
}

// GenerateKVectors returns the k-vectors of one hemisphere of reciprocal space
// with magnitudes between qMin and qMax, and the reflections they are binned into.
// Reflections collect the k-vectors whose magnitudes fall in the same bin of width
// qBinWidth; their Q is the mean magnitude, and they are sorted by Q. Only
// orthorhombic boxes are supported.
func GenerateKVectors(box *dissolve.Box, qMin, qMax, qBinWidth float64) ([]KVector, []*Reflection, error) {
	if !box.Orthorhombic() {
		return nil, nil, fmt.Errorf("GenerateKVectors: only orthorhombic boxes are supported")
	}
	if qBinWidth <= 0 || qMax <= qMin || qMax <= 0 {
		return nil, nil, fmt.Errorf("GenerateKVectors: invalid Q range %g-%g with bin width %g", qMin, qMax, qBinWidth)
	}
	l := box.Lengths()
	var r, max [3]float64
	for i := range r {
		r[i] = 2 * math.Pi / l[i]
		max[i] = math.Ceil(qMax / r[i])
	}
	type bin struct {
		sum  float64
		kvec []int
	}
	bins := make(map[int]*bin)
	var kvs []KVector
	hmax, kmax, lmax := int(max[0]), int(max[1]), int(max[2])
	for h := 0; h <= hmax; h++ {
		for k := -kmax; k <= kmax; k++ {
			for m := -lmax; m <= lmax; m++ {
				//one of each +/- pair
				if h == 0 && (k < 0 || (k == 0 && m <= 0)) {
					continue
				}
				x, y, z := float64(h)*r[0], float64(k)*r[1], float64(m)*r[2]
				q := math.Sqrt(x*x + y*y + z*z)
				if q < qMin || q > qMax {
					continue
				}
				b := int(q / qBinWidth)
				if bins[b] == nil {
					bins[b] = &bin{}
				}
				bins[b].sum += q
				bins[b].kvec = append(bins[b].kvec, len(kvs))
				kvs = append(kvs, KVector{H: h, K: k, L: m})
			}
		}
	}
	keys := make([]int, 0, len(bins))
	for b := range bins {
		keys = append(keys, b)
	}
	sort.Ints(keys)
	refs := make([]*Reflection, len(keys))
	for i, b := range keys {
		refs[i] = NewReflection(bins[b].sum/float64(len(bins[b].kvec)), i)
		refs[i].AddKVectors(len(bins[b].kvec))
		for _, kv := range bins[b].kvec {
			kvs[kv].Reflection = i
		}
	}
	return kvs, refs, nil
}

// TypeIndex assigns an index to each distinct atom type in the configuration, in
// order of first appearance, and returns the index of each atom and the type names.
// Atoms without a forcefield type are typed by element.
func TypeIndex(C *dissolve.Configuration) ([]int, []string) {
	idx := make([]int, 0, C.NAtoms())
	seen := make(map[string]int)
	var names []string
	for _, mol := range C.Molecules {
		for _, at := range mol.Species.Atoms {
			t := at.Type
			if t == "" {
				t = at.Symbol
			}
			i, ok := seen[t]
			if !ok {
				i = len(names)
				seen[t] = i
				names = append(names, t)
			}
			idx = append(idx, i)
		}
	}
	return idx, names
}

// Accumulate adds the partial intensities of the configuration, for each k-vector,
// to the reflection the k-vector belongs to. typeIndex gives the type of each atom
// and every reflection must be initialised for nTypes types. Each k-vector stands
// for itself and its inverse, so contributes twice.
func Accumulate(C *dissolve.Configuration, typeIndex []int, nTypes int, kvs []KVector, refs []*Reflection) error {
	if len(typeIndex) != C.NAtoms() {
		return fmt.Errorf("bragg.Accumulate: %d type indices for %d atoms", len(typeIndex), C.NAtoms())
	}
	for _, R := range refs {
		if R.NTypes() != nTypes {
			return fmt.Errorf("bragg.Accumulate: reflection %d holds %d types, need %d", R.Index(), R.NTypes(), nTypes)
		}
	}
	if C.NAtoms() == 0 {
		return nil
	}
	rAxes := reciprocal(C.Box)
	cos := make([]float64, nTypes)
	sin := make([]float64, nTypes)
	for _, kv := range kvs {
		if kv.Reflection < 0 || kv.Reflection >= len(refs) {
			return fmt.Errorf("bragg.Accumulate: k-vector %d %d %d points to reflection %d of %d", kv.H, kv.K, kv.L, kv.Reflection, len(refs))
		}
		k := kv.Cartesian(rAxes)
		for t := range cos {
			cos[t], sin[t] = 0, 0
		}
		for i, t := range typeIndex {
			r := C.Coords.Vec(i)
			s, c := math.Sincos(k[0]*r[0] + k[1]*r[1] + k[2]*r[2])
			cos[t] += c
			sin[t] += s
		}
		R := refs[kv.Reflection]
		for i := 0; i < nTypes; i++ {
			for j := 0; j < nTypes; j++ {
				R.AddIntensity(i, j, 2*(cos[i]*cos[j]+sin[i]*sin[j]))
			}
		}
	}
	return nil
}
