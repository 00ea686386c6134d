/*
 * configuration.go, part of godissolve.
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

// Molecule is an instance of a species in a configuration.
type Molecule struct {
	Index   int //position in the configuration's molecule list
	Offset  int //configuration index of the first atom
	Species *Species
}

// Len returns the number of atoms in the molecule.
func (M *Molecule) Len() int {
	return M.Species.Len()
}

// Configuration is a periodic box full of molecules, i.e. one frame of a simulated system.
type Configuration struct {
	Name      string
	Box       *Box
	Molecules []*Molecule
	Coords    *v3.Matrix //nil while the configuration is empty
	atomMol   []int      //molecule index of each atom
}

// NewConfiguration returns an empty configuration with the given box.
func NewConfiguration(name string, box *Box) *Configuration {
	return &Configuration{Name: name, Box: box}
}

// NAtoms returns the number of atoms in the configuration.
func (C *Configuration) NAtoms() int {
	return len(C.atomMol)
}

// AddMolecule adds a molecule of species sp with the given coordinates, which
// must contain one vector per atom of the species.
func (C *Configuration) AddMolecule(sp *Species, coords *v3.Matrix) (*Molecule, error) {
	if sp.Len() == 0 {
		return nil, newError("AddMolecule", "Species %s has no atoms", sp.Name)
	}
	if coords == nil || coords.NVecs() != sp.Len() {
		return nil, newError("AddMolecule", "Species %s has %d atoms but coordinates were given for a different number", sp.Name, sp.Len())
	}
	mol := &Molecule{Index: len(C.Molecules), Offset: C.NAtoms(), Species: sp}
	C.Molecules = append(C.Molecules, mol)
	C.Coords = v3.Stack(C.Coords, coords)
	for i := 0; i < sp.Len(); i++ {
		C.atomMol = append(C.atomMol, mol.Index)
	}
	return mol, nil
}

// Atom returns the molecule the configuration atom i belongs to, and the
// corresponding species atom.
func (C *Configuration) Atom(i int) (*Molecule, *SpeciesAtom) {
	mol := C.Molecules[C.atomMol[i]]
	return mol, mol.Species.Atoms[i-mol.Offset]
}

// SetCoords replaces the coordinates of the configuration, e.g. with those of a new frame.
func (C *Configuration) SetCoords(coords *v3.Matrix) error {
	if coords == nil || coords.NVecs() != C.NAtoms() {
		return newError("SetCoords", "Configuration %s has %d atoms, coordinates don't match", C.Name, C.NAtoms())
	}
	C.Coords = coords
	return nil
}

// SpeciesPopulation returns the number of molecules of species sp.
func (C *Configuration) SpeciesPopulation(sp *Species) int {
	n := 0
	for _, m := range C.Molecules {
		if m.Species == sp {
			n++
		}
	}
	return n
}

// RemoveMolecules removes all molecules for which remove returns true, renumbering
// the remaining ones. It returns the number of molecules removed.
func (C *Configuration) RemoveMolecules(remove func(*Molecule) bool) int {
	keep := make([]*Molecule, 0, len(C.Molecules))
	var kept []int
	for _, m := range C.Molecules {
		if remove(m) {
			continue
		}
		keep = append(keep, m)
		for i := 0; i < m.Len(); i++ {
			kept = append(kept, m.Offset+i)
		}
	}
	removed := len(C.Molecules) - len(keep)
	if removed == 0 {
		return 0
	}
	var coords *v3.Matrix
	if len(kept) > 0 {
		coords = v3.Zeros(len(kept))
		coords.SomeVecs(C.Coords, kept)
	}
	C.Coords = coords
	C.Molecules = keep
	C.atomMol = C.atomMol[:0]
	offset := 0
	for i, m := range keep {
		m.Index = i
		m.Offset = offset
		offset += m.Len()
		for j := 0; j < m.Len(); j++ {
			C.atomMol = append(C.atomMol, i)
		}
	}
	return removed
}

// AtomicDensity returns the number of atoms per cubic Angstrom.
func (C *Configuration) AtomicDensity() float64 {
	return float64(C.NAtoms()) / C.Box.Volume()
}
