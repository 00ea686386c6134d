/*
 * library.go, part of godissolve.
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

package ff

import (
	"fmt"
	"slices"
	"sync"

	dissolve "github.com/rmera/godissolve"
)

var (
	libraryOnce sync.Once
	library     []*Forcefield
)

// families of OPLS atom types in each of the OPLS-AA forcefields of the library.
var oplsaa2005Sets = []struct {
	name     string
	desc     string
	families []string
}{
	{"OPLSAA2005/Alkanes", "OPLS-AA (2005) alkanes", []string{"alkanes"}},
	{"OPLSAA2005/Alkenes", "OPLS-AA (2005) alkenes", []string{"alkanes", "alkenes"}},
	{"OPLSAA2005/Aromatics", "OPLS-AA (2005) aromatics and phenols", []string{"alkanes", "aromatics"}},
	{"OPLSAA2005/Alcohols", "OPLS-AA (2005) alcohols and ethers", []string{"alkanes", "alcohols", "ethers"}},
	{"OPLSAA2005/Diols", "OPLS-AA (2005) diols", []string{"alkanes", "alcohols", "diols"}},
	{"OPLSAA2005/Triols", "OPLS-AA (2005) triols", []string{"alkanes", "alcohols", "triols"}},
	{"OPLSAA2005/Carbonyls", "OPLS-AA (2005) aldehydes and ketones", []string{"alkanes", "carbonyls"}},
	{"OPLSAA2005/Acids", "OPLS-AA (2005) carboxylic acids and carboxylates", []string{"alkanes", "carbonyls", "acids"}},
	{"OPLSAA2005/Esters", "OPLS-AA (2005) esters", []string{"alkanes", "carbonyls", "esters"}},
	{"OPLSAA2005/Amides", "OPLS-AA (2005) amides", []string{"alkanes", "amides"}},
	{"OPLSAA2005/Amines", "OPLS-AA (2005) amines", []string{"alkanes", "amines"}},
	{"OPLSAA2005/Pyridines", "OPLS-AA (2005) pyridines", []string{"alkanes", "aromatics", "pyridines"}},
	{"OPLSAA2005/Halogens", "OPLS-AA (2005) fluorides and chlorides", []string{"alkanes", "halogens"}},
	{"OPLSAA2005/Sulfur", "OPLS-AA (2005) thiols, sulfides and disulfides", []string{"alkanes", "sulfur"}},
	{"OPLSAA2005/Nitriles", "OPLS-AA (2005) nitriles", []string{"alkanes", "nitriles"}},
	{"OPLSAA2005/Nitro", "OPLS-AA (2005) nitro compounds", []string{"alkanes", "nitro"}},
	{"OPLSAA2005/Ions", "OPLS-AA (2005) monatomic ions and TIP3P water", []string{"ions", "water"}},
	{"OPLSAA2005/NobleGases", "OPLS-AA (2005) noble gases", []string{"noblegases"}},
}

func buildLibrary() {
	all := oplsaa2005Types()
	bonds, angles := oplsaa2005Bonds(), oplsaa2005Angles()
	torsions, impropers := oplsaa2005Torsions(), oplsaa2005Impropers()
	add := func(name, desc string, types []*AtomType) {
		F, err := New(name, desc, dissolve.ShortRangeLennardJonesGeometric, types, bonds, angles, torsions, impropers)
		if err != nil {
			panic(err.Error())
		}
		library = append(library, F)
	}
	types := make([]*AtomType, 0, len(all))
	for _, v := range all {
		types = append(types, v.t)
	}
	add("OPLSAA2005", "OPLS-AA (2005), all atom types", types)
	for _, set := range oplsaa2005Sets {
		var sub []*AtomType
		for _, v := range all {
			if slices.Contains(set.families, v.family) {
				sub = append(sub, v.t)
			}
		}
		add(set.name, set.desc, sub)
	}
	library = append(library, spcfw())
}

// Library returns the built-in forcefields. They are built the first time
// the function is called.
func Library() []*Forcefield {
	libraryOnce.Do(buildLibrary)
	return slices.Clone(library)
}

// Get returns the built-in forcefield with the given name.
func Get(name string) (*Forcefield, error) {
	for _, F := range Library() {
		if F.Name() == name {
			return F, nil
		}
	}
	return nil, fmt.Errorf("Get: no forcefield named %q", name)
}
