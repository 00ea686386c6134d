/*
 * spcfw.go, part of godissolve.
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
	dissolve "github.com/rmera/godissolve"
)

//Flexible SPC water (Wu, Tepper and Voth, J. Chem. Phys. 124, 024503 (2006)).

func spcfwTypes() []*AtomType {
	return []*AtomType{
		MustAtomType(1, "O", "OW", "", "SPC/Fw water O", -0.82, 0.650299, 3.165492),
		MustAtomType(2, "H", "HW", "", "SPC/Fw water H", 0.41, 0, 0),
	}
}

func spcfw() *Forcefield {
	F, err := New("SPC/Fw", "Flexible SPC water", dissolve.ShortRangeLennardJones, spcfwTypes(),
		[]*BondTerm{MustBondTerm("OW", "HW", harmB, 4431.53, 1.012)},
		[]*AngleTerm{MustAngleTerm("HW", "OW", "HW", harmA, 317.5656, 113.24)},
		nil, nil)
	if err != nil {
		panic(err.Error())
	}
	return F
}
