/*
 * atomicdata.go, part of godissolve.
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

import "fmt"

//A map for assigning mass to elements.
//Note that just common elements are present
var symbolMass = map[string]float64{
	"H":  1.008,
	"He": 4.0026,
	"C":  12.011,
	"N":  14.007,
	"O":  15.999,
	"F":  18.998,
	"Ne": 20.180,
	"Na": 22.990,
	"Mg": 24.305,
	"Si": 28.085,
	"P":  30.974,
	"S":  32.06,
	"Cl": 35.45,
	"Ar": 39.948,
	"K":  39.098,
	"Ca": 40.078,
	"Fe": 55.845,
	"Cu": 63.546,
	"Zn": 65.38,
	"Br": 79.904,
	"Kr": 83.798,
	"I":  126.90,
	"Xe": 131.29,
}

// ElementMass returns the mass, in atomic mass units, of the element with the given symbol.
func ElementMass(symbol string) (float64, error) {
	m, ok := symbolMass[symbol]
	if !ok {
		return 0, &CError{msg: fmt.Sprintf("No mass available for element %q", symbol), deco: []string{"ElementMass"}}
	}
	return m, nil
}

// IsElement returns true if symbol is an element known to the library.
func IsElement(symbol string) bool {
	_, ok := symbolMass[symbol]
	return ok
}
