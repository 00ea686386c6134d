/*
 * atomtype.go, part of godissolve.
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

	dissolve "github.com/rmera/godissolve"
)

// AtomType is a forcefield atom type.
type AtomType struct {
	id          int
	element     string
	name        string
	equivalent  string
	description string
	charge      float64
	params      []float64 //short-range parameters, in the order of the forcefield's form
}

// NewAtomType returns a new atom type. equivalent is the name used when matching
// terms, if empty the name is used. params are the short range parameters of the type.
func NewAtomType(id int, element, name, equivalent, description string, charge float64, params ...float64) (*AtomType, error) {
	if name == "" {
		return nil, fmt.Errorf("NewAtomType: atom type %d has no name", id)
	}
	if !dissolve.IsElement(element) {
		return nil, fmt.Errorf("NewAtomType: unknown element %q for atom type %s", element, name)
	}
	return &AtomType{id: id, element: element, name: name, equivalent: equivalent,
		description: description, charge: charge, params: slices.Clone(params)}, nil
}

// MustAtomType is like NewAtomType, but panics on error.
func MustAtomType(id int, element, name, equivalent, description string, charge float64, params ...float64) *AtomType {
	A, err := NewAtomType(id, element, name, equivalent, description, charge, params...)
	if err != nil {
		panic(err.Error())
	}
	return A
}

// ID returns the numeric identifier of the type in its forcefield.
func (A *AtomType) ID() int { return A.id }

// Element returns the element symbol.
func (A *AtomType) Element() string { return A.element }

// Name returns the name of the type.
func (A *AtomType) Name() string { return A.name }

// Description returns a description of the chemical environment of the type.
func (A *AtomType) Description() string { return A.description }

// Charge returns the partial charge of the type.
func (A *AtomType) Charge() float64 { return A.charge }

// EquivalentName returns the name the type uses to match terms.
func (A *AtomType) EquivalentName() string {
	if A.equivalent != "" {
		return A.equivalent
	}
	return A.name
}

// Params returns a copy of the short-range parameters.
func (A *AtomType) Params() []float64 {
	return slices.Clone(A.params)
}
