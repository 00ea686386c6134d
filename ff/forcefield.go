/*
 * forcefield.go, part of godissolve.
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
	"errors"
	"fmt"
	"strconv"
	"strings"

	dissolve "github.com/rmera/godissolve"
)

var (
	ErrUnknownAtomType   = errors.New("unknown atom type")
	ErrAmbiguousAtomType = errors.New("ambiguous atom type name, use the numeric ID")
)

// Forcefield is a named set of atom types and term tables. Forcefields are
// not modified after construction, so they can be shared freely.
type Forcefield struct {
	name        string
	description string
	shortRange  dissolve.ShortRangeForm
	types       []*AtomType
	bonds       []*BondTerm
	angles      []*AngleTerm
	torsions    []*TorsionTerm
	impropers   []*ImproperTerm
}

// New returns a forcefield. The order of the term tables is kept, as the first
// matching term in a table is the one used for any set of types.
// Every atom type must carry the parameters the short-range form requires.
func New(name, description string, sr dissolve.ShortRangeForm, types []*AtomType, bonds []*BondTerm, angles []*AngleTerm, torsions []*TorsionTerm, impropers []*ImproperTerm) (*Forcefield, error) {
	for _, t := range types {
		if len(t.params) != sr.NParams() {
			return nil, fmt.Errorf("New: atom type %s (%d) of forcefield %s has %d short-range parameters, form %s takes %d: %w", t.name, t.id, name, len(t.params), sr, sr.NParams(), ErrParameterCount)
		}
	}
	return &Forcefield{name: name, description: description, shortRange: sr, types: types,
		bonds: bonds, angles: angles, torsions: torsions, impropers: impropers}, nil
}

func (F *Forcefield) Name() string                            { return F.name }
func (F *Forcefield) Description() string                     { return F.description }
func (F *Forcefield) ShortRangeForm() dissolve.ShortRangeForm { return F.shortRange }

// AtomTypes returns the atom types of the forcefield.
func (F *Forcefield) AtomTypes() []*AtomType {
	return append([]*AtomType(nil), F.types...)
}

// NTerms returns the sizes of the bond, angle, torsion and improper tables.
func (F *Forcefield) NTerms() [4]int {
	return [4]int{len(F.bonds), len(F.angles), len(F.torsions), len(F.impropers)}
}

// AtomTypesByName returns all the atom types with the given name, in table order.
func (F *Forcefield) AtomTypesByName(name string) []*AtomType {
	var ret []*AtomType
	for _, t := range F.types {
		if t.name == name {
			ret = append(ret, t)
		}
	}
	return ret
}

// AtomTypeByID returns the atom type with the given numeric identifier.
func (F *Forcefield) AtomTypeByID(id int) (*AtomType, bool) {
	return termMatch(F.types, func(t *AtomType) bool { return t.id == id })
}

// AtomType returns the atom type referred to by s, which is either a numeric
// identifier or a name. A name shared by several types of the forcefield
// gives ErrAmbiguousAtomType.
func (F *Forcefield) AtomType(s string) (*AtomType, error) {
	if id, err := strconv.Atoi(s); err == nil {
		if t, ok := F.AtomTypeByID(id); ok {
			return t, nil
		}
		return nil, fmt.Errorf("AtomType: no type with ID %d in forcefield %s: %w", id, F.name, ErrUnknownAtomType)
	}
	switch ts := F.AtomTypesByName(s); len(ts) {
	case 0:
		return nil, fmt.Errorf("AtomType: no type %q in forcefield %s: %w", s, F.name, ErrUnknownAtomType)
	case 1:
		return ts[0], nil
	default:
		ids := make([]string, len(ts))
		for i, t := range ts {
			ids[i] = strconv.Itoa(t.id)
		}
		return nil, fmt.Errorf("AtomType: %d types named %q in forcefield %s (IDs %s): %w", len(ts), s, F.name, strings.Join(ids, ", "), ErrAmbiguousAtomType)
	}
}

// termMatch returns the first element of table for which match is true.
func termMatch[T any](table []T, match func(T) bool) (T, bool) {
	for _, t := range table {
		if match(t) {
			return t, true
		}
	}
	var zero T
	return zero, false
}

// BondTerm returns the first bond term matching i-j, and false if there is none.
func (F *Forcefield) BondTerm(i, j *AtomType) (*BondTerm, bool) {
	return termMatch(F.bonds, func(t *BondTerm) bool { return t.IsMatch(i, j) })
}

// AngleTerm returns the first angle term matching i-j-k, and false if there is none.
func (F *Forcefield) AngleTerm(i, j, k *AtomType) (*AngleTerm, bool) {
	return termMatch(F.angles, func(t *AngleTerm) bool { return t.IsMatch(i, j, k) })
}

// TorsionTerm returns the first torsion term matching i-j-k-l, and false if there is none.
func (F *Forcefield) TorsionTerm(i, j, k, l *AtomType) (*TorsionTerm, bool) {
	return termMatch(F.torsions, func(t *TorsionTerm) bool { return t.IsMatch(i, j, k, l) })
}

// ImproperTerm returns the first improper term matching i-j-k-l, and false if there is none.
func (F *Forcefield) ImproperTerm(i, j, k, l *AtomType) (*ImproperTerm, bool) {
	return termMatch(F.impropers, func(t *ImproperTerm) bool { return t.IsMatch(i, j, k, l) })
}
