/*
 * terms.go, part of godissolve.
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
	"slices"
	"strings"

	dissolve "github.com/rmera/godissolve"
)

// ErrParameterCount is returned when a term is given a number of parameters different
// from the one its functional form requires.
var ErrParameterCount = errors.New("wrong number of parameters for functional form")

func checkParams(kind string, types []string, form fmt.Stringer, want int, params []float64) error {
	if len(params) != want {
		return fmt.Errorf("%s term %s with form %s takes %d parameters, got %d: %w", kind, strings.Join(types, "-"), form, want, len(params), ErrParameterCount)
	}
	return nil
}

// BondTerm is a bond interaction between two atom types.
type BondTerm struct {
	types  [2]string
	form   dissolve.BondForm
	params []float64
}

// NewBondTerm returns a bond term between the types i and j, which may contain wildcards.
func NewBondTerm(i, j string, form dissolve.BondForm, params ...float64) (*BondTerm, error) {
	if err := checkParams("Bond", []string{i, j}, form, form.NParams(), params); err != nil {
		return nil, err
	}
	return &BondTerm{types: [2]string{i, j}, form: form, params: slices.Clone(params)}, nil
}

// MustBondTerm is like NewBondTerm, but panics on error.
func MustBondTerm(i, j string, form dissolve.BondForm, params ...float64) *BondTerm {
	t, err := NewBondTerm(i, j, form, params...)
	if err != nil {
		panic(err.Error())
	}
	return t
}

func (T *BondTerm) TypeNames() [2]string    { return T.types }
func (T *BondTerm) Form() dissolve.BondForm { return T.form }
func (T *BondTerm) Params() []float64       { return slices.Clone(T.params) }

// IsMatch returns true if the term applies to a bond between i and j, in either order.
func (T *BondTerm) IsMatch(i, j *AtomType) bool {
	a, b := i.EquivalentName(), j.EquivalentName()
	if SameWildString(T.types[0], a) && SameWildString(T.types[1], b) {
		return true
	}
	return SameWildString(T.types[0], b) && SameWildString(T.types[1], a)
}

// AngleTerm is an angle interaction i-j-k, j being the central type.
type AngleTerm struct {
	types  [3]string
	form   dissolve.AngleForm
	params []float64
}

// NewAngleTerm returns an angle term for the types i-j-k.
func NewAngleTerm(i, j, k string, form dissolve.AngleForm, params ...float64) (*AngleTerm, error) {
	if err := checkParams("Angle", []string{i, j, k}, form, form.NParams(), params); err != nil {
		return nil, err
	}
	return &AngleTerm{types: [3]string{i, j, k}, form: form, params: slices.Clone(params)}, nil
}

// MustAngleTerm is like NewAngleTerm, but panics on error.
func MustAngleTerm(i, j, k string, form dissolve.AngleForm, params ...float64) *AngleTerm {
	t, err := NewAngleTerm(i, j, k, form, params...)
	if err != nil {
		panic(err.Error())
	}
	return t
}

func (T *AngleTerm) TypeNames() [3]string     { return T.types }
func (T *AngleTerm) Form() dissolve.AngleForm { return T.form }
func (T *AngleTerm) Params() []float64        { return slices.Clone(T.params) }

// IsMatch returns true if the term applies to the angle i-j-k. The central
// type must always match, the outer ones may be swapped.
func (T *AngleTerm) IsMatch(i, j, k *AtomType) bool {
	if !SameWildString(T.types[1], j.EquivalentName()) {
		return false
	}
	a, c := i.EquivalentName(), k.EquivalentName()
	if SameWildString(T.types[0], a) && SameWildString(T.types[2], c) {
		return true
	}
	return SameWildString(T.types[0], c) && SameWildString(T.types[2], a)
}

// TorsionTerm is a torsion interaction i-j-k-l.
type TorsionTerm struct {
	types  [4]string
	form   dissolve.TorsionForm
	params []float64
}

// NewTorsionTerm returns a torsion term for the types i-j-k-l.
func NewTorsionTerm(i, j, k, l string, form dissolve.TorsionForm, params ...float64) (*TorsionTerm, error) {
	if err := checkParams("Torsion", []string{i, j, k, l}, form, form.NParams(), params); err != nil {
		return nil, err
	}
	return &TorsionTerm{types: [4]string{i, j, k, l}, form: form, params: slices.Clone(params)}, nil
}

// MustTorsionTerm is like NewTorsionTerm, but panics on error.
func MustTorsionTerm(i, j, k, l string, form dissolve.TorsionForm, params ...float64) *TorsionTerm {
	t, err := NewTorsionTerm(i, j, k, l, form, params...)
	if err != nil {
		panic(err.Error())
	}
	return t
}

func (T *TorsionTerm) TypeNames() [4]string       { return T.types }
func (T *TorsionTerm) Form() dissolve.TorsionForm { return T.form }
func (T *TorsionTerm) Params() []float64          { return slices.Clone(T.params) }

func matchAll(patterns []string, names ...string) bool {
	for n, p := range patterns {
		if !SameWildString(p, names[n]) {
			return false
		}
	}
	return true
}

// IsMatch returns true if the term applies to the torsion i-j-k-l read either
// forwards or backwards.
func (T *TorsionTerm) IsMatch(i, j, k, l *AtomType) bool {
	a, b, c, d := i.EquivalentName(), j.EquivalentName(), k.EquivalentName(), l.EquivalentName()
	return matchAll(T.types[:], a, b, c, d) || matchAll(T.types[:], d, c, b, a)
}

// ImproperTerm is an improper torsion i-j-k-l, k being the central type.
type ImproperTerm struct {
	types  [4]string
	form   dissolve.TorsionForm
	params []float64
}

// NewImproperTerm returns an improper term for the types i-j-k-l.
func NewImproperTerm(i, j, k, l string, form dissolve.TorsionForm, params ...float64) (*ImproperTerm, error) {
	if err := checkParams("Improper", []string{i, j, k, l}, form, form.NParams(), params); err != nil {
		return nil, err
	}
	return &ImproperTerm{types: [4]string{i, j, k, l}, form: form, params: slices.Clone(params)}, nil
}

// MustImproperTerm is like NewImproperTerm, but panics on error.
func MustImproperTerm(i, j, k, l string, form dissolve.TorsionForm, params ...float64) *ImproperTerm {
	t, err := NewImproperTerm(i, j, k, l, form, params...)
	if err != nil {
		panic(err.Error())
	}
	return t
}

func (T *ImproperTerm) TypeNames() [4]string       { return T.types }
func (T *ImproperTerm) Form() dissolve.TorsionForm { return T.form }
func (T *ImproperTerm) Params() []float64          { return slices.Clone(T.params) }

// IsMatch returns true if the term applies to i-j-k-l in exactly that order.
func (T *ImproperTerm) IsMatch(i, j, k, l *AtomType) bool {
	return matchAll(T.types[:], i.EquivalentName(), j.EquivalentName(), k.EquivalentName(), l.EquivalentName())
}
