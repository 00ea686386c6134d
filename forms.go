/*
 * forms.go, part of godissolve.
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
	"math"
)

//Functional forms for intramolecular and short-range interactions.
//Energies are in kJ/mol, distances in Angstrom and angles in degrees,
//force constants in kJ/mol/A^2 or kJ/mol/rad^2.

type formInfo struct {
	name   string
	params []string
}

func findForm(table []formInfo, name string) int {
	for i, v := range table {
		if v.name == name {
			return i
		}
	}
	return -1
}

// BondForm is the functional form of a bond interaction.
type BondForm int

const (
	BondNone     BondForm = iota
	BondHarmonic          // U = 0.5 k (r - eq)^2
	BondEPSR              // U = C/2 (r - r0)^2
	BondMorse             // U = D [1 - exp(-alpha (r - eq))]^2
)

var bondForms = []formInfo{
	{"None", nil},
	{"Harmonic", []string{"k", "eq"}},
	{"EPSR", []string{"C/2", "r0"}},
	{"Morse", []string{"D", "alpha", "eq"}},
}

func (F BondForm) String() string       { return bondForms[F].name }
func (F BondForm) NParams() int         { return len(bondForms[F].params) }
func (F BondForm) ParamNames() []string { return bondForms[F].params }

// ParseBondForm returns the bond form with the given name.
func ParseBondForm(s string) (BondForm, error) {
	i := findForm(bondForms, s)
	if i < 0 {
		return BondNone, newError("ParseBondForm", "Unknown bond functional form %q", s)
	}
	return BondForm(i), nil
}

// Energy returns the energy of a bond of length r with the given parameters.
func (F BondForm) Energy(r float64, p []float64) float64 {
	switch F {
	case BondHarmonic:
		d := r - p[1]
		return 0.5 * p[0] * d * d
	case BondEPSR:
		d := r - p[1]
		return p[0] * d * d
	case BondMorse:
		e := 1 - math.Exp(-p[1]*(r-p[2]))
		return p[0] * e * e
	}
	return 0
}

// AngleForm is the functional form of an angle interaction.
type AngleForm int

const (
	AngleNone     AngleForm = iota
	AngleHarmonic           // U = 0.5 k (theta - eq)^2
	AngleCosine             // U = k (1 + s cos(n theta - eq))
	AngleCos2               // U = k (C0 + C1 cos(theta) + C2 cos(2 theta))
)

var angleForms = []formInfo{
	{"None", nil},
	{"Harmonic", []string{"k", "eq"}},
	{"Cos", []string{"k", "n", "eq", "s"}},
	{"Cos2", []string{"k", "C0", "C1", "C2"}},
}

func (F AngleForm) String() string       { return angleForms[F].name }
func (F AngleForm) NParams() int         { return len(angleForms[F].params) }
func (F AngleForm) ParamNames() []string { return angleForms[F].params }

// ParseAngleForm returns the angle form with the given name.
func ParseAngleForm(s string) (AngleForm, error) {
	i := findForm(angleForms, s)
	if i < 0 {
		return AngleNone, newError("ParseAngleForm", "Unknown angle functional form %q", s)
	}
	return AngleForm(i), nil
}

// Energy returns the energy of an angle theta (degrees) with the given parameters.
func (F AngleForm) Energy(theta float64, p []float64) float64 {
	t := Deg2Rad(theta)
	switch F {
	case AngleHarmonic:
		d := t - Deg2Rad(p[1])
		return 0.5 * p[0] * d * d
	case AngleCosine:
		return p[0] * (1 + p[3]*math.Cos(p[1]*t-Deg2Rad(p[2])))
	case AngleCos2:
		return p[0] * (p[1] + p[2]*math.Cos(t) + p[3]*math.Cos(2*t))
	}
	return 0
}

// TorsionForm is the functional form of a torsion or improper interaction.
type TorsionForm int

const (
	TorsionNone      TorsionForm = iota
	TorsionCosine                // U = k (1 + s cos(n phi - eq))
	TorsionCos3                  // U = 0.5 k1 (1 + cos phi) + 0.5 k2 (1 - cos 2phi) + 0.5 k3 (1 + cos 3phi)
	TorsionCos3C                 // U = k0 + Cos3
	TorsionCos4                  // U = Cos3 + 0.5 k4 (1 - cos 4phi)
	TorsionUFFCosine             // U = 0.5 k (1 - cos(n eq) cos(n phi))
)

var torsionForms = []formInfo{
	{"None", nil},
	{"Cos", []string{"k", "n", "eq", "s"}},
	{"Cos3", []string{"k1", "k2", "k3"}},
	{"Cos3C", []string{"k0", "k1", "k2", "k3"}},
	{"Cos4", []string{"k1", "k2", "k3", "k4"}},
	{"UFFCosine", []string{"k", "n", "eq"}},
}

func (F TorsionForm) String() string       { return torsionForms[F].name }
func (F TorsionForm) NParams() int         { return len(torsionForms[F].params) }
func (F TorsionForm) ParamNames() []string { return torsionForms[F].params }

// ParseTorsionForm returns the torsion form with the given name.
func ParseTorsionForm(s string) (TorsionForm, error) {
	i := findForm(torsionForms, s)
	if i < 0 {
		return TorsionNone, newError("ParseTorsionForm", "Unknown torsion functional form %q", s)
	}
	return TorsionForm(i), nil
}

func cos3(phi float64, k1, k2, k3 float64) float64 {
	return 0.5*k1*(1+math.Cos(phi)) + 0.5*k2*(1-math.Cos(2*phi)) + 0.5*k3*(1+math.Cos(3*phi))
}

// Energy returns the energy of a torsion phi (degrees) with the given parameters.
func (F TorsionForm) Energy(phi float64, p []float64) float64 {
	t := Deg2Rad(phi)
	switch F {
	case TorsionCosine:
		return p[0] * (1 + p[3]*math.Cos(p[1]*t-Deg2Rad(p[2])))
	case TorsionCos3:
		return cos3(t, p[0], p[1], p[2])
	case TorsionCos3C:
		return p[0] + cos3(t, p[1], p[2], p[3])
	case TorsionCos4:
		return cos3(t, p[0], p[1], p[2]) + 0.5*p[3]*(1-math.Cos(4*t))
	case TorsionUFFCosine:
		return 0.5 * p[0] * (1 - math.Cos(p[1]*Deg2Rad(p[2]))*math.Cos(p[1]*t))
	}
	return 0
}

// ShortRangeForm is the functional form of the pairwise short-range interaction
// between atom types.
type ShortRangeForm int

const (
	ShortRangeNone                  ShortRangeForm = iota
	ShortRangeLennardJones                         // Lorentz-Berthelot mixing
	ShortRangeLennardJonesGeometric                // geometric mixing
)

var shortRangeForms = []formInfo{
	{"None", nil},
	{"LJ", []string{"epsilon", "sigma"}},
	{"LJGeometric", []string{"epsilon", "sigma"}},
}

func (F ShortRangeForm) String() string       { return shortRangeForms[F].name }
func (F ShortRangeForm) NParams() int         { return len(shortRangeForms[F].params) }
func (F ShortRangeForm) ParamNames() []string { return shortRangeForms[F].params }

// ParseShortRangeForm returns the short-range form with the given name.
func ParseShortRangeForm(s string) (ShortRangeForm, error) {
	i := findForm(shortRangeForms, s)
	if i < 0 {
		return ShortRangeNone, newError("ParseShortRangeForm", "Unknown short-range functional form %q", s)
	}
	return ShortRangeForm(i), nil
}

// Deg2Rad converts degrees to radians.
func Deg2Rad(f float64) float64 {
	return f * math.Pi / 180
}

// Rad2Deg converts radians to degrees.
func Rad2Deg(f float64) float64 {
	return f * 180 / math.Pi
}
