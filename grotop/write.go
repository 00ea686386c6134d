/*
 * write.go, part of godissolve.
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

package grotop

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	dissolve "github.com/rmera/godissolve"
	"github.com/rmera/godissolve/ff"
)

// ErrUnsupportedForm is returned for functional forms with no GROMACS equivalent.
var ErrUnsupportedForm = errors.New("functional form not supported by GROMACS")

const (
	nm2A  = 10.0
	nExcl = 3
)

func bondTerm(b *dissolve.SpeciesBond) (*Term, error) {
	T := &Term{Functype: 1, IDs: []int{b.I, b.J}}
	p := b.Params
	switch b.Form {
	case dissolve.BondNone:
	case dissolve.BondHarmonic:
		T.Params = []float64{p[1] / nm2A, p[0] * nm2A * nm2A}
	case dissolve.BondEPSR:
		T.Params = []float64{p[1] / nm2A, 2 * p[0] * nm2A * nm2A}
	case dissolve.BondMorse:
		T.Functype = 3
		T.Params = []float64{p[2] / nm2A, p[0], p[1] * nm2A}
	default:
		return nil, fmt.Errorf("bond %d-%d: %s: %w", b.I+1, b.J+1, b.Form, ErrUnsupportedForm)
	}
	return T, nil
}

func angleTerm(a *dissolve.SpeciesAngle) (*Term, error) {
	T := &Term{Functype: 1, IDs: []int{a.I, a.J, a.K}}
	switch a.Form {
	case dissolve.AngleNone:
	case dissolve.AngleHarmonic:
		T.Params = []float64{a.Params[1], a.Params[0]}
	default:
		return nil, fmt.Errorf("angle %d-%d-%d: %s: %w", a.I+1, a.J+1, a.K+1, a.Form, ErrUnsupportedForm)
	}
	return T, nil
}

// torsionTerm converts a torsion or improper. Periodic terms use function type 1, or 4
// for impropers, Cos3 and Cos4 the Fourier type 5 and Cos3C the Ryckaert-Bellemans
// type 3, as the latter has a constant term.
func torsionTerm(ids []int, form dissolve.TorsionForm, p []float64, improper bool) (*Term, error) {
	periodic := 1
	if improper {
		periodic = 4
	}
	T := &Term{Functype: periodic, IDs: ids}
	switch form {
	case dissolve.TorsionNone:
	case dissolve.TorsionCosine:
		phase := p[2]
		if p[3] < 0 {
			phase += 180
		}
		T.Params = []float64{phase, p[0], p[1]}
	case dissolve.TorsionCos3:
		T.Functype = 5
		T.Params = []float64{p[0], p[1], p[2], 0}
	case dissolve.TorsionCos4:
		T.Functype = 5
		T.Params = []float64{p[0], p[1], p[2], p[3]}
	case dissolve.TorsionCos3C:
		T.Functype = 3
		T.Params = fourierToRB(p[0], p[1], p[2], p[3], 0)
	case dissolve.TorsionUFFCosine:
		//only expressible when cos(n eq) is 1 or -1
		c := math.Cos(p[1] * dissolve.Deg2Rad(p[2]))
		if math.Abs(math.Abs(c)-1) > 1e-6 {
			return nil, fmt.Errorf("torsion %v: %s with n*eq=%g: %w", oneBased(ids), form, p[1]*p[2], ErrUnsupportedForm)
		}
		phase := 0.0
		if c > 0 {
			phase = 180
		}
		T.Params = []float64{phase, 0.5 * p[0], p[1]}
	default:
		return nil, fmt.Errorf("torsion %v: %s: %w", oneBased(ids), form, ErrUnsupportedForm)
	}
	return T, nil
}

// fourierToRB returns the Ryckaert-Bellemans coefficients equivalent to the constant
// c plus a Fourier series with coefficients f1 to f4.
func fourierToRB(c, f1, f2, f3, f4 float64) []float64 {
	return []float64{
		c + f2 + 0.5*(f1+f3),
		0.5 * (-f1 + 3*f3),
		-f2 + 4*f4,
		-2 * f3,
		-4 * f4,
		0,
	}
}

func oneBased(ids []int) []int {
	r := make([]int, len(ids))
	for i, v := range ids {
		r[i] = v + 1
	}
	return r
}

func molName(s string) string {
	if s == "" {
		return "MOL"
	}
	return strings.Join(strings.Fields(s), "_")
}

// FromSpecies builds the GROMACS topology of sp. If F is not nil, the atom types of
// the species are taken from it, with their short-range parameters given as sigma and
// epsilon, or as C6 and C12 if C6C12 is given and true.
func FromSpecies(sp *dissolve.Species, F *ff.Forcefield, C6C12 ...bool) (*Topology, error) {
	c6c12 := len(C6C12) > 0 && C6C12[0]
	name := molName(sp.Name)
	T := &Topology{Name: name, NExcl: nExcl}
	seen := make(map[string]bool)
	for i, a := range sp.Atoms {
		atype := a.Type
		if atype == "" {
			atype = a.Symbol
		}
		T.Atoms = append(T.Atoms, &Atom{Type: atype, ResNr: 1, Residue: name, Name: a.Name,
			CGNr: i + 1, Charge: a.Charge, Mass: a.Mass})
		if F == nil || seen[atype] {
			continue
		}
		seen[atype] = true
		t, err := F.AtomType(atype)
		if err != nil {
			return nil, fmt.Errorf("FromSpecies: atom %d: %w", i+1, err)
		}
		at := &AtomType{Name: atype, Mass: a.Mass, Charge: t.Charge(), Ptype: "A"}
		if F.ShortRangeForm() != dissolve.ShortRangeNone {
			p := t.Params()
			at.V, at.W = p[1]/nm2A, p[0]
			if c6c12 {
				at.V, at.W = sigmaepsilonToc6c12(at.V, at.W)
			}
		}
		T.AtomTypes = append(T.AtomTypes, at)
	}
	for _, b := range sp.Bonds {
		t, err := bondTerm(b)
		if err != nil {
			return nil, fmt.Errorf("FromSpecies: %w", err)
		}
		T.Bonds = append(T.Bonds, t)
	}
	for _, a := range sp.Angles {
		t, err := angleTerm(a)
		if err != nil {
			return nil, fmt.Errorf("FromSpecies: %w", err)
		}
		T.Angles = append(T.Angles, t)
	}
	for _, d := range sp.Torsions {
		t, err := torsionTerm([]int{d.I, d.J, d.K, d.L}, d.Form, d.Params, false)
		if err != nil {
			return nil, fmt.Errorf("FromSpecies: %w", err)
		}
		T.Dihedrals = append(T.Dihedrals, t)
	}
	for _, d := range sp.Impropers {
		t, err := torsionTerm([]int{d.I, d.J, d.K, d.L}, d.Form, d.Params, true)
		if err != nil {
			return nil, fmt.Errorf("FromSpecies: %w", err)
		}
		T.Dihedrals = append(T.Dihedrals, t)
	}
	return T, nil
}

// Write writes the topology in the GROMACS itp format.
func (T *Topology) Write(w io.Writer) error {
	out := bufio.NewWriter(w)
	fmt.Fprintf(out, "; %s\n", T.Name)
	if len(T.AtomTypes) > 0 {
		fmt.Fprintf(out, "\n[ atomtypes ]\n;name        mass    charge ptype  sigma/c6  epsilon/c12\n")
		for _, a := range T.AtomTypes {
			fmt.Fprintf(out, "%-8s %10.5f %9.5f %5s %14s %14s\n", a.Name, a.Mass, a.Charge, a.Ptype, formatFloat(a.V), formatFloat(a.W))
		}
	}
	fmt.Fprintf(out, "\n[ moleculetype ]\n; name  nrexcl\n%s  %d\n", T.Name, T.NExcl)
	fmt.Fprintf(out, "\n[ atoms ]\n;   nr  type  resnr  residue  atom  cgnr    charge      mass\n")
	for i, a := range T.Atoms {
		fmt.Fprintf(out, "%6d %5s %6d %8s %5s %5d %9.5f %9.5f\n", i+1, a.Type, a.ResNr, a.Residue, a.Name, a.CGNr, a.Charge, a.Mass)
	}
	sections := []struct {
		name  string
		terms []*Term
	}{
		{"bonds", T.Bonds},
		{"angles", T.Angles},
		{"dihedrals", T.Dihedrals},
	}
	for _, s := range sections {
		if len(s.terms) == 0 {
			continue
		}
		fmt.Fprintf(out, "\n[ %s ]\n", s.name)
		for _, t := range s.terms {
			fmt.Fprintln(out, t.ToGroTop())
		}
	}
	return out.Flush()
}

// WriteSpecies writes sp, and the parameters assigned to it, as a GROMACS itp.
// See FromSpecies.
func WriteSpecies(w io.Writer, sp *dissolve.Species, F *ff.Forcefield, C6C12 ...bool) error {
	T, err := FromSpecies(sp, F, C6C12...)
	if err != nil {
		return err
	}
	return T.Write(w)
}

// WriteSpeciesFile is like WriteSpecies, but writes to the file name.
func WriteSpeciesFile(name string, sp *dissolve.Species, F *ff.Forcefield, C6C12 ...bool) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := WriteSpecies(f, sp, F, C6C12...); err != nil {
		f.Close()
		return fmt.Errorf("WriteSpeciesFile: %s: %w", name, err)
	}
	return f.Close()
}
