/*
 * read.go, part of godissolve.
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
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Read reads the first molecule type in a GROMACS topology, together with the atom types
// defined before it. Sections other than atomtypes, moleculetype, atoms, bonds, angles
// and dihedrals are ignored, as are preprocessor directives.
func Read(r io.Reader) (*Topology, error) {
	T := new(Topology)
	s := bufio.NewScanner(r)
	section := ""
	nmol := 0
	for nline := 1; s.Scan(); nline++ {
		line := cleanString(s.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if h := header(line); h != "" {
			section = h
			if h == "moleculetype" {
				nmol++
			}
			continue
		}
		if nmol > 1 {
			break
		}
		var err error
		switch section {
		case "atomtypes":
			err = T.readAtomType(line)
		case "moleculetype":
			f := strings.Fields(line)
			if len(f) != 2 {
				err = fmt.Errorf("expected name and nrexcl, got %q", line)
				break
			}
			T.Name = f[0]
			T.NExcl, err = strconv.Atoi(f[1])
		case "atoms":
			err = T.readAtom(line)
		case "bonds":
			err = readTerm(&T.Bonds, line, 2)
		case "angles":
			err = readTerm(&T.Angles, line, 3)
		case "dihedrals":
			err = readTerm(&T.Dihedrals, line, 4)
		}
		if err != nil {
			return nil, fmt.Errorf("Read: line %d: [ %s ]: %w", nline, section, err)
		}
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("Read: %w", err)
	}
	if nmol == 0 {
		return nil, fmt.Errorf("Read: no moleculetype section")
	}
	return T, nil
}

// ReadFile is like Read, but reads from the file name.
func ReadFile(name string) (*Topology, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

func readTerm(terms *[]*Term, line string, n int) error {
	t, err := termFromGroTop(line, n)
	if err != nil {
		return err
	}
	*terms = append(*terms, t)
	return nil
}

// readAtomType reads atomtypes lines with the atomic number (7 fields)
// or without it (6 fields).
func (T *Topology) readAtomType(line string) error {
	l := strings.Fields(line)
	switch len(l) {
	case 6:
	case 7:
		l = append(l[:1], l[2:]...)
	default:
		return fmt.Errorf("expected 6 or 7 fields, got %d", len(l))
	}
	f, err := parsefloats(l[1], l[2], l[4], l[5])
	if err != nil {
		return err
	}
	T.AtomTypes = append(T.AtomTypes, &AtomType{Name: l[0], Mass: f[0], Charge: f[1], Ptype: l[3], V: f[2], W: f[3]})
	return nil
}

func (T *Topology) readAtom(line string) error {
	l := strings.Fields(line)
	if len(l) < 7 {
		return fmt.Errorf("expected at least 7 fields, got %d", len(l))
	}
	ints, err := parseints(l[0], l[2], l[5])
	if err != nil {
		return err
	}
	if ints[0] != len(T.Atoms)+1 {
		return fmt.Errorf("atom %d out of order", ints[0])
	}
	A := &Atom{Type: l[1], ResNr: ints[1], Residue: l[3], Name: l[4], CGNr: ints[2]}
	if A.Charge, err = strconv.ParseFloat(l[6], 64); err != nil {
		return err
	}
	if len(l) > 7 {
		if A.Mass, err = strconv.ParseFloat(l[7], 64); err != nil {
			return err
		}
	}
	T.Atoms = append(T.Atoms, A)
	return nil
}

// SigmaEpsilon returns the sigma (nm) and epsilon (kJ/mol) of an atom type
// whose parameters are C6 and C12.
func (A *AtomType) SigmaEpsilon() (float64, float64) {
	return c6c12ToSigmaepsilon(A.V, A.W)
}
