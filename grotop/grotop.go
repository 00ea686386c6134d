/*
 * grotop.go, part of godissolve.
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

// Package grotop writes species, with the intramolecular terms assigned by a
// forcefield, as GROMACS topologies, and reads them back.
package grotop

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Topology is a single molecule type of a GROMACS topology. Distances are in nm
// and energies in kJ/mol, as GROMACS uses them.
type Topology struct {
	Name      string
	NExcl     int
	AtomTypes []*AtomType
	Atoms     []*Atom
	Bonds     []*Term
	Angles    []*Term
	Dihedrals []*Term //impropers included
}

// AtomType is a line of the atomtypes section. V and W are sigma and epsilon,
// or C6 and C12, depending on the combination rule.
type AtomType struct {
	Name   string
	Mass   float64
	Charge float64
	Ptype  string
	V, W   float64
}

// Atom is a line of the atoms section.
type Atom struct {
	Type    string
	ResNr   int
	Residue string
	Name    string
	CGNr    int
	Charge  float64
	Mass    float64
}

// Term is a bonded interaction. IDs are 0-based.
type Term struct {
	Functype int
	IDs      []int
	Params   []float64
}

func sigmaepsilonToc6c12(sigma, e float64) (c6 float64, c12 float64) {
	return 4 * e * math.Pow(sigma, 6), 4 * e * math.Pow(sigma, 12)
}

func c6c12ToSigmaepsilon(c6, c12 float64) (sigma float64, epsilon float64) {
	if c6 == 0 || c12 == 0 {
		return 0, 0
	}
	return math.Pow(c12/c6, 1.0/6), c6 * c6 / (4 * c12)
}

// Returns a string without gromacs comments (sequences starting with ';'),
// trailing and leading spaces, tabs and newlines
func cleanString(s string) string {
	f := strings.Split(s, ";")[0]
	return strings.Trim(f, "\n\t\r ")
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', 8, 64)
}

// ToGroTop writes the term as a line of a GROMACS topology, with 1-based indexes.
func (T *Term) ToGroTop() string {
	ret := make([]string, 0, len(T.IDs)+len(T.Params)+1)
	for _, v := range T.IDs {
		ret = append(ret, fmt.Sprintf("%5d", v+1))
	}
	ret = append(ret, fmt.Sprintf("%3d", T.Functype))
	for _, v := range T.Params {
		ret = append(ret, fmt.Sprintf("%14s", formatFloat(v)))
	}
	return strings.Join(ret, " ")
}

// termFromGroTop parses a topology line with n atom indexes.
func termFromGroTop(s string, n int) (*Term, error) {
	l := strings.Fields(cleanString(s))
	if len(l) < n+1 {
		return nil, fmt.Errorf("expected at least %d fields, got %d", n+1, len(l))
	}
	T := new(Term)
	ids, err := parseints(l[:n]...)
	if err != nil {
		return nil, err
	}
	for _, v := range ids {
		if v < 1 {
			return nil, fmt.Errorf("invalid atom index %d", v)
		}
		T.IDs = append(T.IDs, v-1)
	}
	if T.Functype, err = strconv.Atoi(l[n]); err != nil {
		return nil, err
	}
	if T.Params, err = parsefloats(l[n+1:]...); err != nil {
		return nil, err
	}
	return T, nil
}

func parseints(s ...string) ([]int, error) {
	r := make([]int, 0, len(s))
	for _, v := range s {
		i, err := strconv.Atoi(v)
		if err != nil {
			return nil, err
		}
		r = append(r, i)
	}
	return r, nil
}

func parsefloats(s ...string) ([]float64, error) {
	r := make([]float64, 0, len(s))
	for _, v := range s {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, err
		}
		r = append(r, f)
	}
	return r, nil
}

var headerRe = regexp.MustCompile(`^\[\p{Zs}*([a-z_0-9]+)\p{Zs}*\]$`)

// header returns the name of the section that line opens, or an
// empty string if line is not a section header.
func header(line string) string {
	m := headerRe.FindStringSubmatch(cleanString(line))
	if m == nil {
		return ""
	}
	return m[1]
}
