/*
 * config.go, part of godissolve.
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

// Package config reads the TOML file describing an analysis: the species in
// the system, how many molecules of each there are, the trajectory to analyse
// and the procedure to run on each of its frames.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/pelletier/go-toml"

	dissolve "github.com/rmera/godissolve"
	"github.com/rmera/godissolve/ff"
	"github.com/rmera/godissolve/messenger"
	v3 "github.com/rmera/godissolve/v3"
)

// Atom is an atom of a species. R, the position of the atom, is only
// needed to find bonds automatically.
type Atom struct {
	Element string    `toml:"element"`
	Name    string    `toml:"name"`
	Type    string    `toml:"type"`
	Charge  float64   `toml:"charge"`
	R       []float64 `toml:"r"`
}

// Site is a site defined on a species, by 0-based atom indexes.
type Site struct {
	Name         string `toml:"name"`
	Origin       []int  `toml:"origin"`
	MassWeighted bool   `toml:"mass_weighted"`
	XAxis        []int  `toml:"x_axis"`
	YAxis        []int  `toml:"y_axis"`
}

// Species is the definition of a species. Bonds are pairs of 0-based atom indexes.
// If AutoBonds is set, bonds not given are found from the atom positions.
type Species struct {
	Name      string  `toml:"name"`
	Atoms     []Atom  `toml:"atoms"`
	Bonds     [][]int `toml:"bonds"`
	AutoBonds bool    `toml:"auto_bonds"`
	Sites     []Site  `toml:"sites"`
}

// Molecules gives the number of molecules of a species in the configuration. The
// order of the molecules entries is the order of the atoms in the trajectory.
type Molecules struct {
	Species string `toml:"species"`
	Count   int    `toml:"count"`
}

// Frames selects the trajectory frames to analyse: every Stride-th frame from
// Start (0-based) up to, but not including, End. An End of 0 means all frames.
type Frames struct {
	Start  int `toml:"start"`
	End    int `toml:"end"`
	Stride int `toml:"stride"`
}

// Selected returns true if the ith frame is to be analysed.
func (F Frames) Selected(i int) bool {
	if i < F.Start || (F.End > 0 && i >= F.End) {
		return false
	}
	return (i-F.Start)%F.Stride == 0
}

// Box is the box used for frames that don't carry their own. Angles default to 90.
type Box struct {
	Lengths []float64 `toml:"lengths"`
	Angles  []float64 `toml:"angles"`
}

// Analysis is the configuration of an analysis. It can be obtained
// through the Load function.
type Analysis struct {
	Forcefield   string `toml:"forcefield"`
	MissingTerms string `toml:"missing_terms"`
	Trajectory   string `toml:"trajectory"`
	Procedure    string `toml:"procedure"`
	Prefix       string `toml:"prefix"`
	Ranks        int    `toml:"ranks"`
	ITPDir       string `toml:"itp_dir"`

	Frames    Frames           `toml:"frames"`
	Box       Box              `toml:"box"`
	Log       messenger.Config `toml:"log"`
	Species   []Species        `toml:"species"`
	Molecules []Molecules      `toml:"molecules"`
}

// Load reads and checks the configuration in the file path. Relative paths in
// it are taken as relative to the directory of the file.
func Load(path string) (*Analysis, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	A := new(Analysis)
	dec := toml.NewDecoder(f)
	if err = dec.Decode(A); err != nil {
		return nil, fmt.Errorf("Load: %s: %w", path, err)
	}
	A.setDefaults()
	dir := filepath.Dir(path)
	for _, p := range []*string{&A.Trajectory, &A.Procedure, &A.ITPDir} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(dir, *p)
		}
	}
	if err = A.Check(); err != nil {
		return nil, fmt.Errorf("Load: %s: %w", path, err)
	}
	return A, nil
}

func (A *Analysis) setDefaults() {
	if A.MissingTerms == "" {
		A.MissingTerms = "warn"
	}
	if A.Ranks == 0 {
		A.Ranks = 1
	}
	if A.Frames.Stride == 0 {
		A.Frames.Stride = 1
	}
}

// Check returns an error describing the first problem found in the configuration.
func (A *Analysis) Check() error {
	if A.Trajectory == "" {
		return fmt.Errorf("no trajectory given")
	}
	if A.Procedure == "" {
		return fmt.Errorf("no procedure given")
	}
	if A.Ranks < 1 {
		return fmt.Errorf("ranks must be at least 1, got %d", A.Ranks)
	}
	fr := A.Frames
	if fr.Start < 0 || fr.Stride < 1 || (fr.End != 0 && fr.End <= fr.Start) {
		return fmt.Errorf("invalid frame selection start=%d end=%d stride=%d", fr.Start, fr.End, fr.Stride)
	}
	if A.Forcefield != "" {
		if _, err := ff.Get(A.Forcefield); err != nil {
			return err
		}
	}
	if _, err := ff.ParseMissingTermPolicy(A.MissingTerms); err != nil {
		return err
	}
	if l := len(A.Box.Lengths); l != 0 && l != 3 {
		return fmt.Errorf("box lengths need 3 values, got %d", l)
	}
	if l := len(A.Box.Angles); l != 0 && (l != 3 || len(A.Box.Lengths) == 0) {
		return fmt.Errorf("box angles need 3 values and the box lengths")
	}
	if len(A.Species) == 0 {
		return fmt.Errorf("no species defined")
	}
	var names []string
	for i, s := range A.Species {
		if s.Name == "" {
			return fmt.Errorf("species %d has no name", i+1)
		}
		if slices.Contains(names, s.Name) {
			return fmt.Errorf("species %s defined twice", s.Name)
		}
		names = append(names, s.Name)
		if len(s.Atoms) == 0 {
			return fmt.Errorf("species %s has no atoms", s.Name)
		}
		for j, a := range s.Atoms {
			if !dissolve.IsElement(a.Element) {
				return fmt.Errorf("atom %d of species %s: unknown element %q", j, s.Name, a.Element)
			}
			if s.AutoBonds && len(a.R) != 3 {
				return fmt.Errorf("atom %d of species %s: auto_bonds needs a position with 3 values", j, s.Name)
			}
		}
		for _, b := range s.Bonds {
			if len(b) != 2 {
				return fmt.Errorf("species %s: bonds are pairs of atom indexes, got %v", s.Name, b)
			}
		}
	}
	if len(A.Molecules) == 0 {
		return fmt.Errorf("no molecules given")
	}
	for _, m := range A.Molecules {
		if !slices.Contains(names, m.Species) {
			return fmt.Errorf("molecules of undefined species %q", m.Species)
		}
		if m.Count < 1 {
			return fmt.Errorf("molecules of species %s: count must be positive, got %d", m.Species, m.Count)
		}
	}
	return nil
}

// BuildSpecies returns the species in the configuration, with their bonds and
// sites. If a forcefield is given it is assigned to all of them, except to those
// with no atom types given.
func (A *Analysis) BuildSpecies(msg *messenger.Messenger) ([]*dissolve.Species, error) {
	if msg == nil {
		msg = messenger.NewNop()
	}
	var F *ff.Forcefield
	var err error
	if A.Forcefield != "" {
		if F, err = ff.Get(A.Forcefield); err != nil {
			return nil, err
		}
	}
	policy, err := ff.ParseMissingTermPolicy(A.MissingTerms)
	if err != nil {
		return nil, err
	}
	ret := make([]*dissolve.Species, 0, len(A.Species))
	for _, s := range A.Species {
		sp := dissolve.NewSpecies(s.Name)
		for _, a := range s.Atoms {
			name := a.Name
			if name == "" {
				name = a.Element
			}
			sp.AddAtom(a.Element, name, a.Type, a.Charge)
		}
		for _, b := range s.Bonds {
			if _, err := sp.AddBond(b[0], b[1]); err != nil {
				return nil, fmt.Errorf("BuildSpecies: %w", err)
			}
		}
		if s.AutoBonds {
			r := v3.Zeros(len(s.Atoms))
			for j, a := range s.Atoms {
				r.SetVec(j, [3]float64(a.R))
			}
			n, err := sp.AddMissingBonds(r, nil)
			if err != nil {
				return nil, fmt.Errorf("BuildSpecies: %w", err)
			}
			msg.Print("Species %s: %d bonds found", s.Name, n)
		}
		for _, v := range s.Sites {
			site := &dissolve.SpeciesSite{Name: v.Name, Origin: v.Origin, MassWeighted: v.MassWeighted, XAxis: v.XAxis, YAxis: v.YAxis}
			if err := sp.AddSite(site); err != nil {
				return nil, fmt.Errorf("BuildSpecies: %w", err)
			}
		}
		typed := slices.ContainsFunc(s.Atoms, func(a Atom) bool { return a.Type != "" })
		if F != nil && typed {
			if err := ff.Assign(sp, F, policy, msg); err != nil {
				return nil, fmt.Errorf("BuildSpecies: %w", err)
			}
		}
		ret = append(ret, sp)
	}
	return ret, nil
}

// DefaultBox returns the box given in the configuration, or nil if there is none.
func (A *Analysis) DefaultBox() (*dissolve.Box, error) {
	if len(A.Box.Lengths) == 0 {
		return nil, nil
	}
	var l, a [3]float64
	copy(l[:], A.Box.Lengths)
	a = [3]float64{90, 90, 90}
	copy(a[:], A.Box.Angles)
	return dissolve.NewBox(l, a)
}

// BuildConfiguration returns a configuration with all the molecules, with zero
// coordinates, in the order given. species must be the ones returned by BuildSpecies.
func (A *Analysis) BuildConfiguration(species []*dissolve.Species, box *dissolve.Box) (*dissolve.Configuration, error) {
	cfg := dissolve.NewConfiguration(filepath.Base(A.Trajectory), box)
	for _, m := range A.Molecules {
		i := slices.IndexFunc(species, func(s *dissolve.Species) bool { return s.Name == m.Species })
		if i < 0 {
			return nil, fmt.Errorf("BuildConfiguration: species %s not found", m.Species)
		}
		for j := 0; j < m.Count; j++ {
			if _, err := cfg.AddMolecule(species[i], v3.Zeros(species[i].Len())); err != nil {
				return nil, fmt.Errorf("BuildConfiguration: %w", err)
			}
		}
	}
	return cfg, nil
}
