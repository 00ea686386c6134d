/*
 * assign.go, part of godissolve.
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
	"strings"

	dissolve "github.com/rmera/godissolve"
	"github.com/rmera/godissolve/chemgraph"
	"github.com/rmera/godissolve/messenger"
)

// MissingTermPolicy says what Assign does with an interaction the forcefield has no term for.
type MissingTermPolicy int

const (
	MissingWarn  MissingTermPolicy = iota //keep the interaction, with no functional form, and print a warning
	MissingSkip                           //drop the interaction silently
	MissingAbort                          //fail
)

// ParseMissingTermPolicy returns the policy named s ("warn", "skip" or "abort").
func ParseMissingTermPolicy(s string) (MissingTermPolicy, error) {
	switch strings.ToLower(s) {
	case "", "warn":
		return MissingWarn, nil
	case "skip":
		return MissingSkip, nil
	case "abort":
		return MissingAbort, nil
	}
	return MissingWarn, fmt.Errorf("ParseMissingTermPolicy: unknown policy %q", s)
}

// Assign parameterises sp with the forcefield F. The Type of each atom must name
// an atom type of F, either by numeric ID or by a name no other type of F shares.
// Atom charges are set from the types, angles and torsions are generated from the
// bonds of the species, and impropers are added for every atom with three
// neighbours for which F has a term.
// Unknown or ambiguous atom types are always an error; missing terms are dealt with following policy.
func Assign(sp *dissolve.Species, F *Forcefield, policy MissingTermPolicy, msg *messenger.Messenger) error {
	if msg == nil {
		msg = messenger.NewNop()
	}
	types := make([]*AtomType, sp.Len())
	for i, a := range sp.Atoms {
		t, err := F.AtomType(a.Type)
		if err != nil {
			return fmt.Errorf("Assign: atom %d (%s) of species %s: %w", i, a.Name, sp.Name, err)
		}
		types[i] = t
	}
	for i, a := range sp.Atoms {
		a.Charge = types[i].Charge()
	}
	missing := func(kind string, atoms ...int) (keep bool, err error) {
		names := make([]string, len(atoms))
		for n, i := range atoms {
			names[n] = fmt.Sprintf("%s(%d)", types[i].Name(), i)
		}
		switch policy {
		case MissingAbort:
			return false, fmt.Errorf("Assign: no %s term in forcefield %s for %s in species %s", kind, F.Name(), strings.Join(names, "-"), sp.Name)
		case MissingWarn:
			msg.Warn("No %s term in forcefield %s for %s in species %s", kind, F.Name(), strings.Join(names, "-"), sp.Name)
			return true, nil
		}
		return false, nil
	}

	bonds := sp.Bonds[:0]
	for _, b := range sp.Bonds {
		b.Form, b.Params = dissolve.BondNone, nil
		if t, ok := F.BondTerm(types[b.I], types[b.J]); ok {
			b.Form, b.Params = t.Form(), t.Params()
		} else if keep, err := missing("bond", b.I, b.J); err != nil {
			return err
		} else if !keep {
			continue
		}
		bonds = append(bonds, b)
	}
	sp.Bonds = bonds

	top := chemgraph.FromSpecies(sp)
	sp.Angles = nil
	for _, v := range top.Angles() {
		a := &dissolve.SpeciesAngle{I: v[0], J: v[1], K: v[2]}
		if t, ok := F.AngleTerm(types[v[0]], types[v[1]], types[v[2]]); ok {
			a.Form, a.Params = t.Form(), t.Params()
		} else if keep, err := missing("angle", v[:]...); err != nil {
			return err
		} else if !keep {
			continue
		}
		sp.Angles = append(sp.Angles, a)
	}

	sp.Torsions = nil
	for _, v := range top.Torsions() {
		tor := &dissolve.SpeciesTorsion{I: v[0], J: v[1], K: v[2], L: v[3]}
		if t, ok := F.TorsionTerm(types[v[0]], types[v[1]], types[v[2]], types[v[3]]); ok {
			tor.Form, tor.Params = t.Form(), t.Params()
		} else if keep, err := missing("torsion", v[:]...); err != nil {
			return err
		} else if !keep {
			continue
		}
		sp.Torsions = append(sp.Torsions, tor)
	}

	sp.Impropers = nil
	centres := top.ImproperCentres()
	keys := make([]int, 0, len(centres))
	for k := range centres {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, c := range keys {
		if imp := improperFor(F, types, c, centres[c]); imp != nil {
			sp.Impropers = append(sp.Impropers, imp)
		}
	}
	sp.Forcefield = F.Name()
	return nil
}

// the orders in which the neighbours of an improper centre are tried.
var improperOrders = [6][3]int{{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0}}

// improperFor returns the improper around centre c, with neighbours nb, or nil if F
// has no term for any ordering of the neighbours.
func improperFor(F *Forcefield, types []*AtomType, c int, nb [3]int) *dissolve.SpeciesImproper {
	for _, o := range improperOrders {
		i, j, l := nb[o[0]], nb[o[1]], nb[o[2]]
		if t, ok := F.ImproperTerm(types[i], types[j], types[c], types[l]); ok {
			return &dissolve.SpeciesImproper{I: i, J: j, K: c, L: l, Form: t.Form(), Params: t.Params()}
		}
	}
	return nil
}
