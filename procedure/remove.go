/*
 * remove.go, part of godissolve.
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

package procedure

import (
	"slices"

	dissolve "github.com/rmera/godissolve"
	"github.com/rmera/godissolve/lineparser"
)

// RemoveSpecies removes all the molecules of the given species from the configuration.
type RemoveSpecies struct {
	nodeBase
	species []*dissolve.Species
}

func NewRemoveSpecies(name string, sp ...*dissolve.Species) *RemoveSpecies {
	return &RemoveSpecies{nodeBase: newBase(name), species: sp}
}

func (R *RemoveSpecies) Type() NodeType                       { return RemoveSpeciesNode }
func (R *RemoveSpecies) IsContextRelevant(c ContextType) bool { return c == GenerationContext }

func (R *RemoveSpecies) Execute(ctx *Context) error {
	n := ctx.Config.RemoveMolecules(func(m *dissolve.Molecule) bool { return slices.Contains(R.species, m.Species) })
	ctx.Msg.Print("%s: removed %d molecules, %d left", R.name, n, len(ctx.Config.Molecules))
	return nil
}

func (R *RemoveSpecies) keywords(*Procedure) []keyword {
	return []keyword{{
		name: "Species", minArgs: 1, maxArgs: -1,
		read: func(r *reader, args []string) error {
			for _, a := range args {
				sp, err := r.species(a)
				if err != nil {
					return err
				}
				R.species = append(R.species, sp)
			}
			return nil
		},
		write: func(W *lineparser.Writer) error {
			if len(R.species) == 0 {
				return nil
			}
			line := "Species"
			for _, sp := range R.species {
				line += "  '" + sp.Name + "'"
			}
			return W.WriteLine("%s", line)
		},
	}}
}
