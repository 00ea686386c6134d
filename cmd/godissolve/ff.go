/*
 * ff.go, part of godissolve.
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

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rmera/godissolve/ff"
)

func newFFCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ff",
		Short: "Inspect the built-in forcefields",
	}
	cmd.AddCommand(newFFListCommand(), newFFLookupCommand())
	return cmd
}

func newFFListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the built-in forcefields",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%-24s %6s %6s %6s %8s %9s  %s\n", "name", "types", "bonds", "angles", "torsions", "impropers", "description")
			for _, F := range ff.Library() {
				n := F.NTerms()
				fmt.Fprintf(w, "%-24s %6d %6d %6d %8d %9d  %s\n", F.Name(), len(F.AtomTypes()), n[0], n[1], n[2], n[3], F.Description())
			}
			return nil
		},
	}
}

func newFFLookupCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <forcefield> <bond|angle|torsion|improper> <types...>",
		Short: "Find the term a forcefield has for a set of atom types",
		Long: "Finds the term the forcefield would assign to the interaction between the given\n" +
			"atom types, which can be given by name or numeric id. Impropers take the\n" +
			"central atom third.",
		Args: cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return lookup(cmd.OutOrStdout(), args[0], args[1], args[2:])
		},
	}
}

func lookup(w io.Writer, name, kind string, typeNames []string) error {
	F, err := ff.Get(name)
	if err != nil {
		return err
	}
	need := map[string]int{"bond": 2, "angle": 3, "torsion": 4, "improper": 4}
	n, ok := need[kind]
	if !ok {
		return fmt.Errorf("unknown term kind %q", kind)
	}
	if len(typeNames) != n {
		return fmt.Errorf("a %s needs %d atom types, got %d", kind, n, len(typeNames))
	}
	t := make([]*ff.AtomType, n)
	for i, s := range typeNames {
		if t[i], err = F.AtomType(s); err != nil {
			return err
		}
	}
	var form fmt.Stringer
	var paramNames, types []string
	var params []float64
	switch kind {
	case "bond":
		if T, found := F.BondTerm(t[0], t[1]); found {
			tn := T.TypeNames()
			form, paramNames, params, types = T.Form(), T.Form().ParamNames(), T.Params(), tn[:]
		}
	case "angle":
		if T, found := F.AngleTerm(t[0], t[1], t[2]); found {
			tn := T.TypeNames()
			form, paramNames, params, types = T.Form(), T.Form().ParamNames(), T.Params(), tn[:]
		}
	case "torsion":
		if T, found := F.TorsionTerm(t[0], t[1], t[2], t[3]); found {
			tn := T.TypeNames()
			form, paramNames, params, types = T.Form(), T.Form().ParamNames(), T.Params(), tn[:]
		}
	case "improper":
		if T, found := F.ImproperTerm(t[0], t[1], t[2], t[3]); found {
			tn := T.TypeNames()
			form, paramNames, params, types = T.Form(), T.Form().ParamNames(), T.Params(), tn[:]
		}
	}
	if form == nil {
		return fmt.Errorf("no %s term for %s in forcefield %s", kind, strings.Join(typeNames, "-"), F.Name())
	}
	p := make([]string, len(params))
	for i, v := range params {
		p[i] = fmt.Sprintf("%s=%g", paramNames[i], v)
	}
	fmt.Fprintf(w, "%s  %s  %s\n", strings.Join(types, "-"), form, strings.Join(p, " "))
	return nil
}
