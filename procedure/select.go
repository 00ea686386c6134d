/*
 * select.go, part of godissolve.
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
	"fmt"
	"slices"

	dissolve "github.com/rmera/godissolve"
	"github.com/rmera/godissolve/genericlist"
	"github.com/rmera/godissolve/lineparser"
	v3 "github.com/rmera/godissolve/v3"
)

type speciesSite struct {
	sp   *dissolve.Species
	site string
}

// SiteStats counts the sites a Select node has seen, over all frames.
type SiteStats struct {
	NSelections int //times the node was executed
	NAvailable  int //sites found, before exclusions
	NCumulative int //sites selected
}

// AverageSites returns the average number of sites selected per execution.
func (S *SiteStats) AverageSites() float64 {
	if S.NSelections == 0 {
		return 0
	}
	return float64(S.NCumulative) / float64(S.NSelections)
}

// Select selects, one at a time, the sites of a configuration that pass its
// filters, and runs its ForEach sequence for each of them. The site being
// processed is the node's current site.
type Select struct {
	nodeBase
	sites   []speciesSite
	dynamic *Sequence

	excludeSameMolecule []NodeRef
	excludeSameSite     []NodeRef
	sameMolecule        NodeRef
	reference           NodeRef
	inclusiveRange      [2]float64 //distance from the reference site
	rangeSet            bool
	forEach             *Sequence
}

// NewSelect returns a Select node with no sites.
func NewSelect(name string) *Select {
	return &Select{
		nodeBase:     newBase(name),
		dynamic:      newBranch(DynamicSiteContext, "EndDynamicSite"),
		sameMolecule: NoNode,
		reference:    NoNode,
		forEach:      newBranch(inheritContext, "EndForEach"),
	}
}

func (S *Select) Type() NodeType { return SelectNode }

func (S *Select) IsContextRelevant(c ContextType) bool {
	return c == AnalysisContext || c == GenerationContext
}

// AddSite adds the named site of sp to the sites the node selects from.
func (S *Select) AddSite(sp *dissolve.Species, site string) error {
	if sp.Site(site) == nil {
		return fmt.Errorf("species '%s' has no site '%s'", sp.Name, site)
	}
	S.sites = append(S.sites, speciesSite{sp, site})
	return nil
}

// DynamicSites returns the sequence of DynamicSite nodes of the Select.
func (S *Select) DynamicSites() *Sequence { return S.dynamic }

// ForEach returns the sequence run for each selected site.
func (S *Select) ForEach() *Sequence { return S.forEach }

// SetExcludeSameMolecule excludes sites in the molecule of the current site of any of the given Select nodes.
func (S *Select) SetExcludeSameMolecule(sel ...NodeRef) { S.excludeSameMolecule = sel }

// SetExcludeSameSite excludes the current site of any of the given Select nodes.
func (S *Select) SetExcludeSameSite(sel ...NodeRef) { S.excludeSameSite = sel }

// SetSameMoleculeAsSite restricts selection to the molecule of the current site of sel.
func (S *Select) SetSameMoleculeAsSite(sel NodeRef) { S.sameMolecule = sel }

// SetReferenceSite restricts selection to sites between min and max (inclusive)
// from the current site of sel.
func (S *Select) SetReferenceSite(sel NodeRef, min, max float64) {
	S.reference = sel
	S.inclusiveRange = [2]float64{min, max}
	S.rangeSet = true
}

func (S *Select) check() error {
	if S.reference != NoNode && !S.rangeSet {
		return fmt.Errorf("ReferenceSite given without an InclusiveRange")
	}
	return nil
}

func (S *Select) branches() []*Sequence { return []*Sequence{S.dynamic, S.forEach} }

func (S *Select) unlink(dead NodeRef) {
	S.excludeSameMolecule = unlinkRefs(S.excludeSameMolecule, dead)
	S.excludeSameSite = unlinkRefs(S.excludeSameSite, dead)
	unlinkRef(&S.sameMolecule, dead)
	unlinkRef(&S.reference, dead)
}

func (S *Select) stats(ctx *Context) (*SiteStats, error) {
	st, _, err := genericlist.Realise(ctx.List, S.name, ctx.Prefix, func() *SiteStats { return &SiteStats{} })
	return st, err
}

// Stats returns the site counts of the Select node for the given context.
func (S *Select) Stats(ctx *Context) (*SiteStats, error) { return S.stats(ctx) }

func (S *Select) Prepare(ctx *Context) error {
	_, err := S.stats(ctx)
	return err
}

// candidates returns all the sites of the configuration the node selects from.
func (S *Select) candidates(ctx *Context) ([]*dissolve.Site, error) {
	var ret []*dissolve.Site
	for _, s := range S.sites {
		st, err := ctx.Config.SiteStack(s.sp, s.site)
		if err != nil {
			return nil, err
		}
		ret = append(ret, st...)
	}
	for _, r := range S.dynamic.refs {
		ret = append(ret, S.dynamic.proc.nodes[r].(*DynamicSite).Sites(ctx.Config)...)
	}
	return ret, nil
}

func sameSite(a, b *dissolve.Site) bool {
	return a.Molecule == b.Molecule && a.Atom == b.Atom && a.Origin.Vec(0) == b.Origin.Vec(0)
}

// filter returns a function that tells whether a site passes the exclusions of the node.
func (S *Select) filter(ctx *Context) (func(*dissolve.Site) bool, error) {
	var sameMol []int
	for _, r := range S.excludeSameMolecule {
		cs, err := ctx.CurrentSite(r)
		if err != nil {
			return nil, err
		}
		sameMol = append(sameMol, cs.Molecule)
	}
	var sameSites []*dissolve.Site
	for _, r := range S.excludeSameSite {
		cs, err := ctx.CurrentSite(r)
		if err != nil {
			return nil, err
		}
		sameSites = append(sameSites, cs)
	}
	molecule := -1
	if S.sameMolecule != NoNode {
		cs, err := ctx.CurrentSite(S.sameMolecule)
		if err != nil {
			return nil, err
		}
		molecule = cs.Molecule
	}
	var ref *dissolve.Site
	if S.reference != NoNode {
		var err error
		if ref, err = ctx.CurrentSite(S.reference); err != nil {
			return nil, err
		}
	}
	box := ctx.Config.Box
	return func(s *dissolve.Site) bool {
		if slices.Contains(sameMol, s.Molecule) {
			return false
		}
		if slices.ContainsFunc(sameSites, func(o *dissolve.Site) bool { return sameSite(o, s) }) {
			return false
		}
		if molecule >= 0 && s.Molecule != molecule {
			return false
		}
		if ref != nil {
			d := box.MinimumDistance(ref.Origin, s.Origin)
			if d < S.inclusiveRange[0] || d > S.inclusiveRange[1] {
				return false
			}
		}
		return true
	}, nil
}

func (S *Select) Execute(ctx *Context) error {
	st, err := S.stats(ctx)
	if err != nil {
		return err
	}
	cands, err := S.candidates(ctx)
	if err != nil {
		return err
	}
	keep, err := S.filter(ctx)
	if err != nil {
		return err
	}
	st.NSelections++
	st.NAvailable += len(cands)
	defer ctx.setCurrentSite(S.ref, nil)
	for _, s := range cands {
		if !keep(s) {
			continue
		}
		st.NCumulative++
		ctx.setCurrentSite(S.ref, s)
		if err := S.forEach.Execute(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Complete sums the site counts over all ranks.
func (S *Select) Complete(ctx *Context) error {
	st, err := S.stats(ctx)
	if err != nil {
		return err
	}
	buf := []float64{float64(st.NSelections), float64(st.NAvailable), float64(st.NCumulative)}
	if err := ctx.Pool.AllSum(buf); err != nil {
		return err
	}
	st.NSelections, st.NAvailable, st.NCumulative = int(buf[0]), int(buf[1]), int(buf[2])
	return nil
}

func (S *Select) keywords(P *Procedure) []keyword {
	return []keyword{
		{
			name: "Site", minArgs: 2, maxArgs: -1,
			read: func(r *reader, args []string) error {
				if len(args)%2 != 0 {
					return fmt.Errorf("expected species and site name pairs")
				}
				for i := 0; i < len(args); i += 2 {
					sp, err := r.species(args[i])
					if err != nil {
						return err
					}
					if err := S.AddSite(sp, args[i+1]); err != nil {
						return err
					}
				}
				return nil
			},
			write: func(W *lineparser.Writer) error {
				for _, s := range S.sites {
					if err := W.WriteLine("Site  '%s'  '%s'", s.sp.Name, s.site); err != nil {
						return err
					}
				}
				return nil
			},
		},
		{
			name: "DynamicSite", minArgs: 0, maxArgs: 1,
			read: func(r *reader, args []string) error {
				name := ""
				if len(args) > 0 {
					name = args[0]
				}
				n := NewDynamicSite(name)
				ref, err := S.dynamic.Add(n)
				if err != nil {
					return err
				}
				return r.block(ref, n)
			},
			write: func(W *lineparser.Writer) error { return P.writeSequence(W, S.dynamic) },
		},
		refsKeyword("ExcludeSameMolecule", &S.excludeSameMolecule, false, P, SelectNode),
		refsKeyword("ExcludeSameSite", &S.excludeSameSite, false, P, SelectNode),
		refKeyword("SameMoleculeAsSite", &S.sameMolecule, false, P, SelectNode),
		refKeyword("ReferenceSite", &S.reference, false, P, SelectNode),
		{
			name: "InclusiveRange", minArgs: 2, maxArgs: 2,
			read: func(r *reader, args []string) error {
				v, err := parseFloats(args)
				if err != nil {
					return err
				}
				if v[1] < v[0] {
					return fmt.Errorf("maximum %g is below minimum %g", v[1], v[0])
				}
				S.inclusiveRange = [2]float64{v[0], v[1]}
				S.rangeSet = true
				return nil
			},
			write: func(W *lineparser.Writer) error {
				if S.reference == NoNode {
					return nil
				}
				return W.WriteLine("InclusiveRange  %s  %s", formatFloat(S.inclusiveRange[0]), formatFloat(S.inclusiveRange[1]))
			},
		},
		branchKeyword("ForEach", S.forEach, P),
	}
}

// DynamicSite defines sites on single atoms, chosen by element or atom type
// rather than by species.
type DynamicSite struct {
	nodeBase
	elements  []string
	atomTypes []string
}

// NewDynamicSite returns a DynamicSite node matching no atoms.
func NewDynamicSite(name string) *DynamicSite {
	return &DynamicSite{nodeBase: newBase(name)}
}

func (D *DynamicSite) Type() NodeType                       { return DynamicSiteNode }
func (D *DynamicSite) IsContextRelevant(c ContextType) bool { return c == DynamicSiteContext }
func (D *DynamicSite) Execute(ctx *Context) error           { return nil }

// AddElements adds elements whose atoms are sites.
func (D *DynamicSite) AddElements(el ...string) error {
	for _, e := range el {
		if !dissolve.IsElement(e) {
			return fmt.Errorf("unknown element '%s'", e)
		}
	}
	D.elements = append(D.elements, el...)
	return nil
}

// AddAtomTypes adds atom types whose atoms are sites.
func (D *DynamicSite) AddAtomTypes(t ...string) { D.atomTypes = append(D.atomTypes, t...) }

// Sites returns a site for every atom of the configuration matching the node, in atom order.
func (D *DynamicSite) Sites(C *dissolve.Configuration) []*dissolve.Site {
	var ret []*dissolve.Site
	for _, mol := range C.Molecules {
		for i, at := range mol.Species.Atoms {
			if !slices.Contains(D.elements, at.Symbol) && !slices.Contains(D.atomTypes, at.Type) {
				continue
			}
			r := C.Coords.Vec(mol.Offset + i)
			ret = append(ret, &dissolve.Site{Molecule: mol.Index, Atom: mol.Offset + i, Origin: v3.NewVec(r[0], r[1], r[2])})
		}
	}
	return ret
}

func (D *DynamicSite) keywords(P *Procedure) []keyword {
	list := func(name string, vals *[]string) keyword {
		return keyword{
			name: name, minArgs: 1, maxArgs: -1,
			write: func(W *lineparser.Writer) error {
				if len(*vals) == 0 {
					return nil
				}
				line := name
				for _, v := range *vals {
					line += "  " + v
				}
				return W.WriteLine("%s", line)
			},
		}
	}
	el := list("Element", &D.elements)
	el.read = func(r *reader, args []string) error { return D.AddElements(args...) }
	at := list("AtomType", &D.atomTypes)
	at.read = func(r *reader, args []string) error { D.AddAtomTypes(args...); return nil }
	return []keyword{el, at}
}
