/*
 * graph.go, part of godissolve.
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

// Package chemgraph represents the connectivity of a species as a gonum graph and
// derives from it the angles, torsions and improper candidates of the species.
package chemgraph

import (
	"slices"

	dissolve "github.com/rmera/godissolve"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
	"gonum.org/v1/gonum/graph/traverse"
)

// Atom is a graph node wrapping a species atom.
type Atom struct {
	*dissolve.SpeciesAtom
}

// ID implements graph.Node. The ID is the index of the atom in its species.
func (A Atom) ID() int64 {
	return int64(A.Index)
}

// Topology is the undirected molecular graph of a species.
type Topology struct {
	*simple.UndirectedGraph
	sp *dissolve.Species
}

// FromSpecies builds the molecular graph of sp. Every atom is a node, and every bond an edge.
func FromSpecies(sp *dissolve.Species) *Topology {
	g := simple.NewUndirectedGraph()
	for _, a := range sp.Atoms {
		g.AddNode(Atom{a})
	}
	for _, b := range sp.Bonds {
		g.SetEdge(g.NewEdge(g.Node(int64(b.I)), g.Node(int64(b.J))))
	}
	return &Topology{UndirectedGraph: g, sp: sp}
}

// Neighbours returns the indexes of the atoms bonded to atom i, in ascending order.
func (T *Topology) Neighbours(i int) []int {
	nodes := graph.NodesOf(T.From(int64(i)))
	ret := make([]int, 0, len(nodes))
	for _, n := range nodes {
		ret = append(ret, int(n.ID()))
	}
	slices.Sort(ret)
	return ret
}

// Angles returns every i-j-k triplet with i and k bonded to the central atom j.
// Each angle appears once, with i<k, and the angles are sorted by central atom.
func (T *Topology) Angles() [][3]int {
	var ret [][3]int
	for j := 0; j < T.sp.Len(); j++ {
		nb := T.Neighbours(j)
		for a := 0; a < len(nb); a++ {
			for b := a + 1; b < len(nb); b++ {
				ret = append(ret, [3]int{nb[a], j, nb[b]})
			}
		}
	}
	return ret
}

// Torsions returns every i-j-k-l quadruplet along the bonds of the species, one per
// distinct path, ordered following the order of the species bonds j-k.
// Three-membered rings, where i==l, are excluded.
func (T *Topology) Torsions() [][4]int {
	var ret [][4]int
	for _, b := range T.sp.Bonds {
		j, k := b.I, b.J
		for _, i := range T.Neighbours(j) {
			if i == k {
				continue
			}
			for _, l := range T.Neighbours(k) {
				if l == j || l == i {
					continue
				}
				ret = append(ret, [4]int{i, j, k, l})
			}
		}
	}
	return ret
}

// ImproperCentres returns the atoms with exactly three bonded neighbours, which are the
// central atoms of candidate improper torsions, together with their neighbours.
func (T *Topology) ImproperCentres() map[int][3]int {
	ret := make(map[int][3]int)
	for i := 0; i < T.sp.Len(); i++ {
		nb := T.Neighbours(i)
		if len(nb) != 3 {
			continue
		}
		ret[i] = [3]int{nb[0], nb[1], nb[2]}
	}
	return ret
}

// Fragments returns the connected components of the species as lists of atom indexes,
// each sorted, and sorted among themselves by their first atom.
func (T *Topology) Fragments() [][]int {
	cc := topo.ConnectedComponents(T.UndirectedGraph)
	ret := make([][]int, 0, len(cc))
	for _, c := range cc {
		f := make([]int, 0, len(c))
		for _, n := range c {
			f = append(f, int(n.ID()))
		}
		slices.Sort(f)
		ret = append(ret, f)
	}
	slices.SortFunc(ret, func(a, b []int) int { return a[0] - b[0] })
	return ret
}

// Separation returns the minimum number of bonds between atoms i and j, or -1 if they
// are not connected.
func (T *Topology) Separation(i, j int) int {
	if i == j {
		return 0
	}
	var bf traverse.BreadthFirst
	ret := -1
	bf.Walk(T.UndirectedGraph, T.Node(int64(i)), func(n graph.Node, d int) bool {
		if n.ID() == int64(j) {
			ret = d
			return true
		}
		return false
	})
	return ret
}
