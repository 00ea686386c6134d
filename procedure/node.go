/*
 * node.go, part of godissolve.
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

// Package procedure builds and runs analysis and generation procedures: trees of
// nodes that select sites in a configuration, calculate observables from them,
// collect the results and process them into data. A procedure is run once per
// configuration frame.
package procedure

import (
	"fmt"
	"strings"

	"github.com/rmera/godissolve/lineparser"
)

// NodeType identifies the kind of a node.
type NodeType int

const (
	SelectNode NodeType = iota
	DynamicSiteNode
	CalculateDistanceNode
	CalculateAngleNode
	CalculateAxisAngleNode
	CalculateVectorNode
	Collect1DNode
	Process1DNode
	OperateNormaliseNode
	OperateMultiplyNode
	OperateDivideNode
	OperateSitePopulationNormaliseNode
	OperateNumberDensityNormaliseNode
	OperateSphericalShellNormaliseNode
	RemoveSpeciesNode
	nNodeTypes
)

var nodeTypeNames = [nNodeTypes]string{
	"Select",
	"DynamicSite",
	"CalculateDistance",
	"CalculateAngle",
	"CalculateAxisAngle",
	"CalculateVector",
	"Collect1D",
	"Process1D",
	"OperateNormalise",
	"OperateMultiply",
	"OperateDivide",
	"OperateSitePopulationNormalise",
	"OperateNumberDensityNormalise",
	"OperateSphericalShellNormalise",
	"RemoveSpecies",
}

func (t NodeType) String() string {
	if t < 0 || t >= nNodeTypes {
		return fmt.Sprintf("NodeType(%d)", int(t))
	}
	return nodeTypeNames[t]
}

// ParseNodeType returns the node type with the given name.
func ParseNodeType(s string) (NodeType, bool) {
	for i, n := range nodeTypeNames {
		if strings.EqualFold(n, s) {
			return NodeType(i), true
		}
	}
	return 0, false
}

// IsCalculate returns true for the nodes that calculate an observable from sites.
func (t NodeType) IsCalculate() bool {
	return t >= CalculateDistanceNode && t <= CalculateVectorNode
}

var calculateTypes = []NodeType{CalculateDistanceNode, CalculateAngleNode, CalculateAxisAngleNode, CalculateVectorNode}

// ContextType is the kind of sequence a node is placed in. Each node type is only
// valid in some of them.
type ContextType int

const (
	// AnalysisContext sequences look at a configuration without changing it.
	AnalysisContext ContextType = iota
	// GenerationContext sequences may change the configuration.
	GenerationContext
	// OperateContext sequences transform a dataset.
	OperateContext
	// DynamicSiteContext sequences hold the dynamic site definitions of a Select node.
	DynamicSiteContext

	// inheritContext branches take the context of the sequence their owner is added to.
	inheritContext ContextType = -1
)

func (c ContextType) String() string {
	switch c {
	case AnalysisContext:
		return "Analysis"
	case GenerationContext:
		return "Generation"
	case OperateContext:
		return "Operate"
	case DynamicSiteContext:
		return "DynamicSite"
	}
	return fmt.Sprintf("ContextType(%d)", int(c))
}

// NodeRef is the handle of a node in its procedure.
type NodeRef int

// NoNode is a NodeRef that refers to no node.
const NoNode NodeRef = -1

// Node is a step of a procedure. Nodes are created with their New* functions and
// are owned by the procedure they are added to.
type Node interface {
	Type() NodeType
	Name() string
	// IsContextRelevant returns whether the node may be placed in a sequence of the given context.
	IsContextRelevant(ContextType) bool
	// Prepare is called on every node once per frame, before anything is executed.
	Prepare(ctx *Context) error
	// Execute does the work of the node. It may be called many times per frame.
	Execute(ctx *Context) error
	// Finalise is called on every node once per frame, after execution.
	Finalise(ctx *Context) error

	base() *nodeBase
	// keywords returns the keywords of the node, bound to it.
	keywords(p *Procedure) []keyword
	// branches returns the sequences owned by the node.
	branches() []*Sequence
	// unlink removes any reference to the given node.
	unlink(dead NodeRef)
}

// completer is implemented by nodes with work to do once all frames are done.
type completer interface {
	Complete(ctx *Context) error
}

// checker is implemented by nodes whose keywords depend on each other. check is
// called once the block of the node has been read.
type checker interface {
	check() error
}

// nodeBase holds what all nodes have, and the default behaviour.
type nodeBase struct {
	name string
	ref  NodeRef
}

func newBase(name string) nodeBase { return nodeBase{name: name, ref: NoNode} }

func (b *nodeBase) Name() string                  { return b.name }
func (b *nodeBase) base() *nodeBase               { return b }
func (b *nodeBase) Prepare(ctx *Context) error    { return nil }
func (b *nodeBase) Finalise(ctx *Context) error   { return nil }
func (b *nodeBase) branches() []*Sequence         { return nil }
func (b *nodeBase) unlink(dead NodeRef)           {}
func (b *nodeBase) keywords(*Procedure) []keyword { return nil }

// Ref returns the handle of the node in its procedure, or NoNode if it hasn't been added to one.
func Ref(n Node) NodeRef { return n.base().ref }

func unlinkRef(r *NodeRef, dead NodeRef) {
	if *r == dead {
		*r = NoNode
	}
}

func unlinkRefs(rs []NodeRef, dead NodeRef) []NodeRef {
	out := rs[:0]
	for _, r := range rs {
		if r != dead {
			out = append(out, r)
		}
	}
	return out
}

// keyword is a setting of a node as read from and written to a procedure file.
// The arguments are the tokens of the record after the keyword name.
type keyword struct {
	name             string
	minArgs, maxArgs int //maxArgs < 0 means no limit
	read             func(r *reader, args []string) error
	// write writes the keyword, or nothing if it has its default value.
	write func(W *lineparser.Writer) error
}

// newNode returns an empty node of the given type.
func newNode(t NodeType, name string) Node {
	switch t {
	case SelectNode:
		return NewSelect(name)
	case DynamicSiteNode:
		return NewDynamicSite(name)
	case CalculateDistanceNode:
		return NewCalculateDistance(name, NoNode, NoNode)
	case CalculateAngleNode:
		return NewCalculateAngle(name, NoNode, NoNode, NoNode)
	case CalculateAxisAngleNode:
		return NewCalculateAxisAngle(name, NoNode, 0, NoNode, 0)
	case CalculateVectorNode:
		return NewCalculateVector(name, NoNode, NoNode)
	case Collect1DNode:
		return NewCollect1D(name, NoNode, 0, 10, 0.05)
	case Process1DNode:
		return NewProcess1D(name, NoNode)
	case OperateNormaliseNode:
		return NewOperateNormalise(name, 1)
	case OperateMultiplyNode:
		return NewOperateMultiply(name, 1)
	case OperateDivideNode:
		return NewOperateDivide(name, 1)
	case OperateSitePopulationNormaliseNode:
		return NewOperateSitePopulationNormalise(name)
	case OperateNumberDensityNormaliseNode:
		return NewOperateNumberDensityNormalise(name)
	case OperateSphericalShellNormaliseNode:
		return NewOperateSphericalShellNormalise(name)
	case RemoveSpeciesNode:
		return NewRemoveSpecies(name)
	}
	panic(fmt.Sprintf("procedure: no constructor for node type %d", int(t)))
}
