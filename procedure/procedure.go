/*
 * procedure.go, part of godissolve.
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
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrNodeNotFound is returned when a node name can't be resolved.
	ErrNodeNotFound = errors.New("node not found")
	// ErrNodeType is returned when a node is not of the type required.
	ErrNodeType = errors.New("node of the wrong type")
)

// Procedure owns a set of nodes arranged in sequences, starting from a root sequence.
// Nodes refer to each other by NodeRef.
type Procedure struct {
	name   string
	nodes  []Node      //indexed by NodeRef, nil once removed
	owners []*Sequence //the sequence each node is in
	names  map[string]NodeRef
	root   *Sequence
}

// New returns an empty procedure whose root sequence has the given context.
func New(ctx ContextType, name string) *Procedure {
	P := &Procedure{name: name, names: make(map[string]NodeRef)}
	P.root = &Sequence{proc: P, ctx: ctx, parent: NoNode, end: ""}
	return P
}

func (P *Procedure) Name() string { return P.name }

// Root returns the root sequence.
func (P *Procedure) Root() *Sequence { return P.root }

// Context returns the context of the root sequence.
func (P *Procedure) Context() ContextType { return P.root.ctx }

// Node returns the node with the given handle, or nil.
func (P *Procedure) Node(ref NodeRef) Node {
	if ref < 0 || int(ref) >= len(P.nodes) {
		return nil
	}
	return P.nodes[ref]
}

// NodeName returns the name of the node with the given handle, or an empty string.
func (P *Procedure) NodeName(ref NodeRef) string {
	if n := P.Node(ref); n != nil {
		return n.Name()
	}
	return ""
}

// NNodes returns the number of nodes in the procedure.
func (P *Procedure) NNodes() int { return len(P.names) }

// Find returns the node with the given name anywhere in the procedure. If types
// are given, the node must be of one of them.
func (P *Procedure) Find(name string, types ...NodeType) (NodeRef, error) {
	ref, ok := P.names[name]
	if !ok {
		return NoNode, fmt.Errorf("Find: %q: %w", name, ErrNodeNotFound)
	}
	return ref, checkType(P.nodes[ref], types)
}

func checkType(n Node, types []NodeType) error {
	if len(types) == 0 || slices.Contains(types, n.Type()) {
		return nil
	}
	return fmt.Errorf("%w: '%s' is a %s, need one of %v", ErrNodeType, n.Name(), n.Type(), types)
}

// FindInScope returns the node with the given name that is visible from the
// position of node from: earlier in its sequence, or earlier in (or owning)
// any of the enclosing sequences. If types are given, the node must be of one of them.
func (P *Procedure) FindInScope(name string, from NodeRef, types ...NodeType) (NodeRef, error) {
	seq, limit := P.owners[from], from
	for seq != nil {
		for _, r := range seq.refs {
			if r == limit {
				break
			}
			if P.nodes[r].Name() == name {
				return r, checkType(P.nodes[r], types)
			}
		}
		if seq.parent == NoNode {
			break
		}
		//the owner of a branch is visible from inside it
		if P.nodes[seq.parent].Name() == name {
			return seq.parent, checkType(P.nodes[seq.parent], types)
		}
		seq, limit = P.owners[seq.parent], seq.parent
	}
	return NoNode, fmt.Errorf("%q is not in scope of '%s': %w", name, P.NodeName(from), ErrNodeNotFound)
}

// Remove removes a node, and all the nodes in its branches, from the procedure.
// References to removed nodes held by other nodes are cleared.
func (P *Procedure) Remove(ref NodeRef) error {
	n := P.Node(ref)
	if n == nil {
		return fmt.Errorf("Remove: no node %d: %w", ref, ErrNodeNotFound)
	}
	var dead []NodeRef
	var collect func(r NodeRef)
	collect = func(r NodeRef) {
		dead = append(dead, r)
		for _, b := range P.nodes[r].branches() {
			for _, c := range b.refs {
				collect(c)
			}
		}
	}
	collect(ref)
	owner := P.owners[ref]
	owner.refs = slices.DeleteFunc(owner.refs, func(r NodeRef) bool { return r == ref })
	for _, d := range dead {
		delete(P.names, P.nodes[d].Name())
		P.nodes[d].base().ref = NoNode
		for _, b := range P.nodes[d].branches() {
			b.refs = nil
		}
		P.nodes[d] = nil
		P.owners[d] = nil
	}
	for _, n := range P.nodes {
		if n == nil {
			continue
		}
		for _, d := range dead {
			n.unlink(d)
		}
	}
	return nil
}

// walk calls f on all nodes, depth first in the order they appear.
func (P *Procedure) walk(f func(Node) error) error {
	var rec func(s *Sequence) error
	rec = func(s *Sequence) error {
		for _, r := range s.refs {
			n := P.nodes[r]
			if err := f(n); err != nil {
				return nodeError(n, err)
			}
			for _, b := range n.branches() {
				if err := rec(b); err != nil {
					return nodeError(n, err)
				}
			}
		}
		return nil
	}
	return rec(P.root)
}

func nodeError(n Node, err error) error {
	return fmt.Errorf("%s '%s': %w", n.Type(), n.Name(), err)
}

// Execute runs the procedure on the configuration in ctx: all nodes are prepared,
// the root sequence is executed, and all nodes are finalised.
func (P *Procedure) Execute(ctx *Context) error {
	ctx.begin(P)
	if err := P.walk(func(n Node) error { return n.Prepare(ctx) }); err != nil {
		return fmt.Errorf("%s: prepare: %w", P.name, err)
	}
	if err := P.root.Execute(ctx); err != nil {
		return fmt.Errorf("%s: %w", P.name, err)
	}
	if err := P.walk(func(n Node) error { return n.Finalise(ctx) }); err != nil {
		return fmt.Errorf("%s: finalise: %w", P.name, err)
	}
	return nil
}

// Complete is called once after the procedure has been executed on all frames. It
// combines the statistics gathered by all ranks of the pool and produces the
// processed data. All ranks must call it.
func (P *Procedure) Complete(ctx *Context) error {
	ctx.begin(P)
	err := P.walk(func(n Node) error {
		if c, ok := n.(completer); ok {
			return c.Complete(ctx)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: complete: %w", P.name, err)
	}
	return nil
}

// Sequence is an ordered list of nodes within a procedure, all valid in its context.
type Sequence struct {
	proc   *Procedure
	ctx    ContextType
	parent NodeRef //node owning the sequence, NoNode for the root
	end    string  //keyword closing the sequence in a file
	refs   []NodeRef
}

func newBranch(ctx ContextType, end string) *Sequence {
	return &Sequence{ctx: ctx, parent: NoNode, end: end}
}

func (S *Sequence) Context() ContextType { return S.ctx }

// Nodes returns the handles of the nodes in the sequence.
func (S *Sequence) Nodes() []NodeRef { return slices.Clone(S.refs) }

// Len returns the number of nodes in the sequence.
func (S *Sequence) Len() int { return len(S.refs) }

// Add adds n at the end of the sequence and returns its handle. The node must be
// relevant to the context of the sequence, must not be in a procedure already,
// and its name must be unique in the procedure. Nodes with no name get one.
// Sequences owned by a node can only be added to once the node is in a procedure.
func (S *Sequence) Add(n Node) (NodeRef, error) {
	P := S.proc
	if P == nil {
		return NoNode, fmt.Errorf("Add: the sequence is not in a procedure yet")
	}
	b := n.base()
	if P.Node(b.ref) == n {
		return NoNode, fmt.Errorf("Add: %s '%s' is already in the procedure", n.Type(), b.name)
	}
	if !n.IsContextRelevant(S.ctx) {
		return NoNode, fmt.Errorf("Add: %s nodes are not allowed in a %s context", n.Type(), S.ctx)
	}
	if b.name == "" {
		b.name = P.uniqueName(n.Type())
	}
	if _, ok := P.names[b.name]; ok {
		return NoNode, fmt.Errorf("Add: a node named '%s' already exists", b.name)
	}
	ref := NodeRef(len(P.nodes))
	b.ref = ref
	P.nodes = append(P.nodes, n)
	P.owners = append(P.owners, S)
	P.names[b.name] = ref
	S.refs = append(S.refs, ref)
	for _, br := range n.branches() {
		br.proc = P
		br.parent = ref
		if br.ctx == inheritContext {
			br.ctx = S.ctx
		}
	}
	return ref, nil
}

func (P *Procedure) uniqueName(t NodeType) string {
	for i := 1; ; i++ {
		name := fmt.Sprintf("%s%02d", t, i)
		if _, ok := P.names[name]; !ok {
			return name
		}
	}
}

// Execute runs the nodes of the sequence, in order, stopping at the first error.
func (S *Sequence) Execute(ctx *Context) error {
	for _, r := range S.refs {
		n := S.proc.nodes[r]
		if err := n.Execute(ctx); err != nil {
			return nodeError(n, err)
		}
	}
	return nil
}
