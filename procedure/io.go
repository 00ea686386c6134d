/*
 * io.go, part of godissolve.
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
	"io"
	"strconv"
	"strings"

	dissolve "github.com/rmera/godissolve"
	"github.com/rmera/godissolve/lineparser"
)

// reader holds the state of reading a procedure.
type reader struct {
	P    *lineparser.Parser
	env  Environment
	proc *Procedure
	node NodeRef //node whose keywords are being read
}

// Read reads a procedure with the given root context from P. The root sequence
// ends with the input or with an EndProcedure record. Each node is a block:
//
//	NodeType  [name]
//	  Keyword  args...
//	EndNodeType
//
// Node references are resolved as they are read, so a node can only refer to
// nodes defined before it.
func Read(P *lineparser.Parser, ctx ContextType, name string, env Environment) (*Procedure, error) {
	proc := New(ctx, name)
	r := &reader{P: P, env: env, proc: proc, node: NoNode}
	proc.root.end = "EndProcedure"
	if err := r.sequence(proc.root, true); err != nil {
		return nil, err
	}
	proc.root.end = ""
	return proc, nil
}

// sequence reads nodes into S until its end keyword, or the end of the input if eofOK.
func (r *reader) sequence(S *Sequence, eofOK bool) error {
	for {
		_, err := r.P.ReadRecord()
		if errors.Is(err, io.EOF) {
			if eofOK {
				return nil
			}
			return r.P.Errorf("unexpected end of input, expected %s", S.end)
		}
		if err != nil {
			return err
		}
		first, _ := r.P.String(0)
		if strings.EqualFold(first, S.end) {
			return nil
		}
		t, ok := ParseNodeType(first)
		if !ok {
			return r.P.Errorf("unknown node type '%s'", first)
		}
		if r.P.NTokens() > 2 {
			return r.P.Errorf("expected '%s [name]'", t)
		}
		name := ""
		if r.P.HasToken(1) {
			name, _ = r.P.String(1)
		}
		n := newNode(t, name)
		ref, err := S.Add(n)
		if err != nil {
			return r.P.Errorf("%w", err)
		}
		if err := r.block(ref, n); err != nil {
			return err
		}
	}
}

// block reads the keywords of node n until End<Type>.
func (r *reader) block(ref NodeRef, n Node) error {
	saved := r.node
	r.node = ref
	defer func() { r.node = saved }()
	kws := n.keywords(r.proc)
	end := "End" + n.Type().String()
	for {
		_, err := r.P.ReadRecord()
		if errors.Is(err, io.EOF) {
			return r.P.Errorf("unexpected end of input in %s '%s', expected %s", n.Type(), n.Name(), end)
		}
		if err != nil {
			return err
		}
		tokens := r.P.Tokens()
		if strings.EqualFold(tokens[0], end) {
			if c, ok := n.(checker); ok {
				if err := c.check(); err != nil {
					return r.P.Errorf("%s '%s': %w", n.Type(), n.Name(), err)
				}
			}
			return nil
		}
		kw := findKeyword(kws, tokens[0])
		if kw == nil {
			return r.P.Errorf("unrecognised keyword '%s' in %s '%s'", tokens[0], n.Type(), n.Name())
		}
		args := tokens[1:]
		if len(args) < kw.minArgs || (kw.maxArgs >= 0 && len(args) > kw.maxArgs) {
			return r.P.Errorf("wrong number of arguments (%d) for keyword '%s' in %s '%s'", len(args), kw.name, n.Type(), n.Name())
		}
		if err := kw.read(r, args); err != nil {
			return r.P.Errorf("%s: %w", kw.name, err)
		}
	}
}

func findKeyword(kws []keyword, name string) *keyword {
	for i := range kws {
		if strings.EqualFold(kws[i].name, name) {
			return &kws[i]
		}
	}
	return nil
}

// resolve finds a node by name for the node being read, in its scope or, if
// global, anywhere in the procedure.
func (r *reader) resolve(name string, global bool, types ...NodeType) (NodeRef, error) {
	if global {
		return r.proc.Find(name, types...)
	}
	return r.proc.FindInScope(name, r.node, types...)
}

func (r *reader) resolveAll(names []string, global bool, types ...NodeType) ([]NodeRef, error) {
	ret := make([]NodeRef, 0, len(names))
	for _, n := range names {
		ref, err := r.resolve(n, global, types...)
		if err != nil {
			return nil, err
		}
		ret = append(ret, ref)
	}
	return ret, nil
}

func (r *reader) species(name string) (*dissolve.Species, error) {
	if r.env == nil {
		return nil, fmt.Errorf("no species available to resolve '%s'", name)
	}
	sp := r.env.Species(name)
	if sp == nil {
		return nil, fmt.Errorf("no species named '%s'", name)
	}
	return sp, nil
}

func parseFloats(args []string) ([]float64, error) {
	ret := make([]float64, len(args))
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i+1, err)
		}
		ret[i] = v
	}
	return ret, nil
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "true", "yes", "on", "1":
		return true, nil
	case "false", "no", "off", "0":
		return false, nil
	}
	return false, fmt.Errorf("'%s' is not a boolean", s)
}

// Write writes the procedure in the format Read reads.
func (P *Procedure) Write(W *lineparser.Writer) error {
	return P.writeSequence(W, P.root)
}

func (P *Procedure) writeSequence(W *lineparser.Writer, S *Sequence) error {
	for _, ref := range S.refs {
		n := P.nodes[ref]
		if err := W.WriteLine("%s  '%s'", n.Type(), n.Name()); err != nil {
			return err
		}
		W.Indent()
		for _, kw := range n.keywords(P) {
			if err := kw.write(W); err != nil {
				return err
			}
		}
		W.Dedent()
		if err := W.WriteLine("End%s", n.Type()); err != nil {
			return err
		}
	}
	return nil
}

// writeBranch writes a keyword that opens a branch, the branch, and its end keyword.
func (P *Procedure) writeBranch(W *lineparser.Writer, name string, S *Sequence) error {
	if len(S.refs) == 0 {
		return nil
	}
	if err := W.WriteLine("%s", name); err != nil {
		return err
	}
	W.Indent()
	if err := P.writeSequence(W, S); err != nil {
		return err
	}
	W.Dedent()
	return W.WriteLine("%s", S.end)
}

// branchKeyword returns a keyword that reads the nodes of S.
func branchKeyword(name string, S *Sequence, P *Procedure) keyword {
	return keyword{
		name: name,
		read: func(r *reader, args []string) error { return r.sequence(S, false) },
		write: func(W *lineparser.Writer) error {
			return P.writeBranch(W, name, S)
		},
	}
}

// refKeyword returns a keyword naming a single node of one of the given types.
func refKeyword(name string, ref *NodeRef, global bool, P *Procedure, types ...NodeType) keyword {
	return keyword{
		name: name, minArgs: 1, maxArgs: 1,
		read: func(r *reader, args []string) error {
			var err error
			*ref, err = r.resolve(args[0], global, types...)
			return err
		},
		write: func(W *lineparser.Writer) error {
			if *ref == NoNode {
				return nil
			}
			return W.WriteLine("%s  '%s'", name, P.NodeName(*ref))
		},
	}
}

// refsKeyword returns a keyword naming nodes of one of the given types. Repeated
// keywords add to the list.
func refsKeyword(name string, refs *[]NodeRef, global bool, P *Procedure, types ...NodeType) keyword {
	return keyword{
		name: name, minArgs: 1, maxArgs: -1,
		read: func(r *reader, args []string) error {
			rs, err := r.resolveAll(args, global, types...)
			*refs = append(*refs, rs...)
			return err
		},
		write: func(W *lineparser.Writer) error {
			if len(*refs) == 0 {
				return nil
			}
			line := name
			for _, r := range *refs {
				line += fmt.Sprintf("  '%s'", P.NodeName(r))
			}
			return W.WriteLine("%s", line)
		},
	}
}

// floatKeyword returns a keyword with a single number.
func floatKeyword(name string, v *float64) keyword {
	return keyword{
		name: name, minArgs: 1, maxArgs: 1,
		read: func(r *reader, args []string) error {
			f, err := parseFloats(args)
			if err != nil {
				return err
			}
			*v = f[0]
			return nil
		},
		write: func(W *lineparser.Writer) error { return W.WriteLine("%s  %s", name, formatFloat(*v)) },
	}
}

// boolKeyword returns a keyword with a single boolean, written only when it differs from def.
func boolKeyword(name string, v *bool, def bool) keyword {
	return keyword{
		name: name, minArgs: 1, maxArgs: 1,
		read: func(r *reader, args []string) error {
			b, err := parseBool(args[0])
			*v = b
			return err
		},
		write: func(W *lineparser.Writer) error {
			if *v == def {
				return nil
			}
			return W.WriteLine("%s  %t", name, *v)
		},
	}
}

// stringKeyword returns a keyword with a single string, not written when empty.
func stringKeyword(name string, v *string) keyword {
	return keyword{
		name: name, minArgs: 1, maxArgs: 1,
		read: func(r *reader, args []string) error { *v = args[0]; return nil },
		write: func(W *lineparser.Writer) error {
			if *v == "" {
				return nil
			}
			return W.WriteLine("%s  '%s'", name, *v)
		},
	}
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
