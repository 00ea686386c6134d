/*
 * context.go, part of godissolve.
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

	dissolve "github.com/rmera/godissolve"
	"github.com/rmera/godissolve/data"
	"github.com/rmera/godissolve/genericlist"
	"github.com/rmera/godissolve/messenger"
	"github.com/rmera/godissolve/procpool"
)

// ErrNoCurrentSite is returned when a node needs the current site of a Select
// node that has none, which happens if it is executed outside that node's ForEach.
var ErrNoCurrentSite = errors.New("select node has no current site")

// ErrNoValue is returned when a node needs the value of a calculate node that
// hasn't been executed in this pass.
var ErrNoValue = errors.New("calculate node has no value")

// Context carries what a procedure works on, and the state of the current frame
// that nodes pass to each other.
type Context struct {
	Config *dissolve.Configuration
	Pool   procpool.Pool
	List   *genericlist.List
	// Prefix is the prefix of the items the procedure keeps in List.
	Prefix string
	Msg    *messenger.Messenger

	procedure *Procedure
	sites     []*dissolve.Site //current site of each Select node, by NodeRef
	values    [][]float64      //last value of each calculate node, by NodeRef
	operand   *data.Data1D
}

// NewContext returns a context for the given configuration. A nil pool is a serial
// pool, a nil list is a new list, and a nil messenger discards all messages.
func NewContext(cfg *dissolve.Configuration, pool procpool.Pool, list *genericlist.List, prefix string, msg *messenger.Messenger) *Context {
	if pool == nil {
		pool = procpool.Serial{}
	}
	if list == nil {
		list = genericlist.New()
	}
	if msg == nil {
		msg = messenger.NewNop()
	}
	return &Context{Config: cfg, Pool: pool, List: list, Prefix: prefix, Msg: msg}
}

// begin clears the per-frame state and sizes it for the procedure.
func (C *Context) begin(P *Procedure) {
	C.procedure = P
	n := len(P.nodes)
	if cap(C.sites) < n {
		C.sites = make([]*dissolve.Site, n)
		C.values = make([][]float64, n)
	}
	C.sites = C.sites[:n]
	C.values = C.values[:n]
	clear(C.sites)
	clear(C.values)
	C.operand = nil
}

func (C *Context) proc() *Procedure { return C.procedure }

// CurrentSite returns the current site of the Select node sel.
func (C *Context) CurrentSite(sel NodeRef) (*dissolve.Site, error) {
	if sel < 0 || int(sel) >= len(C.sites) || C.sites[sel] == nil {
		return nil, fmt.Errorf("node %d: %w", sel, ErrNoCurrentSite)
	}
	return C.sites[sel], nil
}

func (C *Context) setCurrentSite(sel NodeRef, s *dissolve.Site) { C.sites[sel] = s }

// Value returns the last value calculated by the node calc.
func (C *Context) Value(calc NodeRef) ([]float64, error) {
	if calc < 0 || int(calc) >= len(C.values) || C.values[calc] == nil {
		return nil, fmt.Errorf("node %d: %w", calc, ErrNoValue)
	}
	return C.values[calc], nil
}

func (C *Context) setValue(calc NodeRef, v []float64) { C.values[calc] = v }

// Operand returns the dataset Operate nodes work on, or nil outside of an
// Operate sequence.
func (C *Context) Operand() *data.Data1D { return C.operand }

// Environment gives procedures read from files access to the species they
// refer to by name.
type Environment interface {
	Species(name string) *dissolve.Species
}

// SpeciesList is an Environment made of a list of species.
type SpeciesList []*dissolve.Species

// Species returns the species with the given name, or nil.
func (L SpeciesList) Species(name string) *dissolve.Species {
	for _, s := range L {
		if s.Name == name {
			return s
		}
	}
	return nil
}
