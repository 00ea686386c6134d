/*
 * collect.go, part of godissolve.
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
	"strconv"
	"strings"

	"github.com/rmera/godissolve/broadening"
	"github.com/rmera/godissolve/data"
	"github.com/rmera/godissolve/genericlist"
	"github.com/rmera/godissolve/histo"
	"github.com/rmera/godissolve/lineparser"
)

// Collect1D bins a value calculated by another node into a histogram, kept in
// the generic list under the node's name. Each frame's counts are accumulated
// into per-bin statistics.
type Collect1D struct {
	nodeBase
	quantity NodeRef
	index    int        //component of the quantity
	rangeX   [3]float64 //min, max, bin width
}

// NewCollect1D returns a node binning the first component of the value of the
// calculate node quantity between min and max.
func NewCollect1D(name string, quantity NodeRef, min, max, width float64) *Collect1D {
	return &Collect1D{nodeBase: newBase(name), quantity: quantity, rangeX: [3]float64{min, max, width}}
}

func (C *Collect1D) Type() NodeType                       { return Collect1DNode }
func (C *Collect1D) IsContextRelevant(c ContextType) bool { return c == AnalysisContext }
func (C *Collect1D) unlink(dead NodeRef)                  { unlinkRef(&C.quantity, dead) }

// SetIndex sets the (0-based) component of the quantity that is binned.
func (C *Collect1D) SetIndex(i int) { C.index = i }

// Histogram returns the histogram of the node in the context.
func (C *Collect1D) Histogram(ctx *Context) (*histo.Histogram1D, error) {
	return genericlist.Retrieve[*histo.Histogram1D](ctx.List, C.name, ctx.Prefix)
}

// realise returns the histogram of the node in the context, creating it if needed.
func (C *Collect1D) realise(ctx *Context) (*histo.Histogram1D, error) {
	h, created, err := genericlist.Realise(ctx.List, C.name, ctx.Prefix, func() *histo.Histogram1D { return new(histo.Histogram1D) })
	if err != nil || !created {
		return h, err
	}
	if err := h.Initialise(C.rangeX[0], C.rangeX[1], C.rangeX[2]); err != nil {
		ctx.List.Remove(C.name, ctx.Prefix)
		return nil, err
	}
	return h, nil
}

func (C *Collect1D) Prepare(ctx *Context) error {
	if C.quantity == NoNode {
		return fmt.Errorf("no quantity to collect")
	}
	h, err := C.realise(ctx)
	if err != nil {
		return err
	}
	h.ZeroBins()
	return nil
}

func (C *Collect1D) Execute(ctx *Context) error {
	v, err := ctx.Value(C.quantity)
	if err != nil {
		return err
	}
	if C.index >= len(v) {
		return fmt.Errorf("component %d requested from a quantity with %d", C.index+1, len(v))
	}
	h, err := C.Histogram(ctx)
	if err != nil {
		return err
	}
	h.Bin(v[C.index])
	return nil
}

func (C *Collect1D) Finalise(ctx *Context) error {
	h, err := C.Histogram(ctx)
	if err != nil {
		return err
	}
	h.Accumulate()
	return nil
}

// Complete merges the accumulated statistics of all ranks. A rank that got no
// frames contributes an empty histogram.
func (C *Collect1D) Complete(ctx *Context) error {
	h, err := C.realise(ctx)
	if err != nil {
		return err
	}
	return h.AllSumAccumulated(ctx.Pool)
}

func (C *Collect1D) keywords(P *Procedure) []keyword {
	return []keyword{
		{
			name: "QuantityX", minArgs: 1, maxArgs: 2,
			read: func(r *reader, args []string) error {
				ref, err := r.resolve(args[0], false, calculateTypes...)
				if err != nil {
					return err
				}
				C.quantity, C.index = ref, 0
				if len(args) > 1 {
					i, err := strconv.Atoi(args[1])
					if err != nil || i < 1 {
						return fmt.Errorf("invalid component index '%s'", args[1])
					}
					C.index = i - 1
				}
				return nil
			},
			write: func(W *lineparser.Writer) error {
				if C.quantity == NoNode {
					return nil
				}
				return W.WriteLine("QuantityX  '%s'  %d", P.NodeName(C.quantity), C.index+1)
			},
		},
		{
			name: "RangeX", minArgs: 3, maxArgs: 3,
			read: func(r *reader, args []string) error {
				v, err := parseFloats(args)
				if err != nil {
					return err
				}
				if _, err := histo.NewHistogram1D(v[0], v[1], v[2]); err != nil {
					return err
				}
				copy(C.rangeX[:], v)
				return nil
			},
			write: func(W *lineparser.Writer) error {
				return W.WriteLine("RangeX  %s  %s  %s", formatFloat(C.rangeX[0]), formatFloat(C.rangeX[1]), formatFloat(C.rangeX[2]))
			},
		},
	}
}

// Process1D turns the histogram of a Collect1D node into a dataset, runs its
// normalisation sequence on it, and optionally broadens, exports and plots it.
// The result is kept in the generic list under the node's name. The work is done
// once all frames have been processed.
type Process1D struct {
	nodeBase
	source        NodeRef
	normalisation *Sequence
	labelValue    string
	labelX        string
	broadening    *broadening.Function
	export        string
	plot          string
}

// NewProcess1D returns a node processing the data of the Collect1D node source.
func NewProcess1D(name string, source NodeRef) *Process1D {
	return &Process1D{
		nodeBase:      newBase(name),
		source:        source,
		normalisation: newBranch(OperateContext, "EndNormalisation"),
		labelValue:    "Counts",
		labelX:        "X",
	}
}

func (P *Process1D) Type() NodeType                       { return Process1DNode }
func (P *Process1D) IsContextRelevant(c ContextType) bool { return c == AnalysisContext }
func (P *Process1D) Execute(ctx *Context) error           { return nil }
func (P *Process1D) branches() []*Sequence                { return []*Sequence{P.normalisation} }
func (P *Process1D) unlink(dead NodeRef)                  { unlinkRef(&P.source, dead) }

// Normalisation returns the sequence of Operate nodes applied to the data.
func (P *Process1D) Normalisation() *Sequence { return P.normalisation }

// SetLabels sets the axis labels used when exporting and plotting.
func (P *Process1D) SetLabels(x, value string) { P.labelX, P.labelValue = x, value }

// SetExport sets the files the data are exported and plotted to. Empty names disable each.
func (P *Process1D) SetExport(export, plot string) { P.export, P.plot = export, plot }

// SetBroadening sets a function the data are broadened with after normalisation.
func (P *Process1D) SetBroadening(F *broadening.Function) { P.broadening = F }

// Data returns the processed data of the node in the context.
func (P *Process1D) Data(ctx *Context) (*data.Data1D, error) {
	return genericlist.Retrieve[*data.Data1D](ctx.List, P.name, ctx.Prefix)
}

func (P *Process1D) Complete(ctx *Context) error {
	if P.source == NoNode {
		return fmt.Errorf("no source data")
	}
	src, ok := ctx.proc().nodes[P.source].(*Collect1D)
	if !ok {
		return fmt.Errorf("source is not a Collect1D node")
	}
	h, err := src.Histogram(ctx)
	if err != nil {
		return err
	}
	D := h.Data(P.name)
	ctx.operand = D
	err = P.normalisation.Execute(ctx)
	ctx.operand = nil
	if err != nil {
		return err
	}
	if P.broadening != nil {
		if err := P.broadening.Convolve(D); err != nil {
			return err
		}
	}
	genericlist.Set(ctx.List, P.name, ctx.Prefix, D)
	return P.write(ctx, D)
}

// write exports and plots the data on the master rank. All ranks return an error if the master fails.
func (P *Process1D) write(ctx *Context, D *data.Data1D) error {
	if P.export == "" && P.plot == "" {
		return nil
	}
	if !ctx.Pool.IsMaster() {
		if !ctx.Pool.Decide(0, false) {
			return fmt.Errorf("writing the data failed on the master rank")
		}
		return nil
	}
	if err := P.writeFiles(D); err != nil {
		ctx.Pool.DecideFalse(0)
		return err
	}
	ctx.Pool.DecideTrue(0)
	if P.export != "" {
		ctx.Msg.Print("Exported %s to %s", P.name, P.export)
	}
	return nil
}

func (P *Process1D) writeFiles(D *data.Data1D) error {
	if P.export != "" {
		W, err := lineparser.Create(P.export)
		if err != nil {
			return err
		}
		header := fmt.Sprintf("# %s  %s", P.labelX, P.labelValue)
		if D.HasErrors() {
			header += "  Error"
		}
		err = W.WriteLine("%s", header)
		for i := 0; err == nil && i < D.NValues(); i++ {
			if D.HasErrors() {
				err = W.WriteLine("%.10e  %.10e  %.10e", D.X()[i], D.Values()[i], D.Errors()[i])
			} else {
				err = W.WriteLine("%.10e  %.10e", D.X()[i], D.Values()[i])
			}
		}
		if cerr := W.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("exporting to %s: %w", P.export, err)
		}
	}
	if P.plot != "" {
		if err := data.PlotData1D(P.plot, P.name, P.labelX, P.labelValue, D); err != nil {
			return fmt.Errorf("plotting to %s: %w", P.plot, err)
		}
	}
	return nil
}

func (P *Process1D) keywords(proc *Procedure) []keyword {
	return []keyword{
		refKeyword("SourceData", &P.source, true, proc, Collect1DNode),
		stringKeyword("LabelValue", &P.labelValue),
		stringKeyword("LabelX", &P.labelX),
		branchKeyword("Normalisation", P.normalisation, proc),
		{
			name: "Broadening", minArgs: 1, maxArgs: -1,
			read: func(r *reader, args []string) error {
				F := new(broadening.Function)
				if err := F.ReadArgs(r.P, 1); err != nil {
					return err
				}
				P.broadening = F
				return nil
			},
			write: func(W *lineparser.Writer) error {
				if P.broadening == nil {
					return nil
				}
				line := []string{"Broadening", P.broadening.Form().String()}
				for _, p := range P.broadening.Params() {
					line = append(line, formatFloat(p))
				}
				return W.WriteLine("%s", strings.Join(line, "  "))
			},
		},
		stringKeyword("Export", &P.export),
		stringKeyword("Plot", &P.plot),
	}
}
