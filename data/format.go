/*
 * format.go, part of godissolve.
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

package data

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/rmera/godissolve/lineparser"
)

// Data1DFormat is the layout of a file holding one-dimensional data.
type Data1DFormat int

const (
	// XY files have one point per record, in (selectable) columns.
	XY Data1DFormat = iota
	// Histogram files give the left edge of each bin and its value.
	Histogram
)

var data1DFormatNames = []string{"xy", "histogram"}

func (f Data1DFormat) String() string {
	if int(f) < 0 || int(f) >= len(data1DFormatNames) {
		return fmt.Sprintf("Data1DFormat(%d)", int(f))
	}
	return data1DFormatNames[f]
}

// ParseData1DFormat returns the format with the given (case-insensitive) name.
func ParseData1DFormat(s string) (Data1DFormat, error) {
	for i, n := range data1DFormatNames {
		if strings.EqualFold(n, s) {
			return Data1DFormat(i), nil
		}
	}
	return 0, fmt.Errorf("ParseData1DFormat: unknown format %q", s)
}

// Data1DImportFileFormat describes where and how to read a Data1D.
// Columns are 1-based. ErrorColumn 0 means no errors are read.
type Data1DImportFileFormat struct {
	Filename    string
	Format      Data1DFormat
	XColumn     int
	YColumn     int
	ErrorColumn int
}

// NewData1DImportFileFormat returns an xy format reading columns 1 and 2 of filename.
func NewData1DImportFileFormat(filename string) *Data1DImportFileFormat {
	return &Data1DImportFileFormat{Filename: filename, Format: XY, XColumn: 1, YColumn: 2}
}

// readFormatRecord reads "<format> <filename> [Keyword value]..." and returns the format name,
// the file name and the options.
func readFormatRecord(P *lineparser.Parser, caller string) (string, string, map[string]int, error) {
	if _, err := P.ReadRecord(); err != nil {
		return "", "", nil, fmt.Errorf("%s: %w", caller, err)
	}
	if P.NTokens() < 2 || P.NTokens()%2 != 0 {
		return "", "", nil, P.Errorf("%s: expected '<format> <filename> [Keyword value]...'", caller)
	}
	format, _ := P.String(0)
	filename, _ := P.String(1)
	opts := make(map[string]int)
	for i := 2; i < P.NTokens(); i += 2 {
		key, _ := P.String(i)
		v, err := P.Int(i + 1)
		if err != nil {
			return "", "", nil, err
		}
		opts[strings.ToLower(key)] = v
	}
	return format, filename, opts, nil
}

// Read reads a record of the form "<xy|histogram> <filename> [X n] [Y n] [Error n]".
func (F *Data1DImportFileFormat) Read(P *lineparser.Parser) error {
	name, filename, opts, err := readFormatRecord(P, "Data1DImportFileFormat.Read")
	if err != nil {
		return err
	}
	f, err := ParseData1DFormat(name)
	if err != nil {
		return P.Errorf("%w", err)
	}
	*F = *NewData1DImportFileFormat(filename)
	F.Format = f
	for k, v := range opts {
		if v < 1 {
			return P.Errorf("Data1DImportFileFormat.Read: column for %s must be positive", k)
		}
		switch k {
		case "x":
			F.XColumn = v
		case "y":
			F.YColumn = v
		case "error":
			F.ErrorColumn = v
		default:
			return P.Errorf("Data1DImportFileFormat.Read: unknown option %q", k)
		}
	}
	return nil
}

// Write writes the format as a record Read understands.
func (F *Data1DImportFileFormat) Write(W *lineparser.Writer) error {
	line := fmt.Sprintf("%s  '%s'  X %d  Y %d", F.Format, F.Filename, F.XColumn, F.YColumn)
	if F.ErrorColumn > 0 {
		line += fmt.Sprintf("  Error %d", F.ErrorColumn)
	}
	return W.WriteLine("%s", line)
}

// forEachRecord calls f with every record of the file.
func forEachRecord(filename string, f func(P *lineparser.Parser) error) error {
	P, err := lineparser.Open(filename)
	if err != nil {
		return err
	}
	defer P.Close()
	for {
		_, err := P.ReadRecord()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := f(P); err != nil {
			return err
		}
	}
}

// Import reads the file into D, replacing its contents.
func (F *Data1DImportFileFormat) Import(D *Data1D) error {
	D.Clear()
	D.SetHasErrors(F.ErrorColumn > 0)
	err := forEachRecord(F.Filename, func(P *lineparser.Parser) error {
		x, err := P.Float(F.XColumn - 1)
		if err != nil {
			return err
		}
		y, err := P.Float(F.YColumn - 1)
		if err != nil {
			return err
		}
		if F.ErrorColumn == 0 {
			D.AddPoint(x, y)
			return nil
		}
		e, err := P.Float(F.ErrorColumn - 1)
		if err != nil {
			return err
		}
		D.AddPointWithError(x, y, e)
		return nil
	})
	if err != nil {
		return fmt.Errorf("Data1DImportFileFormat.Import: %w", err)
	}
	if F.Format == Histogram {
		binCentres(D.x)
	}
	return nil
}

// binCentres turns left bin edges into bin centres in place. The last bin is taken to
// be as wide as the one before it.
func binCentres(x []float64) {
	if len(x) < 2 {
		return
	}
	last := x[len(x)-1] - x[len(x)-2]
	for i := 0; i < len(x)-1; i++ {
		x[i] += 0.5 * (x[i+1] - x[i])
	}
	x[len(x)-1] += 0.5 * last
}

// GridImportFileFormat describes a "cartesian" file for Data2D or Data3D, with one
// record per grid point: the coordinates, then the value and, optionally, its error.
type GridImportFileFormat struct {
	Filename string
	// WithErrors is set when each record carries an error after the value.
	WithErrors bool
}

// Data2DImportFileFormat reads Data2D from "x y value [error]" records.
type Data2DImportFileFormat struct{ GridImportFileFormat }

// Data3DImportFileFormat reads Data3D from "x y z value [error]" records.
type Data3DImportFileFormat struct{ GridImportFileFormat }

func (F *GridImportFileFormat) read(P *lineparser.Parser, caller string) error {
	name, filename, opts, err := readFormatRecord(P, caller)
	if err != nil {
		return err
	}
	if !strings.EqualFold(name, "cartesian") {
		return P.Errorf("%s: unknown format %q", caller, name)
	}
	F.Filename = filename
	F.WithErrors = false
	for k, v := range opts {
		if k != "errors" {
			return P.Errorf("%s: unknown option %q", caller, k)
		}
		F.WithErrors = v != 0
	}
	return nil
}

func (F *GridImportFileFormat) Write(W *lineparser.Writer) error {
	if F.WithErrors {
		return W.WriteLine("cartesian  '%s'  Errors 1", F.Filename)
	}
	return W.WriteLine("cartesian  '%s'", F.Filename)
}

// Read reads a record of the form "cartesian <filename> [Errors 0|1]".
func (F *Data2DImportFileFormat) Read(P *lineparser.Parser) error {
	return F.read(P, "Data2DImportFileFormat.Read")
}

// Read reads a record of the form "cartesian <filename> [Errors 0|1]".
func (F *Data3DImportFileFormat) Read(P *lineparser.Parser) error {
	return F.read(P, "Data3DImportFileFormat.Read")
}

// readGrid reads records of ndim coordinates plus a value (and error), returning the
// sorted distinct coordinates along each axis and the points.
func (F *GridImportFileFormat) readGrid(ndim int) ([][]float64, [][]float64, error) {
	ncol := ndim + 1
	if F.WithErrors {
		ncol++
	}
	var points [][]float64
	err := forEachRecord(F.Filename, func(P *lineparser.Parser) error {
		p := make([]float64, ncol)
		for i := range p {
			v, err := P.Float(i)
			if err != nil {
				return err
			}
			p[i] = v
		}
		points = append(points, p)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	axes := make([][]float64, ndim)
	for d := range axes {
		for _, p := range points {
			axes[d] = append(axes[d], p[d])
		}
		slices.Sort(axes[d])
		axes[d] = slices.Compact(axes[d])
	}
	return axes, points, nil
}

func axisIndex(axis []float64, v float64) int {
	i, _ := slices.BinarySearch(axis, v)
	return i
}

// Import reads the file into D, replacing its contents. Grid points absent from the
// file are zero.
func (F *Data2DImportFileFormat) Import(D *Data2D) error {
	axes, points, err := F.readGrid(2)
	if err != nil {
		return fmt.Errorf("Data2DImportFileFormat.Import: %w", err)
	}
	D.Initialise(axes[0], axes[1], F.WithErrors)
	for _, p := range points {
		i, j := axisIndex(axes[0], p[0]), axisIndex(axes[1], p[1])
		D.values.Set(i, j, p[2])
		if F.WithErrors {
			D.errors.Set(i, j, p[3])
		}
	}
	return nil
}

// Import reads the file into D, replacing its contents. Grid points absent from the
// file are zero.
func (F *Data3DImportFileFormat) Import(D *Data3D) error {
	axes, points, err := F.readGrid(3)
	if err != nil {
		return fmt.Errorf("Data3DImportFileFormat.Import: %w", err)
	}
	D.Initialise(axes[0], axes[1], axes[2], F.WithErrors)
	for _, p := range points {
		i, j, k := axisIndex(axes[0], p[0]), axisIndex(axes[1], p[1]), axisIndex(axes[2], p[2])
		D.Set(i, j, k, p[3])
		if F.WithErrors {
			D.SetError(i, j, k, p[4])
		}
	}
	return nil
}

// ValueImportFileFormat reads a list of values, taking every token of every record.
type ValueImportFileFormat struct {
	Filename string
}

// Read reads a record of the form "values <filename>".
func (F *ValueImportFileFormat) Read(P *lineparser.Parser) error {
	name, filename, opts, err := readFormatRecord(P, "ValueImportFileFormat.Read")
	if err != nil {
		return err
	}
	if !strings.EqualFold(name, "values") || len(opts) != 0 {
		return P.Errorf("ValueImportFileFormat.Read: expected 'values <filename>'")
	}
	F.Filename = filename
	return nil
}

func (F *ValueImportFileFormat) Write(W *lineparser.Writer) error {
	return W.WriteLine("values  '%s'", F.Filename)
}

// Import reads the file into V, replacing its contents.
func (F *ValueImportFileFormat) Import(V *Values) error {
	V.V = V.V[:0]
	err := forEachRecord(F.Filename, func(P *lineparser.Parser) error {
		v, err := P.Floats(0)
		if err != nil {
			return err
		}
		V.V = append(V.V, v...)
		return nil
	})
	if err != nil {
		return fmt.Errorf("ValueImportFileFormat.Import: %w", err)
	}
	return nil
}
