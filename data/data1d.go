/*
 * data1d.go, part of godissolve.
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

// Package data contains the one, two and three-dimensional datasets produced and
// consumed by analyses, the formats they are imported from, and the stores that
// keep them by tag.
package data

import (
	"fmt"
	"slices"

	"github.com/rmera/godissolve/lineparser"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate"
)

// Data1D is a set of y values, optionally with errors, on a set of x values.
type Data1D struct {
	Tag       string
	x         []float64
	values    []float64
	errors    []float64
	hasErrors bool
}

// NewData1D returns an empty dataset.
func NewData1D(tag string) *Data1D {
	return &Data1D{Tag: tag}
}

// Clear removes all points, keeping the tag and whether the set has errors.
func (D *Data1D) Clear() {
	D.x, D.values, D.errors = D.x[:0], D.values[:0], D.errors[:0]
}

// SetHasErrors sets whether the dataset carries errors. Existing points get zero errors.
func (D *Data1D) SetHasErrors(e bool) {
	D.hasErrors = e
	if e && len(D.errors) != len(D.values) {
		D.errors = make([]float64, len(D.values))
	}
	if !e {
		D.errors = nil
	}
}

func (D *Data1D) HasErrors() bool { return D.hasErrors }

// AddPoint adds the point (x, y) and, if the set has errors, a zero error.
func (D *Data1D) AddPoint(x, y float64) {
	D.x = append(D.x, x)
	D.values = append(D.values, y)
	if D.hasErrors {
		D.errors = append(D.errors, 0)
	}
}

// AddPointWithError adds the point (x, y) with error e. The set becomes a set with errors.
func (D *Data1D) AddPointWithError(x, y, e float64) {
	if !D.hasErrors {
		D.SetHasErrors(true)
	}
	D.x = append(D.x, x)
	D.values = append(D.values, y)
	D.errors = append(D.errors, e)
}

// NValues returns the number of points.
func (D *Data1D) NValues() int { return len(D.values) }

// X returns the x values. The slice is not a copy.
func (D *Data1D) X() []float64 { return D.x }

// Values returns the y values. The slice is not a copy.
func (D *Data1D) Values() []float64 { return D.values }

// Errors returns the errors, or nil if the set has none. The slice is not a copy.
func (D *Data1D) Errors() []float64 { return D.errors }

// Copy returns a deep copy of the dataset.
func (D *Data1D) Copy() *Data1D {
	return &Data1D{Tag: D.Tag, x: slices.Clone(D.x), values: slices.Clone(D.values),
		errors: slices.Clone(D.errors), hasErrors: D.hasErrors}
}

// Scale multiplies values and errors by f.
func (D *Data1D) Scale(f float64) {
	floats.Scale(f, D.values)
	if D.hasErrors {
		floats.Scale(f, D.errors)
	}
}

// DivideEach divides point i by f(x_i, i), values and errors alike.
func (D *Data1D) DivideEach(f func(x float64, i int) float64) {
	for i, x := range D.x {
		d := f(x, i)
		D.values[i] /= d
		if D.hasErrors {
			D.errors[i] /= d
		}
	}
}

// Integral returns the trapezoidal integral of the values over x.
func (D *Data1D) Integral() float64 {
	if len(D.x) < 2 {
		return 0
	}
	return integrate.Trapezoidal(D.x, D.values)
}

// Write writes the number of points and whether there are errors, followed by one
// "x y [error]" record per point.
func (D *Data1D) Write(W *lineparser.Writer) error {
	if err := W.WriteLine("%d  %t", len(D.values), D.hasErrors); err != nil {
		return err
	}
	for i, x := range D.x {
		var err error
		if D.hasErrors {
			err = W.WriteLine("%.16e  %.16e  %.16e", x, D.values[i], D.errors[i])
		} else {
			err = W.WriteLine("%.16e  %.16e", x, D.values[i])
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Read reads a dataset written by Write.
func (D *Data1D) Read(P *lineparser.Parser) error {
	if _, err := P.ReadRecord(); err != nil {
		return fmt.Errorf("Data1D.Read: %w", err)
	}
	n, err := P.Int(0)
	if err != nil {
		return err
	}
	errs, err := P.Bool(1)
	if err != nil {
		return err
	}
	D.Clear()
	D.SetHasErrors(errs)
	for i := 0; i < n; i++ {
		if _, err := P.ReadRecord(); err != nil {
			return fmt.Errorf("Data1D.Read: point %d: %w", i, err)
		}
		x, err := P.Float(0)
		if err != nil {
			return err
		}
		y, err := P.Float(1)
		if err != nil {
			return err
		}
		if !errs {
			D.AddPoint(x, y)
			continue
		}
		e, err := P.Float(2)
		if err != nil {
			return err
		}
		D.AddPointWithError(x, y, e)
	}
	return nil
}
