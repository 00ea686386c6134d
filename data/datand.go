/*
 * datand.go, part of godissolve.
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
	"fmt"
	"slices"

	"gonum.org/v1/gonum/mat"
)

// Data2D holds values on a rectangular x, y grid.
type Data2D struct {
	Tag    string
	x, y   []float64
	values *mat.Dense //len(x) rows, len(y) columns
	errors *mat.Dense //nil if the set has no errors
}

// NewData2D returns a dataset on the given axes, with all values zero.
func NewData2D(tag string, x, y []float64, withErrors bool) *Data2D {
	D := &Data2D{Tag: tag}
	D.Initialise(x, y, withErrors)
	return D
}

// Initialise sets the axes of the dataset and zeroes its values.
func (D *Data2D) Initialise(x, y []float64, withErrors bool) {
	D.x, D.y = slices.Clone(x), slices.Clone(y)
	D.values, D.errors = nil, nil
	if len(x) == 0 || len(y) == 0 {
		return
	}
	D.values = mat.NewDense(len(x), len(y), nil)
	if withErrors {
		D.errors = mat.NewDense(len(x), len(y), nil)
	}
}

func (D *Data2D) X() []float64 { return D.x }
func (D *Data2D) Y() []float64 { return D.y }

// Values returns the values, one row per x. It is not a copy.
func (D *Data2D) Values() *mat.Dense { return D.values }

// Errors returns the errors, or nil if the set has none.
func (D *Data2D) Errors() *mat.Dense { return D.errors }

func (D *Data2D) HasErrors() bool { return D.errors != nil }

// Data3D holds values on a rectangular x, y, z grid.
type Data3D struct {
	Tag     string
	x, y, z []float64
	values  []float64 //x-major
	errors  []float64
}

// NewData3D returns a dataset on the given axes, with all values zero.
func NewData3D(tag string, x, y, z []float64, withErrors bool) *Data3D {
	D := &Data3D{Tag: tag}
	D.Initialise(x, y, z, withErrors)
	return D
}

// Initialise sets the axes of the dataset and zeroes its values.
func (D *Data3D) Initialise(x, y, z []float64, withErrors bool) {
	D.x, D.y, D.z = slices.Clone(x), slices.Clone(y), slices.Clone(z)
	D.values = make([]float64, len(x)*len(y)*len(z))
	D.errors = nil
	if withErrors {
		D.errors = make([]float64, len(D.values))
	}
}

func (D *Data3D) X() []float64 { return D.x }
func (D *Data3D) Y() []float64 { return D.y }
func (D *Data3D) Z() []float64 { return D.z }

func (D *Data3D) HasErrors() bool { return D.errors != nil }

func (D *Data3D) index(i, j, k int) int {
	if i < 0 || j < 0 || k < 0 || i >= len(D.x) || j >= len(D.y) || k >= len(D.z) {
		panic(fmt.Sprintf("Data3D: index %d,%d,%d out of range for %dx%dx%d data", i, j, k, len(D.x), len(D.y), len(D.z)))
	}
	return (i*len(D.y)+j)*len(D.z) + k
}

// At returns the value at grid point i, j, k.
func (D *Data3D) At(i, j, k int) float64 { return D.values[D.index(i, j, k)] }

// Set sets the value at grid point i, j, k.
func (D *Data3D) Set(i, j, k int, v float64) { D.values[D.index(i, j, k)] = v }

// Error returns the error at grid point i, j, k, or 0 if the set has no errors.
func (D *Data3D) Error(i, j, k int) float64 {
	if D.errors == nil {
		return 0
	}
	return D.errors[D.index(i, j, k)]
}

// SetError sets the error at grid point i, j, k. Panics if the set has no errors.
func (D *Data3D) SetError(i, j, k int, e float64) {
	if D.errors == nil {
		panic("Data3D: SetError on a dataset without errors")
	}
	D.errors[D.index(i, j, k)] = e
}

// Values is a tagged list of numbers.
type Values struct {
	Tag string
	V   []float64
}
