/*
 * gonum.go, part of godissolve.
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

package v3

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Matrix is a set of vectors in 3D space, stored as the rows of a gonum Dense.
type Matrix struct {
	*mat.Dense
}

// Matrix2Dense returns the Dense underlying A.
func Matrix2Dense(A *Matrix) *mat.Dense {
	return A.Dense
}

// Dense2Matrix wraps A, which must have 3 columns, in a Matrix.
func Dense2Matrix(A *mat.Dense) *Matrix {
	_, c := A.Dims()
	if c != 3 {
		panic(ErrNot3xX)
	}
	return &Matrix{A}
}

// NewMatrix generates and returns a Matrix with 3 columns from data.
// The slice is used as backing data, not copied.
func NewMatrix(data []float64) (*Matrix, error) {
	const cols int = 3
	l := len(data)
	rows := l / cols
	if l%cols != 0 || l == 0 {
		return nil, Error{fmt.Sprintf("Input slice length %d not divisible by %d: %d", l, cols, l%cols), []string{"NewMatrix"}, true}
	}
	return &Matrix{mat.NewDense(rows, cols, data)}, nil
}

// Zeros returns a zero-filled Matrix with vecs vectors.
func Zeros(vecs int) *Matrix {
	const cols int = 3
	return &Matrix{mat.NewDense(vecs, cols, nil)}
}

// NewVec returns a single-vector Matrix with the given components.
func NewVec(x, y, z float64) *Matrix {
	return &Matrix{mat.NewDense(1, 3, []float64{x, y, z})}
}

// VecView returns a view of the ith vector of the matrix.
// Changes in the view are reflected in F and vice-versa.
func (F *Matrix) VecView(i int) *Matrix {
	r := F.Dense.Slice(i, i+1, 0, 3).(*mat.Dense)
	return &Matrix{r}
}

// View returns a view of F starting from the ith vector and spanning n vectors.
func (F *Matrix) View(i, n int) *Matrix {
	r := F.Dense.Slice(i, i+n, 0, 3).(*mat.Dense)
	return &Matrix{r}
}

// Vec copies the ith vector of F to an array.
func (F *Matrix) Vec(i int) [3]float64 {
	return [3]float64{F.At(i, 0), F.At(i, 1), F.At(i, 2)}
}

// SetVec sets the ith vector of F to the components in v.
func (F *Matrix) SetVec(i int, v [3]float64) {
	F.Set(i, 0, v[0])
	F.Set(i, 1, v[1])
	F.Set(i, 2, v[2])
}

// Stack returns a new matrix with the vectors of A on top of those of B.
// Either can be nil.
func Stack(A, B *Matrix) *Matrix {
	ar, br := 0, 0
	if A != nil {
		ar = A.NVecs()
	}
	if B != nil {
		br = B.NVecs()
	}
	if ar+br == 0 {
		panic(ErrShape)
	}
	F := Zeros(ar + br)
	for i := 0; i < ar; i++ {
		F.SetVec(i, A.Vec(i))
	}
	for i := 0; i < br; i++ {
		F.SetVec(ar+i, B.Vec(i))
	}
	return F
}
