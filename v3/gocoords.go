/*
 * gocoords.go, part of godissolve.
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
	"math"
	"strings"
)

const appzero float64 = 0.000000000001 //used to correct floating point
//errors. Everything equal or less than this is considered zero.

// NVecs returns the number of vecs in F.
func (F *Matrix) NVecs() int {
	r, c := F.Dims()
	if c != 3 {
		panic(ErrNot3xX)
	}
	return r
}

// AddVec adds the vector vec to each vector of A, putting the result in F.
// F and A can be the same matrix.
func (F *Matrix) AddVec(A, vec *Matrix) {
	ar := A.NVecs()
	if F.NVecs() != ar || vec.NVecs() < 1 {
		panic(ErrShape)
	}
	for i := 0; i < ar; i++ {
		for j := 0; j < 3; j++ {
			F.Set(i, j, A.At(i, j)+vec.At(0, j))
		}
	}
}

// SubVec subtracts the vector vec from each vector of A, putting the result in F.
func (F *Matrix) SubVec(A, vec *Matrix) {
	ar := A.NVecs()
	if F.NVecs() != ar || vec.NVecs() < 1 {
		panic(ErrShape)
	}
	for i := 0; i < ar; i++ {
		for j := 0; j < 3; j++ {
			F.Set(i, j, A.At(i, j)-vec.At(0, j))
		}
	}
}

// SomeVecs puts in F the vectors of A with the indexes in clist, in the same order.
func (F *Matrix) SomeVecs(A *Matrix, clist []int) {
	if F.NVecs() != len(clist) {
		panic(ErrShape)
	}
	for key, val := range clist {
		F.SetVec(key, A.Vec(val))
	}
}

// SomeVecsSafe is like SomeVecs but returns an error instead of panicking.
func (F *Matrix) SomeVecsSafe(A *Matrix, clist []int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			switch e := r.(type) {
			case Error:
				err = e
			case PanicMsg:
				err = Error{string(e), []string{"SomeVecsSafe"}, true}
			default:
				err = Error{fmt.Sprintf("godissolve/v3: Error in a gonum function: %v", e), []string{"SomeVecsSafe"}, true}
			}
		}
	}()
	F.SomeVecs(A, clist)
	return err
}

// Cross puts the cross product of the first vecs of a and b in the first vec of F.
func (F *Matrix) Cross(a, b *Matrix) {
	if a.NVecs() < 1 || b.NVecs() < 1 || F.NVecs() < 1 {
		panic(ErrShape)
	}
	x := a.At(0, 1)*b.At(0, 2) - a.At(0, 2)*b.At(0, 1)
	y := a.At(0, 2)*b.At(0, 0) - a.At(0, 0)*b.At(0, 2)
	z := a.At(0, 0)*b.At(0, 1) - a.At(0, 1)*b.At(0, 0)
	F.Set(0, 0, x)
	F.Set(0, 1, y)
	F.Set(0, 2, z)
}

// Dot returns the dot product of the first vectors of F and B.
func (F *Matrix) Dot(B *Matrix) float64 {
	return F.At(0, 0)*B.At(0, 0) + F.At(0, 1)*B.At(0, 1) + F.At(0, 2)*B.At(0, 2)
}

// Norm returns the euclidean norm of the first vector of F.
func (F *Matrix) Norm() float64 {
	return math.Sqrt(F.Dot(F))
}

// Unit puts in F the first vector of A, normalized. A zero vector is left as it is.
func (F *Matrix) Unit(A *Matrix) {
	n := A.Norm()
	if n <= appzero {
		F.SetVec(0, A.Vec(0))
		return
	}
	for j := 0; j < 3; j++ {
		F.Set(0, j, A.At(0, j)/n)
	}
}

// String returns a neat string representation of a Matrix
func (F *Matrix) String() string {
	r := F.NVecs()
	v := make([]string, 0, r)
	for i := 0; i < r; i++ {
		v = append(v, fmt.Sprintf("%9.4f %9.4f %9.4f", F.At(i, 0), F.At(i, 1), F.At(i, 2)))
	}
	return "[" + strings.Join(v, "\n ") + "]"
}

// Angle returns the angle in radians between the first vectors of v1 and v2.
func Angle(v1, v2 *Matrix) float64 {
	normproduct := v1.Norm() * v2.Norm()
	if normproduct <= appzero {
		return 0
	}
	argument := v1.Dot(v2) / normproduct
	//Take care of floating point math errors
	if argument > 1 {
		argument = 1
	} else if argument < -1 {
		argument = -1
	}
	return math.Acos(argument)
}

// Errors

// PanicMsg is the type used for panics in this package.
type PanicMsg string

const (
	ErrNot3xX = PanicMsg("godissolve/v3: A v3.Matrix should have 3 columns")
	ErrShape  = PanicMsg("godissolve/v3: Dimension mismatch")
)

// Error is the error type of the v3 package. It carries a list of the functions the
// error went through, which can be extended with Decorate.
type Error struct {
	message  string
	deco     []string
	critical bool
}

func (err Error) Error() string { return err.message }

// Decorate adds the given string to the list of functions the error has gone through,
// and returns the list. An empty string just returns the current list.
func (err Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

// Critical returns whether the error is critical.
func (err Error) Critical() bool { return err.critical }
