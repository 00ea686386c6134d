/*
 * box.go, part of godissolve.
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

package dissolve

import (
	"math"

	v3 "github.com/rmera/godissolve/v3"
	"gonum.org/v1/gonum/mat"
)

// Box is a periodic simulation cell. The cell vectors a, b and c are the rows
// of the axes matrix, with a along x and b in the xy plane.
type Box struct {
	lengths [3]float64
	angles  [3]float64 //alpha, beta, gamma, in degrees
	axes    *mat.Dense
	inverse *mat.Dense
	ortho   bool
	volume  float64
}

// NewBox returns a box with the given cell lengths (A) and angles (degrees).
func NewBox(lengths, angles [3]float64) (*Box, error) {
	for i := 0; i < 3; i++ {
		if lengths[i] <= 0 {
			return nil, newError("NewBox", "Box lengths must be positive, got %v", lengths)
		}
		if angles[i] <= 0 || angles[i] >= 180 {
			return nil, newError("NewBox", "Box angles must be in (0,180), got %v", angles)
		}
	}
	B := &Box{lengths: lengths, angles: angles}
	B.ortho = angles[0] == 90 && angles[1] == 90 && angles[2] == 90
	ca, cb, cg := math.Cos(Deg2Rad(angles[0])), math.Cos(Deg2Rad(angles[1])), math.Cos(Deg2Rad(angles[2]))
	sg := math.Sin(Deg2Rad(angles[2]))
	if B.ortho {
		ca, cb, cg, sg = 0, 0, 0, 1
	}
	cy := (ca - cb*cg) / sg
	cz2 := 1 - cb*cb - cy*cy
	if cz2 <= 0 {
		return nil, newError("NewBox", "Box angles %v do not define a valid cell", angles)
	}
	B.axes = mat.NewDense(3, 3, []float64{
		lengths[0], 0, 0,
		lengths[1] * cg, lengths[1] * sg, 0,
		lengths[2] * cb, lengths[2] * cy, lengths[2] * math.Sqrt(cz2),
	})
	B.inverse = mat.NewDense(3, 3, nil)
	if err := B.inverse.Inverse(B.axes); err != nil {
		return nil, newError("NewBox", "Can't invert box axes: %s", err.Error())
	}
	B.volume = math.Abs(mat.Det(B.axes))
	return B, nil
}

// NewBoxFromVectors returns the box with the cell vectors a, b and c given, one
// after the other, in the first 9 elements of v.
func NewBoxFromVectors(v []float64) (*Box, error) {
	if len(v) < 9 {
		return nil, newError("NewBoxFromVectors", "%d components given, 9 needed", len(v))
	}
	var axes [3][3]float64
	var lengths [3]float64
	for i := 0; i < 3; i++ {
		copy(axes[i][:], v[3*i:3*i+3])
		lengths[i] = norm(axes[i])
		if lengths[i] == 0 {
			return nil, newError("NewBoxFromVectors", "Axis %d has zero length", i)
		}
	}
	angle := func(i, j int) float64 {
		a, b := axes[i], axes[j]
		if a[0]*b[0]+a[1]*b[1]+a[2]*b[2] == 0 {
			return 90
		}
		return angleBetween(a, b)
	}
	return NewBox(lengths, [3]float64{angle(1, 2), angle(0, 2), angle(0, 1)})
}

// Vectors returns the cell vectors a, b and c, one after the other.
func (B *Box) Vectors() []float64 {
	return append([]float64(nil), B.axes.RawMatrix().Data...)
}

// NewCubicBox returns a cubic box of side l.
func NewCubicBox(l float64) (*Box, error) {
	return NewBox([3]float64{l, l, l}, [3]float64{90, 90, 90})
}

// Lengths returns the cell lengths.
func (B *Box) Lengths() [3]float64 { return B.lengths }

// Angles returns the cell angles in degrees.
func (B *Box) Angles() [3]float64 { return B.angles }

// Volume returns the volume of the cell in cubic Angstrom.
func (B *Box) Volume() float64 { return B.volume }

// Orthorhombic returns true if all cell angles are 90 degrees.
func (B *Box) Orthorhombic() bool { return B.ortho }

// Axes returns a copy of the axes matrix, one cell vector per row.
func (B *Box) Axes() *mat.Dense { return mat.DenseCopyOf(B.axes) }

// MinimumImage returns the minimum image of the vector d.
func (B *Box) MinimumImage(d [3]float64) [3]float64 {
	if B.ortho {
		for i := 0; i < 3; i++ {
			d[i] -= B.lengths[i] * math.Round(d[i]/B.lengths[i])
		}
		return d
	}
	var f [3]float64
	for j := 0; j < 3; j++ {
		f[j] = d[0]*B.inverse.At(0, j) + d[1]*B.inverse.At(1, j) + d[2]*B.inverse.At(2, j)
		f[j] -= math.Round(f[j])
	}
	for j := 0; j < 3; j++ {
		d[j] = f[0]*B.axes.At(0, j) + f[1]*B.axes.At(1, j) + f[2]*B.axes.At(2, j)
	}
	return d
}

// MinimumVectorN returns the minimum image vector from r1 to r2.
func (B *Box) MinimumVectorN(r1, r2 [3]float64) [3]float64 {
	return B.MinimumImage([3]float64{r2[0] - r1[0], r2[1] - r1[1], r2[2] - r1[2]})
}

// MinimumVector returns, as a new single-vector matrix, the minimum image vector from
// the first vector of r1 to the first vector of r2.
func (B *Box) MinimumVector(r1, r2 *v3.Matrix) *v3.Matrix {
	d := B.MinimumVectorN(r1.Vec(0), r2.Vec(0))
	return v3.NewVec(d[0], d[1], d[2])
}

// MinimumDistance returns the minimum image distance between the first vectors of r1 and r2.
func (B *Box) MinimumDistance(r1, r2 *v3.Matrix) float64 {
	d := B.MinimumVectorN(r1.Vec(0), r2.Vec(0))
	return math.Sqrt(d[0]*d[0] + d[1]*d[1] + d[2]*d[2])
}

// Angle returns the angle i-j-k, in degrees, using minimum image vectors from j.
func (B *Box) Angle(i, j, k *v3.Matrix) float64 {
	return Rad2Deg(v3.Angle(B.MinimumVector(j, i), B.MinimumVector(j, k)))
}

// Dihedral returns the dihedral angle i-j-k-l, in degrees, using minimum image vectors.
func (B *Box) Dihedral(i, j, k, l *v3.Matrix) float64 {
	a := i
	b := v3.Zeros(1)
	b.Add(a, B.MinimumVector(i, j))
	c := v3.Zeros(1)
	c.Add(b, B.MinimumVector(j, k))
	d := v3.Zeros(1)
	d.Add(c, B.MinimumVector(k, l))
	return Rad2Deg(Dihedral(a.VecView(0), b, c, d))
}

// Fold returns r mapped into the cell.
func (B *Box) Fold(r [3]float64) [3]float64 {
	var f [3]float64
	for j := 0; j < 3; j++ {
		f[j] = r[0]*B.inverse.At(0, j) + r[1]*B.inverse.At(1, j) + r[2]*B.inverse.At(2, j)
		f[j] -= math.Floor(f[j])
	}
	for j := 0; j < 3; j++ {
		r[j] = f[0]*B.axes.At(0, j) + f[1]*B.axes.At(1, j) + f[2]*B.axes.At(2, j)
	}
	return r
}

// ReciprocalAxes returns the reciprocal cell vectors, 2pi times the transposed inverse,
// one per row.
func (B *Box) ReciprocalAxes() *mat.Dense {
	r := mat.NewDense(3, 3, nil)
	r.Scale(2*math.Pi, B.inverse.T())
	return r
}
