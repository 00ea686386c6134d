/*
 * geometric.go, part of godissolve
 *
 * Copyright 2026 The godissolve Authors
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as published by
 * the Free Software Foundation, either version 2.1 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General Public License
 * along with this program.  If not, see <http://www.gnu.org/licenses/>.
 *
 */

package dissolve

import (
	"fmt"
	"math"

	v3 "github.com/rmera/godissolve/v3"
)

// Dihedral calculates the dihedral, in radians, between the points a, b, c, d, where the first plane
// is defined by abc and the second by bcd.
func Dihedral(a, b, c, d *v3.Matrix) float64 {
	all := []*v3.Matrix{a, b, c, d}
	for number, point := range all {
		if point == nil {
			panic(fmt.Sprintf("Vector %d is nil", number))
		}
		pr, pc := point.Dims()
		if pr != 1 || pc != 3 {
			panic(fmt.Sprintf("Vector %d has invalid shape", number))
		}
	}
	//bma=b minus a
	bma := v3.Zeros(1)
	cmb := v3.Zeros(1)
	dmc := v3.Zeros(1)
	bmascaled := v3.Zeros(1)
	bma.Sub(b, a)
	cmb.Sub(c, b)
	dmc.Sub(d, c)
	bmascaled.Scale(cmb.Norm(), bma)
	first := bmascaled.Dot(cross(cmb, dmc))
	v1 := cross(bma, cmb)
	v2 := cross(cmb, dmc)
	second := v1.Dot(v2)
	return math.Atan2(first, second)
}

func cross(a, b *v3.Matrix) *v3.Matrix {
	c := v3.Zeros(1)
	c.Cross(a, b)
	return c
}

func norm(a [3]float64) float64 {
	return math.Sqrt(a[0]*a[0] + a[1]*a[1] + a[2]*a[2])
}

func add(a, b [3]float64) [3]float64 {
	return [3]float64{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

//angleBetween returns the angle between a and b in degrees.
func angleBetween(a, b [3]float64) float64 {
	np := norm(a) * norm(b)
	if np == 0 {
		return 0
	}
	arg := (a[0]*b[0] + a[1]*b[1] + a[2]*b[2]) / np
	arg = math.Max(-1, math.Min(1, arg))
	return Rad2Deg(math.Acos(arg))
}
