/*
 * species_test.go, part of godissolve.
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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v3 "github.com/rmera/godissolve/v3"
)

// water returns a water species with harmonic terms and the sites O (with axes)
// and COM.
func water(Te *testing.T) *Species {
	Te.Helper()
	sp := NewSpecies("water")
	sp.AddAtom("O", "OW", "OW", -0.8)
	sp.AddAtom("H", "HW1", "HW", 0.4)
	sp.AddAtom("H", "HW2", "HW", 0.4)
	for _, j := range []int{1, 2} {
		b, err := sp.AddBond(0, j)
		require.NoError(Te, err)
		b.Form, b.Params = BondHarmonic, []float64{1000, 1}
	}
	sp.Angles = append(sp.Angles, &SpeciesAngle{I: 1, J: 0, K: 2, Form: AngleHarmonic, Params: []float64{100, 90}})
	require.NoError(Te, sp.AddSite(&SpeciesSite{Name: "O", Origin: []int{0}, XAxis: []int{1}, YAxis: []int{2}}))
	require.NoError(Te, sp.AddSite(&SpeciesSite{Name: "COM", Origin: []int{0, 1, 2}, MassWeighted: true}))
	return sp
}

func TestSpeciesAtoms(Te *testing.T) {
	sp := water(Te)
	assert.Equal(Te, 3, sp.Len())
	assert.Equal(Te, 2, sp.Atom(2).Index)
	assert.InDelta(Te, 15.999+2*1.008, sp.Mass(), 1e-9)
	assert.InDelta(Te, 0, sp.Charge(), 1e-12)
	assert.Panics(Te, func() { sp.Atom(3) })

	at := sp.AddAtom("Qq", "X", "", 0)
	assert.Zero(Te, at.Mass)
}

func TestSpeciesBonds(Te *testing.T) {
	sp := water(Te)
	assert.True(Te, sp.HasBond(2, 0))
	assert.False(Te, sp.HasBond(1, 2))
	assert.Equal(Te, []int{1, 2}, sp.Bonded(0))
	assert.Equal(Te, []int{0}, sp.Bonded(1))
	for _, b := range [][2]int{{0, 1}, {1, 0}, {1, 1}, {0, 3}, {-1, 0}} {
		_, err := sp.AddBond(b[0], b[1])
		assert.Error(Te, err, "%v", b)
	}
}

func TestSpeciesSites(Te *testing.T) {
	sp := water(Te)
	require.NotNil(Te, sp.Site("O"))
	assert.True(Te, sp.Site("O").HasAxes())
	assert.False(Te, sp.Site("COM").HasAxes())
	assert.Nil(Te, sp.Site("H"))
	bad := []*SpeciesSite{
		{Origin: []int{0}},
		{Name: "O", Origin: []int{1}},
		{Name: "empty"},
		{Name: "half", Origin: []int{0}, XAxis: []int{1}},
		{Name: "far", Origin: []int{0}, XAxis: []int{1}, YAxis: []int{5}},
	}
	for _, s := range bad {
		assert.Error(Te, sp.AddSite(s), s.Name)
	}
	assert.Len(Te, sp.Sites, 2)
}

func TestIntramolecularEnergy(Te *testing.T) {
	sp := water(Te)
	c := v3.Zeros(3)
	c.SetVec(0, [3]float64{0, 0, 0})
	c.SetVec(1, [3]float64{1.1, 0, 0})
	c.SetVec(2, [3]float64{0, 1, 0})
	assert.InDelta(Te, 5, sp.IntramolecularEnergy(c, nil), 1e-9)

	//the same molecule, broken across the boundary of the box
	B, err := NewCubicBox(10)
	require.NoError(Te, err)
	c.SetVec(0, [3]float64{9.9, 5, 5})
	c.SetVec(1, B.Fold([3]float64{11, 5, 5}))
	c.SetVec(2, [3]float64{9.9, 6, 5})
	assert.InDelta(Te, 5, sp.IntramolecularEnergy(c, B), 1e-9)

	sp.Torsions = append(sp.Torsions, &SpeciesTorsion{I: 1, J: 0, K: 2, L: 1, Form: TorsionNone})
	assert.InDelta(Te, 5, sp.IntramolecularEnergy(c, B), 1e-9)
}

func TestAddMissingBonds(Te *testing.T) {
	sp := NewSpecies("water")
	sp.AddAtom("O", "O", "", 0)
	sp.AddAtom("H", "H1", "", 0)
	sp.AddAtom("H", "H2", "", 0)
	c := v3.Zeros(3)
	c.SetVec(1, [3]float64{0.96, 0, 0})
	c.SetVec(2, [3]float64{-0.24, 0.93, 0})
	n, err := sp.AddMissingBonds(c, nil)
	require.NoError(Te, err)
	assert.Equal(Te, 2, n)
	assert.Equal(Te, []int{1, 2}, sp.Bonded(0))
	n, err = sp.AddMissingBonds(c, nil)
	require.NoError(Te, err)
	assert.Zero(Te, n)
	_, err = sp.AddMissingBonds(v3.Zeros(2), nil)
	assert.Error(Te, err)

	//H takes a single bond, the shortest
	h3 := NewSpecies("H3")
	for i := 0; i < 3; i++ {
		h3.AddAtom("H", "H", "", 0)
	}
	c.SetVec(0, [3]float64{0, 0, 0})
	c.SetVec(1, [3]float64{0.75, 0, 0})
	c.SetVec(2, [3]float64{1.49, 0, 0})
	n, err = h3.AddMissingBonds(c, nil)
	require.NoError(Te, err)
	assert.Equal(Te, 1, n)
	assert.True(Te, h3.HasBond(1, 2))

	oh := NewSpecies("OH")
	oh.AddAtom("O", "O", "", 0)
	oh.AddAtom("H", "H", "", 0)
	c = v3.Zeros(2)
	c.SetVec(0, [3]float64{9.9, 5, 5})
	c.SetVec(1, [3]float64{0.86, 5, 5})
	n, err = oh.AddMissingBonds(c, nil)
	require.NoError(Te, err)
	assert.Zero(Te, n)
	B, err := NewCubicBox(10)
	require.NoError(Te, err)
	n, err = oh.AddMissingBonds(c, B)
	require.NoError(Te, err)
	assert.Equal(Te, 1, n)

	ar := NewSpecies("Ar2")
	ar.AddAtom("Ar", "Ar1", "", 0)
	ar.AddAtom("Ar", "Ar2", "", 0)
	_, err = ar.AddMissingBonds(c, nil)
	assert.Error(Te, err)
}
