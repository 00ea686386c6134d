/*
 * xyz_test.go, part of godissolve.
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

package xyz

import (
	"os"
	"path/filepath"
	"testing"

	dissolve "github.com/rmera/godissolve"
	v3 "github.com/rmera/godissolve/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func frameCoords(f int) *v3.Matrix {
	c := v3.Zeros(3)
	for i := 0; i < 3; i++ {
		c.SetVec(i, [3]float64{float64(f) + 0.5, float64(i) * 1.25, -float64(f*i) / 8})
	}
	return c
}

func writeTraj(Te *testing.T, name string, frames int) {
	W, err := NewWriter(name, []string{"O", "H", "H"})
	require.NoError(Te, err)
	assert.Equal(Te, 3, W.Len())
	for f := 0; f < frames; f++ {
		box := []float64{10 + float64(f), 0, 0, 0, 10, 0, 0, 0, 10}
		require.NoError(Te, W.WNext(frameCoords(f), box))
	}
	assert.Error(Te, W.WNext(v3.Zeros(2)))
	require.NoError(Te, W.Close())
	assert.Error(Te, W.WNext(frameCoords(0)))
}

func TestRoundTrip(Te *testing.T) {
	for _, ext := range []string{".xyz", ".xyz.zst", ".xyz.gz"} {
		name := filepath.Join(Te.TempDir(), "traj"+ext)
		writeTraj(Te, name, 3)

		R, err := New(name)
		require.NoError(Te, err, ext)
		assert.True(Te, R.Readable())
		assert.Equal(Te, 3, R.Len())
		assert.Equal(Te, []string{"O", "H", "H"}, R.Symbols())
		c := v3.Zeros(3)
		box := make([]float64, 9)
		for f := 0; f < 3; f++ {
			if f == 1 {
				require.NoError(Te, R.Next(nil), ext)
				continue
			}
			require.NoError(Te, R.Next(c, box), ext)
			want := frameCoords(f)
			for i := 0; i < 3; i++ {
				w, g := want.Vec(i), c.Vec(i)
				assert.InDeltaSlice(Te, w[:], g[:], 1e-8)
			}
			assert.Equal(Te, 10+float64(f), box[0])
		}
		err = R.Next(c)
		require.Error(Te, err)
		_, ok := err.(dissolve.LastFrameError)
		assert.True(Te, ok, ext)
		assert.False(Te, R.Readable())
	}
}

func TestMalformed(Te *testing.T) {
	dir := Te.TempDir()
	cases := map[string]string{
		"empty":      "",
		"count":      "three\n\nO 0 0 0\n",
		"coordinate": "1\n\nO 0 zero 0\n",
		"fields":     "1\n\nO 0 0\n",
		"lattice":    "1\nLattice=\"1 0 0\"\nO 0 0 0\n",
	}
	for name, text := range cases {
		p := filepath.Join(dir, name+".xyz")
		require.NoError(Te, os.WriteFile(p, []byte(text), 0o644))
		_, err := New(p)
		assert.Error(Te, err, name)
	}

	//frames must agree in size; trailing blank lines are fine
	p := filepath.Join(dir, "sizes.xyz")
	require.NoError(Te, os.WriteFile(p, []byte("1\n\nAr 0 0 0\n2\n\nAr 0 0 0\nAr 1 1 1\n"), 0o644))
	R, err := New(p)
	require.NoError(Te, err)
	assert.Nil(Te, R.Next(nil))
	err = R.Next(nil)
	require.Error(Te, err)
	te, ok := err.(dissolve.TrajError)
	require.True(Te, ok)
	assert.True(Te, te.Critical())
	assert.Equal(Te, "xyz", te.Format())

	p = filepath.Join(dir, "blank.xyz")
	require.NoError(Te, os.WriteFile(p, []byte("1\ncomment\nAr 0 0 0\n\n\n"), 0o644))
	R, err = New(p)
	require.NoError(Te, err)
	require.NoError(Te, R.Next(nil))
	_, ok = R.Next(nil).(dissolve.LastFrameError)
	assert.True(Te, ok)
}
