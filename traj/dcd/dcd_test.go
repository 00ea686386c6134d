/*
 * dcd_test.go, part of godissolve.
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

package dcd

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dissolve "github.com/rmera/godissolve"
	v3 "github.com/rmera/godissolve/v3"
)

func coords(n int, shift float64) *v3.Matrix {
	c := v3.Zeros(n)
	for i := 0; i < n; i++ {
		c.SetVec(i, [3]float64{float64(i) + shift, -float64(i) / 4, 0.5 * shift})
	}
	return c
}

func TestWriteRead(Te *testing.T) {
	name := filepath.Join(Te.TempDir(), "traj.dcd")
	W, err := NewWriter(name, 5)
	require.NoError(Te, err)
	assert.Equal(Te, 5, W.Len())
	cubic := []float64{20, 0, 0, 0, 20, 0, 0, 0, 20}
	tric := []float64{10, 0, 0, 5, 8.660254037844386, 0, 0, 0, 12}
	require.NoError(Te, W.WNext(coords(5, 0), cubic))
	require.NoError(Te, W.WNext(coords(5, 1.5), tric))
	require.NoError(Te, W.WNext(coords(5, 3)))
	assert.Error(Te, W.WNext(coords(4, 0)))
	assert.Error(Te, W.WNext(nil))
	require.NoError(Te, W.Close())
	assert.Error(Te, W.WNext(coords(5, 0)))

	R, err := New(name)
	require.NoError(Te, err)
	defer R.Close()
	assert.Equal(Te, 5, R.Len())
	assert.Equal(Te, 3, R.NFrames())
	assert.Equal(Te, "Written by godissolve", R.Title())
	c := v3.Zeros(5)
	box := make([]float64, 9)
	require.NoError(Te, R.Next(c, box))
	assert.Equal(Te, coords(5, 0).RawMatrix().Data, c.RawMatrix().Data)
	assert.InDeltaSlice(Te, cubic, box, 1e-9)

	require.NoError(Te, R.Next(c, box))
	assert.InDeltaSlice(Te, coords(5, 1.5).RawMatrix().Data, c.RawMatrix().Data, 1e-6)
	assert.InDeltaSlice(Te, tric, box, 1e-9)

	clear(box)
	require.NoError(Te, R.Next(nil, box))
	assert.Equal(Te, make([]float64, 9), box)

	assert.Error(Te, R.Next(v3.Zeros(3)))
	err = R.Next(c)
	_, ok := err.(dissolve.LastFrameError)
	assert.True(Te, ok)
	assert.False(Te, R.Readable())
	assert.Error(Te, R.Next(c))
}

// rawDCD builds a CHARMM DCD file with the given byte order. cell, if not nil,
// is written before the coordinates of every frame but the last.
func rawDCD(order binary.ByteOrder, natoms int, frames [][]float32, cell []float64) []byte {
	var b bytes.Buffer
	record := func(data any) {
		size := int32(binary.Size(data))
		binary.Write(&b, order, size)
		binary.Write(&b, order, data)
		binary.Write(&b, order, size)
	}
	var icntrl [20]int32
	icntrl[0] = int32(len(frames))
	icntrl[19] = charmmVersion
	if cell != nil {
		icntrl[10] = 1
	}
	head := append([]byte("CORD"), make([]byte, 80)...)
	for i, v := range icntrl {
		order.PutUint32(head[4+4*i:], uint32(v))
	}
	record(head)
	title := make([]byte, 4+titleLen)
	order.PutUint32(title, 1)
	copy(title[4:], "big endian")
	record(title)
	record(int32(natoms))
	for i, f := range frames {
		if cell != nil && i < len(frames)-1 {
			record(cell)
		}
		record(f[:natoms])
		record(f[natoms : 2*natoms])
		record(f[2*natoms:])
	}
	return b.Bytes()
}

func TestBigEndian(Te *testing.T) {
	name := filepath.Join(Te.TempDir(), "big.dcd")
	frames := [][]float32{{1, 2, 3, 4, 5, 6}, {7, 8, 9, 10, 11, 12}}
	//NAMD writes the cosines of the angles
	cell := []float64{10, 0.5, 10, 0, 0, 12}
	require.NoError(Te, os.WriteFile(name, rawDCD(binary.BigEndian, 2, frames, cell), 0o644))
	R, err := New(name)
	require.NoError(Te, err)
	assert.Equal(Te, "big endian", R.Title())
	c := v3.Zeros(2)
	box := make([]float64, 9)
	require.NoError(Te, R.Next(c, box))
	assert.Equal(Te, [3]float64{1, 3, 5}, c.Vec(0))
	assert.Equal(Te, [3]float64{2, 4, 6}, c.Vec(1))
	B, err := dissolve.NewBoxFromVectors(box)
	require.NoError(Te, err)
	angles, lengths := B.Angles(), B.Lengths()
	assert.InDeltaSlice(Te, []float64{90, 90, 60}, angles[:], 1e-9)
	assert.InDeltaSlice(Te, []float64{10, 10, 12}, lengths[:], 1e-9)

	//the last frame has no cell
	clear(box)
	require.NoError(Te, R.Next(c, box))
	assert.Equal(Te, [3]float64{8, 10, 12}, c.Vec(1))
	assert.Equal(Te, make([]float64, 9), box)
	_, ok := R.Next(c).(dissolve.LastFrameError)
	assert.True(Te, ok)
}

func TestErrors(Te *testing.T) {
	dir := Te.TempDir()
	_, err := New(filepath.Join(dir, "missing.dcd"))
	assert.Error(Te, err)

	bad := filepath.Join(dir, "bad.dcd")
	require.NoError(Te, os.WriteFile(bad, []byte("this is not a trajectory"), 0o644))
	_, err = New(bad)
	assert.ErrorContains(Te, err, WrongFormat)

	raw := rawDCD(binary.LittleEndian, 2, [][]float32{{1, 2, 3, 4, 5, 6}}, nil)
	short := filepath.Join(dir, "short.dcd")
	require.NoError(Te, os.WriteFile(short, raw[:len(raw)-6], 0o644))
	R, err := New(short)
	require.NoError(Te, err)
	err = R.Next(nil)
	require.Error(Te, err)
	_, ok := err.(dissolve.LastFrameError)
	assert.False(Te, ok)
	assert.ErrorContains(Te, err, "frame 1")

	_, err = NewWriter(filepath.Join(dir, "empty.dcd"), 0)
	assert.Error(Te, err)
}
