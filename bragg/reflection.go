/*
 * reflection.go, part of godissolve.
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

// Package bragg contains Bragg reflections, the k-vectors that contribute to them,
// and the pass over a configuration that accumulates their partial intensities.
package bragg

import (
	"fmt"

	"github.com/rmera/godissolve/lineparser"
	"github.com/rmera/godissolve/procpool"
	"gonum.org/v1/gonum/mat"
)

// Reflection is a Bragg reflection at a given Q, holding the intensity for each
// pair of atom types and the number of k-vectors that contributed to it.
type Reflection struct {
	q           float64
	index       int
	intensities *mat.Dense //nil until initialised
	nKVectors   int
}

// NewReflection returns a reflection at q with the given index and no intensities.
func NewReflection(q float64, index int) *Reflection {
	return &Reflection{q: q, index: index}
}

func (R *Reflection) Q() float64        { return R.q }
func (R *Reflection) SetQ(q float64)    { R.q = q }
func (R *Reflection) Index() int        { return R.index }
func (R *Reflection) SetIndex(i int)    { R.index = i }
func (R *Reflection) NKVectors() int    { return R.nKVectors }
func (R *Reflection) AddKVectors(n int) { R.nKVectors += n }

// NTypes returns the number of atom types the intensities are held for.
func (R *Reflection) NTypes() int {
	if R.intensities == nil {
		return 0
	}
	r, _ := R.intensities.Dims()
	return r
}

// Initialise sets up zero intensities for nTypes atom types.
func (R *Reflection) Initialise(nTypes int) {
	if nTypes < 1 {
		R.intensities = nil
		return
	}
	R.intensities = mat.NewDense(nTypes, nTypes, nil)
}

// Reset sets all intensities to zero.
func (R *Reflection) Reset() {
	if R.intensities != nil {
		R.intensities.Zero()
	}
}

// Intensity returns the intensity for types i and j.
func (R *Reflection) Intensity(i, j int) float64 { return R.intensities.At(i, j) }

// Intensities returns a copy of the intensity matrix.
func (R *Reflection) Intensities() *mat.Dense {
	if R.intensities == nil {
		return nil
	}
	return mat.DenseCopyOf(R.intensities)
}

// AddIntensity adds v to the intensity for types i and j.
func (R *Reflection) AddIntensity(i, j int, v float64) {
	R.intensities.Set(i, j, R.intensities.At(i, j)+v)
}

// ScaleIntensity multiplies the intensity for types i and j by f.
func (R *Reflection) ScaleIntensity(i, j int, f float64) {
	R.intensities.Set(i, j, R.intensities.At(i, j)*f)
}

// Scale multiplies all intensities by f.
func (R *Reflection) Scale(f float64) {
	if R.intensities != nil {
		R.intensities.Scale(f, R.intensities)
	}
}

// Add adds the intensities and the k-vector count of o to the receiver. Both must
// hold intensities for the same number of types.
func (R *Reflection) Add(o *Reflection) error {
	if R.NTypes() != o.NTypes() {
		return fmt.Errorf("Reflection.Add: %d types in the receiver but %d in the argument", R.NTypes(), o.NTypes())
	}
	if R.intensities != nil {
		R.intensities.Add(R.intensities, o.intensities)
	}
	R.nKVectors += o.nKVectors
	return nil
}

// Write writes an "index q nKVectors" record followed by the intensity matrix as a
// "rows cols" record and one record per row.
func (R *Reflection) Write(W *lineparser.Writer) error {
	if err := W.WriteLine("%d  %.16e  %d", R.index, R.q, R.nKVectors); err != nil {
		return err
	}
	return writeDense(W, R.intensities)
}

// Read reads a reflection written by Write.
func (R *Reflection) Read(P *lineparser.Parser) error {
	if _, err := P.ReadRecord(); err != nil {
		return fmt.Errorf("Reflection.Read: %w", err)
	}
	var err error
	if R.index, err = P.Int(0); err != nil {
		return err
	}
	if R.q, err = P.Float(1); err != nil {
		return err
	}
	if R.nKVectors, err = P.Int(2); err != nil {
		return err
	}
	m, err := readDense(P)
	if err != nil {
		return err
	}
	if m != nil {
		if r, c := m.Dims(); r != c {
			return P.Errorf("intensities of reflection %d are %dx%d, not square", R.index, r, c)
		}
	}
	R.intensities = m
	return nil
}

func writeDense(W *lineparser.Writer, m *mat.Dense) error {
	if m == nil {
		return W.WriteLine("0  0")
	}
	r, c := m.Dims()
	if err := W.WriteLine("%d  %d", r, c); err != nil {
		return err
	}
	row := make([]float64, c)
	for i := 0; i < r; i++ {
		mat.Row(row, i, m)
		line := ""
		for j, v := range row {
			if j > 0 {
				line += "  "
			}
			line += fmt.Sprintf("%.16e", v)
		}
		if err := W.WriteLine("%s", line); err != nil {
			return err
		}
	}
	return nil
}

func readDense(P *lineparser.Parser) (*mat.Dense, error) {
	if _, err := P.ReadRecord(); err != nil {
		return nil, fmt.Errorf("readDense: %w", err)
	}
	r, err := P.Int(0)
	if err != nil {
		return nil, err
	}
	c, err := P.Int(1)
	if err != nil {
		return nil, err
	}
	if r < 0 || c < 0 || (r == 0) != (c == 0) {
		return nil, P.Errorf("invalid matrix dimensions %dx%d", r, c)
	}
	if r == 0 {
		return nil, nil
	}
	m := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		if _, err := P.ReadRecord(); err != nil {
			return nil, fmt.Errorf("readDense: row %d: %w", i, err)
		}
		row, err := P.Floats(0)
		if err != nil {
			return nil, err
		}
		if len(row) != c {
			return nil, P.Errorf("expected %d values in row %d, got %d", c, i, len(row))
		}
		m.SetRow(i, row)
	}
	return m, nil
}

// AllSum sums the intensities of the reflections over all ranks. All ranks must
// hold the same reflections, with the same number of types.
func AllSum(p procpool.Pool, refs []*Reflection) error {
	var buf []float64
	for _, R := range refs {
		if R.intensities != nil {
			buf = append(buf, R.intensities.RawMatrix().Data...)
		}
	}
	if err := p.AllSum(buf); err != nil {
		return fmt.Errorf("bragg.AllSum: %w", err)
	}
	for _, R := range refs {
		if R.intensities == nil {
			continue
		}
		n := copy(R.intensities.RawMatrix().Data, buf)
		buf = buf[n:]
	}
	return nil
}
