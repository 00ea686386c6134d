/*
 * sampledvector.go, part of godissolve.
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

package chemstat

import (
	"fmt"
	"math"

	"github.com/rmera/godissolve/procpool"
)

// SampledVector accumulates element-wise statistics of a stream of equally long vectors.
type SampledVector struct {
	count int
	mean  []float64
	m2    []float64
}

// NewSampledVector returns an empty accumulator for vectors of length n.
func NewSampledVector(n int) *SampledVector {
	return &SampledVector{mean: make([]float64, n), m2: make([]float64, n)}
}

// Len returns the length of the accumulated vectors.
func (S *SampledVector) Len() int { return len(S.mean) }

// Count returns the number of vectors accumulated.
func (S *SampledVector) Count() int { return S.count }

// Add accumulates v. Panics if v doesn't have the accumulator's length.
func (S *SampledVector) Add(v []float64) {
	if len(v) != len(S.mean) {
		panic(fmt.Sprintf("SampledVector: Adding vector of length %d to accumulator of length %d", len(v), len(S.mean)))
	}
	S.count++
	n := float64(S.count)
	for i, x := range v {
		delta := x - S.mean[i]
		S.mean[i] += delta / n
		S.m2[i] += delta * (x - S.mean[i])
	}
}

// Merge combines o into S. Panics if the lengths differ.
func (S *SampledVector) Merge(o *SampledVector) {
	if len(o.mean) != len(S.mean) {
		panic(fmt.Sprintf("SampledVector: Merging accumulators of lengths %d and %d", len(o.mean), len(S.mean)))
	}
	if o.count == 0 {
		return
	}
	if S.count == 0 {
		S.count = o.count
		copy(S.mean, o.mean)
		copy(S.m2, o.m2)
		return
	}
	na, nb := float64(S.count), float64(o.count)
	n := na + nb
	for i := range S.mean {
		delta := o.mean[i] - S.mean[i]
		S.mean[i] += delta * nb / n
		S.m2[i] += o.m2[i] + delta*delta*na*nb/n
	}
	S.count += o.count
}

// Reset empties the accumulator, keeping its length.
func (S *SampledVector) Reset() {
	S.count = 0
	for i := range S.mean {
		S.mean[i], S.m2[i] = 0, 0
	}
}

// At returns the statistics of element i.
func (S *SampledVector) At(i int) SampledDouble {
	return SampledDouble{count: S.count, mean: S.mean[i], m2: S.m2[i]}
}

// Means returns a copy of the element-wise means.
func (S *SampledVector) Means() []float64 {
	return append([]float64(nil), S.mean...)
}

// StDevs returns the element-wise sample standard deviations.
func (S *SampledVector) StDevs() []float64 {
	ret := make([]float64, len(S.mean))
	if S.count < 2 {
		return ret
	}
	for i, v := range S.m2 {
		ret[i] = math.Sqrt(v / float64(S.count-1))
	}
	return ret
}

// AllSum merges the accumulators of all ranks, as SampledDouble.AllSum does.
func (S *SampledVector) AllSum(p procpool.Pool) error {
	if p.NRanks() == 1 {
		return nil
	}
	n := len(S.mean)
	pack := func() []float64 {
		buf := make([]float64, 0, 2*n+1)
		buf = append(buf, float64(S.count))
		buf = append(buf, S.mean...)
		return append(buf, S.m2...)
	}
	unpack := func(buf []float64) *SampledVector {
		return &SampledVector{count: int(buf[0]), mean: buf[1 : n+1], m2: buf[n+1:]}
	}
	buf := pack()
	if !p.IsMaster() {
		if err := p.Send(0, buf); err != nil {
			return err
		}
	} else {
		in := make([]float64, len(buf))
		for r := 1; r < p.NRanks(); r++ {
			if err := p.Receive(r, in); err != nil {
				return err
			}
			S.Merge(unpack(in))
		}
		buf = pack()
	}
	if err := p.Broadcast(buf, 0); err != nil {
		return err
	}
	o := unpack(buf)
	S.count = o.count
	copy(S.mean, o.mean)
	copy(S.m2, o.m2)
	return nil
}

// EqualityCheck verifies that the accumulator is identical on all ranks.
func (S *SampledVector) EqualityCheck(p procpool.Pool) error {
	vals := append([]float64{float64(S.count)}, S.mean...)
	vals = append(vals, S.m2...)
	n := len(S.mean)
	return equalityCheck(p, vals, func(i int) string {
		switch {
		case i == 0:
			return "count"
		case i <= n:
			return fmt.Sprintf("mean[%d]", i-1)
		}
		return fmt.Sprintf("M2[%d]", i-1-n)
	})
}
