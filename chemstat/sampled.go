/*
 * sampled.go, part of godissolve.
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

// Package chemstat contains streaming statistics for the observables calculated
// during an analysis.
package chemstat

import (
	"fmt"
	"math"

	"github.com/rmera/godissolve/lineparser"
	"github.com/rmera/godissolve/procpool"
)

// SampledDouble accumulates the mean and variance of a stream of values, without
// storing them (Welford's algorithm). The zero value is an empty accumulator.
type SampledDouble struct {
	count int
	mean  float64
	m2    float64 //sum of squared deviations from the mean
}

// NewSampledDouble returns an accumulator in the given state.
func NewSampledDouble(count int, mean, m2 float64) SampledDouble {
	return SampledDouble{count: count, mean: mean, m2: m2}
}

// Add accumulates the value v.
func (S *SampledDouble) Add(v float64) {
	S.count++
	delta := v - S.mean
	S.mean += delta / float64(S.count)
	S.m2 += delta * (v - S.mean)
}

// Merge combines the statistics of o into S, as if all the values accumulated
// in o had been added to S.
func (S *SampledDouble) Merge(o SampledDouble) {
	if o.count == 0 {
		return
	}
	if S.count == 0 {
		*S = o
		return
	}
	n := S.count + o.count
	delta := o.mean - S.mean
	S.mean += delta * float64(o.count) / float64(n)
	S.m2 += o.m2 + delta*delta*float64(S.count)*float64(o.count)/float64(n)
	S.count = n
}

// Scale multiplies all the accumulated values by f.
func (S *SampledDouble) Scale(f float64) {
	S.mean *= f
	S.m2 *= f * f
}

// Reset empties the accumulator.
func (S *SampledDouble) Reset() {
	*S = SampledDouble{}
}

func (S SampledDouble) Count() int    { return S.count }
func (S SampledDouble) Mean() float64 { return S.mean }
func (S SampledDouble) M2() float64   { return S.m2 }

// Variance returns the sample variance, or 0 with less than two values.
func (S SampledDouble) Variance() float64 {
	if S.count < 2 {
		return 0
	}
	return S.m2 / float64(S.count-1)
}

// StDev returns the sample standard deviation, or 0 with less than two values.
func (S SampledDouble) StDev() float64 {
	return math.Sqrt(S.Variance())
}

func (S SampledDouble) String() string {
	return fmt.Sprintf("%g +/- %g (%d samples)", S.mean, S.StDev(), S.count)
}

// Write writes the accumulator as a "mean count M2" record.
func (S SampledDouble) Write(W *lineparser.Writer) error {
	return W.WriteLine("%.16e  %d  %.16e", S.mean, S.count, S.m2)
}

// Read reads a "mean count M2" record.
func (S *SampledDouble) Read(P *lineparser.Parser) error {
	if _, err := P.ReadRecord(); err != nil {
		return fmt.Errorf("SampledDouble.Read: %w", err)
	}
	mean, err := P.Float(0)
	if err != nil {
		return err
	}
	count, err := P.Int(1)
	if err != nil {
		return err
	}
	m2, err := P.Float(2)
	if err != nil {
		return err
	}
	if count < 0 {
		return P.Errorf("negative sample count %d", count)
	}
	*S = SampledDouble{count: count, mean: mean, m2: m2}
	return nil
}

// AllSum merges the accumulators of all ranks of the pool. The merge happens on the
// master, in rank order, and the result is broadcast, so all ranks end up with the
// same accumulator.
func (S *SampledDouble) AllSum(p procpool.Pool) error {
	if p.NRanks() == 1 {
		return nil
	}
	buf := []float64{float64(S.count), S.mean, S.m2}
	if !p.IsMaster() {
		if err := p.Send(0, buf); err != nil {
			return err
		}
	} else {
		for r := 1; r < p.NRanks(); r++ {
			if err := p.Receive(r, buf); err != nil {
				return err
			}
			S.Merge(SampledDouble{count: int(buf[0]), mean: buf[1], m2: buf[2]})
		}
		buf = []float64{float64(S.count), S.mean, S.m2}
	}
	if err := p.Broadcast(buf, 0); err != nil {
		return err
	}
	*S = SampledDouble{count: int(buf[0]), mean: buf[1], m2: buf[2]}
	return nil
}

var sampledFields = []string{"count", "mean", "M2"}

// EqualityCheck verifies that the accumulator is identical on all ranks. The returned
// error, the same on every rank, names the first rank and field found to differ
// from the master's.
func (S SampledDouble) EqualityCheck(p procpool.Pool) error {
	return equalityCheck(p, []float64{float64(S.count), S.mean, S.m2}, func(i int) string { return sampledFields[i] })
}

// equalityCheck compares vals on all ranks against the master's.
func equalityCheck(p procpool.Pool, vals []float64, field func(int) string) error {
	if p.NRanks() == 1 {
		return nil
	}
	verdict := []float64{-1, -1}
	if !p.IsMaster() {
		if err := p.Send(0, vals); err != nil {
			return err
		}
	} else {
		buf := make([]float64, len(vals))
		for r := 1; r < p.NRanks(); r++ {
			if err := p.Receive(r, buf); err != nil {
				return err
			}
			if verdict[0] >= 0 {
				continue
			}
			for i := range vals {
				if buf[i] != vals[i] {
					verdict = []float64{float64(r), float64(i)}
					break
				}
			}
		}
	}
	if err := p.Broadcast(verdict, 0); err != nil {
		return err
	}
	if verdict[0] < 0 {
		return nil
	}
	return fmt.Errorf("EqualityCheck: rank %d disagrees with the master on %s", int(verdict[0]), field(int(verdict[1])))
}
