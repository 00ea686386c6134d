/*
 * histo.go, part of godissolve.
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

// Package histo contains a one-dimensional histogram that is filled frame by frame,
// and accumulates statistics of each bin over frames.
package histo

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rmera/godissolve/chemstat"
	"github.com/rmera/godissolve/data"
	"github.com/rmera/godissolve/lineparser"
	"github.com/rmera/godissolve/procpool"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Histogram1D bins values into equal-width bins between a minimum and a maximum.
// Raw counts are kept for the current frame; Accumulate adds them to the
// per-bin statistics over all frames.
type Histogram1D struct {
	min, max, width float64
	dividers        []float64
	raw             []float64
	averages        []chemstat.SampledDouble
	nBinned         int
	nMissed         int
}

// NewHistogram1D returns a histogram from min to max with bins of the given width.
// The maximum is moved down, if needed, so it falls on a bin boundary.
func NewHistogram1D(min, max, width float64) (*Histogram1D, error) {
	H := new(Histogram1D)
	if err := H.Initialise(min, max, width); err != nil {
		return nil, err
	}
	return H, nil
}

// Initialise sets the range of the histogram and clears it.
func (H *Histogram1D) Initialise(min, max, width float64) error {
	if width <= 0 || max <= min {
		return fmt.Errorf("Histogram1D: invalid range %g-%g with width %g", min, max, width)
	}
	q := (max - min) / width
	n := int(q)
	if q-float64(n) > 1-1e-9 {
		n++
	}
	if n < 1 {
		return fmt.Errorf("Histogram1D: range %g-%g is narrower than one bin of width %g", min, max, width)
	}
	H.min, H.width = min, width
	H.max = min + float64(n)*width
	H.dividers = make([]float64, n+1)
	floats.Span(H.dividers, H.min, H.max)
	H.raw = make([]float64, n)
	H.averages = make([]chemstat.SampledDouble, n)
	H.nBinned, H.nMissed = 0, 0
	return nil
}

func (H *Histogram1D) Min() float64   { return H.min }
func (H *Histogram1D) Max() float64   { return H.max }
func (H *Histogram1D) Width() float64 { return H.width }
func (H *Histogram1D) NBins() int     { return len(H.raw) }

// NBinned returns the number of values binned since the last ZeroBins.
func (H *Histogram1D) NBinned() int { return H.nBinned }

// NMissed returns the number of values that fell outside the range since the last ZeroBins.
func (H *Histogram1D) NMissed() int { return H.nMissed }

// BinCentres returns the centre of each bin.
func (H *Histogram1D) BinCentres() []float64 {
	ret := make([]float64, len(H.raw))
	for i := range ret {
		ret[i] = H.min + (float64(i)+0.5)*H.width
	}
	return ret
}

// Raw returns the counts of the current frame. The slice is not a copy.
func (H *Histogram1D) Raw() []float64 { return H.raw }

// Average returns the statistics of bin i over the accumulated frames.
func (H *Histogram1D) Average(i int) chemstat.SampledDouble { return H.averages[i] }

// Bin adds x to the raw counts, and returns whether it was within range.
func (H *Histogram1D) Bin(x float64) bool {
	if x < H.min || x >= H.max {
		H.nMissed++
		return false
	}
	b := int((x - H.min) / H.width)
	if b >= len(H.raw) {
		H.nMissed++
		return false
	}
	H.raw[b]++
	H.nBinned++
	return true
}

// BinAll bins all the values in xs. xs is sorted in place.
func (H *Histogram1D) BinAll(xs []float64) {
	sort.Float64s(xs)
	//stat.Histogram panics on values out of range.
	lo := sort.SearchFloat64s(xs, H.min)
	hi := sort.SearchFloat64s(xs, H.max)
	H.nMissed += len(xs) - (hi - lo)
	H.nBinned += hi - lo
	if hi > lo {
		floats.Add(H.raw, stat.Histogram(nil, H.dividers, xs[lo:hi], nil))
	}
}

// ZeroBins clears the raw counts, keeping the accumulated statistics.
func (H *Histogram1D) ZeroBins() {
	for i := range H.raw {
		H.raw[i] = 0
	}
	H.nBinned, H.nMissed = 0, 0
}

// Accumulate adds the raw counts of the current frame to the per-bin statistics.
func (H *Histogram1D) Accumulate() {
	for i, v := range H.raw {
		H.averages[i].Add(v)
	}
}

// Reset clears the raw counts and the accumulated statistics.
func (H *Histogram1D) Reset() {
	H.ZeroBins()
	for i := range H.averages {
		H.averages[i].Reset()
	}
}

// AllSum sums the raw counts, and the binned and missed totals, over all ranks.
func (H *Histogram1D) AllSum(p procpool.Pool) error {
	buf := make([]float64, len(H.raw)+2)
	copy(buf, H.raw)
	buf[len(H.raw)] = float64(H.nBinned)
	buf[len(H.raw)+1] = float64(H.nMissed)
	if err := p.AllSum(buf); err != nil {
		return fmt.Errorf("Histogram1D.AllSum: %w", err)
	}
	copy(H.raw, buf)
	H.nBinned = int(buf[len(H.raw)])
	H.nMissed = int(buf[len(H.raw)+1])
	return nil
}

// AllSumAccumulated merges the per-bin statistics of all ranks, so all ranks end
// up with the statistics of all the frames accumulated by any of them.
func (H *Histogram1D) AllSumAccumulated(p procpool.Pool) error {
	for i := range H.averages {
		if err := H.averages[i].AllSum(p); err != nil {
			return fmt.Errorf("Histogram1D.AllSumAccumulated: bin %d: %w", i, err)
		}
	}
	return nil
}

// Data returns the bin centres against the mean accumulated count, with the
// standard deviations as errors.
func (H *Histogram1D) Data(tag string) *data.Data1D {
	D := data.NewData1D(tag)
	D.SetHasErrors(true)
	for i, x := range H.BinCentres() {
		D.AddPointWithError(x, H.averages[i].Mean(), H.averages[i].StDev())
	}
	return D
}

// String returns the bin ranges and the current raw counts.
func (H *Histogram1D) String() string {
	d := make([]string, 0, len(H.raw))
	h := make([]string, 0, len(H.raw))
	for i, v := range H.raw {
		d = append(d, fmt.Sprintf("%4.2f-%4.2f", H.dividers[i], H.dividers[i+1]))
		h = append(h, fmt.Sprintf("%9.3f", v))
	}
	return fmt.Sprintf("Binned: %d, Missed: %d\n%s\n%s", H.nBinned, H.nMissed, strings.Join(d, " "), strings.Join(h, " "))
}

// Write writes the range, the binned and missed counts, then the raw count and
// the accumulated statistics of each bin.
func (H *Histogram1D) Write(W *lineparser.Writer) error {
	if err := W.WriteLine("%.16e  %.16e  %.16e", H.min, H.max, H.width); err != nil {
		return err
	}
	if err := W.WriteLine("%d  %d", H.nBinned, H.nMissed); err != nil {
		return err
	}
	for i, v := range H.raw {
		if err := W.WriteLine("%.16e", v); err != nil {
			return err
		}
		if err := H.averages[i].Write(W); err != nil {
			return err
		}
	}
	return nil
}

// Read reads a histogram written by Write.
func (H *Histogram1D) Read(P *lineparser.Parser) error {
	if _, err := P.ReadRecord(); err != nil {
		return fmt.Errorf("Histogram1D.Read: %w", err)
	}
	r, err := P.Floats(0)
	if err != nil {
		return err
	}
	if len(r) != 3 {
		return P.Errorf("Histogram1D.Read: expected minimum, maximum and bin width")
	}
	if err := H.Initialise(r[0], r[1], r[2]); err != nil {
		return P.Errorf("%w", err)
	}
	if _, err := P.ReadRecord(); err != nil {
		return fmt.Errorf("Histogram1D.Read: %w", err)
	}
	if H.nBinned, err = P.Int(0); err != nil {
		return err
	}
	if H.nMissed, err = P.Int(1); err != nil {
		return err
	}
	for i := range H.raw {
		if _, err := P.ReadRecord(); err != nil {
			return fmt.Errorf("Histogram1D.Read: bin %d: %w", i, err)
		}
		if H.raw[i], err = P.Float(0); err != nil {
			return err
		}
		if err := H.averages[i].Read(P); err != nil {
			return err
		}
	}
	return nil
}
