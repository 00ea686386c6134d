/*
 * plot.go, part of godissolve.
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

package data

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// xyErrs adapts a Data1D to the plotter XYer and YErrorer interfaces.
type xyErrs struct{ d *Data1D }

func (p xyErrs) Len() int                        { return p.d.NValues() }
func (p xyErrs) XY(i int) (float64, float64)     { return p.d.x[i], p.d.values[i] }
func (p xyErrs) YError(i int) (float64, float64) { return p.d.errors[i], p.d.errors[i] }

// PlotData1D plots the given datasets as lines, with error bars for those that
// carry errors, and saves the plot to filename. The format is taken from the
// file extension (png, svg, pdf...).
func PlotData1D(filename, title, xlabel, ylabel string, sets ...*Data1D) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	p.Add(plotter.NewGrid())
	for i, d := range sets {
		if d.NValues() == 0 {
			continue
		}
		l, err := plotter.NewLine(xyErrs{d})
		if err != nil {
			return fmt.Errorf("PlotData1D: %s: %w", d.Tag, err)
		}
		l.Color = palette[i%len(palette)]
		p.Add(l)
		p.Legend.Add(d.Tag, l)
		if d.HasErrors() {
			eb, err := plotter.NewYErrorBars(xyErrs{d})
			if err != nil {
				return fmt.Errorf("PlotData1D: %s: %w", d.Tag, err)
			}
			eb.Color = l.Color
			p.Add(eb)
		}
	}
	return p.Save(6*vg.Inch, 4*vg.Inch, filename)
}

var palette = []color.Color{
	color.RGBA{R: 31, G: 119, B: 180, A: 255},
	color.RGBA{R: 214, G: 39, B: 40, A: 255},
	color.RGBA{R: 44, G: 160, B: 44, A: 255},
	color.RGBA{R: 148, G: 103, B: 189, A: 255},
	color.RGBA{R: 255, G: 127, B: 14, A: 255},
}
