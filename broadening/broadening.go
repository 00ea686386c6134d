/*
 * broadening.go, part of godissolve.
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

// Package broadening provides the functions used to broaden data in real or
// reciprocal space, together with their Fourier transforms.
package broadening

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/rmera/godissolve/data"
	"github.com/rmera/godissolve/lineparser"
)

// Form is the kind of broadening function.
type Form int

const (
	None Form = iota
	// Gaussian takes the full width at half maximum.
	Gaussian
	// ScaledGaussian takes an amplitude and the full width at half maximum.
	ScaledGaussian
	// OmegaDependentGaussian takes the full width at half maximum, which is multiplied by omega.
	OmegaDependentGaussian
	// GaussianC2 takes a constant and an omega-dependent full width at half maximum.
	GaussianC2
	nForms
)

var formNames = [nForms]string{"None", "Gaussian", "ScaledGaussian", "OmegaDependentGaussian", "GaussianC2"}
var formNParams = [nForms]int{0, 1, 2, 1, 2}

func (f Form) String() string {
	if f < 0 || f >= nForms {
		return fmt.Sprintf("Form(%d)", int(f))
	}
	return formNames[f]
}

// NParams returns the number of parameters the form takes.
func (f Form) NParams() int { return formNParams[f] }

// ErrUnknownForm is returned when a broadening function name is not recognised.
var ErrUnknownForm = errors.New("unknown broadening function")

// ParseForm returns the form with the given (case-insensitive) name.
func ParseForm(s string) (Form, error) {
	for i, n := range formNames {
		if strings.EqualFold(n, s) {
			return Form(i), nil
		}
	}
	return None, fmt.Errorf("%w %q", ErrUnknownForm, s)
}

// FWHMToC converts a full width at half maximum into the Gaussian c parameter.
func FWHMToC(fwhm float64) float64 { return fwhm / (2 * math.Sqrt(2*math.Ln2)) }

var sqrt2Pi = math.Sqrt(2 * math.Pi)

// Function is a broadening function. The zero value is the None function.
type Function struct {
	form     Form
	params   []float64
	inverted bool
	//derived from params when they are set
	a, c1, c2 float64
}

// New returns a function of the given form. The number of parameters must match the form.
func New(form Form, params ...float64) (*Function, error) {
	F := new(Function)
	if err := F.Set(form, params...); err != nil {
		return nil, err
	}
	return F, nil
}

// Set changes the form and parameters of the function. The inversion is kept.
func (F *Function) Set(form Form, params ...float64) error {
	if form < 0 || form >= nForms {
		return fmt.Errorf("broadening.Set: %w %d", ErrUnknownForm, int(form))
	}
	if len(params) != form.NParams() {
		return fmt.Errorf("broadening.Set: %s takes %d parameters, got %d", form, form.NParams(), len(params))
	}
	F.form = form
	F.params = append(F.params[:0], params...)
	F.a, F.c1, F.c2 = 1, 0, 0
	switch form {
	case Gaussian, OmegaDependentGaussian:
		F.c1 = FWHMToC(params[0])
	case ScaledGaussian:
		F.a = params[0]
		F.c1 = FWHMToC(params[1])
	case GaussianC2:
		F.c1 = FWHMToC(params[0])
		F.c2 = FWHMToC(params[1])
	}
	return nil
}

func (F *Function) Form() Form { return F.form }

// Params returns a copy of the parameters.
func (F *Function) Params() []float64 { return append([]float64(nil), F.params...) }

// Inverted returns whether the function and its transform swap roles.
func (F *Function) Inverted() bool { return F.inverted }

// SetInverted sets whether Y returns the transform and YFT the function.
func (F *Function) SetInverted(inv bool) { F.inverted = inv }

// width returns the Gaussian c at omega.
func (F *Function) width(omega float64) float64 {
	switch F.form {
	case OmegaDependentGaussian:
		return F.c1 * omega
	case GaussianC2:
		return F.c1 + F.c2*omega
	}
	return F.c1
}

// y and yFT never consider inversion. A zero width gives a delta function, whose
// transform is flat.
func (F *Function) y(x, omega float64) float64 {
	if F.form == None {
		return 1
	}
	c := F.width(omega)
	if c == 0 {
		if x == 0 {
			return F.a
		}
		return 0
	}
	return F.a * math.Exp(-0.5*x*x/(c*c))
}

func (F *Function) yFT(x, omega float64) float64 {
	if F.form == None {
		return 1
	}
	c := F.width(omega)
	return F.a * math.Exp(-0.5*x*x*c*c)
}

// Y returns the value of the function at x, for the given omega.
func (F *Function) Y(x, omega float64) float64 {
	if F.inverted {
		return F.yFT(x, omega)
	}
	return F.y(x, omega)
}

// YFT returns the value of the Fourier transform of the function at x, for the given omega.
func (F *Function) YFT(x, omega float64) float64 {
	if F.inverted {
		return F.y(x, omega)
	}
	return F.yFT(x, omega)
}

// DiscreteKernelNormalisation returns the factor that makes the function, sampled
// at intervals of deltaX, sum to its continuous integral.
func (F *Function) DiscreteKernelNormalisation(deltaX, omega float64) float64 {
	if F.form == None {
		return 1
	}
	c := F.width(omega)
	if c == 0 {
		return F.a
	}
	return F.a * deltaX / (c * sqrt2Pi)
}

// Convolve broadens the values of D, which must be evenly spaced, in place. Each
// point is broadened with omega equal to its own x.
func (F *Function) Convolve(D *data.Data1D) error {
	x, v := D.X(), D.Values()
	if F.form == None || len(x) < 2 {
		return nil
	}
	dx := x[1] - x[0]
	for i := 2; i < len(x); i++ {
		if math.Abs(x[i]-x[i-1]-dx) > 1e-6*math.Abs(dx) {
			return fmt.Errorf("broadening.Convolve: %s is not evenly spaced at point %d", D.Tag, i)
		}
	}
	out := make([]float64, len(v))
	for i, xi := range x {
		norm := F.DiscreteKernelNormalisation(dx, xi)
		for j, xj := range x {
			out[j] += v[i] * F.Y(xj-xi, xi) * norm
		}
	}
	copy(v, out)
	return nil
}

// Write writes the function as a "<Form> params..." record.
func (F *Function) Write(W *lineparser.Writer) error {
	var b strings.Builder
	b.WriteString(F.form.String())
	for _, p := range F.params {
		fmt.Fprintf(&b, "  %.16e", p)
	}
	return W.WriteLine("%s", b.String())
}

// Read reads a record written by Write.
func (F *Function) Read(P *lineparser.Parser) error {
	if _, err := P.ReadRecord(); err != nil {
		return fmt.Errorf("broadening.Read: %w", err)
	}
	return F.ReadArgs(P, 0)
}

// ReadArgs sets the function from the tokens of the current record, starting at i.
func (F *Function) ReadArgs(P *lineparser.Parser, i int) error {
	name, err := P.String(i)
	if err != nil {
		return err
	}
	form, err := ParseForm(name)
	if err != nil {
		return P.Errorf("%w", err)
	}
	params, err := P.Floats(i + 1)
	if err != nil {
		return err
	}
	if err := F.Set(form, params...); err != nil {
		return P.Errorf("%w", err)
	}
	return nil
}

// String returns a short description of the function.
func (F *Function) String() string {
	s := F.form.String()
	for _, p := range F.params {
		s += fmt.Sprintf(" %g", p)
	}
	if F.inverted {
		s += " (inverted)"
	}
	return s
}
