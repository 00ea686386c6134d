package broadening

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/rmera/godissolve/data"
	"github.com/rmera/godissolve/lineparser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParameterCounts(Te *testing.T) {
	for f := None; f < nForms; f++ {
		_, err := New(f, make([]float64, f.NParams())...)
		assert.NoError(Te, err, f.String())
		_, err = New(f, make([]float64, f.NParams()+1)...)
		assert.Error(Te, err, f.String())
	}
	_, err := New(Form(42))
	assert.ErrorIs(Te, err, ErrUnknownForm)
}

func TestGaussian(Te *testing.T) {
	F, err := New(Gaussian, 0.5)
	require.NoError(Te, err)
	c := 0.5 / (2 * math.Sqrt(2*math.Ln2))
	assert.Equal(Te, 1.0, F.Y(0, 0))
	//half maximum at half the width
	assert.InDelta(Te, 0.5, F.Y(0.25, 0), 1e-12)
	assert.InDelta(Te, math.Exp(-0.5*4*c*c), F.YFT(2, 0), 1e-15)
	assert.InDelta(Te, 0.01/(c*math.Sqrt(2*math.Pi)), F.DiscreteKernelNormalisation(0.01, 0), 1e-15)

	//the sampled kernel sums to one
	sum := 0.0
	norm := F.DiscreteKernelNormalisation(0.01, 0)
	for x := -500; x <= 500; x++ {
		sum += F.Y(float64(x)*0.01, 0) * norm
	}
	assert.InDelta(Te, 1.0, sum, 1e-9)

	S, _ := New(ScaledGaussian, 3, 0.5)
	assert.InDelta(Te, 3*F.Y(0.1, 0), S.Y(0.1, 0), 1e-15)
	assert.InDelta(Te, 3*F.DiscreteKernelNormalisation(0.01, 0), S.DiscreteKernelNormalisation(0.01, 0), 1e-15)
}

func TestOmegaDependent(Te *testing.T) {
	O, _ := New(OmegaDependentGaussian, 0.1)
	G, _ := New(Gaussian, 0.2)
	assert.InDelta(Te, G.Y(0.05, 0), O.Y(0.05, 2), 1e-15)
	assert.InDelta(Te, G.YFT(3, 0), O.YFT(3, 2), 1e-15)
	assert.InDelta(Te, G.DiscreteKernelNormalisation(0.01, 0), O.DiscreteKernelNormalisation(0.01, 2), 1e-15)
	assert.Equal(Te, 0.0, O.Y(0.05, 0))
	assert.Equal(Te, 1.0, O.Y(0, 0))

	C2, _ := New(GaussianC2, 0.1, 0.05)
	assert.InDelta(Te, G.Y(0.07, 0), C2.Y(0.07, 2), 1e-15)

	N := new(Function)
	assert.Equal(Te, 1.0, N.Y(12, 3))
	assert.Equal(Te, 1.0, N.YFT(12, 3))
	assert.Equal(Te, 1.0, N.DiscreteKernelNormalisation(0.1, 0))
}

func TestInversion(Te *testing.T) {
	xs := []float64{0, 0.013, 0.2, 1.7, 9}
	for _, F := range []*Function{
		must(New(Gaussian, 0.3)),
		must(New(ScaledGaussian, 2, 0.3)),
		must(New(OmegaDependentGaussian, 0.02)),
		must(New(GaussianC2, 0.1, 0.02)),
	} {
		var y, yft []float64
		for _, x := range xs {
			y = append(y, F.Y(x, 1.3))
			yft = append(yft, F.YFT(x, 1.3))
		}
		F.SetInverted(true)
		for i, x := range xs {
			assert.Equal(Te, yft[i], F.Y(x, 1.3))
			assert.Equal(Te, y[i], F.YFT(x, 1.3))
		}
		F.SetInverted(false)
		for i, x := range xs {
			assert.Equal(Te, y[i], F.Y(x, 1.3), F.String())
			assert.Equal(Te, yft[i], F.YFT(x, 1.3), F.String())
		}
	}
}

func must(F *Function, err error) *Function {
	if err != nil {
		panic(err)
	}
	return F
}

func TestRecord(Te *testing.T) {
	F, _ := New(GaussianC2, 0.1, 0.025)
	var buf bytes.Buffer
	W := lineparser.NewWriter(&buf)
	require.NoError(Te, F.Write(W))
	require.NoError(Te, W.Flush())
	assert.True(Te, strings.HasPrefix(buf.String(), "GaussianC2  "))

	R := new(Function)
	require.NoError(Te, R.Read(lineparser.NewParser(strings.NewReader(buf.String()), "b")))
	assert.Equal(Te, GaussianC2, R.Form())
	assert.Equal(Te, F.Params(), R.Params())
	assert.Equal(Te, F.Y(0.3, 2), R.Y(0.3, 2))

	for _, bad := range []string{"Lorentzian 0.1", "Gaussian", "Gaussian 0.1 0.2", "Gaussian wide"} {
		assert.Error(Te, R.Read(lineparser.NewParser(strings.NewReader(bad), "b")), bad)
	}
	err := R.Read(lineparser.NewParser(strings.NewReader("Lorentzian 0.1"), "b"))
	assert.ErrorIs(Te, err, ErrUnknownForm)
	require.NoError(Te, R.Read(lineparser.NewParser(strings.NewReader("none"), "b")))
	assert.Equal(Te, None, R.Form())
}

func TestConvolve(Te *testing.T) {
	D := data.NewData1D("spike")
	for i := 0; i < 201; i++ {
		y := 0.0
		if i == 100 {
			y = 1
		}
		D.AddPoint(float64(i)*0.01, y)
	}
	before := D.Integral()
	F, _ := New(Gaussian, 0.1)
	require.NoError(Te, F.Convolve(D))
	assert.InDelta(Te, before, D.Integral(), 1e-6)
	assert.InDelta(Te, D.Values()[95], D.Values()[105], 1e-12)
	assert.Less(Te, D.Values()[100], 1.0)

	U := data.NewData1D("uneven")
	U.AddPoint(0, 1)
	U.AddPoint(1, 1)
	U.AddPoint(3, 1)
	assert.Error(Te, F.Convolve(U))
}
