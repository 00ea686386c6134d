package ff

import (
	"errors"
	"testing"

	dissolve "github.com/rmera/godissolve"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// typ returns an atom type with the given name, for matching purposes.
func typ(name string) *AtomType {
	return MustAtomType(0, "C", name, "", "", 0)
}

func params(n int) []float64 {
	p := make([]float64, n)
	for i := range p {
		p[i] = float64(i + 1)
	}
	return p
}

func TestParameterCount(Te *testing.T) {
	for f := dissolve.BondNone; f <= dissolve.BondMorse; f++ {
		_, err := NewBondTerm("A", "B", f, params(f.NParams())...)
		require.NoError(Te, err, f.String())
		for _, n := range []int{f.NParams() + 1, f.NParams() - 1} {
			if n < 0 {
				continue
			}
			_, err = NewBondTerm("A", "B", f, params(n)...)
			assert.True(Te, errors.Is(err, ErrParameterCount), "bond form %s with %d params", f, n)
		}
	}
	for f := dissolve.AngleNone; f <= dissolve.AngleCos2; f++ {
		_, err := NewAngleTerm("A", "B", "C", f, params(f.NParams())...)
		require.NoError(Te, err, f.String())
		_, err = NewAngleTerm("A", "B", "C", f, params(f.NParams()+1)...)
		assert.ErrorIs(Te, err, ErrParameterCount, f.String())
	}
	for f := dissolve.TorsionNone; f <= dissolve.TorsionUFFCosine; f++ {
		_, err := NewTorsionTerm("A", "B", "C", "D", f, params(f.NParams())...)
		require.NoError(Te, err, f.String())
		_, err = NewTorsionTerm("A", "B", "C", "D", f, params(f.NParams()+1)...)
		assert.ErrorIs(Te, err, ErrParameterCount, f.String())
		_, err = NewImproperTerm("A", "B", "C", "D", f, params(f.NParams())...)
		require.NoError(Te, err, f.String())
		_, err = NewImproperTerm("A", "B", "C", "D", f, params(f.NParams()+1)...)
		assert.ErrorIs(Te, err, ErrParameterCount, f.String())
	}
	assert.Panics(Te, func() { MustBondTerm("CT", "HC", dissolve.BondHarmonic, 2845.12) })
	assert.Panics(Te, func() { MustAngleTerm("HC", "CT", "HC", dissolve.AngleHarmonic) })
	assert.Panics(Te, func() { MustTorsionTerm("*", "CA", "CA", "*", dissolve.TorsionCos3, 0, 30.334) })
	assert.Panics(Te, func() { MustImproperTerm("*", "*", "C", "O", dissolve.TorsionCos3, 1, 2, 3, 4) })
}

func TestParamsAreCopied(Te *testing.T) {
	p := []float64{2845.12, 1.09}
	T := MustBondTerm("CT", "HC", dissolve.BondHarmonic, p...)
	p[0] = 0
	got := T.Params()
	got[1] = 0
	assert.Equal(Te, []float64{2845.12, 1.09}, T.Params())
}

func TestBondSymmetry(Te *testing.T) {
	terms := []*BondTerm{
		MustBondTerm("CT", "HC", dissolve.BondHarmonic, 1, 1),
		MustBondTerm("CT", "*", dissolve.BondHarmonic, 1, 1),
		MustBondTerm("C*", "O", dissolve.BondHarmonic, 1, 1),
	}
	names := []string{"CT", "HC", "CA", "O", "OW"}
	for _, T := range terms {
		for _, x := range names {
			for _, y := range names {
				assert.Equal(Te, T.IsMatch(typ(x), typ(y)), T.IsMatch(typ(y), typ(x)), "%v with %s %s", T.TypeNames(), x, y)
			}
		}
	}
	assert.True(Te, terms[0].IsMatch(typ("HC"), typ("CT")))
	assert.False(Te, terms[0].IsMatch(typ("HC"), typ("HC")))
}

func TestAngleCentre(Te *testing.T) {
	T := MustAngleTerm("HW", "OW", "HC", dissolve.AngleHarmonic, 1, 1)
	assert.True(Te, T.IsMatch(typ("HW"), typ("OW"), typ("HC")))
	assert.True(Te, T.IsMatch(typ("HC"), typ("OW"), typ("HW")))
	names := []string{"HW", "OW", "HC", "CT"}
	for _, x := range names {
		for _, z := range names {
			assert.False(Te, T.IsMatch(typ(x), typ("CT"), typ(z)), "centre CT with %s %s", x, z)
		}
	}
	wild := MustAngleTerm("*", "CT", "*", dissolve.AngleHarmonic, 1, 1)
	assert.True(Te, wild.IsMatch(typ("X"), typ("CT"), typ("Y")))
	assert.False(Te, wild.IsMatch(typ("CT"), typ("X"), typ("CT")))
}

func TestTorsionReversal(Te *testing.T) {
	terms := []*TorsionTerm{
		MustTorsionTerm("HC", "CT", "CT", "OH", dissolve.TorsionCos3, 0, 0, 1),
		MustTorsionTerm("*", "CA", "CA", "*", dissolve.TorsionCos3, 0, 1, 0),
		MustTorsionTerm("CT", "C", "N", "H", dissolve.TorsionCos3, 0, 1, 0),
	}
	names := []string{"HC", "CT", "OH", "CA", "C", "N", "H"}
	for _, T := range terms {
		for _, w := range names {
			for _, x := range names {
				for _, y := range names {
					for _, z := range names {
						W, X, Y, Z := typ(w), typ(x), typ(y), typ(z)
						assert.Equal(Te, T.IsMatch(W, X, Y, Z), T.IsMatch(Z, Y, X, W))
					}
				}
			}
		}
	}
	assert.True(Te, terms[0].IsMatch(typ("OH"), typ("CT"), typ("CT"), typ("HC")))
	assert.False(Te, terms[0].IsMatch(typ("HC"), typ("CT"), typ("OH"), typ("CT")))
}

func TestImproperIdentityOrder(Te *testing.T) {
	T := MustImproperTerm("CT", "N", "C", "O", dissolve.TorsionCos3, 0, 1, 0)
	assert.True(Te, T.IsMatch(typ("CT"), typ("N"), typ("C"), typ("O")))
	assert.False(Te, T.IsMatch(typ("O"), typ("C"), typ("N"), typ("CT")))
	assert.False(Te, T.IsMatch(typ("N"), typ("CT"), typ("C"), typ("O")))
}

func TestEquivalentName(Te *testing.T) {
	T := MustBondTerm("CT", "HC", dissolve.BondHarmonic, 1, 1)
	ctx := MustAtomType(1, "C", "CTX", "CT", "a CT look-alike", 0)
	assert.Equal(Te, "CT", ctx.EquivalentName())
	assert.Equal(Te, "HC", typ("HC").EquivalentName())
	assert.True(Te, T.IsMatch(ctx, typ("HC")))
	assert.False(Te, T.IsMatch(typ("CTX"), typ("HC")))
}
