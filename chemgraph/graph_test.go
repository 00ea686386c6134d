package chemgraph

import (
	"testing"

	dissolve "github.com/rmera/godissolve"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chainAndPair is a four-atom chain 0-1-2-3 plus a separate 4-5 fragment.
func chainAndPair(Te *testing.T) *dissolve.Species {
	sp := dissolve.NewSpecies("test")
	for _, s := range []string{"C", "C", "C", "C", "O", "H"} {
		sp.AddAtom(s, s, "", 0)
	}
	for _, b := range [][2]int{{0, 1}, {1, 2}, {2, 3}, {4, 5}} {
		_, err := sp.AddBond(b[0], b[1])
		require.NoError(Te, err)
	}
	return sp
}

func TestAnglesTorsions(Te *testing.T) {
	T := FromSpecies(chainAndPair(Te))
	assert.Equal(Te, []int{0, 2}, T.Neighbours(1))
	assert.Equal(Te, [][3]int{{0, 1, 2}, {1, 2, 3}}, T.Angles())
	assert.Equal(Te, [][4]int{{0, 1, 2, 3}}, T.Torsions())
	assert.Empty(Te, T.ImproperCentres())
}

func TestFragmentsSeparation(Te *testing.T) {
	T := FromSpecies(chainAndPair(Te))
	assert.Equal(Te, [][]int{{0, 1, 2, 3}, {4, 5}}, T.Fragments())
	assert.Equal(Te, 3, T.Separation(0, 3))
	assert.Equal(Te, 1, T.Separation(5, 4))
	assert.Equal(Te, 0, T.Separation(2, 2))
	assert.Equal(Te, -1, T.Separation(0, 4))
}

func TestImproperCentres(Te *testing.T) {
	sp := dissolve.NewSpecies("formaldehyde")
	sp.AddAtom("C", "C", "", 0)
	sp.AddAtom("O", "O", "", 0)
	sp.AddAtom("H", "H1", "", 0)
	sp.AddAtom("H", "H2", "", 0)
	for _, j := range []int{1, 2, 3} {
		_, err := sp.AddBond(0, j)
		require.NoError(Te, err)
	}
	T := FromSpecies(sp)
	assert.Equal(Te, map[int][3]int{0: {1, 2, 3}}, T.ImproperCentres())
	assert.Len(Te, T.Angles(), 3)
	assert.Empty(Te, T.Torsions())
}
