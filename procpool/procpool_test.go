package procpool

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerial(Te *testing.T) {
	var p Pool = Serial{}
	assert.True(Te, p.IsMaster())
	assert.Equal(Te, 1, p.NRanks())
	d := []float64{1, 2}
	require.NoError(Te, p.AllSum(d))
	assert.Equal(Te, []float64{1, 2}, d)
	assert.Error(Te, p.Send(1, d))
	assert.True(Te, p.Decide(0, true))
	assert.False(Te, p.DecideFalse(0))
}

func TestGroupCollectives(Te *testing.T) {
	G := NewGroup(4)
	sums := make([][]float64, G.Size())
	bcast := make([][]float64, G.Size())
	err := G.Run(func(p Pool) error {
		d := []float64{float64(p.Rank()), 1}
		if err := p.AllSum(d); err != nil {
			return err
		}
		sums[p.Rank()] = d
		b := []float64{0, 0, 0}
		if p.Rank() == 2 {
			b = []float64{7, 8, 9}
		}
		if err := p.Broadcast(b, 2); err != nil {
			return err
		}
		bcast[p.Rank()] = b
		return nil
	})
	require.NoError(Te, err)
	for r := 0; r < 4; r++ {
		assert.Equal(Te, []float64{6, 4}, sums[r])
		assert.Equal(Te, []float64{7, 8, 9}, bcast[r])
	}
}

func TestGroupRingAndDecide(Te *testing.T) {
	G := NewGroup(3)
	got := make([]float64, 3)
	decided := make([]bool, 3)
	err := G.Run(func(p Pool) error {
		n := p.NRanks()
		if err := p.Send((p.Rank()+1)%n, []float64{float64(10 * p.Rank())}); err != nil {
			return err
		}
		d := []float64{0}
		if err := p.Receive((p.Rank()+n-1)%n, d); err != nil {
			return err
		}
		got[p.Rank()] = d[0]
		//only the root's opinion counts
		decided[p.Rank()] = p.Decide(1, p.Rank() == 1)
		return nil
	})
	require.NoError(Te, err)
	assert.Equal(Te, []float64{20, 0, 10}, got)
	assert.Equal(Te, []bool{true, true, true}, decided)
}

func TestGroupFailureUnblocks(Te *testing.T) {
	G := NewGroup(3)
	bad := errors.New("bad frame")
	err := G.Run(func(p Pool) error {
		if p.Rank() == 1 {
			return bad
		}
		//rank 1 never sends, so these would wait forever
		return p.Receive(1, make([]float64, 1))
	})
	require.Error(Te, err)
	assert.ErrorIs(Te, err, bad)
}

func TestGroupErrors(Te *testing.T) {
	G := NewGroup(2)
	p := G.Pool(0)
	assert.Error(Te, p.Send(0, nil))
	assert.Error(Te, p.Send(5, nil))
	require.NoError(Te, p.Send(1, []float64{1, 2}))
	assert.Error(Te, G.Pool(1).Receive(0, make([]float64, 1)))
	assert.Panics(Te, func() { NewGroup(0) })
}
