/*
 * procpool.go, part of godissolve.
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

// Package procpool provides the process pool the parallel parts of the library run
// on: a set of ranks that exchange float64 slices with blocking point-to-point and
// collective operations. Serial is the trivial single-rank pool, and Group runs
// several ranks as goroutines connected by channels.
package procpool

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Pool is one rank of a process pool. All the collective operations must be
// called by every rank of the pool, in the same order.
type Pool interface {
	Rank() int
	NRanks() int
	IsMaster() bool
	Send(dest int, data []float64) error
	Receive(src int, data []float64) error //data must have the length of the message
	Broadcast(data []float64, root int) error
	AllSum(data []float64) error
	//Decide returns the value of ok on the root rank, on all ranks.
	Decide(root int, ok bool) bool
	DecideTrue(root int) bool
	DecideFalse(root int) bool
}

// Serial is a pool with a single rank.
type Serial struct{}

func (Serial) Rank() int      { return 0 }
func (Serial) NRanks() int    { return 1 }
func (Serial) IsMaster() bool { return true }

func (Serial) Send(dest int, data []float64) error {
	return fmt.Errorf("Send: no rank %d in a serial pool", dest)
}

func (Serial) Receive(src int, data []float64) error {
	return fmt.Errorf("Receive: no rank %d in a serial pool", src)
}

func (Serial) Broadcast(data []float64, root int) error { return nil }
func (Serial) AllSum(data []float64) error              { return nil }
func (Serial) Decide(root int, ok bool) bool            { return ok }
func (Serial) DecideTrue(root int) bool                 { return true }
func (Serial) DecideFalse(root int) bool                { return false }

// msgBuffer is the number of messages a rank can send to another before blocking.
const msgBuffer = 16

// Group is a set of ranks in the same process.
type Group struct {
	ranks []*rank
	chans [][]chan []float64 //chans[src][dest]
	ctx   context.Context
}

// NewGroup returns a group of n ranks.
func NewGroup(n int) *Group {
	if n < 1 {
		panic("procpool: a group needs at least one rank")
	}
	G := &Group{ctx: context.Background()}
	G.chans = make([][]chan []float64, n)
	for i := range G.chans {
		G.chans[i] = make([]chan []float64, n)
		for j := range G.chans[i] {
			G.chans[i][j] = make(chan []float64, msgBuffer)
		}
	}
	for i := 0; i < n; i++ {
		G.ranks = append(G.ranks, &rank{id: i, g: G})
	}
	return G
}

// Size returns the number of ranks in the group.
func (G *Group) Size() int { return len(G.ranks) }

// Pool returns the given rank of the group.
func (G *Group) Pool(r int) Pool { return G.ranks[r] }

// Run runs f once per rank, each in its own goroutine, and waits for all of them.
// It returns the first error returned by any rank. Once a rank fails, the pending
// communications of the others fail too, so they don't wait forever.
func (G *Group) Run(f func(Pool) error) error {
	eg, ctx := errgroup.WithContext(context.Background())
	G.ctx = ctx
	defer func() { G.ctx = context.Background() }()
	for _, r := range G.ranks {
		r := r
		eg.Go(func() error {
			if err := f(r); err != nil {
				return fmt.Errorf("rank %d: %w", r.id, err)
			}
			return nil
		})
	}
	return eg.Wait()
}

type rank struct {
	id int
	g  *Group
}

func (R *rank) Rank() int      { return R.id }
func (R *rank) NRanks() int    { return len(R.g.ranks) }
func (R *rank) IsMaster() bool { return R.id == 0 }

func (R *rank) checkRank(r int) error {
	if r < 0 || r >= len(R.g.ranks) || r == R.id {
		return fmt.Errorf("rank %d can't communicate with rank %d in a pool of %d", R.id, r, len(R.g.ranks))
	}
	return nil
}

func (R *rank) Send(dest int, data []float64) error {
	if err := R.checkRank(dest); err != nil {
		return fmt.Errorf("Send: %w", err)
	}
	msg := append([]float64(nil), data...)
	select {
	case R.g.chans[R.id][dest] <- msg:
		return nil
	case <-R.g.ctx.Done():
		return fmt.Errorf("Send: %w", R.g.ctx.Err())
	}
}

func (R *rank) Receive(src int, data []float64) error {
	if err := R.checkRank(src); err != nil {
		return fmt.Errorf("Receive: %w", err)
	}
	select {
	case msg := <-R.g.chans[src][R.id]:
		if len(msg) != len(data) {
			return fmt.Errorf("Receive: rank %d got %d values from rank %d, expected %d", R.id, len(msg), src, len(data))
		}
		copy(data, msg)
		return nil
	case <-R.g.ctx.Done():
		return fmt.Errorf("Receive: %w", R.g.ctx.Err())
	}
}

func (R *rank) Broadcast(data []float64, root int) error {
	if R.id != root {
		return R.Receive(root, data)
	}
	for r := range R.g.ranks {
		if r == root {
			continue
		}
		if err := R.Send(r, data); err != nil {
			return err
		}
	}
	return nil
}

// AllSum sums data over all ranks. The sum is done on rank 0, in rank order,
// so all ranks get exactly the same result.
func (R *rank) AllSum(data []float64) error {
	if R.id != 0 {
		if err := R.Send(0, data); err != nil {
			return err
		}
		return R.Broadcast(data, 0)
	}
	buf := make([]float64, len(data))
	for r := 1; r < len(R.g.ranks); r++ {
		if err := R.Receive(r, buf); err != nil {
			return err
		}
		for i, v := range buf {
			data[i] += v
		}
	}
	return R.Broadcast(data, 0)
}

func (R *rank) Decide(root int, ok bool) bool {
	d := []float64{0}
	if ok {
		d[0] = 1
	}
	if err := R.Broadcast(d, root); err != nil {
		return false
	}
	return d[0] == 1
}

func (R *rank) DecideTrue(root int) bool  { return R.Decide(root, true) }
func (R *rank) DecideFalse(root int) bool { return R.Decide(root, false) }
