/*
 * nodes_test.go, part of godissolve.
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

package procedure

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	dissolve "github.com/rmera/godissolve"
	"github.com/rmera/godissolve/data"
	"github.com/rmera/godissolve/genericlist"
	"github.com/rmera/godissolve/messenger"
	"github.com/rmera/godissolve/procpool"
	v3 "github.com/rmera/godissolve/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// pair returns a 10 A box with two waters, their oxygens 2.2 A apart through
// the periodic boundary.
func pair(Te *testing.T, sp *dissolve.Species) *dissolve.Configuration {
	box, err := dissolve.NewCubicBox(10)
	require.NoError(Te, err)
	cfg := dissolve.NewConfiguration("pair", box)
	addWater(Te, cfg, sp, [3]float64{1, 1, 1}, hAlongX, hInXY)
	addWater(Te, cfg, sp, [3]float64{8.8, 1, 1}, hAlongX, hInXY)
	return cfg
}

func TestDistance(Te *testing.T) {
	sp := water(Te)
	P, refs := buildRDF(Te, sp)
	ctx := NewContext(pair(Te, sp), nil, nil, "pair", nil)
	require.NoError(Te, P.Execute(ctx))

	h, err := P.Node(refs["c"]).(*Collect1D).Histogram(ctx)
	require.NoError(Te, err)
	assert.Equal(Te, 10, h.NBins())
	assert.Equal(Te, 2, h.NBinned())
	assert.Equal(Te, 2.0, h.Raw()[4])
	assert.Equal(Te, 1, h.Average(4).Count())

	a, err := P.Node(refs["A"]).(*Select).Stats(ctx)
	require.NoError(Te, err)
	assert.Equal(Te, SiteStats{NSelections: 1, NAvailable: 2, NCumulative: 2}, *a)
	b, err := P.Node(refs["B"]).(*Select).Stats(ctx)
	require.NoError(Te, err)
	assert.Equal(Te, SiteStats{NSelections: 2, NAvailable: 4, NCumulative: 2}, *b)
	assert.Equal(Te, 1.0, b.AverageSites())

	//the next frame starts from empty bins, and adds to the statistics
	require.NoError(Te, P.Execute(ctx))
	assert.Equal(Te, 2, h.NBinned())
	assert.Equal(Te, 2, h.Average(4).Count())
	assert.Equal(Te, 2.0, h.Average(4).Mean())

	//current sites don't outlive their Select
	_, err = ctx.CurrentSite(refs["A"])
	assert.ErrorIs(Te, err, ErrNoCurrentSite)

	require.NoError(Te, P.Complete(ctx))
	D, err := P.Node(refs["p"]).(*Process1D).Data(ctx)
	require.NoError(Te, err)
	assert.Equal(Te, 10, D.NValues())
	//two sites from A, each with one B at 2.2 A
	assert.InDelta(Te, 1.0, D.Values()[4], 1e-12)
	assert.InDelta(Te, 0.0, D.Errors()[4], 1e-12)
	assert.True(Te, ctx.List.Contains("p", "pair"))
}

func TestNoCurrentSite(Te *testing.T) {
	sp := water(Te)
	P := New(AnalysisContext, "bad")
	A := NewSelect("A")
	require.NoError(Te, A.AddSite(sp, "O"))
	refA, err := P.Root().Add(A)
	require.NoError(Te, err)
	_, err = P.Root().Add(NewCalculateDistance("d", refA, refA))
	require.NoError(Te, err)
	err = P.Execute(NewContext(pair(Te, sp), nil, nil, "", nil))
	assert.ErrorIs(Te, err, ErrNoCurrentSite)
	assert.ErrorContains(Te, err, "CalculateDistance 'd'")
}

func TestCalculateNodes(Te *testing.T) {
	sp := water(Te)
	box, err := dissolve.NewCubicBox(10)
	require.NoError(Te, err)
	cfg := dissolve.NewConfiguration("frames", box)
	addWater(Te, cfg, sp, [3]float64{1, 1, 1}, hAlongX, hInXY)
	//x axis along y, y axis along -x
	addWater(Te, cfg, sp, [3]float64{5, 1, 1}, [3]float64{0, 0.96, 0}, [3]float64{-0.93, -0.24, 0})
	addWater(Te, cfg, sp, [3]float64{1, 5, 1}, hAlongX, hInXY)
	sites, err := cfg.SiteStack(sp, "O")
	require.NoError(Te, err)
	require.Len(Te, sites, 3)

	P := New(AnalysisContext, "calc")
	var sel [3]NodeRef
	for i := range sel {
		sel[i], err = P.Root().Add(NewSelect(""))
		require.NoError(Te, err)
	}
	dist := NewCalculateDistance("d", sel[0], sel[1])
	angle := NewCalculateAngle("a", sel[1], sel[0], sel[2])
	axes := NewCalculateAxisAngle("xx", sel[0], XAxis, sel[1], XAxis)
	axesYX := NewCalculateAxisAngle("yx", sel[0], XAxis, sel[1], YAxis)
	vec := NewCalculateVector("v", sel[0], sel[1])
	rot := NewCalculateVector("rot", sel[1], sel[0])
	rot.SetRotateIntoFrame(true)
	calcs := []Node{dist, angle, axes, axesYX, vec, rot}
	for _, c := range calcs {
		_, err := P.Root().Add(c)
		require.NoError(Te, err)
	}

	ctx := NewContext(cfg, nil, nil, "", nil)
	ctx.begin(P)
	for i, r := range sel {
		ctx.setCurrentSite(r, sites[i])
	}
	value := func(n Node) []float64 {
		require.NoError(Te, n.Execute(ctx))
		v, err := ctx.Value(Ref(n))
		require.NoError(Te, err)
		return v
	}
	assert.InDelta(Te, 4.0, value(dist)[0], 1e-12)
	assert.InDelta(Te, 90.0, value(angle)[0], 1e-9)
	assert.InDelta(Te, 90.0, value(axes)[0], 1e-9)
	assert.InDelta(Te, 180.0, value(axesYX)[0], 1e-9)
	axesYX.SetSymmetric(true)
	assert.InDelta(Te, 0.0, value(axesYX)[0], 1e-9)
	assert.InDeltaSlice(Te, []float64{4, 0, 0}, value(vec), 1e-12)
	//(-4, 0, 0) in the frame of the second water
	assert.InDeltaSlice(Te, []float64{0, 4, 0}, value(rot), 1e-12)
	assert.Equal(Te, 3, vec.Dimensionality())
	assert.Equal(Te, 3, angle.NSites())

	//the COM site has no frame
	com, err := cfg.SiteStack(sp, "COM")
	require.NoError(Te, err)
	ctx.setCurrentSite(sel[1], com[1])
	assert.ErrorContains(Te, rot.Execute(ctx), "no axes")
	assert.ErrorContains(Te, axes.Execute(ctx), "no axes")
}

func TestDynamicSite(Te *testing.T) {
	sp := water(Te)
	cfg := randomWaters(Te, sp, 5, 10, 3)
	D := NewDynamicSite("h")
	assert.Error(Te, D.AddElements("Xx"))
	require.NoError(Te, D.AddElements("H"))
	sites := D.Sites(cfg)
	require.Len(Te, sites, 10)
	assert.Equal(Te, 1, sites[0].Atom)
	assert.Equal(Te, 0, sites[1].Molecule)
	assert.Equal(Te, cfg.Coords.Vec(4), sites[2].Origin.Vec(0))
	D.AddAtomTypes("OW")
	assert.Len(Te, D.Sites(cfg), 15)

	P := New(AnalysisContext, "dyn")
	S := NewSelect("H")
	refS, err := P.Root().Add(S)
	require.NoError(Te, err)
	hw := NewDynamicSite("h")
	hw.AddAtomTypes("HW")
	_, err = S.DynamicSites().Add(hw)
	require.NoError(Te, err)
	_, err = S.ForEach().Add(NewDynamicSite("wrong"))
	assert.ErrorContains(Te, err, "not allowed")

	//H sites in the same molecule as the current O
	O := NewSelect("O")
	require.NoError(Te, O.AddSite(sp, "O"))
	refO, err := P.Root().Add(O)
	require.NoError(Te, err)
	Hs := NewSelect("Hs")
	_, err = O.ForEach().Add(Hs)
	require.NoError(Te, err)
	hs := NewDynamicSite("hs")
	require.NoError(Te, hs.AddElements("H"))
	_, err = Hs.DynamicSites().Add(hs)
	require.NoError(Te, err)
	Hs.SetSameMoleculeAsSite(refO)

	ctx := NewContext(cfg, nil, nil, "", nil)
	require.NoError(Te, P.Execute(ctx))
	st, err := P.Node(refS).(*Select).Stats(ctx)
	require.NoError(Te, err)
	assert.Equal(Te, 10, st.NCumulative)
	st, err = Hs.Stats(ctx)
	require.NoError(Te, err)
	assert.Equal(Te, SiteStats{NSelections: 5, NAvailable: 50, NCumulative: 10}, *st)
	assert.Equal(Te, 2.0, st.AverageSites())
}

func TestReferenceSiteRange(Te *testing.T) {
	sp := water(Te)
	box, err := dissolve.NewCubicBox(20)
	require.NoError(Te, err)
	cfg := dissolve.NewConfiguration("line", box)
	for _, x := range []float64{1, 3, 6, 10} {
		addWater(Te, cfg, sp, [3]float64{x, 1, 1}, hAlongX, hInXY)
	}
	P := New(AnalysisContext, "range")
	A := NewSelect("A")
	require.NoError(Te, A.AddSite(sp, "O"))
	refA, err := P.Root().Add(A)
	require.NoError(Te, err)
	B := NewSelect("B")
	require.NoError(Te, B.AddSite(sp, "O"))
	B.SetExcludeSameSite(refA)
	B.SetReferenceSite(refA, 2, 5)
	_, err = A.ForEach().Add(B)
	require.NoError(Te, err)

	ctx := NewContext(cfg, nil, nil, "", nil)
	require.NoError(Te, P.Execute(ctx))
	st, err := B.Stats(ctx)
	require.NoError(Te, err)
	//pairs 2, 3, 4 and 5 A apart: 1-3, 1-6, 3-6, 6-10, 10-6, 6-3, 6-1, 3-1
	assert.Equal(Te, 8, st.NCumulative)
	assert.Equal(Te, 16, st.NAvailable)
}

func TestOperateNodes(Te *testing.T) {
	box, err := dissolve.NewCubicBox(10)
	require.NoError(Te, err)
	P := New(AnalysisContext, "op")
	refA, err := P.Root().Add(NewSelect("A"))
	require.NoError(Te, err)
	ctx := NewContext(dissolve.NewConfiguration("empty", box), nil, nil, "op", nil)
	ctx.begin(P)
	genericlist.Set(ctx.List, "A", "op", &SiteStats{NSelections: 2, NCumulative: 10})

	newData := func() *data.Data1D {
		D := data.NewData1D("d")
		D.AddPoint(0.5, 1)
		D.AddPoint(1.5, -2)
		D.AddPoint(2.5, 3)
		return D
	}
	run := func(n Node) (*data.Data1D, error) {
		ctx.operand = newData()
		err := n.Execute(ctx)
		return ctx.operand, err
	}

	D, err := run(NewOperateNormalise("n", 3))
	require.NoError(Te, err)
	assert.InDeltaSlice(Te, []float64{0.5, -1, 1.5}, D.Values(), 1e-12)
	D, err = run(NewOperateMultiply("m", 2))
	require.NoError(Te, err)
	assert.InDeltaSlice(Te, []float64{2, -4, 6}, D.Values(), 1e-12)
	D, err = run(NewOperateDivide("d", 4))
	require.NoError(Te, err)
	assert.InDeltaSlice(Te, []float64{0.25, -0.5, 0.75}, D.Values(), 1e-12)
	_, err = run(NewOperateDivide("d", 0))
	assert.ErrorContains(Te, err, "division by zero")
	D, err = run(NewOperateSitePopulationNormalise("s", refA))
	require.NoError(Te, err)
	assert.InDeltaSlice(Te, []float64{0.2, -0.4, 0.6}, D.Values(), 1e-12)
	D, err = run(NewOperateNumberDensityNormalise("r", refA))
	require.NoError(Te, err)
	assert.InDeltaSlice(Te, []float64{200, -400, 600}, D.Values(), 1e-9)
	D, err = run(NewOperateSphericalShellNormalise("sh"))
	require.NoError(Te, err)
	shell := func(lo, hi float64) float64 { return 4.0 / 3.0 * math.Pi * (hi*hi*hi - lo*lo*lo) }
	assert.InDeltaSlice(Te, []float64{1 / shell(0, 1), -2 / shell(1, 2), 3 / shell(2, 3)}, D.Values(), 1e-12)

	genericlist.Set(ctx.List, "A", "op", &SiteStats{NSelections: 2})
	_, err = run(NewOperateSitePopulationNormalise("s", refA))
	assert.ErrorContains(Te, err, "selected no sites")

	//a zero sum is left alone, with a warning
	core, logs := observer.New(zap.WarnLevel)
	ctx.Msg = messenger.NewFromZap(zap.New(core))
	ctx.operand = data.NewData1D("zero")
	ctx.operand.AddPoint(0, 0)
	require.NoError(Te, NewOperateNormalise("n", 1).Execute(ctx))
	assert.Equal(Te, 1, logs.FilterMessageSnippet("can't be normalised").Len())

	ctx.operand = nil
	assert.ErrorContains(Te, NewOperateMultiply("m", 2).Execute(ctx), "no data")
}

func TestRemoveSpecies(Te *testing.T) {
	w, ar := water(Te), argon(Te)
	env := SpeciesList{w, ar}
	cfg := randomWaters(Te, w, 2, 10, 5)
	for i := 0; i < 3; i++ {
		_, err := cfg.AddMolecule(ar, v3.NewVec(float64(i), 1, 1))
		require.NoError(Te, err)
	}
	text := "RemoveSpecies  strip\n  Species  water\nEndRemoveSpecies\n"
	_, err := readProcedure(Te, AnalysisContext, text, env)
	assert.ErrorContains(Te, err, "not allowed")
	P, err := readProcedure(Te, GenerationContext, text, env)
	require.NoError(Te, err)
	assert.Equal(Te, "RemoveSpecies  'strip'\n  Species  'water'\nEndRemoveSpecies\n", writeProcedure(Te, P))

	core, logs := observer.New(zap.InfoLevel)
	ctx := NewContext(cfg, nil, nil, "", messenger.NewFromZap(zap.New(core)))
	require.NoError(Te, P.Execute(ctx))
	assert.Len(Te, cfg.Molecules, 3)
	assert.Equal(Te, 3, cfg.NAtoms())
	assert.Equal(Te, 0, cfg.SpeciesPopulation(w))
	assert.Equal(Te, 1, logs.FilterMessageSnippet("removed 2 molecules").Len())
}

// gOfR runs the RDF procedure over frames, on the given pool, returning the
// processed data.
func gOfR(Te *testing.T, sp *dissolve.Species, pool procpool.Pool, frames []int64) (*data.Data1D, error) {
	P, err := readProcedure(Te, AnalysisContext, rdfText, SpeciesList{sp})
	if err != nil {
		return nil, err
	}
	ctx := NewContext(nil, pool, nil, "rdf", nil)
	for _, f := range frames {
		ctx.Config = randomWaters(Te, sp, 200, 20, f)
		if err := P.Execute(ctx); err != nil {
			return nil, err
		}
	}
	if err := P.Complete(ctx); err != nil {
		return nil, err
	}
	ref, err := P.Find("RDF", Process1DNode)
	if err != nil {
		return nil, err
	}
	return P.Node(ref).(*Process1D).Data(ctx)
}

func TestRDFUniform(Te *testing.T) {
	sp := water(Te)
	g, err := gOfR(Te, sp, nil, []int64{1, 2, 3, 4})
	require.NoError(Te, err)
	require.Equal(Te, 32, g.NValues())
	sum, n := 0.0, 0
	for i, r := range g.X() {
		if r < 4 || r > 7.5 {
			continue
		}
		assert.InDelta(Te, 1.0, g.Values()[i], 0.2, "r=%g", r)
		sum += g.Values()[i]
		n++
	}
	assert.InDelta(Te, 1.0, sum/float64(n), 0.05)
}

func TestRDFParallel(Te *testing.T) {
	sp := water(Te)
	frames := []int64{1, 2, 3, 4}
	serial, err := gOfR(Te, sp, nil, frames)
	require.NoError(Te, err)

	G := procpool.NewGroup(2)
	res := make([]*data.Data1D, G.Size())
	err = G.Run(func(p procpool.Pool) error {
		var mine []int64
		for i := p.Rank(); i < len(frames); i += p.NRanks() {
			mine = append(mine, frames[i])
		}
		g, err := gOfR(Te, sp, p, mine)
		res[p.Rank()] = g
		return err
	})
	require.NoError(Te, err)
	for _, g := range res {
		assert.InDeltaSlice(Te, serial.Values(), g.Values(), 1e-9)
		assert.InDeltaSlice(Te, serial.Errors(), g.Errors(), 1e-9)
	}
}

func TestRDFIdleRanks(Te *testing.T) {
	sp := water(Te)
	frames := []int64{7, 8}
	serial, err := gOfR(Te, sp, nil, frames)
	require.NoError(Te, err)

	//rank 2 gets no frames, so its histogram only exists after Complete
	G := procpool.NewGroup(3)
	res := make([]*data.Data1D, G.Size())
	err = G.Run(func(p procpool.Pool) error {
		var mine []int64
		for i := p.Rank(); i < len(frames); i += p.NRanks() {
			mine = append(mine, frames[i])
		}
		g, err := gOfR(Te, sp, p, mine)
		res[p.Rank()] = g
		return err
	})
	require.NoError(Te, err)
	for r, g := range res {
		require.NotNil(Te, g, "rank %d", r)
		assert.InDeltaSlice(Te, serial.Values(), g.Values(), 1e-9, "rank %d", r)
		assert.InDeltaSlice(Te, serial.Errors(), g.Errors(), 1e-9, "rank %d", r)
	}
}

func TestProcess1DExport(Te *testing.T) {
	sp := water(Te)
	P, refs := buildRDF(Te, sp)
	dir := Te.TempDir()
	proc1 := P.Node(refs["p"]).(*Process1D)
	proc1.SetLabels("r", "N")
	proc1.SetExport(filepath.Join(dir, "p.txt"), filepath.Join(dir, "p.png"))

	core, logs := observer.New(zap.InfoLevel)
	ctx := NewContext(pair(Te, sp), nil, nil, "", messenger.NewFromZap(zap.New(core)))
	require.NoError(Te, P.Execute(ctx))
	require.NoError(Te, P.Complete(ctx))
	assert.Equal(Te, 1, logs.FilterMessageSnippet("Exported p").Len())

	b, err := os.ReadFile(filepath.Join(dir, "p.txt"))
	require.NoError(Te, err)
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	require.Len(Te, lines, 11)
	assert.Equal(Te, "# r  N  Error", lines[0])
	assert.True(Te, strings.HasPrefix(lines[5], "2.2500000000e+00  1.0000000000e+00"), lines[5])
	_, err = os.Stat(filepath.Join(dir, "p.png"))
	assert.NoError(Te, err)

	proc1.SetExport(filepath.Join(dir, "missing", "p.txt"), "")
	assert.Error(Te, P.Complete(ctx))
}
