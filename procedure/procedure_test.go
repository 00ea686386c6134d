/*
 * procedure_test.go, part of godissolve.
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
	"bytes"
	"math/rand"
	"strings"
	"testing"

	dissolve "github.com/rmera/godissolve"
	"github.com/rmera/godissolve/lineparser"
	v3 "github.com/rmera/godissolve/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// water returns a water species with an "O" site (with axes) and a "COM" site.
func water(Te *testing.T) *dissolve.Species {
	sp := dissolve.NewSpecies("water")
	sp.AddAtom("O", "OW", "OW", -0.82)
	sp.AddAtom("H", "HW1", "HW", 0.41)
	sp.AddAtom("H", "HW2", "HW", 0.41)
	for _, b := range [][2]int{{0, 1}, {0, 2}} {
		_, err := sp.AddBond(b[0], b[1])
		require.NoError(Te, err)
	}
	require.NoError(Te, sp.AddSite(&dissolve.SpeciesSite{Name: "O", Origin: []int{0}, XAxis: []int{1}, YAxis: []int{2}}))
	require.NoError(Te, sp.AddSite(&dissolve.SpeciesSite{Name: "COM", Origin: []int{0, 1, 2}, MassWeighted: true}))
	return sp
}

func argon(Te *testing.T) *dissolve.Species {
	sp := dissolve.NewSpecies("argon")
	sp.AddAtom("Ar", "Ar", "Ar", 0)
	require.NoError(Te, sp.AddSite(&dissolve.SpeciesSite{Name: "Ar", Origin: []int{0}}))
	return sp
}

// addWater adds a water molecule with its oxygen at o, and the hydrogens along
// the directions h1 and h2.
func addWater(Te *testing.T, cfg *dissolve.Configuration, sp *dissolve.Species, o, h1, h2 [3]float64) {
	c := v3.Zeros(3)
	c.SetVec(0, o)
	c.SetVec(1, [3]float64{o[0] + h1[0], o[1] + h1[1], o[2] + h1[2]})
	c.SetVec(2, [3]float64{o[0] + h2[0], o[1] + h2[1], o[2] + h2[2]})
	_, err := cfg.AddMolecule(sp, c)
	require.NoError(Te, err)
}

var (
	hAlongX = [3]float64{0.96, 0, 0}
	hInXY   = [3]float64{-0.24, 0.93, 0}
)

// randomWaters returns a configuration with n water molecules placed at random
// in a cubic box.
func randomWaters(Te *testing.T, sp *dissolve.Species, n int, l float64, seed int64) *dissolve.Configuration {
	box, err := dissolve.NewCubicBox(l)
	require.NoError(Te, err)
	cfg := dissolve.NewConfiguration("random", box)
	rng := rand.New(rand.NewSource(seed))
	for i := 0; i < n; i++ {
		o := [3]float64{rng.Float64() * l, rng.Float64() * l, rng.Float64() * l}
		addWater(Te, cfg, sp, o, hAlongX, hInXY)
	}
	return cfg
}

func readProcedure(Te *testing.T, ctx ContextType, text string, env Environment) (*Procedure, error) {
	Te.Helper()
	return Read(lineparser.NewParser(strings.NewReader(text), "test"), ctx, "test", env)
}

func writeProcedure(Te *testing.T, P *Procedure) string {
	Te.Helper()
	var buf bytes.Buffer
	W := lineparser.NewWriter(&buf)
	require.NoError(Te, P.Write(W))
	require.NoError(Te, W.Flush())
	return buf.String()
}

func TestSequenceAdd(Te *testing.T) {
	P := New(AnalysisContext, "test")
	A := NewSelect("")
	refA, err := P.Root().Add(A)
	require.NoError(Te, err)
	assert.Equal(Te, "Select01", A.Name())
	assert.Equal(Te, refA, Ref(A))
	assert.Equal(Te, AnalysisContext, A.ForEach().Context())

	_, err = P.Root().Add(A)
	assert.ErrorContains(Te, err, "already in the procedure")
	_, err = P.Root().Add(NewSelect("Select01"))
	assert.ErrorContains(Te, err, "already exists")
	_, err = P.Root().Add(NewOperateMultiply("m", 2))
	assert.ErrorContains(Te, err, "not allowed")
	_, err = P.Root().Add(NewRemoveSpecies("rm"))
	assert.ErrorContains(Te, err, "not allowed")

	loose := NewSelect("loose")
	_, err = loose.ForEach().Add(NewSelect("inner"))
	assert.Error(Te, err)

	B := NewSelect("")
	_, err = A.ForEach().Add(B)
	require.NoError(Te, err)
	assert.Equal(Te, "Select02", B.Name())

	proc1 := NewProcess1D("p", NoNode)
	_, err = P.Root().Add(proc1)
	require.NoError(Te, err)
	assert.Equal(Te, OperateContext, proc1.Normalisation().Context())
	_, err = proc1.Normalisation().Add(NewOperateMultiply("m", 2))
	assert.NoError(Te, err)
	_, err = proc1.Normalisation().Add(NewSelect("s"))
	assert.ErrorContains(Te, err, "not allowed")
	assert.Equal(Te, 4, P.NNodes())

	G := New(GenerationContext, "gen")
	_, err = G.Root().Add(NewRemoveSpecies("rm"))
	assert.NoError(Te, err)
	_, err = G.Root().Add(NewCalculateDistance("d", NoNode, NoNode))
	assert.ErrorContains(Te, err, "not allowed")
}

// buildRDF builds, in code, an A-B distance histogram over the O sites of sp,
// processed by Process1D "p" with a normalisation node "n".
func buildRDF(Te *testing.T, sp *dissolve.Species) (*Procedure, map[string]NodeRef) {
	P := New(AnalysisContext, "rdf")
	refs := map[string]NodeRef{}
	add := func(S *Sequence, n Node) {
		r, err := S.Add(n)
		require.NoError(Te, err)
		refs[n.Name()] = r
	}
	A := NewSelect("A")
	require.NoError(Te, A.AddSite(sp, "O"))
	add(P.Root(), A)
	B := NewSelect("B")
	require.NoError(Te, B.AddSite(sp, "O"))
	B.SetExcludeSameMolecule(refs["A"])
	add(A.ForEach(), B)
	add(B.ForEach(), NewCalculateDistance("d", refs["A"], refs["B"]))
	add(B.ForEach(), NewCollect1D("c", refs["d"], 0, 5, 0.5))
	proc1 := NewProcess1D("p", refs["c"])
	add(P.Root(), proc1)
	add(proc1.Normalisation(), NewOperateSitePopulationNormalise("n", refs["A"], refs["B"]))
	return P, refs
}

func TestFindAndRemove(Te *testing.T) {
	sp := water(Te)
	P, refs := buildRDF(Te, sp)

	r, err := P.Find("d", CalculateDistanceNode)
	require.NoError(Te, err)
	assert.Equal(Te, refs["d"], r)
	_, err = P.Find("d", SelectNode)
	assert.ErrorIs(Te, err, ErrNodeType)
	_, err = P.Find("nothing")
	assert.ErrorIs(Te, err, ErrNodeNotFound)

	r, err = P.FindInScope("A", refs["d"], SelectNode)
	require.NoError(Te, err)
	assert.Equal(Te, refs["A"], r)
	r, err = P.FindInScope("B", refs["d"])
	require.NoError(Te, err)
	assert.Equal(Te, refs["B"], r)
	r, err = P.FindInScope("d", refs["c"])
	require.NoError(Te, err)
	assert.Equal(Te, refs["d"], r)
	_, err = P.FindInScope("c", refs["d"])
	assert.ErrorIs(Te, err, ErrNodeNotFound)
	_, err = P.FindInScope("B", refs["p"])
	assert.ErrorIs(Te, err, ErrNodeNotFound)

	B := P.Node(refs["B"]).(*Select)
	require.NoError(Te, P.Remove(refs["B"]))
	assert.Equal(Te, 3, P.NNodes())
	for _, name := range []string{"B", "d", "c"} {
		assert.Nil(Te, P.Node(refs[name]), name)
		_, err = P.Find(name)
		assert.ErrorIs(Te, err, ErrNodeNotFound, name)
	}
	assert.Equal(Te, NoNode, Ref(B))
	assert.Equal(Te, 0, B.ForEach().Len())
	assert.Equal(Te, 0, P.Node(refs["A"]).(*Select).ForEach().Len())
	assert.Equal(Te, NoNode, P.Node(refs["p"]).(*Process1D).source)
	assert.Equal(Te, []NodeRef{refs["A"]}, P.Node(refs["n"]).(*OperateSitePopulationNormalise).sites)
	assert.ErrorIs(Te, P.Remove(refs["B"]), ErrNodeNotFound)

	//a removed node can be added again
	_, err = P.Root().Add(B)
	assert.NoError(Te, err)
}

const rdfText = `
# O-O radial distribution function
Select  A
  Site  water  O
  ForEach
    Select  B
      Site  water  O
      ExcludeSameMolecule  A
      ForEach
        CalculateDistance  rAB
          I  A
          J  B
        EndCalculateDistance
        Collect1D  histo
          QuantityX  rAB
          RangeX  0.0  8.0  0.25
        EndCollect1D
      EndForEach
    EndSelect
  EndForEach
EndSelect
Process1D  RDF
  SourceData  histo
  LabelValue  g(r)
  LabelX  r
  Normalisation
    OperateSitePopulationNormalise
      Site  A
    EndOperateSitePopulationNormalise
    OperateNumberDensityNormalise
      Site  B
    EndOperateNumberDensityNormalise
    OperateSphericalShellNormalise
    EndOperateSphericalShellNormalise
  EndNormalisation
EndProcess1D
EndProcedure
`

const fullText = `
Select  A
  Site  water  O
  ForEach
    Select  B
      DynamicSite  dyn
        Element  H
        AtomType  OW
      EndDynamicSite
      ExcludeSameMolecule  A
      ReferenceSite  A
      InclusiveRange  0.5  5
      ForEach
        CalculateVector  v
          I  A
          J  B
          RotateIntoFrame  true
        EndCalculateVector
        Collect1D  vz
          QuantityX  v  3
          RangeX  -5  5  0.1
        EndCollect1D
      EndForEach
    EndSelect
    Select  C
      Site  water  O
      ExcludeSameSite  A
      ForEach
        CalculateAxisAngle  axes
          I  A
          J  C
          AxisI  X
          AxisJ  Z
          Symmetric  true
        EndCalculateAxisAngle
        Collect1D  angles
          QuantityX  axes
          RangeX  0  90  1
        EndCollect1D
      EndForEach
    EndSelect
  EndForEach
EndSelect
Process1D  p
  SourceData  angles
  LabelValue  P
  LabelX  theta
  Normalisation
    OperateNormalise
      Value  2
    EndOperateNormalise
    OperateMultiply
      Value  3
    EndOperateMultiply
    OperateDivide
      Value  4
    EndOperateDivide
  EndNormalisation
  Broadening  Gaussian  0.5
  Export  angles.txt
EndProcess1D
`

func TestReadWrite(Te *testing.T) {
	env := SpeciesList{water(Te)}
	for _, text := range []string{rdfText, fullText} {
		P, err := readProcedure(Te, AnalysisContext, text, env)
		require.NoError(Te, err)
		out := writeProcedure(Te, P)
		Q, err := readProcedure(Te, AnalysisContext, out, env)
		require.NoError(Te, err, out)
		assert.Equal(Te, P.NNodes(), Q.NNodes())
		assert.Equal(Te, out, writeProcedure(Te, Q))
	}

	P, err := readProcedure(Te, AnalysisContext, fullText, env)
	require.NoError(Te, err)
	ref, err := P.Find("p", Process1DNode)
	require.NoError(Te, err)
	proc1 := P.Node(ref).(*Process1D)
	assert.Equal(Te, "theta", proc1.labelX)
	assert.Equal(Te, "angles.txt", proc1.export)
	require.NotNil(Te, proc1.broadening)
	assert.Equal(Te, []float64{0.5}, proc1.broadening.Params())
	assert.Equal(Te, 3, proc1.Normalisation().Len())
	ref, err = P.Find("vz", Collect1DNode)
	require.NoError(Te, err)
	assert.Equal(Te, 2, P.Node(ref).(*Collect1D).index)
	ref, err = P.Find("dyn", DynamicSiteNode)
	require.NoError(Te, err)
	dyn := P.Node(ref).(*DynamicSite)
	assert.Equal(Te, []string{"H"}, dyn.elements)
	assert.Equal(Te, []string{"OW"}, dyn.atomTypes)
}

func TestReadErrors(Te *testing.T) {
	env := SpeciesList{water(Te), argon(Te)}
	cases := []struct {
		name string
		text string
		msg  string
		is   error
	}{
		{"unknown node", "Frobnicate\nEndFrobnicate\n", "unknown node type", nil},
		{"unknown keyword", "Select  A\n  Colour  red\nEndSelect\n", "unrecognised keyword", nil},
		{"argument count", "Select  A\n  InclusiveRange  1\nEndSelect\n", "wrong number of arguments", nil},
		{"unknown species", "Select  A\n  Site  methanol  COM\nEndSelect\n", "no species named", nil},
		{"unknown site", "Select  A\n  Site  water  H7\nEndSelect\n", "has no site", nil},
		{"bad element", "Select  A\n  DynamicSite\n    Element  Xx\n  EndDynamicSite\nEndSelect\n", "unknown element", nil},
		{"unterminated", "Select  A\n  Site  water  O\n", "unexpected end of input", nil},
		{"context", "OperateMultiply\nEndOperateMultiply\n", "not allowed", nil},
		{"forward reference", "CalculateDistance  d\n  I  A\nEndCalculateDistance\nSelect  A\nEndSelect\n", "", ErrNodeNotFound},
		{"out of scope", "Select  A\n  ForEach\n    Select  B\n    EndSelect\n  EndForEach\nEndSelect\n" +
			"CalculateDistance  d\n  I  B\nEndCalculateDistance\n", "", ErrNodeNotFound},
		{"wrong type", "Select  A\n  ForEach\n    Collect1D  c\n      QuantityX  A\n    EndCollect1D\n  EndForEach\nEndSelect\n", "", ErrNodeType},
		{"bad range", "Select  A\n  ForEach\n    CalculateDistance  d\n      I  A\n      J  A\n    EndCalculateDistance\n" +
			"    Collect1D  c\n      QuantityX  d\n      RangeX  5  1  0.1\n    EndCollect1D\n  EndForEach\nEndSelect\n", "RangeX", nil},
		{"bad axis", "Select  A\n  ForEach\n    CalculateAxisAngle  x\n      AxisI  W\n    EndCalculateAxisAngle\n  EndForEach\nEndSelect\n", "not an axis", nil},
		{"duplicate name", "Select  A\nEndSelect\nSelect  A\nEndSelect\n", "already exists", nil},
		{"reference without range", "Select  A\n  ForEach\n    Select  B\n      Site  water  O\n      ReferenceSite  A\n" +
			"    EndSelect\n  EndForEach\nEndSelect\n", "without an InclusiveRange", nil},
	}
	for _, c := range cases {
		_, err := readProcedure(Te, AnalysisContext, c.text, env)
		require.Error(Te, err, c.name)
		if c.msg != "" {
			assert.ErrorContains(Te, err, c.msg, c.name)
		}
		if c.is != nil {
			assert.ErrorIs(Te, err, c.is, c.name)
		}
		assert.Contains(Te, err.Error(), "test:", c.name)
	}
}
