/*
 * main_test.go, part of godissolve.
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

package main

import (
	"bytes"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dissolve "github.com/rmera/godissolve"
	"github.com/rmera/godissolve/grotop"
	"github.com/rmera/godissolve/traj/dcd"
	"github.com/rmera/godissolve/traj/xyz"
	v3 "github.com/rmera/godissolve/v3"
)

func execute(Te *testing.T, args ...string) (string, error) {
	Te.Helper()
	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestFFList(Te *testing.T) {
	out, err := execute(Te, "ff", "list")
	require.NoError(Te, err)
	assert.Contains(Te, out, "SPC/Fw")
	assert.Contains(Te, out, "OPLSAA2005/Alcohols")
	assert.True(Te, strings.HasPrefix(out, "name"))
}

func TestFFLookup(Te *testing.T) {
	out, err := execute(Te, "ff", "lookup", "SPC/Fw", "bond", "HW", "OW")
	require.NoError(Te, err)
	assert.Equal(Te, "OW-HW  Harmonic  k=4431.53 eq=1.012\n", out)

	out, err = execute(Te, "ff", "lookup", "SPC/Fw", "angle", "HW", "OW", "HW")
	require.NoError(Te, err)
	assert.Contains(Te, out, "eq=113.24")

	out, err = execute(Te, "ff", "lookup", "OPLSAA2005", "bond", "135", "140")
	require.NoError(Te, err)
	assert.Equal(Te, "CT-HC  Harmonic  k=2845.12 eq=1.09\n", out)
	_, err = execute(Te, "ff", "lookup", "OPLSAA2005", "bond", "CT", "HC")
	assert.ErrorContains(Te, err, "use the numeric ID")

	cases := map[string][]string{
		"no forcefield":  {"ff", "lookup", "nope", "bond", "HW", "OW"},
		"kind":           {"ff", "lookup", "SPC/Fw", "pair", "HW", "OW"},
		"count":          {"ff", "lookup", "SPC/Fw", "angle", "HW", "OW"},
		"type":           {"ff", "lookup", "SPC/Fw", "bond", "HW", "CT"},
		"no term":        {"ff", "lookup", "SPC/Fw", "bond", "HW", "HW"},
		"too few args":   {"ff", "lookup", "SPC/Fw", "bond"},
		"missing config": {"analyse"},
	}
	for name, args := range cases {
		_, err := execute(Te, args...)
		assert.Error(Te, err, name)
	}
}

const analysisTOML = `
trajectory = "water.xyz"
procedure = "rdf.txt"
forcefield = "SPC/Fw"
itp_dir = "itp"

[log]
level = "warn"

[frames]
stride = %d

[[species]]
name = "Water"
bonds = [[0, 1], [0, 2]]

  [[species.atoms]]
  element = "O"
  type = "OW"

  [[species.atoms]]
  element = "H"
  type = "HW"

  [[species.atoms]]
  element = "H"
  type = "HW"

  [[species.sites]]
  name = "O"
  origin = [0]

[[molecules]]
species = "Water"
count = %d
`

const rdfProcedure = `
Select  A
  Site  Water  O
  ForEach
    Select  B
      Site  Water  O
      ExcludeSameMolecule  A
      ForEach
        CalculateDistance  rAB
          I  A
          J  B
        EndCalculateDistance
        Collect1D  histo
          QuantityX  rAB
          RangeX  0.0  6.0  0.5
        EndCollect1D
      EndForEach
    EndSelect
  EndForEach
EndSelect
Process1D  RDF
  SourceData  histo
  Export  %s
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
`

// setup writes a trajectory of n random waters, in XYZ and DCD formats, the procedure
// and the configuration to a temporary directory, and returns the names of the
// configuration and of the file the procedure exports to. Oxygen coordinates are
// exact in both formats.
func setup(Te *testing.T, n, frames, stride int) (string, string) {
	dir := Te.TempDir()
	symbols := make([]string, 0, 3*n)
	for i := 0; i < n; i++ {
		symbols = append(symbols, "O", "H", "H")
	}
	W, err := xyz.NewWriter(filepath.Join(dir, "water.xyz"), symbols)
	require.NoError(Te, err)
	D, err := dcd.NewWriter(filepath.Join(dir, "water.dcd"), 3*n)
	require.NoError(Te, err)
	rng := rand.New(rand.NewSource(7))
	l := 15.0
	box := []float64{l, 0, 0, 0, l, 0, 0, 0, l}
	for f := 0; f < frames; f++ {
		c := v3.Zeros(3 * n)
		for i := 0; i < n; i++ {
			var o [3]float64
			for j := range o {
				o[j] = math.Round(rng.Float64()*l*64) / 64
			}
			c.SetVec(3*i, o)
			c.SetVec(3*i+1, [3]float64{o[0] + 0.96, o[1], o[2]})
			c.SetVec(3*i+2, [3]float64{o[0] - 0.24, o[1] + 0.93, o[2]})
		}
		require.NoError(Te, W.WNext(c, box))
		require.NoError(Te, D.WNext(c, box))
	}
	require.NoError(Te, W.Close())
	require.NoError(Te, D.Close())

	export := filepath.Join(dir, "rdf.dat")
	require.NoError(Te, os.WriteFile(filepath.Join(dir, "rdf.txt"), []byte(fmt.Sprintf(rdfProcedure, export)), 0o644))
	cfg := filepath.Join(dir, "analysis.toml")
	require.NoError(Te, os.WriteFile(cfg, []byte(fmt.Sprintf(analysisTOML, stride, n)), 0o644))
	return cfg, export
}

func readColumns(Te *testing.T, name string) [][]float64 {
	b, err := os.ReadFile(name)
	require.NoError(Te, err)
	var ret [][]float64
	for _, line := range strings.Split(strings.TrimSpace(string(b)), "\n") {
		if strings.HasPrefix(line, "#") {
			continue
		}
		var row []float64
		for _, f := range strings.Fields(line) {
			v, err := strconv.ParseFloat(f, 64)
			require.NoError(Te, err)
			row = append(row, v)
		}
		ret = append(ret, row)
	}
	return ret
}

func TestAnalyse(Te *testing.T) {
	cfg, export := setup(Te, 100, 4, 1)
	_, err := execute(Te, "analyse", "-c", cfg)
	require.NoError(Te, err)
	serial := readColumns(Te, export)
	require.Len(Te, serial, 12)

	T, err := grotop.ReadFile(filepath.Join(filepath.Dir(cfg), "itp", "Water.itp"))
	require.NoError(Te, err)
	assert.Len(Te, T.Bonds, 2)

	//random uncorrelated waters: g(r) close to 1 where there are enough pairs
	for _, row := range serial[8:] {
		assert.InDelta(Te, 1, row[1], 0.25, "r=%g", row[0])
	}

	require.NoError(Te, os.Remove(export))
	_, err = execute(Te, "analyse", "-c", cfg, "-n", "3")
	require.NoError(Te, err)
	parallel := readColumns(Te, export)
	require.Len(Te, parallel, len(serial))
	for i := range serial {
		assert.InDeltaSlice(Te, serial[i], parallel[i], 1e-8)
	}
}

func TestAnalyseIdleRanks(Te *testing.T) {
	cfg, export := setup(Te, 60, 2, 1)
	_, err := execute(Te, "analyse", "-c", cfg)
	require.NoError(Te, err)
	serial := readColumns(Te, export)

	require.NoError(Te, os.Remove(export))
	_, err = execute(Te, "analyse", "-c", cfg, "-n", "4")
	require.NoError(Te, err)
	parallel := readColumns(Te, export)
	require.Len(Te, parallel, len(serial))
	for i := range serial {
		assert.InDeltaSlice(Te, serial[i], parallel[i], 1e-8)
	}
}

func TestFrameBox(Te *testing.T) {
	def, err := dissolve.NewCubicBox(20)
	require.NoError(Te, err)
	lattice := []float64{15, 0, 0, 0, 15, 0, 0, 0, 15}
	none := make([]float64, 9)

	//a frame without a lattice falls back to the configured box, whatever came before
	for _, l := range [][]float64{lattice, none, lattice, none} {
		b, err := frameBox(l, def)
		require.NoError(Te, err)
		if l[0] == 0 {
			assert.Same(Te, def, b)
		} else {
			assert.InDelta(Te, 3375, b.Volume(), 1e-9)
		}
	}
	_, err = frameBox(none, nil)
	assert.ErrorContains(Te, err, "no box")
	b, err := frameBox(lattice, nil)
	require.NoError(Te, err)
	assert.InDelta(Te, 3375, b.Volume(), 1e-9)
}

func TestAnalyseDCD(Te *testing.T) {
	cfg, export := setup(Te, 50, 3, 1)
	_, err := execute(Te, "analyse", "-c", cfg)
	require.NoError(Te, err)
	fromXYZ := readColumns(Te, export)

	b, err := os.ReadFile(cfg)
	require.NoError(Te, err)
	require.NoError(Te, os.WriteFile(cfg, bytes.Replace(b, []byte("water.xyz"), []byte("water.dcd"), 1), 0o644))
	require.NoError(Te, os.Remove(export))
	_, err = execute(Te, "analyse", "-c", cfg, "-n", "2")
	require.NoError(Te, err)
	fromDCD := readColumns(Te, export)
	require.Len(Te, fromDCD, len(fromXYZ))
	for i := range fromXYZ {
		assert.InDeltaSlice(Te, fromXYZ[i], fromDCD[i], 1e-8)
	}
}

func TestAnalyseStride(Te *testing.T) {
	cfg, export := setup(Te, 20, 5, 2)
	_, err := execute(Te, "analyse", "-c", cfg, "--log-level", "error")
	require.NoError(Te, err)
	assert.Len(Te, readColumns(Te, export), 12)
}

func TestAnalyseMismatch(Te *testing.T) {
	cfg, _ := setup(Te, 20, 1, 1)
	b, err := os.ReadFile(cfg)
	require.NoError(Te, err)
	wrong := strings.Replace(string(b), "count = 20", "count = 19", 1)
	require.NoError(Te, os.WriteFile(cfg, []byte(wrong), 0o644))
	_, err = execute(Te, "analyse", "-c", cfg)
	assert.ErrorContains(Te, err, "has 60 atoms")
}
