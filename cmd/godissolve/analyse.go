/*
 * analyse.go, part of godissolve.
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
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	dissolve "github.com/rmera/godissolve"
	"github.com/rmera/godissolve/config"
	"github.com/rmera/godissolve/ff"
	"github.com/rmera/godissolve/genericlist"
	"github.com/rmera/godissolve/grotop"
	"github.com/rmera/godissolve/lineparser"
	"github.com/rmera/godissolve/messenger"
	"github.com/rmera/godissolve/procedure"
	"github.com/rmera/godissolve/procpool"
	"github.com/rmera/godissolve/traj/dcd"
	"github.com/rmera/godissolve/traj/xyz"
	v3 "github.com/rmera/godissolve/v3"
)

type analyseOptions struct {
	configPath string
	ranks      int
	logLevel   string
}

func newAnalyseCommand() *cobra.Command {
	opts := &analyseOptions{}
	cmd := &cobra.Command{
		Use:   "analyse",
		Short: "Run an analysis procedure over a trajectory",
		Long: "Reads the analysis configuration, builds the species and the configuration\n" +
			"described in it, and runs its procedure over the selected trajectory frames,\n" +
			"split among the given number of ranks.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyse(opts)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.configPath, "config", "c", "", "analysis configuration file (TOML)")
	f.IntVarP(&opts.ranks, "ranks", "n", 0, "number of ranks, overrides the configuration")
	f.StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error), overrides the configuration")
	cmd.MarkFlagRequired("config")
	return cmd
}

func runAnalyse(opts *analyseOptions) error {
	A, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if opts.ranks > 0 {
		A.Ranks = opts.ranks
	}
	if opts.logLevel != "" {
		A.Log.Level = opts.logLevel
	}
	msg, err := messenger.New(A.Log)
	if err != nil {
		return err
	}
	defer msg.Sync()
	species, err := A.BuildSpecies(msg)
	if err != nil {
		return err
	}
	if A.ITPDir != "" {
		if err := writeITPs(A, species, msg); err != nil {
			return err
		}
	}
	run := func(pool procpool.Pool) error {
		return analyseRank(A, species, pool, msg)
	}
	if A.Ranks == 1 {
		return run(procpool.Serial{})
	}
	msg.Print("Running on %d ranks", A.Ranks)
	return procpool.NewGroup(A.Ranks).Run(run)
}

func writeITPs(A *config.Analysis, species []*dissolve.Species, msg *messenger.Messenger) error {
	var F *ff.Forcefield
	if A.Forcefield != "" {
		var err error
		if F, err = ff.Get(A.Forcefield); err != nil {
			return err
		}
	}
	if err := os.MkdirAll(A.ITPDir, 0o755); err != nil {
		return err
	}
	for _, sp := range species {
		name := filepath.Join(A.ITPDir, sp.Name+".itp")
		if err := grotop.WriteSpeciesFile(name, sp, F); err != nil {
			return err
		}
		msg.Print("Wrote topology of %s to %s", sp.Name, name)
	}
	return nil
}

func readProcedure(name string, species []*dissolve.Species) (*procedure.Procedure, error) {
	P, err := lineparser.Open(name)
	if err != nil {
		return nil, err
	}
	defer P.Close()
	return procedure.Read(P, procedure.AnalysisContext, filepath.Base(name), procedure.SpeciesList(species))
}

type trajectory interface {
	dissolve.Traj
	Close()
}

// openTrajectory opens a DCD or XYZ trajectory, depending on the extension of name.
// Only XYZ trajectories give the element symbols of the atoms.
func openTrajectory(name string) (trajectory, []string, error) {
	if strings.HasSuffix(strings.ToLower(name), ".dcd") {
		traj, err := dcd.New(name)
		if err != nil {
			return nil, nil, err
		}
		return traj, nil, nil
	}
	traj, err := xyz.New(name)
	if err != nil {
		return nil, nil, err
	}
	return traj, traj.Symbols(), nil
}

// frameBox returns the box given by the lattice of a frame or, if the frame has
// no lattice, the default box def.
func frameBox(lattice []float64, def *dissolve.Box) (*dissolve.Box, error) {
	if lattice[0] != 0 || lattice[4] != 0 || lattice[8] != 0 {
		return dissolve.NewBoxFromVectors(lattice)
	}
	if def == nil {
		return nil, fmt.Errorf("no lattice, and no box was given")
	}
	return def, nil
}

// analyseRank runs the procedure on the frames that belong to the rank: the selected
// frames are dealt to the ranks in turn. Each rank reads the trajectory, and the
// procedure, on its own.
func analyseRank(A *config.Analysis, species []*dissolve.Species, pool procpool.Pool, parent *messenger.Messenger) error {
	msg := messenger.NewFromZap(parent.Logger())
	msg.SetRank(pool.Rank())
	box, err := A.DefaultBox()
	if err != nil {
		return err
	}
	cfg, err := A.BuildConfiguration(species, box)
	if err != nil {
		return err
	}
	proc, err := readProcedure(A.Procedure, species)
	if err != nil {
		return err
	}
	traj, symbols, err := openTrajectory(A.Trajectory)
	if err != nil {
		return err
	}
	defer traj.Close()
	if traj.Len() != cfg.NAtoms() {
		return fmt.Errorf("trajectory %s has %d atoms, the configuration %d", A.Trajectory, traj.Len(), cfg.NAtoms())
	}
	for i, s := range symbols {
		if _, at := cfg.Atom(i); at.Symbol != s {
			return fmt.Errorf("atom %d is %s in the trajectory, but %s in the configuration", i+1, s, at.Symbol)
		}
	}

	ctx := procedure.NewContext(cfg, pool, genericlist.New(), A.Prefix, msg)
	coords := v3.Zeros(cfg.NAtoms())
	lattice := make([]float64, 9)
	selected, mine := 0, 0
	for i := 0; A.Frames.End == 0 || i < A.Frames.End; i++ {
		use := A.Frames.Selected(i) && selected%pool.NRanks() == pool.Rank()
		if A.Frames.Selected(i) {
			selected++
		}
		var c *v3.Matrix
		if use {
			c = coords
		}
		clear(lattice)
		if err := traj.Next(c, lattice); err != nil {
			var last dissolve.LastFrameError
			if errors.As(err, &last) {
				break
			}
			return err
		}
		if !use {
			continue
		}
		if cfg.Box, err = frameBox(lattice, box); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		if err := cfg.SetCoords(coords); err != nil {
			return err
		}
		if err := proc.Execute(ctx); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		mine++
	}
	if selected == 0 {
		return fmt.Errorf("no frames selected from %s", A.Trajectory)
	}
	msg.Debug("Analysed %d frames", mine)
	msg.Print("Analysed %d frames of %s", selected, A.Trajectory)
	return proc.Complete(ctx)
}
