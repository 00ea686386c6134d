/*
 * doc.go, part of godissolve.
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

/*
Package dissolve is the main package of the godissolve library. It provides
species (molecule definitions with their intramolecular terms and sites),
configurations (periodic boxes populated with molecules), the functional forms
of the interactions and the periodic geometry used by the analysis procedures.

	**godissolve packages**

	ff: forcefields, atom types, term tables and wildcard term matching.

	procedure: node-based analysis procedures executed frame by frame.

	chemstat, broadening, histo, data, bragg: statistics, broadening
	kernels, histograms, datasets and structure-factor reflections.

	procpool: the process pool the parallel parts of the library run on.

	lineparser: the record reader and writer for the library's text formats.

	traj/xyz, traj/dcd: multi-frame XYZ and DCD trajectories.

	config: the TOML description of an analysis.

	chemgraph: molecular graphs, used to generate angles, torsions and impropers.

	grotop: GROMACS topology export and import.

Coordinates are kept in v3.Matrix values, one row per atom. Distances are in
Angstrom, angles in degrees and energies in kJ/mol unless stated otherwise.
*/
package dissolve
