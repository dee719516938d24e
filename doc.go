/*
 * doc.go, part of gostates.
 *
 * Copyright 2026 Raul Mera <rmera{at}usachDOTcl>
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

/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

/*Package chem is the main package of the gostates library. It provides the atom, topology
and trajectory structures that the rest of the library works on, plus the geometric
functions needed to describe a conformation.

gostates takes a trajectory (a time-ordered sequence of frames) and reduces it to a small
set of representative conformational states:

    Computes per-frame descriptors: backbone dihedrals, hydrogen-bond counts,
	radius of gyration, RMSD against a reference frame, solvent accessible
	surface area and pairwise backbone distances (package descriptor).

    Concatenates and z-score standardizes the descriptors (package features).

    Projects the standardized features with PCA, keeping the components that
	preserve a variance threshold (package pca).

    Estimates the number of states with an elbow search over repeated k-means
	runs and clusters the frames (package cluster).

    Benchmarks several supervised classifiers against the cluster labels
	(package classify).

    Picks the frame closest to each cluster centroid as the representative
	structure of the state (package represent).

The pipeline package threads all the stages together, and cmd/gostates is a command line
front end for it. Trajectories are read from goChem's STF format (package traj/stf).

Errors returned by the library are *CError values, which carry an ErrKind. InputError and
DimensionMismatch are critical: a pipeline run cannot proceed after them. The other kinds
are recovered from where they happen and recorded.
*/
package chem
