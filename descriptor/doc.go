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

//Package descriptor computes per-frame structural descriptors (backbone dihedrals, hydrogen bond
//counts, radius of gyration, RMSD against a reference frame, solvent-accessible surface area and
//pairwise backbone distances) over a trajectory, and returns them as feature blocks.
//
//Every descriptor is a total function over the frames: it gives a value for every frame, or fails
//with a DimensionMismatch error naming the descriptor and the frame. Frames are processed
//concurrently, but the results don't depend on the scheduling.
package descriptor
