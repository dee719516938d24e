/*
 * traj.go, part of gostates.
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

package chem

import (
	v3 "github.com/rmera/gostates/v3"
)

//Frame is one snapshot of a trajectory. Top is the topology for the frame.
//If it is nil, the topology of the trajectory applies.
type Frame struct {
	Index  int
	Coords *v3.Matrix
	Top    Atomer
}

//Trajectory is an in-memory, ordered set of frames sharing (by default) a topology.
type Trajectory struct {
	Top    Atomer
	Frames []*Frame
}

//NewTrajectory builds a trajectory from a topology and a set of coordinates, one matrix per frame.
//Frame indexes follow the order of coords.
func NewTrajectory(top Atomer, coords []*v3.Matrix) (*Trajectory, error) {
	if len(coords) == 0 {
		return nil, NewError(InputError, "NewTrajectory", "trajectory with zero frames")
	}
	T := &Trajectory{Top: top, Frames: make([]*Frame, len(coords))}
	for i, c := range coords {
		T.Frames[i] = &Frame{Index: i, Coords: c}
	}
	return T, nil
}

//Len returns the number of frames in the trajectory.
func (T *Trajectory) Len() int {
	return len(T.Frames)
}

//Topology returns the topology that applies to the ith frame.
func (T *Trajectory) Topology(i int) Atomer {
	if f := T.Frames[i]; f.Top != nil {
		return f.Top
	}
	return T.Top
}

//Check verifies that the trajectory has frames, that every frame has a topology and that
//the number of coordinates of each frame matches its topology.
func (T *Trajectory) Check() error {
	if T == nil || len(T.Frames) == 0 {
		return NewError(InputError, "Trajectory.Check", "trajectory with zero frames")
	}
	for i, f := range T.Frames {
		if f == nil || f.Coords == nil {
			return Errorf(InputError, "Trajectory.Check", "frame %d has no coordinates", i)
		}
		top := T.Topology(i)
		if top == nil {
			return Errorf(InputError, "Trajectory.Check", "frame %d has no topology", i)
		}
		if f.Coords.NVecs() != top.Len() {
			return Errorf(DimensionMismatch, "Trajectory.Check", "frame %d has %d coordinates but its topology has %d atoms", i, f.Coords.NVecs(), top.Len())
		}
	}
	return nil
}

//ReadTrajectory reads all the frames of traj into memory, and returns them as a Trajectory
//with the topology top. The reader is read until its last frame.
func ReadTrajectory(traj Traj, top Atomer) (*Trajectory, error) {
	if traj == nil || !traj.Readable() {
		return nil, NewError(InputError, "ReadTrajectory", "trajectory not readable")
	}
	if top != nil && top.Len() != traj.Len() {
		return nil, Errorf(InputError, "ReadTrajectory", "topology has %d atoms but the trajectory has %d", top.Len(), traj.Len())
	}
	coords := make([]*v3.Matrix, 0, 100)
	for {
		c := v3.Zeros(traj.Len())
		err := traj.Next(c)
		if err != nil {
			if _, ok := err.(LastFrameError); ok {
				break
			}
			return nil, Errorf(InputError, "ReadTrajectory", "failed reading frame %d: %s", len(coords), err.Error())
		}
		coords = append(coords, c)
	}
	T, err := NewTrajectory(top, coords)
	if err != nil {
		return nil, errDecorate(err, "ReadTrajectory")
	}
	return T, nil
}
