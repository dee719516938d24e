/*
 * traj_test.go, part of gostates.
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
	"fmt"
	"testing"

	"github.com/pkg/errors"
	v3 "github.com/rmera/gostates/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//memTraj is an in-memory chem.Traj
type memTraj struct {
	frames []*v3.Matrix
	cur    int
	natoms int
}

func (M *memTraj) Readable() bool { return M.cur < len(M.frames) || M.cur == 0 }
func (M *memTraj) Len() int { return M.natoms }
func (M *memTraj) Next(c *v3.Matrix, box ...[]float64) error {
	if M.cur >= len(M.frames) {
		return lastFrame{}
	}
	if c != nil {
		c.Dense.Copy(M.frames[M.cur].Dense)
	}
	M.cur++
	return nil
}

type lastFrame struct{}

func (lastFrame) Error() string { return "EOF" }
func (lastFrame) Decorate(string) []string { return nil }
func (lastFrame) Critical() bool { return false }
func (lastFrame) FileName() string { return "" }
func (lastFrame) Format() string { return "mem" }
func (lastFrame) NormalLastFrameTermination() {}

func twoAtoms(Te *testing.T) *Topology {
	top, err := NewTopology([]*Atom{{Name: "CA", MolID: 1}, {Name: "CA", MolID: 2}})
	require.NoError(Te, err)
	return top
}

func TestReadTrajectory(Te *testing.T) {
	top := twoAtoms(Te)
	frames := []*v3.Matrix{v3.Zeros(2), v3.Zeros(2), v3.Zeros(2)}
	frames[2].Set(1, 0, 3)
	T, err := ReadTrajectory(&memTraj{frames: frames, natoms: 2}, top)
	require.NoError(Te, err)
	assert.Equal(Te, 3, T.Len())
	assert.Equal(Te, 2, T.Frames[2].Index)
	assert.Equal(Te, 3.0, T.Frames[2].Coords.At(1, 0))
	require.NoError(Te, T.Check())

	_, err = ReadTrajectory(&memTraj{natoms: 2}, top)
	assert.True(Te, IsKind(err, InputError))
	_, err = ReadTrajectory(&memTraj{frames: frames, natoms: 3}, top)
	assert.True(Te, IsKind(err, InputError))
}

func TestTrajectoryCheck(Te *testing.T) {
	top := twoAtoms(Te)
	T, err := NewTrajectory(top, []*v3.Matrix{v3.Zeros(2), v3.Zeros(3)})
	require.NoError(Te, err)
	err = T.Check()
	assert.True(Te, IsKind(err, DimensionMismatch))
	//a frame with its own topology
	big, _ := NewTopology([]*Atom{{Name: "N"}, {Name: "CA"}, {Name: "C"}})
	T.Frames[1].Top = big
	assert.NoError(Te, T.Check())
	assert.Equal(Te, 3, T.Topology(1).Len())
	assert.Equal(Te, 2, T.Topology(0).Len())
	_, err = NewTrajectory(top, nil)
	assert.True(Te, IsKind(err, InputError))
}

func TestErrors(Te *testing.T) {
	err := Errorf(StratificationError, "Split", "class %d has %d members", 1, 2)
	err.Decorate("CrossValidate")
	assert.Equal(Te, "StratificationError: class 1 has 2 members", err.Error())
	assert.Equal(Te, "Split <- CrossValidate", err.Trace())
	assert.False(Te, err.Critical())
	wrapped := errors.Wrapf(err, "stage %s", "benchmark")
	assert.True(Te, IsKind(wrapped, StratificationError))
	assert.False(Te, IsKind(wrapped, InputError))
	assert.False(Te, IsKind(fmt.Errorf("plain"), InputError))
	assert.True(Te, NewError(DimensionMismatch, "x", "y").Critical())
}
