/*
 * main_test.go, part of gostates.
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

package main

import (
	"os"
	"path/filepath"
	"testing"

	chem "github.com/rmera/gostates"
	"github.com/rmera/gostates/chemjson"
	"github.com/rmera/gostates/internal/testmol"
	"github.com/rmera/gostates/pipeline"
	"github.com/rmera/gostates/traj/dcd"
	"github.com/rmera/gostates/traj/stf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgsConfig(Te *testing.T) {
	name := filepath.Join(Te.TempDir(), "cfg.yaml")
	require.NoError(Te, os.WriteFile(name, []byte("trajectoryPath: a.stf\nrandomSeed: 3\nkRange: [1, 8]\ncpus: 3\n"), 0644))
	kmax, runs := 6, 4
	a := args{Config: name, Kmax: &kmax, Runs: &runs, Descriptors: []string{"rg"}}
	C, err := a.config()
	require.NoError(Te, err)
	assert.Equal(Te, "a.stf", C.TrajectoryPath)
	assert.Equal(Te, []int{1, 6}, C.KRange)
	assert.Equal(Te, 4, C.NRunsForElbow)
	assert.Equal(Te, 3, C.Cpus)
	assert.Equal(Te, []string{"rg"}, C.Descriptors)

	seed := int64(9)
	C, err = args{Traj: "b.stf", Seed: &seed}.config()
	require.NoError(Te, err)
	assert.Equal(Te, int64(9), *C.RandomSeed)

	_, err = args{Traj: "b.stf"}.config()
	assert.True(Te, chem.IsKind(err, chem.InputError))
	_, err = args{Seed: &seed}.config()
	assert.True(Te, chem.IsKind(err, chem.InputError))
}

func TestLoad(Te *testing.T) {
	dir := Te.TempDir()
	T := testmol.Trajectory(2, 4, 1)
	sname := filepath.Join(dir, "t.stf")
	require.NoError(Te, stf.WriteFile(sname, T, nil))
	dname := filepath.Join(dir, "t.dcd")
	require.NoError(Te, dcd.WriteFile(dname, T))
	tname := filepath.Join(dir, "top.json")
	f, err := os.Create(tname)
	require.NoError(Te, err)
	require.NoError(Te, chemjson.EncodeTopology(f, T.Top))
	require.NoError(Te, f.Close())

	C := pipeline.DefaultConfig()
	C.TrajectoryPath = sname
	T2, err := load(C)
	require.NoError(Te, err)
	assert.Equal(Te, 4, T2.Len())
	C.TrajectoryPath = dname
	_, err = load(C)
	assert.True(Te, chem.IsKind(err, chem.InputError))
	C.TopologyPath = tname
	T2, err = load(C)
	require.NoError(Te, err)
	assert.Equal(Te, 4, T2.Len())
	assert.Equal(Te, "CA", T2.Top.Atom(2).Name)
}
