/*
 * represent_test.go, part of gostates.
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

package represent

import (
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	chem "github.com/rmera/gostates"
	"github.com/rmera/gostates/cluster"
	"github.com/rmera/gostates/internal/testmol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

func TestSelectScenario(Te *testing.T) {
	points := mat.NewDense(4, 3, []float64{
		1.0, 2.0, 1.0,
		1.1, 2.1, 1.0,
		5.0, 6.0, 1.0,
		5.1, 6.1, 1.0,
	})
	m, err := cluster.KMeans(points, 2, 3, nil)
	require.NoError(Te, err)
	traj := testmol.Trajectory(2, 4, 1)
	frames, err := Select(points, m, traj)
	require.NoError(Te, err)
	require.Len(Te, frames, 2)
	var idx []int
	for c, f := range frames {
		assert.Equal(Te, c, f.Cluster)
		assert.Equal(Te, c, m.Labels[f.Index])
		assert.Same(Te, traj.Frames[f.Index].Coords, f.Coords)
		assert.NotNil(Te, f.Top)
		idx = append(idx, f.Index)
	}
	sort.Ints(idx)
	assert.Less(Te, idx[0], 2)
	assert.GreaterOrEqual(Te, idx[1], 2)
}

func TestSelectOptimal(Te *testing.T) {
	rng := rand.New(rand.NewSource(2))
	points := mat.NewDense(90, 4, nil)
	for i := 0; i < 90; i++ {
		for j := 0; j < 4; j++ {
			points.Set(i, j, float64(5*(i%3))+rng.NormFloat64())
		}
	}
	m, err := cluster.KMeans(points, 3, 1, nil)
	require.NoError(Te, err)
	frames, err := Select(points, m, nil)
	require.NoError(Te, err)
	for i, l := range m.Labels {
		d := floats.Distance(points.RawRowView(i), m.Centroids.RawRowView(l), 2)
		assert.LessOrEqual(Te, frames[l].Distance, d)
	}
	assert.Nil(Te, frames[0].Coords)
}

func TestSelectTies(Te *testing.T) {
	points := mat.NewDense(4, 1, []float64{3, 0, 2, 2})
	m := &cluster.Model{K: 2, Centroids: mat.NewDense(2, 1, []float64{1, 2}), Labels: []int{1, 0, 0, 1}}
	frames, err := Select(points, m, nil)
	require.NoError(Te, err)
	assert.Equal(Te, 1, frames[0].Index) //0 and 2 are both at distance 1
	assert.Equal(Te, 3, frames[1].Index)
	assert.Equal(Te, 0.0, frames[1].Distance)

	m.Labels = []int{0, 0, 0, 0}
	_, err = Select(points, m, nil)
	assert.True(Te, chem.IsKind(err, chem.ClusteringDegeneracy))
	m.Labels = []int{0, 1}
	_, err = Select(points, m, nil)
	assert.True(Te, chem.IsKind(err, chem.DimensionMismatch))
}

func TestExport(Te *testing.T) {
	traj := testmol.Trajectory(3, 6, 1)
	points := mat.NewDense(6, 1, []float64{0, 0.1, 0.2, 5, 5.1, 5.2})
	m, err := cluster.KMeans(points, 2, 1, nil)
	require.NoError(Te, err)
	frames, err := Select(points, m, traj)
	require.NoError(Te, err)
	dir := Te.TempDir()
	names, err := Export(frames, dir)
	require.NoError(Te, err)
	require.Len(Te, names, 2)
	for c, name := range names {
		assert.Equal(Te, filepath.Join(dir, FileName(c)), name)
		data, err := os.ReadFile(name)
		require.NoError(Te, err)
		assert.Equal(Te, 15, strings.Count(string(data), "\nATOM "))
		assert.Contains(Te, string(data), "CLUSTER")
	}
	frames[0].Top = nil
	_, err = Export(frames, dir)
	assert.True(Te, chem.IsKind(err, chem.InputError))
}
