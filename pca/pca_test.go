/*
 * pca_test.go, part of gostates.
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

package pca

import (
	"math/rand"
	"testing"

	chem "github.com/rmera/gostates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func randomMatrix(n, d int, seed int64) *mat.Dense {
	rng := rand.New(rand.NewSource(seed))
	X := mat.NewDense(n, d, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < d; j++ {
			X.Set(i, j, rng.NormFloat64()*float64(j+1))
		}
	}
	return X
}

func TestFullRankReconstruction(Te *testing.T) {
	for name, dims := range map[string][2]int{"tall": {20, 5}, "wide": {4, 9}} {
		Te.Run(name, func(t *testing.T) {
			X := randomMatrix(dims[0], dims[1], 7)
			M, err := Fit(X)
			require.NoError(t, err)
			k := M.NComponents()
			assert.Equal(t, min(dims[0], dims[1]), k)
			e, err := M.ReconstructionError(X, k)
			require.NoError(t, err)
			assert.InDelta(t, 0, e, 1e-12)
			e1, err := M.ReconstructionError(X, 1)
			require.NoError(t, err)
			assert.Greater(t, e1, 0.0)
			//orthonormal directions
			var G mat.Dense
			G.Mul(M.Components.T(), M.Components)
			r, _ := G.Dims()
			for i := 0; i < r; i++ {
				for j := 0; j < r; j++ {
					want := 0.0
					if i == j && M.Variance[i] > 0 {
						want = 1
					}
					if i == j && M.Variance[i] == 0 {
						continue
					}
					assert.InDelta(t, want, G.At(i, j), 1e-9)
				}
			}
		})
	}
}

func TestCumulativeVariance(Te *testing.T) {
	M, err := Fit(randomMatrix(30, 6, 3))
	require.NoError(Te, err)
	cum := M.CumulativeVariance()
	prev := 0.0
	for _, c := range cum {
		assert.GreaterOrEqual(Te, c, prev)
		assert.LessOrEqual(Te, c, 100.0)
		prev = c
	}
	assert.InDelta(Te, 100, cum[len(cum)-1], 1e-9)
	for i := 1; i < len(M.Variance); i++ {
		assert.GreaterOrEqual(Te, M.Variance[i-1], M.Variance[i])
	}
	k, err := M.SelectComponents(100)
	assert.NoError(Te, err)
	assert.LessOrEqual(Te, k, 6)
	k, err = M.SelectComponents(cum[1])
	assert.NoError(Te, err)
	assert.Equal(Te, 2, k)
	k, err = M.SelectComponents(cum[1] + 1e-6)
	assert.NoError(Te, err)
	assert.Equal(Te, 3, k)
	_, err = M.SelectComponents(0)
	assert.True(Te, chem.IsKind(err, chem.InputError))
	_, err = M.SelectComponents(120)
	assert.True(Te, chem.IsKind(err, chem.InputError))
}

func TestZeroVarianceColumn(Te *testing.T) {
	X := randomMatrix(10, 3, 5)
	for i := 0; i < 10; i++ {
		X.Set(i, 1, 0)
	}
	M, err := Fit(X)
	require.NoError(Te, err)
	assert.Equal(Te, 2, M.Rank)
	assert.InDelta(Te, 0, M.Ratio[2], 1e-12)
	//the constant column takes no part in the components that carry variance
	for j := 0; j < M.Rank; j++ {
		assert.InDelta(Te, 0, M.Components.At(1, j), 1e-9)
	}
	k, err := M.SelectComponents(100)
	assert.Equal(Te, 2, k)
	if err != nil {
		assert.True(Te, chem.IsKind(err, chem.NumericDegeneracy))
	}
}

func TestRankDeficient(Te *testing.T) {
	//all rows equal: no variance at all
	X := mat.NewDense(4, 3, []float64{1, 2, 3, 1, 2, 3, 1, 2, 3, 1, 2, 3})
	M, err := Fit(X)
	require.NoError(Te, err)
	assert.Equal(Te, 0, M.Rank)
	for _, r := range M.Ratio {
		assert.Equal(Te, 0.0, r)
	}
	for _, c := range M.CumulativeVariance() {
		assert.Equal(Te, 0.0, c)
	}
	k, err := M.SelectComponents(95)
	assert.Equal(Te, 1, k)
	assert.True(Te, chem.IsKind(err, chem.NumericDegeneracy))
	_, err = Fit(mat.NewDense(1, 3, nil))
	assert.True(Te, chem.IsKind(err, chem.InputError))
	_, err = M.Transform(X, 4)
	assert.True(Te, chem.IsKind(err, chem.DimensionMismatch))
}
