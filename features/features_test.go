/*
 * features_test.go, part of gostates.
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

package features

import (
	"testing"

	chem "github.com/rmera/gostates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

func TestAggregate(Te *testing.T) {
	a := &Block{Name: "rg", Columns: []string{"rg"}, Data: mat.NewDense(3, 1, []float64{1, 2, 3})}
	b := &Block{Name: "distances", Columns: []string{"1-2", "1-3"}, Data: mat.NewDense(3, 2, []float64{1, 2, 3, 4, 5, 6})}
	M, err := Aggregate([]*Block{a, b})
	require.NoError(Te, err)
	r, c := M.Dims()
	assert.Equal(Te, 3, r)
	assert.Equal(Te, 3, c)
	assert.Equal(Te, []string{"rg.rg", "distances.1-2", "distances.1-3"}, M.Columns)
	assert.Equal(Te, 4.0, M.Data.At(1, 2))
	d, ok := M.Block("distances")
	require.True(Te, ok)
	assert.Equal(Te, 5.0, d.At(2, 0))
	_, ok = M.Block("sasa")
	assert.False(Te, ok)

	short := &Block{Name: "sasa", Columns: []string{"sasa"}, Data: mat.NewDense(2, 1, nil)}
	_, err = Aggregate([]*Block{a, short})
	assert.True(Te, chem.IsKind(err, chem.DimensionMismatch))
	assert.Contains(Te, err.Error(), "sasa")
	_, err = Aggregate(nil)
	assert.True(Te, chem.IsKind(err, chem.InputError))
}

func TestStandardize(Te *testing.T) {
	X := mat.NewDense(5, 3, []float64{
		1, 7.3, 10,
		2, 7.3, -4,
		3, 7.3, 2.5,
		4, 7.3, 0,
		10, 7.3, 1,
	})
	orig := mat.DenseCopyOf(X)
	S, Z, err := FitStandardize(X)
	require.NoError(Te, err)
	assert.True(Te, mat.Equal(orig, X))
	assert.Equal(Te, []int{1}, S.Degenerate())
	assert.Equal(Te, 1.0, S.Std[1])
	col := make([]float64, 5)
	for _, j := range []int{0, 2} {
		mat.Col(col, j, Z)
		mean, std := stat.PopMeanStdDev(col, nil)
		assert.InDelta(Te, 0, mean, 1e-6)
		assert.InDelta(Te, 1, std, 1e-6)
	}
	mat.Col(col, 1, Z)
	assert.Equal(Te, []float64{0, 0, 0, 0, 0}, col)

	M := &Matrix{Columns: []string{"a", "b", "c"}, Data: X}
	err = S.DegeneracyError(M)
	assert.True(Te, chem.IsKind(err, chem.NumericDegeneracy))
	_, err = S.Transform(mat.NewDense(2, 2, nil))
	assert.True(Te, chem.IsKind(err, chem.DimensionMismatch))
}
