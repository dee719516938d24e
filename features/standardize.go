/*
 * standardize.go, part of gostates.
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
	"math"

	chem "github.com/rmera/gostates"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

//MinStd is the smallest standard deviation for which a column is not considered degenerate.
const MinStd = 1e-12

//Standardizer holds the per-column mean and (population) standard deviation
//learned from a feature matrix.
type Standardizer struct {
	Mean       []float64
	Std        []float64
	degenerate []int
}

//FitStandardize learns the column means and standard deviations of X and returns
//them together with the standardized copy of X. Columns with zero variance
//get a standard deviation of 1 and are standardized to exactly 0. X is not modified.
func FitStandardize(X *mat.Dense) (*Standardizer, *mat.Dense, error) {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return nil, nil, chem.NewError(chem.InputError, "features.FitStandardize", "empty matrix")
	}
	S := &Standardizer{Mean: make([]float64, c), Std: make([]float64, c)}
	col := make([]float64, r)
	for j := 0; j < c; j++ {
		mat.Col(col, j, X)
		mean, std := stat.PopMeanStdDev(col, nil)
		S.Mean[j] = mean
		if std < MinStd || constant(col) || math.IsNaN(std) {
			std = 1
			S.degenerate = append(S.degenerate, j)
		}
		S.Std[j] = std
	}
	Z, err := S.Transform(X)
	if err != nil {
		return nil, nil, err
	}
	return S, Z, nil
}

func constant(col []float64) bool {
	for _, v := range col[1:] {
		if v != col[0] {
			return false
		}
	}
	return true
}

//Transform applies (x-mean)/std, column by column, to a copy of X and returns it.
//Degenerate columns are set to 0.
func (S *Standardizer) Transform(X *mat.Dense) (*mat.Dense, error) {
	r, c := X.Dims()
	if c != len(S.Mean) {
		return nil, chem.Errorf(chem.DimensionMismatch, "Standardizer.Transform", "matrix has %d columns, the standardizer %d", c, len(S.Mean))
	}
	Z := mat.NewDense(r, c, nil)
	Z.Apply(func(i, j int, v float64) float64 {
		return (v - S.Mean[j]) / S.Std[j]
	}, X)
	for _, j := range S.degenerate {
		for i := 0; i < r; i++ {
			Z.Set(i, j, 0)
		}
	}
	return Z, nil
}

//Degenerate returns the indexes of the zero-variance columns found during the fit.
func (S *Standardizer) Degenerate() []int {
	return append([]int(nil), S.degenerate...)
}

//DegeneracyError returns a NumericDegeneracy error listing the degenerate columns
//of M, or nil if there are none. It is meant to be recorded, not to stop anything.
func (S *Standardizer) DegeneracyError(M *Matrix) error {
	if len(S.degenerate) == 0 {
		return nil
	}
	names := make([]string, len(S.degenerate))
	for i, j := range S.degenerate {
		names[i] = M.Columns[j]
	}
	return chem.Errorf(chem.NumericDegeneracy, "features.FitStandardize", "%d zero-variance columns standardized to 0: %v", len(names), names)
}
