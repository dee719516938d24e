/*
 * pca.go, part of gostates.
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

//Package pca reduces the standardized feature matrix to its principal components, and selects
//how many of them to keep from the cumulative explained variance.
package pca

import (
	"math"

	chem "github.com/rmera/gostates"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

//RankTol is the relative variance below which a component is considered numerically null.
const RankTol = 1e-10

//Model is a fitted PCA. Components has one principal direction per column, ordered by
//decreasing variance, and there are min(N, D) of them.
type Model struct {
	Mean       []float64
	Components *mat.Dense
	Variance   []float64
	Ratio      []float64 //explained variance ratios, in [0, 1].
	Rank       int       //number of components with non-negligible variance.
}

//Fit computes the principal components of X, which must have at least 2 rows.
func Fit(X *mat.Dense) (*Model, error) {
	n, d := X.Dims()
	if n < 2 || d < 1 {
		return nil, chem.Errorf(chem.InputError, "pca.Fit", "can't fit a PCA on a %dx%d matrix", n, d)
	}
	var pc stat.PC
	if ok := pc.PrincipalComponents(X, nil); !ok {
		return nil, chem.NewError(chem.NumericDegeneracy, "pca.Fit", "SVD factorization failed")
	}
	M := &Model{Mean: make([]float64, d), Components: &mat.Dense{}}
	col := make([]float64, n)
	for j := range M.Mean {
		mat.Col(col, j, X)
		M.Mean[j] = stat.Mean(col, nil)
	}
	pc.VectorsTo(M.Components)
	M.Variance = pc.VarsTo(nil)
	flipSigns(M.Components)
	total := floats.Sum(M.Variance)
	M.Ratio = make([]float64, len(M.Variance))
	if total > 0 {
		floats.ScaleTo(M.Ratio, 1/total, M.Variance)
	}
	if len(M.Variance) > 0 && M.Variance[0] > 0 {
		for _, v := range M.Variance {
			if v > RankTol*M.Variance[0] {
				M.Rank++
			}
		}
	}
	return M, nil
}

//flipSigns makes the largest (in absolute value) loading of each component positive,
//so the result doesn't depend on the sign conventions of the SVD.
func flipSigns(C *mat.Dense) {
	r, c := C.Dims()
	for j := 0; j < c; j++ {
		best := 0.0
		for i := 0; i < r; i++ {
			if v := C.At(i, j); math.Abs(v) > math.Abs(best) {
				best = v
			}
		}
		if best < 0 {
			for i := 0; i < r; i++ {
				C.Set(i, j, -C.At(i, j))
			}
		}
	}
}

//NComponents returns the number of components of the model, min(N, D).
func (M *Model) NComponents() int {
	return len(M.Variance)
}

//CumulativeVariance returns the running sums of the explained variance ratios, as percentages.
//The sequence is non-decreasing and bounded in [0, 100].
func (M *Model) CumulativeVariance() []float64 {
	ret := make([]float64, len(M.Ratio))
	floats.CumSum(ret, M.Ratio)
	for i := range ret {
		ret[i] = math.Min(100, 100*ret[i])
	}
	return ret
}

//SelectComponents returns the smallest number of components whose cumulative explained
//variance reaches thresholdPct, or all the components if none does. The result is clipped
//to the numerical rank of the model (but is never less than 1). The returned number of
//components is always usable: a non-nil error of kind NumericDegeneracy reports the clipping,
//and only an InputError (for a threshold outside (0, 100]) means that the result is not valid.
func (M *Model) SelectComponents(thresholdPct float64) (int, error) {
	if thresholdPct <= 0 || thresholdPct > 100 || math.IsNaN(thresholdPct) {
		return 0, chem.Errorf(chem.InputError, "pca.SelectComponents", "variance threshold %g%% out of (0, 100]", thresholdPct)
	}
	k := M.NComponents()
	for i, c := range M.CumulativeVariance() {
		if c >= thresholdPct {
			k = i + 1
			break
		}
	}
	limit := M.Rank
	if limit < 1 {
		limit = 1
	}
	if k > limit {
		return limit, chem.Errorf(chem.NumericDegeneracy, "pca.SelectComponents", "%d components requested but the data has rank %d, using %d", k, M.Rank, limit)
	}
	return k, nil
}

func (M *Model) checkK(k int, caller string) error {
	if k < 1 || k > M.NComponents() {
		return chem.Errorf(chem.DimensionMismatch, caller, "%d components requested, the model has %d", k, M.NComponents())
	}
	return nil
}

//Transform projects the rows of X onto the first k principal components.
func (M *Model) Transform(X *mat.Dense, k int) (*mat.Dense, error) {
	if err := M.checkK(k, "pca.Transform"); err != nil {
		return nil, err
	}
	n, d := X.Dims()
	if d != len(M.Mean) {
		return nil, chem.Errorf(chem.DimensionMismatch, "pca.Transform", "matrix has %d columns, the model %d", d, len(M.Mean))
	}
	centered := mat.NewDense(n, d, nil)
	centered.Apply(func(i, j int, v float64) float64 { return v - M.Mean[j] }, X)
	var ret mat.Dense
	ret.Mul(centered, M.Components.Slice(0, d, 0, k))
	return &ret, nil
}

//InverseTransform maps points in the space of the first k components, where k is the number
//of columns of Y, back to the original feature space.
func (M *Model) InverseTransform(Y *mat.Dense) (*mat.Dense, error) {
	_, k := Y.Dims()
	if err := M.checkK(k, "pca.InverseTransform"); err != nil {
		return nil, err
	}
	d := len(M.Mean)
	var ret mat.Dense
	ret.Mul(Y, M.Components.Slice(0, d, 0, k).T())
	ret.Apply(func(i, j int, v float64) float64 { return v + M.Mean[j] }, &ret)
	return &ret, nil
}

//ReconstructionError returns the mean squared difference between the elements of X
//and those of X projected onto the first k components and mapped back.
func (M *Model) ReconstructionError(X *mat.Dense, k int) (float64, error) {
	Y, err := M.Transform(X, k)
	if err != nil {
		return 0, err
	}
	R, err := M.InverseTransform(Y)
	if err != nil {
		return 0, err
	}
	n, d := X.Dims()
	var acc float64
	for i := 0; i < n; i++ {
		for j := 0; j < d; j++ {
			diff := R.At(i, j) - X.At(i, j)
			acc += diff * diff
		}
	}
	return acc / float64(n*d), nil
}
