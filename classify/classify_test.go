/*
 * classify_test.go, part of gostates.
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

package classify

import (
	"errors"
	"math/rand"
	"testing"

	chem "github.com/rmera/gostates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

//three well separated groups of 20 points each, labeled 0, 1 and 2.
func blobs(seed int64) (*mat.Dense, []int) {
	rng := rand.New(rand.NewSource(seed))
	centers := [][]float64{{0, 0}, {10, 0}, {0, 10}}
	X := mat.NewDense(60, 2, nil)
	y := make([]int, 60)
	for i := range y {
		y[i] = i % 3
		c := centers[y[i]]
		X.Set(i, 0, c[0]+rng.NormFloat64())
		X.Set(i, 1, c[1]+rng.NormFloat64())
	}
	return X, y
}

func labels(counts ...int) []int {
	var y []int
	for c, n := range counts {
		for i := 0; i < n; i++ {
			y = append(y, c)
		}
	}
	return y
}

func TestStratifiedSplit(Te *testing.T) {
	y := labels(10, 5, 2)
	train, test, err := StratifiedSplit(y, 0.2, 3)
	require.NoError(Te, err)
	assert.Len(Te, test, 4)
	assert.Len(Te, train, 13)
	_, counts := Count(pick(y, test))
	assert.Equal(Te, []int{2, 1, 1}, counts)
	all := append(append([]int(nil), train...), test...)
	assert.ElementsMatch(Te, complement(len(y), nil), all)
	train2, test2, err := StratifiedSplit(y, 0.2, 3)
	require.NoError(Te, err)
	assert.Equal(Te, train, train2)
	assert.Equal(Te, test, test2)
	_, _, err = StratifiedSplit(labels(4, 1), 0.2, 3)
	assert.True(Te, chem.IsKind(err, chem.StratificationError), "%v", err)
	_, _, err = StratifiedSplit(y, 1.2, 3)
	assert.True(Te, chem.IsKind(err, chem.InputError))
}

func TestFolds(Te *testing.T) {
	folds, err := KFold(10, 4, 1)
	require.NoError(Te, err)
	var all []int
	for _, f := range folds {
		assert.True(Te, len(f) == 2 || len(f) == 3)
		all = append(all, f...)
	}
	assert.ElementsMatch(Te, complement(10, nil), all)
	_, err = KFold(3, 4, 1)
	assert.Error(Te, err)

	y := labels(8, 4, 5)
	folds, err = StratifiedKFold(y, 4, 1)
	require.NoError(Te, err)
	for _, f := range folds {
		_, counts := Count(pick(y, f))
		assert.Equal(Te, 2, counts[0])
		assert.Equal(Te, 1, counts[1])
		assert.Len(Te, counts, 3)
	}
	_, err = StratifiedKFold(labels(8, 3), 4, 1)
	assert.True(Te, chem.IsKind(err, chem.StratificationError))
	assert.Equal(Te, []int{0, 2, 4}, complement(5, []int{1, 3}))
}

func TestMetrics(Te *testing.T) {
	truth := []int{0, 0, 0, 1, 1, 2}
	pred := []int{0, 0, 1, 1, 1, 0}
	acc, err := Accuracy(truth, pred)
	require.NoError(Te, err)
	assert.InDelta(Te, 4.0/6, acc, 1e-12)
	C, err := Confusion(truth, pred, []int{0, 1, 2})
	require.NoError(Te, err)
	assert.Equal(Te, []float64{2, 1, 0, 0, 2, 0, 1, 0, 0}, C.RawMatrix().Data)
	r, err := Reports(truth, pred, []int{0, 1, 2})
	require.NoError(Te, err)
	assert.InDelta(Te, 2.0/3, r[0].Precision, 1e-12)
	assert.InDelta(Te, 2.0/3, r[0].Recall, 1e-12)
	assert.InDelta(Te, 2.0/3, r[1].Precision, 1e-12)
	assert.InDelta(Te, 1, r[1].Recall, 1e-12)
	assert.InDelta(Te, 0.8, r[1].F1, 1e-12)
	assert.Equal(Te, ClassReport{Class: 2, Support: 1}, r[2])
	_, err = Accuracy(truth, pred[:2])
	assert.True(Te, chem.IsKind(err, chem.DimensionMismatch))
	_, err = Reports(nil, nil, []int{0})
	assert.True(Te, chem.IsKind(err, chem.DimensionMismatch))
	//predicted labels outside the class list don't enter the matrix
	C, err = Confusion([]int{0, 1, 1}, []int{0, 7, 1}, []int{0, 1})
	require.NoError(Te, err)
	assert.Equal(Te, []float64{1, 0, 0, 1}, C.RawMatrix().Data)
	acc, err = Accuracy([]int{0, 1, 1}, []int{0, 7, 1})
	require.NoError(Te, err)
	assert.InDelta(Te, 2.0/3, acc, 1e-12)
}

func TestFamilies(Te *testing.T) {
	X, y := blobs(5)
	for _, f := range Families() {
		Te.Run(f.Name, func(Te *testing.T) {
			R, err := Holdout(f, X, y, 11, nil)
			require.NoError(Te, err)
			assert.Equal(Te, f.Name, R.Name)
			assert.GreaterOrEqual(Te, R.Accuracy, 0.9)
			assert.Equal(Te, []int{0, 1, 2}, R.Labels)
			r, c := R.Confusion.Dims()
			assert.Equal(Te, 3, r)
			assert.Equal(Te, 3, c)
			assert.InDelta(Te, 12, mat.Sum(R.Confusion), 1e-12)
		})
	}
}

func TestPredictErrors(Te *testing.T) {
	X, y := blobs(5)
	for _, c := range []Classifier{NewSVM(1), NewKNN(3), NewForest(10), NewLogistic(1e-3)} {
		_, err := c.Predict(X)
		assert.True(Te, chem.IsKind(err, chem.InputError), "%s: %v", c.Name(), err)
		require.NoError(Te, c.Fit(X, y), c.Name())
		_, err = c.Predict(mat.NewDense(2, 3, nil))
		assert.True(Te, chem.IsKind(err, chem.DimensionMismatch), "%s: %v", c.Name(), err)
	}
	assert.True(Te, chem.IsKind(NewSVM(1).Fit(X, y[:10]), chem.DimensionMismatch))
}

func TestSingleClass(Te *testing.T) {
	X, _ := blobs(5)
	y := make([]int, 60)
	for i := range y {
		y[i] = 7
	}
	for _, f := range Families() {
		c := f.New(1)
		require.NoError(Te, c.Fit(X, y), f.Name)
		pred, err := c.Predict(X)
		require.NoError(Te, err)
		assert.Equal(Te, y, pred, f.Name)
	}
}

func TestCrossValidate(Te *testing.T) {
	X, y := blobs(8)
	f, ok := FamilyByName("knn")
	require.True(Te, ok)
	scores, err := CrossValidate(f, X, y, 2, nil)
	require.NoError(Te, err)
	require.Len(Te, scores, 4)
	mean := floats.Sum(scores) / 4
	assert.GreaterOrEqual(Te, mean, floats.Min(scores))
	assert.LessOrEqual(Te, mean, floats.Max(scores))

	y[0], y[3], y[6] = 3, 3, 3 //a class with 3 members and 4 folds
	_, err = CrossValidate(f, X, y, 2, nil)
	assert.True(Te, chem.IsKind(err, chem.StratificationError), "%v", err)
}

func TestLearningCurve(Te *testing.T) {
	X, y := blobs(8)
	f, _ := FamilyByName("logistic")
	curve, err := LearningCurve(f, X, y, 4, nil)
	require.NoError(Te, err)
	require.Len(Te, curve, 5)
	assert.InDelta(Te, 0.1, curve[0].Fraction, 1e-12)
	assert.InDelta(Te, 48, curve[4].Size, 1e-12)
	for i, p := range curve {
		if i > 0 {
			assert.Greater(Te, p.Size, curve[i-1].Size)
		}
		assert.True(Te, p.ValidMean >= 0 && p.ValidMean <= 1)
		assert.True(Te, p.TrainMean >= 0 && p.TrainMean <= 1)
	}
	assert.GreaterOrEqual(Te, curve[4].ValidMean, 0.9)
	O := DefaultOptions()
	O.CurveFolds = 30
	_, err = LearningCurve(f, X, y, 4, O)
	assert.True(Te, chem.IsKind(err, chem.StratificationError))
}

type failing struct{ Classifier }

func (F failing) Fit(X *mat.Dense, y []int) error { return errors.New("broken") }

func TestBenchmark(Te *testing.T) {
	X, y := blobs(9)
	fams := append(Families(), Family{Name: "broken", New: func(seed int64) Classifier { return failing{NewSVM(seed)} }})
	res, err := Benchmark(fams, X, y, 3, nil)
	require.NoError(Te, err)
	require.Len(Te, res, 5)
	last := res[4]
	assert.Equal(Te, "broken", last.Name)
	assert.Error(Te, last.Err)
	for i, r := range res[:4] {
		require.NoError(Te, r.Err, r.Name)
		assert.Len(Te, r.CVScores, 4)
		assert.Len(Te, r.Curve, 5)
		if i > 0 {
			assert.GreaterOrEqual(Te, res[i-1].Accuracy, r.Accuracy)
		}
	}
}

func TestRank(Te *testing.T) {
	res := []*Result{
		{Name: "a", Err: errors.New("x"), Accuracy: 1},
		{Name: "b", Accuracy: 0.8, CVMean: 0.7},
		{Name: "c", Accuracy: 0.9, CVMean: 0.6},
		{Name: "d", Accuracy: 0.8, CVMean: 0.75},
		{Name: "e", Accuracy: 0.8, CVMean: 0.75},
	}
	Rank(res)
	var names []string
	for _, r := range res {
		names = append(names, r.Name)
	}
	assert.Equal(Te, []string{"c", "d", "e", "b", "a"}, names)
}
