/*
 * evaluate.go, part of gostates.
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
	"fmt"
	"math"
	"math/rand"
	"runtime"
	"sort"

	chem "github.com/rmera/gostates"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

//Options for the benchmark.
type Options struct {
	TestFraction   float64   //fraction of each class held out for testing
	CVFolds        int       //folds for the cross-validation
	CurveFolds     int       //stratified folds for the learning curves
	CurveFractions []float64 //training set sizes for the learning curves, as fractions of each fold's training set
	Cpus           int       //families evaluated at the same time. 0 or less means all the logical CPUs.
}

//DefaultOptions returns the default benchmark options: a 20% test set, 4 cross-validation folds,
//and learning curves at 5 sizes between 10% and 100%, over 5 stratified folds.
func DefaultOptions() *Options {
	return &Options{
		TestFraction:   0.2,
		CVFolds:        4,
		CurveFolds:     5,
		CurveFractions: floats.Span(make([]float64, 5), 0.1, 1),
		Cpus:           runtime.NumCPU(),
	}
}

//CurvePoint is one point of a learning curve.
type CurvePoint struct {
	Fraction  float64
	Size      float64 //mean training set size over the folds
	TrainMean float64
	TrainStd  float64
	ValidMean float64
	ValidStd  float64
}

//Result is the evaluation of one classifier family.
type Result struct {
	Name      string
	Accuracy  float64 //holdout accuracy
	Labels    []int   //classes, in the order used for Classes and Confusion
	Classes   []ClassReport
	Confusion *mat.Dense
	CVScores  []float64
	CVMean    float64
	Curve     []CurvePoint
	Model     Classifier //fitted on the holdout training set
	Err       error      //not nil if the evaluation failed
}

//String returns a one-line summary of the result.
func (R *Result) String() string {
	if R.Err != nil {
		return fmt.Sprintf("%-9s failed: %v", R.Name, R.Err)
	}
	return fmt.Sprintf("%-9s accuracy %.3f cv %.3f", R.Name, R.Accuracy, R.CVMean)
}

func score(c Classifier, X *mat.Dense, y []int) (float64, error) {
	pred, err := c.Predict(X)
	if err != nil {
		return 0, err
	}
	return Accuracy(y, pred)
}

//Holdout fits a classifier of family f on a stratified training split of X, y and scores it on
//the held out rows. The split and the classifier are seeded with seed.
func Holdout(f Family, X *mat.Dense, y []int, seed int64, O *Options) (*Result, error) {
	if O == nil {
		O = DefaultOptions()
	}
	if err := checkXy(X, y, "Holdout"); err != nil {
		return nil, err
	}
	train, test, err := StratifiedSplit(y, O.TestFraction, seed)
	if err != nil {
		return nil, decorate(err, "Holdout")
	}
	c := f.New(seed)
	if err := c.Fit(rows(X, train), pick(y, train)); err != nil {
		return nil, decorate(err, "Holdout")
	}
	ytest := pick(y, test)
	pred, err := c.Predict(rows(X, test))
	if err != nil {
		return nil, decorate(err, "Holdout")
	}
	R := &Result{Name: f.Name, Model: c, Labels: labelsOf(y)}
	if R.Accuracy, err = Accuracy(ytest, pred); err != nil {
		return nil, decorate(err, "Holdout")
	}
	if R.Confusion, err = Confusion(ytest, pred, R.Labels); err != nil {
		return nil, decorate(err, "Holdout")
	}
	if R.Classes, err = Reports(ytest, pred, R.Labels); err != nil {
		return nil, decorate(err, "Holdout")
	}
	return R, nil
}

//CrossValidate returns the accuracy of family f on each of O.CVFolds seeded (not stratified) folds.
//It fails with a StratificationError if a class has fewer members than there are folds.
func CrossValidate(f Family, X *mat.Dense, y []int, seed int64, O *Options) ([]float64, error) {
	if O == nil {
		O = DefaultOptions()
	}
	if err := checkXy(X, y, "CrossValidate"); err != nil {
		return nil, err
	}
	classes, counts := Count(y)
	for i, c := range counts {
		if c < O.CVFolds {
			return nil, chem.Errorf(chem.StratificationError, "CrossValidate", "class %d has %d members, fewer than the %d folds", classes[i], c, O.CVFolds)
		}
	}
	folds, err := KFold(len(y), O.CVFolds, seed)
	if err != nil {
		return nil, decorate(err, "CrossValidate")
	}
	scores := make([]float64, len(folds))
	for i, test := range folds {
		train := complement(len(y), test)
		c := f.New(seed)
		if err := c.Fit(rows(X, train), pick(y, train)); err != nil {
			return nil, decorate(err, "CrossValidate")
		}
		if scores[i], err = score(c, rows(X, test), pick(y, test)); err != nil {
			return nil, decorate(err, "CrossValidate")
		}
	}
	return scores, nil
}

//LearningCurve measures training and validation accuracy of family f for training sets of
//increasing size. For each of O.CurveFolds stratified folds, the training indexes are shuffled
//(seeded with seed plus the fold index) and the first round(fraction*n) of them, at least one,
//are used to fit.
func LearningCurve(f Family, X *mat.Dense, y []int, seed int64, O *Options) ([]CurvePoint, error) {
	if O == nil {
		O = DefaultOptions()
	}
	if err := checkXy(X, y, "LearningCurve"); err != nil {
		return nil, err
	}
	folds, err := StratifiedKFold(y, O.CurveFolds, seed)
	if err != nil {
		return nil, decorate(err, "LearningCurve")
	}
	nf := len(O.CurveFractions)
	trainsc := make([][]float64, nf)
	validsc := make([][]float64, nf)
	sizes := make([][]float64, nf)
	for fi, test := range folds {
		train := complement(len(y), test)
		rng := rand.New(rand.NewSource(seed + int64(fi)))
		rng.Shuffle(len(train), func(i, j int) { train[i], train[j] = train[j], train[i] })
		Xtest := rows(X, test)
		ytest := pick(y, test)
		for pi, frac := range O.CurveFractions {
			if frac <= 0 || frac > 1 {
				return nil, chem.Errorf(chem.InputError, "LearningCurve", "invalid training fraction %g", frac)
			}
			m := int(math.Round(frac * float64(len(train))))
			if m < 1 {
				m = 1
			}
			sub := append([]int(nil), train[:m]...)
			sort.Ints(sub)
			Xs, ys := rows(X, sub), pick(y, sub)
			c := f.New(seed)
			if err := c.Fit(Xs, ys); err != nil {
				return nil, decorate(err, "LearningCurve")
			}
			tr, err := score(c, Xs, ys)
			if err != nil {
				return nil, decorate(err, "LearningCurve")
			}
			va, err := score(c, Xtest, ytest)
			if err != nil {
				return nil, decorate(err, "LearningCurve")
			}
			trainsc[pi] = append(trainsc[pi], tr)
			validsc[pi] = append(validsc[pi], va)
			sizes[pi] = append(sizes[pi], float64(m))
		}
	}
	ret := make([]CurvePoint, nf)
	for i, frac := range O.CurveFractions {
		p := CurvePoint{Fraction: frac, Size: stat.Mean(sizes[i], nil)}
		p.TrainMean, p.TrainStd = stat.PopMeanStdDev(trainsc[i], nil)
		p.ValidMean, p.ValidStd = stat.PopMeanStdDev(validsc[i], nil)
		ret[i] = p
	}
	return ret, nil
}

//evaluate runs the holdout, the cross-validation and the learning curve for f. The result
//is never nil, failures are stored in its Err field.
func evaluate(f Family, X *mat.Dense, y []int, seed int64, O *Options) *Result {
	R, err := Holdout(f, X, y, seed, O)
	if err != nil {
		return &Result{Name: f.Name, Err: err}
	}
	if R.CVScores, err = CrossValidate(f, X, y, seed, O); err != nil {
		R.Err = err
		return R
	}
	R.CVMean = stat.Mean(R.CVScores, nil)
	if R.Curve, err = LearningCurve(f, X, y, seed, O); err != nil {
		R.Err = err
	}
	return R
}

//Benchmark evaluates every family on X, y and returns the results ranked with Rank.
//Families are evaluated concurrently. A family that fails is reported with its error,
//and ranked after all the ones that succeeded.
func Benchmark(families []Family, X *mat.Dense, y []int, seed int64, O *Options) ([]*Result, error) {
	if O == nil {
		O = DefaultOptions()
	}
	if err := checkXy(X, y, "Benchmark"); err != nil {
		return nil, err
	}
	if len(families) == 0 {
		return nil, chem.NewError(chem.InputError, "Benchmark", "no classifier families given")
	}
	cpus := O.Cpus
	if cpus <= 0 {
		cpus = runtime.NumCPU()
	}
	ret := make([]*Result, len(families))
	var g errgroup.Group
	g.SetLimit(cpus)
	for i, f := range families {
		i, f := i, f
		g.Go(func() error {
			ret[i] = evaluate(f, X, y, seed, O)
			return nil
		})
	}
	g.Wait()
	Rank(ret)
	return ret, nil
}

//Rank sorts results in place: successful evaluations first, then by decreasing holdout
//accuracy, decreasing mean cross-validation accuracy, and name.
func Rank(results []*Result) {
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if (a.Err == nil) != (b.Err == nil) {
			return a.Err == nil
		}
		if a.Accuracy != b.Accuracy {
			return a.Accuracy > b.Accuracy
		}
		if a.CVMean != b.CVMean {
			return a.CVMean > b.CVMean
		}
		return a.Name < b.Name
	})
}
