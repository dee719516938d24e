/*
 * classifier.go, part of gostates.
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

//Package classify benchmarks supervised classifiers against the cluster labels: each family is
//evaluated on a stratified holdout split, with k-fold cross-validation and with learning curves,
//and the families are ranked by their holdout accuracy.
package classify

import (
	"sort"

	chem "github.com/rmera/gostates"
	"gonum.org/v1/gonum/mat"
)

//Classifier is a supervised classifier over the rows of a matrix, with integer labels.
type Classifier interface {
	Name() string
	Fit(X *mat.Dense, y []int) error
	Predict(X *mat.Dense) ([]int, error)
}

//Family builds fresh, unfitted classifiers of one kind. The seed controls
//whatever randomness the classifier uses, where the library allows it.
type Family struct {
	Name string
	New  func(seed int64) Classifier
}

//Families returns the default classifier families: a margin classifier (linear SVM),
//a distance-vote classifier (k nearest neighbors), a tree ensemble (random forest) and
//a logistic regression.
func Families() []Family {
	return []Family{
		{Name: "svm", New: func(seed int64) Classifier { return guard(NewSVM(seed)) }},
		{Name: "knn", New: func(seed int64) Classifier { return guard(NewKNN(5)) }},
		{Name: "forest", New: func(seed int64) Classifier { return guard(NewForest(100)) }},
		{Name: "logistic", New: func(seed int64) Classifier { return guard(NewLogistic(1e-3)) }},
	}
}

//FamilyByName returns the default family called name, and false if there is none.
func FamilyByName(name string) (Family, bool) {
	for _, f := range Families() {
		if f.Name == name {
			return f, true
		}
	}
	return Family{}, false
}

//guarded makes any classifier total on training sets with a single class, for which
//it predicts that class.
type guarded struct {
	Classifier
	constant int
	single   bool
}

func guard(c Classifier) Classifier {
	return &guarded{Classifier: c}
}

func (G *guarded) Fit(X *mat.Dense, y []int) error {
	if err := checkXy(X, y, "Fit"); err != nil {
		return err
	}
	classes := labelsOf(y)
	G.single = len(classes) == 1
	if G.single {
		G.constant = classes[0]
		return nil
	}
	return G.Classifier.Fit(X, y)
}

func (G *guarded) Predict(X *mat.Dense) ([]int, error) {
	if !G.single {
		return G.Classifier.Predict(X)
	}
	r, _ := X.Dims()
	ret := make([]int, r)
	for i := range ret {
		ret[i] = G.constant
	}
	return ret, nil
}

func checkXy(X *mat.Dense, y []int, caller string) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return chem.NewError(chem.InputError, caller, "empty training set")
	}
	if r != len(y) {
		return chem.Errorf(chem.DimensionMismatch, caller, "%d rows but %d labels", r, len(y))
	}
	return nil
}

//labelsOf returns the distinct labels in y, sorted.
func labelsOf(y []int) []int {
	seen := make(map[int]bool)
	ret := make([]int, 0, 8)
	for _, l := range y {
		if !seen[l] {
			seen[l] = true
			ret = append(ret, l)
		}
	}
	sort.Ints(ret)
	return ret
}

//rows returns a new matrix with the rows of X indexed by idx, in that order.
func rows(X *mat.Dense, idx []int) *mat.Dense {
	_, c := X.Dims()
	ret := mat.NewDense(len(idx), c, nil)
	for i, v := range idx {
		ret.SetRow(i, X.RawRowView(v))
	}
	return ret
}

func pick(y []int, idx []int) []int {
	ret := make([]int, len(idx))
	for i, v := range idx {
		ret[i] = y[v]
	}
	return ret
}
