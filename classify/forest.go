/*
 * forest.go, part of gostates.
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
	randomforest "github.com/malaschitz/randomForest"
	chem "github.com/rmera/gostates"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

//Forest is a random forest classifier, on top of malaschitz/randomForest. The library draws
//from the global math/rand source, so its results are not reproducible from a seed.
type Forest struct {
	Trees   int
	forest  *randomforest.Forest
	classes []int //forest class i is classes[i]
	nfeat   int
}

//NewForest returns a random forest with the given number of trees.
func NewForest(trees int) *Forest {
	return &Forest{Trees: trees}
}

func (F *Forest) Name() string { return "forest" }

func (F *Forest) Fit(X *mat.Dense, y []int) error {
	if err := checkXy(X, y, "Forest.Fit"); err != nil {
		return err
	}
	n, d := X.Dims()
	F.classes = labelsOf(y)
	index := make(map[int]int, len(F.classes))
	for i, c := range F.classes {
		index[c] = i
	}
	data := randomforest.ForestData{X: make([][]float64, n), Class: make([]int, n)}
	for i := 0; i < n; i++ {
		data.X[i] = mat.Row(nil, i, X)
		data.Class[i] = index[y[i]]
	}
	F.forest = &randomforest.Forest{Data: data}
	F.forest.Train(F.Trees)
	F.nfeat = d
	return nil
}

func (F *Forest) Predict(X *mat.Dense) ([]int, error) {
	if F.forest == nil {
		return nil, chem.NewError(chem.InputError, "Forest.Predict", "classifier not fitted")
	}
	n, d := X.Dims()
	if d != F.nfeat {
		return nil, chem.Errorf(chem.DimensionMismatch, "Forest.Predict", "%d features, the model has %d", d, F.nfeat)
	}
	ret := make([]int, n)
	for i := range ret {
		votes := F.forest.Vote(mat.Row(nil, i, X))
		ret[i] = F.classes[floats.MaxIdx(votes)]
	}
	return ret, nil
}
