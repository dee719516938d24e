/*
 * svm.go, part of gostates.
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
	"math/rand"

	chem "github.com/rmera/gostates"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

//SVM is a one-vs-rest linear support vector machine, trained with the Pegasos
//stochastic sub-gradient method on the hinge loss.
type SVM struct {
	Lambda  float64
	Epochs  int
	seed    int64
	classes []int
	w       [][]float64 //one weight vector per class, the last element is the bias.
}

//NewSVM returns an SVM with lambda 1e-3 and 50 epochs, that shuffles the training set with seed.
func NewSVM(seed int64) *SVM {
	return &SVM{Lambda: 1e-3, Epochs: 50, seed: seed}
}

func (S *SVM) Name() string { return "svm" }

//augmented returns the ith row of X with a 1 appended, into dst.
func augmented(dst []float64, X *mat.Dense, i int) []float64 {
	_, c := X.Dims()
	copy(dst[:c], X.RawRowView(i))
	dst[c] = 1
	return dst
}

func (S *SVM) Fit(X *mat.Dense, y []int) error {
	if err := checkXy(X, y, "SVM.Fit"); err != nil {
		return err
	}
	n, d := X.Dims()
	S.classes = labelsOf(y)
	S.w = make([][]float64, len(S.classes))
	rng := rand.New(rand.NewSource(S.seed))
	x := make([]float64, d+1)
	for ci, class := range S.classes {
		w := make([]float64, d+1)
		t := 0
		for e := 0; e < S.Epochs; e++ {
			for _, i := range rng.Perm(n) {
				t++
				eta := 1 / (S.Lambda * float64(t))
				yi := -1.0
				if y[i] == class {
					yi = 1
				}
				augmented(x, X, i)
				margin := yi * floats.Dot(w, x)
				floats.Scale(1-eta*S.Lambda, w)
				if margin < 1 {
					floats.AddScaled(w, eta*yi, x)
				}
			}
		}
		S.w[ci] = w
	}
	return nil
}

//Predict returns, for each row, the class with the largest decision value (the lowest class, in ties).
func (S *SVM) Predict(X *mat.Dense) ([]int, error) {
	if S.w == nil {
		return nil, chem.NewError(chem.InputError, "SVM.Predict", "classifier not fitted")
	}
	n, d := X.Dims()
	if d+1 != len(S.w[0]) {
		return nil, chem.Errorf(chem.DimensionMismatch, "SVM.Predict", "%d features, the model has %d", d, len(S.w[0])-1)
	}
	ret := make([]int, n)
	x := make([]float64, d+1)
	for i := range ret {
		augmented(x, X, i)
		best := 0
		bestv := floats.Dot(S.w[0], x)
		for ci := 1; ci < len(S.w); ci++ {
			if v := floats.Dot(S.w[ci], x); v > bestv {
				best, bestv = ci, v
			}
		}
		ret[i] = S.classes[best]
	}
	return ret, nil
}
