/*
 * logistic.go, part of gostates.
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
	"math"

	chem "github.com/rmera/gostates"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"
)

//Logistic is a multinomial logistic regression with an L2 penalty on the weights
//(not on the intercepts), fitted with L-BFGS.
type Logistic struct {
	Lambda  float64
	MaxIter int
	classes []int
	w       *mat.Dense //classes x (features+1), the last column holds the intercepts.
}

//NewLogistic returns a logistic regression with penalty lambda.
func NewLogistic(lambda float64) *Logistic {
	return &Logistic{Lambda: lambda, MaxIter: 500}
}

func (L *Logistic) Name() string { return "logistic" }

//scores puts in s the linear scores of the row x for the weights W.
func scores(s []float64, W *mat.Dense, x []float64) {
	c, d1 := W.Dims()
	for k := 0; k < c; k++ {
		wk := W.RawRowView(k)
		s[k] = floats.Dot(wk[:d1-1], x) + wk[d1-1]
	}
}

func (L *Logistic) Fit(X *mat.Dense, y []int) error {
	if err := checkXy(X, y, "Logistic.Fit"); err != nil {
		return err
	}
	n, d := X.Dims()
	L.classes = labelsOf(y)
	C := len(L.classes)
	index := make(map[int]int, C)
	for i, c := range L.classes {
		index[c] = i
	}
	yi := make([]int, n)
	for i, l := range y {
		yi[i] = index[l]
	}
	lambda := L.Lambda
	s := make([]float64, C)
	p := make([]float64, C)
	loss := func(grad, w []float64) float64 {
		W := mat.NewDense(C, d+1, w)
		var G *mat.Dense
		if grad != nil {
			for i := range grad {
				grad[i] = 0
			}
			G = mat.NewDense(C, d+1, grad)
		}
		f := 0.0
		for i := 0; i < n; i++ {
			x := X.RawRowView(i)
			scores(s, W, x)
			lse := floats.LogSumExp(s)
			f -= s[yi[i]] - lse
			if G == nil {
				continue
			}
			for k := range p {
				p[k] = math.Exp(s[k] - lse)
			}
			p[yi[i]] -= 1
			for k := 0; k < C; k++ {
				gk := G.RawRowView(k)
				floats.AddScaled(gk[:d], p[k], x)
				gk[d] += p[k]
			}
		}
		f /= float64(n)
		if G != nil {
			G.Scale(1/float64(n), G)
		}
		for k := 0; k < C; k++ {
			wk := W.RawRowView(k)[:d]
			f += 0.5 * lambda * floats.Dot(wk, wk)
			if G != nil {
				floats.AddScaled(G.RawRowView(k)[:d], lambda, wk)
			}
		}
		return f
	}
	problem := optimize.Problem{
		Func: func(w []float64) float64 { return loss(nil, w) },
		Grad: func(grad, w []float64) { loss(grad, w) },
	}
	settings := &optimize.Settings{MajorIterations: L.MaxIter, GradientThreshold: 1e-6}
	res, err := optimize.Minimize(problem, make([]float64, C*(d+1)), settings, &optimize.LBFGS{})
	if res == nil {
		return chem.Errorf(chem.NumericDegeneracy, "Logistic.Fit", "optimization failed: %v", err)
	}
	//a line search failure near the minimum still leaves a usable point.
	L.w = mat.NewDense(C, d+1, res.X)
	return nil
}

func (L *Logistic) Predict(X *mat.Dense) ([]int, error) {
	if L.w == nil {
		return nil, chem.NewError(chem.InputError, "Logistic.Predict", "classifier not fitted")
	}
	n, d := X.Dims()
	C, d1 := L.w.Dims()
	if d+1 != d1 {
		return nil, chem.Errorf(chem.DimensionMismatch, "Logistic.Predict", "%d features, the model has %d", d, d1-1)
	}
	ret := make([]int, n)
	s := make([]float64, C)
	for i := range ret {
		scores(s, L.w, X.RawRowView(i))
		ret[i] = L.classes[floats.MaxIdx(s)]
	}
	return ret, nil
}
