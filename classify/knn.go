/*
 * knn.go, part of gostates.
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
	"strconv"

	chem "github.com/rmera/gostates"
	"github.com/sjwhitworth/golearn/base"
	"github.com/sjwhitworth/golearn/knn"
	"gonum.org/v1/gonum/mat"
)

//KNN is a k-nearest-neighbors classifier with euclidean distances, on top of golearn.
//K is clipped to the size of the training set.
type KNN struct {
	K     int
	cls   *knn.KNNClassifier
	train *base.DenseInstances
	attrs []base.Attribute
	class *base.CategoricalAttribute
	fill  string //placeholder class for the instances to be predicted.
}

//NewKNN returns a KNN classifier with k neighbors.
func NewKNN(k int) *KNN {
	return &KNN{K: k}
}

func (K *KNN) Name() string { return "knn" }

//instances packs X (and y, if not nil) into golearn instances, using the attributes of K.
func (K *KNN) instances(X *mat.Dense, y []int) (*base.DenseInstances, error) {
	n, d := X.Dims()
	var inst *base.DenseInstances
	if K.train == nil {
		inst = base.NewDenseInstances()
		K.attrs = make([]base.Attribute, d)
		for j := range K.attrs {
			K.attrs[j] = base.NewFloatAttribute(fmt.Sprintf("pc%d", j+1))
			inst.AddAttribute(K.attrs[j])
		}
		K.class = base.NewCategoricalAttribute()
		K.class.SetName("cluster")
		inst.AddAttribute(K.class)
		if err := inst.AddClassAttribute(K.class); err != nil {
			return nil, err
		}
	} else {
		if d != len(K.attrs) {
			return nil, chem.Errorf(chem.DimensionMismatch, "KNN", "%d features, the model has %d", d, len(K.attrs))
		}
		inst = base.NewStructuralCopy(K.train)
	}
	if err := inst.Extend(n); err != nil {
		return nil, err
	}
	specs := make([]base.AttributeSpec, d)
	for j, a := range K.attrs {
		s, err := inst.GetAttribute(a)
		if err != nil {
			return nil, err
		}
		specs[j] = s
	}
	cspec, err := inst.GetAttribute(K.class)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		for j, s := range specs {
			inst.Set(s, i, base.PackFloatToBytes(X.At(i, j)))
		}
		label := K.fill
		if y != nil {
			label = strconv.Itoa(y[i])
		}
		inst.Set(cspec, i, K.class.GetSysValFromString(label))
	}
	return inst, nil
}

func (K *KNN) Fit(X *mat.Dense, y []int) error {
	if err := checkXy(X, y, "KNN.Fit"); err != nil {
		return err
	}
	K.train = nil
	K.fill = strconv.Itoa(y[0])
	inst, err := K.instances(X, y)
	if err != nil {
		return chem.Errorf(chem.InputError, "KNN.Fit", "%s", err.Error())
	}
	k := K.K
	if n, _ := X.Dims(); k > n {
		k = n
	}
	if k < 1 {
		k = 1
	}
	K.cls = knn.NewKnnClassifier("euclidean", "linear", k)
	if err := K.cls.Fit(inst); err != nil {
		return chem.Errorf(chem.InputError, "KNN.Fit", "%s", err.Error())
	}
	K.train = inst
	return nil
}

func (K *KNN) Predict(X *mat.Dense) ([]int, error) {
	if K.cls == nil {
		return nil, chem.NewError(chem.InputError, "KNN.Predict", "classifier not fitted")
	}
	inst, err := K.instances(X, nil)
	if err != nil {
		return nil, decorate(err, "KNN.Predict")
	}
	pred, err := K.cls.Predict(inst)
	if err != nil {
		return nil, chem.Errorf(chem.InputError, "KNN.Predict", "%s", err.Error())
	}
	n, _ := X.Dims()
	ret := make([]int, n)
	for i := range ret {
		ret[i], err = strconv.Atoi(base.GetClass(pred, i))
		if err != nil {
			return nil, chem.Errorf(chem.InputError, "KNN.Predict", "unexpected class '%s'", base.GetClass(pred, i))
		}
	}
	return ret, nil
}

func decorate(err error, caller string) error {
	if e, ok := err.(chem.Error); ok {
		e.Decorate(caller)
		return err
	}
	return chem.Errorf(chem.InputError, caller, "%s", err.Error())
}
