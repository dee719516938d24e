/*
 * metrics.go, part of gostates.
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
	"strconv"

	chem "github.com/rmera/gostates"
	"github.com/sjwhitworth/golearn/base"
	"github.com/sjwhitworth/golearn/evaluation"
	"gonum.org/v1/gonum/mat"
)

//ClassReport contains the per-class scores of a classifier on a test set.
type ClassReport struct {
	Class     int
	Support   int //members of the class in the test set
	Precision float64
	Recall    float64
	F1        float64
}

//labelGrid packs y into golearn instances with a single, categorical, class attribute.
func labelGrid(y []int) (*base.DenseInstances, error) {
	inst := base.NewDenseInstances()
	class := base.NewCategoricalAttribute()
	class.SetName("cluster")
	inst.AddAttribute(class)
	if err := inst.AddClassAttribute(class); err != nil {
		return nil, err
	}
	if err := inst.Extend(len(y)); err != nil {
		return nil, err
	}
	for i, l := range y {
		base.SetClass(inst, i, strconv.Itoa(l))
	}
	return inst, nil
}

//confusionMap returns the golearn confusion matrix of pred against truth, keyed by label.
func confusionMap(truth, pred []int, caller string) (evaluation.ConfusionMatrix, error) {
	if len(truth) != len(pred) || len(truth) == 0 {
		return nil, chem.Errorf(chem.DimensionMismatch, caller, "%d labels and %d predictions", len(truth), len(pred))
	}
	ref, err := labelGrid(truth)
	if err != nil {
		return nil, chem.Errorf(chem.InputError, caller, "%s", err.Error())
	}
	gen, err := labelGrid(pred)
	if err != nil {
		return nil, chem.Errorf(chem.InputError, caller, "%s", err.Error())
	}
	cm, err := evaluation.GetConfusionMatrix(ref, gen)
	if err != nil {
		return nil, chem.Errorf(chem.DimensionMismatch, caller, "%s", err.Error())
	}
	return evaluation.ConfusionMatrix(cm), nil
}

//zeroNaN turns the 0/0 scores of golearn into 0.
func zeroNaN(f float64) float64 {
	if math.IsNaN(f) {
		return 0
	}
	return f
}

//Accuracy returns the fraction of predictions equal to the truth.
func Accuracy(truth, pred []int) (float64, error) {
	cm, err := confusionMap(truth, pred, "Accuracy")
	if err != nil {
		return 0, err
	}
	return evaluation.GetAccuracy(cm), nil
}

//Confusion returns the confusion matrix for the given classes: element (i,j) is the number
//of elements of class classes[i] predicted as classes[j]. Labels not in classes are ignored.
func Confusion(truth, pred []int, classes []int) (*mat.Dense, error) {
	cm, err := confusionMap(truth, pred, "Confusion")
	if err != nil {
		return nil, err
	}
	C := mat.NewDense(len(classes), len(classes), nil)
	for i, t := range classes {
		row := cm[strconv.Itoa(t)]
		for j, p := range classes {
			C.Set(i, j, float64(row[strconv.Itoa(p)]))
		}
	}
	return C, nil
}

//Reports returns precision, recall and F1 for each of the classes. A score with a zero
//denominator is 0.
func Reports(truth, pred []int, classes []int) ([]ClassReport, error) {
	cm, err := confusionMap(truth, pred, "Reports")
	if err != nil {
		return nil, err
	}
	ret := make([]ClassReport, len(classes))
	for i, c := range classes {
		l := strconv.Itoa(c)
		support := evaluation.GetTruePositives(l, cm) + evaluation.GetFalseNegatives(l, cm)
		ret[i] = ClassReport{
			Class:     c,
			Support:   int(support),
			Precision: zeroNaN(evaluation.GetPrecision(l, cm)),
			Recall:    zeroNaN(evaluation.GetRecall(l, cm)),
			F1:        zeroNaN(evaluation.GetF1Score(l, cm)),
		}
	}
	return ret, nil
}
