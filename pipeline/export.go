/*
 * export.go, part of gostates.
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

package pipeline

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/klauspost/compress/zstd"
	chem "github.com/rmera/gostates"
	"github.com/rmera/gostates/represent"
	"gonum.org/v1/gonum/mat"
)

//table is a CSV file to be written: a header and the rows.
type table struct {
	name   string
	header []string
	rows   [][]string
}

func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

//frameTable returns a table with a frame column followed by the columns of data.
func frameTable(name string, columns []string, data *mat.Dense) *table {
	r, _ := data.Dims()
	T := &table{name: name, header: append([]string{"frame"}, columns...), rows: make([][]string, r)}
	for i := 0; i < r; i++ {
		row := []string{strconv.Itoa(i)}
		for _, v := range data.RawRowView(i) {
			row = append(row, ftoa(v))
		}
		T.rows[i] = row
	}
	return T
}

//tables returns every table of the result.
func tables(R *Result) []*table {
	var ret []*table
	for _, b := range R.Blocks {
		ret = append(ret, frameTable(b.Name, b.Columns, b.Data))
	}
	if R.Features != nil {
		ret = append(ret, frameTable("features", R.Features.Columns, R.Features.Data))
	}
	if R.Standardized != nil {
		ret = append(ret, frameTable("standardized", R.Standardized.Columns, R.Standardized.Data))
	}
	if R.Points != nil {
		_, k := R.Points.Dims()
		cols := make([]string, k)
		for j := range cols {
			cols[j] = fmt.Sprintf("pc%d", j+1)
		}
		T := frameTable("pca", cols, R.Points)
		if R.Clustering != nil {
			T.header = append(T.header, "cluster")
			for i := range T.rows {
				T.rows[i] = append(T.rows[i], strconv.Itoa(R.Clustering.Labels[i]))
			}
		}
		ret = append(ret, T)
	}
	if R.PCA != nil {
		T := &table{name: "variance", header: []string{"component", "variance", "ratio", "cumulative_pct"}}
		cum := R.PCA.CumulativeVariance()
		for i, v := range R.PCA.Variance {
			T.rows = append(T.rows, []string{strconv.Itoa(i + 1), ftoa(v), ftoa(R.PCA.Ratio[i]), ftoa(cum[i])})
		}
		ret = append(ret, T)
	}
	if R.Estimate != nil {
		T := &table{name: "inertia", header: []string{"k", "mean_inertia", "std_inertia", "chosen"}}
		for i, k := range R.Estimate.KRange {
			T.rows = append(T.rows, []string{strconv.Itoa(k), ftoa(R.Estimate.Inertia[i]), ftoa(R.Estimate.Std[i]), strconv.FormatBool(k == R.Estimate.K)})
		}
		ret = append(ret, T)
	}
	if len(R.Benchmark) > 0 {
		T := &table{name: "classifiers", header: []string{"rank", "family", "accuracy", "cv_mean", "cv_scores", "error"}}
		C := &table{name: "learning_curves", header: []string{"family", "fraction", "size", "train_mean", "train_std", "valid_mean", "valid_std"}}
		S := &table{name: "class_scores", header: []string{"family", "class", "support", "precision", "recall", "f1"}}
		for i, b := range R.Benchmark {
			errs := ""
			if b.Err != nil {
				errs = b.Err.Error()
			}
			T.rows = append(T.rows, []string{strconv.Itoa(i + 1), b.Name, ftoa(b.Accuracy), ftoa(b.CVMean), fmt.Sprint(b.CVScores), errs})
			for _, p := range b.Curve {
				C.rows = append(C.rows, []string{b.Name, ftoa(p.Fraction), ftoa(p.Size), ftoa(p.TrainMean), ftoa(p.TrainStd), ftoa(p.ValidMean), ftoa(p.ValidStd)})
			}
			for _, c := range b.Classes {
				S.rows = append(S.rows, []string{b.Name, strconv.Itoa(c.Class), strconv.Itoa(c.Support), ftoa(c.Precision), ftoa(c.Recall), ftoa(c.F1)})
			}
		}
		ret = append(ret, T, C, S)
	}
	return ret
}

//writeTable writes T in dir, zstd-compressed if compress is true, and returns the file name.
func writeTable(T *table, dir string, compress bool) (string, error) {
	name := filepath.Join(dir, T.name+".csv")
	if compress {
		name += ".zst"
	}
	f, err := os.Create(name)
	if err != nil {
		return "", chem.Errorf(chem.InputError, "pipeline.Export", "%s", err.Error())
	}
	defer f.Close()
	var out io.Writer = f
	var enc *zstd.Encoder
	if compress {
		if enc, err = zstd.NewWriter(f); err != nil {
			return "", chem.Errorf(chem.InputError, "pipeline.Export", "%s", err.Error())
		}
		out = enc
	}
	w := csv.NewWriter(out)
	w.Write(T.header)
	w.WriteAll(T.rows) //WriteAll flushes.
	if err := w.Error(); err != nil {
		return "", chem.Errorf(chem.InputError, "pipeline.Export", "%s: %s", name, err.Error())
	}
	if enc != nil {
		if err := enc.Close(); err != nil {
			return "", chem.Errorf(chem.InputError, "pipeline.Export", "%s: %s", name, err.Error())
		}
	}
	if err := f.Close(); err != nil {
		return "", chem.Errorf(chem.InputError, "pipeline.Export", "%s: %s", name, err.Error())
	}
	return name, nil
}

//Export writes the tables of R as CSV files (compressed with zstd, with a .csv.zst extension,
//if compress is true) in dir, which is created if needed, together with one PDB file per
//representative frame. It returns the names of the files written.
func Export(R *Result, dir string, compress bool) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, chem.Errorf(chem.InputError, "pipeline.Export", "%s", err.Error())
	}
	var names []string
	for _, T := range tables(R) {
		name, err := writeTable(T, dir, compress)
		if err != nil {
			return names, err
		}
		names = append(names, name)
	}
	pdbs, err := represent.Export(R.Representatives, dir)
	names = append(names, pdbs...)
	if err != nil {
		return names, errDecorate(err, "pipeline.Export")
	}
	return names, nil
}
