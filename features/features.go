/*
 * features.go, part of gostates.
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

package features

import (
	"fmt"

	chem "github.com/rmera/gostates"
	"gonum.org/v1/gonum/mat"
)

//Block is a named, fixed-width set of columns of the feature matrix, with
//one row per frame, in frame order.
type Block struct {
	Name    string
	Columns []string
	Data    *mat.Dense
}

//NewBlock returns a zero-filled block with the given name and columns, and rows rows.
func NewBlock(name string, columns []string, rows int) *Block {
	return &Block{Name: name, Columns: columns, Data: mat.NewDense(rows, len(columns), nil)}
}

//Rows returns the number of frames in the block.
func (B *Block) Rows() int {
	r, _ := B.Data.Dims()
	return r
}

//Width returns the number of columns in the block.
func (B *Block) Width() int {
	return len(B.Columns)
}

//BlockSpan records the columns [Start, End) of a matrix that came from the block Name.
type BlockSpan struct {
	Name  string
	Start int
	End   int
}

//Matrix is the N x D feature matrix. Rows are frames in frame order, and D is the
//sum of the widths of the blocks it was built from.
type Matrix struct {
	Columns []string
	Blocks  []BlockSpan
	Data    *mat.Dense
}

//Aggregate concatenates blocks column-wise. All blocks must have the same, non-zero, number
//of rows, and a number of columns matching their column names; otherwise a
//DimensionMismatch error naming the offending block is returned. No rows are ever dropped.
func Aggregate(blocks []*Block) (*Matrix, error) {
	if len(blocks) == 0 {
		return nil, chem.NewError(chem.InputError, "features.Aggregate", "no descriptor blocks given")
	}
	n := -1
	D := 0
	for _, b := range blocks {
		if b == nil || b.Data == nil {
			return nil, chem.NewError(chem.InputError, "features.Aggregate", "nil descriptor block")
		}
		r, c := b.Data.Dims()
		if c != len(b.Columns) {
			return nil, chem.Errorf(chem.DimensionMismatch, "features.Aggregate", "block %s has %d columns but %d column names", b.Name, c, len(b.Columns))
		}
		if n < 0 {
			n = r
		}
		if r != n {
			return nil, chem.Errorf(chem.DimensionMismatch, "features.Aggregate", "block %s has %d rows, but %s has %d", b.Name, r, blocks[0].Name, n)
		}
		D += c
	}
	M := &Matrix{Columns: make([]string, 0, D), Blocks: make([]BlockSpan, 0, len(blocks)), Data: mat.NewDense(n, D, nil)}
	start := 0
	for _, b := range blocks {
		w := b.Width()
		M.Data.Slice(0, n, start, start+w).(*mat.Dense).Copy(b.Data)
		for _, c := range b.Columns {
			M.Columns = append(M.Columns, fmt.Sprintf("%s.%s", b.Name, c))
		}
		M.Blocks = append(M.Blocks, BlockSpan{Name: b.Name, Start: start, End: start + w})
		start += w
	}
	return M, nil
}

//Dims returns the number of frames and the number of features.
func (M *Matrix) Dims() (int, int) {
	return M.Data.Dims()
}

//Block returns a view of the columns that came from the block name, and false
//if there is no such block.
func (M *Matrix) Block(name string) (*mat.Dense, bool) {
	r, _ := M.Data.Dims()
	for _, s := range M.Blocks {
		if s.Name == name {
			return M.Data.Slice(0, r, s.Start, s.End).(*mat.Dense), true
		}
	}
	return nil, false
}

//WithData returns a Matrix with the same column metadata as M, but the given data, which must have
//the same dimensions as M's.
func (M *Matrix) WithData(data *mat.Dense) (*Matrix, error) {
	r, c := M.Data.Dims()
	r2, c2 := data.Dims()
	if r != r2 || c != c2 {
		return nil, chem.Errorf(chem.DimensionMismatch, "features.WithData", "%dx%d data for a %dx%d matrix", r2, c2, r, c)
	}
	return &Matrix{Columns: M.Columns, Blocks: M.Blocks, Data: data}, nil
}
