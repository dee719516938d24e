/*
 * v3_test.go, part of gostates.
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

package v3

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMatrix(Te *testing.T) {
	A, err := NewMatrix([]float64{1, 2, 3, 4, 5, 6})
	require.NoError(Te, err)
	assert.Equal(Te, 2, A.NVecs())
	_, err = NewMatrix([]float64{1, 2, 3, 4})
	assert.Error(Te, err)
}

func TestSomeVecs(Te *testing.T) {
	a := []float64{1.0, 2.0, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18}
	A, err := NewMatrix(a)
	require.NoError(Te, err)
	B := Zeros(3)
	cind := []int{1, 3, 5}
	require.NoError(Te, B.SomeVecsSafe(A, cind))
	assert.Equal(Te, 4.0, B.At(0, 0))
	assert.Equal(Te, 18.0, B.At(2, 2))
	B.Set(1, 1, 55)
	A.SetVecs(B, cind)
	assert.Equal(Te, 55.0, A.At(3, 1))
	//index out of range must not panic through SomeVecsSafe
	C := Zeros(1)
	assert.Error(Te, C.SomeVecsSafe(A, []int{7}))
}

func TestViews(Te *testing.T) {
	A, _ := NewMatrix([]float64{1, 2, 3, 4, 5, 6, 7, 8, 9})
	v := A.VecView(1)
	v.Set(0, 0, 100)
	assert.Equal(Te, 100.0, A.At(1, 0))
	w := A.View(1, 2)
	assert.Equal(Te, 2, w.NVecs())
	assert.Equal(Te, 9.0, w.At(1, 2))
}

func TestCrossDot(Te *testing.T) {
	x, _ := NewMatrix([]float64{1, 0, 0})
	y, _ := NewMatrix([]float64{0, 1, 0})
	z := Zeros(1)
	z.Cross(x, y)
	assert.InDelta(Te, 1.0, z.At(0, 2), 1e-12)
	assert.InDelta(Te, 0.0, x.Dot(y), 1e-12)
	u := Zeros(1)
	w, _ := NewMatrix([]float64{3, 4, 0})
	u.Unit(w)
	assert.InDelta(Te, 1.0, u.Norm(), 1e-12)
	assert.InDelta(Te, 5.0, w.Distance(0, Zeros(1), 0), 1e-12)
}

func TestAddSubVec(Te *testing.T) {
	A, _ := NewMatrix([]float64{1, 1, 1, 2, 2, 2})
	v, _ := NewMatrix([]float64{1, 2, 3})
	B := Zeros(2)
	B.SubVec(A, v)
	assert.Equal(Te, 0.0, B.At(0, 0))
	assert.Equal(Te, -1.0, B.At(1, 2))
	B.AddVec(B, v)
	assert.True(Te, math.Abs(B.At(1, 2)-2) < 1e-12)
}
