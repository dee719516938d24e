/*
 * geometric_test.go, part of gostates.
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

package chem

import (
	"math"
	"testing"

	v3 "github.com/rmera/gostates/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vec(Te *testing.T, x, y, z float64) *v3.Matrix {
	v, err := v3.NewMatrix([]float64{x, y, z})
	require.NoError(Te, err)
	return v
}

func TestDihedral(Te *testing.T) {
	a := vec(Te, 1, 0, 0)
	b := vec(Te, 0, 0, 0)
	c := vec(Te, 0, 1, 0)
	tests := map[string]struct {
		d    *v3.Matrix
		want float64
	}{
		"trans": {vec(Te, -1, 1, 0), math.Pi},
		"cis":   {vec(Te, 1, 1, 0), 0},
		"minus": {vec(Te, 0, 1, 1), -math.Pi / 2},
		"plus":  {vec(Te, 0, 1, -1), math.Pi / 2},
	}
	for name, tt := range tests {
		Te.Run(name, func(t *testing.T) {
			got := Dihedral(a, b, c, tt.d)
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.True(t, got > -math.Pi && got <= math.Pi)
		})
	}
}

func TestRadiusOfGyration(Te *testing.T) {
	c, _ := v3.NewMatrix([]float64{0, 0, 0, 2, 0, 0})
	rg, err := RadiusOfGyration(c, nil)
	require.NoError(Te, err)
	assert.InDelta(Te, 1.0, rg, 1e-12)
	rg, err = RadiusOfGyration(c, []float64{3, 1})
	require.NoError(Te, err)
	assert.InDelta(Te, math.Sqrt(0.75), rg, 1e-12)
	_, err = RadiusOfGyration(c, []float64{1})
	assert.True(Te, IsKind(err, DimensionMismatch))
}

func TestSuper(Te *testing.T) {
	ref, _ := v3.NewMatrix([]float64{
		0, 0, 0,
		1.5, 0, 0,
		1.5, 1.2, 0,
		0.3, 1.1, 0.9,
		-0.7, 0.2, 1.4,
	})
	//rotate 40 degrees around z and move it.
	s, c := math.Sin(Deg2Rad(40)), math.Cos(Deg2Rad(40))
	moved := v3.Zeros(ref.NVecs())
	for i := 0; i < ref.NVecs(); i++ {
		x, y, z := ref.At(i, 0), ref.At(i, 1), ref.At(i, 2)
		moved.Set(i, 0, c*x-s*y+3)
		moved.Set(i, 1, s*x+c*y-1)
		moved.Set(i, 2, z+0.5)
	}
	plain, err := RMSD(moved, ref)
	require.NoError(Te, err)
	assert.Greater(Te, plain, 1.0)
	rmsd, err := SuperRMSD(moved, ref)
	require.NoError(Te, err)
	assert.InDelta(Te, 0.0, rmsd, 1e-9)
	//the input must not be modified
	assert.InDelta(Te, 3.0, moved.At(0, 0), 1e-12)
	_, err = SuperRMSD(moved.View(0, 3), ref)
	assert.True(Te, IsKind(err, DimensionMismatch))
}

func TestMasses(Te *testing.T) {
	top, err := NewTopology([]*Atom{{Name: "CA"}, {Name: "1HB"}, {Name: "OXT", Mass: 15}, {Name: "XX"}})
	require.NoError(Te, err)
	_, err = top.Masses()
	assert.True(Te, IsKind(err, InputError))
	top.Atoms = top.Atoms[:3]
	m, err := top.Masses()
	require.NoError(Te, err)
	assert.Equal(Te, []float64{12.01, 1.0, 15}, m)
	r, err := VdwRadii(top)
	require.NoError(Te, err)
	assert.Equal(Te, 0.170, r[0])
}
