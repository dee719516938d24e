/*
 * descriptor_test.go, part of gostates.
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

package descriptor

import (
	"math"
	"testing"

	chem "github.com/rmera/gostates"
	"github.com/rmera/gostates/internal/testmol"
	v3 "github.com/rmera/gostates/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestExtract(Te *testing.T) {
	T := testmol.Trajectory(5, 6, 1)
	O := DefaultOptions()
	O.SpherePoints = 100
	calls := 0
	last := 0
	O.Progress = func(done, total int) {
		calls++
		last = done
		assert.Equal(Te, 6, total)
	}
	blocks, err := Extract(T, nil, O)
	require.NoError(Te, err)
	require.Len(Te, blocks, len(AllKinds()))
	assert.Equal(Te, 6, calls)
	assert.Equal(Te, 6, last)
	widths := map[string]int{"dihedrals": 6, "hbonds": 1, "rg": 1, "rmsd": 1, "sasa": 1, "distances": 10}
	for i, b := range blocks {
		assert.Equal(Te, string(AllKinds()[i]), b.Name)
		assert.Equal(Te, 6, b.Rows(), b.Name)
		assert.Equal(Te, widths[b.Name], b.Width(), b.Name)
	}
	assert.Equal(Te, []string{"phi:2", "psi:2", "phi:3", "psi:3", "phi:4", "psi:4"}, blocks[0].Columns)
	assert.Equal(Te, "CA1-CA2", blocks[5].Columns[0])
	for f := 0; f < 6; f++ {
		for j := 0; j < 6; j++ {
			v := blocks[0].Data.At(f, j)
			assert.True(Te, v > -math.Pi && v <= math.Pi)
		}
		hb := blocks[1].Data.At(f, 0)
		assert.Equal(Te, math.Round(hb), hb)
		assert.Greater(Te, blocks[2].Data.At(f, 0), 0.0)
		assert.Greater(Te, blocks[4].Data.At(f, 0), 0.0)
		//consecutive CAs
		assert.InDelta(Te, testmol.Spacing, blocks[5].Data.At(f, 0), 0.05)
	}
	assert.InDelta(Te, 0.0, blocks[3].Data.At(0, 0), 1e-9)
	assert.Greater(Te, blocks[3].Data.At(5, 0), 0.0)
}

func TestExtractDeterministic(Te *testing.T) {
	T := testmol.Trajectory(4, 8, 3)
	O := DefaultOptions()
	O.SpherePoints = 50
	O.Cpus = 1
	serial, err := Extract(T, nil, O)
	require.NoError(Te, err)
	O.Cpus = 4
	parallel, err := Extract(T, nil, O)
	require.NoError(Te, err)
	for i := range serial {
		assert.True(Te, mat.Equal(serial[i].Data, parallel[i].Data), serial[i].Name)
	}
}

func TestExtractErrors(Te *testing.T) {
	T := testmol.Trajectory(4, 4, 2)
	//a frame whose own topology loses one CA
	top := T.Top.(*chem.Topology)
	ats := make([]*chem.Atom, top.Len())
	for i, a := range top.Atoms {
		ats[i] = a.Copy()
	}
	ats[7].Name = "CX"
	other, err := chem.NewTopology(ats)
	require.NoError(Te, err)
	T.Frames[2].Top = other
	_, err = Extract(T, []Kind{Rg, Distances}, nil)
	require.Error(Te, err)
	assert.True(Te, chem.IsKind(err, chem.DimensionMismatch))
	assert.Contains(Te, err.Error(), "frame 2")
	assert.Contains(Te, err.Error(), "distances")
	//but scalar descriptors don't care
	_, err = Extract(T, []Kind{Rg, HBonds}, nil)
	assert.NoError(Te, err)

	T = testmol.Trajectory(4, 4, 2)
	O := DefaultOptions()
	O.ReferenceFrame = 4
	_, err = Extract(T, []Kind{RMSD}, O)
	assert.True(Te, chem.IsKind(err, chem.InputError))
	_, err = Extract(T, []Kind{Rg, Rg}, nil)
	assert.True(Te, chem.IsKind(err, chem.InputError))
	_, err = ParseKind("volume")
	assert.True(Te, chem.IsKind(err, chem.InputError))
	k, err := ParseKind("sasa")
	require.NoError(Te, err)
	assert.Equal(Te, SASA, k)

	T.Top.(*chem.Topology).Atoms[0].Symbol = "Qq"
	_, err = Extract(T, []Kind{Rg}, nil)
	assert.True(Te, chem.IsKind(err, chem.InputError))
	O = DefaultOptions()
	O.MassWeighted = false
	_, err = Extract(T, []Kind{Rg}, O)
	assert.NoError(Te, err)
}

func TestBakerHubbard(Te *testing.T) {
	B := DefaultBakerHubbard()
	d, _ := v3.NewMatrix([]float64{0, 0, 0})
	h, _ := v3.NewMatrix([]float64{0.1, 0, 0})
	for name, tt := range map[string]struct {
		a    []float64
		want bool
	}{
		"linear": {[]float64{0.3, 0, 0}, true},
		"bent":   {[]float64{0.1, 0.2, 0}, false},
		"far":    {[]float64{0.4, 0, 0}, false},
	} {
		Te.Run(name, func(t *testing.T) {
			a, _ := v3.NewMatrix(tt.a)
			assert.Equal(t, tt.want, B.IsHBond(d, h, a))
		})
	}
}

func TestHBondCount(Te *testing.T) {
	ats := []*chem.Atom{
		{Name: "N", MolID: 1},
		{Name: "H", MolID: 1},
		{Name: "O", MolID: 2},
		{Name: "H", MolID: 2}, //too far from the O to be paired with it
	}
	top, err := chem.NewTopology(ats)
	require.NoError(Te, err)
	c, _ := v3.NewMatrix([]float64{0, 0, 0, 0.1, 0, 0, 0.3, 0, 0, 0.3, 0.5, 0})
	T, err := chem.NewTrajectory(top, []*v3.Matrix{c})
	require.NoError(Te, err)
	blocks, err := Extract(T, []Kind{HBonds}, nil)
	require.NoError(Te, err)
	assert.Equal(Te, 1.0, blocks[0].Data.At(0, 0))
}

func TestShrakeRupley(Te *testing.T) {
	sphere := GoldenSpiral(500)
	for _, p := range sphere {
		assert.InDelta(Te, 1.0, math.Sqrt(p[0]*p[0]+p[1]*p[1]+p[2]*p[2]), 1e-12)
	}
	one, _ := v3.NewMatrix([]float64{1, 2, 3})
	assert.InDelta(Te, 4*math.Pi*0.25, ShrakeRupley(one, []float64{0.5}, sphere), 1e-9)
	apart, _ := v3.NewMatrix([]float64{0, 0, 0, 3, 0, 0})
	assert.InDelta(Te, 8*math.Pi, ShrakeRupley(apart, []float64{1, 1}, sphere), 1e-9)
	//the spiral is evenly spaced along y.
	touching, _ := v3.NewMatrix([]float64{0, 0, 0, 0, 1, 0})
	area := ShrakeRupley(touching, []float64{1, 1}, sphere)
	//each sphere loses a cap of height 1/2, i.e. a fourth of its area
	assert.InDelta(Te, 6*math.Pi, area, 1e-9)
}
