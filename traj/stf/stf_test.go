/*
 * stf_test.go, part of gostates.
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

package stf

import (
	"path/filepath"
	"testing"

	chem "github.com/rmera/gostates"
	"github.com/rmera/gostates/internal/testmol"
	v3 "github.com/rmera/gostates/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSTFRoundTrip(Te *testing.T) {
	T := testmol.Trajectory(4, 6, 1)
	for _, ext := range []string{"stf", "stz", "stl"} {
		Te.Run(ext, func(t *testing.T) {
			name := filepath.Join(t.TempDir(), "test."+ext)
			require.NoError(t, WriteFile(name, T, map[string]string{"prec": "3"}))
			T2, err := ReadFile(name, nil)
			require.NoError(t, err)
			require.Equal(t, T.Len(), T2.Len())
			require.Equal(t, T.Top.Len(), T2.Top.Len())
			assert.Equal(t, *T.Top.Atom(2), *T2.Top.Atom(2))
			for i, f := range T.Frames {
				for j := 0; j < f.Coords.NVecs(); j++ {
					for k := 0; k < 3; k++ {
						//prec 3 in Angstrom
						assert.InDelta(t, f.Coords.At(j, k), T2.Frames[i].Coords.At(j, k), 0.00005+1e-12)
					}
				}
			}
		})
	}
}

func TestSTFReader(Te *testing.T) {
	name := filepath.Join(Te.TempDir(), "box.stf")
	W, err := NewWriter(name, 2, map[string]string{"prec": "nonsense", "title": "a=b"})
	require.NoError(Te, err)
	c, _ := v3.NewMatrix([]float64{0.1, 0.2, 0.3, -0.4, 0.5, 0.6})
	box := []float64{5, 0, 0, 0, 5, 0, 0, 0, 5}
	require.NoError(Te, W.WNext(c, box))
	require.NoError(Te, W.WNext(c))
	assert.Error(Te, W.WNext(v3.Zeros(3)))
	require.NoError(Te, W.Close())

	R, header, err := New(name)
	require.NoError(Te, err)
	assert.Equal(Te, "a=b", header["title"])
	assert.Equal(Te, "2", header["prec"])
	assert.Equal(Te, 2, R.Len())
	out := v3.Zeros(2)
	rbox := make([]float64, 9)
	require.NoError(Te, R.Next(out, rbox))
	assert.Equal(Te, box, rbox)
	assert.InDelta(Te, -0.4, out.At(1, 0), 1e-9)
	require.NoError(Te, R.Next(nil))
	err = R.Next(out)
	_, ok := err.(chem.LastFrameError)
	assert.True(Te, ok)
	assert.False(Te, R.Readable())
	//no topology anywhere
	_, err = ReadFile(name, nil)
	assert.True(Te, chem.IsKind(err, chem.InputError))
	_, err = ReadFile(filepath.Join(Te.TempDir(), "missing.stf"), nil)
	assert.True(Te, chem.IsKind(err, chem.InputError))
}
