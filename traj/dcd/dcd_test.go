/*
 * dcd_test.go, part of gostates.
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

package dcd

import (
	"bytes"
	"encoding/binary"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"
	chem "github.com/rmera/gostates"
	"github.com/rmera/gostates/internal/testmol"
	v3 "github.com/rmera/gostates/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sameCoords(Te *testing.T, a, b *chem.Trajectory, tol float64) {
	require.Equal(Te, a.Len(), b.Len())
	for f := range a.Frames {
		ca, cb := a.Frames[f].Coords, b.Frames[f].Coords
		for i := 0; i < ca.NVecs(); i++ {
			for j := 0; j < 3; j++ {
				assert.InDelta(Te, ca.At(i, j), cb.At(i, j), tol, "frame %d atom %d", f, i)
			}
		}
	}
}

func TestDCDRoundTrip(Te *testing.T) {
	T := testmol.Trajectory(3, 7, 2)
	dir := Te.TempDir()
	name := filepath.Join(dir, "traj.dcd")
	require.NoError(Te, WriteFile(name, T))
	T2, err := ReadFile(name, T.Top)
	require.NoError(Te, err)
	sameCoords(Te, T, T2, 1e-6)

	//the frame count is set in the header on Close.
	data, err := os.ReadFile(name)
	require.NoError(Te, err)
	assert.Equal(Te, int32(7), int32(binary.LittleEndian.Uint32(data[8:])))

	zname := name + ".zst"
	out, err := os.Create(zname)
	require.NoError(Te, err)
	enc, err := zstd.NewWriter(out)
	require.NoError(Te, err)
	_, err = io.Copy(enc, bytes.NewReader(data))
	require.NoError(Te, err)
	require.NoError(Te, enc.Close())
	require.NoError(Te, out.Close())
	assert.True(Te, IsDCD(zname))
	T3, err := ReadFile(zname, T.Top)
	require.NoError(Te, err)
	sameCoords(Te, T, T3, 1e-6)

	_, err = ReadFile(name, nil)
	assert.True(Te, chem.IsKind(err, chem.InputError))
	_, err = ReadFile(filepath.Join(dir, "nothere.dcd"), T.Top)
	assert.True(Te, chem.IsKind(err, chem.InputError))
}

//bigEndianCell builds, in memory, a big-endian DCD with 2 atoms and 2 frames, where
//only the first frame has a unit cell block.
func bigEndianCell(Te *testing.T) []byte {
	var b bytes.Buffer
	w := func(v interface{}) { require.NoError(Te, binary.Write(&b, binary.BigEndian, v)) }
	icntrl := make([]int32, 20)
	icntrl[0] = 2
	icntrl[10] = 1 //unit cell
	icntrl[19] = 35
	w(int32(84))
	w([]byte("CORD"))
	w(icntrl)
	w(int32(84))
	w(int32(4 + 2*80))
	w(int32(2))
	w(make([]byte, 160))
	w(int32(4 + 2*80))
	w(int32(4))
	w(int32(2))
	w(int32(4))
	frame := func(cell bool, shift float32) {
		if cell {
			w(int32(48))
			w([]float64{30, 90, 40, 90, 90, 50})
			w(int32(48))
		}
		for j := 0; j < 3; j++ {
			w(int32(8))
			w([]float32{float32(j) + shift, 10 + shift})
			w(int32(8))
		}
	}
	frame(true, 0)
	frame(false, 1)
	return b.Bytes()
}

func TestDCDReader(Te *testing.T) {
	name := filepath.Join(Te.TempDir(), "be.dcd")
	require.NoError(Te, os.WriteFile(name, bigEndianCell(Te), 0644))
	D, err := New(name)
	require.NoError(Te, err)
	defer D.Close()
	assert.Equal(Te, 2, D.Len())
	c := v3.Zeros(2)
	box := make([]float64, 3)
	require.NoError(Te, D.Next(c, box))
	assert.Equal(Te, []float64{3, 4, 5}, box)
	assert.InDelta(Te, 0.1, c.At(0, 1), 1e-7)
	assert.InDelta(Te, 1.0, c.At(1, 2), 1e-7)
	require.NoError(Te, D.Next(nil))
	err = D.Next(c)
	_, ok := err.(chem.LastFrameError)
	assert.True(Te, ok, "%v", err)
	assert.False(Te, D.Readable())

	require.NoError(Te, os.WriteFile(name, []byte("not a trajectory at all"), 0644))
	_, err = New(name)
	assert.Error(Te, err)
	_, ok = err.(chem.TrajError)
	assert.True(Te, ok)
}

func TestDCDWriterErrors(Te *testing.T) {
	name := filepath.Join(Te.TempDir(), "w.dcd")
	_, err := NewWriter(name, 0)
	assert.Error(Te, err)
	W, err := NewWriter(name, 3)
	require.NoError(Te, err)
	assert.Error(Te, W.WNext(v3.Zeros(2)))
	assert.Error(Te, W.WNext(nil))
	require.NoError(Te, W.Close())
	assert.Error(Te, W.WNext(v3.Zeros(3)))
}
