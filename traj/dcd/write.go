/*
 * write.go, part of gostates.
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
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	chem "github.com/rmera/gostates"
	v3 "github.com/rmera/gostates/v3"
)

//DcdW is a DCD trajectory opened for writing. The file is a little-endian,
//CHARMM-style DCD without unit cell. The number of frames in the header is
//only set when the writer is closed.
type DcdW struct {
	natoms   int32
	frames   int32
	writable bool
	filename string
	f        *os.File
	w        *bufio.Writer
	fields   [3][]float32
}

//NewWriter creates the file name and writes a DCD header for natoms atoms on it.
func NewWriter(name string, natoms int) (*DcdW, error) {
	if natoms <= 0 {
		return nil, Error{fmt.Sprintf("can't write frames of %d atoms", natoms), name, []string{"dcd.NewWriter"}, true}
	}
	D := &DcdW{natoms: int32(natoms), filename: name}
	var err error
	if D.f, err = os.Create(name); err != nil {
		return nil, Error{err.Error(), name, []string{"os.Create", "dcd.NewWriter"}, true}
	}
	D.w = bufio.NewWriter(D.f)
	if err := D.writeHeader(); err != nil {
		D.f.Close()
		return nil, errDecorate(err, "dcd.NewWriter")
	}
	for i := range D.fields {
		D.fields[i] = make([]float32, natoms)
	}
	D.writable = true
	return D, nil
}

func (D *DcdW) write(data interface{}, caller string) error {
	if err := binary.Write(D.w, binary.LittleEndian, data); err != nil {
		return Error{err.Error(), D.filename, []string{"binary.Write", caller}, true}
	}
	return nil
}

func (D *DcdW) writeHeader() error {
	const caller = "writeHeader"
	icntrl := make([]int32, 20)
	icntrl[2] = 1   //steps between frames
	icntrl[19] = 24 //CHARMM version, so readers don't take the file for X-PLOR.
	title := []byte(fmt.Sprintf("%-80s", "REMARKS written by gostates"))
	for _, v := range []interface{}{
		int32(84), []byte("CORD"), icntrl[:9], float32(1), icntrl[10:], int32(84),
		int32(4 + titleLen), int32(1), title, int32(4 + titleLen),
		int32(4), D.natoms, int32(4),
	} {
		if err := D.write(v, caller); err != nil {
			return err
		}
	}
	return nil
}

//Len returns the number of atoms per frame.
func (D *DcdW) Len() int {
	return int(D.natoms)
}

//WNext writes coords, in nm, as the next frame. The box is ignored.
func (D *DcdW) WNext(coords *v3.Matrix, box ...[]float64) error {
	const caller = "WNext"
	if !D.writable {
		return Error{TrajUnIni, D.filename, []string{caller}, true}
	}
	if coords == nil {
		return Error{NilCoordinates, D.filename, []string{caller}, true}
	}
	if coords.NVecs() != int(D.natoms) {
		return Error{fmt.Sprintf("%d coordinates for a trajectory of %d atoms", coords.NVecs(), D.natoms), D.filename, []string{caller}, true}
	}
	for i := 0; i < int(D.natoms); i++ {
		for j := range D.fields {
			D.fields[j][i] = float32(coords.At(i, j) * nm2A)
		}
	}
	size := 4 * D.natoms
	for _, f := range D.fields {
		for _, v := range []interface{}{size, f, size} {
			if err := D.write(v, caller); err != nil {
				return err
			}
		}
	}
	D.frames++
	return nil
}

//Close writes the number of frames in the header and closes the file.
func (D *DcdW) Close() error {
	const caller = "Close"
	if !D.writable {
		return nil
	}
	D.writable = false
	defer D.f.Close()
	if err := D.w.Flush(); err != nil {
		return Error{err.Error(), D.filename, []string{caller}, true}
	}
	//the frame count is the first control integer, after the record marker and "CORD".
	if _, err := D.f.Seek(8, io.SeekStart); err != nil {
		return Error{err.Error(), D.filename, []string{"Seek", caller}, true}
	}
	if err := binary.Write(D.f, binary.LittleEndian, D.frames); err != nil {
		return Error{err.Error(), D.filename, []string{"binary.Write", caller}, true}
	}
	if err := D.f.Close(); err != nil {
		return Error{err.Error(), D.filename, []string{caller}, true}
	}
	return nil
}

//WriteFile writes all the frames of T to the DCD file name.
func WriteFile(name string, T *chem.Trajectory) error {
	if err := T.Check(); err != nil {
		return errDecorate(err, "dcd.WriteFile")
	}
	W, err := NewWriter(name, T.Frames[0].Coords.NVecs())
	if err != nil {
		return errDecorate(err, "dcd.WriteFile")
	}
	for i, f := range T.Frames {
		if err := W.WNext(f.Coords); err != nil {
			W.Close()
			return errDecorate(err, fmt.Sprintf("dcd.WriteFile (frame %d)", i))
		}
	}
	return W.Close()
}
