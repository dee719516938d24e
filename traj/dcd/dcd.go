/*
 * dcd.go, part of gostates.
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

//Package dcd reads and writes CHARMM/NAMD binary (DCD) trajectories. Coordinates are
//stored in Angstrom in the file and handled in nm in memory. Files ending in .zst are
//read through a zstd decompressor.
package dcd

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
	chem "github.com/rmera/gostates"
	v3 "github.com/rmera/gostates/v3"
)

const (
	titleLen int32 = 80
	//nm to Angstrom
	nm2A float64 = 10.0
)

//DcdR is a DCD trajectory opened for reading.
type DcdR struct {
	natoms     int32
	readable   bool
	filename   string
	extrablock bool //frames carry a unit cell block
	fourdim    bool //frames carry a fourth coordinate block
	f          *os.File
	dec        *zstd.Decoder
	r          *bufio.Reader
	endian     binary.ByteOrder
	fields     [3][]float32
	cell       []float64
}

//New opens the DCD file name for reading. It supports both endiannesses and CHARMM
//(or NAMD >= 2.1) files without fixed atoms.
func New(name string) (*DcdR, error) {
	D := &DcdR{filename: name}
	var err error
	D.f, err = os.Open(name)
	if err != nil {
		return nil, Error{err.Error(), name, []string{"os.Open", "dcd.New"}, true}
	}
	var in io.Reader = D.f
	if strings.HasSuffix(name, ".zst") {
		if D.dec, err = zstd.NewReader(D.f); err != nil {
			D.Close()
			return nil, Error{err.Error(), name, []string{"zstd.NewReader", "dcd.New"}, true}
		}
		in = D.dec
	}
	D.r = bufio.NewReader(in)
	if err := D.readHeader(); err != nil {
		D.Close()
		return nil, errDecorate(err, "dcd.New")
	}
	for i := range D.fields {
		D.fields[i] = make([]float32, D.natoms)
	}
	D.readable = true
	return D, nil
}

func (D *DcdR) wrongFormat(msg, caller string) Error {
	return Error{WrongFormat + ": " + msg, D.filename, []string{caller}, true}
}

func (D *DcdR) read(data interface{}, caller string) error {
	if err := binary.Read(D.r, D.endian, data); err != nil {
		return Error{err.Error(), D.filename, []string{"binary.Read", caller}, true}
	}
	return nil
}

//readHeader reads the header, from the first marker to the number of atoms.
func (D *DcdR) readHeader() error {
	const caller = "readHeader"
	first := make([]byte, 4)
	if _, err := io.ReadFull(D.r, first); err != nil {
		return Error{err.Error(), D.filename, []string{caller}, true}
	}
	//the first record is 84 bytes long, which tells us the endianness.
	switch {
	case binary.LittleEndian.Uint32(first) == 84:
		D.endian = binary.LittleEndian
	case binary.BigEndian.Uint32(first) == 84:
		D.endian = binary.BigEndian
	default:
		return D.wrongFormat("bad first record marker", caller)
	}
	magic := make([]byte, 4)
	if err := D.read(magic, caller); err != nil {
		return err
	}
	if string(magic) != "CORD" {
		return D.wrongFormat("wrong magic number", caller)
	}
	icntrl := make([]byte, 80)
	if err := D.read(icntrl, caller); err != nil {
		return err
	}
	ctrl := func(i int) int32 {
		return int32(D.endian.Uint32(icntrl[4*i:]))
	}
	//X-PLOR sets the last control integer to zero, CHARMM to its version.
	if ctrl(19) == 0 {
		return D.wrongFormat("X-PLOR DCD files are not supported", caller)
	}
	if ctrl(8) != 0 {
		return D.wrongFormat("fixed atoms are not supported", caller)
	}
	D.extrablock = ctrl(10) != 0
	D.fourdim = ctrl(11) == 1
	if err := D.marker(84, caller); err != nil {
		return err
	}
	//title record
	var size, ntitle int32
	if err := D.read(&size, caller); err != nil {
		return err
	}
	if err := D.read(&ntitle, caller); err != nil {
		return err
	}
	if ntitle < 0 || size != 4+ntitle*titleLen {
		return D.wrongFormat("bad title record", caller)
	}
	if _, err := D.r.Discard(int(ntitle * titleLen)); err != nil {
		return Error{err.Error(), D.filename, []string{caller}, true}
	}
	if err := D.marker(size, caller); err != nil {
		return err
	}
	//atom number record
	if err := D.marker(4, caller); err != nil {
		return err
	}
	if err := D.read(&D.natoms, caller); err != nil {
		return err
	}
	if D.natoms <= 0 {
		return D.wrongFormat(fmt.Sprintf("%d atoms", D.natoms), caller)
	}
	return D.marker(4, caller)
}

//marker reads a record marker and checks that it is equal to want.
func (D *DcdR) marker(want int32, caller string) error {
	var m int32
	if err := D.read(&m, caller); err != nil {
		return err
	}
	if m != want {
		return D.wrongFormat(fmt.Sprintf("record marker %d, expected %d", m, want), caller)
	}
	return nil
}

//Readable returns true if the trajectory can still be read.
func (D *DcdR) Readable() bool {
	return D.readable
}

//Len returns the number of atoms per frame.
func (D *DcdR) Len() int {
	return int(D.natoms)
}

//Close closes the file. The reader can't be used afterwards.
func (D *DcdR) Close() {
	if D.dec != nil {
		D.dec.Close()
		D.dec = nil
	}
	if D.f != nil {
		D.f.Close()
		D.f = nil
	}
	D.readable = false
}

//Next reads the next frame into c, in nm, or discards it if c is nil. If a box slice
//with at least 3 elements is given and the frame has a unit cell, the cell lengths
//are put in it, in nm. At the end of the file a chem.LastFrameError is returned.
func (D *DcdR) Next(c *v3.Matrix, box ...[]float64) error {
	const caller = "Next"
	if !D.readable {
		return Error{TrajUnIni, D.filename, []string{caller}, true}
	}
	var size int32
	err := binary.Read(D.r, D.endian, &size)
	if err == io.EOF {
		D.readable = false
		return newLastFrameError(D.filename, caller)
	}
	if err != nil {
		return Error{err.Error(), D.filename, []string{"binary.Read", caller}, true}
	}
	//some programs only write the unit cell block in some frames, so the size
	//tells us whether this is the cell or already the X block.
	hascell := false
	if D.extrablock && size != 4*D.natoms {
		if size != 48 {
			return D.wrongFormat(fmt.Sprintf("unit cell block of %d bytes", size), caller)
		}
		if D.cell == nil {
			D.cell = make([]float64, 6)
		}
		if err := D.read(D.cell, caller); err != nil {
			return err
		}
		if err := D.marker(size, caller); err != nil {
			return err
		}
		hascell = true
		if err := D.read(&size, caller); err != nil {
			return err
		}
	}
	for i := range D.fields {
		if i > 0 {
			if err := D.read(&size, caller); err != nil {
				return err
			}
		}
		if size != 4*D.natoms {
			return D.wrongFormat(fmt.Sprintf("coordinate block of %d bytes for %d atoms", size, D.natoms), caller)
		}
		if err := D.read(D.fields[i], caller); err != nil {
			return err
		}
		if !finite(D.fields[i]) {
			return D.wrongFormat("non-finite coordinates", caller)
		}
		if err := D.marker(size, caller); err != nil {
			return err
		}
	}
	if D.fourdim {
		if err := D.read(&size, caller); err != nil {
			return err
		}
		if _, err := D.r.Discard(int(size)); err != nil {
			return Error{err.Error(), D.filename, []string{caller}, true}
		}
		if err := D.marker(size, caller); err != nil {
			return err
		}
	}
	if hascell && len(box) > 0 && len(box[0]) >= 3 {
		//the cell is stored as A, gamma, B, beta, alpha, C
		box[0][0] = D.cell[0] / nm2A
		box[0][1] = D.cell[2] / nm2A
		box[0][2] = D.cell[5] / nm2A
	}
	if c == nil {
		return nil
	}
	if c.NVecs() != int(D.natoms) {
		return Error{fmt.Sprintf("%s: got space for %d atoms, the frame has %d", NotEnoughSpace, c.NVecs(), D.natoms), D.filename, []string{caller}, true}
	}
	for i := 0; i < int(D.natoms); i++ {
		for j := range D.fields {
			c.Set(i, j, float64(D.fields[j][i])/nm2A)
		}
	}
	return nil
}

//ReadFile reads a whole DCD trajectory into memory. DCD files carry no atom information,
//so top is required.
func ReadFile(name string, top chem.Atomer) (*chem.Trajectory, error) {
	if top == nil {
		return nil, chem.Errorf(chem.InputError, "dcd.ReadFile", "a topology is needed to read %s", name)
	}
	D, err := New(name)
	if err != nil {
		return nil, chem.Errorf(chem.InputError, "dcd.ReadFile", "%s", err.Error())
	}
	defer D.Close()
	T, err := chem.ReadTrajectory(D, top)
	if err != nil {
		return nil, errDecorate(err, "dcd.ReadFile")
	}
	return T, nil
}

//IsDCD returns true if name has a DCD file extension (.dcd, optionally followed by .zst).
func IsDCD(name string) bool {
	name = strings.TrimSuffix(strings.ToLower(name), ".zst")
	return strings.HasSuffix(name, ".dcd")
}

//finite returns false if any element of the slice is a NaN or an infinity.
func finite(f []float32) bool {
	for _, v := range f {
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			return false
		}
	}
	return true
}
