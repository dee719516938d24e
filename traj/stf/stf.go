/*
 * stf.go, part of gostates.
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
	"bufio"
	"compress/flate"
	"compress/gzip"
	"compress/lzw"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
	chem "github.com/rmera/gostates"
	"github.com/rmera/gostates/chemjson"
	v3 "github.com/rmera/gostates/v3"
	"github.com/rs/zerolog/log"
)

const (
	lzwLitwidth int = 8
	//DefaultPrec is the number of decimal places (in Angstrom) kept by the writer.
	DefaultPrec int = 2
	//nm to Angstrom
	nm2A float64 = 10.0
)

//the compressor is chosen from the last letter of the file name.
func newCompressor(name string, w io.Writer) (io.WriteCloser, error) {
	switch strings.ToLower(name)[len(name)-1] {
	case 'l':
		return lzw.NewWriter(w, lzw.MSB, lzwLitwidth), nil
	case 'z':
		return gzip.NewWriterLevel(w, gzip.BestCompression)
	case 'r':
		return flate.NewWriter(w, flate.BestCompression)
	default:
		return zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	}
}

//*zstd.Decoder has a Close method without a return value, so it doesn't
//implement io.ReadCloser.
type zstdCloser struct {
	*zstd.Decoder
}

func (z zstdCloser) Close() error {
	z.Decoder.Close()
	return nil
}

func newDecompressor(name string, r io.Reader) (io.ReadCloser, error) {
	switch strings.ToLower(name)[len(name)-1] {
	case 'l':
		return lzw.NewReader(r, lzw.MSB, lzwLitwidth), nil
	case 'z':
		return gzip.NewReader(r)
	case 'r':
		return flate.NewReader(r), nil
	default:
		d, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return zstdCloser{d}, nil
	}
}

/****Writer****/

//StfW writes STF trajectories.
type StfW struct {
	f         *os.File
	h         io.WriteCloser
	natoms    int
	filename  string
	writeable bool
	prec      int
}

//NewWriter creates the file name and returns a writer for trajectories with natoms atoms per frame.
//The pairs in header are written to the file header. If header contains a "prec" key with a valid
//positive integer, that precision is used, otherwise DefaultPrec is used (and written to the header).
func NewWriter(name string, natoms int, header map[string]string) (*StfW, error) {
	if name == "" || natoms <= 0 {
		return nil, Error{fmt.Sprintf("invalid file name '%s' or atom number %d", name, natoms), name, []string{"NewWriter"}, true}
	}
	S := &StfW{filename: name, natoms: natoms, prec: DefaultPrec}
	var err error
	S.f, err = os.Create(name)
	if err != nil {
		return nil, Error{UnableToOpen + ": " + err.Error(), name, []string{"NewWriter"}, true}
	}
	S.h, err = newCompressor(name, S.f)
	if err != nil {
		S.f.Close()
		return nil, Error{"can't start the compressor: " + err.Error(), name, []string{"NewWriter"}, true}
	}
	h := make(map[string]string, len(header)+1)
	for k, v := range header {
		h[k] = v
	}
	if p, ok := h["prec"]; ok {
		prec, err := strconv.Atoi(p)
		if err == nil && prec > 0 {
			S.prec = prec
		} else {
			log.Warn().Str("file", name).Str("prec", p).Msg("Invalid precision for STF trajectory, will use the default")
		}
	}
	h["prec"] = strconv.Itoa(S.prec)
	//sorted, so files are reproducible
	keys := make([]string, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, k := range keys {
		if strings.ContainsAny(k, "=\n") || strings.Contains(h[k], "\n") {
			S.Close()
			return nil, Error{fmt.Sprintf("malformed header entry '%s'", k), name, []string{"NewWriter"}, true}
		}
		fmt.Fprintf(&b, "%s=%s\n", k, h[k])
	}
	fmt.Fprintf(&b, "** %d\n", natoms)
	if _, err := io.WriteString(S.h, b.String()); err != nil {
		S.Close()
		return nil, Error{"can't write header: " + err.Error(), name, []string{"NewWriter"}, true}
	}
	S.writeable = true
	return S, nil
}

//Len returns the number of atoms per frame.
func (S *StfW) Len() int {
	return S.natoms
}

//WNext writes the coordinates in coord (in nm) as the next frame. If given, and it has at least 9 elements,
//box is written as the box vectors.
func (S *StfW) WNext(coord *v3.Matrix, box ...[]float64) error {
	if !S.writeable {
		return Error{TrajUnIniWrite, S.filename, []string{"WNext"}, true}
	}
	if coord == nil {
		return Error{NilCoordinates, S.filename, []string{"WNext"}, true}
	}
	if v := coord.NVecs(); v != S.natoms {
		return Error{fmt.Sprintf("%d coordinates given, but %d expected", v, S.natoms), S.filename, []string{"WNext"}, true}
	}
	var b strings.Builder
	var f [3]float64
	for i := 0; i < S.natoms; i++ {
		for j := range f {
			f[j] = coord.At(i, j) * nm2A
		}
		b.WriteString(coordsEncode(f, S.prec))
	}
	if len(box) > 0 && len(box[0]) >= 9 {
		bx := box[0]
		fmt.Fprintf(&b, "* %4.2f %4.2f %4.2f %4.2f %4.2f %4.2f %4.2f %4.2f %4.2f\n", bx[0], bx[1], bx[2], bx[3], bx[4], bx[5], bx[6], bx[7], bx[8])
	} else {
		b.WriteString("*\n")
	}
	if _, err := io.WriteString(S.h, b.String()); err != nil {
		return Error{"can't write frame: " + err.Error(), S.filename, []string{"WNext"}, true}
	}
	return nil
}

//Close flushes and closes the file. The writer can't be used after this call.
func (S *StfW) Close() error {
	if S == nil || S.f == nil {
		return nil
	}
	S.writeable = false
	err := S.h.Close()
	err2 := S.f.Close()
	S.f = nil
	if err == nil {
		err = err2
	}
	if err != nil {
		return Error{"can't close: " + err.Error(), S.filename, []string{"Close"}, true}
	}
	return nil
}

func coordsEncode(f [3]float64, prec int) string {
	p := math.Pow(10.0, float64(prec))
	var t [3]int
	for i, v := range f {
		t[i] = int(math.RoundToEven(v * p))
	}
	return fmt.Sprintf("%d %d %d\n", t[0], t[1], t[2])
}

/****Reader****/

//StfR reads STF trajectories. It implements chem.Traj.
type StfR struct {
	f        *os.File
	dec      io.ReadCloser
	h        *bufio.Reader
	natoms   int
	filename string
	prec     int
	readable bool
}

//New opens a STF trajectory for reading, and returns a pointer
//to the handle, a map with the header and error or nil.
func New(name string) (*StfR, map[string]string, error) {
	S := &StfR{natoms: -1, filename: name, prec: DefaultPrec}
	var err error
	S.f, err = os.Open(name)
	if err != nil {
		return nil, nil, Error{UnableToOpen + ": " + err.Error(), name, []string{"New"}, true}
	}
	S.dec, err = newDecompressor(name, bufio.NewReader(S.f))
	if err != nil {
		S.f.Close()
		return nil, nil, Error{"can't start the decompressor: " + err.Error(), name, []string{"New"}, true}
	}
	S.h = bufio.NewReader(S.dec)
	m := make(map[string]string)
	for {
		str, err := S.h.ReadString('\n')
		if err != nil {
			S.Close()
			return nil, nil, Error{"can't read header: " + err.Error(), name, []string{"New"}, true}
		}
		str = strings.TrimSuffix(str, "\n")
		if strings.HasPrefix(str, "**") {
			nat := strings.Fields(str)
			if len(nat) < 2 {
				S.Close()
				return nil, nil, Error{fmt.Sprintf("can't read atom number from '%s'", str), name, []string{"New"}, true}
			}
			S.natoms, err = strconv.Atoi(nat[1])
			if err != nil || S.natoms <= 0 {
				S.Close()
				return nil, nil, Error{fmt.Sprintf("can't read atom number from '%s'", nat[1]), name, []string{"New"}, true}
			}
			break
		}
		kv := strings.SplitN(str, "=", 2)
		if len(kv) != 2 {
			S.Close()
			return nil, nil, Error{fmt.Sprintf("malformed header line '%s'", str), name, []string{"New"}, true}
		}
		m[kv[0]] = kv[1]
	}
	if p, ok := m["prec"]; ok {
		prec, err := strconv.Atoi(p)
		if err == nil && prec > 0 {
			S.prec = prec
		} else {
			log.Warn().Str("file", name).Str("prec", p).Msg("Invalid precision for STF trajectory, will assume the default")
		}
	}
	S.readable = true
	return S, m, nil
}

//Readable returns true if the handle is readable (if it is possible to call Next on it)
func (S *StfR) Readable() bool {
	return S.readable
}

//Len returns the number of atoms in each frame of the trajectory.
func (S *StfR) Len() int {
	return S.natoms
}

func coordsDecode(str string, temp *[3]float64, prec int) error {
	p := math.Pow(10.0, float64(prec))
	s := strings.Fields(str)
	if len(s) != 3 {
		return fmt.Errorf("ill formated coordinates line '%s': %d fields", str, len(s))
	}
	for i, v := range s {
		f, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("can't parse coordinate %d (%s): %s", i, v, err.Error())
		}
		temp[i] = float64(f) / p
	}
	return nil
}

//Next puts in c the coordinates (in nm) of the next frame of the trajectory
//and, if given and present in the file, puts the box vectors in box.
//If c is nil, the frame is read and checked, but discarded.
//At the end of the trajectory, it returns an error that implements chem.LastFrameError.
func (S *StfR) Next(c *v3.Matrix, box ...[]float64) error {
	if !S.readable {
		return Error{TrajUnIniRead, S.filename, []string{"Next"}, true}
	}
	if c != nil && c.NVecs() != S.natoms {
		return Error{fmt.Sprintf("matrix with %d vectors given for a %d-atom frame", c.NVecs(), S.natoms), S.filename, []string{"Next"}, true}
	}
	var temp [3]float64
	for i := 0; i < S.natoms; i++ {
		b, err := S.h.ReadString('\n')
		if err != nil {
			if err == io.EOF && i == 0 && b == "" {
				//the trajectory just ended.
				S.Close()
				return newLastFrameError(S.filename, "Next")
			}
			return Error{fmt.Sprintf("%s in atom %d: %s", ReadError, i, err.Error()), S.filename, []string{"Next"}, true}
		}
		if strings.HasPrefix(b, "*") {
			return Error{fmt.Sprintf("%s: frame ended after %d atoms", WrongFormat, i), S.filename, []string{"Next"}, true}
		}
		if err = coordsDecode(strings.TrimSuffix(b, "\n"), &temp, S.prec); err != nil {
			return Error{err.Error(), S.filename, []string{"Next"}, true}
		}
		if c == nil {
			continue
		}
		for j, v := range temp {
			c.Set(i, j, v/nm2A)
		}
	}
	s, err := S.h.ReadString('\n')
	if err != nil && !(err == io.EOF && s != "") {
		return Error{"can't read the frame termination mark: " + err.Error(), S.filename, []string{"Next"}, true}
	}
	if !strings.HasPrefix(s, "*") {
		return Error{WrongFormat + ": wrong number of atoms in frame", S.filename, []string{"Next"}, true}
	}
	if len(box) > 0 && len(box[0]) >= 9 {
		fields := strings.Fields(strings.TrimSpace(s))
		if len(fields) < 10 {
			log.Debug().Str("file", S.filename).Msg("Frame without box information")
			return nil
		}
		for j, v := range fields[1:10] {
			box[0][j], err = strconv.ParseFloat(v, 64)
			if err != nil {
				log.Warn().Str("file", S.filename).Msg("Failed to read the box of a frame")
				for k := range box[0] {
					box[0][k] = 0
				}
				break
			}
		}
	}
	return nil
}

//Close closes the file, and marks the handle as unreadable.
func (S *StfR) Close() {
	if S.dec != nil {
		S.dec.Close()
		S.dec = nil
	}
	if S.f != nil {
		S.f.Close()
		S.f = nil
	}
	S.readable = false
}

/****Whole-file helpers****/

//ReadFile reads a whole STF trajectory into memory. If top is nil, the topology is taken from
//the "topology" header entry, and it is an InputError if there isn't one.
func ReadFile(name string, top chem.Atomer) (*chem.Trajectory, error) {
	S, header, err := New(name)
	if err != nil {
		return nil, chem.Errorf(chem.InputError, "stf.ReadFile", "%s", err.Error())
	}
	defer S.Close()
	if top == nil {
		js, ok := header["topology"]
		if !ok {
			return nil, chem.Errorf(chem.InputError, "stf.ReadFile", "no topology given and none in the header of %s", name)
		}
		t, err := chemjson.DecodeTopology(strings.NewReader(js))
		if err != nil {
			return nil, errDecorate(err, "stf.ReadFile")
		}
		top = t
	}
	T, err := chem.ReadTrajectory(S, top)
	if err != nil {
		return nil, errDecorate(err, "stf.ReadFile")
	}
	return T, nil
}

//WriteFile writes all the frames of T to the file name, with the trajectory topology in the header.
//All frames must have the trajectory's topology.
func WriteFile(name string, T *chem.Trajectory, header map[string]string) error {
	if err := T.Check(); err != nil {
		return errDecorate(err, "stf.WriteFile")
	}
	h := make(map[string]string, len(header)+1)
	for k, v := range header {
		h[k] = v
	}
	if T.Top != nil {
		var b strings.Builder
		if err := chemjson.EncodeTopology(&b, T.Top); err != nil {
			return errDecorate(err, "stf.WriteFile")
		}
		h["topology"] = strings.TrimSpace(b.String())
	}
	W, err := NewWriter(name, T.Frames[0].Coords.NVecs(), h)
	if err != nil {
		return errDecorate(err, "stf.WriteFile")
	}
	for i, f := range T.Frames {
		if err := W.WNext(f.Coords); err != nil {
			W.Close()
			return errDecorate(err, fmt.Sprintf("stf.WriteFile (frame %d)", i))
		}
	}
	return W.Close()
}

/****Errors****/

//errDecorate decorates err with caller, if err implements chem.Error.
func errDecorate(err error, caller string) error {
	if err2, ok := err.(chem.Error); ok {
		err2.Decorate(caller)
	}
	return err
}

//Error is the error type for STF trajectories. It fulfills chem.Error and chem.TrajError
type Error struct {
	message  string
	filename string //the input file that has problems, or empty string if none.
	deco     []string
	critical bool
}

func (err Error) Error() string {
	return fmt.Sprintf("stf file %s error: %s", err.filename, err.message)
}

//Decorate adds new information to the error
func (err Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//FileName returns the file to which the failing trajectory was associated
func (err Error) FileName() string { return err.filename }

//Format returns the format of the file (always "stf") associated to the error
func (err Error) Format() string { return "stf" }

//Critical returns true if the error is critical, false otherwise
func (err Error) Critical() bool { return err.critical }

const (
	TrajUnIniRead  = "Traj object uninitialized to read"
	TrajUnIniWrite = "Traj object uninitialized to write"
	ReadError      = "Error reading frame"
	UnableToOpen   = "Unable to open file"
	NilCoordinates = "Given nil coordinates"
	WrongFormat    = "Wrong format in the STF file or frame"
)

//lastFrameError implements chem.LastFrameError
type lastFrameError struct {
	deco     []string
	fileName string
}

//NormalLastFrameTermination does nothing
func (E *lastFrameError) NormalLastFrameTermination() {}

func (E *lastFrameError) FileName() string { return E.fileName }

func (E *lastFrameError) Error() string { return "EOF" }

func (E *lastFrameError) Critical() bool { return false }

func (E *lastFrameError) Format() string { return "stf" }

func (E *lastFrameError) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

func newLastFrameError(filename string, caller string) *lastFrameError {
	return &lastFrameError{fileName: filename, deco: []string{caller}}
}
