/*
 * dcd.go, part of godissolve.
 *
 * Copyright 2026 The godissolve Authors
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

// Package dcd reads and writes CHARMM/NAMD binary (DCD) trajectories. The unit
// cell of each frame, if present, is given to and taken from the caller as the 9
// components of the cell vectors, as in the xyz package.
package dcd

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	dissolve "github.com/rmera/godissolve"
	v3 "github.com/rmera/godissolve/v3"
)

const (
	headerSize    = 84
	titleLen      = 80
	cellSize      = 48 //6 float64
	charmmVersion = 24
)

// Reader reads a DCD trajectory, one frame at a time. Files written by CHARMM
// (and NAMD) and X-PLOR, in either byte order, are supported. Fixed atoms are not.
type Reader struct {
	f        *os.File
	h        *bufio.Reader
	filename string
	endian   binary.ByteOrder
	natoms   int
	nframes  int
	cell     bool //frames may carry a unit cell
	fourdim  bool
	title    string
	frame    int
	readable bool
	fields   [3][]float32
	buf      []byte
}

// New opens the trajectory name for reading, and reads its header.
func New(name string) (*Reader, error) {
	R := &Reader{filename: name}
	var err error
	if R.f, err = os.Open(name); err != nil {
		return nil, Error{UnableToOpen + ": " + err.Error(), name, []string{"New"}, true}
	}
	R.h = bufio.NewReader(R.f)
	if err = R.readHeader(); err != nil {
		R.f.Close()
		return nil, Error{WrongFormat + ": " + err.Error(), name, []string{"New"}, true}
	}
	for i := range R.fields {
		R.fields[i] = make([]float32, R.natoms)
	}
	R.readable = true
	return R, nil
}

func (R *Reader) readHeader() error {
	var head [4]byte
	if _, err := io.ReadFull(R.h, head[:]); err != nil {
		return err
	}
	//the first record is always 84 bytes long, which tells us the byte order.
	switch {
	case binary.LittleEndian.Uint32(head[:]) == headerSize:
		R.endian = binary.LittleEndian
	case binary.BigEndian.Uint32(head[:]) == headerSize:
		R.endian = binary.BigEndian
	default:
		return fmt.Errorf("not a DCD file")
	}
	b, err := R.recordBody(headerSize)
	if err != nil {
		return err
	}
	if string(b[:4]) != "CORD" {
		return fmt.Errorf("wrong magic number %q", b[:4])
	}
	var icntrl [20]int32
	for i := range icntrl {
		icntrl[i] = int32(R.endian.Uint32(b[4+4*i:]))
	}
	R.nframes = int(icntrl[0])
	if icntrl[8] != 0 {
		return fmt.Errorf("fixed atoms are not supported")
	}
	//X-PLOR files have a zero version, and no flags
	if icntrl[19] != 0 {
		R.cell = icntrl[10] != 0
		R.fourdim = icntrl[11] != 0
	}
	if b, err = R.record(); err != nil {
		return fmt.Errorf("title: %w", err)
	}
	if len(b) < 4 {
		return fmt.Errorf("title record of %d bytes", len(b))
	}
	ntitle := int(R.endian.Uint32(b))
	if len(b) != 4+ntitle*titleLen {
		return fmt.Errorf("title record of %d bytes for %d lines", len(b), ntitle)
	}
	R.title = strings.TrimRight(string(b[4:]), " \x00")
	if b, err = R.record(); err != nil {
		return fmt.Errorf("number of atoms: %w", err)
	}
	if len(b) != 4 {
		return fmt.Errorf("number of atoms record of %d bytes", len(b))
	}
	if R.natoms = int(int32(R.endian.Uint32(b))); R.natoms <= 0 {
		return fmt.Errorf("bad number of atoms %d", R.natoms)
	}
	return nil
}

// record reads a Fortran unformatted record: the payload, framed by its size.
func (R *Reader) record() ([]byte, error) {
	var size int32
	if err := binary.Read(R.h, R.endian, &size); err != nil {
		return nil, err
	}
	return R.recordBody(size)
}

// recordBody reads the payload of a record whose size has already been read.
// The returned slice is only valid until the next read.
func (R *Reader) recordBody(size int32) ([]byte, error) {
	if size < 0 {
		return nil, fmt.Errorf("negative record size %d", size)
	}
	if cap(R.buf) < int(size) {
		R.buf = make([]byte, size)
	}
	b := R.buf[:size]
	if _, err := io.ReadFull(R.h, b); err != nil {
		return nil, noEOF(err)
	}
	var check int32
	if err := binary.Read(R.h, R.endian, &check); err != nil {
		return nil, noEOF(err)
	}
	if check != size {
		return nil, fmt.Errorf("record of %d bytes closed as %d bytes", size, check)
	}
	return b, nil
}

// EOF only marks the end of the trajectory between frames.
func noEOF(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}

// Readable returns true if Next can be called on the reader.
func (R *Reader) Readable() bool { return R.readable }

// Len returns the number of atoms in each frame.
func (R *Reader) Len() int { return R.natoms }

// NFrames returns the number of frames given in the header. Some programs
// leave it as zero.
func (R *Reader) NFrames() int { return R.nframes }

// Title returns the title of the trajectory.
func (R *Reader) Title() string { return R.title }

// Next puts the coordinates of the next frame in c, or discards them if c is nil.
// If a box slice with at least 9 elements is given and the frame has a unit cell,
// the cell vectors are copied to it; otherwise the box is left untouched. At the
// end of the trajectory Next returns an error implementing dissolve.LastFrameError,
// and closes the reader.
func (R *Reader) Next(c *v3.Matrix, box ...[]float64) error {
	if !R.readable {
		return Error{TrajUnIniRead, R.filename, []string{"Next"}, true}
	}
	if c != nil && c.NVecs() != R.natoms {
		return Error{fmt.Sprintf("Matrix has %d vectors, %d needed", c.NVecs(), R.natoms), R.filename, []string{"Next"}, true}
	}
	var size int32
	if err := binary.Read(R.h, R.endian, &size); err != nil {
		if err == io.EOF {
			R.Close()
			return newlastFrameError(R.filename, "Next")
		}
		return R.frameError(err)
	}
	var vectors []float64
	//Not all frames in a trajectory with unit cells carry one, so the
	//size tells the cell from the X coordinates.
	if R.cell && size != int32(4*R.natoms) {
		b, err := R.recordBody(size)
		if err != nil {
			return R.frameError(err)
		}
		if vectors, err = R.unitCell(b); err != nil {
			return R.frameError(err)
		}
		if err := binary.Read(R.h, R.endian, &size); err != nil {
			return R.frameError(noEOF(err))
		}
	}
	for i, field := range R.fields {
		if i > 0 {
			if err := binary.Read(R.h, R.endian, &size); err != nil {
				return R.frameError(noEOF(err))
			}
		}
		if size != int32(4*R.natoms) {
			return R.frameError(fmt.Errorf("coordinate record of %d bytes, %d expected", size, 4*R.natoms))
		}
		if err := binary.Read(R.h, R.endian, field); err != nil {
			return R.frameError(noEOF(err))
		}
		var check int32
		if err := binary.Read(R.h, R.endian, &check); err != nil {
			return R.frameError(noEOF(err))
		}
		if check != size {
			return R.frameError(fmt.Errorf("coordinate record of %d bytes closed as %d bytes", size, check))
		}
	}
	if R.fourdim {
		//some programs leave it out of the last frame
		if _, err := R.record(); err != nil && err != io.EOF {
			return R.frameError(err)
		}
	}
	R.frame++
	if c != nil {
		for i := 0; i < R.natoms; i++ {
			c.SetVec(i, [3]float64{float64(R.fields[0][i]), float64(R.fields[1][i]), float64(R.fields[2][i])})
		}
	}
	if len(box) > 0 && len(box[0]) >= 9 && vectors != nil {
		copy(box[0], vectors)
	}
	return nil
}

func (R *Reader) frameError(err error) error {
	return Error{fmt.Sprintf("%s: frame %d: %v", ReadError, R.frame+1, err), R.filename, []string{"Next"}, true}
}

// unitCell returns the cell vectors for a unit cell record, or nil if the cell is
// empty. The record has a, gamma, b, beta, alpha and c. Angles are taken as cosines
// if all of them are within [-1,1], as NAMD and newer CHARMM versions write them.
func (R *Reader) unitCell(b []byte) ([]float64, error) {
	if len(b) != cellSize {
		return nil, fmt.Errorf("unit cell record of %d bytes", len(b))
	}
	var u [6]float64
	for i := range u {
		u[i] = math.Float64frombits(R.endian.Uint64(b[8*i:]))
	}
	lengths := [3]float64{u[0], u[2], u[5]}
	if lengths == [3]float64{} {
		return nil, nil
	}
	angles := [3]float64{u[4], u[3], u[1]}
	if math.Abs(angles[0]) <= 1 && math.Abs(angles[1]) <= 1 && math.Abs(angles[2]) <= 1 {
		for i, a := range angles {
			angles[i] = 90
			if a != 0 {
				angles[i] = dissolve.Rad2Deg(math.Acos(a))
			}
		}
	}
	B, err := dissolve.NewBox(lengths, angles)
	if err != nil {
		return nil, err
	}
	return B.Vectors(), nil
}

// Close closes the reader and marks it as unreadable.
func (R *Reader) Close() {
	if !R.readable {
		return
	}
	R.f.Close()
	R.readable = false
}

// Writer writes a little-endian, CHARMM-style DCD trajectory. Every frame carries a
// unit cell, with the angles in degrees, or an empty one if no box is given.
type Writer struct {
	f         *os.File
	h         *bufio.Writer
	filename  string
	natoms    int
	nframes   int
	writeable bool
	fields    [3][]float32
}

// NewWriter creates the trajectory name for frames of natoms atoms.
func NewWriter(name string, natoms int) (*Writer, error) {
	if natoms <= 0 {
		return nil, Error{"No atoms to write", name, []string{"NewWriter"}, true}
	}
	W := &Writer{filename: name, natoms: natoms}
	var err error
	if W.f, err = os.Create(name); err != nil {
		return nil, Error{UnableToOpen + ": " + err.Error(), name, []string{"NewWriter"}, true}
	}
	W.h = bufio.NewWriter(W.f)
	if err = W.writeHeader(); err != nil {
		W.f.Close()
		return nil, Error{WriteError + ": " + err.Error(), name, []string{"NewWriter"}, true}
	}
	for i := range W.fields {
		W.fields[i] = make([]float32, natoms)
	}
	W.writeable = true
	return W, nil
}

func (W *Writer) writeHeader() error {
	var icntrl [20]int32
	icntrl[2] = 1 //steps between frames
	icntrl[9] = int32(math.Float32bits(1))
	icntrl[10] = 1
	icntrl[19] = charmmVersion
	var b bytes.Buffer
	b.WriteString("CORD")
	binary.Write(&b, binary.LittleEndian, icntrl)
	if err := W.record(b.Bytes()); err != nil {
		return err
	}
	b.Reset()
	binary.Write(&b, binary.LittleEndian, int32(1))
	title := fmt.Sprintf("%-*s", titleLen, "Written by godissolve")
	b.WriteString(title[:titleLen])
	if err := W.record(b.Bytes()); err != nil {
		return err
	}
	b.Reset()
	binary.Write(&b, binary.LittleEndian, int32(W.natoms))
	return W.record(b.Bytes())
}

// record writes data framed by its size.
func (W *Writer) record(data any) error {
	size := int32(binary.Size(data))
	if err := binary.Write(W.h, binary.LittleEndian, size); err != nil {
		return err
	}
	if err := binary.Write(W.h, binary.LittleEndian, data); err != nil {
		return err
	}
	return binary.Write(W.h, binary.LittleEndian, size)
}

// Len returns the number of atoms per frame.
func (W *Writer) Len() int { return W.natoms }

// WNext writes a frame with the coordinates in coord and, if given, the 9 box vector components.
func (W *Writer) WNext(coord *v3.Matrix, box ...[]float64) error {
	if !W.writeable {
		return Error{TrajUnIniWrite, W.filename, []string{"WNext"}, true}
	}
	if coord == nil {
		return Error{NilCoordinates, W.filename, []string{"WNext"}, true}
	}
	if coord.NVecs() != W.natoms {
		return Error{fmt.Sprintf("%d coordinates given, but %d expected", coord.NVecs(), W.natoms), W.filename, []string{"WNext"}, true}
	}
	var cell [6]float64
	if len(box) > 0 && len(box[0]) >= 9 {
		B, err := dissolve.NewBoxFromVectors(box[0])
		if err != nil {
			return Error{err.Error(), W.filename, []string{"WNext"}, true}
		}
		l, a := B.Lengths(), B.Angles()
		cell = [6]float64{l[0], a[2], l[1], a[1], a[0], l[2]}
	}
	for i := 0; i < W.natoms; i++ {
		v := coord.Vec(i)
		for j := range W.fields {
			W.fields[j][i] = float32(v[j])
		}
	}
	if err := W.record(cell); err != nil {
		return Error{WriteError + ": " + err.Error(), W.filename, []string{"WNext"}, true}
	}
	for _, field := range W.fields {
		if err := W.record(field); err != nil {
			return Error{WriteError + ": " + err.Error(), W.filename, []string{"WNext"}, true}
		}
	}
	W.nframes++
	return nil
}

// Close writes the number of frames to the header, and closes the writer.
func (W *Writer) Close() error {
	if !W.writeable {
		return nil
	}
	W.writeable = false
	err := W.h.Flush()
	if err == nil {
		var n [4]byte
		binary.LittleEndian.PutUint32(n[:], uint32(W.nframes))
		_, err = W.f.WriteAt(n[:], 8) //after the record size and "CORD"
	}
	if e := W.f.Close(); err == nil {
		err = e
	}
	if err != nil {
		return Error{WriteError + ": " + err.Error(), W.filename, []string{"Close"}, true}
	}
	return nil
}

//Errors

// Error is the general structure for DCD trajectory errors. It fullfills dissolve.TrajError.
type Error struct {
	message  string
	filename string //the input file that has problems, or empty string if none.
	deco     []string
	critical bool
}

func (err Error) Error() string {
	return fmt.Sprintf("dcd file %s error: %s", err.filename, err.message)
}

// Decorate adds new information to the error
func (err Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

// FileName returns the file to which the failing trajectory was associated
func (err Error) FileName() string { return err.filename }

// Format returns the format of the file (always "dcd") associated to the error
func (err Error) Format() string { return "dcd" }

// Critical returns true if the error is critical, false otherwise
func (err Error) Critical() bool { return err.critical }

const (
	TrajUnIniRead  = "Traj object uninitialized to read"
	TrajUnIniWrite = "Traj object uninitialized to write"
	ReadError      = "Error reading frame"
	WriteError     = "Error writing"
	UnableToOpen   = "Unable to open file"
	NilCoordinates = "Given nil coordinates"
	WrongFormat    = "Wrong format in the DCD file"
)

// lastFrameError implements dissolve.LastFrameError
type lastFrameError struct {
	deco     []string
	fileName string
}

// NormalLastFrameTermination does nothing
func (E *lastFrameError) NormalLastFrameTermination() {}

func (E *lastFrameError) FileName() string { return E.fileName }

func (E *lastFrameError) Error() string { return "EOF" }

func (E *lastFrameError) Critical() bool { return false }

func (E *lastFrameError) Format() string { return "dcd" }

func (E *lastFrameError) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

func newlastFrameError(filename string, caller string) *lastFrameError {
	return &lastFrameError{fileName: filename, deco: []string{caller}}
}

var (
	_ dissolve.Traj           = (*Reader)(nil)
	_ dissolve.LastFrameError = (*lastFrameError)(nil)
	_ dissolve.TrajError      = Error{}
)
