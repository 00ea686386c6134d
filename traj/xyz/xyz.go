/*
 * xyz.go, part of godissolve.
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

// Package xyz reads and writes multi-frame XYZ trajectories, optionally compressed
// with zstd (.zst) or gzip (.gz). The box of each frame, if present, is given in the
// comment line as an extended-XYZ lattice:
//
//	Lattice="ax ay az bx by bz cx cy cz"
package xyz

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
	dissolve "github.com/rmera/godissolve"
	v3 "github.com/rmera/godissolve/v3"
)

// zstd decoders close without returning an error, so they don't implement io.ReadCloser.
type zstdReadCloser struct {
	*zstd.Decoder
}

func (z zstdReadCloser) Close() error {
	z.Decoder.Close()
	return nil
}

// Reader reads an XYZ trajectory, one frame at a time.
type Reader struct {
	f        *os.File
	dec      io.ReadCloser //nil for uncompressed files
	h        *bufio.Reader
	filename string
	natoms   int
	symbols  []string
	frame    int
	readable bool
	first    *frame //the first frame, read by New to learn the number of atoms
}

type frame struct {
	coords [][3]float64
	box    []float64
}

// New opens the trajectory name for reading. The first frame is read to learn the
// number of atoms and their symbols, which all frames must share.
func New(name string) (*Reader, error) {
	R := &Reader{filename: name}
	var err error
	R.f, err = os.Open(name)
	if err != nil {
		return nil, Error{UnableToOpen + ": " + err.Error(), name, []string{"New"}, true}
	}
	var r io.Reader = bufio.NewReader(R.f)
	switch {
	case strings.HasSuffix(name, ".zst"):
		d, err := zstd.NewReader(r)
		if err != nil {
			R.f.Close()
			return nil, Error{UnableToOpen + ": " + err.Error(), name, []string{"New"}, true}
		}
		R.dec = zstdReadCloser{d}
	case strings.HasSuffix(name, ".gz"):
		if R.dec, err = gzip.NewReader(r); err != nil {
			R.f.Close()
			return nil, Error{UnableToOpen + ": " + err.Error(), name, []string{"New"}, true}
		}
	}
	if R.dec != nil {
		r = R.dec
	}
	R.h = bufio.NewReader(r)
	R.natoms = -1
	fr, symbols, err := R.readFrame()
	if err != nil {
		R.close()
		if _, ok := err.(*lastFrameError); ok {
			return nil, Error{"Trajectory has no frames", name, []string{"New"}, true}
		}
		return nil, errDecorate(err, "New")
	}
	R.natoms = len(fr.coords)
	R.symbols = symbols
	R.first = fr
	R.readable = true
	return R, nil
}

// Readable returns true if Next can be called on the reader.
func (R *Reader) Readable() bool { return R.readable }

// Len returns the number of atoms in each frame.
func (R *Reader) Len() int { return R.natoms }

// Symbols returns the element symbols of the atoms, as given in the first frame.
func (R *Reader) Symbols() []string { return append([]string(nil), R.symbols...) }

// Next puts the coordinates of the next frame in c, or discards them if c is nil.
// If a box slice with at least 9 elements is given and the frame has a lattice,
// the box vectors are copied to it; otherwise the box is left untouched. At the
// end of the trajectory Next returns an error implementing dissolve.LastFrameError,
// and closes the reader.
func (R *Reader) Next(c *v3.Matrix, box ...[]float64) error {
	if !R.readable {
		return Error{TrajUnIniRead, R.filename, []string{"Next"}, true}
	}
	fr := R.first
	R.first = nil
	if fr == nil {
		var err error
		fr, _, err = R.readFrame()
		if err != nil {
			if _, ok := err.(*lastFrameError); ok {
				R.Close()
			}
			return errDecorate(err, "Next")
		}
	}
	R.frame++
	if c != nil {
		if c.NVecs() != R.natoms {
			return Error{fmt.Sprintf("Matrix has %d vectors, %d needed", c.NVecs(), R.natoms), R.filename, []string{"Next"}, true}
		}
		for i, v := range fr.coords {
			c.SetVec(i, v)
		}
	}
	if len(box) > 0 && len(box[0]) >= 9 && fr.box != nil {
		copy(box[0], fr.box)
	}
	return nil
}

// readFrame reads a frame, checking it against the number of atoms if known.
func (R *Reader) readFrame() (*frame, []string, error) {
	head, err := R.h.ReadString('\n')
	for err == nil && strings.TrimSpace(head) == "" {
		head, err = R.h.ReadString('\n')
	}
	if err == io.EOF && strings.TrimSpace(head) == "" {
		return nil, nil, newlastFrameError(R.filename, "readFrame")
	}
	if err != nil && err != io.EOF {
		return nil, nil, Error{ReadError + ": " + err.Error(), R.filename, []string{"readFrame"}, true}
	}
	n, err := strconv.Atoi(strings.TrimSpace(head))
	if err != nil || n <= 0 {
		return nil, nil, Error{fmt.Sprintf("%s: frame %d: bad atom count '%s'", WrongFormat, R.frame+1, strings.TrimSpace(head)), R.filename, []string{"readFrame"}, true}
	}
	if R.natoms > 0 && n != R.natoms {
		return nil, nil, Error{fmt.Sprintf("%s: frame %d has %d atoms, %d expected", WrongFormat, R.frame+1, n, R.natoms), R.filename, []string{"readFrame"}, true}
	}
	comment, err := R.h.ReadString('\n')
	if err != nil {
		return nil, nil, Error{fmt.Sprintf("%s: frame %d: %s", ReadError, R.frame+1, err), R.filename, []string{"readFrame"}, true}
	}
	fr := &frame{coords: make([][3]float64, n)}
	if fr.box, err = parseLattice(comment); err != nil {
		return nil, nil, Error{fmt.Sprintf("%s: frame %d: %s", WrongFormat, R.frame+1, err), R.filename, []string{"readFrame"}, true}
	}
	symbols := make([]string, n)
	for i := 0; i < n; i++ {
		line, err := R.h.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return nil, nil, Error{fmt.Sprintf("%s: frame %d: atom %d: %v", ReadError, R.frame+1, i+1, err), R.filename, []string{"readFrame"}, true}
		}
		fields := strings.Fields(line)
		if len(fields) < 4 {
			return nil, nil, Error{fmt.Sprintf("%s: frame %d: atom %d: too few fields", WrongFormat, R.frame+1, i+1), R.filename, []string{"readFrame"}, true}
		}
		symbols[i] = fields[0]
		for j := 0; j < 3; j++ {
			fr.coords[i][j], err = strconv.ParseFloat(fields[j+1], 64)
			if err != nil {
				return nil, nil, Error{fmt.Sprintf("%s: frame %d: atom %d: %v", WrongFormat, R.frame+1, i+1, err), R.filename, []string{"readFrame"}, true}
			}
		}
	}
	return fr, symbols, nil
}

// parseLattice returns the 9 box vector components in an extended-XYZ comment, or nil.
func parseLattice(comment string) ([]float64, error) {
	i := strings.Index(comment, `Lattice="`)
	if i < 0 {
		return nil, nil
	}
	rest := comment[i+len(`Lattice="`):]
	j := strings.IndexByte(rest, '"')
	if j < 0 {
		return nil, fmt.Errorf("unterminated lattice")
	}
	fields := strings.Fields(rest[:j])
	if len(fields) != 9 {
		return nil, fmt.Errorf("lattice has %d components, 9 needed", len(fields))
	}
	box := make([]float64, 9)
	for k, f := range fields {
		var err error
		if box[k], err = strconv.ParseFloat(f, 64); err != nil {
			return nil, fmt.Errorf("lattice: %w", err)
		}
	}
	return box, nil
}

func (R *Reader) close() {
	if R.dec != nil {
		R.dec.Close()
	}
	R.f.Close()
}

// Close closes the reader and marks it as unreadable.
func (R *Reader) Close() {
	if !R.readable {
		return
	}
	R.close()
	R.readable = false
}

// Writer writes an XYZ trajectory.
type Writer struct {
	f         *os.File
	enc       io.WriteCloser //nil for uncompressed files
	h         *bufio.Writer
	filename  string
	symbols   []string
	writeable bool
}

// NewWriter creates the trajectory name for atoms with the given symbols. The file
// is compressed if its name ends in .zst or .gz.
func NewWriter(name string, symbols []string) (*Writer, error) {
	if len(symbols) == 0 {
		return nil, Error{"No atoms to write", name, []string{"NewWriter"}, true}
	}
	W := &Writer{filename: name, symbols: append([]string(nil), symbols...)}
	var err error
	W.f, err = os.Create(name)
	if err != nil {
		return nil, Error{UnableToOpen + ": " + err.Error(), name, []string{"NewWriter"}, true}
	}
	var w io.Writer = W.f
	switch {
	case strings.HasSuffix(name, ".zst"):
		W.enc, err = zstd.NewWriter(W.f, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	case strings.HasSuffix(name, ".gz"):
		W.enc = gzip.NewWriter(W.f)
	}
	if err != nil {
		W.f.Close()
		return nil, Error{UnableToOpen + ": " + err.Error(), name, []string{"NewWriter"}, true}
	}
	if W.enc != nil {
		w = W.enc
	}
	W.h = bufio.NewWriter(w)
	W.writeable = true
	return W, nil
}

// Len returns the number of atoms per frame.
func (W *Writer) Len() int { return len(W.symbols) }

// WNext writes a frame with the coordinates in coord and, if given, the 9 box vector components.
func (W *Writer) WNext(coord *v3.Matrix, box ...[]float64) error {
	if !W.writeable {
		return Error{TrajUnIniWrite, W.filename, []string{"WNext"}, true}
	}
	if coord == nil {
		return Error{NilCoordinates, W.filename, []string{"WNext"}, true}
	}
	if coord.NVecs() != len(W.symbols) {
		return Error{fmt.Sprintf("%d coordinates given, but %d expected", coord.NVecs(), len(W.symbols)), W.filename, []string{"WNext"}, true}
	}
	comment := "frame"
	if len(box) > 0 && len(box[0]) >= 9 {
		parts := make([]string, 9)
		for i, v := range box[0][:9] {
			parts[i] = strconv.FormatFloat(v, 'f', -1, 64)
		}
		comment = `Lattice="` + strings.Join(parts, " ") + `"`
	}
	fmt.Fprintf(W.h, "%d\n%s\n", len(W.symbols), comment)
	for i, s := range W.symbols {
		v := coord.Vec(i)
		fmt.Fprintf(W.h, "%-3s %14.8f %14.8f %14.8f\n", s, v[0], v[1], v[2])
	}
	return nil
}

// Close flushes and closes the writer.
func (W *Writer) Close() error {
	if !W.writeable {
		return nil
	}
	W.writeable = false
	err := W.h.Flush()
	if W.enc != nil {
		if e := W.enc.Close(); err == nil {
			err = e
		}
	}
	if e := W.f.Close(); err == nil {
		err = e
	}
	return err
}

//Errors

// errDecorate adds the caller to a trajectory error. Errors of other types are returned unchanged.
func errDecorate(err error, caller string) error {
	switch e := err.(type) {
	case Error:
		e.deco = append(e.deco, caller)
		return e
	case *lastFrameError:
		e.Decorate(caller)
		return e
	}
	return err
}

// Error is the general structure for XYZ trajectory errors. It fullfills dissolve.TrajError.
type Error struct {
	message  string
	filename string //the input file that has problems, or empty string if none.
	deco     []string
	critical bool
}

func (err Error) Error() string {
	return fmt.Sprintf("xyz file %s error: %s", err.filename, err.message)
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

// Format returns the format of the file (always "xyz") associated to the error
func (err Error) Format() string { return "xyz" }

// Critical returns true if the error is critical, false otherwise
func (err Error) Critical() bool { return err.critical }

const (
	TrajUnIniRead  = "Traj object uninitialized to read"
	TrajUnIniWrite = "Traj object uninitialized to write"
	ReadError      = "Error reading frame"
	UnableToOpen   = "Unable to open file"
	NilCoordinates = "Given nil coordinates"
	WrongFormat    = "Wrong format in the XYZ file or frame"
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

func (E *lastFrameError) Format() string { return "xyz" }

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
