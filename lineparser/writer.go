/*
 * writer.go, part of godissolve.
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

package lineparser

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// Writer writes records, one per line, with an indentation level.
type Writer struct {
	w       *bufio.Writer
	closers []io.Closer
	indent  int
}

// NewWriter returns a writer to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// Create creates the file filename, compressing the output if the name ends in .zst or .gz.
func Create(filename string) (*Writer, error) {
	f, err := os.Create(filename)
	if err != nil {
		return nil, err
	}
	W := &Writer{closers: []io.Closer{f}}
	var c io.WriteCloser
	switch {
	case strings.HasSuffix(filename, ".zst"):
		c, err = zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	case strings.HasSuffix(filename, ".gz"):
		c = gzip.NewWriter(f)
	}
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("Create: %s: %w", filename, err)
	}
	if c != nil {
		W.w = bufio.NewWriter(c)
		W.closers = append([]io.Closer{c}, W.closers...)
	} else {
		W.w = bufio.NewWriter(f)
	}
	return W, nil
}

// Indent increases the indentation of the following lines by one level.
func (W *Writer) Indent() { W.indent++ }

// Dedent decreases the indentation of the following lines by one level.
func (W *Writer) Dedent() {
	if W.indent > 0 {
		W.indent--
	}
}

// WriteLine writes a formatted line, indented, with a trailing newline.
func (W *Writer) WriteLine(format string, args ...any) error {
	for i := 0; i < W.indent; i++ {
		if _, err := W.w.WriteString("  "); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(W.w, format, args...); err != nil {
		return err
	}
	return W.w.WriteByte('\n')
}

// Flush writes any buffered data.
func (W *Writer) Flush() error {
	return W.w.Flush()
}

// Close flushes the writer and closes the compressor and the file, if the writer
// was created with Create.
func (W *Writer) Close() error {
	err := W.w.Flush()
	for _, c := range W.closers {
		if e := c.Close(); e != nil && err == nil {
			err = e
		}
	}
	W.closers = nil
	return err
}
