/*
 * lineparser.go, part of godissolve.
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

// Package lineparser reads and writes the line-oriented text records used by the
// library: whitespace or comma separated tokens, with quoting and # comments.
// Files ending in .zst or .gz are transparently (de)compressed.
package lineparser

import (
	"bufio"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// ErrArgument is returned when a token is missing or can't be converted to the requested type.
var ErrArgument = errors.New("bad or missing argument")

// zstd.Decoder's Close doesn't return an error, so it isn't an io.ReadCloser.
type zstdReadCloser struct {
	*zstd.Decoder
}

func (z zstdReadCloser) Close() error {
	z.Decoder.Close()
	return nil
}

func decompressor(name string, r io.Reader) (io.ReadCloser, error) {
	switch {
	case strings.HasSuffix(name, ".zst"):
		d, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return zstdReadCloser{d}, nil
	case strings.HasSuffix(name, ".gz"):
		return gzip.NewReader(r)
	}
	return nil, nil
}

// Parser reads records, one per non-empty line, and gives typed access to the
// tokens of the current record.
type Parser struct {
	r       *bufio.Reader
	closers []io.Closer
	name    string
	line    int
	tokens  []string
}

// NewParser returns a parser reading from r. name is only used in error messages.
func NewParser(r io.Reader, name string) *Parser {
	return &Parser{r: bufio.NewReader(r), name: name}
}

// Open opens the file filename for parsing, decompressing it if its name ends in .zst or .gz.
func Open(filename string) (*Parser, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	P := &Parser{name: filename, closers: []io.Closer{f}}
	d, err := decompressor(filename, f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("Open: %s: %w", filename, err)
	}
	if d != nil {
		P.r = bufio.NewReader(d)
		P.closers = append([]io.Closer{d}, P.closers...)
	} else {
		P.r = bufio.NewReader(f)
	}
	return P, nil
}

// Close closes the underlying file, if the parser was created with Open.
func (P *Parser) Close() error {
	var err error
	for _, c := range P.closers {
		if e := c.Close(); e != nil && err == nil {
			err = e
		}
	}
	P.closers = nil
	return err
}

// Name returns the name of the source being parsed.
func (P *Parser) Name() string { return P.name }

// Line returns the number of the line the current record was read from.
func (P *Parser) Line() int { return P.line }

// Split tokenises a line. Tokens are separated by whitespace or commas, can be
// quoted with single or double quotes, and a # outside quotes starts a comment.
func Split(line string) []string {
	var ret []string
	var cur strings.Builder
	var quote byte
	inToken := false
	flush := func() {
		if inToken {
			ret = append(ret, cur.String())
			cur.Reset()
			inToken = false
		}
	}
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
				continue
			}
			cur.WriteByte(c)
		case c == '"' || c == '\'':
			quote = c
			inToken = true
		case c == '#':
			flush()
			return ret
		case c == ' ' || c == '\t' || c == ',' || c == '\r':
			flush()
		default:
			cur.WriteByte(c)
			inToken = true
		}
	}
	flush()
	return ret
}

// ReadRecord reads the next line with any tokens in it, skipping blank lines and
// comments, and returns its tokens. It returns io.EOF when there is nothing left.
func (P *Parser) ReadRecord() ([]string, error) {
	for {
		str, err := P.r.ReadString('\n')
		if str == "" && err != nil {
			P.tokens = nil
			return nil, err
		}
		P.line++
		if t := Split(str); len(t) > 0 {
			P.tokens = t
			return t, nil
		}
		if err != nil {
			P.tokens = nil
			return nil, err
		}
	}
}

// Tokens returns the tokens of the current record.
func (P *Parser) Tokens() []string { return P.tokens }

// NTokens returns the number of tokens in the current record.
func (P *Parser) NTokens() int { return len(P.tokens) }

// HasToken returns true if the current record has a token i.
func (P *Parser) HasToken(i int) bool { return i >= 0 && i < len(P.tokens) }

// Errorf returns an error mentioning the source and current line. It
// wraps like fmt.Errorf.
func (P *Parser) Errorf(format string, args ...any) error {
	return fmt.Errorf("%s:%d: "+format, append([]any{P.name, P.line}, args...)...)
}

func (P *Parser) argErr(i int, what string, err error) error {
	if err != nil {
		return fmt.Errorf("%s:%d: token %d: %s: %w (%s)", P.name, P.line, i, what, ErrArgument, err.Error())
	}
	return fmt.Errorf("%s:%d: token %d: %s: %w", P.name, P.line, i, what, ErrArgument)
}

// String returns token i.
func (P *Parser) String(i int) (string, error) {
	if !P.HasToken(i) {
		return "", P.argErr(i, "missing", nil)
	}
	return P.tokens[i], nil
}

// Int returns token i as an integer.
func (P *Parser) Int(i int) (int, error) {
	s, err := P.String(i)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, P.argErr(i, "not an integer", err)
	}
	return v, nil
}

// Float returns token i as a float64.
func (P *Parser) Float(i int) (float64, error) {
	s, err := P.String(i)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, P.argErr(i, "not a number", err)
	}
	return v, nil
}

// Bool returns token i as a boolean. true, yes, on and 1 are accepted as true, and
// false, no, off and 0 as false, in any case.
func (P *Parser) Bool(i int) (bool, error) {
	s, err := P.String(i)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(s) {
	case "true", "yes", "on", "1":
		return true, nil
	case "false", "no", "off", "0":
		return false, nil
	}
	return false, P.argErr(i, "not a boolean", nil)
}

// Vector3 returns tokens i, i+1 and i+2 as a vector.
func (P *Parser) Vector3(i int) ([3]float64, error) {
	var ret [3]float64
	for k := 0; k < 3; k++ {
		v, err := P.Float(i + k)
		if err != nil {
			return ret, err
		}
		ret[k] = v
	}
	return ret, nil
}

// Floats returns all the tokens from i on as float64s.
func (P *Parser) Floats(i int) ([]float64, error) {
	ret := make([]float64, 0, len(P.tokens))
	for k := i; k < len(P.tokens); k++ {
		v, err := P.Float(k)
		if err != nil {
			return nil, err
		}
		ret = append(ret, v)
	}
	return ret, nil
}
