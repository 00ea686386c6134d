/*
 * store.go, part of godissolve.
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

package data

import (
	"fmt"
	"slices"

	"github.com/rmera/godissolve/lineparser"
)

// Importer is an import-file-format descriptor for datasets of type D.
type Importer[D any] interface {
	Read(P *lineparser.Parser) error
	Write(W *lineparser.Writer) error
	Import(target D) error
}

// Entry is one tagged dataset in a store, together with the format it was imported with.
type Entry[D any, F Importer[D]] struct {
	Tag    string
	Data   D
	Format F
}

// Store keeps datasets by tag, in insertion order. Tags are not required to be
// unique; check with ContainsData before adding if that matters.
type Store[D any, F Importer[D]] struct {
	newData   func(tag string) D
	newFormat func() F
	entries   []*Entry[D, F]
}

// NewStore returns an empty store that creates datasets and formats with the given functions.
func NewStore[D any, F Importer[D]](newData func(tag string) D, newFormat func() F) *Store[D, F] {
	return &Store[D, F]{newData: newData, newFormat: newFormat}
}

type (
	Data1DStore = Store[*Data1D, *Data1DImportFileFormat]
	Data2DStore = Store[*Data2D, *Data2DImportFileFormat]
	Data3DStore = Store[*Data3D, *Data3DImportFileFormat]
	ValueStore  = Store[*Values, *ValueImportFileFormat]
)

func NewData1DStore() *Data1DStore {
	return NewStore(NewData1D, func() *Data1DImportFileFormat { return &Data1DImportFileFormat{} })
}

func NewData2DStore() *Data2DStore {
	return NewStore(func(tag string) *Data2D { return &Data2D{Tag: tag} },
		func() *Data2DImportFileFormat { return &Data2DImportFileFormat{} })
}

func NewData3DStore() *Data3DStore {
	return NewStore(func(tag string) *Data3D { return &Data3D{Tag: tag} },
		func() *Data3DImportFileFormat { return &Data3DImportFileFormat{} })
}

func NewValueStore() *ValueStore {
	return NewStore(func(tag string) *Values { return &Values{Tag: tag} },
		func() *ValueImportFileFormat { return &ValueImportFileFormat{} })
}

// AddData reads a format record from P and imports the file it names as a new dataset
// with the given tag. The entry is added before reading, so on error it stays in the
// store, half-built; callers should RemoveData it.
func (S *Store[D, F]) AddData(P *lineparser.Parser, tag string) (*Entry[D, F], error) {
	e := &Entry[D, F]{Tag: tag, Data: S.newData(tag), Format: S.newFormat()}
	S.entries = append(S.entries, e)
	if err := e.Format.Read(P); err != nil {
		return e, fmt.Errorf("Store.AddData: reading format for %q: %w", tag, err)
	}
	if err := e.Format.Import(e.Data); err != nil {
		return e, fmt.Errorf("Store.AddData: importing %q: %w", tag, err)
	}
	return e, nil
}

// AddDataWithFormat imports a new dataset with the given tag using an existing format.
// As with AddData, a failed entry remains in the store.
func (S *Store[D, F]) AddDataWithFormat(format F, tag string) (*Entry[D, F], error) {
	e := &Entry[D, F]{Tag: tag, Data: S.newData(tag), Format: format}
	S.entries = append(S.entries, e)
	if err := format.Import(e.Data); err != nil {
		return e, fmt.Errorf("Store.AddDataWithFormat: importing %q: %w", tag, err)
	}
	return e, nil
}

// ContainsData returns whether a dataset with the given tag is in the store.
func (S *Store[D, F]) ContainsData(tag string) bool {
	_, ok := S.Data(tag)
	return ok
}

// Data returns the first dataset with the given tag, if any.
func (S *Store[D, F]) Data(tag string) (D, bool) {
	for _, e := range S.entries {
		if e.Tag == tag {
			return e.Data, true
		}
	}
	var zero D
	return zero, false
}

// All returns the entries in insertion order. The slice is a copy, the entries are not.
func (S *Store[D, F]) All() []*Entry[D, F] { return slices.Clone(S.entries) }

// Len returns the number of entries.
func (S *Store[D, F]) Len() int { return len(S.entries) }

// RemoveData removes the given entry and returns whether it was present.
func (S *Store[D, F]) RemoveData(e *Entry[D, F]) bool {
	i := slices.Index(S.entries, e)
	if i < 0 {
		return false
	}
	S.entries = slices.Delete(S.entries, i, i+1)
	return true
}
