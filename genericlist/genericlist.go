/*
 * genericlist.go, part of godissolve.
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

// Package genericlist is a store of named values of any type, shared between the
// parts of an analysis. Names can carry a prefix, usually the name of the
// procedure or module that owns the value.
package genericlist

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	ErrNotFound  = errors.New("no such item")
	ErrWrongType = errors.New("item has a different type")
)

type item struct {
	key   string
	value any
}

// List holds values by key, in insertion order. It is not safe for concurrent use.
type List struct {
	items []*item
	index map[string]int
}

// New returns an empty list.
func New() *List {
	return &List{index: make(map[string]int)}
}

// Key returns the key of name under prefix.
func Key(name, prefix string) string {
	if prefix == "" {
		return name
	}
	return prefix + "//" + name
}

func (L *List) find(name, prefix string) *item {
	i, ok := L.index[Key(name, prefix)]
	if !ok {
		return nil
	}
	return L.items[i]
}

// Contains returns whether an item exists under name and prefix.
func (L *List) Contains(name, prefix string) bool { return L.find(name, prefix) != nil }

// Len returns the number of items.
func (L *List) Len() int { return len(L.items) }

// Keys returns the keys of the items under prefix, or all of them if prefix is
// empty, in insertion order.
func (L *List) Keys(prefix string) []string {
	var ret []string
	for _, it := range L.items {
		if prefix == "" || strings.HasPrefix(it.key, prefix+"//") {
			ret = append(ret, it.key)
		}
	}
	return ret
}

// Remove removes the item under name and prefix, and returns whether it existed.
func (L *List) Remove(name, prefix string) bool {
	return L.removeIf(func(it *item) bool { return it.key == Key(name, prefix) }) > 0
}

// Prune removes all the items under prefix, and returns how many there were.
func (L *List) Prune(prefix string) int {
	return L.removeIf(func(it *item) bool { return strings.HasPrefix(it.key, prefix+"//") })
}

func (L *List) removeIf(f func(*item) bool) int {
	n := len(L.items)
	L.items = slices.DeleteFunc(L.items, f)
	clear(L.index)
	for i, it := range L.items {
		L.index[it.key] = i
	}
	return n - len(L.items)
}

// Realise returns the value of type T under name and prefix, creating it with
// newT if it doesn't exist. created reports whether it was created. It is an error
// for an existing item to have another type.
func Realise[T any](L *List, name, prefix string, newT func() T) (v T, created bool, err error) {
	if it := L.find(name, prefix); it != nil {
		v, ok := it.value.(T)
		if !ok {
			return v, false, fmt.Errorf("Realise: %s: %w (%T, want %T)", it.key, ErrWrongType, it.value, v)
		}
		return v, false, nil
	}
	v = newT()
	key := Key(name, prefix)
	L.index[key] = len(L.items)
	L.items = append(L.items, &item{key: key, value: v})
	return v, true, nil
}

// Retrieve returns the value of type T under name and prefix.
func Retrieve[T any](L *List, name, prefix string) (T, error) {
	var zero T
	it := L.find(name, prefix)
	if it == nil {
		return zero, fmt.Errorf("Retrieve: %s: %w", Key(name, prefix), ErrNotFound)
	}
	v, ok := it.value.(T)
	if !ok {
		return zero, fmt.Errorf("Retrieve: %s: %w (%T, want %T)", it.key, ErrWrongType, it.value, zero)
	}
	return v, nil
}

// Set stores v under name and prefix, replacing any previous value of any type.
func Set[T any](L *List, name, prefix string, v T) {
	if it := L.find(name, prefix); it != nil {
		it.value = v
		return
	}
	key := Key(name, prefix)
	L.index[key] = len(L.items)
	L.items = append(L.items, &item{key: key, value: v})
}
