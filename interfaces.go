/*
 * interfaces.go, part of godissolve.
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

package dissolve

import (
	"fmt"
	"strings"

	v3 "github.com/rmera/godissolve/v3"
)

// Traj is an interface for any source of configuration frames.
type Traj interface {

	//Is the trajectory ready to be read?
	Readable() bool

	//reads the next frame into output, or discards it if output is nil.
	//it also fills the (optional) box with the 9 components of the cell vectors, if present in the frame.
	Next(output *v3.Matrix, box ...[]float64) error

	//Returns the number of atoms per frame
	Len() int
}

// Error is the interface for errors that all packages in this library implement. The Decorate method allows to add and retrieve info from the
// error, without changing it's type or wrapping it around something else.
type Error interface {
	Error() string
	Decorate(string) []string
}

// TrajError is the interface for errors in trajectories
type TrajError interface {
	Error
	Critical() bool
	FileName() string
	Format() string
}

// LastFrameError distinguishes the harmless end-of-trajectory errors so they can be
// filtered in a type switch that looks for this interface.
type LastFrameError interface {
	TrajError
	NormalLastFrameTermination() //does nothing, just to separate this interface from other TrajError's
}

// CError is the general error type of the dissolve package.
type CError struct {
	msg  string
	deco []string
}

func (err CError) Error() string {
	if len(err.deco) == 0 {
		return err.msg
	}
	return strings.Join(err.deco, ": ") + ": " + err.msg
}

// Decorate adds deco to the list of callers the error went through, and returns the list.
func (err *CError) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

func newError(caller, format string, a ...any) *CError {
	return &CError{msg: fmt.Sprintf(format, a...), deco: []string{caller}}
}
