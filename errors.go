/*
 * errors.go, part of gostates.
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

package chem

import (
	"errors"
	"fmt"
	"strings"
)

//ErrKind identifies which of the gostates error classes an error belongs to.
type ErrKind int

const (
	//InputError: malformed or missing trajectory/topology, or zero frames. Fatal.
	InputError ErrKind = iota + 1
	//DimensionMismatch: a descriptor block or a frame selection with the wrong size. Fatal for the run.
	DimensionMismatch
	//NumericDegeneracy: zero-variance columns, rank-deficient PCA fits. Recovered.
	NumericDegeneracy
	//ClusteringDegeneracy: empty clusters during Lloyd's iterations. Recovered by reseeding.
	ClusteringDegeneracy
	//StratificationError: a class with fewer members than the folds requested. Fails one classifier family.
	StratificationError
)

func (k ErrKind) String() string {
	switch k {
	case InputError:
		return "InputError"
	case DimensionMismatch:
		return "DimensionMismatchError"
	case NumericDegeneracy:
		return "NumericDegeneracyError"
	case ClusteringDegeneracy:
		return "ClusteringDegeneracyError"
	case StratificationError:
		return "StratificationError"
	}
	return fmt.Sprintf("ErrKind(%d)", int(k))
}

//CError is the error type of the chem package and the one that the analysis packages return.
//It implements the Error interface.
type CError struct {
	msg  string
	deco []string
	kind ErrKind
}

//NewError returns a new *CError of the given kind. caller is the first decoration.
func NewError(kind ErrKind, caller, msg string) *CError {
	return &CError{msg: msg, deco: []string{caller}, kind: kind}
}

//Errorf is NewError with a format string.
func Errorf(kind ErrKind, caller, format string, a ...interface{}) *CError {
	return NewError(kind, caller, fmt.Sprintf(format, a...))
}

//Error returns a string with an error message.
func (err *CError) Error() string {
	return fmt.Sprintf("%s: %s", err.kind, err.msg)
}

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice.
func (err *CError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//Trace returns the decorations, innermost first, joined by " <- ".
func (err *CError) Trace() string {
	return strings.Join(err.deco, " <- ")
}

//Kind returns the class of the error
func (err *CError) Kind() ErrKind { return err.kind }

//Critical returns true if the error must abort a pipeline run.
func (err *CError) Critical() bool {
	return err.kind == InputError || err.kind == DimensionMismatch
}

//IsKind returns true if err, or an error wrapped by it, is a *CError of the given kind.
func IsKind(err error, kind ErrKind) bool {
	var ce *CError
	if errors.As(err, &ce) {
		return ce.kind == kind
	}
	return false
}

//errDecorate decorates err with caller if it is a chem.Error, and returns it.
func errDecorate(err error, caller string) error {
	if err2, ok := err.(Error); ok {
		err2.Decorate(caller)
	}
	return err
}
