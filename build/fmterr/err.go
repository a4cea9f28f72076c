// Copyright 2025 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package fmterr

import (
	"fmt"
	"go/token"
	"runtime/debug"

	"github.com/pkg/errors"
)

// Category classifies a compiler failure.
type Category int

const (
	// Compilation is reported for a semantically invalid program.
	Compilation Category = iota
	// Unimplemented is reported for a valid construct the compiler does not support yet.
	Unimplemented
	// Internal is reported when an invariant of the compiler does not hold.
	Internal
	// Parse is reported by the front end when the source cannot be parsed.
	Parse
	// Input is reported when a source file or the options cannot be read.
	Input

	// NoError is the category of a nil error.
	NoError Category = -1
)

// String returns a string representation of the category.
func (c Category) String() string {
	switch c {
	case Compilation:
		return "compilation error"
	case Unimplemented:
		return "unimplemented"
	case Internal:
		return "internal error"
	case Parse:
		return "parse error"
	case Input:
		return "input error"
	case NoError:
		return "no error"
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// Tracking identifiers of unimplemented features.
const (
	// WipVarArgs tracks functions with a variable number of arguments.
	WipVarArgs = 196
	// WipUnaryOperator tracks unary operators not supported by the code generator.
	WipUnaryOperator = 197
	// WipGlobalVariable tracks variables declared at file scope.
	WipGlobalVariable = 198
	// WipArray tracks array declarators.
	WipArray = 199
	// WipPointerArithmetic tracks arithmetic on pointer operands.
	WipPointerArithmetic = 200
	// WipBinaryOperator tracks binary operators not supported by the compiler.
	WipBinaryOperator = 201
)

type (
	// Node is a source node with a position.
	Node interface {
		Pos() token.Pos
	}

	// ErrorWithPos is an error attached to a position in C code.
	ErrorWithPos interface {
		error
		FSet() *token.FileSet
		Src() Node
		Err() error
		Category() Category
	}

	errorWithPos struct {
		fset *token.FileSet
		src  Node
		pos  token.Pos
		cat  Category
		id   int
		err  error
	}
)

func newError(fset *token.FileSet, src Node, cat Category, err error) *errorWithPos {
	e := &errorWithPos{
		fset: fset,
		src:  src,
		pos:  token.NoPos,
		cat:  cat,
		err:  err,
	}
	if src != nil {
		// Cache the position to make sure src is valid.
		e.pos = src.Pos()
	}
	return e
}

// Position adds C position information to an error.
// The category of an error built by this package is preserved:
// only its position is filled if it did not have one.
func Position(fset *token.FileSet, src Node, err error) error {
	if err == nil {
		return nil
	}
	var cerr *errorWithPos
	if !errors.As(err, &cerr) {
		return newError(fset, src, Compilation, err)
	}
	if cerr.pos.IsValid() || src == nil {
		return err
	}
	positioned := *cerr
	positioned.fset = fset
	positioned.src = src
	positioned.pos = src.Pos()
	return &positioned
}

// Errorf returns a formatted compilation error for the user.
func Errorf(fset *token.FileSet, src Node, format string, a ...any) error {
	return newError(fset, src, Compilation, errors.Errorf(format, a...))
}

// Unimplementedf returns an error for a feature not supported yet.
// id is a stable identifier to track the feature.
func Unimplementedf(fset *token.FileSet, src Node, id int, format string, a ...any) error {
	err := newError(fset, src, Unimplemented, errors.Errorf(format, a...))
	err.id = id
	return err
}

// Internalf returns an error reporting a bug in the compiler.
func Internalf(fset *token.FileSet, src Node, format string, a ...any) error {
	return newError(fset, src, Internal, errors.Errorf(format, a...))
}

// AsInput marks an error as an input error, keeping its position if it has one.
func AsInput(err error) error {
	if err == nil {
		return nil
	}
	cerr, ok := err.(*errorWithPos)
	if !ok {
		return newError(nil, nil, Input, err)
	}
	input := *cerr
	input.cat = Input
	return &input
}

// Parsef returns a parse error reported by a front end.
func Parsef(fset *token.FileSet, src Node, format string, a ...any) error {
	return newError(fset, src, Parse, errors.Errorf(format, a...))
}

// CategoryOf returns the category of an error.
// A nil error has the category NoError.
// Other errors not built by this package are internal errors.
func CategoryOf(err error) Category {
	if err == nil {
		return NoError
	}
	var cerr *errorWithPos
	if !errors.As(err, &cerr) {
		return Internal
	}
	return cerr.cat
}

// TrackingID returns the identifier of an unimplemented feature.
func TrackingID(err error) (int, bool) {
	var cerr *errorWithPos
	if !errors.As(err, &cerr) || cerr.cat != Unimplemented {
		return 0, false
	}
	return cerr.id, true
}

// Error returns a string description of the error.
func (err *errorWithPos) Error() (s string) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		s = fmt.Sprintf("recovered from panic when building error message: %T:\n%v", err.err, string(debug.Stack()))
	}()
	msg := err.message()
	if err.fset == nil || !err.pos.IsValid() {
		return msg
	}
	return PosString(err.fset, err.pos) + " " + msg
}

func (err *errorWithPos) message() string {
	switch err.cat {
	case Unimplemented:
		return fmt.Sprintf("not implemented yet (wip #%d): %s", err.id, err.err.Error())
	case Internal:
		return "internal compiler error. This is a bug in the compiler. Please report it. Error: " + err.err.Error()
	}
	return err.err.Error()
}

// Unwrap the error.
func (err *errorWithPos) Unwrap() error {
	return err.err
}

// Format writes the error into the state of the formatter.
func (err *errorWithPos) Format(s fmt.State, verb rune) {
	format(err, s, verb)
}

func (err *errorWithPos) FSet() *token.FileSet {
	return err.fset
}

func (err *errorWithPos) Src() Node {
	return err.src
}

func (err *errorWithPos) Err() error {
	return err.err
}

func (err *errorWithPos) Category() Category {
	return err.cat
}

// PosString returns a position as a string that can be used for an error.
func PosString(fset *token.FileSet, pos token.Pos) string {
	return fset.Position(pos).String() + ":"
}
