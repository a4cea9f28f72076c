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

package codegen

import (
	"github.com/gsomix/Cesium/build/cil"
	"github.com/gsomix/Cesium/build/ir"
	"github.com/gsomix/Cesium/build/ir/irkind"
)

// emitConversion converts the value on top of the stack from one type to another.
func emitConversion(s *Scope, expr ir.Expr, from, to ir.Type) error {
	if from.Equal(to) {
		return nil
	}
	if ir.IsVoid(to) {
		if !ir.IsVoid(from) {
			s.emit(cil.Pop)
		}
		return nil
	}
	if ir.IsVoid(from) {
		return s.at(expr).Errorf("void value of %s not ignored as it ought to be", expr.String())
	}
	switch {
	case ir.IsPointer(to):
		return convertToPointer(s, expr, from, to)
	case to.Kind() == irkind.Bool:
		return convertToBool(s, expr, from)
	case ir.IsInteger(to):
		return convertToInteger(s, expr, from, to)
	case ir.IsFloat(to):
		return convertToFloat(s, expr, from, to)
	}
	return s.at(expr).Errorf("cannot convert %s from %s to %s", expr.String(), from.String(), to.String())
}

func convertToPointer(s *Scope, expr ir.Expr, from, to ir.Type) error {
	switch {
	case ir.IsPointer(from):
		return nil
	case ir.IsInteger(from):
		s.emit(cil.ConvU)
		return nil
	}
	return s.at(expr).Errorf("cannot convert %s from %s to %s", expr.String(), from.String(), to.String())
}

// emitZero pushes the zero value of a scalar type.
func emitZero(s *Scope, typ ir.Type) {
	switch {
	case typ.Kind() == irkind.Float:
		s.emitWith(cil.LdcR4, float32(0))
	case typ.Kind() == irkind.Double:
		s.emitWith(cil.LdcR8, float64(0))
	case ir.IsPointer(typ):
		s.emit(cil.LdcI40)
		s.emit(cil.ConvU)
	case typ.Kind().Size() == 8:
		s.emitWith(cil.LdcI8, int64(0))
	default:
		s.emit(cil.LdcI40)
	}
}

func convertToBool(s *Scope, expr ir.Expr, from ir.Type) error {
	if !ir.IsNumeric(from) && !ir.IsPointer(from) {
		return s.at(expr).Errorf("cannot convert %s from %s to %s", expr.String(), from.String(), ir.BoolType().String())
	}
	emitZero(s, from)
	s.emit(cil.Ceq)
	s.emit(cil.LdcI40)
	s.emit(cil.Ceq)
	return nil
}

var integerConversions = map[irkind.Kind]cil.OpCode{
	irkind.Char:      cil.ConvU1,
	irkind.SChar:     cil.ConvI1,
	irkind.UChar:     cil.ConvU1,
	irkind.Short:     cil.ConvI2,
	irkind.UShort:    cil.ConvU2,
	irkind.Int:       cil.ConvI4,
	irkind.UInt:      cil.ConvU4,
	irkind.Long:      cil.ConvI8,
	irkind.ULong:     cil.ConvU8,
	irkind.LongLong:  cil.ConvI8,
	irkind.ULongLong: cil.ConvU8,
}

func convertToInteger(s *Scope, expr ir.Expr, from, to ir.Type) error {
	if !ir.IsNumeric(from) && !ir.IsPointer(from) {
		return s.at(expr).Errorf("cannot convert %s from %s to %s", expr.String(), from.String(), to.String())
	}
	if ir.IsInteger(from) && sameStackValue(from.Kind(), to.Kind()) {
		return nil
	}
	op := integerConversions[to.Kind()]
	// Widening to 64 bits extends according to the signedness of the source.
	if to.Kind().Size() == 8 && ir.IsInteger(from) {
		op = cil.ConvI8
		if ir.IsUnsigned(from) {
			op = cil.ConvU8
		}
	}
	s.emit(op)
	return nil
}

// sameStackValue returns true if an integer of kind from is already
// represented on the stack as an integer of kind to.
func sameStackValue(from, to irkind.Kind) bool {
	fromSize, toSize := from.Size(), to.Size()
	if fromSize == toSize {
		return toSize >= 4
	}
	return toSize == 4 && fromSize < 4
}

func convertToFloat(s *Scope, expr ir.Expr, from, to ir.Type) error {
	if !ir.IsNumeric(from) {
		return s.at(expr).Errorf("cannot convert %s from %s to %s", expr.String(), from.String(), to.String())
	}
	if ir.IsUnsigned(from) {
		s.emit(cil.ConvRUn)
	}
	if to.Kind() == irkind.Float {
		s.emit(cil.ConvR4)
	} else {
		s.emit(cil.ConvR8)
	}
	return nil
}
