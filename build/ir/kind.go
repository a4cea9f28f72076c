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

package ir

import (
	"github.com/pkg/errors"
	"github.com/gsomix/Cesium/build/ir/irkind"
)

// IsNumeric returns true if the type is an integer or a floating point.
func IsNumeric(typ Type) bool {
	return IsInteger(typ) || IsFloat(typ)
}

// IsInteger returns true if the type is an integer.
func IsInteger(typ Type) bool {
	return irkind.IsIntegerKind(typ.Kind())
}

// IsFloat returns true if the type is a floating point.
func IsFloat(typ Type) bool {
	return irkind.IsFloatKind(typ.Kind())
}

// IsUnsigned returns true if the type is an unsigned integer.
func IsUnsigned(typ Type) bool {
	return irkind.IsUnsignedKind(typ.Kind())
}

// IsPointer returns true if the type is a pointer.
func IsPointer(typ Type) bool {
	_, ok := typ.(*PointerType)
	return ok
}

// IsVoid returns true if the type is void.
func IsVoid(typ Type) bool {
	return typ.Kind() == irkind.Void
}

// Promote returns the type of an integer after integer promotion.
// Other types are returned unchanged.
func Promote(typ Type) Type {
	if !IsInteger(typ) {
		return typ
	}
	return TypeFromKind(irkind.Promote(typ.Kind()))
}

// CommonNumericType returns the type both operands of a numeric operation
// are converted to before the operation executes
// (the usual arithmetic conversions):
//   - if either operand is a floating point, the widest floating point type,
//   - otherwise, after integer promotion, the integer with the greater rank
//     if both operands have the same signedness,
//   - otherwise, the unsigned operand if its rank is greater or equal,
//   - otherwise, the signed operand if it is wider than the unsigned one,
//   - otherwise, the unsigned counterpart of the signed operand.
//
// The result does not depend on the order of the operands.
func CommonNumericType(x, y Type) (Type, error) {
	if !IsNumeric(x) || !IsNumeric(y) {
		return InvalidType(), errors.Errorf("cannot compute a common numeric type for %s and %s", x.String(), y.String())
	}
	xKind, yKind := x.Kind(), y.Kind()
	if irkind.IsFloatKind(xKind) || irkind.IsFloatKind(yKind) {
		if xKind == irkind.Double || yKind == irkind.Double {
			return DoubleType(), nil
		}
		return FloatType(), nil
	}
	xKind, yKind = irkind.Promote(xKind), irkind.Promote(yKind)
	if xKind == yKind {
		return TypeFromKind(xKind), nil
	}
	xUnsigned, yUnsigned := irkind.IsUnsignedKind(xKind), irkind.IsUnsignedKind(yKind)
	if xUnsigned == yUnsigned {
		if xKind.Rank() >= yKind.Rank() {
			return TypeFromKind(xKind), nil
		}
		return TypeFromKind(yKind), nil
	}
	unsigned, signed := xKind, yKind
	if !xUnsigned {
		unsigned, signed = yKind, xKind
	}
	if unsigned.Rank() >= signed.Rank() {
		return TypeFromKind(unsigned), nil
	}
	if signed.Size() > unsigned.Size() {
		return TypeFromKind(signed), nil
	}
	return TypeFromKind(signed.Unsigned()), nil
}

// SizeOf returns the size of a type in bytes.
func SizeOf(typ Type) int {
	st, ok := typ.(*StructType)
	if !ok {
		return typ.Kind().Size()
	}
	size := 0
	for _, field := range st.Fields {
		size += SizeOf(field.Typ)
	}
	return size
}
