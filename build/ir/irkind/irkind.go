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

// Package irkind defines kind for the C intermediate representation (IR).
package irkind

// Kind of a type.
type Kind uint

// Kind of data supported by the compiler.
const (
	Invalid Kind = iota

	Bool
	// Char is a plain char. Characters are unsigned bytes on the target machine.
	Char
	SChar
	UChar
	Short
	UShort
	Int
	UInt
	Long
	ULong
	LongLong
	ULongLong

	Float
	Double

	// Void is a type for expression returning nothing.
	Void
	Pointer
	Struct
	Func

	// Max value for a Kind constant.
	Max
)

// PointerSize is the size in bytes of a pointer on the target machine.
const PointerSize = 8

// String returns a string representation of a kind.
func (k Kind) String() string {
	switch k {
	case Bool:
		return "_Bool"
	case Char:
		return "char"
	case SChar:
		return "signed char"
	case UChar:
		return "unsigned char"
	case Short:
		return "short"
	case UShort:
		return "unsigned short"
	case Int:
		return "int"
	case UInt:
		return "unsigned int"
	case Long:
		return "long"
	case ULong:
		return "unsigned long"
	case LongLong:
		return "long long"
	case ULongLong:
		return "unsigned long long"
	case Float:
		return "float"
	case Double:
		return "double"
	case Void:
		return "void"
	case Pointer:
		return "pointer"
	case Struct:
		return "struct"
	case Func:
		return "func"
	}
	return "invalid"
}

// IsIntegerKind returns true if the kind is an integer.
func IsIntegerKind(k Kind) bool {
	return k >= Bool && k <= ULongLong
}

// IsFloatKind returns true if the kind is a floating point.
func IsFloatKind(k Kind) bool {
	return k == Float || k == Double
}

// IsUnsignedKind returns true if the kind is an unsigned integer.
func IsUnsignedKind(k Kind) bool {
	switch k {
	case Bool, Char, UChar, UShort, UInt, ULong, ULongLong:
		return true
	}
	return false
}

// Size returns the size of a value of the kind in bytes.
// Returns 0 if the size depends on the type and not only its kind.
func (k Kind) Size() int {
	switch k {
	case Bool, Char, SChar, UChar:
		return 1
	case Short, UShort:
		return 2
	case Int, UInt, Float:
		return 4
	case Long, ULong, LongLong, ULongLong, Double:
		return 8
	case Pointer:
		return PointerSize
	}
	return 0
}

// Rank returns the integer conversion rank of a kind.
// Non integer kinds have a rank of 0.
func (k Kind) Rank() int {
	switch k {
	case Bool:
		return 1
	case Char, SChar, UChar:
		return 2
	case Short, UShort:
		return 3
	case Int, UInt:
		return 4
	case Long, ULong:
		return 5
	case LongLong, ULongLong:
		return 6
	}
	return 0
}

// Promote applies the integer promotion to a kind:
// integers with a rank lower than int are promoted to int.
func Promote(k Kind) Kind {
	if IsIntegerKind(k) && k.Rank() < Int.Rank() {
		return Int
	}
	return k
}

// Unsigned returns the unsigned counterpart of an integer kind.
func (k Kind) Unsigned() Kind {
	switch k {
	case SChar:
		return UChar
	case Short:
		return UShort
	case Int:
		return UInt
	case Long:
		return ULong
	case LongLong:
		return ULongLong
	}
	return k
}

// KindFromSpecifiers returns a kind given the type specifiers of a declaration,
// for example ["unsigned", "long", "int"].
// It only works for the basic types: struct types and derived types
// (pointers, functions) are built by the compiler from their declaration.
//
// An invalid combination of specifiers returns Invalid.
func KindFromSpecifiers(specs []string) Kind {
	var counts struct {
		void, bool, char, short, int, long, float, double int
		signed, unsigned                                 int
	}
	for _, spec := range specs {
		switch spec {
		case "void":
			counts.void++
		case "_Bool":
			counts.bool++
		case "char":
			counts.char++
		case "short":
			counts.short++
		case "int":
			counts.int++
		case "long":
			counts.long++
		case "float":
			counts.float++
		case "double":
			counts.double++
		case "signed":
			counts.signed++
		case "unsigned":
			counts.unsigned++
		default:
			return Invalid
		}
	}
	signedness := counts.signed + counts.unsigned
	if counts.signed > 1 || counts.unsigned > 1 || signedness > 1 || counts.int > 1 {
		return Invalid
	}
	others := func(n int) bool {
		return counts.void+counts.bool+counts.char+counts.short+counts.int+counts.long+counts.float+counts.double != n
	}
	switch {
	case counts.void > 0:
		if others(1) || signedness > 0 {
			return Invalid
		}
		return Void
	case counts.bool > 0:
		if others(1) || signedness > 0 {
			return Invalid
		}
		return Bool
	case counts.float > 0:
		if others(1) || signedness > 0 {
			return Invalid
		}
		return Float
	case counts.double > 0:
		// long double is represented as a double.
		if others(1+counts.long) || counts.long > 1 || signedness > 0 {
			return Invalid
		}
		return Double
	case counts.char > 0:
		if others(1) {
			return Invalid
		}
		switch {
		case counts.signed > 0:
			return SChar
		case counts.unsigned > 0:
			return UChar
		}
		return Char
	case counts.short > 0:
		if counts.short > 1 || counts.long > 0 {
			return Invalid
		}
		return signedKind(Short, counts.unsigned > 0)
	case counts.long == 1:
		return signedKind(Long, counts.unsigned > 0)
	case counts.long == 2:
		return signedKind(LongLong, counts.unsigned > 0)
	case counts.long > 2:
		return Invalid
	case counts.int > 0 || signedness > 0:
		return signedKind(Int, counts.unsigned > 0)
	}
	return Invalid
}

func signedKind(k Kind, unsigned bool) Kind {
	if unsigned {
		return k.Unsigned()
	}
	return k
}
