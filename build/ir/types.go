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
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/gsomix/Cesium/build/ir/irkind"
)

// Kind of a type.
type Kind = irkind.Kind

type (
	// Type of a value.
	Type interface {
		Node

		// Kind of the type.
		Kind() Kind

		// Equal returns true if other is the same type.
		// Types are compared structurally: two pointer types are equal
		// if their base types are equal.
		Equal(other Type) bool

		// String representation of the type, as written in C.
		String() string
	}

	// primitiveType is a type fully described by its kind,
	// for example an integer, a floating point or void.
	primitiveType struct {
		knd Kind
	}

	// PointerType is a pointer to a value of a base type.
	PointerType struct {
		Base Type
	}

	// StructType defines the type of a structure.
	// Structures are identified by their tag.
	StructType struct {
		Tag    string
		Fields []*Field
	}

	// Field of a structure.
	Field struct {
		Name string
		Typ  Type
	}

	// FuncType defines a function signature.
	FuncType struct {
		Params *ParamsInfo
		Return Type
	}
)

var (
	_ Type = (*primitiveType)(nil)
	_ Type = (*PointerType)(nil)
	_ Type = (*StructType)(nil)
	_ Type = (*FuncType)(nil)
)

var primitives = func() [irkind.Max]*primitiveType {
	var types [irkind.Max]*primitiveType
	for k := irkind.Invalid; k < irkind.Max; k++ {
		types[k] = &primitiveType{knd: k}
	}
	return types
}()

// TypeFromKind returns a type from a kind.
// Kinds that do not describe a type on their own return the invalid type.
func TypeFromKind(kind Kind) Type {
	if kind >= irkind.Max {
		return InvalidType()
	}
	switch kind {
	case irkind.Pointer, irkind.Struct, irkind.Func:
		return InvalidType()
	}
	return primitives[kind]
}

// InvalidType returns an invalid type.
func InvalidType() Type { return primitives[irkind.Invalid] }

// BoolType returns the type of a comparison.
func BoolType() Type { return primitives[irkind.Bool] }

// CharType returns the plain char type.
func CharType() Type { return primitives[irkind.Char] }

// IntType returns the int type.
func IntType() Type { return primitives[irkind.Int] }

// UIntType returns the unsigned int type.
func UIntType() Type { return primitives[irkind.UInt] }

// LongType returns the long type.
func LongType() Type { return primitives[irkind.Long] }

// ULongType returns the unsigned long type.
func ULongType() Type { return primitives[irkind.ULong] }

// FloatType returns the float type.
func FloatType() Type { return primitives[irkind.Float] }

// DoubleType returns the double type.
func DoubleType() Type { return primitives[irkind.Double] }

// VoidType returns the void type.
func VoidType() Type { return primitives[irkind.Void] }

// PointerTo returns a new pointer type to a base type.
// Pointer types are not interned: use Equal to compare them.
func PointerTo(base Type) *PointerType {
	return &PointerType{Base: base}
}

func (*primitiveType) node() {}

// Kind of the type.
func (t *primitiveType) Kind() Kind { return t.knd }

// Equal returns true if other is the same type.
func (t *primitiveType) Equal(other Type) bool {
	if t.knd == irkind.Invalid {
		return false
	}
	o, ok := other.(*primitiveType)
	return ok && o.knd == t.knd
}

func (t *primitiveType) String() string {
	return t.knd.String()
}

func (*PointerType) node() {}

// Kind of the type.
func (*PointerType) Kind() Kind { return irkind.Pointer }

// Equal returns true if other is a pointer to the same base type.
func (t *PointerType) Equal(other Type) bool {
	o, ok := other.(*PointerType)
	if !ok {
		return false
	}
	return t.Base.Equal(o.Base)
}

func (t *PointerType) String() string {
	return t.Base.String() + "*"
}

func (*StructType) node() {}

// Kind of the type.
func (*StructType) Kind() Kind { return irkind.Struct }

// Equal returns true if other is the same structure.
// Named structures are equal if they have the same tag.
// Anonymous structures are only equal to themselves.
func (t *StructType) Equal(other Type) bool {
	o, ok := other.(*StructType)
	if !ok {
		return false
	}
	if t == o {
		return true
	}
	return t.Tag != "" && t.Tag == o.Tag
}

// FieldByName returns a field of the structure given its name
// and its index in the structure.
func (t *StructType) FieldByName(name string) (*Field, int) {
	for i, field := range t.Fields {
		if field.Name == name {
			return field, i
		}
	}
	return nil, -1
}

func (t *StructType) String() string {
	if t.Tag == "" {
		return "struct <anonymous>"
	}
	return "struct " + t.Tag
}

func (*FuncType) node() {}

// Kind of the type.
func (*FuncType) Kind() Kind { return irkind.Func }

// Equal returns true if other has the same signature.
func (t *FuncType) Equal(other Type) bool {
	o, ok := other.(*FuncType)
	if !ok {
		return false
	}
	if !t.Return.Equal(o.Return) {
		return false
	}
	return t.Params.Equal(o.Params)
}

func (t *FuncType) String() string {
	return fmt.Sprintf("%s(%s)", t.Return.String(), t.Params.String())
}

// ParseTypeName returns a primitive type or a pointer to a primitive type
// given its C spelling, for example "unsigned char*".
func ParseTypeName(s string) (Type, error) {
	s = strings.TrimSpace(s)
	stars := 0
	for strings.HasSuffix(s, "*") {
		s = strings.TrimSpace(strings.TrimSuffix(s, "*"))
		stars++
	}
	kind := irkind.KindFromSpecifiers(strings.Fields(s))
	if kind == irkind.Invalid {
		return nil, errors.Errorf("invalid type name %q", s)
	}
	var typ Type = TypeFromKind(kind)
	for range stars {
		typ = PointerTo(typ)
	}
	return typ, nil
}
