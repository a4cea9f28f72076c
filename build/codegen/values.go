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
	"fmt"

	"github.com/gsomix/Cesium/build/cil"
	"github.com/gsomix/Cesium/build/fmterr"
	"github.com/gsomix/Cesium/build/ir"
	"github.com/gsomix/Cesium/build/module"
)

type (
	// Value is a storage location or a function that can be read.
	Value interface {
		// Type of the value.
		Type() ir.Type
		// EmitGetValue pushes the value on the stack.
		EmitGetValue(s *Scope) error
		String() string
	}

	// AddressableValue is a value with an address.
	AddressableValue interface {
		Value
		// EmitGetAddress pushes the address of the value on the stack.
		EmitGetAddress(s *Scope) error
	}

	// LValue is an addressable value that can be written.
	LValue interface {
		AddressableValue
		// EmitSetValue evaluates an expression and stores its result.
		// If keep is true, the stored value is also left on the stack.
		EmitSetValue(s *Scope, value ir.Expr, keep bool) error
	}
)

var (
	_ LValue           = (*parameterValue)(nil)
	_ LValue           = (*localValue)(nil)
	_ AddressableValue = (*constLocalValue)(nil)
	_ LValue           = (*fieldValue)(nil)
	_ Value            = (*functionValue)(nil)
)

// emitAssigned evaluates an expression and converts its result
// to the type of the value it is assigned to.
func emitAssigned(s *Scope, value ir.Expr, target ir.Type) error {
	typ, err := EmitExpr(s, value)
	if err != nil {
		return err
	}
	return emitConversion(s, value, typ, target)
}

// ----------------------------------------------------------------------------
// Parameters.
type parameterValue struct {
	param *cil.Parameter
}

func (v *parameterValue) Type() ir.Type {
	return v.param.Typ
}

func (v *parameterValue) EmitGetValue(s *Scope) error {
	switch idx := v.param.Index; {
	case idx == 0:
		s.emit(cil.Ldarg0)
	case idx == 1:
		s.emit(cil.Ldarg1)
	case idx == 2:
		s.emit(cil.Ldarg2)
	case idx == 3:
		s.emit(cil.Ldarg3)
	case idx <= 255:
		s.emitWith(cil.LdargS, v.param)
	default:
		s.emitWith(cil.Ldarg, v.param)
	}
	return nil
}

func (v *parameterValue) EmitGetAddress(s *Scope) error {
	if v.param.Index <= 255 {
		s.emitWith(cil.LdargaS, v.param)
	} else {
		s.emitWith(cil.Ldarga, v.param)
	}
	return nil
}

func (v *parameterValue) EmitSetValue(s *Scope, value ir.Expr, keep bool) error {
	if err := emitAssigned(s, value, v.param.Typ); err != nil {
		return err
	}
	if keep {
		s.emit(cil.Dup)
	}
	if v.param.Index <= 255 {
		s.emitWith(cil.StargS, v.param)
	} else {
		s.emitWith(cil.Starg, v.param)
	}
	return nil
}

func (v *parameterValue) String() string {
	return fmt.Sprintf("parameter %s", v.param.String())
}

// ----------------------------------------------------------------------------
// Local variables.
type localValue struct {
	local *cil.Local
}

func emitLoadLocal(s *Scope, local *cil.Local) {
	switch idx := local.Index; {
	case idx == 0:
		s.emit(cil.Ldloc0)
	case idx == 1:
		s.emit(cil.Ldloc1)
	case idx == 2:
		s.emit(cil.Ldloc2)
	case idx == 3:
		s.emit(cil.Ldloc3)
	case idx <= 255:
		s.emitWith(cil.LdlocS, local)
	default:
		s.emitWith(cil.Ldloc, local)
	}
}

func emitLoadLocalAddress(s *Scope, local *cil.Local) {
	if local.Index <= 255 {
		s.emitWith(cil.LdlocaS, local)
	} else {
		s.emitWith(cil.Ldloca, local)
	}
}

func emitStoreLocal(s *Scope, local *cil.Local) {
	switch idx := local.Index; {
	case idx == 0:
		s.emit(cil.Stloc0)
	case idx == 1:
		s.emit(cil.Stloc1)
	case idx == 2:
		s.emit(cil.Stloc2)
	case idx == 3:
		s.emit(cil.Stloc3)
	case idx <= 255:
		s.emitWith(cil.StlocS, local)
	default:
		s.emitWith(cil.Stloc, local)
	}
}

func (v *localValue) Type() ir.Type {
	return v.local.Typ
}

func (v *localValue) EmitGetValue(s *Scope) error {
	emitLoadLocal(s, v.local)
	return nil
}

func (v *localValue) EmitGetAddress(s *Scope) error {
	emitLoadLocalAddress(s, v.local)
	return nil
}

func (v *localValue) EmitSetValue(s *Scope, value ir.Expr, keep bool) error {
	if err := emitAssigned(s, value, v.local.Typ); err != nil {
		return err
	}
	if keep {
		s.emit(cil.Dup)
	}
	emitStoreLocal(s, v.local)
	return nil
}

func (v *localValue) String() string {
	return fmt.Sprintf("local variable %s", v.local.Name)
}

// constLocalValue is a local variable declared const.
// It can only be written by its initializer.
type constLocalValue struct {
	local *cil.Local
}

func (v *constLocalValue) Type() ir.Type {
	return v.local.Typ
}

func (v *constLocalValue) EmitGetValue(s *Scope) error {
	emitLoadLocal(s, v.local)
	return nil
}

func (v *constLocalValue) EmitGetAddress(s *Scope) error {
	emitLoadLocalAddress(s, v.local)
	return nil
}

func (v *constLocalValue) String() string {
	return fmt.Sprintf("const local variable %s", v.local.Name)
}

// ----------------------------------------------------------------------------
// Structure fields.
type fieldValue struct {
	ptr   ir.Expr
	field *cil.Field
}

func (v *fieldValue) Type() ir.Type {
	return v.field.Typ
}

func (v *fieldValue) emitPointer(s *Scope) error {
	_, err := EmitExpr(s, v.ptr)
	return err
}

func (v *fieldValue) EmitGetValue(s *Scope) error {
	if err := v.emitPointer(s); err != nil {
		return err
	}
	s.emitWith(cil.Ldfld, v.field)
	return nil
}

func (v *fieldValue) EmitGetAddress(s *Scope) error {
	if err := v.emitPointer(s); err != nil {
		return err
	}
	s.emitWith(cil.Ldflda, v.field)
	return nil
}

func (v *fieldValue) EmitSetValue(s *Scope, value ir.Expr, keep bool) error {
	if err := v.emitPointer(s); err != nil {
		return err
	}
	if err := emitAssigned(s, value, v.field.Typ); err != nil {
		return err
	}
	if !keep {
		s.emitWith(cil.Stfld, v.field)
		return nil
	}
	// The pointer is below the value on the stack.
	tmp := s.Body().DeclareLocal("", v.field.Typ)
	s.emit(cil.Dup)
	emitStoreLocal(s, tmp)
	s.emitWith(cil.Stfld, v.field)
	emitLoadLocal(s, tmp)
	return nil
}

func (v *fieldValue) String() string {
	return fmt.Sprintf("field %s", v.field.String())
}

// ----------------------------------------------------------------------------
// Functions.
type functionValue struct {
	fn  *module.FunctionInfo
	src fmterr.Node
}

func (v *functionValue) Type() ir.Type {
	return ir.PointerTo(&ir.FuncType{
		Params: v.fn.Params,
		Return: v.fn.Return,
	})
}

func (v *functionValue) EmitGetValue(s *Scope) error {
	v.fn.MarkReferenced(s.FSet, v.src)
	s.emitWith(cil.Ldftn, v.fn.Method)
	return nil
}

func (v *functionValue) String() string {
	return fmt.Sprintf("function %s", v.fn.Name)
}

// Resolve returns the value referred to by a value expression.
func Resolve(s *Scope, expr ir.ValueExpr) (Value, error) {
	switch exprT := expr.(type) {
	case *ir.IdentExpr:
		val, ok := s.Lookup(exprT.Name)
		if !ok {
			return nil, s.at(expr).Errorf("identifier %s is not declared", exprT.Name)
		}
		if fn, ok := val.(*functionValue); ok {
			fn.src = source(expr)
		}
		return val, nil
	case *ir.PointerMemberAccessExpr:
		return resolveField(s, exprT)
	case *ir.MemberAccessExpr:
		return nil, s.at(expr).Internalf("member access %s has not been lowered", expr.String())
	}
	return nil, s.at(expr).Internalf("cannot resolve value expression %T", expr)
}

func resolveField(s *Scope, expr *ir.PointerMemberAccessExpr) (Value, error) {
	typ, err := TypeOf(s, expr.X)
	if err != nil {
		return nil, err
	}
	ptr, ok := typ.(*ir.PointerType)
	if !ok {
		return nil, s.at(expr).Errorf("invalid type argument of ->: %s is not a pointer", typ.String())
	}
	st, ok := ptr.Base.(*ir.StructType)
	if !ok {
		return nil, s.at(expr).Errorf("request for member %s in something not a structure: %s", expr.Member, ptr.Base.String())
	}
	if st.Fields == nil && st.Tag != "" {
		if registered, ok := s.mod.Struct(st.Tag); ok {
			st = registered
		}
	}
	if st.Fields == nil {
		return nil, s.at(expr).Errorf("dereferencing pointer to incomplete type %s", st.String())
	}
	field, index := st.FieldByName(expr.Member)
	if field == nil {
		return nil, s.at(expr).Errorf("%s has no member named %s", st.String(), expr.Member)
	}
	return &fieldValue{
		ptr: expr.X,
		field: &cil.Field{
			Struct: st,
			Index:  index,
			Name:   field.Name,
			Typ:    field.Typ,
		},
	}, nil
}
