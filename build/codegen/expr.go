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
	"github.com/gsomix/Cesium/build/fmterr"
	"github.com/gsomix/Cesium/build/ir"
	"github.com/gsomix/Cesium/build/ir/irkind"
)

// EmitExpr emits the instructions computing a lowered expression
// and returns the type of the value left on the stack.
// Void expressions leave nothing on the stack.
func EmitExpr(s *Scope, expr ir.Expr) (ir.Type, error) {
	switch exprT := expr.(type) {
	case *ir.IntegerConstant:
		emitInteger(s, exprT.Val, exprT.Typ)
		return exprT.Typ, nil
	case *ir.FloatConstant:
		if exprT.Typ.Kind() == irkind.Float {
			s.emitWith(cil.LdcR4, float32(exprT.Val))
		} else {
			s.emitWith(cil.LdcR8, exprT.Val)
		}
		return exprT.Typ, nil
	case *ir.CharConstant:
		s.emitWith(cil.LdcI4S, int8(exprT.Val))
		s.emit(cil.ConvU1)
		return ir.CharType(), nil
	case *ir.IdentExpr, *ir.PointerMemberAccessExpr:
		val, err := Resolve(s, expr.(ir.ValueExpr))
		if err != nil {
			return nil, err
		}
		if err := val.EmitGetValue(s); err != nil {
			return nil, err
		}
		return val.Type(), nil
	case *ir.MemberAccessExpr:
		return nil, s.at(expr).Internalf("member access %s has not been lowered", expr.String())
	case *ir.BinaryExpr:
		if exprT.Op.IsComparison() {
			return emitComparison(s, exprT)
		}
		return emitArithmetic(s, exprT)
	case *ir.UnaryExpr:
		return emitUnary(s, exprT)
	case *ir.CallExpr:
		return emitCall(s, exprT)
	case *ir.CastExpr:
		x, err := EmitExpr(s, exprT.X)
		if err != nil {
			return nil, err
		}
		if err := emitConversion(s, exprT, x, exprT.Typ); err != nil {
			return nil, err
		}
		return exprT.Typ, nil
	case *ir.AssignExpr:
		return emitAssign(s, exprT, true)
	}
	return nil, s.at(expr).Internalf("cannot emit expression %T", expr)
}

// emitInteger pushes an integer constant using the shortest instruction.
func emitInteger(s *Scope, val int64, typ ir.Type) {
	if typ.Kind().Size() == 8 {
		s.emitWith(cil.LdcI8, val)
		return
	}
	switch v := int32(val); {
	case v == -1:
		s.emit(cil.LdcI4M1)
	case v >= 0 && v <= 8:
		s.emit(cil.LdcI40 + cil.OpCode(v))
	case v >= -128 && v <= 127:
		s.emitWith(cil.LdcI4S, int8(v))
	default:
		s.emitWith(cil.LdcI4, v)
	}
}

// emitOperand emits an operand of a binary operator converted to a type.
func emitOperand(s *Scope, expr ir.Expr, typ ir.Type) error {
	x, err := EmitExpr(s, expr)
	if err != nil {
		return err
	}
	return emitConversion(s, expr, x, typ)
}

var comparisonOpcodes = map[ir.BinaryOp]cil.OpCode{
	ir.GreaterThan: cil.Cgt,
	ir.LessThan:    cil.Clt,
	ir.EqualTo:     cil.Ceq,
}

func emitComparison(s *Scope, expr *ir.BinaryExpr) (ir.Type, error) {
	op, ok := comparisonOpcodes[expr.Op]
	if !ok {
		return nil, s.at(expr).Internalf("comparison operator %s has not been lowered in %s", expr.Op.String(), expr.String())
	}
	x, err := TypeOf(s, expr.X)
	if err != nil {
		return nil, err
	}
	y, err := TypeOf(s, expr.Y)
	if err != nil {
		return nil, err
	}
	switch {
	case ir.IsPointer(x) && ir.IsPointer(y):
		if _, err := EmitExpr(s, expr.X); err != nil {
			return nil, err
		}
		if _, err := EmitExpr(s, expr.Y); err != nil {
			return nil, err
		}
	case ir.IsNumeric(x) && ir.IsNumeric(y):
		common, err := ir.CommonNumericType(x, y)
		if err != nil {
			return nil, s.at(expr).Internalf("%v", err)
		}
		if err := emitOperand(s, expr.X, common); err != nil {
			return nil, err
		}
		if err := emitOperand(s, expr.Y, common); err != nil {
			return nil, err
		}
	default:
		return nil, s.at(expr).Errorf("unable to compare %s to %s", x.String(), y.String())
	}
	s.emit(op)
	return ir.BoolType(), nil
}

type arithmeticOpcodes struct {
	signed, unsigned cil.OpCode
}

var arithmeticOps = map[ir.BinaryOp]arithmeticOpcodes{
	ir.Add:        {cil.Add, cil.Add},
	ir.Sub:        {cil.Sub, cil.Sub},
	ir.Mul:        {cil.Mul, cil.Mul},
	ir.Div:        {cil.Div, cil.DivUn},
	ir.Rem:        {cil.Rem, cil.RemUn},
	ir.BitwiseAnd: {cil.And, cil.And},
	ir.BitwiseOr:  {cil.Or, cil.Or},
	ir.BitwiseXor: {cil.Xor, cil.Xor},
	ir.LeftShift:  {cil.Shl, cil.Shl},
	ir.RightShift: {cil.Shr, cil.ShrUn},
}

func emitArithmetic(s *Scope, expr *ir.BinaryExpr) (ir.Type, error) {
	ops, ok := arithmeticOps[expr.Op]
	if !ok {
		return nil, s.at(expr).Internalf("binary operator %s has no instruction", expr.Op.String())
	}
	typ, err := binaryType(s, expr)
	if err != nil {
		return nil, err
	}
	if err := emitOperand(s, expr.X, typ); err != nil {
		return nil, err
	}
	yType := typ
	if expr.Op == ir.LeftShift || expr.Op == ir.RightShift {
		yType = ir.IntType()
	}
	if err := emitOperand(s, expr.Y, yType); err != nil {
		return nil, err
	}
	if ir.IsUnsigned(typ) {
		s.emit(ops.unsigned)
	} else {
		s.emit(ops.signed)
	}
	return typ, nil
}

func emitUnary(s *Scope, expr *ir.UnaryExpr) (ir.Type, error) {
	switch expr.Op {
	case ir.AddressOf:
		return emitAddressOf(s, expr)
	case ir.LogicalNot:
		x, err := EmitExpr(s, expr.X)
		if err != nil {
			return nil, err
		}
		if !ir.IsNumeric(x) && !ir.IsPointer(x) {
			return nil, s.at(expr).Errorf("wrong type argument to unary %s: %s", expr.Op.String(), x.String())
		}
		emitZero(s, x)
		s.emit(cil.Ceq)
		return ir.BoolType(), nil
	case ir.Negation, ir.BitwiseNot:
		typ, err := unaryType(s, expr)
		if err != nil {
			return nil, err
		}
		if err := emitOperand(s, expr.X, typ); err != nil {
			return nil, err
		}
		if expr.Op == ir.Negation {
			s.emit(cil.Neg)
		} else {
			s.emit(cil.Not)
		}
		return typ, nil
	}
	return nil, s.at(expr).Unimplementedf(fmterr.WipUnaryOperator, "unary operator not supported, yet: %s", expr.Op.String())
}

func emitAddressOf(s *Scope, expr *ir.UnaryExpr) (ir.Type, error) {
	vExpr, ok := expr.X.(ir.ValueExpr)
	if !ok {
		return nil, s.at(expr).Errorf("required a value expression to get address, got %s instead", expr.X.String())
	}
	val, err := Resolve(s, vExpr)
	if err != nil {
		return nil, err
	}
	aVal, ok := val.(AddressableValue)
	if !ok {
		return nil, s.at(expr).Errorf("required an addressable value to get address, got %s instead", val.String())
	}
	if err := aVal.EmitGetAddress(s); err != nil {
		return nil, err
	}
	s.emit(cil.ConvU)
	return ir.PointerTo(val.Type()), nil
}

// promoteArgument applies the default argument promotions to the argument
// of a function declared without parameter list.
func promoteArgument(typ ir.Type) ir.Type {
	if typ.Kind() == irkind.Float {
		return ir.DoubleType()
	}
	return ir.Promote(typ)
}

func emitCall(s *Scope, expr *ir.CallExpr) (ir.Type, error) {
	fn, ok := s.mod.Function(expr.Func)
	if !ok {
		return nil, s.at(expr).Errorf("function %s is not declared", expr.Func)
	}
	if fn.Params.VarArg() {
		return nil, s.at(expr).Unimplementedf(fmterr.WipVarArgs, "call to vararg function not supported, yet: %s", expr.Func)
	}
	params := fn.Params.List()
	if fn.Params != nil && len(params) != len(expr.Args) {
		return nil, s.at(expr).Errorf("incorrect number of arguments for function %s: expected %d, got %d", expr.Func, len(params), len(expr.Args))
	}
	for i, arg := range expr.Args {
		typ, err := EmitExpr(s, arg)
		if err != nil {
			return nil, err
		}
		target := promoteArgument(typ)
		if fn.Params != nil {
			target = params[i].Typ
		}
		if err := emitConversion(s, arg, typ, target); err != nil {
			return nil, err
		}
	}
	fn.MarkReferenced(s.FSet, source(expr))
	s.emitWith(cil.Call, fn.Method)
	return fn.Return, nil
}

// emitAssign stores the right operand into the left operand.
// The assignment has the type of its left operand. Its value is left
// on the stack only if keep is true.
func emitAssign(s *Scope, expr *ir.AssignExpr, keep bool) (ir.Type, error) {
	if expr.Compound {
		return nil, s.at(expr).Internalf("compound assignment %s has not been lowered", expr.String())
	}
	vExpr, ok := expr.X.(ir.ValueExpr)
	if !ok {
		return nil, s.at(expr).Errorf("lvalue required as left operand of assignment, got %s", expr.X.String())
	}
	val, err := Resolve(s, vExpr)
	if err != nil {
		return nil, err
	}
	lVal, ok := val.(LValue)
	if !ok {
		return nil, s.at(expr).Errorf("cannot assign to %s", val.String())
	}
	if err := lVal.EmitSetValue(s, expr.Y, keep); err != nil {
		return nil, err
	}
	return lVal.Type(), nil
}
