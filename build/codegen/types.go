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
	"github.com/gsomix/Cesium/build/fmterr"
	"github.com/gsomix/Cesium/build/ir"
)

// TypeOf returns the type of a lowered expression.
func TypeOf(s *Scope, expr ir.Expr) (ir.Type, error) {
	switch exprT := expr.(type) {
	case *ir.IntegerConstant:
		return exprT.Typ, nil
	case *ir.FloatConstant:
		return exprT.Typ, nil
	case *ir.CharConstant:
		return ir.CharType(), nil
	case *ir.IdentExpr, *ir.PointerMemberAccessExpr, *ir.MemberAccessExpr:
		val, err := Resolve(s, expr.(ir.ValueExpr))
		if err != nil {
			return nil, err
		}
		return val.Type(), nil
	case *ir.BinaryExpr:
		return binaryType(s, exprT)
	case *ir.UnaryExpr:
		return unaryType(s, exprT)
	case *ir.CallExpr:
		fn, ok := s.mod.Function(exprT.Func)
		if !ok {
			return nil, s.at(expr).Errorf("function %s is not declared", exprT.Func)
		}
		return fn.Return, nil
	case *ir.CastExpr:
		return exprT.Typ, nil
	case *ir.AssignExpr:
		return TypeOf(s, exprT.X)
	}
	return nil, s.at(expr).Internalf("cannot compute the type of expression %T", expr)
}

func binaryType(s *Scope, expr *ir.BinaryExpr) (ir.Type, error) {
	if expr.Op.IsComparison() {
		return ir.BoolType(), nil
	}
	x, err := TypeOf(s, expr.X)
	if err != nil {
		return nil, err
	}
	y, err := TypeOf(s, expr.Y)
	if err != nil {
		return nil, err
	}
	if ir.IsPointer(x) || ir.IsPointer(y) {
		return nil, s.at(expr).Unimplementedf(fmterr.WipPointerArithmetic, "pointer arithmetic not supported, yet: %s", expr.String())
	}
	if !ir.IsNumeric(x) || !ir.IsNumeric(y) {
		return nil, s.at(expr).Errorf("invalid operands to binary %s (have %s and %s)", expr.Op.String(), x.String(), y.String())
	}
	if expr.Op.IsBitwise() && (!ir.IsInteger(x) || !ir.IsInteger(y)) {
		return nil, s.at(expr).Errorf("invalid operands to binary %s (have %s and %s)", expr.Op.String(), x.String(), y.String())
	}
	if expr.Op == ir.LeftShift || expr.Op == ir.RightShift {
		return ir.Promote(x), nil
	}
	common, err := ir.CommonNumericType(x, y)
	if err != nil {
		return nil, s.at(expr).Errorf("%v", err)
	}
	return common, nil
}

func unaryType(s *Scope, expr *ir.UnaryExpr) (ir.Type, error) {
	switch expr.Op {
	case ir.LogicalNot:
		return ir.BoolType(), nil
	case ir.AddressOf:
		x, err := TypeOf(s, expr.X)
		if err != nil {
			return nil, err
		}
		return ir.PointerTo(x), nil
	case ir.Negation, ir.BitwiseNot:
		x, err := TypeOf(s, expr.X)
		if err != nil {
			return nil, err
		}
		if !ir.IsNumeric(x) || (expr.Op == ir.BitwiseNot && !ir.IsInteger(x)) {
			return nil, s.at(expr).Errorf("wrong type argument to unary %s: %s", expr.Op.String(), x.String())
		}
		return ir.Promote(x), nil
	}
	return nil, s.at(expr).Unimplementedf(fmterr.WipUnaryOperator, "unary operator not supported, yet: %s", expr.Op.String())
}
