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

package builder

import (
	"strings"

	"github.com/gsomix/Cesium/build/fmterr"
	"github.com/gsomix/Cesium/build/ir"
	"github.com/gsomix/Cesium/build/syntax"
)

func (b *Builder) buildExpr(expr syntax.Expr) (ir.Expr, error) {
	switch exprT := expr.(type) {
	case *syntax.Ident:
		return &ir.IdentExpr{Src: exprT, Name: exprT.Name}, nil
	case *syntax.IntLit:
		val, typ, err := ir.ParseIntegerLiteral(exprT.Value)
		if err != nil {
			return nil, b.Position(exprT, err)
		}
		return &ir.IntegerConstant{Src: exprT, Val: val, Typ: typ}, nil
	case *syntax.FloatLit:
		val, typ, err := ir.ParseFloatLiteral(exprT.Value)
		if err != nil {
			return nil, b.Position(exprT, err)
		}
		return &ir.FloatConstant{Src: exprT, Val: val, Typ: typ}, nil
	case *syntax.CharLit:
		val, err := ir.DecodeChar(exprT.Value)
		if err != nil {
			return nil, b.Position(exprT, err)
		}
		return &ir.CharConstant{Src: exprT, Val: val}, nil
	case *syntax.ParenExpr:
		return b.buildExpr(exprT.X)
	case *syntax.BinaryExpr:
		return b.buildBinaryExpr(exprT)
	case *syntax.UnaryExpr:
		op, ok := ir.UnaryOpFromString(exprT.Op)
		if !ok {
			return nil, b.Unimplementedf(exprT, fmterr.WipUnaryOperator, "unary operator not supported, yet: %s", exprT.Op)
		}
		x, err := b.buildExpr(exprT.X)
		if err != nil {
			return nil, err
		}
		return &ir.UnaryExpr{Src: exprT, Op: op, X: x}, nil
	case *syntax.MemberExpr:
		x, err := b.buildExpr(exprT.X)
		if err != nil {
			return nil, err
		}
		return &ir.MemberAccessExpr{Src: exprT, X: x, Member: exprT.Member.Name}, nil
	case *syntax.PtrMemberExpr:
		x, err := b.buildExpr(exprT.X)
		if err != nil {
			return nil, err
		}
		return &ir.PointerMemberAccessExpr{Src: exprT, X: x, Member: exprT.Member.Name}, nil
	case *syntax.CallExpr:
		call := &ir.CallExpr{Src: exprT, Func: exprT.Fun.Name, Args: make([]ir.Expr, len(exprT.Args))}
		for i, arg := range exprT.Args {
			var err error
			if call.Args[i], err = b.buildExpr(arg); err != nil {
				return nil, err
			}
		}
		return call, nil
	case *syntax.CastExpr:
		typ, err := b.typeName(exprT.Type)
		if err != nil {
			return nil, err
		}
		x, err := b.buildExpr(exprT.X)
		if err != nil {
			return nil, err
		}
		return &ir.CastExpr{Src: exprT, Typ: typ, X: x}, nil
	case *syntax.AssignExpr:
		return b.buildAssignExpr(exprT)
	}
	return nil, b.Internalf(expr, "expression %T not supported", expr)
}

func (b *Builder) buildBinaryExpr(expr *syntax.BinaryExpr) (ir.Expr, error) {
	op, ok := ir.BinaryOpFromString(expr.Op)
	if !ok {
		return nil, b.Unimplementedf(expr, fmterr.WipBinaryOperator, "binary operator not supported, yet: %s", expr.Op)
	}
	x, err := b.buildExpr(expr.X)
	if err != nil {
		return nil, err
	}
	y, err := b.buildExpr(expr.Y)
	if err != nil {
		return nil, err
	}
	return &ir.BinaryExpr{Src: expr, Op: op, X: x, Y: y}, nil
}

func (b *Builder) buildAssignExpr(expr *syntax.AssignExpr) (ir.Expr, error) {
	assign := &ir.AssignExpr{Src: expr}
	if expr.Op != "=" {
		op, ok := ir.BinaryOpFromString(strings.TrimSuffix(expr.Op, "="))
		if !ok || op.IsComparison() || !strings.HasSuffix(expr.Op, "=") {
			return nil, b.Errorf(expr, "invalid assignment operator %s", expr.Op)
		}
		assign.Compound = true
		assign.Op = op
	}
	var err error
	if assign.X, err = b.buildExpr(expr.X); err != nil {
		return nil, err
	}
	if assign.Y, err = b.buildExpr(expr.Y); err != nil {
		return nil, err
	}
	return assign, nil
}
