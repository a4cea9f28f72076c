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

// Package lower rewrites IR trees into the minimal set of expressions
// supported by the code generator.
//
// Lowering never modifies its input: a new tree is returned.
// The following rewrites are applied:
//
//	a >= b  ->  (a < b) == 0
//	a <= b  ->  (a > b) == 0
//	a != b  ->  (a == b) == 0
//	a.b     ->  (&a)->b
//	a op= b ->  a = a op b
//
// A lowered tree is its own lowering.
package lower

import (
	"github.com/gsomix/Cesium/build/fmterr"
	"github.com/gsomix/Cesium/build/ir"
)

// Expr returns the lowered version of an expression.
func Expr(expr ir.Expr) (ir.Expr, error) {
	switch exprT := expr.(type) {
	case *ir.IntegerConstant, *ir.FloatConstant, *ir.CharConstant, *ir.IdentExpr:
		return expr, nil
	case *ir.BinaryExpr:
		return binary(exprT)
	case *ir.UnaryExpr:
		x, err := Expr(exprT.X)
		if err != nil {
			return nil, err
		}
		return &ir.UnaryExpr{Src: exprT.Src, Op: exprT.Op, X: x}, nil
	case *ir.MemberAccessExpr:
		x, err := Expr(exprT.X)
		if err != nil {
			return nil, err
		}
		return &ir.PointerMemberAccessExpr{
			Src: exprT.Src,
			X: &ir.UnaryExpr{
				Src: exprT.Src,
				Op:  ir.AddressOf,
				X:   x,
			},
			Member: exprT.Member,
		}, nil
	case *ir.PointerMemberAccessExpr:
		x, err := Expr(exprT.X)
		if err != nil {
			return nil, err
		}
		return &ir.PointerMemberAccessExpr{Src: exprT.Src, X: x, Member: exprT.Member}, nil
	case *ir.CallExpr:
		args, err := exprs(exprT.Args)
		if err != nil {
			return nil, err
		}
		return &ir.CallExpr{Src: exprT.Src, Func: exprT.Func, Args: args}, nil
	case *ir.CastExpr:
		x, err := Expr(exprT.X)
		if err != nil {
			return nil, err
		}
		return &ir.CastExpr{Src: exprT.Src, Typ: exprT.Typ, X: x}, nil
	case *ir.AssignExpr:
		return assign(exprT)
	}
	return nil, fmterr.Internalf(nil, nil, "expression %T cannot be lowered", expr)
}

func exprs(list []ir.Expr) ([]ir.Expr, error) {
	if list == nil {
		return nil, nil
	}
	lowered := make([]ir.Expr, len(list))
	for i, expr := range list {
		var err error
		if lowered[i], err = Expr(expr); err != nil {
			return nil, err
		}
	}
	return lowered, nil
}

// negated returns the comparison operator from which an operator is derived.
func negated(op ir.BinaryOp) (ir.BinaryOp, bool) {
	switch op {
	case ir.GreaterThanOrEqualTo:
		return ir.LessThan, true
	case ir.LessThanOrEqualTo:
		return ir.GreaterThan, true
	case ir.NotEqualTo:
		return ir.EqualTo, true
	}
	return op, false
}

func binary(expr *ir.BinaryExpr) (ir.Expr, error) {
	x, err := Expr(expr.X)
	if err != nil {
		return nil, err
	}
	y, err := Expr(expr.Y)
	if err != nil {
		return nil, err
	}
	op, derived := negated(expr.Op)
	if !derived {
		return &ir.BinaryExpr{Src: expr.Src, Op: expr.Op, X: x, Y: y}, nil
	}
	return &ir.BinaryExpr{
		Src: expr.Src,
		Op:  ir.EqualTo,
		X:   &ir.BinaryExpr{Src: expr.Src, Op: op, X: x, Y: y},
		Y:   ir.Zero(),
	}, nil
}

func assign(expr *ir.AssignExpr) (ir.Expr, error) {
	x, err := Expr(expr.X)
	if err != nil {
		return nil, err
	}
	y, err := Expr(expr.Y)
	if err != nil {
		return nil, err
	}
	if !expr.Compound {
		return &ir.AssignExpr{Src: expr.Src, X: x, Y: y}, nil
	}
	if expr.Op.IsComparison() {
		return nil, fmterr.Internalf(nil, nil, "invalid compound assignment operator %s=", expr.Op)
	}
	return &ir.AssignExpr{
		Src: expr.Src,
		X:   x,
		Y:   &ir.BinaryExpr{Src: expr.Src, Op: expr.Op, X: x, Y: y},
	}, nil
}

// Stmt returns the lowered version of a statement.
func Stmt(stmt ir.Stmt) (ir.Stmt, error) {
	switch stmtT := stmt.(type) {
	case *ir.ExprStmt:
		x, err := Expr(stmtT.X)
		if err != nil {
			return nil, err
		}
		return &ir.ExprStmt{Src: stmtT.Src, X: x}, nil
	case *ir.ReturnStmt:
		if stmtT.X == nil {
			return stmtT, nil
		}
		x, err := Expr(stmtT.X)
		if err != nil {
			return nil, err
		}
		return &ir.ReturnStmt{Src: stmtT.Src, X: x}, nil
	case *ir.DeclStmt:
		lowered := *stmtT
		if stmtT.Init != nil {
			var err error
			if lowered.Init, err = Expr(stmtT.Init); err != nil {
				return nil, err
			}
		}
		return &lowered, nil
	case *ir.BlockStmt:
		list := make([]ir.Stmt, len(stmtT.List))
		for i, s := range stmtT.List {
			var err error
			if list[i], err = Stmt(s); err != nil {
				return nil, err
			}
		}
		return &ir.BlockStmt{Src: stmtT.Src, List: list}, nil
	}
	return nil, fmterr.Internalf(nil, nil, "statement %T cannot be lowered", stmt)
}
