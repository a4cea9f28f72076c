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
)

// EmitStmt emits the instructions of a lowered statement.
func EmitStmt(s *Scope, stmt ir.Stmt) error {
	switch stmtT := stmt.(type) {
	case *ir.ExprStmt:
		if assign, ok := stmtT.X.(*ir.AssignExpr); ok {
			_, err := emitAssign(s, assign, false)
			return err
		}
		typ, err := EmitExpr(s, stmtT.X)
		if err != nil {
			return err
		}
		if !ir.IsVoid(typ) {
			s.emit(cil.Pop)
		}
		return nil
	case *ir.ReturnStmt:
		return emitReturn(s, stmtT)
	case *ir.DeclStmt:
		return emitDecl(s, stmtT)
	case *ir.BlockStmt:
		s.Push()
		defer s.Pop()
		return emitStmts(s, stmtT.List)
	}
	return s.at(stmt).Internalf("cannot emit statement %T", stmt)
}

func emitStmts(s *Scope, stmts []ir.Stmt) error {
	for _, stmt := range stmts {
		if err := EmitStmt(s, stmt); err != nil {
			return err
		}
	}
	return nil
}

func emitReturn(s *Scope, stmt *ir.ReturnStmt) error {
	ret := s.fn.Return
	if stmt.X == nil {
		if !ir.IsVoid(ret) {
			return s.at(stmt).Errorf("non-void function %s should return a value", s.fn.Name)
		}
		s.emit(cil.Ret)
		return nil
	}
	if ir.IsVoid(ret) {
		return s.at(stmt).Errorf("void function %s should not return a value", s.fn.Name)
	}
	if err := emitAssigned(s, stmt.X, ret); err != nil {
		return err
	}
	s.emit(cil.Ret)
	return nil
}

func emitDecl(s *Scope, stmt *ir.DeclStmt) error {
	if ir.IsVoid(stmt.Typ) {
		return s.at(stmt).Errorf("variable %s declared void", stmt.Name)
	}
	val, err := s.DeclareLocal(source(stmt), stmt.Name, stmt.Typ, stmt.Const)
	if err != nil {
		return err
	}
	if stmt.Init == nil {
		return nil
	}
	if err := emitAssigned(s, stmt.Init, stmt.Typ); err != nil {
		return err
	}
	switch valT := val.(type) {
	case *localValue:
		emitStoreLocal(s, valT.local)
	case *constLocalValue:
		emitStoreLocal(s, valT.local)
	default:
		return s.at(stmt).Internalf("unexpected local value %T", val)
	}
	return nil
}

// EmitFunctionBody emits the statements of a function.
// A return instruction is appended if the body does not end with one:
// non-void functions then return zero.
func EmitFunctionBody(s *Scope, body *ir.BlockStmt) error {
	if err := emitStmts(s, body.List); err != nil {
		return err
	}
	if last, ok := s.body.Last(); ok && last.Op == cil.Ret {
		return nil
	}
	if ret := s.fn.Return; !ir.IsVoid(ret) {
		zero := &ir.IntegerConstant{Src: body.Src, Val: 0, Typ: ir.IntType()}
		if err := emitAssigned(s, zero, ret); err != nil {
			return err
		}
	}
	s.emit(cil.Ret)
	return nil
}
