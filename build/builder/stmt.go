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
	"github.com/gsomix/Cesium/build/ir"
	"github.com/gsomix/Cesium/build/syntax"
)

func (b *Builder) buildBlock(block *syntax.CompoundStmt) (*ir.BlockStmt, error) {
	irBlock := &ir.BlockStmt{Src: block}
	for _, stmt := range block.List {
		irStmt, err := b.buildStmt(stmt)
		if err != nil {
			return nil, err
		}
		if irStmt == nil {
			continue
		}
		irBlock.List = append(irBlock.List, irStmt)
	}
	return irBlock, nil
}

// buildStmt returns the IR of a statement.
// Returns nil for statements only declaring functions.
func (b *Builder) buildStmt(stmt syntax.Stmt) (ir.Stmt, error) {
	switch stmtT := stmt.(type) {
	case *syntax.CompoundStmt:
		return b.buildBlock(stmtT)
	case *syntax.ExprStmt:
		x, err := b.buildExpr(stmtT.X)
		if err != nil {
			return nil, err
		}
		return &ir.ExprStmt{Src: stmtT, X: x}, nil
	case *syntax.ReturnStmt:
		ret := &ir.ReturnStmt{Src: stmtT}
		if stmtT.Result != nil {
			var err error
			if ret.X, err = b.buildExpr(stmtT.Result); err != nil {
				return nil, err
			}
		}
		return ret, nil
	case *syntax.DeclStmt:
		return b.buildDeclStmt(stmtT)
	}
	return nil, b.Internalf(stmt, "statement %T not supported", stmt)
}

func (b *Builder) buildDeclStmt(stmt *syntax.DeclStmt) (ir.Stmt, error) {
	name, typ, err := b.declaredType(stmt.Specs, stmt.Declarator)
	if err != nil {
		return nil, err
	}
	if _, isFunc := typ.(*ir.FuncType); isFunc {
		return nil, b.declareFunc(stmt.Specs, stmt.Declarator)
	}
	decl := &ir.DeclStmt{
		Src:  stmt,
		Name: name,
		Typ:  typ,
		// const in the specifiers qualifies the variable only
		// if the declarator does not derive another type from it.
		Const: stmt.Specs.Const && isIdent(stmt.Declarator),
	}
	if stmt.Init != nil {
		if decl.Init, err = b.buildExpr(stmt.Init); err != nil {
			return nil, err
		}
	}
	return decl, nil
}

func isIdent(decl syntax.Declarator) bool {
	_, ok := decl.(*syntax.IdentDeclarator)
	return ok
}
