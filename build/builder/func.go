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
	"github.com/gsomix/Cesium/build/codegen"
	"github.com/gsomix/Cesium/build/fmterr"
	"github.com/gsomix/Cesium/build/ir"
	"github.com/gsomix/Cesium/build/lower"
	"github.com/gsomix/Cesium/build/module"
	"github.com/gsomix/Cesium/build/syntax"
)

func (b *Builder) funcSignature(specs *syntax.DeclSpecs, decl syntax.Declarator) (string, *ir.FuncType, error) {
	name, typ, err := b.declaredType(specs, decl)
	if err != nil {
		return "", nil, err
	}
	ftype, ok := typ.(*ir.FuncType)
	if !ok {
		return "", nil, b.Errorf(decl, "%s is declared as %s and not as a function", name, typ.String())
	}
	return name, ftype, nil
}

func (b *Builder) declareFunc(specs *syntax.DeclSpecs, decl syntax.Declarator) error {
	name, ftype, err := b.funcSignature(specs, decl)
	if err != nil {
		return err
	}
	_, err = b.mod.Declare(b.FSet, decl, name, ftype.Params, ftype.Return)
	return err
}

func (b *Builder) defineFunc(decl *syntax.FuncDecl) error {
	name, ftype, err := b.funcSignature(decl.Specs, decl.Declarator)
	if err != nil {
		return err
	}
	if ftype.Params.VarArg() {
		return b.Unimplementedf(decl.Declarator, fmterr.WipVarArgs, "vararg parameter not supported, yet: %s", name)
	}
	for i, param := range ftype.Params.List() {
		if param.Name == "" {
			return b.Errorf(decl.Declarator, "parameter %d of function %s has no name", i+1, name)
		}
	}
	fn, err := b.mod.Define(b.FSet, decl.Declarator, name, ftype.Params, ftype.Return)
	if err != nil {
		return err
	}
	if err := b.defineBody(fn, name, decl.Body); err != nil {
		return fmterr.PrefixWith("in function %s: ", name)(err)
	}
	return nil
}

func (b *Builder) defineBody(fn *module.FunctionInfo, name string, block *syntax.CompoundStmt) error {
	body, err := b.buildBlock(block)
	if err != nil {
		return err
	}
	lowered, err := lower.Stmt(body)
	if err != nil {
		return b.Position(block, err)
	}
	loweredBody, ok := lowered.(*ir.BlockStmt)
	if !ok {
		return b.Internalf(block, "lowering the body of %s returned %T", name, lowered)
	}
	scope, err := codegen.NewScope(b.FSet, b.mod, fn)
	if err != nil {
		return err
	}
	return codegen.EmitFunctionBody(scope, loweredBody)
}
