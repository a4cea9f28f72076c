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

// Package builder compiles the syntax tree of C translation units
// into a module.
//
// For each function definition, the builder:
//  1. builds the IR tree of the function body from the syntax tree,
//  2. lowers the IR tree (see [github.com/gsomix/Cesium/build/lower]),
//  3. emits the instructions of the body
//     (see [github.com/gsomix/Cesium/build/codegen]).
//
// Declarations (prototypes, structures) are registered in the module
// shared by all the translation units.
// The first error aborts the compilation of the translation unit.
package builder

import (
	"go/token"

	"github.com/gsomix/Cesium/build/fmterr"
	"github.com/gsomix/Cesium/build/ir"
	"github.com/gsomix/Cesium/build/module"
	"github.com/gsomix/Cesium/build/syntax"
)

// Builder compiles translation units into a module.
type Builder struct {
	fmterr.FileSet
	mod *module.Module
}

// New returns a new builder adding the declarations of translation units to a module.
// Positions in the syntax trees refer to files in fset.
func New(fset *token.FileSet, mod *module.Module) *Builder {
	return &Builder{
		FileSet: fmterr.FileSet{FSet: fset},
		mod:     mod,
	}
}

// Module returns the module being built.
func (b *Builder) Module() *module.Module {
	return b.mod
}

// BuildTranslationUnit compiles all the declarations of a translation unit.
func (b *Builder) BuildTranslationUnit(tu *syntax.TranslationUnit) error {
	for _, decl := range tu.Decls {
		if err := b.buildDecl(decl); err != nil {
			return err
		}
	}
	return nil
}

func (b *Builder) buildDecl(decl syntax.Decl) error {
	switch declT := decl.(type) {
	case *syntax.FuncDecl:
		if declT.Body == nil {
			return b.declareFunc(declT.Specs, declT.Declarator)
		}
		return b.defineFunc(declT)
	case *syntax.VarDecl:
		return b.buildVarDecl(declT)
	case *syntax.TypeDecl:
		_, err := b.resolveSpecs(declT.Specs)
		return err
	}
	return b.Internalf(decl, "declaration %T not supported", decl)
}

func (b *Builder) buildVarDecl(decl *syntax.VarDecl) error {
	name, typ, err := b.declaredType(decl.Specs, decl.Declarator)
	if err != nil {
		return err
	}
	if _, isFunc := typ.(*ir.FuncType); isFunc {
		return b.declareFunc(decl.Specs, decl.Declarator)
	}
	return b.Unimplementedf(decl, fmterr.WipGlobalVariable, "global variable not supported, yet: %s", name)
}
