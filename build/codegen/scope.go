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

// Package codegen emits the instructions of a function body
// given its lowered IR.
package codegen

import (
	"go/token"

	"github.com/gsomix/Cesium/build/cil"
	"github.com/gsomix/Cesium/build/fmterr"
	"github.com/gsomix/Cesium/build/ir"
	"github.com/gsomix/Cesium/build/module"
	"github.com/gsomix/Cesium/internal/base/scope"
)

// Scope is the declaration scope of a function being compiled.
// It owns the body of the function during code generation.
type Scope struct {
	fmterr.FileSet
	mod  *module.Module
	fn   *module.FunctionInfo
	body *cil.Body

	params *scope.Scope[Value]
	block  *scope.Scope[Value]
}

// NewScope returns the scope of a function defined in a module.
func NewScope(fset *token.FileSet, mod *module.Module, fn *module.FunctionInfo) (*Scope, error) {
	if fn.Method == nil || fn.Method.Body == nil {
		return nil, fmterr.Internalf(fset, nil, "function %s has no body to emit instructions into", fn.Name)
	}
	s := &Scope{
		FileSet: fmterr.FileSet{FSet: fset},
		mod:     mod,
		fn:      fn,
		body:    fn.Method.Body,
		params:  scope.New[Value](nil),
	}
	for _, param := range fn.Method.Params {
		if param.Name == "" {
			continue
		}
		s.params.Define(param.Name, &parameterValue{param: param})
	}
	s.block = s.params
	s.Push()
	return s, nil
}

// Function returns the function being compiled.
func (s *Scope) Function() *module.FunctionInfo {
	return s.fn
}

// Module returns the module of the function.
func (s *Scope) Module() *module.Module {
	return s.mod
}

// Body returns the instructions of the function.
func (s *Scope) Body() *cil.Body {
	return s.body
}

// Push opens a new block.
func (s *Scope) Push() {
	s.block = scope.New(s.block)
}

// Pop closes the current block.
func (s *Scope) Pop() {
	s.block = s.block.Parent()
}

// DeclareLocal declares a local variable in the current block.
func (s *Scope) DeclareLocal(src fmterr.Node, name string, typ ir.Type, isConst bool) (Value, error) {
	if _, exists := s.block.FindLocal(name); exists {
		return nil, s.Errorf(src, "redeclaration of %s", name)
	}
	if s.block.Parent() == s.params {
		if _, exists := s.params.FindLocal(name); exists {
			return nil, s.Errorf(src, "redeclaration of parameter %s", name)
		}
	}
	local := s.body.DeclareLocal(name, typ)
	var val Value = &localValue{local: local}
	if isConst {
		val = &constLocalValue{local: local}
	}
	s.block.Define(name, val)
	return val, nil
}

// Lookup returns the value of an identifier.
// Local variables shadow parameters which shadow functions.
func (s *Scope) Lookup(name string) (Value, bool) {
	if val, ok := s.block.Find(name); ok {
		return val, true
	}
	if fn, ok := s.mod.Function(name); ok {
		return &functionValue{fn: fn}, true
	}
	return nil, false
}

func (s *Scope) emit(op cil.OpCode) {
	s.body.Emit(op)
}

func (s *Scope) emitWith(op cil.OpCode, operand any) {
	s.body.EmitWith(op, operand)
}

func source(node ir.Node) fmterr.Node {
	switch nodeT := node.(type) {
	case ir.Expr:
		if src := nodeT.Source(); src != nil {
			return src
		}
	case ir.Stmt:
		if src := nodeT.Source(); src != nil {
			return src
		}
	}
	return nil
}

func (s *Scope) at(node ir.Node) fmterr.Pos {
	return s.Pos(source(node))
}
