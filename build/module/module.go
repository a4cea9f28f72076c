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

// Package module is the output module of a compilation:
// the registry of functions and structures shared by all translation units.
package module

import (
	"go/token"
	"iter"
	"slices"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"github.com/gsomix/Cesium/api/options"
	"github.com/gsomix/Cesium/base/ordered"
	"github.com/gsomix/Cesium/build/cil"
	"github.com/gsomix/Cesium/build/fmterr"
	"github.com/gsomix/Cesium/build/ir"
)

// EntryPointName is the name of the function called when a console module starts.
const EntryPointName = "main"

// Module is the output of a compilation.
type Module struct {
	name    string
	version string
	kind    options.ModuleKind

	funcs   *ordered.Map[string, *FunctionInfo]
	structs map[string]*ir.StructType
}

// New returns a new empty module given compilation options.
// Functions imported from the runtime are registered in the module.
func New(opts *options.Options) (*Module, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmterr.AsInput(err)
	}
	mod := &Module{
		name:    opts.AssemblyName,
		version: options.SemVer(opts.Version),
		kind:    opts.Kind,
		funcs:   ordered.NewMap[string, *FunctionInfo](),
		structs: make(map[string]*ir.StructType),
	}
	for _, imp := range opts.Imports {
		if err := mod.Import(imp); err != nil {
			return nil, err
		}
	}
	return mod, nil
}

// Name of the module.
func (mod *Module) Name() string {
	return mod.name
}

// Version of the module in its canonical semantic versioning form.
func (mod *Module) Version() string {
	return mod.version
}

// Kind of the module.
func (mod *Module) Kind() options.ModuleKind {
	return mod.kind
}

// Function returns a function given its name.
func (mod *Module) Function(name string) (*FunctionInfo, bool) {
	return mod.funcs.Load(name)
}

// Functions returns all the functions of the module in declaration order.
func (mod *Module) Functions() iter.Seq2[string, *FunctionInfo] {
	return mod.funcs.All()
}

func (mod *Module) register(name string, params *ir.ParamsInfo, ret ir.Type) *FunctionInfo {
	fn := &FunctionInfo{
		Name:   name,
		Params: params,
		Return: ret,
	}
	fn.Method = &cil.Method{
		Name:   name,
		Params: methodParams(params),
		Return: ret,
	}
	mod.funcs.Store(name, fn)
	return fn
}

// Declare registers a function prototype.
// A function can be declared more than once if all its declarations
// have the same signature.
func (mod *Module) Declare(fset *token.FileSet, src fmterr.Node, name string, params *ir.ParamsInfo, ret ir.Type) (*FunctionInfo, error) {
	fn, ok := mod.funcs.Load(name)
	if !ok {
		return mod.register(name, params, ret), nil
	}
	if err := fn.VerifySignatureEquality(name, params, ret); err != nil {
		return nil, fmterr.Position(fset, src, err)
	}
	return fn, nil
}

// Define registers the definition of a function and returns the function
// with an empty body for the code generator.
// The definition needs to match previous declarations.
func (mod *Module) Define(fset *token.FileSet, src fmterr.Node, name string, params *ir.ParamsInfo, ret ir.Type) (*FunctionInfo, error) {
	fn, err := mod.Declare(fset, src, name, params, ret)
	if err != nil {
		return nil, err
	}
	if fn.Imported {
		return nil, fmterr.Errorf(fset, src, "function %s is already implemented by the runtime", name)
	}
	if fn.Defined {
		return nil, fmterr.Errorf(fset, src, "function %s already defined", name)
	}
	fn.Defined = true
	// Parameter names come from the definition.
	fn.Params = params
	fn.Method.Params = methodParams(params)
	fn.Method.Body = cil.NewBody()
	return fn, nil
}

// Import registers a function implemented by the runtime.
func (mod *Module) Import(imp *options.ImportedFunction) error {
	if imp.VarArg {
		return fmterr.Unimplementedf(nil, nil, fmterr.WipVarArgs, "vararg parameter not supported, yet: %s", imp.Name)
	}
	prefix := fmterr.PrefixWith("cannot import function %s: ", imp.Name)
	ret, err := ir.ParseTypeName(imp.Returns)
	if err != nil {
		return fmterr.AsInput(prefix(err))
	}
	params := &ir.ParamsInfo{IsVoid: len(imp.Params) == 0}
	for _, p := range imp.Params {
		typ, err := ir.ParseTypeName(p)
		if err != nil {
			return fmterr.AsInput(prefix(err))
		}
		params.Params = append(params.Params, &ir.ParameterInfo{Typ: typ})
	}
	if _, exists := mod.funcs.Load(imp.Name); exists {
		return fmterr.AsInput(errors.Errorf("function %s imported more than once", imp.Name))
	}
	fn := mod.register(imp.Name, params, ret)
	fn.Imported = true
	fn.Method.External = imp.Member
	return nil
}

// DeclareStruct registers a structure given its tag.
// Anonymous structures are not registered.
func (mod *Module) DeclareStruct(fset *token.FileSet, src fmterr.Node, st *ir.StructType) error {
	if st.Tag == "" {
		return nil
	}
	prev, ok := mod.structs[st.Tag]
	if !ok {
		mod.structs[st.Tag] = st
		return nil
	}
	if prev.Fields == nil {
		prev.Fields = st.Fields
		return nil
	}
	if st.Fields != nil {
		return fmterr.Errorf(fset, src, "redefinition of %s", st.String())
	}
	return nil
}

// Struct returns a structure given its tag.
func (mod *Module) Struct(tag string) (*ir.StructType, bool) {
	st, ok := mod.structs[tag]
	return st, ok
}

// EntryPoint returns the function called when the module starts.
func (mod *Module) EntryPoint() (*FunctionInfo, bool) {
	fn, ok := mod.funcs.Load(EntryPointName)
	if !ok || !fn.Defined {
		return nil, false
	}
	return fn, true
}

// Verify checks that the module is complete:
// all referenced functions are implemented and
// console modules have an entry point.
// All failures are reported.
func (mod *Module) Verify() error {
	var errs error
	for name, fn := range mod.Functions() {
		if fn.Defined || fn.Imported || fn.reference == nil {
			continue
		}
		errs = multierr.Append(errs, fmterr.Errorf(fn.reference.fset, fn.reference.src, "function %s is referenced but never defined", name))
	}
	if mod.kind == options.Console {
		if _, ok := mod.EntryPoint(); !ok {
			errs = multierr.Append(errs, fmterr.Errorf(nil, nil, "console module %s has no %s function", mod.name, EntryPointName))
		}
	}
	return errs
}

// StructTags returns the tags of all the structures in the module, sorted.
func (mod *Module) StructTags() []string {
	tags := make([]string, 0, len(mod.structs))
	for tag := range mod.structs {
		tags = append(tags, tag)
	}
	slices.Sort(tags)
	return tags
}
