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

// Package api defines the interface between a C front end and the compiler.
package api

import (
	"go/token"
	"os"

	"github.com/pkg/errors"
	"github.com/gsomix/Cesium/api/options"
	basefmt "github.com/gsomix/Cesium/base/fmt"
	"github.com/gsomix/Cesium/build/builder"
	"github.com/gsomix/Cesium/build/fmterr"
	"github.com/gsomix/Cesium/build/module"
	"github.com/gsomix/Cesium/build/syntax"
	"github.com/gsomix/Cesium/internal/logging"
)

// Frontend preprocesses and parses a C source file.
// Positions in the returned tree must refer to a file added to fset.
type Frontend interface {
	Parse(fset *token.FileSet, name string, src []byte) (*syntax.TranslationUnit, error)
}

// Compiler encapsulates a front end and the options of the module to generate.
type Compiler struct {
	frontend Frontend
	opts     *options.Options
	log      *logging.Logger
}

// NewCompiler returns a new compiler.
// A nil logger does not print anything.
func NewCompiler(fe Frontend, opts *options.Options, log *logging.Logger) *Compiler {
	if log == nil {
		log = logging.Discard()
	}
	return &Compiler{frontend: fe, opts: opts, log: log}
}

// Frontend used by the compiler.
func (c *Compiler) Frontend() Frontend {
	return c.frontend
}

// Options returns the options of the module generated by the compiler.
func (c *Compiler) Options() *options.Options {
	return c.opts
}

// CompileFiles reads, parses and compiles source files into a new module.
func (c *Compiler) CompileFiles(paths ...string) (*module.Module, error) {
	if c.frontend == nil {
		return nil, fmterr.AsInput(errors.Errorf("no front end to parse %v", paths))
	}
	fset := token.NewFileSet()
	units := make([]*syntax.TranslationUnit, len(paths))
	for i, path := range paths {
		src, err := os.ReadFile(path)
		if err != nil {
			err = fmterr.AsInput(errors.Wrap(err, "cannot read source file"))
			c.log.Error(err)
			return nil, err
		}
		if units[i], err = c.parse(fset, path, src); err != nil {
			c.log.Error(err)
			return nil, err
		}
	}
	return Compile(fset, units, c.opts, c.log)
}

func (c *Compiler) parse(fset *token.FileSet, name string, src []byte) (*syntax.TranslationUnit, error) {
	tu, err := c.frontend.Parse(fset, name, src)
	if err != nil {
		if fmterr.CategoryOf(err) == fmterr.Parse {
			return nil, err
		}
		return nil, fmterr.Parsef(nil, nil, "%s: %v", name, err)
	}
	if tu == nil {
		return nil, fmterr.Internalf(nil, nil, "front end returned no translation unit and no error for %s", name)
	}
	if tu.Name == "" {
		tu.Name = name
	}
	return tu, nil
}

// Compile translation units, in order, into a new module.
// The compilation stops at the first error.
// Once all the units have been compiled, the module is verified.
func Compile(fset *token.FileSet, units []*syntax.TranslationUnit, opts *options.Options, log *logging.Logger) (*module.Module, error) {
	if log == nil {
		log = logging.Discard()
	}
	mod, err := module.New(opts)
	if err != nil {
		log.Error(err)
		return nil, err
	}
	log.Infof("Generating assembly %s.", mod.Name())
	bld := builder.New(fset, mod)
	for _, tu := range units {
		log.Infof("Processing translation unit %s.", tu.Name)
		if err := bld.BuildTranslationUnit(tu); err != nil {
			log.Error(err)
			return nil, err
		}
	}
	if err := mod.Verify(); err != nil {
		log.Error(err)
		return nil, err
	}
	dump(mod, log)
	return mod, nil
}

func dump(mod *module.Module, log *logging.Logger) {
	if log.Level() < logging.LevelVerbose {
		return
	}
	for _, fn := range mod.Functions() {
		switch {
		case fn.Imported:
			log.Verbosef("%s // %s", fn.Method, fn.Method.External)
		case fn.Method.Body != nil:
			log.Verbosef("%s", basefmt.Block(fn.Method, fn.Method.Body.String()))
		}
	}
}
