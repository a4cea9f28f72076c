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

package module

import (
	"fmt"
	"go/token"

	"github.com/pkg/errors"
	"github.com/gsomix/Cesium/build/cil"
	"github.com/gsomix/Cesium/build/fmterr"
	"github.com/gsomix/Cesium/build/ir"
)

type reference struct {
	fset *token.FileSet
	src  fmterr.Node
}

// FunctionInfo is a function registered in a module.
type FunctionInfo struct {
	Name string
	// Params is nil if the function has been declared without parameter list.
	Params *ir.ParamsInfo
	Return ir.Type
	// Method is the target of calls to the function.
	// Its body is set once the function has been defined.
	Method *cil.Method
	// Defined is true once the body of the function has been compiled.
	Defined bool
	// Imported is true if the function is implemented by the runtime.
	Imported bool

	reference *reference
}

// VerifySignatureEquality checks that a declaration of a function
// has the same signature than the function.
// Only the first inconsistency is reported, in the following order:
// return type, variable arguments, parameter count, parameter types.
func (fn *FunctionInfo) VerifySignatureEquality(name string, params *ir.ParamsInfo, ret ir.Type) error {
	if !fn.Return.Equal(ret) {
		return errors.Errorf("incorrect return type for function %s declared as %s: %s", name, fn.Return.String(), ret.String())
	}
	if fn.Params.VarArg() || params.VarArg() {
		return fmterr.Unimplementedf(nil, nil, fmterr.WipVarArgs, "vararg parameter not supported, yet: %s", name)
	}
	declared, defined := fn.Params.List(), params.List()
	if len(declared) != len(defined) {
		return errors.Errorf("incorrect parameter count for function %s: declared with %d parameters, defined with %d", name, len(declared), len(defined))
	}
	for i, param := range declared {
		if !param.Equal(defined[i]) {
			return errors.Errorf("incorrect type for parameter %s: declared as %s, defined as %s", paramName(defined[i], i), param.Typ.String(), defined[i].Typ.String())
		}
	}
	return nil
}

func paramName(param *ir.ParameterInfo, i int) string {
	if param.Name == "" {
		return fmt.Sprintf("#%d", i+1)
	}
	return param.Name
}

// MarkReferenced records that the function is called from the source code.
// Only the first reference is kept.
func (fn *FunctionInfo) MarkReferenced(fset *token.FileSet, src fmterr.Node) {
	if fn.reference != nil {
		return
	}
	fn.reference = &reference{fset: fset, src: src}
}

// Referenced returns true if the function is called from the source code.
func (fn *FunctionInfo) Referenced() bool {
	return fn.reference != nil
}

func methodParams(params *ir.ParamsInfo) []*cil.Parameter {
	list := params.List()
	mParams := make([]*cil.Parameter, len(list))
	for i, param := range list {
		mParams[i] = &cil.Parameter{
			Index: i,
			Name:  param.Name,
			Typ:   param.Typ,
		}
	}
	return mParams
}
