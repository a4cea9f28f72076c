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

package ir

import (
	"slices"

	"github.com/gsomix/Cesium/base/stringseq"
)

type (
	// ParameterInfo is a parameter of a function.
	ParameterInfo struct {
		// Name of the parameter. Empty for an unnamed parameter of a prototype.
		Name string
		Typ  Type
	}

	// ParamsInfo is the list of parameters of a function.
	// A nil *ParamsInfo represents a function declared without
	// a parameter list, for example: int f();
	ParamsInfo struct {
		Params []*ParameterInfo
		// IsVoid is true if the list has been declared with void, for example: int f(void);
		IsVoid bool
		// IsVarArg is true if the list ends with an ellipsis.
		IsVarArg bool
	}
)

// Equal returns true if the parameter has the same type than another.
// Names are ignored.
func (p *ParameterInfo) Equal(other *ParameterInfo) bool {
	return p.Typ.Equal(other.Typ)
}

func (p *ParameterInfo) String() string {
	if p.Name == "" {
		return p.Typ.String()
	}
	return p.Typ.String() + " " + p.Name
}

// Len returns the number of parameters.
func (p *ParamsInfo) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Params)
}

// List returns the parameters.
func (p *ParamsInfo) List() []*ParameterInfo {
	if p == nil {
		return nil
	}
	return p.Params
}

// VarArg returns true if the list ends with an ellipsis.
func (p *ParamsInfo) VarArg() bool {
	return p != nil && p.IsVarArg
}

// Equal returns true if both lists have the same parameter types.
func (p *ParamsInfo) Equal(other *ParamsInfo) bool {
	if p.Len() != other.Len() || p.VarArg() != other.VarArg() {
		return false
	}
	otherParams := other.List()
	for i, param := range p.List() {
		if !param.Equal(otherParams[i]) {
			return false
		}
	}
	return true
}

func (p *ParamsInfo) String() string {
	if p == nil {
		return ""
	}
	if p.IsVoid {
		return "void"
	}
	s := stringseq.JoinStringer(slices.Values(p.Params), ", ")
	switch {
	case !p.IsVarArg:
		return s
	case s == "":
		return "..."
	}
	return s + ", ..."
}
