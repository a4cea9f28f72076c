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

package cil

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gsomix/Cesium/base/stringseq"
	"github.com/gsomix/Cesium/build/ir"
)

type (
	// Parameter of a method. Index is the position of the parameter
	// in the argument list of the method.
	Parameter struct {
		Index int
		Name  string
		Typ   ir.Type
	}

	// Local is a local variable of a method body.
	Local struct {
		Index int
		Name  string
		Typ   ir.Type
	}

	// Field of a structure type.
	Field struct {
		Struct *ir.StructType
		Index  int
		Name   string
		Typ    ir.Type
	}

	// Method is the target of a call.
	// Body is nil until the method has been defined.
	Method struct {
		Name   string
		Params []*Parameter
		Return ir.Type
		// External is the name of the runtime member implementing the method.
		// Empty if the method is implemented in the module.
		External string
		Body     *Body
	}

	// Body is the list of instructions of a method.
	// Instructions can only be appended to a body.
	Body struct {
		locals []*Local
		instrs []Instruction
	}
)

func (p *Parameter) String() string {
	if p.Name == "" {
		return fmt.Sprintf("A_%d", p.Index)
	}
	return p.Name
}

func (l *Local) String() string {
	return fmt.Sprintf("V_%d", l.Index)
}

func (f *Field) String() string {
	return fmt.Sprintf("%s %s::%s", f.Typ.String(), f.Struct.Tag, f.Name)
}

func (m *Method) String() string {
	params := stringseq.Map(slices.Values(m.Params), func(param *Parameter) string {
		return param.Typ.String()
	})
	return fmt.Sprintf("%s %s(%s)", m.Return.String(), m.Name, stringseq.Join(params, ", "))
}

// NewBody returns a new empty method body.
func NewBody() *Body {
	return &Body{}
}

// DeclareLocal adds a local variable to the body.
func (b *Body) DeclareLocal(name string, typ ir.Type) *Local {
	local := &Local{Index: len(b.locals), Name: name, Typ: typ}
	b.locals = append(b.locals, local)
	return local
}

// Locals returns the local variables of the body.
func (b *Body) Locals() []*Local {
	return slices.Clone(b.locals)
}

// Append instructions at the end of the body.
func (b *Body) Append(instrs ...Instruction) {
	b.instrs = append(b.instrs, instrs...)
}

// Emit appends an instruction without operand.
func (b *Body) Emit(op OpCode) {
	b.Append(Create(op))
}

// EmitWith appends an instruction with an operand.
func (b *Body) EmitWith(op OpCode, operand any) {
	b.Append(CreateWith(op, operand))
}

// Len returns the number of instructions in the body.
func (b *Body) Len() int {
	return len(b.instrs)
}

// Last returns the last instruction of the body.
func (b *Body) Last() (Instruction, bool) {
	if len(b.instrs) == 0 {
		return Instruction{}, false
	}
	return b.instrs[len(b.instrs)-1], true
}

// Instructions returns a copy of the instructions of the body.
func (b *Body) Instructions() []Instruction {
	return slices.Clone(b.instrs)
}

// Listing returns the instructions as strings.
func (b *Body) Listing() []string {
	ss := make([]string, len(b.instrs))
	for i, ins := range b.instrs {
		ss[i] = ins.String()
	}
	return ss
}

// String returns a disassembly of the body.
func (b *Body) String() string {
	var sb strings.Builder
	for _, local := range b.locals {
		fmt.Fprintf(&sb, ".local %s %s // %s\n", local.String(), local.Typ.String(), local.Name)
	}
	for i, ins := range b.instrs {
		fmt.Fprintf(&sb, "IL_%04d: %s\n", i, ins.String())
	}
	return sb.String()
}
