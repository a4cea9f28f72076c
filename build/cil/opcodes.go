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

// Package cil defines the instructions of the managed stack machine
// targeted by the compiler and the method bodies they are appended to.
package cil

import "fmt"

// OpCode is the operation code of an instruction.
type OpCode int

// Operation codes.
const (
	Nop OpCode = iota

	// Arguments.
	Ldarg0
	Ldarg1
	Ldarg2
	Ldarg3
	LdargS
	Ldarg
	LdargaS
	Ldarga
	StargS
	Starg

	// Local variables.
	Ldloc0
	Ldloc1
	Ldloc2
	Ldloc3
	LdlocS
	Ldloc
	LdlocaS
	Ldloca
	Stloc0
	Stloc1
	Stloc2
	Stloc3
	StlocS
	Stloc

	// Constants.
	LdcI4M1
	LdcI40
	LdcI41
	LdcI42
	LdcI43
	LdcI44
	LdcI45
	LdcI46
	LdcI47
	LdcI48
	LdcI4S
	LdcI4
	LdcI8
	LdcR4
	LdcR8

	// Conversions.
	ConvI1
	ConvI2
	ConvI4
	ConvI8
	ConvU1
	ConvU2
	ConvU4
	ConvU8
	ConvR4
	ConvR8
	ConvRUn
	ConvI
	ConvU

	// Arithmetic.
	Add
	Sub
	Mul
	Div
	DivUn
	Rem
	RemUn
	And
	Or
	Xor
	Shl
	Shr
	ShrUn
	Neg
	Not

	// Comparisons.
	Ceq
	Cgt
	Clt

	// Fields.
	Ldfld
	Ldflda
	Stfld

	// Methods.
	Ldftn
	Call
	Ret
	Pop
	Dup

	maxOpCode
)

var opNames = [...]string{
	Nop:     "nop",
	Ldarg0:  "ldarg.0",
	Ldarg1:  "ldarg.1",
	Ldarg2:  "ldarg.2",
	Ldarg3:  "ldarg.3",
	LdargS:  "ldarg.s",
	Ldarg:   "ldarg",
	LdargaS: "ldarga.s",
	Ldarga:  "ldarga",
	StargS:  "starg.s",
	Starg:   "starg",
	Ldloc0:  "ldloc.0",
	Ldloc1:  "ldloc.1",
	Ldloc2:  "ldloc.2",
	Ldloc3:  "ldloc.3",
	LdlocS:  "ldloc.s",
	Ldloc:   "ldloc",
	LdlocaS: "ldloca.s",
	Ldloca:  "ldloca",
	Stloc0:  "stloc.0",
	Stloc1:  "stloc.1",
	Stloc2:  "stloc.2",
	Stloc3:  "stloc.3",
	StlocS:  "stloc.s",
	Stloc:   "stloc",
	LdcI4M1: "ldc.i4.m1",
	LdcI40:  "ldc.i4.0",
	LdcI41:  "ldc.i4.1",
	LdcI42:  "ldc.i4.2",
	LdcI43:  "ldc.i4.3",
	LdcI44:  "ldc.i4.4",
	LdcI45:  "ldc.i4.5",
	LdcI46:  "ldc.i4.6",
	LdcI47:  "ldc.i4.7",
	LdcI48:  "ldc.i4.8",
	LdcI4S:  "ldc.i4.s",
	LdcI4:   "ldc.i4",
	LdcI8:   "ldc.i8",
	LdcR4:   "ldc.r4",
	LdcR8:   "ldc.r8",
	ConvI1:  "conv.i1",
	ConvI2:  "conv.i2",
	ConvI4:  "conv.i4",
	ConvI8:  "conv.i8",
	ConvU1:  "conv.u1",
	ConvU2:  "conv.u2",
	ConvU4:  "conv.u4",
	ConvU8:  "conv.u8",
	ConvR4:  "conv.r4",
	ConvR8:  "conv.r8",
	ConvRUn: "conv.r.un",
	ConvI:   "conv.i",
	ConvU:   "conv.u",
	Add:     "add",
	Sub:     "sub",
	Mul:     "mul",
	Div:     "div",
	DivUn:   "div.un",
	Rem:     "rem",
	RemUn:   "rem.un",
	And:     "and",
	Or:      "or",
	Xor:     "xor",
	Shl:     "shl",
	Shr:     "shr",
	ShrUn:   "shr.un",
	Neg:     "neg",
	Not:     "not",
	Ceq:     "ceq",
	Cgt:     "cgt",
	Clt:     "clt",
	Ldfld:   "ldfld",
	Ldflda:  "ldflda",
	Stfld:   "stfld",
	Ldftn:   "ldftn",
	Call:    "call",
	Ret:     "ret",
	Pop:     "pop",
	Dup:     "dup",
}

func (op OpCode) String() string {
	if op < 0 || op >= maxOpCode {
		return fmt.Sprintf("OpCode(%d)", int(op))
	}
	return opNames[op]
}

// Instruction of the stack machine.
type Instruction struct {
	Op OpCode
	// Operand of the instruction. nil if the instruction has no operand.
	// Otherwise, one of: int8, int32, int64, float32, float64,
	// *Parameter, *Local, *Field, *Method.
	Operand any
}

// Create returns an instruction without operand.
func Create(op OpCode) Instruction {
	return Instruction{Op: op}
}

// CreateWith returns an instruction with an operand.
func CreateWith(op OpCode, operand any) Instruction {
	return Instruction{Op: op, Operand: operand}
}

func (ins Instruction) String() string {
	if ins.Operand == nil {
		return ins.Op.String()
	}
	return fmt.Sprintf("%s %s", ins.Op.String(), operandString(ins.Operand))
}

func operandString(operand any) string {
	switch opT := operand.(type) {
	case fmt.Stringer:
		return opT.String()
	default:
		return fmt.Sprint(opT)
	}
}
