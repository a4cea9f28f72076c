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

package cil_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/gsomix/Cesium/build/cil"
	"github.com/gsomix/Cesium/build/ir"
)

func TestOpCodeString(t *testing.T) {
	tests := []struct {
		op   cil.OpCode
		want string
	}{
		{op: cil.Ldarg0, want: "ldarg.0"},
		{op: cil.LdargS, want: "ldarg.s"},
		{op: cil.LdcI4M1, want: "ldc.i4.m1"},
		{op: cil.ConvU, want: "conv.u"},
		{op: cil.ConvRUn, want: "conv.r.un"},
		{op: cil.Ret, want: "ret"},
		{op: cil.OpCode(-1), want: "OpCode(-1)"},
	}
	for _, test := range tests {
		if got := test.op.String(); got != test.want {
			t.Errorf("%d.String() = %q but want %q", int(test.op), got, test.want)
		}
	}
}

func TestBody(t *testing.T) {
	body := cil.NewBody()
	x := body.DeclareLocal("x", ir.IntType())
	y := body.DeclareLocal("y", ir.PointerTo(ir.CharType()))
	if x.Index != 0 || y.Index != 1 {
		t.Fatalf("incorrect local indices: got %d and %d but want 0 and 1", x.Index, y.Index)
	}
	body.EmitWith(cil.LdcI4S, int8(-5))
	body.EmitWith(cil.Stloc, x)
	body.Emit(cil.Ldarg0)
	body.EmitWith(cil.Call, &cil.Method{
		Name:   "f",
		Params: []*cil.Parameter{{Index: 0, Typ: ir.IntType()}},
		Return: ir.VoidType(),
	})
	body.Emit(cil.Ret)
	want := []string{
		"ldc.i4.s -5",
		"stloc V_0",
		"ldarg.0",
		"call void f(int)",
		"ret",
	}
	if diff := cmp.Diff(want, body.Listing()); diff != "" {
		t.Errorf("unexpected listing (-want +got):\n%s", diff)
	}
	last, ok := body.Last()
	if !ok || last.Op != cil.Ret {
		t.Errorf("last instruction is %v but want ret", last)
	}
	disasm := body.String()
	for _, line := range []string{
		".local V_1 char* // y",
		"IL_0003: call void f(int)",
	} {
		if !strings.Contains(disasm, line) {
			t.Errorf("disassembly does not contain %q:\n%s", line, disasm)
		}
	}
}

func TestInstructionsAreCopied(t *testing.T) {
	body := cil.NewBody()
	body.Emit(cil.Nop)
	instrs := body.Instructions()
	instrs[0] = cil.Create(cil.Ret)
	if got := body.Instructions()[0].Op; got != cil.Nop {
		t.Errorf("body has been modified: got %s but want nop", got)
	}
	if _, ok := cil.NewBody().Last(); ok {
		t.Errorf("empty body has a last instruction")
	}
}
