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

package codegen_test

import (
	"fmt"
	"go/token"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/gsomix/Cesium/api/options"
	"github.com/gsomix/Cesium/build/codegen"
	"github.com/gsomix/Cesium/build/fmterr"
	"github.com/gsomix/Cesium/build/ir"
	"github.com/gsomix/Cesium/build/module"
)

var point = &ir.StructType{
	Tag: "point",
	Fields: []*ir.Field{
		{Name: "x", Typ: ir.IntType()},
		{Name: "y", Typ: ir.IntType()},
	},
}

func param(name string, typ ir.Type) *ir.ParameterInfo {
	return &ir.ParameterInfo{Name: name, Typ: typ}
}

type fixture struct {
	mod   *module.Module
	scope *codegen.Scope
}

// newFixture defines a function in a new module and returns its scope.
func newFixture(t *testing.T, ret ir.Type, params ...*ir.ParameterInfo) *fixture {
	t.Helper()
	mod, err := module.New(options.Default("test"))
	if err != nil {
		t.Fatal(err)
	}
	if err := mod.DeclareStruct(nil, nil, point); err != nil {
		t.Fatal(err)
	}
	if _, err := mod.Declare(nil, nil, "g", &ir.ParamsInfo{Params: []*ir.ParameterInfo{
		param("", ir.LongType()),
		param("", ir.IntType()),
	}}, ir.IntType()); err != nil {
		t.Fatal(err)
	}
	fn, err := mod.Define(nil, nil, "f", &ir.ParamsInfo{Params: params}, ret)
	if err != nil {
		t.Fatal(err)
	}
	scope, err := codegen.NewScope(token.NewFileSet(), mod, fn)
	if err != nil {
		t.Fatal(err)
	}
	return &fixture{mod: mod, scope: scope}
}

// defaultParams are the parameters of the function used by most tests:
//
//	f(int a, long b, char* p, struct point* sp, unsigned int u, double d)
func defaultParams() []*ir.ParameterInfo {
	return []*ir.ParameterInfo{
		param("a", ir.IntType()),
		param("b", ir.LongType()),
		param("p", ir.PointerTo(ir.CharType())),
		param("sp", ir.PointerTo(point)),
		param("u", ir.UIntType()),
		param("d", ir.DoubleType()),
	}
}

func ident(name string) *ir.IdentExpr {
	return &ir.IdentExpr{Name: name}
}

func integer(val int64) *ir.IntegerConstant {
	return &ir.IntegerConstant{Val: val, Typ: ir.IntType()}
}

func binary(op ir.BinaryOp, x, y ir.Expr) *ir.BinaryExpr {
	return &ir.BinaryExpr{Op: op, X: x, Y: y}
}

func unary(op ir.UnaryOp, x ir.Expr) *ir.UnaryExpr {
	return &ir.UnaryExpr{Op: op, X: x}
}

func TestEmitExpr(t *testing.T) {
	tests := []struct {
		expr     ir.Expr
		want     []string
		wantType ir.Type
	}{
		{
			expr:     binary(ir.LessThan, ident("a"), ident("b")),
			want:     []string{"ldarg.0", "conv.i8", "ldarg.1", "clt"},
			wantType: ir.BoolType(),
		},
		{
			expr:     binary(ir.GreaterThan, ident("d"), ident("u")),
			want:     []string{"ldarg.s d", "ldarg.s u", "conv.r.un", "conv.r8", "cgt"},
			wantType: ir.BoolType(),
		},
		{
			expr:     binary(ir.EqualTo, binary(ir.LessThan, ident("a"), integer(10)), ir.Zero()),
			want:     []string{"ldarg.0", "ldc.i4.s 10", "clt", "ldc.i4.0", "ceq"},
			wantType: ir.BoolType(),
		},
		{
			expr:     binary(ir.EqualTo, ident("p"), ident("p")),
			want:     []string{"ldarg.2", "ldarg.2", "ceq"},
			wantType: ir.BoolType(),
		},
		{
			expr:     &ir.CharConstant{Val: 'A'},
			want:     []string{"ldc.i4.s 65", "conv.u1"},
			wantType: ir.CharType(),
		},
		{
			expr:     &ir.CharConstant{Val: 200},
			want:     []string{"ldc.i4.s -56", "conv.u1"},
			wantType: ir.CharType(),
		},
		{
			expr:     unary(ir.LogicalNot, ident("a")),
			want:     []string{"ldarg.0", "ldc.i4.0", "ceq"},
			wantType: ir.BoolType(),
		},
		{
			expr:     unary(ir.Negation, ident("a")),
			want:     []string{"ldarg.0", "neg"},
			wantType: ir.IntType(),
		},
		{
			expr:     unary(ir.BitwiseNot, ident("b")),
			want:     []string{"ldarg.1", "not"},
			wantType: ir.LongType(),
		},
		{
			expr:     unary(ir.AddressOf, ident("a")),
			want:     []string{"ldarga.s a", "conv.u"},
			wantType: ir.PointerTo(ir.IntType()),
		},
		{
			expr:     &ir.PointerMemberAccessExpr{X: ident("sp"), Member: "y"},
			want:     []string{"ldarg.3", "ldfld int point::y"},
			wantType: ir.IntType(),
		},
		{
			expr:     binary(ir.Div, ident("u"), ident("u")),
			want:     []string{"ldarg.s u", "ldarg.s u", "div.un"},
			wantType: ir.UIntType(),
		},
		{
			expr:     binary(ir.RightShift, ident("b"), ident("a")),
			want:     []string{"ldarg.1", "ldarg.0", "shr"},
			wantType: ir.LongType(),
		},
		{
			expr:     binary(ir.Add, ident("a"), &ir.IntegerConstant{Val: 1000, Typ: ir.IntType()}),
			want:     []string{"ldarg.0", "ldc.i4 1000", "add"},
			wantType: ir.IntType(),
		},
		{
			expr:     &ir.IntegerConstant{Val: 5, Typ: ir.LongType()},
			want:     []string{"ldc.i8 5"},
			wantType: ir.LongType(),
		},
		{
			expr:     integer(-1),
			want:     []string{"ldc.i4.m1"},
			wantType: ir.IntType(),
		},
		{
			expr:     &ir.FloatConstant{Val: 1.5, Typ: ir.FloatType()},
			want:     []string{"ldc.r4 1.5"},
			wantType: ir.FloatType(),
		},
		{
			expr:     &ir.CastExpr{Typ: ir.CharType(), X: ident("d")},
			want:     []string{"ldarg.s d", "conv.u1"},
			wantType: ir.CharType(),
		},
		{
			expr:     &ir.CallExpr{Func: "g", Args: []ir.Expr{ident("a"), &ir.CharConstant{Val: 'c'}}},
			want:     []string{"ldarg.0", "conv.i8", "ldc.i4.s 99", "conv.u1", "call int g(long, int)"},
			wantType: ir.IntType(),
		},
	}
	for _, test := range tests {
		t.Run(test.expr.String(), func(t *testing.T) {
			fix := newFixture(t, ir.VoidType(), defaultParams()...)
			typ, err := codegen.EmitExpr(fix.scope, test.expr)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(test.want, fix.scope.Body().Listing()); diff != "" {
				t.Errorf("unexpected instructions (-want +got):\n%s", diff)
			}
			if !typ.Equal(test.wantType) {
				t.Errorf("got type %s but want %s", typ.String(), test.wantType.String())
			}
			typeOf, err := codegen.TypeOf(fix.scope, test.expr)
			if err != nil {
				t.Fatal(err)
			}
			if !typeOf.Equal(typ) {
				t.Errorf("TypeOf returns %s but the emitted value has type %s", typeOf.String(), typ.String())
			}
		})
	}
}

func TestParameterIndices(t *testing.T) {
	var params []*ir.ParameterInfo
	for i := range 300 {
		params = append(params, param(fmt.Sprintf("p%d", i), ir.IntType()))
	}
	fix := newFixture(t, ir.VoidType(), params...)
	for _, name := range []string{"p0", "p1", "p2", "p3", "p4", "p255", "p256", "p299"} {
		if _, err := codegen.EmitExpr(fix.scope, ident(name)); err != nil {
			t.Fatal(err)
		}
	}
	want := []string{
		"ldarg.0",
		"ldarg.1",
		"ldarg.2",
		"ldarg.3",
		"ldarg.s p4",
		"ldarg.s p255",
		"ldarg p256",
		"ldarg p299",
	}
	if diff := cmp.Diff(want, fix.scope.Body().Listing()); diff != "" {
		t.Errorf("unexpected instructions (-want +got):\n%s", diff)
	}
}

func TestEmitErrors(t *testing.T) {
	tests := []struct {
		expr ir.Expr
		cat  fmterr.Category
		id   int
		want string
	}{
		{
			expr: binary(ir.EqualTo, ident("p"), ident("a")),
			cat:  fmterr.Compilation,
			want: "unable to compare char* to int",
		},
		{
			expr: binary(ir.LessThan, unary(ir.AddressOf, ident("sp")), ident("d")),
			cat:  fmterr.Compilation,
			want: "unable to compare struct point** to double",
		},
		{
			expr: unary(ir.AddressOf, integer(5)),
			cat:  fmterr.Compilation,
			want: "required a value expression to get address, got 5 instead",
		},
		{
			expr: unary(ir.AddressOf, binary(ir.Add, ident("a"), ident("a"))),
			cat:  fmterr.Compilation,
			want: "required a value expression to get address",
		},
		{
			expr: unary(ir.AddressOf, ident("g")),
			cat:  fmterr.Compilation,
			want: "required an addressable value to get address, got function g instead",
		},
		{
			expr: unary(ir.Plus, ident("a")),
			cat:  fmterr.Unimplemented,
			id:   fmterr.WipUnaryOperator,
			want: "unary operator not supported, yet: +",
		},
		{
			expr: unary(ir.Indirection, ident("p")),
			cat:  fmterr.Unimplemented,
			id:   fmterr.WipUnaryOperator,
		},
		{
			expr: binary(ir.Add, ident("p"), integer(1)),
			cat:  fmterr.Unimplemented,
			id:   fmterr.WipPointerArithmetic,
		},
		{
			expr: binary(ir.GreaterThanOrEqualTo, ident("a"), ident("b")),
			cat:  fmterr.Internal,
			want: "has not been lowered",
		},
		{
			expr: binary(ir.LessThanOrEqualTo, ident("a"), ident("b")),
			cat:  fmterr.Internal,
		},
		{
			expr: binary(ir.NotEqualTo, ident("a"), ident("b")),
			cat:  fmterr.Internal,
		},
		{
			expr: &ir.MemberAccessExpr{X: ident("sp"), Member: "x"},
			cat:  fmterr.Internal,
		},
		{
			expr: &ir.AssignExpr{Compound: true, Op: ir.Add, X: ident("a"), Y: ident("a")},
			cat:  fmterr.Internal,
		},
		{
			expr: &ir.PointerMemberAccessExpr{X: ident("sp"), Member: "z"},
			cat:  fmterr.Compilation,
			want: "struct point has no member named z",
		},
		{
			expr: ident("unknown"),
			cat:  fmterr.Compilation,
			want: "identifier unknown is not declared",
		},
		{
			expr: &ir.CallExpr{Func: "g", Args: []ir.Expr{ident("a")}},
			cat:  fmterr.Compilation,
			want: "incorrect number of arguments for function g: expected 2, got 1",
		},
		{
			expr: binary(ir.BitwiseAnd, ident("d"), ident("a")),
			cat:  fmterr.Compilation,
			want: "invalid operands to binary &",
		},
		{
			expr: &ir.AssignExpr{X: integer(1), Y: ident("a")},
			cat:  fmterr.Compilation,
			want: "lvalue required",
		},
	}
	for _, test := range tests {
		t.Run(test.expr.String(), func(t *testing.T) {
			fix := newFixture(t, ir.VoidType(), defaultParams()...)
			_, err := codegen.EmitExpr(fix.scope, test.expr)
			if err == nil {
				t.Fatalf("expected an error")
			}
			if cat := fmterr.CategoryOf(err); cat != test.cat {
				t.Errorf("got category %s but want %s: %v", cat, test.cat, err)
			}
			if test.id != 0 {
				if id, _ := fmterr.TrackingID(err); id != test.id {
					t.Errorf("got tracking id %d but want %d", id, test.id)
				}
			}
			if !strings.Contains(err.Error(), test.want) {
				t.Errorf("error %q does not contain %q", err.Error(), test.want)
			}
		})
	}
}

func TestEmitStmts(t *testing.T) {
	fix := newFixture(t, ir.LongType(), defaultParams()...)
	body := &ir.BlockStmt{List: []ir.Stmt{
		&ir.DeclStmt{Name: "x", Typ: ir.IntType(), Init: integer(5)},
		&ir.DeclStmt{Name: "c", Typ: ir.CharType(), Const: true, Init: &ir.CharConstant{Val: 'z'}},
		&ir.ExprStmt{X: &ir.AssignExpr{X: ident("x"), Y: ident("a")}},
		&ir.ExprStmt{X: &ir.AssignExpr{X: &ir.PointerMemberAccessExpr{X: ident("sp"), Member: "x"}, Y: ident("c")}},
		&ir.ExprStmt{X: &ir.AssignExpr{X: ident("a"), Y: integer(2)}},
		&ir.ExprStmt{X: &ir.CallExpr{Func: "g", Args: []ir.Expr{ident("x"), ident("x")}}},
		&ir.BlockStmt{List: []ir.Stmt{
			&ir.DeclStmt{Name: "y", Typ: ir.PointerTo(ir.IntType()), Init: unary(ir.AddressOf, ident("x"))},
		}},
	}}
	if err := codegen.EmitFunctionBody(fix.scope, body); err != nil {
		t.Fatal(err)
	}
	want := []string{
		"ldc.i4.5",
		"stloc.0",
		"ldc.i4.s 122",
		"conv.u1",
		"stloc.1",
		"ldarg.0",
		"stloc.0",
		"ldarg.3",
		"ldloc.1",
		"stfld int point::x",
		"ldc.i4.2",
		"starg.s a",
		"ldloc.0",
		"conv.i8",
		"ldloc.0",
		"call int g(long, int)",
		"pop",
		"ldloca.s V_0",
		"conv.u",
		"stloc.2",
		"ldc.i4.0",
		"conv.i8",
		"ret",
	}
	if diff := cmp.Diff(want, fix.scope.Body().Listing()); diff != "" {
		t.Errorf("unexpected instructions (-want +got):\n%s", diff)
	}
	if got := len(fix.scope.Body().Locals()); got != 3 {
		t.Errorf("got %d locals but want 3", got)
	}
}

func TestChainedAssignment(t *testing.T) {
	fix := newFixture(t, ir.LongType(), defaultParams()...)
	body := &ir.BlockStmt{List: []ir.Stmt{
		&ir.DeclStmt{Name: "x", Typ: ir.IntType(), Init: integer(5)},
		// a = x = 7;
		&ir.ExprStmt{X: &ir.AssignExpr{X: ident("a"), Y: &ir.AssignExpr{X: ident("x"), Y: integer(7)}}},
		// b = a = 3;
		&ir.ExprStmt{X: &ir.AssignExpr{X: ident("b"), Y: &ir.AssignExpr{X: ident("a"), Y: integer(3)}}},
		// sp->y = x = a;
		&ir.ExprStmt{X: &ir.AssignExpr{
			X: &ir.PointerMemberAccessExpr{X: ident("sp"), Member: "y"},
			Y: &ir.AssignExpr{X: ident("x"), Y: ident("a")},
		}},
		// return sp->x = a;
		&ir.ReturnStmt{X: &ir.AssignExpr{X: &ir.PointerMemberAccessExpr{X: ident("sp"), Member: "x"}, Y: ident("a")}},
	}}
	if err := codegen.EmitFunctionBody(fix.scope, body); err != nil {
		t.Fatal(err)
	}
	want := []string{
		"ldc.i4.5",
		"stloc.0",
		"ldc.i4.7",
		"dup",
		"stloc.0",
		"starg.s a",
		"ldc.i4.3",
		"dup",
		"starg.s a",
		"conv.i8",
		"starg.s b",
		"ldarg.3",
		"ldarg.0",
		"dup",
		"stloc.0",
		"stfld int point::y",
		"ldarg.3",
		"ldarg.0",
		"dup",
		"stloc.1",
		"stfld int point::x",
		"ldloc.1",
		"conv.i8",
		"ret",
	}
	if diff := cmp.Diff(want, fix.scope.Body().Listing()); diff != "" {
		t.Errorf("unexpected instructions (-want +got):\n%s", diff)
	}
	if got := len(fix.scope.Body().Locals()); got != 2 {
		t.Errorf("got %d locals but want 2", got)
	}
}

func TestAssignmentType(t *testing.T) {
	fix := newFixture(t, ir.VoidType(), defaultParams()...)
	typ, err := codegen.TypeOf(fix.scope, &ir.AssignExpr{X: ident("b"), Y: integer(1)})
	if err != nil {
		t.Fatal(err)
	}
	if !typ.Equal(ir.LongType()) {
		t.Errorf("assignment has type %s but want %s", typ.String(), ir.LongType().String())
	}
}

func TestEmitReturn(t *testing.T) {
	fix := newFixture(t, ir.VoidType())
	body := &ir.BlockStmt{List: []ir.Stmt{&ir.ReturnStmt{}}}
	if err := codegen.EmitFunctionBody(fix.scope, body); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"ret"}, fix.scope.Body().Listing()); diff != "" {
		t.Errorf("unexpected instructions (-want +got):\n%s", diff)
	}

	fix = newFixture(t, ir.DoubleType(), param("a", ir.IntType()))
	body = &ir.BlockStmt{List: []ir.Stmt{&ir.ReturnStmt{X: ident("a")}}}
	if err := codegen.EmitFunctionBody(fix.scope, body); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"ldarg.0", "conv.r8", "ret"}, fix.scope.Body().Listing()); diff != "" {
		t.Errorf("unexpected instructions (-want +got):\n%s", diff)
	}
}

func TestEmitStmtErrors(t *testing.T) {
	tests := []struct {
		name string
		ret  ir.Type
		stmt ir.Stmt
		want string
	}{
		{
			name: "const",
			ret:  ir.VoidType(),
			stmt: &ir.BlockStmt{List: []ir.Stmt{
				&ir.DeclStmt{Name: "c", Typ: ir.IntType(), Const: true, Init: integer(1)},
				&ir.ExprStmt{X: &ir.AssignExpr{X: ident("c"), Y: integer(2)}},
			}},
			want: "cannot assign to const local variable c",
		},
		{
			name: "redeclaration",
			ret:  ir.VoidType(),
			stmt: &ir.BlockStmt{List: []ir.Stmt{
				&ir.DeclStmt{Name: "c", Typ: ir.IntType()},
				&ir.DeclStmt{Name: "c", Typ: ir.LongType()},
			}},
			want: "redeclaration of c",
		},
		{
			name: "missing value",
			ret:  ir.IntType(),
			stmt: &ir.ReturnStmt{},
			want: "non-void function f should return a value",
		},
		{
			name: "unexpected value",
			ret:  ir.VoidType(),
			stmt: &ir.ReturnStmt{X: integer(1)},
			want: "void function f should not return a value",
		},
		{
			name: "void variable",
			ret:  ir.VoidType(),
			stmt: &ir.DeclStmt{Name: "v", Typ: ir.VoidType()},
			want: "variable v declared void",
		},
		{
			name: "void value",
			ret:  ir.IntType(),
			stmt: &ir.ReturnStmt{X: &ir.CastExpr{Typ: ir.VoidType(), X: integer(1)}},
			want: "not ignored as it ought to be",
		},
		{
			name: "chained const",
			ret:  ir.IntType(),
			stmt: &ir.BlockStmt{List: []ir.Stmt{
				&ir.DeclStmt{Name: "x", Typ: ir.IntType()},
				&ir.DeclStmt{Name: "c", Typ: ir.IntType(), Const: true, Init: integer(1)},
				&ir.ReturnStmt{X: &ir.AssignExpr{X: ident("x"), Y: &ir.AssignExpr{X: ident("c"), Y: integer(2)}}},
			}},
			want: "cannot assign to const local variable c",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			fix := newFixture(t, test.ret)
			err := codegen.EmitStmt(fix.scope, test.stmt)
			if err == nil {
				t.Fatalf("expected an error")
			}
			if cat := fmterr.CategoryOf(err); cat != fmterr.Compilation {
				t.Errorf("got category %s but want %s: %v", cat, fmterr.Compilation, err)
			}
			if !strings.Contains(err.Error(), test.want) {
				t.Errorf("error %q does not contain %q", err.Error(), test.want)
			}
		})
	}
}

func TestFunctionReference(t *testing.T) {
	fix := newFixture(t, ir.VoidType())
	typ, err := codegen.EmitExpr(fix.scope, ident("g"))
	if err != nil {
		t.Fatal(err)
	}
	if !ir.IsPointer(typ) {
		t.Errorf("function reference has type %s but want a pointer", typ.String())
	}
	if diff := cmp.Diff([]string{"ldftn int g(long, int)"}, fix.scope.Body().Listing()); diff != "" {
		t.Errorf("unexpected instructions (-want +got):\n%s", diff)
	}
	g, _ := fix.mod.Function("g")
	if !g.Referenced() {
		t.Errorf("function g has not been marked as referenced")
	}
}
