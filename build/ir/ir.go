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

// Package ir is the C Intermediate Representation (IR) tree.
// The tree is built by the builder
// [github.com/gsomix/Cesium/build/builder]
// from the syntax tree of a translation unit.
//
// Nodes of the tree are never modified once they have been built:
// passes over the tree (see [github.com/gsomix/Cesium/build/lower])
// return new trees.
package ir

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gsomix/Cesium/build/syntax"
)

// ----------------------------------------------------------------------------
// Types of node in the tree.
type (
	// Node in the tree.
	Node interface {
		// node marks a structure as a node structure.
		// It prevents external implementations of the interface.
		node()
	}

	// Expr is an expression.
	Expr interface {
		Node
		// Source returns the syntax node from which the expression has been built.
		// Returns nil for expressions synthesized by the compiler.
		Source() syntax.Node
		String() string
		exprNode()
	}

	// ValueExpr is an expression denoting storage.
	// Value expressions are resolved to a value by the code generator.
	ValueExpr interface {
		Expr
		valueExpr()
	}

	// Stmt is a statement.
	Stmt interface {
		Node
		Source() syntax.Node
		stmtNode()
	}
)

// ----------------------------------------------------------------------------
// Operators.

// BinaryOp is the operator of a binary expression.
type BinaryOp int

// Binary operators.
const (
	Add BinaryOp = iota
	Sub
	Mul
	Div
	Rem
	BitwiseAnd
	BitwiseOr
	BitwiseXor
	LeftShift
	RightShift
	GreaterThan
	LessThan
	EqualTo
	GreaterThanOrEqualTo
	LessThanOrEqualTo
	NotEqualTo
)

var binaryOps = [...]string{
	Add:                  "+",
	Sub:                  "-",
	Mul:                  "*",
	Div:                  "/",
	Rem:                  "%",
	BitwiseAnd:           "&",
	BitwiseOr:            "|",
	BitwiseXor:           "^",
	LeftShift:            "<<",
	RightShift:           ">>",
	GreaterThan:          ">",
	LessThan:             "<",
	EqualTo:              "==",
	GreaterThanOrEqualTo: ">=",
	LessThanOrEqualTo:    "<=",
	NotEqualTo:           "!=",
}

// BinaryOpFromString returns a binary operator given its C token.
func BinaryOpFromString(s string) (BinaryOp, bool) {
	for op, str := range binaryOps {
		if str == s {
			return BinaryOp(op), true
		}
	}
	return -1, false
}

// IsComparison returns true if the operator compares its operands.
func (op BinaryOp) IsComparison() bool {
	return op >= GreaterThan && op <= NotEqualTo
}

// IsBitwise returns true if the operator only applies to integers.
func (op BinaryOp) IsBitwise() bool {
	return op >= BitwiseAnd && op <= RightShift
}

func (op BinaryOp) String() string {
	if op < 0 || int(op) >= len(binaryOps) {
		return fmt.Sprintf("BinaryOp(%d)", int(op))
	}
	return binaryOps[op]
}

// UnaryOp is the operator of a unary expression.
type UnaryOp int

// Unary operators.
const (
	Negation UnaryOp = iota
	BitwiseNot
	LogicalNot
	AddressOf
	Plus
	Indirection
)

var unaryOps = [...]string{
	Negation:    "-",
	BitwiseNot:  "~",
	LogicalNot:  "!",
	AddressOf:   "&",
	Plus:        "+",
	Indirection: "*",
}

// UnaryOpFromString returns a unary operator given its C token.
func UnaryOpFromString(s string) (UnaryOp, bool) {
	for op, str := range unaryOps {
		if str == s {
			return UnaryOp(op), true
		}
	}
	return -1, false
}

func (op UnaryOp) String() string {
	if op < 0 || int(op) >= len(unaryOps) {
		return fmt.Sprintf("UnaryOp(%d)", int(op))
	}
	return unaryOps[op]
}

// ----------------------------------------------------------------------------
// Expressions.
type (
	// IntegerConstant is an integer literal.
	IntegerConstant struct {
		Src syntax.Node
		Val int64
		Typ Type
	}

	// FloatConstant is a floating point literal.
	FloatConstant struct {
		Src syntax.Node
		Val float64
		Typ Type
	}

	// CharConstant is a character literal decoded to a byte.
	CharConstant struct {
		Src syntax.Node
		Val byte
	}

	// IdentExpr refers to a variable, a parameter or a function by its name.
	IdentExpr struct {
		Src  syntax.Node
		Name string
	}

	// BinaryExpr is a binary operation: X Op Y.
	BinaryExpr struct {
		Src syntax.Node
		Op  BinaryOp
		X   Expr
		Y   Expr
	}

	// UnaryExpr is a unary operation: Op X.
	UnaryExpr struct {
		Src syntax.Node
		Op  UnaryOp
		X   Expr
	}

	// MemberAccessExpr selects a member of a structure value: X.Member
	MemberAccessExpr struct {
		Src    syntax.Node
		X      Expr
		Member string
	}

	// PointerMemberAccessExpr selects a member of a structure given a pointer: X->Member
	PointerMemberAccessExpr struct {
		Src    syntax.Node
		X      Expr
		Member string
	}

	// CallExpr calls a function by its name.
	CallExpr struct {
		Src  syntax.Node
		Func string
		Args []Expr
	}

	// CastExpr converts a value to a type.
	CastExpr struct {
		Src syntax.Node
		Typ Type
		X   Expr
	}

	// AssignExpr stores the value Y into X.
	// If Compound is true, the expression is X Op= Y.
	AssignExpr struct {
		Src      syntax.Node
		Compound bool
		Op       BinaryOp
		X        Expr
		Y        Expr
	}
)

var (
	_ Expr      = (*IntegerConstant)(nil)
	_ Expr      = (*FloatConstant)(nil)
	_ Expr      = (*CharConstant)(nil)
	_ ValueExpr = (*IdentExpr)(nil)
	_ Expr      = (*BinaryExpr)(nil)
	_ Expr      = (*UnaryExpr)(nil)
	_ ValueExpr = (*MemberAccessExpr)(nil)
	_ ValueExpr = (*PointerMemberAccessExpr)(nil)
	_ Expr      = (*CallExpr)(nil)
	_ Expr      = (*CastExpr)(nil)
	_ Expr      = (*AssignExpr)(nil)
)

// Zero returns the integer constant 0.
func Zero() *IntegerConstant {
	return &IntegerConstant{Val: 0, Typ: IntType()}
}

func (*IntegerConstant) node()     {}
func (*IntegerConstant) exprNode() {}

// Source returns the node in the syntax tree.
func (x *IntegerConstant) Source() syntax.Node { return x.Src }

func (x *IntegerConstant) String() string { return strconv.FormatInt(x.Val, 10) }

func (*FloatConstant) node()     {}
func (*FloatConstant) exprNode() {}

// Source returns the node in the syntax tree.
func (x *FloatConstant) Source() syntax.Node { return x.Src }

func (x *FloatConstant) String() string { return strconv.FormatFloat(x.Val, 'g', -1, 64) }

func (*CharConstant) node()     {}
func (*CharConstant) exprNode() {}

// Source returns the node in the syntax tree.
func (x *CharConstant) Source() syntax.Node { return x.Src }

func (x *CharConstant) String() string { return fmt.Sprintf("char: %d", x.Val) }

func (*IdentExpr) node()      {}
func (*IdentExpr) exprNode()  {}
func (*IdentExpr) valueExpr() {}

// Source returns the node in the syntax tree.
func (x *IdentExpr) Source() syntax.Node { return x.Src }

func (x *IdentExpr) String() string { return x.Name }

func (*BinaryExpr) node()     {}
func (*BinaryExpr) exprNode() {}

// Source returns the node in the syntax tree.
func (x *BinaryExpr) Source() syntax.Node { return x.Src }

func (x *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", x.X.String(), x.Op.String(), x.Y.String())
}

func (*UnaryExpr) node()     {}
func (*UnaryExpr) exprNode() {}

// Source returns the node in the syntax tree.
func (x *UnaryExpr) Source() syntax.Node { return x.Src }

func (x *UnaryExpr) String() string { return x.Op.String() + x.X.String() }

func (*MemberAccessExpr) node()      {}
func (*MemberAccessExpr) exprNode()  {}
func (*MemberAccessExpr) valueExpr() {}

// Source returns the node in the syntax tree.
func (x *MemberAccessExpr) Source() syntax.Node { return x.Src }

func (x *MemberAccessExpr) String() string { return x.X.String() + "." + x.Member }

func (*PointerMemberAccessExpr) node()      {}
func (*PointerMemberAccessExpr) exprNode()  {}
func (*PointerMemberAccessExpr) valueExpr() {}

// Source returns the node in the syntax tree.
func (x *PointerMemberAccessExpr) Source() syntax.Node { return x.Src }

func (x *PointerMemberAccessExpr) String() string {
	return "(" + x.X.String() + ")->" + x.Member
}

func (*CallExpr) node()     {}
func (*CallExpr) exprNode() {}

// Source returns the node in the syntax tree.
func (x *CallExpr) Source() syntax.Node { return x.Src }

func (x *CallExpr) String() string {
	args := make([]string, len(x.Args))
	for i, arg := range x.Args {
		args[i] = arg.String()
	}
	return x.Func + "(" + strings.Join(args, ", ") + ")"
}

func (*CastExpr) node()     {}
func (*CastExpr) exprNode() {}

// Source returns the node in the syntax tree.
func (x *CastExpr) Source() syntax.Node { return x.Src }

func (x *CastExpr) String() string { return "(" + x.Typ.String() + ")" + x.X.String() }

func (*AssignExpr) node()     {}
func (*AssignExpr) exprNode() {}

// Source returns the node in the syntax tree.
func (x *AssignExpr) Source() syntax.Node { return x.Src }

func (x *AssignExpr) String() string {
	op := "="
	if x.Compound {
		op = x.Op.String() + "="
	}
	return fmt.Sprintf("%s %s %s", x.X.String(), op, x.Y.String())
}

// ----------------------------------------------------------------------------
// Statements.
type (
	// ExprStmt evaluates an expression and discards its value.
	ExprStmt struct {
		Src syntax.Node
		X   Expr
	}

	// ReturnStmt returns from the current function.
	// X is nil when no value is returned.
	ReturnStmt struct {
		Src syntax.Node
		X   Expr
	}

	// DeclStmt declares a local variable.
	DeclStmt struct {
		Src   syntax.Node
		Name  string
		Typ   Type
		Const bool
		// Init is the initial value of the variable. May be nil.
		Init Expr
	}

	// BlockStmt is a list of statements with its own scope.
	BlockStmt struct {
		Src  syntax.Node
		List []Stmt
	}
)

func (*ExprStmt) node()     {}
func (*ExprStmt) stmtNode() {}

// Source returns the node in the syntax tree.
func (s *ExprStmt) Source() syntax.Node { return s.Src }

func (*ReturnStmt) node()     {}
func (*ReturnStmt) stmtNode() {}

// Source returns the node in the syntax tree.
func (s *ReturnStmt) Source() syntax.Node { return s.Src }

func (*DeclStmt) node()     {}
func (*DeclStmt) stmtNode() {}

// Source returns the node in the syntax tree.
func (s *DeclStmt) Source() syntax.Node { return s.Src }

func (*BlockStmt) node()     {}
func (*BlockStmt) stmtNode() {}

// Source returns the node in the syntax tree.
func (s *BlockStmt) Source() syntax.Node { return s.Src }
