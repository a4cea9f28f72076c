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

// Package syntax defines the syntax tree of a C translation unit.
//
// The tree is produced by a front end (preprocessor, tokenizer and parser)
// outside of this module. Positions are go/token positions so that
// errors can be reported with a standard token.FileSet.
package syntax

import (
	"go/token"

	"github.com/pkg/errors"
)

type (
	// Node in the tree.
	Node interface {
		Pos() token.Pos
	}

	// Expr is an expression.
	Expr interface {
		Node
		exprNode()
	}

	// Stmt is a statement in a function body.
	Stmt interface {
		Node
		stmtNode()
	}

	// Decl is a declaration at file scope.
	Decl interface {
		Node
		declNode()
	}

	// Declarator declares a name with a type derived from the declaration specifiers.
	Declarator interface {
		Node
		declaratorNode()
	}
)

// ----------------------------------------------------------------------------
// Expressions.
type (
	// Ident is an identifier.
	Ident struct {
		NamePos token.Pos
		Name    string
	}

	// IntLit is an integer literal, with its suffix, for example 10u.
	IntLit struct {
		ValuePos token.Pos
		Value    string
	}

	// FloatLit is a floating point literal, with its suffix, for example 1.5f.
	FloatLit struct {
		ValuePos token.Pos
		Value    string
	}

	// CharLit is a character literal, including its quotes, for example '\n'.
	CharLit struct {
		ValuePos token.Pos
		Value    string
	}

	// ParenExpr is a parenthesised expression.
	ParenExpr struct {
		Lparen token.Pos
		X      Expr
	}

	// BinaryExpr is a binary expression: X Op Y.
	BinaryExpr struct {
		X     Expr
		OpPos token.Pos
		Op    string
		Y     Expr
	}

	// UnaryExpr is a prefix unary expression: Op X.
	UnaryExpr struct {
		OpPos token.Pos
		Op    string
		X     Expr
	}

	// MemberExpr selects a member of a structure: X.Member
	MemberExpr struct {
		X      Expr
		Member *Ident
	}

	// PtrMemberExpr selects a member of a structure through a pointer: X->Member
	PtrMemberExpr struct {
		X      Expr
		Member *Ident
	}

	// CallExpr calls a function: Fun(Args...)
	CallExpr struct {
		Fun  *Ident
		Args []Expr
	}

	// CastExpr converts a value to a type: (Type)X
	CastExpr struct {
		Lparen token.Pos
		Type   *TypeName
		X      Expr
	}

	// AssignExpr assigns a value: X Op Y, where Op is = or a compound assignment operator.
	AssignExpr struct {
		X     Expr
		OpPos token.Pos
		Op    string
		Y     Expr
	}
)

func (x *Ident) Pos() token.Pos         { return x.NamePos }
func (x *IntLit) Pos() token.Pos        { return x.ValuePos }
func (x *FloatLit) Pos() token.Pos      { return x.ValuePos }
func (x *CharLit) Pos() token.Pos       { return x.ValuePos }
func (x *ParenExpr) Pos() token.Pos     { return x.Lparen }
func (x *BinaryExpr) Pos() token.Pos    { return x.X.Pos() }
func (x *UnaryExpr) Pos() token.Pos     { return x.OpPos }
func (x *MemberExpr) Pos() token.Pos    { return x.X.Pos() }
func (x *PtrMemberExpr) Pos() token.Pos { return x.X.Pos() }
func (x *CallExpr) Pos() token.Pos      { return x.Fun.Pos() }
func (x *CastExpr) Pos() token.Pos      { return x.Lparen }
func (x *AssignExpr) Pos() token.Pos    { return x.X.Pos() }

func (*Ident) exprNode()         {}
func (*IntLit) exprNode()        {}
func (*FloatLit) exprNode()      {}
func (*CharLit) exprNode()       {}
func (*ParenExpr) exprNode()     {}
func (*BinaryExpr) exprNode()    {}
func (*UnaryExpr) exprNode()     {}
func (*MemberExpr) exprNode()    {}
func (*PtrMemberExpr) exprNode() {}
func (*CallExpr) exprNode()      {}
func (*CastExpr) exprNode()      {}
func (*AssignExpr) exprNode()    {}

// ----------------------------------------------------------------------------
// Types and declarators.
type (
	// DeclSpecs are the specifiers of a declaration, for example: const unsigned int
	DeclSpecs struct {
		SpecPos token.Pos
		// Words are the type specifiers other than structures, for example ["unsigned", "int"].
		Words  []string
		Struct *StructSpec
		Const  bool
	}

	// StructSpec is a struct specifier.
	// Fields is nil if the specifier only refers to a structure by its tag.
	StructSpec struct {
		StructPos token.Pos
		Tag       string
		Fields    []*FieldDecl
	}

	// FieldDecl declares a field of a structure.
	FieldDecl struct {
		Specs      *DeclSpecs
		Declarator Declarator
	}

	// TypeName is the type of a cast: specifiers with an abstract declarator.
	TypeName struct {
		Specs      *DeclSpecs
		Declarator Declarator // nil if the type has no declarator.
	}

	// IdentDeclarator declares an identifier.
	IdentDeclarator struct {
		NamePos token.Pos
		Name    string
	}

	// PointerDeclarator declares a pointer to the type of its base.
	// Base is nil for an abstract declarator, for example in (int*)x.
	PointerDeclarator struct {
		Star token.Pos
		Base Declarator
	}

	// FuncDeclarator declares a function.
	// Params is nil if the function has been declared without a parameter list.
	FuncDeclarator struct {
		Base   Declarator
		Lparen token.Pos
		Params *ParamList
	}

	// ArrayDeclarator declares an array.
	ArrayDeclarator struct {
		Base   Declarator
		Lbrack token.Pos
		Len    Expr
	}

	// ParamList is the list of parameters of a function declarator.
	ParamList struct {
		Params []*ParamDecl
		// Void is true if the list is (void).
		Void bool
		// VarArg is true if the list ends with an ellipsis.
		VarArg bool
	}

	// ParamDecl declares a parameter. Declarator is nil for a parameter without name.
	ParamDecl struct {
		Specs      *DeclSpecs
		Declarator Declarator
	}
)

func (x *DeclSpecs) Pos() token.Pos         { return x.SpecPos }
func (x *StructSpec) Pos() token.Pos        { return x.StructPos }
func (x *FieldDecl) Pos() token.Pos         { return x.Specs.Pos() }
func (x *TypeName) Pos() token.Pos          { return x.Specs.Pos() }
func (x *IdentDeclarator) Pos() token.Pos   { return x.NamePos }
func (x *PointerDeclarator) Pos() token.Pos { return x.Star }
func (x *FuncDeclarator) Pos() token.Pos    { return x.Lparen }
func (x *ArrayDeclarator) Pos() token.Pos   { return x.Lbrack }
func (x *ParamDecl) Pos() token.Pos         { return x.Specs.Pos() }

func (*IdentDeclarator) declaratorNode()   {}
func (*PointerDeclarator) declaratorNode() {}
func (*FuncDeclarator) declaratorNode()    {}
func (*ArrayDeclarator) declaratorNode()   {}

// GetIdentifier returns the identifier declared by a declarator.
func GetIdentifier(d Declarator) (string, error) {
	switch dT := d.(type) {
	case *IdentDeclarator:
		return dT.Name, nil
	case *PointerDeclarator:
		if dT.Base != nil {
			return GetIdentifier(dT.Base)
		}
	case *FuncDeclarator:
		if dT.Base != nil {
			return GetIdentifier(dT.Base)
		}
	case *ArrayDeclarator:
		if dT.Base != nil {
			return GetIdentifier(dT.Base)
		}
	}
	return "", errors.Errorf("attempt to extract an identifier from a declarator of incorrect shape: %T", d)
}

// IsAbstract returns true if a declarator does not declare an identifier.
func IsAbstract(d Declarator) bool {
	_, err := GetIdentifier(d)
	return err != nil
}

// ----------------------------------------------------------------------------
// Statements.
type (
	// CompoundStmt is a block: { List... }
	CompoundStmt struct {
		Lbrace token.Pos
		List   []Stmt
	}

	// DeclStmt declares a local variable with an optional initializer.
	DeclStmt struct {
		Specs      *DeclSpecs
		Declarator Declarator
		Init       Expr
	}

	// ExprStmt evaluates an expression for its side effects.
	ExprStmt struct {
		X Expr
	}

	// ReturnStmt returns from a function. Result is nil in a void function.
	ReturnStmt struct {
		Return token.Pos
		Result Expr
	}
)

func (x *CompoundStmt) Pos() token.Pos { return x.Lbrace }
func (x *DeclStmt) Pos() token.Pos     { return x.Specs.Pos() }
func (x *ExprStmt) Pos() token.Pos     { return x.X.Pos() }
func (x *ReturnStmt) Pos() token.Pos   { return x.Return }

func (*CompoundStmt) stmtNode() {}
func (*DeclStmt) stmtNode()     {}
func (*ExprStmt) stmtNode()     {}
func (*ReturnStmt) stmtNode()   {}

// ----------------------------------------------------------------------------
// Declarations.
type (
	// FuncDecl declares a function. Body is nil for a prototype.
	FuncDecl struct {
		Specs      *DeclSpecs
		Declarator Declarator
		Body       *CompoundStmt
	}

	// VarDecl declares a variable at file scope.
	VarDecl struct {
		Specs      *DeclSpecs
		Declarator Declarator
		Init       Expr
	}

	// TypeDecl only declares a type, for example: struct S { int a; };
	TypeDecl struct {
		Specs *DeclSpecs
	}

	// TranslationUnit is the tree of a preprocessed source file.
	TranslationUnit struct {
		// Name of the source file.
		Name  string
		Decls []Decl
	}
)

func (x *FuncDecl) Pos() token.Pos { return x.Specs.Pos() }
func (x *VarDecl) Pos() token.Pos  { return x.Specs.Pos() }
func (x *TypeDecl) Pos() token.Pos { return x.Specs.Pos() }

func (*FuncDecl) declNode() {}
func (*VarDecl) declNode()  {}
func (*TypeDecl) declNode() {}
