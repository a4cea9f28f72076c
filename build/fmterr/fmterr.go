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

// Package fmterr provides helpers to build categorised compiler errors and
// format them given a position in a file set.
package fmterr

import "go/token"

// FileSet builds errors formatted for a given file set.
type FileSet struct {
	FSet *token.FileSet
}

// Errorf returns a formatted compilation error for the user.
func (f FileSet) Errorf(node Node, format string, a ...any) error {
	return Errorf(f.FSet, node, format, a...)
}

// Unimplementedf returns an error for a feature not supported yet.
func (f FileSet) Unimplementedf(node Node, id int, format string, a ...any) error {
	return Unimplementedf(f.FSet, node, id, format, a...)
}

// Internalf returns an error reporting a bug in the compiler.
func (f FileSet) Internalf(node Node, format string, a ...any) error {
	return Internalf(f.FSet, node, format, a...)
}

// Position positions an error in C source code.
func (f FileSet) Position(node Node, err error) error {
	return Position(f.FSet, node, err)
}

// Pos returns a formatter with a fileset and a position as a context.
func (f FileSet) Pos(node Node) Pos {
	return Pos{FileSet: f, Node: node}
}

// Pos builds errors for a position in a file set.
type Pos struct {
	FileSet
	Node Node
}

// Errorf returns a formatted compilation error for the user.
func (f Pos) Errorf(format string, a ...any) error {
	return f.FileSet.Errorf(f.Node, format, a...)
}

// Internalf returns an error reporting a bug in the compiler.
func (f Pos) Internalf(format string, a ...any) error {
	return f.FileSet.Internalf(f.Node, format, a...)
}

// Unimplementedf returns an error for a feature not supported yet.
func (f Pos) Unimplementedf(id int, format string, a ...any) error {
	return f.FileSet.Unimplementedf(f.Node, id, format, a...)
}
