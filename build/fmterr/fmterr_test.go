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

package fmterr_test

import (
	"fmt"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/gsomix/Cesium/build/fmterr"
)

type node token.Pos

func (n node) Pos() token.Pos { return token.Pos(n) }

func newFileSet() (*token.FileSet, fmterr.Node) {
	fset := token.NewFileSet()
	file := fset.AddFile("main.c", -1, 100)
	file.SetLines([]int{0, 20, 40})
	return fset, node(file.Pos(25))
}

func TestCategories(t *testing.T) {
	fset, src := newFileSet()
	tests := []struct {
		err  error
		cat  fmterr.Category
		id   int
		want string
	}{
		{
			err:  fmterr.Errorf(fset, src, "identifier %s is not declared", "x"),
			cat:  fmterr.Compilation,
			want: "main.c:2:6: identifier x is not declared",
		},
		{
			err:  fmterr.Unimplementedf(fset, src, fmterr.WipArray, "array declarator not supported, yet"),
			cat:  fmterr.Unimplemented,
			id:   fmterr.WipArray,
			want: "main.c:2:6: not implemented yet (wip #199): array declarator not supported, yet",
		},
		{
			err:  fmterr.Internalf(nil, nil, "unexpected node"),
			cat:  fmterr.Internal,
			want: "internal compiler error. This is a bug in the compiler. Please report it. Error: unexpected node",
		},
		{
			err:  fmterr.Parsef(fset, src, "expected ';'"),
			cat:  fmterr.Parse,
			want: "main.c:2:6: expected ';'",
		},
		{
			err:  errors.New("foreign"),
			cat:  fmterr.Internal,
			want: "foreign",
		},
	}
	for _, test := range tests {
		if got := fmterr.CategoryOf(test.err); got != test.cat {
			t.Errorf("%v: got category %s but want %s", test.err, got, test.cat)
		}
		id, ok := fmterr.TrackingID(test.err)
		if ok != (test.id != 0) || id != test.id {
			t.Errorf("%v: got tracking id %d, %t but want %d", test.err, id, ok, test.id)
		}
		if got := test.err.Error(); got != test.want {
			t.Errorf("got error %q but want %q", got, test.want)
		}
	}
}

func TestPosition(t *testing.T) {
	fset, src := newFileSet()
	err := fmterr.Position(fset, src, errors.New("bad"))
	if got, want := err.Error(), "main.c:2:6: bad"; got != want {
		t.Errorf("got %q but want %q", got, want)
	}
	if got := fmterr.CategoryOf(err); got != fmterr.Compilation {
		t.Errorf("got category %s but want %s", got, fmterr.Compilation)
	}
	// An error with a position keeps it.
	other := node(fset.File(src.Pos()).Pos(45))
	if got, want := fmterr.Position(fset, other, err).Error(), "main.c:2:6: bad"; got != want {
		t.Errorf("got %q but want %q", got, want)
	}
	// An error without position gets one and keeps its category.
	wip := fmterr.Unimplementedf(nil, nil, fmterr.WipVarArgs, "vararg")
	positioned := fmterr.Position(fset, src, wip)
	if id, ok := fmterr.TrackingID(positioned); !ok || id != fmterr.WipVarArgs {
		t.Errorf("got tracking id %d, %t but want %d", id, ok, fmterr.WipVarArgs)
	}
	if !strings.HasPrefix(positioned.Error(), "main.c:2:6: ") {
		t.Errorf("error %q has no position", positioned.Error())
	}
	if fmterr.Position(fset, src, nil) != nil {
		t.Errorf("nil error returned a non-nil error")
	}
}

func TestInternal(t *testing.T) {
	fset, src := newFileSet()
	err := fmterr.Internalf(fset, src, "oops")
	if got := fmterr.CategoryOf(err); got != fmterr.Internal {
		t.Errorf("got category %s but want %s", got, fmterr.Internal)
	}
	if !strings.HasPrefix(err.Error(), "main.c:2:6: internal compiler error") {
		t.Errorf("unexpected error %q", err.Error())
	}
}

func TestAsInput(t *testing.T) {
	fset, src := newFileSet()
	_, err := os.ReadFile(filepath.Join(t.TempDir(), "missing.c"))
	if err == nil {
		t.Fatal("expected an error")
	}
	if got := fmterr.CategoryOf(err); got != fmterr.Internal {
		t.Errorf("got category %s but want %s for a foreign error", got, fmterr.Internal)
	}
	input := fmterr.AsInput(err)
	if got := fmterr.CategoryOf(input); got != fmterr.Input {
		t.Errorf("got category %s but want %s", got, fmterr.Input)
	}
	if !errors.Is(input, os.ErrNotExist) {
		t.Errorf("error %v does not wrap %v", input, os.ErrNotExist)
	}
	if strings.Contains(input.Error(), "internal compiler error") {
		t.Errorf("input error reported as a bug: %q", input.Error())
	}
	positioned := fmterr.AsInput(fmterr.Errorf(fset, src, "bad option"))
	if got := fmterr.CategoryOf(positioned); got != fmterr.Input {
		t.Errorf("got category %s but want %s", got, fmterr.Input)
	}
	if !strings.HasPrefix(positioned.Error(), "main.c:2:6: bad option") {
		t.Errorf("unexpected error %q", positioned.Error())
	}
	if fmterr.AsInput(nil) != nil {
		t.Errorf("nil error returned a non-nil error")
	}
}

func TestCategoryOfNil(t *testing.T) {
	if got := fmterr.CategoryOf(nil); got != fmterr.NoError {
		t.Errorf("got category %s but want %s", got, fmterr.NoError)
	}
	if got := fmterr.NoError.String(); got != "no error" {
		t.Errorf("got %q but want %q", got, "no error")
	}
}

func TestPrefixWith(t *testing.T) {
	fset, src := newFileSet()
	err := fmterr.PrefixWith("in %s: ", "main")(fmterr.Unimplementedf(fset, src, fmterr.WipGlobalVariable, "global"))
	if got := fmterr.CategoryOf(err); got != fmterr.Unimplemented {
		t.Errorf("got category %s but want %s", got, fmterr.Unimplemented)
	}
	if !strings.HasPrefix(err.Error(), "in main: main.c:2:6:") {
		t.Errorf("unexpected error %q", err.Error())
	}
}

func TestVerboseFormat(t *testing.T) {
	err := fmterr.Errorf(nil, nil, "bad")
	got := fmt.Sprintf("%+v", err)
	if !strings.HasPrefix(got, "bad [compilation error]") {
		t.Errorf("unexpected verbose error %q", got)
	}
	if !strings.Contains(got, "Error generated at:") {
		t.Errorf("verbose error %q has no stack trace", got)
	}
	if got := fmt.Sprintf("%v", err); got != "bad" {
		t.Errorf("got %q but want %q", got, "bad")
	}
}

func TestFileSetHelpers(t *testing.T) {
	fset, src := newFileSet()
	fs := fmterr.FileSet{FSet: fset}
	if got, want := fs.Pos(src).Errorf("x").Error(), "main.c:2:6: x"; got != want {
		t.Errorf("got %q but want %q", got, want)
	}
	err := fs.Pos(src).Unimplementedf(fmterr.WipPointerArithmetic, "pointer arithmetic")
	if id, _ := fmterr.TrackingID(err); id != fmterr.WipPointerArithmetic {
		t.Errorf("got tracking id %d but want %d", id, fmterr.WipPointerArithmetic)
	}
	if got := fmterr.CategoryOf(fs.Internalf(src, "x")); got != fmterr.Internal {
		t.Errorf("got category %s but want %s", got, fmterr.Internal)
	}
}
