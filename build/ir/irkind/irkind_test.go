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

package irkind_test

import (
	"strings"
	"testing"

	"github.com/gsomix/Cesium/build/ir/irkind"
)

func TestKindFromSpecifiers(t *testing.T) {
	tests := []struct {
		specs string
		want  irkind.Kind
	}{
		{specs: "char", want: irkind.Char},
		{specs: "signed char", want: irkind.SChar},
		{specs: "char unsigned", want: irkind.UChar},
		{specs: "short int", want: irkind.Short},
		{specs: "unsigned short", want: irkind.UShort},
		{specs: "int", want: irkind.Int},
		{specs: "signed", want: irkind.Int},
		{specs: "unsigned int", want: irkind.UInt},
		{specs: "long", want: irkind.Long},
		{specs: "long unsigned int", want: irkind.ULong},
		{specs: "long long", want: irkind.LongLong},
		{specs: "unsigned long long", want: irkind.ULongLong},
		{specs: "float", want: irkind.Float},
		{specs: "double", want: irkind.Double},
		{specs: "_Bool", want: irkind.Bool},
		{specs: "void", want: irkind.Void},
		{specs: "", want: irkind.Invalid},
		{specs: "int int", want: irkind.Invalid},
		{specs: "long long long", want: irkind.Invalid},
		{specs: "unsigned float", want: irkind.Invalid},
		{specs: "char short", want: irkind.Invalid},
		{specs: "struct", want: irkind.Invalid},
	}
	for _, test := range tests {
		if got := irkind.KindFromSpecifiers(strings.Fields(test.specs)); got != test.want {
			t.Errorf("KindFromSpecifiers(%q) = %s but want %s", test.specs, got, test.want)
		}
	}
}

func TestSizeAndRank(t *testing.T) {
	tests := []struct {
		kind irkind.Kind
		size int
		rank int
	}{
		{kind: irkind.Bool, size: 1, rank: 1},
		{kind: irkind.Char, size: 1, rank: 2},
		{kind: irkind.UShort, size: 2, rank: 3},
		{kind: irkind.Int, size: 4, rank: 4},
		{kind: irkind.ULong, size: 8, rank: 5},
		{kind: irkind.LongLong, size: 8, rank: 6},
		{kind: irkind.Double, size: 8, rank: 0},
		{kind: irkind.Pointer, size: irkind.PointerSize, rank: 0},
		{kind: irkind.Void, size: 0, rank: 0},
	}
	for _, test := range tests {
		if got := test.kind.Size(); got != test.size {
			t.Errorf("%s: got size %d but want %d", test.kind, got, test.size)
		}
		if got := test.kind.Rank(); got != test.rank {
			t.Errorf("%s: got rank %d but want %d", test.kind, got, test.rank)
		}
	}
}

func TestCharIsUnsigned(t *testing.T) {
	if !irkind.IsUnsignedKind(irkind.Char) {
		t.Errorf("plain char is signed")
	}
	if irkind.IsUnsignedKind(irkind.SChar) {
		t.Errorf("signed char is unsigned")
	}
	if got := irkind.Promote(irkind.Char); got != irkind.Int {
		t.Errorf("Promote(char) = %s but want int", got)
	}
}
