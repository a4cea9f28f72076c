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

package stringseq_test

import (
	"slices"
	"strconv"
	"testing"

	"github.com/gsomix/Cesium/base/stringseq"
)

type number int

func (n number) String() string {
	return "#" + strconv.Itoa(int(n))
}

func TestJoin(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{got: stringseq.Join(slices.Values([]string{}), ", "), want: ""},
		{got: stringseq.Join(slices.Values([]string{"a"}), ", "), want: "a"},
		{got: stringseq.Join(slices.Values([]string{"a", "b", "c"}), ", "), want: "a, b, c"},
		{got: stringseq.JoinStringer(slices.Values([]number{1, 2}), " "), want: "#1 #2"},
		{got: stringseq.Join(stringseq.Map(slices.Values([]int{3, 4}), strconv.Itoa), "+"), want: "3+4"},
	}
	for i, test := range tests {
		if test.got != test.want {
			t.Errorf("test %d: got %q but want %q", i, test.got, test.want)
		}
	}
}
