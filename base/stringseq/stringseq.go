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

// Package stringseq builds strings from iterator sequences.
package stringseq

import (
	"fmt"
	"iter"
	"strings"
)

// Join concatenates the elements of a sequence, placing sep between them.
func Join(seq iter.Seq[string], sep string) string {
	var b strings.Builder
	first := true
	for item := range seq {
		if !first {
			b.WriteString(sep)
		}
		b.WriteString(item)
		first = false
	}
	return b.String()
}

// JoinStringer concatenates the string representations of the elements of a sequence.
func JoinStringer[T fmt.Stringer](seq iter.Seq[T], sep string) string {
	return Join(Map(seq, func(item T) string { return item.String() }), sep)
}

// Map returns a sequence of the strings computed by f from the elements of seq.
func Map[T any](seq iter.Seq[T], f func(T) string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for item := range seq {
			if !yield(f(item)) {
				return
			}
		}
	}
}
