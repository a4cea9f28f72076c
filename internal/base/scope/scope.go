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

// Package scope provides nested lexical scopes mapping names to values.
package scope

import (
	"fmt"
	"strings"

	"github.com/gsomix/Cesium/base/ordered"
)

// Scope stores values defined in a block.
// A value is found by querying the scope and, if not found,
// its parents recursively.
type Scope[V any] struct {
	parent *Scope[V]
	local  *ordered.Map[string, V]
}

// New returns a new scope given a parent, which can be nil.
func New[V any](parent *Scope[V]) *Scope[V] {
	return &Scope[V]{
		parent: parent,
		local:  ordered.NewMap[string, V](),
	}
}

// Parent returns the enclosing scope or nil for a root scope.
func (s *Scope[V]) Parent() *Scope[V] {
	return s.parent
}

// Define maps a name to a value in the scope.
// Returns false, and leaves the scope unchanged, if the name is already
// defined in this scope. Names defined by parents can be shadowed.
func (s *Scope[V]) Define(name string, v V) bool {
	if _, exists := s.local.Load(name); exists {
		return false
	}
	s.local.Store(name, v)
	return true
}

// FindLocal returns the value of a name defined in this scope only.
func (s *Scope[V]) FindLocal(name string) (V, bool) {
	return s.local.Load(name)
}

// Find returns the value of a name defined in this scope or its parents.
func (s *Scope[V]) Find(name string) (v V, ok bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if v, ok = cur.local.Load(name); ok {
			return
		}
	}
	return
}

// String representation of the scope, innermost block first.
func (s *Scope[V]) String() string {
	var blocks []string
	for cur := s; cur != nil; cur = cur.parent {
		var names []string
		for name, v := range cur.local.All() {
			names = append(names, fmt.Sprintf("%s: %v", name, v))
		}
		blocks = append(blocks, "{"+strings.Join(names, ", ")+"}")
	}
	return strings.Join(blocks, " -> ")
}
