// Copyright (c) 2014, Kevin Walsh.  All rights reserved.
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

// Package relation implements the sorted, de-duplicated vector of tagged
// tuples that every dataflow operator reads from and writes into.
package relation

import "github.com/kevinawalsh/provdl/tuple"

// Element is a tuple paired with a provenance tag. Order on Element ignores
// the tag: two elements comparing equal must have their tags combined by
// the owning semiring's Add before the relation becomes observable.
type Element[T any] struct {
	Tup *tuple.Tuple
	Tag T
}

func (e Element[T]) cmpTup(other Element[T]) int {
	return e.Tup.Cmp(other.Tup)
}
