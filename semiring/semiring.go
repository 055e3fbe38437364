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

// Package semiring supplies the provenance tag algebra every dataflow
// operator threads through its elements: zero, one, ⊕ (add), ⊗ (mult), and
// validity, parameterized by a process-scoped Context.
package semiring

// Semiring is the tag algebra for one provenance instance. T is the tag
// type, C is the semiring's context type.
//
// Contracts required of every instance: Add is associative, commutative,
// and Zero-absorbing. Mult is associative, Zero-annihilating, One-identity,
// and distributes over Add. Add must additionally be idempotent: merging an
// element with itself (same tuple, same tag, arriving twice) must be a
// no-op, since Relation.Merge relies on Add to fold duplicate tuples and
// never special-cases an exact repeat (see DESIGN.md, Open Question on
// tag-bag vs tag-set semantics).
type Semiring[C any, T any] interface {
	Zero(ctx C) T
	One(ctx C) T
	Add(ctx C, a, b T) T
	Mult(ctx C, a, b T) T
	IsValid(ctx C, t T) bool
}

// Difference is implemented only by semiring instances that support
// antijoin/negation (§9 Open Question: whether this is sound for the
// probabilistic instances is unresolved, so none of them implement it).
type Difference[C any, T any] interface {
	Semiring[C, T]
	Minus(ctx C, a, b T) T
}
