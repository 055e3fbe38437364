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

// Package batch provides the pull-iterator abstraction dataflow operators
// consume: a Batch walks one contiguous generation of a relation, a Batches
// walks a sequence of generations. Keeping a generation opaque behind this
// interface (rather than flattening everything into one slice up front) is
// what lets Intersection and Find gallop past non-matching elements of a
// generation (SearchAhead) instead of visiting every one.
package batch

import "github.com/kevinawalsh/provdl/tuple"
import "github.com/kevinawalsh/provdl/relation"

// Batch walks the elements of a single relation generation in tuple order.
type Batch[T any] interface {
	// Next returns the next element, or false when exhausted.
	Next() (relation.Element[T], bool)

	// Step skips the next n elements.
	Step(n int)

	// SearchAhead advances past every element for which pred reports true,
	// returning the first element for which it reports false (or false if
	// the batch is exhausted first). Implementations are free to use a
	// galloping search; callers only rely on pred being monotonic (once
	// false, stays false) over the batch's ascending tuple order.
	SearchAhead(pred func(*tuple.Tuple) bool) (relation.Element[T], bool)
}

// relationBatch is a cursor over a relation.Relation's backing slice.
type relationBatch[T any] struct {
	rel    relation.Relation[T]
	cursor int
}

// OfRelation wraps r as a Batch, starting at its first element.
func OfRelation[T any](r relation.Relation[T]) Batch[T] {
	return &relationBatch[T]{rel: r}
}

func (b *relationBatch[T]) Next() (relation.Element[T], bool) {
	if b.cursor >= b.rel.Len() {
		var zero relation.Element[T]
		return zero, false
	}
	e := b.rel.Elements[b.cursor]
	b.cursor++
	return e, true
}

func (b *relationBatch[T]) Step(n int) {
	b.cursor += n
	if b.cursor > b.rel.Len() {
		b.cursor = b.rel.Len()
	}
}

func (b *relationBatch[T]) SearchAhead(pred func(*tuple.Tuple) bool) (relation.Element[T], bool) {
	n := b.rel.Len()
	if b.cursor >= n || !pred(b.rel.Elements[b.cursor].Tup) {
		return b.Next()
	}
	// Exponential probe for the first index where pred turns false, then
	// binary search the final window. Mirrors variable.gallop's shape but
	// is keyed on an arbitrary predicate rather than tuple equality, since
	// here the caller (e.g. Join) is searching for "first tuple >= key".
	stride := 1
	curr := b.cursor
	for curr+stride < n && pred(b.rel.Elements[curr+stride].Tup) {
		curr += stride
		stride <<= 1
	}
	lo, hi := curr, curr+stride
	if hi > n {
		hi = n
	}
	for lo < hi {
		mid := (lo + hi) / 2
		if pred(b.rel.Elements[mid].Tup) {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	b.cursor = lo
	return b.Next()
}

// emptyBatch is the Batch with no elements.
type emptyBatch[T any] struct{}

// Empty returns a Batch with no elements.
func Empty[T any]() Batch[T] { return emptyBatch[T]{} }

func (emptyBatch[T]) Next() (relation.Element[T], bool) {
	var zero relation.Element[T]
	return zero, false
}
func (emptyBatch[T]) Step(int) {}
func (b emptyBatch[T]) SearchAhead(func(*tuple.Tuple) bool) (relation.Element[T], bool) {
	return b.Next()
}
