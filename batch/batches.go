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

package batch

import "github.com/kevinawalsh/provdl/relation"

// Batches yields a sequence of Batch values, one per relation generation.
// A Variable's Stable field (several generations) and its Recent field (one
// generation) are both exposed as a Batches so dataflow operators can treat
// them uniformly.
type Batches[T any] interface {
	// NextBatch returns the next generation's Batch, or false when exhausted.
	NextBatch() (Batch[T], bool)
}

// sliceBatches walks a fixed slice of relation generations.
type sliceBatches[T any] struct {
	rels   []relation.Relation[T]
	cursor int
}

// OfGenerations exposes a slice of relation generations (e.g. a Variable's
// Stable field) as a Batches.
func OfGenerations[T any](rels []relation.Relation[T]) Batches[T] {
	return &sliceBatches[T]{rels: rels}
}

// OfSingleRelation exposes one relation (e.g. a Variable's Recent field) as
// a Batches with exactly one generation, skipping it entirely if empty.
func OfSingleRelation[T any](r relation.Relation[T]) Batches[T] {
	if r.IsEmpty() {
		return EmptyBatches[T]()
	}
	return &sliceBatches[T]{rels: []relation.Relation[T]{r}}
}

func (s *sliceBatches[T]) NextBatch() (Batch[T], bool) {
	if s.cursor >= len(s.rels) {
		return nil, false
	}
	r := s.rels[s.cursor]
	s.cursor++
	return OfRelation(r), true
}

// emptyBatches is the Batches with no generations.
type emptyBatches[T any] struct{}

// EmptyBatches returns a Batches with no generations (distinct from
// batch.Empty, which is a single empty Batch).
func EmptyBatches[T any]() Batches[T] { return emptyBatches[T]{} }

func (emptyBatches[T]) NextBatch() (Batch[T], bool) { return nil, false }
