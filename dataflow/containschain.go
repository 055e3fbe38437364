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

package dataflow

import (
	"github.com/kevinawalsh/provdl/batch"
	"github.com/kevinawalsh/provdl/relation"
	"github.com/kevinawalsh/provdl/tuple"
)

// ContainsChain is the RAM lowering of "the fact source(key) occurs in the
// body": it looks up key in source, and if found multiplies (⊗, via mul)
// the tag it carries into every element of feed. The split below ensures
// each cross pair contributes exactly once: a round only re-derives feed's
// already-stable elements if source's matching fact became available this
// round (tag found in recent, not merely stable).
func ContainsChain[C any](source Dataflow[C], key tuple.Value, feed Dataflow[C], mul func(a, b C) C) Dataflow[C] {
	return containsChain[C]{source, key, feed, mul}
}

type containsChain[C any] struct {
	source Dataflow[C]
	key    tuple.Value
	feed   Dataflow[C]
	mul    func(a, b C) C
}

func (c containsChain[C]) IterStable() batch.Batches[C] {
	tag, found := lookupKey(c.source.IterStable(), c.key)
	if !found {
		return batch.EmptyBatches[C]()
	}
	return batch.Map[C, C](c.feed.IterStable(), scaleBatch(c.mul, tag))
}

func (c containsChain[C]) IterRecent() batch.Batches[C] {
	if tag, found := lookupKey(c.source.IterRecent(), c.key); found {
		both := batch.Chain[C](c.feed.IterStable(), c.feed.IterRecent())
		return batch.Map[C, C](both, scaleBatch(c.mul, tag))
	}
	if tag, found := lookupKey(c.source.IterStable(), c.key); found {
		return batch.Map[C, C](c.feed.IterRecent(), scaleBatch(c.mul, tag))
	}
	return batch.EmptyBatches[C]()
}

// lookupKey scans every generation of bs for the (at most one, by
// construction) element whose first tuple component equals key, returning
// its tag.
func lookupKey[C any](bs batch.Batches[C], key tuple.Value) (C, bool) {
	for {
		b, ok := bs.NextBatch()
		if !ok {
			var zero C
			return zero, false
		}
		for {
			e, ok := b.Next()
			if !ok {
				break
			}
			if e.Tup.Elems[0].Cmp(key) == 0 {
				return e.Tag, true
			}
		}
	}
}

func scaleBatch[C any](mul func(a, b C) C, tag C) batch.UnaryOp[C, C] {
	return func(b batch.Batch[C]) batch.Batch[C] {
		return &scaledBatch[C]{inner: b, mul: mul, tag: tag}
	}
}

type scaledBatch[C any] struct {
	inner batch.Batch[C]
	mul   func(a, b C) C
	tag   C
}

func (s *scaledBatch[C]) Next() (relation.Element[C], bool) {
	e, ok := s.inner.Next()
	if !ok {
		return e, false
	}
	e.Tag = s.mul(e.Tag, s.tag)
	return e, true
}

func (s *scaledBatch[C]) Step(n int) { s.inner.Step(n) }

func (s *scaledBatch[C]) SearchAhead(func(*tuple.Tuple) bool) (relation.Element[C], bool) {
	return s.Next()
}
