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

// Find selects the contiguous run of src's elements whose first tuple
// component equals key, galloping past everything smaller and stopping at
// the first element greater than key.
func Find[C any](src Dataflow[C], key tuple.Value) Dataflow[C] {
	return findFlow[C]{src, key}
}

type findFlow[C any] struct {
	src Dataflow[C]
	key tuple.Value
}

func (f findFlow[C]) IterStable() batch.Batches[C] {
	return batch.Map[C, C](f.src.IterStable(), f.mapBatch)
}

func (f findFlow[C]) IterRecent() batch.Batches[C] {
	return batch.Map[C, C](f.src.IterRecent(), f.mapBatch)
}

func (f findFlow[C]) mapBatch(b batch.Batch[C]) batch.Batch[C] {
	return &findBatch[C]{inner: b, key: f.key}
}

type findBatch[C any] struct {
	inner   batch.Batch[C]
	key     tuple.Value
	started bool
	done    bool
	pending *relation.Element[C]
}

func (fb *findBatch[C]) ensureStarted() {
	if fb.started {
		return
	}
	fb.started = true
	e, ok := fb.inner.SearchAhead(func(t *tuple.Tuple) bool { return t.Elems[0].Cmp(fb.key) < 0 })
	if !ok || e.Tup.Elems[0].Cmp(fb.key) != 0 {
		fb.done = true
		return
	}
	fb.pending = &e
}

func (fb *findBatch[C]) Next() (relation.Element[C], bool) {
	fb.ensureStarted()
	if fb.done || fb.pending == nil {
		var zero relation.Element[C]
		return zero, false
	}
	out := *fb.pending
	e, ok := fb.inner.Next()
	if !ok || e.Tup.Elems[0].Cmp(fb.key) != 0 {
		fb.done = true
		fb.pending = nil
	} else {
		fb.pending = &e
	}
	return out, true
}

func (fb *findBatch[C]) Step(n int) {
	for i := 0; i < n; i++ {
		if _, ok := fb.Next(); !ok {
			return
		}
	}
}

func (fb *findBatch[C]) SearchAhead(func(*tuple.Tuple) bool) (relation.Element[C], bool) {
	return fb.Next()
}
