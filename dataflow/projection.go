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

// MapFunc transforms one tuple into another, leaving the tag untouched.
type MapFunc func(*tuple.Tuple) *tuple.Tuple

// Project maps fn over every element of src's tuples, in both stable and
// recent; the tag passes through unchanged.
func Project[C any](src Dataflow[C], fn MapFunc) Dataflow[C] {
	return projection[C]{src, fn}
}

type projection[C any] struct {
	src Dataflow[C]
	fn  MapFunc
}

func (p projection[C]) IterStable() batch.Batches[C] {
	return batch.Map[C, C](p.src.IterStable(), p.mapBatch)
}

func (p projection[C]) IterRecent() batch.Batches[C] {
	return batch.Map[C, C](p.src.IterRecent(), p.mapBatch)
}

func (p projection[C]) mapBatch(b batch.Batch[C]) batch.Batch[C] {
	return &mappedBatch[C]{inner: b, fn: p.fn}
}

// mappedBatch forwards Next, transforming the tuple; per the original
// system's own default Batch behavior, SearchAhead on a derived (non-leaf)
// batch does not attempt its own skip logic and just calls Next — only
// relation-backed leaf batches gallop.
type mappedBatch[C any] struct {
	inner batch.Batch[C]
	fn    MapFunc
}

func (m *mappedBatch[C]) Next() (relation.Element[C], bool) {
	e, ok := m.inner.Next()
	if !ok {
		return e, false
	}
	e.Tup = m.fn(e.Tup)
	return e, true
}

func (m *mappedBatch[C]) Step(n int) { m.inner.Step(n) }

func (m *mappedBatch[C]) SearchAhead(func(*tuple.Tuple) bool) (relation.Element[C], bool) {
	return m.Next()
}
