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

// PredFunc reports whether a tuple satisfies some condition.
type PredFunc func(*tuple.Tuple) bool

// Filter keeps only the elements of src whose tuple satisfies pred.
func Filter[C any](src Dataflow[C], pred PredFunc) Dataflow[C] {
	return filterFlow[C]{src, pred}
}

type filterFlow[C any] struct {
	src  Dataflow[C]
	pred PredFunc
}

func (f filterFlow[C]) IterStable() batch.Batches[C] {
	return batch.Map[C, C](f.src.IterStable(), f.mapBatch)
}

func (f filterFlow[C]) IterRecent() batch.Batches[C] {
	return batch.Map[C, C](f.src.IterRecent(), f.mapBatch)
}

func (f filterFlow[C]) mapBatch(b batch.Batch[C]) batch.Batch[C] {
	return &filteredBatch[C]{inner: b, pred: f.pred}
}

type filteredBatch[C any] struct {
	inner batch.Batch[C]
	pred  PredFunc
}

func (fb *filteredBatch[C]) Next() (relation.Element[C], bool) {
	for {
		e, ok := fb.inner.Next()
		if !ok {
			return e, false
		}
		if fb.pred(e.Tup) {
			return e, true
		}
	}
}

func (fb *filteredBatch[C]) Step(n int) {
	for i := 0; i < n; i++ {
		if _, ok := fb.Next(); !ok {
			return
		}
	}
}

func (fb *filteredBatch[C]) SearchAhead(func(*tuple.Tuple) bool) (relation.Element[C], bool) {
	return fb.Next()
}
