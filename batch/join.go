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

// PairOp combines one generation of a left source with one generation of a
// right source into one generation of output, e.g. a hash- or merge-join
// between two batches.
type PairOp[T1, T2, TOut any] func(b1 Batch[T1], b2 Batch[T2]) Batch[TOut]

// joinBatches pairs every generation of b1 with every generation of b2 (a
// full cross product of generations), applying op to each pair. This is how
// the stable×stable and stable×recent contributions of a two-input operator
// are assembled: neither side's relation is flattened, so each pair still
// benefits from per-generation galloping search inside op.
type joinBatches[T1, T2, TOut any] struct {
	b1       Batches[T1]
	b1Curr   Batch[T1]
	b1Ok     bool
	b2       Batches[T2]
	b2Source func() Batches[T2]
	op       PairOp[T1, T2, TOut]
}

// Join returns a Batches over every (generation of b1) x (generation of b2)
// pair, transformed by op. b2Source must produce a fresh Batches each call,
// since the right side is re-walked once per generation of b1.
func Join[T1, T2, TOut any](b1 Batches[T1], b2Source func() Batches[T2], op PairOp[T1, T2, TOut]) Batches[TOut] {
	j := &joinBatches[T1, T2, TOut]{b1: b1, b2Source: b2Source, op: op}
	j.b1Curr, j.b1Ok = b1.NextBatch()
	j.b2 = b2Source()
	return j
}

func (j *joinBatches[T1, T2, TOut]) NextBatch() (Batch[TOut], bool) {
	for {
		if !j.b1Ok {
			return nil, false
		}
		b2Curr, ok := j.b2.NextBatch()
		if !ok {
			j.b1Curr, j.b1Ok = j.b1.NextBatch()
			j.b2 = j.b2Source()
			continue
		}
		return j.op(j.b1Curr, b2Curr), true
	}
}
