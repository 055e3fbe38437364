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

// UnaryOp transforms one generation of a source into one generation of
// output, e.g. a per-batch Projection or Filter.
type UnaryOp[T1, T2 any] func(Batch[T1]) Batch[T2]

type mapBatches[T1, T2 any] struct {
	source Batches[T1]
	op     UnaryOp[T1, T2]
}

// Map applies op to every generation of source, lazily.
func Map[T1, T2 any](source Batches[T1], op UnaryOp[T1, T2]) Batches[T2] {
	return &mapBatches[T1, T2]{source: source, op: op}
}

func (m *mapBatches[T1, T2]) NextBatch() (Batch[T2], bool) {
	b, ok := m.source.NextBatch()
	if !ok {
		return nil, false
	}
	return m.op(b), true
}
