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

// chainBatches drains b1's generations before falling through to b2's, e.g.
// combining a variable's several stable generations with its one recent
// generation into a single Batches a dataflow operator can range over.
type chainBatches[T any] struct {
	b1, b2  Batches[T]
	useB1   bool
}

// Chain returns a Batches that yields every generation of b1 followed by
// every generation of b2.
func Chain[T any](b1, b2 Batches[T]) Batches[T] {
	return &chainBatches[T]{b1: b1, b2: b2, useB1: true}
}

// Chain3 chains three Batches in order.
func Chain3[T any](b1, b2, b3 Batches[T]) Batches[T] {
	return Chain(Chain(b1, b2), b3)
}

func (c *chainBatches[T]) NextBatch() (Batch[T], bool) {
	if c.useB1 {
		if b, ok := c.b1.NextBatch(); ok {
			return b, true
		}
		c.useB1 = false
	}
	return c.b2.NextBatch()
}
