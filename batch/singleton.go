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

// singletonBatches yields at most one Batch, then is exhausted.
type singletonBatches[T any] struct {
	b  Batch[T]
	ok bool
}

// Singleton wraps a single Batch as a Batches with exactly one generation.
func Singleton[T any](b Batch[T]) Batches[T] {
	return &singletonBatches[T]{b: b, ok: true}
}

func (s *singletonBatches[T]) NextBatch() (Batch[T], bool) {
	if !s.ok {
		return nil, false
	}
	s.ok = false
	return s.b, true
}
