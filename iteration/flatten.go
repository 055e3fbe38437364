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

package iteration

import (
	"github.com/kevinawalsh/provdl/batch"
	"github.com/kevinawalsh/provdl/relation"
)

// flatten drains every batch of every generation bs yields into one
// de-duplicated Relation, the form Variable.InsertToAdd expects. A dynamic
// update's freshly compiled Dataflow is a one-shot producer (constructed
// and exhausted within a single round, per §5's re-entrancy discipline),
// so there is no reason to keep it lazy past this point.
func flatten[T any](bs batch.Batches[T], combine relation.Combine[T]) relation.Relation[T] {
	var els []relation.Element[T]
	for {
		b, ok := bs.NextBatch()
		if !ok {
			break
		}
		for {
			e, ok := b.Next()
			if !ok {
				break
			}
			els = append(els, e)
		}
	}
	if len(els) == 0 {
		return relation.Empty[T]()
	}
	return relation.FromVec(els, combine)
}
