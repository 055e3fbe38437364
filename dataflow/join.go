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
)

// Join assumes both a and b are keyed on their first tuple component (a
// generation's natural tuple order already sorts by that component first).
// On key equality it emits the Cartesian product of the contiguous runs
// sharing that key, tags ⊗-combined, output tuple = key ++ a's rest ++ b's
// rest; both iterators step past the whole run together so no pair is
// produced twice.
func Join[C any](a, b Dataflow[C], mul func(a, b C) C) Dataflow[C] {
	pairOp := func(b1, b2 batch.Batch[C]) batch.Batch[C] {
		left := drain(b1)
		right := drain(b2)
		var out []relation.Element[C]
		i, j := 0, 0
		for i < len(left) && j < len(right) {
			c := keyOf(left[i].Tup).Cmp(*keyOf(right[j].Tup))
			switch {
			case c < 0:
				i++
			case c > 0:
				j++
			default:
				key := *keyOf(left[i].Tup)
				iEnd := i
				for iEnd < len(left) && keyOf(left[iEnd].Tup).Cmp(key) == 0 {
					iEnd++
				}
				jEnd := j
				for jEnd < len(right) && keyOf(right[jEnd].Tup).Cmp(key) == 0 {
					jEnd++
				}
				for li := i; li < iEnd; li++ {
					for rj := j; rj < jEnd; rj++ {
						out = append(out, relation.Element[C]{
							Tup: concatTuple(key, restOf(left[li].Tup), restOf(right[rj].Tup)),
							Tag: mul(left[li].Tag, right[rj].Tag),
						})
					}
				}
				i, j = iEnd, jEnd
			}
		}
		sortByTuple(out)
		return batch.OfRelation(relation.FromVecUnchecked(out))
	}
	return combine[C](a, b, pairOp)
}
