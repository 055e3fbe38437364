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

// Product Cartesian-combines every element of a with every element of b,
// concatenating their tuples and multiplying (⊗, via mul) their tags.
func Product[C any](a, b Dataflow[C], mul func(a, b C) C) Dataflow[C] {
	pairOp := func(b1, b2 batch.Batch[C]) batch.Batch[C] {
		left := drain(b1)
		right := drain(b2)
		out := make([]relation.Element[C], 0, len(left)*len(right))
		for _, l := range left {
			for _, r := range right {
				out = append(out, relation.Element[C]{
					Tup: tupleConcat(l.Tup, r.Tup),
					Tag: mul(l.Tag, r.Tag),
				})
			}
		}
		sortByTuple(out)
		return batch.OfRelation(relation.FromVecUnchecked(out))
	}
	return combine[C](a, b, pairOp)
}
