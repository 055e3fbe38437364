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

// Intersection assumes both a and b are sorted by full tuple (true of any
// generation, since every generation backs onto a relation.Relation); it
// advances both sides with a two-pointer scan, galloping the lagging side
// past non-matching tuples, and emits ⊗-combined tags on equal tuples.
func Intersection[C any](a, b Dataflow[C], mul func(a, b C) C) Dataflow[C] {
	pairOp := func(b1, b2 batch.Batch[C]) batch.Batch[C] {
		var out []relation.Element[C]
		e1, ok1 := b1.Next()
		e2, ok2 := b2.Next()
		for ok1 && ok2 {
			c := e1.Tup.Cmp(e2.Tup)
			switch {
			case c < 0:
				target := e2.Tup
				e1, ok1 = b1.SearchAhead(func(t *tuple.Tuple) bool { return t.Cmp(target) < 0 })
			case c > 0:
				target := e1.Tup
				e2, ok2 = b2.SearchAhead(func(t *tuple.Tuple) bool { return t.Cmp(target) < 0 })
			default:
				out = append(out, relation.Element[C]{Tup: e1.Tup, Tag: mul(e1.Tag, e2.Tag)})
				e1, ok1 = b1.Next()
				e2, ok2 = b2.Next()
			}
		}
		return batch.OfRelation(relation.FromVecUnchecked(out))
	}
	return combine[C](a, b, pairOp)
}
