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
	"sort"

	"github.com/kevinawalsh/provdl/batch"
	"github.com/kevinawalsh/provdl/relation"
)

// drain collects every element of a single generation's Batch. Generations
// are held entirely in memory already (they back onto a relation.Relation),
// so this does not change the asymptotics of the operators built on it.
func drain[C any](b batch.Batch[C]) []relation.Element[C] {
	var out []relation.Element[C]
	for {
		e, ok := b.Next()
		if !ok {
			return out
		}
		out = append(out, e)
	}
}

func sortByTuple[C any](els []relation.Element[C]) {
	sort.SliceStable(els, func(i, j int) bool {
		return els[i].Tup.Cmp(els[j].Tup) < 0
	})
}
