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

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kevinawalsh/provdl/relation"
)

func drain[T any](bs Batches[T]) [][]relation.Element[T] {
	var out [][]relation.Element[T]
	for {
		b, ok := bs.NextBatch()
		if !ok {
			return out
		}
		var gen []relation.Element[T]
		for {
			e, ok := b.Next()
			if !ok {
				break
			}
			gen = append(gen, e)
		}
		out = append(out, gen)
	}
}

func TestOfGenerations(t *testing.T) {
	gens := []relation.Relation[bool]{evenRelation(2), evenRelation(3)}
	out := drain(OfGenerations(gens))
	require.Len(t, out, 2)
	require.Len(t, out[0], 2)
	require.Len(t, out[1], 3)
}

func TestOfSingleRelationSkipsEmpty(t *testing.T) {
	out := drain(OfSingleRelation(relation.Empty[bool]()))
	require.Empty(t, out)

	out = drain(OfSingleRelation(evenRelation(1)))
	require.Len(t, out, 1)
}

func TestChain(t *testing.T) {
	a := OfGenerations([]relation.Relation[bool]{evenRelation(1)})
	b := OfSingleRelation(evenRelation(2))
	out := drain(Chain[bool](a, b))
	require.Len(t, out, 2)
	require.Len(t, out[0], 1)
	require.Len(t, out[1], 2)
}

func TestMap(t *testing.T) {
	src := OfGenerations([]relation.Relation[bool]{evenRelation(2)})
	mapped := Map[bool, bool](src, func(b Batch[bool]) Batch[bool] {
		b.Step(1)
		return b
	})
	out := drain(mapped)
	require.Len(t, out, 1)
	require.Len(t, out[0], 1)
}

func TestJoinCrossesGenerations(t *testing.T) {
	left := OfGenerations([]relation.Relation[bool]{evenRelation(1), evenRelation(1)})
	rightFactory := func() Batches[bool] {
		return OfGenerations([]relation.Relation[bool]{evenRelation(1), evenRelation(1)})
	}
	var pairs int
	joined := Join[bool, bool, bool](left, rightFactory, func(b1, b2 Batch[bool]) Batch[bool] {
		pairs++
		return Empty[bool]()
	})
	drain(joined)
	require.Equal(t, 4, pairs) // 2 left generations x 2 right generations
}

func TestSingleton(t *testing.T) {
	out := drain(Singleton[bool](OfRelation(evenRelation(2))))
	require.Len(t, out, 1)
	require.Len(t, out[0], 2)
}

func TestOptional(t *testing.T) {
	present := OfGenerations([]relation.Relation[bool]{evenRelation(1)})
	require.Len(t, drain(Optional[bool](present, true)), 1)
	require.Empty(t, drain(Optional[bool](present, false)))
}
