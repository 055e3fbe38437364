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

// Package dataflow implements the semi-naive operator algebra: each operator
// is split into what it contributes to a variable's stable partition
// (settled output, computed from operands' stable sides only) and what it
// contributes to recent (the new output attributable to this round, which
// must touch at least one recent operand so a round where nothing changed
// produces nothing new).
//
// Unlike the system this package is adapted from, tuples here are always
// runtime-typed (package tuple), not distinct Go types per arity/shape — so
// where that original needed one generic type parameter per operand's tuple
// shape, these operators take ordinary closures over *tuple.Tuple instead.
// The tag type C (one semiring instance's carrier) is still a type
// parameter, since every operator in one query shares exactly one.
package dataflow

import (
	"github.com/kevinawalsh/provdl/batch"
	"github.com/kevinawalsh/provdl/relation"
	"github.com/kevinawalsh/provdl/tuple"
	"github.com/kevinawalsh/provdl/variable"
)

// Dataflow is a reusable description of a computation over variables and
// ground facts: iterating it twice (once for stable, once for recent)
// yields each side of this round's semi-naive contribution.
type Dataflow[C any] interface {
	IterStable() batch.Batches[C]
	IterRecent() batch.Batches[C]
}

// FromVariable exposes a Variable's stable and recent partitions (not
// to_add) as a Dataflow: one
// stable batch per stable generation, one recent batch (or none, if recent
// is empty).
func FromVariable[C any](v *variable.Variable[C]) Dataflow[C] {
	return variableSource[C]{v}
}

type variableSource[C any] struct{ v *variable.Variable[C] }

func (s variableSource[C]) IterStable() batch.Batches[C] { return batch.OfGenerations(s.v.Stable) }
func (s variableSource[C]) IterRecent() batch.Batches[C] { return batch.OfSingleRelation(s.v.Recent) }

// FromRelation exposes a ground (fact-table) relation as a Dataflow. Ground
// facts never settle into a stable partition of their own — they are
// recomputed fresh each round as the sole contribution to recent, relying on
// the consuming variable's own stable-dedup to make repeat derivations a
// no-op.
func FromRelation[C any](r relation.Relation[C]) Dataflow[C] {
	return groundSource[C]{r}
}

type groundSource[C any] struct{ rel relation.Relation[C] }

func (s groundSource[C]) IterStable() batch.Batches[C] { return batch.EmptyBatches[C]() }
func (s groundSource[C]) IterRecent() batch.Batches[C] { return batch.OfSingleRelation(s.rel) }

// keyOf and restOf split a tuple into its leading key component and the
// remaining components, the convention Join, Find and ContainsChain use to
// treat "first component" as a (possibly composite, via tuple.Value's own
// Tuple kind) join key.
func keyOf(t *tuple.Tuple) *tuple.Value { return &t.Elems[0] }

func restOf(t *tuple.Tuple) []tuple.Value {
	if len(t.Elems) <= 1 {
		return nil
	}
	return t.Elems[1:]
}

func concatTuple(key tuple.Value, rest ...[]tuple.Value) *tuple.Tuple {
	elems := make([]tuple.Value, 0, 1+sumLens(rest))
	elems = append(elems, key)
	for _, r := range rest {
		elems = append(elems, r...)
	}
	return &tuple.Tuple{Elems: elems}
}

func sumLens(rest [][]tuple.Value) int {
	n := 0
	for _, r := range rest {
		n += len(r)
	}
	return n
}

// tupleConcat appends b's components after a's, used by Product where there
// is no join key to keep separate.
func tupleConcat(a, b *tuple.Tuple) *tuple.Tuple {
	elems := make([]tuple.Value, 0, len(a.Elems)+len(b.Elems))
	elems = append(elems, a.Elems...)
	elems = append(elems, b.Elems...)
	return &tuple.Tuple{Elems: elems}
}
