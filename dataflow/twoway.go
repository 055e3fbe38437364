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

import "github.com/kevinawalsh/provdl/batch"

// combine builds the standard two-input semi-naive split shared by Product,
// Intersection and Join: stable is the cross of both operands' stable
// sides; recent is the union of the three cross terms that touch at least
// one recent side (recent×stable, stable×recent, recent×recent). pairOp
// does the actual per-generation-pair combination (cartesian, sorted
// intersect, or keyed join).
func combine[C any](a, b Dataflow[C], pairOp batch.PairOp[C, C, C]) Dataflow[C] {
	return twoWayFlow[C]{a, b, pairOp}
}

type twoWayFlow[C any] struct {
	a, b   Dataflow[C]
	pairOp batch.PairOp[C, C, C]
}

func (t twoWayFlow[C]) IterStable() batch.Batches[C] {
	return batch.Join[C, C, C](t.a.IterStable(), t.b.IterStable, t.pairOp)
}

func (t twoWayFlow[C]) IterRecent() batch.Batches[C] {
	recentStable := batch.Join[C, C, C](t.a.IterRecent(), t.b.IterStable, t.pairOp)
	stableRecent := batch.Join[C, C, C](t.a.IterStable(), t.b.IterRecent, t.pairOp)
	recentRecent := batch.Join[C, C, C](t.a.IterRecent(), t.b.IterRecent, t.pairOp)
	return batch.Chain3[C](recentStable, stableRecent, recentRecent)
}
