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

package wmc

import (
	"golang.org/x/sync/errgroup"

	"github.com/kevinawalsh/provdl/relation"
	"github.com/kevinawalsh/provdl/semiring"
	"github.com/kevinawalsh/provdl/tuple"
)

// Evaluated pairs one relation element's tuple with its WMC scalar.
type Evaluated[T any] struct {
	Tup   *tuple.Tuple
	Value T
}

// EvaluateAll maps Evaluate over every element of a completed relation,
// bounded to workers concurrent SDD compilations (workers <= 0 means
// unbounded). Each call only reads the shared, immutable-after-quiescence
// fact table through assign, so no coordination is needed between workers.
func EvaluateAll[P ProofSet, T any](
	rel relation.Relation[P],
	assign func(semiring.FactID) T,
	ns NumericSemiring[T],
	workers int,
	opts ...Option,
) ([]Evaluated[T], error) {
	elements := rel.Elements
	out := make([]Evaluated[T], len(elements))

	var g errgroup.Group
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, el := range elements {
		i, el := i, el
		g.Go(func() error {
			out[i] = Evaluated[T]{Tup: el.Tup, Value: Evaluate[T](el.Tag, assign, ns, opts...)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
