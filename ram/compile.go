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

package ram

import (
	"fmt"

	"github.com/kevinawalsh/provdl/dataflow"
	"github.com/kevinawalsh/provdl/tuple"
)

// Lookup resolves a RAM variable name to the Dataflow backing it — either a
// Variable (via dataflow.FromVariable) or a ground fact table (via
// dataflow.FromRelation), whichever the caller has registered under that
// name.
type Lookup[C any] func(name string) (dataflow.Dataflow[C], error)

// Compile lowers a Flow into a Dataflow, recursively compiling its
// sub-flows and translating Project/Filter's Expr into the closures
// dataflow.Project/dataflow.Filter expect. mul is the semiring's ⊗,
// threaded into every operator that combines two tags.
func Compile[C any](f *Flow, lookup Lookup[C], mul func(a, b C) C) (dataflow.Dataflow[C], error) {
	switch f.Kind {
	case FlowVariable:
		return lookup(f.VarName)

	case FlowProject:
		src, err := Compile(f.Source, lookup, mul)
		if err != nil {
			return nil, err
		}
		arg := f.Arg
		return dataflow.Project[C](src, func(t *tuple.Tuple) *tuple.Tuple {
			return Eval(&arg, tuple.TupleOf(t.Elems...)).Tuple()
		}), nil

	case FlowFilter:
		src, err := Compile(f.Source, lookup, mul)
		if err != nil {
			return nil, err
		}
		arg := f.Arg
		return dataflow.Filter[C](src, func(t *tuple.Tuple) bool {
			return Eval(&arg, tuple.TupleOf(t.Elems...)).IsTrue()
		}), nil

	case FlowFind:
		src, err := Compile(f.Source, lookup, mul)
		if err != nil {
			return nil, err
		}
		return dataflow.Find[C](src, f.Const), nil

	case FlowProduct:
		a, err := Compile(f.Source, lookup, mul)
		if err != nil {
			return nil, err
		}
		b, err := Compile(f.Other, lookup, mul)
		if err != nil {
			return nil, err
		}
		return dataflow.Product[C](a, b, mul), nil

	case FlowIntersect:
		a, err := Compile(f.Source, lookup, mul)
		if err != nil {
			return nil, err
		}
		b, err := Compile(f.Other, lookup, mul)
		if err != nil {
			return nil, err
		}
		return dataflow.Intersection[C](a, b, mul), nil

	case FlowJoin:
		a, err := Compile(f.Source, lookup, mul)
		if err != nil {
			return nil, err
		}
		b, err := Compile(f.Other, lookup, mul)
		if err != nil {
			return nil, err
		}
		return dataflow.Join[C](a, b, mul), nil

	case FlowContainsChain:
		source, err := Compile(f.Source, lookup, mul)
		if err != nil {
			return nil, err
		}
		feed, err := Compile(f.Other, lookup, mul)
		if err != nil {
			return nil, err
		}
		key := tuple.TupleOf(f.KeyConsts...)
		return dataflow.ContainsChain[C](source, key, feed, mul), nil

	default:
		return nil, fmt.Errorf("ram: invalid Flow kind %d", f.Kind)
	}
}
