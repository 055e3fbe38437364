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
	"github.com/kevinawalsh/provdl/semiring"
	"github.com/kevinawalsh/provdl/wmc/sdd"
)

// NumericSemiring is the algebra Evaluate runs the compiled SDD over.
type NumericSemiring[T any] = sdd.NumericSemiring[T]

// Float64Semiring is plain probability: a fact's value is its assigned
// probability, negation is the complement.
type Float64Semiring struct{}

func (Float64Semiring) Zero() float64         { return 0 }
func (Float64Semiring) One() float64          { return 1 }
func (Float64Semiring) Add(a, b float64) float64 { return a + b }
func (Float64Semiring) Mul(a, b float64) float64 { return a * b }
func (Float64Semiring) Negate(a float64) float64 { return 1 - a }

// DualSemiring is the differentiable analogue: a fact's value is a dual
// number (probability, gradient), and WMC propagates both components
// through + and x.
type DualSemiring struct{}

func (DualSemiring) Zero() semiring.DualNumber { return semiring.NewDualConstant(0) }
func (DualSemiring) One() semiring.DualNumber  { return semiring.NewDualConstant(1) }
func (DualSemiring) Add(a, b semiring.DualNumber) semiring.DualNumber { return a.Add(b) }
func (DualSemiring) Mul(a, b semiring.DualNumber) semiring.DualNumber { return a.Mul(b) }
func (DualSemiring) Negate(a semiring.DualNumber) semiring.DualNumber {
	return semiring.NewDualConstant(1).Sub(a)
}

// Options configures the SDD compilation backing one Evaluate call.
type Options struct {
	ApplyCacheSize int
}

type Option func(*Options)

// WithApplyCacheSize bounds the SDD apply memo table; the zero value falls
// back to sdd.DefaultConfig's default.
func WithApplyCacheSize(n int) Option {
	return func(o *Options) { o.ApplyCacheSize = n }
}

// Evaluate reduces one tag's proof set to a scalar: build its formula,
// compile it to an SDD over a balanced v-tree, then walk it bottom-up in
// ns, resolving each occurring fact's value via assign.
func Evaluate[T any](ps ProofSet, assign func(semiring.FactID) T, ns NumericSemiring[T], opts ...Option) T {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}

	formula := FormulaFromProofs(ps)
	vars := formula.CollectVars()
	cfg := sdd.DefaultConfig(vars)
	if o.ApplyCacheSize > 0 {
		cfg.ApplyCacheSize = o.ApplyCacheSize
	}

	compiled := sdd.NewBuilder(cfg).Build(formula)

	values := make(map[int]T, len(vars))
	for _, v := range vars {
		values[v] = assign(semiring.FactID(v))
	}
	return sdd.EvalT(compiled, values, ns)
}
