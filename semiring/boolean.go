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

package semiring

// BooleanContext is the (empty) context for the Boolean semiring.
type BooleanContext struct{}

// BooleanSemiring implements the boolean provenance instance: zero=false,
// one=true, add=∨, mult=∧.
type BooleanSemiring struct{}

func (BooleanSemiring) Zero(BooleanContext) bool { return false }
func (BooleanSemiring) One(BooleanContext) bool  { return true }

func (BooleanSemiring) Add(_ BooleanContext, a, b bool) bool { return a || b }

func (BooleanSemiring) Mult(_ BooleanContext, a, b bool) bool { return a && b }

func (BooleanSemiring) IsValid(_ BooleanContext, t bool) bool { return t }

// Minus implements Difference for Boolean: true-false=true, true-true=false,
// false-* = false. Mirrors original_source's tags/boolean.rs; kept only so
// the Difference interface shape has one concrete exerciser (§9 Open
// Question: not used by any production dataflow operator).
func (BooleanSemiring) Minus(_ BooleanContext, a, b bool) bool { return a && !b }

var _ Semiring[BooleanContext, bool]   = BooleanSemiring{}
var _ Difference[BooleanContext, bool] = BooleanSemiring{}
