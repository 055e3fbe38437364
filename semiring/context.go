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

import (
	mapset "github.com/deckarep/golang-set/v2"
)

// FactID is an unsigned integer identifying a single probabilistic fact,
// drawn from a per-context monotonic allocator.
type FactID uint32

// ProbContext is the shared mutable state behind the prob-proofs and
// top-k-proofs instances: a monotonic fact id allocator, a fact→probability
// table, and the mutual-exclusion disjunction list.
type ProbContext struct {
	nextID       FactID
	probTable    []float64 // indexed by FactID
	disjunctions []mapset.Set[FactID]
}

// NewProbContext returns a fresh, empty probabilistic semiring context.
func NewProbContext() *ProbContext {
	return &ProbContext{}
}

// AllocFact introduces a new fact with the given probability and returns
// its freshly allocated id.
func (c *ProbContext) AllocFact(prob float64) FactID {
	id := c.nextID
	c.nextID++
	c.probTable = append(c.probTable, prob)
	return id
}

// Prob returns the probability assigned to a fact id.
func (c *ProbContext) Prob(id FactID) float64 {
	return c.probTable[id]
}

// AddDisjunction declares that at most one of the given fact ids may be
// simultaneously true, and returns the disjunction's index.
func (c *ProbContext) AddDisjunction(ids ...FactID) int {
	set := mapset.NewThreadUnsafeSet[FactID]()
	for _, id := range ids {
		set.Add(id)
	}
	c.disjunctions = append(c.disjunctions, set)
	return len(c.disjunctions) - 1
}

// Disjunctions exposes the raw mutual-exclusion sets the ⊗ operator checks,
// for read-only use. Package wmc does not read them.
func (c *ProbContext) Disjunctions() []mapset.Set[FactID] {
	return c.disjunctions
}

// hasConflict reports whether more than one fact id from the same
// disjunction set appears in ids.
func hasConflict(disjunctions []mapset.Set[FactID], ids []FactID) bool {
	for _, d := range disjunctions {
		hit := 0
		for _, id := range ids {
			if d.Contains(id) {
				hit++
				if hit > 1 {
					return true
				}
			}
		}
	}
	return false
}

// DiffProbContext mirrors ProbContext but carries a dual-number (value +
// gradient) per fact instead of a bare probability, for the differentiable
// top-k instance.
type DiffProbContext struct {
	nextID       FactID
	dualTable    []DualNumber
	disjunctions []mapset.Set[FactID]
}

func NewDiffProbContext() *DiffProbContext {
	return &DiffProbContext{}
}

func (c *DiffProbContext) AllocFact(d DualNumber) FactID {
	id := c.nextID
	c.nextID++
	c.dualTable = append(c.dualTable, d)
	return id
}

func (c *DiffProbContext) Dual(id FactID) DualNumber {
	return c.dualTable[id]
}

func (c *DiffProbContext) AddDisjunction(ids ...FactID) int {
	set := mapset.NewThreadUnsafeSet[FactID]()
	for _, id := range ids {
		set.Add(id)
	}
	c.disjunctions = append(c.disjunctions, set)
	return len(c.disjunctions) - 1
}

func (c *DiffProbContext) Disjunctions() []mapset.Set[FactID] {
	return c.disjunctions
}

// DualNumber propagates a value and its gradient contribution simultaneously
// through +, ×, and negation.
type DualNumber struct {
	Value float64
	Grad  map[FactID]float64
}

// NewDualConstant returns a dual number with no gradient component (a plain
// constant lifted into the dual-number algebra).
func NewDualConstant(v float64) DualNumber {
	return DualNumber{Value: v}
}

// NewDualFact returns the dual number for a freshly introduced fact: its
// own probability and no gradient entry, since its id is not yet known.
// Callers add the one-hot gradient key once AllocFact has assigned the id.
func NewDualFact(prob float64) DualNumber {
	return DualNumber{Value: prob}
}

func (d DualNumber) Mul(o DualNumber) DualNumber {
	grad := make(map[FactID]float64, len(d.Grad)+len(o.Grad))
	for id, g := range d.Grad {
		grad[id] = grad[id] + g*o.Value
	}
	for id, g := range o.Grad {
		grad[id] = grad[id] + g*d.Value
	}
	return DualNumber{Value: d.Value * o.Value, Grad: grad}
}

func (d DualNumber) Add(o DualNumber) DualNumber {
	grad := make(map[FactID]float64, len(d.Grad)+len(o.Grad))
	for id, g := range d.Grad {
		grad[id] += g
	}
	for id, g := range o.Grad {
		grad[id] += g
	}
	return DualNumber{Value: d.Value + o.Value, Grad: grad}
}

func (d DualNumber) Sub(o DualNumber) DualNumber {
	return d.Add(o.Neg())
}

func (d DualNumber) Neg() DualNumber {
	grad := make(map[FactID]float64, len(d.Grad))
	for id, g := range d.Grad {
		grad[id] = -g
	}
	return DualNumber{Value: -d.Value, Grad: grad}
}
