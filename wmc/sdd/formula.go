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

package sdd

import "sort"

type formulaKind int

const (
	formulaFalse formulaKind = iota
	formulaTrue
	formulaPos
	formulaNeg
	formulaNot
	formulaAnd
	formulaOr
)

// BooleanFormula is a propositional formula over integer-identified
// variables: the compilation input to Builder.Build.
type BooleanFormula struct {
	kind        formulaKind
	varID       int
	left, right *BooleanFormula
}

func False() *BooleanFormula { return &BooleanFormula{kind: formulaFalse} }
func True() *BooleanFormula  { return &BooleanFormula{kind: formulaTrue} }
func Pos(varID int) *BooleanFormula { return &BooleanFormula{kind: formulaPos, varID: varID} }
func Neg(varID int) *BooleanFormula { return &BooleanFormula{kind: formulaNeg, varID: varID} }

// Not negates f, collapsing Not(Pos(v)) to Neg(v) and Not(Neg(v)) back to
// Pos(v) rather than wrapping a literal in a redundant Not node.
func Not(f *BooleanFormula) *BooleanFormula {
	if f.kind == formulaPos {
		return Neg(f.varID)
	}
	if f.kind == formulaNeg {
		return Pos(f.varID)
	}
	return &BooleanFormula{kind: formulaNot, left: f}
}

func And(left, right *BooleanFormula) *BooleanFormula {
	return &BooleanFormula{kind: formulaAnd, left: left, right: right}
}

func Or(left, right *BooleanFormula) *BooleanFormula {
	return &BooleanFormula{kind: formulaOr, left: left, right: right}
}

// CollectVars returns every variable id mentioned in f, ascending and
// deduplicated.
func (f *BooleanFormula) CollectVars() []int {
	set := make(map[int]struct{})
	var walk func(*BooleanFormula)
	walk = func(n *BooleanFormula) {
		switch n.kind {
		case formulaPos, formulaNeg:
			set[n.varID] = struct{}{}
		case formulaNot:
			walk(n.left)
		case formulaAnd, formulaOr:
			walk(n.left)
			walk(n.right)
		}
	}
	walk(f)
	vars := make([]int, 0, len(set))
	for v := range set {
		vars = append(vars, v)
	}
	sort.Ints(vars)
	return vars
}
