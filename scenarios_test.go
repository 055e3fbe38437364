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

package provdl_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kevinawalsh/provdl/iteration"
	"github.com/kevinawalsh/provdl/ram"
	"github.com/kevinawalsh/provdl/relation"
	"github.com/kevinawalsh/provdl/semiring"
	"github.com/kevinawalsh/provdl/tuple"
	"github.com/kevinawalsh/provdl/wmc"
)

func intPairs(t *testing.T, v interface {
	Complete(relation.Combine[bool]) relation.Relation[bool]
}, combine relation.Combine[bool]) [][2]int64 {
	t.Helper()
	rel := v.Complete(combine)
	out := make([][2]int64, 0, rel.Len())
	for _, e := range rel.Elements {
		out = append(out, [2]int64{e.Tup.Elems[0].Int(), e.Tup.Elems[1].Int()})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i][0] != out[j][0] {
			return out[i][0] < out[j][0]
		}
		return out[i][1] < out[j][1]
	})
	return out
}

// TestScenarioTransitiveClosure covers edges (1,2),(2,3),(3,4) reaching the
// full 6-pair path fixpoint: the simplest recursive join, end to end.
func TestScenarioTransitiveClosure(t *testing.T) {
	it := iteration.New[semiring.BooleanContext, bool](semiring.BooleanSemiring{}, semiring.BooleanContext{})

	_, err := it.AddVariable("edge")
	require.NoError(t, err)
	path, err := it.AddVariable("path")
	require.NoError(t, err)

	baseFlow := &ram.Flow{Kind: ram.FlowVariable, VarName: "edge"}
	joinFlow := &ram.Flow{
		Kind: ram.FlowJoin,
		Source: &ram.Flow{
			Kind:   ram.FlowProject,
			Source: &ram.Flow{Kind: ram.FlowVariable, VarName: "path"},
			Arg:    ram.TupleExpr(ram.Element(tuple.Accessor{1}), ram.Element(tuple.Accessor{0})),
		},
		Other: &ram.Flow{Kind: ram.FlowVariable, VarName: "edge"},
	}
	recurFlow := &ram.Flow{
		Kind:   ram.FlowProject,
		Source: joinFlow,
		Arg:    ram.TupleExpr(ram.Element(tuple.Accessor{1}), ram.Element(tuple.Accessor{2})),
	}

	initialize := func() {
		require.NoError(t, it.InsertFact("edge", tuple.Int(1), tuple.Int(2)))
		require.NoError(t, it.InsertFact("edge", tuple.Int(2), tuple.Int(3)))
		require.NoError(t, it.InsertFact("edge", tuple.Int(3), tuple.Int(4)))
	}
	update := func() {
		for _, f := range []*ram.Flow{baseFlow, recurFlow} {
			d, err := ram.Compile[bool](f, it.Lookup, it.Mul())
			require.NoError(t, err)
			path.InsertToAdd(it.Flatten(d.IterStable()))
			path.InsertToAdd(it.Flatten(d.IterRecent()))
		}
	}

	require.NoError(t, it.Run(initialize, update))

	got := intPairs(t, path, it.Combine())
	want := [][2]int64{{1, 2}, {1, 3}, {1, 4}, {2, 3}, {2, 4}, {3, 4}}
	require.Equal(t, want, got)
}

// TestScenarioTwoDigitSum covers projection/filter arithmetic over a
// ground relation: sum(A,B,S) <- digit(A), digit(B), S = A + B, S <= 9,
// restricted to single-digit sums.
func TestScenarioTwoDigitSum(t *testing.T) {
	it := iteration.New[semiring.BooleanContext, bool](semiring.BooleanSemiring{}, semiring.BooleanContext{})

	_, err := it.AddVariable("digit")
	require.NoError(t, err)
	sum, err := it.AddVariable("sum")
	require.NoError(t, err)

	// product(A,B) <- digit(A) x digit(B)
	productFlow := &ram.Flow{
		Kind:   ram.FlowProduct,
		Source: &ram.Flow{Kind: ram.FlowVariable, VarName: "digit"},
		Other:  &ram.Flow{Kind: ram.FlowVariable, VarName: "digit"},
	}
	// filtered(A,B) <- product(A,B), A + B <= 9
	filteredFlow := &ram.Flow{
		Kind:   ram.FlowFilter,
		Source: productFlow,
		Arg: ram.Binary(ram.OpLte,
			ram.Binary(ram.OpAdd, ram.Element(tuple.Accessor{0}), ram.Element(tuple.Accessor{1})),
			ram.Constant(tuple.Int(9))),
	}
	// sum(A,B,A+B) <- filtered(A,B)
	sumFlow := &ram.Flow{
		Kind:   ram.FlowProject,
		Source: filteredFlow,
		Arg: ram.TupleExpr(
			ram.Element(tuple.Accessor{0}),
			ram.Element(tuple.Accessor{1}),
			ram.Binary(ram.OpAdd, ram.Element(tuple.Accessor{0}), ram.Element(tuple.Accessor{1}))),
	}

	initialize := func() {
		for i := int64(0); i <= 9; i++ {
			require.NoError(t, it.InsertFact("digit", tuple.Int(i)))
		}
	}
	update := func() {
		d, err := ram.Compile[bool](sumFlow, it.Lookup, it.Mul())
		require.NoError(t, err)
		sum.InsertToAdd(it.Flatten(d.IterStable()))
		sum.InsertToAdd(it.Flatten(d.IterRecent()))
	}

	require.NoError(t, it.Run(initialize, update))

	rel := sum.Complete(it.Combine())
	require.Equal(t, 55, rel.Len()) // number of (a,b) pairs in [0,9]^2 with a+b<=9

	for _, e := range rel.Elements {
		a, b, s := e.Tup.Elems[0].Int(), e.Tup.Elems[1].Int(), e.Tup.Elems[2].Int()
		require.Equal(t, a+b, s)
		require.LessOrEqual(t, s, int64(9))
	}
}

// TestScenarioJoinWithSubsumption covers spec.md's join scenario:
// result(A,B) <- rela_b(B,C), rela_a(A,B,C), joined on both B and C (the
// second equality enforced as a post-join filter since Join only keys on
// a tuple's first component).
func TestScenarioJoinWithSubsumption(t *testing.T) {
	it := iteration.New[semiring.BooleanContext, bool](semiring.BooleanSemiring{}, semiring.BooleanContext{})

	_, err := it.AddVariable("rela_a")
	require.NoError(t, err)
	_, err = it.AddVariable("rela_b")
	require.NoError(t, err)
	result, err := it.AddVariable("result")
	require.NoError(t, err)

	// relaAByB(B,A,C) <- rela_a(A,B,C), keyed on B to join against rela_b.
	relaAByB := &ram.Flow{
		Kind:   ram.FlowProject,
		Source: &ram.Flow{Kind: ram.FlowVariable, VarName: "rela_a"},
		Arg: ram.TupleExpr(
			ram.Element(tuple.Accessor{1}),
			ram.Element(tuple.Accessor{0}),
			ram.Element(tuple.Accessor{2})),
	}
	// joined(B, C_b, A, C_a) <- rela_b(B,C_b), relaAByB(B,A,C_a)
	joined := &ram.Flow{
		Kind:   ram.FlowJoin,
		Source: &ram.Flow{Kind: ram.FlowVariable, VarName: "rela_b"},
		Other:  relaAByB,
	}
	// filtered <- joined, C_b == C_a
	filtered := &ram.Flow{
		Kind:   ram.FlowFilter,
		Source: joined,
		Arg:    ram.Binary(ram.OpEq, ram.Element(tuple.Accessor{1}), ram.Element(tuple.Accessor{3})),
	}
	// result(A,B) <- filtered
	resultFlow := &ram.Flow{
		Kind:   ram.FlowProject,
		Source: filtered,
		Arg:    ram.TupleExpr(ram.Element(tuple.Accessor{2}), ram.Element(tuple.Accessor{0})),
	}

	initialize := func() {
		require.NoError(t, it.InsertFact("rela_a", tuple.Int(0), tuple.Int(1), tuple.Int(2)))
		require.NoError(t, it.InsertFact("rela_a", tuple.Int(1), tuple.Int(2), tuple.Int(3)))
		require.NoError(t, it.InsertFact("rela_b", tuple.Int(1), tuple.Int(2)))
		require.NoError(t, it.InsertFact("rela_b", tuple.Int(10), tuple.Int(13)))
	}
	update := func() {
		d, err := ram.Compile[bool](resultFlow, it.Lookup, it.Mul())
		require.NoError(t, err)
		result.InsertToAdd(it.Flatten(d.IterStable()))
		result.InsertToAdd(it.Flatten(d.IterRecent()))
	}

	require.NoError(t, it.Run(initialize, update))

	got := intPairs(t, result, it.Combine())
	require.Equal(t, [][2]int64{{0, 1}}, got)
}

// TestScenarioConstraintFilter covers a pure Filter over a static ground
// relation: only ages in [18,65) are "eligible".
func TestScenarioConstraintFilter(t *testing.T) {
	it := iteration.New[semiring.BooleanContext, bool](semiring.BooleanSemiring{}, semiring.BooleanContext{})

	_, err := it.AddVariable("person")
	require.NoError(t, err)
	eligible, err := it.AddVariable("eligible")
	require.NoError(t, err)

	eligibleFlow := &ram.Flow{
		Kind:   ram.FlowFilter,
		Source: &ram.Flow{Kind: ram.FlowVariable, VarName: "person"},
		Arg: ram.Binary(ram.OpAnd,
			ram.Binary(ram.OpGte, ram.Element(tuple.Accessor{1}), ram.Constant(tuple.Int(18))),
			ram.Binary(ram.OpLt, ram.Element(tuple.Accessor{1}), ram.Constant(tuple.Int(65)))),
	}

	initialize := func() {
		require.NoError(t, it.InsertFact("person", tuple.Int(1), tuple.Int(12)))
		require.NoError(t, it.InsertFact("person", tuple.Int(2), tuple.Int(18)))
		require.NoError(t, it.InsertFact("person", tuple.Int(3), tuple.Int(64)))
		require.NoError(t, it.InsertFact("person", tuple.Int(4), tuple.Int(65)))
		require.NoError(t, it.InsertFact("person", tuple.Int(5), tuple.Int(90)))
	}
	update := func() {
		d, err := ram.Compile[bool](eligibleFlow, it.Lookup, it.Mul())
		require.NoError(t, err)
		eligible.InsertToAdd(it.Flatten(d.IterStable()))
		eligible.InsertToAdd(it.Flatten(d.IterRecent()))
	}

	require.NoError(t, it.Run(initialize, update))

	got := intPairs(t, eligible, it.Combine())
	require.Equal(t, [][2]int64{{2, 18}, {3, 64}}, got)
}

// TestScenarioUnitRelationPropagation covers ContainsChain: membership of
// a static "unit" set propagating through a feed relation without ever
// materializing the cross product, per spec.md's contains-chain operator.
func TestScenarioUnitRelationPropagation(t *testing.T) {
	it := iteration.New[semiring.BooleanContext, bool](semiring.BooleanSemiring{}, semiring.BooleanContext{})

	_, err := it.AddVariable("units")
	require.NoError(t, err)
	_, err = it.AddVariable("feed")
	require.NoError(t, err)
	propagated, err := it.AddVariable("propagated")
	require.NoError(t, err)

	propagatedFlow := &ram.Flow{
		Kind:      ram.FlowContainsChain,
		Source:    &ram.Flow{Kind: ram.FlowVariable, VarName: "units"},
		KeyConsts: []tuple.Value{tuple.Int(1)},
		Other:     &ram.Flow{Kind: ram.FlowVariable, VarName: "feed"},
	}

	initialize := func() {
		// units' sole tuple's first (and only) element is itself the
		// composite key ContainsChain looks up, matching KeyConsts below.
		require.NoError(t, it.InsertFact("units", tuple.TupleOf(tuple.Int(1))))
		require.NoError(t, it.InsertFact("feed", tuple.Int(100), tuple.Int(200)))
		require.NoError(t, it.InsertFact("feed", tuple.Int(101), tuple.Int(201)))
	}
	update := func() {
		d, err := ram.Compile[bool](propagatedFlow, it.Lookup, it.Mul())
		require.NoError(t, err)
		propagated.InsertToAdd(it.Flatten(d.IterStable()))
		propagated.InsertToAdd(it.Flatten(d.IterRecent()))
	}

	require.NoError(t, it.Run(initialize, update))

	got := intPairs(t, propagated, it.Combine())
	require.Equal(t, [][2]int64{{100, 200}, {101, 201}}, got)
}

// TestScenarioTopTwoProbabilisticSum covers the full probabilistic
// pipeline under the top-2 proofs semiring: two independent digit
// disjunctions (each digit 0..1, only one value per digit may hold),
// summed via product and filtered to sums equal to 1, then
// weighted-model-counted to recover P(sum=1) under independent per-digit
// probabilities.
func TestScenarioTopTwoProbabilisticSum(t *testing.T) {
	sr := semiring.TopKProofsSemiring{K: 2}
	it := iteration.New[*semiring.ProbContext, semiring.TopKProofs](
		sr, semiring.NewProbContext())

	_, err := it.AddVariable("digitA")
	require.NoError(t, err)
	_, err = it.AddVariable("digitB")
	require.NoError(t, err)
	sum, err := it.AddVariable("sum")
	require.NoError(t, err)

	// sum(S) <- digitA(A) x digitB(B), S = A + B, S = 1
	sumFlow := &ram.Flow{
		Kind: ram.FlowProject,
		Source: &ram.Flow{
			Kind: ram.FlowFilter,
			Source: &ram.Flow{
				Kind:   ram.FlowProduct,
				Source: &ram.Flow{Kind: ram.FlowVariable, VarName: "digitA"},
				Other:  &ram.Flow{Kind: ram.FlowVariable, VarName: "digitB"},
			},
			Arg: ram.Binary(ram.OpEq,
				ram.Binary(ram.OpAdd, ram.Element(tuple.Accessor{0}), ram.Element(tuple.Accessor{1})),
				ram.Constant(tuple.Int(1))),
		},
		Arg: ram.TupleExpr(ram.Binary(ram.OpAdd, ram.Element(tuple.Accessor{0}), ram.Element(tuple.Accessor{1}))),
	}

	// digitA in {0: 0.5, 1: 0.5}, mutually exclusive.
	idA0 := it.Ctx.AllocFact(0.5)
	idA1 := it.Ctx.AllocFact(0.5)
	it.Ctx.AddDisjunction(idA0, idA1)
	// digitB in {0: 0.3, 1: 0.7}, mutually exclusive.
	idB0 := it.Ctx.AllocFact(0.3)
	idB1 := it.Ctx.AllocFact(0.7)
	it.Ctx.AddDisjunction(idB0, idB1)

	initialize := func() {
		digitA, err := it.GetVariable("digitA")
		require.NoError(t, err)
		digitB, err := it.GetVariable("digitB")
		require.NoError(t, err)
		digitA.InsertToAdd(relation.FromVec([]relation.Element[semiring.TopKProofs]{
			{Tup: tuple.TupleOf(tuple.Int(0)).Tuple(), Tag: sr.SingletonTopK(it.Ctx, idA0)},
			{Tup: tuple.TupleOf(tuple.Int(1)).Tuple(), Tag: sr.SingletonTopK(it.Ctx, idA1)},
		}, it.Combine()))
		digitB.InsertToAdd(relation.FromVec([]relation.Element[semiring.TopKProofs]{
			{Tup: tuple.TupleOf(tuple.Int(0)).Tuple(), Tag: sr.SingletonTopK(it.Ctx, idB0)},
			{Tup: tuple.TupleOf(tuple.Int(1)).Tuple(), Tag: sr.SingletonTopK(it.Ctx, idB1)},
		}, it.Combine()))
	}
	update := func() {
		d, err := ram.Compile[semiring.TopKProofs](sumFlow, it.Lookup, it.Mul())
		require.NoError(t, err)
		sum.InsertToAdd(it.Flatten(d.IterStable()))
		sum.InsertToAdd(it.Flatten(d.IterRecent()))
	}

	require.NoError(t, it.Run(initialize, update))

	rel := sum.Complete(it.Combine())
	require.Equal(t, 1, rel.Len()) // only S=1 survives the filter

	results, err := wmc.EvaluateAll[semiring.TopKProofs, float64](rel, it.Ctx.Prob, wmc.Float64Semiring{}, 2)
	require.NoError(t, err)
	require.Len(t, results, 1)
	// P(sum=1) = P(A=0,B=1) + P(A=1,B=0) = 0.5*0.7 + 0.5*0.3 = 0.5
	require.InDelta(t, 0.5, results[0].Value, 1e-9)
}

// TestScenarioTopKDiffableSum supplements spec.md's probabilistic scenario
// with its differentiable counterpart: the product of two single-fact tags,
// evaluated under the dual-number semiring to confirm gradients flow
// through a multi-fact proof, not just its value.
func TestScenarioTopKDiffableSum(t *testing.T) {
	ctx := semiring.NewDiffProbContext()
	idA := ctx.AllocFact(semiring.NewDualConstant(0.5))
	idB := ctx.AllocFact(semiring.NewDualConstant(0.7))
	sr := semiring.DiffTopKProofsSemiring{K: 1}

	tag := sr.Mult(ctx, sr.SingletonDiff(ctx, idA), sr.SingletonDiff(ctx, idB))

	assign := func(fid semiring.FactID) semiring.DualNumber {
		v := ctx.Dual(fid)
		return semiring.DualNumber{Value: v.Value, Grad: map[semiring.FactID]float64{fid: 1.0}}
	}
	got := wmc.Evaluate[semiring.DualNumber](tag, assign, wmc.DualSemiring{})
	require.InDelta(t, 0.5*0.7, got.Value, 1e-9)
	require.InDelta(t, 0.7, got.Grad[idA], 1e-9) // d/dA (A*B) = B
	require.InDelta(t, 0.5, got.Grad[idB], 1e-9) // d/dB (A*B) = A
}
