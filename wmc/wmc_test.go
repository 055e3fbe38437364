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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kevinawalsh/provdl/relation"
	"github.com/kevinawalsh/provdl/semiring"
	"github.com/kevinawalsh/provdl/tuple"
)

func TestFormulaFromProofsEmptyIsUnsatisfiable(t *testing.T) {
	sr := semiring.ProbProofsSemiring{}
	ctx := semiring.NewProbContext()
	empty := sr.Zero(ctx)
	got := Evaluate[float64](empty, func(semiring.FactID) float64 { return 1 }, Float64Semiring{})
	require.Equal(t, 0.0, got)
}

func TestFormulaFromProofsIdentityIsValid(t *testing.T) {
	sr := semiring.ProbProofsSemiring{}
	ctx := semiring.NewProbContext()
	one := sr.One(ctx)
	got := Evaluate[float64](one, func(semiring.FactID) float64 { return 0 }, Float64Semiring{})
	require.Equal(t, 1.0, got)
}

func TestEvaluateSingleProof(t *testing.T) {
	ctx := semiring.NewProbContext()
	idA := ctx.AllocFact(0.5)
	idB := ctx.AllocFact(0.3)
	sr := semiring.ProbProofsSemiring{}
	tag := sr.Mult(ctx, semiring.SingletonProb(idA), semiring.SingletonProb(idB))

	got := Evaluate[float64](tag, ctx.Prob, Float64Semiring{})
	require.InDelta(t, 0.5*0.3, got, 1e-9)
}

func TestEvaluateOverlappingProofsInclusionExclusion(t *testing.T) {
	ctx := semiring.NewProbContext()
	idA := ctx.AllocFact(0.5)
	idB := ctx.AllocFact(0.8)
	idC := ctx.AllocFact(0.3)
	sr := semiring.ProbProofsSemiring{}

	ab := sr.Mult(ctx, semiring.SingletonProb(idA), semiring.SingletonProb(idB))
	bc := sr.Mult(ctx, semiring.SingletonProb(idB), semiring.SingletonProb(idC))
	tag := sr.Add(ctx, ab, bc) // two proofs {A,B} and {B,C}, sharing B

	got := Evaluate[float64](tag, ctx.Prob, Float64Semiring{})
	pA, pB, pC := 0.5, 0.8, 0.3
	want := pA*pB + pB*pC - pA*pB*pC
	require.InDelta(t, want, got, 1e-9)
}

func TestEvaluateRespectsDisjunctionConflicts(t *testing.T) {
	// digit(0,·) disjunction: at most one of idA, idB may hold at once.
	ctx := semiring.NewProbContext()
	idA := ctx.AllocFact(0.6)
	idB := ctx.AllocFact(0.4)
	ctx.AddDisjunction(idA, idB)
	sr := semiring.ProbProofsSemiring{}

	// Mult would normally combine proofs {A} and {B} into {A,B}; the
	// disjunction conflict check already filters that out of the tag
	// before it ever reaches WMC, so the tag here has no proof using both.
	joint := sr.Mult(ctx, semiring.SingletonProb(idA), semiring.SingletonProb(idB))
	require.Empty(t, joint.Proofs())

	got := Evaluate[float64](joint, ctx.Prob, Float64Semiring{})
	require.Equal(t, 0.0, got)
}

func TestEvaluateDualSemiringGradient(t *testing.T) {
	ctx := semiring.NewDiffProbContext()
	id := ctx.AllocFact(semiring.NewDualConstant(0.4))
	sr := semiring.DiffTopKProofsSemiring{K: 1}
	tag := sr.SingletonDiff(ctx, id)

	assign := func(fid semiring.FactID) semiring.DualNumber {
		v := ctx.Dual(fid)
		return semiring.DualNumber{Value: v.Value, Grad: map[semiring.FactID]float64{fid: 1.0}}
	}
	got := Evaluate[semiring.DualNumber](tag, assign, DualSemiring{})
	require.InDelta(t, 0.4, got.Value, 1e-9)
	require.InDelta(t, 1.0, got.Grad[id], 1e-9)
}

func TestEvaluateAllParallel(t *testing.T) {
	ctx := semiring.NewProbContext()
	idA := ctx.AllocFact(0.5)
	idB := ctx.AllocFact(0.2)
	sr := semiring.ProbProofsSemiring{}

	el1 := relation.Element[semiring.ProbProofs]{
		Tup: tuple.TupleOf(tuple.Int(1)).Tuple(),
		Tag: semiring.SingletonProb(idA),
	}
	el2 := relation.Element[semiring.ProbProofs]{
		Tup: tuple.TupleOf(tuple.Int(2)).Tuple(),
		Tag: sr.Mult(ctx, semiring.SingletonProb(idA), semiring.SingletonProb(idB)),
	}
	rel := relation.FromVecUnchecked([]relation.Element[semiring.ProbProofs]{el1, el2})

	results, err := EvaluateAll[semiring.ProbProofs, float64](rel, ctx.Prob, Float64Semiring{}, 2)
	require.NoError(t, err)
	require.Len(t, results, 2)

	byTuple := make(map[int64]float64, 2)
	for _, r := range results {
		byTuple[r.Tup.Elems[0].Int()] = r.Value
	}
	require.InDelta(t, 0.5, byTuple[1], 1e-9)
	require.InDelta(t, 0.5*0.2, byTuple[2], 1e-9)
}
