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

import "sort"

// diffScoredProof is a proof annotated with its probability and gradient
// (the product, over its facts, of their dual numbers).
type diffScoredProof struct {
	proof Proof
	dual  DualNumber
}

func (a diffScoredProof) worseThan(b diffScoredProof) bool {
	if a.dual.Value != b.dual.Value {
		return a.dual.Value < b.dual.Value
	}
	af, bf := a.proof.Facts(), b.proof.Facts()
	n := len(af)
	if len(bf) < n {
		n = len(bf)
	}
	for i := 0; i < n; i++ {
		if af[i] != bf[i] {
			return af[i] > bf[i]
		}
	}
	return len(af) > len(bf)
}

// DiffTopKProofs is the differentiable analogue of TopKProofs: each proof
// carries a DualNumber so that WMC can return both a probability and its
// gradient with respect to every contributing fact.
type DiffTopKProofs struct {
	k      int
	proofs map[string]diffScoredProof
}

// DiffTopKProofsSemiring implements Semiring[*DiffProbContext,
// DiffTopKProofs].
type DiffTopKProofsSemiring struct {
	K int
}

func dualOf(ctx *DiffProbContext, p Proof) DualNumber {
	d := NewDualConstant(1.0)
	for _, id := range p.Facts() {
		fact := ctx.Dual(id)
		oneHot := DualNumber{Value: fact.Value, Grad: map[FactID]float64{id: 1.0}}
		d = d.Mul(oneHot)
	}
	return d
}

func (s DiffTopKProofsSemiring) SingletonDiff(ctx *DiffProbContext, id FactID) DiffTopKProofs {
	p := singletonProof(id)
	t := DiffTopKProofs{k: s.K, proofs: map[string]diffScoredProof{}}
	fact := ctx.Dual(id)
	t.insert(diffScoredProof{proof: p, dual: DualNumber{Value: fact.Value, Grad: map[FactID]float64{id: 1.0}}})
	return t
}

func (t *DiffTopKProofs) insert(sp diffScoredProof) {
	if _, exists := t.proofs[sp.proof.key()]; exists {
		return
	}
	if len(t.proofs) < t.k {
		t.proofs[sp.proof.key()] = sp
		return
	}
	worstKey, worst := "", diffScoredProof{}
	first := true
	for k, v := range t.proofs {
		if first || v.worseThan(worst) {
			worstKey, worst = k, v
			first = false
		}
	}
	if worst.worseThan(sp) {
		delete(t.proofs, worstKey)
		t.proofs[sp.proof.key()] = sp
	}
}

// Proofs returns the tag's proofs in descending-probability order; their
// dual numbers are not returned.
func (t DiffTopKProofs) Proofs() []Proof {
	scored := make([]diffScoredProof, 0, len(t.proofs))
	for _, sp := range t.proofs {
		scored = append(scored, sp)
	}
	sort.Slice(scored, func(i, j int) bool { return scored[j].worseThan(scored[i]) })
	out := make([]Proof, len(scored))
	for i, sp := range scored {
		out[i] = sp.proof
	}
	return out
}

func (s DiffTopKProofsSemiring) Zero(*DiffProbContext) DiffTopKProofs {
	return DiffTopKProofs{k: s.K, proofs: map[string]diffScoredProof{}}
}

func (s DiffTopKProofsSemiring) One(*DiffProbContext) DiffTopKProofs {
	e := emptyProof()
	t := DiffTopKProofs{k: s.K, proofs: map[string]diffScoredProof{}}
	t.insert(diffScoredProof{proof: e, dual: NewDualConstant(1.0)})
	return t
}

func (s DiffTopKProofsSemiring) Add(_ *DiffProbContext, a, b DiffTopKProofs) DiffTopKProofs {
	out := DiffTopKProofs{k: s.K, proofs: map[string]diffScoredProof{}}
	for _, sp := range a.proofs {
		out.insert(sp)
	}
	for _, sp := range b.proofs {
		out.insert(sp)
	}
	return out
}

func (s DiffTopKProofsSemiring) Mult(ctx *DiffProbContext, a, b DiffTopKProofs) DiffTopKProofs {
	out := DiffTopKProofs{k: s.K, proofs: map[string]diffScoredProof{}}
	for _, p1 := range a.proofs {
		for _, p2 := range b.proofs {
			union := unionProof(p1.proof, p2.proof)
			ids := union.Facts()
			if hasConflict(ctx.disjunctions, ids) {
				continue
			}
			out.insert(diffScoredProof{proof: union, dual: dualOf(ctx, union)})
		}
	}
	return out
}

func (DiffTopKProofsSemiring) IsValid(_ *DiffProbContext, t DiffTopKProofs) bool {
	return len(t.proofs) > 0
}

var _ Semiring[*DiffProbContext, DiffTopKProofs] = DiffTopKProofsSemiring{}
