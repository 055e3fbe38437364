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

// scoredProof pairs a Proof with its pre-computed probability (product of
// its facts' probabilities under the owning context), so comparisons don't
// need the context in scope.
type scoredProof struct {
	proof Proof
	prob  float64
}

// worseThan reports whether a should be evicted before b: lower probability
// first, ties broken by reverse lexicographic fact-id set order (the
// reversed-lex-greater set is considered "worse" and evicted first).
func (a scoredProof) worseThan(b scoredProof) bool {
	if a.prob != b.prob {
		return a.prob < b.prob
	}
	af, bf := a.proof.Facts(), b.proof.Facts()
	n := len(af)
	if len(bf) < n {
		n = len(bf)
	}
	for i := 0; i < n; i++ {
		if af[i] != bf[i] {
			// reverse lexicographic: the set whose element is larger at the
			// first differing position sorts as "worse" (evicted first).
			return af[i] > bf[i]
		}
	}
	return len(af) > len(bf)
}

// TopKProofs is a tag in the top-k-proofs semiring: like ProbProofs, but
// bounded to the K proofs of highest probability.
type TopKProofs struct {
	k      int
	proofs map[string]scoredProof
}

// TopKProofsSemiring implements Semiring[*ProbContext, TopKProofs], bounding
// every tag it produces to K proofs.
type TopKProofsSemiring struct {
	K int
}

func probOf(ctx *ProbContext, p Proof) float64 {
	prob := 1.0
	for _, id := range p.Facts() {
		prob *= ctx.Prob(id)
	}
	return prob
}

func (s TopKProofsSemiring) SingletonTopK(ctx *ProbContext, id FactID) TopKProofs {
	p := singletonProof(id)
	t := TopKProofs{k: s.K, proofs: map[string]scoredProof{}}
	t.insert(scoredProof{proof: p, prob: ctx.Prob(id)})
	return t
}

// insert adds sp to t, evicting the worst-scoring proof if t is already at
// capacity K and sp beats it.
func (t *TopKProofs) insert(sp scoredProof) {
	if _, exists := t.proofs[sp.proof.key()]; exists {
		return
	}
	if len(t.proofs) < t.k {
		t.proofs[sp.proof.key()] = sp
		return
	}
	worstKey, worst := "", scoredProof{}
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

// Proofs returns the tag's proofs in descending-probability order.
func (t TopKProofs) Proofs() []Proof {
	scored := make([]scoredProof, 0, len(t.proofs))
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

func (s TopKProofsSemiring) Zero(*ProbContext) TopKProofs {
	return TopKProofs{k: s.K, proofs: map[string]scoredProof{}}
}

func (s TopKProofsSemiring) One(ctx *ProbContext) TopKProofs {
	e := emptyProof()
	t := TopKProofs{k: s.K, proofs: map[string]scoredProof{}}
	t.insert(scoredProof{proof: e, prob: 1.0})
	return t
}

func (s TopKProofsSemiring) Add(_ *ProbContext, a, b TopKProofs) TopKProofs {
	out := TopKProofs{k: s.K, proofs: map[string]scoredProof{}}
	for _, sp := range a.proofs {
		out.insert(sp)
	}
	for _, sp := range b.proofs {
		out.insert(sp)
	}
	return out
}

func (s TopKProofsSemiring) Mult(ctx *ProbContext, a, b TopKProofs) TopKProofs {
	out := TopKProofs{k: s.K, proofs: map[string]scoredProof{}}
	for _, p1 := range a.proofs {
		for _, p2 := range b.proofs {
			union := unionProof(p1.proof, p2.proof)
			ids := union.Facts()
			if hasConflict(ctx.disjunctions, ids) {
				continue
			}
			out.insert(scoredProof{proof: union, prob: probOf(ctx, union)})
		}
	}
	return out
}

func (TopKProofsSemiring) IsValid(_ *ProbContext, t TopKProofs) bool {
	return len(t.proofs) > 0
}

var _ Semiring[*ProbContext, TopKProofs] = TopKProofsSemiring{}
