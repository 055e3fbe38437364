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
	roaring "github.com/RoaringBitmap/roaring/v2"
)

// Proof is a conjunction of fact ids sufficing to derive a tagged tuple.
// Represented as a Roaring bitmap so that ⊗'s proof-union is a bitmap Or
// rather than a hand-rolled sorted-set merge. The disjunction-conflict
// check walks the proof's fact ids (Facts) against each disjunction set.
type Proof struct {
	bits *roaring.Bitmap
}

func emptyProof() Proof {
	return Proof{bits: roaring.New()}
}

func singletonProof(id FactID) Proof {
	b := roaring.New()
	b.Add(uint32(id))
	return Proof{bits: b}
}

func unionProof(a, b Proof) Proof {
	return Proof{bits: roaring.Or(a.bits, b.bits)}
}

// key returns a canonical string for use as a map key, so that two proofs
// over the same fact ids dedup regardless of insertion order.
func (p Proof) key() string {
	return p.bits.String()
}

// Facts returns the proof's fact ids in ascending order.
func (p Proof) Facts() []FactID {
	arr := p.bits.ToArray()
	ids := make([]FactID, len(arr))
	for i, v := range arr {
		ids[i] = FactID(v)
	}
	return ids
}

// ProbProofs is a tag in the prob-proofs semiring: a set of alternative
// proofs, deduplicated by their fact-id content.
type ProbProofs struct {
	proofs map[string]Proof
}

// SingletonProb returns the tag for a single fresh fact: {{id}}.
func SingletonProb(id FactID) ProbProofs {
	p := singletonProof(id)
	return ProbProofs{proofs: map[string]Proof{p.key(): p}}
}

func (t ProbProofs) Proofs() []Proof {
	out := make([]Proof, 0, len(t.proofs))
	for _, p := range t.proofs {
		out = append(out, p)
	}
	return out
}

// ProbProofsSemiring implements Semiring[*ProbContext, ProbProofs].
type ProbProofsSemiring struct{}

func (ProbProofsSemiring) Zero(*ProbContext) ProbProofs {
	return ProbProofs{proofs: map[string]Proof{}}
}

func (ProbProofsSemiring) One(*ProbContext) ProbProofs {
	e := emptyProof()
	return ProbProofs{proofs: map[string]Proof{e.key(): e}}
}

func (ProbProofsSemiring) Add(_ *ProbContext, a, b ProbProofs) ProbProofs {
	out := make(map[string]Proof, len(a.proofs)+len(b.proofs))
	for k, p := range a.proofs {
		out[k] = p
	}
	for k, p := range b.proofs {
		out[k] = p
	}
	return ProbProofs{proofs: out}
}

func (ProbProofsSemiring) Mult(ctx *ProbContext, a, b ProbProofs) ProbProofs {
	out := make(map[string]Proof)
	for _, p1 := range a.proofs {
		for _, p2 := range b.proofs {
			union := unionProof(p1, p2)
			ids := union.Facts()
			if hasConflict(ctx.disjunctions, ids) {
				continue
			}
			out[union.key()] = union
		}
	}
	return ProbProofs{proofs: out}
}

func (ProbProofsSemiring) IsValid(_ *ProbContext, t ProbProofs) bool {
	return len(t.proofs) > 0
}

var _ Semiring[*ProbContext, ProbProofs] = ProbProofsSemiring{}
