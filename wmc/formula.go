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

// Package wmc reduces a provenance tag's proof set to a scalar: build the
// boolean formula whose models are exactly the tag's proofs, compile it to
// an SDD (package wmc/sdd), then evaluate bottom-up in a caller-chosen
// numeric semiring (plain probability, or probability+gradient via dual
// numbers).
package wmc

import (
	"github.com/kevinawalsh/provdl/semiring"
	"github.com/kevinawalsh/provdl/wmc/sdd"
)

// ProofSet is any provenance tag readable back as a set of alternative
// proofs. semiring.ProbProofs, semiring.TopKProofs, and
// semiring.DiffTopKProofs all satisfy it.
type ProofSet interface {
	Proofs() []semiring.Proof
}

// FormulaFromProofs builds the boolean formula whose satisfying
// assignments are exactly ps's proofs: an empty proof set is
// unsatisfiable, the empty proof (no facts needed) is valid under every
// assignment, and every other proof is the conjunction of its facts'
// positive literals, disjoined together. Disjunction conflicts are already
// filtered out of the tag at ⊗ time (semiring.ProbContext's mutual
// exclusion check), so the formula built here needs no explicit negative
// constraints for them.
func FormulaFromProofs(ps ProofSet) *sdd.BooleanFormula {
	proofs := ps.Proofs()
	if len(proofs) == 0 {
		return sdd.False()
	}
	formula := conjunctionOf(proofs[0])
	for _, p := range proofs[1:] {
		formula = sdd.Or(formula, conjunctionOf(p))
	}
	return formula
}

func conjunctionOf(p semiring.Proof) *sdd.BooleanFormula {
	ids := p.Facts()
	if len(ids) == 0 {
		return sdd.True()
	}
	conj := sdd.Pos(int(ids[0]))
	for _, id := range ids[1:] {
		conj = sdd.And(conj, sdd.Pos(int(id)))
	}
	return conj
}
