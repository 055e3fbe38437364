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

// Unit is the trivial tag: plain satisfiability, no provenance at all.
type Unit struct{}

// UnitContext is the (empty) context for the Unit semiring.
type UnitContext struct{}

// UnitSemiring implements Semiring[UnitContext, Unit].
type UnitSemiring struct{}

func (UnitSemiring) Zero(UnitContext) Unit             { return Unit{} }
func (UnitSemiring) One(UnitContext) Unit              { return Unit{} }
func (UnitSemiring) Add(UnitContext, Unit, Unit) Unit  { return Unit{} }
func (UnitSemiring) Mult(UnitContext, Unit, Unit) Unit { return Unit{} }
func (UnitSemiring) IsValid(UnitContext, Unit) bool    { return true }
