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

package iteration

import (
	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/kevinawalsh/provdl/ram"
	"github.com/kevinawalsh/provdl/relation"
	"github.com/kevinawalsh/provdl/tuple"
	"github.com/kevinawalsh/provdl/variable"
)

// RuleID names one installed dynamic rule, returned by AddRule and
// consumed by RemoveRule.
type RuleID uuid.UUID

func (id RuleID) String() string { return uuid.UUID(id).String() }

// ruleEntry records what one installed rule introduced, so RemoveRule can
// retire exactly that and nothing else.
type ruleEntry struct {
	updateIDs []int
	tempNames []string
}

// RuleToAdd is what an external compiler (out of scope for this module,
// per its parser/analyzer/codegen non-goal) produces for one new rule: the
// temporaries it needs, the updates that populate them, and the ground
// facts destined for those temporaries.
type RuleToAdd struct {
	Temporaries []ram.Variable
	Updates     []ram.Update
	Facts       []ram.Fact
}

// AddRule performs the §4.8 install protocol: allocate temporaries,
// register updates, seed ground facts with tag one(ctx), and record the
// aggregate under a fresh RuleID. On any failure, everything this call
// added is rolled back and the error is returned.
func (it *Iteration[C, T]) AddRule(rta RuleToAdd) (RuleID, error) {
	var zero RuleID

	tempNames := make([]string, 0, len(rta.Temporaries))
	for _, tmp := range rta.Temporaries {
		if err := it.addDynamicVariable(tmp.Name, tmp.ArgType); err != nil {
			for _, n := range tempNames {
				it.removeDynamicVariable(n)
			}
			return zero, errors.Wrapf(err, "allocating temporary %q", tmp.Name)
		}
		tempNames = append(tempNames, tmp.Name)
	}

	updateIDs := make([]int, 0, len(rta.Updates))
	for _, u := range rta.Updates {
		id := it.nextUpdateID
		it.nextUpdateID++
		it.updates[id] = u
		updateIDs = append(updateIDs, id)
	}

	isTemp := make(map[string]struct{}, len(tempNames))
	for _, n := range tempNames {
		isTemp[n] = struct{}{}
	}
	var multi error
	for _, f := range rta.Facts {
		if _, ok := isTemp[f.Predicate]; !ok {
			multi = multierror.Append(multi, errors.Wrapf(ErrUndefinedVariable,
				"fact predicate %q is not a temporary of this rule", f.Predicate))
			continue
		}
		if err := it.insertGroundFact(f); err != nil {
			multi = multierror.Append(multi, err)
		}
	}
	if multi != nil {
		for _, id := range updateIDs {
			delete(it.updates, id)
		}
		for _, n := range tempNames {
			it.removeDynamicVariable(n)
		}
		return zero, multi
	}

	id := RuleID(uuid.New())
	it.rules[id] = &ruleEntry{updateIDs: updateIDs, tempNames: tempNames}
	it.logger.Debug("installed rule", "rule", id.String(),
		"temporaries", len(tempNames), "updates", len(updateIDs), "facts", len(rta.Facts))
	return id, nil
}

// RemoveRule retires every update and temporary variable a rule
// introduced. Facts already derived through it are not retracted (§4.8:
// this module does not support truth maintenance).
func (it *Iteration[C, T]) RemoveRule(id RuleID) error {
	re, ok := it.rules[id]
	if !ok {
		return errors.Wrapf(ErrRuleNotFound, "rule %s", id.String())
	}
	for _, uid := range re.updateIDs {
		delete(it.updates, uid)
	}
	for _, name := range re.tempNames {
		it.removeDynamicVariable(name)
	}
	delete(it.rules, id)
	it.logger.Debug("removed rule", "rule", id.String())
	return nil
}

// AddDynamicVariable declares a runtime-created variable directly (outside
// of AddRule's install protocol) — the entry point a dynamic/interpretive
// front end (package interp) uses for variables a user names explicitly,
// as opposed to the anonymous temporaries a compiled rule introduces.
func (it *Iteration[C, T]) AddDynamicVariable(name string, vtype ram.VarType) error {
	return it.addDynamicVariable(name, vtype)
}

// RemoveDynamicVariable retires a runtime-created variable by name.
func (it *Iteration[C, T]) RemoveDynamicVariable(name string) error {
	if _, ok := it.dynamics[name]; !ok {
		return errors.Wrapf(ErrUndefinedVariable, "dynamic variable %q", name)
	}
	it.removeDynamicVariable(name)
	return nil
}

// addDynamicVariable allocates a fresh dynamic variable and marks it new,
// so the next performDynamicUpdates call also seeds it from its updates'
// stable contribution (§4.7).
func (it *Iteration[C, T]) addDynamicVariable(name string, vtype ram.VarType) error {
	if _, ok := it.statics[name]; ok {
		return errors.Wrapf(ErrVariableAlreadyExists, "variable %q", name)
	}
	if _, ok := it.dynamics[name]; ok {
		return errors.Wrapf(ErrVariableAlreadyExists, "dynamic variable %q", name)
	}
	it.dynamics[name] = &dynEntry[T]{
		v:     variable.NewWithOptions[T](name, it.varOpts),
		vtype: vtype,
	}
	it.newDyn[name] = struct{}{}
	it.metrics.setVariableCount(len(it.statics) + len(it.dynamics))
	return nil
}

func (it *Iteration[C, T]) removeDynamicVariable(name string) {
	delete(it.dynamics, name)
	delete(it.newDyn, name)
	it.metrics.setVariableCount(len(it.statics) + len(it.dynamics))
}

// insertGroundFact inserts one RAM fact into its named temporary with tag
// one(ctx), per §4.8 step 3. Probability-weighted tags (singleton proofs
// keyed by a context-allocated FactID) are semiring-specific and built by
// the caller before facts reach here; Fact.Prob is not consulted.
func (it *Iteration[C, T]) insertGroundFact(f ram.Fact) error {
	v, ok := it.dynamics[f.Predicate]
	if !ok {
		return errors.Wrapf(ErrUndefinedVariable, "fact predicate %q", f.Predicate)
	}
	el := relation.Element[T]{Tup: tuple.TupleOf(f.Args...).Tuple(), Tag: it.sr.One(it.Ctx)}
	v.v.InsertToAdd(relation.FromVec([]relation.Element[T]{el}, it.combine))
	return nil
}
