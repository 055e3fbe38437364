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

// Package iteration drives the semi-naive fixpoint loop: it owns the
// semiring context, every static and dynamic variable, the registry of
// dynamic updates and rules, and the round counter (§4.7-4.8).
package iteration

import (
	"github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"

	"github.com/kevinawalsh/provdl/batch"
	"github.com/kevinawalsh/provdl/dataflow"
	"github.com/kevinawalsh/provdl/ram"
	"github.com/kevinawalsh/provdl/relation"
	"github.com/kevinawalsh/provdl/semiring"
	"github.com/kevinawalsh/provdl/tuple"
	"github.com/kevinawalsh/provdl/variable"
)

// dynEntry pairs a dynamic variable with its declared RAM shape, the only
// thing static variables don't need to carry (their shape is known to the
// caller that declared them in Go).
type dynEntry[T any] struct {
	v     *variable.Variable[T]
	vtype ram.VarType
}

// Iteration drives one fixpoint computation under a chosen provenance
// semiring. C is the semiring's context type, T its tag type.
type Iteration[C any, T any] struct {
	// Ctx is the semiring context, mutably borrowed only while building
	// fresh fact tags or inserting elements (§5); all other access is
	// read-only.
	Ctx C

	sr semiring.Semiring[C, T]

	logger  hclog.Logger
	metrics *metrics
	varOpts variable.Options

	statics  map[string]*variable.Variable[T]
	dynamics map[string]*dynEntry[T]
	newDyn   map[string]struct{}

	updates      map[int]ram.Update
	nextUpdateID int

	rules map[RuleID]*ruleEntry

	round int
}

// New creates an Iteration bound to one semiring instance and a fresh (or
// caller-supplied) context.
func New[C any, T any](sr semiring.Semiring[C, T], ctx C, opts ...Option) *Iteration[C, T] {
	o := Options{Logger: hclog.NewNullLogger()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.Logger == nil {
		o.Logger = hclog.NewNullLogger()
	}
	return &Iteration[C, T]{
		Ctx:      ctx,
		sr:       sr,
		logger:   o.Logger.Named("iteration"),
		metrics:  newMetrics(o.Registerer, o.Name),
		varOpts:  o.VariableOptions,
		statics:  make(map[string]*variable.Variable[T]),
		dynamics: make(map[string]*dynEntry[T]),
		newDyn:   make(map[string]struct{}),
		updates:  make(map[int]ram.Update),
		rules:    make(map[RuleID]*ruleEntry),
	}
}

// combine is the semiring's ⊕ closed over the current context; it is
// recomputed (not cached) each call since Ctx may be mutated in place.
func (it *Iteration[C, T]) combine(a, b T) T { return it.sr.Add(it.Ctx, a, b) }

// mul is the semiring's ⊗ closed over the current context.
func (it *Iteration[C, T]) mul(a, b T) T { return it.sr.Mult(it.Ctx, a, b) }

// AddVariable declares a program-level (static) variable: one that exists
// for the lifetime of the Iteration and is never retired by RemoveRule.
func (it *Iteration[C, T]) AddVariable(name string) (*variable.Variable[T], error) {
	if _, ok := it.statics[name]; ok {
		return nil, errors.Wrapf(ErrVariableAlreadyExists, "static variable %q", name)
	}
	if _, ok := it.dynamics[name]; ok {
		return nil, errors.Wrapf(ErrVariableAlreadyExists, "variable %q", name)
	}
	v := variable.NewWithOptions[T](name, it.varOpts)
	it.statics[name] = v
	it.logger.Debug("added static variable", "name", name)
	it.metrics.setVariableCount(len(it.statics) + len(it.dynamics))
	return v, nil
}

// GetVariable looks up a variable (static or dynamic) by name.
func (it *Iteration[C, T]) GetVariable(name string) (*variable.Variable[T], error) {
	if v, ok := it.statics[name]; ok {
		return v, nil
	}
	if e, ok := it.dynamics[name]; ok {
		return e.v, nil
	}
	return nil, errors.Wrapf(ErrUndefinedVariable, "variable %q", name)
}

// InsertFact inserts one ground tuple into a named variable with tag
// one(ctx) — the tag every non-probabilistic ground fact carries; callers
// needing a probability-weighted tag build it via the semiring context
// directly (e.g. semiring.ProbContext.AllocFact) and insert a relation of
// their own construction instead.
func (it *Iteration[C, T]) InsertFact(varName string, args ...tuple.Value) error {
	v, err := it.GetVariable(varName)
	if err != nil {
		return err
	}
	el := relation.Element[T]{Tup: tuple.TupleOf(args...).Tuple(), Tag: it.sr.One(it.Ctx)}
	v.InsertToAdd(relation.FromVec([]relation.Element[T]{el}, it.combine))
	return nil
}

// lookup resolves a RAM variable name to the Dataflow over it, for use by
// ram.Compile when lowering an update's Flow.
func (it *Iteration[C, T]) lookup(name string) (dataflow.Dataflow[T], error) {
	v, err := it.GetVariable(name)
	if err != nil {
		return nil, err
	}
	return dataflow.FromVariable(v), nil
}

// Lookup is the exported form of lookup, for user code building a static
// update graph in its update() hook (§5: static dataflow construction is
// the caller's responsibility, not the driver's).
func (it *Iteration[C, T]) Lookup(name string) (dataflow.Dataflow[T], error) {
	return it.lookup(name)
}

// Combine exposes the semiring's ⊕ closed over the current context, for
// user code folding a freshly compiled Dataflow's output before calling
// Variable.InsertToAdd.
func (it *Iteration[C, T]) Combine() relation.Combine[T] { return it.combine }

// Mul exposes the semiring's ⊗ closed over the current context, for user
// code compiling its own Flow via ram.Compile.
func (it *Iteration[C, T]) Mul() func(a, b T) T { return it.mul }

// Flatten drains a compiled Dataflow's stable or recent generations into
// one de-duplicated Relation ready for Variable.InsertToAdd.
func (it *Iteration[C, T]) Flatten(bs batch.Batches[T]) relation.Relation[T] {
	return flatten[T](bs, it.combine)
}

// changed delegates to every static and dynamic variable, rotating each
// one's to_add/recent/stable partitions, and reports whether any of them
// produced new recent facts this round.
func (it *Iteration[C, T]) changed() bool {
	it.round++
	any := false
	for _, v := range it.statics {
		if v.Changed(it.combine) {
			any = true
		}
	}
	for _, e := range it.dynamics {
		if e.v.Changed(it.combine) {
			any = true
		}
	}
	it.metrics.round()
	it.logger.Trace("round complete", "round", it.round, "changed", any)
	return any
}

// hasNewVariable reports whether any dynamic variable's first changed()
// call has not yet occurred (§4.7's "new variable" rule).
func (it *Iteration[C, T]) hasNewVariable() bool {
	return len(it.newDyn) > 0
}

func (it *Iteration[C, T]) clearNewVariables() {
	it.newDyn = make(map[string]struct{})
}

// performDynamicUpdates recomputes every registered update's Flow and
// inserts the result into its target's to_add; a fresh target also
// receives the flow's stable contribution, so stable facts produced before
// the variable existed aren't missed (§4.7, §4.8).
func (it *Iteration[C, T]) performDynamicUpdates() error {
	for _, upd := range it.updates {
		d, err := ram.Compile[T](&upd.Flow, it.lookup, it.mul)
		if err != nil {
			return errors.Wrapf(err, "compiling update into %q", upd.IntoVar)
		}
		target, err := it.GetVariable(upd.IntoVar)
		if err != nil {
			return err
		}
		if _, isNew := it.newDyn[upd.IntoVar]; isNew {
			target.InsertToAdd(flatten[T](d.IterStable(), it.combine))
		}
		target.InsertToAdd(flatten[T](d.IterRecent(), it.combine))
	}
	return nil
}

// Round reports how many changed() rotations Run has performed so far,
// including the final one that found nothing new.
func (it *Iteration[C, T]) Round() int { return it.round }

// Run executes the §4.7 fixpoint loop: initialize runs once, then the loop
// condition itself performs the changed() rotation (short-circuited by
// hasNewVariable, exactly as the driver's own run() does) before each
// round of update() and dynamic-update execution. update may be nil for a
// purely dynamic-rule-driven Iteration.
func (it *Iteration[C, T]) Run(initialize func(), update func()) error {
	if initialize != nil {
		initialize()
	}
	var updateErr error
	for it.hasNewVariable() || it.changed() {
		if update != nil {
			update()
		}
		if err := it.performDynamicUpdates(); err != nil {
			updateErr = err
			break
		}
		it.clearNewVariables()
	}
	return updateErr
}
