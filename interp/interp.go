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

// Package interp is the dynamic/interpretive surface over an iteration.
// Iteration: named, runtime-created variables and rules supplied as
// source text, mirroring the original driver's Program trait. The
// compiler that turns rule source into RuleToAdd is out of this module's
// scope (§1's parser/analyzer/codegen non-goal); Program only carries the
// registry of declared variable types a real compiler would need and
// delegates everything else to Compiler.
package interp

import (
	"github.com/pkg/errors"

	"github.com/kevinawalsh/provdl/iteration"
	"github.com/kevinawalsh/provdl/ram"
	"github.com/kevinawalsh/provdl/variable"
)

// Compiler turns rule source text into a RuleToAdd, given the variable
// types already declared against the Program. Implementations live
// outside this module (a parser + analyzer + ast2ram lowering pass).
type Compiler interface {
	CompileRule(source string, declared map[string]ram.VarType) (iteration.RuleToAdd, error)
}

// NullCompiler always fails; it exists so Program has a usable zero-effort
// default and so tests can exercise AddRule's error path without a real
// compiler.
type NullCompiler struct{}

func (NullCompiler) CompileRule(source string, _ map[string]ram.VarType) (iteration.RuleToAdd, error) {
	return iteration.RuleToAdd{}, errors.Errorf("interp: no rule compiler configured, cannot parse %q", source)
}

// Program pairs an Iteration with a Compiler and the registry of variable
// types a compiler needs for type assignment (compiler.rs's
// CompilerContext.variables).
type Program[C any, T any] struct {
	It       *iteration.Iteration[C, T]
	Compiler Compiler

	declared map[string]ram.VarType
}

// NewProgram wraps an already-constructed Iteration. compiler may be
// NullCompiler{} if rule source will never be compiled at runtime (e.g. a
// program built entirely from AddRuleCompiled / Iteration.AddVariable).
func NewProgram[C any, T any](it *iteration.Iteration[C, T], compiler Compiler) *Program[C, T] {
	return &Program[C, T]{It: it, Compiler: compiler, declared: make(map[string]ram.VarType)}
}

// AddVariable declares a runtime-created (dynamic) variable, tracked under
// its declared type for future rule compilation.
func (p *Program[C, T]) AddVariable(name string, vtype ram.VarType) error {
	if err := p.It.AddDynamicVariable(name, vtype); err != nil {
		return err
	}
	p.declared[name] = vtype
	return nil
}

// GetVariable looks up a runtime-created (or static) variable by name.
func (p *Program[C, T]) GetVariable(name string) (*variable.Variable[T], error) {
	return p.It.GetVariable(name)
}

// RemoveVariable retires a runtime-created variable.
func (p *Program[C, T]) RemoveVariable(name string) error {
	if err := p.It.RemoveDynamicVariable(name); err != nil {
		return err
	}
	delete(p.declared, name)
	return nil
}

// AddRule compiles rule source against the current variable registry and
// installs it via Iteration.AddRule, recording any temporaries the
// compiler introduced so later rules can see them too.
func (p *Program[C, T]) AddRule(source string) (iteration.RuleID, error) {
	var zero iteration.RuleID
	rta, err := p.Compiler.CompileRule(source, p.declared)
	if err != nil {
		return zero, errors.Wrapf(err, "compiling rule %q", source)
	}
	id, err := p.It.AddRule(rta)
	if err != nil {
		return zero, err
	}
	for _, tmp := range rta.Temporaries {
		p.declared[tmp.Name] = tmp.ArgType
	}
	return id, nil
}

// AddRuleCompiled installs an already-compiled RuleToAdd directly, for
// callers that build RAM IR themselves instead of going through Compiler.
func (p *Program[C, T]) AddRuleCompiled(rta iteration.RuleToAdd) (iteration.RuleID, error) {
	id, err := p.It.AddRule(rta)
	if err != nil {
		return iteration.RuleID{}, err
	}
	for _, tmp := range rta.Temporaries {
		p.declared[tmp.Name] = tmp.ArgType
	}
	return id, nil
}

// RemoveRule reverses the effect of AddRule/AddRuleCompiled. It does not
// forget the temporaries' declared types, matching the original's
// explicit non-support for retracting already-derived facts (§4.8): a
// removed rule's name may be redeclared, but stale type info for an
// unrelated future rule referencing the same name by coincidence is the
// caller's problem, not this package's.
func (p *Program[C, T]) RemoveRule(id iteration.RuleID) error {
	return p.It.RemoveRule(id)
}

// Run delegates to Iteration.Run.
func (p *Program[C, T]) Run(initialize, update func()) error {
	return p.It.Run(initialize, update)
}
