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

// Package ram defines the normalized relational-algebra-machine program
// that an external frontend (parser, analyzer, codegen — none of which live
// in this module) hands to the iteration driver: variables, ground facts,
// disjunctions, and updates expressed as Flow trees over Expr leaves.
package ram

import "github.com/kevinawalsh/provdl/tuple"

// VarKind distinguishes a variable's declared shape. It is recorded with
// dynamic variables and passed to a rule compiler; ground facts are not
// validated against it, and flow evaluation never consults it.
type VarKind int

const (
	// VarEmpty is the nullary (fact-existence-only) shape.
	VarEmpty VarKind = iota
	VarBase
	VarTuple
)

// VarType mirrors a RAM variable's declared tuple shape.
type VarType struct {
	Kind VarKind
	Base tuple.Kind  // meaningful when Kind == VarBase
	Elem []VarType   // meaningful when Kind == VarTuple
}

// Variable declares one named container (temporary or program-level).
type Variable struct {
	Name        string
	IsTemporary bool
	ArgType     VarType
}

// Fact is one ground tuple destined for a named variable, with optional
// probability metadata for probabilistic semirings.
type Fact struct {
	Predicate string
	Args      []tuple.Value
	Prob      *float64
}

// Disjunction groups facts of which at most one may hold simultaneously
// (mutual exclusion). Nothing in this module converts it into
// semiring.ProbContext's conflict table; that table is filled through
// ProbContext.AddDisjunction with fact ids.
type Disjunction struct {
	ID    int
	Facts []Fact
}

// Update binds one Flow's evaluation into a target variable's to_add.
type Update struct {
	IntoVar string
	Flow    Flow
}

// Program is the complete normalized input to one iteration: every
// variable, every ground fact, every disjunction, every update.
type Program struct {
	Variables    []Variable
	Facts        []Fact
	Disjunctions []Disjunction
	Updates      []Update
}

// Flow is a RAM dataflow expression: a named Variable reference composed
// with the §4.5 operators. Kind selects the operator; the comments below
// mark which fields each kind reads.
type FlowKind int

const (
	FlowVariable FlowKind = iota
	FlowProject
	FlowFilter
	FlowFind
	FlowProduct
	FlowIntersect
	FlowJoin
	FlowContainsChain
)

type Flow struct {
	Kind FlowKind

	// FlowVariable
	VarName string

	// FlowProject / FlowFilter: Source + Arg (the map/predicate expression)
	// FlowFind: Source + Const (the lookup key)
	// FlowProduct / FlowIntersect / FlowJoin: Source (left) + Other (right)
	// FlowContainsChain: Source (lookup table) + KeyConsts + Other (feed)
	Source    *Flow
	Other     *Flow
	Arg       Expr
	Const     tuple.Value
	KeyConsts []tuple.Value
}

// ExprKind distinguishes Expr's variants.
type ExprKind int

const (
	ExprElement ExprKind = iota
	ExprConstant
	ExprTuple
	ExprBinary
	ExprUnary
)

// BinaryOp is a RAM binary expression operator.
type BinaryOp int

const (
	OpEq BinaryOp = iota
	OpNe
	OpLt
	OpLte
	OpGt
	OpGte
	OpAnd
	OpOr
	OpAdd
	OpSub
	OpMul
	OpDiv
)

// UnaryOp is a RAM unary expression operator.
type UnaryOp int

const (
	OpNot UnaryOp = iota
	OpPos
	OpNeg
)

// Expr is a pure expression over one input tuple: a tuple accessor, a
// constant, a tuple constructor, or a binary/unary operator application.
type Expr struct {
	Kind ExprKind

	// ExprElement
	Accessor tuple.Accessor

	// ExprConstant
	Const tuple.Value

	// ExprTuple
	Elems []Expr

	// ExprBinary
	Op    BinaryOp
	Left  *Expr
	Right *Expr

	// ExprUnary
	UOp     UnaryOp
	Operand *Expr
}

func Element(acc tuple.Accessor) Expr { return Expr{Kind: ExprElement, Accessor: acc} }
func Constant(v tuple.Value) Expr     { return Expr{Kind: ExprConstant, Const: v} }
func TupleExpr(elems ...Expr) Expr    { return Expr{Kind: ExprTuple, Elems: elems} }
func Binary(op BinaryOp, l, r Expr) Expr {
	return Expr{Kind: ExprBinary, Op: op, Left: &l, Right: &r}
}
func Unary(op UnaryOp, e Expr) Expr { return Expr{Kind: ExprUnary, UOp: op, Operand: &e} }
