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

package ram

import "github.com/kevinawalsh/provdl/tuple"

// Eval interprets an expression against one input tuple. Integer arithmetic
// wraps on overflow; comparisons are total on integer and symbol and
// lexicographic on strings; boolean operators short-circuit. Division by
// zero is the caller's responsibility to have ruled out upstream (§4.5);
// Eval panics rather than silently producing a wrong answer.
func Eval(e *Expr, input tuple.Value) tuple.Value {
	switch e.Kind {
	case ExprElement:
		return input.Get(e.Accessor)
	case ExprConstant:
		return e.Const
	case ExprTuple:
		elems := make([]tuple.Value, len(e.Elems))
		for i := range e.Elems {
			elems[i] = Eval(&e.Elems[i], input)
		}
		return tuple.TupleOf(elems...)
	case ExprUnary:
		return evalUnary(e.UOp, Eval(e.Operand, input))
	case ExprBinary:
		return evalBinary(e.Op, e.Left, e.Right, input)
	default:
		panic("ram: invalid Expr kind")
	}
}

func evalUnary(op UnaryOp, v tuple.Value) tuple.Value {
	switch op {
	case OpNot:
		return tuple.Bool(!v.IsTrue())
	case OpPos:
		return v
	case OpNeg:
		return tuple.Int(-v.Int())
	default:
		panic("ram: invalid UnaryOp")
	}
}

// evalBinary takes the unevaluated operand Exprs (rather than pre-evaluated
// values) so And/Or can short-circuit without evaluating the other side.
func evalBinary(op BinaryOp, left, right *Expr, input tuple.Value) tuple.Value {
	if op == OpAnd {
		l := Eval(left, input)
		if !l.IsTrue() {
			return tuple.Bool(false)
		}
		return tuple.Bool(Eval(right, input).IsTrue())
	}
	if op == OpOr {
		l := Eval(left, input)
		if l.IsTrue() {
			return tuple.Bool(true)
		}
		return tuple.Bool(Eval(right, input).IsTrue())
	}

	l := Eval(left, input)
	r := Eval(right, input)
	switch op {
	case OpEq:
		return tuple.Bool(l.Equal(r))
	case OpNe:
		return tuple.Bool(!l.Equal(r))
	case OpLt:
		return tuple.Bool(l.Cmp(r) < 0)
	case OpLte:
		return tuple.Bool(l.Cmp(r) <= 0)
	case OpGt:
		return tuple.Bool(l.Cmp(r) > 0)
	case OpGte:
		return tuple.Bool(l.Cmp(r) >= 0)
	case OpAdd:
		return tuple.Int(l.Int() + r.Int())
	case OpSub:
		return tuple.Int(l.Int() - r.Int())
	case OpMul:
		return tuple.Int(l.Int() * r.Int())
	case OpDiv:
		return tuple.Int(l.Int() / r.Int())
	default:
		panic("ram: invalid BinaryOp")
	}
}
