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

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kevinawalsh/provdl/tuple"
)

func inputOf(vals ...tuple.Value) tuple.Value { return tuple.TupleOf(vals...) }

func TestEvalElement(t *testing.T) {
	e := Element(tuple.Accessor{1})
	v := Eval(&e, inputOf(tuple.Int(10), tuple.Int(20)))
	require.Equal(t, int64(20), v.Int())
}

func TestEvalArithmeticWraps(t *testing.T) {
	e := Binary(OpAdd, Constant(tuple.Int(9223372036854775807)), Constant(tuple.Int(1)))
	v := Eval(&e, inputOf())
	require.Equal(t, int64(-9223372036854775808), v.Int())
}

func TestEvalComparison(t *testing.T) {
	e := Binary(OpLt, Constant(tuple.Int(1)), Constant(tuple.Int(2)))
	v := Eval(&e, inputOf())
	require.True(t, v.IsTrue())
}

func TestEvalStringComparisonLexicographic(t *testing.T) {
	e := Binary(OpLt, Constant(tuple.String("abc")), Constant(tuple.String("abd")))
	v := Eval(&e, inputOf())
	require.True(t, v.IsTrue())
}

func TestEvalAndShortCircuits(t *testing.T) {
	// Dividing by zero on the right-hand side would panic if evaluated;
	// short-circuit on a false left must prevent that.
	divByZero := Binary(OpDiv, Constant(tuple.Int(1)), Constant(tuple.Int(0)))
	e := Binary(OpAnd, Constant(tuple.Bool(false)), divByZero)
	require.NotPanics(t, func() {
		v := Eval(&e, inputOf())
		require.False(t, v.IsTrue())
	})
}

func TestEvalOrShortCircuits(t *testing.T) {
	divByZero := Binary(OpDiv, Constant(tuple.Int(1)), Constant(tuple.Int(0)))
	e := Binary(OpOr, Constant(tuple.Bool(true)), divByZero)
	require.NotPanics(t, func() {
		v := Eval(&e, inputOf())
		require.True(t, v.IsTrue())
	})
}

func TestEvalUnaryNeg(t *testing.T) {
	e := Unary(OpNeg, Constant(tuple.Int(5)))
	v := Eval(&e, inputOf())
	require.Equal(t, int64(-5), v.Int())
}

func TestEvalTupleConstructor(t *testing.T) {
	e := TupleExpr(Element(tuple.Accessor{0}), Constant(tuple.Int(42)))
	v := Eval(&e, inputOf(tuple.Int(7)))
	require.Equal(t, int64(7), v.Tuple().Elems[0].Int())
	require.Equal(t, int64(42), v.Tuple().Elems[1].Int())
}
