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

// Package tuple implements the closed-sum tuple value model that every
// relation, batch, and dataflow operator in provdl operates on: integers,
// booleans, strings, symbols, and nested tuples, with a total structural
// order.
package tuple

import (
	"fmt"
	"strings"
)

// Kind distinguishes the variants of Value.
type Kind int

const (
	KindInt Kind = iota
	KindBool
	KindString
	KindSymbol
	KindTuple
)

// Value is a single Datalog-level value: one of int64, bool, string, symbol
// (an unsigned identifier), or a nested Tuple. The zero Value has KindInt
// and equals Int(0).
type Value struct {
	kind Kind
	i    int64
	b    bool
	s    string
	sym  uint64
	tup  *Tuple
}

// Tuple is an ordered, finite sequence of values.
type Tuple struct {
	Elems []Value
}

func Int(i int64) Value       { return Value{kind: KindInt, i: i} }
func Bool(b bool) Value        { return Value{kind: KindBool, b: b} }
func String(s string) Value    { return Value{kind: KindString, s: s} }
func Symbol(sym uint64) Value  { return Value{kind: KindSymbol, sym: sym} }
func TupleOf(elems ...Value) Value {
	return Value{kind: KindTuple, tup: &Tuple{Elems: elems}}
}

func (v Value) Kind() Kind { return v.kind }

// IsTrue panics if v is not a boolean; callers (Filter, short-circuit
// evaluation) are expected to have type-checked already.
func (v Value) IsTrue() bool {
	if v.kind != KindBool {
		panic("tuple: IsTrue on non-boolean value")
	}
	return v.b
}

func (v Value) Int() int64      { return v.i }
func (v Value) Bool() bool      { return v.b }
func (v Value) Str() string     { return v.s }
func (v Value) Sym() uint64     { return v.sym }
func (v Value) Tuple() *Tuple   { return v.tup }

// At returns the i'th element of a tuple value; panics on non-tuples or out
// of range, matching the "unreachable by construction" contract for
// well-typed flows (spec §4.5 / §7).
func (v Value) At(i int) Value {
	if v.kind != KindTuple {
		panic("tuple: At on non-tuple value")
	}
	return v.tup.Elems[i]
}

// Get resolves a tuple accessor: a sequence of byte indices locating a
// sub-value, applied left to right.
func (v Value) Get(acc Accessor) Value {
	cur := v
	for _, i := range acc {
		cur = cur.At(i)
	}
	return cur
}

// Accessor is a tuple accessor: a finite sequence of indices locating a
// sub-value. Accessors of length > 3 arise only from nested tuples deeper
// than the lowering pass balances for; Get handles any depth uniformly.
type Accessor []int

// Cmp implements the total structural order over Value: Kind first (so
// comparisons across kinds are still total, even though no well-typed flow
// produces them), then the kind-specific comparison.
func (v Value) Cmp(other Value) int {
	if v.kind != other.kind {
		if v.kind < other.kind {
			return -1
		}
		return 1
	}
	switch v.kind {
	case KindInt:
		return cmpInt64(v.i, other.i)
	case KindBool:
		return cmpBool(v.b, other.b)
	case KindString:
		return strings.Compare(v.s, other.s)
	case KindSymbol:
		return cmpUint64(v.sym, other.sym)
	case KindTuple:
		return v.tup.Cmp(other.tup)
	default:
		panic("tuple: invalid Value kind")
	}
}

func (v Value) Equal(other Value) bool { return v.Cmp(other) == 0 }

func cmpInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpUint64(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpBool(a, b bool) int {
	if a == b {
		return 0
	}
	if !a {
		return -1
	}
	return 1
}

// Cmp compares two tuples lexicographically by element, then by length
// (the shorter, otherwise-equal prefix sorts first).
func (t *Tuple) Cmp(other *Tuple) int {
	n := len(t.Elems)
	if len(other.Elems) < n {
		n = len(other.Elems)
	}
	for i := 0; i < n; i++ {
		if c := t.Elems[i].Cmp(other.Elems[i]); c != 0 {
			return c
		}
	}
	return cmpInt64(int64(len(t.Elems)), int64(len(other.Elems)))
}

func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return fmt.Sprintf("%d", v.i)
	case KindBool:
		return fmt.Sprintf("%t", v.b)
	case KindString:
		return fmt.Sprintf("%q", v.s)
	case KindSymbol:
		return fmt.Sprintf("#%d", v.sym)
	case KindTuple:
		return v.tup.String()
	default:
		return "<invalid>"
	}
}

func (t *Tuple) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for i, e := range t.Elems {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(e.String())
	}
	b.WriteByte(')')
	return b.String()
}
