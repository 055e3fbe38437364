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

package tuple

import "strings"

// Type describes the shape a Value is expected to have: it mirrors Value's
// Kind, with KindTuple types carrying a Type for each component.
type Type struct {
	Kind  Kind
	Elems []Type // only meaningful when Kind == KindTuple
}

func IntType() Type    { return Type{Kind: KindInt} }
func BoolType() Type   { return Type{Kind: KindBool} }
func StringType() Type { return Type{Kind: KindString} }
func SymbolType() Type { return Type{Kind: KindSymbol} }
func TupleType(elems ...Type) Type {
	return Type{Kind: KindTuple, Elems: elems}
}

// Check reports whether v conforms to t. Neither evaluation nor
// dynamic-rule installation calls it; ground facts are inserted without a
// shape check.
func (t Type) Check(v Value) bool {
	if t.Kind != v.Kind() {
		return false
	}
	if t.Kind != KindTuple {
		return true
	}
	tup := v.Tuple()
	if len(tup.Elems) != len(t.Elems) {
		return false
	}
	for i, et := range t.Elems {
		if !et.Check(tup.Elems[i]) {
			return false
		}
	}
	return true
}

func (t Type) String() string {
	switch t.Kind {
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindSymbol:
		return "symbol"
	case KindTuple:
		parts := make([]string, len(t.Elems))
		for i, e := range t.Elems {
			parts[i] = e.String()
		}
		return "(" + strings.Join(parts, ", ") + ")"
	default:
		return "<invalid type>"
	}
}
