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
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kevinawalsh/provdl/ram"
	"github.com/kevinawalsh/provdl/semiring"
	"github.com/kevinawalsh/provdl/tuple"
)

func rows(t *testing.T, it *Iteration[semiring.BooleanContext, bool], name string) [][]int64 {
	t.Helper()
	v, err := it.GetVariable(name)
	require.NoError(t, err)
	rel := v.Complete(it.Combine())
	out := make([][]int64, 0, rel.Len())
	for _, e := range rel.Elements {
		row := make([]int64, len(e.Tup.Elems))
		for i, val := range e.Tup.Elems {
			row[i] = val.Int()
		}
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i][0] < out[j][0] })
	return out
}

// TestAddRuleInstallsAndRuns exercises the §4.8 protocol end to end: a
// dynamic rule is installed swapping every pair in a static "edge"
// variable into a fresh temporary, and the fixpoint loop alone (no
// update() hook) is enough to populate it.
func TestAddRuleInstallsAndRuns(t *testing.T) {
	it := New[semiring.BooleanContext, bool](semiring.BooleanSemiring{}, semiring.BooleanContext{})

	_, err := it.AddVariable("edge")
	require.NoError(t, err)

	id, err := it.AddRule(RuleToAdd{
		Temporaries: []ram.Variable{{Name: "swapped", IsTemporary: true}},
		Updates: []ram.Update{{
			IntoVar: "swapped",
			Flow: ram.Flow{
				Kind:   ram.FlowProject,
				Source: &ram.Flow{Kind: ram.FlowVariable, VarName: "edge"},
				Arg:    ram.TupleExpr(ram.Element(tuple.Accessor{1}), ram.Element(tuple.Accessor{0})),
			},
		}},
	})
	require.NoError(t, err)

	initialize := func() {
		require.NoError(t, it.InsertFact("edge", tuple.Int(1), tuple.Int(2)))
		require.NoError(t, it.InsertFact("edge", tuple.Int(3), tuple.Int(4)))
	}
	require.NoError(t, it.Run(initialize, nil))

	require.Equal(t, [][]int64{{2, 1}, {4, 3}}, rows(t, it, "swapped"))

	require.NoError(t, it.RemoveRule(id))
	_, err = it.GetVariable("swapped")
	require.ErrorIs(t, err, ErrUndefinedVariable)
}

func TestRemoveRuleUnknown(t *testing.T) {
	it := New[semiring.BooleanContext, bool](semiring.BooleanSemiring{}, semiring.BooleanContext{})
	err := it.RemoveRule(RuleID{})
	require.ErrorIs(t, err, ErrRuleNotFound)
}

// TestAddRuleRollsBackOnUndefinedTarget ensures a malformed RuleToAdd
// (a ground fact for a predicate that isn't one of its own temporaries)
// leaves no partial state behind.
func TestAddRuleRollsBackOnUndefinedTarget(t *testing.T) {
	it := New[semiring.BooleanContext, bool](semiring.BooleanSemiring{}, semiring.BooleanContext{})

	_, err := it.AddRule(RuleToAdd{
		Temporaries: []ram.Variable{{Name: "tmp", IsTemporary: true}},
		Facts: []ram.Fact{
			{Predicate: "not_tmp", Args: []tuple.Value{tuple.Int(1)}},
		},
	})
	require.Error(t, err)

	_, err = it.GetVariable("tmp")
	require.ErrorIs(t, err, ErrUndefinedVariable)
}
