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

// Package sdd implements sentential decision diagrams: a canonical,
// v-tree-respecting boolean formula representation supporting polynomial
// apply and a generic bottom-up evaluator over any numeric semiring. The
// wmc package above compiles provenance proof sets through here.
package sdd

import "sort"

// VTreeNodeIndex indexes one node of a VTree. Node indices are assigned in
// preorder at construction time, which doubles as the total order apply
// uses to decide which operand decomposes a join.
type VTreeNodeIndex int

type vtreeNode struct {
	leaf     bool
	variable int
	left     VTreeNodeIndex
	right    VTreeNodeIndex
	parent   VTreeNodeIndex
	enter    int
	exit     int
}

// VTreeType selects how a fresh VTree arranges its variables. Only the
// balanced construction is implemented: it is the only strategy any caller
// in this module needs (formula compilation always builds one v-tree per
// proof set, with no reuse across calls that would reward a different
// shape).
type VTreeType int

const (
	Balanced VTreeType = iota
)

// VTree is a binary tree over a fixed set of variables.
type VTree struct {
	nodes     []vtreeNode
	varToLeaf map[int]VTreeNodeIndex
	root      VTreeNodeIndex
}

// NewVTree builds a v-tree over vars (duplicates collapsed). An empty vars
// slice yields a tree with no nodes, over which only the constant formulas
// True and False can be compiled.
func NewVTree(vars []int, kind VTreeType) *VTree {
	uniq := dedupSorted(vars)
	t := &VTree{varToLeaf: make(map[int]VTreeNodeIndex, len(uniq))}
	if len(uniq) == 0 {
		return t
	}
	clock := 0
	var build func(vs []int) VTreeNodeIndex
	build = func(vs []int) VTreeNodeIndex {
		idx := VTreeNodeIndex(len(t.nodes))
		t.nodes = append(t.nodes, vtreeNode{parent: -1})
		t.nodes[idx].enter = clock
		clock++
		if len(vs) == 1 {
			t.nodes[idx].leaf = true
			t.nodes[idx].variable = vs[0]
			t.varToLeaf[vs[0]] = idx
		} else {
			mid := len(vs) / 2
			left := build(vs[:mid])
			right := build(vs[mid:])
			t.nodes[idx].left = left
			t.nodes[idx].right = right
			t.nodes[left].parent = idx
			t.nodes[right].parent = idx
		}
		t.nodes[idx].exit = clock - 1
		return idx
	}
	t.root = build(uniq)
	return t
}

func dedupSorted(vars []int) []int {
	seen := make(map[int]struct{}, len(vars))
	out := make([]int, 0, len(vars))
	for _, v := range vars {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Ints(out)
	return out
}

// Leaf returns the leaf node holding v.
func (t *VTree) Leaf(v int) VTreeNodeIndex { return t.varToLeaf[v] }

// Position returns n's preorder rank, a total order consistent with the
// tree: an ancestor always sorts before its descendants, and a node's left
// subtree always sorts before its right subtree.
func (t *VTree) Position(n VTreeNodeIndex) int { return int(n) }

func (t *VTree) isAncestor(x, y VTreeNodeIndex) bool {
	return t.nodes[x].enter <= t.nodes[y].enter && t.nodes[y].exit <= t.nodes[x].exit
}

// AncestorType classifies how two v-tree nodes relate for apply's
// decomposition.
type AncestorType int

const (
	// AncestorEqual: a and b are the same v-tree node.
	AncestorEqual AncestorType = iota
	// AncestorLeft: b is an ancestor of a (a's operand decomposes nothing;
	// it is pushed down as a literal conjunct alongside b's elements).
	AncestorLeft
	// AncestorRight: a is an ancestor of b (symmetric to AncestorLeft).
	AncestorRight
	// AncestorDisjoint: neither is an ancestor of the other.
	AncestorDisjoint
)

// LowestCommonAncestor reports how a and b relate, plus the v-tree node at
// which their apply decomposes.
func (t *VTree) LowestCommonAncestor(a, b VTreeNodeIndex) (AncestorType, VTreeNodeIndex) {
	if a == b {
		return AncestorEqual, a
	}
	if t.isAncestor(a, b) {
		return AncestorRight, a
	}
	if t.isAncestor(b, a) {
		return AncestorLeft, b
	}
	return AncestorDisjoint, t.lowestCommonAncestor(a, b)
}

func (t *VTree) lowestCommonAncestor(a, b VTreeNodeIndex) VTreeNodeIndex {
	ancestors := make(map[VTreeNodeIndex]struct{})
	for n := a; n != -1; n = t.nodes[n].parent {
		ancestors[n] = struct{}{}
	}
	for n := b; n != -1; n = t.nodes[n].parent {
		if _, ok := ancestors[n]; ok {
			return n
		}
	}
	return t.root
}
