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

package sdd

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// ApplyOp selects which boolean connective apply computes.
type ApplyOp int

const (
	Conjoin ApplyOp = iota
	Disjoin
)

const defaultApplyCacheSize = 4096

type applyKey struct {
	lhs, rhs SDDNodeIndex
	op       ApplyOp
}

// Config configures one Builder: the v-tree it compiles against, whether
// to garbage-collect unreachable nodes after a build, and the bound on the
// apply memo table.
type Config struct {
	VTree          *VTree
	GarbageCollect bool
	ApplyCacheSize int
}

// DefaultConfig builds a balanced v-tree over vars with garbage collection
// enabled and a default-sized apply cache.
func DefaultConfig(vars []int) Config {
	return Config{
		VTree:          NewVTree(vars, Balanced),
		GarbageCollect: true,
		ApplyCacheSize: defaultApplyCacheSize,
	}
}

// ConfigWithFormula is DefaultConfig over exactly the variables f mentions.
func ConfigWithFormula(f *BooleanFormula) Config {
	return DefaultConfig(f.CollectVars())
}

// Builder compiles BooleanFormula values into a single shared SDD arena.
// One Builder should compile one formula (Build); it is not safe to reuse
// across unrelated formulas since it recycles no state between calls.
type Builder struct {
	config Config
	nodes  *nodeStore

	falseNode, trueNode     SDDNodeIndex
	posVarNodes, negVarNodes map[int]SDDNodeIndex
	negationMap              map[SDDNodeIndex]SDDNodeIndex
	nodeVTree                map[SDDNodeIndex]VTreeNodeIndex
	applyCache               *lru.Cache[applyKey, SDDNodeIndex]
}

// NewBuilder constructs a Builder ready to compile any formula over
// config.VTree's variables.
func NewBuilder(config Config) *Builder {
	nodes := newNodeStore()
	falseNode := nodes.add(sddNode{kind: nodeLiteral, literal: literalFalse})
	trueNode := nodes.add(sddNode{kind: nodeLiteral, literal: literalTrue})

	negationMap := map[SDDNodeIndex]SDDNodeIndex{falseNode: trueNode, trueNode: falseNode}
	posVarNodes := make(map[int]SDDNodeIndex)
	negVarNodes := make(map[int]SDDNodeIndex)
	nodeVTree := make(map[SDDNodeIndex]VTreeNodeIndex)

	if config.VTree != nil {
		for v, leaf := range config.VTree.varToLeaf {
			pos := nodes.add(sddNode{kind: nodeLiteral, literal: literalPos, varID: v})
			neg := nodes.add(sddNode{kind: nodeLiteral, literal: literalNeg, varID: v})
			posVarNodes[v] = pos
			negVarNodes[v] = neg
			nodeVTree[pos] = leaf
			nodeVTree[neg] = leaf
			negationMap[pos] = neg
			negationMap[neg] = pos
		}
	}

	size := config.ApplyCacheSize
	if size <= 0 {
		size = defaultApplyCacheSize
	}
	cache, _ := lru.New[applyKey, SDDNodeIndex](size)

	return &Builder{
		config:       config,
		nodes:        nodes,
		falseNode:    falseNode,
		trueNode:     trueNode,
		posVarNodes:  posVarNodes,
		negVarNodes:  negVarNodes,
		negationMap:  negationMap,
		nodeVTree:    nodeVTree,
		applyCache:   cache,
	}
}

// Build compiles f to a canonical SDD node and, unless config.GarbageCollect
// is false, drops every node unreachable from the result.
func (b *Builder) Build(f *BooleanFormula) *SDD {
	root := b.build(f)
	if b.config.GarbageCollect {
		b.garbageCollect(root)
	}
	return &SDD{nodes: b.nodes, root: root}
}

func (b *Builder) build(f *BooleanFormula) SDDNodeIndex {
	switch f.kind {
	case formulaTrue:
		return b.trueNode
	case formulaFalse:
		return b.falseNode
	case formulaPos:
		return b.posVarNodes[f.varID]
	case formulaNeg:
		return b.negVarNodes[f.varID]
	case formulaNot:
		return b.negateNode(b.build(f.left))
	case formulaAnd:
		return b.apply(b.build(f.left), b.build(f.right), Conjoin)
	default: // formulaOr
		return b.apply(b.build(f.left), b.build(f.right), Disjoin)
	}
}

func (b *Builder) negationOf(n SDDNodeIndex) (SDDNodeIndex, bool) {
	id, ok := b.negationMap[n]
	return id, ok
}

func (b *Builder) zero(op ApplyOp) SDDNodeIndex {
	if op == Conjoin {
		return b.falseNode
	}
	return b.trueNode
}

func (b *Builder) one(op ApplyOp) SDDNodeIndex {
	if op == Conjoin {
		return b.trueNode
	}
	return b.falseNode
}

func (b *Builder) isZero(n SDDNodeIndex, op ApplyOp) bool { return n == b.zero(op) }
func (b *Builder) isOne(n SDDNodeIndex, op ApplyOp) bool  { return n == b.one(op) }
func (b *Builder) isFalse(n SDDNodeIndex) bool             { return n == b.falseNode }

// addOrNode applies the two-element trivial-decomposition shortcuts before
// falling back to allocating a fresh OR node: a decomposition of exactly
// {(p, false), (~p, true)} or {(p, true), (~p, false)} is just p or ~p, and
// {(p, s), (~p, s)} is just s regardless of p.
func (b *Builder) addOrNode(children []sddElement, vtreeNode VTreeNodeIndex) SDDNodeIndex {
	if len(children) == 2 {
		c0, c1 := children[0], children[1]
		if neg, ok := b.negationOf(c1.prime); ok && neg == c0.prime {
			switch {
			case c0.sub == b.falseNode && c1.sub == b.trueNode:
				return c1.prime
			case c0.sub == b.trueNode && c1.sub == b.falseNode:
				return c0.prime
			case c0.sub == c1.sub:
				return c0.sub
			}
		}
	}
	id := b.nodes.add(sddNode{kind: nodeOr, children: children})
	b.nodeVTree[id] = vtreeNode
	return id
}

func (b *Builder) negateNode(n SDDNodeIndex) SDDNodeIndex {
	if neg, ok := b.negationOf(n); ok {
		return neg
	}
	var negChildren []sddElement
	node := b.nodes.get(n)
	if node.kind == nodeOr {
		negChildren = make([]sddElement, len(node.children))
		for i, e := range node.children {
			negChildren[i] = sddElement{prime: e.prime, sub: b.negateNode(e.sub)}
		}
	}
	neg := b.addOrNode(negChildren, b.nodeVTree[n])
	b.negationMap[n] = neg
	b.negationMap[neg] = n
	return neg
}

// apply computes lhs `op` rhs, memoized on the canonicalized (ordered by
// v-tree position) operand pair.
func (b *Builder) apply(lhs, rhs SDDNodeIndex, op ApplyOp) SDDNodeIndex {
	if lhs == rhs {
		return lhs
	}
	if neg, ok := b.negationOf(rhs); ok && neg == lhs {
		return b.zero(op)
	}
	if b.isZero(lhs, op) || b.isZero(rhs, op) {
		return b.zero(op)
	}
	if b.isOne(lhs, op) {
		return rhs
	}
	if b.isOne(rhs, op) {
		return lhs
	}

	lhsV, rhsV := b.nodeVTree[lhs], b.nodeVTree[rhs]
	if b.config.VTree.Position(lhsV) > b.config.VTree.Position(rhsV) {
		lhs, rhs = rhs, lhs
		lhsV, rhsV = rhsV, lhsV
	}

	key := applyKey{lhs: lhs, rhs: rhs, op: op}
	if cached, ok := b.applyCache.Get(key); ok {
		return cached
	}

	kind, lca := b.config.VTree.LowestCommonAncestor(lhsV, rhsV)
	var result SDDNodeIndex
	switch kind {
	case AncestorEqual:
		result = b.applyEqual(lhs, rhs, op, lca)
	case AncestorLeft:
		result = b.applyLeft(lhs, rhs, op, lca)
	case AncestorRight:
		result = b.applyRight(lhs, rhs, op, lca)
	default: // AncestorDisjoint
		result = b.applyDisjoint(lhs, rhs, op, lca)
	}
	b.applyCache.Add(key, result)
	return result
}

// applyEqual decomposes two nodes rooted at the same v-tree node via the
// cartesian product of their elements, conjoining primes and applying op
// to subs.
func (b *Builder) applyEqual(n1, n2 SDDNodeIndex, op ApplyOp, lca VTreeNodeIndex) SDDNodeIndex {
	c1 := mustOr(b.nodes.get(n1))
	c2 := mustOr(b.nodes.get(n2))
	var newChildren []sddElement
	for _, e1 := range c1 {
		for _, e2 := range c2 {
			prime := b.apply(e1.prime, e2.prime, Conjoin)
			if b.isFalse(prime) {
				continue
			}
			sub := b.apply(e1.sub, e2.sub, op)
			newChildren = append(newChildren, sddElement{prime: prime, sub: sub})
		}
	}
	return b.addOrNode(newChildren, lca)
}

// applyLeft handles the case where n2's v-tree node is the ancestor: n1 (or
// its negation, for Disjoin) is pushed into n2's elements as an extra
// conjunct, with a residual element covering the rest of the space.
func (b *Builder) applyLeft(n1, n2 SDDNodeIndex, op ApplyOp, lca VTreeNodeIndex) SDDNodeIndex {
	n1Neg := b.negateNode(n1)
	n := n1
	if op == Disjoin {
		n = n1Neg
	}
	negOfN, _ := b.negationOf(n)
	newChildren := []sddElement{{prime: negOfN, sub: b.zero(op)}}
	for _, e := range mustOr(b.nodes.get(n2)) {
		newPrime := b.apply(e.prime, n, Conjoin)
		if !b.isFalse(newPrime) {
			newChildren = append(newChildren, sddElement{prime: newPrime, sub: e.sub})
		}
	}
	return b.addOrNode(newChildren, lca)
}

// applyRight handles the case where n1's v-tree node is the ancestor: op is
// distributed into each of n1's subs against n2.
func (b *Builder) applyRight(n1, n2 SDDNodeIndex, op ApplyOp, lca VTreeNodeIndex) SDDNodeIndex {
	var newChildren []sddElement
	for _, e := range mustOr(b.nodes.get(n1)) {
		newSub := b.apply(e.sub, n2, op)
		newChildren = append(newChildren, sddElement{prime: e.prime, sub: newSub})
	}
	return b.addOrNode(newChildren, lca)
}

// applyDisjoint handles neither node's v-tree being an ancestor of the
// other: shannon-expand on n1 and apply op to n2 against true/false.
func (b *Builder) applyDisjoint(n1, n2 SDDNodeIndex, op ApplyOp, lca VTreeNodeIndex) SDDNodeIndex {
	n1Neg := b.negateNode(n1)
	sub1 := b.apply(n2, b.trueNode, op)
	sub2 := b.apply(n2, b.falseNode, op)
	e1 := sddElement{prime: n1, sub: sub1}
	e2 := sddElement{prime: n1Neg, sub: sub2}
	return b.addOrNode([]sddElement{e1, e2}, lca)
}

func (b *Builder) garbageCollect(root SDDNodeIndex) {
	visited := make(map[SDDNodeIndex]struct{})
	b.markVisited(root, visited)
	for _, id := range b.nodes.ids() {
		if _, ok := visited[id]; !ok {
			b.nodes.remove(id)
		}
	}
}

func (b *Builder) markVisited(n SDDNodeIndex, visited map[SDDNodeIndex]struct{}) {
	if _, ok := visited[n]; ok {
		return
	}
	visited[n] = struct{}{}
	node := b.nodes.get(n)
	if node.kind == nodeOr {
		for _, e := range node.children {
			b.markVisited(e.prime, visited)
			b.markVisited(e.sub, visited)
		}
	}
}
