// Package bdd implements component B: a hash-consed binary decision diagram
// engine over prefix-address, slash-length, and community variables, used to
// represent and combine prefix/community predicates during compilation.
package bdd

import (
	"fmt"
	"sort"
	"sync"
)

// Ref is a signed handle into an Engine's node table. The sign carries
// negation: -r denotes the complement of whatever r denotes, computed
// without touching the table. Node index 0 is never issued; index 1 is the
// constant terminal, so True == 1 and False == -1 (avoiding the -0
// ambiguity a node-0 terminal would hit).
type Ref int

const (
	True  Ref = 1
	False Ref = -1
)

type node struct {
	v         int // variable index; -1 for the terminal
	low, high Ref
}

type key struct {
	v         int
	low, high Ref
}

// Engine is a hash-consed BDD table plus an AND cache. The variable universe
// is fixed at construction time and ordered lexicographically by name (spec
// §4.B); callers look variables up by name via Var.
type Engine struct {
	mu       sync.Mutex
	nodes    []node
	table    map[key]Ref
	andCache map[[2]Ref]Ref
	varNames []string
	varIndex map[string]int
	varNodes map[string]Ref
}

// NewEngine declares the full variable universe the engine will ever see.
// Declaring it up front keeps variable indices (and therefore the ordering
// that AND recursion relies on) stable for the engine's whole lifetime.
func NewEngine(varNames []string) *Engine {
	names := append([]string(nil), varNames...)
	sort.Strings(names)
	idx := make(map[string]int, len(names))
	for i, n := range names {
		idx[n] = i
	}
	e := &Engine{
		nodes:    make([]node, 2), // 0 unused, 1 is the terminal
		table:    make(map[key]Ref),
		andCache: make(map[[2]Ref]Ref),
		varNames: names,
		varIndex: idx,
		varNodes: make(map[string]Ref, len(names)),
	}
	e.nodes[1] = node{v: -1}
	return e
}

func absRef(r Ref) Ref {
	if r < 0 {
		return -r
	}
	return r
}

// Not negates r in O(1): no table lookup, no recursion.
func (e *Engine) Not(r Ref) Ref { return -r }

// Var returns the Ref for the named variable, hash-consing it on first use.
// It panics if name was not part of the universe passed to NewEngine.
func (e *Engine) Var(name string) Ref {
	e.mu.Lock()
	defer e.mu.Unlock()
	if r, ok := e.varNodes[name]; ok {
		return r
	}
	idx, ok := e.varIndex[name]
	if !ok {
		panic(fmt.Sprintf("bdd: undeclared variable %q", name))
	}
	r := e.makeNode(idx, False, True)
	e.varNodes[name] = r
	return r
}

// makeNode hash-conses (v, low, high), applying the redundant-test
// elimination (low == high collapses to low) and the complement-edge
// normalization that keeps the table storing only canonical, non-negated
// low edges: if low would be negated, flip both children and negate the
// returned ref instead, so the table's own bookkeeping never mixes.
func (e *Engine) makeNode(v int, low, high Ref) Ref {
	if low == high {
		return low
	}
	sign := Ref(1)
	if low < 0 {
		low, high = -low, -high
		sign = -1
	}
	k := key{v: v, low: low, high: high}
	if r, ok := e.table[k]; ok {
		return sign * r
	}
	idx := Ref(len(e.nodes))
	e.nodes = append(e.nodes, node{v: v, low: low, high: high})
	e.table[k] = idx
	return sign * idx
}

func (e *Engine) varOf(r Ref) int { return e.nodes[absRef(r)].v }

func (e *Engine) lowOf(r Ref) Ref {
	n := e.nodes[absRef(r)]
	if r < 0 {
		return -n.low
	}
	return n.low
}

func (e *Engine) highOf(r Ref) Ref {
	n := e.nodes[absRef(r)]
	if r < 0 {
		return -n.high
	}
	return n.high
}

// And computes the conjunction of a and b, memoized. Or is derived from it
// via De Morgan (spec §4.B: "or is derived as ¬(¬a ∧ ¬b)").
func (e *Engine) And(a, b Ref) Ref {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.and(a, b)
}

func (e *Engine) and(a, b Ref) Ref {
	switch {
	case a == False || b == False:
		return False
	case a == True:
		return b
	case b == True:
		return a
	case a == b:
		return a
	case a == -b:
		return False
	}
	if a > b {
		a, b = b, a
	}
	ck := [2]Ref{a, b}
	if r, ok := e.andCache[ck]; ok {
		return r
	}

	va, vb := e.varOf(a), e.varOf(b)
	var v int
	var aLow, aHigh, bLow, bHigh Ref
	switch {
	case va == vb:
		v = va
		aLow, aHigh = e.lowOf(a), e.highOf(a)
		bLow, bHigh = e.lowOf(b), e.highOf(b)
	case va < vb:
		v = va
		aLow, aHigh = e.lowOf(a), e.highOf(a)
		bLow, bHigh = b, b
	default:
		v = vb
		aLow, aHigh = a, a
		bLow, bHigh = e.lowOf(b), e.highOf(b)
	}
	low := e.and(aLow, bLow)
	high := e.and(aHigh, bHigh)
	result := e.makeNode(v, low, high)
	e.andCache[ck] = result
	return result
}

// Or is the De Morgan dual of And.
func (e *Engine) Or(a, b Ref) Ref { return e.Not(e.And(e.Not(a), e.Not(b))) }

// Implies builds the BDD for a ⇒ b (= ¬a ∨ b).
func (e *Engine) Implies(a, b Ref) Ref { return e.Or(e.Not(a), b) }

// Entails reports whether a ⇒ b is a tautology, i.e. a ∧ ¬b is empty. This
// is the decision procedure rule compaction uses (spec §4.B).
func (e *Engine) Entails(a, b Ref) bool { return e.And(a, e.Not(b)) == False }

// Equiv reports whether a and b denote the same set. Thanks to hash-consing
// this is a pointer (index) comparison, never a recursive walk.
func (e *Engine) Equiv(a, b Ref) bool { return a == b }

// Literal is one variable/polarity pair in a satisfying cube.
type Literal struct {
	Var   string
	Value bool
}

// Cube is a conjunction of Literals; variables it omits are don't-cares.
type Cube struct {
	Literals []Literal
}

// IterPaths enumerates every root-to-True path through r's BDD as a cube of
// the literals tested along the way. Omitted variables are free in that
// cube (spec §4.B: "path enumeration (iter_path(f))").
func (e *Engine) IterPaths(r Ref) []Cube {
	e.mu.Lock()
	defer e.mu.Unlock()
	var out []Cube
	var walk func(r Ref, assign []Literal)
	walk = func(r Ref, assign []Literal) {
		switch r {
		case False:
			return
		case True:
			out = append(out, Cube{Literals: assign})
			return
		}
		name := e.varNames[e.varOf(r)]
		low := append(append([]Literal(nil), assign...), Literal{Var: name, Value: false})
		high := append(append([]Literal(nil), assign...), Literal{Var: name, Value: true})
		walk(e.lowOf(r), low)
		walk(e.highOf(r), high)
	}
	walk(r, nil)
	return out
}

// NumNodes reports the table's current size, for size-reporting diagnostics.
func (e *Engine) NumNodes() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.nodes) - 1
}
