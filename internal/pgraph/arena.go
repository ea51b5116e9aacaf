// Package pgraph implements components C and D: the product-graph builder
// (topology × DFA tuple) and its minimizer.
package pgraph

import (
	"fmt"
	"strings"

	"github.com/pathmint/pathmint/internal/regexlang"
	"github.com/pathmint/pathmint/internal/utils"
)

// Start and End are the synthetic poles every PG carries (spec §3).
const (
	Start = "⟂Start"
	End   = "⟂End"
)

// NoRank is the accept_rank ⊥: "this node realizes no preference."
const NoRank = -1

// StateVector is the tuple of DFA states, one entry per preference regex,
// in preference order (index 0 = best).
type StateVector []int

// Less gives StateVector a total order so callers that tie-break on
// accept_rank (e.g. internal/ordering, when two nodes at the same location
// share a rank) have a deterministic fallback.
func (sv StateVector) Less(other StateVector) bool {
	return sv.key() < other.key()
}

// ID renders the state vector as a stable string, used as the community
// tag value when a filter or export needs to name a PG state (spec §4.G).
func (sv StateVector) ID() string {
	return sv.key()
}

func (sv StateVector) key() string {
	var b strings.Builder
	for i, s := range sv {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%d", s)
	}
	return b.String()
}

// Node is a PG node: (loc, state_vector, accept_rank) plus the synthetic
// poles, which carry an empty StateVector and Loc == Start/End.
type Node struct {
	ID    int
	Loc   string
	State StateVector
	Rank  int // NoRank, or the smallest accepting DFA index
}

type nodeKey struct {
	loc   string
	state string
}

// Arena owns every node of one PG and its adjacency. Construction is
// single-task synchronous (spec §5), so it is a plain map, not xsync.Map —
// xsync.Map earns its keep in internal/compiler/driver.go where workers
// really do share it.
type Arena struct {
	nodes    []*Node
	byKey    map[nodeKey]int // (loc,state) -> node id, enforces the §3 uniqueness invariant
	byLoc    *utils.MapSet[string, int]
	out      map[int][]int
	in       map[int][]int
	removed  map[int]bool // ids pruned by Minimize; nodes is append-only, so AllIDs filters on this
	startID  int
	endID    int
}

func NewArena() *Arena {
	a := &Arena{
		byKey:   make(map[nodeKey]int),
		byLoc:   utils.NewMapSet[string, int](),
		out:     make(map[int][]int),
		in:      make(map[int][]int),
		removed: make(map[int]bool),
	}
	a.startID = a.intern(Start, nil, NoRank)
	a.endID = a.intern(End, nil, NoRank)
	return a
}

// intern returns the existing node for (loc, state) or allocates one.
func (a *Arena) intern(loc string, state StateVector, rank int) int {
	k := nodeKey{loc: loc, state: state.key()}
	if id, ok := a.byKey[k]; ok {
		return id
	}
	id := len(a.nodes)
	n := &Node{ID: id, Loc: loc, State: state, Rank: rank}
	a.nodes = append(a.nodes, n)
	a.byKey[k] = id
	a.byLoc.Store(loc, id)
	return id
}

func (a *Arena) addEdge(u, v int) {
	for _, existing := range a.out[u] {
		if existing == v {
			return
		}
	}
	a.out[u] = append(a.out[u], v)
	a.in[v] = append(a.in[v], u)
}

func (a *Arena) Node(id int) *Node      { return a.nodes[id] }
func (a *Arena) NumNodes() int          { return len(a.nodes) }
func (a *Arena) Start() int             { return a.startID }
func (a *Arena) End() int               { return a.endID }
func (a *Arena) Out(id int) []int       { return a.out[id] }
func (a *Arena) In(id int) []int        { return a.in[id] }

// NodesAt returns every node id located at loc (excluding the poles).
func (a *Arena) NodesAt(loc string) []int {
	set, ok := a.byLoc.Load(loc)
	if !ok {
		return nil
	}
	return set.ToSlice()
}

// AllIDs returns every surviving node id in arena insertion order, poles
// included. nodes is append-only, so this filters out anything remove has
// pruned rather than reflecting len(a.nodes) directly.
func (a *Arena) AllIDs() []int {
	ids := make([]int, 0, len(a.nodes))
	for i := range a.nodes {
		if !a.removed[i] {
			ids = append(ids, i)
		}
	}
	return ids
}

// remove deletes a set of node ids and all edges touching them, and drops
// them from byLoc so a later NodesAt doesn't hand the ordering solver a
// node the minimizer already decided contributes nothing. Used by the
// minimizer's fixed-point passes; never called mid-BFS.
func (a *Arena) remove(dead map[int]bool) {
	delete(dead, a.startID) // poles are never pruned
	delete(dead, a.endID)
	for id := range dead {
		a.removed[id] = true
		a.byLoc.DeleteVal(a.nodes[id].Loc, id)
	}
	for id, outs := range a.out {
		if dead[id] {
			delete(a.out, id)
			continue
		}
		kept := outs[:0]
		for _, v := range outs {
			if !dead[v] {
				kept = append(kept, v)
			}
		}
		a.out[id] = kept
	}
	for id, ins := range a.in {
		if dead[id] {
			delete(a.in, id)
			continue
		}
		kept := ins[:0]
		for _, u := range ins {
			if !dead[u] {
				kept = append(kept, u)
			}
		}
		a.in[id] = kept
	}
}

// dfaTotalTransition mirrors regexlang.DFA.Step, named here to keep the
// product-construction code in builder.go reading as "next state of DFA i"
// rather than bit-twiddling on *regexlang.DFA values directly.
func dfaTotalTransition(dfas []*regexlang.DFA, states StateVector, symbol string) StateVector {
	next := make(StateVector, len(dfas))
	for i, d := range dfas {
		next[i] = d.Step(states[i], symbol)
	}
	return next
}
