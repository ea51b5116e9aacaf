package pgraph

import (
	"github.com/pathmint/pathmint/internal/regexlang"
	"github.com/pathmint/pathmint/internal/topology"
)

// Build performs the forward BFS described in spec §4.C: starting from the
// product of every DFA's start state, it walks the topology forward,
// stepping every DFA on the location being entered, until no new (loc,
// state_vector) pair is discovered. Start connects to every node the
// topology can originate traffic from; End is attached to every node whose
// accept_rank is not NoRank. A dead-sink transition in some DFA i merely
// means preference i can no longer be realized along this path — it never
// prunes the node, since another DFA may still accept (pruning is the
// minimizer's job, §4.D).
func Build(topo *topology.Topology, dfas []*regexlang.DFA) *Arena {
	a := NewArena()
	startState := make(StateVector, len(dfas))
	for i, d := range dfas {
		startState[i] = d.Start()
	}
	a.nodes[a.startID].State = startState

	type queued struct {
		id int
	}
	var queue []queued
	visited := make(map[int]bool)

	attach := func(id int) {
		if visited[id] {
			return
		}
		visited[id] = true
		queue = append(queue, queued{id: id})
	}

	for _, origin := range topo.Originators().ToSlice() {
		state := dfaTotalTransition(dfas, startState, origin)
		rank := acceptRank(dfas, state)
		id := a.intern(origin, state, rank)
		a.addEdge(a.startID, id)
		if rank != NoRank {
			a.addEdge(id, a.endID)
		}
		attach(id)
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		u := a.Node(cur.id)
		for _, w := range topo.Successors(u.Loc) {
			state := dfaTotalTransition(dfas, u.State, w)
			rank := acceptRank(dfas, state)
			id := a.intern(w, state, rank)
			a.addEdge(cur.id, id)
			if rank != NoRank {
				a.addEdge(id, a.endID)
			}
			attach(id)
		}
	}

	return a
}

// acceptRank is the smallest DFA index accepting state, or NoRank.
func acceptRank(dfas []*regexlang.DFA, state StateVector) int {
	for i, d := range dfas {
		if d.Accepts(state[i]) {
			return i
		}
	}
	return NoRank
}
