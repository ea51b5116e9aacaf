package regexlang

import (
	"fmt"
	"sort"
)

// DFA is a deterministic recognizer over a topology's location alphabet:
// total transition function (every state has an outgoing edge for every
// symbol, including the dead-sink state), a single start state, and an
// accept predicate. Spec §3/§4.A.
type DFA struct {
	states []dfaState
	start  int
	accept map[int]bool
	dead   int
}

type dfaState struct {
	transitions map[string]int
}

// NumStates reports the size of the state space (including the dead sink).
func (d *DFA) NumStates() int { return len(d.states) }

// Start returns the start state index.
func (d *DFA) Start() int { return d.start }

// Dead returns the dead-sink state index.
func (d *DFA) Dead() int { return d.dead }

// Accepts reports whether state s is accepting.
func (d *DFA) Accepts(s int) bool { return d.accept[s] }

// Step returns the state reached from s on symbol.
func (d *DFA) Step(s int, symbol string) int {
	return d.states[s].transitions[symbol]
}

// IsDead reports whether s is the dead-sink state (no path to accept).
// Subset construction does not minimize the DFA, so other states may also
// be unable to reach an accept state: IsDead(s) == false does not prove
// that s can still accept.
func (d *DFA) IsDead(s int) bool { return s == d.dead }

// MakeDFA builds a DFA for r over alphabet, per spec §4.A. Callers apply
// Reverse before calling this when they want path-vector (announce-order)
// semantics: MakeDFA(Reverse(r), alphabet).
func MakeDFA(r Regex, alphabet []string) *DFA {
	n := buildNFA(r, alphabet)
	return determinize(n, alphabet)
}

// determinize runs subset construction, producing a total DFA (a dead-sink
// state is always present, even if the NFA never gets stuck, so that every
// DFA returned by this package has the same total-transition shape).
func determinize(n *nfa, alphabet []string) *DFA {
	closure := func(states map[int]bool) map[int]bool {
		result := make(map[int]bool, len(states))
		var stack []int
		for s := range states {
			result[s] = true
			stack = append(stack, s)
		}
		for len(stack) > 0 {
			s := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for t := range n.epsilon[s] {
				if !result[t] {
					result[t] = true
					stack = append(stack, t)
				}
			}
		}
		return result
	}

	key := func(states map[int]bool) string {
		ids := make([]int, 0, len(states))
		for s := range states {
			ids = append(ids, s)
		}
		sort.Ints(ids)
		return fmt.Sprint(ids)
	}

	d := &DFA{accept: make(map[int]bool)}
	subsetIndex := make(map[string]int)

	startSet := closure(map[int]bool{n.start: true})
	startKey := key(startSet)
	d.start = d.addState()
	subsetIndex[startKey] = d.start
	if hasAccept(startSet, n.accept) {
		d.accept[d.start] = true
	}

	deadKey := key(map[int]bool{})
	d.dead = d.addState()
	subsetIndex[deadKey] = d.dead
	for _, symbol := range alphabet {
		d.states[d.dead].transitions[symbol] = d.dead
	}

	queue := []map[int]bool{startSet}
	queueKeys := []string{startKey}
	for len(queue) > 0 {
		cur := queue[0]
		curKey := queueKeys[0]
		queue = queue[1:]
		queueKeys = queueKeys[1:]
		curIdx := subsetIndex[curKey]

		for _, symbol := range alphabet {
			var targets map[int]bool
			moved := make(map[int]bool)
			for s := range cur {
				for _, t := range n.transitions[s][symbol] {
					moved[t] = true
				}
			}
			targets = closure(moved)
			tKey := key(targets)
			// The empty subset always maps to d.dead: its key was registered
			// before this loop started, so the len(targets) == 0 case never
			// takes the "new subset" branch below.
			idx, ok := subsetIndex[tKey]
			if !ok {
				idx = d.addState()
				subsetIndex[tKey] = idx
				if hasAccept(targets, n.accept) {
					d.accept[idx] = true
				}
				queue = append(queue, targets)
				queueKeys = append(queueKeys, tKey)
			}
			d.states[curIdx].transitions[symbol] = idx
		}
	}
	return d
}

func hasAccept(states map[int]bool, accept map[int]bool) bool {
	for s := range states {
		if accept[s] {
			return true
		}
	}
	return false
}

func (d *DFA) addState() int {
	d.states = append(d.states, dfaState{transitions: make(map[string]int)})
	return len(d.states) - 1
}

// complement returns the DFA accepting exactly the strings d rejects.
// Valid only because d is total: flipping the accept predicate over every
// state (including the dead sink) is sound exactly because every symbol
// sequence has a defined destination state.
func complement(d *DFA) *DFA {
	out := &DFA{start: d.start, dead: d.dead, accept: make(map[int]bool)}
	for i, s := range d.states {
		idx := out.addState()
		out.states[idx].transitions = s.transitions
		if !d.accept[i] {
			out.accept[idx] = true
		}
	}
	return out
}

// product builds the DFA recognizing the intersection of a and b's
// languages, over their shared alphabet.
func product(a, b *DFA, alphabet []string) *DFA {
	out := &DFA{accept: make(map[int]bool)}
	pairIndex := make(map[[2]int]int)
	var queue [][2]int
	get := func(pair [2]int) int {
		if idx, ok := pairIndex[pair]; ok {
			return idx
		}
		idx := out.addState()
		pairIndex[pair] = idx
		if a.accept[pair[0]] && b.accept[pair[1]] {
			out.accept[idx] = true
		}
		queue = append(queue, pair)
		return idx
	}
	out.start = get([2]int{a.start, b.start})
	out.dead = get([2]int{a.dead, b.dead})

	for len(queue) > 0 {
		pair := queue[0]
		queue = queue[1:]
		idx := pairIndex[pair]
		for _, symbol := range alphabet {
			na := a.states[pair[0]].transitions[symbol]
			nb := b.states[pair[1]].transitions[symbol]
			npair := [2]int{na, nb}
			nidx := get(npair)
			out.states[idx].transitions[symbol] = nidx
		}
	}
	return out
}
