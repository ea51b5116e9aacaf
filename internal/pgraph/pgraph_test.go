package pgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pathmint/pathmint/internal/regexlang"
	"github.com/pathmint/pathmint/internal/topology"
)

func ringTopology() (*topology.Topology, regexlang.Alphabet) {
	t := topology.New()
	for _, name := range []string{"A", "X", "N", "Y", "B"} {
		t.AddLocation(topology.Location{Name: name, Inside: true, CanOriginate: name == "B"})
	}
	for _, e := range [][2]string{{"A", "X"}, {"X", "N"}, {"N", "Y"}, {"Y", "B"}, {"B", "Y"}, {"Y", "N"}, {"N", "X"}, {"X", "A"}} {
		t.AddEdge(e[0], e[1])
	}
	alphabet := regexlang.NewAlphabet(t.Alphabet().ToSlice(), t.Inside().ToSlice(), t.Outside().ToSlice())
	return t, alphabet
}

// buildDFA turns a data-path regex (written far-end-first, origin last)
// into the PG-walk-order DFA per spec §4.A's reversal contract.
func buildDFA(pref regexlang.Regex, alphabet regexlang.Alphabet) *regexlang.DFA {
	return regexlang.MakeDFA(regexlang.Reverse(pref), alphabet.All)
}

func TestBuildReachesAcceptingNodeAlongPreferredPath(t *testing.T) {
	topo, alphabet := ringTopology()
	pref := regexlang.Path([]string{"A", "X", "N", "Y", "B"})
	dfa := buildDFA(pref, alphabet)

	a := Build(topo, []*regexlang.DFA{dfa})

	var found *Node
	for _, id := range a.NodesAt("A") {
		n := a.Node(id)
		if n.Rank == 0 {
			found = n
		}
	}
	require.NotNil(t, found, "expected some node at A to realize preference 0")
	assert.Contains(t, a.Out(found.ID), a.End())
}

func TestBuildStartConnectsOnlyOriginators(t *testing.T) {
	topo, alphabet := ringTopology()
	pref := regexlang.Path([]string{"A", "X", "N", "Y", "B"})
	dfa := buildDFA(pref, alphabet)
	a := Build(topo, []*regexlang.DFA{dfa})

	for _, succ := range a.Out(a.Start()) {
		assert.Equal(t, "B", a.Node(succ).Loc)
	}
}

func TestMinimizePrunesNonAcceptingDeadEnds(t *testing.T) {
	topo, alphabet := ringTopology()
	pref := regexlang.Path([]string{"A", "X", "N", "Y", "B"})
	dfa := buildDFA(pref, alphabet)
	a := Build(topo, []*regexlang.DFA{dfa})

	before := a.NumNodes()
	Minimize(a)
	after := a.NumNodes()
	assert.LessOrEqual(t, after, before)

	for _, id := range a.AllIDs() {
		if id == a.Start() || id == a.End() {
			continue
		}
		assert.NotEmpty(t, a.Out(id), "every surviving real node must still reach something")
	}
}

func TestMinimizeNodesAtExcludesPrunedNodes(t *testing.T) {
	topo, alphabet := ringTopology()
	pref := regexlang.Path([]string{"A", "X", "N", "Y", "B"})
	dfa := buildDFA(pref, alphabet)
	a := Build(topo, []*regexlang.DFA{dfa})

	before := len(a.AllIDs())
	Minimize(a)
	survivors := a.AllIDs()
	assert.LessOrEqual(t, len(survivors), before)

	alive := make(map[int]bool, len(survivors))
	for _, id := range survivors {
		alive[id] = true
	}
	for _, loc := range []string{"A", "X", "N", "Y", "B"} {
		for _, id := range a.NodesAt(loc) {
			assert.True(t, alive[id], "NodesAt(%s) returned a node Minimize already pruned", loc)
		}
	}
}

func TestUnusedPreferencesReportsDeadPreference(t *testing.T) {
	topo, alphabet := ringTopology()
	live := regexlang.Path([]string{"A", "X", "N", "Y", "B"})
	// A Loc outside the declared alphabet never gets a real transition out
	// of the DFA's start state during determinization, so it is dead on
	// arrival: no PG walk over this topology's alphabet can ever accept it.
	dead := regexlang.Loc("nonexistent-location")
	dfas := []*regexlang.DFA{buildDFA(live, alphabet), buildDFA(dead, alphabet)}

	a := Build(topo, dfas)
	Minimize(a)
	unused := UnusedPreferences(a, len(dfas))
	assert.Equal(t, []int{1}, unused)
}
