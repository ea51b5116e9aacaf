package regexlang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testAlphabet = NewAlphabet(
	[]string{"A", "X", "N", "Y", "B"},
	[]string{"A", "X", "N", "Y", "B"},
	nil,
)

func run(d *DFA, path []string) bool {
	s := d.Start()
	for _, symbol := range path {
		s = d.Step(s, symbol)
	}
	return d.Accepts(s)
}

func TestPathMatchesExactSequence(t *testing.T) {
	r := Path([]string{"A", "X", "N"})
	d := MakeDFA(r, testAlphabet.All)
	assert.True(t, run(d, []string{"A", "X", "N"}))
	assert.False(t, run(d, []string{"A", "X"}))
	assert.False(t, run(d, []string{"A", "N", "X"}))
}

func TestUnionMatchesEither(t *testing.T) {
	r := Union(Path([]string{"A", "X"}), Path([]string{"N", "Y"}))
	d := MakeDFA(r, testAlphabet.All)
	assert.True(t, run(d, []string{"A", "X"}))
	assert.True(t, run(d, []string{"N", "Y"}))
	assert.False(t, run(d, []string{"A", "Y"}))
}

func TestStarMatchesZeroOrMore(t *testing.T) {
	r := Star(Loc("A"))
	d := MakeDFA(r, testAlphabet.All)
	assert.True(t, run(d, nil))
	assert.True(t, run(d, []string{"A"}))
	assert.True(t, run(d, []string{"A", "A", "A"}))
	assert.False(t, run(d, []string{"A", "X"}))
}

func TestNegateComplementsLanguage(t *testing.T) {
	r := Negate(Loc("A"))
	d := MakeDFA(r, testAlphabet.All)
	assert.False(t, run(d, []string{"A"}))
	assert.True(t, run(d, []string{"X"}))
	assert.True(t, run(d, []string{"A", "A"}))
}

func TestInterIsConjunction(t *testing.T) {
	r := Inter(Waypoint("N", testAlphabet), EndsAt("B", testAlphabet))
	d := MakeDFA(r, testAlphabet.All)
	assert.True(t, run(d, []string{"A", "X", "N", "Y", "B"}))
	assert.False(t, run(d, []string{"A", "X", "Y", "B"})) // never visits N
	assert.False(t, run(d, []string{"A", "X", "N", "Y"})) // doesn't end at B
}

func TestWaypointRequiresVisit(t *testing.T) {
	r := Waypoint("N", testAlphabet)
	d := MakeDFA(r, testAlphabet.All)
	assert.True(t, run(d, []string{"A", "N", "B"}))
	assert.False(t, run(d, []string{"A", "X", "B"}))
}

func TestValleyFreeRejectsValley(t *testing.T) {
	tiers := [][]string{{"A"}, {"X", "N"}, {"Y"}, {"B"}}
	alphabet := NewAlphabet([]string{"A", "X", "N", "Y", "B"}, []string{"A", "X", "N", "Y", "B"}, nil)
	r := ValleyFree(tiers, alphabet)
	d := MakeDFA(r, alphabet.All)
	// an empty uphill run, then downhill: A -> X -> Y -> B is tier-monotone (0,1,2,3)
	assert.True(t, run(d, []string{"A", "X", "Y", "B"}))
	// A (tier 0) -> Y (tier 2) -> X (tier 1) -> A (tier 0) goes down, then back up: a valley
	assert.False(t, run(d, []string{"A", "Y", "X", "A"}))
}

func TestReverseReversesConcat(t *testing.T) {
	r := Path([]string{"A", "X", "N"})
	rev := Reverse(r)
	d := MakeDFA(rev, testAlphabet.All)
	assert.True(t, run(d, []string{"N", "X", "A"}))
	assert.False(t, run(d, []string{"A", "X", "N"}))
}

func TestReverseIsInvolution(t *testing.T) {
	r := Inter(Waypoint("N", testAlphabet), Union(Path([]string{"A", "X"}), Loc("Y")))
	back := Reverse(Reverse(r))
	d1 := MakeDFA(r, testAlphabet.All)
	d2 := MakeDFA(back, testAlphabet.All)
	for _, path := range [][]string{
		{"A", "X"}, {"Y"}, {"A", "X", "N"}, {},
	} {
		require.Equal(t, run(d1, path), run(d2, path), "path=%v", path)
	}
}

func TestDFAIsTotal(t *testing.T) {
	d := MakeDFA(Loc("A"), testAlphabet.All)
	for s := 0; s < d.NumStates(); s++ {
		for _, symbol := range testAlphabet.All {
			next := d.Step(s, symbol)
			assert.GreaterOrEqual(t, next, 0)
			assert.Less(t, next, d.NumStates())
		}
	}
}
