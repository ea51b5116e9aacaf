package bdd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(communities ...string) *Engine {
	return NewEngine(DeclareVars(communities))
}

func TestAndOrNotBasics(t *testing.T) {
	e := newTestEngine("customer")
	a := e.Var(addrBitVar(0))
	b := e.Var(addrBitVar(1))

	assert.Equal(t, True, e.And(True, True))
	assert.Equal(t, False, e.And(True, False))
	assert.Equal(t, False, e.And(a, e.Not(a)))
	assert.Equal(t, True, e.Or(a, e.Not(a)))
	assert.Equal(t, a, e.And(a, True))
	assert.Equal(t, a, e.Or(a, a))
	assert.NotEqual(t, a, b)
}

func TestNotIsSignFlipNotANewNode(t *testing.T) {
	e := newTestEngine()
	before := e.NumNodes()
	a := e.Var(addrBitVar(0))
	na := e.Not(a)
	assert.Equal(t, -a, na)
	assert.Equal(t, before+1, e.NumNodes(), "Not must not allocate a table entry")
}

func TestHashConsCanonicity(t *testing.T) {
	e := newTestEngine("customer", "peer")
	a := e.Var(addrBitVar(0))
	b := e.Var(addrBitVar(1))

	// two different build orders for the same set
	left := e.And(e.Or(a, b), e.Or(a, e.Not(b)))
	right := e.Or(a, e.And(b, e.Not(b)))
	assert.Equal(t, left, right, "semantically equal predicates must share an index")
}

func TestImpliesAndEntails(t *testing.T) {
	e := newTestEngine()
	a := e.Var(addrBitVar(0))
	b := e.Var(addrBitVar(1))
	ab := e.And(a, b)

	assert.True(t, e.Entails(ab, a))
	assert.False(t, e.Entails(a, b))
	assert.Equal(t, True, e.Implies(ab, a))
}

func TestCommunityPredicate(t *testing.T) {
	e := newTestEngine("customer", "peer")
	cust := CommunityIs(e, "customer")
	peer := CommunityIs(e, "peer")
	none := NoCommunities(e, []string{"customer", "peer"})

	assert.True(t, e.Entails(cust, e.Not(none)))
	assert.Equal(t, False, e.And(cust, none))
	assert.NotEqual(t, cust, peer)
}

func TestPrefixRoundTripSingleBlock(t *testing.T) {
	e := newTestEngine()
	lo, hi := uint32(0), uint32(3)
	prefixes := ToPrefixes(lo, hi)
	require.Len(t, prefixes, 1)
	assert.Equal(t, Prefix{Addr: 0, Len: 30}, prefixes[0])

	pred := ToPredicate(e, prefixes)
	ranges := ToRanges(e, pred)
	require.Len(t, ranges, 1)
	assert.Equal(t, AddrRange{Lo: lo, Hi: hi}, ranges[0])
}

func TestPrefixRoundTripMultiBlock(t *testing.T) {
	e := newTestEngine()
	lo, hi := uint32(0), uint32(5)
	prefixes := ToPrefixes(lo, hi)
	require.Len(t, prefixes, 2)

	pred := ToPredicate(e, prefixes)
	ranges := ToRanges(e, pred)
	require.Len(t, ranges, 1, "adjacent blocks must merge back into one range")
	assert.Equal(t, AddrRange{Lo: lo, Hi: hi}, ranges[0])
}

// TestCompactionNeverMentionsPrefixesOutsideTheUnion is spec §8 property 2
// ("compaction subsetting"): combining two scope sets and compacting the
// result (Or, then ToRanges' range-merge) never mentions address space
// outside what the two inputs already covered.
func TestCompactionNeverMentionsPrefixesOutsideTheUnion(t *testing.T) {
	e := newTestEngine()
	s1 := ExactPrefix(e, Prefix{Addr: 0, Len: 30}) // 0..3
	s2 := ExactPrefix(e, Prefix{Addr: 8, Len: 30}) // 8..11

	combined := e.Or(s1, s2)
	compacted := ToRanges(e, combined)

	for _, r := range compacted {
		inS1 := r.Hi <= 3
		inS2 := r.Lo >= 8 && r.Hi <= 11
		assert.True(t, inS1 || inS2, "compacted range %+v outside S1 ∪ S2", r)
	}
}

func TestExactPrefixExcludesSiblingBlock(t *testing.T) {
	e := newTestEngine()
	a := ExactPrefix(e, Prefix{Addr: 0, Len: 30})        // 0..3
	b := ExactPrefix(e, Prefix{Addr: 4, Len: 30})        // 4..7
	assert.Equal(t, False, e.And(a, b))
	assert.NotEqual(t, False, e.Or(a, b))
}

func TestRangedSlashIsDisjunction(t *testing.T) {
	e := newTestEngine()
	r := RangedSlash(e, 0, 30, 31)
	exact30 := ExactPrefix(e, Prefix{Addr: 0, Len: 30})
	exact31 := ExactPrefix(e, Prefix{Addr: 0, Len: 31})
	assert.True(t, e.Entails(exact30, r))
	assert.True(t, e.Entails(exact31, r))
}

func TestIterPathsOmitsDontCareVars(t *testing.T) {
	e := newTestEngine()
	r := e.Var(addrBitVar(0))
	paths := e.IterPaths(r)
	var sawTrue bool
	for _, c := range paths {
		for _, lit := range c.Literals {
			if lit.Var == addrBitVar(0) && lit.Value {
				sawTrue = true
			}
			assert.NotEqual(t, addrBitVar(1), lit.Var, "unrelated variable must not appear in the cube")
		}
	}
	assert.True(t, sawTrue)
}
