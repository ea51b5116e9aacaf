// Package regexlang implements component A: a small regex language over a
// topology's location alphabet, and the DFA builder that turns a
// preference regex into a deterministic recognizer (spec §4.A).
package regexlang

import (
	"fmt"
	"strings"
)

// Regex is a node in the path-expression AST. It is a closed set of node
// kinds (loc, union, concat, inter, star, negate, epsilon, empty);
// implementations live in this file only.
type Regex interface {
	regexNode()
	String() string
}

type locRegex struct{ Loc string }

func (locRegex) regexNode()       {}
func (r locRegex) String() string { return r.Loc }

type unionRegex struct{ Operands []Regex }

func (unionRegex) regexNode() {}
func (r unionRegex) String() string {
	return "(" + joinRegex(r.Operands, "|") + ")"
}

type concatRegex struct{ Operands []Regex }

func (concatRegex) regexNode() {}
func (r concatRegex) String() string {
	return "(" + joinRegex(r.Operands, ".") + ")"
}

type interRegex struct{ Operands []Regex }

func (interRegex) regexNode() {}
func (r interRegex) String() string {
	return "(" + joinRegex(r.Operands, "&") + ")"
}

type starRegex struct{ Operand Regex }

func (starRegex) regexNode()       {}
func (r starRegex) String() string { return "(" + r.Operand.String() + ")*" }

type negateRegex struct{ Operand Regex }

func (negateRegex) regexNode()       {}
func (r negateRegex) String() string { return "!(" + r.Operand.String() + ")" }

type epsilonRegex struct{}

func (epsilonRegex) regexNode()       {}
func (epsilonRegex) String() string   { return "ε" }

type emptyRegex struct{}

func (emptyRegex) regexNode()       {}
func (emptyRegex) String() string   { return "∅" }

func joinRegex(rs []Regex, sep string) string {
	parts := make([]string, len(rs))
	for i, r := range rs {
		parts[i] = r.String()
	}
	return strings.Join(parts, sep)
}

// --- base combinators ---

// Loc matches exactly one hop at location l.
func Loc(l string) Regex { return locRegex{Loc: l} }

// Inside is the alternation of every inside location in alphabet.
func Inside(alphabet Alphabet) Regex {
	return anyOf(alphabet.InsideLocs)
}

// Outside is the alternation of every outside location in alphabet (the
// dual of Inside).
func Outside(alphabet Alphabet) Regex {
	return anyOf(alphabet.OutsideLocs)
}

func anyOf(locs []string) Regex {
	if len(locs) == 0 {
		return emptyRegex{}
	}
	operands := make([]Regex, len(locs))
	for i, l := range locs {
		operands[i] = Loc(l)
	}
	return Union(operands...)
}

// Internal is the "stay inside" regex: zero or more hops, all inside.
func Internal(alphabet Alphabet) Regex {
	return Star(Inside(alphabet))
}

func Concat(operands ...Regex) Regex {
	flat := flattenConcat(operands)
	if len(flat) == 1 {
		return flat[0]
	}
	return concatRegex{Operands: flat}
}

func flattenConcat(operands []Regex) []Regex {
	var flat []Regex
	for _, op := range operands {
		if c, ok := op.(concatRegex); ok {
			flat = append(flat, c.Operands...)
		} else {
			flat = append(flat, op)
		}
	}
	if len(flat) == 0 {
		return []Regex{epsilonRegex{}}
	}
	return flat
}

func Union(operands ...Regex) Regex {
	flat := flattenUnion(operands)
	if len(flat) == 1 {
		return flat[0]
	}
	return unionRegex{Operands: flat}
}

func flattenUnion(operands []Regex) []Regex {
	var flat []Regex
	for _, op := range operands {
		if u, ok := op.(unionRegex); ok {
			flat = append(flat, u.Operands...)
		} else {
			flat = append(flat, op)
		}
	}
	if len(flat) == 0 {
		return []Regex{emptyRegex{}}
	}
	return flat
}

func Inter(operands ...Regex) Regex {
	if len(operands) == 1 {
		return operands[0]
	}
	return interRegex{Operands: operands}
}

func Star(r Regex) Regex {
	if _, ok := r.(starRegex); ok {
		return r
	}
	return starRegex{Operand: r}
}

func Negate(r Regex) Regex { return negateRegex{Operand: r} }

// --- derived idioms (spec §4.A) ---

// Path matches exactly the sequence l1, l2, ..., ln.
func Path(locs []string) Regex {
	operands := make([]Regex, len(locs))
	for i, l := range locs {
		operands[i] = Loc(l)
	}
	return Concat(operands...)
}

// StartsAtAny matches any path whose first hop is one of locs, regardless
// of what follows.
func StartsAtAny(locs []string, alphabet Alphabet) Regex {
	return Concat(anyOf(locs), Star(anyOf(alphabet.All)))
}

// EndsAt matches any path whose last hop is l.
func EndsAt(l string, alphabet Alphabet) Regex {
	return Concat(Star(anyOf(alphabet.All)), Loc(l))
}

// Waypoint matches any path that visits l at least once.
func Waypoint(l string, alphabet Alphabet) Regex {
	any := Star(anyOf(alphabet.All))
	return Concat(any, Loc(l), any)
}

// ValleyFree forbids customer-to-provider transit through a peer: it
// matches exactly the paths whose tier sequence is unimodal (an optional
// upward run through the given tiers, i.e. toward tiers[0], followed by an
// optional downward run away from it; either run may take several hops
// within one tier). tiers is ordered
// from the topmost tier (tiers[0], e.g. Tier-1 providers) to the bottommost
// (customers/edge); each inner slice is the set of locations in that tier.
func ValleyFree(tiers [][]string, alphabet Alphabet) Regex {
	downhill := monotone(tiers)
	uphill := monotone(reverseTiers(tiers))
	return Concat(uphill, downhill)
}

func monotone(tiers [][]string) Regex {
	operands := make([]Regex, len(tiers))
	for i, tier := range tiers {
		operands[i] = Star(anyOf(tier))
	}
	return Concat(operands...)
}

func reverseTiers(tiers [][]string) [][]string {
	rev := make([][]string, len(tiers))
	for i, t := range tiers {
		rev[len(tiers)-1-i] = t
	}
	return rev
}

// Reverse returns a Regex whose language is the reversal of every string in
// r's language (spec §4.A: "Reversal ensures that walking the DFA in the
// same direction as BGP-announcement propagation accepts exactly the
// data-plane paths described by r"). Reversal is defined structurally, not
// on the automaton: reverse(ab) = reverse(b)reverse(a), etc.
func Reverse(r Regex) Regex {
	switch v := r.(type) {
	case locRegex:
		return v
	case epsilonRegex, emptyRegex:
		return v
	case unionRegex:
		operands := make([]Regex, len(v.Operands))
		for i, op := range v.Operands {
			operands[i] = Reverse(op)
		}
		return Union(operands...)
	case interRegex:
		operands := make([]Regex, len(v.Operands))
		for i, op := range v.Operands {
			operands[i] = Reverse(op)
		}
		return Inter(operands...)
	case concatRegex:
		operands := make([]Regex, len(v.Operands))
		n := len(v.Operands)
		for i, op := range v.Operands {
			operands[n-1-i] = Reverse(op)
		}
		return Concat(operands...)
	case starRegex:
		return Star(Reverse(v.Operand))
	case negateRegex:
		return Negate(Reverse(v.Operand))
	default:
		panic(fmt.Sprintf("regexlang: unknown node type %T", r))
	}
}

// Alphabet partitions a topology's location names for the combinators
// above. internal/topology.Topology.Alphabet()/Inside()/Outside() feed
// this via NewAlphabet.
type Alphabet struct {
	All         []string
	InsideLocs  []string
	OutsideLocs []string
}

func NewAlphabet(all, inside, outside []string) Alphabet {
	return Alphabet{All: all, InsideLocs: inside, OutsideLocs: outside}
}
