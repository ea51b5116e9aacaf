package bdd

import (
	"fmt"
	"math/bits"
	"sort"
	"strconv"
	"strings"
)

// NumAddrBits is the width of the prefix-address variable family (p0..p31,
// msb first).
const NumAddrBits = 32

// MaxSlash is the largest declared slash-length variable (s0..s31): the
// engine has no variable for /32, so the narrowest block it can represent
// natively is a /31 pair.
const MaxSlash = 31

func addrBitVar(i int) string  { return fmt.Sprintf("p%d", i) }
func slashVar(j int) string    { return fmt.Sprintf("s%d", j) }
func communityVar(n string) string { return "c" + n }

// DeclareVars builds the full variable universe for NewEngine: every
// address bit, every slash-length bit, and one variable per named
// community.
func DeclareVars(communities []string) []string {
	names := make([]string, 0, NumAddrBits+MaxSlash+1+len(communities))
	for i := 0; i < NumAddrBits; i++ {
		names = append(names, addrBitVar(i))
	}
	for j := 0; j <= MaxSlash; j++ {
		names = append(names, slashVar(j))
	}
	for _, c := range communities {
		names = append(names, communityVar(c))
	}
	return names
}

// Prefix is a CIDR block: the top Len bits of Addr are significant, msb
// first; Len must be in [0, MaxSlash].
type Prefix struct {
	Addr uint32
	Len  int
}

// ExactPrefix builds the predicate for exactly the block p describes: the
// top p.Len address bits pinned to p.Addr's bits, the rest free, AND the
// slash-length bit for p.Len (spec §4.B "Prefix encoding").
func ExactPrefix(e *Engine, p Prefix) Ref {
	r := True
	for i := 0; i < p.Len; i++ {
		bitpos := uint(NumAddrBits - 1 - i)
		v := e.Var(addrBitVar(i))
		if (p.Addr>>bitpos)&1 == 1 {
			r = e.And(r, v)
		} else {
			r = e.And(r, e.Not(v))
		}
	}
	return e.And(r, e.Var(slashVar(p.Len)))
}

// RangedSlash builds the predicate for addr at any slash length in
// [lo, hi]: a disjunction of intBits(j) for j in that range (spec §4.B).
func RangedSlash(e *Engine, addr uint32, lo, hi int) Ref {
	result := False
	for j := lo; j <= hi; j++ {
		result = e.Or(result, ExactPrefix(e, Prefix{Addr: addr, Len: j}))
	}
	return result
}

// CommunityIs is the predicate "route carries community name".
func CommunityIs(e *Engine, name string) Ref { return e.Var(communityVar(name)) }

// CommunitySet is the predicate "route carries every community in names".
func CommunitySet(e *Engine, names []string) Ref {
	r := True
	for _, c := range names {
		r = e.And(r, CommunityIs(e, c))
	}
	return r
}

// NoCommunities is the predicate "route carries none of the named
// communities", for the baseline/default case of an export filter.
func NoCommunities(e *Engine, all []string) Ref {
	r := True
	for _, c := range all {
		r = e.And(r, e.Not(CommunityIs(e, c)))
	}
	return r
}

// ToPredicate is the disjunction of ExactPrefix over every block in
// prefixes.
func ToPredicate(e *Engine, prefixes []Prefix) Ref {
	r := False
	for _, p := range prefixes {
		r = e.Or(r, ExactPrefix(e, p))
	}
	return r
}

// ToPrefixes decomposes the inclusive address range [lo, hi] into the
// minimal set of CIDR blocks covering it, the way a route aggregator or
// prefix-list compiler would. Blocks narrower than /31 are not
// representable (see MaxSlash) and ToPrefixes never emits one, so the cover
// is exact only when lo is even and hi is odd; an odd lo or an even hi gets
// a /31 block that also covers its neighbouring address.
func ToPrefixes(lo, hi uint32) []Prefix {
	var out []Prefix
	cur := uint64(lo)
	end := uint64(hi)
	for cur <= end {
		alignLen := 0
		if cur != 0 {
			alignLen = NumAddrBits - bits.TrailingZeros32(uint32(cur))
		}
		remaining := end - cur + 1
		blockBits := bits.Len64(remaining) - 1 // log2 of the largest power of two <= remaining
		sizeLen := NumAddrBits - blockBits

		length := alignLen
		if sizeLen > length {
			length = sizeLen
		}
		if length > MaxSlash {
			length = MaxSlash
		}
		blockSize := uint64(1) << uint(NumAddrBits-length)
		out = append(out, Prefix{Addr: uint32(cur), Len: length})
		cur += blockSize
	}
	return out
}

// AddrRange is an inclusive [Lo, Hi] address range.
type AddrRange struct {
	Lo, Hi uint32
}

// ToRanges recovers the set of address ranges a predicate's address/slash
// variables describe, merging adjacent and overlapping blocks. It ignores
// community variables: callers that mix prefix and community predicates
// should project those out first.
func ToRanges(e *Engine, r Ref) []AddrRange {
	var ranges []AddrRange
	for _, cube := range e.IterPaths(r) {
		var lo, pinned uint32
		deepest := -1 // index of the lowest-order pinned address bit
		haveLen := false
		for _, lit := range cube.Literals {
			switch {
			case strings.HasPrefix(lit.Var, "p"):
				i, err := strconv.Atoi(lit.Var[1:])
				if err != nil {
					continue
				}
				bitpos := uint(NumAddrBits - 1 - i)
				pinned |= 1 << bitpos
				if lit.Value {
					lo |= 1 << bitpos
				}
				if i > deepest {
					deepest = i
				}
			case strings.HasPrefix(lit.Var, "s") && lit.Value:
				haveLen = true
			}
		}
		if !haveLen {
			continue
		}
		// Free bits below the deepest pinned bit form one contiguous block;
		// free bits above it split the cube into one block per assignment.
		host := uint32(uint64(1)<<uint(NumAddrBits-1-deepest) - 1)
		holes := ^pinned &^ host
		for sub := holes; ; sub = (sub - 1) & holes {
			ranges = append(ranges, AddrRange{Lo: lo | sub, Hi: lo | sub | host})
			if sub == 0 {
				break
			}
		}
	}
	return mergeRanges(ranges)
}

func mergeRanges(rs []AddrRange) []AddrRange {
	if len(rs) == 0 {
		return nil
	}
	sort.Slice(rs, func(i, j int) bool { return rs[i].Lo < rs[j].Lo })
	merged := []AddrRange{rs[0]}
	for _, r := range rs[1:] {
		last := &merged[len(merged)-1]
		adjacent := last.Hi != ^uint32(0) && r.Lo == last.Hi+1
		if r.Lo <= last.Hi || adjacent {
			if r.Hi > last.Hi {
				last.Hi = r.Hi
			}
			continue
		}
		merged = append(merged, r)
	}
	return merged
}
