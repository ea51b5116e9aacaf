// Package ordering implements component E: the per-router consistency and
// ordering solver described in spec §4.E. It is deliberately a conservative
// local check, not a complete solver — see InconsistentPrefsError.
package ordering

import (
	"sort"

	"github.com/pathmint/pathmint/internal/pgraph"
)

// Ordering is one router's strict partial order over its PG nodes, best
// (most preferred) first.
type Ordering struct {
	Router string
	Nodes  []int
}

// WellFormed checks the §4.E precondition: every originating location must
// have at least one surviving PG node. a is assumed already minimized, so
// any surviving node is already known to reach End.
func WellFormed(a *pgraph.Arena, originators []string) error {
	var offending []string
	for _, loc := range originators {
		if len(a.NodesAt(loc)) == 0 {
			offending = append(offending, loc)
		}
	}
	if len(offending) > 0 {
		return &NoPathForRoutersError{Locations: offending}
	}
	return nil
}

// Build computes the ordering for every router (every inside location with
// at least one surviving PG node), applying the §4.E conservative
// consistency check to each. It returns on the first InconsistentPrefsError
// — the compiler aborts the whole prefix on any router's failure (spec §7:
// invariant violations are fatal).
func Build(a *pgraph.Arena, routers []string) (map[string]*Ordering, error) {
	best := pgraph.MinReachableRank(a)
	result := make(map[string]*Ordering, len(routers))
	for _, router := range routers {
		ord, err := buildOne(a, best, router)
		if err != nil {
			return nil, err
		}
		if ord == nil {
			continue // router has no surviving nodes for this prefix; nothing to order
		}
		result[router] = ord
	}
	return result, nil
}

func buildOne(a *pgraph.Arena, best map[int]int, router string) (*Ordering, error) {
	ids := a.NodesAt(router)
	if len(ids) == 0 {
		return nil, nil
	}
	sort.Slice(ids, func(i, j int) bool {
		ni, nj := a.Node(ids[i]), a.Node(ids[j])
		if ni.Rank != nj.Rank {
			if ni.Rank == pgraph.NoRank {
				return false
			}
			if nj.Rank == pgraph.NoRank {
				return true
			}
			return ni.Rank < nj.Rank
		}
		return ni.State.Less(nj.State)
	})

	for i, va := range ids {
		for _, vb := range ids[i+1:] {
			// va is ordered strictly ahead of vb (a ≻ b). The check: vb's
			// own best realizable rank must not be strictly better than
			// va's — if it is, some downstream router would have reason
			// to prefer b's announcement over a's, contradicting this
			// router's intended order.
			if best[vb] < best[va] {
				return nil, &InconsistentPrefsError{Router: router, A: va, B: vb}
			}
		}
	}

	return &Ordering{Router: router, Nodes: ids}, nil
}
