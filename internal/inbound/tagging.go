package inbound

import (
	"sort"

	"github.com/pathmint/pathmint/internal/dto"
)

// medBase and prependUnit are the constants spec §4.F names directly:
// SetMED(80+i), PrependPath(3*i).
const (
	medBase     = 80
	prependUnit = 3
)

// AssignTags decides the MED/prepend actions needed to distinguish
// multiple preference ranks a single peer contributes to a router. ranks
// must already be deduplicated and need not be sorted; the returned map is
// keyed by rank, and the ranks are tagged in sorted order (best, i.e.
// numerically smallest, first): the smallest with index 0, the next with
// index 1, and so on.
//
// AssignTags does not consider whether aggregating the colliding prefixes
// is a viable alternative (spec §4.F: "...and aggregation is not an
// alternative") — that trade-off is made by the caller before reaching for
// tagging, using the policy's Aggregate constraints.
func AssignTags(peer string, ranks []int, settings dto.Settings) (map[int][]dto.Action, error) {
	if len(ranks) <= 1 {
		return nil, nil
	}
	sorted := append([]int(nil), ranks...)
	sort.Ints(sorted)

	if !settings.UseMed && !settings.UsePrepending {
		return nil, &UncontrollablePeerPreferenceError{Peer: peer, Ranks: sorted}
	}

	tags := make(map[int][]dto.Action, len(sorted))
	for i, rank := range sorted {
		var actions []dto.Action
		if settings.UseMed {
			actions = append(actions, dto.SetMED(medBase+i))
		}
		if settings.UsePrepending {
			actions = append(actions, dto.PrependPath(prependUnit*i))
		}
		tags[rank] = actions
	}
	return tags, nil
}
