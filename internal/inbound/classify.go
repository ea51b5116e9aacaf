// Package inbound implements component F: classifying what each outside
// peer may be allowed to send us, and deciding the MED/prepend/no-export
// tagging that makes that classification enforceable.
package inbound

import (
	"github.com/pathmint/pathmint/internal/dto"
	"github.com/pathmint/pathmint/internal/pgraph"
)

// Kind is the three-state peer classification of spec §4.F.
type Kind int

const (
	Anything Kind = iota
	Nothing
	Specific
)

// Classification is the result of looking at one outside peer's downstream
// cone in a minimized PG.
type Classification struct {
	Peer string
	Kind Kind
	// Good holds the peer's PG node ids whose continuation reaches End —
	// the "acceptable" subset. Only meaningful (and only a strict subset
	// of Classify's node list) when Kind == Specific.
	Good []int
}

// Classify inspects every PG node at peer's location and partitions them by
// whether their continuation reaches End (i.e. is usable at all). All-good
// is Anything, none-good is Nothing, a genuine mix is Specific.
func Classify(a *pgraph.Arena, peer string) Classification {
	nodes := a.NodesAt(peer)
	best := pgraph.MinReachableRank(a)
	const inf = int(^uint(0) >> 1)

	var good []int
	for _, id := range nodes {
		if best[id] < inf {
			good = append(good, id)
		}
	}

	switch {
	case len(good) == len(nodes):
		return Classification{Peer: peer, Kind: Anything}
	case len(good) == 0:
		return Classification{Peer: peer, Kind: Nothing}
	default:
		return Classification{Peer: peer, Kind: Specific, Good: good}
	}
}

// Resolve turns a Classification into the inbound-tagging action list for
// peer's export, or an error when the classification cannot be enforced.
func Resolve(c Classification, a *pgraph.Arena, settings dto.Settings) ([]dto.Action, error) {
	switch c.Kind {
	case Anything:
		return nil, nil
	case Nothing:
		if !settings.UseNoExport {
			return nil, &UncontrollableEnterError{Peer: c.Peer}
		}
		return []dto.Action{dto.SetCommunity("no-export")}, nil
	default: // Specific
		re := ReconstructRegex(a, c.Good)
		return nil, &UncontrollableEnterError{Peer: c.Peer, Regex: re}
	}
}
