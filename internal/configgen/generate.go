// Package configgen implements component G: turning one router's ordering
// into its filter list. It plays the role internal/controller/routegen.go
// plays in the teacher — "take the pieces upstream components computed and
// assemble one device's config" — generalized from "one route's path
// attributes" to "one router's ordered BGP filter chain."
package configgen

import (
	"sort"

	"github.com/pathmint/pathmint/internal/dto"
	"github.com/pathmint/pathmint/internal/inbound"
	"github.com/pathmint/pathmint/internal/ordering"
	"github.com/pathmint/pathmint/internal/pgraph"
	"github.com/pathmint/pathmint/internal/regexlang"
	"github.com/pathmint/pathmint/internal/topology"
)

// maxIncomingPaths bounds the PathRegex fallback in deriveMatch the same
// way internal/inbound.ReconstructRegex bounds its own walk: a diagnostic
// approximation once a PG gets large, not a value correctness depends on.
const maxIncomingPaths = 8

// Counters records the spec §4.G compression-effectiveness metrics:
// Raw is Σ |in| × |out| (the filter table size a naive per-pair expansion
// would need); Smart is Σ |exports| + |filters| (what configgen actually
// emits).
type Counters struct {
	Raw   int
	Smart int
}

// Generate builds one router's DeviceConfig from its ordering, following
// the seven steps of spec §4.G. peerActions carries blanket, rank-
// independent actions a caller wants attached to every export addressed to
// a given peer — specifically internal/inbound.Resolve's "no-export" tag
// for a peer classified Nothing, which applies to the peer regardless of
// which filter it shows up in.
func Generate(a *pgraph.Arena, topo *topology.Topology, ord *ordering.Ordering, settings dto.Settings, peerActions map[string][]dto.Action) (dto.DeviceConfig, Counters, error) {
	router := ord.Router
	peers := topo.Predecessors(router)

	outsideIndices := collectOutsideIndices(a, topo, ord)
	tags, err := assignPeerTags(outsideIndices, settings)
	if err != nil {
		return dto.DeviceConfig{}, Counters{}, err
	}

	var cfg dto.DeviceConfig
	var counters Counters

	for i, nodeID := range ord.Nodes {
		node := a.Node(nodeID)
		localPref := 101 - i

		match := deriveMatch(a, nodeID, peers)
		if match.Kind == dto.MatchNoMatch {
			cfg.Originates = true
		}

		exports := deriveExports(a, nodeID, node, topo, peers, i, tags, peerActions)

		counters.Raw += len(a.In(nodeID)) * len(a.Out(nodeID))
		counters.Smart += len(exports) + 1

		cfg.Filters = append(cfg.Filters, dto.Filter{
			Match:     match,
			LocalPref: localPref,
			Exports:   exports,
		})
	}

	cfg.Filters = append(cfg.Filters, dto.DenyFilter())
	counters.Smart++

	return cfg, counters, nil
}

// deriveMatch implements §4.G step 2 (and step 6, peer-set uniqueness,
// inline, since it only ever simplifies the same node's match) plus step 3
// (full-peer-set collapse) and the origination case.
func deriveMatch(a *pgraph.Arena, nodeID int, routerPeers []string) dto.Match {
	ins := a.In(nodeID)
	if len(ins) == 1 && ins[0] == a.Start() {
		return dto.NoMatch()
	}

	byLoc := make(map[string][]int)
	for _, p := range ins {
		if p == a.Start() {
			continue
		}
		loc := a.Node(p).Loc
		byLoc[loc] = append(byLoc[loc], p)
	}
	locs := make([]string, 0, len(byLoc))
	for loc := range byLoc {
		locs = append(locs, loc)
	}
	sort.Strings(locs)

	if setEqual(locs, routerPeers) {
		if state, uniform := uniformState(a, ins); uniform {
			return dto.StateMatch(state.ID(), "*")
		}
	}

	if len(locs) == 1 {
		loc := locs[0]
		preds := byLoc[loc]
		if state, uniform := uniformState(a, preds); uniform {
			if edgeMultiplicity(a, loc, a.Node(nodeID).Loc) == 1 {
				return dto.PeerMatch(loc)
			}
			return dto.StateMatch(state.ID(), loc)
		}
	}

	return reconstructIncomingMatch(a, nodeID)
}

// uniformState reports whether every node id in ids (excluding the Start
// pole) carries the same StateVector, returning that vector if so.
func uniformState(a *pgraph.Arena, ids []int) (pgraph.StateVector, bool) {
	var state pgraph.StateVector
	seen := false
	for _, id := range ids {
		if id == a.Start() {
			continue
		}
		s := a.Node(id).State
		if !seen {
			state, seen = s, true
			continue
		}
		if s.ID() != state.ID() {
			return nil, false
		}
	}
	return state, seen
}

// edgeMultiplicity counts the distinct PG edges from a from-node to a
// to-node whose locations are fromLoc and toLoc, across the whole arena —
// spec §4.G step 6's "edge-multiplicity 1 across the PG."
func edgeMultiplicity(a *pgraph.Arena, fromLoc, toLoc string) int {
	count := 0
	for _, u := range a.AllIDs() {
		if a.Node(u).Loc != fromLoc {
			continue
		}
		for _, v := range a.Out(u) {
			if a.Node(v).Loc == toLoc {
				count++
			}
		}
	}
	return count
}

func reconstructIncomingMatch(a *pgraph.Arena, nodeID int) dto.Match {
	var paths []regexlang.Regex
	visited := map[int]bool{nodeID: true}
	walkIncoming(a, nodeID, []string{a.Node(nodeID).Loc}, visited, &paths)
	return dto.PathRegexMatch(regexlang.Union(paths...).String())
}

func walkIncoming(a *pgraph.Arena, cur int, locs []string, visited map[int]bool, out *[]regexlang.Regex) {
	if len(*out) >= maxIncomingPaths {
		return
	}
	for _, prev := range a.In(cur) {
		if prev == a.Start() {
			*out = append(*out, regexlang.Path(append([]string(nil), locs...)))
			if len(*out) >= maxIncomingPaths {
				return
			}
			continue
		}
		if visited[prev] {
			continue
		}
		prevLocs := append([]string{a.Node(prev).Loc}, locs...)
		visited[prev] = true
		walkIncoming(a, prev, prevLocs, visited, out)
		delete(visited, prev)
		if len(*out) >= maxIncomingPaths {
			return
		}
	}
}

// collectOutsideIndices maps each outside peer to the list of ordering
// positions (the "i" of §4.F's "PrependPath(3·i)") whose filter exports to
// it, so assignPeerTags can see which peers actually have colliding tiers.
func collectOutsideIndices(a *pgraph.Arena, topo *topology.Topology, ord *ordering.Ordering) map[string][]int {
	result := make(map[string][]int)
	for i, nodeID := range ord.Nodes {
		for _, o := range a.Out(nodeID) {
			if o == a.End() {
				continue
			}
			loc := a.Node(o).Loc
			if l, ok := topo.Location(loc); ok && !l.Inside {
				result[loc] = append(result[loc], i)
			}
		}
	}
	return result
}

func assignPeerTags(outsideIndices map[string][]int, settings dto.Settings) (map[string]map[int][]dto.Action, error) {
	tags := make(map[string]map[int][]dto.Action)
	peers := make([]string, 0, len(outsideIndices))
	for peer := range outsideIndices {
		peers = append(peers, peer)
	}
	sort.Strings(peers)
	for _, peer := range peers {
		t, err := inbound.AssignTags(peer, outsideIndices[peer], settings)
		if err != nil {
			return nil, err
		}
		if t != nil {
			tags[peer] = t
		}
	}
	return tags, nil
}

// deriveExports implements §4.G step 4 (inside/outside partition and
// wildcard collapse) and step 5 (tag stripping).
func deriveExports(a *pgraph.Arena, nodeID int, node *pgraph.Node, topo *topology.Topology, routerPeers []string, index int, tags map[string]map[int][]dto.Action, peerActions map[string][]dto.Action) []dto.Export {
	var insideTargets, outsideTargets []int
	for _, o := range a.Out(nodeID) {
		if o == a.End() {
			continue
		}
		loc := a.Node(o).Loc
		if l, ok := topo.Location(loc); ok && l.Inside {
			insideTargets = append(insideTargets, o)
		} else {
			outsideTargets = append(outsideTargets, o)
		}
	}

	var exports []dto.Export

	if len(insideTargets) > 0 {
		needsCommunity := false
		for _, t := range insideTargets {
			if edgeMultiplicity(a, node.Loc, a.Node(t).Loc) > 1 {
				needsCommunity = true
				break
			}
		}
		actions := []dto.Action{dto.SetCommunity(node.State.ID())}
		if !needsCommunity {
			actions = NewActionFilter(node.State.ID()).Filter(actions)
		}
		exports = append(exports, dto.Export{Peer: "in", Actions: actions})
	}

	outsideLocs := make(map[string]bool, len(outsideTargets))
	for _, t := range outsideTargets {
		outsideLocs[a.Node(t).Loc] = true
	}
	peerNames := make([]string, 0, len(outsideLocs))
	for loc := range outsideLocs {
		peerNames = append(peerNames, loc)
	}
	sort.Strings(peerNames)

	anyTagged := false
	var outsideExports []dto.Export
	for _, peer := range peerNames {
		actions := append(append([]dto.Action(nil), tags[peer][index]...), peerActions[peer]...)
		if len(actions) > 0 {
			anyTagged = true
		}
		outsideExports = append(outsideExports, dto.Export{Peer: peer, Actions: actions})
	}

	if len(peerNames) > 0 && !anyTagged && setEqual(peerNames, routerPeers) {
		exports = append(exports, dto.Export{Peer: "*"})
	} else {
		exports = append(exports, outsideExports...)
	}

	return exports
}

func setEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	sorted := append([]string(nil), b...)
	sort.Strings(sorted)
	for i := range a {
		if a[i] != sorted[i] {
			return false
		}
	}
	return true
}
