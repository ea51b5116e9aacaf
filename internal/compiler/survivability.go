package compiler

import "github.com/pathmint/pathmint/internal/topology"

// maxFailuresChecked bounds the brute-force search survivability performs.
// Exact minimum-cut computation would need a max-flow library, and none of
// the pack's dependencies offer one; since this number is diagnostic only
// (spec §4.H: "a minimum across prefixes of aggregate-failures survived"),
// a bounded check in the same conservative spirit as
// internal/ordering's consistency solver and internal/inbound's regex
// reconstruction is used instead of an exact algorithm.
const maxFailuresChecked = 2

type edge struct{ from, to string }

// survivability returns the smallest number of concurrent link failures,
// up to maxFailuresChecked, that disconnects every location in targets
// from every location in originators. It returns maxFailuresChecked+1 when
// no such combination was found within the bound.
func survivability(topo *topology.Topology, targets, originators []string) int {
	edges := allEdges(topo)
	for k := 0; k <= maxFailuresChecked; k++ {
		for _, combo := range combinations(edges, k) {
			if disconnects(topo, combo, targets, originators) {
				return k
			}
		}
	}
	return maxFailuresChecked + 1
}

func allEdges(topo *topology.Topology) []edge {
	var edges []edge
	for _, loc := range topo.Locations() {
		for _, succ := range topo.Successors(loc.Name) {
			edges = append(edges, edge{loc.Name, succ})
		}
	}
	return edges
}

func disconnects(topo *topology.Topology, removed []edge, targets, originators []string) bool {
	cut := make(map[edge]bool, len(removed))
	for _, e := range removed {
		cut[e] = true
	}
	reachable := make(map[string]bool)
	for _, o := range originators {
		markReachable(topo, o, cut, reachable)
	}
	for _, t := range targets {
		if reachable[t] {
			return false
		}
	}
	return true
}

func markReachable(topo *topology.Topology, loc string, cut map[edge]bool, visited map[string]bool) {
	if visited[loc] {
		return
	}
	visited[loc] = true
	for _, succ := range topo.Successors(loc) {
		if cut[edge{loc, succ}] {
			continue
		}
		markReachable(topo, succ, cut, visited)
	}
}

// combinations enumerates every size-k subset of items, order-independent.
func combinations(items []edge, k int) [][]edge {
	if k == 0 {
		return [][]edge{nil}
	}
	var result [][]edge
	var choose func(start int, chosen []edge)
	choose = func(start int, chosen []edge) {
		if len(chosen) == k {
			result = append(result, append([]edge(nil), chosen...))
			return
		}
		for i := start; i <= len(items)-(k-len(chosen)); i++ {
			choose(i+1, append(chosen, items[i]))
		}
	}
	choose(0, nil)
	return result
}
