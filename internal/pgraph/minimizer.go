package pgraph

// Minimize applies the two fixed-point reductions of spec §4.D, alternating
// them until neither removes a node (each pass is itself monotone over a
// finite node set, so the outer alternation terminates too).
func Minimize(a *Arena) {
	for {
		removed := pruneUnreachableToEnd(a)
		removed += pruneDominated(a)
		if removed == 0 {
			return
		}
	}
}

// pruneUnreachableToEnd removes every node with no path to End: walk the
// edge-reversed graph from End, and drop anything it never reaches.
func pruneUnreachableToEnd(a *Arena) int {
	reach := make(map[int]bool)
	queue := []int{a.End()}
	reach[a.End()] = true
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		for _, u := range a.In(v) {
			if !reach[u] {
				reach[u] = true
				queue = append(queue, u)
			}
		}
	}
	dead := make(map[int]bool)
	for _, id := range a.AllIDs() {
		if !reach[id] {
			dead[id] = true
		}
	}
	if len(dead) == 0 {
		return 0
	}
	a.remove(dead)
	return len(dead)
}

// MinReachableRank computes, for every node, the best (numerically
// smallest) accept_rank realizable by the node itself or by any node
// reachable from it on the way to End. The topology (and hence the PG) may
// contain cycles, so this is a least-fixed-point relaxation rather than a
// single DAG pass: start from each node's own rank and repeatedly let it
// absorb its successors' values until nothing changes. Exported because
// internal/ordering's consistency check reuses it directly — a router's
// preferred node must not have a strictly worse realizable rank than a
// node it's supposed to outrank.
func MinReachableRank(a *Arena) map[int]int {
	const inf = int(^uint(0) >> 1)
	best := make(map[int]int, a.NumNodes())
	for _, id := range a.AllIDs() {
		r := a.Node(id).Rank
		if r == NoRank {
			best[id] = inf
		} else {
			best[id] = r
		}
	}
	for changed := true; changed; {
		changed = false
		for _, id := range a.AllIDs() {
			for _, w := range a.Out(id) {
				if best[w] < best[id] {
					best[id] = best[w]
					changed = true
				}
			}
		}
	}
	return best
}

// pruneDominated implements the §4.D dominance pass: per location, a node
// whose best reachable rank is strictly worse than some sibling at the same
// location contributes no preference a sibling doesn't already realize, so
// it is removed.
func pruneDominated(a *Arena) int {
	best := MinReachableRank(a)
	bestAtLoc := make(map[string]int)
	for _, id := range a.AllIDs() {
		n := a.Node(id)
		if n.Loc == Start || n.Loc == End {
			continue
		}
		if cur, ok := bestAtLoc[n.Loc]; !ok || best[id] < cur {
			bestAtLoc[n.Loc] = best[id]
		}
	}
	dead := make(map[int]bool)
	for _, id := range a.AllIDs() {
		n := a.Node(id)
		if n.Loc == Start || n.Loc == End {
			continue
		}
		if best[id] > bestAtLoc[n.Loc] {
			dead[id] = true
		}
	}
	if len(dead) == 0 {
		return 0
	}
	a.remove(dead)
	return len(dead)
}

// UnusedPreferences returns every preference index in [0, numPrefs) that no
// surviving node realizes — a signal to the caller that the preference is
// dead weight in this prefix's policy (spec §9 open question: the compiler
// reports these rather than silently dropping or erroring on them).
func UnusedPreferences(a *Arena, numPrefs int) []int {
	seen := make([]bool, numPrefs)
	for _, id := range a.AllIDs() {
		r := a.Node(id).Rank
		if r != NoRank && r < numPrefs {
			seen[r] = true
		}
	}
	var unused []int
	for i, ok := range seen {
		if !ok {
			unused = append(unused, i)
		}
	}
	return unused
}
