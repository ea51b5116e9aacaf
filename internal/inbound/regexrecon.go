package inbound

import (
	"github.com/pathmint/pathmint/internal/pgraph"
	"github.com/pathmint/pathmint/internal/regexlang"
)

// maxReconstructedPaths bounds how many simple paths ReconstructRegex walks
// before giving up on an exact description; the result is a diagnostic
// counter-example attached to UncontrollableEnterError, not a value the
// compiler depends on for correctness, so an approximation is acceptable
// once a PG gets large.
const maxReconstructedPaths = 8

// ReconstructRegex builds a path regex describing every simple (node
// id never repeated) route from any node in good to End, via plain
// depth-first enumeration — the diagnostic analogue of the state
// elimination spec §4.G.2 calls for when deriving Match.PathRegex, used
// here only to explain why a peer's acceptable set is "Specific".
func ReconstructRegex(a *pgraph.Arena, good []int) regexlang.Regex {
	var paths []regexlang.Regex
	for _, start := range good {
		if len(paths) >= maxReconstructedPaths {
			break
		}
		visited := map[int]bool{start: true}
		walk(a, start, []string{}, visited, &paths)
	}
	return regexlang.Union(paths...) // Union() with no operands is the empty language
}

func walk(a *pgraph.Arena, cur int, locs []string, visited map[int]bool, out *[]regexlang.Regex) {
	if len(*out) >= maxReconstructedPaths {
		return
	}
	if cur == a.End() {
		*out = append(*out, regexlang.Path(append([]string(nil), locs...)))
		return
	}
	for _, next := range a.Out(cur) {
		if visited[next] {
			continue
		}
		nextNode := a.Node(next)
		nextLocs := locs
		if next != a.End() {
			nextLocs = append(append([]string(nil), locs...), nextNode.Loc)
		}
		visited[next] = true
		walk(a, next, nextLocs, visited, out)
		delete(visited, next)
		if len(*out) >= maxReconstructedPaths {
			return
		}
	}
}
