package main

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/pathmint/pathmint/internal/dto"
)

// diffConfiguration reports which routers changed between two compiles, the
// same shape internal/utils/vrfdiff.go uses for gobgp VRF tables: a
// reflect.DeepEqual membership check per key, reported as added/removed/
// changed rather than a structural patch. --watch recompiles use this to
// log what moved instead of dumping the whole configuration again.
func diffConfiguration(before, after dto.Configuration) []string {
	var lines []string
	names := make(map[string]bool, len(before)+len(after))
	for name := range before {
		names[name] = true
	}
	for name := range after {
		names[name] = true
	}
	sorted := make([]string, 0, len(names))
	for name := range names {
		sorted = append(sorted, name)
	}
	sort.Strings(sorted)

	for _, name := range sorted {
		b, inBefore := before[name]
		a, inAfter := after[name]
		switch {
		case !inBefore:
			lines = append(lines, fmt.Sprintf("+ %s", name))
		case !inAfter:
			lines = append(lines, fmt.Sprintf("- %s", name))
		case !reflect.DeepEqual(b, a):
			lines = append(lines, fmt.Sprintf("~ %s", name))
		}
	}
	return lines
}
