// Package topology implements the data model of spec §3: locations, the
// directed topology graph over them, and the weak-connectivity invariant on
// the inside subgraph.
package topology

import (
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"
)

// Out is the reserved identifier meaning "any outside location" in
// constraint declarations (spec §6).
const Out = "out"

// Location is a named vertex of the topology.
type Location struct {
	Name         string
	Inside       bool
	CanOriginate bool
}

// Topology is a directed graph over Locations. Edges are stored as an
// adjacency list in both directions so neighbor lookups (needed by the PG
// builder and the §4.F inbound classifier) don't require a linear scan.
type Topology struct {
	locs  map[string]Location
	out   map[string]mapset.Set[string] // loc -> successors
	in    map[string]mapset.Set[string] // loc -> predecessors
	order []string                      // insertion order, for deterministic iteration
}

func New() *Topology {
	return &Topology{
		locs: make(map[string]Location),
		out:  make(map[string]mapset.Set[string]),
		in:   make(map[string]mapset.Set[string]),
	}
}

func (t *Topology) AddLocation(l Location) {
	if _, exists := t.locs[l.Name]; !exists {
		t.order = append(t.order, l.Name)
	}
	t.locs[l.Name] = l
	if t.out[l.Name] == nil {
		t.out[l.Name] = mapset.NewThreadUnsafeSet[string]()
	}
	if t.in[l.Name] == nil {
		t.in[l.Name] = mapset.NewThreadUnsafeSet[string]()
	}
}

func (t *Topology) AddEdge(from, to string) {
	t.out[from].Add(to)
	t.in[to].Add(from)
}

func (t *Topology) Location(name string) (Location, bool) {
	l, ok := t.locs[name]
	return l, ok
}

func (t *Topology) Locations() []Location {
	result := make([]Location, 0, len(t.order))
	for _, name := range t.order {
		result = append(result, t.locs[name])
	}
	return result
}

func (t *Topology) Successors(loc string) []string {
	return t.out[loc].ToSlice()
}

func (t *Topology) Predecessors(loc string) []string {
	return t.in[loc].ToSlice()
}

// Alphabet is the full set of location names: inside ∪ outside.
func (t *Topology) Alphabet() mapset.Set[string] {
	alphabet := mapset.NewThreadUnsafeSet[string]()
	for _, name := range t.order {
		alphabet.Add(name)
	}
	return alphabet
}

// Inside returns every location with Inside == true.
func (t *Topology) Inside() mapset.Set[string] {
	s := mapset.NewThreadUnsafeSet[string]()
	for _, name := range t.order {
		if t.locs[name].Inside {
			s.Add(name)
		}
	}
	return s
}

// Outside returns every location with Inside == false.
func (t *Topology) Outside() mapset.Set[string] {
	s := mapset.NewThreadUnsafeSet[string]()
	for _, name := range t.order {
		if !t.locs[name].Inside {
			s.Add(name)
		}
	}
	return s
}

// Originators returns every location with CanOriginate == true.
func (t *Topology) Originators() mapset.Set[string] {
	s := mapset.NewThreadUnsafeSet[string]()
	for _, name := range t.order {
		if t.locs[name].CanOriginate {
			s.Add(name)
		}
	}
	return s
}

// ErrDisconnected is returned by CheckWeaklyConnected when the inside
// subgraph is not weakly connected (spec §3 invariant).
type ErrDisconnected struct {
	Components [][]string
}

func (e *ErrDisconnected) Error() string {
	return fmt.Sprintf("inside subgraph is not weakly connected: %d components", len(e.Components))
}

// CheckWeaklyConnected verifies the spec §3 invariant: the inside subgraph
// is weakly connected (i.e. connected when edges are treated as
// undirected). Violation aborts compilation, per spec §7 ("Invariant
// violations... are fatal and abort the run").
func (t *Topology) CheckWeaklyConnected() error {
	inside := t.Inside()
	if inside.Cardinality() <= 1 {
		return nil
	}
	visited := mapset.NewThreadUnsafeSet[string]()
	var component []string
	start, _ := inside.Pop()
	inside.Add(start) // Pop removes; put it back, we only wanted a representative
	queue := []string{start}
	visited.Add(start)
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		component = append(component, cur)
		neighbors := mapset.NewThreadUnsafeSet[string]()
		neighbors.Append(t.out[cur].ToSlice()...)
		neighbors.Append(t.in[cur].ToSlice()...)
		for _, n := range neighbors.ToSlice() {
			if !inside.Contains(n) || visited.Contains(n) {
				continue
			}
			visited.Add(n)
			queue = append(queue, n)
		}
	}
	if visited.Cardinality() == inside.Cardinality() {
		return nil
	}
	remaining := inside.Difference(visited)
	return &ErrDisconnected{Components: [][]string{component, remaining.ToSlice()}}
}
