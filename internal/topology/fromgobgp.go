package topology

import (
	"github.com/osrg/gobgp/v3/pkg/config/oc"
)

// FromBgpConfigSet builds a Topology from a gobgp TOML config set, the same
// file shape the teacher's cmd/config.go already knows how to parse
// (config.ReadConfigFile(file, "toml")). Each configured Neighbor becomes
// an outside Location named after its address; each Vrf becomes a named
// inside waypoint (the closest gobgp concept to an internal "location"
// short of the peering fabric itself); the inside core is represented by a
// single synthetic "self" location that is connected to every Vrf and can
// always originate.
//
// originators names the subset of locations (by name) the caller wants
// flagged CanOriginate; "self" and every Vrf are always originators.
func FromBgpConfigSet(cs *oc.BgpConfigSet, edges []Edge, originators []string) *Topology {
	t := New()
	canOriginate := make(map[string]bool, len(originators))
	for _, name := range originators {
		canOriginate[name] = true
	}

	t.AddLocation(Location{Name: "self", Inside: true, CanOriginate: true})
	for _, vrf := range cs.Vrfs {
		t.AddLocation(Location{Name: vrf.Config.Name, Inside: true, CanOriginate: true})
		t.AddEdge("self", vrf.Config.Name)
		t.AddEdge(vrf.Config.Name, "self")
	}
	for _, neighbor := range cs.Neighbors {
		name := neighbor.Config.NeighborAddress
		t.AddLocation(Location{
			Name:         name,
			Inside:       false,
			CanOriginate: canOriginate[name],
		})
		t.AddEdge("self", name)
		t.AddEdge(name, "self")
	}
	for _, e := range edges {
		t.AddEdge(e.From, e.To)
	}
	return t
}

// Edge is an explicit extra adjacency the gobgp config set cannot express
// (it only knows about this router's own peers, not the rest of the
// multi-router topology the policy is compiled against).
type Edge struct {
	From, To string
}
