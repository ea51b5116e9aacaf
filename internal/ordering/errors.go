package ordering

import "fmt"

// InconsistentPrefsError is §4.E's counter-example: the router's intended
// order places A ahead of B, but B's downstream realizes a strictly better
// preference than anything reachable from A, so no single total order at
// this router is stable under the check. Sound but incomplete by design
// (spec §4.E, §9): some realizable specifications get rejected here.
type InconsistentPrefsError struct {
	Router string
	A, B   int // pgraph node ids, A was supposed to outrank B
}

func (e *InconsistentPrefsError) Error() string {
	return fmt.Sprintf("inconsistent preferences at %s: node %d cannot outrank node %d", e.Router, e.A, e.B)
}

// NoPathForRoutersError is the §4.E well-formedness failure: an originating
// location has no surviving PG node reachable to End.
type NoPathForRoutersError struct {
	Locations []string
}

func (e *NoPathForRoutersError) Error() string {
	return fmt.Sprintf("no path to End for originating locations: %v", e.Locations)
}
