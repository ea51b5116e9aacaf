package inbound

import "fmt"

// UncontrollableEnterError is §4.F's failure for a peer whose acceptable
// inbound set is neither "everything" nor "nothing": enforcing it would
// require the peer itself to filter by path regex, which BGP export
// actions on our side cannot compel.
type UncontrollableEnterError struct {
	Peer  string
	Regex fmt.Stringer // nil when the peer must send nothing and no-export is disabled
}

func (e *UncontrollableEnterError) Error() string {
	if e.Regex == nil {
		return fmt.Sprintf("peer %s must send nothing, but no-export tagging is disabled", e.Peer)
	}
	return fmt.Sprintf("peer %s's acceptable inbound set needs path regex %s, which BGP cannot enforce via exports", e.Peer, e.Regex.String())
}

// UncontrollablePeerPreferenceError is §4.F's failure when two preference
// tiers collide at the same peer and neither MED nor AS-prepending is
// available to tell them apart inbound.
type UncontrollablePeerPreferenceError struct {
	Peer  string
	Ranks []int
}

func (e *UncontrollablePeerPreferenceError) Error() string {
	return fmt.Sprintf("peer %s: ranks %v collide and neither MED nor prepending is enabled to distinguish them", e.Peer, e.Ranks)
}
