package compiler

import "fmt"

// PrefixError wraps a per-prefix compilation failure with the index of the
// offending Policy, so a failed prefix doesn't stop the driver from
// reporting every other prefix's outcome in the same run (spec §5: "sibling
// tasks continue so the operator sees all errors in one run").
//
// The underlying Err is one of ordering.NoPathForRoutersError,
// ordering.InconsistentPrefsError, inbound.UncontrollableEnterError, or
// inbound.UncontrollablePeerPreferenceError — spec §7's single
// CompileError sum type, realized here as Go's native error interface
// plus errors.As rather than a hand-rolled tagged union: each failure
// already carries its own payload as a concrete type, so a second layer of
// tagging would only duplicate what errors.As already gives the caller.
type PrefixError struct {
	PrefixIndex int
	Err         error
}

func (e *PrefixError) Error() string {
	return fmt.Sprintf("prefix %d: %v", e.PrefixIndex, e.Err)
}

func (e *PrefixError) Unwrap() error { return e.Err }
