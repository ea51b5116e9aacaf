// Package compiler implements component H: the per-prefix driver that
// runs components A through G for every policy entry and joins their
// results into the final per-router configuration.
package compiler

import (
	"github.com/pathmint/pathmint/internal/dto"
	"github.com/pathmint/pathmint/internal/regexlang"
)

// Policy is one entry of the policy input (spec §6): a predicate selecting
// which prefixes/communities it applies to, plus its ordered (best-first)
// preference regexes. It embeds dto.PolicyPair so the predicate/index pair
// travels with the rest of the pipeline without internal/dto needing to
// import internal/regexlang — see the comment on dto.PolicyPair.
type Policy struct {
	dto.PolicyPair
	Preferences []regexlang.Regex
}
