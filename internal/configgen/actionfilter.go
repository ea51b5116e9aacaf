package configgen

import "github.com/pathmint/pathmint/internal/dto"

// ActionFilter drops actions already implied by context before they reach
// an Export. It is the dto.Action analogue of
// internal/controller/attrfilter.go's AttrFilter, which kept only the
// proto attributes present in an allow-list; this one works the other way
// round, dropping the SetCommunity actions present in an exclude set,
// since the thing configgen needs to prune (spec §4.G step 5: "inside
// exports that carry a community already implied by the receiver's match
// are pruned") is a deny-list, not an allow-list.
type ActionFilter struct {
	excludeCommunities map[string]bool
}

func NewActionFilter(implied ...string) *ActionFilter {
	f := &ActionFilter{excludeCommunities: make(map[string]bool, len(implied))}
	for _, c := range implied {
		f.excludeCommunities[c] = true
	}
	return f
}

func (f *ActionFilter) Filter(actions []dto.Action) []dto.Action {
	result := make([]dto.Action, 0, len(actions))
	for _, a := range actions {
		if a.Kind == dto.ActionSetCommunity && f.excludeCommunities[a.Community] {
			continue
		}
		result = append(result, a)
	}
	return result
}
