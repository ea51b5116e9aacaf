package main

import (
	"fmt"
	"net"

	"github.com/pathmint/pathmint/internal/bdd"
	"github.com/pathmint/pathmint/internal/compiler"
	"github.com/pathmint/pathmint/internal/dto"
	"github.com/pathmint/pathmint/internal/regexlang"
)

// PolicyFile is the on-disk TOML shape of the policy input named in spec
// §6: a list of PolicyPair entries plus the global constraint lists. It is
// decoded directly with go-toml/v2, alongside the gobgp TOML reader that
// handles the topology file.
type PolicyFile struct {
	Originators []string
	Edges       []EdgeEntry

	Policies   []PolicyEntry
	Aggregates []dto.Aggregate
	Tags       []dto.CommunityTag
	MaxRoutes  []dto.MaxRoutes
}

type EdgeEntry struct {
	From string
	To   string
}

// PolicyEntry names the prefixes a preference list applies to and the
// ordered, best-first preferences themselves, each expressed with one of
// the component-A derived idioms rather than a hand-written regex grammar
// (spec §4.A never specifies a concrete syntax for the combinators).
type PolicyEntry struct {
	Prefix      string
	Preferences []PreferenceEntry
}

type PreferenceEntry struct {
	Kind  string // "path", "waypoint", "endsat", "valleyfree"
	Path  []string
	Loc   string
	Tiers [][]string
}

// buildPolicies turns the decoded PolicyFile into the compiler.Policy
// slice Compile expects, assigning each a BDD predicate over a freshly
// declared engine and the deterministic input-order Index spec §5 relies
// on for the final join.
func buildPolicies(pf PolicyFile, alphabet regexlang.Alphabet) (*bdd.Engine, []compiler.Policy, error) {
	communityNames := make([]string, 0, len(pf.Tags))
	for _, tag := range pf.Tags {
		communityNames = append(communityNames, tag.Name)
	}
	engine := bdd.NewEngine(bdd.DeclareVars(communityNames))

	policies := make([]compiler.Policy, 0, len(pf.Policies))
	for i, entry := range pf.Policies {
		predicate, err := prefixPredicate(engine, entry.Prefix)
		if err != nil {
			return nil, nil, fmt.Errorf("policy %d: %w", i, err)
		}

		prefs := make([]regexlang.Regex, 0, len(entry.Preferences))
		for j, p := range entry.Preferences {
			regex, err := buildPreference(p, alphabet)
			if err != nil {
				return nil, nil, fmt.Errorf("policy %d preference %d: %w", i, j, err)
			}
			prefs = append(prefs, regex)
		}

		policies = append(policies, compiler.Policy{
			PolicyPair:  dto.PolicyPair{Predicate: int(predicate), Index: i},
			Preferences: prefs,
		})
	}
	return engine, policies, nil
}

func buildPreference(p PreferenceEntry, alphabet regexlang.Alphabet) (regexlang.Regex, error) {
	switch p.Kind {
	case "path", "":
		return regexlang.Path(p.Path), nil
	case "waypoint":
		return regexlang.Waypoint(p.Loc, alphabet), nil
	case "endsat":
		return regexlang.EndsAt(p.Loc, alphabet), nil
	case "valleyfree":
		return regexlang.ValleyFree(p.Tiers, alphabet), nil
	default:
		return nil, fmt.Errorf("unknown preference kind %q", p.Kind)
	}
}

func prefixPredicate(e *bdd.Engine, cidr string) (bdd.Ref, error) {
	_, ipnet, err := net.ParseCIDR(cidr)
	if err != nil {
		return bdd.False, err
	}
	ones, _ := ipnet.Mask.Size()
	var addr uint32
	for _, b := range ipnet.IP.To4() {
		addr = addr<<8 | uint32(b)
	}
	return bdd.ExactPrefix(e, bdd.Prefix{Addr: addr, Len: ones}), nil
}
