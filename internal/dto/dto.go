// Package dto holds the data types shared across the compilation pipeline:
// the closed sum types for filter matches and export actions (spec §3), the
// per-router and per-compile configuration shapes, and the constraint types
// the policy input may attach to a prefix.
package dto

import "fmt"

// MatchKind tags the variant of a Match. Match and Action are closed sum
// types; we use a tagged union (kind + payload fields) rather than an
// interface hierarchy, per the "polymorphism over match/action variants"
// design note.
type MatchKind int

const (
	MatchPeer MatchKind = iota
	MatchState
	MatchPathRegex
	MatchNoMatch
)

func (k MatchKind) String() string {
	switch k {
	case MatchPeer:
		return "Peer"
	case MatchState:
		return "State"
	case MatchPathRegex:
		return "PathRegex"
	case MatchNoMatch:
		return "NoMatch"
	default:
		return "Unknown"
	}
}

// Match is one of {Peer(loc), State(community, loc-or-wildcard), PathRegex,
// NoMatch}. Only the fields relevant to Kind are populated.
type Match struct {
	Kind      MatchKind
	Loc       string // Peer, State
	Community string // State
	Regex     string // PathRegex, textual rendering of the reconstructed regex
}

func PeerMatch(loc string) Match                  { return Match{Kind: MatchPeer, Loc: loc} }
func StateMatch(community, loc string) Match      { return Match{Kind: MatchState, Community: community, Loc: loc} }
func PathRegexMatch(regex string) Match           { return Match{Kind: MatchPathRegex, Regex: regex} }
func NoMatch() Match                              { return Match{Kind: MatchNoMatch} }

func (m Match) String() string {
	switch m.Kind {
	case MatchPeer:
		return fmt.Sprintf("Peer(%s)", m.Loc)
	case MatchState:
		return fmt.Sprintf("State(%s, %s)", m.Community, m.Loc)
	case MatchPathRegex:
		return fmt.Sprintf("PathRegex(%s)", m.Regex)
	case MatchNoMatch:
		return "NoMatch"
	default:
		return "<invalid match>"
	}
}

// ActionKind tags the variant of an Action.
type ActionKind int

const (
	ActionSetCommunity ActionKind = iota
	ActionSetMED
	ActionPrependPath
)

func (k ActionKind) String() string {
	switch k {
	case ActionSetCommunity:
		return "SetCommunity"
	case ActionSetMED:
		return "SetMED"
	case ActionPrependPath:
		return "PrependPath"
	default:
		return "Unknown"
	}
}

// Action is one of {SetCommunity(s), SetMED(int), PrependPath(int)}.
type Action struct {
	Kind      ActionKind
	Community string // SetCommunity
	MED       int    // SetMED
	Repeat    int    // PrependPath
}

func SetCommunity(s string) Action { return Action{Kind: ActionSetCommunity, Community: s} }
func SetMED(med int) Action        { return Action{Kind: ActionSetMED, MED: med} }
func PrependPath(n int) Action     { return Action{Kind: ActionPrependPath, Repeat: n} }

func (a Action) String() string {
	switch a.Kind {
	case ActionSetCommunity:
		return fmt.Sprintf("SetCommunity(%s)", a.Community)
	case ActionSetMED:
		return fmt.Sprintf("SetMED(%d)", a.MED)
	case ActionPrependPath:
		return fmt.Sprintf("PrependPath(%d)", a.Repeat)
	default:
		return "<invalid action>"
	}
}

// Export is a per-peer (or wildcard "*"/"in") bundle of actions applied on
// the way out.
type Export struct {
	Peer    string // a peer locator, "*" (all topology peers) or "in" (inside wildcard)
	Actions []Action
}

// Filter is one rule: either Deny, or Allow(match, local-pref) with a list
// of exports. Filter order within a DeviceConfig is significant — earlier
// filters override later ones.
type Filter struct {
	Deny      bool
	Match     Match
	LocalPref int
	Exports   []Export
}

func DenyFilter() Filter { return Filter{Deny: true} }

// DeviceConfig is the per-router output of component G: whether the router
// originates traffic for this prefix, and its ordered filter list.
type DeviceConfig struct {
	Originates bool
	Filters    []Filter
}

// ControlConfig carries the non-filter parts of a router's configuration
// that the constraint list (Aggregate/Community/MaxRoutes) produces.
type ControlConfig struct {
	Aggregates []Aggregate
	Tags       []CommunityTag
	MaxRoutes  []MaxRoutes
}

// RouterConfig is everything compiled for one router: one (predicate,
// DeviceConfig) pair per prefix group that touches it, plus control config.
type RouterConfig struct {
	Actions []PredicatedDeviceConfig
	Control ControlConfig
}

// PredicatedDeviceConfig pairs a DeviceConfig with the BDD ref selecting
// the prefixes it applies to.
type PredicatedDeviceConfig struct {
	Predicate int // bdd.Ref; int to avoid an import cycle with internal/bdd
	PrefixIdx int // input order of the originating PolicyPair, for deterministic joins
	Device    DeviceConfig
}

// Configuration is the final, joined, per-compile output: router name ->
// RouterConfig.
type Configuration map[string]*RouterConfig

// Constraint types from spec §6.

type Aggregate struct {
	Prefix  string
	InLocs  []string
	OutLocs []string
}

type CommunityTag struct {
	Name    string
	Prefix  string
	InLocs  []string
	OutLocs []string
}

type MaxRoutes struct {
	N       int
	InLocs  []string
	OutLocs []string
}

// PolicyPair is one entry of the policy input: a predicate selecting which
// prefixes/communities it applies to, plus its input order. The ordered
// (best-first) list of preference regexes lives in
// internal/compiler.Policy, which embeds a PolicyPair alongside the actual
// *regexlang.Regex values — kept out of this package so internal/dto does
// not need to import internal/regexlang.
type PolicyPair struct {
	Predicate int // bdd.Ref
	Index     int // input order, used for deterministic join (§5)
}

// Settings is the CLI surface consumed by the core (spec §6).
type Settings struct {
	UseMed        bool
	UsePrepending bool
	UseNoExport   bool
	CheckEnter    bool
	DebugDir      string
}
