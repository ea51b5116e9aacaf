package compiler

import (
	"github.com/pathmint/pathmint/internal/configgen"
	"github.com/pathmint/pathmint/internal/dto"
	"github.com/pathmint/pathmint/internal/inbound"
	"github.com/pathmint/pathmint/internal/ordering"
	"github.com/pathmint/pathmint/internal/pgraph"
	"github.com/pathmint/pathmint/internal/regexlang"
	"github.com/pathmint/pathmint/internal/topology"
)

// Result is one prefix's compiled output.
type Result struct {
	Policy            Policy
	Devices           map[string]dto.DeviceConfig
	Counters          configgen.Counters
	UnusedPreferences []int
	Survivability     int // -1 when there is no Aggregate constraint; otherwise the minimum over every Aggregate, whether or not it covers this policy's prefixes
}

// runJob executes components A through G for one policy entry — the
// per-prefix unit spec §5 calls "embarrassingly parallel": dataflow
// "regex list -> (A) -> DFAs -> (C) -> raw PG -> (D) -> minimized PG ->
// (E) -> per-router ordering -> (F) + (G) -> per-prefix config."
func runJob(topo *topology.Topology, policy Policy, aggregates []dto.Aggregate, settings dto.Settings) (*Result, error) {
	alphabet := regexlang.NewAlphabet(topo.Alphabet().ToSlice(), topo.Inside().ToSlice(), topo.Outside().ToSlice())

	dfas := make([]*regexlang.DFA, len(policy.Preferences))
	for i, pref := range policy.Preferences {
		dfas[i] = regexlang.MakeDFA(regexlang.Reverse(pref), alphabet.All)
	}

	a := pgraph.Build(topo, dfas)
	pgraph.Minimize(a)
	unused := pgraph.UnusedPreferences(a, len(policy.Preferences))

	originators := topo.Originators().ToSlice()
	if err := ordering.WellFormed(a, originators); err != nil {
		return nil, &PrefixError{PrefixIndex: policy.Index, Err: err}
	}

	routers := topo.Inside().ToSlice()
	orderings, err := ordering.Build(a, routers)
	if err != nil {
		return nil, &PrefixError{PrefixIndex: policy.Index, Err: err}
	}

	peerActions, err := classifyPeers(a, topo, settings)
	if err != nil {
		return nil, &PrefixError{PrefixIndex: policy.Index, Err: err}
	}

	devices := make(map[string]dto.DeviceConfig, len(orderings))
	var counters configgen.Counters
	for router, ord := range orderings {
		dev, c, err := configgen.Generate(a, topo, ord, settings, peerActions)
		if err != nil {
			return nil, &PrefixError{PrefixIndex: policy.Index, Err: err}
		}
		devices[router] = dev
		counters.Raw += c.Raw
		counters.Smart += c.Smart
	}

	survives := -1
	for _, agg := range aggregates {
		s := survivability(topo, agg.InLocs, originators)
		if survives == -1 || s < survives {
			survives = s
		}
	}

	return &Result{
		Policy:            policy,
		Devices:           devices,
		Counters:          counters,
		UnusedPreferences: unused,
		Survivability:     survives,
	}, nil
}

// classifyPeers runs component F for every outside location of the
// topology (one with no surviving PG node classifies as Anything and gets
// no actions), returning the blanket export actions
// internal/configgen.Generate attaches per peer. Skipped when
// settings.CheckEnter is false — that flag exists to make the check, and
// its cost, optional.
func classifyPeers(a *pgraph.Arena, topo *topology.Topology, settings dto.Settings) (map[string][]dto.Action, error) {
	if !settings.CheckEnter {
		return nil, nil
	}
	result := make(map[string][]dto.Action)
	for _, peer := range topo.Outside().ToSlice() {
		c := inbound.Classify(a, peer)
		actions, err := inbound.Resolve(c, a, settings)
		if err != nil {
			return nil, err
		}
		if len(actions) > 0 {
			result[peer] = actions
		}
	}
	return result, nil
}
