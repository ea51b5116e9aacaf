package compiler

import (
	"context"
	"sort"

	"github.com/osrg/gobgp/v3/pkg/log"

	"github.com/pathmint/pathmint/internal/dto"
	"github.com/pathmint/pathmint/internal/topology"
)

// Compile runs the full per-prefix pipeline for every policy entry
// (component H) and joins the results into the final configuration (spec
// §3: "The final joined configuration is produced once per compile").
// Invariant violations — here, the inside subgraph's weak-connectivity
// requirement — are checked once up front and abort before any worker is
// started, per spec §7 ("fatal and abort the run").
func Compile(ctx context.Context, topo *topology.Topology, policies []Policy, aggregates []dto.Aggregate, tags []dto.CommunityTag, maxRoutes []dto.MaxRoutes, settings dto.Settings, workers int, logger log.Logger) (dto.Configuration, []Result, error) {
	if err := topo.CheckWeaklyConnected(); err != nil {
		return nil, nil, err
	}

	driver := NewDriver(topo, aggregates, settings, workers, logger)
	cfg, results, err := driver.Run(ctx, policies)
	if err != nil {
		return cfg, results, err
	}

	attachControl(cfg, topo, aggregates, tags, maxRoutes)
	return cfg, results, nil
}

// Join merges per-prefix Results into the final Configuration. Driver.Run
// already hands Join a results slice sorted by Policy.Index, and Join
// re-sorts each router's own action list the same way, so every router's
// PredicatedDeviceConfig list comes out in input prefix order regardless
// of worker completion order (spec §5's determinism guarantee).
func Join(results []Result) dto.Configuration {
	cfg := make(dto.Configuration)
	for _, r := range results {
		for router, device := range r.Devices {
			rc, ok := cfg[router]
			if !ok {
				rc = &dto.RouterConfig{}
				cfg[router] = rc
			}
			rc.Actions = append(rc.Actions, dto.PredicatedDeviceConfig{
				Predicate: r.Policy.Predicate,
				PrefixIdx: r.Policy.Index,
				Device:    device,
			})
		}
	}
	for _, rc := range cfg {
		sort.Slice(rc.Actions, func(i, j int) bool { return rc.Actions[i].PrefixIdx < rc.Actions[j].PrefixIdx })
	}
	return cfg
}

// attachControl distributes the global Aggregate/CommunityTag/MaxRoutes
// constraints (spec §6) to the routers whose InLocs/OutLocs name them,
// creating an otherwise-empty RouterConfig when a router has no per-prefix
// filters of its own but is still named by a constraint.
func attachControl(cfg dto.Configuration, topo *topology.Topology, aggregates []dto.Aggregate, tags []dto.CommunityTag, maxRoutes []dto.MaxRoutes) {
	for _, loc := range topo.Inside().ToSlice() {
		rc, ok := cfg[loc]
		ensure := func() {
			if !ok {
				rc = &dto.RouterConfig{}
				cfg[loc] = rc
				ok = true
			}
		}

		for _, agg := range aggregates {
			if touches(loc, agg.InLocs, agg.OutLocs) {
				ensure()
				rc.Control.Aggregates = append(rc.Control.Aggregates, agg)
			}
		}
		for _, tag := range tags {
			if touches(loc, tag.InLocs, tag.OutLocs) {
				ensure()
				rc.Control.Tags = append(rc.Control.Tags, tag)
			}
		}
		for _, mr := range maxRoutes {
			if touches(loc, mr.InLocs, mr.OutLocs) {
				ensure()
				rc.Control.MaxRoutes = append(rc.Control.MaxRoutes, mr)
			}
		}
	}
}

func touches(loc string, inLocs, outLocs []string) bool {
	for _, l := range inLocs {
		if l == loc {
			return true
		}
	}
	for _, l := range outLocs {
		if l == loc {
			return true
		}
	}
	return false
}
