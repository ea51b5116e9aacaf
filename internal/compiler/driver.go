package compiler

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/osrg/gobgp/v3/pkg/log"
	"github.com/puzpuzpuz/xsync/v4"

	"github.com/pathmint/pathmint/internal/dto"
	"github.com/pathmint/pathmint/internal/topology"
)

// Driver runs the per-prefix pipeline over a worker pool — the batch
// analogue of internal/app.App's channel-fed event loop: instead of one
// receiver goroutine draining a single gRPC watch channel, it fans a
// slice of Policy entries out across a fixed number of workers and joins
// their Results back together once every worker has drained the queue.
// Concurrent access to the shared result/error maps is the one place this
// package's workers genuinely contend, so — unlike internal/pgraph's
// single-task arena — it earns xsync.Map, the same structure
// internal/controller/routestorage.go uses for its concurrent route table.
type Driver struct {
	Topology   *topology.Topology
	Aggregates []dto.Aggregate
	Settings   dto.Settings
	Workers    int
	Logger     log.Logger
}

func NewDriver(topo *topology.Topology, aggregates []dto.Aggregate, settings dto.Settings, workers int, logger log.Logger) *Driver {
	if workers <= 0 {
		workers = 1
	}
	return &Driver{Topology: topo, Aggregates: aggregates, Settings: settings, Workers: workers, Logger: logger}
}

// Run compiles every policy and returns the joined configuration, the
// individual per-prefix results (for diagnostics and tests), and every
// prefix's error bundled via go-multierror rather than the first one only
// — spec §5: "Tasks that fail surface their first error via a result
// value; sibling tasks continue so the operator sees all errors in one
// run."
func (d *Driver) Run(ctx context.Context, policies []Policy) (dto.Configuration, []Result, error) {
	results := xsync.NewMap[int, *Result]()
	errs := xsync.NewMap[int, error]()

	jobs := make(chan Policy)
	go func() {
		defer close(jobs)
		for _, p := range policies {
			select {
			case jobs <- p:
			case <-ctx.Done():
				return
			}
		}
	}()

	done := make(chan struct{}, d.Workers)
	for w := 0; w < d.Workers; w++ {
		go d.work(w, jobs, results, errs, done)
	}
	for w := 0; w < d.Workers; w++ {
		<-done
	}

	var multiErr *multierror.Error
	errs.Range(func(_ int, err error) bool {
		multiErr = multierror.Append(multiErr, err)
		return true
	})

	var ordered []Result
	results.Range(func(_ int, r *Result) bool {
		ordered = append(ordered, *r)
		return true
	})
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Policy.Index < ordered[j].Policy.Index })

	return Join(ordered), ordered, multiErr.ErrorOrNil()
}

func (d *Driver) work(worker int, jobs <-chan Policy, results *xsync.Map[int, *Result], errs *xsync.Map[int, error], done chan<- struct{}) {
	defer func() { done <- struct{}{} }()
	for p := range jobs {
		runID := uuid.New()
		if d.Logger != nil {
			d.Logger.Debug("compiling prefix", log.Fields{"prefix": p.Index, "run": runID.String(), "worker": worker})
		}
		res, err := runJob(d.Topology, p, d.Aggregates, d.Settings)
		if err != nil {
			if d.Logger != nil {
				d.Logger.Error(err.Error(), log.Fields{"prefix": p.Index, "run": runID.String()})
			}
			errs.Store(p.Index, err)
			continue
		}
		results.Store(p.Index, res)
	}
}
