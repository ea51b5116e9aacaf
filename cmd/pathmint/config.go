package main

import (
	"fmt"
	"os"
	"time"

	"github.com/osrg/gobgp/v3/pkg/config"
	"github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"
	"golang.org/x/time/rate"

	"github.com/pathmint/pathmint/internal/dto"
	"github.com/pathmint/pathmint/internal/topology"
)

// Config is the CLI settings surface (spec §6), following cmd/config.go's
// NewConfig shape: a pflag flag for every option, a panic on a missing
// required flag, and a mustReadConfig step that turns the files on disk
// into the structures the core pipeline consumes.
type Config struct {
	TopologyFile string
	PolicyFile   string
	LogLevel     string
	Workers      int
	Watch        bool
	Stats        bool
	JSONOut      string

	Settings dto.Settings
	Topology *topology.Topology
	Policy   PolicyFile

	logger *logrus.Logger
}

func NewConfig(logger *logrus.Logger) (cfg Config) {
	topoFile := flag.StringP("topology", "t", "", "Path to the gobgp-style TOML topology file")
	policyFile := flag.StringP("policy", "p", "", "Path to the TOML policy file")
	logLevel := flag.StringP("log-level", "l", "info", "Log level")
	workers := flag.IntP("workers", "w", 4, "Number of parallel compile workers")
	watch := flag.Bool("watch", false, "Recompile whenever the policy file changes")
	stats := flag.Bool("stats", false, "Print per-prefix szRaw/szSmart compression counters")
	jsonOut := flag.StringP("json-out", "j", "", "Write the compiled Configuration as JSON to this path, for later use with 'pathmint diff'")
	useMed := flag.Bool("use-med", true, "Allow SetMED actions when tagging inbound preference")
	usePrepend := flag.Bool("use-prepend", true, "Allow PrependPath actions when tagging inbound preference")
	useNoExport := flag.Bool("use-no-export", true, "Allow no-export tagging for peers classified Nothing")
	checkEnter := flag.Bool("check-enter", true, "Run the inbound-traffic classifier (component F)")
	debugDir := flag.StringP("debug-dir", "d", "", "Directory for debug dumps (currently unused)")

	flag.Parse()
	if *topoFile == "" || *policyFile == "" {
		panic("both --topology and --policy must be defined")
	}

	cfg.TopologyFile = *topoFile
	cfg.PolicyFile = *policyFile
	cfg.LogLevel = *logLevel
	cfg.Workers = *workers
	cfg.Watch = *watch
	cfg.Stats = *stats
	cfg.JSONOut = *jsonOut
	cfg.Settings = dto.Settings{
		UseMed:        *useMed,
		UsePrepending: *usePrepend,
		UseNoExport:   *useNoExport,
		CheckEnter:    *checkEnter,
		DebugDir:      *debugDir,
	}
	cfg.logger = logger

	topo, policy := cfg.mustReadConfig()
	cfg.Topology = topo
	cfg.Policy = policy
	return
}

func (c *Config) mustReadConfig() (*topology.Topology, PolicyFile) {
	gobgpConfig, err := config.ReadConfigFile(c.TopologyFile, "toml")
	if err != nil {
		c.logger.WithFields(logrus.Fields{"file": c.TopologyFile}).Fatalf("error reading topology file: %v", err)
	}

	policy, err := readPolicyFile(c.PolicyFile)
	if err != nil {
		c.logger.WithFields(logrus.Fields{"file": c.PolicyFile}).Fatalf("error reading policy file: %v", err)
	}

	edges := make([]topology.Edge, len(policy.Edges))
	for i, e := range policy.Edges {
		edges[i] = topology.Edge{From: e.From, To: e.To}
	}
	topo := topology.FromBgpConfigSet(gobgpConfig, edges, policy.Originators)
	return topo, policy
}

// watchPolicyChanges reloads the topology and policy whenever the policy
// file on disk changes, rate-limited the same way cmd/config.go throttles
// its own gobgp config reload (golang.org/x/time/rate.Sometimes). Only the
// policy file is watched, via fsnotify: it's plain TOML decoded with
// go-toml/v2, not gobgp's dialect, so gobgp's own config.WatchConfigFile
// (used for reading the topology file in mustReadConfig) doesn't apply to
// it. A policy-file change still re-reads the topology file too, since
// mustReadConfig rebuilds both together.
func (c *Config) watchPolicyChanges() <-chan Config {
	ch := make(chan Config)
	rateLimiter := rate.Sometimes{Interval: time.Second}
	watchFile(c.PolicyFile, func() {
		rateLimiter.Do(func() {
			c.logger.Info("policy change detected, recompiling")
			topo, policy := c.mustReadConfig()
			next := *c
			next.Topology = topo
			next.Policy = policy
			ch <- next
		})
	})
	return ch
}

func readPolicyFile(path string) (PolicyFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return PolicyFile{}, err
	}
	defer f.Close()

	var pf PolicyFile
	if err := toml.NewDecoder(f).Decode(&pf); err != nil {
		return PolicyFile{}, fmt.Errorf("decoding %s: %w", path, err)
	}
	return pf, nil
}
