package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/osrg/gobgp/v3/pkg/log"
	"github.com/sirupsen/logrus"

	"github.com/pathmint/pathmint/internal/compiler"
	"github.com/pathmint/pathmint/internal/dto"
	"github.com/pathmint/pathmint/internal/prettyprint"
	"github.com/pathmint/pathmint/internal/regexlang"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "diff" {
		runDiffCommand(os.Args[2:])
		return
	}

	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg := NewConfig(logger)
	bgpLogger := log.NewDefaultLogger()
	switch cfg.LogLevel {
	case "debug":
		logger.SetLevel(logrus.DebugLevel)
		bgpLogger.SetLevel(log.DebugLevel)
	case "info":
		logger.SetLevel(logrus.InfoLevel)
		bgpLogger.SetLevel(log.InfoLevel)
	default:
		logger.SetLevel(logrus.InfoLevel)
		bgpLogger.SetLevel(log.InfoLevel)
	}

	logger.Info("pathmint started")

	last, results, err := compileOnce(cfg, bgpLogger)
	if err != nil {
		logger.WithFields(logrus.Fields{"error": err}).Error("compile failed")
		os.Exit(1)
	}
	prettyprint.PrintConfiguration(os.Stdout, last)
	if cfg.Stats {
		prettyprint.PrintStats(os.Stdout, results)
	}
	if cfg.JSONOut != "" {
		if err := writeConfigurationJSON(cfg.JSONOut, last); err != nil {
			logger.WithFields(logrus.Fields{"error": err, "file": cfg.JSONOut}).Error("writing json output failed")
		}
	}

	if !cfg.Watch {
		return
	}

	for next := range cfg.watchPolicyChanges() {
		cfg = next
		updated, results, err := compileOnce(cfg, bgpLogger)
		if err != nil {
			logger.WithFields(logrus.Fields{"error": err}).Error("recompile failed")
			continue
		}
		for _, line := range diffConfiguration(last, updated) {
			fmt.Println(line)
		}
		if cfg.Stats {
			prettyprint.PrintStats(os.Stdout, results)
		}
		if cfg.JSONOut != "" {
			if err := writeConfigurationJSON(cfg.JSONOut, updated); err != nil {
				logger.WithFields(logrus.Fields{"error": err, "file": cfg.JSONOut}).Error("writing json output failed")
			}
		}
		last = updated
	}
}

// runDiffCommand implements "pathmint diff <old.json> <new.json>": compares
// two Configurations previously written by --json-out, without needing a
// topology or policy file on hand.
func runDiffCommand(args []string) {
	if len(args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: pathmint diff <old.json> <new.json>")
		os.Exit(2)
	}
	before, err := readConfigurationJSON(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "reading %s: %v\n", args[0], err)
		os.Exit(1)
	}
	after, err := readConfigurationJSON(args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "reading %s: %v\n", args[1], err)
		os.Exit(1)
	}
	for _, line := range diffConfiguration(before, after) {
		fmt.Println(line)
	}
}

func readConfigurationJSON(path string) (dto.Configuration, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg dto.Configuration
	if err := json.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func writeConfigurationJSON(path string, cfg dto.Configuration) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(cfg)
}

func compileOnce(cfg Config, logger log.Logger) (dto.Configuration, []compiler.Result, error) {
	alphabet := regexlang.NewAlphabet(
		cfg.Topology.Alphabet().ToSlice(),
		cfg.Topology.Inside().ToSlice(),
		cfg.Topology.Outside().ToSlice(),
	)
	_, policies, err := buildPolicies(cfg.Policy, alphabet)
	if err != nil {
		return nil, nil, err
	}

	out, results, err := compiler.Compile(
		context.Background(),
		cfg.Topology,
		policies,
		cfg.Policy.Aggregates,
		cfg.Policy.Tags,
		cfg.Policy.MaxRoutes,
		cfg.Settings,
		cfg.Workers,
		logger,
	)
	return out, results, err
}
