package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/prometheus/client_golang/prometheus"
	"gopkg.in/yaml.v3"

	"github.com/agora-courts/agora-courts/internal/config"
	"github.com/agora-courts/agora-courts/internal/metrics"
	"github.com/agora-courts/agora-courts/internal/runner"
	"github.com/agora-courts/agora-courts/internal/store"
	"github.com/agora-courts/agora-courts/pkg/db"
	"github.com/agora-courts/agora-courts/pkg/db/pebble"
	"github.com/agora-courts/agora-courts/pkg/log"
)

type options struct {
	scenario   string
	dbPath     string
	cacheSize  int
	logLevel   string
	logJSON    bool
	metricsOut string
}

func main() {
	var opts options
	flag.StringVar(&opts.scenario, "scenario", "", "path to the scenario YAML file")
	flag.StringVar(&opts.dbPath, "db", "", "pebble directory, in-memory when empty")
	flag.IntVar(&opts.cacheSize, "cache-size", 0, "record cache entries, 0 for the default")
	flag.StringVar(&opts.logLevel, "log-level", "info", "log level")
	flag.BoolVar(&opts.logJSON, "log-json", false, "log JSON instead of console output")
	flag.StringVar(&opts.metricsOut, "metrics-out", "", "write metrics in text format to this file")
	flag.Parse()

	if opts.scenario == "" {
		fmt.Fprintln(os.Stderr, "missing -scenario")
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, opts, os.Stdout); err != nil {
		log.CLI.Error().Err(err).Msg("scenario failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options, out io.Writer) error {
	level, err := log.ParseLogLevel(opts.logLevel)
	if err != nil {
		return fmt.Errorf("parse log level: %w", err)
	}
	logType := log.ConsoleLogger
	if opts.logJSON {
		logType = log.JSONLogger
	}
	log.Init(log.Options{LogLevel: level, Type: logType, Output: os.Stderr})

	sc, err := config.LoadScenario(opts.scenario)
	if err != nil {
		return err
	}

	var kv db.KVStore
	if opts.dbPath == "" {
		kv, err = pebble.NewKVStore()
	} else {
		kv, err = pebble.Open(opts.dbPath)
	}
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	s, err := store.New(kv, opts.cacheSize)
	if err != nil {
		_ = kv.Close()
		return err
	}
	defer func() {
		if err := s.Close(); err != nil {
			log.CLI.Warn().Err(err).Msg("close store")
		}
	}()

	reg := prometheus.NewRegistry()
	m, err := metrics.New(reg)
	if err != nil {
		return err
	}

	log.CLI.Info().Str("scenario", opts.scenario).Str("court", sc.Court.ID).Int("steps", len(sc.Steps)).Msg("running scenario")
	rep, err := runner.New(s, m, log.Engine).Run(ctx, sc)
	if err != nil {
		return err
	}

	for _, d := range rep.Disputes {
		ev := log.CLI.Info().Uint64("dispute", d.ID).Str("status", d.Status).Uint64("votes", d.Votes).Int("receipts", len(d.Receipts))
		if d.Winner != "" {
			ev = ev.Str("winner", d.Winner)
		}
		ev.Msg("dispute summary")
	}

	if opts.metricsOut != "" {
		if err := prometheus.WriteToTextfile(opts.metricsOut, reg); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(rep); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return enc.Close()
}
