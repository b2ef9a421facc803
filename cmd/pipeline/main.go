// Package main runs the incremental batch pipeline.
// Usage: pipeline [flags] <process|all|list>
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"tradebot-pipeline/internal/config"
	"tradebot-pipeline/internal/helius"
	"tradebot-pipeline/internal/observability"
	"tradebot-pipeline/internal/pipeline"
	"tradebot-pipeline/internal/retry"
	pgstore "tradebot-pipeline/internal/storage/postgres"
)

func main() {
	verbose := flag.Bool("verbose", false, "Enable debug logging")
	batchSize := flag.Int("batch-size", 0, "Override BATCH_SIZE from the environment")
	metricsAddr := flag.String("metrics-addr", "", "Prometheus metrics HTTP address (overrides METRICS_ADDR)")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 1 {
		usage()
		os.Exit(2)
	}
	target := flag.Arg(0)

	if target == "list" {
		listProcesses()
		return
	}
	if target != "all" && !pipeline.Known(target) {
		fmt.Fprintf(os.Stderr, "unknown process %q\n\n", target)
		listProcesses()
		os.Exit(2)
	}

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	cfg := config.Load()
	if *batchSize > 0 {
		cfg.BatchSize = *batchSize
	}
	if *metricsAddr != "" {
		cfg.MetricsAddr = *metricsAddr
	}

	// Context with cancellation for graceful shutdown.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.WithField("signal", sig.String()).Warn("shutting down")
		cancel()
	}()

	if cfg.MetricsAddr != "" {
		go serveMetrics(cfg.MetricsAddr, log)
	}

	runner, cleanup, err := buildRunner(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Fatal("failed to set up pipeline")
	}
	defer cleanup()

	if target == "all" {
		summaries, err := runner.RunAll(ctx)
		for _, sum := range summaries {
			printSummary(sum)
		}
		if err != nil {
			log.WithError(err).Error("run finished with failures")
			os.Exit(1)
		}
		return
	}

	sum, err := runner.Run(ctx, target)
	if sum != nil {
		printSummary(sum)
	}
	if err != nil {
		log.WithError(err).Error("process failed")
		os.Exit(1)
	}
}

func buildRunner(ctx context.Context, cfg config.Config, log *logrus.Logger) (*pipeline.Runner, func(), error) {
	rawPool, err := pgstore.NewPool(ctx, cfg.RawDatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("connect raw database: %w", err)
	}

	procPool := rawPool
	cleanup := func() { rawPool.Close() }
	if cfg.ProcessedDatabaseURL != cfg.RawDatabaseURL {
		procPool, err = pgstore.NewPool(ctx, cfg.ProcessedDatabaseURL)
		if err != nil {
			rawPool.Close()
			return nil, nil, fmt.Errorf("connect processed database: %w", err)
		}
		cleanup = func() {
			procPool.Close()
			rawPool.Close()
		}
	}

	policy := retry.NewPolicy(log)
	policy.MaxAttempts = cfg.MaxRetries
	policy.BaseDelay = cfg.RetryBackoff

	// Concurrent DDL from parallel deploys can race; those errors are
	// worth a second attempt.
	setupPolicy := policy
	setupPolicy.Retryable = pgstore.RetryableSetupError
	schema := pgstore.NewSchema(procPool, cfg.Schema)
	if err := setupPolicy.Do(ctx, "ensure schema", func() error { return schema.Ensure(ctx) }); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("ensure schema %q: %w", cfg.Schema, err)
	}

	runner := pipeline.New(pipeline.Options{
		TrackerStore:          pgstore.NewTrackerStore(procPool, cfg.Schema),
		RawStore:              pgstore.NewRawStore(rawPool),
		CleanOpportunityStore: pgstore.NewCleanOpportunityStore(procPool, cfg.Schema),
		CleanCoinInfoStore:    pgstore.NewCleanCoinInfoStore(procPool, cfg.Schema),
		ProcessedArbStore:     pgstore.NewProcessedArbStore(procPool, cfg.Schema),
		ProcessedBTSStore:     pgstore.NewProcessedBTSStore(procPool, cfg.Schema),
		Metadata:              helius.NewClient(cfg.HeliusURL, cfg.HeliusAPIKey, cfg.ConcurrentLimit, log),
		Retry:                 policy,
		BatchSize:             cfg.BatchSize,
		Log:                   log,
	})
	return runner, cleanup, nil
}

func serveMetrics(addr string, log *logrus.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", observability.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	log.WithField("addr", addr).Info("starting metrics server")
	if err := http.ListenAndServe(addr, mux); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Error("metrics server error")
	}
}

func printSummary(sum *pipeline.Summary) {
	fmt.Printf("%s: batches=%d fetched=%d written=%d skipped=%d last_id=%d duration=%s\n",
		sum.Process, sum.Batches, sum.Fetched, sum.Written, sum.Skipped, sum.LastID, sum.Duration)
}

func listProcesses() {
	fmt.Println("Available processes:")
	for _, name := range pipeline.Order {
		fmt.Printf("  %-22s %s\n", name, pipeline.Descriptions[name])
	}
	fmt.Printf("  %-22s %s\n", "all", "run every process in order")
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [flags] <process|all|list>\n\nFlags:\n", os.Args[0])
	flag.PrintDefaults()
}
