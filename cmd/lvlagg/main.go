// SPDX-License-Identifier: MIT

// Command lvlagg drives partitioned aggregation rounds from the command line:
// PageRank over an edge list and linear or logistic regression over a CSV
// table.
package main

import (
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-kit/kit/metrics"
	"github.com/katalvlaran/lvlagg/config"
	"github.com/katalvlaran/lvlagg/round"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
)

const (
	svcName   = "lvlagg"
	subsystem = "aggregate"
)

// app is the process-wide state built once by the root command.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	runner  *round.Runner
	counter metrics.Counter
	latency metrics.Histogram
}

var (
	cfgPath  string
	exitCode int
)

func main() {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   svcName,
		Short: "Partitioned aggregation rounds",
		Long:  `lvlagg folds data partitions concurrently, merges the partial states and repeats rounds until the computation is done.`,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return a.setup()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to a TOML config file")

	rootCmd.AddCommand(
		newPageRankCmd(a),
		newRegressCmd(a),
	)

	if err := rootCmd.Execute(); err != nil {
		logErrorCmd(*rootCmd, err)
	}
	os.Exit(exitCode)
}

func (a *app) setup() error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	level, err := cfg.Level()
	if err != nil {
		return err
	}
	topology, err := cfg.MergeTopology()
	if err != nil {
		return err
	}

	// Logs go to stderr; stdout carries command results.
	logHandler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	a.logger = slog.New(logHandler)
	a.cfg = cfg
	a.runner = round.NewRunner(
		round.WithLogger(a.logger),
		round.WithTracer(otel.Tracer(svcName)),
		round.WithTopology(topology),
	)
	a.counter, a.latency = round.MakeMetrics(svcName, subsystem)

	if cfg.MetricsAddr != "" {
		go a.serveMetrics(cfg.MetricsAddr)
	}

	return nil
}

func (a *app) serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	a.logger.Info("Metrics server listening", slog.String("address", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		a.logger.Error("Metrics server failed", slog.Any("error", err))
	}
}

// wrap decorates agg with the logging and metrics middlewares.
func wrap[S, R any](a *app, agg round.Aggregate[S, R]) round.Aggregate[S, R] {
	agg = round.Metrics(a.counter, a.latency, agg)

	return round.Logging(a.logger, agg)
}
