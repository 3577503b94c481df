// Copyright (C) 2026 The odata Authors. All Rights Reserved.

// Command odatawrite drives the writer engine against a small built-in
// Customer/Order model and writes the result as OData JSON: a response
// resource set by default, or (with -request / -delta) a request payload
// or a delta resource set.
package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/creachadair/odata/cmd/odatawrite/internal/demo"
)

var (
	metricsAddr string
	request     bool
	delta       bool
	async       bool
	verbose     bool
)

func init() {
	rootCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "address to serve Prometheus /metrics on, e.g. :9105 (disabled if empty)")
	rootCmd.Flags().BoolVar(&request, "request", false, "write a request payload instead of a response payload")
	rootCmd.Flags().BoolVar(&delta, "delta", false, "write a delta resource set with one changed and one deleted customer")
	rootCmd.Flags().BoolVar(&async, "async", false, "drive the writer through its asynchronous entry points instead of its synchronous ones")
	rootCmd.Flags().BoolVar(&verbose, "verbose", false, "enable debug-level structured logging of writer state transitions")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "odatawrite",
	Short: "write a sample OData JSON payload through the push-based writer engine",
	RunE:  run,
}

func run(cmd *cobra.Command, args []string) error {
	logger := zap.NewNop()
	if verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("build logger: %w", err)
		}
		logger = l
	}
	defer logger.Sync()

	reg := prometheus.NewRegistry()
	stopMetrics := serveMetrics(reg)
	defer stopMetrics()

	opts := demo.Options{
		Request: request,
		Delta:   delta,
		Async:   async,
		Logger:  logger,
		Metrics: reg,
	}
	return demo.Run(cmd.OutOrStdout(), opts)
}

// serveMetrics starts a /metrics HTTP server on metricsAddr if set, and
// returns a function that shuts it down; if metricsAddr is empty it is a
// no-op. A real service would run this server for the process lifetime
// rather than stopping it after one payload, but odatawrite exits after
// writing its one demonstration payload, so there is nothing to keep it
// alive for.
func serveMetrics(reg *prometheus.Registry) func() {
	if metricsAddr == "" {
		return func() {}
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: metricsAddr, Handler: mux}
	go srv.ListenAndServe()
	return func() { srv.Close() }
}
