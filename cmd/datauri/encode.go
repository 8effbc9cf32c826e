// Copyright 2025 KrakLabs
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.
//
// For commercial licensing, contact: licensing@kraklabs.com
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	flag "github.com/spf13/pflag"

	"github.com/kraklabs/datauri/internal/errors"
	"github.com/kraklabs/datauri/internal/output"
	"github.com/kraklabs/datauri/internal/ui"
	"github.com/kraklabs/datauri/pkg/datauri"
)

// encodeEnv carries the collaborators of runEncode that tests replace.
type encodeEnv struct {
	stdout, stderr io.Writer
	progress       ProgressConfig
	logger         *slog.Logger
	files          datauri.FileAccess
	workDir        string
}

// runEncode executes the 'encode' command.
//
// Flags:
//   - --force: Bypass the size limit
//   - --size-limit: Maximum payload in bytes
//   - --timeout: Per-request timeout for remote inputs
//   - --concurrency: Inputs encoded at once
//   - --rate-limit: Remote requests per second (0 = unlimited)
//   - --metrics-addr: Serve Prometheus metrics while encoding
//   - --json: Print the ordered batch result as JSON
//
// Examples:
//
//	datauri encode logo.png
//	datauri encode --force big.png https://example.com/a.svg
func runEncode(args []string, configPath string, globals *GlobalFlags, stdout, stderr io.Writer) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := encodeEnv{
		stdout: stdout,
		stderr: stderr,
		logger: slog.Default(),
	}
	return encodeCommand(ctx, args, configPath, globals, env)
}

func encodeCommand(ctx context.Context, args []string, configPath string, globals *GlobalFlags, env encodeEnv) error {
	if env.logger == nil {
		env.logger = slog.Default()
	}
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("encode", flag.ContinueOnError)
	fs.SetOutput(env.stderr)
	fs.BoolVar(&cfg.Force, "force", cfg.Force, "Bypass the size limit")
	fs.Int64Var(&cfg.SizeLimit, "size-limit", cfg.SizeLimit, "Maximum payload in bytes")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "Per-request timeout for remote inputs")
	fs.IntVar(&cfg.Concurrency, "concurrency", cfg.Concurrency, "Inputs encoded at once")
	fs.Float64Var(&cfg.RateLimit, "rate-limit", cfg.RateLimit, "Remote requests per second (0 = unlimited)")
	fs.StringVar(&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr, "Serve Prometheus metrics at this address (e.g. :9090)")
	fs.BoolVar(&globals.JSON, "json", globals.JSON, "Print results as JSON")
	fs.Usage = func() {
		fmt.Fprintf(env.stderr, `Usage: datauri encode [options] <path-or-url>...

Encodes each local file or http(s) URL as a data URI. One input prints the
URI; several print "<input><TAB><uri>" lines in input order. Failures are
reported on stderr and do not stop the other inputs.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return errors.NewInputError("Invalid arguments", err.Error(), "Run 'datauri encode --help'")
	}
	if globals.JSON {
		globals.Quiet = true
	}

	inputs := fs.Args()
	if len(inputs) == 0 {
		return errors.NewInputError("No inputs given", "encode needs at least one path or URL", "Run 'datauri encode <path-or-url>...'")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if cfg.Force && !globals.Quiet {
		ui.Warningf(env.stderr, "Size limit disabled by --force")
	}
	if cfg.MetricsAddr != "" {
		shutdown := serveMetrics(cfg.MetricsAddr, env.logger)
		defer shutdown()
		if !globals.Quiet {
			ui.Infof(env.stderr, "Serving metrics at %s/metrics", cfg.MetricsAddr)
		}
	}

	tracker := newSettleTracker(nil)
	if n := countDistinct(inputs); n > 1 {
		progress := env.progress
		if progress.Writer == nil {
			progress = NewProgressConfig(*globals)
		}
		tracker = newSettleTracker(NewProgressBar(progress, int64(n), "Encoding"))
	}

	var maxBody int64
	if !cfg.Force {
		maxBody = cfg.SizeLimit
	}
	conv := datauri.New(datauri.Config{
		Files: env.files,
		Transport: datauri.NewHTTPTransport(datauri.HTTPConfig{
			UserAgent:         cfg.UserAgent,
			RequestsPerSecond: cfg.RateLimit,
			MaxBodyBytes:      maxBody,
		}),
		Logger:    env.logger,
		WorkDir:   env.workDir,
		OnSettled: tracker.OnSettled,
	})

	start := time.Now()
	res, err := conv.EncodeAll(ctx, inputs, cfg.Options())
	tracker.Finish()
	if err != nil {
		return errors.NewInternalError(
			"Batch aborted",
			err.Error(),
			"This is a bug. Please report it at github.com/kraklabs/datauri/issues",
			err,
		)
	}

	if globals.JSON {
		if err := output.Batch(env.stdout, res, time.Since(start)); err != nil {
			return errors.NewInternalError("Cannot write JSON output", err.Error(), "", err)
		}
	} else {
		printResults(env.stdout, env.stderr, res)
		if res.Len() > 1 && !globals.Quiet {
			ui.Summary(env.stderr, res, time.Since(start))
		}
	}

	return exitError(res)
}

func countDistinct(inputs []string) int {
	seen := make(map[string]struct{}, len(inputs))
	for _, in := range inputs {
		seen[in] = struct{}{}
	}
	return len(seen)
}

// printResults writes successes to stdout and failures to stderr. A single
// input prints the bare URI; its failure is left to exitError.
func printResults(stdout, stderr io.Writer, res *datauri.BatchResult) {
	if res.Len() == 1 {
		r, _ := res.Get(res.Keys()[0])
		if r.OK() {
			_, _ = fmt.Fprintln(stdout, r.Data)
		}
		return
	}
	res.Each(func(input string, r datauri.Result) {
		if r.OK() {
			_, _ = fmt.Fprintf(stdout, "%s\t%s\n", input, r.Data)
			return
		}
		ui.FailureLine(stderr, input, r.Err)
	})
}

// exitError maps the outcome to the process result: nil when everything
// succeeded, the input's own error for a single input, and a partial failure
// for batches.
func exitError(res *datauri.BatchResult) error {
	if res.Failed() == 0 {
		return nil
	}
	if res.Len() == 1 {
		r, _ := res.Get(res.Keys()[0])
		return errors.FromEncodeError(r.Err)
	}
	return errors.NewPartialError(
		fmt.Sprintf("%d of %d inputs failed", res.Failed(), res.Len()),
		"See the errors reported for each input",
		"Fix or remove the failing inputs and run again",
	)
}

// serveMetrics exposes the default Prometheus registry on addr until the
// returned function is called.
func serveMetrics(addr string, logger *slog.Logger) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		logger.Info("metrics.http.start", "addr", addr, "path", "/metrics")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Warn("metrics.http.error", "err", err)
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}
