// Copyright 2026 The OpenTrusty Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/vishwanth-dev/prephired-main-sub000/internal/config"
	"github.com/vishwanth-dev/prephired-main-sub000/internal/observability/logger"
	"github.com/vishwanth-dev/prephired-main-sub000/internal/observability/metrics"
	"github.com/vishwanth-dev/prephired-main-sub000/internal/observability/tracing"
)

// errInvalid makes the process exit non-zero when a check fails.
var errInvalid = errors.New("validation failed")

// rootOptions holds the global flags.
type rootOptions struct {
	configFile  string
	jsonOutput  bool
	showMetrics bool
}

// app is built once flags are parsed.
type app struct {
	opts   *rootOptions
	cfg    *config.Config
	tracer *tracing.Tracer
	meter  *metrics.Meter
	checks metric.Int64Counter
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}
	a := &app{opts: opts}

	cmd := &cobra.Command{
		Use:   "authcheck",
		Short: "Validate authentication input from the shell",
		Long: `authcheck runs the authentication validators against a single value:
emails, phone numbers, sign-in identifiers, tenant slugs, redirect URLs and
passwords. It exits non-zero when the value is rejected.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "config file path")
	cmd.PersistentFlags().BoolVar(&opts.jsonOutput, "json", false, "output results as JSON")
	cmd.PersistentFlags().BoolVar(&opts.showMetrics, "metrics", false, "print Prometheus metrics after the check")

	cmd.AddCommand(newEmailCmd(a))
	cmd.AddCommand(newPhoneCmd(a))
	cmd.AddCommand(newIdentifyCmd(a))
	cmd.AddCommand(newSlugCmd(a))
	cmd.AddCommand(newURLCmd(a))
	cmd.AddCommand(newPasswordCmd(a))

	return cmd
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(a.opts.configFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logCfg := cfg.Observability.Log
	logCfg.Output = cmd.ErrOrStderr()
	logger.InitLogger(logCfg)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	metricsCfg := cfg.Observability.Metrics
	metricsCfg.Enabled = metricsCfg.Enabled || a.opts.showMetrics
	if a.meter, err = metrics.New(ctx, metricsCfg, logCfg.ServiceName); err != nil {
		return err
	}
	if a.checks, err = a.meter.CreateCounter("authcheck_checks", "Checks run, by check and outcome"); err != nil {
		return err
	}
	if a.tracer, err = tracing.New(ctx, cfg.Observability.Tracing, cfg.TracingIdentity(version)); err != nil {
		return err
	}
	return nil
}

// run executes one check inside a span, prints the result and, when
// requested, the metrics.
func (a *app) run(cmd *cobra.Command, check string, fn func() checkResult) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	defer a.shutdown(ctx)

	ctx, span := a.tracer.Start(ctx, "authcheck."+check)
	res := fn()
	res.Check = check
	span.SetAttributes(attribute.Bool("valid", res.Valid), attribute.String("code", res.Code))
	span.End()

	a.checks.Add(ctx, 1, metric.WithAttributes(
		attribute.String("check", check),
		attribute.Bool("valid", res.Valid),
	))

	if err := writeResult(cmd.OutOrStdout(), res, a.opts.jsonOutput); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}
	if a.opts.showMetrics {
		if err := writeMetrics(cmd.OutOrStdout(), a.meter.Gatherer()); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}
	if !res.Valid {
		return errInvalid
	}
	return nil
}

func (a *app) shutdown(ctx context.Context) {
	_ = a.tracer.Shutdown(ctx)
	_ = a.meter.Shutdown(ctx)
}
