// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
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

package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/hostmetrics/pkg/collector"
	"github.com/NVIDIA/hostmetrics/pkg/config"
	"github.com/NVIDIA/hostmetrics/pkg/logging"
)

const (
	name           = "hostmetrics"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// app carries state resolved by the root Before hook into the subcommands.
type app struct {
	cfg *config.Config
	out io.Writer
}

// Execute runs the CLI with os.Args. Interrupts cancel the running command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(&app{out: os.Stdout}).Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cli.Command {
	return &cli.Command{
		Name:                  name,
		Version:               fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		Usage:                 "Read host CPU, memory, disk, network and identity metrics",
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "config file (default is $HOME/.hostmetrics.yaml)",
			},
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "dotenv file loaded before reading the environment (default is ./.env when present)",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log level (debug, info, warn, error)",
				Sources: cli.EnvVars(logging.EnvLogLevel),
			},
		},
		Before: a.before,
		Commands: []*cli.Command{
			a.snapshotCmd(),
			a.getCmd(),
			a.watchCmd(),
			a.renderCmd(),
		},
	}
}

// before resolves configuration and installs the default logger once flags
// are parsed.
func (a *app) before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	var opts []config.Option
	if path := cmd.String("config"); path != "" {
		opts = append(opts, config.WithFile(path))
	}
	if path := cmd.String("env-file"); path != "" {
		opts = append(opts, config.WithEnvFile(path))
	}
	if cmd.IsSet("log-level") {
		opts = append(opts, config.WithOverride(config.KeyLogLevel, cmd.String("log-level")))
	}

	cfg, err := config.Load(opts...)
	if err != nil {
		return ctx, fmt.Errorf("failed to load configuration: %w", err)
	}
	a.cfg = cfg
	if a.out == nil {
		a.out = os.Stdout
	}

	logging.SetDefaultStructuredLoggerWithLevel(name, version, cfg.LogLevel)
	slog.Debug("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
		"config", cfg.File,
		"logLevel", cfg.LogLevel)

	return ctx, nil
}

// physicalOnly prefers the command flag over the configured value.
func (a *app) physicalOnly(cmd *cli.Command) bool {
	if cmd.IsSet("physical-only") {
		return cmd.Bool("physical-only")
	}
	return a.cfg.PhysicalOnly
}

func (a *app) factory(cmd *cli.Command) *collector.DefaultFactory {
	return collector.NewDefaultFactory(
		collector.WithVersion(version),
		collector.WithFS(a.cfg.FS()),
		collector.WithPhysicalOnly(a.physicalOnly(cmd)),
	)
}
