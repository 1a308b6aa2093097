// Copyright 2025 The MCP Chain Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Mcpchain serves a composable tool pipeline over stdio.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/mcpchain/mcpchain/chain"
	"github.com/mcpchain/mcpchain/config"
	"github.com/mcpchain/mcpchain/geotools"
	"github.com/mcpchain/mcpchain/host"
	"github.com/mcpchain/mcpchain/jsonrpc"
	"github.com/mcpchain/mcpchain/mathtools"
	"github.com/mcpchain/mcpchain/mcp"
	"github.com/mcpchain/mcpchain/middleware"
	"github.com/mcpchain/mcpchain/stattools"
)

// version is set by the release build.
var version = "dev"

// handlerRegistry maps pipeline names from the config file to constructors.
var handlerRegistry = map[string]func() chain.Handler{
	"route_analyzer":       func() chain.Handler { return middleware.NewRouteAnalyzer() },
	"distance_calculator":  func() chain.Handler { return middleware.NewDistanceCalculator() },
	"pythagorean":          func() chain.Handler { return middleware.NewPythagorean() },
	"stddev":               func() chain.Handler { return middleware.NewStdDev() },
	"variance":             func() chain.Handler { return middleware.NewVariance() },
	"math":                 func() chain.Handler { return chain.NewProviderHandler(mathtools.New()) },
	"statistics":           func() chain.Handler { return chain.NewProviderHandler(stattools.New()) },
	"geo_distance":         func() chain.Handler { return chain.NewProviderHandler(geotools.NewDistance()) },
	"geo_bearing":          func() chain.Handler { return chain.NewProviderHandler(geotools.NewBearing()) },
	"geo_point_in_polygon": func() chain.Handler { return chain.NewProviderHandler(geotools.NewPointInPolygon()) },
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string
	var logLevel string

	root := &cobra.Command{
		Use:           "mcpchain",
		Short:         "Composable tool pipeline server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config file (YAML)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")

	root.AddCommand(newServeCmd(&configPath, &logLevel))
	root.AddCommand(newToolsCmd(&configPath))
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	})
	return root
}

func newServeCmd(configPath, logLevel *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the pipeline over stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			logger := newLogger(*logLevel)
			pipeline, err := buildPipeline(cfg, logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := host.NewServer(pipeline.Head(), host.Options{
				Name:    cfg.Server.Name,
				Version: cfg.Server.Version,
				Logger:  logger,
			})
			return srv.Run(ctx, os.Stdin, os.Stdout)
		},
	}
}

func newToolsCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "List the tools the configured pipeline exposes",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			pipeline, err := buildPipeline(cfg, slog.New(slog.DiscardHandler))
			if err != nil {
				return err
			}
			res, err := pipeline.Head().HandleRequest(cmd.Context(), jsonrpc.Int64ID(1),
				&mcp.ListToolsRequest{Params: &mcp.ListToolsParams{}})
			if err != nil {
				return err
			}
			lt, ok := res.(*mcp.ListToolsResult)
			if !ok {
				return fmt.Errorf("unexpected tools/list result %T", res)
			}
			for _, t := range lt.Tools {
				fmt.Fprintf(cmd.OutOrStdout(), "%-24s %s\n", t.Name, t.Description)
			}
			return nil
		},
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func buildPipeline(cfg *config.Config, logger *slog.Logger) (*chain.Chain, error) {
	handlers := []chain.Handler{chain.NewLoggingHandler(logger)}
	if rl := cfg.RateLimit; rl != nil {
		handlers = append(handlers, chain.NewRateLimitingHandler(rate.NewLimiter(rate.Limit(rl.RPS), rl.Burst)))
	}
	for _, name := range cfg.Pipeline {
		ctor, ok := handlerRegistry[name]
		if !ok {
			return nil, fmt.Errorf("unknown pipeline handler %q", name)
		}
		handlers = append(handlers, ctor())
	}
	if cfg.CheckDependencies {
		if err := chain.Verify(handlers); err != nil {
			return nil, err
		}
	}
	return chain.New(handlers...), nil
}

func newLogger(level string) *slog.Logger {
	var l slog.Level
	switch level {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	// Stdout carries the protocol; logs go to stderr.
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: l}))
}
