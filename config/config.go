// Copyright 2025 The MCP Chain Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package config loads the pipeline configuration file.
//
// The file is YAML. Environment references of the form $VAR or ${VAR} are
// expanded before parsing, so deployments can inject server identity without
// templating.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the full server configuration.
type Config struct {
	Server Server `yaml:"server"`

	// Pipeline lists handler names in head-to-tail order. Dispatch visits
	// them in this order, so a handler may only depend on tools provided
	// later in the list.
	Pipeline []string `yaml:"pipeline"`

	// CheckDependencies verifies at startup that every handler's required
	// tools are declared by a handler after it.
	CheckDependencies bool `yaml:"check_dependencies"`

	// RateLimit, when set, meters tools/call requests at the head of the
	// pipeline.
	RateLimit *RateLimit `yaml:"rate_limit"`
}

// Server identifies the server during initialization.
type Server struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

// RateLimit configures the optional call limiter.
type RateLimit struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

// Default returns the configuration used when no file is given: the full
// composition pipeline with every bundled handler.
func Default() *Config {
	return &Config{
		Server: Server{Name: "mcpchain", Version: "dev"},
		// Both the geospatial leaf and the 2D middleware declare a tool
		// named "distance"; the first declaration in chain order wins. The
		// geospatial tools sit directly after the route analyzer so its
		// nested distance and bearing calls resolve to them.
		Pipeline: []string{
			"route_analyzer",
			"geo_distance",
			"geo_bearing",
			"geo_point_in_polygon",
			"distance_calculator",
			"pythagorean",
			"stddev",
			"variance",
			"statistics",
			"math",
		},
		CheckDependencies: true,
	}
}

// Load reads and validates the configuration at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a configuration document.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{CheckDependencies: true}
	dec := yaml.NewDecoder(strings.NewReader(expanded))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Name == "" {
		c.Server.Name = "mcpchain"
	}
	if c.Server.Version == "" {
		c.Server.Version = "dev"
	}
	if len(c.Pipeline) == 0 {
		return fmt.Errorf("config: pipeline must name at least one handler")
	}
	seen := make(map[string]bool, len(c.Pipeline))
	for _, name := range c.Pipeline {
		if name == "" {
			return fmt.Errorf("config: pipeline contains an empty handler name")
		}
		if seen[name] {
			return fmt.Errorf("config: handler %q appears twice in pipeline", name)
		}
		seen[name] = true
	}
	if rl := c.RateLimit; rl != nil {
		if rl.RPS <= 0 {
			return fmt.Errorf("config: rate_limit.rps must be positive")
		}
		if rl.Burst <= 0 {
			return fmt.Errorf("config: rate_limit.burst must be positive")
		}
	}
	return nil
}
