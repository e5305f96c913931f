// Copyright 2026 The Disentangle Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for Disentangle clients.
//
// Configuration is loaded from a single YAML file specified by:
//   - the DISENTANGLE_CONFIG environment variable, or
//   - an explicit path passed to LoadFile.
//
// There are no fallbacks or automatic discovery. The config file is the
// single source of truth: environment variables do not override values.
package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds client settings for connecting to a Disentangle node.
type Config struct {
	// NodeURL is the base URL of the node (e.g., "http://localhost:8000").
	NodeURL string `yaml:"node_url"`

	// RequestTimeout is the fixed per-request timeout for RPC calls.
	// It does not apply to the /watch event stream. Default: 30s.
	RequestTimeout time.Duration `yaml:"request_timeout"`

	// AgentType is the identity type used at registration
	// ("agi" or "human"). Default: "agi".
	AgentType string `yaml:"agent_type"`

	// RuntimeAttestation is an optional attestation string sent with
	// registration for AGI agents.
	RuntimeAttestation string `yaml:"runtime_attestation"`
}

// Default returns the default client configuration. The node URL has no
// default — the config file must supply it.
func Default() *Config {
	return &Config{
		RequestTimeout: 30 * time.Second,
		AgentType:      "agi",
	}
}

// Load loads configuration from the file named by the DISENTANGLE_CONFIG
// environment variable. Fails if the variable is not set.
func Load() (*Config, error) {
	path := os.Getenv("DISENTANGLE_CONFIG")
	if path == "" {
		return nil, fmt.Errorf("config: DISENTANGLE_CONFIG environment variable not set; " +
			"set it to the path of your disentangle.yaml config file")
	}
	return LoadFile(path)
}

// LoadFile loads configuration from a specific file path, applying
// defaults for unset fields and validating the result.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = Default().RequestTimeout
	}
	if cfg.AgentType == "" {
		cfg.AgentType = Default().AgentType
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.NodeURL == "" {
		return fmt.Errorf("node_url is required")
	}
	if _, err := url.Parse(c.NodeURL); err != nil {
		return fmt.Errorf("invalid node_url %q: %w", c.NodeURL, err)
	}
	return nil
}
