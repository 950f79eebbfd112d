// Package config provides configuration management for Conduit.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/mrz1836/conduit/internal/chain"
)

// Config represents the application configuration.
type Config struct {
	Version int           `yaml:"version"`
	Logging LoggingConfig `yaml:"logging"`
	Limits  LimitsConfig  `yaml:"limits"`
	Chains  []ChainConfig `yaml:"chains"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // "debug", "info", "error", "off"
}

// LimitsConfig defines client-side request limits for oracle and RPC
// calls.
type LimitsConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

// ChainConfig defines one chain entry. Entries extend or override the
// built-in chain set.
type ChainConfig struct {
	Slug               string `yaml:"slug"`
	Name               string `yaml:"name"`
	Family             string `yaml:"family"` // "evm" or "substrate"
	Symbol             string `yaml:"symbol"`
	Decimals           int    `yaml:"decimals"`
	ExistentialDeposit string `yaml:"existential_deposit,omitempty"`
	EvmChainID         uint64 `yaml:"evm_chain_id,omitempty"`
	BlockExplorer      string `yaml:"block_explorer,omitempty"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Version: 1,
		Logging: LoggingConfig{Level: "error"},
		Limits:  LimitsConfig{RequestsPerSecond: 10, Burst: 20},
	}
}

// Load reads a configuration file. A missing file returns the default
// configuration rather than an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is operator-provided
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to path, creating parent directories as
// needed.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Validate checks the configuration for inconsistencies.
func (c *Config) Validate() error {
	for _, cc := range c.Chains {
		if cc.Slug == "" {
			return fmt.Errorf("chain entry is missing a slug")
		}
		if !chain.Family(cc.Family).IsValid() {
			return fmt.Errorf("chain %q: unknown family %q", cc.Slug, cc.Family)
		}
	}
	return nil
}

// ChainRegistry builds the chain registry from the built-in defaults
// plus this configuration's chain entries.
func (c *Config) ChainRegistry() *chain.Registry {
	registry := chain.NewRegistry(chain.Defaults()...)
	for _, cc := range c.Chains {
		registry.Register(&chain.Info{
			Slug:               cc.Slug,
			Name:               cc.Name,
			Family:             chain.Family(cc.Family),
			Symbol:             cc.Symbol,
			Decimals:           cc.Decimals,
			ExistentialDeposit: cc.ExistentialDeposit,
			EvmChainID:         cc.EvmChainID,
			BlockExplorer:      cc.BlockExplorer,
		})
	}
	return registry
}
