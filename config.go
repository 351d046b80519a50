package tokenact

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration to support human readable YAML values
// ("5s", "300ms").
type Duration struct {
	time.Duration
}

// UnmarshalYAML parses human readable duration strings.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	if value == nil {
		return nil
	}
	if value.Kind != yaml.ScalarNode {
		return errors.New("tokenact: config: duration must be a string")
	}
	if value.Value == "" {
		d.Duration = 0
		return nil
	}
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("tokenact: config: parse duration %q: %w", value.Value, err)
	}
	d.Duration = parsed
	return nil
}

// ChainConfig describes one chain endpoint and the deployed contracts the
// actions target. It is what cmd/tokenact loads from disk.
type ChainConfig struct {
	Name          string   `yaml:"name"`
	RPCEndpoint   string   `yaml:"rpc_endpoint"`
	ChainID       int64    `yaml:"chain_id"`
	Confirmations uint64   `yaml:"confirmations"`
	PollInterval  Duration `yaml:"poll_interval"`

	Contracts struct {
		Disperse         string `yaml:"disperse"`
		Migration        string `yaml:"migration"`
		LegacyCollection string `yaml:"legacy_collection"`
	} `yaml:"contracts"`
}

// LoadConfig reads and validates a ChainConfig from a YAML file.
func LoadConfig(path string) (*ChainConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("tokenact: read config: %w", err)
	}

	var cfg ChainConfig
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("tokenact: parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the config is usable.
func (c *ChainConfig) Validate() error {
	if c.RPCEndpoint == "" {
		return errors.New("tokenact: config: rpc_endpoint is required")
	}
	if c.ChainID <= 0 {
		return errors.New("tokenact: config: chain_id must be positive")
	}
	for name, addr := range map[string]string{
		"contracts.disperse":          c.Contracts.Disperse,
		"contracts.migration":         c.Contracts.Migration,
		"contracts.legacy_collection": c.Contracts.LegacyCollection,
	} {
		if addr == "" {
			continue
		}
		if !common.IsHexAddress(addr) {
			return fmt.Errorf("tokenact: config: %s: invalid address %q", name, addr)
		}
	}
	return nil
}

// DisperseAddress returns the configured disperse contract address, or an
// error when the config doesn't name one.
func (c *ChainConfig) DisperseAddress() (common.Address, error) {
	return c.contractAddress("contracts.disperse", c.Contracts.Disperse)
}

// MigrationAddress returns the configured migration contract address, or an
// error when the config doesn't name one.
func (c *ChainConfig) MigrationAddress() (common.Address, error) {
	return c.contractAddress("contracts.migration", c.Contracts.Migration)
}

// LegacyCollectionAddress returns the configured legacy collection address,
// or an error when the config doesn't name one.
func (c *ChainConfig) LegacyCollectionAddress() (common.Address, error) {
	return c.contractAddress("contracts.legacy_collection", c.Contracts.LegacyCollection)
}

func (c *ChainConfig) contractAddress(name, addr string) (common.Address, error) {
	if addr == "" {
		return common.Address{}, fmt.Errorf("tokenact: config: %s is not set", name)
	}
	if !common.IsHexAddress(addr) {
		return common.Address{}, fmt.Errorf("tokenact: config: %s: invalid address %q", name, addr)
	}
	return common.HexToAddress(addr), nil
}

// DispatcherOptions translates the config into dispatcher options.
func (c *ChainConfig) DispatcherOptions() []DispatcherOption {
	var opts []DispatcherOption
	if c.Confirmations > 0 {
		opts = append(opts, WithConfirmations(c.Confirmations))
	}
	if c.PollInterval.Duration > 0 {
		opts = append(opts, WithPollInterval(c.PollInterval.Duration))
	}
	return opts
}
