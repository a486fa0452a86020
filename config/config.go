// Package config loads the cluster endpoints and the launch pool program id.
package config

import (
	"errors"
	"fmt"
	"os"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"gopkg.in/yaml.v3"

	"github.com/krazyTry/launchpool-go/launchpool"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	RPCEndpoint string             `yaml:"rpc_endpoint"`
	WSEndpoint  string             `yaml:"ws_endpoint"`
	Commitment  rpc.CommitmentType `yaml:"commitment"`
	ProgramID   string             `yaml:"program_id"`
	// CacheSize bounds the derived address cache; 0 disables it.
	CacheSize int `yaml:"cache_size"`
}

// Default targets devnet and the devnet deployment of the program.
func Default() *Config {
	return &Config{
		RPCEndpoint: rpc.DevNet_RPC,
		WSEndpoint:  rpc.DevNet_WS,
		Commitment:  rpc.CommitmentConfirmed,
		ProgramID:   launchpool.DevnetProgramID.String(),
		CacheSize:   1024,
	}
}

// Parse overlays YAML data on the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(data)
}

func (c *Config) Validate() error {
	if c.RPCEndpoint == "" {
		return fmt.Errorf("%w: rpc_endpoint is empty", ErrInvalidConfig)
	}
	switch c.Commitment {
	case rpc.CommitmentProcessed, rpc.CommitmentConfirmed, rpc.CommitmentFinalized:
	default:
		return fmt.Errorf("%w: commitment %q", ErrInvalidConfig, c.Commitment)
	}
	if _, err := solanago.PublicKeyFromBase58(c.ProgramID); err != nil {
		return fmt.Errorf("%w: program_id %q: %v", ErrInvalidConfig, c.ProgramID, err)
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("%w: cache_size %d", ErrInvalidConfig, c.CacheSize)
	}
	return nil
}

// ProgramKey is the parsed program id. Call Validate first.
func (c *Config) ProgramKey() solanago.PublicKey {
	return solanago.MustPublicKeyFromBase58(c.ProgramID)
}

// NewDeriver builds the deriver for the configured program and cache size.
func (c *Config) NewDeriver() (*launchpool.Deriver, error) {
	return launchpool.NewDeriver(c.ProgramKey(), launchpool.WithCache(c.CacheSize))
}
