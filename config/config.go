// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package config loads the vault parameters from YAML.
package config

import (
	"bytes"
	"io"
	"math/big"
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/vechain/stakevault/reward"
	"github.com/vechain/stakevault/tier"
	"github.com/vechain/stakevault/vault"
	"github.com/vechain/stakevault/withdrawal"
)

// Config holds the tunable parameters of the vault.
type Config struct {
	BaseAPY        uint64        `yaml:"baseAPY"` // basis points
	BlocksPerYear  uint64        `yaml:"blocksPerYear"`
	CooldownBlocks uint64        `yaml:"cooldownBlocks"`
	BlockInterval  time.Duration `yaml:"blockInterval"`
	ReserveMode    string        `yaml:"reserveMode"` // "request" or "completion"
	PriceUSD       string        `yaml:"priceUSD"`    // default token price, optional
	CacheSize      int           `yaml:"cacheSize"`   // staker position cache entries
	Tiers          []tier.Tier   `yaml:"tiers"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		BaseAPY:        vault.DefaultBaseAPY,
		BlocksPerYear:  vault.BlocksPerYear,
		CooldownBlocks: vault.CooldownBlocks,
		BlockInterval:  vault.BlockInterval,
		ReserveMode:    withdrawal.ReserveOnRequest.String(),
		CacheSize:      1024,
		Tiers:          tier.DefaultTiers(),
	}
}

// Load reads the file at path on top of the defaults and validates the result.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open config")
	}
	defer f.Close()

	return Decode(f)
}

// Decode is Load for an arbitrary reader. Unknown keys are rejected.
func Decode(r io.Reader) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Wrap(err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every parameter by building the objects it configures.
func (c *Config) Validate() error {
	if _, err := c.TierTable(); err != nil {
		return err
	}
	if _, err := c.Engine(); err != nil {
		return err
	}
	if _, err := c.Mode(); err != nil {
		return err
	}
	if _, err := c.Price(); err != nil {
		return err
	}
	if c.CooldownBlocks == 0 {
		return errors.New("cooldownBlocks must be positive")
	}
	if c.BlockInterval <= 0 {
		return errors.New("blockInterval must be positive")
	}
	if c.CacheSize < 0 {
		return errors.Errorf("negative cacheSize: %d", c.CacheSize)
	}
	return nil
}

// TierTable builds the tier table.
func (c *Config) TierTable() (*tier.Table, error) {
	t, err := tier.NewTable(c.Tiers)
	if err != nil {
		return nil, errors.Wrap(err, "tiers")
	}
	return t, nil
}

// Engine builds the reward engine.
func (c *Config) Engine() (*reward.Engine, error) {
	e, err := reward.New(c.BaseAPY, c.BlocksPerYear)
	if err != nil {
		return nil, errors.Wrap(err, "reward")
	}
	return e, nil
}

// Mode parses the reserve mode.
func (c *Config) Mode() (withdrawal.ReserveMode, error) {
	m, err := withdrawal.ParseReserveMode(c.ReserveMode)
	if err != nil {
		return 0, errors.Wrap(err, "reserveMode")
	}
	return m, nil
}

// Price parses the default token price. It returns nil when unset.
func (c *Config) Price() (*big.Rat, error) {
	return ParsePrice(c.PriceUSD)
}

// ParsePrice parses a non-negative decimal USD price. An empty string yields nil.
func ParsePrice(s string) (*big.Rat, error) {
	if s == "" {
		return nil, nil
	}
	price, ok := new(big.Rat).SetString(s)
	if !ok || price.Sign() < 0 {
		return nil, errors.Errorf("invalid price: %q", s)
	}
	return price, nil
}

// Encode writes the configuration as YAML.
func (c *Config) Encode(w io.Writer) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return errors.Wrap(err, "encode config")
	}
	if err := enc.Close(); err != nil {
		return errors.Wrap(err, "encode config")
	}
	_, err := w.Write(buf.Bytes())
	return err
}
