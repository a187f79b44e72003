// Copyright (c) 2026 Arista Networks, Inc.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package selftest drives a Map through a configurable workload and a
// fixed set of scenarios, checking the observable contract after every
// step.
package selftest

import (
	"errors"
	"fmt"
	"io"

	yaml "gopkg.in/yaml.v3"
)

// Key strategies a workload can run with.
const (
	StrategyString = "string"
	StrategyInt    = "int"
	StrategyBytes  = "bytes"
	StrategyXXH3   = "xxh3"
	StrategyXXHash = "xxhash"
)

// Scenario names.
const (
	ScenarioStrings = "a"
	ScenarioGrowth  = "b"
	ScenarioReverse = "c"
)

const maxKeys = 1 << 24

// ErrInvalidConfig is wrapped by every error Validate returns.
var ErrInvalidConfig = errors.New("invalid config")

// Config describes a self-test run.
type Config struct {
	// Strategy selects the key type and hash of the workload map.
	Strategy string `yaml:"strategy"`
	// Ordered and Borrowed set WithInsertionOrder and WithBorrowedKeys
	// on the workload map.
	Ordered  bool `yaml:"ordered"`
	Borrowed bool `yaml:"borrowed"`
	// Keys is the number of keys the workload inserts.
	Keys int `yaml:"keys"`
	// DeleteEvery deletes every n-th key after insertion. 0 disables
	// deletion.
	DeleteEvery int `yaml:"deleteEvery"`
	// Scenarios lists the fixed scenarios to run before the workload.
	Scenarios []string `yaml:"scenarios"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Strategy:    StrategyString,
		Ordered:     true,
		Keys:        10000,
		DeleteEvery: 3,
		Scenarios:   []string{ScenarioStrings, ScenarioGrowth, ScenarioReverse},
	}
}

// Load reads a YAML config from r on top of Default and validates it.
// Unknown fields are rejected.
func Load(r io.Reader) (*Config, error) {
	c := Default()
	d := yaml.NewDecoder(r)
	d.KnownFields(true)
	if err := d.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate reports the first problem found in c.
func (c *Config) Validate() error {
	switch c.Strategy {
	case StrategyString, StrategyInt, StrategyBytes, StrategyXXH3, StrategyXXHash:
	default:
		return fmt.Errorf("%w: unknown strategy %q", ErrInvalidConfig, c.Strategy)
	}
	if c.Keys < 1 || c.Keys > maxKeys {
		return fmt.Errorf("%w: keys must be in [1, %d], got %d", ErrInvalidConfig, maxKeys, c.Keys)
	}
	if c.DeleteEvery < 0 {
		return fmt.Errorf("%w: negative deleteEvery %d", ErrInvalidConfig, c.DeleteEvery)
	}
	for _, s := range c.Scenarios {
		switch s {
		case ScenarioStrings, ScenarioGrowth, ScenarioReverse:
		default:
			return fmt.Errorf("%w: unknown scenario %q", ErrInvalidConfig, s)
		}
	}
	return nil
}
