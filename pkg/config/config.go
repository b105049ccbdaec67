// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/consensys/go-tribit/pkg/quine"
	"github.com/consensys/go-tribit/pkg/vm/machine"
	log "github.com/sirupsen/logrus"
)

// Config represents a tribit.toml configuration file.  Any key which is not
// given retains its default value.
type Config struct {
	LogLevel string        `toml:"log-level"`
	Machine  MachineConfig `toml:"machine"`
	Search   SearchConfig  `toml:"search"`
}

// MachineConfig configures the execution of a single program.
type MachineConfig struct {
	// Maximum number of steps executed before giving up (0 = unbounded)
	MaxSteps uint `toml:"max-steps"`
	// Number of steps executed per chunk
	Chunk uint `toml:"chunk"`
}

// SearchConfig configures a quine search.
type SearchConfig struct {
	Strategy string   `toml:"strategy"`
	Bound    uint64   `toml:"bound"`
	Workers  uint     `toml:"workers"`
	Chunk    uint64   `toml:"chunk"`
	Timeout  Duration `toml:"timeout"`
}

// Duration wraps time.Duration so that it can be given as a string such as
// "30s" or "1m30s".
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	//
	d.Duration, err = time.ParseDuration(string(text))
	//
	return err
}

// MarshalText writes a duration string.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the default configuration.
func Default() *Config {
	var search = quine.DefaultConfig()
	//
	return &Config{
		LogLevel: "info",
		Machine: MachineConfig{
			MaxSteps: 10_000_000,
			Chunk:    machine.DEFAULT_CHUNK,
		},
		Search: SearchConfig{
			Strategy: search.Strategy.String(),
			Bound:    search.Bound,
			Workers:  search.Workers,
			Chunk:    search.Chunk,
			Timeout:  Duration{search.Timeout},
		},
	}
}

// Load a configuration file, filling in defaults for anything not given.  An
// empty filename gives the default configuration.  Unknown keys are rejected.
func Load(filename string) (*Config, error) {
	var config = Default()
	//
	if filename == "" {
		return config, nil
	}
	//
	meta, err := toml.DecodeFile(filename, config)
	if err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", filename, err)
	}
	//
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		var keys = make([]string, len(undecoded))
		//
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		//
		return nil, fmt.Errorf("unknown keys in %s: %s", filename, strings.Join(keys, ", "))
	}
	//
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration in %s: %w", filename, err)
	}
	//
	return config, nil
}

// Validate that this configuration is sensible.
func (p *Config) Validate() error {
	if _, err := log.ParseLevel(p.LogLevel); err != nil {
		return err
	} else if _, err := quine.ParseStrategy(p.Search.Strategy); err != nil {
		return err
	} else if p.Machine.Chunk == 0 {
		return errors.New("machine chunk must be positive")
	} else if p.Search.Chunk == 0 {
		return errors.New("search chunk must be positive")
	} else if p.Search.Timeout.Duration < 0 {
		return errors.New("search timeout cannot be negative")
	}
	//
	return nil
}

// Level returns the configured logging level.
func (p *Config) Level() log.Level {
	level, err := log.ParseLevel(p.LogLevel)
	//
	if err != nil {
		return log.InfoLevel
	}
	//
	return level
}

// SearchConfig converts this configuration into the configuration of a quine
// search.
func (p *Config) SearchConfig() (quine.Config, error) {
	strategy, err := quine.ParseStrategy(p.Search.Strategy)
	//
	if err != nil {
		return quine.Config{}, err
	}
	//
	return quine.Config{
		Strategy: strategy,
		Bound:    p.Search.Bound,
		Workers:  p.Search.Workers,
		Chunk:    p.Search.Chunk,
		MaxSteps: p.Machine.MaxSteps,
		Timeout:  p.Search.Timeout.Duration,
	}, nil
}
