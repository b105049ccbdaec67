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
package quine

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/consensys/go-tribit/pkg/vm/instruction"
	"github.com/consensys/go-tribit/pkg/vm/memory"
	log "github.com/sirupsen/logrus"
)

// ErrSearchExhausted is wrapped by every search which ends without finding a
// solution.  This does not mean no solution exists, only that none was found
// within the configured bounds.
var ErrSearchExhausted = errors.New("search exhausted")

// Exhausted provides details of a search which ended without a solution.
type Exhausted struct {
	// Strategy which was exhausted
	Strategy Strategy
	// Number of candidates evaluated
	Candidates uint64
	// Why the search ended
	Reason string
}

func (p *Exhausted) Error() string {
	return fmt.Sprintf("%s (%s strategy, %d candidates): %s", ErrSearchExhausted, p.Strategy, p.Candidates, p.Reason)
}

// Unwrap allows this to be matched against ErrSearchExhausted.
func (p *Exhausted) Unwrap() error {
	return ErrSearchExhausted
}

// Strategy determines how candidates for register A are explored.
type Strategy uint8

// LINEAR evaluates candidates one at a time in increasing order.
const LINEAR Strategy = 0

// PARALLEL evaluates candidates across several workers, returning the same
// answer as LINEAR.
const PARALLEL Strategy = 1

// RECONSTRUCT builds the answer one base-8 digit at a time, starting from the
// most significant.  This only applies to programs which consume three bits of
// register A on each iteration of a single loop.
const RECONSTRUCT Strategy = 2

// AUTO attempts RECONSTRUCT, and falls back to PARALLEL (or LINEAR when only
// one worker is configured) when that does not apply.
const AUTO Strategy = 3

var strategyNames = []string{"linear", "parallel", "reconstruct", "auto"}

func (s Strategy) String() string {
	if int(s) < len(strategyNames) {
		return strategyNames[s]
	}
	//
	return fmt.Sprintf("strategy(%d)", uint8(s))
}

// ParseStrategy parses the name of a strategy (ignoring case).
func ParseStrategy(name string) (Strategy, error) {
	for i, n := range strategyNames {
		if strings.EqualFold(n, name) {
			return Strategy(i), nil
		}
	}
	//
	return 0, fmt.Errorf("unknown search strategy \"%s\"", name)
}

// Config determines the bounds and strategy of a search.
type Config struct {
	// Strategy to use
	Strategy Strategy
	// Exclusive upper bound on candidates
	Bound uint64
	// Number of workers (PARALLEL only), where 0 means one per CPU
	Workers uint
	// Number of candidates in each unit of work (PARALLEL only)
	Chunk uint64
	// Maximum number of steps for a single candidate, where 0 means no limit.
	// A candidate exceeding this is treated as a mismatch.
	MaxSteps uint
	// Wall-clock bound on the search, where 0 means no limit.
	Timeout time.Duration
}

// DefaultConfig returns the default search configuration.
func DefaultConfig() Config {
	return Config{
		Strategy: LINEAR,
		Bound:    1 << 32,
		Workers:  0,
		Chunk:    4096,
		MaxSteps: 10_000_000,
		Timeout:  0,
	}
}

func (p Config) workers() uint {
	if p.Workers == 0 {
		return uint(runtime.NumCPU())
	}
	//
	return p.Workers
}

// Search for the smallest value of register A for which the given program
// outputs itself.  Registers B and C are taken from the given register file,
// whilst register A is replaced by each candidate.  A malformed program aborts
// the search immediately.
func Search(ctx context.Context, config Config, registers instruction.RegisterFile, program []byte) (uint64, error) {
	var (
		rom    = memory.NewReadOnlyMemory(program)
		cancel context.CancelFunc
	)
	//
	if config.Chunk == 0 {
		return 0, errors.New("search chunk size must be positive")
	}
	//
	if config.Timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, config.Timeout)
		defer cancel()
	}
	//
	log.Debugf("searching with %s strategy (bound %d, timeout %s)", config.Strategy, config.Bound, config.Timeout)
	//
	switch config.Strategy {
	case LINEAR:
		return searchLinear(ctx, config, rom, registers)
	case PARALLEL:
		return searchParallel(ctx, config, rom, registers)
	case RECONSTRUCT:
		return searchReconstruct(ctx, config, rom, registers)
	case AUTO:
		return searchAuto(ctx, config, rom, registers)
	default:
		return 0, fmt.Errorf("unknown search strategy %s", config.Strategy)
	}
}

func searchAuto(ctx context.Context, config Config, rom memory.ReadOnlyMemory,
	registers instruction.RegisterFile) (uint64, error) {
	a, err := searchReconstruct(ctx, config, rom, registers)
	//
	if err == nil || !errors.Is(err, ErrSearchExhausted) || ctx.Err() != nil {
		return a, err
	}
	//
	log.Debugf("reconstruction failed (%s), falling back", err)
	//
	if config.workers() == 1 {
		return searchLinear(ctx, config, rom, registers)
	}
	//
	return searchParallel(ctx, config, rom, registers)
}

// Construct the result of a search interrupted by its context.  Deadlines count
// as exhaustion, whilst cancellation is reported as is.
func interrupted(ctx context.Context, strategy Strategy, candidates uint64) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &Exhausted{strategy, candidates, "deadline exceeded"}
	}
	//
	return ctx.Err()
}
