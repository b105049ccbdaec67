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
	"fmt"
	"math"
	"sync"
	"sync/atomic"

	"github.com/consensys/go-tribit/pkg/vm/instruction"
	"github.com/consensys/go-tribit/pkg/vm/memory"
	log "github.com/sirupsen/logrus"
)

// NONE marks the absence of a candidate in a minimum.
const NONE = math.MaxUint64

// minimum is a value which only ever decreases.  It is safe for concurrent use.
type minimum struct {
	value atomic.Uint64
}

func newMinimum() *minimum {
	var m minimum
	//
	m.value.Store(NONE)
	//
	return &m
}

// Offer a value, which is written only if strictly smaller than the current
// value.
func (p *minimum) Offer(v uint64) {
	for {
		var current = p.value.Load()
		//
		if v >= current || p.value.CompareAndSwap(current, v) {
			return
		}
	}
}

func (p *minimum) Load() uint64 {
	return p.value.Load()
}

// parSearch holds the state shared between the workers of a parallel search.
// Candidates are divided into chunks which are handed out in increasing order.
// A worker stops once the next chunk lies entirely above the best match (or
// fault) found so far.  Since every chunk below that point has been handed
// out, the minimum match is independent of the order in which workers finish.
type parSearch struct {
	config   Config
	rom      memory.ReadOnlyMemory
	expected []uint8
	regs     instruction.RegisterFile
	nchunks  uint64
	// Next chunk to hand out
	next atomic.Uint64
	// Smallest matching candidate
	best *minimum
	// Smallest faulting candidate
	faultAt *minimum
	// Total number of candidates evaluated
	evaluated atomic.Uint64
	// Faults indexed by candidate
	mux    sync.Mutex
	faults map[uint64]error
}

func searchParallel(ctx context.Context, config Config, rom memory.ReadOnlyMemory,
	registers instruction.RegisterFile) (uint64, error) {
	var (
		wg      sync.WaitGroup
		workers = config.workers()
		search  = &parSearch{
			config:   config,
			rom:      rom,
			expected: rom.Contents(),
			regs:     registers,
			nchunks:  config.Bound / config.Chunk,
			best:     newMinimum(),
			faultAt:  newMinimum(),
			faults:   make(map[uint64]error),
		}
	)
	//
	if config.Bound%config.Chunk != 0 {
		search.nchunks++
	}
	//
	log.Debugf("parallel search using %d workers over %d chunks", workers, search.nchunks)
	//
	for i := uint(0); i < workers; i++ {
		wg.Add(1)
		//
		go func() {
			defer wg.Done()
			search.work(ctx)
		}()
	}
	//
	wg.Wait()
	//
	return search.result(ctx)
}

func (p *parSearch) work(ctx context.Context) {
	for ctx.Err() == nil {
		var chunk = p.next.Add(1) - 1
		//
		if chunk >= p.nchunks {
			return
		}
		//
		var (
			start = chunk * p.config.Chunk
			end   = p.config.Bound
		)
		// Avoid overflow when the bound is close to the maximum.
		if end-start > p.config.Chunk {
			end = start + p.config.Chunk
		}
		// Prune chunks above the current best.
		if start >= p.best.Load() || start >= p.faultAt.Load() {
			return
		}
		//
		if !p.scan(ctx, start, end) {
			return
		}
	}
}

// Scan candidates in [start,end), returning false if this worker should stop.
func (p *parSearch) scan(ctx context.Context, start, end uint64) bool {
	for a := start; a < end; a++ {
		if a%pollInterval == 0 && ctx.Err() != nil {
			return false
		} else if a >= p.best.Load() || a >= p.faultAt.Load() {
			return false
		}
		//
		ok, err := matches(p.rom, withA(p.regs, a), p.expected, p.config.MaxSteps)
		p.evaluated.Add(1)
		//
		if err != nil {
			p.recordFault(a, err)
			return false
		} else if ok {
			p.best.Offer(a)
			return false
		}
	}
	//
	return true
}

func (p *parSearch) recordFault(a uint64, err error) {
	p.mux.Lock()
	p.faults[a] = err
	p.mux.Unlock()
	//
	p.faultAt.Offer(a)
}

// Determine the outcome once all workers have finished.  Whichever of the best
// match and the first fault comes first is what a linear search would have
// reported.
func (p *parSearch) result(ctx context.Context) (uint64, error) {
	var (
		best    = p.best.Load()
		faultAt = p.faultAt.Load()
	)
	//
	switch {
	case faultAt < best:
		return 0, fmt.Errorf("candidate %d: %w", faultAt, p.faults[faultAt])
	case ctx.Err() != nil:
		// Interrupted, hence cannot be sure all smaller candidates were checked.
		return 0, interrupted(ctx, PARALLEL, p.evaluated.Load())
	case best != NONE:
		log.Debugf("parallel search matched after %d candidates", p.evaluated.Load())
		return best, nil
	default:
		return 0, &Exhausted{PARALLEL, p.evaluated.Load(), fmt.Sprintf("no match below %d", p.config.Bound)}
	}
}
