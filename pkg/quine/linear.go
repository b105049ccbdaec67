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

	"github.com/consensys/go-tribit/pkg/vm/instruction"
	"github.com/consensys/go-tribit/pkg/vm/memory"
	log "github.com/sirupsen/logrus"
)

// How often (in candidates) the context is polled.
const pollInterval = 1024

// Evaluate candidates 0, 1, 2, ... in order until one matches, or the bound is
// reached.
func searchLinear(ctx context.Context, config Config, rom memory.ReadOnlyMemory,
	registers instruction.RegisterFile) (uint64, error) {
	var expected = rom.Contents()
	//
	for a := uint64(0); a < config.Bound; a++ {
		if a%pollInterval == 0 && ctx.Err() != nil {
			return 0, interrupted(ctx, LINEAR, a)
		}
		//
		ok, err := matches(rom, withA(registers, a), expected, config.MaxSteps)
		//
		if err != nil {
			return 0, fmt.Errorf("candidate %d: %w", a, err)
		} else if ok {
			log.Debugf("linear search matched after %d candidates", a+1)
			return a, nil
		}
	}
	//
	return 0, &Exhausted{LINEAR, config.Bound, fmt.Sprintf("no match below %d", config.Bound)}
}
