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

// Reconstruction applies to programs consisting of a single loop which shifts
// register A right by three bits and outputs one value per iteration.  For such
// programs, running from A outputs one value followed by whatever running from
// A>>3 outputs.  Thus, a solution can be built by choosing the most
// significant base-8 digit first, such that the output matches the last value
// of the program, then the next digit such that it matches the last two
// values, and so on.  Exploring digits in increasing order (with
// backtracking) finds the smallest solution.
func searchReconstruct(ctx context.Context, config Config, rom memory.ReadOnlyMemory,
	registers instruction.RegisterFile) (uint64, error) {
	var (
		program = rom.Contents()
		r       = reconstructor{ctx, config, rom, program, registers, 0}
	)
	//
	if reason := checkReconstructible(program); reason != "" {
		return 0, &Exhausted{RECONSTRUCT, 0, reason}
	}
	//
	a, found, err := r.extend(0, len(program)-1)
	//
	switch {
	case err != nil:
		return 0, err
	case ctx.Err() != nil:
		return 0, interrupted(ctx, RECONSTRUCT, r.evaluated)
	case !found:
		return 0, &Exhausted{RECONSTRUCT, r.evaluated, "no digit sequence reproduces the program"}
	case a >= config.Bound:
		return 0, &Exhausted{RECONSTRUCT, r.evaluated, fmt.Sprintf("solution %d exceeds bound %d", a, config.Bound)}
	}
	//
	log.Debugf("reconstruction matched after %d candidates", r.evaluated)
	//
	return a, nil
}

type reconstructor struct {
	ctx       context.Context
	config    Config
	rom       memory.ReadOnlyMemory
	program   []byte
	registers instruction.RegisterFile
	evaluated uint64
}

// Extend a given prefix (whose output matches program[index+1:]) by one more
// base-8 digit, such that the output matches program[index:].
func (p *reconstructor) extend(prefix uint64, index int) (uint64, bool, error) {
	if index < 0 {
		return prefix, true, nil
	} else if prefix > (NONE >> 3) || p.ctx.Err() != nil {
		// Overflow, or interrupted
		return 0, false, nil
	}
	//
	for digit := uint64(0); digit < 8; digit++ {
		var a = prefix<<3 | digit
		//
		ok, err := matches(p.rom, withA(p.registers, a), p.program[index:], p.config.MaxSteps)
		p.evaluated++
		//
		if err != nil {
			return 0, false, fmt.Errorf("candidate %d: %w", a, err)
		} else if !ok {
			continue
		}
		//
		if r, found, err := p.extend(a, index-1); found || err != nil {
			return r, found, err
		}
	}
	//
	return 0, false, nil
}

// Check whether a program has the shape required for reconstruction, returning
// the reason if not.
func checkReconstructible(program []byte) string {
	var (
		nadv, nout, njmp uint
		n                = len(program)
	)
	//
	if n == 0 || n%instruction.INSTRUCTION_WIDTH != 0 {
		return "program length is not a positive multiple of the instruction width"
	}
	//
	for ip := 0; ip < n; ip += instruction.INSTRUCTION_WIDTH {
		insn, ok := instruction.Decode(program[ip], program[ip+1])
		//
		if !ok {
			return fmt.Sprintf("invalid opcode %d at offset %d", program[ip], ip)
		}
		//
		switch insn.Opcode {
		case instruction.ADV:
			if insn.Operand != 3 {
				return fmt.Sprintf("register A shifted by %s at offset %d", insn.Operand.ComboString(), ip)
			}
			//
			nadv++
		case instruction.OUT:
			nout++
		case instruction.JNZ:
			if ip != n-instruction.INSTRUCTION_WIDTH || insn.Operand != 0 {
				return fmt.Sprintf("jump at offset %d is not a loop back to the start", ip)
			}
			//
			njmp++
		}
	}
	//
	if nadv != 1 || nout != 1 || njmp != 1 {
		return "program is not a single loop with one shift and one output"
	}
	//
	return ""
}
