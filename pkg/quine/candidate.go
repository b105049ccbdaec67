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
	"github.com/consensys/go-tribit/pkg/vm/instruction"
	"github.com/consensys/go-tribit/pkg/vm/machine"
	"github.com/consensys/go-tribit/pkg/vm/memory"
)

// Evaluate a single candidate by executing the program and comparing its
// output against an expected sequence.  Output is compared as it is written,
// so a candidate is abandoned as soon as it diverges.  Candidates which fail
// to halt within maxSteps are mismatches.  The only error reported is a fault
// arising from a malformed program.
func matches(rom memory.ReadOnlyMemory, registers instruction.RegisterFile, expected []uint8,
	maxSteps uint) (bool, error) {
	var m = machine.NewWithROM(registers, rom)
	//
	for steps := uint(0); maxSteps == 0 || steps < maxSteps; steps++ {
		var n = m.OutputLen()
		//
		halted, err := m.Step()
		//
		if err != nil {
			return false, err
		} else if halted {
			return m.OutputLen() == uint(len(expected)), nil
		} else if m.OutputLen() != n {
			// New value written, check it
			if n >= uint(len(expected)) {
				return false, nil
			} else if v, _ := m.LastOutput(); v != expected[n] {
				return false, nil
			}
		}
	}
	// A machine which halts exactly on the limit still counts.
	if m.Halted() {
		return m.OutputLen() == uint(len(expected)), nil
	}
	//
	return false, nil
}

// Construct the register file for a given candidate.
func withA(registers instruction.RegisterFile, a uint64) instruction.RegisterFile {
	registers[instruction.REG_A] = a
	//
	return registers
}
