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
package machine

import (
	"errors"
	"fmt"
)

// ErrMalformedProgram is wrapped by every fault arising from a program which
// cannot be executed, such as an opcode without an operand.  Such faults are
// fatal and are never recovered from.
var ErrMalformedProgram = errors.New("malformed program")

// ErrStepLimit indicates a machine did not halt within a given number of steps.
var ErrStepLimit = errors.New("step limit exceeded")

// FaultKind identifies the reason a machine could not continue.
type FaultKind uint8

// MISSING_OPERAND indicates an opcode was fetched at the last byte of the
// program, such that there is no operand to read.
const MISSING_OPERAND FaultKind = 0

// INVALID_OPCODE indicates the byte fetched as an opcode is not a valid opcode.
const INVALID_OPCODE FaultKind = 1

// INVALID_COMBO indicates a combo operand resolved to a reserved value.
const INVALID_COMBO FaultKind = 2

// Fault describes a malformed program, along with the point at which it was
// detected.  The state of the machine is unchanged by the faulting step.
type Fault struct {
	// Nature of the fault
	Kind FaultKind
	// Instruction pointer at the faulting instruction
	IP uint
	// Raw opcode byte
	Opcode byte
	// Raw operand byte (if one exists)
	Operand byte
}

func (p *Fault) Error() string {
	switch p.Kind {
	case MISSING_OPERAND:
		return fmt.Sprintf("%s: missing operand for opcode %d at offset %d", ErrMalformedProgram, p.Opcode, p.IP)
	case INVALID_OPCODE:
		return fmt.Sprintf("%s: invalid opcode %d at offset %d", ErrMalformedProgram, p.Opcode, p.IP)
	default:
		return fmt.Sprintf("%s: invalid combo operand %d at offset %d", ErrMalformedProgram, p.Operand, p.IP)
	}
}

// Unwrap allows faults to be matched against ErrMalformedProgram.
func (p *Fault) Unwrap() error {
	return ErrMalformedProgram
}
