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
package instruction

import (
	"fmt"
	"strings"
)

// INSTRUCTION_WIDTH is the number of bytes occupied by every instruction: one
// for the opcode and one for the operand.
const INSTRUCTION_WIDTH = 2

// Instruction represents a decoded (opcode, operand) pair.
type Instruction struct {
	Opcode  Opcode
	Operand Operand
}

// Decode a raw pair of bytes into an instruction.  This fails if the opcode
// byte is not a valid opcode.  The operand is not checked, since its validity
// can depend upon its kind.
func Decode(opcode byte, operand byte) (Instruction, bool) {
	op, ok := DecodeOpcode(opcode)
	//
	return Instruction{op, Operand(operand)}, ok
}

// Validate that the operand of this instruction is well-formed with respect to
// its kind.  Combo operands must lie in 0..6, whilst literal and ignored
// operands are always permitted.
func (p Instruction) Validate() error {
	if p.Opcode.OperandKind() == COMBO && p.Operand >= RESERVED_COMBO {
		return fmt.Errorf("invalid combo operand %d for %s", p.Operand, p.Opcode)
	}
	//
	return nil
}

func (p Instruction) String() string {
	switch p.Opcode.OperandKind() {
	case LITERAL:
		return fmt.Sprintf("%s %d", p.Opcode, p.Operand)
	case IGNORED:
		return p.Opcode.String()
	default:
		return fmt.Sprintf("%s %s", p.Opcode, p.Operand.ComboString())
	}
}

// Disassemble a sequence of bytes into a human-readable listing, with one
// instruction per line prefixed by its byte offset.  Bytes which cannot be
// decoded are listed as raw data.
func Disassemble(rom []byte) string {
	var builder strings.Builder
	//
	for ip := 0; ip < len(rom); ip += INSTRUCTION_WIDTH {
		builder.WriteString(fmt.Sprintf("[%d]\t", ip))
		//
		if ip+1 >= len(rom) {
			builder.WriteString(fmt.Sprintf(".byte %d (missing operand)", rom[ip]))
		} else if insn, ok := Decode(rom[ip], rom[ip+1]); !ok {
			builder.WriteString(fmt.Sprintf(".byte %d, %d", rom[ip], rom[ip+1]))
		} else {
			builder.WriteString(insn.String())
		}
		//
		builder.WriteString("\n")
	}
	//
	return builder.String()
}
