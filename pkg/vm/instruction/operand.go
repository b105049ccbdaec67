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

import "fmt"

// OperandKind determines how the raw operand byte of an instruction is
// interpreted.  This is fixed for each opcode.
type OperandKind uint8

// LITERAL indicates the operand byte is used verbatim.
const LITERAL OperandKind = 0

// COMBO indicates the operand byte selects either a small constant (0..3) or
// one of the three registers (4..6).
const COMBO OperandKind = 1

// IGNORED indicates the operand byte is read, but has no effect.
const IGNORED OperandKind = 2

// Register identifies one of the machine's three registers.
type Register uint8

// REG_A is the first register, and the one controlling loops.
const REG_A Register = 0

// REG_B is the second register.
const REG_B Register = 1

// REG_C is the third register.
const REG_C Register = 2

// NUM_REGISTERS determines the number of registers in the register file.
const NUM_REGISTERS = 3

// RESERVED_COMBO is the combo operand value which never appears in a
// well-formed program.
const RESERVED_COMBO = 7

// RegisterFile holds the contents of all registers.  Values are unbounded
// (within 64 bits), and are not truncated to the width of an operand.
type RegisterFile [NUM_REGISTERS]uint64

func (r Register) String() string {
	switch r {
	case REG_A:
		return "A"
	case REG_B:
		return "B"
	case REG_C:
		return "C"
	}
	//
	return fmt.Sprintf("r%d", uint8(r))
}

// Operand is the raw byte following an opcode.  Its meaning depends on the
// OperandKind of that opcode.
type Operand uint8

// Literal returns the operand value taken verbatim.
func (p Operand) Literal() uint64 {
	return uint64(p)
}

// Combo resolves this operand against a given register file.  Values 0..3
// resolve to themselves, whilst 4, 5 and 6 resolve to the contents of
// registers A, B and C.  Anything else is not a valid combo operand, in which
// case false is returned.
func (p Operand) Combo(regs *RegisterFile) (uint64, bool) {
	switch {
	case p <= 3:
		return uint64(p), true
	case p < RESERVED_COMBO:
		return regs[p-4], true
	default:
		return 0, false
	}
}

// ComboString returns a human-readable form of this operand, when interpreted
// as a combo operand.
func (p Operand) ComboString() string {
	switch {
	case p <= 3:
		return fmt.Sprintf("%d", p)
	case p < RESERVED_COMBO:
		return Register(p - 4).String()
	default:
		return fmt.Sprintf("?%d", uint8(p))
	}
}
