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

// Opcode identifies one of the eight instructions understood by the machine.
// The set of opcodes is closed, and every raw byte must pass through
// DecodeOpcode before it can be dispatched.
type Opcode uint8

// ADV divides register A by 2^combo, writing the result into A.
const ADV Opcode = 0

// BXL computes the bitwise XOR of register B and a literal operand.
const BXL Opcode = 1

// BST writes the combo operand modulo 8 into register B.
const BST Opcode = 2

// JNZ jumps to a literal (absolute) byte offset when register A is non-zero.
const JNZ Opcode = 3

// BXC computes the bitwise XOR of registers B and C, writing into B.  Its
// operand is read but otherwise ignored.
const BXC Opcode = 4

// OUT appends the combo operand modulo 8 to the output stream.
const OUT Opcode = 5

// BDV divides register A by 2^combo, writing the result into B.
const BDV Opcode = 6

// CDV divides register A by 2^combo, writing the result into C.
const CDV Opcode = 7

// NUM_OPCODES determines the number of valid opcodes.
const NUM_OPCODES = 8

var mnemonics = [NUM_OPCODES]string{"adv", "bxl", "bst", "jnz", "bxc", "out", "bdv", "cdv"}

// DecodeOpcode maps a raw byte onto its opcode, or reports false if the byte
// does not denote a valid opcode.
func DecodeOpcode(b byte) (Opcode, bool) {
	switch b {
	case 0:
		return ADV, true
	case 1:
		return BXL, true
	case 2:
		return BST, true
	case 3:
		return JNZ, true
	case 4:
		return BXC, true
	case 5:
		return OUT, true
	case 6:
		return BDV, true
	case 7:
		return CDV, true
	default:
		return 0, false
	}
}

// OperandKind returns the (static) kind of operand this opcode expects.
func (op Opcode) OperandKind() OperandKind {
	switch op {
	case BXL, JNZ:
		return LITERAL
	case BXC:
		return IGNORED
	default:
		return COMBO
	}
}

// IsJump determines whether this opcode may overwrite the instruction pointer.
func (op Opcode) IsJump() bool {
	return op == JNZ
}

func (op Opcode) String() string {
	if uint(op) < NUM_OPCODES {
		return mnemonics[op]
	}
	//
	return fmt.Sprintf("?%d", uint8(op))
}
