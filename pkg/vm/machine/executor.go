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
	"github.com/consensys/go-tribit/pkg/vm/instruction"
)

const (
	regA = instruction.REG_A
	regB = instruction.REG_B
	regC = instruction.REG_C
)

// Execute a single decoded instruction.  The instruction pointer has already
// been advanced past it.  Operands are always resolved before any register is
// written, so a faulting instruction has no effect.
func (p *Machine) execute(insn instruction.Instruction) error {
	switch insn.Opcode {
	case instruction.ADV:
		return p.execDivide(insn, regA)
	case instruction.BXL:
		p.registers[regB] ^= insn.Operand.Literal()
	case instruction.BST:
		return p.execBst(insn)
	case instruction.JNZ:
		p.execJnz(insn)
	case instruction.BXC:
		p.registers[regB] ^= p.registers[regC]
	case instruction.OUT:
		return p.execOut(insn)
	case instruction.BDV:
		return p.execDivide(insn, regB)
	case instruction.CDV:
		return p.execDivide(insn, regC)
	default:
		return &Fault{INVALID_OPCODE, p.ip - instruction.INSTRUCTION_WIDTH, byte(insn.Opcode), byte(insn.Operand)}
	}
	//
	return nil
}

func (p *Machine) execBst(insn instruction.Instruction) error {
	val, err := p.combo(insn)
	if err == nil {
		p.registers[regB] = val % 8
	}
	//
	return err
}

func (p *Machine) execJnz(insn instruction.Instruction) {
	if p.registers[regA] != 0 {
		p.ip = uint(insn.Operand.Literal())
	}
}

func (p *Machine) execOut(insn instruction.Instruction) error {
	val, err := p.combo(insn)
	if err == nil {
		p.output.Append(uint8(val % 8))
	}
	//
	return err
}

// Implements ADV, BDV and CDV which differ only in their target register.  The
// numerator is always register A.
func (p *Machine) execDivide(insn instruction.Instruction, target instruction.Register) error {
	exp, err := p.combo(insn)
	if err == nil {
		p.registers[target] = divPow2(p.registers[regA], exp)
	}
	//
	return err
}

func (p *Machine) combo(insn instruction.Instruction) (uint64, error) {
	if val, ok := insn.Operand.Combo(&p.registers); ok {
		return val, nil
	}
	//
	return 0, &Fault{INVALID_COMBO, p.ip - instruction.INSTRUCTION_WIDTH, byte(insn.Opcode), byte(insn.Operand)}
}

// divPow2 computes numerator / 2^exp, truncating toward zero.  For unsigned
// values truncation coincides with flooring, hence with a right shift.  Any
// exponent of 64 or more gives zero.
func divPow2(numerator uint64, exp uint64) uint64 {
	if exp >= 64 {
		return 0
	}
	//
	return numerator >> exp
}
