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
	"github.com/consensys/go-tribit/pkg/vm/memory"
)

// Machine represents the complete state of an executing program: the register
// file, the instruction pointer, the program itself (held in a ROM) and the
// output stream.  A machine is owned exclusively by whoever executes it, and
// no state is shared between machines other than the (immutable) ROM.
type Machine struct {
	// Register file
	registers instruction.RegisterFile
	// Instruction Pointer (a byte offset into the ROM)
	ip uint
	// Number of instructions executed so far
	steps uint64
	// Program being executed
	rom memory.ReadOnlyMemory
	// Values written by OUT
	output *memory.WriteOnceMemory
}

// New constructs a machine for a given program with a given initial register
// file.  The instruction pointer starts at zero, and the output is empty.
func New(registers instruction.RegisterFile, program []byte) *Machine {
	return NewWithROM(registers, memory.NewReadOnlyMemory(program))
}

// NewWithROM constructs a machine for a program already held in a ROM.  Since
// ROMs are never modified, this allows many machines to share one program.
func NewWithROM(registers instruction.RegisterFile, rom memory.ReadOnlyMemory) *Machine {
	return &Machine{registers, 0, 0, rom, memory.NewWriteOnceMemory()}
}

// Restore a machine from a previously captured state.
func Restore(registers instruction.RegisterFile, ip uint, steps uint64, program []byte, output []uint8) *Machine {
	var m = New(registers, program)
	//
	m.ip = ip
	m.steps = steps
	//
	for _, v := range output {
		m.output.Append(v)
	}
	//
	return m
}

// Register returns the current contents of a given register.
func (p *Machine) Register(reg instruction.Register) uint64 {
	return p.registers[reg]
}

// Registers returns a copy of the register file.
func (p *Machine) Registers() instruction.RegisterFile {
	return p.registers
}

// IP returns the current instruction pointer.
func (p *Machine) IP() uint {
	return p.ip
}

// Steps returns the number of instructions executed so far.
func (p *Machine) Steps() uint64 {
	return p.steps
}

// ROM returns the program being executed.
func (p *Machine) ROM() memory.ReadOnlyMemory {
	return p.rom
}

// Output returns a copy of the values written by this machine so far.
func (p *Machine) Output() []uint8 {
	return p.output.Contents()
}

// OutputLen returns the number of values written by this machine so far.
func (p *Machine) OutputLen() uint {
	return p.output.Len()
}

// LastOutput returns the most recently written value, or false if no value has
// been written.
func (p *Machine) LastOutput() (uint8, bool) {
	return p.output.Last()
}

// Halted implementation for the Core interface.  A machine is halted when its
// instruction pointer no longer identifies an opcode.
func (p *Machine) Halted() bool {
	return p.ip >= p.rom.Len()
}

// Execute implementation for the Core interface.
func (p *Machine) Execute(steps uint) (uint, error) {
	var nsteps uint
	//
	for nsteps < steps {
		halted, err := p.Step()
		//
		if err != nil || halted {
			return nsteps, err
		}
		//
		nsteps++
	}
	//
	return nsteps, nil
}

// Run this machine until it halts (or faults).
func (p *Machine) Run() error {
	_, err := ExecuteAll(p, DEFAULT_CHUNK)
	//
	return err
}

// Peek returns the instruction at the current instruction pointer without
// executing it.  If the machine has halted, then true is returned.
func (p *Machine) Peek() (instruction.Instruction, bool, error) {
	var ip = p.ip
	//
	opcode, ok := p.rom.Read(ip)
	if !ok {
		return instruction.Instruction{}, true, nil
	}
	//
	operand, ok := p.rom.Read(ip + 1)
	if !ok {
		return instruction.Instruction{}, false, &Fault{MISSING_OPERAND, ip, opcode, 0}
	}
	//
	insn, ok := instruction.Decode(opcode, operand)
	if !ok {
		return insn, false, &Fault{INVALID_OPCODE, ip, opcode, operand}
	}
	//
	return insn, false, nil
}

// Step performs a single fetch-decode-execute cycle.  If there is no opcode at
// the instruction pointer, then the machine halts and true is returned.  If the
// program is malformed, then a *Fault is returned and the machine is left
// unchanged.
func (p *Machine) Step() (bool, error) {
	var ip = p.ip
	//
	insn, halted, err := p.Peek()
	if halted || err != nil {
		return halted, err
	}
	// Advance before executing, so that a taken jump overrides it.
	p.ip += instruction.INSTRUCTION_WIDTH
	//
	if err := p.execute(insn); err != nil {
		p.ip = ip
		return false, err
	}
	//
	p.steps++
	//
	return false, nil
}
