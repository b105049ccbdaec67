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

import "testing"

func Test_Opcode_Decode_01(t *testing.T) {
	for b := 0; b < 256; b++ {
		op, ok := DecodeOpcode(byte(b))
		//
		if b < NUM_OPCODES && (!ok || uint(op) != uint(b)) {
			t.Errorf("byte %d decoded as %s (%t)", b, op, ok)
		} else if b >= NUM_OPCODES && ok {
			t.Errorf("byte %d should not decode (got %s)", b, op)
		}
	}
}

func Test_Opcode_OperandKind_01(t *testing.T) {
	expected := [NUM_OPCODES]OperandKind{COMBO, LITERAL, COMBO, LITERAL, IGNORED, COMBO, COMBO, COMBO}
	//
	for i, kind := range expected {
		if op := Opcode(i); op.OperandKind() != kind {
			t.Errorf("opcode %s has operand kind %d, expected %d", op, op.OperandKind(), kind)
		}
	}
}

func Test_Operand_Literal_01(t *testing.T) {
	for b := 0; b < 8; b++ {
		if v := Operand(b).Literal(); v != uint64(b) {
			t.Errorf("literal %d resolved to %d", b, v)
		}
	}
}

func Test_Operand_Combo_01(t *testing.T) {
	regs := RegisterFile{10, 20, 30}
	expected := []uint64{0, 1, 2, 3, 10, 20, 30}
	//
	for b, e := range expected {
		if v, ok := Operand(b).Combo(&regs); !ok || v != e {
			t.Errorf("combo %d resolved to %d (%t), expected %d", b, v, ok, e)
		}
	}
}

func Test_Operand_Combo_02(t *testing.T) {
	regs := RegisterFile{10, 20, 30}
	//
	for b := RESERVED_COMBO; b < 256; b++ {
		if _, ok := Operand(b).Combo(&regs); ok {
			t.Errorf("combo %d should not resolve", b)
		}
	}
}

func Test_Operand_Combo_03(t *testing.T) {
	// Resolution has no side effects on the register file.
	regs := RegisterFile{1, 2, 3}
	//
	for b := 0; b < 7; b++ {
		Operand(b).Combo(&regs)
	}
	//
	if regs != (RegisterFile{1, 2, 3}) {
		t.Errorf("register file modified: %v", regs)
	}
}

func Test_Instruction_String_01(t *testing.T) {
	checkString(t, 0, 3, "adv 3")
	checkString(t, 1, 5, "bxl 5")
	checkString(t, 2, 4, "bst A")
	checkString(t, 3, 0, "jnz 0")
	checkString(t, 4, 7, "bxc")
	checkString(t, 5, 5, "out B")
	checkString(t, 6, 6, "bdv C")
	checkString(t, 7, 7, "cdv ?7")
}

func Test_Instruction_Validate_01(t *testing.T) {
	if err := (Instruction{OUT, 7}).Validate(); err == nil {
		t.Errorf("expected reserved combo operand to be rejected")
	}
	//
	if err := (Instruction{BXL, 7}).Validate(); err != nil {
		t.Errorf("unexpected error: %s", err)
	}
}

func Test_Disassemble_01(t *testing.T) {
	expected := "[0]\tadv 1\n[2]\tout A\n[4]\tjnz 0\n"
	//
	if s := Disassemble([]byte{0, 1, 5, 4, 3, 0}); s != expected {
		t.Errorf("unexpected listing:\n%s", s)
	}
}

func Test_Disassemble_02(t *testing.T) {
	expected := "[0]\t.byte 9, 1\n[2]\t.byte 5 (missing operand)\n"
	//
	if s := Disassemble([]byte{9, 1, 5}); s != expected {
		t.Errorf("unexpected listing:\n%s", s)
	}
}

func checkString(t *testing.T, opcode byte, operand byte, expected string) {
	insn, ok := Decode(opcode, operand)
	//
	if !ok {
		t.Errorf("failed to decode %d, %d", opcode, operand)
	} else if insn.String() != expected {
		t.Errorf("expected \"%s\", got \"%s\"", expected, insn.String())
	}
}
