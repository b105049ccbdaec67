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
	"slices"
	"testing"

	"github.com/consensys/go-tribit/pkg/vm/instruction"
)

// ===================================================================
// Opcodes
// ===================================================================

func Test_Machine_Adv_01(t *testing.T) {
	m := checkRun(t, [3]uint64{16, 3, 0}, 0, 5)
	checkRegisters(t, m, 2, 3, 0)
	checkIP(t, m, 2)
}

func Test_Machine_Adv_02(t *testing.T) {
	// Exponent given as a constant
	m := checkRun(t, [3]uint64{16, 0, 0}, 0, 3)
	checkRegisters(t, m, 2, 0, 0)
}

func Test_Machine_Adv_03(t *testing.T) {
	// Exponent far beyond the register width
	m := checkRun(t, [3]uint64{1 << 63, 0, 200}, 0, 6)
	checkRegisters(t, m, 0, 0, 200)
}

func Test_Machine_Bxl_01(t *testing.T) {
	m := checkRun(t, [3]uint64{0, 0b1100, 0}, 1, 0b0101)
	checkRegisters(t, m, 0, 0b1001, 0)
	checkIP(t, m, 2)
}

func Test_Machine_Bxl_02(t *testing.T) {
	// Operand 7 is a valid literal
	m := checkRun(t, [3]uint64{0, 1, 0}, 1, 7)
	checkRegisters(t, m, 0, 6, 0)
}

func Test_Machine_Bst_01(t *testing.T) {
	m := checkRun(t, [3]uint64{10, 0, 0}, 2, 4)
	checkRegisters(t, m, 10, 2, 0)
	checkIP(t, m, 2)
}

func Test_Machine_Jnz_01(t *testing.T) {
	m := checkRun(t, [3]uint64{0, 0, 0}, 3, 8)
	checkIP(t, m, 2)
}

func Test_Machine_Jnz_02(t *testing.T) {
	m := checkRun(t, [3]uint64{1, 0, 0}, 3, 8)
	checkIP(t, m, 8)
}

func Test_Machine_Bxc_01(t *testing.T) {
	m := checkRun(t, [3]uint64{0, 0b1100, 0b0101}, 4, 0)
	checkRegisters(t, m, 0, 0b1001, 0b0101)
	checkIP(t, m, 2)
}

func Test_Machine_Bxc_02(t *testing.T) {
	// Operand is ignored, even when it would be an invalid combo.
	m := checkRun(t, [3]uint64{0, 3, 3}, 4, 7)
	checkRegisters(t, m, 0, 0, 3)
}

func Test_Machine_Out_01(t *testing.T) {
	m := checkRun(t, [3]uint64{0, 0, 10}, 5, 6)
	checkOutput(t, m, 2)
	checkIP(t, m, 2)
}

func Test_Machine_Out_02(t *testing.T) {
	m := checkRun(t, [3]uint64{10, 0, 0}, 5, 4)
	checkOutput(t, m, 2)
}

func Test_Machine_Bdv_01(t *testing.T) {
	m := checkRun(t, [3]uint64{16, 3, 0}, 6, 5)
	checkRegisters(t, m, 16, 2, 0)
	checkIP(t, m, 2)
}

func Test_Machine_Cdv_01(t *testing.T) {
	m := checkRun(t, [3]uint64{16, 3, 0}, 7, 5)
	checkRegisters(t, m, 16, 3, 2)
	checkIP(t, m, 2)
}

func Test_Machine_Division_01(t *testing.T) {
	// A=16 and exponent 3 gives 2 for each target register.
	for i, op := range []byte{0, 6, 7} {
		m := checkRun(t, [3]uint64{16, 0, 0}, op, 3)
		//
		if v := m.Register(instruction.Register(i)); v != 2 {
			t.Errorf("opcode %d wrote %d, expected 2", op, v)
		}
	}
}

// ===================================================================
// Programs
// ===================================================================

func Test_Machine_Program_01(t *testing.T) {
	m := New([3]uint64{729, 0, 0}, []byte{0, 1, 5, 4, 3, 0})
	//
	if err := m.Run(); err != nil {
		t.Fatal(err)
	}
	//
	checkOutput(t, m, 4, 6, 3, 5, 6, 3, 5, 2, 1, 0)
	checkRegisters(t, m, 0, 0, 0)
}

func Test_Machine_Program_02(t *testing.T) {
	m := New([3]uint64{117440, 0, 0}, []byte{0, 3, 5, 4, 3, 0})
	//
	if err := m.Run(); err != nil {
		t.Fatal(err)
	}
	//
	checkOutput(t, m, 0, 3, 5, 4, 3, 0)
}

func Test_Machine_Program_03(t *testing.T) {
	// If register C contains 9, the program 2,6 would set register B to 1.
	m := checkRun(t, [3]uint64{0, 0, 9}, 2, 6)
	checkRegisters(t, m, 0, 1, 9)
}

func Test_Machine_Program_04(t *testing.T) {
	// If register A contains 10, the program 5,0,5,1,5,4 outputs 0,1,2.
	m := New([3]uint64{10, 0, 0}, []byte{5, 0, 5, 1, 5, 4})
	//
	if err := m.Run(); err != nil {
		t.Fatal(err)
	}
	//
	checkOutput(t, m, 0, 1, 2)
}

func Test_Machine_Program_05(t *testing.T) {
	// If register A contains 2024, the program 0,1,5,4,3,0 outputs
	// 4,2,5,6,7,7,7,7,3,1,0 and leaves 0 in register A.
	m := New([3]uint64{2024, 0, 0}, []byte{0, 1, 5, 4, 3, 0})
	//
	if err := m.Run(); err != nil {
		t.Fatal(err)
	}
	//
	checkOutput(t, m, 4, 2, 5, 6, 7, 7, 7, 7, 3, 1, 0)
	checkRegisters(t, m, 0, 0, 0)
}

func Test_Machine_Program_06(t *testing.T) {
	// B=29, program 1,7 sets register B to 26.
	m := checkRun(t, [3]uint64{0, 29, 0}, 1, 7)
	checkRegisters(t, m, 0, 26, 0)
}

func Test_Machine_Program_07(t *testing.T) {
	// B=2024, C=43690, program 4,0 sets register B to 44354.
	m := checkRun(t, [3]uint64{0, 2024, 43690}, 4, 0)
	checkRegisters(t, m, 0, 44354, 43690)
}

func Test_Machine_Idempotent_01(t *testing.T) {
	var (
		regs    = [3]uint64{729, 0, 0}
		program = []byte{0, 1, 5, 4, 3, 0}
		m1      = New(regs, program)
		m2      = New(regs, program)
	)
	//
	if err := m1.Run(); err != nil {
		t.Fatal(err)
	}
	//
	if err := m2.Run(); err != nil {
		t.Fatal(err)
	}
	//
	if !slices.Equal(m1.Output(), m2.Output()) {
		t.Errorf("outputs differ: %v vs %v", m1.Output(), m2.Output())
	}
}

// ===================================================================
// Halting & Faults
// ===================================================================

func Test_Machine_Halt_01(t *testing.T) {
	// Fetching past the end halts, regardless of register contents.
	for _, regs := range [][3]uint64{{0, 0, 0}, {1, 2, 3}, {1 << 40, 7, 7}} {
		m := New(regs, []byte{3, 0, 1, 1})
		m.ip = 4
		//
		if halted, err := m.Step(); !halted || err != nil {
			t.Errorf("expected halt, got %t (%v)", halted, err)
		}
		//
		if m.Registers() != regs {
			t.Errorf("registers modified on halt")
		}
	}
}

func Test_Machine_Halt_02(t *testing.T) {
	// Empty program halts immediately.
	m := New([3]uint64{}, nil)
	//
	if n, err := m.Execute(10); n != 0 || err != nil || !m.Halted() {
		t.Errorf("expected immediate halt, got %d steps (%v)", n, err)
	}
}

func Test_Machine_Halt_03(t *testing.T) {
	// Jump far beyond the end of the program halts.
	m := checkRun(t, [3]uint64{1, 0, 0}, 3, 200)
	//
	if !m.Halted() {
		t.Errorf("expected machine to be halted")
	}
}

func Test_Machine_Fault_01(t *testing.T) {
	checkFault(t, []byte{0, 1, 5}, MISSING_OPERAND, 2)
}

func Test_Machine_Fault_02(t *testing.T) {
	checkFault(t, []byte{5, 7}, INVALID_COMBO, 0)
}

func Test_Machine_Fault_03(t *testing.T) {
	checkFault(t, []byte{8, 0}, INVALID_OPCODE, 0)
}

func Test_Machine_Fault_04(t *testing.T) {
	checkFault(t, []byte{1, 2, 0, 7}, INVALID_COMBO, 2)
}

func Test_Machine_Fault_05(t *testing.T) {
	// Faulting instruction has no effect.
	m := New([3]uint64{16, 5, 6}, []byte{2, 4, 6, 7})
	_, err := m.Execute(10)
	//
	if !errors.Is(err, ErrMalformedProgram) {
		t.Fatalf("expected malformed program, got %v", err)
	}
	//
	checkRegisters(t, m, 16, 0, 6)
	checkIP(t, m, 2)
	//
	if m.Steps() != 1 {
		t.Errorf("expected 1 step, got %d", m.Steps())
	}
}

// ===================================================================
// Execution
// ===================================================================

func Test_Machine_Bounded_01(t *testing.T) {
	// Infinite loop
	m := New([3]uint64{1, 0, 0}, []byte{3, 0})
	n, err := ExecuteBounded(m, 16, 100)
	//
	if !errors.Is(err, ErrStepLimit) || n != 100 {
		t.Errorf("expected step limit after 100 steps, got %d (%v)", n, err)
	}
}

func Test_Machine_Bounded_02(t *testing.T) {
	// Halts exactly on the limit.
	m := New([3]uint64{729, 0, 0}, []byte{0, 1, 5, 4, 3, 0})
	n, err := ExecuteBounded(m, 7, 30)
	//
	if err != nil || n != 30 {
		t.Errorf("expected halt after 30 steps, got %d (%v)", n, err)
	}
}

func Test_Machine_Bounded_03(t *testing.T) {
	// Zero limit means unbounded.
	m := New([3]uint64{729, 0, 0}, []byte{0, 1, 5, 4, 3, 0})
	n, err := ExecuteBounded(m, 4, 0)
	//
	if err != nil || n != 30 || m.Steps() != 30 {
		t.Errorf("expected halt after 30 steps, got %d (%v)", n, err)
	}
}

func Test_Machine_Restore_01(t *testing.T) {
	var program = []byte{0, 1, 5, 4, 3, 0}
	// Execute part way
	m1 := New([3]uint64{729, 0, 0}, program)
	if _, err := m1.Execute(9); err != nil {
		t.Fatal(err)
	}
	// Restore and continue
	m2 := Restore(m1.Registers(), m1.IP(), m1.Steps(), m1.ROM().Contents(), m1.Output())
	if err := m2.Run(); err != nil {
		t.Fatal(err)
	}
	//
	checkOutput(t, m2, 4, 6, 3, 5, 6, 3, 5, 2, 1, 0)
	//
	if m2.Steps() != 30 {
		t.Errorf("expected 30 steps, got %d", m2.Steps())
	}
}

// ===================================================================
// Test Helpers
// ===================================================================

func checkRun(t *testing.T, regs [3]uint64, opcode byte, operand byte) *Machine {
	t.Helper()
	//
	m := New(regs, []byte{opcode, operand})
	//
	if halted, err := m.Step(); err != nil || halted {
		t.Fatalf("step failed: %t (%v)", halted, err)
	}
	//
	return m
}

func checkRegisters(t *testing.T, m *Machine, a, b, c uint64) {
	t.Helper()
	//
	if regs := m.Registers(); regs != [3]uint64{a, b, c} {
		t.Errorf("expected registers %v, got %v", [3]uint64{a, b, c}, regs)
	}
}

func checkIP(t *testing.T, m *Machine, ip uint) {
	t.Helper()
	//
	if m.IP() != ip {
		t.Errorf("expected ip %d, got %d", ip, m.IP())
	}
}

func checkOutput(t *testing.T, m *Machine, expected ...uint8) {
	t.Helper()
	//
	if out := m.Output(); !slices.Equal(out, expected) {
		t.Errorf("expected output %v, got %v", expected, out)
	}
}

func checkFault(t *testing.T, program []byte, kind FaultKind, ip uint) {
	var fault *Fault
	//
	t.Helper()
	//
	m := New([3]uint64{1, 2, 3}, program)
	err := m.Run()
	//
	if !errors.Is(err, ErrMalformedProgram) {
		t.Fatalf("expected malformed program, got %v", err)
	} else if !errors.As(err, &fault) {
		t.Fatalf("expected fault, got %v", err)
	} else if fault.Kind != kind || fault.IP != ip {
		t.Errorf("expected fault %d at %d, got %d at %d", kind, ip, fault.Kind, fault.IP)
	}
}
