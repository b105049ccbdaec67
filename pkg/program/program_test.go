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
package program

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/consensys/go-tribit/pkg/vm/machine"
)

const example = `Register A: 729
Register B: 0
Register C: 0

Program: 0,1,5,4,3,0`

func Test_Parse_01(t *testing.T) {
	p, err := Parse(example)
	//
	if err != nil {
		t.Fatal(err)
	}
	//
	checkProgram(t, p, [3]uint64{729, 0, 0}, 0, 1, 5, 4, 3, 0)
}

func Test_Parse_02(t *testing.T) {
	// Registers in any order, extra whitespace
	p, err := Parse("  Program: 0, 3 ,5\r\nRegister C: 3\nRegister A: 2024\nRegister B: 1\n\n")
	//
	if err != nil {
		t.Fatal(err)
	}
	//
	checkProgram(t, p, [3]uint64{2024, 1, 3}, 0, 3, 5)
}

func Test_Parse_Invalid_01(t *testing.T) {
	checkInvalid(t, "Register A: 1\nRegister B: 0\nProgram: 0,1")
	checkInvalid(t, "Register A: 1\nRegister B: 0\nRegister C: 0")
	checkInvalid(t, "Register A: 1\nRegister A: 1\nRegister B: 0\nRegister C: 0\nProgram: 1")
	checkInvalid(t, "Register D: 1\nRegister B: 0\nRegister C: 0\nProgram: 1")
	checkInvalid(t, "Register A: -1\nRegister B: 0\nRegister C: 0\nProgram: 1")
	checkInvalid(t, "Register A: 1\nRegister B: 0\nRegister C: 0\nProgram: 1,256")
	checkInvalid(t, "Register A: 1\nRegister B: 0\nRegister C: 0\nProgram: 1,,2")
	checkInvalid(t, "Register A 1\nRegister B: 0\nRegister C: 0\nProgram: 1")
	checkInvalid(t, "Register A: 1\nRegister B: 0\nRegister C: 0\nProgram: 1\nProgram: 2")
}

func Test_ParseJson_01(t *testing.T) {
	p, err := ParseJson([]byte(`{"registers": [2024, 0, 0], "program": [0, 3, 5, 4, 3, 0]}`))
	//
	if err != nil {
		t.Fatal(err)
	}
	//
	checkProgram(t, p, [3]uint64{2024, 0, 0}, 0, 3, 5, 4, 3, 0)
}

func Test_ParseJson_02(t *testing.T) {
	if _, err := ParseJson([]byte(`{"registers": [1, 2], "program": []}`)); err == nil {
		t.Errorf("expected error for missing register")
	}
	//
	if _, err := ParseJson([]byte(`{"registers": [1, 2, 3], "program": [300]}`)); err == nil {
		t.Errorf("expected error for out-of-range value")
	}
}

func Test_ReadFile_01(t *testing.T) {
	var (
		dir  = t.TempDir()
		txt  = filepath.Join(dir, "input.txt")
		json = filepath.Join(dir, "input.json")
	)
	//
	if err := os.WriteFile(txt, []byte(example), 0o600); err != nil {
		t.Fatal(err)
	} else if err := os.WriteFile(json, []byte(`{"registers":[729,0,0],"program":[0,1,5,4,3,0]}`), 0o600); err != nil {
		t.Fatal(err)
	}
	//
	for _, f := range []string{txt, json} {
		p, err := ReadFile(f)
		if err != nil {
			t.Fatal(err)
		}
		//
		checkProgram(t, p, [3]uint64{729, 0, 0}, 0, 1, 5, 4, 3, 0)
	}
}

func Test_Format_01(t *testing.T) {
	p, err := Parse(example)
	if err != nil {
		t.Fatal(err)
	}
	//
	m := machine.New(p.Registers, p.Code)
	if err := m.Run(); err != nil {
		t.Fatal(err)
	}
	//
	if s := Format(m.Output()); s != "4,6,3,5,6,3,5,2,1,0" {
		t.Errorf("unexpected output \"%s\"", s)
	}
	//
	if s := Format(nil); s != "" {
		t.Errorf("unexpected output \"%s\"", s)
	}
}

func checkProgram(t *testing.T, p *Program, regs [3]uint64, code ...byte) {
	t.Helper()
	//
	if p.Registers != regs {
		t.Errorf("expected registers %v, got %v", regs, p.Registers)
	}
	//
	if !slices.Equal(p.Code, code) {
		t.Errorf("expected program %v, got %v", code, p.Code)
	}
}

func checkInvalid(t *testing.T, text string) {
	t.Helper()
	//
	if _, err := Parse(text); err == nil {
		t.Errorf("expected error parsing %q", text)
	}
}
