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
	"encoding/json"
	"fmt"
	"os"
	"path"
	"strconv"
	"strings"

	"github.com/consensys/go-tribit/pkg/vm/instruction"
)

// Program captures everything needed to start a machine: the initial contents
// of each register, and the bytes to execute.
type Program struct {
	Registers instruction.RegisterFile
	Code      []byte
}

// ReadFile reads a program from a given file, using a parser determined by the
// file's extension.  JSON files (".json") are expected to hold an object with
// "registers" and "program" arrays, whilst anything else is parsed as text.
func ReadFile(filename string) (*Program, error) {
	bytes, err := os.ReadFile(filename)
	//
	if err != nil {
		return nil, err
	}
	//
	switch path.Ext(filename) {
	case ".json":
		return ParseJson(bytes)
	default:
		return Parse(string(bytes))
	}
}

type jsonProgram struct {
	Registers []uint64 `json:"registers"`
	Program   []uint   `json:"program"`
}

// ParseJson parses a program given in JSON form, for example:
//
//	{"registers": [729, 0, 0], "program": [0, 1, 5, 4, 3, 0]}
func ParseJson(bytes []byte) (*Program, error) {
	var (
		raw jsonProgram
		p   Program
	)
	//
	if err := json.Unmarshal(bytes, &raw); err != nil {
		return nil, err
	} else if len(raw.Registers) != instruction.NUM_REGISTERS {
		return nil, fmt.Errorf("expected %d registers, found %d", instruction.NUM_REGISTERS, len(raw.Registers))
	}
	//
	copy(p.Registers[:], raw.Registers)
	//
	for i, v := range raw.Program {
		if v > 255 {
			return nil, fmt.Errorf("program value %d at index %d out of range", v, i)
		}
		//
		p.Code = append(p.Code, byte(v))
	}
	//
	return &p, nil
}

// Parse a program given in text form, for example:
//
//	Register A: 729
//	Register B: 0
//	Register C: 0
//
//	Program: 0,1,5,4,3,0
//
// Blank lines are ignored.  Every register must be given exactly once, as
// must the program.
func Parse(text string) (*Program, error) {
	var (
		p       Program
		seen    [instruction.NUM_REGISTERS]bool
		hasCode bool
	)
	//
	for i, line := range strings.Split(text, "\n") {
		var lineno = i + 1
		//
		line = strings.TrimSpace(line)
		//
		if line == "" {
			continue
		}
		//
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			return nil, fmt.Errorf("line %d: expected \"key: value\"", lineno)
		}
		//
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)
		//
		switch {
		case key == "Program":
			if hasCode {
				return nil, fmt.Errorf("line %d: duplicate program", lineno)
			}
			//
			code, err := parseCode(value)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineno, err)
			}
			//
			p.Code, hasCode = code, true
		case strings.HasPrefix(key, "Register "):
			reg, err := parseRegisterName(strings.TrimPrefix(key, "Register "))
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineno, err)
			} else if seen[reg] {
				return nil, fmt.Errorf("line %d: duplicate register %s", lineno, reg)
			}
			//
			val, err := strconv.ParseUint(value, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid register value \"%s\"", lineno, value)
			}
			//
			p.Registers[reg], seen[reg] = val, true
		default:
			return nil, fmt.Errorf("line %d: unknown key \"%s\"", lineno, key)
		}
	}
	//
	for i, ok := range seen {
		if !ok {
			return nil, fmt.Errorf("missing register %s", instruction.Register(i))
		}
	}
	//
	if !hasCode {
		return nil, fmt.Errorf("missing program")
	}
	//
	return &p, nil
}

func parseRegisterName(name string) (instruction.Register, error) {
	switch name {
	case "A":
		return instruction.REG_A, nil
	case "B":
		return instruction.REG_B, nil
	case "C":
		return instruction.REG_C, nil
	}
	//
	return 0, fmt.Errorf("unknown register \"%s\"", name)
}

func parseCode(text string) ([]byte, error) {
	var code []byte
	//
	if text == "" {
		return code, nil
	}
	//
	for _, field := range strings.Split(text, ",") {
		val, err := strconv.ParseUint(strings.TrimSpace(field), 10, 8)
		if err != nil {
			return nil, fmt.Errorf("invalid program value \"%s\"", field)
		}
		//
		code = append(code, byte(val))
	}
	//
	return code, nil
}

// Format a sequence of output values as a comma-separated string.
func Format(values []uint8) string {
	var builder strings.Builder
	//
	for i, v := range values {
		if i != 0 {
			builder.WriteString(",")
		}
		//
		builder.WriteString(strconv.FormatUint(uint64(v), 10))
	}
	//
	return builder.String()
}
