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
package test

import (
	"fmt"
	"os"
	"strings"

	"github.com/consensys/go-tribit/pkg/program"
)

// TestDir determines the (relative) location of the test directory.  That is
// where the test programs and the corresponding outputs (or accepts/rejects
// files) are found.
const TestDir = "../../testdata"

// ACCEPTS is the extension of files holding programs for which a quine
// exists, with the smallest solution held in register A.
const ACCEPTS = "auto.accepts"

// REJECTS is the extension of files holding programs for which no quine was
// found.
const REJECTS = "auto.rejects"

// ReadProgram reads a program and its expected output from the test
// directory.
func ReadProgram(test string) (*program.Program, string) {
	var (
		filename = fmt.Sprintf("%s/%s.txt", TestDir, test)
		outname  = fmt.Sprintf("%s/%s.out", TestDir, test)
	)
	//
	p, err := program.ReadFile(filename)
	if err != nil {
		panic(err)
	}
	//
	bytes, err := os.ReadFile(outname)
	if err != nil {
		panic(err)
	}
	//
	return p, strings.TrimSpace(string(bytes))
}

// ReadProgramsFile reads a file containing zero or more programs, one per line
// in JSON form.
func ReadProgramsFile(filename string) []*program.Program {
	var programs []*program.Program
	//
	bytes, err := os.ReadFile(filename)
	if err != nil {
		panic(err)
	}
	//
	for i, line := range strings.Split(string(bytes), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		//
		p, err := program.ParseJson([]byte(line))
		if err != nil {
			panic(fmt.Sprintf("%s:%d: %s", filename, i+1, err))
		}
		//
		programs = append(programs, p)
	}
	//
	return programs
}
