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
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/consensys/go-tribit/pkg/cmd"
	"github.com/consensys/go-tribit/pkg/program"
	"github.com/consensys/go-tribit/pkg/quine"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().Uint("min-elem", 0, "Minimum element")
	rootCmd.Flags().Uint("max-elem", 7, "Maximum element")
	rootCmd.Flags().Uint64("bound", 1<<48, "Exclusive upper bound on candidates")
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "testgen",
	Short: "Test generation utility for go-tribit.",
	Run: func(c *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(c.UsageString())
			os.Exit(1)
		}
		var cfg TestGenConfig
		// Lookup model
		cfg.model = findModel(args[0])
		cfg.min_elem = cmd.GetUint(c, "min-elem")
		cfg.max_elem = cmd.GetUint(c, "max-elem")
		cfg.bound = cmd.GetUint64(c, "bound")
		// Generate & split programs
		valid, invalid := generateTestPrograms(cfg)
		// Write out
		writeTestPrograms(cfg.model, "accepts", valid)
		writeTestPrograms(cfg.model, "rejects", invalid)
		os.Exit(0)
	},
}

// TestGenConfig encapsulates configuration related to test generation.
type TestGenConfig struct {
	model    Model
	min_elem uint
	max_elem uint
	bound    uint64
}

// Model represents a program template, where each hole (HOLE) is filled
// with every element of the pool in turn.
type Model struct {
	// Name of the model in question
	Name string
	// Program template
	Template []int
}

// HOLE marks a position in a template to be filled.
const HOLE = -1

var models []Model = []Model{
	// adv 3; out X; jnz 0
	{"shift_out", []int{0, 3, 5, HOLE, 3, 0}},
	// bst A; bxl X; cdv B; bxl Y; bxc; adv 3; out B; jnz 0
	{"xor_shift", []int{2, 4, 1, HOLE, 7, 5, 1, HOLE, 4, 0, 0, 3, 5, 5, 3, 0}},
	// bst A; bxl X; cdv B; adv 3; bxl Y; bxc; out B; jnz 0
	{"xor_shift_early", []int{2, 4, 1, HOLE, 7, 5, 0, 3, 1, HOLE, 4, 0, 5, 5, 3, 0}},
}

func findModel(name string) Model {
	for _, m := range models {
		if m.Name == name {
			return m
		}
	}
	//
	panic(fmt.Sprintf("unknown model \"%s\"", name))
}

// Generate every instance of the model's template, and split them according to
// whether or not a quine exists (below the bound).  Accepted programs are
// recorded with their smallest solution in register A.
func generateTestPrograms(cfg TestGenConfig) ([]program.Program, []program.Program) {
	var (
		valid   []program.Program
		invalid []program.Program
		search  = quine.DefaultConfig()
	)
	//
	search.Strategy = quine.RECONSTRUCT
	search.Bound = cfg.bound
	//
	for _, code := range instantiate(cfg.model.Template, cfg.min_elem, cfg.max_elem) {
		a, err := quine.Search(context.Background(), search, [3]uint64{}, code)
		//
		switch {
		case err == nil:
			valid = append(valid, program.Program{Registers: [3]uint64{a, 0, 0}, Code: code})
		case errors.Is(err, quine.ErrSearchExhausted):
			invalid = append(invalid, program.Program{Code: code})
		default:
			log.Debugf("%v: %s", code, err)
			invalid = append(invalid, program.Program{Code: code})
		}
	}
	// Done
	return valid, invalid
}

// Fill the holes of a template with every combination of elements, in
// lexicographic order.
func instantiate(template []int, min_elem uint, max_elem uint) [][]byte {
	var programs = [][]byte{make([]byte, 0, len(template))}
	//
	for _, v := range template {
		var next [][]byte
		//
		for _, prefix := range programs {
			if v != HOLE {
				next = append(next, append(prefix, byte(v)))
				continue
			}
			//
			for e := min_elem; e <= max_elem; e++ {
				var p = make([]byte, len(prefix), len(template))
				//
				copy(p, prefix)
				next = append(next, append(p, byte(e)))
			}
		}
		//
		programs = next
	}
	//
	return programs
}

func writeTestPrograms(model Model, ext string, programs []program.Program) {
	var sb strings.Builder
	// Construct filename
	filename := fmt.Sprintf("testdata/%s.auto.%s", model.Name, ext)
	// Generate lines
	for _, p := range programs {
		line, err := json.Marshal(map[string]any{
			"registers": p.Registers[:],
			"program":   toInts(p.Code),
		})
		//
		if err != nil {
			panic(err)
		}
		//
		sb.Write(line)
		sb.WriteString("\n")
	}
	// Write the file
	if err := os.WriteFile(filename, []byte(sb.String()), 0644); err != nil {
		panic(err)
	}
	// Log what happened
	log.Infof("Wrote %s (%d programs)\n", filename, len(programs))
}

// Bytes would otherwise be marshalled as base64.
func toInts(code []byte) []uint {
	var ints = make([]uint, len(code))
	//
	for i, b := range code {
		ints[i] = uint(b)
	}
	//
	return ints
}
