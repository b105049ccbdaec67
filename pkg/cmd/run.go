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
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/consensys/go-tribit/pkg/program"
	"github.com/consensys/go-tribit/pkg/util"
	"github.com/consensys/go-tribit/pkg/vm"
	"github.com/consensys/go-tribit/pkg/vm/instruction"
	"github.com/consensys/go-tribit/pkg/vm/machine"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] input",
	Short: "execute a program and print its output.",
	Long: `Execute a program until it halts, and print its output as a comma-separated list.
Execution can be suspended into a checkpoint (see --save) and continued later (see --resume).`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRunCmd,
}

func runRunCmd(cmd *cobra.Command, args []string) {
	var (
		cfg    = loadConfig(cmd)
		resume = GetString(cmd, "resume")
		save   = GetString(cmd, "save")
		m      *machine.Machine
	)
	//
	if Changed(cmd, "max-steps") {
		cfg.Machine.MaxSteps = GetUint(cmd, "max-steps")
	}
	//
	switch {
	case resume != "" && len(args) == 0:
		m = readCheckPoint(resume)
	case resume == "" && len(args) == 1:
		p := readProgramFile(args[0])
		m = machine.New(p.Registers, p.Code)
	default:
		fmt.Println(cmd.UsageString())
		os.Exit(2)
	}
	//
	if Changed(cmd, "reg-a") {
		m = overrideRegisterA(m, GetUint64(cmd, "reg-a"))
	}
	//
	stats := util.NewPerfStats()
	n, err := machine.ExecuteBounded(m, cfg.Machine.Chunk, cfg.Machine.MaxSteps)
	stats.Log("Execution", uint64(n), "steps")
	//
	if save != "" {
		writeCheckPoint(save, m)
	}
	//
	switch {
	case errors.Is(err, machine.ErrStepLimit):
		log.Error(err)
		os.Exit(6)
	case err != nil:
		log.Error(err)
		os.Exit(4)
	}
	//
	fmt.Println(program.Format(m.Output()))
}

// Replace the initial value of register A.  This only makes sense before
// execution has begun.
func overrideRegisterA(m *machine.Machine, a uint64) *machine.Machine {
	if m.Steps() != 0 {
		fmt.Println("cannot override register A of a resumed execution")
		os.Exit(2)
	}
	//
	regs := m.Registers()
	regs[instruction.REG_A] = a
	//
	return machine.NewWithROM(regs, m.ROM())
}

func readCheckPoint(filename string) *machine.Machine {
	var cp vm.CheckPoint
	//
	bytes, err := os.ReadFile(filename)
	if err == nil {
		err = cp.UnmarshalBinary(bytes)
	}
	//
	if err != nil {
		fmt.Printf("%s: %s\n", filename, err)
		os.Exit(3)
	}
	//
	log.Debugf("resuming from %s after %d steps", filename, cp.Steps)
	//
	return cp.Restore()
}

func writeCheckPoint(filename string, m *machine.Machine) {
	bytes, err := vm.Capture(m).MarshalBinary()
	//
	if err == nil {
		err = os.WriteFile(filename, bytes, 0o644)
	}
	//
	if err != nil {
		fmt.Printf("%s: %s\n", filename, err)
		os.Exit(3)
	}
	//
	log.Infof("checkpoint written to %s after %d steps", filename, m.Steps())
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().Uint("max-steps", 0, "maximum number of steps to execute (0 = unbounded)")
	runCmd.Flags().Uint64("reg-a", 0, "override the initial value of register A")
	runCmd.Flags().String("save", "", "write a checkpoint of the final machine state")
	runCmd.Flags().String("resume", "", "continue execution from a checkpoint")
}
