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
	"fmt"
	"os"
	"strings"

	"github.com/consensys/go-tribit/pkg/program"
	"github.com/consensys/go-tribit/pkg/util/termio"
	"github.com/consensys/go-tribit/pkg/vm/instruction"
	"github.com/consensys/go-tribit/pkg/vm/machine"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var traceCmd = &cobra.Command{
	Use:   "trace [flags] input",
	Short: "execute a program, printing each step.",
	Long: `Execute a program one instruction at a time, printing each instruction along with
the register file after it executes.`,
	Args: cobra.ExactArgs(1),
	Run:  runTraceCmd,
}

func runTraceCmd(cmd *cobra.Command, args []string) {
	var (
		cfg   = loadConfig(cmd)
		p     = readProgramFile(args[0])
		m     = machine.New(p.Registers, p.Code)
		width = terminalWidth()
		limit = cfg.Machine.MaxSteps
		hl    = termio.NewHighlighter(width > 0)
	)
	//
	if Changed(cmd, "max-steps") {
		limit = GetUint(cmd, "max-steps")
	}
	//
	for n := uint(0); limit == 0 || n < limit; n++ {
		var (
			ip     = m.IP()
			before = m.OutputLen()
		)
		//
		insn, halted, err := m.Peek()
		if err == nil && !halted {
			halted, err = m.Step()
		}
		//
		if err != nil {
			log.Error(err)
			os.Exit(4)
		} else if halted {
			fmt.Printf("halted after %d steps\n", m.Steps())
			fmt.Println(program.Format(m.Output()))
			//
			return
		}
		//
		fmt.Println(traceLine(hl, width, n, ip, insn, m, m.OutputLen() > before))
	}
	//
	log.Errorf("%s (%d steps)", machine.ErrStepLimit, limit)
	os.Exit(6)
}

// Determine the width of the terminal on stdout, or 0 if stdout is not a
// terminal.
func terminalWidth() int {
	var fd = int(os.Stdout.Fd())
	//
	if !term.IsTerminal(fd) {
		return 0
	}
	//
	width, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}
	//
	return width
}

var (
	jumpEscape = termio.BoldAnsiEscape().FgColour(termio.TERM_CYAN)
	outEscape  = termio.BoldAnsiEscape().FgColour(termio.TERM_GREEN)
)

// Render a single step of the trace.  Jumps and newly emitted output are
// highlighted, unless the line does not fit in the terminal.
func traceLine(hl termio.Highlighter, width int, n uint, ip uint, insn instruction.Instruction,
	m *machine.Machine, emitted bool) string {
	var (
		regs   = m.Registers()
		prefix = fmt.Sprintf("%6d [%d] ", n, ip)
		text   = fmt.Sprintf("%-6s", insn)
		suffix = fmt.Sprintf(" A=%d B=%d C=%d", regs[0], regs[1], regs[2])
		out    string
	)
	//
	if m.OutputLen() > 0 {
		out = fmt.Sprintf(" out=%s", program.Format(m.Output()))
	}
	//
	if plain := prefix + text + suffix + out; width > 0 && len(plain) > width {
		return truncate(plain, width)
	}
	//
	if insn.Opcode.IsJump() {
		text = hl.Apply(jumpEscape, text)
	}
	//
	if emitted {
		out = hl.Apply(outEscape, out)
	}
	//
	return prefix + text + suffix + out
}

func truncate(line string, width int) string {
	line = strings.ReplaceAll(line, "\t", " ")
	//
	if width <= 0 || len(line) <= width {
		return line
	}
	//
	return line[:width]
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(traceCmd)
	traceCmd.Flags().Uint("max-steps", 0, "maximum number of steps to trace (0 = unbounded)")
}
