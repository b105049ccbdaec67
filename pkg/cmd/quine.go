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
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"slices"

	"github.com/consensys/go-tribit/pkg/program"
	"github.com/consensys/go-tribit/pkg/quine"
	"github.com/consensys/go-tribit/pkg/util"
	"github.com/consensys/go-tribit/pkg/vm/instruction"
	"github.com/consensys/go-tribit/pkg/vm/machine"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var quineCmd = &cobra.Command{
	Use:   "quine [flags] input",
	Short: "find the smallest register A for which a program outputs itself.",
	Long: `Search for the smallest initial value of register A for which the given program
outputs its own bytes.  Registers B and C are taken from the input.`,
	Args: cobra.ExactArgs(1),
	Run:  runQuineCmd,
}

func runQuineCmd(cmd *cobra.Command, args []string) {
	var (
		cfg = loadConfig(cmd)
		p   = readProgramFile(args[0])
	)
	//
	if Changed(cmd, "strategy") {
		cfg.Search.Strategy = GetString(cmd, "strategy")
	}
	//
	if Changed(cmd, "bound") {
		cfg.Search.Bound = GetUint64(cmd, "bound")
	}
	//
	if Changed(cmd, "workers") {
		cfg.Search.Workers = GetUint(cmd, "workers")
	}
	//
	if Changed(cmd, "timeout") {
		cfg.Search.Timeout.Duration = GetDuration(cmd, "timeout")
	}
	//
	if err := cfg.Validate(); err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	search, err := cfg.SearchConfig()
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	// Allow the search to be interrupted.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	//
	stats := util.NewPerfStats()
	a, err := quine.Search(ctx, search, p.Registers, p.Code)
	stats.Log("Search", 0, "")
	//
	switch {
	case errors.Is(err, quine.ErrSearchExhausted):
		log.Error(err)
		os.Exit(5)
	case errors.Is(err, machine.ErrMalformedProgram):
		log.Error(err)
		os.Exit(4)
	case err != nil:
		log.Error(err)
		os.Exit(1)
	}
	//
	verifyQuine(p, a)
	//
	fmt.Println(a)
}

// Run the program once more with the answer, and confirm it does indeed output
// itself.
func verifyQuine(p *program.Program, a uint64) {
	var regs = p.Registers
	//
	regs[instruction.REG_A] = a
	m := machine.New(regs, p.Code)
	//
	if err := m.Run(); err != nil {
		log.Error(err)
		os.Exit(4)
	} else if !slices.Equal(m.Output(), p.Code) {
		log.Errorf("register A = %d outputs %s", a, program.Format(m.Output()))
		os.Exit(1)
	}
	//
	log.Debugf("verified register A = %d after %d steps", a, m.Steps())
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(quineCmd)
	quineCmd.Flags().String("strategy", "linear", "search strategy (linear, parallel, reconstruct or auto)")
	quineCmd.Flags().Uint64("bound", 0, "exclusive upper bound on candidates")
	quineCmd.Flags().Uint("workers", 0, "number of parallel workers (0 = one per CPU)")
	quineCmd.Flags().Duration("timeout", 0, "wall-clock bound on the search (0 = none)")
}
