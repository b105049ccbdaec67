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

	"github.com/consensys/go-tribit/pkg/vm/instruction"
	"github.com/spf13/cobra"
)

var disasmCmd = &cobra.Command{
	Use:     "disasm [flags] input",
	Short:   "disassemble a program.",
	Long:    `Print the initial registers and a human-readable listing of a program.`,
	Aliases: []string{"dis"},
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		loadConfig(cmd)
		//
		p := readProgramFile(args[0])
		//
		for i, v := range p.Registers {
			fmt.Printf("%s = %d\n", instruction.Register(i), v)
		}
		//
		fmt.Println()
		fmt.Print(instruction.Disassemble(p.Code))
	},
}

func init() {
	rootCmd.AddCommand(disasmCmd)
}
