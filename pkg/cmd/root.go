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
	"runtime/debug"

	"github.com/consensys/go-tribit/pkg/config"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Version is filled when building with make, but *not* when installing via "go
// install".
var Version string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tribit",
	Short: "A 3-bit virtual machine.",
	Long:  "Execute, trace and disassemble 3-bit programs, or search for inputs which make a program output itself.",
	Run: func(cmd *cobra.Command, args []string) {
		if GetFlag(cmd, "version") {
			fmt.Print("tribit ")
			if Version != "" {
				// Built via "make"
				fmt.Printf("%s", Version)
			} else if info, ok := debug.ReadBuildInfo(); ok {
				// Built via "go install"
				fmt.Printf("%s", info.Main.Version)
			} else {
				// Unknown, perhaps "go run"
				fmt.Printf("(unknown version)")
			}
			fmt.Println()
		} else {
			fmt.Println(cmd.UsageString())
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// Load the configuration file (if given) and configure logging accordingly.
// Exits if the configuration cannot be loaded.
func loadConfig(cmd *cobra.Command) *config.Config {
	cfg, err := config.Load(GetString(cmd, "config"))
	//
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	// Configure log level
	if GetFlag(cmd, "verbose") {
		configureLogging(log.DebugLevel)
	} else {
		configureLogging(cfg.Level())
	}
	//
	return cfg
}

func configureLogging(level log.Level) {
	log.SetLevel(level)
	log.SetFormatter(&log.TextFormatter{
		ForceColors:      term.IsTerminal(int(os.Stderr.Fd())),
		DisableTimestamp: true,
	})
}

func init() {
	rootCmd.Flags().Bool("version", false, "Report version of this executable")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")
	rootCmd.PersistentFlags().String("config", "", "configuration file (TOML)")
}
