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

import "fmt"

// DEFAULT_CHUNK is the number of steps executed in each chunk by Run.
const DEFAULT_CHUNK = 1024

// Core represents an executing machine.  A machine may be executing or
// halted.  A halted machine remains halted, and executing it further has no
// effect.
type Core interface {
	// Execute the machine for (upto) the given number of steps, returning the
	// actual number of steps executed and an error (if execution failed).  If
	// fewer steps are executed than requested, and no error is reported, then
	// the machine has halted.
	Execute(steps uint) (uint, error)
	// Halted determines whether or not this machine has halted.
	Halted() bool
}

// ExecuteAll executes a given machine to completion in chunks of n steps,
// returning the number of steps executed and/or any error arising.  Observe
// that this will not terminate if the machine never halts.
func ExecuteAll[M Core](machine M, n uint) (uint, error) {
	var nsteps uint
	//
	for {
		// Execute upto n steps
		m, err := machine.Execute(n)
		// update the tally
		nsteps += m
		// check for termination
		if err != nil || m < n {
			return nsteps, err
		}
	}
}

// ExecuteBounded executes a given machine to completion in chunks of n steps,
// but executing no more than limit steps in total.  If the machine has not
// halted after limit steps, then an error wrapping ErrStepLimit is returned.  A
// limit of zero indicates no limit.
func ExecuteBounded[M Core](machine M, n uint, limit uint) (uint, error) {
	var nsteps uint
	//
	if limit == 0 {
		return ExecuteAll(machine, n)
	}
	//
	for nsteps < limit {
		var chunk = min(n, limit-nsteps)
		// Execute upto chunk steps
		m, err := machine.Execute(chunk)
		// update the tally
		nsteps += m
		// check for termination
		if err != nil || m < chunk {
			return nsteps, err
		}
	}
	// Machine may have halted exactly on the limit.
	if machine.Halted() {
		return nsteps, nil
	}
	//
	return nsteps, fmt.Errorf("%w (%d steps)", ErrStepLimit, limit)
}
