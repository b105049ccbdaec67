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
package vm

import (
	"fmt"
	"math"

	"github.com/consensys/go-tribit/pkg/vm/instruction"
	"github.com/consensys/go-tribit/pkg/vm/machine"
	"github.com/fxamacker/cbor/v2"
)

// CheckPoint represents a captured state of an executing machine, such that
// execution can be continued later from this position (sometimes also known as
// a "continuation").  As such, the checkpoint includes all information
// necessary to allow execution to continue: the register file, the
// instruction pointer, the program and the output written so far.
//
// Checkpoints are encoded using canonical CBOR, so that two checkpoints of the
// same state are byte-for-byte identical.
type CheckPoint struct {
	Registers [instruction.NUM_REGISTERS]uint64 `cbor:"1,keyasint"`
	IP        uint64                             `cbor:"2,keyasint"`
	Steps     uint64                             `cbor:"3,keyasint"`
	Program   []byte                             `cbor:"4,keyasint"`
	Output    []byte                             `cbor:"5,keyasint"`
}

var encMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("vm: failed to create CBOR enc mode: %v", err))
	}
	//
	encMode = em
}

// Capture the current state of a given machine.
func Capture(m *machine.Machine) *CheckPoint {
	return &CheckPoint{
		Registers: m.Registers(),
		IP:        uint64(m.IP()),
		Steps:     m.Steps(),
		Program:   m.ROM().Contents(),
		Output:    m.Output(),
	}
}

// Restore the state of an executing machine from this checkpoint.
func (p *CheckPoint) Restore() *machine.Machine {
	return machine.Restore(p.Registers, uint(p.IP), p.Steps, p.Program, p.Output)
}

// ValidFor returns the number of execution steps for which this checkpoint is
// valid.  Since checkpoints hold the complete machine state, this is always
// math.MaxUint64.
func (p *CheckPoint) ValidFor() uint64 {
	return math.MaxUint64
}

// MarshalBinary converts this checkpoint into bytes.
func (p *CheckPoint) MarshalBinary() ([]byte, error) {
	return encMode.Marshal(p)
}

// UnmarshalBinary constructs this checkpoint from bytes.
func (p *CheckPoint) UnmarshalBinary(data []byte) error {
	var cp CheckPoint
	//
	if err := cbor.Unmarshal(data, &cp); err != nil {
		return fmt.Errorf("vm: unmarshal checkpoint: %w", err)
	}
	//
	for i, v := range cp.Output {
		if v >= 8 {
			return fmt.Errorf("vm: invalid output value %d at index %d", v, i)
		}
	}
	//
	*p = cp
	//
	return nil
}
