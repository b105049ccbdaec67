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
package memory

// ReadOnlyMemory (ROM) represents a form of memory that can only be read during
// a given execution, but never written.  Thus, its contents are unchanged
// across a given execution.  In particular, the program executed by a machine
// is held in a ROM and, since instructions are never modified, different
// executions of the same program can safely share it.
type ReadOnlyMemory struct {
	contents []byte
}

// NewReadOnlyMemory constructs a ROM holding a copy of the given bytes.
func NewReadOnlyMemory(contents []byte) ReadOnlyMemory {
	var bytes = make([]byte, len(contents))
	//
	copy(bytes, contents)
	//
	return ReadOnlyMemory{bytes}
}

// Read the byte at a given address.  Observe that, since this is read-only,
// the value returned by a given address will never change across the execution
// of a given machine.  If the address lies beyond the end of memory, then false
// is returned.
func (p ReadOnlyMemory) Read(address uint) (byte, bool) {
	if address >= uint(len(p.contents)) {
		return 0, false
	}
	//
	return p.contents[address], true
}

// Len returns the number of bytes held in this ROM.
func (p ReadOnlyMemory) Len() uint {
	return uint(len(p.contents))
}

// Contents returns a copy of the contents of this ROM.
func (p ReadOnlyMemory) Contents() []byte {
	var bytes = make([]byte, len(p.contents))
	//
	copy(bytes, p.contents)
	//
	return bytes
}

// Equals determines whether the given sequence of values matches the contents
// of this ROM exactly (i.e. same length, same order, same values).
func (p ReadOnlyMemory) Equals(values []uint8) bool {
	if len(values) != len(p.contents) {
		return false
	}
	//
	for i, v := range values {
		if p.contents[i] != v {
			return false
		}
	}
	//
	return true
}
