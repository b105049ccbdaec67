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

// WriteOnceMemory (WOM) represents a form of memory where each cell can be
// written exactly once and, furthermore, cells must be written consecutively
// starting from zero.  Thus, a WOM can be viewed as an output stream (which is
// exactly what it is used for).
type WriteOnceMemory struct {
	contents []uint8
}

// NewWriteOnceMemory constructs an initially empty WOM.
func NewWriteOnceMemory() *WriteOnceMemory {
	return &WriteOnceMemory{nil}
}

// Append a value at the next available address.
func (p *WriteOnceMemory) Append(value uint8) {
	p.contents = append(p.contents, value)
}

// Len returns the number of values written so far.
func (p *WriteOnceMemory) Len() uint {
	return uint(len(p.contents))
}

// Last returns the most recently written value, or false if nothing has been
// written yet.
func (p *WriteOnceMemory) Last() (uint8, bool) {
	if n := len(p.contents); n > 0 {
		return p.contents[n-1], true
	}
	//
	return 0, false
}

// Contents returns a copy of the values written to this WOM, in the order they
// were written.
func (p *WriteOnceMemory) Contents() []uint8 {
	var values = make([]uint8, len(p.contents))
	//
	copy(values, p.contents)
	//
	return values
}
