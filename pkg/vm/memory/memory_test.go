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

import "testing"

func Test_ROM_Read_01(t *testing.T) {
	rom := NewReadOnlyMemory([]byte{0, 1, 5})
	//
	for i, e := range []byte{0, 1, 5} {
		if v, ok := rom.Read(uint(i)); !ok || v != e {
			t.Errorf("read %d gave %d (%t)", i, v, ok)
		}
	}
	//
	if _, ok := rom.Read(3); ok {
		t.Errorf("read beyond end should fail")
	}
}

func Test_ROM_Copy_01(t *testing.T) {
	bytes := []byte{1, 2, 3}
	rom := NewReadOnlyMemory(bytes)
	// Mutating the source must not affect the ROM.
	bytes[0] = 7
	//
	if v, _ := rom.Read(0); v != 1 {
		t.Errorf("rom shares storage with its source")
	}
	// Mutating the contents must not affect the ROM.
	rom.Contents()[1] = 7
	//
	if v, _ := rom.Read(1); v != 2 {
		t.Errorf("rom shares storage with its contents")
	}
}

func Test_ROM_Equals_01(t *testing.T) {
	rom := NewReadOnlyMemory([]byte{0, 3, 5, 4, 3, 0})
	//
	if !rom.Equals([]uint8{0, 3, 5, 4, 3, 0}) {
		t.Errorf("expected equal")
	}
	//
	if rom.Equals([]uint8{0, 3, 5, 4, 3}) || rom.Equals([]uint8{0, 3, 5, 4, 3, 1}) {
		t.Errorf("expected not equal")
	}
}

func Test_WOM_Append_01(t *testing.T) {
	wom := NewWriteOnceMemory()
	//
	if _, ok := wom.Last(); ok || wom.Len() != 0 {
		t.Errorf("expected empty output")
	}
	//
	wom.Append(4)
	wom.Append(6)
	//
	if last, ok := wom.Last(); !ok || last != 6 || wom.Len() != 2 {
		t.Errorf("unexpected last value %d", last)
	}
	//
	contents := wom.Contents()
	contents[0] = 0
	//
	if wom.Contents()[0] != 4 {
		t.Errorf("contents shares storage")
	}
}
