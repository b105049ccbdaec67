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
package termio

import (
	"fmt"
	"strings"
)

// TERM_RED represents red
const TERM_RED = uint(1)

// TERM_GREEN represents green
const TERM_GREEN = uint(2)

// TERM_YELLOW represents yellow
const TERM_YELLOW = uint(3)

// TERM_CYAN represents cyan
const TERM_CYAN = uint(6)

// AnsiEscape represents a sequence of SGR parameters used for highlighting
// text in a terminal.
type AnsiEscape struct {
	params []string
}

// BoldAnsiEscape constructs a bold escape.
func BoldAnsiEscape() AnsiEscape {
	return AnsiEscape{[]string{"1"}}
}

// FgColour sets the foreground colour
func (p AnsiEscape) FgColour(col uint) AnsiEscape {
	return AnsiEscape{append(p.params[:len(p.params):len(p.params)], fmt.Sprintf("%d", col+30))}
}

// Build constructs the final escape
func (p AnsiEscape) Build() string {
	if len(p.params) == 0 {
		return ""
	}
	//
	return fmt.Sprintf("\033[%sm", strings.Join(p.params, ";"))
}

// Wrap some text in this escape, resetting the terminal afterwards.
func (p AnsiEscape) Wrap(text string) string {
	if len(p.params) == 0 {
		return text
	}
	//
	return fmt.Sprintf("%s%s\033[0m", p.Build(), text)
}

// Highlighter applies escapes only when enabled, for example when writing to a
// terminal rather than a file.
type Highlighter struct {
	enabled bool
}

// NewHighlighter constructs a highlighter which is either enabled or not.
func NewHighlighter(enabled bool) Highlighter {
	return Highlighter{enabled}
}

// Apply an escape to some text, if enabled.
func (p Highlighter) Apply(escape AnsiEscape, text string) string {
	if !p.enabled {
		return text
	}
	//
	return escape.Wrap(text)
}
