// Copyright 2025 The MCP Chain Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package mcp

import (
	"fmt"
	"strconv"
)

// FormatNumber renders v in the shortest decimal form that round-trips,
// the canonical textual form for numeric tool results. Plain decimal
// notation, never an exponent: square(1000) reads "1000000".
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// NewTextResult returns a successful tool result whose sole content block is
// the given text.
func NewTextResult(text string) *CallToolResult {
	return &CallToolResult{Content: []Content{&TextContent{Text: text}}}
}

// NewErrorResult returns a tool-level error result carrying the formatted
// diagnostic text. It is a successful dispatch outcome, not a protocol
// error.
func NewErrorResult(format string, args ...any) *CallToolResult {
	return &CallToolResult{
		Content: []Content{&TextContent{Text: fmt.Sprintf(format, args...)}},
		IsError: true,
	}
}
