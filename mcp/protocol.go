// Copyright 2025 The MCP Chain Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package mcp

import (
	"encoding/json"

	internaljson "github.com/mcpchain/mcpchain/internal/json"
)

// Meta carries optional metadata that clients and servers may attach to
// requests and results.
type Meta map[string]any

// A Result is the server-side result of a pipeline request: a
// [ListToolsResult], a [CallToolResult], or an [OpaqueResult] forwarded from
// a peer. Results are per-request values and are never retained across
// requests.
type Result interface {
	isResult()
}

// ListToolsParams are the parameters of a tools/list request. The cursor is
// accepted for wire compatibility but ignored by the merge logic.
type ListToolsParams struct {
	Meta   Meta   `json:"_meta,omitempty"`
	Cursor string `json:"cursor,omitempty"`
}

// A ListToolsResult is the merged tool sequence for a tools/list request.
// It is built fresh per request and never persisted.
type ListToolsResult struct {
	Meta       Meta    `json:"_meta,omitempty"`
	Tools      []*Tool `json:"tools"`
	NextCursor string  `json:"nextCursor,omitempty"`
}

func (*ListToolsResult) isResult() {}

// CallToolParamsRaw are the parameters of a tools/call request as seen by
// handlers: the arguments are not yet unmarshaled, so each handler can
// validate and decode them against its own declared schema.
type CallToolParamsRaw struct {
	Meta Meta `json:"_meta,omitempty"`
	// Name is the string key the pipeline dispatches on.
	Name string `json:"name"`
	// Arguments is the raw argument payload, typically a JSON object.
	Arguments json.RawMessage `json:"arguments,omitempty"`
}

// A CallToolResult is the outcome of a tools/call request.
type CallToolResult struct {
	Meta Meta `json:"_meta,omitempty"`
	// Content holds the unstructured result blocks.
	Content []Content `json:"content"`
	// StructuredContent optionally holds a structured result. It must
	// marshal to a JSON object.
	StructuredContent any `json:"structuredContent,omitempty"`
	// IsError reports whether the call ended in a tool-level error.
	//
	// Argument and domain failures are reported here, inside Content, not as
	// protocol errors: a result with IsError set is still a successful
	// dispatch outcome. Only capability-resolution failures (an unknown tool
	// or request kind) surface as protocol errors.
	IsError bool `json:"isError,omitempty"`
}

func (*CallToolResult) isResult() {}

// UnmarshalJSON decodes the content blocks into the Content interface.
func (x *CallToolResult) UnmarshalJSON(data []byte) error {
	type res CallToolResult // avoid recursion
	var wire struct {
		res
		Content []*wireContent `json:"content"`
	}
	if err := internaljson.Unmarshal(data, &wire); err != nil {
		return err
	}
	var err error
	if wire.res.Content, err = contentsFromWire(wire.Content); err != nil {
		return err
	}
	*x = CallToolResult(wire.res)
	return nil
}

// An OpaqueResult is a result forwarded verbatim for a request kind the
// pipeline does not interpret.
type OpaqueResult struct {
	Raw json.RawMessage
}

func (*OpaqueResult) isResult() {}

func (x *OpaqueResult) MarshalJSON() ([]byte, error) {
	if len(x.Raw) == 0 {
		return []byte("null"), nil
	}
	return x.Raw, nil
}

func (x *OpaqueResult) UnmarshalJSON(data []byte) error {
	x.Raw = append(x.Raw[:0], data...)
	return nil
}
