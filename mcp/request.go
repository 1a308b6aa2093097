// Copyright 2025 The MCP Chain Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package mcp

import "encoding/json"

// Method names interpreted by the pipeline. Everything else is opaque
// pass-through.
const (
	MethodListTools = "tools/list"
	MethodCallTool  = "tools/call"
)

// A Request is a client-to-server request traveling down the pipeline: a
// [ListToolsRequest], a [CallToolRequest], or an [OpaqueRequest].
type Request interface {
	// Method returns the JSON-RPC method name of the request.
	Method() string
	isRequest()
}

// A ListToolsRequest asks for the merged tool list of the remaining
// pipeline.
type ListToolsRequest struct {
	Params *ListToolsParams
}

func (*ListToolsRequest) Method() string { return MethodListTools }
func (*ListToolsRequest) isRequest()     {}

// A CallToolRequest invokes a named tool. It is constructed by the host on
// behalf of a client, or by a middleware synthesizing a nested call.
type CallToolRequest struct {
	Params *CallToolParamsRaw
}

func (*CallToolRequest) Method() string { return MethodCallTool }
func (*CallToolRequest) isRequest()     {}

// An OpaqueRequest is any other request kind. Handlers never interpret it;
// it is delegated verbatim until the terminal sentinel rejects it.
type OpaqueRequest struct {
	RequestMethod string
	Params        json.RawMessage
}

func (r *OpaqueRequest) Method() string { return r.RequestMethod }
func (*OpaqueRequest) isRequest()       {}

// A Notification is a client-to-server notification. The pipeline forwards
// notifications unchanged; no handler observes or mutates them.
type Notification struct {
	Method string
	Params json.RawMessage
}
