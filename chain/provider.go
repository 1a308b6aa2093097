// Copyright 2025 The MCP Chain Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package chain

import (
	"context"

	"github.com/mcpchain/mcpchain/jsonrpc"
	"github.com/mcpchain/mcpchain/mcp"
)

// A ToolProvider answers a fixed, enumerable set of tools directly, with no
// knowledge of the pipeline it runs in. Leaf tool implementations satisfy
// this interface and are adapted into handlers with [NewProviderHandler].
type ToolProvider interface {
	// Tools enumerates the provider's declared tools.
	Tools() []*mcp.Tool
	// Call executes the named tool. The second return is false if the tool
	// is not one of the provider's, in which case the result is nil.
	Call(ctx context.Context, params *mcp.CallToolParamsRaw) (*mcp.CallToolResult, bool)
}

// NewProviderHandler adapts p into a pipeline handler: tools/list merges the
// provider's tools with the downstream list, tools/call is answered for the
// provider's own tools and delegated otherwise, and everything else passes
// through.
func NewProviderHandler(p ToolProvider) Handler {
	return &providerHandler{p: p}
}

type providerHandler struct {
	p ToolProvider
}

func (h *providerHandler) HandleRequest(ctx context.Context, id jsonrpc.ID, req mcp.Request, down Downstream) (mcp.Result, error) {
	switch r := req.(type) {
	case *mcp.ListToolsRequest:
		return MergeTools(ctx, id, r.Params, down, h.p.Tools()), nil
	case *mcp.CallToolRequest:
		if res, ok := h.p.Call(ctx, r.Params); ok {
			return res, nil
		}
		return down.HandleRequest(ctx, id, req)
	default:
		return down.HandleRequest(ctx, id, req)
	}
}

func (h *providerHandler) HandleNotification(ctx context.Context, n *mcp.Notification, down Downstream) {
	down.HandleNotification(ctx, n)
}

func (h *providerHandler) HandleResponse(ctx context.Context, id jsonrpc.ID, res mcp.Result, err error, down Downstream) {
	down.HandleResponse(ctx, id, res, err)
}

// DeclaredTools lists the provider's tool names, for [Verify].
func (h *providerHandler) DeclaredTools() []string {
	tools := h.p.Tools()
	names := make([]string, len(tools))
	for i, t := range tools {
		names[i] = t.Name
	}
	return names
}
