// Copyright 2025 The MCP Chain Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package middleware implements synthetic tools: tools whose results are
// computed by composing nested tool calls through the remainder of the
// pipeline rather than by direct computation alone.
//
// A middleware intercepts tools/call for the tools it owns and delegates
// everything else. To compute an owned tool it issues new tools/call
// requests into its own downstream cursor — never back into itself or the
// pipeline head — carrying the original request's id and context. Nested
// calls are strictly sequential and synchronous, and synthetic results are
// all-or-nothing: any nested failure aborts the whole computation.
package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/mcpchain/mcpchain/chain"
	internaljson "github.com/mcpchain/mcpchain/internal/json"
	"github.com/mcpchain/mcpchain/jsonrpc"
	"github.com/mcpchain/mcpchain/mcp"
)

// A ToolFunc computes one synthetic tool result. The arguments have already
// been validated against the tool's declared schema. Nested calls go through
// down with the same ctx and id as the original request.
type ToolFunc func(ctx context.Context, id jsonrpc.ID, args json.RawMessage, down chain.Downstream) *mcp.CallToolResult

type definition struct {
	tool     *mcp.Tool
	resolved *jsonschema.Resolved
	run      ToolFunc
}

// A Middleware owns one or more synthetic tools and delegates every other
// request to the rest of the pipeline.
type Middleware struct {
	name     string
	defs     []definition
	requires []string
}

func newMiddleware(name string, requires []string) *Middleware {
	return &Middleware{name: name, requires: requires}
}

// addTool declares a tool. The schema must resolve; a failure is a
// programming error in the middleware's constructor.
func (m *Middleware) addTool(t *mcp.Tool, run ToolFunc) {
	resolved, err := t.InputSchema.Resolve(nil)
	if err != nil {
		panic(fmt.Sprintf("middleware %s: resolving schema for tool %q: %v", m.name, t.Name, err))
	}
	m.defs = append(m.defs, definition{tool: t, resolved: resolved, run: run})
}

func (m *Middleware) tools() []*mcp.Tool {
	out := make([]*mcp.Tool, len(m.defs))
	for i, d := range m.defs {
		out[i] = d.tool
	}
	return out
}

// DeclaredTools lists the middleware's own tool names, for [chain.Verify].
func (m *Middleware) DeclaredTools() []string {
	names := make([]string, len(m.defs))
	for i, d := range m.defs {
		names[i] = d.tool.Name
	}
	return names
}

// RequiredTools lists the downstream tools the middleware's computations
// invoke, for [chain.Verify].
func (m *Middleware) RequiredTools() []string {
	return append([]string{}, m.requires...)
}

// HandleRequest implements [chain.Handler].
func (m *Middleware) HandleRequest(ctx context.Context, id jsonrpc.ID, req mcp.Request, down chain.Downstream) (mcp.Result, error) {
	switch r := req.(type) {
	case *mcp.ListToolsRequest:
		return chain.MergeTools(ctx, id, r.Params, down, m.tools()), nil
	case *mcp.CallToolRequest:
		for _, d := range m.defs {
			if d.tool.Name == r.Params.Name {
				if err := validateArgs(d.resolved, r.Params.Arguments); err != nil {
					return mcp.NewErrorResult("invalid arguments for %q: %v", d.tool.Name, err), nil
				}
				return d.run(ctx, id, r.Params.Arguments, down), nil
			}
		}
		return down.HandleRequest(ctx, id, req)
	default:
		return down.HandleRequest(ctx, id, req)
	}
}

// HandleNotification implements [chain.Handler] as pure pass-through.
func (m *Middleware) HandleNotification(ctx context.Context, n *mcp.Notification, down chain.Downstream) {
	down.HandleNotification(ctx, n)
}

// HandleResponse implements [chain.Handler] as pure pass-through.
func (m *Middleware) HandleResponse(ctx context.Context, id jsonrpc.ID, res mcp.Result, err error, down chain.Downstream) {
	down.HandleResponse(ctx, id, res, err)
}

func validateArgs(resolved *jsonschema.Resolved, args json.RawMessage) error {
	v := make(map[string]any)
	if len(args) > 0 {
		if err := internaljson.Unmarshal(args, &v); err != nil {
			return fmt.Errorf("unmarshaling arguments: %w", err)
		}
	}
	return resolved.Validate(&v)
}

// unmarshalArgs decodes already-validated arguments into a typed struct.
func unmarshalArgs(args json.RawMessage, v any) error {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}
	if err := internaljson.Unmarshal(args, v); err != nil {
		return fmt.Errorf("invalid JSON arguments: %w", err)
	}
	return nil
}

// callTool issues one nested tools/call into down and returns its result.
// args may be any JSON-marshalable value, including a json.RawMessage to
// forward a payload verbatim.
func callTool(ctx context.Context, id jsonrpc.ID, down chain.Downstream, name string, args any) (*mcp.CallToolResult, error) {
	raw, err := internaljson.Marshal(args)
	if err != nil {
		return nil, fmt.Errorf("encoding arguments for tool %q: %w", name, err)
	}
	req := &mcp.CallToolRequest{Params: &mcp.CallToolParamsRaw{Name: name, Arguments: raw}}
	res, err := down.HandleRequest(ctx, id, req)
	if err != nil {
		if jsonrpc.IsMethodNotFound(err) {
			return nil, fmt.Errorf("tool %q not found: a provider for it must come after this handler in the pipeline", name)
		}
		return nil, fmt.Errorf("calling tool %q: %w", name, err)
	}
	ctr, ok := res.(*mcp.CallToolResult)
	if !ok {
		return nil, fmt.Errorf("unexpected response type calling tool %q", name)
	}
	return ctr, nil
}

// callNumber issues a nested tools/call and extracts a scalar under the
// numeric-result contract: the error flag unset, at least one content block,
// the first block inline text, and the text parseable as a float. Any
// violation is a hard failure for the whole synthetic computation.
func callNumber(ctx context.Context, id jsonrpc.ID, down chain.Downstream, name string, args any) (float64, error) {
	res, err := callTool(ctx, id, down, name, args)
	if err != nil {
		return 0, err
	}
	return numberFromResult(name, res)
}

// callText issues a nested tools/call and returns the text of the first
// content block, for tools whose results are JSON-object text (the
// geospatial tools).
func callText(ctx context.Context, id jsonrpc.ID, down chain.Downstream, name string, args any) (string, error) {
	res, err := callTool(ctx, id, down, name, args)
	if err != nil {
		return "", err
	}
	return textFromResult(name, res)
}

func numberFromResult(name string, res *mcp.CallToolResult) (float64, error) {
	text, err := textFromResult(name, res)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0, fmt.Errorf("result of tool %q is not a number: %q", name, text)
	}
	return v, nil
}

func textFromResult(name string, res *mcp.CallToolResult) (string, error) {
	if res.IsError {
		return "", fmt.Errorf("tool %q returned an error: %s", name, firstText(res))
	}
	if len(res.Content) == 0 {
		return "", fmt.Errorf("tool %q returned no content", name)
	}
	tc, ok := res.Content[0].(*mcp.TextContent)
	if !ok {
		return "", fmt.Errorf("tool %q returned non-text content", name)
	}
	return tc.Text, nil
}

func firstText(res *mcp.CallToolResult) string {
	for _, c := range res.Content {
		if tc, ok := c.(*mcp.TextContent); ok {
			return tc.Text
		}
	}
	return "(no diagnostic text)"
}
