// Copyright 2025 The MCP Chain Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package chain

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/jsonschema-go/jsonschema"

	"github.com/mcpchain/mcpchain/jsonrpc"
	"github.com/mcpchain/mcpchain/mcp"
)

// fakeProvider answers a single tool with a fixed text result.
type fakeProvider struct {
	tool *mcp.Tool
	text string
}

func newFakeProvider(name, text string) *fakeProvider {
	return &fakeProvider{
		tool: &mcp.Tool{Name: name, InputSchema: &jsonschema.Schema{Type: "object"}},
		text: text,
	}
}

func (p *fakeProvider) Tools() []*mcp.Tool { return []*mcp.Tool{p.tool} }

func (p *fakeProvider) Call(_ context.Context, params *mcp.CallToolParamsRaw) (*mcp.CallToolResult, bool) {
	if params.Name != p.tool.Name {
		return nil, false
	}
	return mcp.NewTextResult(p.text), true
}

func toolNames(res mcp.Result) []string {
	lt, ok := res.(*mcp.ListToolsResult)
	if !ok {
		return nil
	}
	names := make([]string, len(lt.Tools))
	for i, t := range lt.Tools {
		names[i] = t.Name
	}
	return names
}

func TestListToolsMergeOrder(t *testing.T) {
	// Three handlers, one tool each. The merged list is terminal-first:
	// the tool closest to the end of the pipeline comes first.
	c := New(
		NewProviderHandler(newFakeProvider("alpha", "a")),
		NewProviderHandler(newFakeProvider("beta", "b")),
		NewProviderHandler(newFakeProvider("gamma", "c")),
	)
	res, err := c.Head().HandleRequest(context.Background(), jsonrpc.Int64ID(1),
		&mcp.ListToolsRequest{Params: &mcp.ListToolsParams{}})
	if err != nil {
		t.Fatalf("tools/list failed: %v", err)
	}
	want := []string{"gamma", "beta", "alpha"}
	if diff := cmp.Diff(want, toolNames(res)); diff != "" {
		t.Errorf("merged tool order mismatch (-want +got):\n%s", diff)
	}
}

func TestTerminalListTools(t *testing.T) {
	var zero Downstream
	res, err := zero.HandleRequest(context.Background(), jsonrpc.Int64ID(1),
		&mcp.ListToolsRequest{Params: &mcp.ListToolsParams{}})
	if err != nil {
		t.Fatalf("terminal tools/list failed: %v", err)
	}
	lt, ok := res.(*mcp.ListToolsResult)
	if !ok {
		t.Fatalf("terminal tools/list returned %T, want *mcp.ListToolsResult", res)
	}
	if lt.Tools == nil || len(lt.Tools) != 0 {
		t.Errorf("terminal tool list = %v, want empty non-nil slice", lt.Tools)
	}
}

func TestTerminalCallToolIsMethodNotFound(t *testing.T) {
	var zero Downstream
	_, err := zero.HandleRequest(context.Background(), jsonrpc.Int64ID(1),
		&mcp.CallToolRequest{Params: &mcp.CallToolParamsRaw{Name: "nope"}})
	if err == nil {
		t.Fatal("terminal tools/call succeeded, want error")
	}
	if !jsonrpc.IsMethodNotFound(err) {
		t.Errorf("terminal tools/call error = %v, want method-not-found", err)
	}
}

func TestTerminalUnknownMethodIsMethodNotFound(t *testing.T) {
	var zero Downstream
	_, err := zero.HandleRequest(context.Background(), jsonrpc.Int64ID(1),
		&mcp.OpaqueRequest{RequestMethod: "resources/list"})
	if !jsonrpc.IsMethodNotFound(err) {
		t.Errorf("terminal opaque request error = %v, want method-not-found", err)
	}
}

func TestCallDelegatesToFirstOwner(t *testing.T) {
	// Two providers declare the same tool name; dispatch stops at the first.
	c := New(
		NewProviderHandler(newFakeProvider("dup", "first")),
		NewProviderHandler(newFakeProvider("dup", "second")),
	)
	res, err := c.Head().HandleRequest(context.Background(), jsonrpc.Int64ID(7),
		&mcp.CallToolRequest{Params: &mcp.CallToolParamsRaw{Name: "dup"}})
	if err != nil {
		t.Fatalf("tools/call failed: %v", err)
	}
	ctr := res.(*mcp.CallToolResult)
	if got := ctr.Content[0].(*mcp.TextContent).Text; got != "first" {
		t.Errorf("duplicate tool answered by %q, want %q", got, "first")
	}
}

func TestOpaqueRequestPassesThrough(t *testing.T) {
	// Providers never interpret unknown request kinds; the request falls
	// through every handler to the terminal sentinel.
	c := New(
		NewProviderHandler(newFakeProvider("alpha", "a")),
		NewProviderHandler(newFakeProvider("beta", "b")),
	)
	_, err := c.Head().HandleRequest(context.Background(), jsonrpc.StringID("r1"),
		&mcp.OpaqueRequest{RequestMethod: "prompts/list"})
	if !jsonrpc.IsMethodNotFound(err) {
		t.Errorf("opaque request error = %v, want method-not-found", err)
	}
}

// failingHandler errors on every request.
type failingHandler struct{}

func (failingHandler) HandleRequest(context.Context, jsonrpc.ID, mcp.Request, Downstream) (mcp.Result, error) {
	return nil, errors.New("downstream broken")
}
func (failingHandler) HandleNotification(context.Context, *mcp.Notification, Downstream) {}
func (failingHandler) HandleResponse(context.Context, jsonrpc.ID, mcp.Result, error, Downstream) {
}

func TestMergeToolsLenientOnDownstreamFailure(t *testing.T) {
	// A broken downstream segment must not fail tools/list: the handler
	// still reports its own tools.
	c := New(
		NewProviderHandler(newFakeProvider("mine", "x")),
		failingHandler{},
	)
	res, err := c.Head().HandleRequest(context.Background(), jsonrpc.Int64ID(1),
		&mcp.ListToolsRequest{Params: &mcp.ListToolsParams{}})
	if err != nil {
		t.Fatalf("tools/list failed: %v", err)
	}
	if diff := cmp.Diff([]string{"mine"}, toolNames(res)); diff != "" {
		t.Errorf("lenient merge mismatch (-want +got):\n%s", diff)
	}
}

// recordingHandler records notifications and responses it receives.
type recordingHandler struct {
	notifications []string
	responses     []jsonrpc.ID
}

func (h *recordingHandler) HandleRequest(ctx context.Context, id jsonrpc.ID, req mcp.Request, down Downstream) (mcp.Result, error) {
	return down.HandleRequest(ctx, id, req)
}

func (h *recordingHandler) HandleNotification(ctx context.Context, n *mcp.Notification, down Downstream) {
	h.notifications = append(h.notifications, n.Method)
	down.HandleNotification(ctx, n)
}

func (h *recordingHandler) HandleResponse(ctx context.Context, id jsonrpc.ID, res mcp.Result, err error, down Downstream) {
	h.responses = append(h.responses, id)
	down.HandleResponse(ctx, id, res, err)
}

func TestNotificationAndResponseForwarding(t *testing.T) {
	first := &recordingHandler{}
	second := &recordingHandler{}
	c := New(first, second)

	c.Head().HandleNotification(context.Background(), &mcp.Notification{Method: "notifications/initialized"})
	c.Head().HandleResponse(context.Background(), jsonrpc.Int64ID(42), &mcp.OpaqueResult{}, nil)

	for _, h := range []*recordingHandler{first, second} {
		if diff := cmp.Diff([]string{"notifications/initialized"}, h.notifications); diff != "" {
			t.Errorf("notifications mismatch (-want +got):\n%s", diff)
		}
		if len(h.responses) != 1 || h.responses[0] != jsonrpc.Int64ID(42) {
			t.Errorf("responses = %v, want [42]", h.responses)
		}
	}
}

// requiringHandler declares requirements without providing anything.
type requiringHandler struct {
	failingHandler
	requires []string
}

func (h requiringHandler) RequiredTools() []string { return h.requires }

func TestVerify(t *testing.T) {
	provider := NewProviderHandler(newFakeProvider("square", "x"))

	if err := Verify([]Handler{requiringHandler{requires: []string{"square"}}, provider}); err != nil {
		t.Errorf("Verify failed on a well-ordered pipeline: %v", err)
	}

	// Provider before requirer: the requirement cannot be satisfied.
	err := Verify([]Handler{provider, requiringHandler{requires: []string{"square"}}})
	if err == nil {
		t.Fatal("Verify passed on a misordered pipeline")
	}
	if !strings.Contains(err.Error(), `"square"`) {
		t.Errorf("Verify error %q does not name the missing tool", err)
	}
}
