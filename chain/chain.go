// Copyright 2025 The MCP Chain Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package chain implements sequential delegation between independently
// authored request handlers.
//
// A pipeline is a fixed, linearly ordered sequence of handlers assembled
// once at composition time. Each handler either answers a request itself or
// forwards it, unmodified in identity, to the remainder of the sequence. A
// handler's position determines which tools it can successfully depend on:
// only tools declared by handlers after it. That ordering is a documented
// contract, not an enforced invariant — violating it surfaces at call time
// as a method-not-found error (see [Verify] for the opt-in check).
package chain

import (
	"context"
	"fmt"

	"github.com/mcpchain/mcpchain/jsonrpc"
	"github.com/mcpchain/mcpchain/mcp"
)

// A Handler is one stage of the pipeline. Implementations must not retain
// req, res or the downstream cursor beyond the call.
//
// HandleRequest answers the request or delegates it to down, passing ctx and
// id through unchanged. HandleNotification and HandleResponse are pure
// pass-through in every handler this package knows about; they exist so a
// pipeline can sit between a client and a peer without losing traffic.
type Handler interface {
	HandleRequest(ctx context.Context, id jsonrpc.ID, req mcp.Request, down Downstream) (mcp.Result, error)
	HandleNotification(ctx context.Context, n *mcp.Notification, down Downstream)
	HandleResponse(ctx context.Context, id jsonrpc.ID, res mcp.Result, err error, down Downstream)
}

// A Chain is an immutable, ordered handler pipeline.
type Chain struct {
	handlers []Handler
}

// New assembles a pipeline from handlers in head-to-tail order.
func New(handlers ...Handler) *Chain {
	c := &Chain{handlers: make([]Handler, len(handlers))}
	copy(c.handlers, handlers)
	return c
}

// Head returns the cursor for the whole pipeline: the system's entry point.
func (c *Chain) Head() Downstream {
	return Downstream{c: c}
}

// Handlers returns the pipeline's handlers in order.
func (c *Chain) Handlers() []Handler {
	out := make([]Handler, len(c.handlers))
	copy(out, c.handlers)
	return out
}

// A Downstream is a cursor over the remainder of a pipeline. The zero
// Downstream is the terminal sentinel: it reports an empty tool list for
// tools/list and method-not-found for everything else.
//
// Each handler receives the cursor positioned just past itself, so a
// middleware's nested calls can never re-enter the middleware or anything
// before it.
type Downstream struct {
	c *Chain
	i int
}

// HandleRequest dispatches req to the next handler, or to the terminal
// sentinel when the cursor has passed the end of the pipeline.
func (d Downstream) HandleRequest(ctx context.Context, id jsonrpc.ID, req mcp.Request) (mcp.Result, error) {
	if d.c == nil || d.i >= len(d.c.handlers) {
		return terminalRequest(req)
	}
	return d.c.handlers[d.i].HandleRequest(ctx, id, req, Downstream{c: d.c, i: d.i + 1})
}

// HandleNotification forwards n to the next handler. Notifications falling
// off the end of the pipeline are dropped.
func (d Downstream) HandleNotification(ctx context.Context, n *mcp.Notification) {
	if d.c == nil || d.i >= len(d.c.handlers) {
		return
	}
	d.c.handlers[d.i].HandleNotification(ctx, n, Downstream{c: d.c, i: d.i + 1})
}

// HandleResponse forwards a response for an outbound request to the next
// handler. Responses falling off the end of the pipeline are dropped.
func (d Downstream) HandleResponse(ctx context.Context, id jsonrpc.ID, res mcp.Result, err error) {
	if d.c == nil || d.i >= len(d.c.handlers) {
		return
	}
	d.c.handlers[d.i].HandleResponse(ctx, id, res, err, Downstream{c: d.c, i: d.i + 1})
}

func terminalRequest(req mcp.Request) (mcp.Result, error) {
	switch r := req.(type) {
	case *mcp.ListToolsRequest:
		return &mcp.ListToolsResult{Tools: []*mcp.Tool{}}, nil
	case *mcp.CallToolRequest:
		return nil, fmt.Errorf("%w: unknown tool %q", jsonrpc.ErrMethodNotFound, r.Params.Name)
	default:
		return nil, fmt.Errorf("%w: %s", jsonrpc.ErrMethodNotFound, req.Method())
	}
}

// MergeTools implements the tools/list merge: the downstream list first,
// with own appended after, so tools declared closest to the terminal end of
// the pipeline appear first in the final list.
//
// A tools/list call never fails because a downstream segment lacks tool
// support: method-not-found, any other downstream error, and a malformed
// downstream response all collapse to "no usable downstream tools", and the
// handler still reports its own.
func MergeTools(ctx context.Context, id jsonrpc.ID, params *mcp.ListToolsParams, down Downstream, own []*mcp.Tool) *mcp.ListToolsResult {
	res, err := down.HandleRequest(ctx, id, &mcp.ListToolsRequest{Params: params})
	if err == nil {
		if lt, ok := res.(*mcp.ListToolsResult); ok {
			lt.Tools = append(lt.Tools, own...)
			return lt
		}
	}
	return &mcp.ListToolsResult{Tools: append([]*mcp.Tool{}, own...)}
}
