// Copyright 2025 The MCP Chain Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package chain

import (
	"context"
	"errors"

	"golang.org/x/time/rate"

	"github.com/mcpchain/mcpchain/jsonrpc"
	"github.com/mcpchain/mcpchain/mcp"
)

// ErrRateLimited is returned for tools/call requests rejected by a
// rate-limiting handler.
var ErrRateLimited = errors.New("rate limit exceeded")

// NewRateLimitingHandler returns a handler that applies limiter to
// tools/call requests before delegating. Other request kinds, notifications
// and responses pass through unmetered. Place it ahead of the tool handlers
// it should protect; like any handler, it never sees the nested calls issued
// below it.
func NewRateLimitingHandler(limiter *rate.Limiter) Handler {
	return &rateLimitingHandler{limiter: limiter}
}

type rateLimitingHandler struct {
	limiter *rate.Limiter
}

func (h *rateLimitingHandler) HandleRequest(ctx context.Context, id jsonrpc.ID, req mcp.Request, down Downstream) (mcp.Result, error) {
	if _, ok := req.(*mcp.CallToolRequest); ok && !h.limiter.Allow() {
		return nil, ErrRateLimited
	}
	return down.HandleRequest(ctx, id, req)
}

func (h *rateLimitingHandler) HandleNotification(ctx context.Context, n *mcp.Notification, down Downstream) {
	down.HandleNotification(ctx, n)
}

func (h *rateLimitingHandler) HandleResponse(ctx context.Context, id jsonrpc.ID, res mcp.Result, err error, down Downstream) {
	down.HandleResponse(ctx, id, res, err)
}
