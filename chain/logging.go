// Copyright 2025 The MCP Chain Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package chain

import (
	"context"
	"log/slog"
	"time"

	"github.com/mcpchain/mcpchain/jsonrpc"
	"github.com/mcpchain/mcpchain/mcp"
)

// NewLoggingHandler returns a handler that owns no tools: it logs every
// request flowing past it, then delegates. Nested calls enter the pipeline
// past their issuer, so a logging handler placed at the head observes only
// top-level requests, not the synthetic calls issued below it.
func NewLoggingHandler(logger *slog.Logger) Handler {
	return &loggingHandler{logger: logger}
}

type loggingHandler struct {
	logger *slog.Logger
}

func (h *loggingHandler) HandleRequest(ctx context.Context, id jsonrpc.ID, req mcp.Request, down Downstream) (mcp.Result, error) {
	start := time.Now()
	h.logger.Info("request started",
		"method", req.Method(),
		"id", id.String(),
	)
	res, err := down.HandleRequest(ctx, id, req)
	duration := time.Since(start)
	if err != nil {
		h.logger.Error("request failed",
			"method", req.Method(),
			"id", id.String(),
			"duration_ms", duration.Milliseconds(),
			"error", err.Error(),
		)
	} else {
		h.logger.Info("request completed",
			"method", req.Method(),
			"id", id.String(),
			"duration_ms", duration.Milliseconds(),
			"has_result", res != nil,
		)
	}
	return res, err
}

func (h *loggingHandler) HandleNotification(ctx context.Context, n *mcp.Notification, down Downstream) {
	h.logger.Debug("notification forwarded", "method", n.Method)
	down.HandleNotification(ctx, n)
}

func (h *loggingHandler) HandleResponse(ctx context.Context, id jsonrpc.ID, res mcp.Result, err error, down Downstream) {
	h.logger.Debug("response forwarded", "id", id.String(), "is_error", err != nil)
	down.HandleResponse(ctx, id, res, err)
}
