// Copyright 2025 The MCP Chain Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package middleware

import (
	"context"
	"encoding/json"

	"github.com/mcpchain/mcpchain/chain"
	"github.com/mcpchain/mcpchain/jsonrpc"
	"github.com/mcpchain/mcpchain/mcp"
)

// NewStdDev returns the middleware for the "standard_deviation" tool and its
// "stddev" alias.
//
// This is the deepest composition in the default pipeline: the nested
// variance call lands on another middleware, which itself nests a mean call
// before returning. The argument payload is forwarded to variance verbatim.
func NewStdDev() *Middleware {
	m := newMiddleware("stddev", []string{"variance", "square_root"})
	m.addTool(&mcp.Tool{
		Name:        "standard_deviation",
		Title:       "Standard Deviation",
		Description: "Calculate the standard deviation (σ) of an array of numbers: √(variance)",
		InputSchema: numbersSchema(),
	}, runStdDev)
	m.addTool(&mcp.Tool{
		Name:        "stddev",
		Title:       "StdDev (alias)",
		Description: "Alias for standard_deviation",
		InputSchema: numbersSchema(),
	}, runStdDev)
	return m
}

func runStdDev(ctx context.Context, id jsonrpc.ID, args json.RawMessage, down chain.Downstream) *mcp.CallToolResult {
	variance, err := callNumber(ctx, id, down, "variance", args)
	if err != nil {
		return mcp.NewErrorResult("%v", err)
	}
	stddev, err := callNumber(ctx, id, down, "square_root", map[string]float64{"x": variance})
	if err != nil {
		return mcp.NewErrorResult("%v", err)
	}
	return mcp.NewTextResult(mcp.FormatNumber(stddev))
}
