// Copyright 2025 The MCP Chain Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package middleware

import (
	"context"
	"encoding/json"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/mcpchain/mcpchain/chain"
	"github.com/mcpchain/mcpchain/jsonrpc"
	"github.com/mcpchain/mcpchain/mcp"
)

func numbersSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"numbers": {
				Type:        "array",
				Items:       &jsonschema.Schema{Type: "number"},
				Description: "Array of numbers",
			},
		},
		Required: []string{"numbers"},
	}
}

// NewVariance returns the middleware for the "variance" tool: the mean is a
// nested call, the squared deviations and their average are computed
// locally.
func NewVariance() *Middleware {
	m := newMiddleware("variance", []string{"mean"})
	m.addTool(&mcp.Tool{
		Name:        "variance",
		Title:       "Variance",
		Description: "Calculate the variance of an array of numbers: Σ(x - μ)² / n",
		InputSchema: numbersSchema(),
	}, runVariance)
	return m
}

func runVariance(ctx context.Context, id jsonrpc.ID, args json.RawMessage, down chain.Downstream) *mcp.CallToolResult {
	var in struct {
		Numbers []float64 `json:"numbers"`
	}
	if err := unmarshalArgs(args, &in); err != nil {
		return mcp.NewErrorResult("%v", err)
	}
	if len(in.Numbers) == 0 {
		return mcp.NewErrorResult("Error: Cannot calculate variance of empty array")
	}

	mean, err := callNumber(ctx, id, down, "mean", map[string]any{"numbers": in.Numbers})
	if err != nil {
		return mcp.NewErrorResult("%v", err)
	}

	var sum float64
	for _, n := range in.Numbers {
		diff := n - mean
		sum += diff * diff
	}
	variance := sum / float64(len(in.Numbers))

	return mcp.NewTextResult(mcp.FormatNumber(variance))
}
