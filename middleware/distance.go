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

// NewDistanceCalculator returns the middleware for the "distance" tool,
// which computes the Euclidean distance between two points in 2D space by
// composing the square, add and square_root tools.
func NewDistanceCalculator() *Middleware {
	m := newMiddleware("distance-calculator", []string{"square", "add", "square_root"})
	m.addTool(&mcp.Tool{
		Name:        "distance",
		Title:       "2D Distance Calculator",
		Description: "Calculate Euclidean distance between two points: d = √((x2-x1)² + (y2-y1)²)",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"x1": {Type: "number", Description: "X coordinate of first point"},
				"y1": {Type: "number", Description: "Y coordinate of first point"},
				"x2": {Type: "number", Description: "X coordinate of second point"},
				"y2": {Type: "number", Description: "Y coordinate of second point"},
			},
			Required: []string{"x1", "y1", "x2", "y2"},
		},
	}, runDistance)
	return m
}

func runDistance(ctx context.Context, id jsonrpc.ID, args json.RawMessage, down chain.Downstream) *mcp.CallToolResult {
	var in struct {
		X1 float64 `json:"x1"`
		Y1 float64 `json:"y1"`
		X2 float64 `json:"x2"`
		Y2 float64 `json:"y2"`
	}
	if err := unmarshalArgs(args, &in); err != nil {
		return mcp.NewErrorResult("%v", err)
	}

	// The deltas are computed locally; everything from the squares on is
	// composed from downstream tools.
	dx := in.X2 - in.X1
	dy := in.Y2 - in.Y1

	dxSquared, err := callNumber(ctx, id, down, "square", map[string]float64{"x": dx})
	if err != nil {
		return mcp.NewErrorResult("%v", err)
	}
	dySquared, err := callNumber(ctx, id, down, "square", map[string]float64{"x": dy})
	if err != nil {
		return mcp.NewErrorResult("%v", err)
	}
	sum, err := callNumber(ctx, id, down, "add", map[string]float64{"a": dxSquared, "b": dySquared})
	if err != nil {
		return mcp.NewErrorResult("%v", err)
	}
	dist, err := callNumber(ctx, id, down, "square_root", map[string]float64{"x": sum})
	if err != nil {
		return mcp.NewErrorResult("%v", err)
	}
	return mcp.NewTextResult(mcp.FormatNumber(dist))
}
