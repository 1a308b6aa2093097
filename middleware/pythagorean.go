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

// NewPythagorean returns the middleware for the "pythagorean" tool, which
// computes the hypotenuse of a right triangle. The squares and the final
// root are nested calls; the sum of the squares is computed locally.
func NewPythagorean() *Middleware {
	m := newMiddleware("pythagorean", []string{"square", "square_root"})
	m.addTool(&mcp.Tool{
		Name:        "pythagorean",
		Title:       "Pythagorean Theorem",
		Description: "Calculate the hypotenuse of a right triangle: c = √(a² + b²)",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"a": {Type: "number", Description: "Length of first leg"},
				"b": {Type: "number", Description: "Length of second leg"},
			},
			Required: []string{"a", "b"},
		},
	}, runPythagorean)
	return m
}

func runPythagorean(ctx context.Context, id jsonrpc.ID, args json.RawMessage, down chain.Downstream) *mcp.CallToolResult {
	var in struct {
		A float64 `json:"a"`
		B float64 `json:"b"`
	}
	if err := unmarshalArgs(args, &in); err != nil {
		return mcp.NewErrorResult("%v", err)
	}

	aSquared, err := callNumber(ctx, id, down, "square", map[string]float64{"x": in.A})
	if err != nil {
		return mcp.NewErrorResult("%v", err)
	}
	bSquared, err := callNumber(ctx, id, down, "square", map[string]float64{"x": in.B})
	if err != nil {
		return mcp.NewErrorResult("%v", err)
	}

	sum := aSquared + bSquared

	hypotenuse, err := callNumber(ctx, id, down, "square_root", map[string]float64{"x": sum})
	if err != nil {
		return mcp.NewErrorResult("%v", err)
	}
	return mcp.NewTextResult(mcp.FormatNumber(hypotenuse))
}
