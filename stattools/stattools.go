// Copyright 2025 The MCP Chain Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package stattools provides the statistics leaf tools: mean, sum and count.
package stattools

import (
	"context"
	"encoding/json"

	"github.com/google/jsonschema-go/jsonschema"

	internaljson "github.com/mcpchain/mcpchain/internal/json"
	"github.com/mcpchain/mcpchain/mcp"
)

// Provider is the statistics tool provider.
type Provider struct {
	tools []*mcp.Tool
}

// New returns the statistics provider with its fixed tool set.
func New() *Provider {
	numbers := func(name, title, desc string) *mcp.Tool {
		return &mcp.Tool{
			Name:        name,
			Title:       title,
			Description: desc,
			InputSchema: &jsonschema.Schema{
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"numbers": {
						Type:        "array",
						Items:       &jsonschema.Schema{Type: "number"},
						Description: "Array of numbers",
					},
				},
				Required: []string{"numbers"},
			},
		}
	}
	return &Provider{tools: []*mcp.Tool{
		numbers("mean", "Mean", "Calculate the arithmetic mean (average) of an array of numbers"),
		numbers("sum", "Sum", "Calculate the sum of an array of numbers"),
		numbers("count", "Count", "Count the elements of an array of numbers"),
	}}
}

// Tools implements chain.ToolProvider.
func (p *Provider) Tools() []*mcp.Tool {
	return p.tools
}

// Call implements chain.ToolProvider.
func (p *Provider) Call(_ context.Context, params *mcp.CallToolParamsRaw) (*mcp.CallToolResult, bool) {
	switch params.Name {
	case "mean":
		return mean(params.Arguments), true
	case "sum":
		return sum(params.Arguments), true
	case "count":
		return count(params.Arguments), true
	}
	return nil, false
}

func mean(args json.RawMessage) *mcp.CallToolResult {
	numbers, res := parseNumbers(args)
	if res != nil {
		return res
	}
	if len(numbers) == 0 {
		return mcp.NewErrorResult("Error: Cannot calculate mean of empty array")
	}
	var total float64
	for _, n := range numbers {
		total += n
	}
	return mcp.NewTextResult(mcp.FormatNumber(total / float64(len(numbers))))
}

func sum(args json.RawMessage) *mcp.CallToolResult {
	numbers, res := parseNumbers(args)
	if res != nil {
		return res
	}
	var total float64
	for _, n := range numbers {
		total += n
	}
	return mcp.NewTextResult(mcp.FormatNumber(total))
}

func count(args json.RawMessage) *mcp.CallToolResult {
	numbers, res := parseNumbers(args)
	if res != nil {
		return res
	}
	return mcp.NewTextResult(mcp.FormatNumber(float64(len(numbers))))
}

func parseNumbers(args json.RawMessage) ([]float64, *mcp.CallToolResult) {
	if len(args) == 0 {
		return nil, mcp.NewErrorResult("missing arguments")
	}
	var in struct {
		Numbers *[]float64 `json:"numbers"`
	}
	if err := internaljson.Unmarshal(args, &in); err != nil {
		return nil, mcp.NewErrorResult("invalid arguments: %v", err)
	}
	if in.Numbers == nil {
		return nil, mcp.NewErrorResult("missing or invalid parameter %q", "numbers")
	}
	return *in.Numbers, nil
}
