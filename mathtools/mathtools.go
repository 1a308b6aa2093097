// Copyright 2025 The MCP Chain Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package mathtools provides the arithmetic leaf tools: add, subtract,
// multiply, divide, square, square_root and power.
//
// Results are single-text-block numbers. Argument and domain failures
// (division by zero, negative square root) are tool-level error results,
// never protocol errors.
package mathtools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/google/jsonschema-go/jsonschema"

	internaljson "github.com/mcpchain/mcpchain/internal/json"
	"github.com/mcpchain/mcpchain/mcp"
)

// Provider is the math tool provider. Adapt it into a pipeline handler with
// chain.NewProviderHandler.
type Provider struct {
	tools []*mcp.Tool
}

// New returns the math provider with its fixed tool set.
func New() *Provider {
	binary := func(name, title, desc, aDesc, bDesc string) *mcp.Tool {
		return &mcp.Tool{
			Name:        name,
			Title:       title,
			Description: desc,
			InputSchema: &jsonschema.Schema{
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"a": {Type: "number", Description: aDesc},
					"b": {Type: "number", Description: bDesc},
				},
				Required: []string{"a", "b"},
			},
		}
	}
	unary := func(name, title, desc, xDesc string) *mcp.Tool {
		return &mcp.Tool{
			Name:        name,
			Title:       title,
			Description: desc,
			InputSchema: &jsonschema.Schema{
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"x": {Type: "number", Description: xDesc},
				},
				Required: []string{"x"},
			},
		}
	}
	return &Provider{tools: []*mcp.Tool{
		binary("add", "Add", "Add two numbers together", "First number", "Second number"),
		binary("subtract", "Subtract", "Subtract b from a", "Number to subtract from", "Number to subtract"),
		binary("multiply", "Multiply", "Multiply two numbers", "First number", "Second number"),
		binary("divide", "Divide", "Divide a by b", "Dividend", "Divisor"),
		unary("square", "Square", "Calculate the square of a number (x²)", "Number to square"),
		unary("square_root", "Square Root", "Calculate the square root of a number (√x)", "Number to take square root of"),
		{
			Name:        "power",
			Title:       "Power",
			Description: "Calculate base raised to exponent (base^exponent)",
			InputSchema: &jsonschema.Schema{
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"base":     {Type: "number", Description: "Base number"},
					"exponent": {Type: "number", Description: "Exponent"},
				},
				Required: []string{"base", "exponent"},
			},
		},
	}}
}

// Tools implements chain.ToolProvider.
func (p *Provider) Tools() []*mcp.Tool {
	return p.tools
}

// Call implements chain.ToolProvider.
func (p *Provider) Call(_ context.Context, params *mcp.CallToolParamsRaw) (*mcp.CallToolResult, bool) {
	switch params.Name {
	case "add":
		return binaryOp(params.Arguments, func(a, b float64) float64 { return a + b }), true
	case "subtract":
		return binaryOp(params.Arguments, func(a, b float64) float64 { return a - b }), true
	case "multiply":
		return binaryOp(params.Arguments, func(a, b float64) float64 { return a * b }), true
	case "divide":
		return divide(params.Arguments), true
	case "square":
		return square(params.Arguments), true
	case "square_root":
		return squareRoot(params.Arguments), true
	case "power":
		return power(params.Arguments), true
	}
	return nil, false
}

func binaryOp(args json.RawMessage, op func(a, b float64) float64) *mcp.CallToolResult {
	a, b, err := parsePair(args, "a", "b")
	if err != nil {
		return mcp.NewErrorResult("%v", err)
	}
	return mcp.NewTextResult(mcp.FormatNumber(op(a, b)))
}

func divide(args json.RawMessage) *mcp.CallToolResult {
	a, b, err := parsePair(args, "a", "b")
	if err != nil {
		return mcp.NewErrorResult("%v", err)
	}
	if b == 0 {
		return mcp.NewErrorResult("Error: Division by zero")
	}
	return mcp.NewTextResult(mcp.FormatNumber(a / b))
}

func square(args json.RawMessage) *mcp.CallToolResult {
	x, err := parseSingle(args, "x")
	if err != nil {
		return mcp.NewErrorResult("%v", err)
	}
	return mcp.NewTextResult(mcp.FormatNumber(x * x))
}

func squareRoot(args json.RawMessage) *mcp.CallToolResult {
	x, err := parseSingle(args, "x")
	if err != nil {
		return mcp.NewErrorResult("%v", err)
	}
	if x < 0 {
		return mcp.NewErrorResult("Error: Cannot take square root of negative number")
	}
	return mcp.NewTextResult(mcp.FormatNumber(math.Sqrt(x)))
}

func power(args json.RawMessage) *mcp.CallToolResult {
	base, exponent, err := parsePair(args, "base", "exponent")
	if err != nil {
		return mcp.NewErrorResult("%v", err)
	}
	return mcp.NewTextResult(mcp.FormatNumber(math.Pow(base, exponent)))
}

var errMissingArguments = errors.New("missing arguments")

func errInvalidArguments(err error) error {
	return fmt.Errorf("invalid arguments: %v", err)
}

func errMissingParam(name string) error {
	return fmt.Errorf("missing or invalid parameter %q", name)
}

func parsePair(args json.RawMessage, aName, bName string) (float64, float64, error) {
	fields, err := parseNumberFields(args)
	if err != nil {
		return 0, 0, err
	}
	a, err := fieldValue(fields, aName)
	if err != nil {
		return 0, 0, err
	}
	b, err := fieldValue(fields, bName)
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

func parseSingle(args json.RawMessage, name string) (float64, error) {
	fields, err := parseNumberFields(args)
	if err != nil {
		return 0, err
	}
	return fieldValue(fields, name)
}

func parseNumberFields(args json.RawMessage) (map[string]json.RawMessage, error) {
	if len(args) == 0 {
		return nil, errMissingArguments
	}
	var fields map[string]json.RawMessage
	if err := internaljson.Unmarshal(args, &fields); err != nil {
		return nil, errInvalidArguments(err)
	}
	return fields, nil
}

func fieldValue(fields map[string]json.RawMessage, name string) (float64, error) {
	raw, ok := fields[name]
	if !ok {
		return 0, errMissingParam(name)
	}
	var v float64
	if err := internaljson.Unmarshal(raw, &v); err != nil {
		return 0, errMissingParam(name)
	}
	return v, nil
}
