// Copyright 2025 The MCP Chain Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package middleware_test

import (
	"context"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/mcpchain/mcpchain/chain"
	"github.com/mcpchain/mcpchain/jsonrpc"
	"github.com/mcpchain/mcpchain/mathtools"
	"github.com/mcpchain/mcpchain/mcp"
	"github.com/mcpchain/mcpchain/middleware"
	"github.com/mcpchain/mcpchain/stattools"
)

// mathChain assembles the full numeric pipeline: every synthetic tool ahead
// of the leaves it composes with.
func mathChain() *chain.Chain {
	return chain.New(
		middleware.NewDistanceCalculator(),
		middleware.NewPythagorean(),
		middleware.NewStdDev(),
		middleware.NewVariance(),
		chain.NewProviderHandler(stattools.New()),
		chain.NewProviderHandler(mathtools.New()),
	)
}

func callTool(t *testing.T, c *chain.Chain, name string, args any) *mcp.CallToolResult {
	t.Helper()
	raw, err := json.Marshal(args)
	if err != nil {
		t.Fatalf("marshaling arguments: %v", err)
	}
	res, err := c.Head().HandleRequest(context.Background(), jsonrpc.Int64ID(1),
		&mcp.CallToolRequest{Params: &mcp.CallToolParamsRaw{Name: name, Arguments: raw}})
	if err != nil {
		t.Fatalf("tools/call %s failed: %v", name, err)
	}
	ctr, ok := res.(*mcp.CallToolResult)
	if !ok {
		t.Fatalf("tools/call %s returned %T, want *mcp.CallToolResult", name, res)
	}
	return ctr
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) == 0 {
		t.Fatal("result has no content")
	}
	tc, ok := res.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("first content block is %T, want *mcp.TextContent", res.Content[0])
	}
	return tc.Text
}

func resultNumber(t *testing.T, res *mcp.CallToolResult) float64 {
	t.Helper()
	if res.IsError {
		t.Fatalf("tool returned error: %s", resultText(t, res))
	}
	v, err := strconv.ParseFloat(resultText(t, res), 64)
	if err != nil {
		t.Fatalf("result %q is not a number: %v", resultText(t, res), err)
	}
	return v
}

func TestDistanceComposition(t *testing.T) {
	// 3-4-5 triangle: square(3)=9, square(4)=16, add=25, square_root=5.
	res := callTool(t, mathChain(), "distance",
		map[string]float64{"x1": 0, "y1": 0, "x2": 3, "y2": 4})
	if got := resultText(t, res); got != "5" {
		t.Errorf("distance(0,0,3,4) = %q, want %q", got, "5")
	}
}

func TestPythagoreanComposition(t *testing.T) {
	res := callTool(t, mathChain(), "pythagorean", map[string]float64{"a": 3, "b": 4})
	if got := resultText(t, res); got != "5" {
		t.Errorf("pythagorean(3,4) = %q, want %q", got, "5")
	}
}

func TestVarianceComposition(t *testing.T) {
	res := callTool(t, mathChain(), "variance",
		map[string]any{"numbers": []float64{2, 4, 4, 4, 5, 5, 7, 9}})
	if got := resultText(t, res); got != "4" {
		t.Errorf("variance = %q, want %q", got, "4")
	}
}

func TestStdDevMultiLevelComposition(t *testing.T) {
	// stddev nests variance, which itself nests mean: three levels of
	// synthetic composition over the same pipeline.
	for _, name := range []string{"standard_deviation", "stddev"} {
		res := callTool(t, mathChain(), name,
			map[string]any{"numbers": []float64{2, 4, 4, 4, 5, 5, 7, 9}})
		if got := resultText(t, res); got != "2" {
			t.Errorf("%s = %q, want %q", name, got, "2")
		}
	}
}

func TestCompositionMatchesDirectFormula(t *testing.T) {
	const eps = 1e-9
	c := mathChain()

	res := callTool(t, c, "distance",
		map[string]float64{"x1": 1.5, "y1": -2.25, "x2": 7.75, "y2": 3.5})
	want := math.Hypot(7.75-1.5, 3.5-(-2.25))
	if got := resultNumber(t, res); math.Abs(got-want) > eps {
		t.Errorf("distance = %v, want %v", got, want)
	}

	res = callTool(t, c, "pythagorean", map[string]float64{"a": 5.5, "b": 12.25})
	want = math.Hypot(5.5, 12.25)
	if got := resultNumber(t, res); math.Abs(got-want) > eps {
		t.Errorf("pythagorean = %v, want %v", got, want)
	}
}

func TestSyntheticToolIdempotence(t *testing.T) {
	c := mathChain()
	args := map[string]any{"numbers": []float64{1, 2, 3, 4, 5, 6, 7, 8}}
	first := resultText(t, callTool(t, c, "stddev", args))
	second := resultText(t, callTool(t, c, "stddev", args))
	if first != second {
		t.Errorf("stddev not idempotent: %q then %q", first, second)
	}
}

func TestMissingDependencyIsToolLevelError(t *testing.T) {
	// No math provider: the nested square call cannot resolve. The failure
	// must be a tool-level error naming the missing tool, not a protocol
	// error.
	c := chain.New(middleware.NewPythagorean())
	res := callTool(t, c, "pythagorean", map[string]float64{"a": 3, "b": 4})
	if !res.IsError {
		t.Fatal("pythagorean without leaves succeeded, want tool-level error")
	}
	text := resultText(t, res)
	if !strings.Contains(text, `"square"`) {
		t.Errorf("error %q does not name the missing tool", text)
	}
	if !strings.Contains(text, "after this handler") {
		t.Errorf("error %q does not state the ordering requirement", text)
	}
}

func TestNestedDomainErrorAbortsComputation(t *testing.T) {
	// variance of an empty array fails inside stddev; the whole synthetic
	// computation aborts with no partial numeric result.
	res := callTool(t, mathChain(), "stddev", map[string]any{"numbers": []float64{}})
	if !res.IsError {
		t.Fatal("stddev of empty array succeeded, want error")
	}
	text := resultText(t, res)
	if !strings.Contains(text, `"variance"`) {
		t.Errorf("error %q does not name the failing nested tool", text)
	}
	if !strings.Contains(text, "Cannot calculate variance of empty array") {
		t.Errorf("error %q does not carry the underlying diagnostic", text)
	}
}

func TestInvalidArgumentsRejectedBySchema(t *testing.T) {
	// Wrong argument type: schema validation fails before any nested call.
	res := callTool(t, mathChain(), "pythagorean", map[string]any{"a": "three", "b": 4})
	if !res.IsError {
		t.Fatal("pythagorean with string argument succeeded, want error")
	}
	if text := resultText(t, res); !strings.Contains(text, "invalid arguments") {
		t.Errorf("error %q is not an argument validation failure", text)
	}
}

func TestUnknownToolDelegatesPastMiddleware(t *testing.T) {
	c := mathChain()
	res := callTool(t, c, "add", map[string]float64{"a": 2, "b": 2})
	if got := resultText(t, res); got != "4" {
		t.Errorf("add(2,2) through the full pipeline = %q, want %q", got, "4")
	}
}

func TestToolsListMergeThroughMiddleware(t *testing.T) {
	c := chain.New(
		middleware.NewVariance(),
		chain.NewProviderHandler(stattools.New()),
	)
	res, err := c.Head().HandleRequest(context.Background(), jsonrpc.Int64ID(1),
		&mcp.ListToolsRequest{Params: &mcp.ListToolsParams{}})
	if err != nil {
		t.Fatalf("tools/list failed: %v", err)
	}
	lt := res.(*mcp.ListToolsResult)
	var names []string
	for _, tool := range lt.Tools {
		names = append(names, tool.Name)
	}
	// Leaf tools first, the middleware's own tool appended last.
	want := []string{"mean", "sum", "count", "variance"}
	if len(names) != len(want) {
		t.Fatalf("tool names = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("tool names = %v, want %v", names, want)
		}
	}
}
