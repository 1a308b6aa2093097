// Copyright 2025 The MCP Chain Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package geotools

import (
	"context"
	"math"

	"github.com/google/jsonschema-go/jsonschema"

	internaljson "github.com/mcpchain/mcpchain/internal/json"
	"github.com/mcpchain/mcpchain/mcp"
)

// boundaryEpsilon is the tolerance for treating a point as lying on a
// polygon edge.
const boundaryEpsilon = 1e-10

// PointInPolygon is the provider for the "point_in_polygon" tool.
type PointInPolygon struct {
	tools []*mcp.Tool
}

// NewPointInPolygon returns the point-in-polygon provider.
func NewPointInPolygon() *PointInPolygon {
	coord := &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"lat": {Type: "number"},
			"lon": {Type: "number"},
		},
		Required: []string{"lat", "lon"},
	}
	return &PointInPolygon{tools: []*mcp.Tool{{
		Name:  "point_in_polygon",
		Title: "Point in Polygon",
		Description: "Test whether a GPS coordinate lies inside a polygon " +
			"using the ray casting algorithm. Points on an edge are reported as on the boundary.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"point": coord,
				"polygon": {
					Type:        "array",
					Items:       coord,
					MinItems:    jsonschema.Ptr(3),
					Description: "Polygon vertices (at least 3 points)",
				},
			},
			Required: []string{"point", "polygon"},
		},
	}}}
}

// Tools implements chain.ToolProvider.
func (p *PointInPolygon) Tools() []*mcp.Tool {
	return p.tools
}

type geoPoint struct {
	Lat *float64 `json:"lat"`
	Lon *float64 `json:"lon"`
}

// Call implements chain.ToolProvider.
func (p *PointInPolygon) Call(_ context.Context, params *mcp.CallToolParamsRaw) (*mcp.CallToolResult, bool) {
	if params.Name != "point_in_polygon" {
		return nil, false
	}
	if len(params.Arguments) == 0 {
		return mcp.NewErrorResult("missing arguments"), true
	}
	var in struct {
		Point   *geoPoint  `json:"point"`
		Polygon []geoPoint `json:"polygon"`
	}
	if err := internaljson.Unmarshal(params.Arguments, &in); err != nil {
		return mcp.NewErrorResult("invalid arguments: %v", err), true
	}
	if in.Point == nil || in.Point.Lat == nil || in.Point.Lon == nil {
		return mcp.NewErrorResult("missing or invalid parameter %q", "point"), true
	}
	if len(in.Polygon) < 3 {
		return mcp.NewErrorResult("Polygon must have at least 3 vertices"), true
	}
	if err := validateLat("point.lat", *in.Point.Lat); err != nil {
		return mcp.NewErrorResult("%v", err), true
	}
	if err := validateLon("point.lon", *in.Point.Lon); err != nil {
		return mcp.NewErrorResult("%v", err), true
	}
	vertices := make([][2]float64, len(in.Polygon))
	for i, v := range in.Polygon {
		if v.Lat == nil || v.Lon == nil {
			return mcp.NewErrorResult("missing or invalid parameter %q", "polygon"), true
		}
		if err := validateLat("polygon.lat", *v.Lat); err != nil {
			return mcp.NewErrorResult("%v", err), true
		}
		if err := validateLon("polygon.lon", *v.Lon); err != nil {
			return mcp.NewErrorResult("%v", err), true
		}
		// x is longitude, y is latitude.
		vertices[i] = [2]float64{*v.Lon, *v.Lat}
	}

	// The two tests are independent: is_inside is the raw ray-casting
	// verdict, which may be false for a point sitting exactly on an edge.
	x, y := *in.Point.Lon, *in.Point.Lat
	onBoundary := pointOnBoundary(x, y, vertices)
	inside := rayCasting(x, y, vertices)

	return jsonResult(struct {
		IsInside   bool   `json:"is_inside"`
		OnBoundary bool   `json:"on_boundary"`
		Algorithm  string `json:"algorithm_used"`
	}{
		IsInside:   inside,
		OnBoundary: onBoundary,
		Algorithm:  "ray_casting",
	}), true
}

// rayCasting counts crossings of a ray extending in +x from the point.
// An odd count means the point is inside.
func rayCasting(x, y float64, vertices [][2]float64) bool {
	inside := false
	n := len(vertices)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		xi, yi := vertices[i][0], vertices[i][1]
		xj, yj := vertices[j][0], vertices[j][1]
		if (yi > y) != (yj > y) &&
			x < (xj-xi)*(y-yi)/(yj-yi)+xi {
			inside = !inside
		}
	}
	return inside
}

// pointOnBoundary reports whether (x, y) lies on any polygon edge within
// boundaryEpsilon.
func pointOnBoundary(x, y float64, vertices [][2]float64) bool {
	n := len(vertices)
	for i := 0; i < n; i++ {
		x1, y1 := vertices[i][0], vertices[i][1]
		x2, y2 := vertices[(i+1)%n][0], vertices[(i+1)%n][1]

		// Degenerate edge: both endpoints coincide.
		if math.Abs(x2-x1) < boundaryEpsilon && math.Abs(y2-y1) < boundaryEpsilon {
			if math.Abs(x-x1) < boundaryEpsilon && math.Abs(y-y1) < boundaryEpsilon {
				return true
			}
			continue
		}

		cross := (x-x1)*(y2-y1) - (y-y1)*(x2-x1)
		if math.Abs(cross) > boundaryEpsilon {
			continue
		}
		dot := (x-x1)*(x2-x1) + (y-y1)*(y2-y1)
		lenSq := (x2-x1)*(x2-x1) + (y2-y1)*(y2-y1)
		if dot >= -boundaryEpsilon && dot <= lenSq+boundaryEpsilon {
			return true
		}
	}
	return false
}
