// Copyright 2025 The MCP Chain Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package middleware

import (
	"context"
	"encoding/json"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/mcpchain/mcpchain/chain"
	internaljson "github.com/mcpchain/mcpchain/internal/json"
	"github.com/mcpchain/mcpchain/jsonrpc"
	"github.com/mcpchain/mcpchain/mcp"
)

const kmToMiles = 0.621371

// NewRouteAnalyzer returns the middleware for the "analyze_route" tool,
// which walks consecutive waypoint pairs and composes the geospatial
// distance and bearing tools into a per-segment report.
func NewRouteAnalyzer() *Middleware {
	m := newMiddleware("route-analyzer", []string{"distance", "bearing"})
	m.addTool(&mcp.Tool{
		Name:  "analyze_route",
		Title: "Route Analyzer",
		Description: "Analyze a route through multiple GPS waypoints. " +
			"Returns total distance, segment distances, and bearings between each waypoint. " +
			"Chains distance and bearing calculations for comprehensive route analysis.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"waypoints": {
					Type: "array",
					Items: &jsonschema.Schema{
						Type: "object",
						Properties: map[string]*jsonschema.Schema{
							"lat": {Type: "number"},
							"lon": {Type: "number"},
						},
						Required: []string{"lat", "lon"},
					},
					MinItems:    jsonschema.Ptr(2),
					Description: "Route waypoints (at least 2 points)",
				},
			},
			Required: []string{"waypoints"},
		},
	}, runAnalyzeRoute)
	return m
}

type waypoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type routeSegment struct {
	From           waypoint `json:"from"`
	To             waypoint `json:"to"`
	DistanceKM     float64  `json:"distance_km"`
	DistanceMiles  float64  `json:"distance_miles"`
	BearingDegrees float64  `json:"bearing_degrees"`
	Compass        string   `json:"compass_direction"`
}

type routeReport struct {
	TotalWaypoints     int            `json:"total_waypoints"`
	TotalDistanceKM    float64        `json:"total_distance_km"`
	TotalDistanceMiles float64        `json:"total_distance_miles"`
	Segments           []routeSegment `json:"segments"`
}

func runAnalyzeRoute(ctx context.Context, id jsonrpc.ID, args json.RawMessage, down chain.Downstream) *mcp.CallToolResult {
	var in struct {
		Waypoints []waypoint `json:"waypoints"`
	}
	if err := unmarshalArgs(args, &in); err != nil {
		return mcp.NewErrorResult("%v", err)
	}
	if len(in.Waypoints) < 2 {
		return mcp.NewErrorResult("Route must have at least 2 waypoints")
	}

	report := routeReport{
		TotalWaypoints: len(in.Waypoints),
		Segments:       make([]routeSegment, 0, len(in.Waypoints)-1),
	}

	for i := 0; i < len(in.Waypoints)-1; i++ {
		from, to := in.Waypoints[i], in.Waypoints[i+1]
		segArgs := map[string]float64{
			"lat1": from.Lat, "lon1": from.Lon,
			"lat2": to.Lat, "lon2": to.Lon,
		}

		distText, err := callText(ctx, id, down, "distance", segArgs)
		if err != nil {
			return mcp.NewErrorResult("%v", err)
		}
		bearText, err := callText(ctx, id, down, "bearing", segArgs)
		if err != nil {
			return mcp.NewErrorResult("%v", err)
		}

		// The geospatial tools answer with JSON-object text; absent or
		// malformed fields degrade to zero values rather than failing the
		// whole route.
		var dist struct {
			DistanceKM    float64 `json:"distance_km"`
			DistanceMiles float64 `json:"distance_miles"`
		}
		_ = internaljson.Unmarshal([]byte(distText), &dist)
		var bear struct {
			BearingDegrees float64 `json:"bearing_degrees"`
			Compass        string  `json:"compass_direction"`
		}
		_ = internaljson.Unmarshal([]byte(bearText), &bear)

		report.TotalDistanceKM += dist.DistanceKM
		report.Segments = append(report.Segments, routeSegment{
			From:           from,
			To:             to,
			DistanceKM:     dist.DistanceKM,
			DistanceMiles:  dist.DistanceMiles,
			BearingDegrees: bear.BearingDegrees,
			Compass:        bear.Compass,
		})
	}
	report.TotalDistanceMiles = report.TotalDistanceKM * kmToMiles

	encoded, err := internaljson.Marshal(report)
	if err != nil {
		return mcp.NewErrorResult("encoding route report: %v", err)
	}
	return mcp.NewTextResult(string(encoded))
}
