// Copyright 2025 The MCP Chain Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package geotools

import (
	"context"
	"math"

	"github.com/mcpchain/mcpchain/mcp"
)

// Bearing is the provider for the initial-bearing "bearing" tool.
type Bearing struct {
	tools []*mcp.Tool
}

// NewBearing returns the bearing provider.
func NewBearing() *Bearing {
	return &Bearing{tools: []*mcp.Tool{{
		Name:  "bearing",
		Title: "Initial Bearing",
		Description: "Calculate the initial bearing (forward azimuth) from one GPS " +
			"coordinate to another. Returns degrees, radians, and a 16-point compass direction.",
		InputSchema: pointPairSchema(),
	}}}
}

// Tools implements chain.ToolProvider.
func (b *Bearing) Tools() []*mcp.Tool {
	return b.tools
}

// Call implements chain.ToolProvider.
func (b *Bearing) Call(_ context.Context, params *mcp.CallToolParamsRaw) (*mcp.CallToolResult, bool) {
	if params.Name != "bearing" {
		return nil, false
	}
	lat1, lon1, lat2, lon2, err := parsePointPair(params.Arguments)
	if err != nil {
		return mcp.NewErrorResult("%v", err), true
	}
	degrees := initialBearing(lat1, lon1, lat2, lon2)
	return jsonResult(struct {
		BearingDegrees float64 `json:"bearing_degrees"`
		BearingRadians float64 `json:"bearing_radians"`
		Compass        string  `json:"compass_direction"`
	}{
		BearingDegrees: degrees,
		BearingRadians: degrees * math.Pi / 180,
		Compass:        compassDirection(degrees),
	}), true
}

// initialBearing returns the forward azimuth in degrees, normalized to
// [0, 360).
func initialBearing(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dLambda := (lon2 - lon1) * math.Pi / 180

	y := math.Sin(dLambda) * math.Cos(phi2)
	x := math.Cos(phi1)*math.Sin(phi2) - math.Sin(phi1)*math.Cos(phi2)*math.Cos(dLambda)
	theta := math.Atan2(y, x)
	return math.Mod(theta*180/math.Pi+360, 360)
}

var compassPoints = [16]string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

func compassDirection(degrees float64) string {
	idx := int((degrees+11.25)/22.5) % 16
	return compassPoints[idx]
}
