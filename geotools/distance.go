// Copyright 2025 The MCP Chain Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package geotools

import (
	"context"
	"math"

	"github.com/mcpchain/mcpchain/mcp"
)

// Distance is the provider for the great-circle "distance" tool.
type Distance struct {
	tools []*mcp.Tool
}

// NewDistance returns the distance provider.
func NewDistance() *Distance {
	return &Distance{tools: []*mcp.Tool{{
		Name:  "distance",
		Title: "Great-Circle Distance",
		Description: "Calculate the great-circle distance between two GPS coordinates " +
			"using the Haversine formula. Returns kilometers, miles, and nautical miles.",
		InputSchema: pointPairSchema(),
	}}}
}

// Tools implements chain.ToolProvider.
func (d *Distance) Tools() []*mcp.Tool {
	return d.tools
}

// Call implements chain.ToolProvider.
func (d *Distance) Call(_ context.Context, params *mcp.CallToolParamsRaw) (*mcp.CallToolResult, bool) {
	if params.Name != "distance" {
		return nil, false
	}
	lat1, lon1, lat2, lon2, err := parsePointPair(params.Arguments)
	if err != nil {
		return mcp.NewErrorResult("%v", err), true
	}
	km := haversineKM(lat1, lon1, lat2, lon2)
	return jsonResult(struct {
		DistanceKM       float64 `json:"distance_km"`
		DistanceMiles    float64 `json:"distance_miles"`
		DistanceNautical float64 `json:"distance_nautical_miles"`
		Formula          string  `json:"formula"`
		Accuracy         string  `json:"accuracy"`
	}{
		DistanceKM:       km,
		DistanceMiles:    km * kmToMiles,
		DistanceNautical: km * kmToNautical,
		Formula:          "Haversine",
		Accuracy:         "99.8%",
	}), true
}

// haversineKM returns the great-circle distance in kilometers assuming a
// spherical Earth of radius 6371 km.
func haversineKM(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKM * c
}
