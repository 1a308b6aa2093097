// Copyright 2025 The MCP Chain Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package geotools provides the geospatial leaf tools: distance, bearing
// and point_in_polygon. Each tool is its own provider so a pipeline can
// include exactly the calculations it needs.
//
// Tool results are JSON-object text blocks. Coordinates are validated
// before any math: latitudes must lie in [-90, 90], longitudes in
// [-180, 180], and non-finite values are rejected.
package geotools

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/google/jsonschema-go/jsonschema"

	internaljson "github.com/mcpchain/mcpchain/internal/json"
	"github.com/mcpchain/mcpchain/mcp"
)

const (
	earthRadiusKM = 6371.0
	kmToMiles     = 0.621371
	kmToNautical  = 0.539957
)

func validateLat(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("parameter %q must be a finite number", name)
	}
	if v < -90 || v > 90 {
		return fmt.Errorf("parameter %q must be between -90 and 90 degrees", name)
	}
	return nil
}

func validateLon(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("parameter %q must be a finite number", name)
	}
	if v < -180 || v > 180 {
		return fmt.Errorf("parameter %q must be between -180 and 180 degrees", name)
	}
	return nil
}

// pointPair is the argument payload shared by the distance and bearing
// tools.
type pointPair struct {
	Lat1 *float64 `json:"lat1"`
	Lon1 *float64 `json:"lon1"`
	Lat2 *float64 `json:"lat2"`
	Lon2 *float64 `json:"lon2"`
}

func parsePointPair(args json.RawMessage) (lat1, lon1, lat2, lon2 float64, err error) {
	if len(args) == 0 {
		return 0, 0, 0, 0, fmt.Errorf("missing arguments")
	}
	var in pointPair
	if uerr := internaljson.Unmarshal(args, &in); uerr != nil {
		return 0, 0, 0, 0, fmt.Errorf("invalid arguments: %v", uerr)
	}
	for name, p := range map[string]*float64{
		"lat1": in.Lat1, "lon1": in.Lon1, "lat2": in.Lat2, "lon2": in.Lon2,
	} {
		if p == nil {
			return 0, 0, 0, 0, fmt.Errorf("missing or invalid parameter %q", name)
		}
	}
	if err := validateLat("lat1", *in.Lat1); err != nil {
		return 0, 0, 0, 0, err
	}
	if err := validateLon("lon1", *in.Lon1); err != nil {
		return 0, 0, 0, 0, err
	}
	if err := validateLat("lat2", *in.Lat2); err != nil {
		return 0, 0, 0, 0, err
	}
	if err := validateLon("lon2", *in.Lon2); err != nil {
		return 0, 0, 0, 0, err
	}
	return *in.Lat1, *in.Lon1, *in.Lat2, *in.Lon2, nil
}

func pointPairSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"lat1": {Type: "number", Description: "Latitude of the first point in degrees"},
			"lon1": {Type: "number", Description: "Longitude of the first point in degrees"},
			"lat2": {Type: "number", Description: "Latitude of the second point in degrees"},
			"lon2": {Type: "number", Description: "Longitude of the second point in degrees"},
		},
		Required: []string{"lat1", "lon1", "lat2", "lon2"},
	}
}

func jsonResult(v any) *mcp.CallToolResult {
	encoded, err := internaljson.Marshal(v)
	if err != nil {
		return mcp.NewErrorResult("encoding result: %v", err)
	}
	return mcp.NewTextResult(string(encoded))
}
