// Copyright 2025 The MCP Chain Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package middleware_test

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/mcpchain/mcpchain/chain"
	"github.com/mcpchain/mcpchain/geotools"
	"github.com/mcpchain/mcpchain/middleware"
)

func geoChain() *chain.Chain {
	return chain.New(
		middleware.NewRouteAnalyzer(),
		chain.NewProviderHandler(geotools.NewDistance()),
		chain.NewProviderHandler(geotools.NewBearing()),
	)
}

type routeReport struct {
	TotalWaypoints     int     `json:"total_waypoints"`
	TotalDistanceKM    float64 `json:"total_distance_km"`
	TotalDistanceMiles float64 `json:"total_distance_miles"`
	Segments           []struct {
		DistanceKM     float64 `json:"distance_km"`
		BearingDegrees float64 `json:"bearing_degrees"`
		Compass        string  `json:"compass_direction"`
	} `json:"segments"`
}

func TestAnalyzeRouteSingleSegment(t *testing.T) {
	// Due east along the equator: bearing 90, one segment whose distance is
	// the whole route.
	res := callTool(t, geoChain(), "analyze_route", map[string]any{
		"waypoints": []map[string]float64{
			{"lat": 0, "lon": 0},
			{"lat": 0, "lon": 1},
		},
	})
	if res.IsError {
		t.Fatalf("analyze_route failed: %s", resultText(t, res))
	}

	var report routeReport
	if err := json.Unmarshal([]byte(resultText(t, res)), &report); err != nil {
		t.Fatalf("unmarshaling report: %v", err)
	}
	if report.TotalWaypoints != 2 || len(report.Segments) != 1 {
		t.Fatalf("report = %+v, want 2 waypoints and 1 segment", report)
	}
	seg := report.Segments[0]
	if math.Abs(seg.BearingDegrees-90) > 1e-6 {
		t.Errorf("bearing = %v, want 90", seg.BearingDegrees)
	}
	if seg.Compass != "E" {
		t.Errorf("compass = %q, want E", seg.Compass)
	}
	if seg.DistanceKM <= 0 {
		t.Errorf("segment distance = %v, want > 0", seg.DistanceKM)
	}
	if report.TotalDistanceKM != seg.DistanceKM {
		t.Errorf("total %v != segment %v", report.TotalDistanceKM, seg.DistanceKM)
	}
}

func TestAnalyzeRouteAccumulatesSegments(t *testing.T) {
	res := callTool(t, geoChain(), "analyze_route", map[string]any{
		"waypoints": []map[string]float64{
			{"lat": 0, "lon": 0},
			{"lat": 0, "lon": 1},
			{"lat": 1, "lon": 1},
		},
	})
	var report routeReport
	if err := json.Unmarshal([]byte(resultText(t, res)), &report); err != nil {
		t.Fatalf("unmarshaling report: %v", err)
	}
	if len(report.Segments) != 2 {
		t.Fatalf("segments = %d, want 2", len(report.Segments))
	}
	sum := report.Segments[0].DistanceKM + report.Segments[1].DistanceKM
	if math.Abs(report.TotalDistanceKM-sum) > 1e-9 {
		t.Errorf("total %v != sum of segments %v", report.TotalDistanceKM, sum)
	}
	if math.Abs(report.TotalDistanceMiles-report.TotalDistanceKM*0.621371) > 1e-9 {
		t.Errorf("miles %v inconsistent with km %v", report.TotalDistanceMiles, report.TotalDistanceKM)
	}
}

func TestAnalyzeRouteRequiresTwoWaypoints(t *testing.T) {
	res := callTool(t, geoChain(), "analyze_route", map[string]any{
		"waypoints": []map[string]float64{{"lat": 0, "lon": 0}},
	})
	if !res.IsError {
		t.Fatal("single-waypoint route succeeded, want error")
	}
}

func TestAnalyzeRouteMissingGeoTools(t *testing.T) {
	c := chain.New(middleware.NewRouteAnalyzer())
	res := callTool(t, c, "analyze_route", map[string]any{
		"waypoints": []map[string]float64{
			{"lat": 0, "lon": 0},
			{"lat": 0, "lon": 1},
		},
	})
	if !res.IsError {
		t.Fatal("analyze_route without geo providers succeeded, want error")
	}
	if text := resultText(t, res); !strings.Contains(text, `"distance"`) {
		t.Errorf("error %q does not name the missing tool", text)
	}
}
