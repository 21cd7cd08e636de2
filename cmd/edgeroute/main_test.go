package main

import (
	"math"
	"testing"

	"github.com/ha1tch/edgeroute/pkg/geom"
)

func TestProbe(t *testing.T) {
	tests := []struct {
		name  string
		shape string
		args  []string
		want  geom.Point
	}{
		{"rect right edge", "rect", []string{"0", "0", "100", "50", "300", "0"}, geom.Pt(50, 0)},
		{"rect explicit reference", "rect", []string{"0", "0", "100", "50", "0", "300", "0", "0"}, geom.Pt(0, 25)},
		{"circle", "circle", []string{"0", "0", "10", "0", "-40"}, geom.Pt(0, -10)},
		{"ellipse", "ellipse", []string{"0", "0", "20", "10", "100", "0"}, geom.Pt(20, 0)},
		{"node", "node", []string{"100", "100", "500", "100"}, geom.Pt(175, 100)},
		{"poly", "poly", []string{"10", "0", "0", "0", "-5,-5", "5,-5", "5,5", "-5,5"}, geom.Pt(5, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := probe(tc.shape, tc.args)
			if err != nil {
				t.Fatalf("probe: %v", err)
			}
			if math.Abs(got.X-tc.want.X) > 1e-9 || math.Abs(got.Y-tc.want.Y) > 1e-9 {
				t.Errorf("probe %s = %v, want %v", tc.shape, got, tc.want)
			}
		})
	}
}

func TestProbeErrors(t *testing.T) {
	tests := []struct {
		shape string
		args  []string
	}{
		{"rect", []string{"0", "0", "1"}},
		{"rect", []string{"0", "0", "1", "1", "5"}},
		{"circle", []string{"0", "0", "x", "1", "1"}},
		{"node", []string{"0", "0", "1"}},
		{"poly", []string{"1", "2", "3"}},
		{"poly", []string{"1", "2", "3", "4", "5;5"}},
		{"hexagon", []string{"1", "2"}},
	}
	for _, tc := range tests {
		if _, err := probe(tc.shape, tc.args); err == nil {
			t.Errorf("probe(%s, %v) should fail", tc.shape, tc.args)
		}
	}
}

func TestParseRouteFlags(t *testing.T) {
	rf, err := parseRouteFlags([]string{"-o", "out.svg", "--pretty", "--spacing", "40", "--scale", "2", "--controls"})
	if err != nil {
		t.Fatalf("parseRouteFlags: %v", err)
	}
	if rf.output != "out.svg" || !rf.pretty || !rf.controls {
		t.Errorf("Unexpected flags: %+v", rf)
	}
	if rf.opts.EdgeSpacing != 40 || rf.scale != 2 {
		t.Errorf("spacing=%v scale=%v", rf.opts.EdgeSpacing, rf.scale)
	}

	for _, bad := range [][]string{{"--spacing"}, {"--scale", "big"}, {"--nope"}} {
		if _, err := parseRouteFlags(bad); err == nil {
			t.Errorf("parseRouteFlags(%v) should fail", bad)
		}
	}
}
