package geo

import (
	"math"
	"testing"
)

const (
	query44  = "POLYGON((0 0,4 0,4 4,0 4,0 0))"  // area 16
	target22 = "POLYGON((0 0,2 0,2 2,0 2,0 0))"  // area 4, fully inside query44
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestOverlayRankIdenticalGeometry(t *testing.T) {
	r := NewRanker()
	if got := r.OverlayRank(query44, query44); !almostEqual(got, 1.0) {
		t.Fatalf("rank(g, g) = %v, want 1.0", got)
	}
}

func TestOverlayRankContainedTarget(t *testing.T) {
	r := NewRanker()
	// X = 4, Q = 16, T = 4: (4/16)*(4/4) = 0.25
	if got := r.OverlayRank(target22, query44); !almostEqual(got, 0.25) {
		t.Fatalf("rank = %v, want 0.25", got)
	}
}

func TestOverlayRankDisjoint(t *testing.T) {
	r := NewRanker()
	got := r.OverlayRank("POLYGON((10 10,11 10,11 11,10 11,10 10))", query44)
	if !almostEqual(got, 0) {
		t.Fatalf("disjoint rank = %v, want 0", got)
	}
}

func TestOverlayRankZeroForDegenerateInput(t *testing.T) {
	r := NewRanker()
	tests := []struct {
		name           string
		target, query  string
	}{
		{"absent target", "", query44},
		{"absent query", target22, ""},
		{"zero-area target", "POINT(1 1)", query44},
		{"zero-area query", target22, "LINESTRING(0 0,1 1)"},
		{"malformed target", "not wkt", query44},
		{"malformed query", target22, "not wkt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.OverlayRank(tt.target, tt.query); got != 0 {
				t.Fatalf("rank = %v, want 0", got)
			}
		})
	}
}

func TestOverlayRankWeights(t *testing.T) {
	r := Ranker{KT: 2.0, KQ: 1.0}
	// X/Q = 0.25, X/T = 1: 0.25^1 * 1^2 = 0.25
	if got := r.OverlayRank(target22, query44); !almostEqual(got, 0.25) {
		t.Fatalf("weighted rank = %v, want 0.25", got)
	}

	r = Ranker{KT: 1.0, KQ: 2.0}
	// 0.25^2 * 1^1 = 0.0625
	if got := r.OverlayRank(target22, query44); !almostEqual(got, 0.0625) {
		t.Fatalf("weighted rank = %v, want 0.0625", got)
	}
}

func TestArea(t *testing.T) {
	tests := []struct {
		name string
		wkt  string
		want float64
	}{
		{"square", target22, 4},
		{"point", "POINT(1 1)", 0},
		{"absent", "", 0},
		{"malformed", "junk", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Area(tt.wkt); !almostEqual(got, tt.want) {
				t.Fatalf("Area(%q) = %v, want %v", tt.wkt, got, tt.want)
			}
		})
	}
}
