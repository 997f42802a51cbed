package geo

import (
	"errors"
	"testing"
)

const (
	square02  = "POLYGON((0 0,2 0,2 2,0 2,0 0))"
	square13  = "POLYGON((1 1,3 1,3 3,1 3,1 1))"
	square01  = "POLYGON((0 0,1 0,1 1,0 1,0 0))"
	square12  = "POLYGON((1 0,2 0,2 1,1 1,1 0))" // shares an edge with square01
	squareFar = "POLYGON((5 5,6 5,6 6,5 6,5 5))"
	innerSq   = "POLYGON((0.5 0.5,1.5 0.5,1.5 1.5,0.5 1.5,0.5 0.5))"
)

func TestEvaluatePredicates(t *testing.T) {
	tests := []struct {
		name      string
		a, b      string
		predicate string
		distance  float64
		want      bool
	}{
		{"bbox behaves as intersects", square02, square13, "bbox", 0, true},
		{"intersects overlapping", square02, square13, "intersects", 0, true},
		{"intersects disjoint", square01, squareFar, "intersects", 0, false},
		{"intersects touching", square01, square12, "intersects", 0, true},
		{"disjoint far", square01, squareFar, "disjoint", 0, true},
		{"disjoint overlapping", square02, square13, "disjoint", 0, false},
		{"touches shared edge", square01, square12, "touches", 0, true},
		{"touches overlapping", square02, square13, "touches", 0, false},
		{"overlaps overlapping", square02, square13, "overlaps", 0, true},
		{"overlaps touching only", square01, square12, "overlaps", 0, false},
		{"overlaps disjoint", square01, squareFar, "overlaps", 0, false},
		{"contains inner", square02, innerSq, "contains", 0, true},
		{"contains reversed", innerSq, square02, "contains", 0, false},
		{"within inner", innerSq, square02, "within", 0, true},
		{"within reversed", square02, innerSq, "within", 0, false},
		{"equals same ring", square01, "POLYGON((1 0,1 1,0 1,0 0,1 0))", "equals", 0, true},
		{"equals different", square01, square02, "equals", 0, false},
		{"crosses line through polygon", "LINESTRING(-1 1,3 1)", square02, "crosses", 0, true},
		{"beyond far apart", square01, squareFar, "beyond", 1, true},
		{"beyond within distance", square01, squareFar, "beyond", 100, false},
		{"dwithin close", square01, squareFar, "dwithin", 100, true},
		{"dwithin too far", square01, squareFar, "dwithin", 1, false},
		{"dialect prefix stripped", "SRID=4326;" + square02, square13, "intersects", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Evaluate(tt.a, tt.b, tt.predicate, tt.distance)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("Evaluate(%s) = %v, want %v", tt.predicate, got, tt.want)
			}
		})
	}
}

func TestEvaluateDisjointComplementsIntersects(t *testing.T) {
	pairs := [][2]string{
		{square02, square13},
		{square01, square12},
		{square01, squareFar},
		{innerSq, square02},
	}
	for _, pair := range pairs {
		inter, err := Evaluate(pair[0], pair[1], "intersects", 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		dis, err := Evaluate(pair[0], pair[1], "disjoint", 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if inter == dis {
			t.Fatalf("disjoint(%s,%s) must complement intersects", pair[0], pair[1])
		}
	}
}

func TestEvaluateMalformedGeometryIsNonMatch(t *testing.T) {
	for _, bad := range []string{"", "not wkt", "POLYGON((0 0,1 1)"} {
		got, err := Evaluate(bad, square01, "intersects", 0)
		if err != nil {
			t.Fatalf("malformed geometry must not raise, got %v", err)
		}
		if got {
			t.Fatal("malformed geometry must be a non-match")
		}

		got, err = Evaluate(square01, bad, "intersects", 0)
		if err != nil {
			t.Fatalf("malformed geometry must not raise, got %v", err)
		}
		if got {
			t.Fatal("malformed geometry must be a non-match")
		}
	}
}

func TestEvaluateUnknownPredicate(t *testing.T) {
	_, err := Evaluate(square01, square02, "borders", 0)
	if err == nil {
		t.Fatal("expected error for unknown predicate")
	}
	if !errors.Is(err, ErrUnknownPredicate) {
		t.Fatalf("expected ErrUnknownPredicate, got %v", err)
	}

	// Unknown predicate fails loudly even when geometry is malformed
	if _, err := Evaluate("garbage", "garbage", "borders", 0); err == nil {
		t.Fatal("expected error for unknown predicate with malformed geometry")
	}
}

func TestStripPrefix(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"SRID=4326;POINT(1 2)", "POINT(1 2)"},
		{"POINT(1 2)", "POINT(1 2)"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := StripPrefix(tt.in); got != tt.want {
			t.Fatalf("StripPrefix(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
