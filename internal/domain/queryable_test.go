package domain

import (
	"errors"
	"testing"
)

func testQueryables() Queryables {
	byType := map[string]map[string]Queryable{
		"csw:Record": {
			"title":    {DBCol: "title", XPath: "dc:title"},
			"abstract": {DBCol: "abstract", XPath: "dct:abstract"},
		},
		"gmd:MD_Metadata": {
			"title": {DBCol: "title", XPath: "gmd:identificationInfo//gmd:title/gco:CharacterString"},
		},
	}
	core := map[string]Queryable{
		"identifier": {DBCol: "identifier"},
		"bbox":       {DBCol: "wkt_geometry"},
	}
	return NewQueryables(byType, core)
}

func TestResolveFlattened(t *testing.T) {
	q := testQueryables()

	entry, err := q.Resolve("bbox")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.DBCol != "wkt_geometry" {
		t.Fatalf("expected wkt_geometry, got %s", entry.DBCol)
	}
	if entry.Name != "bbox" {
		t.Fatalf("expected name to be set, got %q", entry.Name)
	}
}

func TestResolveUnknownFailsLoudly(t *testing.T) {
	q := testQueryables()

	_, err := q.Resolve("no-such-property")
	if err == nil {
		t.Fatal("expected error for unknown queryable")
	}
	if !errors.Is(err, ErrUnknownQueryable) {
		t.Fatalf("expected ErrUnknownQueryable, got %v", err)
	}
}

func TestResolveForPrefersTypeSpecific(t *testing.T) {
	q := testQueryables()

	entry, err := q.ResolveFor("gmd:MD_Metadata", "title")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.XPath != "gmd:identificationInfo//gmd:title/gco:CharacterString" {
		t.Fatalf("expected type-specific binding, got %q", entry.XPath)
	}

	// Falls back to the flattened table for types without the binding
	entry, err = q.ResolveFor("gmd:MD_Metadata", "abstract")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.DBCol != "abstract" {
		t.Fatalf("expected fallback binding, got %q", entry.DBCol)
	}
}

func TestCoreMappingsAlwaysResolve(t *testing.T) {
	q := NewQueryables(nil, map[string]Queryable{
		"identifier": {DBCol: "identifier"},
	})
	if _, err := q.Resolve("identifier"); err != nil {
		t.Fatalf("core mapping should resolve: %v", err)
	}
}
