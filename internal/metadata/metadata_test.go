package metadata

import (
	"strings"
	"testing"
)

const sampleDoc = `<dc:record xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:dct="http://purl.org/dc/terms/"><dc:title>Lake Depths</dc:title><dct:abstract>Bathymetry of inland lakes</dct:abstract><dc:subject scheme="theme">hydrology</dc:subject></dc:record>`

var sampleNS = map[string]string{
	"dc":  "http://purl.org/dc/elements/1.1/",
	"dct": "http://purl.org/dc/terms/",
}

func TestDecodeXML(t *testing.T) {
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte("<doc/>")...)
	if got := DecodeXML(raw); got != "<doc/>" {
		t.Fatalf("DecodeXML = %q", got)
	}
	if got := DecodeXML([]byte("<doc/>")); got != "<doc/>" {
		t.Fatalf("DecodeXML without BOM = %q", got)
	}
}

func TestAnyTextCollectsTextAndAttributes(t *testing.T) {
	got, err := AnyText(sampleDoc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"Lake Depths", "Bathymetry of inland lakes", "hydrology", "theme"} {
		if !strings.Contains(got, want) {
			t.Fatalf("anytext %q missing %q", got, want)
		}
	}
	// Namespace declarations are not text
	if strings.Contains(got, "purl.org") {
		t.Fatalf("anytext must not contain namespace URIs: %q", got)
	}
}

func TestAnyTextMalformed(t *testing.T) {
	if _, err := AnyText("<unclosed"); err == nil {
		t.Fatal("expected error for malformed document")
	}
}

func TestUpdateXPathRewritesMatches(t *testing.T) {
	out, err := UpdateXPath(sampleDoc, sampleNS, "//dc:title", "Updated Title")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "Updated Title") {
		t.Fatalf("updated document missing new value: %q", out)
	}
	if strings.Contains(out, "Lake Depths") {
		t.Fatalf("updated document still carries old value: %q", out)
	}
	// Untouched nodes survive
	if !strings.Contains(out, "Bathymetry of inland lakes") {
		t.Fatalf("unrelated value lost: %q", out)
	}
}

func TestUpdateXPathIdempotent(t *testing.T) {
	once, err := UpdateXPath(sampleDoc, sampleNS, "//dc:title", "Updated Title")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	twice, err := UpdateXPath(once, sampleNS, "//dc:title", "Updated Title")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if once != twice {
		t.Fatalf("second application changed the document:\n%q\n%q", once, twice)
	}
}

func TestUpdateXPathNoMatchLeavesValues(t *testing.T) {
	out, err := UpdateXPath(sampleDoc, sampleNS, "//dc:missing", "value")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "Lake Depths") {
		t.Fatalf("no-match update must not change values: %q", out)
	}
}

func TestUpdateXPathAnyTextStaysDerivable(t *testing.T) {
	out, err := UpdateXPath(sampleDoc, sampleNS, "//dc:title", "Updated Title")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	anytext, err := AnyText(out)
	if err != nil {
		t.Fatalf("updated document must stay parseable: %v", err)
	}
	if !strings.Contains(anytext, "Updated Title") {
		t.Fatalf("anytext %q missing updated value", anytext)
	}
}

func TestUpdateXPathMalformedDocument(t *testing.T) {
	if _, err := UpdateXPath("<unclosed", sampleNS, "//dc:title", "v"); err == nil {
		t.Fatal("expected error for malformed document")
	}
}

func TestUpdateXPathBadExpression(t *testing.T) {
	if _, err := UpdateXPath(sampleDoc, sampleNS, "///", "v"); err == nil {
		t.Fatal("expected error for bad xpath")
	}
}
