package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"geocatalog/internal/config"
	"geocatalog/internal/repository/sqldb"
	"geocatalog/internal/service"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	registry := sqldb.NewEngineRegistry()
	t.Cleanup(func() { registry.Close() })

	cfg := config.DefaultConfig()
	repo, err := sqldb.New(registry, sqldb.Options{
		Database:   "sqlite://:memory:",
		Table:      "records",
		Queryables: config.BuildQueryables(cfg),
		Namespaces: config.DefaultNamespaces(),
	})
	if err != nil {
		t.Fatalf("failed to bind repository: %v", err)
	}
	if err := repo.Setup(context.Background()); err != nil {
		t.Fatalf("failed to set up schema: %v", err)
	}

	svc := service.NewCatalogService(repo, service.NewEventBus())
	h := NewCatalogHandler(svc)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/search", h.Search)
	mux.HandleFunc("GET /api/records", h.ListRecords)
	mux.HandleFunc("POST /api/records", h.CreateRecord)
	mux.HandleFunc("GET /api/records/{id}", h.GetRecord)
	mux.HandleFunc("PUT /api/records/{id}", h.UpdateRecord)
	mux.HandleFunc("POST /api/records/properties", h.UpdateProperties)
	mux.HandleFunc("DELETE /api/records", h.DeleteRecords)
	mux.HandleFunc("GET /api/collections", h.ListCollections)
	mux.HandleFunc("GET /api/domain/{property}", h.GetDomain)
	mux.HandleFunc("GET /api/summary", h.GetSummary)
	mux.HandleFunc("GET /api/schema", h.GetSchema)
	mux.HandleFunc("GET /api/health", h.Health)

	ts := httptest.NewServer(Chain(mux, Recover, CORS, Logger))
	t.Cleanup(ts.Close)
	return ts
}

func recordBody(id, title string) string {
	xml := fmt.Sprintf(`<csw:Record xmlns:csw=\"http://www.opengis.net/cat/csw/2.0.2\" xmlns:dc=\"http://purl.org/dc/elements/1.1/\"><dc:identifier>%s</dc:identifier><dc:title>%s</dc:title></csw:Record>`, id, title)
	return fmt.Sprintf(`{"identifier":%q,"title":%q,"xml":"%s"}`, id, title, xml)
}

func doJSON(t *testing.T, method, url, body string) (*http.Response, map[string]any) {
	t.Helper()

	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })

	var decoded map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return resp, nil
	}
	return resp, decoded
}

func TestCreateAndGetRecord(t *testing.T) {
	ts := newTestServer(t)

	resp, created := doJSON(t, http.MethodPost, ts.URL+"/api/records", recordBody("rec-1", "Test Scene"))
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	if created["identifier"] != "rec-1" {
		t.Fatalf("expected identifier echoed, got %v", created["identifier"])
	}

	resp, got := doJSON(t, http.MethodGet, ts.URL+"/api/records/rec-1", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if got["title"] != "Test Scene" {
		t.Fatalf("expected title, got %v", got["title"])
	}
}

func TestGetRecordNotFound(t *testing.T) {
	ts := newTestServer(t)

	resp, _ := doJSON(t, http.MethodGet, ts.URL+"/api/records/no-such", "")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestSearchWithConstraint(t *testing.T) {
	ts := newTestServer(t)

	doJSON(t, http.MethodPost, ts.URL+"/api/records", recordBody("rec-1", "Alpha"))
	doJSON(t, http.MethodPost, ts.URL+"/api/records", recordBody("rec-2", "Beta"))

	resp, result := doJSON(t, http.MethodPost, ts.URL+"/api/search",
		`{"constraint":{"where":"title = ?","values":["Alpha"]}}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if result["matched"].(float64) != 1 {
		t.Fatalf("expected 1 match, got %v", result["matched"])
	}
}

func TestSearchRejectsBadBody(t *testing.T) {
	ts := newTestServer(t)

	resp, _ := doJSON(t, http.MethodPost, ts.URL+"/api/search", "{not json")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestDeleteRecords(t *testing.T) {
	ts := newTestServer(t)

	doJSON(t, http.MethodPost, ts.URL+"/api/records", recordBody("rec-1", "Doomed"))

	resp, result := doJSON(t, http.MethodDelete, ts.URL+"/api/records",
		`{"where":"identifier = ?","values":["rec-1"]}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if result["deleted"].(float64) != 1 {
		t.Fatalf("expected 1 deleted, got %v", result["deleted"])
	}
}

func TestUpdatePropertiesEndpoint(t *testing.T) {
	ts := newTestServer(t)

	doJSON(t, http.MethodPost, ts.URL+"/api/records", recordBody("rec-1", "Old"))

	resp, result := doJSON(t, http.MethodPost, ts.URL+"/api/records/properties",
		`{"constraint":{"where":"identifier = ?","values":["rec-1"]},"updates":[{"name":"title","value":"New"}]}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if result["updated"].(float64) != 1 {
		t.Fatalf("expected 1 updated, got %v", result["updated"])
	}

	_, got := doJSON(t, http.MethodGet, ts.URL+"/api/records/rec-1", "")
	if got["title"] != "New" {
		t.Fatalf("expected updated title, got %v", got["title"])
	}
}

func TestSchemaAndHealth(t *testing.T) {
	ts := newTestServer(t)

	resp, schema := doJSON(t, http.MethodGet, ts.URL+"/api/schema", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if _, ok := schema["identifier"]; !ok {
		t.Fatal("expected identifier in schema")
	}

	resp, _ = doJSON(t, http.MethodGet, ts.URL+"/api/health", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestSummary(t *testing.T) {
	ts := newTestServer(t)

	doJSON(t, http.MethodPost, ts.URL+"/api/records", recordBody("rec-1", "One"))

	resp, summary := doJSON(t, http.MethodGet, ts.URL+"/api/summary", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if summary["records"].(float64) != 1 {
		t.Fatalf("expected 1 record, got %v", summary["records"])
	}
}
