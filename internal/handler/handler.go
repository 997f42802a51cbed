package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"geocatalog/internal/domain"
	"geocatalog/internal/service"
)

// CatalogHandler handles catalog API requests
type CatalogHandler struct {
	svc *service.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(svc *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

// Error response structure
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// ConstraintRequest is the wire form of a query constraint
type ConstraintRequest struct {
	Where  string `json:"where"`
	Values []any  `json:"values,omitempty"`
}

func (c *ConstraintRequest) toDomain() *domain.Constraint {
	if c == nil || c.Where == "" {
		return nil
	}
	return &domain.Constraint{Where: c.Where, Values: c.Values}
}

// SortRequest is the wire form of a sort directive
type SortRequest struct {
	Property   string `json:"property"`
	Descending bool   `json:"descending,omitempty"`
	Spatial    bool   `json:"spatial,omitempty"`
}

func (s *SortRequest) toDomain() *domain.Sort {
	if s == nil || s.Property == "" {
		return nil
	}
	order := domain.SortAscending
	if s.Descending {
		order = domain.SortDescending
	}
	return &domain.Sort{PropertyName: s.Property, Order: order, Spatial: s.Spatial}
}

// SearchRequest is a full search invocation
type SearchRequest struct {
	Constraint   *ConstraintRequest `json:"constraint,omitempty"`
	Sort         *SortRequest       `json:"sort,omitempty"`
	RankGeometry string             `json:"rank_geometry,omitempty"`
	Limit        int                `json:"limit,omitempty"`
	Offset       int                `json:"offset,omitempty"`
}

// Search runs a constrained, optionally ranked and sorted query
func (h *CatalogHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}

	var rank *domain.Rank
	if req.RankGeometry != "" {
		rank = &domain.Rank{QueryGeometry: req.RankGeometry}
	}

	result, err := h.svc.Search(r.Context(), service.SearchParams{
		Constraint: req.Constraint.toDomain(),
		Sort:       req.Sort.toDomain(),
		Rank:       rank,
		Limit:      req.Limit,
		Offset:     req.Offset,
	})
	if err != nil {
		log.Printf("Search failed: %v", err)
		h.writeError(w, "Search failed", err.Error(), http.StatusBadRequest)
		return
	}

	h.writeJSON(w, result, http.StatusOK)
}

// ListRecords returns records by identifier list
func (h *CatalogHandler) ListRecords(w http.ResponseWriter, r *http.Request) {
	idsParam := r.URL.Query().Get("ids")
	if idsParam == "" {
		h.writeError(w, "Identifiers required", "Use ?ids=a,b,c", http.StatusBadRequest)
		return
	}

	records, err := h.svc.GetRecords(r.Context(), strings.Split(idsParam, ","))
	if err != nil {
		log.Printf("Failed to list records: %v", err)
		h.writeError(w, "Failed to list records", err.Error(), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, records, http.StatusOK)
}

// GetRecord returns a single record
func (h *CatalogHandler) GetRecord(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.writeError(w, "Invalid record ID", "Record ID is required", http.StatusBadRequest)
		return
	}

	record, err := h.svc.GetRecord(r.Context(), id)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			h.writeError(w, "Not found", err.Error(), http.StatusNotFound)
			return
		}
		log.Printf("Failed to get record: %v", err)
		h.writeError(w, "Failed to get record", err.Error(), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, record, http.StatusOK)
}

// CreateRecord inserts a new record
func (h *CatalogHandler) CreateRecord(w http.ResponseWriter, r *http.Request) {
	var record domain.Record
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		h.writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.svc.InsertRecord(r.Context(), &record); err != nil {
		log.Printf("Failed to create record: %v", err)
		h.writeError(w, "Failed to create record", err.Error(), http.StatusBadRequest)
		return
	}

	h.writeJSON(w, record, http.StatusCreated)
}

// UpdateRecord replaces an existing record
func (h *CatalogHandler) UpdateRecord(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.writeError(w, "Invalid record ID", "Record ID is required", http.StatusBadRequest)
		return
	}

	var record domain.Record
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		h.writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}
	record.Identifier = id

	if err := h.svc.UpdateRecord(r.Context(), &record); err != nil {
		log.Printf("Failed to update record: %v", err)
		h.writeError(w, "Failed to update record", err.Error(), http.StatusBadRequest)
		return
	}

	h.writeJSON(w, record, http.StatusOK)
}

// PropertyUpdateRequest applies value changes to matching records
type PropertyUpdateRequest struct {
	Constraint ConstraintRequest       `json:"constraint"`
	Updates    []domain.PropertyUpdate `json:"updates"`
}

// UpdateProperties applies targeted property changes
func (h *CatalogHandler) UpdateProperties(w http.ResponseWriter, r *http.Request) {
	var req PropertyUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}

	n, err := h.svc.UpdateRecordProperties(r.Context(),
		domain.Constraint{Where: req.Constraint.Where, Values: req.Constraint.Values},
		req.Updates)
	if err != nil {
		log.Printf("Failed to update properties: %v", err)
		h.writeError(w, "Failed to update properties", err.Error(), http.StatusBadRequest)
		return
	}

	h.writeJSON(w, map[string]int{"updated": n}, http.StatusOK)
}

// DeleteRecords removes the records matching a constraint
func (h *CatalogHandler) DeleteRecords(w http.ResponseWriter, r *http.Request) {
	var req ConstraintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}

	n, err := h.svc.DeleteRecords(r.Context(),
		domain.Constraint{Where: req.Where, Values: req.Values})
	if err != nil {
		log.Printf("Failed to delete records: %v", err)
		h.writeError(w, "Failed to delete records", err.Error(), http.StatusBadRequest)
		return
	}

	h.writeJSON(w, map[string]int{"deleted": n}, http.StatusOK)
}

// ListCollections returns the visible collection records
func (h *CatalogHandler) ListCollections(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 10)

	collections, err := h.svc.Collections(r.Context(), limit)
	if err != nil {
		log.Printf("Failed to list collections: %v", err)
		h.writeError(w, "Failed to list collections", err.Error(), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, collections, http.StatusOK)
}

// GetDomain summarizes the values of one property
func (h *CatalogHandler) GetDomain(w http.ResponseWriter, r *http.Request) {
	property := r.PathValue("property")
	if property == "" {
		h.writeError(w, "Invalid property", "Property name is required", http.StatusBadRequest)
		return
	}

	queryType := domain.DomainList
	if r.URL.Query().Get("type") == "range" {
		queryType = domain.DomainRange
	}
	count := r.URL.Query().Get("count") == "true"

	result, err := h.svc.Domain(r.Context(), property, queryType, count)
	if err != nil {
		if strings.Contains(err.Error(), "unknown queryable") {
			h.writeError(w, "Unknown property", err.Error(), http.StatusBadRequest)
			return
		}
		log.Printf("Failed to get domain: %v", err)
		h.writeError(w, "Failed to get domain", err.Error(), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, result, http.StatusOK)
}

// ListHarvested returns the records harvested from one source
func (h *CatalogHandler) ListHarvested(w http.ResponseWriter, r *http.Request) {
	source := r.URL.Query().Get("source")

	records, err := h.svc.Harvested(r.Context(), source)
	if err != nil {
		h.writeError(w, "Failed to list harvested records", err.Error(), http.StatusBadRequest)
		return
	}

	h.writeJSON(w, records, http.StatusOK)
}

// GetSummary reports catalog-wide statistics and backend capability
func (h *CatalogHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.svc.Summary(r.Context())
	if err != nil {
		log.Printf("Failed to get summary: %v", err)
		h.writeError(w, "Failed to get summary", err.Error(), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, summary, http.StatusOK)
}

// GetSchema returns the queryable property schema
func (h *CatalogHandler) GetSchema(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, h.svc.Describe(), http.StatusOK)
}

// Maintain triggers backend provisioning or index upkeep
func (h *CatalogHandler) Maintain(w http.ResponseWriter, r *http.Request) {
	action := r.PathValue("action")

	if err := h.svc.Maintain(r.Context(), action); err != nil {
		log.Printf("Maintenance %s failed: %v", action, err)
		h.writeError(w, "Maintenance failed", err.Error(), http.StatusBadRequest)
		return
	}

	h.writeJSON(w, map[string]string{"status": "ok", "action": action}, http.StatusOK)
}

// Health checks the storage backend
func (h *CatalogHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Ping(r.Context()); err != nil {
		h.writeError(w, "Storage unavailable", err.Error(), http.StatusServiceUnavailable)
		return
	}
	h.writeJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}

// Helper methods

func (h *CatalogHandler) writeJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Failed to encode JSON: %v", err)
	}
}

func (h *CatalogHandler) writeError(w http.ResponseWriter, error, details string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(ErrorResponse{
		Error:   error,
		Details: details,
	}); err != nil {
		log.Printf("Failed to encode error response: %v", err)
	}
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
