package service

import (
	"context"
	"fmt"

	"geocatalog/internal/domain"
	"geocatalog/internal/repository"
)

// CatalogService provides business logic for catalog operations
type CatalogService struct {
	repo     repository.Repository
	eventBus *EventBus
}

// NewCatalogService creates a new catalog service
func NewCatalogService(repo repository.Repository, eventBus *EventBus) *CatalogService {
	return &CatalogService{
		repo:     repo,
		eventBus: eventBus,
	}
}

// SearchParams carries one search request through the pipeline.
type SearchParams struct {
	Constraint *domain.Constraint
	Sort       *domain.Sort
	Rank       *domain.Rank
	Limit      int
	Offset     int
}

// SearchResult is a page of matches plus the total before paging.
type SearchResult struct {
	Matched  int             `json:"matched"`
	Returned int             `json:"returned"`
	Records  []domain.Record `json:"records"`
}

// Search runs a filtered, optionally ranked and sorted query
func (s *CatalogService) Search(ctx context.Context, params SearchParams) (*SearchResult, error) {
	matched, records, err := s.repo.Query(ctx, params.Constraint, params.Sort, params.Rank, params.Limit, params.Offset)
	if err != nil {
		return nil, err
	}
	return &SearchResult{
		Matched:  matched,
		Returned: len(records),
		Records:  records,
	}, nil
}

// GetRecord retrieves a single record by identifier
func (s *CatalogService) GetRecord(ctx context.Context, id string) (*domain.Record, error) {
	records, err := s.repo.QueryIDs(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("record %s not found", id)
	}
	return &records[0], nil
}

// GetRecords retrieves records by identifier; unknown identifiers are
// silently absent from the result
func (s *CatalogService) GetRecords(ctx context.Context, ids []string) ([]domain.Record, error) {
	return s.repo.QueryIDs(ctx, ids)
}

// Collections returns the visible collection records
func (s *CatalogService) Collections(ctx context.Context, limit int) ([]domain.Record, error) {
	return s.repo.QueryCollections(ctx, nil, limit)
}

// Domain summarizes the values of one property
func (s *CatalogService) Domain(ctx context.Context, property string, queryType domain.DomainQueryType, count bool) (*domain.DomainResult, error) {
	return s.repo.QueryDomain(ctx, property, queryType, count)
}

// Harvested returns the records harvested from a source endpoint
func (s *CatalogService) Harvested(ctx context.Context, source string) ([]domain.Record, error) {
	if source == "" {
		return nil, fmt.Errorf("source endpoint required")
	}
	return s.repo.QuerySource(ctx, source)
}

// InsertRecord stores a new record
func (s *CatalogService) InsertRecord(ctx context.Context, rec *domain.Record) error {
	if err := s.validateRecord(rec); err != nil {
		return err
	}

	if err := s.repo.Insert(ctx, rec); err != nil {
		return err
	}

	s.eventBus.Publish(Event{
		Type:    EventRecordInserted,
		Payload: map[string]string{"identifier": rec.Identifier, "typename": rec.Typename},
	})

	return nil
}

// UpdateRecord replaces an existing record
func (s *CatalogService) UpdateRecord(ctx context.Context, rec *domain.Record) error {
	if rec.Identifier == "" {
		return fmt.Errorf("record identifier required")
	}
	if err := s.validateRecord(rec); err != nil {
		return err
	}

	if err := s.repo.Update(ctx, rec); err != nil {
		return err
	}

	s.eventBus.Publish(Event{
		Type:    EventRecordUpdated,
		Payload: map[string]string{"identifier": rec.Identifier},
	})

	return nil
}

// UpdateRecordProperties applies targeted value changes to every record
// matching the constraint and returns the touched row count
func (s *CatalogService) UpdateRecordProperties(ctx context.Context, constraint domain.Constraint, updates []domain.PropertyUpdate) (int, error) {
	if constraint.Where == "" {
		return 0, fmt.Errorf("update constraint required")
	}
	if len(updates) == 0 {
		return 0, fmt.Errorf("at least one property update required")
	}

	n, err := s.repo.UpdateProperties(ctx, constraint, updates)
	if err != nil {
		return 0, err
	}

	s.eventBus.Publish(Event{
		Type:    EventPropertiesUpdated,
		Payload: map[string]int{"updated": n},
	})

	return n, nil
}

// DeleteRecords removes the records matching the constraint plus their
// children and returns the total count
func (s *CatalogService) DeleteRecords(ctx context.Context, constraint domain.Constraint) (int, error) {
	if constraint.Where == "" {
		return 0, fmt.Errorf("delete constraint required")
	}

	n, err := s.repo.Delete(ctx, constraint)
	if err != nil {
		return 0, err
	}

	s.eventBus.Publish(Event{
		Type:    EventRecordsDeleted,
		Payload: map[string]int{"deleted": n},
	})

	return n, nil
}

// CatalogSummary describes the catalog as a whole
type CatalogSummary struct {
	Records    int               `json:"records"`
	Oldest     string            `json:"oldest,omitempty"`
	Newest     string            `json:"newest,omitempty"`
	Capability domain.Capability `json:"capability"`
}

// Summary reports the record count, the insert-date range, and the
// detected backend capability
func (s *CatalogService) Summary(ctx context.Context) (*CatalogSummary, error) {
	count, _, err := s.repo.Query(ctx, nil, nil, nil, 1, 0)
	if err != nil {
		return nil, err
	}
	oldest, err := s.repo.QueryInsertDate(ctx, domain.SortAscending)
	if err != nil {
		return nil, err
	}
	newest, err := s.repo.QueryInsertDate(ctx, domain.SortDescending)
	if err != nil {
		return nil, err
	}

	return &CatalogSummary{
		Records:    count,
		Oldest:     oldest,
		Newest:     newest,
		Capability: s.repo.Capability(),
	}, nil
}

// Describe returns the property schema of the catalog
func (s *CatalogService) Describe() map[string]domain.Property {
	return s.repo.Describe()
}

// Ping checks the storage backend
func (s *CatalogService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

// Maintain runs provisioning or index upkeep when the backend supports it
func (s *CatalogService) Maintain(ctx context.Context, action string) error {
	m, ok := s.repo.(repository.Maintainer)
	if !ok {
		return fmt.Errorf("backend does not support maintenance")
	}

	switch action {
	case "setup":
		return m.Setup(ctx)
	case "reindex":
		return m.RebuildIndexes(ctx)
	case "optimize":
		return m.Optimize(ctx)
	default:
		return fmt.Errorf("unknown maintenance action %s, must be 'setup', 'reindex' or 'optimize'", action)
	}
}

// NotifyReload publishes a reload event after configuration changes
func (s *CatalogService) NotifyReload(reason string) {
	s.eventBus.Publish(Event{
		Type:    EventCatalogReloaded,
		Payload: map[string]string{"reason": reason},
	})
}

// Validation helpers

func (s *CatalogService) validateRecord(rec *domain.Record) error {
	if rec.XML == "" {
		return fmt.Errorf("record XML document required")
	}
	return nil
}
