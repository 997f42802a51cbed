package repository

import (
	"context"

	"geocatalog/internal/domain"
)

// Repository defines the query and mutation surface of the catalog store
type Repository interface {
	// Read operations
	Query(ctx context.Context, constraint *domain.Constraint, sortBy *domain.Sort, rank *domain.Rank, limit, offset int) (int, []domain.Record, error)
	QueryIDs(ctx context.Context, ids []string) ([]domain.Record, error)
	QueryCollections(ctx context.Context, filter *domain.Constraint, limit int) ([]domain.Record, error)
	QueryDomain(ctx context.Context, property string, queryType domain.DomainQueryType, count bool) (*domain.DomainResult, error)
	QueryInsertDate(ctx context.Context, direction domain.SortOrder) (string, error)
	QuerySource(ctx context.Context, source string) ([]domain.Record, error)

	// Write operations
	Insert(ctx context.Context, rec *domain.Record) error
	Update(ctx context.Context, rec *domain.Record) error
	UpdateProperties(ctx context.Context, constraint domain.Constraint, updates []domain.PropertyUpdate) (int, error)
	Delete(ctx context.Context, constraint domain.Constraint) (int, error)

	// Introspection
	Describe() map[string]domain.Property
	Capability() domain.Capability

	// Maintenance
	Ping(ctx context.Context) error
	Close() error
}

// Maintainer is the optional admin surface a backend may offer on top of
// Repository: first-time provisioning and index upkeep.
type Maintainer interface {
	Setup(ctx context.Context) error
	RebuildIndexes(ctx context.Context) error
	Optimize(ctx context.Context) error
}
