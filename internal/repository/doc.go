// Package repository defines the data access interface for the catalog.
//
// This package provides the repository abstraction layer for storing,
// querying, ranking, and mutating catalog records. The actual
// implementation is in the sqldb subpackage.
//
// # Repository Interface
//
// The Repository interface covers constrained, sorted, paginated queries
// with spatial-relevance ranking, identifier and collection lookups,
// property domain summaries, and the mutation surface: insert, full
// update, property-level update, and delete with cascading child-record
// cleanup.
//
// # SQL Implementation
//
// The sqldb implementation runs over database/sql against SQLite or
// PostgreSQL. It handles:
//
// - Capability detection per connection target (spatial extension,
//   native geometry column, full-text index)
// - Spatial predicate and overlay-rank functions registered at the
//   storage boundary on SQLite connections
// - Dual-write consistency between scalar columns, the XML document, and
//   the derived anytext column during property updates
// - Engine-enforced cascade deletion of child records
// - Transactional mutations with rollback on any failure
//
// # Testing
//
// The sqldb implementation is tested against in-memory SQLite databases
// covering query semantics, ranking order, mutation consistency, and the
// cascade-delete contract.
package repository
