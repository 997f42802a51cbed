// Package service implements business logic for the geocatalog application.
//
// This package provides the service layer that coordinates between the HTTP
// handlers and the repository layer, implementing business rules, validation,
// and event publishing.
//
// # Services
//
// CatalogService manages record search, retrieval, and mutation. Searches
// combine a constraint, an optional sort, and optional spatial relevance
// ranking; mutations cover inserts, full record replacement, targeted
// property updates, and cascading deletes.
//
// # Event System
//
// The service publishes events via EventBus so connected clients can follow
// catalog changes in real time. Event types include record insertion, record
// updates, property updates, deletions, and configuration reloads.
//
// # Design Principles
//
// - Services own business logic and validation
// - Repository pattern for data access
// - Event-driven for real-time updates
// - Context-aware for cancellation and timeouts
package service
