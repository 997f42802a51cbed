// Package handler implements HTTP request handlers for the geocatalog API.
//
// This package provides the HTTP layer for the catalog REST API, handling
// requests for record search, retrieval, mutation, and catalog introspection.
//
// # Handlers
//
// CatalogHandler handles record operations: search with constraints, sorting
// and spatial relevance ranking, record lookup by identifier, collection
// listing, property domain summaries, inserts, full and targeted updates,
// and cascading deletes.
//
// Middleware provides request logging, panic recovery, and CORS support.
//
// # API Design
//
// All handlers follow REST conventions:
// - GET for retrieval
// - POST for creation and for search invocations with a body
// - PUT for updates
// - DELETE for removal
//
// Errors are returned as JSON with appropriate HTTP status codes.
// Request bodies are validated before processing.
//
// # Response Format
//
// Success responses return JSON data with appropriate status codes (200, 201).
// Error responses return JSON with {error, details} structure.
//
// # Server-Sent Events
//
// The /events endpoint streams catalog change events via SSE, allowing
// clients to follow inserts, updates, and deletes in real time.
package handler
