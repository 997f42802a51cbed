// Package domain defines the core domain types for the geocatalog
// metadata repository.
//
// # Core Types
//
// Record represents one catalog entry (dataset, service, or collection)
// stored as a single wide row with an embedded XML metadata document and
// a derived full-text column.
//
// Constraint, Sort, and Rank describe one query call: an opaque boolean
// filter with bound values, explicit column ordering, and spatial
// relevance ordering against a query geometry.
//
// # Queryable Mapping
//
// Queryables is the immutable binding table from abstract property names
// (title, bbox, time_begin, ...) to physical storage columns and XPath
// locators. It is supplied as configuration, built once at repository
// construction, and resolved through a flattened "_all" view.
//
// # Capabilities
//
// Capability records the spatial and full-text features detected for a
// connection target at startup. Detection failures leave capabilities at
// their defaults; absence of a capability is a valid steady state.
package domain
