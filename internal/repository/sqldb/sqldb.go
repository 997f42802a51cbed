// Package sqldb implements the catalog repository on database/sql, with
// SQLite and PostgreSQL dialects. Engines are pooled per connection URL
// by EngineRegistry; each Repository binds one engine to one records
// table plus an optional mask filter.
package sqldb

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"geocatalog/internal/domain"
)

// Options configure a Repository binding.
type Options struct {
	// Database is the connection URL (sqlite:// or postgresql://).
	Database string
	// Table is the records table, optionally schema-qualified.
	Table string
	// Filter is a SQL fragment ANDed into every statement the
	// repository issues, reads and mutations both. Empty means the
	// whole table.
	Filter string
	// Queryables resolve public property names to columns and XPaths.
	Queryables domain.Queryables
	// Namespaces are the XML prefix bindings used when rewriting
	// documents during property updates.
	Namespaces map[string]string
}

// Repository is the sqldb implementation of repository.Repository.
type Repository struct {
	db         *sql.DB
	dialect    string
	table      string
	filter     string
	capability domain.Capability
	queryables domain.Queryables
	namespaces map[string]string

	// well-known columns, resolved once at bind time
	idCol      string
	parentCol  string
	typeCol    string
	geomCol    string
	sourceCol  string
	insertCol  string
	xmlCol     string
	anytextCol string
}

// New binds a repository to the pooled engine for opts.Database. The
// well-known queryables (identifier, typename, bbox, ...) must resolve or
// the binding fails; later stages trust those columns without rechecking.
func New(registry *EngineRegistry, opts Options) (*Repository, error) {
	if opts.Table == "" {
		opts.Table = "records"
	}

	db, dialect, err := registry.Open(opts.Database)
	if err != nil {
		return nil, err
	}

	r := &Repository{
		db:         db,
		dialect:    dialect,
		table:      opts.Table,
		filter:     opts.Filter,
		queryables: opts.Queryables,
		namespaces: opts.Namespaces,
	}

	for _, bind := range []struct {
		name string
		dst  *string
	}{
		{"identifier", &r.idCol},
		{"parentidentifier", &r.parentCol},
		{"typename", &r.typeCol},
		{"bbox", &r.geomCol},
		{"mdsource", &r.sourceCol},
		{"insert_date", &r.insertCol},
		{"xml", &r.xmlCol},
		{"anytext", &r.anytextCol},
	} {
		q, err := r.queryables.Resolve(bind.name)
		if err != nil {
			return nil, fmt.Errorf("bind repository: %w", err)
		}
		*bind.dst = q.DBCol
	}

	r.capability = detectCapability(db, dialect, r.table)
	if r.capability.Spatial == domain.SpatialNative {
		r.geomCol = r.capability.GeometryColumn
	}

	log.Printf("repository bound: table=%s dialect=%s spatial=%s",
		r.table, r.dialect, r.capability.Spatial)
	return r, nil
}

// Capability reports what was detected at bind time.
func (r *Repository) Capability() domain.Capability {
	return r.capability
}

// Close releases the binding. The underlying engine is owned by the
// registry and stays open for other bindings to the same database.
func (r *Repository) Close() error {
	return nil
}

// Ping issues a trivial dialect-appropriate statement.
func (r *Repository) Ping(ctx context.Context) error {
	stmt := "SELECT version()"
	if r.dialect == dialectSQLite {
		stmt = "SELECT sqlite_version()"
	}
	var version string
	if err := r.db.QueryRowContext(ctx, stmt).Scan(&version); err != nil {
		return fmt.Errorf("ping repository: %w", err)
	}
	return nil
}

// WaitReady pings until the database answers or ctx expires. Useful at
// startup when the database container may still be coming up.
func (r *Repository) WaitReady(ctx context.Context, interval time.Duration) error {
	for {
		err := r.Ping(ctx)
		if err == nil {
			return nil
		}
		log.Printf("repository not ready, retrying in %s: %v", interval, err)
		select {
		case <-ctx.Done():
			return fmt.Errorf("wait for repository: %w", ctx.Err())
		case <-time.After(interval):
		}
	}
}

// RebuildIndexes rebuilds the indexes of the records table.
func (r *Repository) RebuildIndexes(ctx context.Context) error {
	stmt := "REINDEX " + r.table
	if r.dialect == dialectPostgres {
		stmt = "REINDEX TABLE " + r.table
	}
	if _, err := r.db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("rebuild indexes: %w", err)
	}
	return nil
}

// Optimize reclaims space and refreshes planner statistics.
func (r *Repository) Optimize(ctx context.Context) error {
	stmts := []string{"VACUUM", "ANALYZE " + r.table}
	if r.dialect == dialectPostgres {
		stmts = []string{"VACUUM ANALYZE " + r.table}
	}
	for _, stmt := range stmts {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("optimize repository: %w", err)
		}
	}
	return nil
}

// whereClause combines the repository mask with any number of caller
// constraints. Each non-empty clause is parenthesized and ANDed; bind
// values are concatenated in clause order.
func (r *Repository) whereClause(constraints ...*domain.Constraint) (string, []any) {
	var parts []string
	var args []any
	if r.filter != "" {
		parts = append(parts, "("+r.filter+")")
	}
	for _, c := range constraints {
		if c == nil || c.Where == "" {
			continue
		}
		parts = append(parts, "("+c.Where+")")
		args = append(args, c.Values...)
	}
	if len(parts) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(parts, " AND "), args
}

// rebind rewrites ? placeholders to the $n form PostgreSQL expects.
// Constraint fragments come from the filter layer and never carry ?
// inside string literals.
func (r *Repository) rebind(query string) string {
	if r.dialect != dialectPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, ch := range query {
		if ch == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(ch)
	}
	return b.String()
}
