package sqldb

import (
	"database/sql"
	"errors"
	"log"
	"strings"

	"geocatalog/internal/domain"
)

// probeResult is the outcome of one capability probe: whether the feature
// is present and, when it is, the detail the engine needs (a version
// string, a column name).
type probeResult struct {
	supported bool
	detail    string
}

// detectCapability runs the dialect-specific probes once, at bind time.
// SQLite engines are always generic: spatial evaluation happens in the
// registered SQL functions. PostgreSQL engines are upgraded step by step
// as each probe succeeds, and a failed probe only means the feature is
// absent.
func detectCapability(db *sql.DB, dialect, table string) domain.Capability {
	capability := domain.Capability{Dialect: dialect, Spatial: domain.SpatialGeneric}
	if dialect != dialectPostgres {
		return capability
	}

	if res := probeSpatialVersion(db); res.supported {
		capability.Spatial = domain.SpatialWKT
		log.Printf("spatial extension detected: %s", res.detail)

		if res := probeGeometryColumn(db, table); res.supported {
			capability.Spatial = domain.SpatialNative
			capability.GeometryColumn = res.detail
			log.Printf("native geometry column detected: %s", res.detail)
		}
	}

	if res := probeFullTextIndex(db); res.supported {
		capability.FullText = true
	}
	log.Printf("full-text search enabled: %v", capability.FullText)

	return capability
}

func probeSpatialVersion(db *sql.DB) probeResult {
	var version string
	if err := db.QueryRow("SELECT postgis_version()").Scan(&version); err != nil {
		log.Printf("spatial extension not available: %v", err)
		return probeResult{}
	}
	return probeResult{supported: true, detail: version}
}

// probeGeometryColumn looks for a registered geometry column other than
// the generic WKT one; finding it switches the engine to native geometry
// operators against that column.
func probeGeometryColumn(db *sql.DB, table string) probeResult {
	name := baseTableName(table)
	var column string
	err := db.QueryRow(
		"SELECT f_geometry_column FROM geometry_columns WHERE f_table_name = $1 AND f_geometry_column != 'wkt_geometry' LIMIT 1",
		name).Scan(&column)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Printf("geometry column probe failed: %v", err)
		}
		return probeResult{}
	}
	return probeResult{supported: true, detail: column}
}

// probeFullTextIndex checks for the well-known GIN index on anytext.
func probeFullTextIndex(db *sql.DB) probeResult {
	var relname string
	err := db.QueryRow("SELECT relname FROM pg_class WHERE relname = 'fts_gin_idx'").Scan(&relname)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Printf("full-text index probe failed: %v", err)
		}
		return probeResult{}
	}
	return probeResult{supported: true, detail: relname}
}

// baseTableName strips an optional schema qualifier.
func baseTableName(table string) string {
	if i := strings.LastIndex(table, "."); i >= 0 {
		return table[i+1:]
	}
	return table
}
