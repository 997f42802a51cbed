package sqldb

import (
	"context"
	"fmt"
	"strings"

	"geocatalog/internal/domain"
)

// columnDef declares one storage column of the records table. The list
// below is the versioned record schema; the repository never introspects
// the live database for its column set.
type columnDef struct {
	name    string
	sqlType string
	notNull bool
	indexed bool
}

// recordColumnDefs is the canonical column list.
//
// CRITICAL: order must match between recordColumnDefs, recordRow
// scanArgs(), and recordValues() in helpers.go.
var recordColumnDefs = []columnDef{
	// core; nothing happens without these
	{"identifier", "TEXT", true, false}, // primary key
	{"typename", "TEXT", true, true},
	{"schema", "TEXT", true, true},
	{"mdsource", "TEXT", true, true},
	{"insert_date", "TEXT", true, true},
	{"xml", "TEXT", true, false},
	{"anytext", "TEXT", true, false},
	{"metadata", "TEXT", false, false},
	{"metadata_type", "TEXT", true, false},
	{"language", "TEXT", false, true},

	// identification
	{"type", "TEXT", false, true},
	{"title", "TEXT", false, true},
	{"title_alternate", "TEXT", false, true},
	{"abstract", "TEXT", false, true},
	{"edition", "TEXT", false, true},
	{"keywords", "TEXT", false, true},
	{"keywordstype", "TEXT", false, true},
	{"themes", "TEXT", false, true},
	{"parentidentifier", "TEXT", false, true},
	{"relation", "TEXT", false, true},
	{"time_begin", "TEXT", false, true},
	{"time_end", "TEXT", false, true},
	{"topicategory", "TEXT", false, true},
	{"resourcelanguage", "TEXT", false, true},

	// attribution
	{"creator", "TEXT", false, true},
	{"publisher", "TEXT", false, true},
	{"contributor", "TEXT", false, true},
	{"organization", "TEXT", false, true},

	// security
	{"securityconstraints", "TEXT", false, true},
	{"accessconstraints", "TEXT", false, true},
	{"otherconstraints", "TEXT", false, true},

	// dates
	{"date", "TEXT", false, true},
	{"date_revision", "TEXT", false, true},
	{"date_creation", "TEXT", false, true},
	{"date_publication", "TEXT", false, true},
	{"date_modified", "TEXT", false, true},

	{"format", "TEXT", false, true},
	{"source", "TEXT", false, true},

	// geospatial
	{"crs", "TEXT", false, true},
	{"geodescode", "TEXT", false, true},
	{"denominator", "TEXT", false, true},
	{"distancevalue", "TEXT", false, true},
	{"distanceuom", "TEXT", false, true},
	{"wkt_geometry", "TEXT", false, false},
	{"vert_extent_min", "FLOAT", false, true},
	{"vert_extent_max", "FLOAT", false, true},

	// service
	{"servicetype", "TEXT", false, true},
	{"servicetypeversion", "TEXT", false, true},
	{"operation", "TEXT", false, true},
	{"couplingtype", "TEXT", false, true},
	{"operateson", "TEXT", false, true},
	{"operatesonidentifier", "TEXT", false, true},
	{"operatesoname", "TEXT", false, true},

	// inspire
	{"degree", "TEXT", false, true},
	{"classification", "TEXT", false, true},
	{"conditionapplyingtoaccessanduse", "TEXT", false, true},
	{"lineage", "TEXT", false, true},
	{"responsiblepartyrole", "TEXT", false, true},
	{"specificationtitle", "TEXT", false, true},
	{"specificationdate", "TEXT", false, true},
	{"specificationdatetype", "TEXT", false, true},

	// eo
	{"platform", "TEXT", false, true},
	{"instrument", "TEXT", false, true},
	{"sensortype", "TEXT", false, true},
	{"cloudcover", "TEXT", false, true},
	{"bands", "TEXT", false, true}, // JSON list: name, units, min, max
	{"illuminationelevationangle", "TEXT", false, true},

	// distribution
	{"links", "TEXT", false, true},    // JSON list: name, description, protocol, url
	{"contacts", "TEXT", false, true}, // JSON list of contact properties
}

// internalColumns are storage details never exposed by Describe.
var internalColumns = map[string]bool{
	"anytext":       true,
	"metadata":      true,
	"metadata_type": true,
	"xml":           true,
}

var recordColumns = joinColumnNames()

func joinColumnNames() string {
	names := make([]string, len(recordColumnDefs))
	for i, def := range recordColumnDefs {
		names[i] = def.name
	}
	return strings.Join(names, ", ")
}

// Setup creates the records table and its indexes if they do not exist.
// Table provisioning is bootstrap work, not engine logic; it lives here
// so cmd/server and the tests can stand up a catalog from the versioned
// schema.
func (r *Repository) Setup(ctx context.Context) error {
	var cols []string
	for _, def := range recordColumnDefs {
		col := def.name + " " + def.sqlType
		if def.name == "identifier" {
			col += " PRIMARY KEY"
		}
		if def.notNull {
			col += " NOT NULL"
		}
		cols = append(cols, col)
	}

	ddl := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", r.table, strings.Join(cols, ", "))
	if _, err := r.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create table %s: %w", r.table, err)
	}

	ixPrefix := strings.ReplaceAll(r.table, ".", "_")
	for _, def := range recordColumnDefs {
		if !def.indexed {
			continue
		}
		ix := fmt.Sprintf("CREATE INDEX IF NOT EXISTS ix_%s_%s ON %s (%s)",
			ixPrefix, def.name, r.table, def.name)
		if _, err := r.db.ExecContext(ctx, ix); err != nil {
			return fmt.Errorf("create index on %s: %w", def.name, err)
		}
	}
	return nil
}

// Describe returns the property schema of the bound table: every storage
// column except internal ones, with a best-effort type classification, an
// identifier marker, and the synthetic primary-geometry property.
func (r *Repository) Describe() map[string]domain.Property {
	typeMappings := map[string]string{
		"TEXT":    "string",
		"VARCHAR": "string",
		"FLOAT":   "number",
	}

	properties := map[string]domain.Property{
		"geometry": {
			Ref:  "https://geojson.org/schema/Polygon.json",
			Role: "primary-geometry",
		},
	}

	for _, def := range recordColumnDefs {
		if internalColumns[def.name] {
			continue
		}
		prop := domain.Property{
			Title: def.name,
			Type:  typeMappings[def.sqlType],
		}
		if def.name == "identifier" {
			prop.Role = "id"
		}
		properties[def.name] = prop
	}

	return properties
}
