package sqldb

import (
	"database/sql"
	"fmt"
	"strconv"

	sqlite3 "github.com/mattn/go-sqlite3"

	"geocatalog/internal/geo"
	"geocatalog/internal/metadata"
)

// sqliteDriverName registers a dedicated driver so the catalog SQL
// functions are installed on every new SQLite connection without touching
// the stock sqlite3 driver.
const sqliteDriverName = "sqlite3_catalog"

func init() {
	sql.Register(sqliteDriverName, &sqlite3.SQLiteDriver{
		ConnectHook: registerCatalogFunctions,
	})
}

// sqlRanker backs get_spatial_overlay_rank. ConfigureRankWeights must be
// called before the first engine is opened; connections created later
// pick up the new weights.
var sqlRanker = geo.NewRanker()

func ConfigureRankWeights(kt, kq float64) {
	sqlRanker = geo.Ranker{KT: kt, KQ: kq}
}

func registerCatalogFunctions(conn *sqlite3.SQLiteConn) error {
	funcs := []struct {
		name string
		impl any
	}{
		{"query_spatial", querySpatial},
		{"get_anytext", getAnyText},
		{"get_geometry_area", getGeometryArea},
		{"get_spatial_overlay_rank", getSpatialOverlayRank},
	}
	for _, f := range funcs {
		if err := conn.RegisterFunc(f.name, f.impl, true); err != nil {
			return fmt.Errorf("register %s: %w", f.name, err)
		}
	}
	return nil
}

// querySpatial evaluates a named spatial predicate between a stored
// geometry and a query geometry, returning "true" or "false" so the
// result can be compared directly in a WHERE clause. An unknown predicate
// fails the whole query; an unparsable geometry is just a non-match.
func querySpatial(dataWKT, inputWKT, predicate, distance string) (string, error) {
	d, _ := strconv.ParseFloat(distance, 64)
	match, err := geo.Evaluate(dataWKT, inputWKT, predicate, d)
	if err != nil {
		return "", err
	}
	if match {
		return "true", nil
	}
	return "false", nil
}

// getAnyText extracts the searchable text of an XML document. Malformed
// documents contribute no tokens rather than failing the statement.
func getAnyText(xmlText string) string {
	text, err := metadata.AnyText(xmlText)
	if err != nil {
		return ""
	}
	return text
}

func getGeometryArea(wkt string) string {
	return strconv.FormatFloat(geo.Area(wkt), 'f', -1, 64)
}

func getSpatialOverlayRank(targetWKT, queryWKT string) string {
	return strconv.FormatFloat(sqlRanker.OverlayRank(targetWKT, queryWKT), 'f', -1, 64)
}
