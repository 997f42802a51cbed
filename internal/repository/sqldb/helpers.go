package sqldb

import (
	"database/sql"
	"strings"

	"geocatalog/internal/domain"
)

// =============================================================================
// NULL HELPERS
// =============================================================================

func nullToString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

func stringToNull(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullToFloatPtr(nf sql.NullFloat64) *float64 {
	if !nf.Valid {
		return nil
	}
	f := nf.Float64
	return &f
}

func floatPtrToNull(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

// =============================================================================
// ROW SCANNING
// =============================================================================

// recordRow mirrors the records table with scan-safe types. Core columns
// are NOT NULL and scan as plain strings; everything else uses sql.Null*.
type recordRow struct {
	Identifier   string
	Typename     string
	Schema       string
	MDSource     string
	InsertDate   string
	XML          string
	AnyText      string
	Metadata     sql.NullString
	MetadataType string
	Language     sql.NullString

	Type             sql.NullString
	Title            sql.NullString
	TitleAlternate   sql.NullString
	Abstract         sql.NullString
	Edition          sql.NullString
	Keywords         sql.NullString
	KeywordsType     sql.NullString
	Themes           sql.NullString
	ParentIdentifier sql.NullString
	Relation         sql.NullString
	TimeBegin        sql.NullString
	TimeEnd          sql.NullString
	TopicCategory    sql.NullString
	ResourceLanguage sql.NullString

	Creator      sql.NullString
	Publisher    sql.NullString
	Contributor  sql.NullString
	Organization sql.NullString

	SecurityConstraints sql.NullString
	AccessConstraints   sql.NullString
	OtherConstraints    sql.NullString

	Date            sql.NullString
	DateRevision    sql.NullString
	DateCreation    sql.NullString
	DatePublication sql.NullString
	DateModified    sql.NullString

	Format sql.NullString
	Source sql.NullString

	CRS           sql.NullString
	GeodesCode    sql.NullString
	Denominator   sql.NullString
	DistanceValue sql.NullString
	DistanceUOM   sql.NullString
	WKTGeometry   sql.NullString
	VertExtentMin sql.NullFloat64
	VertExtentMax sql.NullFloat64

	ServiceType          sql.NullString
	ServiceTypeVersion   sql.NullString
	Operation            sql.NullString
	CouplingType         sql.NullString
	OperatesOn           sql.NullString
	OperatesOnIdentifier sql.NullString
	OperatesOnName       sql.NullString

	Degree                sql.NullString
	Classification        sql.NullString
	ConditionApplying     sql.NullString
	Lineage               sql.NullString
	ResponsiblePartyRole  sql.NullString
	SpecificationTitle    sql.NullString
	SpecificationDate     sql.NullString
	SpecificationDateType sql.NullString

	Platform                   sql.NullString
	Instrument                 sql.NullString
	SensorType                 sql.NullString
	CloudCover                 sql.NullString
	Bands                      sql.NullString
	IlluminationElevationAngle sql.NullString

	Links    sql.NullString
	Contacts sql.NullString
}

// scanArgs returns pointers in recordColumnDefs order.
//
// CRITICAL: keep this order in sync with recordColumnDefs and
// recordValues, or rows scan into the wrong fields.
func (rr *recordRow) scanArgs() []any {
	return []any{
		&rr.Identifier, &rr.Typename, &rr.Schema, &rr.MDSource, &rr.InsertDate,
		&rr.XML, &rr.AnyText, &rr.Metadata, &rr.MetadataType, &rr.Language,

		&rr.Type, &rr.Title, &rr.TitleAlternate, &rr.Abstract, &rr.Edition,
		&rr.Keywords, &rr.KeywordsType, &rr.Themes, &rr.ParentIdentifier,
		&rr.Relation, &rr.TimeBegin, &rr.TimeEnd, &rr.TopicCategory,
		&rr.ResourceLanguage,

		&rr.Creator, &rr.Publisher, &rr.Contributor, &rr.Organization,

		&rr.SecurityConstraints, &rr.AccessConstraints, &rr.OtherConstraints,

		&rr.Date, &rr.DateRevision, &rr.DateCreation, &rr.DatePublication,
		&rr.DateModified,

		&rr.Format, &rr.Source,

		&rr.CRS, &rr.GeodesCode, &rr.Denominator, &rr.DistanceValue,
		&rr.DistanceUOM, &rr.WKTGeometry, &rr.VertExtentMin, &rr.VertExtentMax,

		&rr.ServiceType, &rr.ServiceTypeVersion, &rr.Operation,
		&rr.CouplingType, &rr.OperatesOn, &rr.OperatesOnIdentifier,
		&rr.OperatesOnName,

		&rr.Degree, &rr.Classification, &rr.ConditionApplying, &rr.Lineage,
		&rr.ResponsiblePartyRole, &rr.SpecificationTitle, &rr.SpecificationDate,
		&rr.SpecificationDateType,

		&rr.Platform, &rr.Instrument, &rr.SensorType, &rr.CloudCover,
		&rr.Bands, &rr.IlluminationElevationAngle,

		&rr.Links, &rr.Contacts,
	}
}

func (rr *recordRow) toDomain() domain.Record {
	return domain.Record{
		Identifier:   rr.Identifier,
		Typename:     rr.Typename,
		Schema:       rr.Schema,
		MDSource:     rr.MDSource,
		InsertDate:   rr.InsertDate,
		XML:          rr.XML,
		AnyText:      rr.AnyText,
		Metadata:     nullToString(rr.Metadata),
		MetadataType: rr.MetadataType,
		Language:     nullToString(rr.Language),

		Type:             nullToString(rr.Type),
		Title:            nullToString(rr.Title),
		TitleAlternate:   nullToString(rr.TitleAlternate),
		Abstract:         nullToString(rr.Abstract),
		Edition:          nullToString(rr.Edition),
		Keywords:         nullToString(rr.Keywords),
		KeywordsType:     nullToString(rr.KeywordsType),
		Themes:           nullToString(rr.Themes),
		ParentIdentifier: nullToString(rr.ParentIdentifier),
		Relation:         nullToString(rr.Relation),
		TimeBegin:        nullToString(rr.TimeBegin),
		TimeEnd:          nullToString(rr.TimeEnd),
		TopicCategory:    nullToString(rr.TopicCategory),
		ResourceLanguage: nullToString(rr.ResourceLanguage),

		Creator:      nullToString(rr.Creator),
		Publisher:    nullToString(rr.Publisher),
		Contributor:  nullToString(rr.Contributor),
		Organization: nullToString(rr.Organization),

		SecurityConstraints: nullToString(rr.SecurityConstraints),
		AccessConstraints:   nullToString(rr.AccessConstraints),
		OtherConstraints:    nullToString(rr.OtherConstraints),

		Date:            nullToString(rr.Date),
		DateRevision:    nullToString(rr.DateRevision),
		DateCreation:    nullToString(rr.DateCreation),
		DatePublication: nullToString(rr.DatePublication),
		DateModified:    nullToString(rr.DateModified),

		Format: nullToString(rr.Format),
		Source: nullToString(rr.Source),

		CRS:           nullToString(rr.CRS),
		GeodesCode:    nullToString(rr.GeodesCode),
		Denominator:   nullToString(rr.Denominator),
		DistanceValue: nullToString(rr.DistanceValue),
		DistanceUOM:   nullToString(rr.DistanceUOM),
		WKTGeometry:   nullToString(rr.WKTGeometry),
		VertExtentMin: nullToFloatPtr(rr.VertExtentMin),
		VertExtentMax: nullToFloatPtr(rr.VertExtentMax),

		ServiceType:          nullToString(rr.ServiceType),
		ServiceTypeVersion:   nullToString(rr.ServiceTypeVersion),
		Operation:            nullToString(rr.Operation),
		CouplingType:         nullToString(rr.CouplingType),
		OperatesOn:           nullToString(rr.OperatesOn),
		OperatesOnIdentifier: nullToString(rr.OperatesOnIdentifier),
		OperatesOnName:       nullToString(rr.OperatesOnName),

		Degree:                nullToString(rr.Degree),
		Classification:        nullToString(rr.Classification),
		ConditionApplying:     nullToString(rr.ConditionApplying),
		Lineage:               nullToString(rr.Lineage),
		ResponsiblePartyRole:  nullToString(rr.ResponsiblePartyRole),
		SpecificationTitle:    nullToString(rr.SpecificationTitle),
		SpecificationDate:     nullToString(rr.SpecificationDate),
		SpecificationDateType: nullToString(rr.SpecificationDateType),

		Platform:                   nullToString(rr.Platform),
		Instrument:                 nullToString(rr.Instrument),
		SensorType:                 nullToString(rr.SensorType),
		CloudCover:                 nullToString(rr.CloudCover),
		Bands:                      nullToString(rr.Bands),
		IlluminationElevationAngle: nullToString(rr.IlluminationElevationAngle),

		Links:    nullToString(rr.Links),
		Contacts: nullToString(rr.Contacts),
	}
}

// recordValues returns bind values in recordColumnDefs order.
//
// CRITICAL: keep in sync with recordColumnDefs and scanArgs.
func recordValues(rec *domain.Record) []any {
	return []any{
		rec.Identifier, rec.Typename, rec.Schema, rec.MDSource, rec.InsertDate,
		rec.XML, rec.AnyText, stringToNull(rec.Metadata), rec.MetadataType,
		stringToNull(rec.Language),

		stringToNull(rec.Type), stringToNull(rec.Title),
		stringToNull(rec.TitleAlternate), stringToNull(rec.Abstract),
		stringToNull(rec.Edition), stringToNull(rec.Keywords),
		stringToNull(rec.KeywordsType), stringToNull(rec.Themes),
		stringToNull(rec.ParentIdentifier), stringToNull(rec.Relation),
		stringToNull(rec.TimeBegin), stringToNull(rec.TimeEnd),
		stringToNull(rec.TopicCategory), stringToNull(rec.ResourceLanguage),

		stringToNull(rec.Creator), stringToNull(rec.Publisher),
		stringToNull(rec.Contributor), stringToNull(rec.Organization),

		stringToNull(rec.SecurityConstraints),
		stringToNull(rec.AccessConstraints),
		stringToNull(rec.OtherConstraints),

		stringToNull(rec.Date), stringToNull(rec.DateRevision),
		stringToNull(rec.DateCreation), stringToNull(rec.DatePublication),
		stringToNull(rec.DateModified),

		stringToNull(rec.Format), stringToNull(rec.Source),

		stringToNull(rec.CRS), stringToNull(rec.GeodesCode),
		stringToNull(rec.Denominator), stringToNull(rec.DistanceValue),
		stringToNull(rec.DistanceUOM), stringToNull(rec.WKTGeometry),
		floatPtrToNull(rec.VertExtentMin), floatPtrToNull(rec.VertExtentMax),

		stringToNull(rec.ServiceType), stringToNull(rec.ServiceTypeVersion),
		stringToNull(rec.Operation), stringToNull(rec.CouplingType),
		stringToNull(rec.OperatesOn), stringToNull(rec.OperatesOnIdentifier),
		stringToNull(rec.OperatesOnName),

		stringToNull(rec.Degree), stringToNull(rec.Classification),
		stringToNull(rec.ConditionApplying), stringToNull(rec.Lineage),
		stringToNull(rec.ResponsiblePartyRole),
		stringToNull(rec.SpecificationTitle),
		stringToNull(rec.SpecificationDate),
		stringToNull(rec.SpecificationDateType),

		stringToNull(rec.Platform), stringToNull(rec.Instrument),
		stringToNull(rec.SensorType), stringToNull(rec.CloudCover),
		stringToNull(rec.Bands), stringToNull(rec.IlluminationElevationAngle),

		stringToNull(rec.Links), stringToNull(rec.Contacts),
	}
}

func scanRecords(rows *sql.Rows) ([]domain.Record, error) {
	records := []domain.Record{}
	for rows.Next() {
		var rr recordRow
		if err := rows.Scan(rr.scanArgs()...); err != nil {
			return nil, err
		}
		records = append(records, rr.toDomain())
	}
	return records, rows.Err()
}

// placeholders returns "?, ?, ..." with n markers.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	marks := make([]string, n)
	for i := range marks {
		marks[i] = "?"
	}
	return strings.Join(marks, ", ")
}
