package domain

// Record is one catalog entry: a dataset, service, or collection
// description stored as a single wide row. The XML column holds the full
// metadata document; AnyText is a derived free-text blob extracted from
// that document and must never diverge from it after a mutation.
type Record struct {
	// Core columns; nothing happens without these.
	Identifier   string `json:"identifier"`
	Typename     string `json:"typename"`
	Schema       string `json:"schema"`
	MDSource     string `json:"mdsource"`
	InsertDate   string `json:"insert_date"`
	XML          string `json:"xml"`
	AnyText      string `json:"anytext,omitempty"`
	Metadata     string `json:"metadata,omitempty"`
	MetadataType string `json:"metadata_type"`
	Language     string `json:"language,omitempty"`

	// Identification
	Type             string `json:"type,omitempty"`
	Title            string `json:"title,omitempty"`
	TitleAlternate   string `json:"title_alternate,omitempty"`
	Abstract         string `json:"abstract,omitempty"`
	Edition          string `json:"edition,omitempty"`
	Keywords         string `json:"keywords,omitempty"`
	KeywordsType     string `json:"keywordstype,omitempty"`
	Themes           string `json:"themes,omitempty"`
	ParentIdentifier string `json:"parentidentifier,omitempty"`
	Relation         string `json:"relation,omitempty"`
	TimeBegin        string `json:"time_begin,omitempty"`
	TimeEnd          string `json:"time_end,omitempty"`
	TopicCategory    string `json:"topicategory,omitempty"`
	ResourceLanguage string `json:"resourcelanguage,omitempty"`

	// Attribution
	Creator      string `json:"creator,omitempty"`
	Publisher    string `json:"publisher,omitempty"`
	Contributor  string `json:"contributor,omitempty"`
	Organization string `json:"organization,omitempty"`

	// Security
	SecurityConstraints string `json:"securityconstraints,omitempty"`
	AccessConstraints   string `json:"accessconstraints,omitempty"`
	OtherConstraints    string `json:"otherconstraints,omitempty"`

	// Dates
	Date            string `json:"date,omitempty"`
	DateRevision    string `json:"date_revision,omitempty"`
	DateCreation    string `json:"date_creation,omitempty"`
	DatePublication string `json:"date_publication,omitempty"`
	DateModified    string `json:"date_modified,omitempty"`

	Format string `json:"format,omitempty"`
	Source string `json:"source,omitempty"`

	// Geospatial
	CRS           string   `json:"crs,omitempty"`
	GeodesCode    string   `json:"geodescode,omitempty"`
	Denominator   string   `json:"denominator,omitempty"`
	DistanceValue string   `json:"distancevalue,omitempty"`
	DistanceUOM   string   `json:"distanceuom,omitempty"`
	WKTGeometry   string   `json:"wkt_geometry,omitempty"`
	VertExtentMin *float64 `json:"vert_extent_min,omitempty"`
	VertExtentMax *float64 `json:"vert_extent_max,omitempty"`

	// Service
	ServiceType          string `json:"servicetype,omitempty"`
	ServiceTypeVersion   string `json:"servicetypeversion,omitempty"`
	Operation            string `json:"operation,omitempty"`
	CouplingType         string `json:"couplingtype,omitempty"`
	OperatesOn           string `json:"operateson,omitempty"`
	OperatesOnIdentifier string `json:"operatesonidentifier,omitempty"`
	OperatesOnName       string `json:"operatesoname,omitempty"`

	// INSPIRE
	Degree                string `json:"degree,omitempty"`
	Classification        string `json:"classification,omitempty"`
	ConditionApplying     string `json:"conditionapplyingtoaccessanduse,omitempty"`
	Lineage               string `json:"lineage,omitempty"`
	ResponsiblePartyRole  string `json:"responsiblepartyrole,omitempty"`
	SpecificationTitle    string `json:"specificationtitle,omitempty"`
	SpecificationDate     string `json:"specificationdate,omitempty"`
	SpecificationDateType string `json:"specificationdatetype,omitempty"`

	// Earth observation
	Platform                   string `json:"platform,omitempty"`
	Instrument                 string `json:"instrument,omitempty"`
	SensorType                 string `json:"sensortype,omitempty"`
	CloudCover                 string `json:"cloudcover,omitempty"`
	Bands                      string `json:"bands,omitempty"` // JSON list: name, units, min, max
	IlluminationElevationAngle string `json:"illuminationelevationangle,omitempty"`

	// Distribution
	Links    string `json:"links,omitempty"`    // JSON list: name, description, protocol, url
	Contacts string `json:"contacts,omitempty"` // JSON list of contact properties
}

// CollectionTypenames mark records that are catalog collections regardless
// of whether any child references them as a parent.
var CollectionTypenames = []string{"stac:Collection"}
