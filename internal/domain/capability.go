package domain

// SpatialSupport classifies what the backend can do with geometries.
type SpatialSupport string

const (
	// SpatialGeneric means plain relational storage; spatial evaluation
	// happens through registered SQL functions over WKT text.
	SpatialGeneric SpatialSupport = "generic"
	// SpatialWKT means a spatial extension is installed and geometries
	// are stored as WKT text.
	SpatialWKT SpatialSupport = "spatial+wkt"
	// SpatialNative means the bound table carries a native geometry
	// column managed by the spatial extension.
	SpatialNative SpatialSupport = "spatial+native"
)

// Capability records what was detected for one connection target. It is
// computed once at repository construction and never re-probed; absence of
// a capability is the default state, not an error.
type Capability struct {
	Dialect        string         `json:"dialect"`
	Spatial        SpatialSupport `json:"spatial"`
	GeometryColumn string         `json:"geometry_column,omitempty"`
	FullText       bool           `json:"fulltext"`
}
