package domain

// Constraint is an opaque boolean predicate over record columns plus the
// ordered values bound to its placeholders. Constraints are built by the
// caller's filter layer; the repository applies them verbatim.
type Constraint struct {
	Where  string `json:"where"`
	Values []any  `json:"values,omitempty"`
}

// SortOrder is the direction of an explicit sort.
type SortOrder string

const (
	SortAscending  SortOrder = "ASC"
	SortDescending SortOrder = "DESC"
)

// Sort requests ordering on a resolved queryable. When Spatial is set the
// sort key is the computed geometry area of the column rather than its raw
// value.
type Sort struct {
	PropertyName string    `json:"propertyname"`
	Order        SortOrder `json:"order"`
	Spatial      bool      `json:"spatial,omitempty"`
}

// Rank requests spatial-relevance ordering against a query geometry. It
// travels with the query call itself, so one caller's ranking intent can
// never leak into another caller's query.
type Rank struct {
	QueryGeometry string `json:"geometry"`
}

// PropertyUpdate sets one queryable to a new value across every record
// matched by a constraint. The queryable must be bound to both a storage
// column and an XPath locator.
type PropertyUpdate struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// DomainQueryType selects how a property domain query summarizes values.
type DomainQueryType string

const (
	DomainList  DomainQueryType = "list"
	DomainRange DomainQueryType = "range"
)

// DomainValue is one enumerated value of a property domain, with its
// frequency when counting was requested.
type DomainValue struct {
	Value     string `json:"value"`
	Frequency int    `json:"frequency,omitempty"`
}

// DomainResult holds the outcome of a property domain query: Min/Max for
// range queries, Values for enumerations.
type DomainResult struct {
	Min    string        `json:"min,omitempty"`
	Max    string        `json:"max,omitempty"`
	Values []DomainValue `json:"values,omitempty"`
}

// Property describes one exposed storage column in the repository schema.
type Property struct {
	Title string `json:"title,omitempty"`
	Type  string `json:"type,omitempty"`
	Ref   string `json:"$ref,omitempty"`
	Role  string `json:"x-ogc-role,omitempty"`
}
