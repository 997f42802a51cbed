package config

import "geocatalog/internal/domain"

// DefaultNamespaces resolves the XPath prefixes used by the built-in
// mapping table.
func DefaultNamespaces() map[string]string {
	return map[string]string{
		"csw": "http://www.opengis.net/cat/csw/2.0.2",
		"dc":  "http://purl.org/dc/elements/1.1/",
		"dct": "http://purl.org/dc/terms/",
		"ows": "http://www.opengis.net/ows",
	}
}

// CoreMappings binds the abstract property names every catalog model
// shares to their canonical storage columns. These always resolve, no
// matter what typename mappings the config declares.
func CoreMappings() map[string]domain.Queryable {
	return map[string]domain.Queryable{
		"identifier":       {DBCol: "identifier"},
		"typename":         {DBCol: "typename"},
		"schema":           {DBCol: "schema"},
		"mdsource":         {DBCol: "mdsource"},
		"insert_date":      {DBCol: "insert_date"},
		"updated":          {DBCol: "insert_date"},
		"xml":              {DBCol: "xml"},
		"anytext":          {DBCol: "anytext"},
		"language":         {DBCol: "language"},
		"type":             {DBCol: "type"},
		"title":            {DBCol: "title"},
		"description":      {DBCol: "abstract"},
		"abstract":         {DBCol: "abstract"},
		"edition":          {DBCol: "edition"},
		"keywords":         {DBCol: "keywords"},
		"parentidentifier": {DBCol: "parentidentifier"},
		"collections":      {DBCol: "parentidentifier"},
		"relation":         {DBCol: "relation"},
		"bbox":             {DBCol: "wkt_geometry"},
		"date":             {DBCol: "date"},
		"datetime":         {DBCol: "date"},
		"time_begin":       {DBCol: "time_begin"},
		"time_end":         {DBCol: "time_end"},
		"format":           {DBCol: "format"},
		"source":           {DBCol: "source"},
		"creator":          {DBCol: "creator"},
		"publisher":        {DBCol: "publisher"},
		"contributor":      {DBCol: "contributor"},
		"organization":     {DBCol: "organization"},
		"platform":         {DBCol: "platform"},
		"instrument":       {DBCol: "instrument"},
		"sensortype":       {DBCol: "sensortype"},
		"off_nadir":        {DBCol: "illuminationelevationangle"},
	}
}

// DefaultTypenames is the built-in per-typename mapping table: Dublin
// Core bindings for csw:Record, including the XPath locators that make
// those queryables writable through property updates.
func DefaultTypenames() map[string]map[string]Queryable {
	return map[string]map[string]Queryable{
		"csw:Record": {
			"title":             {DBCol: "title", XPath: "//dc:title"},
			"abstract":          {DBCol: "abstract", XPath: "//dct:abstract"},
			"keywords":          {DBCol: "keywords", XPath: "//dc:subject"},
			"format":            {DBCol: "format", XPath: "//dc:format"},
			"creator":           {DBCol: "creator", XPath: "//dc:creator"},
			"publisher":         {DBCol: "publisher", XPath: "//dc:publisher"},
			"contributor":       {DBCol: "contributor", XPath: "//dc:contributor"},
			"relation":          {DBCol: "relation", XPath: "//dc:relation"},
			"source":            {DBCol: "source", XPath: "//dc:source"},
			"language":          {DBCol: "language", XPath: "//dc:language"},
			"type":              {DBCol: "type", XPath: "//dc:type"},
			"date":              {DBCol: "date", XPath: "//dc:date"},
			"accessconstraints": {DBCol: "accessconstraints", XPath: "//dc:rights"},
		},
	}
}

// BuildQueryables converts the configured mapping table into the
// immutable resolver handed to the repository. An empty config falls
// back to the built-in typename table; the core mappings are always
// merged in.
func BuildQueryables(c *Config) domain.Queryables {
	typenames := c.Mappings.Typenames
	if len(typenames) == 0 {
		typenames = DefaultTypenames()
	}

	byType := make(map[string]map[string]domain.Queryable, len(typenames))
	for tname, mappings := range typenames {
		tm := make(map[string]domain.Queryable, len(mappings))
		for name, entry := range mappings {
			tm[name] = domain.Queryable{DBCol: entry.DBCol, XPath: entry.XPath}
		}
		byType[tname] = tm
	}

	return domain.NewQueryables(byType, CoreMappings())
}
