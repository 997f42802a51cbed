package domain

import (
	"errors"
	"fmt"
)

// ErrUnknownQueryable is returned when a queryable name has no binding in
// the mapping table. Later stages trust resolution without re-validating,
// so lookups fail loudly instead of returning an empty binding.
var ErrUnknownQueryable = errors.New("unknown queryable")

// Queryable binds an abstract property name to its physical storage
// column and, for properties that support value updates, the XPath
// locating the value inside the record's XML document.
type Queryable struct {
	Name  string `json:"name"`
	DBCol string `json:"dbcol"`
	XPath string `json:"xpath,omitempty"`
}

// Queryables is the immutable mapping table built once at repository
// construction. Per-typename maps are kept for schema introspection; the
// synthetic "_all" table flattens every per-type mapping into one global
// lookup.
type Queryables struct {
	byType map[string]map[string]Queryable
	all    map[string]Queryable
}

// NewQueryables flattens the nested typename -> queryable mapping, then
// merges the core mappings so they always resolve. A typename binding
// that already carries an XPath is not clobbered by a core entry for the
// same name, since the XPath is what makes the property writable.
func NewQueryables(byType map[string]map[string]Queryable, core map[string]Queryable) Queryables {
	q := Queryables{
		byType: make(map[string]map[string]Queryable, len(byType)),
		all:    make(map[string]Queryable),
	}
	for tname, mappings := range byType {
		tm := make(map[string]Queryable, len(mappings))
		for name, entry := range mappings {
			entry.Name = name
			tm[name] = entry
			q.all[name] = entry
		}
		q.byType[tname] = tm
	}
	for name, entry := range core {
		if existing, ok := q.all[name]; ok && existing.XPath != "" && entry.XPath == "" {
			continue
		}
		entry.Name = name
		q.all[name] = entry
	}
	return q
}

// Resolve returns the binding for a queryable name from the flattened
// table.
func (q Queryables) Resolve(name string) (Queryable, error) {
	entry, ok := q.all[name]
	if !ok {
		return Queryable{}, fmt.Errorf("%w: %s", ErrUnknownQueryable, name)
	}
	return entry, nil
}

// ResolveFor prefers a type-specific binding and falls back to the
// flattened table.
func (q Queryables) ResolveFor(typename, name string) (Queryable, error) {
	if tm, ok := q.byType[typename]; ok {
		if entry, ok := tm[name]; ok {
			return entry, nil
		}
	}
	return q.Resolve(name)
}

// Names returns every queryable name in the flattened table.
func (q Queryables) Names() []string {
	names := make([]string, 0, len(q.all))
	for name := range q.all {
		names = append(names, name)
	}
	return names
}
