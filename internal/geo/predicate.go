package geo

import (
	"errors"
	"fmt"
	"strings"

	"github.com/peterstace/simplefeatures/geom"
)

// ErrUnknownPredicate is returned for predicate names outside the
// supported set. Unlike malformed geometry, a bad predicate name is a
// caller error and must not degrade to a non-match.
var ErrUnknownPredicate = errors.New("invalid spatial query predicate")

var predicates = map[string]bool{
	"bbox": true, "intersects": true, "beyond": true, "dwithin": true,
	"contains": true, "crosses": true, "disjoint": true, "equals": true,
	"overlaps": true, "touches": true, "within": true,
}

// StripPrefix removes a leading dialect prefix (for example
// "SRID=4326;") from a WKT string.
func StripPrefix(wkt string) string {
	if i := strings.LastIndex(wkt, ";"); i >= 0 {
		return wkt[i+1:]
	}
	return wkt
}

// Evaluate decides a spatial predicate between two WKT geometries. The
// first geometry may carry a dialect prefix, which is stripped. Distance
// applies only to beyond and dwithin.
//
// Evaluate runs per candidate row during query execution, so it must
// never abort evaluation: malformed geometry or a failed geometric
// operation is a non-match, not an error. Only an unknown predicate name
// returns an error.
func Evaluate(dataWKT, inputWKT, predicate string, distance float64) (bool, error) {
	if !predicates[predicate] {
		return false, fmt.Errorf("%w: %s", ErrUnknownPredicate, predicate)
	}

	a, err := geom.UnmarshalWKT(StripPrefix(dataWKT))
	if err != nil {
		return false, nil
	}
	b, err := geom.UnmarshalWKT(inputWKT)
	if err != nil {
		return false, nil
	}

	switch predicate {
	case "bbox", "intersects":
		// bbox behaves as intersects
		return geom.Intersects(a, b), nil
	case "beyond":
		d, ok := geom.Distance(a, b)
		return ok && d > distance, nil
	case "dwithin":
		d, ok := geom.Distance(a, b)
		return ok && d <= distance, nil
	case "contains":
		return softly(geom.Contains(a, b)), nil
	case "crosses":
		return softly(geom.Crosses(a, b)), nil
	case "disjoint":
		return !geom.Intersects(a, b), nil
	case "equals":
		return softly(geom.Equals(a, b)), nil
	case "overlaps":
		// Preserved as intersects-and-not-touches, which differs from
		// DE-9IM Overlaps.
		touches, err := geom.Touches(a, b)
		if err != nil {
			return false, nil
		}
		return geom.Intersects(a, b) && !touches, nil
	case "touches":
		return softly(geom.Touches(a, b)), nil
	case "within":
		return softly(geom.Within(a, b)), nil
	}
	return false, fmt.Errorf("%w: %s", ErrUnknownPredicate, predicate)
}

// softly folds a geometric-operation failure into a non-match.
func softly(match bool, err error) bool {
	if err != nil {
		return false
	}
	return match
}
