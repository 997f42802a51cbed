package geo

import (
	"math"

	"github.com/peterstace/simplefeatures/geom"
)

// Ranker computes the spatial overlay rank used for relevance ordering,
// after Lanfear (2006), http://pubs.usgs.gov/of/2006/1279/2006-1279.pdf:
//
//	rank = (X/Q)^kq * (X/T)^kt
//
// where Q is the query geometry area, T the target geometry area, and X
// the area of their intersection. The exponent weights default to 1.0.
type Ranker struct {
	KT float64
	KQ float64
}

// NewRanker returns a Ranker with the default weights.
func NewRanker() Ranker {
	return Ranker{KT: 1.0, KQ: 1.0}
}

// OverlayRank scores how well a target geometry overlays a query
// geometry, in [0,1]. Absent geometry, zero area, or any parse or
// geometric failure scores 0; the result orders rows, it never filters
// them, so failures stay silent.
func (r Ranker) OverlayRank(targetWKT, queryWKT string) float64 {
	if targetWKT == "" || queryWKT == "" {
		return 0
	}
	target, err := geom.UnmarshalWKT(targetWKT)
	if err != nil {
		return 0
	}
	query, err := geom.UnmarshalWKT(queryWKT)
	if err != nil {
		return 0
	}

	q := query.Area()
	t := target.Area()
	if q == 0 || t == 0 {
		return 0
	}

	overlap, err := geom.Intersection(target, query)
	if err != nil {
		return 0
	}
	x := overlap.Area()

	if r.KT == 1.0 && r.KQ == 1.0 {
		return (x / q) * (x / t)
	}
	return math.Pow(x/q, r.KQ) * math.Pow(x/t, r.KT)
}

// Area derives the area of a WKT geometry; absent or malformed geometry
// has area zero.
func Area(wkt string) float64 {
	if wkt == "" {
		return 0
	}
	g, err := geom.UnmarshalWKT(wkt)
	if err != nil {
		return 0
	}
	return g.Area()
}
