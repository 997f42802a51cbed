// Package geo implements the pure spatial functions behind constraint
// evaluation and relevance ordering: well-known-text predicate
// evaluation, geometry area, and the Lanfear overlay rank.
//
// These functions run per candidate row inside query execution, either
// directly or registered as SQL functions at the storage boundary, so
// they degrade silently: malformed geometry is a non-match or a zero
// score, never an error. The single loud failure is an unknown predicate
// name, which is a caller error.
package geo
