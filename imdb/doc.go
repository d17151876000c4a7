// Package imdb is a client for IMDb's public GraphQL API.
//
// Titles and names are addressed by their IMDb identifier (tt0066921,
// nm0000040 or the bare numeric form) and expose one accessor per
// attribute. Accessors fetch lazily, memoize on the entity instance and
// return flat Go structs; missing upstream data maps to documented zero
// values rather than errors. Entities are not safe for concurrent use;
// construct one per goroutine.
package imdb
