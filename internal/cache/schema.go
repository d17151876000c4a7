package cache

// SQL schemas for cache tables
// All cache tables use "cache_key" as the primary key column for consistency.
// ttl_seconds = 0 means "use the configured default TTL at read time".

// GQLCacheSchema defines the schema for GraphQL query response cache.
// Keys are "gql.<operation>.<sha256 of variables>".
const GQLCacheSchema = `
CREATE TABLE IF NOT EXISTS gql_cache (
	cache_key TEXT PRIMARY KEY NOT NULL,
	data TEXT NOT NULL,
	cached_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	ttl_seconds INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_gql_cached_at ON gql_cache(cached_at);
`

// SuggestCacheSchema defines the schema for the title suggestion endpoint cache
const SuggestCacheSchema = `
CREATE TABLE IF NOT EXISTS suggest_cache (
	cache_key TEXT PRIMARY KEY NOT NULL,
	data TEXT NOT NULL,
	cached_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	ttl_seconds INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_suggest_cached_at ON suggest_cache(cached_at);
`

// SearchCacheSchema defines the schema for GraphQL search results cache
// (name search, keyword search, advanced title search)
const SearchCacheSchema = `
CREATE TABLE IF NOT EXISTS search_cache (
	cache_key TEXT PRIMARY KEY NOT NULL,
	data TEXT NOT NULL,
	cached_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	ttl_seconds INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_search_cached_at ON search_cache(cached_at);
`

// AllCacheSchemas contains all cache table schemas for easy initialization
var AllCacheSchemas = []string{
	GQLCacheSchema,
	SuggestCacheSchema,
	SearchCacheSchema,
}

// ValidCacheTableNames is the whitelist of allowed cache table names
// Used to prevent SQL injection when interpolating table names
var ValidCacheTableNames = map[string]bool{
	"gql_cache":     true,
	"suggest_cache": true,
	"search_cache":  true,
}
