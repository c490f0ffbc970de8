package cache

// SQL schemas for cache tables.
// Entries are keyed by (cache_key, source) so several talkers can share one cache file.

// SeriesCacheSchema defines the schema for assembled series records
const SeriesCacheSchema = `
CREATE TABLE IF NOT EXISTS series_cache (
	cache_key TEXT NOT NULL,
	source TEXT NOT NULL,
	data TEXT NOT NULL,
	complete INTEGER NOT NULL DEFAULT 0,
	cached_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (cache_key, source)
);
`

// IssuesCacheSchema defines the schema for assembled issue records
const IssuesCacheSchema = `
CREATE TABLE IF NOT EXISTS issues_cache (
	cache_key TEXT NOT NULL,
	source TEXT NOT NULL,
	series_id TEXT NOT NULL DEFAULT '',
	data TEXT NOT NULL,
	complete INTEGER NOT NULL DEFAULT 0,
	cached_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (cache_key, source)
);

CREATE INDEX IF NOT EXISTS idx_issues_series ON issues_cache(series_id, source);
`

// AllCacheSchemas contains all cache table schemas for easy initialization
var AllCacheSchemas = []string{
	SeriesCacheSchema,
	IssuesCacheSchema,
}

// tableNames maps each record kind to its table.
// Used to prevent SQL injection when interpolating table names
var tableNames = map[Kind]string{
	KindSeries: "series_cache",
	KindIssue:  "issues_cache",
}
