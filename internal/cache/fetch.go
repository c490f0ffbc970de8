package cache

import (
	"encoding/json"
	"fmt"
	"log/slog"
)

// FetchFunc represents a function that builds a value from the source of truth
type FetchFunc[T any] func() (T, error)

// Policy controls how GetOrFetch treats cached and fetched values.
type Policy[T any] struct {
	// Fresh decides whether a complete cached value may be used as-is.
	// nil accepts every complete entry.
	Fresh func(T) bool
	// SeriesID names the owning series for issue entries.
	SeriesID func(T) string
}

// GetOrFetch returns the cached value for id when a complete, fresh entry exists;
// otherwise it calls fetch and stores the result as a complete entry.
// The bool result reports whether the value came from the cache.
// Cache failures are logged and never stop the fetch.
func GetOrFetch[T any](store Store, kind Kind, source, id string, policy Policy[T], fetch FetchFunc[T]) (T, bool, error) {
	var zero T

	if store != nil {
		entry, found, err := store.Get(kind, source, id)
		switch {
		case err != nil:
			slog.Warn("Failed to read cache, fetching directly", "kind", kind, "key", id, "error", err)
		case found && entry.Complete:
			var cached T
			if err := json.Unmarshal(entry.Data, &cached); err != nil {
				slog.Warn("Failed to unmarshal cached data, will refetch", "kind", kind, "key", id, "error", err)
			} else if policy.Fresh == nil || policy.Fresh(cached) {
				slog.Debug("Cache hit", "kind", kind, "key", id)
				return cached, true, nil
			} else {
				slog.Debug("Cache entry stale, refreshing", "kind", kind, "key", id)
			}
		}
	}

	slog.Debug("Cache miss, fetching data", "kind", kind, "key", id)
	data, err := fetch()
	if err != nil {
		return zero, false, err
	}

	if store == nil {
		return data, false, nil
	}

	payload, err := json.Marshal(data)
	if err != nil {
		slog.Warn("Failed to marshal data for caching", "kind", kind, "key", id, "error", err)
		return data, false, nil
	}

	entry := Entry{ID: id, Data: payload, Complete: true}
	if policy.SeriesID != nil {
		entry.SeriesID = policy.SeriesID(data)
	}
	if err := store.Put(kind, source, entry); err != nil {
		// caching failure shouldn't stop the process
		slog.Warn("Failed to cache data", "kind", kind, "key", id, "error", err)
	} else {
		slog.Debug("Data cached successfully", "kind", kind, "key", id)
	}

	return data, false, nil
}

// Describe renders a short human-readable summary of an entry, used by the CLI.
func Describe(e Entry) string {
	return fmt.Sprintf("%s (complete=%t, %d bytes, cached %s)", e.ID, e.Complete, len(e.Data), e.CachedAt.Format("2006-01-02 15:04"))
}
