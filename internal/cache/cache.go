// Package cache stores assembled series and issue records in a local SQLite file.
package cache

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/spf13/viper"
	_ "modernc.org/sqlite"
)

// Kind selects which record table an entry lives in.
type Kind string

const (
	KindSeries Kind = "series"
	KindIssue  Kind = "issue"
)

// Entry is one cached record. Data is an opaque serialized payload.
type Entry struct {
	ID       string
	SeriesID string
	Data     []byte
	Complete bool
	CachedAt time.Time
}

// Store is the get/put contract the talker consumes.
type Store interface {
	Get(kind Kind, source, id string) (Entry, bool, error)
	Put(kind Kind, source string, entry Entry) error
}

// CacheDB manages the SQLite database connection for caching
type CacheDB struct {
	db   *sql.DB
	mu   sync.RWMutex
	path string
}

var (
	globalCache     *CacheDB
	globalCacheOnce sync.Once
)

// ResetGlobalCache closes the current global cache and resets the singleton
// so the next call to GetGlobalCache will create a new instance.
func ResetGlobalCache() error {
	if globalCache != nil {
		if err := globalCache.Close(); err != nil {
			return err
		}
	}
	globalCache = nil
	globalCacheOnce = sync.Once{}
	return nil
}

// GetGlobalCache returns the process-wide cache opened from cache.dbfile
func GetGlobalCache() (*CacheDB, error) {
	var initErr error
	globalCacheOnce.Do(func() {
		dbPath := viper.GetString("cache.dbfile")
		if dbPath == "" {
			dbPath = "./cache.db"
		}
		globalCache, initErr = Open(dbPath)
	})
	if initErr != nil {
		return nil, initErr
	}
	if globalCache == nil {
		return nil, fmt.Errorf("cache database unavailable")
	}
	return globalCache, nil
}

// Open opens the cache database and creates all cache tables
func Open(dbPath string) (*CacheDB, error) {
	c, err := NewCacheDB(dbPath)
	if err != nil {
		return nil, err
	}
	for _, schema := range AllCacheSchemas {
		if err := c.CreateTable(schema); err != nil {
			return nil, errors.Join(fmt.Errorf("failed to create cache table: %w", err), c.Close())
		}
	}
	return c, nil
}

// NewCacheDB creates a new CacheDB instance and opens the database connection
func NewCacheDB(dbPath string) (*CacheDB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	// SQLite serializes writers anyway
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		closeErr := db.Close()
		return nil, errors.Join(fmt.Errorf("failed to connect to cache database: %w", err), closeErr)
	}

	return &CacheDB{
		db:   db,
		path: dbPath,
	}, nil
}

// CreateTable creates a table using the provided schema
func (c *CacheDB) CreateTable(schema string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}
	return nil
}

// Path returns the database file the cache was opened from
func (c *CacheDB) Path() string {
	return c.path
}

// Close closes the database connection
func (c *CacheDB) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

func tableFor(kind Kind) (string, error) {
	table, ok := tableNames[kind]
	if !ok {
		return "", fmt.Errorf("invalid cache kind: %s", kind)
	}
	return table, nil
}

// Get retrieves the entry cached for id under source.
// Returns the entry, whether it was found, and any error
func (c *CacheDB) Get(kind Kind, source, id string) (Entry, bool, error) {
	table, err := tableFor(kind)
	if err != nil {
		return Entry{}, false, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	query := fmt.Sprintf(`SELECT data, complete, cached_at FROM %s WHERE cache_key = ? AND source = ?`, table)
	if kind == KindIssue {
		query = `SELECT data, complete, cached_at, series_id FROM issues_cache WHERE cache_key = ? AND source = ?`
	}

	entry := Entry{ID: id}
	var data string
	dest := []any{&data, &entry.Complete, &entry.CachedAt}
	if kind == KindIssue {
		dest = append(dest, &entry.SeriesID)
	}

	err = c.db.QueryRow(query, id, source).Scan(dest...)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("failed to query cache: %w", err)
	}

	entry.Data = []byte(data)
	return entry, true, nil
}

// Put stores entry, replacing any previous entry for the same id and source
func (c *CacheDB) Put(kind Kind, source string, entry Entry) error {
	if _, err := tableFor(kind); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	var err error
	switch kind {
	case KindIssue:
		_, err = c.db.Exec(`
			INSERT OR REPLACE INTO issues_cache (cache_key, source, series_id, data, complete, cached_at)
			VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		`, entry.ID, source, entry.SeriesID, string(entry.Data), entry.Complete)
	default:
		_, err = c.db.Exec(`
			INSERT OR REPLACE INTO series_cache (cache_key, source, data, complete, cached_at)
			VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		`, entry.ID, source, string(entry.Data), entry.Complete)
	}
	if err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}
	return nil
}

// ClearAll removes every entry of the given kind and returns the number of rows deleted
func (c *CacheDB) ClearAll(kind Kind) (int64, error) {
	table, err := tableFor(kind)
	if err != nil {
		return 0, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	result, err := c.db.Exec(fmt.Sprintf("DELETE FROM %s", table))
	if err != nil {
		return 0, fmt.Errorf("failed to clear cache: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	slog.Info("Cache cleared", "table", table, "rows_deleted", rows)
	return rows, nil
}
