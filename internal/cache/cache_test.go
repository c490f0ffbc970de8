package cache

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/lepinkainen/gcdtalker/internal/testutil"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRecord struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	SeriesID        int    `json:"series_id"`
	CoverDownloaded bool   `json:"cover_downloaded"`
}

func setupTestCache(t *testing.T) *CacheDB {
	t.Helper()

	env := testutil.NewTestEnv(t)
	c, err := Open(filepath.Join(env.RootDir(), "test_cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestPutGetRoundTrip(t *testing.T) {
	c := setupTestCache(t)

	_, found, err := c.Get(KindSeries, "gcd", "1")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, c.Put(KindSeries, "gcd", Entry{ID: "1", Data: []byte(`{"id":1}`), Complete: true}))

	entry, found, err := c.Get(KindSeries, "gcd", "1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, `{"id":1}`, string(entry.Data))
	assert.True(t, entry.Complete)
	assert.False(t, entry.CachedAt.IsZero())

	// different source does not see the entry
	_, found, err = c.Get(KindSeries, "other", "1")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestPutReplacesWholesale(t *testing.T) {
	c := setupTestCache(t)

	require.NoError(t, c.Put(KindIssue, "gcd", Entry{ID: "7", SeriesID: "3", Data: []byte(`{"v":1}`), Complete: false}))
	require.NoError(t, c.Put(KindIssue, "gcd", Entry{ID: "7", SeriesID: "3", Data: []byte(`{"v":2}`), Complete: true}))

	entry, found, err := c.Get(KindIssue, "gcd", "7")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, `{"v":2}`, string(entry.Data))
	assert.Equal(t, "3", entry.SeriesID)
	assert.True(t, entry.Complete)
}

func TestInvalidKind(t *testing.T) {
	c := setupTestCache(t)

	_, _, err := c.Get(Kind("bogus"), "gcd", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid cache kind")

	require.Error(t, c.Put(Kind("bogus"), "gcd", Entry{ID: "1"}))
}

func TestClearAll(t *testing.T) {
	c := setupTestCache(t)

	require.NoError(t, c.Put(KindIssue, "gcd", Entry{ID: "1", Data: []byte(`{}`), Complete: true}))
	require.NoError(t, c.Put(KindIssue, "gcd", Entry{ID: "2", Data: []byte(`{}`), Complete: true}))
	require.NoError(t, c.Put(KindSeries, "gcd", Entry{ID: "1", Data: []byte(`{}`), Complete: true}))

	rows, err := c.ClearAll(KindIssue)
	require.NoError(t, err)
	assert.Equal(t, int64(2), rows)

	_, found, err := c.Get(KindSeries, "gcd", "1")
	require.NoError(t, err)
	assert.True(t, found, "clearing issues must not touch series")
}

func TestGetOrFetchPopulatesAndHits(t *testing.T) {
	c := setupTestCache(t)
	calls := 0
	fetch := func() (testRecord, error) {
		calls++
		return testRecord{ID: 5, Name: "Fantastic Four", SeriesID: 9}, nil
	}
	policy := Policy[testRecord]{SeriesID: func(r testRecord) string { return "9" }}

	got, fromCache, err := GetOrFetch(c, KindIssue, "gcd", "5", policy, fetch)
	require.NoError(t, err)
	assert.False(t, fromCache)
	assert.Equal(t, "Fantastic Four", got.Name)

	got, fromCache, err = GetOrFetch(c, KindIssue, "gcd", "5", policy, fetch)
	require.NoError(t, err)
	assert.True(t, fromCache)
	assert.Equal(t, 5, got.ID)
	assert.Equal(t, 1, calls)

	entry, found, err := c.Get(KindIssue, "gcd", "5")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "9", entry.SeriesID)
}

func TestGetOrFetchStaleEntryRefetches(t *testing.T) {
	c := setupTestCache(t)
	calls := 0
	fetch := func() (testRecord, error) {
		calls++
		return testRecord{ID: 1, CoverDownloaded: calls > 1}, nil
	}
	wantCovers := Policy[testRecord]{Fresh: func(r testRecord) bool { return r.CoverDownloaded }}

	_, _, err := GetOrFetch(c, KindSeries, "gcd", "1", Policy[testRecord]{}, fetch)
	require.NoError(t, err)

	got, fromCache, err := GetOrFetch(c, KindSeries, "gcd", "1", wantCovers, fetch)
	require.NoError(t, err)
	assert.False(t, fromCache)
	assert.True(t, got.CoverDownloaded)
	assert.Equal(t, 2, calls)

	_, fromCache, err = GetOrFetch(c, KindSeries, "gcd", "1", wantCovers, fetch)
	require.NoError(t, err)
	assert.True(t, fromCache)
	assert.Equal(t, 2, calls)
}

func TestGetOrFetchIgnoresIncompleteEntries(t *testing.T) {
	c := setupTestCache(t)
	require.NoError(t, c.Put(KindSeries, "gcd", Entry{ID: "1", Data: []byte(`{"id":1,"name":"partial"}`), Complete: false}))

	got, fromCache, err := GetOrFetch(c, KindSeries, "gcd", "1", Policy[testRecord]{}, func() (testRecord, error) {
		return testRecord{ID: 1, Name: "full"}, nil
	})
	require.NoError(t, err)
	assert.False(t, fromCache)
	assert.Equal(t, "full", got.Name)
}

func TestGetOrFetchPropagatesFetchError(t *testing.T) {
	c := setupTestCache(t)
	boom := errors.New("boom")

	_, _, err := GetOrFetch(c, KindSeries, "gcd", "1", Policy[testRecord]{}, func() (testRecord, error) {
		return testRecord{}, boom
	})
	require.ErrorIs(t, err, boom)

	_, found, err := c.Get(KindSeries, "gcd", "1")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestGetOrFetchWithoutStore(t *testing.T) {
	got, fromCache, err := GetOrFetch[testRecord](nil, KindSeries, "gcd", "1", Policy[testRecord]{}, func() (testRecord, error) {
		return testRecord{ID: 1}, nil
	})
	require.NoError(t, err)
	assert.False(t, fromCache)
	assert.Equal(t, 1, got.ID)
}

func TestGetGlobalCacheUsesViperPath(t *testing.T) {
	require.NoError(t, ResetGlobalCache())
	viper.Reset()
	t.Cleanup(func() {
		_ = ResetGlobalCache()
		viper.Reset()
	})

	env := testutil.NewTestEnv(t)
	viper.Set("cache.dbfile", env.Path("global.db"))

	c, err := GetGlobalCache()
	require.NoError(t, err)
	assert.Equal(t, env.Path("global.db"), c.Path())

	again, err := GetGlobalCache()
	require.NoError(t, err)
	assert.Same(t, c, again)
}

func TestDescribe(t *testing.T) {
	assert.Contains(t, Describe(Entry{ID: "3", Data: []byte("{}"), Complete: true}), "3 (complete=true, 2 bytes")
}
