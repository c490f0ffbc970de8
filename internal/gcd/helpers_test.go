package gcd

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/lepinkainen/gcdtalker/internal/cache"
	"github.com/lepinkainen/gcdtalker/internal/config"
	"github.com/lepinkainen/gcdtalker/internal/gcddb"
	"github.com/lepinkainen/gcdtalker/internal/testutil"
	"github.com/stretchr/testify/require"
)

type fakeCovers struct {
	mu       sync.Mutex
	covers   map[string][]string
	err      error
	requests []string
}

func newFakeCovers() *fakeCovers {
	return &fakeCovers{covers: map[string][]string{
		"101": {"https://files1.comics.org/covers/101.jpg", "https://files1.comics.org/covers/101-variant.jpg"},
		"201": {"https://files1.comics.org/covers/201.jpg"},
		"301": {"https://files1.comics.org/covers/301.jpg"},
	}}
}

func (f *fakeCovers) FindIssueCovers(_ context.Context, issueID string) (string, []string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, issueID)
	if f.err != nil {
		return "", nil, f.err
	}
	images := f.covers[issueID]
	if len(images) == 0 {
		return "", nil, nil
	}
	return images[0], images[1:], nil
}

func (f *fakeCovers) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

type queryLog struct {
	mu      sync.Mutex
	queries []string
}

func (l *queryLog) trace(query string, _ []any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.queries = append(l.queries, query)
}

func (l *queryLog) reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.queries = nil
}

// count returns how many traced statements mention table.
func (l *queryLog) count(table string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, q := range l.queries {
		if strings.Contains(q, table) {
			n++
		}
	}
	return n
}

type harness struct {
	talker *Talker
	covers *fakeCovers
	log    *queryLog
	store  *cache.CacheDB
	dbPath string
}

type harnessOption func(*harnessConfig)

type harnessConfig struct {
	settings  func(*config.Settings)
	fullText  bool
	withCache bool
	dbPath    string
	store     *cache.CacheDB
}

func withSettings(fn func(*config.Settings)) harnessOption {
	return func(c *harnessConfig) { c.settings = fn }
}

func withoutFullText() harnessOption {
	return func(c *harnessConfig) { c.fullText = false }
}

func withCacheStore() harnessOption {
	return func(c *harnessConfig) { c.withCache = true }
}

// sharing reuses another harness's snapshot and cache.
func sharing(other *harness) harnessOption {
	return func(c *harnessConfig) {
		c.dbPath = other.dbPath
		c.store = other.store
	}
}

func newHarness(t *testing.T, opts ...harnessOption) *harness {
	t.Helper()

	cfg := harnessConfig{fullText: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	env := testutil.NewTestEnv(t)
	if cfg.dbPath == "" {
		cfg.dbPath = testutil.NewGCDFixture(t, env)
	}
	if cfg.store == nil && cfg.withCache {
		store, err := cache.Open(env.Path("cache.db"))
		require.NoError(t, err)
		t.Cleanup(func() { _ = store.Close() })
		cfg.store = store
	}

	settings := config.Default()
	settings.DBFile = cfg.dbPath
	if cfg.settings != nil {
		cfg.settings(&settings)
	}

	h := &harness{covers: newFakeCovers(), log: &queryLog{}, store: cfg.store, dbPath: cfg.dbPath}
	talkerOpts := []Option{
		WithCoverFinder(h.covers),
		WithDBOptions(gcddb.WithTracer(h.log.trace), gcddb.WithFullText(cfg.fullText)),
	}
	if cfg.store != nil {
		talkerOpts = append(talkerOpts, WithCache(cfg.store))
	}
	h.talker = New(settings, talkerOpts...)
	return h
}

func seriesIDs(results []SeriesSummary) []int {
	ids := make([]int, 0, len(results))
	for _, r := range results {
		ids = append(ids, r.ID)
	}
	return ids
}
