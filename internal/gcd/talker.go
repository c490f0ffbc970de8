// Package gcd resolves series and issues from a local Grand Comics Database
// snapshot into normalized metadata records.
package gcd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/lepinkainen/gcdtalker/internal/cache"
	"github.com/lepinkainen/gcdtalker/internal/config"
	"github.com/lepinkainen/gcdtalker/internal/covers"
	"github.com/lepinkainen/gcdtalker/internal/errors"
	"github.com/lepinkainen/gcdtalker/internal/gcddb"
	"github.com/lepinkainen/gcdtalker/internal/metadata"
)

const (
	// SourceID identifies GCD data in caches and metadata origins.
	SourceID = "gcd"
	// SourceName is the human readable source name.
	SourceName = "Grand Comics Database"
)

// Source is the lookup surface offered to cataloguing tools.
type Source interface {
	SearchSeries(ctx context.Context, name string, literal bool) ([]SeriesSummary, error)
	FetchSeries(ctx context.Context, seriesID string) (SeriesSummary, error)
	FetchIssuesInSeries(ctx context.Context, seriesID string) ([]metadata.Metadata, error)
	FetchIssuesBySeriesNumberYear(ctx context.Context, seriesIDs []string, number string, year *int) ([]metadata.Metadata, error)
	FetchIssueByID(ctx context.Context, issueID string) (metadata.Metadata, error)
	FetchComicData(ctx context.Context, issueID, seriesID, issueNumber string) (metadata.Metadata, error)
	Status(ctx context.Context) (string, bool)
}

var _ Source = (*Talker)(nil)

// Talker implements Source on top of a GCD snapshot, a cache and a cover scraper.
type Talker struct {
	settings config.Settings
	db       *gcddb.Accessor
	store    cache.Store
	covers   covers.Finder

	dbOptions []gcddb.Option
}

// Option configures a Talker.
type Option func(*Talker)

// WithCache sets the cache used for series and issue records. Without one
// every lookup goes to the database.
func WithCache(store cache.Store) Option {
	return func(t *Talker) {
		t.store = store
	}
}

// WithCoverFinder replaces the comics.org cover scraper.
func WithCoverFinder(f covers.Finder) Option {
	return func(t *Talker) {
		if f != nil {
			t.covers = f
		}
	}
}

// WithDBOptions passes options to the schema accessor.
func WithDBOptions(opts ...gcddb.Option) Option {
	return func(t *Talker) {
		t.dbOptions = append(t.dbOptions, opts...)
	}
}

// New creates a Talker for the given settings.
func New(settings config.Settings, opts ...Option) *Talker {
	t := &Talker{settings: settings}
	for _, opt := range opts {
		opt(t)
	}

	if t.covers == nil {
		t.covers = NewCoverClient(settings)
	}
	t.db = gcddb.New(settings.DBFile, t.dbOptions...)

	return t
}

// NewCoverClient builds the cover scraper configured by settings.
func NewCoverClient(settings config.Settings) *covers.Client {
	opts := []covers.Option{
		covers.WithBaseURL(settings.WebsiteURL),
		covers.WithTimeout(settings.CoverTimeout),
	}
	if settings.BrowserFallback {
		opts = append(opts, covers.WithBrowserFallback(covers.NewBrowserFetcher(3*settings.CoverTimeout)))
	}
	return covers.NewClient(opts...)
}

// Settings returns the settings the talker was built with.
func (t *Talker) Settings() config.Settings {
	return t.settings
}

// Status reports whether the configured snapshot is usable.
func (t *Talker) Status(ctx context.Context) (string, bool) {
	return t.db.Status(ctx)
}

func parseID(kind, id string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(id))
	if err != nil {
		return 0, errors.NewDataError(SourceName, fmt.Errorf("invalid %s ID %q", kind, id))
	}
	return n, nil
}
