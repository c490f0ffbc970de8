package gcd

import (
	"strconv"

	"github.com/lepinkainen/gcdtalker/internal/cache"
)

// cachedSeries returns the cached series for id, calling load when the entry is
// missing, incomplete, or lacks a cover the listing-cover policy asks for.
func (t *Talker) cachedSeries(id int, load cache.FetchFunc[SeriesSummary]) (SeriesSummary, bool, error) {
	policy := cache.Policy[SeriesSummary]{
		Fresh: func(s SeriesSummary) bool {
			return !t.settings.DownloadGUICovers || s.CoverDownloaded
		},
	}
	return cache.GetOrFetch(t.store, cache.KindSeries, SourceID, strconv.Itoa(id), policy, load)
}

// cachedIssue is cachedSeries for complete issue records.
func (t *Talker) cachedIssue(id int, load cache.FetchFunc[IssueRecord]) (IssueRecord, bool, error) {
	policy := cache.Policy[IssueRecord]{
		Fresh: func(i IssueRecord) bool {
			return !t.settings.DownloadGUICovers || i.CoversDownloaded
		},
		SeriesID: func(i IssueRecord) string {
			return strconv.Itoa(i.SeriesID)
		},
	}
	return cache.GetOrFetch(t.store, cache.KindIssue, SourceID, strconv.Itoa(id), policy, load)
}
