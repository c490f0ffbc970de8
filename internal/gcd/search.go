package gcd

import (
	"context"
	"log/slog"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/lepinkainen/gcdtalker/internal/gcddb"
)

// SearchStrategy selects how a series name is matched.
type SearchStrategy int

const (
	// SearchExact matches the name byte for byte.
	SearchExact SearchStrategy = iota
	// SearchWildcard matches with LIKE, each space acting as a wildcard.
	SearchWildcard
	// SearchFullText matches every word through the FTS table.
	SearchFullText
)

// SearchSeries finds series by name. Results carry no format; images are
// only resolved when listing covers are enabled.
func (t *Talker) SearchSeries(ctx context.Context, name string, literal bool) ([]SeriesSummary, error) {
	results := []SeriesSummary{}

	err := t.db.Do(ctx, func(s *gcddb.Session) error {
		strategy := SearchExact
		if !literal {
			strategy = SearchWildcard
			if t.db.HasFullText() {
				strategy = SearchFullText
			}
		}

		query, term := buildSeriesSearch(strategy, name)
		slog.Info("Searching GCD", "term", term, "strategy", strategy)

		found, err := gcddb.QueryAll(ctx, s, query, func(row gcddb.Scanner) (SeriesSummary, error) {
			return scanSeries(row)
		})
		if err != nil {
			slog.Debug("DB error", "error", err)
			return err
		}
		results = append(results, found...)

		if t.settings.DownloadGUICovers {
			for i := range results {
				series, err := t.seriesDetails(ctx, s, results[i].ID)
				if err != nil {
					return err
				}
				results[i].ImageURL = series.ImageURL
				results[i].CoverDownloaded = series.CoverDownloaded
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return results, nil
}

// buildSeriesSearch returns the query for strategy and the bound search term.
func buildSeriesSearch(strategy SearchStrategy, name string) (sq.SelectBuilder, string) {
	base := sq.Select(seriesColumns...)

	switch strategy {
	case SearchExact:
		return base.From("gcd_series").
			LeftJoin("gcd_publisher ON gcd_series.publisher_id = gcd_publisher.id").
			Where("gcd_series.name = ?", name), name
	case SearchWildcard:
		term := WildcardTerm(name)
		return base.From("gcd_series").
			LeftJoin("gcd_publisher ON gcd_series.publisher_id = gcd_publisher.id").
			Where("gcd_series.name LIKE ?", term), term
	default:
		term := FullTextTerm(name)
		return base.From("fts").
			LeftJoin("gcd_series ON fts.rowid = gcd_series.id").
			LeftJoin("gcd_publisher ON gcd_series.publisher_id = gcd_publisher.id").
			Where("fts MATCH ?", term), term
	}
}

// WildcardTerm turns every space into a LIKE wildcard and allows any suffix.
func WildcardTerm(name string) string {
	return strings.ReplaceAll(name, " ", "%") + "%"
}

// FullTextTerm quotes each word of name for an FTS5 MATCH, so every word
// must be present. Quotes inside the name are doubled before tokenizing.
func FullTextTerm(name string) string {
	term := strings.ReplaceAll(name, "'", "''")
	term = strings.ReplaceAll(term, `"`, `""`)
	term = `"` + term + `"`
	return strings.ReplaceAll(term, " ", `" "`)
}

func (s SearchStrategy) String() string {
	switch s {
	case SearchExact:
		return "exact"
	case SearchWildcard:
		return "wildcard"
	case SearchFullText:
		return "fulltext"
	default:
		return "unknown"
	}
}
