package gcd

import (
	"context"
	"log/slog"
	"strconv"

	sq "github.com/Masterminds/squirrel"
	"github.com/lepinkainen/gcdtalker/internal/errors"
	"github.com/lepinkainen/gcdtalker/internal/gcddb"
	"github.com/lepinkainen/gcdtalker/internal/metadata"
)

// FetchIssuesInSeries lists every issue of a series, one record per issue
// number. A series without issues yields a single empty record.
func (t *Talker) FetchIssuesInSeries(ctx context.Context, seriesID string) ([]metadata.Metadata, error) {
	id, err := parseID("Series", seriesID)
	if err != nil {
		return nil, err
	}

	var results []metadata.Metadata
	err = t.db.Do(ctx, func(s *gcddb.Session) error {
		series, err := t.seriesDetails(ctx, s, id)
		if err != nil {
			return err
		}

		rows, err := gcddb.QueryAll(ctx, s, issueListingQuery().Where(sq.Eq{"gcd_issue.series_id": id}), scanListingRow)
		if err != nil {
			slog.Debug("DB error", "series_id", id, "error", err)
			return err
		}
		if len(rows) == 0 {
			results = []metadata.Metadata{{}}
			return nil
		}

		for _, raw := range rows {
			results = append(results, MapToMetadata(AssembleIssue(raw, false), series, t.settings))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// FetchIssuesBySeriesNumberYear finds the issues numbered number in each of
// seriesIDs. When year is set, issues dated in another year are skipped;
// undated issues always match.
func (t *Talker) FetchIssuesBySeriesNumberYear(ctx context.Context, seriesIDs []string, number string, year *int) ([]metadata.Metadata, error) {
	ids := make([]int, 0, len(seriesIDs))
	for _, sid := range seriesIDs {
		id, err := parseID("Series", sid)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	results := []metadata.Metadata{}
	err := t.db.Do(ctx, func(s *gcddb.Session) error {
		for _, id := range ids {
			series, err := t.seriesDetails(ctx, s, id)
			if err != nil {
				return err
			}

			where := sq.And{
				sq.Eq{"gcd_issue.series_id": id},
				numberFilter(number, t.settings.NNIsIssueOne),
			}
			if year != nil {
				where = append(where, yearFilter(*year))
			}

			rows, err := gcddb.QueryAll(ctx, s, issueListingQuery().Where(where), scanListingRow)
			if err != nil {
				slog.Debug("DB error", "series_id", id, "error", err)
				return err
			}

			for _, raw := range rows {
				issue := AssembleIssue(raw, false)
				if t.settings.DownloadTagCovers {
					if err := t.attachCovers(ctx, &issue); err != nil {
						return err
					}
				}
				results = append(results, MapToMetadata(issue, series, t.settings))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// FetchIssueByID returns the complete metadata of one issue.
func (t *Talker) FetchIssueByID(ctx context.Context, issueID string) (metadata.Metadata, error) {
	id, err := parseID("Issue", issueID)
	if err != nil {
		return metadata.Metadata{}, err
	}

	var md metadata.Metadata
	err = t.db.Do(ctx, func(s *gcddb.Session) error {
		md, err = t.issueMetadata(ctx, s, id)
		return err
	})
	return md, err
}

// FetchComicData resolves an issue by id, or else by series id and issue
// number. With neither, or when no issue matches, the result is empty.
func (t *Talker) FetchComicData(ctx context.Context, issueID, seriesID, issueNumber string) (metadata.Metadata, error) {
	if err := t.db.CheckPath(); err != nil {
		return metadata.Metadata{}, err
	}

	if issueID != "" {
		return t.FetchIssueByID(ctx, issueID)
	}
	if issueNumber == "" || seriesID == "" {
		return metadata.Metadata{}, nil
	}

	sid, err := parseID("Series", seriesID)
	if err != nil {
		return metadata.Metadata{}, err
	}

	var md metadata.Metadata
	err = t.db.Do(ctx, func(s *gcddb.Session) error {
		query := sq.Select("gcd_issue.id").
			From("gcd_issue").
			Where(sq.And{
				sq.Eq{"gcd_issue.series_id": sid},
				numberFilter(issueNumber, t.settings.NNIsIssueOne),
			}).
			OrderBy("gcd_issue.number = '[nn]'", "gcd_issue.id").
			Limit(1)

		id, found, err := gcddb.QueryOne(ctx, s, query, func(row gcddb.Scanner) (int, error) {
			var id int
			err := row.Scan(&id)
			return id, err
		})
		if err != nil || !found {
			return err
		}

		md, err = t.issueMetadata(ctx, s, id)
		return err
	})
	return md, err
}

func (t *Talker) issueMetadata(ctx context.Context, s *gcddb.Session, id int) (metadata.Metadata, error) {
	issue, err := t.issueDetails(ctx, s, id)
	if err != nil {
		return metadata.Metadata{}, err
	}
	series, err := t.seriesDetails(ctx, s, issue.SeriesID)
	if err != nil {
		return metadata.Metadata{}, err
	}
	return MapToMetadata(issue, series, t.settings), nil
}

// issueDetails is the cached complete issue lookup.
func (t *Talker) issueDetails(ctx context.Context, s *gcddb.Session, id int) (IssueRecord, error) {
	issue, _, err := t.cachedIssue(id, func() (IssueRecord, error) {
		return t.loadIssue(ctx, s, id)
	})
	return issue, err
}

func (t *Talker) loadIssue(ctx context.Context, s *gcddb.Session, id int) (IssueRecord, error) {
	raw, found, err := gcddb.QueryOne(ctx, s, issueDetailQuery(id), scanDetailRow)
	if err != nil {
		slog.Debug("DB error", "issue_id", id, "error", err)
		return IssueRecord{}, err
	}
	if !found {
		slog.Debug("Issue not found", "issue_id", id)
		return IssueRecord{}, errors.NewNotFoundError("Issue", strconv.Itoa(id))
	}

	issue := AssembleIssue(raw, true)
	issue.Credits, err = ResolveCredits(ctx, s, id, issue.StoryIDs)
	if err != nil {
		return IssueRecord{}, err
	}

	if t.settings.DownloadGUICovers {
		if err := t.attachCovers(ctx, &issue); err != nil {
			return IssueRecord{}, err
		}
	}
	return issue, nil
}

func (t *Talker) attachCovers(ctx context.Context, issue *IssueRecord) error {
	cover, variants, err := t.covers.FindIssueCovers(ctx, strconv.Itoa(issue.ID))
	if err != nil {
		return err
	}
	issue.CoverURL = cover
	issue.AlternateCoverURLs = variants
	issue.CoversDownloaded = true
	return nil
}
