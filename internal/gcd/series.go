package gcd

import (
	"context"
	"database/sql"
	"log/slog"
	"strconv"

	sq "github.com/Masterminds/squirrel"
	"github.com/lepinkainen/gcdtalker/internal/errors"
	"github.com/lepinkainen/gcdtalker/internal/gcddb"
)

// FetchSeries returns the details of a series, served from the cache when possible.
func (t *Talker) FetchSeries(ctx context.Context, seriesID string) (SeriesSummary, error) {
	id, err := parseID("Series", seriesID)
	if err != nil {
		return SeriesSummary{}, err
	}

	var series SeriesSummary
	err = t.db.Do(ctx, func(s *gcddb.Session) error {
		series, err = t.seriesDetails(ctx, s, id)
		return err
	})
	return series, err
}

// seriesDetails is the cached series lookup shared by every issue operation.
func (t *Talker) seriesDetails(ctx context.Context, s *gcddb.Session, id int) (SeriesSummary, error) {
	series, _, err := t.cachedSeries(id, func() (SeriesSummary, error) {
		return t.loadSeries(ctx, s, id)
	})
	return series, err
}

func (t *Talker) loadSeries(ctx context.Context, s *gcddb.Session, id int) (SeriesSummary, error) {
	columns := append(append([]string{}, seriesColumns...), "gcd_series.publishing_format", "gcd_series.first_issue_id")
	query := sq.Select(columns...).
		From("gcd_series").
		LeftJoin("gcd_publisher ON gcd_series.publisher_id = gcd_publisher.id").
		Where(sq.Eq{"gcd_series.id": id})

	series, found, err := gcddb.QueryOne(ctx, s, query, func(row gcddb.Scanner) (SeriesSummary, error) {
		var format sql.NullString
		var firstIssue sql.NullInt64
		summary, err := scanSeries(row, &format, &firstIssue)
		summary.Format = format.String
		summary.FirstIssueID = nullIntPtr(firstIssue)
		return summary, err
	})
	if err != nil {
		slog.Debug("DB error", "series_id", id, "error", err)
		return SeriesSummary{}, err
	}
	if !found {
		return SeriesSummary{}, errors.NewNotFoundError("Series", strconv.Itoa(id))
	}

	if t.settings.DownloadGUICovers {
		image, err := t.seriesImage(ctx, series)
		if err != nil {
			return SeriesSummary{}, err
		}
		series.ImageURL = image
		series.CoverDownloaded = true
	}

	return series, nil
}

// seriesImage returns the cover of the series' first issue.
func (t *Talker) seriesImage(ctx context.Context, series SeriesSummary) (string, error) {
	if series.FirstIssueID == nil {
		return "", nil
	}
	cover, _, err := t.covers.FindIssueCovers(ctx, strconv.Itoa(*series.FirstIssueID))
	return cover, err
}

// scanSeries scans seriesColumns followed by any extra destinations.
func scanSeries(row gcddb.Scanner, extra ...any) (SeriesSummary, error) {
	var (
		summary                SeriesSummary
		sortName, notes, pub   sql.NullString
		began, ended, issueCnt sql.NullInt64
	)
	dest := append([]any{&summary.ID, &summary.Name, &sortName, &notes, &began, &ended, &issueCnt, &pub}, extra...)
	if err := row.Scan(dest...); err != nil {
		return SeriesSummary{}, err
	}
	summary.SortName = sortName.String
	summary.Notes = notes.String
	summary.YearBegan = nullIntPtr(began)
	summary.YearEnded = nullIntPtr(ended)
	summary.IssueCount = nullIntPtr(issueCnt)
	summary.PublisherName = pub.String
	return summary, nil
}
