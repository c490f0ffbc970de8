package gcd

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/lepinkainen/gcdtalker/internal/gcddb"
)

// Separators used inside grouped concatenations.
const (
	titleSeparator    = "\n"
	storyIDSeparator  = "\n"
	genreSeparator    = ";"
	synopsisSeparator = "\n\n"
	listSeparator     = "; "
)

// comicStoryType is gcd_story.type_id for regular comic stories.
const comicStoryType = 19

const storyOrder = "gcd_story.sequence_number, gcd_story.id"

var seriesColumns = []string{
	"gcd_series.id",
	"gcd_series.name",
	"gcd_series.sort_name",
	"gcd_series.notes",
	"gcd_series.year_began",
	"gcd_series.year_ended",
	"gcd_series.issue_count",
	"gcd_publisher.name",
}

// groupConcat concatenates the non-empty values of col in story order.
func groupConcat(col, sep, alias string) string {
	return fmt.Sprintf(
		"GROUP_CONCAT(CASE WHEN %[1]s IS NOT NULL AND %[1]s != '' THEN %[1]s END, '%[2]s' ORDER BY %[3]s) AS %[4]s",
		col, sep, storyOrder, alias,
	)
}

func storyJoin() string {
	return fmt.Sprintf("gcd_story ON gcd_story.issue_id = gcd_issue.id AND gcd_story.type_id = %d", comicStoryType)
}

// issueListingQuery selects the columns shared by every issue listing,
// grouped by issue number.
func issueListingQuery() sq.SelectBuilder {
	return sq.Select(
		"gcd_issue.id",
		"gcd_issue.series_id",
		"gcd_issue.key_date",
		"gcd_issue.number",
		"gcd_issue.title",
		groupConcat("gcd_story.title", titleSeparator, "story_titles"),
	).
		From("gcd_issue").
		LeftJoin(storyJoin()).
		GroupBy("gcd_issue.number").
		OrderBy("gcd_issue.number")
}

// imprintSubquery collects the brand group names of an issue other than the
// publisher's own name.
func imprintSubquery(issueID int) sq.Sqlizer {
	return sq.Expr(`(SELECT GROUP_CONCAT(gcd_brand_group.name, '; ')
		FROM gcd_issue
		LEFT JOIN gcd_brand ON gcd_issue.brand_id = gcd_brand.id
		LEFT JOIN gcd_brand_emblem_group ON gcd_brand.id = gcd_brand_emblem_group.brand_id
		LEFT JOIN gcd_brand_group ON gcd_brand_emblem_group.brandgroup_id = gcd_brand_group.id
		LEFT JOIN gcd_series ON gcd_issue.series_id = gcd_series.id
		LEFT JOIN gcd_publisher ON gcd_series.publisher_id = gcd_publisher.id
		WHERE gcd_issue.id = ? AND gcd_publisher.name IS NOT gcd_brand_group.name) AS imprint`, issueID)
}

// issueDetailQuery selects everything needed to assemble a complete issue.
func issueDetailQuery(issueID int) sq.SelectBuilder {
	return sq.Select(
		"gcd_issue.id",
		"gcd_issue.series_id",
		"gcd_issue.key_date",
		"gcd_issue.number",
		"gcd_issue.title",
		groupConcat("gcd_story.title", titleSeparator, "story_titles"),
		groupConcat("gcd_story.synopsis", synopsisSeparator, "synopses"),
		"gcd_issue.notes",
		"gcd_issue.volume",
		"gcd_issue.price",
		"gcd_issue.valid_isbn",
		"gcd_issue.rating",
		groupConcat("gcd_story.characters", listSeparator, "characters"),
		"stddata_country.name",
		"stddata_country.code",
		"stddata_language.name",
		"stddata_language.code",
		groupConcat("gcd_story.genre", genreSeparator, "genres"),
		groupConcat("gcd_story.id", storyIDSeparator, "story_ids"),
	).
		Column(imprintSubquery(issueID)).
		From("gcd_issue").
		LeftJoin(storyJoin()).
		LeftJoin("gcd_indicia_publisher ON gcd_issue.indicia_publisher_id = gcd_indicia_publisher.id").
		LeftJoin("gcd_series ON gcd_issue.series_id = gcd_series.id").
		LeftJoin("stddata_country ON gcd_indicia_publisher.country_id = stddata_country.id").
		LeftJoin("stddata_language ON gcd_series.language_id = stddata_language.id").
		Where(sq.Eq{"gcd_issue.id": issueID}).
		GroupBy("gcd_issue.id")
}

// numberFilter matches issue number, optionally treating "[nn]" as issue one.
func numberFilter(number string, nnIsIssueOne bool) sq.Sqlizer {
	if nnIsIssueOne && number == "1" {
		return sq.Or{
			sq.Eq{"gcd_issue.number": number},
			sq.Eq{"gcd_issue.number": "[nn]"},
		}
	}
	return sq.Eq{"gcd_issue.number": number}
}

// yearFilter matches key dates in year. Issues without a key date always match.
func yearFilter(year int) sq.Sqlizer {
	return sq.Or{
		sq.Like{"gcd_issue.key_date": fmt.Sprintf("%04d%%", year)},
		sq.Eq{"gcd_issue.key_date": ""},
		sq.Eq{"gcd_issue.key_date": nil},
	}
}

func scanListingRow(row gcddb.Scanner) (RawIssue, error) {
	var r RawIssue
	err := row.Scan(&r.ID, &r.SeriesID, &r.KeyDate, &r.Number, &r.Title, &r.StoryTitles)
	return r, err
}

func scanDetailRow(row gcddb.Scanner) (RawIssue, error) {
	var r RawIssue
	err := row.Scan(
		&r.ID, &r.SeriesID, &r.KeyDate, &r.Number, &r.Title,
		&r.StoryTitles, &r.Synopses,
		&r.Notes, &r.Volume, &r.Price, &r.ISBN, &r.MaturityRating,
		&r.Characters,
		&r.Country, &r.CountryISO, &r.Language, &r.LanguageISO,
		&r.Genres, &r.StoryIDs, &r.Imprint,
	)
	return r, err
}
