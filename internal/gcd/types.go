package gcd

import "database/sql"

// SeriesSummary is a series as returned by search and series lookups.
type SeriesSummary struct {
	ID              int    `json:"id" yaml:"id"`
	Name            string `json:"name" yaml:"name"`
	SortName        string `json:"sort_name,omitempty" yaml:"sort_name,omitempty"`
	Notes           string `json:"notes,omitempty" yaml:"notes,omitempty"`
	YearBegan       *int   `json:"year_began,omitempty" yaml:"year_began,omitempty"`
	YearEnded       *int   `json:"year_ended,omitempty" yaml:"year_ended,omitempty"`
	IssueCount      *int   `json:"count_of_issues,omitempty" yaml:"count_of_issues,omitempty"`
	PublisherName   string `json:"publisher_name,omitempty" yaml:"publisher_name,omitempty"`
	Format          string `json:"format,omitempty" yaml:"format,omitempty"`
	FirstIssueID    *int   `json:"first_issue_id,omitempty" yaml:"first_issue_id,omitempty"`
	ImageURL        string `json:"image,omitempty" yaml:"image,omitempty"`
	CoverDownloaded bool   `json:"cover_downloaded" yaml:"cover_downloaded"`
}

// Place is a country or language with its ISO code.
type Place struct {
	Name    string `json:"name,omitempty" yaml:"name,omitempty"`
	ISOCode string `json:"iso,omitempty" yaml:"iso,omitempty"`
}

// Credit is a creator and the role label GCD records for them.
type Credit struct {
	Name string `json:"name" yaml:"name"`
	Role string `json:"gcd_role" yaml:"gcd_role"`
}

// IssueRecord is an assembled issue. The story derived lists share the
// ordering of the grouped query but may differ in length.
type IssueRecord struct {
	ID             int    `json:"id" yaml:"id"`
	SeriesID       int    `json:"series_id" yaml:"series_id"`
	KeyDate        string `json:"key_date,omitempty" yaml:"key_date,omitempty"`
	Number         string `json:"number" yaml:"number"`
	Title          string `json:"issue_title,omitempty" yaml:"issue_title,omitempty"`
	Notes          string `json:"issue_notes,omitempty" yaml:"issue_notes,omitempty"`
	Volume         string `json:"volume,omitempty" yaml:"volume,omitempty"`
	Imprint        string `json:"imprint,omitempty" yaml:"imprint,omitempty"`
	Price          string `json:"price,omitempty" yaml:"price,omitempty"`
	ISBN           string `json:"isbn,omitempty" yaml:"isbn,omitempty"`
	MaturityRating string `json:"maturity_rating,omitempty" yaml:"maturity_rating,omitempty"`
	Country        Place  `json:"country" yaml:"country"`
	Language       Place  `json:"language" yaml:"language"`

	Characters  []string `json:"characters,omitempty" yaml:"characters,omitempty"`
	StoryTitles []string `json:"story_titles,omitempty" yaml:"story_titles,omitempty"`
	Genres      []string `json:"genres,omitempty" yaml:"genres,omitempty"`
	Synopses    []string `json:"synopses,omitempty" yaml:"synopses,omitempty"`
	StoryIDs    []string `json:"story_ids,omitempty" yaml:"story_ids,omitempty"`
	Credits     []Credit `json:"credits,omitempty" yaml:"credits,omitempty"`

	CoverURL           string   `json:"image,omitempty" yaml:"image,omitempty"`
	AlternateCoverURLs []string `json:"alt_image_urls,omitempty" yaml:"alt_image_urls,omitempty"`
	CoversDownloaded   bool     `json:"covers_downloaded" yaml:"covers_downloaded"`
}

// RawIssue is one grouped row of an issue query. The columns after
// StoryTitles are only populated by the complete issue query.
type RawIssue struct {
	ID          int
	SeriesID    int
	KeyDate     sql.NullString
	Number      sql.NullString
	Title       sql.NullString
	StoryTitles sql.NullString
	Synopses    sql.NullString

	Notes          sql.NullString
	Volume         sql.NullString
	Price          sql.NullString
	ISBN           sql.NullString
	MaturityRating sql.NullString
	Characters     sql.NullString
	Country        sql.NullString
	CountryISO     sql.NullString
	Language       sql.NullString
	LanguageISO    sql.NullString
	Genres         sql.NullString
	StoryIDs       sql.NullString
	Imprint        sql.NullString
}

func nullIntPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}
