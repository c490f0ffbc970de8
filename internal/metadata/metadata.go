// Package metadata defines the normalized comic metadata record produced by the talker.
package metadata

import (
	"sort"
	"strings"
)

// Origin identifies the source a record was built from.
type Origin struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// Credit is a person and the role they had on an issue.
type Credit struct {
	Person  string `json:"person" yaml:"person"`
	Role    string `json:"role" yaml:"role"`
	Primary bool   `json:"primary,omitempty" yaml:"primary,omitempty"`
}

// Metadata is the normalized record for a single issue.
// Optional numeric fields are nil when unknown.
type Metadata struct {
	DataOrigin *Origin `json:"data_origin,omitempty" yaml:"data_origin,omitempty"`
	IssueID    string  `json:"issue_id,omitempty" yaml:"issue_id,omitempty"`
	SeriesID   string  `json:"series_id,omitempty" yaml:"series_id,omitempty"`

	Series     string `json:"series,omitempty" yaml:"series,omitempty"`
	Publisher  string `json:"publisher,omitempty" yaml:"publisher,omitempty"`
	Imprint    string `json:"imprint,omitempty" yaml:"imprint,omitempty"`
	Issue      string `json:"issue,omitempty" yaml:"issue,omitempty"`
	IssueCount *int   `json:"issue_count,omitempty" yaml:"issue_count,omitempty"`
	Volume     *int   `json:"volume,omitempty" yaml:"volume,omitempty"`

	Title       string `json:"title,omitempty" yaml:"title,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	Year  *int `json:"year,omitempty" yaml:"year,omitempty"`
	Month *int `json:"month,omitempty" yaml:"month,omitempty"`
	Day   *int `json:"day,omitempty" yaml:"day,omitempty"`

	Language       string   `json:"language,omitempty" yaml:"language,omitempty"`
	Country        string   `json:"country,omitempty" yaml:"country,omitempty"`
	Format         string   `json:"format,omitempty" yaml:"format,omitempty"`
	MaturityRating string   `json:"maturity_rating,omitempty" yaml:"maturity_rating,omitempty"`
	Price          *float64 `json:"price,omitempty" yaml:"price,omitempty"`
	Identifier     string   `json:"identifier,omitempty" yaml:"identifier,omitempty"`

	Characters []string `json:"characters,omitempty" yaml:"characters,omitempty"`
	Genres     []string `json:"genres,omitempty" yaml:"genres,omitempty"`
	Credits    []Credit `json:"credits,omitempty" yaml:"credits,omitempty"`
	WebLinks   []string `json:"web_links,omitempty" yaml:"web_links,omitempty"`

	CoverImage      string   `json:"cover_image,omitempty" yaml:"cover_image,omitempty"`
	AlternateImages []string `json:"alternate_images,omitempty" yaml:"alternate_images,omitempty"`
}

// IsEmpty reports whether no field carries data. The empty record is used as
// a placeholder when a series exists but has no issue rows.
func (md *Metadata) IsEmpty() bool {
	return md.DataOrigin == nil && md.IssueID == "" && md.SeriesID == "" &&
		md.Series == "" && md.Issue == "" && md.Title == "" && md.Description == "" &&
		len(md.Credits) == 0 && len(md.Characters) == 0 && len(md.Genres) == 0
}

// AddCredit appends a credit unless the same person/role pair (compared
// case-insensitively) is already present, in which case primary is merged.
func (md *Metadata) AddCredit(person, role string, primary bool) {
	person = strings.TrimSpace(person)
	role = strings.TrimSpace(role)
	for i := range md.Credits {
		c := &md.Credits[i]
		if strings.EqualFold(c.Person, person) && strings.EqualFold(c.Role, role) {
			c.Primary = c.Primary || primary
			return
		}
	}
	md.Credits = append(md.Credits, Credit{Person: person, Role: role, Primary: primary})
}

// SetCharacters stores values as a sorted set.
func (md *Metadata) SetCharacters(values []string) {
	md.Characters = toSet(values)
}

// SetGenres stores values as a sorted set.
func (md *Metadata) SetGenres(values []string) {
	md.Genres = toSet(values)
}

func toSet(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil
	}
	sort.Strings(out)
	return out
}
