package gcd

import (
	"database/sql"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// AssembleIssue splits a grouped row into an IssueRecord. complete rows also
// carry pricing, locale, character, genre and story id data; their credit
// list starts empty and is filled by ResolveCredits.
func AssembleIssue(raw RawIssue, complete bool) IssueRecord {
	issue := IssueRecord{
		ID:          raw.ID,
		SeriesID:    raw.SeriesID,
		KeyDate:     raw.KeyDate.String,
		Number:      raw.Number.String,
		Title:       raw.Title.String,
		StoryTitles: splitNullable(raw.StoryTitles, titleSeparator),
		Synopses:    splitNullable(raw.Synopses, synopsisSeparator),
	}

	if !complete {
		return issue
	}

	issue.Notes = raw.Notes.String
	issue.Volume = raw.Volume.String
	issue.Price = raw.Price.String
	issue.ISBN = raw.ISBN.String
	issue.Imprint = raw.Imprint.String
	issue.MaturityRating = raw.MaturityRating.String
	issue.Country = Place{Name: raw.Country.String, ISOCode: raw.CountryISO.String}
	issue.Language = Place{Name: raw.Language.String, ISOCode: raw.LanguageISO.String}
	issue.Characters = splitNullable(raw.Characters, listSeparator)
	issue.StoryIDs = splitNullable(raw.StoryIDs, storyIDSeparator)
	issue.Credits = []Credit{}

	// empty entries keep their position; the metadata genre set drops them
	for _, genre := range splitNullable(raw.Genres, genreSeparator) {
		issue.Genres = append(issue.Genres, capitalize(strings.TrimSpace(genre)))
	}

	return issue
}

func splitNullable(v sql.NullString, sep string) []string {
	if !v.Valid || v.String == "" {
		return nil
	}
	return strings.Split(v.String, sep)
}

// capitalize upper-cases the first letter and lower-cases the rest,
// "science FICTION" -> "Science fiction".
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + cases.Lower(language.Und).String(s[size:])
}
