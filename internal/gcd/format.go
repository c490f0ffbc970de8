package gcd

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// publishing_format is free text; these words are the ones worth keeping.
var formatPattern = regexp.MustCompile(`(?i)\b(?:` + strings.Join([]string{
	"annual",
	"album",
	"anthology",
	"collection",
	`collect.*`,
	"graphic novel",
	"hardcover",
	"limited series",
	`one[-\s]?shot`,
	"preview",
	"special",
	`trade paper[\s]?back`,
	`web[\s]?comic`,
	`mini[-\s]?series`,
}, "|") + `)\b`)

// ClassifyFormat extracts a format label from a free-text publishing format.
// Anything mentioning "collect" becomes "Collection"; other matches are
// title-cased.
func ClassifyFormat(text string) (string, bool) {
	match := formatPattern.FindString(text)
	if match == "" {
		return "", false
	}
	if strings.Contains(strings.ToLower(match), "collect") {
		return "Collection", true
	}
	return cases.Title(language.Und).String(match), true
}
