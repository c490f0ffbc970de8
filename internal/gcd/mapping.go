package gcd

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/lepinkainen/gcdtalker/internal/config"
	"github.com/lepinkainen/gcdtalker/internal/metadata"
)

const paragraphBreak = "\r\n\r\n"

// MapToMetadata converts an assembled issue and its series into a normalized
// record, applying the title, price, volume, date and note policies in settings.
func MapToMetadata(issue IssueRecord, series SeriesSummary, settings config.Settings) metadata.Metadata {
	md := metadata.Metadata{
		DataOrigin: &metadata.Origin{ID: SourceID, Name: SourceName},
		IssueID:    strconv.Itoa(issue.ID),
		SeriesID:   strconv.Itoa(series.ID),
		Publisher:  series.PublisherName,
		Series:     series.Name,
	}

	md.Issue = metadata.NormalizeIssue(issue.Number)
	if settings.ReplaceNNWithOne && md.Issue == "[nn]" {
		md.Issue = "1"
	}

	md.CoverImage = issue.CoverURL
	md.AlternateImages = issue.AlternateCoverURLs

	md.SetCharacters(issue.Characters)
	for _, c := range issue.Credits {
		md.AddCredit(c.Name, c.Role, false)
	}

	md.Title = issue.Title
	if (settings.PreferStoryTitles || md.Title == "") && len(issue.StoryTitles) > 0 {
		md.Title = strings.Join(issue.StoryTitles, listSeparator)
	}

	md.SetGenres(issue.Genres)
	md.Price = SelectPrice(issue.Price, settings.Currency)
	md.Identifier = issue.ISBN

	if series.YearEnded != nil || settings.UseOngoingIssueCount {
		md.IssueCount = series.IssueCount
	}

	md.Description = describe(issue, series, settings.CombineNotes)

	if link, ok := issueLink(settings.WebsiteURL, issue.ID); ok {
		md.WebLinks = []string{link}
	}

	md.Volume = metadata.XlateInt(issue.Volume)
	if settings.UseSeriesStartAsVolume {
		md.Volume = series.YearBegan
	}

	if issue.KeyDate != "" {
		md.Day, md.Month, md.Year = metadata.ParseDateStr(issue.KeyDate)
	} else if series.YearBegan != nil {
		md.Year = metadata.IntPtr(*series.YearBegan)
	}

	md.Language = issue.Language.ISOCode
	md.Country = issue.Country.Name
	if format, ok := ClassifyFormat(series.Format); ok {
		md.Format = format
	}
	md.MaturityRating = issue.MaturityRating
	md.Imprint = issue.Imprint

	return md
}

// describe builds the description. Story titles are paired with synopses only
// when both lists have the same length; otherwise the synopses stand alone.
func describe(issue IssueRecord, series SeriesSummary, combineNotes bool) string {
	var b strings.Builder

	if combineNotes {
		for _, note := range []string{series.Notes, issue.Notes} {
			if note != "" {
				b.WriteString(note)
				b.WriteString(paragraphBreak)
			}
		}
	}

	if len(issue.Synopses) == len(issue.StoryTitles) {
		for i, storyTitle := range issue.StoryTitles {
			if storyTitle != "" && issue.Synopses[i] != "" {
				b.WriteString(storyTitle + ": " + issue.Synopses[i] + paragraphBreak)
			}
		}
	} else {
		b.WriteString(strings.Join(issue.Synopses, paragraphBreak))
	}

	return b.String()
}

// issueLink resolves "issue/<id>" against the website root.
func issueLink(website string, issueID int) (string, bool) {
	base, err := url.Parse(website)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return "", false
	}
	return base.ResolveReference(&url.URL{Path: "issue/" + strconv.Itoa(issueID)}).String(), true
}
