package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lepinkainen/gcdtalker/internal/cache"
	"github.com/lepinkainen/gcdtalker/internal/config"
	"github.com/lepinkainen/gcdtalker/internal/errors"
	"github.com/lepinkainen/gcdtalker/internal/gcd"
	"github.com/lepinkainen/gcdtalker/internal/tui"
)

var selectSeries = tui.SelectSeries

// SearchCmd represents the series search command
type SearchCmd struct {
	Name        string `arg:"" help:"Series name to search for"`
	Literal     bool   `help:"Match the name exactly instead of by words"`
	Interactive bool   `short:"i" help:"Pick a series interactively and list its issues"`
}

// SeriesCmd represents the series command
type SeriesCmd struct {
	ID string `arg:"" help:"GCD series ID"`
}

// IssuesCmd represents the issues command
type IssuesCmd struct {
	SeriesID string `arg:"" help:"GCD series ID"`
}

// LookupCmd represents the series/number/year lookup command
type LookupCmd struct {
	SeriesIDs []string `arg:"" name:"series-id" help:"Candidate GCD series IDs"`
	Number    string   `short:"n" required:"" help:"Issue number"`
	Year      *int     `short:"y" help:"Cover year"`
}

// IssueCmd represents the issue command
type IssueCmd struct {
	ID string `arg:"" help:"GCD issue ID"`
}

// ComicCmd represents the comic data command
type ComicCmd struct {
	IssueID  string `help:"GCD issue ID"`
	SeriesID string `help:"GCD series ID, used with --number when no issue ID is known"`
	Number   string `short:"n" help:"Issue number within the series"`
}

// StatusCmd represents the status command
type StatusCmd struct{}

// CoverCmd represents the cover download command
type CoverCmd struct {
	IssueID  string `arg:"" help:"GCD issue ID"`
	Output   string `short:"o" help:"Path of the JPEG to write (defaults to gcd-<issue-id>.jpg)"`
	MaxWidth int    `help:"Scale the image down to this width" default:"1000"`
}

// CacheCmd represents the cache command and its subcommands
type CacheCmd struct {
	Clear CacheClearCmd `cmd:"" help:"Remove cached entries"`
	Show  CacheShowCmd  `cmd:"" help:"Show a cached entry"`
}

// CacheClearCmd represents the cache clear command
type CacheClearCmd struct {
	Kind string `arg:"" optional:"" enum:"series,issues,all" default:"all" help:"Which entries to remove (series, issues, all)"`
}

// CacheShowCmd represents the cache show command
type CacheShowCmd struct {
	Kind string `arg:"" enum:"series,issue" help:"Entry kind (series or issue)"`
	ID   string `arg:"" help:"GCD series or issue ID"`
}

// Run methods for each command

func (c *SearchCmd) Run() error {
	source, err := loadSource()
	if err != nil {
		return err
	}

	ctx := context.Background()
	results, err := source.SearchSeries(ctx, c.Name, c.Literal)
	if err != nil {
		return err
	}
	slog.Info("Series search finished", "query", c.Name, "results", len(results))

	if !c.Interactive {
		return writeOutput(results)
	}

	selection, err := selectSeries(c.Name, results)
	if err != nil {
		return fmt.Errorf("series selection failed: %w", err)
	}

	switch selection.Action {
	case tui.ActionStopped:
		return errors.NewStopProcessingError("series selection stopped by user")
	case tui.ActionSelected:
		issues, err := source.FetchIssuesInSeries(ctx, fmt.Sprint(selection.Selection.ID))
		if err != nil {
			return err
		}
		return writeOutput(issues)
	default:
		slog.Info("No series selected", "query", c.Name)
		return nil
	}
}

func (c *SeriesCmd) Run() error {
	source, err := loadSource()
	if err != nil {
		return err
	}

	series, err := source.FetchSeries(context.Background(), c.ID)
	if err != nil {
		return err
	}
	return writeOutput(series)
}

func (c *IssuesCmd) Run() error {
	source, err := loadSource()
	if err != nil {
		return err
	}

	issues, err := source.FetchIssuesInSeries(context.Background(), c.SeriesID)
	if err != nil {
		return err
	}
	return writeOutput(issues)
}

func (c *LookupCmd) Run() error {
	source, err := loadSource()
	if err != nil {
		return err
	}

	issues, err := source.FetchIssuesBySeriesNumberYear(context.Background(), c.SeriesIDs, c.Number, c.Year)
	if err != nil {
		return err
	}
	return writeOutput(issues)
}

func (c *IssueCmd) Run() error {
	source, err := loadSource()
	if err != nil {
		return err
	}

	md, err := source.FetchIssueByID(context.Background(), c.ID)
	if err != nil {
		return err
	}
	return writeOutput(md)
}

func (c *ComicCmd) Run() error {
	if c.IssueID == "" && (c.SeriesID == "" || c.Number == "") {
		return fmt.Errorf("either --issue-id or both --series-id and --number are required")
	}

	source, err := loadSource()
	if err != nil {
		return err
	}

	md, err := source.FetchComicData(context.Background(), c.IssueID, c.SeriesID, c.Number)
	if err != nil {
		return err
	}
	if md.IsEmpty() {
		slog.Info("No matching issue", "series_id", c.SeriesID, "number", c.Number)
	}
	return writeOutput(md)
}

func (c *StatusCmd) Run() error {
	source, err := loadSource()
	if err != nil {
		return err
	}

	message, ok := source.Status(context.Background())
	if _, err := fmt.Fprintln(stdout, message); err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("GCD database unusable: %s", message)
	}
	return nil
}

func (c *CoverCmd) Run() error {
	client := newCoverClient(config.Load())
	ctx := context.Background()

	cover, _, err := client.FindIssueCovers(ctx, c.IssueID)
	if err != nil {
		return err
	}
	if cover == "" {
		return fmt.Errorf("no cover found for issue %s", c.IssueID)
	}

	output := c.Output
	if output == "" {
		output = fmt.Sprintf("gcd-%s.jpg", c.IssueID)
	}

	if err := client.DownloadCover(ctx, cover, output, c.MaxWidth); err != nil {
		return err
	}
	slog.Info("Cover saved", "issue_id", c.IssueID, "url", cover, "path", output)
	return nil
}

func (c *CacheClearCmd) Run() error {
	store, err := openCache()
	if err != nil {
		return err
	}

	var kinds []cache.Kind
	switch c.Kind {
	case "series":
		kinds = []cache.Kind{cache.KindSeries}
	case "issues":
		kinds = []cache.Kind{cache.KindIssue}
	default:
		kinds = []cache.Kind{cache.KindSeries, cache.KindIssue}
	}

	var total int64
	for _, kind := range kinds {
		n, err := store.ClearAll(kind)
		if err != nil {
			return err
		}
		total += n
	}

	_, err = fmt.Fprintf(stdout, "Removed %d cached entries from %s\n", total, store.Path())
	return err
}

func (c *CacheShowCmd) Run() error {
	store, err := openCache()
	if err != nil {
		return err
	}

	entry, found, err := store.Get(cache.Kind(c.Kind), gcd.SourceID, c.ID)
	if err != nil {
		return err
	}
	if !found {
		return errors.NewNotFoundError("Cached "+c.Kind, c.ID)
	}

	_, err = fmt.Fprintf(stdout, "%s\n%s\n", cache.Describe(entry), entry.Data)
	return err
}
