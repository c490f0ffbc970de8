package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/lepinkainen/gcdtalker/internal/config"
	"github.com/lepinkainen/humanlog"
	"github.com/spf13/viper"
)

const (
	keyJSONOutput = "output.json"
	keyNoCache    = "cache.disabled"
)

// CLI represents the complete command structure for the gcdtalker application
type CLI struct {
	// Global flags
	DB       string `name:"db" help:"Path to the GCD SQLite dump (overrides gcd.filepath)"`
	Currency string `help:"Preferred price currency (overrides gcd.currency)"`
	Covers   bool   `help:"Scrape cover images for series and issue lookups"`
	JSON     bool   `help:"Write output as JSON instead of YAML"`
	Verbose  bool   `short:"v" help:"Enable debug logging, including SQL statements"`

	// Cache flags
	CacheDBFile string `help:"Path to cache SQLite database file"`
	NoCache     bool   `help:"Bypass the record cache"`

	Search SearchCmd `cmd:"" help:"Search series by name"`
	Series SeriesCmd `cmd:"" help:"Show a single series"`
	Issues IssuesCmd `cmd:"" help:"List the issues of a series"`
	Lookup LookupCmd `cmd:"" help:"Find issues by series, issue number and year"`
	Issue  IssueCmd  `cmd:"" help:"Show the full metadata of an issue"`
	Comic  ComicCmd  `cmd:"" help:"Fetch comic data by issue ID or series ID and number"`
	Status StatusCmd `cmd:"" help:"Check that the GCD database is usable"`
	Cover  CoverCmd  `cmd:"" help:"Download the primary cover of an issue"`
	Cache  CacheCmd  `cmd:"" help:"Inspect or clear the record cache"`
}

// Execute runs the Kong-based CLI
func Execute() {
	initLogging(false)

	created, err := initConfig()
	if err != nil {
		slog.Error("Fatal error config file", "error", err)
		os.Exit(1)
	}
	if created {
		slog.Info("Config file not found, wrote default config.yaml; set gcd.filepath and rerun")
		os.Exit(0)
	}

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("gcdtalker"),
		kong.Description("Comic metadata lookups against a local Grand Comics Database dump."),
		kong.UsageOnError(),
	)

	if cli.Verbose {
		initLogging(true)
	}
	updateGlobalConfig(&cli)

	if err := ctx.Run(); err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

// initConfig registers defaults and reads config.yaml from the working
// directory. A missing file is written with the defaults and reported as created.
func initConfig() (bool, error) {
	config.InitConfig()
	viper.SetDefault(keyJSONOutput, false)

	viper.AutomaticEnv()
	if err := viper.BindEnv(config.KeyDBFile, "GCD_FILEPATH"); err != nil {
		slog.Error("Failed to bind environment variable", "error", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return false, err
		}
		if err := viper.SafeWriteConfig(); err != nil {
			return false, fmt.Errorf("error writing config file: %w", err)
		}
		return true, nil
	}

	return false, nil
}

func updateGlobalConfig(cli *CLI) {
	if cli.DB != "" {
		viper.Set(config.KeyDBFile, cli.DB)
	}
	if cli.Currency != "" {
		viper.Set(config.KeyCurrency, cli.Currency)
	}
	if cli.Covers {
		viper.Set(config.KeyGUICovers, true)
		viper.Set(config.KeyTagCovers, true)
	}
	if cli.CacheDBFile != "" {
		viper.Set(config.KeyCacheDBFile, cli.CacheDBFile)
	}
	viper.Set(keyNoCache, cli.NoCache)
	viper.Set(keyJSONOutput, cli.JSON)
}

func initLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	// Logs go to stderr so command output stays machine readable
	handler := humanlog.NewHandler(os.Stderr, &humanlog.Options{
		Level: level,
	})

	slog.SetDefault(slog.New(handler))
}
