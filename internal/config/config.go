package config

import (
	"time"

	"github.com/spf13/viper"
)

// Configuration keys understood by the GCD talker
const (
	KeyDBFile                 = "gcd.filepath"
	KeyWebsiteURL             = "gcd.url"
	KeyCurrency               = "gcd.currency"
	KeyUseSeriesStartAsVolume = "gcd.use_series_start_as_volume"
	KeyUseOngoing             = "gcd.use_ongoing"
	KeyNNIsIssueOne           = "gcd.nn_is_issue_one"
	KeyReplaceNNWithOne       = "gcd.replace_nn_with_one"
	KeyPreferStoryTitles      = "gcd.prefer_story_titles"
	KeyCombineNotes           = "gcd.combine_notes"
	KeyGUICovers              = "gcd.gui_covers"
	KeyTagCovers              = "gcd.tag_covers"
	KeyBrowserFallback        = "covers.browser_fallback"
	KeyCoverTimeout           = "covers.timeout"
	KeyCacheDBFile            = "cache.dbfile"
)

const (
	// DefaultWebsiteURL is the base URL used for web links and cover scraping
	DefaultWebsiteURL = "https://www.comics.org/"
	// DefaultCurrency is the preferred price currency
	DefaultCurrency = "USD"
)

// Settings holds every option the talker recognizes.
type Settings struct {
	// DBFile is the path of the GCD SQLite dump. Required, must exist.
	DBFile     string
	WebsiteURL string
	Currency   string

	UseSeriesStartAsVolume bool
	UseOngoingIssueCount   bool
	PreferStoryTitles      bool
	CombineNotes           bool
	// DownloadGUICovers fetches covers for series/issue listings and issue details
	DownloadGUICovers bool
	// DownloadTagCovers fetches covers for series+number matches used by auto-tagging
	DownloadTagCovers bool

	NNIsIssueOne     bool
	ReplaceNNWithOne bool

	BrowserFallback bool
	CoverTimeout    time.Duration
}

// Default returns the settings used when nothing is configured
func Default() Settings {
	return Settings{
		WebsiteURL:   DefaultWebsiteURL,
		Currency:     DefaultCurrency,
		CoverTimeout: 10 * time.Second,
	}
}

// InitConfig registers default values with viper
func InitConfig() {
	d := Default()
	viper.SetDefault(KeyDBFile, "")
	viper.SetDefault(KeyWebsiteURL, d.WebsiteURL)
	viper.SetDefault(KeyCurrency, d.Currency)
	viper.SetDefault(KeyUseSeriesStartAsVolume, false)
	viper.SetDefault(KeyUseOngoing, false)
	viper.SetDefault(KeyNNIsIssueOne, false)
	viper.SetDefault(KeyReplaceNNWithOne, false)
	viper.SetDefault(KeyPreferStoryTitles, false)
	viper.SetDefault(KeyCombineNotes, false)
	viper.SetDefault(KeyGUICovers, false)
	viper.SetDefault(KeyTagCovers, false)
	viper.SetDefault(KeyBrowserFallback, false)
	viper.SetDefault(KeyCoverTimeout, d.CoverTimeout.String())
	viper.SetDefault(KeyCacheDBFile, "./cache.db")
}

// Load reads the current settings from viper
func Load() Settings {
	s := Default()

	s.DBFile = viper.GetString(KeyDBFile)
	if url := viper.GetString(KeyWebsiteURL); url != "" {
		s.WebsiteURL = url
	}
	if currency := viper.GetString(KeyCurrency); currency != "" {
		s.Currency = currency
	}
	s.UseSeriesStartAsVolume = viper.GetBool(KeyUseSeriesStartAsVolume)
	s.UseOngoingIssueCount = viper.GetBool(KeyUseOngoing)
	s.NNIsIssueOne = viper.GetBool(KeyNNIsIssueOne)
	s.ReplaceNNWithOne = viper.GetBool(KeyReplaceNNWithOne)
	s.PreferStoryTitles = viper.GetBool(KeyPreferStoryTitles)
	s.CombineNotes = viper.GetBool(KeyCombineNotes)
	s.DownloadGUICovers = viper.GetBool(KeyGUICovers)
	s.DownloadTagCovers = viper.GetBool(KeyTagCovers)
	s.BrowserFallback = viper.GetBool(KeyBrowserFallback)
	if d := viper.GetDuration(KeyCoverTimeout); d > 0 {
		s.CoverTimeout = d
	}

	return s
}
