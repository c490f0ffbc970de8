package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	InitConfig()
	s := Load()

	assert.Equal(t, "", s.DBFile)
	assert.Equal(t, DefaultWebsiteURL, s.WebsiteURL)
	assert.Equal(t, "USD", s.Currency)
	assert.Equal(t, 10*time.Second, s.CoverTimeout)
	assert.False(t, s.NNIsIssueOne)
	assert.False(t, s.DownloadGUICovers)
	assert.Equal(t, "./cache.db", viper.GetString(KeyCacheDBFile))
}

func TestLoadOverrides(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	InitConfig()
	viper.Set(KeyDBFile, "/data/gcd.db")
	viper.Set(KeyCurrency, "EUR")
	viper.Set(KeyUseSeriesStartAsVolume, true)
	viper.Set(KeyUseOngoing, true)
	viper.Set(KeyNNIsIssueOne, true)
	viper.Set(KeyReplaceNNWithOne, true)
	viper.Set(KeyPreferStoryTitles, true)
	viper.Set(KeyCombineNotes, true)
	viper.Set(KeyGUICovers, true)
	viper.Set(KeyTagCovers, true)
	viper.Set(KeyCoverTimeout, "3s")

	s := Load()

	assert.Equal(t, "/data/gcd.db", s.DBFile)
	assert.Equal(t, "EUR", s.Currency)
	assert.True(t, s.UseSeriesStartAsVolume)
	assert.True(t, s.UseOngoingIssueCount)
	assert.True(t, s.NNIsIssueOne)
	assert.True(t, s.ReplaceNNWithOne)
	assert.True(t, s.PreferStoryTitles)
	assert.True(t, s.CombineNotes)
	assert.True(t, s.DownloadGUICovers)
	assert.True(t, s.DownloadTagCovers)
	assert.Equal(t, 3*time.Second, s.CoverTimeout)
}

func TestLoadEmptyCurrencyKeepsDefault(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set(KeyCurrency, "")
	assert.Equal(t, "USD", Load().Currency)
}
