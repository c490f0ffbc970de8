package cmd

import (
	"context"
	"fmt"

	"github.com/lepinkainen/gcdtalker/internal/cache"
	"github.com/lepinkainen/gcdtalker/internal/config"
	"github.com/lepinkainen/gcdtalker/internal/gcd"
	"github.com/spf13/viper"
)

// coverClient is the part of the cover scraper the cover command needs.
type coverClient interface {
	FindIssueCovers(ctx context.Context, issueID string) (string, []string, error)
	DownloadCover(ctx context.Context, imageURL, savePath string, maxWidth int) error
}

var (
	openCache      = cache.GetGlobalCache
	newCoverClient = func(settings config.Settings) coverClient { return gcd.NewCoverClient(settings) }
	newSource      = defaultSource
)

func defaultSource(settings config.Settings) (gcd.Source, error) {
	var opts []gcd.Option
	if !viper.GetBool(keyNoCache) {
		store, err := openCache()
		if err != nil {
			return nil, fmt.Errorf("failed to open cache: %w", err)
		}
		opts = append(opts, gcd.WithCache(store))
	}
	return gcd.New(settings, opts...), nil
}

func loadSource() (gcd.Source, error) {
	return newSource(config.Load())
}
