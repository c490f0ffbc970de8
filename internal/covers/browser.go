package covers

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
)

var (
	chromedpExecAllocator = chromedp.NewExecAllocator
	chromedpContext       = chromedp.NewContext
	chromedpRunner        = chromedp.Run
)

// PageFetcher renders a page and returns its HTML.
type PageFetcher interface {
	FetchHTML(ctx context.Context, pageURL string) (string, error)
}

// BrowserFetcher loads pages in a headless Chrome so that JavaScript
// challenges can complete before the HTML is read.
type BrowserFetcher struct {
	Headless bool
	Timeout  time.Duration
}

// NewBrowserFetcher creates a headless browser fetcher.
func NewBrowserFetcher(timeout time.Duration) *BrowserFetcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &BrowserFetcher{Headless: true, Timeout: timeout}
}

// FetchHTML navigates to pageURL and returns the rendered document.
func (b *BrowserFetcher) FetchHTML(parentCtx context.Context, pageURL string) (string, error) {
	ctx, cancel := context.WithTimeout(parentCtx, b.Timeout)
	defer cancel()

	allocCtx, cancelAllocator := chromedpExecAllocator(ctx, b.execAllocatorOptions()...)
	defer cancelAllocator()

	browserCtx, cancelBrowser := chromedpContext(allocCtx)
	defer cancelBrowser()

	slog.Debug("Fetching page with browser", "url", pageURL, "headless", b.Headless)

	var html string
	if err := chromedpRunner(browserCtx,
		network.Enable(),
		network.SetExtraHTTPHeaders(network.Headers{"User-Agent": userAgent}),
		chromedp.Navigate(pageURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	); err != nil {
		return "", fmt.Errorf("browser fetch of %s failed: %w", pageURL, err)
	}
	return html, nil
}

func (b *BrowserFetcher) execAllocatorOptions() []chromedp.ExecAllocatorOption {
	return []chromedp.ExecAllocatorOption{
		chromedp.NoDefaultBrowserCheck,
		chromedp.NoFirstRun,
		chromedp.Flag("headless", b.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("mute-audio", true),
		chromedp.Flag("disable-default-apps", true),
	}
}
