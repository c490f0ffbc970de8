package covers

import (
	"context"
	stdErrors "errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/lepinkainen/gcdtalker/internal/errors"
)

const (
	coverSelector     = "img.cover_img"
	challengeSelector = "#challenge-error-title"
)

// Finder resolves the cover images of an issue.
type Finder interface {
	FindIssueCovers(ctx context.Context, issueID string) (string, []string, error)
}

// PageResult is the outcome of parsing a cover page.
type PageResult struct {
	Cover     string
	Variants  []string
	Challenge bool
}

// CoverPageURL returns the large-cover page of an issue.
func (c *Client) CoverPageURL(issueID string) (string, error) {
	return url.JoinPath(c.baseURL, "issue", issueID, "cover", "4")
}

// FindIssueCovers returns the primary cover and any variant covers of an issue.
// Both are empty when the page has no cover or is an anti-bot challenge.
func (c *Client) FindIssueCovers(ctx context.Context, issueID string) (string, []string, error) {
	pageURL, err := c.CoverPageURL(issueID)
	if err != nil {
		return "", nil, errors.NewNetworkError(c.baseURL, false, err)
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return "", nil, err
	}

	doc, err := c.fetchDocument(ctx, pageURL)
	if err != nil {
		return "", nil, err
	}
	result := ParseCoverPage(doc, pageURL)

	if result.Challenge && c.browser != nil {
		slog.Info("CloudFlare active, retrying with browser", "issue_id", issueID)
		html, err := c.browser.FetchHTML(ctx, pageURL)
		if err != nil {
			slog.Warn("Browser fallback failed", "issue_id", issueID, "error", err)
		} else if doc, err := goquery.NewDocumentFromReader(strings.NewReader(html)); err == nil {
			result = ParseCoverPage(doc, pageURL)
		}
	}

	switch {
	case result.Challenge:
		slog.Info("CloudFlare active, cannot access image", "issue_id", issueID)
	case result.Cover == "":
		slog.Info("No image found", "issue_id", issueID)
	default:
		slog.Debug("Found cover images", "issue_id", issueID, "variants", len(result.Variants))
	}

	return result.Cover, result.Variants, nil
}

// fetchDocument downloads and parses pageURL. Challenge pages are served with
// error statuses, so the body is parsed whatever the status code.
func (c *Client) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := newRequest(ctx, pageURL)
	if err != nil {
		return nil, errors.NewNetworkError(c.baseURL, false, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, networkError(c.baseURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		slog.Debug("Cover page returned error status", "url", pageURL, "status", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, networkError(c.baseURL, fmt.Errorf("failed to parse cover page: %w", err))
	}
	return doc, nil
}

// ParseCoverPage extracts cover image URLs from a cover page. Query strings are
// stripped from the image sources and relative sources are resolved against pageURL.
func ParseCoverPage(doc *goquery.Document, pageURL string) PageResult {
	var result PageResult
	base, _ := url.Parse(pageURL)

	doc.Find(coverSelector).Each(func(_ int, s *goquery.Selection) {
		src, ok := s.Attr("src")
		if !ok || src == "" {
			return
		}
		src, _, _ = strings.Cut(src, "?")
		if base != nil {
			if ref, err := url.Parse(src); err == nil {
				src = base.ResolveReference(ref).String()
			}
		}
		if result.Cover == "" {
			result.Cover = src
		} else {
			result.Variants = append(result.Variants, src)
		}
	})

	if result.Cover == "" && doc.Find(challengeSelector).Length() > 0 {
		result.Challenge = true
	}
	return result
}

func networkError(site string, err error) error {
	var timeout interface{ Timeout() bool }
	isTimeout := stdErrors.Is(err, context.DeadlineExceeded) ||
		(stdErrors.As(err, &timeout) && timeout.Timeout())
	if isTimeout {
		slog.Debug("Connection timed out", "url", site)
	} else {
		slog.Debug("Request exception", "url", site, "error", err)
	}
	return errors.NewNetworkError(site, isTimeout, err)
}
