package covers

import (
	"context"
	"net/http"
)

const userAgent = "gcdtalker/1.0 (+https://github.com/lepinkainen/gcdtalker)"

func newRequest(ctx context.Context, target string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	return req, nil
}
