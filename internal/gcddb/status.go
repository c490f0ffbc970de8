package gcddb

import (
	"context"
	"log/slog"
)

// Status checks that the snapshot can be opened and queried. It returns a
// human readable message and whether access succeeded.
func (a *Accessor) Status(ctx context.Context) (string, bool) {
	if err := a.CheckPath(); err != nil {
		return "DB path does not exist", false
	}

	var rows int
	err := a.Do(ctx, func(s *Session) error {
		return s.Query(ctx, "SELECT id FROM gcd_credit_type LIMIT 1", nil, func(Scanner) error {
			rows++
			return nil
		})
	})
	if err != nil {
		slog.Debug("GCD status check failed", "error", err)
		return "DB access failed", false
	}
	if rows == 0 {
		return "DB access failed", false
	}
	return "DB access test successful", true
}
