package gcd

import (
	"strings"

	"github.com/lepinkainen/gcdtalker/internal/metadata"
	"golang.org/x/text/cases"
)

// SelectPrice picks the first component of a GCD price string such as
// "0.10 USD; 0.12 CAD" whose currency matches currency, case-insensitively.
func SelectPrice(price, currency string) *float64 {
	if price == "" || currency == "" {
		return nil
	}
	fold := cases.Fold()
	want := fold.String(strings.TrimSpace(currency))
	for _, component := range strings.Split(price, ";") {
		component = strings.TrimSpace(component)
		if strings.HasSuffix(fold.String(component), want) {
			return metadata.XlateFloat(component)
		}
	}
	return nil
}
