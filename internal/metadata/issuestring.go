package metadata

import (
	"strconv"
	"strings"
)

// IssueString splits an issue number into its numeric part and suffix,
// e.g. "001" -> 1, "12.5AU" -> 12.5 + "AU", "[nn]" -> suffix only.
type IssueString struct {
	num    *float64
	suffix string
}

// ParseIssueString parses text into an IssueString.
func ParseIssueString(text string) IssueString {
	var is IssueString
	if text == "" {
		return is
	}

	start := 0
	if text[0] == '-' {
		start = 1
	}
	if start >= len(text) || !(isDigit(text[start]) || text[start] == '.') {
		is.suffix = text
		return is
	}

	idx := len(text)
	decimals := 0
	for i := start; i < len(text); i++ {
		c := text[i]
		if !isDigit(c) && c != '.' {
			idx = i
			break
		}
		if c == '.' {
			decimals++
			if decimals > 1 {
				idx = i
				break
			}
		}
	}

	// a trailing decimal point belongs to the suffix when something follows it
	if text[idx-1] == '.' && idx != len(text) {
		idx--
	}
	// a lone minus sign is part of the suffix
	if idx == 1 && start == 1 {
		idx = 0
	}

	part1, part2 := text[:idx], text[idx:]
	if part1 != "" {
		if f, err := strconv.ParseFloat(part1, 64); err == nil {
			is.num = &f
		} else {
			part2 = text
		}
	}
	is.suffix = part2
	return is
}

// Num returns the numeric part, if any.
func (is IssueString) Num() (float64, bool) {
	if is.num == nil {
		return 0, false
	}
	return *is.num, true
}

// String renders the normalized issue number: integer-valued numbers drop
// leading zeros and decimals, the suffix is kept verbatim.
func (is IssueString) String() string {
	if is.num == nil {
		return is.suffix
	}

	n := *is.num
	negative := n < 0
	if negative {
		n = -n
	}

	var s string
	if n == float64(int64(n)) {
		s = strconv.FormatInt(int64(n), 10)
	} else {
		s = strconv.FormatFloat(n, 'f', -1, 64)
	}
	s += is.suffix
	if negative {
		s = "-" + s
	}
	return s
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// NormalizeIssue is shorthand for ParseIssueString(text).String().
func NormalizeIssue(text string) string {
	return ParseIssueString(strings.TrimSpace(text)).String()
}
