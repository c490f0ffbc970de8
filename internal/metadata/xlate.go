package metadata

import (
	"strconv"
	"strings"
)

// XlateFloat extracts a number from free text by keeping only digits and dots,
// so "12.99 USD" yields 12.99. Returns nil when nothing numeric remains.
func XlateFloat(s string) *float64 {
	var b strings.Builder
	for _, r := range strings.TrimSpace(s) {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return nil
	}
	f, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return nil
	}
	return &f
}

// XlateInt is XlateFloat truncated to an int.
func XlateInt(s string) *int {
	f := XlateFloat(s)
	if f == nil {
		return nil
	}
	i := int(*f)
	return &i
}

// ParseDateStr parses GCD key dates such as "1990-05-00" or "2001-11" into
// day, month and year. Zero components are treated as unknown.
func ParseDateStr(s string) (day, month, year *int) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil, nil
	}
	parts := strings.Split(s, "-")
	year = nonZero(XlateInt(parts[0]))
	if len(parts) > 1 {
		month = nonZero(XlateInt(parts[1]))
		if len(parts) > 2 {
			day = nonZero(XlateInt(parts[2]))
		}
	}
	return day, month, year
}

func nonZero(i *int) *int {
	if i == nil || *i == 0 {
		return nil
	}
	return i
}

// IntPtr returns a pointer to i.
func IntPtr(i int) *int {
	return &i
}
