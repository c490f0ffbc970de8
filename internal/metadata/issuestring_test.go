package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeIssue(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1", "1"},
		{"001", "1"},
		{"1.5", "1.5"},
		{"1.50", "1.5"},
		{"12AU", "12AU"},
		{"1.AU", "1.AU"},
		{"-1", "-1"},
		{"-", "-"},
		{"[nn]", "[nn]"},
		{"Annual", "Annual"},
		{"", ""},
		{"  7 ", "7"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeIssue(tt.in))
		})
	}
}

func TestParseIssueStringNum(t *testing.T) {
	n, ok := ParseIssueString("0042b").Num()
	assert.True(t, ok)
	assert.Equal(t, 42.0, n)

	_, ok = ParseIssueString("[nn]").Num()
	assert.False(t, ok)
}
