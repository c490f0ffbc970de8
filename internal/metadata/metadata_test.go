package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddCreditMergesCaseInsensitively(t *testing.T) {
	var md Metadata

	md.AddCredit("Stan Lee", "script", false)
	md.AddCredit("Jack Kirby", "pencils", false)
	md.AddCredit("stan lee", "Script", true)
	md.AddCredit("Stan Lee", "editing", false)

	require.Len(t, md.Credits, 3)
	assert.Equal(t, Credit{Person: "Stan Lee", Role: "script", Primary: true}, md.Credits[0])
	assert.Equal(t, "Jack Kirby", md.Credits[1].Person)
	assert.Equal(t, "editing", md.Credits[2].Role)
}

func TestSetGenresIsSortedSet(t *testing.T) {
	var md Metadata
	md.SetGenres([]string{"Superhero", "Humor", "Superhero", " "})
	assert.Equal(t, []string{"Humor", "Superhero"}, md.Genres)

	md.SetCharacters(nil)
	assert.Nil(t, md.Characters)
}

func TestIsEmpty(t *testing.T) {
	var md Metadata
	assert.True(t, md.IsEmpty())

	md.Issue = "1"
	assert.False(t, md.IsEmpty())
}

func TestXlateFloat(t *testing.T) {
	tests := []struct {
		in   string
		want *float64
	}{
		{"12.99 USD", floatPtr(12.99)},
		{" 9.99 EUR", floatPtr(9.99)},
		{"free", nil},
		{"", nil},
		{"1.2.3", nil},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, XlateFloat(tt.in))
		})
	}
}

func TestXlateInt(t *testing.T) {
	assert.Equal(t, IntPtr(2), XlateInt("2"))
	assert.Equal(t, IntPtr(3), XlateInt("#3"))
	assert.Nil(t, XlateInt(""))
}

func TestParseDateStr(t *testing.T) {
	day, month, year := ParseDateStr("1990-05-17")
	assert.Equal(t, IntPtr(17), day)
	assert.Equal(t, IntPtr(5), month)
	assert.Equal(t, IntPtr(1990), year)

	day, month, year = ParseDateStr("1963-03-00")
	assert.Nil(t, day)
	assert.Equal(t, IntPtr(3), month)
	assert.Equal(t, IntPtr(1963), year)

	day, month, year = ParseDateStr("1975")
	assert.Nil(t, day)
	assert.Nil(t, month)
	assert.Equal(t, IntPtr(1975), year)

	day, month, year = ParseDateStr("")
	assert.Nil(t, day)
	assert.Nil(t, month)
	assert.Nil(t, year)
}

func floatPtr(f float64) *float64 {
	return &f
}
