package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lepinkainen/gcdtalker/internal/gcd"
	"github.com/lepinkainen/gcdtalker/internal/metadata"
)

func sampleSeries() []gcd.SeriesSummary {
	return []gcd.SeriesSummary{
		{ID: 1, Name: "Fantastic Four", YearBegan: metadata.IntPtr(1961), YearEnded: metadata.IntPtr(1996), IssueCount: metadata.IntPtr(416), PublisherName: "Marvel"},
		{ID: 4, Name: "fantastic four", YearBegan: metadata.IntPtr(2010), YearEnded: metadata.IntPtr(2010), PublisherName: "Fantagraphics"},
	}
}

func stubProgram(t *testing.T, keys ...string) {
	t.Helper()
	orig := runProgram
	t.Cleanup(func() { runProgram = orig })

	runProgram = func(m tea.Model) (tea.Model, error) {
		for _, k := range keys {
			var msg tea.KeyMsg
			switch k {
			case "enter":
				msg = tea.KeyMsg{Type: tea.KeyEnter}
			case "down":
				msg = tea.KeyMsg{Type: tea.KeyDown}
			default:
				msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
			}
			m, _ = m.Update(msg)
		}
		return m, nil
	}
}

func TestSelectSeries_Enter(t *testing.T) {
	stubProgram(t, "down", "enter")

	result, err := SelectSeries("fantastic", sampleSeries())
	require.NoError(t, err)
	assert.Equal(t, ActionSelected, result.Action)
	require.NotNil(t, result.Selection)
	assert.Equal(t, 4, result.Selection.ID)
}

func TestSelectSeries_SkipAndStop(t *testing.T) {
	stubProgram(t, "s")
	result, err := SelectSeries("fantastic", sampleSeries())
	require.NoError(t, err)
	assert.Equal(t, ActionSkipped, result.Action)
	assert.Nil(t, result.Selection)

	stubProgram(t, "q")
	result, err = SelectSeries("fantastic", sampleSeries())
	require.NoError(t, err)
	assert.Equal(t, ActionStopped, result.Action)
}

func TestSelectSeries_NoPromptNeeded(t *testing.T) {
	orig := runProgram
	t.Cleanup(func() { runProgram = orig })
	runProgram = func(tea.Model) (tea.Model, error) {
		t.Fatal("program should not run")
		return nil, nil
	}

	result, err := SelectSeries("none", nil)
	require.NoError(t, err)
	assert.Equal(t, ActionSkipped, result.Action)

	result, err = SelectSeries("one", sampleSeries()[:1])
	require.NoError(t, err)
	assert.Equal(t, ActionSelected, result.Action)
	assert.Equal(t, 1, result.Selection.ID)
}

func TestSelectSeries_ProgramError(t *testing.T) {
	orig := runProgram
	t.Cleanup(func() { runProgram = orig })
	runProgram = func(tea.Model) (tea.Model, error) { return nil, errors.New("no tty") }

	_, err := SelectSeries("fantastic", sampleSeries())
	assert.EqualError(t, err, "no tty")
}

func TestSeriesItemRendering(t *testing.T) {
	items := sampleSeries()
	assert.Equal(t, "FANTASTIC FOUR (1961-1996)", seriesItem{items[0]}.Title())
	assert.Equal(t, "FANTASTIC FOUR (2010)", seriesItem{items[1]}.Title())
	assert.Equal(t, "X (1999-)", seriesItem{gcd.SeriesSummary{Name: "x", YearBegan: metadata.IntPtr(1999)}}.Title())
	assert.Equal(t, "X (????)", seriesItem{gcd.SeriesSummary{Name: "x"}}.Title())

	assert.Equal(t, "416 issues | GCD #1", formatMetadata(items[0], 0))
	assert.Equal(t, "GCD #4", formatMetadata(items[1], 0))
	assert.Equal(t, "416 is...", formatMetadata(items[0], 9))

	view := newModel("fantastic", []seriesItem{{items[0]}}).View()
	assert.Contains(t, view, "Series matching: fantastic")
}

func TestTruncateAndClamp(t *testing.T) {
	assert.Equal(t, "a b c", truncate("a  b\n c", 0))
	assert.Equal(t, "abc", truncate("abcdef", 3))
	assert.Equal(t, "ab...", truncate("abcdefgh", 5))
	assert.Equal(t, 50, clamp(72, 50, 40))
	assert.Equal(t, 40, clamp(72, 10, 40))
	assert.Equal(t, 72, clamp(72, 0, 40))
}
