// Package tui provides interactive terminal UI components.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lepinkainen/gcdtalker/internal/gcd"
)

const (
	defaultListWidth  = 72
	defaultListHeight = 20
)

var runProgram = func(m tea.Model) (tea.Model, error) {
	return tea.NewProgram(m).Run()
}

// SelectionAction represents the user's action in the selection UI.
type SelectionAction int

const (
	// ActionNone indicates no action was taken.
	ActionNone SelectionAction = iota
	// ActionSelected indicates the user selected an item.
	ActionSelected
	// ActionSkipped indicates the user skipped the selection.
	ActionSkipped
	// ActionStopped indicates the user stopped processing entirely.
	ActionStopped
)

// SelectionResult holds the result of a TUI selection.
type SelectionResult struct {
	Action    SelectionAction
	Selection *gcd.SeriesSummary
}

type seriesItem struct {
	gcd.SeriesSummary
}

func (i seriesItem) Title() string {
	return fmt.Sprintf("%s (%s)", strings.ToUpper(i.Name), yearRange(i.SeriesSummary))
}

func (i seriesItem) FilterValue() string {
	return i.Name
}

func (i seriesItem) Description() string {
	return i.Notes
}

type itemStyles struct {
	normal         lipgloss.Style
	selected       lipgloss.Style
	publisherStyle lipgloss.Style
	titleStyle     lipgloss.Style
	metadataStyle  lipgloss.Style
	notesStyle     lipgloss.Style
}

func newItemStyles() itemStyles {
	asciiBorder := lipgloss.Border{
		Top:         "-",
		Bottom:      "-",
		Left:        "|",
		Right:       "|",
		TopLeft:     "+",
		TopRight:    "+",
		BottomLeft:  "+",
		BottomRight: "+",
	}

	container := lipgloss.NewStyle().
		Border(asciiBorder).
		BorderForeground(lipgloss.Color("62")).
		Padding(0, 1).
		Foreground(lipgloss.Color("252"))

	selected := container.Copy().
		BorderForeground(lipgloss.Color("214")).
		Foreground(lipgloss.Color("230")).
		Background(lipgloss.Color("237"))

	return itemStyles{
		normal:   container,
		selected: selected,
		publisherStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("110")),
		titleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("254")),
		metadataStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("247")).
			Faint(true),
		notesStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("248")),
	}
}

type seriesDelegate struct {
	styles itemStyles
}

func newDelegate() seriesDelegate {
	return seriesDelegate{styles: newItemStyles()}
}

func (d seriesDelegate) Height() int                         { return 4 }
func (d seriesDelegate) Spacing() int                        { return 1 }
func (d seriesDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }

func (d seriesDelegate) Render(w io.Writer, m list.Model, idx int, item list.Item) {
	series, ok := item.(seriesItem)
	if !ok {
		return
	}

	publisher := series.PublisherName
	if publisher == "" {
		publisher = "unknown publisher"
	}

	publisherLine := d.styles.publisherStyle.Render(fmt.Sprintf("[%s]", strings.ToUpper(publisher)))
	titleLine := d.styles.titleStyle.Render(series.Title())
	metadataLine := d.styles.metadataStyle.Render(formatMetadata(series.SeriesSummary, m.Width()-4))
	notesLine := d.styles.notesStyle.Render(truncate(series.Notes, m.Width()-4))

	content := lipgloss.JoinVertical(lipgloss.Left, publisherLine, titleLine, metadataLine, notesLine)

	container := d.styles.normal
	if idx == m.Index() {
		container = d.styles.selected
	}
	_, _ = fmt.Fprint(w, container.Render(content))
}

type model struct {
	list        list.Model
	searchTitle string
	result      SelectionResult
}

func newModel(title string, items []seriesItem) *model {
	listItems := make([]list.Item, len(items))
	for i, item := range items {
		listItems[i] = item
	}

	l := list.New(listItems, newDelegate(), defaultListWidth, defaultListHeight)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.SetShowTitle(false)
	l.SetShowPagination(false)
	l.DisableQuitKeybindings()
	l.Styles.NoItems = lipgloss.NewStyle()

	return &model{
		list:        l,
		searchTitle: title,
		result: SelectionResult{
			Action: ActionNone,
		},
	}
}

func (m *model) Init() tea.Cmd { return nil }

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if selected, ok := m.list.SelectedItem().(seriesItem); ok {
				series := selected.SeriesSummary
				m.result = SelectionResult{
					Action:    ActionSelected,
					Selection: &series,
				}
				return m, tea.Quit
			}
		case "s", "esc":
			m.result = SelectionResult{Action: ActionSkipped}
			return m, tea.Quit
		case "ctrl+c", "q":
			m.result = SelectionResult{Action: ActionStopped}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		width := clamp(defaultListWidth, msg.Width-4, 40)
		height := clamp(defaultListHeight, msg.Height-6, 5)
		m.list.SetSize(width, height)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *model) View() string {
	header := headerStyle.Render(fmt.Sprintf("Series matching: %s", m.searchTitle))
	listView := m.list.View()
	buttons := lipgloss.JoinHorizontal(
		lipgloss.Left,
		skipButtonStyle.Render(" Skip "),
		lipgloss.NewStyle().Padding(0, 2).Render(""),
		stopButtonStyle.Render(" Quit "),
	)
	help := helpStyle.Render("Up/Down navigate | Enter select | s skip | q quit")
	return lipgloss.JoinVertical(lipgloss.Left, header, listView, buttons, help)
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214")).
			MarginBottom(1)

	skipButtonStyle = lipgloss.NewStyle().
			MarginTop(1).
			Padding(0, 2).
			Background(lipgloss.Color("178")).
			Foreground(lipgloss.Color("0")).
			Bold(true)

	stopButtonStyle = lipgloss.NewStyle().
			MarginTop(1).
			Padding(0, 2).
			Background(lipgloss.Color("161")).
			Foreground(lipgloss.Color("230")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			MarginTop(1).
			Foreground(lipgloss.Color("244"))
)

// SelectSeries presents an interactive picker for series search results.
// A single result is selected without prompting.
func SelectSeries(title string, results []gcd.SeriesSummary) (SelectionResult, error) {
	switch len(results) {
	case 0:
		return SelectionResult{Action: ActionSkipped}, nil
	case 1:
		series := results[0]
		return SelectionResult{Action: ActionSelected, Selection: &series}, nil
	}

	items := make([]seriesItem, len(results))
	for i, result := range results {
		items[i] = seriesItem{SeriesSummary: result}
	}

	finalModel, err := runProgram(newModel(title, items))
	if err != nil {
		return SelectionResult{}, err
	}

	if typed, ok := finalModel.(*model); ok {
		return typed.result, nil
	}

	return SelectionResult{}, fmt.Errorf("unexpected program result")
}

func truncate(value string, width int) string {
	value = strings.Join(strings.Fields(value), " ")
	if width <= 0 || len(value) <= width {
		return value
	}
	if width <= 3 {
		return value[:width]
	}
	return value[:width-3] + "..."
}

func yearRange(s gcd.SeriesSummary) string {
	switch {
	case s.YearBegan == nil:
		return "????"
	case s.YearEnded == nil:
		return fmt.Sprintf("%d-", *s.YearBegan)
	case *s.YearEnded == *s.YearBegan:
		return fmt.Sprintf("%d", *s.YearBegan)
	default:
		return fmt.Sprintf("%d-%d", *s.YearBegan, *s.YearEnded)
	}
}

// formatMetadata creates the metadata line with issue count and series id
func formatMetadata(s gcd.SeriesSummary, availableWidth int) string {
	var parts []string

	if s.IssueCount != nil {
		parts = append(parts, fmt.Sprintf("%d issues", *s.IssueCount))
	}
	parts = append(parts, fmt.Sprintf("GCD #%d", s.ID))
	if s.ImageURL != "" {
		parts = append(parts, "cover")
	}

	line := strings.Join(parts, " | ")
	if availableWidth > 0 && len(line) > availableWidth {
		line = truncate(line, availableWidth)
	}
	return line
}

func clamp(defaultValue, available, minimum int) int {
	width := defaultValue
	if available > 0 && available < defaultValue {
		width = available
	}
	if width < minimum {
		width = minimum
	}
	return width
}
