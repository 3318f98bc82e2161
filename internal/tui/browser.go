// Package tui implements the optional interactive commit browser shown
// by `rit log --interactive`, built from bubbles/list over
// graph.LogLine rows the same way the commit graph renders log output
// for the plain CLI path.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"rit.dev/rit/internal/graph"
	"rit.dev/rit/internal/output"
)

// commitItem adapts a graph.LogLine to list.Item.
type commitItem struct {
	line graph.LogLine
}

func (i commitItem) Title() string {
	branches := ""
	if len(i.line.Branches) > 0 {
		branches = " (" + strings.Join(i.line.Branches, ", ") + ")"
	}
	return fmt.Sprintf("%s%s", i.line.ShortID, branches)
}

func (i commitItem) Description() string { return fmt.Sprintf("%s  %s", i.line.Age, i.line.Msg) }
func (i commitItem) FilterValue() string { return i.line.Msg }

var browserKeys = struct {
	Quit key.Binding
}{
	Quit: key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

// BrowserModel is the bubbletea model for the interactive commit log.
type BrowserModel struct {
	list     list.Model
	Selected *graph.LogLine
	quitting bool
}

// NewBrowserModel builds a commit browser over already-rendered log lines.
func NewBrowserModel(lines []graph.LogLine, width, height int) BrowserModel {
	items := make([]list.Item, len(lines))
	for i, l := range lines {
		items[i] = commitItem{line: l}
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(output.BranchColor(0)).
		BorderLeftForeground(output.BranchColor(0))

	l := list.New(items, delegate, width, height)
	l.Title = "rit log"
	l.Styles.Title = lipgloss.NewStyle().Bold(true)

	return BrowserModel{list: l}
}

// Init satisfies tea.Model.
func (m BrowserModel) Init() tea.Cmd { return nil }

// Update satisfies tea.Model.
func (m BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, browserKeys.Quit):
			m.quitting = true
			return m, tea.Quit
		case msg.String() == "enter":
			if item, ok := m.list.SelectedItem().(commitItem); ok {
				line := item.line
				m.Selected = &line
			}
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View satisfies tea.Model.
func (m BrowserModel) View() string {
	if m.quitting {
		return ""
	}
	return m.list.View()
}
