package tui

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"rit.dev/rit/internal/graph"
)

// RunBrowser launches the interactive commit browser over stdin/stdout
// and returns the commit the user selected with enter, or nil if they
// quit without choosing one.
func RunBrowser(lines []graph.LogLine) (*graph.LogLine, error) {
	m := NewBrowserModel(lines, 80, 24)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithInput(os.Stdin), tea.WithOutput(os.Stdout))
	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("commit browser: %w", err)
	}
	result, ok := final.(BrowserModel)
	if !ok {
		return nil, nil
	}
	return result.Selected, nil
}
