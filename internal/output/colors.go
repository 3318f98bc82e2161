package output

import "github.com/charmbracelet/lipgloss"

// BRANCH_COLORS cycles through distinct hues for rotation levels and
// branch labels in the log view and the interactive browser.
var BRANCH_COLORS = [][]int{
	{76, 203, 241},  // Light blue
	{77, 202, 125},  // Green
	{110, 173, 38},  // Dark green
	{245, 200, 0},   // Yellow
	{248, 144, 72},  // Orange
	{244, 98, 81},   // Red
	{235, 130, 188}, // Pink
	{159, 131, 228}, // Purple
	{80, 132, 243},  // Blue
}

// BranchColor returns a stable color for the i'th distinct branch name
// seen, cycling through BRANCH_COLORS.
func BranchColor(i int) lipgloss.Color {
	rgb := BRANCH_COLORS[i%len(BRANCH_COLORS)]
	return lipgloss.Color(rgbHex(rgb[0], rgb[1], rgb[2]))
}

func rgbHex(r, g, b int) string {
	const hex = "0123456789abcdef"
	buf := []byte{'#', 0, 0, 0, 0, 0, 0}
	buf[1], buf[2] = hex[r/16], hex[r%16]
	buf[3], buf[4] = hex[g/16], hex[g%16]
	buf[5], buf[6] = hex[b/16], hex[b%16]
	return string(buf)
}

// ColorCommitID colors a short commit id the way rit.py's log_commit
// colors hashes: yellow.
func ColorCommitID(text string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Render(text)
}

// ColorBranch colors a branch label green.
func ColorBranch(text string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Render(text)
}

// ColorHead colors the HEAD sentinel label cyan, singling it out from
// ordinary branch labels.
func ColorHead(text string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true).Render(text)
}

// ColorRed colors text red, used for error and warning emphasis.
func ColorRed(text string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Render(text)
}

// ColorDim colors text gray, used for de-emphasized metadata like ages.
func ColorDim(text string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(text)
}
