package rotation

import (
	"strings"
	"time"

	"rit.dev/rit/internal/config"
)

// levelName is one rung of a computed periodic hierarchy: its configured
// level, its concatenated full name, and its branch name.
type levelName struct {
	// Level is the configured rung (coarsest first within the slice).
	Level config.Level

	// FullName concatenates this level's label with every coarser
	// level's label, joined by "_" (e.g. "2026_07_31_15").
	FullName string

	// BranchName is "periodic__lvl_<name>__<full_name>", normalizing on
	// "lvl_" rather than the source's inconsistent "level_" spelling.
	BranchName string
}

// computeLevelNames renders one levelName per configured level, coarsest
// to finest, from a real UTC timestamp decomposition (rather than the
// placeholder constant the original took a shortcut with).
func computeLevelNames(levels []config.Level, now time.Time) []levelName {
	utc := now.UTC()
	names := make([]levelName, 0, len(levels))
	var labels []string
	for _, lvl := range levels {
		labels = append(labels, utc.Format(lvl.LabelFormat))
		full := strings.Join(labels, "_")
		names = append(names, levelName{
			Level:      lvl,
			FullName:   full,
			BranchName: "periodic__lvl_" + lvl.Name + "__" + full,
		})
	}
	return names
}
