package rotation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"rit.dev/rit/internal/config"
)

func TestComputeLevelNamesConcatenatesCoarseToFine(t *testing.T) {
	levels := []config.Level{
		{Name: "month", LabelFormat: "2006_01"},
		{Name: "day", LabelFormat: "02"},
		{Name: "hour", LabelFormat: "15"},
	}
	ts := time.Date(2026, time.July, 31, 14, 5, 0, 0, time.UTC)

	names := computeLevelNames(levels, ts)
	require.Len(t, names, 3)
	require.Equal(t, "2026_07", names[0].FullName)
	require.Equal(t, "periodic__lvl_month__2026_07", names[0].BranchName)
	require.Equal(t, "2026_07_31", names[1].FullName)
	require.Equal(t, "periodic__lvl_day__2026_07_31", names[1].BranchName)
	require.Equal(t, "2026_07_31_14", names[2].FullName)
	require.Equal(t, "periodic__lvl_hour__2026_07_31_14", names[2].BranchName)
}
