package output_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"rit.dev/rit/internal/output"
)

func TestColorCommitIDContainsText(t *testing.T) {
	out := output.ColorCommitID("abc1234")
	require.Contains(t, out, "abc1234")
}

func TestBranchColorCycles(t *testing.T) {
	require.Equal(t, output.BranchColor(0), output.BranchColor(len(output.BRANCH_COLORS)))
}

func TestVerbosityToLevel(t *testing.T) {
	require.Equal(t, "INFO", output.VerbosityToLevel(0).String())
	require.Equal(t, "DEBUG", output.VerbosityToLevel(1).String())
	require.Equal(t, "WARN", output.VerbosityToLevel(-1).String())
}
