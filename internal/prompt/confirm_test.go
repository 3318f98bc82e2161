package prompt_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"rit.dev/rit/internal/prompt"
)

func TestConfirmAssumeYesSkipsPrompt(t *testing.T) {
	ok, err := prompt.Confirm("proceed?", true)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestConfirmNonInteractiveAutoApproves(t *testing.T) {
	t.Setenv("RIT_NON_INTERACTIVE", "1")
	ok, err := prompt.Confirm("proceed?", false)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestIsInteractiveHonorsOverride(t *testing.T) {
	t.Setenv("RIT_NON_INTERACTIVE", "1")
	require.False(t, prompt.IsInteractive())
	os.Unsetenv("RIT_NON_INTERACTIVE")
}
