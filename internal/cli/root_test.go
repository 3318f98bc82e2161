package cli_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"rit.dev/rit/internal/cli"
)

// run executes the root command with args against the current working
// directory and returns any error.
func run(t *testing.T, args ...string) error {
	t.Helper()
	root := cli.NewRootCmd()
	root.SetArgs(args)
	return root.Execute()
}

func TestInitCommitStatusLogEndToEnd(t *testing.T) {
	if _, err := exec.LookPath("tar"); err != nil {
		t.Skip("tar not available on PATH")
	}

	dir := t.TempDir()
	oldDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(oldDir) })

	require.NoError(t, run(t, "init"))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("hello"), 0o644))
	require.NoError(t, run(t, "commit", "-m", "first"))

	require.NoError(t, run(t, "status"))

	require.NoError(t, run(t, "log"))

	require.NoError(t, run(t, "branch", "feature"))

	err = run(t, "checkout", "feature")
	require.NoError(t, err)
}
