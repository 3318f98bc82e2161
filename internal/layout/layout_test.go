package layout_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"rit.dev/rit/internal/layout"
	"rit.dev/rit/internal/riterrors"
)

func TestInitCreatesSubdirs(t *testing.T) {
	dir := t.TempDir()

	l, err := layout.Init(dir)
	require.NoError(t, err)

	require.DirExists(t, l.RitDir)
	require.DirExists(t, l.Branches)
	require.DirExists(t, l.Commits)
	require.DirExists(t, l.Backups)
	require.DirExists(t, l.Work)
}

func TestInitTwiceFails(t *testing.T) {
	dir := t.TempDir()

	_, err := layout.Init(dir)
	require.NoError(t, err)

	_, err = layout.Init(dir)
	require.ErrorIs(t, err, riterrors.ErrAlreadyInitialized)
}

func TestDiscoverWalksUpward(t *testing.T) {
	dir := t.TempDir()

	_, err := layout.Init(dir)
	require.NoError(t, err)

	nested := filepath.Join(dir, "a", "b", "c")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	l, err := layout.Discover(nested)
	require.NoError(t, err)
	require.Equal(t, dir, l.Root)
}

func TestDiscoverFailsOutsideRepository(t *testing.T) {
	dir := t.TempDir()

	_, err := layout.Discover(dir)
	require.ErrorIs(t, err, riterrors.ErrNotARepository)
}
