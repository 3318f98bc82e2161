package archive_test

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/require"
	"rit.dev/rit/internal/archive"
	"rit.dev/rit/internal/riterrors"
)

func TestCommandRunnerMissingBinary(t *testing.T) {
	r := &archive.CommandRunner{TarPath: "rit-definitely-not-a-real-binary"}
	err := r.Create(context.Background(), "idx", "arc", t.TempDir(), nil, nil)
	require.ErrorIs(t, err, riterrors.ErrArchiveToolMissing)
}

func TestCommandRunnerExtractMissingBinary(t *testing.T) {
	r := &archive.CommandRunner{TarPath: "rit-definitely-not-a-real-binary"}
	err := r.Extract(context.Background(), "arc", t.TempDir())
	require.ErrorIs(t, err, riterrors.ErrArchiveToolMissing)
}

func TestCommandRunnerCreateRoundtrip(t *testing.T) {
	if _, err := exec.LookPath("tar"); err != nil {
		t.Skip("tar not available in this environment")
	}
	dir := t.TempDir()
	root := dir + "/root"
	require.NoError(t, os.MkdirAll(root, 0o755))
	require.NoError(t, os.WriteFile(root+"/a.txt", []byte("hello"), 0o644))

	r := archive.NewCommandRunner()
	archivePath := dir + "/snap.archive"
	indexPath := dir + "/snap.index"

	err := r.Create(context.Background(), indexPath, archivePath, root, []string{"./.rit"}, nil)
	require.NoError(t, err)
	require.FileExists(t, archivePath)
	require.FileExists(t, indexPath)

	restoreRoot := dir + "/restore"
	require.NoError(t, os.MkdirAll(restoreRoot, 0o755))
	require.NoError(t, r.Extract(context.Background(), archivePath, restoreRoot))
	require.FileExists(t, restoreRoot+"/a.txt")
}

func TestArchiveToolErrorUnwraps(t *testing.T) {
	base := errors.New("boom")
	err := riterrors.NewArchiveToolError("tar", []string{"-c"}, 2, "", "bad args", base)
	require.ErrorIs(t, err, base)
}
