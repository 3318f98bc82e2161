// Package archive wraps the external archive tool (GNU tar with -g
// incremental listings by default) that the snapshot protocol treats as a
// black box: given a tracking-index path, an archive path, a working root,
// and an exclusion list, it produces an incremental archive and an updated
// tracking-index, or extracts an existing archive back over a working root.
package archive

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"time"

	"rit.dev/rit/internal/riterrors"
)

// DefaultCommandTimeout bounds a single archive-tool invocation.
const DefaultCommandTimeout = 15 * time.Minute

// Runner is the interface the snapshot protocol drives; it allows tests to
// substitute a fake archive tool without touching the filesystem.
type Runner interface {
	// Create produces/updates an archive at archivePath and rewrites
	// indexPath in place, covering workingRoot minus excludes. out, if
	// non-nil, receives the tool's stdout line-by-line (verbose mode);
	// if nil, stdout is drained and discarded.
	Create(ctx context.Context, indexPath, archivePath, workingRoot string, excludes []string, out io.Writer) error

	// Extract applies archivePath over workingRoot using the same
	// tracking-index contract, so files removed between snapshots are
	// removed on restore.
	Extract(ctx context.Context, archivePath, workingRoot string) error

	// List prints the member paths of archivePath to out, one per line.
	List(ctx context.Context, archivePath string, out io.Writer) error
}

// CommandRunner invokes the real tar binary.
type CommandRunner struct {
	// TarPath overrides the resolved "tar" binary, primarily for tests.
	TarPath string
}

// NewCommandRunner returns a Runner backed by the system tar binary.
func NewCommandRunner() *CommandRunner {
	return &CommandRunner{TarPath: "tar"}
}

func (r *CommandRunner) tarPath() string {
	if r.TarPath != "" {
		return r.TarPath
	}
	return "tar"
}

// Create invokes: tar -c -g <index> -f <archive> -C <root> --exclude=... .
func (r *CommandRunner) Create(ctx context.Context, indexPath, archivePath, workingRoot string, excludes []string, out io.Writer) error {
	args := []string{"-c", "-g", indexPath, "-f", archivePath, "-C", workingRoot}
	if out != nil {
		args = append([]string{"-v"}, args...)
	}
	for _, ex := range excludes {
		args = append(args, "--exclude="+ex)
	}
	args = append(args, ".")
	return r.run(ctx, args, out)
}

// Extract invokes: tar -x -g /dev/null -f <archive> -C <root>.
//
// -g /dev/null extracts in GNU incremental mode without reading or
// writing a real tracking-index, so tar deletes files that were absent
// from their directories when the archive was created.
func (r *CommandRunner) Extract(ctx context.Context, archivePath, workingRoot string) error {
	args := []string{"-x", "-g", os.DevNull, "-f", archivePath, "-C", workingRoot}
	return r.run(ctx, args, nil)
}

// List invokes: tar -tf <archive>, mirroring the prototype's show_ref.
func (r *CommandRunner) List(ctx context.Context, archivePath string, out io.Writer) error {
	args := []string{"-tf", archivePath}
	return r.run(ctx, args, out)
}

func (r *CommandRunner) run(ctx context.Context, args []string, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultCommandTimeout)
		defer cancel()
	}

	tarPath := r.tarPath()
	if _, err := exec.LookPath(tarPath); err != nil {
		return riterrors.ErrArchiveToolMissing
	}

	cmd := exec.CommandContext(ctx, tarPath, args...)

	var stdoutBuf, stderrBuf bytes.Buffer
	if out != nil {
		cmd.Stdout = io.MultiWriter(out, &stdoutBuf)
	} else {
		cmd.Stdout = &stdoutBuf
	}
	cmd.Stderr = &stderrBuf

	err := cmd.Run()
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	exitCode := -1
	if errors.As(err, &exitErr) {
		exitCode = exitErr.ExitCode()
	}
	return riterrors.NewArchiveToolError(tarPath, args, exitCode, stdoutBuf.String(), stderrBuf.String(), err)
}
