// Package layout locates the rit repository root and exposes the
// canonical administrative subpaths beneath it.
package layout

import (
	"os"
	"path/filepath"

	"rit.dev/rit/internal/riterrors"
)

// AdminDirName is the hidden administrative subdirectory name.
const AdminDirName = ".rit"

// Layout holds the resolved, absolute, symlink-free paths that make up a
// rit repository.
type Layout struct {
	Root     string // the working directory being snapshotted
	RitDir   string // Root/.rit
	Branches string // RitDir/branches
	Commits  string // RitDir/commits
	Backups  string // RitDir/backups
	Work     string // RitDir/backups/work
}

// HeadPath returns the path of the HEAD record file.
func (l *Layout) HeadPath() string {
	return filepath.Join(l.RitDir, "HEAD")
}

// BranchPath returns the path of a branch record file.
func (l *Layout) BranchPath(name string) string {
	return filepath.Join(l.Branches, name)
}

// CommitPath returns the path of a commit record file.
func (l *Layout) CommitPath(id string) string {
	return filepath.Join(l.Commits, id)
}

// ArchivePath returns the path of a commit's compressed archive.
func (l *Layout) ArchivePath(id string) string {
	return filepath.Join(l.Backups, id+".archive")
}

// IndexPath returns the path of a commit's tracking-index.
func (l *Layout) IndexPath(id string) string {
	return filepath.Join(l.Backups, id+".index")
}

func build(root string) *Layout {
	ritDir := filepath.Join(root, AdminDirName)
	return &Layout{
		Root:     root,
		RitDir:   ritDir,
		Branches: filepath.Join(ritDir, "branches"),
		Commits:  filepath.Join(ritDir, "commits"),
		Backups:  filepath.Join(ritDir, "backups"),
		Work:     filepath.Join(ritDir, "backups", "work"),
	}
}

// resolveRoot makes dir absolute and resolves symlinks, the way the
// repository root must be canonicalized before use.
func resolveRoot(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		// The directory may not exist yet (Init on a bind-mounted path);
		// fall back to the absolute, unresolved form.
		return abs, nil //nolint:nilerr
	}
	return resolved, nil
}

// Init creates a new repository rooted at startDir. It fails with
// ErrAlreadyInitialized if an administrative directory already exists
// there.
func Init(startDir string) (*Layout, error) {
	root, err := resolveRoot(startDir)
	if err != nil {
		return nil, err
	}
	l := build(root)
	if _, err := os.Stat(l.RitDir); err == nil {
		return nil, riterrors.ErrAlreadyInitialized
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	if err := os.MkdirAll(l.RitDir, 0o755); err != nil {
		return nil, err
	}
	for _, dir := range []string{l.Branches, l.Commits, l.Backups, l.Work} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// Discover walks startDir and its ancestors looking for an administrative
// directory, returning ErrNotARepository if none is found before the
// filesystem root.
func Discover(startDir string) (*Layout, error) {
	dir, err := resolveRoot(startDir)
	if err != nil {
		return nil, err
	}

	for {
		ritDir := filepath.Join(dir, AdminDirName)
		if info, err := os.Stat(ritDir); err == nil && info.IsDir() {
			l := build(dir)
			// Ensure the four subpaths exist even if they predate this
			// implementation or were pruned empty by hand.
			for _, sub := range []string{l.Branches, l.Commits, l.Backups, l.Work} {
				if err := os.MkdirAll(sub, 0o755); err != nil {
					return nil, err
				}
			}
			return l, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, riterrors.ErrNotARepository
		}
		dir = parent
	}
}
