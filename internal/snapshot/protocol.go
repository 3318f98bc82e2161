// Package snapshot implements the incremental snapshot protocol: driving
// the archive tool to produce a new commit, restoring the working tree to
// an arbitrary commit, and the checkout/reset/prune state transitions
// layered on top of the object store and commit graph.
package snapshot

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"rit.dev/rit/internal/archive"
	"rit.dev/rit/internal/graph"
	"rit.dev/rit/internal/layout"
	"rit.dev/rit/internal/riterrors"
	"rit.dev/rit/internal/store"
)

// adminExclude is always passed to the archive tool so the administrative
// subdirectory never ends up inside its own snapshot.
const adminExclude = "./" + layout.AdminDirName

// Protocol drives the archive tool and the object store together to
// implement commit, status, checkout, reset, and prune.
type Protocol struct {
	Store   *store.Store
	Layout  *layout.Layout
	Archive archive.Runner

	// Verbose, when true, forwards the archive tool's stdout line-by-line
	// during Commit; Out receives that stream. When false, the tool's
	// stdout is captured and discarded, not passed to the parent's stdout.
	Verbose bool
	Out     io.Writer
}

// New builds a Protocol over an already-open store and layout.
func New(l *layout.Layout, s *store.Store, runner archive.Runner) *Protocol {
	return &Protocol{Store: s, Layout: l, Archive: runner}
}

// nowFunc is overridable in tests; production code leaves it nil and gets
// time.Now().
var nowFunc func() time.Time

func now() time.Time {
	if nowFunc != nil {
		return nowFunc()
	}
	return time.Now()
}

// Commit runs the incremental snapshot protocol: builds a new archive
// from the parent commit's tracking-index (or fresh, if none), hashes it
// into a commit id, installs it atomically, and advances HEAD or its
// attached branch.
func (p *Protocol) Commit(ctx context.Context, msg string) (store.Commit, error) {
	head, err := p.Store.ReadHead()
	if err != nil {
		return store.Commit{}, err
	}

	parentID, hasParent, err := p.headCommitID(head)
	if err != nil {
		return store.Commit{}, err
	}

	if err := os.MkdirAll(p.Layout.Work, 0o755); err != nil {
		return store.Commit{}, err
	}
	workIndex := filepath.Join(p.Layout.Work, "ref.index")
	workArchive := filepath.Join(p.Layout.Work, "ref.archive")
	defer os.Remove(workIndex)
	defer os.Remove(workArchive)

	if hasParent {
		if err := copyFile(p.Layout.IndexPath(parentID), workIndex); err != nil {
			return store.Commit{}, err
		}
	}

	var out io.Writer
	if p.Verbose {
		out = p.Out
	}
	if err := p.Archive.Create(ctx, workIndex, workArchive, p.Layout.Root, []string{adminExclude}, out); err != nil {
		return store.Commit{}, err
	}

	indexBytes, err := os.ReadFile(workIndex)
	if err != nil {
		return store.Commit{}, err
	}
	archiveBytes, err := os.ReadFile(workArchive)
	if err != nil {
		return store.Commit{}, err
	}

	createTime := float64(now().UnixNano()) / 1e9
	commitID := HashCommit(createTime, msg, indexBytes, archiveBytes)

	if err := os.Rename(workIndex, p.Layout.IndexPath(commitID)); err != nil {
		return store.Commit{}, err
	}
	if err := os.Rename(workArchive, p.Layout.ArchivePath(commitID)); err != nil {
		return store.Commit{}, err
	}

	commit := store.Commit{CommitID: commitID, ParentCommitID: parentID, CreateTime: createTime, Msg: msg}
	if err := p.Store.WriteCommit(commit); err != nil {
		return store.Commit{}, err
	}

	if branchName, attached := head.Attached(); attached {
		if err := p.Store.WriteBranch(store.Branch{Name: branchName, CommitID: commitID}); err != nil {
			return store.Commit{}, err
		}
	} else {
		if err := p.Store.WriteHead(store.HeadDetached(commitID)); err != nil {
			return store.Commit{}, err
		}
	}

	return commit, nil
}

func (p *Protocol) headCommitID(head store.Head) (id string, ok bool, err error) {
	if branchName, attached := head.Attached(); attached {
		b, ok, err := p.Store.ReadBranch(branchName)
		if err != nil || !ok {
			return "", false, err
		}
		return b.CommitID, b.CommitID != "", nil
	}
	id, _ = head.Detached()
	return id, true, nil
}

// Status reports whether the working tree differs from HEAD's commit, by
// running a dry-run snapshot against HEAD's tracking-index and observing
// whether the archive tool reports any changed entries.
type Status struct {
	Dirty        bool
	ChangedPaths []string
}

// Status runs a dry-run snapshot: the archive tool runs exactly as for
// Commit, its output is captured rather than forwarded, and the
// resulting working-slot artifacts are discarded rather than installed.
func (p *Protocol) Status(ctx context.Context, verbose bool) (Status, error) {
	head, err := p.Store.ReadHead()
	if err != nil {
		return Status{}, err
	}
	parentID, hasParent, err := p.headCommitID(head)
	if err != nil {
		return Status{}, err
	}

	if err := os.MkdirAll(p.Layout.Work, 0o755); err != nil {
		return Status{}, err
	}
	workIndex := filepath.Join(p.Layout.Work, "status.index")
	workArchive := filepath.Join(p.Layout.Work, "status.archive")
	defer os.Remove(workIndex)
	defer os.Remove(workArchive)

	if hasParent {
		if err := copyFile(p.Layout.IndexPath(parentID), workIndex); err != nil {
			return Status{}, err
		}
	}

	var buf changeCollector
	if err := p.Archive.Create(ctx, workIndex, workArchive, p.Layout.Root, []string{adminExclude}, &buf); err != nil {
		return Status{}, err
	}

	st := Status{Dirty: buf.changed}
	if verbose {
		st.ChangedPaths = buf.paths
	}
	return st, nil
}

// changeCollector observes tar -v incremental output and records any
// non-directory entry (in incremental mode tar lists every directory,
// "./" included, on every run even when nothing changed, so lines ending
// in "/" do not count; a new empty directory is therefore not reported).
type changeCollector struct {
	changed bool
	paths   []string
	partial []byte
}

func (c *changeCollector) Write(p []byte) (int, error) {
	c.partial = append(c.partial, p...)
	for {
		i := indexByte(c.partial, '\n')
		if i < 0 {
			break
		}
		line := string(c.partial[:i])
		c.partial = c.partial[i+1:]
		if line != "" && line[len(line)-1] != '/' {
			c.changed = true
			c.paths = append(c.paths, line)
		}
	}
	return len(p), nil
}

func indexByte(b []byte, c byte) int {
	for i, x := range b {
		if x == c {
			return i
		}
	}
	return -1
}

// CheckoutOptions configures Checkout.
type CheckoutOptions struct {
	Force      bool
	Orphan     bool
	OrphanName string
}

// Checkout switches HEAD to ref (or, in orphan mode, to a new unborn
// branch) and restores the working tree to match.
func (p *Protocol) Checkout(ctx context.Context, ref string, opts CheckoutOptions) (graph.ResolvedRef, error) {
	if opts.Orphan {
		if opts.Force || ref != "" {
			return graph.ResolvedRef{}, riterrors.ErrInvalidArguments
		}
		if err := graph.ValidateBranchName(opts.OrphanName); err != nil {
			return graph.ResolvedRef{}, err
		}
		if err := p.Store.WriteHead(store.HeadAttached(opts.OrphanName)); err != nil {
			return graph.ResolvedRef{}, err
		}
		return graph.ResolvedRef{Head: headPtr(store.HeadAttached(opts.OrphanName))}, nil
	}

	res, err := graph.Resolve(p.Store, ref)
	if err != nil {
		return graph.ResolvedRef{}, err
	}
	if res.Head != nil {
		return graph.ResolvedRef{}, riterrors.ErrInvalidArguments
	}
	if res.Commit == nil {
		return graph.ResolvedRef{}, riterrors.ErrUnresolvableRef
	}

	priorHead, err := p.Store.ReadHead()
	if err != nil {
		return graph.ResolvedRef{}, err
	}
	priorID, _, err := p.headCommitID(priorHead)
	if err != nil {
		return graph.ResolvedRef{}, err
	}
	if priorID != res.Commit.CommitID && !opts.Force {
		dirty, statusErr := p.Status(ctx, false)
		if statusErr != nil {
			return graph.ResolvedRef{}, statusErr
		}
		if dirty.Dirty {
			return graph.ResolvedRef{}, riterrors.ErrDirtyWorkingTree
		}
	}

	if err := p.restoreWorkingTree(ctx, res.Commit.CommitID); err != nil {
		return graph.ResolvedRef{}, err
	}

	var newHead store.Head
	if res.Branch != nil {
		newHead = store.HeadAttached(res.Branch.Name)
	} else {
		newHead = store.HeadDetached(res.Commit.CommitID)
	}
	if err := p.Store.WriteHead(newHead); err != nil {
		return graph.ResolvedRef{}, err
	}
	res.Head = &newHead
	return res, nil
}

func headPtr(h store.Head) *store.Head { return &h }

// Reset moves HEAD (or its attached branch) to ref, optionally restoring
// the working tree (hard) or leaving it untouched (soft).
func (p *Protocol) Reset(ctx context.Context, ref string, hard bool) (graph.ResolvedRef, error) {
	if ref == "" || ref == store.HeadRefName {
		return graph.ResolvedRef{}, riterrors.ErrResetToHead
	}

	res, err := graph.Resolve(p.Store, ref)
	if err != nil {
		return graph.ResolvedRef{}, err
	}
	if res.Commit == nil {
		return graph.ResolvedRef{}, riterrors.ErrUnresolvableRef
	}

	head, err := p.Store.ReadHead()
	if err != nil {
		return graph.ResolvedRef{}, err
	}
	if branchName, attached := head.Attached(); attached {
		if err := p.Store.WriteBranch(store.Branch{Name: branchName, CommitID: res.Commit.CommitID}); err != nil {
			return graph.ResolvedRef{}, err
		}
	} else {
		if err := p.Store.WriteHead(store.HeadDetached(res.Commit.CommitID)); err != nil {
			return graph.ResolvedRef{}, err
		}
	}

	if hard {
		if err := p.restoreWorkingTree(ctx, res.Commit.CommitID); err != nil {
			return graph.ResolvedRef{}, err
		}
	}
	return res, nil
}

// restoreWorkingTree collects the ancestry chain from target up to its
// root, reverses it, and replays each archive root-to-target over the
// working tree, so files deleted between snapshots are deleted on
// restore too.
func (p *Protocol) restoreWorkingTree(ctx context.Context, targetCommitID string) error {
	chain, err := chainToRoot(p.Store, targetCommitID)
	if err != nil {
		return err
	}
	for i := len(chain) - 1; i >= 0; i-- {
		if err := p.Archive.Extract(ctx, p.Layout.ArchivePath(chain[i]), p.Layout.Root); err != nil {
			return err
		}
	}
	return nil
}

// chainToRoot returns [target, parent, grandparent, ..., root] - the
// inverse (target-to-root) order; callers that need root-to-target order
// walk it in reverse.
func chainToRoot(s *store.Store, target string) ([]string, error) {
	var chain []string
	id := target
	for id != "" {
		c, ok, err := s.ReadCommit(id)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, riterrors.ErrUnresolvableRef
		}
		chain = append(chain, id)
		id = c.ParentCommitID
	}
	return chain, nil
}

// Prune removes commits unreachable from any branch or HEAD.
// Branch deletion itself is the caller's responsibility (via
// store.DeleteBranch before calling Prune); Prune only sweeps commits.
func (p *Protocol) Prune(_ context.Context) ([]string, error) {
	branchNames, err := p.Store.ListBranchNames()
	if err != nil {
		return nil, err
	}
	roots := make([]string, 0, len(branchNames)+1)
	for _, name := range branchNames {
		b, ok, err := p.Store.ReadBranch(name)
		if err != nil {
			return nil, err
		}
		if ok && b.CommitID != "" {
			roots = append(roots, b.CommitID)
		}
	}
	head, err := p.Store.ReadHead()
	if err != nil {
		return nil, err
	}
	if id, ok, err := p.headCommitID(head); err == nil && ok && id != "" {
		roots = append(roots, id)
	}

	reachable := make(map[string]bool)
	for _, r := range roots {
		chain, err := chainToRoot(p.Store, r)
		if err != nil {
			return nil, err
		}
		for _, id := range chain {
			reachable[id] = true
		}
	}

	allIDs, err := p.Store.ListCommitIDs()
	if err != nil {
		return nil, err
	}

	var removed []string
	for _, id := range allIDs {
		if reachable[id] {
			continue
		}
		if err := p.removeCommit(id); err != nil {
			return removed, err
		}
		removed = append(removed, id)
	}
	return removed, nil
}

func (p *Protocol) removeCommit(id string) error {
	if err := p.Store.RemoveCommit(id); err != nil {
		return err
	}
	_ = os.Remove(p.Layout.ArchivePath(id))
	_ = os.Remove(p.Layout.IndexPath(id))
	return nil
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0o644)
}
