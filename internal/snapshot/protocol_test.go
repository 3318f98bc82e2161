package snapshot_test

import (
	"context"
	"fmt"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"rit.dev/rit/internal/archive"
	"rit.dev/rit/internal/layout"
	"rit.dev/rit/internal/riterrors"
	"rit.dev/rit/internal/snapshot"
	"rit.dev/rit/internal/store"
)

// newHarness builds a Protocol over a fresh temp repository, backed by a
// FakeRunner that writes distinguishable index/archive bytes per call so
// successive commits hash to distinct ids, mirroring the real archive
// tool's incremental-but-changing output.
func newHarness(t *testing.T) (*snapshot.Protocol, *archive.FakeRunner) {
	t.Helper()
	l, err := layout.Init(t.TempDir())
	require.NoError(t, err)
	s := store.Open(l)

	n := 0
	fake := &archive.FakeRunner{}
	fake.CreateFunc = func(_ context.Context, indexPath, archivePath, _ string, _ []string, out io.Writer) error {
		n++
		require.NoError(t, os.WriteFile(indexPath, []byte(fmt.Sprintf("index-%d", n)), 0o644))
		require.NoError(t, os.WriteFile(archivePath, []byte(fmt.Sprintf("archive-%d", n)), 0o644))
		if out != nil {
			_, _ = out.Write([]byte("./\nchanged-file\n"))
		}
		return nil
	}
	fake.ExtractFunc = func(_ context.Context, _, _ string) error { return nil }

	return snapshot.New(l, s, fake), fake
}

func TestThreeLinearCommits(t *testing.T) {
	p, _ := newHarness(t)

	c1, err := p.Commit(context.Background(), "first")
	require.NoError(t, err)
	c2, err := p.Commit(context.Background(), "second")
	require.NoError(t, err)
	c3, err := p.Commit(context.Background(), "third")
	require.NoError(t, err)

	require.Empty(t, c1.ParentCommitID)
	require.Equal(t, c1.CommitID, c2.ParentCommitID)
	require.Equal(t, c2.CommitID, c3.ParentCommitID)

	head, err := p.Store.ReadHead()
	require.NoError(t, err)
	branchName, attached := head.Attached()
	require.True(t, attached)
	require.Equal(t, store.DefaultBranchName, branchName)

	b, ok, err := p.Store.ReadBranch(store.DefaultBranchName)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, c3.CommitID, b.CommitID)
}

func TestCheckoutOrphanThenCommitWritesBranch(t *testing.T) {
	p, _ := newHarness(t)

	res, err := p.Checkout(context.Background(), "", snapshot.CheckoutOptions{Orphan: true, OrphanName: "otest"})
	require.NoError(t, err)
	require.NotNil(t, res.Head)
	branchName, attached := res.Head.Attached()
	require.True(t, attached)
	require.Equal(t, "otest", branchName)

	_, ok, err := p.Store.ReadBranch("otest")
	require.NoError(t, err)
	require.False(t, ok, "orphan checkout must not create a branch record yet")

	c, err := p.Commit(context.Background(), "first on otest")
	require.NoError(t, err)
	require.Empty(t, c.ParentCommitID)

	b, ok, err := p.Store.ReadBranch("otest")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, c.CommitID, b.CommitID)
}

func TestCheckoutOrphanRejectsForceOrRef(t *testing.T) {
	p, _ := newHarness(t)
	_, err := p.Checkout(context.Background(), "main", snapshot.CheckoutOptions{Orphan: true, OrphanName: "x"})
	require.ErrorIs(t, err, riterrors.ErrInvalidArguments)
	_, err = p.Checkout(context.Background(), "", snapshot.CheckoutOptions{Orphan: true, Force: true, OrphanName: "x"})
	require.ErrorIs(t, err, riterrors.ErrInvalidArguments)
}

func TestResetToHeadSentinelRejected(t *testing.T) {
	p, _ := newHarness(t)
	_, err := p.Commit(context.Background(), "only")
	require.NoError(t, err)
	_, err = p.Reset(context.Background(), store.HeadRefName, false)
	require.ErrorIs(t, err, riterrors.ErrResetToHead)
}

func TestDetachedHardReset(t *testing.T) {
	p, _ := newHarness(t)
	c1, err := p.Commit(context.Background(), "first")
	require.NoError(t, err)
	_, err = p.Commit(context.Background(), "second")
	require.NoError(t, err)

	res, err := p.Checkout(context.Background(), c1.CommitID, snapshot.CheckoutOptions{Force: true})
	require.NoError(t, err)
	_, detached := res.Head.Detached()
	require.True(t, detached)

	_, err = p.Commit(context.Background(), "third-detached")
	require.NoError(t, err)

	res, err = p.Reset(context.Background(), c1.CommitID, true)
	require.NoError(t, err)
	require.Equal(t, c1.CommitID, res.Commit.CommitID)

	head, err := p.Store.ReadHead()
	require.NoError(t, err)
	id, ok := head.Detached()
	require.True(t, ok)
	require.Equal(t, c1.CommitID, id)
}

func TestPruneRemovesUnreachableCommit(t *testing.T) {
	p, _ := newHarness(t)

	_, err := p.Commit(context.Background(), "c1")
	require.NoError(t, err)
	c2, err := p.Commit(context.Background(), "c2")
	require.NoError(t, err)

	require.NoError(t, p.Store.WriteBranch(store.Branch{Name: "deviate", CommitID: c2.CommitID}))
	_, err = p.Checkout(context.Background(), "deviate", snapshot.CheckoutOptions{Force: true})
	require.NoError(t, err)
	d1, err := p.Commit(context.Background(), "deviate commit")
	require.NoError(t, err)

	_, err = p.Reset(context.Background(), c2.CommitID, false)
	require.NoError(t, err)
	require.NoError(t, p.Store.DeleteBranch("deviate"))

	removed, err := p.Prune(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{d1.CommitID}, removed)

	_, ok, err := p.Store.ReadCommit(d1.CommitID)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestStatusReportsDirtyWhenArchiveToolSeesChanges(t *testing.T) {
	p, _ := newHarness(t)
	_, err := p.Commit(context.Background(), "first")
	require.NoError(t, err)

	st, err := p.Status(context.Background(), true)
	require.NoError(t, err)
	require.True(t, st.Dirty)
	require.Contains(t, st.ChangedPaths, "changed-file")
}
