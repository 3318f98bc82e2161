package store_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"rit.dev/rit/internal/layout"
	"rit.dev/rit/internal/riterrors"
	"rit.dev/rit/internal/store"
)

func newStore(t *testing.T) *store.Store {
	t.Helper()
	l, err := layout.Init(t.TempDir())
	require.NoError(t, err)
	return store.Open(l)
}

func TestDefaultHeadIsAttachedToMain(t *testing.T) {
	s := newStore(t)

	h, err := s.ReadHead()
	require.NoError(t, err)

	branch, attached := h.Attached()
	require.True(t, attached)
	require.Equal(t, store.DefaultBranchName, branch)

	_, detached := h.Detached()
	require.False(t, detached)
}

func TestHeadExclusivity(t *testing.T) {
	attached := store.HeadAttached("main")
	_, ok := attached.Detached()
	require.False(t, ok)

	detached := store.HeadDetached("deadbeef")
	_, ok = detached.Attached()
	require.False(t, ok)
}

func TestWriteAndReadCommit(t *testing.T) {
	s := newStore(t)

	c := store.Commit{CommitID: "abc123", CreateTime: 1000, Msg: "first"}
	require.NoError(t, s.WriteCommit(c))

	got, ok, err := s.ReadCommit("abc123")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, c, got)
}

func TestWriteCommitIdempotentOnIdenticalContent(t *testing.T) {
	s := newStore(t)
	c := store.Commit{CommitID: "abc123", CreateTime: 1000, Msg: "first"}

	require.NoError(t, s.WriteCommit(c))
	require.NoError(t, s.WriteCommit(c))
}

func TestWriteCommitCollisionFails(t *testing.T) {
	s := newStore(t)
	c1 := store.Commit{CommitID: "abc123", CreateTime: 1000, Msg: "first"}
	c2 := store.Commit{CommitID: "abc123", CreateTime: 2000, Msg: "different"}

	require.NoError(t, s.WriteCommit(c1))
	err := s.WriteCommit(c2)
	require.ErrorIs(t, err, riterrors.ErrHashCollision)
}

func TestBranchShadowingCommitFails(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.WriteCommit(store.Commit{CommitID: "shadow", CreateTime: 1, Msg: "m"}))

	err := s.WriteBranch(store.Branch{Name: "shadow", CommitID: "shadow"})
	var nameErr *riterrors.NameShadowsCommitError
	require.ErrorAs(t, err, &nameErr)
}

func TestBranchToCommitAndCommitToBranchesAgree(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.WriteCommit(store.Commit{CommitID: "c1", CreateTime: 1, Msg: "m"}))
	require.NoError(t, s.WriteBranch(store.Branch{Name: "main", CommitID: "c1"}))
	require.NoError(t, s.WriteHead(store.HeadAttached("main")))

	b2c, err := s.BranchToCommit()
	require.NoError(t, err)
	require.Equal(t, "c1", b2c["main"])
	require.Equal(t, "c1", b2c[store.HeadRefName])

	c2b, err := s.CommitToBranches()
	require.NoError(t, err)
	require.Contains(t, c2b["c1"], "main")
	require.Contains(t, c2b["c1"], store.HeadRefName)
}

func TestCacheInvalidatedOnWrite(t *testing.T) {
	s := newStore(t)
	names, err := s.ListBranchNames()
	require.NoError(t, err)
	require.Empty(t, names)

	require.NoError(t, s.WriteCommit(store.Commit{CommitID: "c1", CreateTime: 1, Msg: "m"}))
	require.NoError(t, s.WriteBranch(store.Branch{Name: "main", CommitID: "c1"}))

	names, err = s.ListBranchNames()
	require.NoError(t, err)
	require.Equal(t, []string{"main"}, names)
}

func TestShortPrefixIndex(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.WriteCommit(store.Commit{CommitID: "aaaaaaa1111", CreateTime: 1, Msg: "m"}))
	require.NoError(t, s.WriteCommit(store.Commit{CommitID: "aaaaaaa2222", CreateTime: 2, Msg: "m"}))
	require.NoError(t, s.WriteCommit(store.Commit{CommitID: "bbbbbbb3333", CreateTime: 3, Msg: "m"}))

	idx, err := s.ShortPrefixIndex()
	require.NoError(t, err)
	require.Len(t, idx["aaaaaaa"], 2)
	require.Len(t, idx["bbbbbbb"], 1)
}

func TestDeleteBranchIsIdempotent(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.DeleteBranch("does-not-exist"))
}
