package graph_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"rit.dev/rit/internal/graph"
	"rit.dev/rit/internal/riterrors"
	"rit.dev/rit/internal/store"
	"rit.dev/rit/internal/testhelpers"
)

func TestResolveHeadSentinelDefaultsToMain(t *testing.T) {
	sc := testhelpers.NewScene(t)
	res, err := graph.Resolve(sc.Store, "")
	require.NoError(t, err)
	require.NotNil(t, res.Head)
	branchName, attached := res.Head.Attached()
	require.True(t, attached)
	require.Equal(t, store.DefaultBranchName, branchName)
	require.Nil(t, res.Commit)
}

func TestResolveBranchName(t *testing.T) {
	sc := testhelpers.NewScene(t)
	c, err := sc.Proto.Commit(context.Background(), "first")
	require.NoError(t, err)

	res, err := graph.Resolve(sc.Store, store.DefaultBranchName)
	require.NoError(t, err)
	require.NotNil(t, res.Branch)
	require.NotNil(t, res.Commit)
	require.Equal(t, c.CommitID, res.Commit.CommitID)
}

func TestResolveShortPrefix(t *testing.T) {
	sc := testhelpers.NewScene(t)
	c, err := sc.Proto.Commit(context.Background(), "first")
	require.NoError(t, err)

	res, err := graph.Resolve(sc.Store, c.CommitID[:store.ShortPrefixLen])
	require.NoError(t, err)
	require.NotNil(t, res.Commit)
	require.Equal(t, c.CommitID, res.Commit.CommitID)
}

func TestResolveUnknownRefReturnsEmpty(t *testing.T) {
	sc := testhelpers.NewScene(t)
	res, err := graph.Resolve(sc.Store, "does-not-exist")
	require.NoError(t, err)
	require.Nil(t, res.Head)
	require.Nil(t, res.Branch)
	require.Nil(t, res.Commit)
}

func TestValidateBranchNameRejectsHeadSentinel(t *testing.T) {
	err := graph.ValidateBranchName(store.HeadRefName)
	require.ErrorAs(t, err, new(*riterrors.InvalidBranchNameError))
}

func TestValidateBranchNameRejectsPunctuation(t *testing.T) {
	err := graph.ValidateBranchName("feature/one")
	require.Error(t, err)
}

func TestValidateBranchNameAcceptsWordChars(t *testing.T) {
	require.NoError(t, graph.ValidateBranchName("feature_1"))
}
