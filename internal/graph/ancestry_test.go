package graph_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"rit.dev/rit/internal/graph"
	"rit.dev/rit/internal/testhelpers"
)

func TestRenderLogWalksLeafToRoot(t *testing.T) {
	sc := testhelpers.NewScene(t)
	c1, err := sc.Proto.Commit(context.Background(), "first")
	require.NoError(t, err)
	c2, err := sc.Proto.Commit(context.Background(), "second")
	require.NoError(t, err)

	lines, err := graph.RenderLog(sc.Store, []string{c2.CommitID}, time.Now())
	require.NoError(t, err)
	require.Len(t, lines, 2)
	require.Equal(t, c2.CommitID, lines[0].CommitID)
	require.True(t, lines[0].IsLeafStart)
	require.Equal(t, c1.CommitID, lines[1].CommitID)
	require.False(t, lines[1].HasParent)
}

func TestAncestryFindsSingleLeaf(t *testing.T) {
	sc := testhelpers.NewScene(t)
	c1, err := sc.Proto.Commit(context.Background(), "first")
	require.NoError(t, err)
	c2, err := sc.Proto.Commit(context.Background(), "second")
	require.NoError(t, err)

	_, leaves, err := graph.Ancestry(sc.Store, []string{c1.CommitID, c2.CommitID})
	require.NoError(t, err)
	require.Equal(t, []string{c2.CommitID}, leaves)
}
