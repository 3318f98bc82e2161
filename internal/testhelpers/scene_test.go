package testhelpers_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"rit.dev/rit/internal/testhelpers"
)

func TestSceneCommitProducesDistinctIDs(t *testing.T) {
	sc := testhelpers.NewScene(t)

	c1, err := sc.Proto.Commit(context.Background(), "first")
	require.NoError(t, err)
	c2, err := sc.Proto.Commit(context.Background(), "second")
	require.NoError(t, err)

	require.NotEqual(t, c1.CommitID, c2.CommitID)
	require.Equal(t, c1.CommitID, c2.ParentCommitID)
}

func TestSceneForceDirtyReportsChanges(t *testing.T) {
	sc := testhelpers.NewScene(t)
	_, err := sc.Proto.Commit(context.Background(), "first")
	require.NoError(t, err)

	sc.ForceDirty = true
	st, err := sc.Proto.Status(context.Background(), true)
	require.NoError(t, err)
	require.True(t, st.Dirty)
	require.Contains(t, st.ChangedPaths, "changed-file")
}
