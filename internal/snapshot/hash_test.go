package snapshot_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"rit.dev/rit/internal/snapshot"
)

func TestHashCommitDeterministic(t *testing.T) {
	a := snapshot.HashCommit(1700000000.123, "hello", []byte("index-bytes"), []byte("archive-bytes"))
	b := snapshot.HashCommit(1700000000.123, "hello", []byte("index-bytes"), []byte("archive-bytes"))
	require.Equal(t, a, b)
	require.Len(t, a, 40) // hex-encoded SHA-1
}

func TestHashCommitSensitiveToEveryField(t *testing.T) {
	base := snapshot.HashCommit(1700000000, "msg", []byte("idx"), []byte("arc"))

	require.NotEqual(t, base, snapshot.HashCommit(1700000001, "msg", []byte("idx"), []byte("arc")))
	require.NotEqual(t, base, snapshot.HashCommit(1700000000, "other", []byte("idx"), []byte("arc")))
	require.NotEqual(t, base, snapshot.HashCommit(1700000000, "msg", []byte("idy"), []byte("arc")))
	require.NotEqual(t, base, snapshot.HashCommit(1700000000, "msg", []byte("idx"), []byte("arz")))
}
