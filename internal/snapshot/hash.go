package snapshot

import (
	"crypto/sha1" //nolint:gosec // SHA-1-class digest is the normative commit-id hash, not used for security.
	"encoding/hex"
	"strconv"
	"strings"
)

// HashCommit computes the deterministic commit id: a hex digest of a
// SHA-1-class hash over the concatenation of domain-tagged fields, in
// order: "create_time" || decimal timestamp || "msg" || message bytes ||
// "snar" || tracking-index bytes || "tar" || archive bytes. Field tags
// and ordering are normative so independent implementations produce
// identical ids for identical inputs.
//
// No pack library wraps SHA-1 with this exact incremental-digest API any
// more conveniently than crypto/sha1 itself; this is a deliberate
// stdlib exception (see DESIGN.md).
func HashCommit(createTime float64, msg string, indexBytes, archiveBytes []byte) string {
	h := sha1.New() //nolint:gosec

	h.Write([]byte("create_time"))
	h.Write([]byte(formatTimestamp(createTime)))

	h.Write([]byte("msg"))
	h.Write([]byte(msg))

	h.Write([]byte("snar"))
	h.Write(indexBytes)

	h.Write([]byte("tar"))
	h.Write(archiveBytes)

	return hex.EncodeToString(h.Sum(nil))
}

// formatTimestamp renders createTime exactly the way Python's str(float)
// would for the common case of a time.Time().Unix() float with fractional
// seconds, since the hash must match byte-for-byte across reimplementations.
func formatTimestamp(createTime float64) string {
	s := strconv.FormatFloat(createTime, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
