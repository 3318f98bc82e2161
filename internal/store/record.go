package store

// Commit is the immutable metadata record for a single snapshot. The
// CommitID is a pure function of CreateTime, Msg, and the tracking-index
// and archive bytes produced alongside it (see package snapshot); it is
// never computed here, only carried.
type Commit struct {
	CommitID       string
	ParentCommitID string // "" means this commit is a root
	CreateTime     float64
	Msg            string
}

// HasParent reports whether this commit has a parent commit id.
func (c Commit) HasParent() bool {
	return c.ParentCommitID != ""
}

// Branch is a named, mutable pointer to a commit.
type Branch struct {
	Name     string
	CommitID string
	Info     string
}

// Head is the current-position pointer. It is exactly one of attached (to
// a branch name) or detached (at a commit id) - modeled as a sum type via
// private fields and constructors so the exclusivity invariant is
// structural rather than a runtime XOR check.
type Head struct {
	branchName string
	commitID   string
}

// HeadAttached builds a Head pointing at a branch.
func HeadAttached(branchName string) Head {
	return Head{branchName: branchName}
}

// HeadDetached builds a Head pointing directly at a commit.
func HeadDetached(commitID string) Head {
	return Head{commitID: commitID}
}

// Attached returns the attached branch name and true if Head is attached.
func (h Head) Attached() (string, bool) {
	return h.branchName, h.branchName != ""
}

// Detached returns the detached commit id and true if Head is detached.
func (h Head) Detached() (string, bool) {
	return h.commitID, h.commitID != ""
}

// IsAttached reports whether Head is attached to a branch.
func (h Head) IsAttached() bool {
	return h.branchName != ""
}

// headRecord is the on-disk JSON shape for a Head, kept separate from Head
// itself so the in-memory type can enforce its invariant at construction.
type headRecord struct {
	BranchName string `json:"branch_name,omitempty"`
	CommitID   string `json:"commit_id,omitempty"`
}

func (h Head) toRecord() headRecord {
	return headRecord{BranchName: h.branchName, CommitID: h.commitID}
}

func (r headRecord) toHead() Head {
	return Head{branchName: r.BranchName, commitID: r.CommitID}
}

// commitRecord is the on-disk JSON shape for a Commit. The id is the
// filename, not a field, matching rit's "commit-id hash is over the
// archive and index bytes, not the commit record" contract.
type commitRecord struct {
	ParentCommitID string  `json:"parent_commit_id,omitempty"`
	CreateTime     float64 `json:"create_time"`
	Msg            string  `json:"msg"`
}

func (c Commit) toRecord() commitRecord {
	return commitRecord{ParentCommitID: c.ParentCommitID, CreateTime: c.CreateTime, Msg: c.Msg}
}

func (r commitRecord) toCommit(id string) Commit {
	return Commit{CommitID: id, ParentCommitID: r.ParentCommitID, CreateTime: r.CreateTime, Msg: r.Msg}
}

// branchRecord is the on-disk JSON shape for a Branch.
type branchRecord struct {
	CommitID string `json:"commit_id"`
	Info     string `json:"info,omitempty"`
}

func (b Branch) toRecord() branchRecord {
	return branchRecord{CommitID: b.CommitID, Info: b.Info}
}

func (r branchRecord) toBranch(name string) Branch {
	return Branch{Name: name, CommitID: r.CommitID, Info: r.Info}
}
