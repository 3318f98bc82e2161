// Package graph implements reference resolution and ancestry traversal
// over the rit object store.
package graph

import (
	"sort"
	"strings"

	"rit.dev/rit/internal/riterrors"
	"rit.dev/rit/internal/store"
)

// ResolvedRef is the result of resolving a user-supplied reference string.
// Fields are nil/zero-value when the corresponding resolution case does
// not apply - see each field's doc for the exact semantics.
type ResolvedRef struct {
	// Head is set iff the reference was absent or the HEAD sentinel.
	Head *store.Head

	// Branch is set iff the reference (or HEAD, if attached) names a
	// stored branch.
	Branch *store.Branch

	// Commit is the commit the reference ultimately refers to, or nil if
	// it resolves to an orphan branch with no commit yet, or to nothing.
	Commit *store.Commit
}

// Resolve implements the four-step reference resolution algorithm: HEAD
// sentinel, exact branch name, exact/short commit id, or an all-empty
// result.
func Resolve(s *store.Store, ref string) (ResolvedRef, error) {
	if ref == "" || ref == store.HeadRefName {
		return resolveHead(s)
	}

	branch, ok, err := s.ReadBranch(ref)
	if err != nil {
		return ResolvedRef{}, err
	}
	if ok {
		res := ResolvedRef{Branch: &branch}
		c, ok, err := s.ReadCommit(branch.CommitID)
		if err != nil {
			return ResolvedRef{}, err
		}
		if ok {
			res.Commit = &c
		}
		return res, nil
	}

	commit, err := resolveCommit(s, ref)
	if err != nil {
		return ResolvedRef{}, err
	}
	if commit != nil {
		return ResolvedRef{Commit: commit}, nil
	}

	return ResolvedRef{}, nil
}

func resolveHead(s *store.Store) (ResolvedRef, error) {
	h, err := s.ReadHead()
	if err != nil {
		return ResolvedRef{}, err
	}
	res := ResolvedRef{Head: &h}

	if branchName, ok := h.Attached(); ok {
		b, ok, err := s.ReadBranch(branchName)
		if err != nil {
			return ResolvedRef{}, err
		}
		if ok {
			res.Branch = &b
			c, ok, err := s.ReadCommit(b.CommitID)
			if err != nil {
				return ResolvedRef{}, err
			}
			if ok {
				res.Commit = &c
			}
		}
		return res, nil
	}

	commitID, _ := h.Detached()
	c, ok, err := s.ReadCommit(commitID)
	if err != nil {
		return ResolvedRef{}, err
	}
	if ok {
		res.Commit = &c
	}
	return res, nil
}

// resolveCommit resolves a reference as an exact commit id, falling back
// to unambiguous short-prefix matching.
func resolveCommit(s *store.Store, ref string) (*store.Commit, error) {
	c, ok, err := s.ReadCommit(ref)
	if err != nil {
		return nil, err
	}
	if ok {
		return &c, nil
	}

	if len(ref) < store.ShortPrefixLen {
		return nil, nil
	}

	idx, err := s.ShortPrefixIndex()
	if err != nil {
		return nil, err
	}
	bucket, ok := idx[ref[:store.ShortPrefixLen]]
	if !ok {
		return nil, nil
	}

	var candidates []string
	for _, id := range bucket {
		if strings.HasPrefix(id, ref) {
			candidates = append(candidates, id)
		}
	}
	switch len(candidates) {
	case 0:
		return nil, nil
	case 1:
		c, ok, err := s.ReadCommit(candidates[0])
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, nil
		}
		return &c, nil
	default:
		sort.Strings(candidates)
		return nil, riterrors.NewAmbiguousReferenceError(ref, candidates)
	}
}
