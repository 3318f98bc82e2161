// Package store implements the rit object store: durable, process-local
// storage of commits, branches, and HEAD, plus a read-through cache that is
// invalidated wholesale on every write (simplicity over precision, since
// the store is small - see DESIGN.md).
package store

import (
	"fmt"
	"sort"
	"sync"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"

	"rit.dev/rit/internal/layout"
	"rit.dev/rit/internal/riterrors"
)

// DefaultBranchName is the branch HEAD attaches to when no HEAD record
// exists yet.
const DefaultBranchName = "main"

// HeadRefName is the sentinel name used to refer to HEAD instead of a
// branch or commit id. It can never be a valid branch name.
const HeadRefName = "HEAD"

// ShortPrefixLen is the number of leading hex characters used to bucket
// commit ids for prefix disambiguation.
const ShortPrefixLen = 7

// Store is process-local durable storage for the four rit record kinds.
// A single Store is not safe for concurrent use from multiple goroutines
// without external synchronization beyond the cache's own mutex; rit is a
// single-writer system by design.
type Store struct {
	fs     billy.Filesystem
	Layout *layout.Layout

	mu    sync.Mutex
	cache cache
}

type cache struct {
	head           *Head
	commits        map[string]Commit
	branches       map[string]Branch
	branchNames    []string
	commitIDs      []string
	shortPrefix    map[string][]string
	branchToCommit map[string]string
	commitToBranch map[string][]string
}

func emptyCache() cache {
	return cache{
		commits:  make(map[string]Commit),
		branches: make(map[string]Branch),
	}
}

// Open builds a Store rooted at l.RitDir.
func Open(l *layout.Layout) *Store {
	return &Store{
		fs:     osfs.New(l.RitDir),
		Layout: l,
		cache:  emptyCache(),
	}
}

// clearLocked invalidates the entire cache. Must be called with mu held.
func (s *Store) clearLocked() {
	s.cache = emptyCache()
}

// ReadCommit looks up a commit by its full id.
func (s *Store) ReadCommit(id string) (Commit, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readCommitLocked(id)
}

func (s *Store) readCommitLocked(id string) (Commit, bool, error) {
	if c, ok := s.cache.commits[id]; ok {
		return c, true, nil
	}
	var rec commitRecord
	if err := readJSON(s.fs, commitFile(id), &rec); err != nil {
		if isNotExist(err) {
			return Commit{}, false, nil
		}
		return Commit{}, false, err
	}
	c := rec.toCommit(id)
	s.cache.commits[id] = c
	return c, true, nil
}

// WriteCommit persists a commit. Writing identical content for an id that
// already exists is a no-op (idempotent-on-identical-content); writing
// different content for an existing id fails with ErrHashCollision, which
// should never occur in practice since the id is a content hash.
func (s *Store) WriteCommit(c Commit) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok, err := s.readCommitLocked(c.CommitID)
	if err != nil {
		return err
	}
	if ok {
		if existing == c {
			return nil
		}
		return riterrors.ErrHashCollision
	}

	if err := writeJSONAtomic(s.fs, commitFile(c.CommitID), c.toRecord()); err != nil {
		return err
	}
	s.clearLocked()
	return nil
}

// RemoveCommit deletes a commit record. It is not an error to remove a
// commit id that is not present. Callers are responsible for the commit's
// archive and tracking-index files, which live outside the record store.
func (s *Store) RemoveCommit(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fs.Remove(commitFile(id)); err != nil && !isNotExist(err) {
		return err
	}
	s.clearLocked()
	return nil
}

// ReadBranch looks up a branch by name.
func (s *Store) ReadBranch(name string) (Branch, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readBranchLocked(name)
}

func (s *Store) readBranchLocked(name string) (Branch, bool, error) {
	if b, ok := s.cache.branches[name]; ok {
		return b, true, nil
	}
	var rec branchRecord
	if err := readJSON(s.fs, branchFile(name), &rec); err != nil {
		if isNotExist(err) {
			return Branch{}, false, nil
		}
		return Branch{}, false, err
	}
	b := rec.toBranch(name)
	s.cache.branches[name] = b
	return b, true, nil
}

// WriteBranch persists a branch, refusing names that collide with a
// stored commit id.
func (s *Store) WriteBranch(b Branch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, isCommit, err := s.readCommitLocked(b.Name)
	if err != nil {
		return err
	}
	if isCommit {
		return riterrors.NewNameShadowsCommitError(b.Name)
	}

	if err := writeJSONAtomic(s.fs, branchFile(b.Name), b.toRecord()); err != nil {
		return err
	}
	s.clearLocked()
	return nil
}

// DeleteBranch removes a branch record. It is not an error to delete a
// branch that does not exist.
func (s *Store) DeleteBranch(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fs.Remove(branchFile(name)); err != nil && !isNotExist(err) {
		return err
	}
	s.clearLocked()
	return nil
}

// ListBranchNames returns every stored branch name.
func (s *Store) ListBranchNames() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listBranchNamesLocked()
}

func (s *Store) listBranchNamesLocked() ([]string, error) {
	if s.cache.branchNames != nil {
		return s.cache.branchNames, nil
	}
	entries, err := s.fs.ReadDir("branches")
	if err != nil {
		if isNotExist(err) {
			s.cache.branchNames = []string{}
			return s.cache.branchNames, nil
		}
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	s.cache.branchNames = names
	return names, nil
}

// ListCommitIDs returns every stored commit id.
func (s *Store) ListCommitIDs() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listCommitIDsLocked()
}

func (s *Store) listCommitIDsLocked() ([]string, error) {
	if s.cache.commitIDs != nil {
		return s.cache.commitIDs, nil
	}
	entries, err := s.fs.ReadDir("commits")
	if err != nil {
		if isNotExist(err) {
			s.cache.commitIDs = []string{}
			return s.cache.commitIDs, nil
		}
		return nil, err
	}
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.Name())
	}
	sort.Strings(ids)
	s.cache.commitIDs = ids
	return ids, nil
}

// ReadHead returns the current HEAD, defaulting to an attached HEAD on
// DefaultBranchName if no HEAD record has ever been written.
func (s *Store) ReadHead() (Head, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readHeadLocked()
}

func (s *Store) readHeadLocked() (Head, error) {
	if s.cache.head != nil {
		return *s.cache.head, nil
	}
	var rec headRecord
	if err := readJSON(s.fs, "HEAD", &rec); err != nil {
		if isNotExist(err) {
			h := HeadAttached(DefaultBranchName)
			s.cache.head = &h
			return h, nil
		}
		return Head{}, err
	}
	h := rec.toHead()
	s.cache.head = &h
	return h, nil
}

// WriteHead persists HEAD.
func (s *Store) WriteHead(h Head) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := writeJSONAtomic(s.fs, "HEAD", h.toRecord()); err != nil {
		return err
	}
	s.clearLocked()
	return nil
}

// HeadCommitID resolves HEAD through its branch if attached, returning
// ok=false if the attached branch has no commit yet (the orphan state).
func (s *Store) HeadCommitID() (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, err := s.readHeadLocked()
	if err != nil {
		return "", false, err
	}
	if id, ok := h.Detached(); ok {
		return id, true, nil
	}
	branchName, _ := h.Attached()
	b, ok, err := s.readBranchLocked(branchName)
	if err != nil {
		return "", false, err
	}
	if !ok {
		return "", false, nil
	}
	return b.CommitID, true, nil
}

// ShortPrefixIndex returns a mapping from the first ShortPrefixLen
// characters of each commit id to the full ids sharing that prefix.
func (s *Store) ShortPrefixIndex() (map[string][]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cache.shortPrefix != nil {
		return s.cache.shortPrefix, nil
	}
	ids, err := s.listCommitIDsLocked()
	if err != nil {
		return nil, err
	}
	idx := make(map[string][]string)
	for _, id := range ids {
		if len(id) < ShortPrefixLen {
			continue
		}
		p := id[:ShortPrefixLen]
		idx[p] = append(idx[p], id)
	}
	s.cache.shortPrefix = idx
	return idx, nil
}

// BranchToCommit returns the branch-name -> commit-id view of the
// branch/commit map, including a synthetic HeadRefName entry if HEAD
// resolves to a commit.
func (s *Store) BranchToCommit() (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.populateMapsLocked(); err != nil {
		return nil, err
	}
	return s.cache.branchToCommit, nil
}

// CommitToBranches returns the commit-id -> branch-names view, including
// HeadRefName as a synthetic label on whichever commit HEAD resolves to.
func (s *Store) CommitToBranches() (map[string][]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.populateMapsLocked(); err != nil {
		return nil, err
	}
	return s.cache.commitToBranch, nil
}

func (s *Store) populateMapsLocked() error {
	if s.cache.branchToCommit != nil && s.cache.commitToBranch != nil {
		return nil
	}
	names, err := s.listBranchNamesLocked()
	if err != nil {
		return err
	}
	b2c := make(map[string]string, len(names))
	c2b := make(map[string][]string)
	for _, name := range names {
		b, ok, err := s.readBranchLocked(name)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		b2c[name] = b.CommitID
		c2b[b.CommitID] = append(c2b[b.CommitID], name)
	}

	headID, ok, err := s.headCommitIDLocked()
	if err != nil {
		return err
	}
	if ok {
		b2c[HeadRefName] = headID
		c2b[headID] = append(c2b[headID], HeadRefName)
	}

	s.cache.branchToCommit = b2c
	s.cache.commitToBranch = c2b
	return nil
}

func (s *Store) headCommitIDLocked() (string, bool, error) {
	h, err := s.readHeadLocked()
	if err != nil {
		return "", false, err
	}
	if id, ok := h.Detached(); ok {
		return id, true, nil
	}
	branchName, _ := h.Attached()
	b, ok, err := s.readBranchLocked(branchName)
	if err != nil {
		return "", false, err
	}
	if !ok {
		return "", false, nil
	}
	return b.CommitID, true, nil
}

func commitFile(id string) string {
	return fmt.Sprintf("commits/%s", id)
}

func branchFile(name string) string {
	return fmt.Sprintf("branches/%s", name)
}
