// Package rotation implements the tiered backup scheduler layered on top
// of the commit graph and snapshot protocol: periodic multi-level
// snapshots, pruning of aged-out periodic branches, and the restore,
// quick, and manual backup rings.
package rotation

import (
	"context"
	"fmt"
	"time"

	"rit.dev/rit/internal/config"
	"rit.dev/rit/internal/graph"
	"rit.dev/rit/internal/snapshot"
	"rit.dev/rit/internal/store"
)

// Scheduler drives periodic snapshots and the backup rings for one
// repository.
type Scheduler struct {
	Store    *store.Store
	Protocol *snapshot.Protocol
	Config   config.RotationConfig
}

// New builds a Scheduler.
func New(s *store.Store, p *snapshot.Protocol, cfg config.RotationConfig) *Scheduler {
	return &Scheduler{Store: s, Protocol: p, Config: cfg}
}

// PeriodicSnapshot finds the deepest existing level branch (the base),
// commits a new snapshot chained from it (or roots a fresh orphan chain
// if none exists), and fast-forwards every finer, not-yet-existing
// level branch to the new commit.
func (s *Scheduler) PeriodicSnapshot(ctx context.Context, now time.Time) (created []string, commitID string, err error) {
	levels := computeLevelNames(s.Config.Levels, now)
	if len(levels) == 0 {
		return nil, "", fmt.Errorf("rotation: no levels configured")
	}

	baseIdx := -1
	for i, lvl := range levels {
		_, ok, err := s.Store.ReadBranch(lvl.BranchName)
		if err != nil {
			return nil, "", err
		}
		if ok {
			baseIdx = i
		}
	}

	var commit store.Commit
	if baseIdx == -1 {
		if _, err := s.Protocol.Checkout(ctx, "", snapshot.CheckoutOptions{Orphan: true, OrphanName: levels[0].BranchName}); err != nil {
			return nil, "", err
		}
		commit, err = s.Protocol.Commit(ctx, "periodic snapshot: "+levels[0].FullName)
		if err != nil {
			return nil, "", err
		}
		baseIdx = 0
	} else {
		base := levels[baseIdx]
		if _, err := s.Protocol.Checkout(ctx, base.BranchName, snapshot.CheckoutOptions{Force: true}); err != nil {
			return nil, "", err
		}
		commit, err = s.Protocol.Commit(ctx, "periodic snapshot: "+base.FullName)
		if err != nil {
			return nil, "", err
		}
	}

	for i := baseIdx + 1; i < len(levels); i++ {
		if err := s.Store.WriteBranch(store.Branch{Name: levels[i].BranchName, CommitID: commit.CommitID}); err != nil {
			return nil, "", err
		}
		created = append(created, levels[i].BranchName)
	}
	return created, commit.CommitID, nil
}

// PrunePeriodic deletes every periodic__lvl_<L>__* branch at a configured
// level whose commit is older than now - MaxAgeSeconds, then runs a
// commit-graph prune over the result.
func (s *Scheduler) PrunePeriodic(ctx context.Context, now time.Time) ([]string, error) {
	names, err := s.Store.ListBranchNames()
	if err != nil {
		return nil, err
	}

	maxAge := make(map[string]int64, len(s.Config.Levels))
	for _, lvl := range s.Config.Levels {
		if lvl.MaxAgeSeconds > 0 {
			maxAge["periodic__lvl_"+lvl.Name+"__"] = lvl.MaxAgeSeconds
		}
	}

	for _, name := range names {
		for prefix, age := range maxAge {
			if !hasPrefix(name, prefix) {
				continue
			}
			b, ok, err := s.Store.ReadBranch(name)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
			c, ok, err := s.Store.ReadCommit(b.CommitID)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
			age := time.Duration(age) * time.Second
			if now.Sub(time.Unix(int64(c.CreateTime), 0)) > age {
				if err := s.Store.DeleteBranch(name); err != nil {
					return nil, err
				}
			}
		}
	}

	return s.Protocol.Prune(ctx)
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}

// RestoreToPoint implements the restore ring: take a periodic snapshot of
// the current state (its commit carries the ordinary periodic snapshot
// message; no restoration-specific label is recorded), hard-checkout
// ref, then shift the N-slot
// restore ring down, installing the new before/after pair at idx_1.
func (s *Scheduler) RestoreToPoint(ctx context.Context, ref string, now time.Time) error {
	preRestore, err := s.createPeriodicSnapshot(ctx, now)
	if err != nil {
		return err
	}

	resolved, err := graph.Resolve(s.Store, ref)
	if err != nil {
		return err
	}
	if resolved.Commit == nil {
		return fmt.Errorf("rotation: restore target %q did not resolve to a commit", ref)
	}
	if _, err := s.Protocol.Checkout(ctx, ref, snapshot.CheckoutOptions{Force: true}); err != nil {
		return err
	}

	n := s.Config.RestoreRingSize
	if n <= 0 {
		return nil
	}
	if err := shiftRing(s.Store, "restore", "before", n); err != nil {
		return err
	}
	if err := shiftRing(s.Store, "restore", "after", n); err != nil {
		return err
	}
	if err := s.Store.WriteBranch(store.Branch{Name: ringBranchName("restore", 1, "before"), CommitID: preRestore}); err != nil {
		return err
	}
	return s.Store.WriteBranch(store.Branch{Name: ringBranchName("restore", 1, "after"), CommitID: resolved.Commit.CommitID})
}

// QuickBackup snapshots the current state, then shifts the quick ring
// (a single "global" slot suffix) the same way the restore ring shifts.
func (s *Scheduler) QuickBackup(ctx context.Context, now time.Time) error {
	commitID, err := s.createPeriodicSnapshot(ctx, now)
	if err != nil {
		return err
	}

	n := s.Config.QuickRingSize
	if n <= 0 {
		return nil
	}
	if err := shiftRing(s.Store, "quick", "global", n); err != nil {
		return err
	}
	return s.Store.WriteBranch(store.Branch{Name: ringBranchName("quick", 1, "global"), CommitID: commitID})
}

// ManualBackup snapshots the current state, then force-creates
// manual__<name> at the new commit. Manual branches are never pruned.
func (s *Scheduler) ManualBackup(ctx context.Context, name string, now time.Time) error {
	commitID, err := s.createPeriodicSnapshot(ctx, now)
	if err != nil {
		return err
	}
	return s.Store.WriteBranch(store.Branch{Name: "manual__" + name, CommitID: commitID})
}

// createPeriodicSnapshot runs one periodic snapshot and returns its
// new commit id, the common first step of restore/quick/manual backups.
func (s *Scheduler) createPeriodicSnapshot(ctx context.Context, now time.Time) (string, error) {
	_, commitID, err := s.PeriodicSnapshot(ctx, now)
	return commitID, err
}

// ringBranchName formats "<kind>__idx_<i>__<suffix>".
func ringBranchName(kind string, i int, suffix string) string {
	return fmt.Sprintf("%s__idx_%d__%s", kind, i, suffix)
}

// shiftRing moves idx_{N-1} -> idx_N down to idx_1 -> idx_2, leaving
// idx_1 free for the caller to overwrite with the new value.
func shiftRing(s *store.Store, kind, suffix string, n int) error {
	for i := n - 1; i >= 1; i-- {
		from := ringBranchName(kind, i, suffix)
		b, ok, err := s.Store.ReadBranch(from)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		to := ringBranchName(kind, i+1, suffix)
		if err := s.Store.WriteBranch(store.Branch{Name: to, CommitID: b.CommitID}); err != nil {
			return err
		}
	}
	return nil
}
