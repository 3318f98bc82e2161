package graph

import (
	"fmt"
	"time"

	"rit.dev/rit/internal/output"
	"rit.dev/rit/internal/store"
)

// Ancestry builds a parent-pointer map reachable from the given starting
// commit ids, and returns the subset of those ids that are not an
// ancestor of any other starting id (the log view's "leaves").
func Ancestry(s *store.Store, starts []string) (parents map[string]string, leaves []string, err error) {
	parents = make(map[string]string)
	leafSet := make(map[string]bool)

	for _, startID := range starts {
		id := startID
		if _, seen := parents[id]; !seen {
			leafSet[id] = true
		}
		for {
			c, ok, err := s.ReadCommit(id)
			if err != nil {
				return nil, nil, err
			}
			if !ok {
				return nil, nil, fmt.Errorf("ancestry walk: missing commit %s", id)
			}
			parents[id] = c.ParentCommitID
			if c.ParentCommitID == "" {
				break
			}
			delete(leafSet, c.ParentCommitID)
			id = c.ParentCommitID
		}
	}

	for id := range leafSet {
		leaves = append(leaves, id)
	}
	return parents, leaves, nil
}

// LogLine is one rendered row of `rit log`: a leaf-seeded linear walk down
// to the root, annotated with branch labels and a human-readable age.
type LogLine struct {
	CommitID    string
	ShortID     string
	Branches    []string
	Age         string
	Msg         string
	ParentID    string
	HasParent   bool
	IsLeafStart bool
}

// RenderLog walks every leaf down to its root and produces the decorated
// rows a CLI or TUI can print directly, mirroring rit.py's log_commit.
func RenderLog(s *store.Store, starts []string, now time.Time) ([]LogLine, error) {
	commits := make([]store.Commit, 0, len(starts))
	for _, id := range starts {
		c, ok, err := s.ReadCommit(id)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("render log: missing commit %s", id)
		}
		commits = append(commits, c)
	}

	ids := make([]string, 0, len(commits))
	for _, c := range commits {
		ids = append(ids, c.CommitID)
	}
	parents, leaves, err := Ancestry(s, ids)
	if err != nil {
		return nil, err
	}

	commitToBranches, err := s.CommitToBranches()
	if err != nil {
		return nil, err
	}

	var lines []LogLine
	for _, leaf := range leaves {
		id := leaf
		first := true
		for id != "" {
			c, ok, err := s.ReadCommit(id)
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, fmt.Errorf("render log: missing commit %s", id)
			}

			lines = append(lines, LogLine{
				CommitID:    c.CommitID,
				ShortID:     ShortID(c.CommitID),
				Branches:    commitToBranches[c.CommitID],
				Age:         HumanAge(c.CreateTime, now),
				Msg:         c.Msg,
				ParentID:    c.ParentCommitID,
				HasParent:   c.ParentCommitID != "",
				IsLeafStart: first,
			})
			first = false
			id = parents[id]
		}
	}
	return lines, nil
}

// ShortID returns the decorated short commit id used throughout the CLI.
func ShortID(id string) string {
	if len(id) <= store.ShortPrefixLen {
		return id
	}
	return id[:store.ShortPrefixLen]
}

// FormatLine renders a LogLine the way the CLI prints it, coloring the
// short id and branch labels with the output package's colors, mirroring
// rit.py's log_commit coloring (yellow commit ids, green branch names,
// the HEAD sentinel singled out).
func FormatLine(l LogLine) string {
	coloredID := output.ColorCommitID(l.ShortID)
	branchDetails := ""
	if len(l.Branches) > 0 {
		labels := make([]string, len(l.Branches))
		for i, b := range l.Branches {
			if b == store.HeadRefName {
				labels[i] = output.ColorHead(b)
			} else {
				labels[i] = output.ColorBranch(b)
			}
		}
		branchDetails = "(" + joinComma(labels) + ") "
	}
	return fmt.Sprintf("* %s (%s) %s%s", coloredID, l.Age, branchDetails, l.Msg)
}

func joinComma(items []string) string {
	out := ""
	for i, item := range items {
		if i > 0 {
			out += ", "
		}
		out += item
	}
	return out
}
