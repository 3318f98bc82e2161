package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

// queryBranch is one branch's JSON projection in a query snapshot.
type queryBranch struct {
	Name     string `json:"name"`
	CommitID string `json:"commitId"`
}

// querySnapshot is the read-only view a query returns: enough to inspect
// a repository's state without any risk of mutating it, since every
// field comes from the store's read methods alone.
type querySnapshot struct {
	Attached    bool          `json:"attached"`
	BranchName  string        `json:"branchName,omitempty"`
	CommitID    string        `json:"commitId,omitempty"`
	Branches    []queryBranch `json:"branches"`
	CommitCount int           `json:"commitCount"`
}

func newQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Print a read-only JSON snapshot of the repository state",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, s, err := openRepo()
			if err != nil {
				return reportErr(err)
			}

			head, err := s.ReadHead()
			if err != nil {
				return reportErr(err)
			}
			snap := querySnapshot{}
			if name, ok := head.Attached(); ok {
				snap.Attached = true
				snap.BranchName = name
			} else if id, ok := head.Detached(); ok {
				snap.CommitID = id
			}

			names, err := s.ListBranchNames()
			if err != nil {
				return reportErr(err)
			}
			for _, name := range names {
				b, ok, err := s.ReadBranch(name)
				if err != nil {
					return reportErr(err)
				}
				if ok {
					snap.Branches = append(snap.Branches, queryBranch{Name: name, CommitID: b.CommitID})
				}
			}

			ids, err := s.ListCommitIDs()
			if err != nil {
				return reportErr(err)
			}
			snap.CommitCount = len(ids)

			out, err := json.MarshalIndent(snap, "", "  ")
			if err != nil {
				return reportErr(err)
			}
			splog().Page(string(out) + "\n")
			return nil
		},
	}
	return cmd
}
