package cli

import (
	"github.com/spf13/cobra"

	"rit.dev/rit/internal/graph"
	"rit.dev/rit/internal/output"
	"rit.dev/rit/internal/riterrors"
	"rit.dev/rit/internal/store"
)

func newBranchCmd() *cobra.Command {
	var (
		force     bool
		deleteRef bool
	)
	cmd := &cobra.Command{
		Use:   "branch [name] [ref]",
		Short: "List, create, move, or delete branches",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var name, ref string
			if len(args) >= 1 {
				name = args[0]
			}
			if len(args) == 2 {
				ref = args[1]
			}

			_, s, err := openRepo()
			if err != nil {
				return reportErr(err)
			}

			if name != "" {
				if err := graph.ValidateBranchName(name); err != nil {
					return reportErr(err)
				}
				head, err := s.ReadHead()
				if err != nil {
					return reportErr(err)
				}
				if branchName, attached := head.Attached(); attached && branchName == name {
					return reportErr(riterrors.ErrInvalidArguments)
				}
			}

			switch {
			case deleteRef:
				if force || name == "" || ref != "" {
					return reportErr(riterrors.ErrInvalidArguments)
				}
				if err := s.DeleteBranch(name); err != nil {
					return reportErr(err)
				}
				splog().Info("Deleted branch %s", name)
				return nil

			case name == "":
				if force || ref != "" {
					return reportErr(riterrors.ErrInvalidArguments)
				}
				return listBranches(s)

			default:
				return createBranch(s, name, ref, force)
			}
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing branch")
	cmd.Flags().BoolVarP(&deleteRef, "delete", "d", false, "delete the named branch")
	return cmd
}

func listBranches(s *store.Store) error {
	head, err := s.ReadHead()
	if err != nil {
		return reportErr(err)
	}
	attachedName, _ := head.Attached()

	names, err := s.ListBranchNames()
	if err != nil {
		return reportErr(err)
	}
	for _, name := range names {
		b, ok, err := s.ReadBranch(name)
		if err != nil {
			return reportErr(err)
		}
		if !ok {
			continue
		}
		c, ok, err := s.ReadCommit(b.CommitID)
		if err != nil {
			return reportErr(err)
		}
		marker := " "
		if name == attachedName {
			marker = "*"
		}
		msg := ""
		if ok {
			msg = c.Msg
		}
		splog().Page(marker + " " + output.ColorBranch(name) + "\t" + output.ColorCommitID(graph.ShortID(b.CommitID)) + " " + msg + "\n")
	}
	return nil
}

func createBranch(s *store.Store, name, ref string, force bool) error {
	_, exists, err := s.ReadBranch(name)
	if err != nil {
		return reportErr(err)
	}
	if exists && !force {
		return reportErr(riterrors.NewBranchExistsError(name))
	}

	res, err := graph.Resolve(s, ref)
	if err != nil {
		return reportErr(err)
	}
	if res.Commit == nil {
		return reportErr(riterrors.ErrUnresolvableRef)
	}

	if err := s.WriteBranch(store.Branch{Name: name, CommitID: res.Commit.CommitID}); err != nil {
		return reportErr(err)
	}
	splog().Info("Created branch %s at %s", name, graph.ShortID(res.Commit.CommitID))
	return nil
}
