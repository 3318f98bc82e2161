package cli

import (
	"os"

	"github.com/spf13/cobra"

	"rit.dev/rit/internal/archive"
	"rit.dev/rit/internal/graph"
	"rit.dev/rit/internal/riterrors"
)

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [ref]",
		Short: "List the files captured by a commit's archive",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var ref string
			if len(args) == 1 {
				ref = args[0]
			}

			l, s, err := openRepo()
			if err != nil {
				return reportErr(err)
			}
			res, err := graph.Resolve(s, ref)
			if err != nil {
				return reportErr(err)
			}
			if res.Commit == nil {
				return reportErr(riterrors.ErrUnresolvableRef)
			}

			runner := archive.NewCommandRunner()
			if err := runner.List(cmd.Context(), l.ArchivePath(res.Commit.CommitID), os.Stdout); err != nil {
				return reportErr(err)
			}
			return nil
		},
	}
	return cmd
}
