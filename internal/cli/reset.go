package cli

import (
	"github.com/spf13/cobra"

	"rit.dev/rit/internal/graph"
)

func newResetCmd() *cobra.Command {
	var hard bool
	cmd := &cobra.Command{
		Use:   "reset <ref>",
		Short: "Move HEAD or its attached branch to ref",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, p, err := openProtocol()
			if err != nil {
				return reportErr(err)
			}
			res, err := p.Reset(cmd.Context(), args[0], hard)
			if err != nil {
				return reportErr(err)
			}
			splog().Info("Reset to %s", graph.ShortID(res.Commit.CommitID))
			return nil
		},
	}
	cmd.Flags().BoolVar(&hard, "hard", false, "also restore the working tree to match")
	return cmd
}
