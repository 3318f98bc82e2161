package cli

import (
	"github.com/spf13/cobra"

	"rit.dev/rit/internal/graph"
)

func newCommitCmd() *cobra.Command {
	var msg string
	cmd := &cobra.Command{
		Use:   "commit",
		Short: "Snapshot the working tree into a new commit",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, p, err := openProtocol()
			if err != nil {
				return reportErr(err)
			}
			c, err := p.Commit(cmd.Context(), msg)
			if err != nil {
				return reportErr(err)
			}
			splog().Info("Created commit %s: %s", graph.ShortID(c.CommitID), c.Msg)
			return nil
		},
	}
	cmd.Flags().StringVarP(&msg, "message", "m", "", "commit message")
	_ = cmd.MarkFlagRequired("message")
	return cmd
}
