package cli

import (
	"github.com/spf13/cobra"

	"rit.dev/rit/internal/graph"
	"rit.dev/rit/internal/prompt"
)

func newPruneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Remove commits unreachable from any branch or HEAD",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, p, err := openProtocol()
			if err != nil {
				return reportErr(err)
			}

			ok, err := prompt.Confirm("Permanently remove unreachable commits?", assumeYes)
			if err != nil {
				return reportErr(err)
			}
			if !ok {
				splog().Info("Aborted")
				return nil
			}

			removed, err := p.Prune(cmd.Context())
			if err != nil {
				return reportErr(err)
			}
			if len(removed) == 0 {
				splog().Info("Nothing to prune")
				return nil
			}
			for _, id := range removed {
				splog().Page("removed " + graph.ShortID(id) + "\n")
			}
			splog().Info("Removed %d unreachable commit(s)", len(removed))
			return nil
		},
	}
	return cmd
}
