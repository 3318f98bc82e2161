package cli

import (
	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Report whether the working tree differs from HEAD's commit",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, p, err := openProtocol()
			if err != nil {
				return reportErr(err)
			}
			st, err := p.Status(cmd.Context(), true)
			if err != nil {
				return reportErr(err)
			}
			if !st.Dirty {
				splog().Info("Clean working directory!")
				return nil
			}
			splog().Info("Working directory has uncommitted changes:")
			for _, path := range st.ChangedPaths {
				splog().Page("  " + path + "\n")
			}
			return nil
		},
	}
	return cmd
}
