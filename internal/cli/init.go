package cli

import (
	"os"

	"github.com/spf13/cobra"

	"rit.dev/rit/internal/layout"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create a new rit repository rooted at the current directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return reportErr(err)
			}
			l, err := layout.Init(cwd)
			if err != nil {
				return reportErr(err)
			}
			splog().Info("Successfully created rit directory: %s", l.RitDir)
			return nil
		},
	}
}
