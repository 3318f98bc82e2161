package cli

import (
	"github.com/spf13/cobra"

	"rit.dev/rit/internal/riterrors"
	"rit.dev/rit/internal/snapshot"
)

func newCheckoutCmd() *cobra.Command {
	var (
		force  bool
		orphan bool
	)
	cmd := &cobra.Command{
		Use:   "checkout <ref-or-new-branch-name>",
		Short: "Switch HEAD to a branch or commit and restore the working tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := args[0]
			opts := snapshot.CheckoutOptions{Force: force}
			ref := target
			if orphan {
				opts.Orphan = true
				opts.OrphanName = target
				ref = ""
			}
			if target == "" {
				return reportErr(riterrors.ErrInvalidArguments)
			}

			_, _, p, err := openProtocol()
			if err != nil {
				return reportErr(err)
			}
			if _, err := p.Checkout(cmd.Context(), ref, opts); err != nil {
				return reportErr(err)
			}
			splog().Info("Switched to %s", target)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "discard a dirty working tree instead of refusing")
	cmd.Flags().BoolVar(&orphan, "orphan", false, "create a new unborn branch instead of checking one out")
	return cmd
}
