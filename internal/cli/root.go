// Package cli implements the rit command-line front-end: one cobra
// subcommand per operation in the operation surface, wiring together the
// layout, store, snapshot, and rotation packages.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rit.dev/rit/internal/archive"
	"rit.dev/rit/internal/layout"
	"rit.dev/rit/internal/output"
	"rit.dev/rit/internal/snapshot"
	"rit.dev/rit/internal/store"
)

var (
	verboseCount int
	quietCount   int
	assumeYes    bool
)

// NewRootCmd builds the rit root command and wires every subcommand.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "rit",
		Short:         "A single-user, local snapshot version-control system",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().CountVarP(&verboseCount, "verbose", "v", "increase log verbosity (repeatable)")
	root.PersistentFlags().CountVarP(&quietCount, "quiet", "q", "decrease log verbosity (repeatable)")
	root.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false, "assume yes for any confirmation prompt")

	root.AddCommand(
		newInitCmd(),
		newCommitCmd(),
		newCheckoutCmd(),
		newResetCmd(),
		newBranchCmd(),
		newLogCmd(),
		newShowCmd(),
		newStatusCmd(),
		newPruneCmd(),
		newQueryCmd(),
		newBackupCmd(),
	)
	return root
}

// splog builds the CLI's output sink at the net verbosity the persistent
// flags requested.
func splog() *output.Splog {
	return output.NewSplog(verboseCount - quietCount)
}

// openRepo discovers the enclosing repository and opens its store.
func openRepo() (*layout.Layout, *store.Store, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, nil, err
	}
	l, err := layout.Discover(cwd)
	if err != nil {
		return nil, nil, err
	}
	return l, store.Open(l), nil
}

// openProtocol discovers the repository and wires a snapshot.Protocol
// over the real tar-backed archive.CommandRunner.
func openProtocol() (*layout.Layout, *store.Store, *snapshot.Protocol, error) {
	l, s, err := openRepo()
	if err != nil {
		return nil, nil, nil, err
	}
	p := snapshot.New(l, s, archive.NewCommandRunner())
	p.Verbose = verboseCount > 0
	p.Out = os.Stdout
	return l, s, p, nil
}

// reportErr logs a single error line the way the dispatcher is required
// to, and returns the nonzero exit the caller should propagate.
func reportErr(err error) error {
	splog().Error("%v", err)
	return fmt.Errorf("%w", err)
}
