package cli

import (
	"time"

	"github.com/spf13/cobra"

	"rit.dev/rit/internal/graph"
	"rit.dev/rit/internal/riterrors"
	"rit.dev/rit/internal/tui"
)

func newLogCmd() *cobra.Command {
	var (
		all         bool
		full        bool
		interactive bool
	)
	cmd := &cobra.Command{
		Use:   "log [refs...]",
		Short: "Show commit history reachable from the given refs, or HEAD",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, s, err := openRepo()
			if err != nil {
				return reportErr(err)
			}

			refs := args
			if len(refs) == 0 {
				refs = []string{""}
			}
			if all {
				names, err := s.ListBranchNames()
				if err != nil {
					return reportErr(err)
				}
				refs = append(refs, names...)
			}

			starts := make([]string, 0, len(refs))
			for _, ref := range refs {
				res, err := graph.Resolve(s, ref)
				if err != nil {
					return reportErr(err)
				}
				if res.Commit == nil {
					return reportErr(riterrors.ErrUnresolvableRef)
				}
				starts = append(starts, res.Commit.CommitID)
			}

			lines, err := graph.RenderLog(s, starts, time.Now())
			if err != nil {
				return reportErr(err)
			}

			if interactive {
				selected, err := tui.RunBrowser(lines)
				if err != nil {
					return reportErr(err)
				}
				if selected != nil {
					splog().Page(graph.FormatLine(*selected) + "\n")
				}
				return nil
			}

			for _, l := range lines {
				if full {
					splog().Page(formatFullLine(l) + "\n")
					continue
				}
				splog().Page(graph.FormatLine(l) + "\n")
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&all, "all", "a", false, "include every branch's history")
	cmd.Flags().BoolVar(&full, "full", false, "show full commit ids instead of short prefixes")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse commits in an interactive picker")
	return cmd
}

// formatFullLine renders a log line with its full, undecorated commit id
// in place of the short prefix used by the default view.
func formatFullLine(l graph.LogLine) string {
	return "* " + l.CommitID + " (" + l.Age + ") " + l.Msg
}
