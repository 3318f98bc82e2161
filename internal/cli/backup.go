package cli

import (
	"time"

	"github.com/spf13/cobra"

	"rit.dev/rit/internal/archive"
	"rit.dev/rit/internal/config"
	"rit.dev/rit/internal/riterrors"
	"rit.dev/rit/internal/rotation"
	"rit.dev/rit/internal/snapshot"
)

func openScheduler() (*rotation.Scheduler, error) {
	l, s, err := openRepo()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(l.RitDir)
	if err != nil {
		return nil, err
	}
	p := snapshot.New(l, s, archive.NewCommandRunner())
	return rotation.New(s, p, cfg), nil
}

func newBackupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Tiered backup rotation: periodic snapshots and the restore, quick, and manual rings",
	}
	cmd.AddCommand(
		newBackupPeriodicCmd(),
		newBackupPruneCmd(),
		newBackupRestoreCmd(),
		newBackupQuickCmd(),
		newBackupManualCmd(),
	)
	return cmd
}

func newBackupPeriodicCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "periodic",
		Short: "Take a periodic snapshot, chaining from the deepest existing level",
		RunE: func(cmd *cobra.Command, args []string) error {
			sched, err := openScheduler()
			if err != nil {
				return reportErr(err)
			}
			created, commitID, err := sched.PeriodicSnapshot(cmd.Context(), time.Now())
			if err != nil {
				return reportErr(err)
			}
			splog().Info("Periodic snapshot %s created levels: %v", commitID, created)
			return nil
		},
	}
}

func newBackupPruneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Delete aged-out periodic level branches, then sweep unreachable commits",
		RunE: func(cmd *cobra.Command, args []string) error {
			sched, err := openScheduler()
			if err != nil {
				return reportErr(err)
			}
			removed, err := sched.PrunePeriodic(cmd.Context(), time.Now())
			if err != nil {
				return reportErr(err)
			}
			splog().Info("Removed %d unreachable commit(s)", len(removed))
			return nil
		},
	}
}

func newBackupRestoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore <ref>",
		Short: "Restore to a point, recording it in the before/after restore ring",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sched, err := openScheduler()
			if err != nil {
				return reportErr(err)
			}
			if err := sched.RestoreToPoint(cmd.Context(), args[0], time.Now()); err != nil {
				return reportErr(err)
			}
			splog().Info("Restored to %s", args[0])
			return nil
		},
	}
}

func newBackupQuickCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "quick",
		Short: "Take a quick backup, shifting the quick ring",
		RunE: func(cmd *cobra.Command, args []string) error {
			sched, err := openScheduler()
			if err != nil {
				return reportErr(err)
			}
			if err := sched.QuickBackup(cmd.Context(), time.Now()); err != nil {
				return reportErr(err)
			}
			splog().Info("Quick backup complete")
			return nil
		},
	}
}

func newBackupManualCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "manual <name>",
		Short: "Take a manual backup, never targeted by prune",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[0] == "" {
				return reportErr(riterrors.ErrInvalidArguments)
			}
			sched, err := openScheduler()
			if err != nil {
				return reportErr(err)
			}
			if err := sched.ManualBackup(cmd.Context(), args[0], time.Now()); err != nil {
				return reportErr(err)
			}
			splog().Info("Manual backup %s complete", args[0])
			return nil
		},
	}
}
