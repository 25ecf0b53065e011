package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// postersCmd is the parent command for poster maintenance.
var postersCmd = &cobra.Command{
	Use:   "posters",
	Short: "Maintain generated video posters",
}

// postersCleanupCmd removes posters no media record references.
var postersCleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Remove unreferenced posters from the catch-all posters folder",
	Long: `Lists the catch-all posters folder and removes every poster that no media record references.

Examples:
  # Interactive confirmation
  posters cleanup

  # Auto-confirm (non-interactive)
  posters cleanup --yes`,
	RunE: runPostersCleanup,
}

func init() {
	postersCleanupCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm destructive actions (non-interactive)")
	postersCmd.AddCommand(postersCleanupCmd)
	RootCmd.AddCommand(postersCmd)
}

func runPostersCleanup(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	d, err := buildDeps(depsOptions{requireDB: true})
	if err != nil {
		return err
	}
	defer d.logger.Sync()
	l := d.logger

	orphans, err := d.engine.PlanCleanup(ctx)
	if err != nil {
		return fmt.Errorf("failed to plan cleanup: %w", err)
	}

	if len(orphans) == 0 {
		l.Info("No orphan posters found", zap.String("folder", d.cfg.Assets.PostersFolder()))
		return nil
	}

	shown, rest := sample(orphans, 5)
	l.Info("Orphan posters", zap.Int("count", len(orphans)), zap.Strings("sample", shown), zap.Int("not_shown", rest))

	if !confirmDestructiveAction(os.Stdin, cmd.OutOrStdout(), yesConfirm) {
		l.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}

	res, err := d.engine.CleanupOrphanPosters(ctx)
	if err != nil {
		return fmt.Errorf("cleanup failed: %w", err)
	}

	l.Info("Orphan posters removed", zap.Int("count", res.Deleted))
	return nil
}
