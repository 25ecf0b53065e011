package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	deleteDryRun bool
	yesConfirm   bool
)

// deleteCmd removes files with their derived posters.
var deleteCmd = &cobra.Command{
	Use:   "delete <path>...",
	Short: "Delete files and their posters",
	Long: `Deletes the given asset paths, their guessed poster paths and their recorded poster paths
in one bulk storage call, then drops their media records.

Examples:
  # Show what would be removed
  delete portfolio/1712.mp4 --dry-run

  # Delete with interactive confirmation
  delete portfolio/1712.mp4 blog/1700.jpg

  # Delete with auto-confirm (non-interactive)
  delete portfolio/1712.mp4 --yes`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDelete,
}

func init() {
	deleteCmd.Flags().BoolVar(&deleteDryRun, "dry-run", false, "Only print the deletion set")
	deleteCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm destructive actions (non-interactive)")
	RootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	d, err := buildDeps(depsOptions{requireDB: true})
	if err != nil {
		return err
	}
	defer d.logger.Sync()
	l := d.logger

	// Step 1: Plan (always runs)
	plan, err := d.engine.PlanDelete(ctx, args)
	if err != nil {
		return fmt.Errorf("failed to plan delete: %w", err)
	}

	l.Info("Deletion set",
		zap.Strings("requested", plan.Requested),
		zap.Strings("derived", plan.Derived),
		zap.Int("total", len(plan.Files)),
	)

	if deleteDryRun {
		l.Info("Dry-run mode: No changes were made.")
		return nil
	}

	// Step 2: Apply (if confirmed)
	if !confirmDestructiveAction(os.Stdin, cmd.OutOrStdout(), yesConfirm) {
		l.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}

	res, err := d.engine.DeleteFiles(ctx, args)
	if err != nil {
		return fmt.Errorf("delete failed: %w", err)
	}

	l.Info("Successfully deleted files",
		zap.Int("count", len(res.Deleted)),
		zap.Int64("records_removed", res.RecordsRemoved),
	)
	return nil
}
