package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// migrateCmd creates or updates the media_records table.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the media_records table",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := buildDeps(depsOptions{requireDB: true})
		if err != nil {
			return err
		}
		defer d.logger.Sync()

		if err := d.migrate(cmd.Context()); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		d.logger.Info("media_records is up to date")
		return nil
	},
}

func init() {
	RootCmd.AddCommand(migrateCmd)
}
