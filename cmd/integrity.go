package cmd

import (
	"context"
	"errors"
	"fmt"

	"asset-janitor/feature/integrity"
	"asset-janitor/feature/integrity/checks"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var fixFlag bool

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Perform integrity checks on storage and database",
	Long:  `Checks that the bucket holds every scanned folder and that the database carries the tables the engine reads.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			return cmd.Help()
		}
		return runIntegrityChecks(cmd.Context(), true, true)
	},
}

// structureCmd represents the integrity structure command
var structureCmd = &cobra.Command{
	Use:   "structure",
	Short: "Check and fix folder structure",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), true, false)
	},
}

// schemaCmd represents the integrity schema command
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Check the content and media_records schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), false, true)
	},
}

func init() {
	RootCmd.AddCommand(integrityCmd)
	integrityCmd.AddCommand(structureCmd, schemaCmd)

	structureCmd.Flags().BoolVar(&fixFlag, "fix", false, "Create the bucket and missing folders")
}

func runIntegrityChecks(ctx context.Context, runStructure, runSchema bool) error {
	d, err := buildDeps(depsOptions{requireDB: runSchema})
	if err != nil {
		return err
	}
	defer d.logger.Sync()
	logg := d.logger

	svc, err := d.integrityService()
	if err != nil {
		return err
	}

	if runStructure {
		if err := checkStructure(ctx, logg, svc, runSchema); err != nil {
			return err
		}
	}

	if runSchema {
		checkSchema(logg, svc)
	}
	return nil
}

func checkStructure(ctx context.Context, logg *zap.Logger, svc *integrity.Service, all bool) error {
	logg.Info("Checking folder structure...")

	missing, err := svc.CheckStructure(ctx)
	if errors.Is(err, checks.ErrBucketMissing) && fixFlag && !all {
		logg.Warn("Bucket missing, it will be created", zap.Error(err))
		missing, err = svc.Folders(), nil
	}
	if err != nil {
		return fmt.Errorf("structure check failed: %w", err)
	}

	if len(missing) == 0 {
		logg.Info("Structure is intact.")
		return nil
	}

	logg.Warn("Missing folders detected", zap.Strings("missing", missing))
	switch {
	case fixFlag && !all:
		logg.Info("Fixing missing folders...")
		if err := svc.FixStructure(ctx, missing); err != nil {
			return fmt.Errorf("failed to fix structure: %w", err)
		}
		logg.Info("Structure fixed successfully.")
	case !all:
		logg.Info("Run with --fix to create missing folders.")
	}
	return nil
}

func checkSchema(logg *zap.Logger, svc *integrity.Service) {
	logg.Info("Checking database schema...")

	report, err := svc.CheckSchema()
	if err != nil {
		logg.Error("Schema check failed", zap.Error(err))
		return
	}

	if report.Matched {
		logg.Info("Database schema matches expected definition.")
		return
	}

	logg.Warn("Database schema mismatches found")
	for table, tblReport := range report.Tables {
		if tblReport.Status == "ok" {
			continue
		}
		if len(tblReport.MissingColumns) > 0 {
			logg.Warn("Missing Columns", zap.String("table", table), zap.Strings("columns", tblReport.MissingColumns))
		}
		if len(tblReport.TypeMismatches) > 0 {
			logg.Warn("Type Mismatches", zap.String("table", table), zap.Strings("mismatches", tblReport.TypeMismatches))
		}
	}
	for _, e := range report.Errors {
		logg.Error("Inspection Error", zap.String("error", e))
	}
}
