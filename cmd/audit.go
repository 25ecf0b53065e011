package cmd

import (
	"encoding/json"
	"fmt"

	"asset-janitor/core/reconcile"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var auditJSON bool

// auditCmd classifies stored and referenced assets.
var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Report linked, orphan and missing assets",
	Long: `Compares every asset referenced by content with the objects stored in the scanned folders.

Examples:
  # Summary with a sample of orphans and missing files
  audit

  # Full result on stdout
  audit --json > audit.json`,
	RunE: runAudit,
}

func init() {
	auditCmd.Flags().BoolVar(&auditJSON, "json", false, "Print the full audit result as JSON")
	RootCmd.AddCommand(auditCmd)
}

func runAudit(cmd *cobra.Command, args []string) error {
	d, err := buildDeps(depsOptions{requireDB: true})
	if err != nil {
		return err
	}
	defer d.logger.Sync()

	d.logger.Info("Starting audit", zap.Strings("folders", d.cfg.Assets.Folders()))

	res, err := d.engine.Audit(cmd.Context())
	if err != nil {
		return fmt.Errorf("audit failed: %w", err)
	}

	if auditJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	printAuditReport(d.logger, res)
	return nil
}

// printAuditReport prints a formatted audit report using logger.
func printAuditReport(l *zap.Logger, res *reconcile.AuditResult) {
	l.Info("Audit report",
		zap.Int("linked", res.Summary.Linked),
		zap.Int("orphan", res.Summary.Orphan),
		zap.Int("missing", res.Summary.Missing),
	)

	if len(res.Degraded) > 0 {
		l.Warn("Folders skipped after listing failures, orphans there are unknown", zap.Strings("folders", res.Degraded))
	}

	for _, group := range []struct {
		name    string
		entries []reconcile.Entry
	}{
		{"orphan", res.Orphan},
		{"missing", res.Missing},
	} {
		files := make([]string, 0, len(group.entries))
		for _, e := range group.entries {
			files = append(files, e.File)
		}
		shown, rest := sample(files, 5)
		for _, f := range shown {
			l.Info("Sample "+group.name, zap.String("file", f))
		}
		if rest > 0 {
			l.Info("Additional "+group.name+" files not shown", zap.Int("count", rest))
		}
	}
}
