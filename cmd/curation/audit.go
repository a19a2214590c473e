package main

import (
	"context"
	"fmt"
	"os"

	"github.com/danielw-jfrog/curation-tools/internal/audit"
	"github.com/danielw-jfrog/curation-tools/internal/config"
	"github.com/danielw-jfrog/curation-tools/internal/utils/colors"
	"github.com/spf13/cobra"
)

var auditFlags struct {
	DryRun bool
}

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "disable remote repositories not using an approved curation endpoint",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := getClient()
		if err != nil {
			return err
		}

		auditor := &audit.Auditor{
			Client:          client,
			AllowedPrefixes: config.Curation.Audit.AllowedPrefixes,
			Note:            config.Curation.Audit.QuarantineNote,
			DryRun:          auditFlags.DryRun,
		}
		summary, findings, err := auditor.Run(context.Background())
		if err != nil {
			return err
		}

		for _, finding := range findings {
			_, _ = fmt.Fprint(
				os.Stderr,
				"  - ", colors.Failure(finding.Key),
				" points at ", colors.UserInput(finding.URL),
				"\n",
			)
		}
		_, _ = fmt.Fprint(
			os.Stderr,
			"Checked ", colors.UserInput(summary.Checked),
			" remote repositories: ", colors.Warning(summary.Flagged), " flagged, ",
			colors.Failure(summary.Disabled), " disabled, ",
			colors.Faint(summary.Skipped), " skipped",
			"\n",
		)
		return nil
	},
}

func init() {
	auditCmd.Flags().BoolVar(
		&auditFlags.DryRun, "dry-run", false,
		"report repositories with invalid URLs without disabling them",
	)
}
