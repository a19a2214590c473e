package main

import (
	"context"
	"fmt"
	"os"

	"github.com/danielw-jfrog/curation-tools/internal/artifactory"
	"github.com/danielw-jfrog/curation-tools/internal/records"
	"github.com/danielw-jfrog/curation-tools/internal/reroute"
	"github.com/danielw-jfrog/curation-tools/internal/utils/colors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var remotesRollbackCmd = &cobra.Command{
	Use:   "rollback <old_remotes.json>",
	Short: "restore remote repository URLs from a rollback file",
	Long: "Restore remote repository URLs from a rollback file written by " +
		"\"curation remotes update\".",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		recs, err := records.ReadJSON(args[0])
		if err != nil {
			return err
		}

		client, err := getClient()
		if err != nil {
			return err
		}

		ctx := context.Background()
		restored := 0
		skipped := 0
		for _, rec := range recs {
			update := reroute.ForPackageType(rec.PackageType, rec.URL)
			if err := client.UpdateRemoteRepository(ctx, artifactory.RemoteRepository{
				Key:             rec.Key,
				URL:             update.URL,
				PyPIRegistryURL: update.PyPIRegistryURL,
			}); err != nil {
				logrus.WithField("repo", rec.Key).WithError(err).Warning("failed to restore remote repository, skipping")
				skipped++
				continue
			}
			restored++
		}

		_, _ = fmt.Fprint(
			os.Stderr,
			"Restored ", colors.Success(restored),
			" remote repositories (", colors.Warning(skipped), " skipped)",
			"\n",
		)
		return nil
	},
}
