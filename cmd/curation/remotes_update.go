package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/danielw-jfrog/curation-tools/internal/artifactory"
	"github.com/danielw-jfrog/curation-tools/internal/records"
	"github.com/danielw-jfrog/curation-tools/internal/reroute"
	"github.com/danielw-jfrog/curation-tools/internal/utils/colors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var remotesUpdateFlags struct {
	Prefix     string
	StartIndex int
	StopIndex  int
	DryRun     bool
}

var remotesUpdateCmd = &cobra.Command{
	Use:   "update <input.json>",
	Short: "point remote repositories at the URLs from a records file",
	Long: strings.TrimSpace(`
Point remote repositories at the URLs from a records file.

For each record the current repository configuration is fetched first; the
previous URLs are written to <input>_old_remotes.json next to the input file
so the update can be rolled back with "curation remotes rollback".
`),
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputPath := args[0]
		recs, err := records.ReadJSON(inputPath)
		if err != nil {
			return err
		}
		recs = records.Slice(recs, remotesUpdateFlags.StartIndex, remotesUpdateFlags.StopIndex)

		client, err := getClient()
		if err != nil {
			return err
		}

		ctx := context.Background()
		updated := 0
		skipped := 0
		var previous []records.Record
		for _, rec := range recs {
			key := remotesUpdateFlags.Prefix + rec.Key
			log := logrus.WithField("repo", key)

			current, err := client.GetRemoteRepository(ctx, key)
			if err != nil {
				log.WithError(err).Warning("failed to fetch current repository config, skipping")
				skipped++
				continue
			}

			update := reroute.ForPackageType(rec.PackageType, rec.URL)
			if remotesUpdateFlags.DryRun {
				_, _ = fmt.Fprint(
					os.Stderr,
					"Would update ", colors.UserInput(key),
					" to ", colors.UserInput(update.URL), "\n",
				)
				continue
			}
			if err := client.UpdateRemoteRepository(ctx, artifactory.RemoteRepository{
				Key:             key,
				URL:             update.URL,
				PyPIRegistryURL: update.PyPIRegistryURL,
			}); err != nil {
				log.WithError(err).Warning("failed to update remote repository, skipping")
				skipped++
				continue
			}
			updated++
			previous = append(previous, records.Record{
				Key:         key,
				Type:        records.TypeRemote,
				URL:         current.URL,
				PackageType: rec.PackageType,
			})
		}

		if len(previous) > 0 {
			backupPath := recordsSiblingPath(inputPath, "_old_remotes")
			if err := records.WriteJSON(backupPath, previous); err != nil {
				return err
			}
			_, _ = fmt.Fprint(
				os.Stderr,
				"Saved previous URLs to ", colors.UserInput(backupPath), "\n",
			)
		}
		_, _ = fmt.Fprint(
			os.Stderr,
			"Updated ", colors.Success(updated),
			" remote repositories (", colors.Warning(skipped), " skipped)",
			"\n",
		)
		return nil
	},
}

func init() {
	remotesUpdateCmd.Flags().StringVar(
		&remotesUpdateFlags.Prefix, "prefix", "",
		"add a prefix to every repository key",
	)
	remotesUpdateCmd.Flags().IntVar(
		&remotesUpdateFlags.StartIndex, "start", 0,
		"starting entry in the records file (defaults to the first)",
	)
	remotesUpdateCmd.Flags().IntVar(
		&remotesUpdateFlags.StopIndex, "stop", -1,
		"stopping entry in the records file, exclusive (defaults to the last)",
	)
	remotesUpdateCmd.Flags().BoolVar(
		&remotesUpdateFlags.DryRun, "dry-run", false,
		"print what would be updated without calling the API",
	)
}
