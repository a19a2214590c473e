package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"emperror.dev/errors"
	"github.com/danielw-jfrog/curation-tools/internal/artifactory"
	"github.com/danielw-jfrog/curation-tools/internal/config"
	"github.com/danielw-jfrog/curation-tools/internal/records"
	"github.com/danielw-jfrog/curation-tools/internal/utils/colors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var remotesCreateFlags struct {
	Prefix          string
	StartIndex      int
	StopIndex       int
	VirtualRepo     string
	VirtualRepoType string
	DryRun          bool
}

var remotesCreateCmd = &cobra.Command{
	Use:   "create <input.json>",
	Short: "bulk-create remote repositories from a records file",
	Long: strings.TrimSpace(`
Bulk-create remote repositories from a records file.

The smart-repo URLs of the created repositories are written to
<input>_new_remotes.json next to the input file; feeding that file to
"curation remotes update" on the source instance points its remotes at the
newly created repositories.
`),
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputPath := args[0]
		recs, err := records.ReadJSON(inputPath)
		if err != nil {
			return err
		}
		recs = records.Slice(recs, remotesCreateFlags.StartIndex, remotesCreateFlags.StopIndex)

		client, err := getClient()
		if err != nil {
			return err
		}

		ctx := context.Background()
		created := 0
		skipped := 0
		var createdKeys []string
		var newRemotes []records.Record
		host := strings.TrimSuffix(config.Curation.Artifactory.Host, "/")
		for _, rec := range recs {
			key := remotesCreateFlags.Prefix + rec.Key
			packageType := records.NormalizePackageType(rec.PackageType)
			repo := artifactory.RemoteRepository{
				Key:         key,
				PackageType: packageType,
				URL:         rec.URL,
				Description: rec.Description,
			}
			if remotesCreateFlags.DryRun {
				_, _ = fmt.Fprint(
					os.Stderr,
					"Would create remote repository ", colors.UserInput(key), "\n",
				)
				continue
			}
			if err := client.CreateRemoteRepository(ctx, repo); err != nil {
				logrus.WithField("repo", key).WithError(err).Warning("failed to create remote repository, skipping")
				skipped++
				continue
			}
			created++
			createdKeys = append(createdKeys, key)
			// The source instance's remotes get pointed at the smart-repo
			// URL of the repository we just created.
			newRemotes = append(newRemotes, records.Record{
				Key:         key,
				Type:        records.TypeRemote,
				URL:         fmt.Sprintf("%s/artifactory/%s", host, key),
				PackageType: packageType,
			})
		}

		if remotesCreateFlags.VirtualRepo != "" && len(createdKeys) > 0 {
			if err := aggregateIntoVirtual(ctx, client, createdKeys); err != nil {
				return err
			}
		}

		if len(newRemotes) > 0 {
			handoffPath := recordsSiblingPath(inputPath, "_new_remotes")
			if err := records.WriteJSON(handoffPath, newRemotes); err != nil {
				return err
			}
			_, _ = fmt.Fprint(
				os.Stderr,
				"Saved new smart-repo URLs to ", colors.UserInput(handoffPath), "\n",
			)
		}

		_, _ = fmt.Fprint(
			os.Stderr,
			"Created ", colors.Success(created),
			" remote repositories (", colors.Warning(skipped), " skipped)",
			"\n",
		)
		return nil
	},
}

// aggregateIntoVirtual makes sure the configured virtual repository exists
// and includes every newly created remote.
func aggregateIntoVirtual(ctx context.Context, client *artifactory.Client, keys []string) error {
	name := remotesCreateFlags.VirtualRepo
	virtual, err := client.GetVirtualRepository(ctx, name)
	if artifactory.IsNotFound(err) {
		logrus.WithField("repo", name).Debug("virtual repository not found, creating")
		return errors.Wrap(client.CreateVirtualRepository(ctx, artifactory.VirtualRepository{
			Key:          name,
			PackageType:  records.NormalizePackageType(remotesCreateFlags.VirtualRepoType),
			Repositories: keys,
		}), "failed to create virtual repository")
	}
	if err != nil {
		return errors.Wrap(err, "failed to fetch virtual repository")
	}

	existing := make(map[string]bool, len(virtual.Repositories))
	for _, key := range virtual.Repositories {
		existing[key] = true
	}
	added := 0
	for _, key := range keys {
		if !existing[key] {
			virtual.Repositories = append(virtual.Repositories, key)
			added++
		}
	}
	if added == 0 {
		return nil
	}
	return errors.Wrap(
		client.UpdateVirtualRepository(ctx, *virtual),
		"failed to update virtual repository",
	)
}

func init() {
	remotesCreateCmd.Flags().StringVar(
		&remotesCreateFlags.Prefix, "prefix", "",
		"add a prefix to every repository key",
	)
	remotesCreateCmd.Flags().IntVar(
		&remotesCreateFlags.StartIndex, "start", 0,
		"starting entry in the records file (defaults to the first)",
	)
	remotesCreateCmd.Flags().IntVar(
		&remotesCreateFlags.StopIndex, "stop", -1,
		"stopping entry in the records file, exclusive (defaults to the last)",
	)
	remotesCreateCmd.Flags().StringVar(
		&remotesCreateFlags.VirtualRepo, "virtual-repo", "",
		"aggregate the created remotes into this virtual repository (created if missing)",
	)
	remotesCreateCmd.Flags().StringVar(
		&remotesCreateFlags.VirtualRepoType, "virtual-repo-type", "generic",
		"package type to use when creating the virtual repository",
	)
	remotesCreateCmd.Flags().BoolVar(
		&remotesCreateFlags.DryRun, "dry-run", false,
		"print what would be created without calling the API",
	)
}
