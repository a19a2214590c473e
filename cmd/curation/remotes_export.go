package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"emperror.dev/errors"
	"github.com/danielw-jfrog/curation-tools/internal/records"
	"github.com/danielw-jfrog/curation-tools/internal/utils/colors"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var remotesExportFlags struct {
	PackageType string
	Output      string
	Format      string
}

var remotesExportCmd = &cobra.Command{
	Use:   "export",
	Short: "export remote repository configurations as migration records",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := getClient()
		if err != nil {
			return err
		}

		ctx := context.Background()
		configs, err := client.GetRepositoryConfigurations(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to fetch repository configurations")
		}

		// Non-nil so zero matches still serialize as an empty JSON list.
		recs := []records.Record{}
		for _, repo := range configs.Remote {
			if remotesExportFlags.PackageType != "" && repo.PackageType != remotesExportFlags.PackageType {
				continue
			}
			recs = append(recs, records.Record{
				Key:         repo.Key,
				Type:        records.TypeRemote,
				URL:         repo.URL,
				PackageType: repo.PackageType,
				Description: repo.Description,
			})
		}

		switch remotesExportFlags.Format {
		case "table":
			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Key", "Package Type", "URL"})
			for _, rec := range recs {
				table.Append([]string{rec.Key, rec.PackageType, rec.URL})
			}
			table.Render()
			return nil
		case "json":
			if remotesExportFlags.Output == "" {
				data, err := json.MarshalIndent(recs, "", "  ")
				if err != nil {
					return errors.Wrap(err, "failed to marshal records")
				}
				fmt.Println(string(data))
				return nil
			}
			if err := records.WriteJSON(remotesExportFlags.Output, recs); err != nil {
				return err
			}
			_, _ = fmt.Fprint(
				os.Stderr,
				"Exported ", colors.UserInput(len(recs)),
				" remote repositories to ", colors.UserInput(remotesExportFlags.Output),
				"\n",
			)
			return nil
		default:
			return errors.Errorf("unknown format %q (must be json or table)", remotesExportFlags.Format)
		}
	},
}

func init() {
	remotesExportCmd.Flags().StringVar(
		&remotesExportFlags.PackageType, "package-type", "",
		"only export remotes with this package type",
	)
	remotesExportCmd.Flags().StringVarP(
		&remotesExportFlags.Output, "output", "o", "",
		"write JSON to this file instead of stdout",
	)
	remotesExportCmd.Flags().StringVar(
		&remotesExportFlags.Format, "format", "json",
		"output format (json or table)",
	)
}
