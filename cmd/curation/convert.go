package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/danielw-jfrog/curation-tools/internal/records"
	"github.com/danielw-jfrog/curation-tools/internal/utils/colors"
	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "convert records files between CSV and JSON",
}

var convertCSVToJSONCmd = &cobra.Command{
	Use:   "csv-to-json <file.csv>",
	Short: "convert a records CSV file to JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		recs, err := records.ReadCSV(args[0])
		if err != nil {
			return err
		}
		outputPath := stem(args[0]) + ".json"
		if err := records.WriteJSON(outputPath, recs); err != nil {
			return err
		}
		_, _ = fmt.Fprint(
			os.Stderr,
			"Wrote ", colors.UserInput(len(recs)),
			" records to ", colors.UserInput(outputPath),
			"\n",
		)
		return nil
	},
}

var convertJSONToCSVCmd = &cobra.Command{
	Use:   "json-to-csv <file.json>",
	Short: "convert a records JSON file to CSV",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		recs, err := records.ReadJSON(args[0])
		if err != nil {
			return err
		}
		outputPath := stem(args[0]) + ".csv"
		if err := records.WriteCSV(outputPath, recs); err != nil {
			return err
		}
		_, _ = fmt.Fprint(
			os.Stderr,
			"Wrote ", colors.UserInput(len(recs)),
			" records to ", colors.UserInput(outputPath),
			"\n",
		)
		return nil
	},
}

// stem returns the base name of the path without its extension. Converted
// files land in the working directory, like the original tools.
func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func init() {
	convertCmd.AddCommand(
		convertCSVToJSONCmd,
		convertJSONToCSVCmd,
	)
}
