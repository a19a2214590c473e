package main

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var remotesCmd = &cobra.Command{
	Use:   "remotes",
	Short: "manage remote repository configurations",
}

// recordsSiblingPath derives an output file path from the input file path:
// /path/to/remotes.json + "_old_remotes" -> /path/to/remotes_old_remotes.json
func recordsSiblingPath(inputPath string, suffix string) string {
	stem := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	return filepath.Join(filepath.Dir(inputPath), stem+suffix+".json")
}

func init() {
	remotesCmd.AddCommand(
		remotesCreateCmd,
		remotesExportCmd,
		remotesRollbackCmd,
		remotesUpdateCmd,
	)
}
