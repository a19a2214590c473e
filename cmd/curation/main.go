package main

import (
	"fmt"
	"os"
	"strings"

	"emperror.dev/errors"
	"github.com/danielw-jfrog/curation-tools/internal/artifactory"
	"github.com/danielw-jfrog/curation-tools/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootFlags struct {
	Debug bool
	Host  string
	Token string
}

var RootCmd = &cobra.Command{
	Use:   "curation",
	Short: "tools for migrating Artifactory remote repositories to a curation-enabled instance",

	// Don't automatically print errors or usage information (we handle that ourselves).
	// Cobra still prints usage if you return cmd.Usage() from RunE.
	SilenceErrors: true,
	SilenceUsage:  true,

	// Don't show "completion" command in help menu
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},

	// Run setup before invoking any child commands.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if rootFlags.Debug {
			logrus.SetLevel(logrus.DebugLevel)
			logrus.WithField("version", config.Version).Debug("enabled debug logging")
		}

		// Note: this only returns an error if config exists and it can't be
		// read/parsed. It doesn't return an error if no config file exists.
		didLoadConfig, err := config.Load(nil)
		if err != nil {
			return errors.Wrap(err, "failed to load configuration")
		}
		if didLoadConfig {
			logrus.Debug("loaded configuration")
		} else {
			logrus.Debug("no configuration found")
		}

		// Explicit flags win over the config file and environment.
		if rootFlags.Host != "" {
			config.Curation.Artifactory.Host = rootFlags.Host
		}
		if rootFlags.Token != "" {
			config.Curation.Artifactory.Token = rootFlags.Token
		}

		return nil
	},
}

func init() {
	RootCmd.PersistentFlags().BoolVar(
		&rootFlags.Debug, "debug", false,
		"enable verbose debug logging",
	)
	RootCmd.PersistentFlags().StringVar(
		&rootFlags.Host, "host", "",
		"Artifactory host URL (e.g. https://artifactory.example.com); defaults to ARTIFACTORY_HOST",
	)
	RootCmd.PersistentFlags().StringVar(
		&rootFlags.Token, "token", "",
		"Artifactory auth token to use for requests; defaults to ARTIFACTORY_TOKEN",
	)
	RootCmd.AddCommand(
		auditCmd,
		convertCmd,
		policiesCmd,
		remotesCmd,
		tokensCmd,
		usersCmd,
		versionCmd,
	)
}

func main() {
	if err := RootCmd.Execute(); err != nil {

		// In debug mode, show more detailed information about the error
		// (including the stack trace if using pkg/errors).
		if rootFlags.Debug {
			stackTrace := fmt.Sprintf("%+v", err)
			_, _ = fmt.Fprintf(os.Stderr, "error: %s\n%s\n", err, indent(stackTrace, "\t"))
		} else {
			_, _ = fmt.Fprintf(os.Stderr, "error: %s\n", err)
		}

		os.Exit(1)
	}
}

func indent(s string, prefix string) string {
	// why is this not in the stdlib????
	return prefix + strings.Replace(s, "\n", "\n"+prefix, -1)
}

func getClient() (*artifactory.Client, error) {
	return artifactory.NewClient(
		config.Curation.Artifactory.Host,
		config.Curation.Artifactory.Token,
	)
}
