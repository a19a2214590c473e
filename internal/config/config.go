package config

import (
	"os"
	"path/filepath"

	"emperror.dev/errors"
	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

type Artifactory struct {
	// Host is the base URL of the JFrog platform instance
	// (e.g., https://mycompany.jfrog.io).
	Host  string
	Token string
}

type Audit struct {
	// AllowedPrefixes is the set of URL prefixes considered valid curation
	// endpoints. Remote repositories whose URL doesn't start with one of
	// these are flagged (and disabled, unless running a dry-run audit).
	AllowedPrefixes []string
	// QuarantineNote is appended to the description of repositories the
	// audit disables.
	QuarantineNote string
}

var Curation = struct {
	Artifactory Artifactory
	Audit       Audit
}{
	Audit: Audit{
		QuarantineNote: "[curation audit] disabled: repository URL is not an approved curation endpoint",
	},
}

// Load initializes the configuration values.
// It may optionally be called with a list of additional paths to check for
// the config file.
// Returns a boolean indicating whether or not a config file was loaded and an
// error if one occurred.
func Load(paths []string) (bool, error) {
	loaded, err := loadFromFile(paths)
	loadFromEnv()
	return loaded, err
}

func loadFromFile(paths []string) (bool, error) {
	config := viper.New()

	// Viper supports json, toml, yaml, and more
	// (https://github.com/spf13/viper#reading-config-files).
	config.SetConfigName("config")

	// Reasonable places to look for config files.
	config.AddConfigPath(filepath.Join(xdg.ConfigHome, "curation"))
	config.AddConfigPath("$HOME/.config/curation")
	config.AddConfigPath("$HOME/.curation")
	for _, path := range paths {
		config.AddConfigPath(path)
	}

	if err := config.ReadInConfig(); err != nil {
		if errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return false, nil
		}
		return false, err
	}

	if err := config.Unmarshal(&Curation); err != nil {
		return true, errors.Wrap(err, "failed to read curation configs")
	}

	return true, nil
}

func loadFromEnv() {
	if host := os.Getenv("ARTIFACTORY_HOST"); host != "" {
		Curation.Artifactory.Host = host
	}
	if token := os.Getenv("ARTIFACTORY_TOKEN"); token != "" {
		Curation.Artifactory.Token = token
	}
}
