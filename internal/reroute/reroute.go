// Package reroute implements the per-package-type URL rewrites needed when
// pointing a remote repository at a curation-enabled Artifactory instance.
package reroute

import (
	"strings"
)

// Certain package clients need the repository URL in a specific shape:
// npm talks to the /artifactory/api/npm/<repo> endpoint, and pip needs a
// separate registry URL under /artifactory/api/pypi/<repo>/ while the repo
// URL itself stays in the plain form.

// Update is the set of fields to send for a single remote repository update.
type Update struct {
	URL             string
	PyPIRegistryURL string
}

// ForPackageType computes the update payload for a remote repository with the
// given package type and target URL.
func ForPackageType(packageType, url string) Update {
	switch {
	case IsPyPI(packageType):
		return Update{URL: url, PyPIRegistryURL: PyPIRegistryURL(url)}
	case strings.EqualFold(packageType, "npm"):
		return Update{URL: NPMRemoteURL(url)}
	default:
		return Update{URL: url}
	}
}

// IsPyPI reports whether the package type is pypi, in any capitalization.
func IsPyPI(packageType string) bool {
	return strings.EqualFold(packageType, "pypi")
}

// PyPIRegistryURL returns the registry URL to configure for a pypi remote
// with the given repository URL. Plain upstreams use the public index; smart
// repos on a .jfrog.io instance use the instance's api/pypi endpoint for the
// same repository, with a trailing slash.
func PyPIRegistryURL(repoURL string) string {
	if !strings.Contains(repoURL, ".jfrog.io") {
		return "https://pypi.org"
	}
	// https://xxx.jfrog.io/artifactory/repo-name
	//   -> https://xxx.jfrog.io/artifactory/api/pypi/repo-name/
	parts := strings.Split(repoURL, "/")
	if len(parts) < 5 {
		return "https://pypi.org"
	}
	parts = append(parts[:4], append([]string{"api", "pypi"}, parts[4:]...)...)
	parts = append(parts, "")
	return strings.Join(parts, "/")
}

// NPMRemoteURL returns the repository URL to configure for an npm remote.
// Smart repos on a .jfrog.io instance must use the api/npm form of the URL;
// other upstreams pass through unchanged.
func NPMRemoteURL(repoURL string) string {
	if !strings.Contains(repoURL, ".jfrog.io") {
		return repoURL
	}
	parts := strings.Split(repoURL, "/")
	if len(parts) < 5 {
		return repoURL
	}
	parts = append(parts[:4], append([]string{"api", "npm"}, parts[4:]...)...)
	return strings.Join(parts, "/")
}
