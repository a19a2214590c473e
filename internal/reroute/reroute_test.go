package reroute

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPyPIRegistryURL(t *testing.T) {
	for _, tt := range []struct {
		name     string
		repoURL  string
		expected string
	}{
		{
			name:     "public upstream",
			repoURL:  "https://pypi.org",
			expected: "https://pypi.org",
		},
		{
			name:     "smart repo",
			repoURL:  "https://mycompany.jfrog.io/artifactory/pypi-curated",
			expected: "https://mycompany.jfrog.io/artifactory/api/pypi/pypi-curated/",
		},
		{
			name:     "smart repo with trailing path",
			repoURL:  "https://mycompany.jfrog.io/artifactory/pypi-curated/simple",
			expected: "https://mycompany.jfrog.io/artifactory/api/pypi/pypi-curated/simple/",
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, PyPIRegistryURL(tt.repoURL))
		})
	}
}

func TestNPMRemoteURL(t *testing.T) {
	for _, tt := range []struct {
		name     string
		repoURL  string
		expected string
	}{
		{
			name:     "public upstream unchanged",
			repoURL:  "https://registry.npmjs.org",
			expected: "https://registry.npmjs.org",
		},
		{
			name:     "smart repo",
			repoURL:  "https://mycompany.jfrog.io/artifactory/npm-curated",
			expected: "https://mycompany.jfrog.io/artifactory/api/npm/npm-curated",
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NPMRemoteURL(tt.repoURL))
		})
	}
}

func TestForPackageType(t *testing.T) {
	for _, tt := range []struct {
		name        string
		packageType string
		url         string
		expected    Update
	}{
		{
			name:        "pypi gets a registry url",
			packageType: "Pypi",
			url:         "https://mycompany.jfrog.io/artifactory/pypi-curated",
			expected: Update{
				URL:             "https://mycompany.jfrog.io/artifactory/pypi-curated",
				PyPIRegistryURL: "https://mycompany.jfrog.io/artifactory/api/pypi/pypi-curated/",
			},
		},
		{
			name:        "pypi against public index",
			packageType: "pypi",
			url:         "https://files.pythonhosted.org",
			expected: Update{
				URL:             "https://files.pythonhosted.org",
				PyPIRegistryURL: "https://pypi.org",
			},
		},
		{
			name:        "npm gets the api form",
			packageType: "npm",
			url:         "https://mycompany.jfrog.io/artifactory/npm-curated",
			expected: Update{
				URL: "https://mycompany.jfrog.io/artifactory/api/npm/npm-curated",
			},
		},
		{
			name:        "other types pass through",
			packageType: "maven",
			url:         "https://mycompany.jfrog.io/artifactory/maven-curated",
			expected: Update{
				URL: "https://mycompany.jfrog.io/artifactory/maven-curated",
			},
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ForPackageType(tt.packageType, tt.url))
		})
	}
}
