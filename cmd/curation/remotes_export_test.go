package main

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemotesExportEmptyInstanceWritesEmptyList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/artifactory/api/repositories/configurations", r.URL.Path)
		_, _ = w.Write([]byte(`{"LOCAL": [], "REMOTE": [], "VIRTUAL": []}`))
	}))
	defer server.Close()

	outputPath := filepath.Join(t.TempDir(), "remotes.json")
	err := runCommand(t,
		"remotes", "export",
		"--host", server.URL,
		"--token", "test-token",
		"--format", "json",
		"-o", outputPath,
	)
	require.NoError(t, err)

	// Downstream tooling expects a JSON list even with zero remotes.
	data, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}

func TestRemotesExportFiltersByPackageType(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"REMOTE": [
				{"key": "npm-remote", "type": "remote", "packageType": "npm", "url": "https://registry.npmjs.org"},
				{"key": "pypi-remote", "type": "remote", "packageType": "pypi", "url": "https://pypi.org"}
			]
		}`))
	}))
	defer server.Close()

	outputPath := filepath.Join(t.TempDir(), "npm-remotes.json")
	err := runCommand(t,
		"remotes", "export",
		"--host", server.URL,
		"--token", "test-token",
		"--format", "json",
		"--package-type", "npm",
		"-o", outputPath,
	)
	require.NoError(t, err)

	data, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "npm-remote")
	assert.NotContains(t, string(data), "pypi-remote")
}
