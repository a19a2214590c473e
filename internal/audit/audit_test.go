package audit

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielw-jfrog/curation-tools/internal/artifactory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURLAllowed(t *testing.T) {
	allowed := []string{
		"https://curation.mycompany.jfrog.io/artifactory/",
		"https://backup.mycompany.jfrog.io/artifactory/",
	}
	for _, tt := range []struct {
		name     string
		url      string
		expected bool
	}{
		{
			name:     "allowed endpoint",
			url:      "https://curation.mycompany.jfrog.io/artifactory/npm-curated",
			expected: true,
		},
		{
			name:     "second allowed endpoint",
			url:      "https://backup.mycompany.jfrog.io/artifactory/pypi-curated",
			expected: true,
		},
		{
			name:     "public registry",
			url:      "https://registry.npmjs.org",
			expected: false,
		},
		{
			name:     "prefix must match from the start",
			url:      "https://evil.example.com/?https://curation.mycompany.jfrog.io/artifactory/",
			expected: false,
		},
		{
			name:     "empty url",
			url:      "",
			expected: false,
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, URLAllowed(tt.url, allowed))
		})
	}

	assert.False(t, URLAllowed("https://anything.example.com", nil), "empty allow-list allows nothing")
	assert.False(t, URLAllowed("https://anything.example.com", []string{""}), "blank prefix allows nothing")
}

const configurationsResponse = `{
	"REMOTE": [
		{"key": "npm-good", "type": "remote", "packageType": "npm", "url": "https://curation.mycompany.jfrog.io/artifactory/api/npm/npm-curated"},
		{"key": "npm-bad", "type": "remote", "packageType": "npm", "url": "https://registry.npmjs.org", "description": "proxy of npmjs"}
	]
}`

func TestRunDisablesInvalidRepos(t *testing.T) {
	var updates []map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == "GET" && r.URL.Path == "/artifactory/api/repositories/configurations":
			_, _ = w.Write([]byte(configurationsResponse))
		case r.Method == "POST":
			var body map[string]interface{}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			body["_path"] = r.URL.Path
			updates = append(updates, body)
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client, err := artifactory.NewClient(server.URL, "test-token")
	require.NoError(t, err)

	auditor := &Auditor{
		Client:          client,
		AllowedPrefixes: []string{"https://curation.mycompany.jfrog.io/artifactory/"},
		Note:            "[curation audit] disabled",
	}
	summary, findings, err := auditor.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, Summary{Checked: 2, Flagged: 1, Disabled: 1}, summary)
	require.Len(t, findings, 1)
	assert.Equal(t, "npm-bad", findings[0].Key)

	require.Len(t, updates, 1)
	assert.Equal(t, "/artifactory/api/repositories/npm-bad", updates[0]["_path"])
	assert.Equal(t, true, updates[0]["blackedOut"])
	assert.Equal(t, "proxy of npmjs\n[curation audit] disabled", updates[0]["description"])
}

func TestRunDryRun(t *testing.T) {
	var posts int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == "POST" {
			posts++
			return
		}
		_, _ = w.Write([]byte(configurationsResponse))
	}))
	defer server.Close()

	client, err := artifactory.NewClient(server.URL, "test-token")
	require.NoError(t, err)

	auditor := &Auditor{
		Client:          client,
		AllowedPrefixes: []string{"https://curation.mycompany.jfrog.io/artifactory/"},
		DryRun:          true,
	}
	summary, findings, err := auditor.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, Summary{Checked: 2, Flagged: 1}, summary)
	assert.Len(t, findings, 1)
	assert.Zero(t, posts, "dry-run must not modify repositories")
}

func TestRunSkipsFailedDisables(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == "POST" {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(configurationsResponse))
	}))
	defer server.Close()

	client, err := artifactory.NewClient(server.URL, "test-token")
	require.NoError(t, err)

	auditor := &Auditor{
		Client:          client,
		AllowedPrefixes: []string{"https://curation.mycompany.jfrog.io/artifactory/"},
	}
	summary, _, err := auditor.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Summary{Checked: 2, Flagged: 1, Skipped: 1}, summary)
}

func TestRunRequiresAllowList(t *testing.T) {
	auditor := &Auditor{}
	_, _, err := auditor.Run(context.Background())
	assert.Error(t, err)
}
