package records

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePackageType(t *testing.T) {
	for _, tt := range []struct {
		input    string
		expected string
	}{
		{"npm", "npm"},
		{"Pypi", "pypi"},
		{"PYPI", "pypi"},
		{"maven", "maven"},
		{"not-a-real-type", "generic"},
		{"", "generic"},
	} {
		assert.Equal(t, tt.expected, NormalizePackageType(tt.input), "input %q", tt.input)
	}
}

func TestSlice(t *testing.T) {
	recs := []Record{{Key: "a"}, {Key: "b"}, {Key: "c"}, {Key: "d"}}
	for _, tt := range []struct {
		name     string
		start    int
		stop     int
		expected []string
	}{
		{name: "defaults", start: 0, stop: -1, expected: []string{"a", "b", "c", "d"}},
		{name: "start only", start: 2, stop: -1, expected: []string{"c", "d"}},
		{name: "start and stop", start: 1, stop: 3, expected: []string{"b", "c"}},
		{name: "start out of range", start: 10, stop: -1, expected: []string{"a", "b", "c", "d"}},
		{name: "stop before start ignored", start: 2, stop: 1, expected: []string{"c", "d"}},
		{name: "stop at last index", start: 0, stop: 3, expected: []string{"a", "b", "c"}},
	} {
		t.Run(tt.name, func(t *testing.T) {
			var keys []string
			for _, rec := range Slice(recs, tt.start, tt.stop) {
				keys = append(keys, rec.Key)
			}
			assert.Equal(t, tt.expected, keys)
		})
	}
}

func TestJSONRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "remotes.json")
	recs := []Record{
		{Key: "npm-remote", Type: TypeRemote, URL: "https://registry.npmjs.org", PackageType: "npm"},
		{Key: "pypi-remote", Type: TypeRemote, URL: "https://pypi.org", PackageType: "pypi", Description: "proxy of pypi"},
	}
	require.NoError(t, WriteJSON(path, recs))

	parsed, err := ReadJSON(path)
	require.NoError(t, err)
	assert.Equal(t, recs, parsed)
}

func TestCSVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "remotes.csv")
	recs := []Record{
		{Key: "npm-remote", Type: TypeRemote, URL: "https://registry.npmjs.org", PackageType: "npm"},
		{Key: "maven-remote", Type: TypeRemote, URL: "https://repo1.maven.org/maven2", PackageType: "maven", Description: "has, a comma"},
	}
	require.NoError(t, WriteCSV(path, recs))

	parsed, err := ReadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, recs, parsed)
}

func TestReadCSVIgnoresUnknownColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "remotes.csv")
	contents := "key,notes,url,packageType,type\n" +
		"my-repo,something else,https://example.com,npm,REMOTE\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	parsed, err := ReadCSV(path)
	require.NoError(t, err)
	require.Len(t, parsed, 1)
	assert.Equal(t, Record{
		Key:         "my-repo",
		Type:        TypeRemote,
		URL:         "https://example.com",
		PackageType: "npm",
	}, parsed[0])
}

func TestReadCSVShortRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "remotes.csv")
	contents := "key,type,url,packageType,description\n" +
		"my-repo,REMOTE,https://example.com,npm\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	parsed, err := ReadCSV(path)
	require.NoError(t, err)
	require.Len(t, parsed, 1)
	assert.Empty(t, parsed[0].Description)
}
