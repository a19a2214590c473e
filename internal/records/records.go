package records

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"strings"

	"emperror.dev/errors"
	"github.com/sirupsen/logrus"
)

// Record is a single remote repository entry as carried between the
// conversion, create, and update commands.
type Record struct {
	Key         string `json:"key"`
	Type        string `json:"type"`
	URL         string `json:"url"`
	PackageType string `json:"packageType"`
	Description string `json:"description,omitempty"`
}

// TypeRemote is the only repository type these tools produce.
const TypeRemote = "REMOTE"

// csvHeader is the canonical column order for record CSV files.
var csvHeader = []string{"key", "type", "url", "packageType", "description"}

// knownPackageTypes are the package types Artifactory accepts for remote
// repositories. Anything else gets normalized to "generic".
var knownPackageTypes = map[string]bool{
	"alpine": true, "cargo": true, "composer": true, "bower": true,
	"chef": true, "cocoapods": true, "conan": true, "cran": true,
	"debian": true, "docker": true, "helm": true, "gems": true,
	"gitlfs": true, "go": true, "gradle": true, "ivy": true,
	"maven": true, "npm": true, "nuget": true, "opkg": true,
	"pub": true, "puppet": true, "pypi": true, "rpm": true,
	"sbt": true, "swift": true, "terraform": true, "vagrant": true,
	"yum": true, "generic": true,
}

// NormalizePackageType lowercases the given package type and falls back to
// "generic" if Artifactory wouldn't accept it.
func NormalizePackageType(packageType string) string {
	normalized := strings.ToLower(packageType)
	if !knownPackageTypes[normalized] {
		return "generic"
	}
	return normalized
}

// ReadJSON reads a JSON file containing a list of records.
func ReadJSON(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %q", path)
	}
	var recs []Record
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, errors.Wrapf(err, "failed to parse %q", path)
	}
	return recs, nil
}

// WriteJSON writes the records to a JSON file (two-space indented, the same
// format the original migration files use).
func WriteJSON(path string, recs []Record) error {
	data, err := json.MarshalIndent(recs, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal records")
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return errors.Wrapf(err, "failed to write %q", path)
	}
	return nil
}

// ReadCSV reads a CSV file with a header row into records. Column names are
// matched against the canonical header; unknown columns are ignored.
func ReadCSV(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %q", path)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse %q", path)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	columns := map[string]int{}
	for i, name := range rows[0] {
		columns[strings.TrimSpace(name)] = i
	}
	field := func(row []string, name string) string {
		i, ok := columns[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	var recs []Record
	for _, row := range rows[1:] {
		recs = append(recs, Record{
			Key:         field(row, "key"),
			Type:        field(row, "type"),
			URL:         field(row, "url"),
			PackageType: field(row, "packageType"),
			Description: field(row, "description"),
		})
	}
	logrus.WithField("count", len(recs)).Debug("read records from CSV")
	return recs, nil
}

// WriteCSV writes the records to a CSV file with the canonical header.
// Missing fields serialize as empty strings.
func WriteCSV(path string, recs []Record) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create %q", path)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(csvHeader); err != nil {
		return errors.Wrap(err, "failed to write CSV header")
	}
	for _, rec := range recs {
		row := []string{rec.Key, rec.Type, rec.URL, rec.PackageType, rec.Description}
		if err := writer.Write(row); err != nil {
			return errors.Wrap(err, "failed to write CSV row")
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return errors.Wrapf(err, "failed to write %q", path)
	}
	return nil
}

// Slice clamps the start/stop indexes the same way the migration commands
// document them: start defaults to 0, stop defaults to len(recs), and
// out-of-range values fall back to the defaults. The stop index is exclusive.
func Slice(recs []Record, start, stop int) []Record {
	limit := len(recs)
	first := 0
	last := limit
	if start > 0 && start < limit {
		first = start
	}
	if stop >= first && stop < limit {
		last = stop
	}
	return recs[first:last]
}
