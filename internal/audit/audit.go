// Package audit checks every remote repository on an instance against an
// allow-list of curation endpoints and disables the ones pointing elsewhere.
package audit

import (
	"context"
	"strings"

	"emperror.dev/errors"
	"github.com/danielw-jfrog/curation-tools/internal/artifactory"
	"github.com/sirupsen/logrus"
)

// Auditor runs the allow-list audit against one instance.
type Auditor struct {
	Client *artifactory.Client
	// AllowedPrefixes are the URL prefixes considered valid curation
	// endpoints.
	AllowedPrefixes []string
	// Note is written into the description of repositories that get
	// disabled.
	Note string
	// DryRun reports findings without modifying any repository.
	DryRun bool
}

// Summary is the result of a single audit pass.
type Summary struct {
	Checked  int `json:"checked"`
	Flagged  int `json:"flagged"`
	Disabled int `json:"disabled"`
	Skipped  int `json:"skipped"`
}

// Finding is one repository flagged by the audit.
type Finding struct {
	Key string
	URL string
}

// URLAllowed reports whether the URL points at one of the allowed curation
// endpoints. Matching is by prefix; an empty allow-list allows nothing.
func URLAllowed(url string, allowedPrefixes []string) bool {
	for _, prefix := range allowedPrefixes {
		if prefix != "" && strings.HasPrefix(url, prefix) {
			return true
		}
	}
	return false
}

// Run fetches all remote repository configurations and disables every
// repository whose URL is not an allowed curation endpoint. Failures to
// disable an individual repository are logged and counted as skipped; only
// the initial fetch is fatal.
func (a *Auditor) Run(ctx context.Context) (Summary, []Finding, error) {
	if len(a.AllowedPrefixes) == 0 {
		return Summary{}, nil, errors.Errorf("no allowed curation endpoints configured")
	}

	configs, err := a.Client.GetRepositoryConfigurations(ctx)
	if err != nil {
		return Summary{}, nil, errors.Wrap(err, "failed to fetch repository configurations")
	}

	var summary Summary
	var findings []Finding
	for _, repo := range configs.Remote {
		summary.Checked++
		if URLAllowed(repo.URL, a.AllowedPrefixes) {
			continue
		}
		summary.Flagged++
		findings = append(findings, Finding{Key: repo.Key, URL: repo.URL})
		log := logrus.WithFields(logrus.Fields{
			"repo": repo.Key,
			"url":  repo.URL,
		})
		log.Warning("remote repository is not using an approved curation endpoint")
		if a.DryRun {
			continue
		}
		if err := a.disable(ctx, repo); err != nil {
			log.WithError(err).Warning("failed to disable repository, skipping")
			summary.Skipped++
			continue
		}
		summary.Disabled++
	}
	return summary, findings, nil
}

func (a *Auditor) disable(ctx context.Context, repo artifactory.RemoteRepository) error {
	blackedOut := true
	description := a.Note
	if repo.Description != "" {
		description = repo.Description + "\n" + a.Note
	}
	return a.Client.UpdateRemoteRepository(ctx, artifactory.RemoteRepository{
		Key:         repo.Key,
		BlackedOut:  &blackedOut,
		Description: description,
	})
}
