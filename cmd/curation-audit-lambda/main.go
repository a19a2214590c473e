// Command curation-audit-lambda runs the remote repository audit on a
// schedule (an EventBridge rule). Configuration comes from the environment:
//
//	ARTIFACTORY_HOST          base URL of the instance
//	ARTIFACTORY_TOKEN         auth token
//	CURATION_ALLOWED_PREFIXES comma-separated allowed curation endpoint prefixes
//	AUDIT_DRY_RUN             set to "true" to report without disabling
package main

import (
	"context"
	"os"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/danielw-jfrog/curation-tools/internal/artifactory"
	"github.com/danielw-jfrog/curation-tools/internal/audit"
	"github.com/danielw-jfrog/curation-tools/internal/config"
	"github.com/sirupsen/logrus"
)

func handler(ctx context.Context, event events.CloudWatchEvent) (audit.Summary, error) {
	logrus.WithFields(logrus.Fields{
		"source":      event.Source,
		"detail_type": event.DetailType,
	}).Info("starting curation audit")

	client, err := artifactory.NewClient(
		os.Getenv("ARTIFACTORY_HOST"),
		os.Getenv("ARTIFACTORY_TOKEN"),
	)
	if err != nil {
		return audit.Summary{}, err
	}

	var allowedPrefixes []string
	for _, prefix := range strings.Split(os.Getenv("CURATION_ALLOWED_PREFIXES"), ",") {
		if prefix = strings.TrimSpace(prefix); prefix != "" {
			allowedPrefixes = append(allowedPrefixes, prefix)
		}
	}

	auditor := &audit.Auditor{
		Client:          client,
		AllowedPrefixes: allowedPrefixes,
		Note:            config.Curation.Audit.QuarantineNote,
		DryRun:          strings.EqualFold(os.Getenv("AUDIT_DRY_RUN"), "true"),
	}
	summary, findings, err := auditor.Run(ctx)
	if err != nil {
		return audit.Summary{}, err
	}
	for _, finding := range findings {
		logrus.WithFields(logrus.Fields{
			"repo": finding.Key,
			"url":  finding.URL,
		}).Warning("flagged remote repository")
	}
	logrus.WithFields(logrus.Fields{
		"checked":  summary.Checked,
		"flagged":  summary.Flagged,
		"disabled": summary.Disabled,
		"skipped":  summary.Skipped,
	}).Info("curation audit finished")
	return summary, nil
}

func main() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	lambda.Start(handler)
}
