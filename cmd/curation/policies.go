package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"emperror.dev/errors"
	"github.com/danielw-jfrog/curation-tools/internal/policies"
	"github.com/danielw-jfrog/curation-tools/internal/utils/colors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var policiesCmd = &cobra.Command{
	Use:   "policies",
	Short: "manage curation conditions and policies",
}

var policiesApplyCmd = &cobra.Command{
	Use:   "apply <policies.json>",
	Short: "sync curation conditions and policies from a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return errors.Wrapf(err, "failed to read %q", args[0])
		}
		var input policies.File
		if err := json.Unmarshal(data, &input); err != nil {
			return errors.Wrapf(err, "failed to parse %q", args[0])
		}

		client, err := getClient()
		if err != nil {
			return err
		}
		ctx := context.Background()

		currentConditions, err := client.ListConditions(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to list curation conditions")
		}
		conditionsToUpdate, conditionsToCreate := policies.DiffConditions(input.Conditions, currentConditions)

		for _, condition := range conditionsToUpdate {
			if err := client.UpdateCondition(ctx, condition); err != nil {
				logrus.WithField("condition", condition.Name).WithError(err).Warning("failed to update condition, skipping")
			}
		}
		for _, condition := range conditionsToCreate {
			if err := client.CreateCondition(ctx, condition); err != nil {
				logrus.WithField("condition", condition.Name).WithError(err).Warning("failed to create condition, skipping")
			}
		}

		// Re-list so newly created conditions have valid ids to resolve
		// policy references against.
		currentConditions, err = client.ListConditions(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to re-list curation conditions")
		}

		currentPolicies, err := client.ListPolicies(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to list curation policies")
		}
		input.Policies = policies.ResolveConditionIDs(input.Policies, currentConditions)
		policiesToUpdate, policiesToCreate := policies.DiffPolicies(input.Policies, currentPolicies)

		for _, policy := range policiesToUpdate {
			if err := client.UpdatePolicy(ctx, policy); err != nil {
				logrus.WithField("policy", policy.Name).WithError(err).Warning("failed to update policy, skipping")
			}
		}
		for _, policy := range policiesToCreate {
			if err := client.CreatePolicy(ctx, policy); err != nil {
				logrus.WithField("policy", policy.Name).WithError(err).Warning("failed to create policy, skipping")
			}
		}

		_, _ = fmt.Fprint(
			os.Stderr,
			"Conditions: ", colors.Success(len(conditionsToCreate)), " created, ",
			colors.UserInput(len(conditionsToUpdate)), " updated",
			"\n",
			"Policies: ", colors.Success(len(policiesToCreate)), " created, ",
			colors.UserInput(len(policiesToUpdate)), " updated",
			"\n",
		)
		return nil
	},
}

func init() {
	policiesCmd.AddCommand(policiesApplyCmd)
}
