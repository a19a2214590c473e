package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"emperror.dev/errors"
	"github.com/danielw-jfrog/curation-tools/internal/utils/colors"
	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "inspect users on the instance",
}

var usersActiveFlags struct {
	Days int
}

var usersActiveCmd = &cobra.Command{
	Use:   "active",
	Short: "list enabled users and when they last logged in",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := getClient()
		if err != nil {
			return err
		}

		ctx := context.Background()
		users, err := client.ListUsers(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to list users")
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Username", "Last Logged In"})
		recentCount := 0
		cutoff := time.Now().AddDate(0, 0, -usersActiveFlags.Days)
		for _, user := range users {
			if user.Status != "enabled" {
				continue
			}
			lastLoggedIn, err := client.GetLastLoggedIn(ctx, user.Username)
			if err != nil {
				logrus.WithField("username", user.Username).WithError(err).Warning("failed to fetch user details, skipping")
				continue
			}
			if lastLoggedIn == nil {
				table.Append([]string{user.Username, "never"})
				continue
			}
			table.Append([]string{user.Username, lastLoggedIn.Format(time.RFC3339)})
			if usersActiveFlags.Days > 0 && lastLoggedIn.After(cutoff) {
				recentCount++
			}
		}
		table.Render()

		if usersActiveFlags.Days > 0 {
			_, _ = fmt.Fprint(
				os.Stderr,
				colors.UserInput(recentCount),
				" users logged in within the last ",
				colors.UserInput(usersActiveFlags.Days), " days",
				"\n",
			)
		}
		return nil
	},
}

func init() {
	usersActiveCmd.Flags().IntVar(
		&usersActiveFlags.Days, "days", 0,
		"count users that logged in within this many days",
	)
	usersCmd.AddCommand(usersActiveCmd)
}
