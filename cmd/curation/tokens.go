package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"emperror.dev/errors"
	"github.com/danielw-jfrog/curation-tools/internal/artifactory"
	"github.com/danielw-jfrog/curation-tools/internal/utils/colors"
	"github.com/spf13/cobra"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens",
	Short: "manage short-lived access tokens",
}

var tokensCreateFlags struct {
	Username    string
	Scope       string
	ExpiresIn   int64
	Description string
}

var tokensCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "create a short-lived revocable access token",
	RunE: func(cmd *cobra.Command, args []string) error {
		if tokensCreateFlags.Username == "" {
			return errors.Errorf("no username provided")
		}

		client, err := getClient()
		if err != nil {
			return err
		}

		token, err := client.CreateToken(context.Background(), artifactory.TokenRequest{
			Username:              tokensCreateFlags.Username,
			Scope:                 tokensCreateFlags.Scope,
			ExpiresIn:             tokensCreateFlags.ExpiresIn,
			Description:           tokensCreateFlags.Description,
			IncludeReferenceToken: true,
			ForceRevokable:        true,
		})
		if err != nil {
			return errors.Wrap(err, "failed to create access token")
		}

		data, err := json.MarshalIndent(token, "", "  ")
		if err != nil {
			return errors.Wrap(err, "failed to marshal token response")
		}
		fmt.Println(string(data))
		return nil
	},
}

var tokensRevokeCmd = &cobra.Command{
	Use:   "revoke <token-id>",
	Short: "revoke an access token",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := getClient()
		if err != nil {
			return err
		}
		if err := client.RevokeToken(context.Background(), args[0]); err != nil {
			return errors.Wrap(err, "failed to revoke access token")
		}
		_, _ = fmt.Fprint(
			os.Stderr,
			"Revoked token ", colors.UserInput(args[0]), "\n",
		)
		return nil
	},
}

func init() {
	tokensCreateCmd.Flags().StringVar(
		&tokensCreateFlags.Username, "username", "",
		"username to scope the token to",
	)
	tokensCreateCmd.Flags().StringVar(
		&tokensCreateFlags.Scope, "scope", "applied-permissions/user",
		"token scope",
	)
	tokensCreateCmd.Flags().Int64Var(
		&tokensCreateFlags.ExpiresIn, "expires-in", 600,
		"token lifetime in seconds",
	)
	tokensCreateCmd.Flags().StringVar(
		&tokensCreateFlags.Description, "description", "",
		"token description",
	)
	tokensCmd.AddCommand(
		tokensCreateCmd,
		tokensRevokeCmd,
	)
}
