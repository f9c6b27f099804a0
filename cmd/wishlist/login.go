package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLoginCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "login <email>",
		Short: "Request an access token for an existing account",
		Long: `Request an access token and print it. Export it as DEALHUNT_TOKEN to use
it with the other commands.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := a.client.IssueToken(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}
			fmt.Fprintln(a.out, token)
			return nil
		},
	}
}
