package main

import (
	"github.com/spf13/cobra"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show the items on your wishlist",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.connect(cmd.Context()); err != nil {
				return err
			}
			if !a.requireAuth() {
				return nil
			}

			if err := a.ctrl.FetchAll(cmd.Context()); err != nil {
				return err
			}
			printItems(a.out, a.ctrl.Items())
			return nil
		},
	}
}
