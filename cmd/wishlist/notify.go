package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func newNotifyCmd(a *app) *cobra.Command {
	notify := &cobra.Command{
		Use:   "notify",
		Short: "Show whether price drop alerts are enabled",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.connect(cmd.Context()); err != nil {
				return err
			}
			if !a.requireAuth() {
				return nil
			}
			fmt.Fprintf(a.out, "Price drop alerts: %s\n", onOff(a.ctrl.Preferences().Enabled()))
			return nil
		},
	}

	notify.AddCommand(&cobra.Command{
		Use:   "toggle",
		Short: "Turn price drop alerts on or off",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.connect(cmd.Context()); err != nil {
				return err
			}
			if !a.requireAuth() {
				return nil
			}

			prefs := a.ctrl.Preferences()
			if err := prefs.Toggle(cmd.Context()); err != nil {
				return err
			}
			success(a.out, "Price drop alerts: %s", onOff(prefs.Enabled()))
			return nil
		},
	})
	return notify
}
