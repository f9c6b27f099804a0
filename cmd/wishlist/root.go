package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/EASS-HIT-PART-A-2025-CLASS-VII/DealHunt/config"
	"github.com/EASS-HIT-PART-A-2025-CLASS-VII/DealHunt/internal/domain"
	"github.com/EASS-HIT-PART-A-2025-CLASS-VII/DealHunt/internal/storeclient"
	"github.com/EASS-HIT-PART-A-2025-CLASS-VII/DealHunt/internal/wishlistsync"
	"github.com/EASS-HIT-PART-A-2025-CLASS-VII/DealHunt/pkg/logger"
)

// app is the state shared by all subcommands of one invocation.
type app struct {
	out    io.Writer
	cfg    *config.ClientConfig
	log    zerolog.Logger
	client *storeclient.Client
	ctrl   *wishlistsync.Controller
	user   *domain.User
}

func newRootCmd(out io.Writer) *cobra.Command {
	a := &app{out: out}
	var apiURL, token string

	root := &cobra.Command{
		Use:   "wishlist",
		Short: "Manage your DealHunt wishlist from the terminal",
		Long: `wishlist - keeps a local copy of your DealHunt wishlist in sync with the API.

Credentials come from --token, DEALHUNT_TOKEN, or a .env file.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			a.cfg = config.LoadClientConfig()
			if cmd.Flags().Changed("api-url") {
				a.cfg.APIURL = apiURL
			}
			if cmd.Flags().Changed("token") {
				a.cfg.Token = token
			}
			logger.InitTo(os.Stderr, a.cfg.Env, a.cfg.LogLevel)
			a.log = logger.Component("wishlist-cli")
			a.client = storeclient.New(clientConfig(a.cfg), storeclient.StaticToken(a.cfg.Token), a.log)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.ctrl != nil {
				a.ctrl.Close()
			}
		},
	}
	root.SetOut(out)

	root.PersistentFlags().StringVar(&apiURL, "api-url", "", "DealHunt API base URL (default $DEALHUNT_API_URL)")
	root.PersistentFlags().StringVar(&token, "token", "", "access token (default $DEALHUNT_TOKEN)")

	root.AddCommand(
		newListCmd(a),
		newRemoveCmd(a),
		newNotifyCmd(a),
		newWatchCmd(a),
		newLoginCmd(a),
	)
	return root
}

func clientConfig(cfg *config.ClientConfig) storeclient.Config {
	sc := storeclient.DefaultConfig(cfg.APIURL)
	sc.Timeout = cfg.Timeout
	sc.Breaker.MaxRequests = cfg.BreakerMaxRequests
	sc.Breaker.Interval = cfg.BreakerInterval
	sc.Breaker.Timeout = cfg.BreakerTimeout
	sc.Breaker.FailureRatio = cfg.BreakerFailureRatio
	sc.Breaker.MinRequests = cfg.BreakerMinRequests
	return sc
}

// connect resolves the session and mounts the controller. An expired or
// missing token leaves the controller unauthenticated rather than failing.
func (a *app) connect(ctx context.Context) error {
	auth := wishlistsync.Auth{}
	if a.cfg.Token != "" {
		user, err := a.client.GetProfile(ctx)
		switch {
		case err == nil:
			a.user = user
			auth = wishlistsync.Auth{Authenticated: true, User: user}
		case errors.Is(err, domain.ErrUnauthorized):
			a.log.Warn().Err(err).Msg("Stored token rejected")
		default:
			return fmt.Errorf("load profile: %w", err)
		}
	}

	a.ctrl = wishlistsync.New(a.client, auth,
		wishlistsync.WithLogger(a.log),
		wishlistsync.WithReconcileDelay(a.cfg.ReconcileDelay),
		wishlistsync.WithPreferences(wishlistsync.NewPreferenceSync(a.client, a.user.WantsPriceDrops(), a.log)),
	)
	return nil
}

func (a *app) requireAuth() bool {
	if a.user != nil {
		return true
	}
	warning(a.out, "Please log in to view your wishlist.")
	return false
}
