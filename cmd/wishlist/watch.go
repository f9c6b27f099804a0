package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/EASS-HIT-PART-A-2025-CLASS-VII/DealHunt/internal/domain"
)

func newWatchCmd(a *app) *cobra.Command {
	var interval time.Duration
	var metricsAddr string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Poll the wishlist and print changes until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := a.connect(ctx); err != nil {
				return err
			}
			if !a.requireAuth() {
				return nil
			}

			if metricsAddr != "" {
				stop := serveMetrics(metricsAddr, a)
				defer stop()
			}

			return a.watch(ctx, interval)
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", 30*time.Second, "time between fetches")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve client metrics on this address (e.g. :9091)")
	return cmd
}

func (a *app) watch(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var prev map[string]domain.WishlistItem
	for {
		if err := a.ctrl.FetchAll(ctx); err != nil {
			// Keep polling; the next tick is the retry.
			failure(a.out, "%s", err.Error())
		} else {
			prev = a.printDiff(prev)
		}

		select {
		case <-ctx.Done():
			a.ctrl.Close()
			return nil
		case <-ticker.C:
		}
	}
}

// printDiff prints the items added and removed since prev and returns the
// current set. The first call prints the whole list.
func (a *app) printDiff(prev map[string]domain.WishlistItem) map[string]domain.WishlistItem {
	items := a.ctrl.Items()
	cur := make(map[string]domain.WishlistItem, len(items))
	for _, it := range items {
		cur[it.ID] = it
	}

	if prev == nil {
		printItems(a.out, items)
		return cur
	}

	for _, it := range items {
		if _, ok := prev[it.ID]; !ok {
			success(a.out, "+ %s %s (%s)", it.ID, it.Title, formatPrice(it.SalePrice))
		}
	}
	for id, it := range prev {
		if _, ok := cur[id]; !ok {
			warning(a.out, "- %s %s", id, it.Title)
		}
	}
	return cur
}

func serveMetrics(addr string, a *app) func() {
	mux := http.NewServeMux()
	mux.Handle("GET /metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error().Err(err).Str("addr", addr).Msg("Metrics server failed")
		}
	}()
	fmt.Fprintln(a.out, subtleStyle.Render("metrics on "+addr+"/metrics"))

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}
