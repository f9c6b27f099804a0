package main

import (
	"fmt"
	"sync"

	"github.com/spf13/cobra"

	"github.com/EASS-HIT-PART-A-2025-CLASS-VII/DealHunt/internal/domain"
	"github.com/EASS-HIT-PART-A-2025-CLASS-VII/DealHunt/internal/wishlistsync"
)

func newRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id>...",
		Aliases: []string{"rm"},
		Short:   "Remove one or more items from your wishlist",
		Long: `Remove items by id. Distinct ids are removed concurrently; an id given
twice is only sent once.

Examples:
  wishlist remove 65f1c0ffee0123456789abcd
  wishlist rm 65f1c0ffee0123456789abcd 65f1c0ffee0123456789abce`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := a.connect(ctx); err != nil {
				return err
			}
			if !a.requireAuth() {
				return nil
			}
			if err := a.ctrl.FetchAll(ctx); err != nil {
				return err
			}

			known := make(map[string]domain.WishlistItem)
			for _, it := range a.ctrl.Items() {
				known[it.ID] = it
			}

			results := make([]error, len(args))
			var wg sync.WaitGroup
			for i, id := range args {
				item, ok := known[id]
				if !ok {
					item = domain.WishlistItem{ID: id}
				}
				wg.Add(1)
				go func() {
					defer wg.Done()
					results[i] = a.ctrl.RemoveItem(ctx, item)
				}()
			}
			wg.Wait()

			var failed int
			for i, err := range results {
				switch {
				case err == nil:
					success(a.out, "REMOVED %s", args[i])
				case wishlistsync.IsKind(err, wishlistsync.KindNotFound):
					warning(a.out, "%s: %s", args[i], err.Error())
				default:
					failed++
					failure(a.out, "%s: %s", args[i], err.Error())
				}
			}

			printItems(a.out, a.ctrl.Items())
			if failed > 0 {
				return fmt.Errorf("%d of %d removals failed", failed, len(args))
			}
			return nil
		},
	}
}
