package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/table-booker/internal/config"
	"github.com/example/table-booker/internal/domain/booking"
	"github.com/example/table-booker/internal/domain/seating"
	"github.com/example/table-booker/internal/restohost"
	"github.com/example/table-booker/internal/watch"
)

func newWatchCmd() *cobra.Command {
	var (
		qf          queryFlags
		intervalSec int
	)

	c := &cobra.Command{
		Use:   "watch",
		Short: "Poll availability until a table set that seats the party frees up",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}
			params, err := qf.params()
			if err != nil {
				return err
			}
			if booking.ExceedsOnlineLimit(params.GuestCount, cfg.Booking) {
				return fmt.Errorf("party of %d is too large to book online; contact the restaurant directly", params.GuestCount)
			}

			interval := cfg.WatchInterval
			if intervalSec > 0 {
				interval = time.Duration(intervalSec) * time.Second
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			w := &watch.Watcher{
				Client:   restohost.New(cfg.APIBaseURL, cfg.APIToken),
				Policy:   seating.DefaultPolicy(),
				Interval: interval,
			}

			fmt.Fprintf(os.Stdout, "watching area=%s date=%s time=%s party=%d every %s\n",
				params.AreaID, params.Date, params.Time, params.GuestCount, interval)

			set, err := w.Run(ctx, restohost.Query{
				AreaID:     params.AreaID,
				Date:       params.Date,
				SlotID:     params.SlotID,
				Time:       params.Time,
				GuestCount: params.GuestCount,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "found: %s (seats %d)\n", setLabel(set), set.TotalCapacity())
			return nil
		},
	}

	qf.register(c)
	c.Flags().IntVar(&intervalSec, "interval-seconds", 0, "poll interval (defaults to WATCH_POLL_SECONDS)")
	return c
}
