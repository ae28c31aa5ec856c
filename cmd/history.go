package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/table-booker/internal/config"
	"github.com/example/table-booker/internal/db"
	"github.com/example/table-booker/internal/history"
	"github.com/example/table-booker/internal/migrate"
)

func newHistoryCmd() *cobra.Command {
	var limit int

	c := &cobra.Command{
		Use:   "history",
		Short: "List locally logged booking attempts",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}
			if cfg.DatabaseURL == "" {
				return fmt.Errorf("DATABASE_URL is not set; the attempt log is disabled")
			}

			ctx := context.Background()
			d, err := db.Open(ctx, cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer d.Close()

			if err := migrate.Up(ctx, d); err != nil {
				return err
			}

			entries, err := history.NewRepo(d).List(ctx, limit)
			if err != nil {
				return err
			}
			for _, e := range entries {
				status := "ok"
				if !e.Success {
					status = "failed"
					if e.Error != nil {
						status = "failed: " + *e.Error
					}
				}
				fmt.Fprintf(os.Stdout, "%s area=%s date=%s time=%s party=%d tables=%s reservation=%s %s\n",
					e.CreatedAt.Format(time.RFC3339), e.AreaID, e.Date, e.Time, e.GuestCount,
					strings.Join(e.TableIDs, ","), e.ReservationID, status)
			}
			return nil
		},
	}

	c.Flags().IntVar(&limit, "limit", 20, "max entries to show")
	return c
}
