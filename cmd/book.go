package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/table-booker/internal/config"
	"github.com/example/table-booker/internal/db"
	"github.com/example/table-booker/internal/domain/booking"
	"github.com/example/table-booker/internal/domain/seating"
	"github.com/example/table-booker/internal/history"
	"github.com/example/table-booker/internal/migrate"
	"github.com/example/table-booker/internal/planner"
	"github.com/example/table-booker/internal/restohost"
)

func newBookCmd() *cobra.Command {
	var (
		qf           queryFlags
		tableIDs     []string
		contactName  string
		contactPhone string
		contactEmail string
	)

	c := &cobra.Command{
		Use:   "book",
		Short: "Reserve tables for a party (auto-selected unless --table-ids is given)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}
			params, err := qf.params()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			client := restohost.New(cfg.APIBaseURL, cfg.APIToken)
			p := planner.New(client, seating.DefaultPolicy(), cfg.Booking)
			p.SetParams(ctx, params)
			p.Wait()

			snap := p.Snapshot()
			if snap.ContactRequired {
				return fmt.Errorf("party of %d is too large to book online; contact the restaurant directly", params.GuestCount)
			}
			if snap.FetchErr != nil {
				return snap.FetchErr
			}

			if len(tableIDs) > 0 {
				set, err := pickTables(snap.Tables, tableIDs)
				if err != nil {
					return err
				}
				p.SelectCombination(set)
				snap = p.Snapshot()
			}
			if len(snap.Selection) == 0 {
				return fmt.Errorf("no table or combination seats a party of %d", params.GuestCount)
			}

			now := time.Now().In(cfg.Location())
			contact := booking.Contact{Name: contactName, Phone: contactPhone, Email: contactEmail}
			res, bookErr := p.Submit(ctx, now, contact)

			if cfg.DatabaseURL != "" {
				recordAttempt(ctx, cfg.DatabaseURL, params, p.Snapshot().Selection, res, bookErr)
			}
			if bookErr != nil {
				return bookErr
			}

			fmt.Fprintf(os.Stdout, "reserved %s for %d guests on %s: reservation id=%s\n",
				setLabel(p.Snapshot().Selection), params.GuestCount, params.Date, res.ID)
			return nil
		},
	}

	qf.register(c)
	c.Flags().StringSliceVar(&tableIDs, "table-ids", nil, "book these exact table ids instead of the suggestion")
	c.Flags().StringVar(&contactName, "contact-name", "", "contact name for the reservation")
	c.Flags().StringVar(&contactPhone, "contact-phone", "", "contact phone for the reservation")
	c.Flags().StringVar(&contactEmail, "contact-email", "", "optional contact email")
	_ = c.MarkFlagRequired("contact-name")
	_ = c.MarkFlagRequired("contact-phone")
	return c
}

// pickTables maps explicit ids onto the availability snapshot; ids not in
// the snapshot are an input error, not a lookup against the whole venue.
func pickTables(tables []seating.Table, ids []string) (seating.TableSet, error) {
	byID := make(map[string]seating.Table, len(tables))
	for _, t := range tables {
		byID[t.ID] = t
	}
	var set seating.TableSet
	for _, id := range ids {
		t, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("table %s is not in the availability results", id)
		}
		if set.Contains(id) {
			continue
		}
		set = append(set, t)
	}
	return set, nil
}

func recordAttempt(ctx context.Context, databaseURL string, params planner.Params, selection seating.TableSet, res restohost.Reservation, bookErr error) {
	d, err := db.Open(ctx, databaseURL)
	if err != nil {
		log.Printf("history: open db: %v", err)
		return
	}
	defer d.Close()

	if err := migrate.Up(ctx, d); err != nil {
		log.Printf("history: migrate: %v", err)
		return
	}

	e := history.Entry{
		ReservationID: res.ID,
		AreaID:        params.AreaID,
		Date:          params.Date.String(),
		SlotID:        params.SlotID,
		Time:          params.Time.String(),
		GuestCount:    params.GuestCount,
		TableIDs:      selection.IDs(),
		Success:       bookErr == nil,
	}
	if bookErr != nil {
		msg := bookErr.Error()
		e.Error = &msg
	}
	if _, err := history.NewRepo(d).Record(ctx, e); err != nil {
		log.Printf("history: record attempt: %v", err)
	}
}
