package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/table-booker/internal/config"
	"github.com/example/table-booker/internal/domain/seating"
	"github.com/example/table-booker/internal/planner"
	"github.com/example/table-booker/internal/restohost"
)

func newTablesCmd() *cobra.Command {
	var qf queryFlags

	c := &cobra.Command{
		Use:   "tables",
		Short: "Show available tables and suggested combinations for a party",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}
			params, err := qf.params()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()

			client := restohost.New(cfg.APIBaseURL, cfg.APIToken)
			p := planner.New(client, seating.DefaultPolicy(), cfg.Booking)
			p.SetParams(ctx, params)
			p.Wait()

			snap := p.Snapshot()
			if snap.ContactRequired {
				fmt.Fprintf(os.Stdout, "party of %d is too large to book online; please contact the restaurant directly\n", params.GuestCount)
				return nil
			}
			if snap.FetchErr != nil {
				return snap.FetchErr
			}
			printAvailability(snap)
			return nil
		},
	}

	qf.register(c)
	return c
}

func printAvailability(snap planner.Snapshot) {
	if len(snap.Tables) == 0 {
		fmt.Fprintln(os.Stdout, "no tables available for this query")
		return
	}

	fmt.Fprintf(os.Stdout, "available tables (%d):\n", len(snap.Tables))
	for _, t := range snap.Tables {
		marker := " "
		if snap.Selection.Contains(t.ID) {
			marker = "*"
		}
		fmt.Fprintf(os.Stdout, " %s %s seats=%d type=%s\n", marker, t.Name, t.Capacity, t.Type)
	}

	printGroup("single", snap.Combinations.Single)
	printGroup("double", snap.Combinations.Double)
	printGroup("triple", snap.Combinations.Triple)

	if len(snap.Selection) == 0 {
		fmt.Fprintf(os.Stdout, "no table or combination seats this party\n")
		return
	}
	fmt.Fprintf(os.Stdout, "suggested: %s (seats %d)\n", setLabel(snap.Selection), snap.Selection.TotalCapacity())
}

func printGroup(kind string, sets []seating.TableSet) {
	if len(sets) == 0 {
		return
	}
	fmt.Fprintf(os.Stdout, "%s combinations:\n", kind)
	for _, set := range sets {
		fmt.Fprintf(os.Stdout, "   %s (seats %d)\n", setLabel(set), set.TotalCapacity())
	}
}

func setLabel(set seating.TableSet) string {
	names := make([]string, 0, len(set))
	for _, t := range set {
		names = append(names, t.Name)
	}
	return strings.Join(names, " + ")
}
