package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/table-booker/internal/domain/booking"
	"github.com/example/table-booker/internal/planner"
)

// queryFlags are the availability inputs shared by tables, book and watch.
type queryFlags struct {
	areaID    string
	date      string
	timeOfDay string
	slotID    string
	partySize int
}

func (f *queryFlags) register(c *cobra.Command) {
	c.Flags().StringVar(&f.areaID, "area-id", "", "area id")
	c.Flags().StringVar(&f.date, "date", "", "reservation date YYYY-MM-DD")
	c.Flags().StringVar(&f.timeOfDay, "time", "", "reservation time HH:MM")
	c.Flags().StringVar(&f.slotID, "slot-id", "", "predefined slot id, sent alongside the time when the venue books by slot")
	c.Flags().IntVar(&f.partySize, "party-size", 2, "party size")
	_ = c.MarkFlagRequired("area-id")
	_ = c.MarkFlagRequired("date")
	_ = c.MarkFlagRequired("time")
}

func (f *queryFlags) params() (planner.Params, error) {
	d, err := booking.ParseDate(f.date)
	if err != nil {
		return planner.Params{}, err
	}
	if f.partySize < 1 {
		return planner.Params{}, fmt.Errorf("--party-size must be >= 1")
	}
	p := planner.Params{
		AreaID:     f.areaID,
		Date:       d,
		SlotID:     f.slotID,
		GuestCount: f.partySize,
	}
	t, err := booking.ParseClockTime(f.timeOfDay)
	if err != nil {
		return planner.Params{}, err
	}
	p.Time = t
	return p, nil
}
