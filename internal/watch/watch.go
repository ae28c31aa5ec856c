// Package watch polls availability until a seatable table set for the party
// appears.
package watch

import (
	"context"
	"log"
	"time"

	"github.com/example/table-booker/internal/domain/seating"
	"github.com/example/table-booker/internal/restohost"
)

type Fetcher interface {
	AvailableTables(ctx context.Context, q restohost.Query) (restohost.Availability, error)
}

// Watcher re-queries availability on a fixed interval. Fetch failures are
// logged and retried on the next tick rather than aborting the watch.
type Watcher struct {
	Client   Fetcher
	Policy   seating.Policy
	Interval time.Duration
}

// Run blocks until a table set seating the party shows up or ctx is done.
// The first check happens immediately, not after one interval.
func (w *Watcher) Run(ctx context.Context, q restohost.Query) (seating.TableSet, error) {
	if set, ok := w.check(ctx, q); ok {
		return set, nil
	}

	t := time.NewTicker(w.Interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-t.C:
			if set, ok := w.check(ctx, q); ok {
				return set, nil
			}
		}
	}
}

func (w *Watcher) check(ctx context.Context, q restohost.Query) (seating.TableSet, bool) {
	av, err := w.Client.AvailableTables(ctx, q)
	if err != nil {
		if ctx.Err() == nil {
			log.Printf("watch: availability fetch failed: %v", err)
		}
		return nil, false
	}
	combos := seating.Resolve(av.Tables, q.GuestCount, w.Policy)
	if av.Combinations != nil && !av.Combinations.Empty() {
		combos = *av.Combinations
	}
	set := seating.AutoSelect(av.Tables, combos, q.GuestCount, w.Policy)
	return set, len(set) > 0
}
