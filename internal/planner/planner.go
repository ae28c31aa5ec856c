// Package planner coordinates a single booking attempt: the query
// parameters, the one meaningful in-flight availability fetch, the current
// table selection, and the submit gate.
package planner

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/example/table-booker/internal/domain/booking"
	"github.com/example/table-booker/internal/domain/seating"
	"github.com/example/table-booker/internal/restohost"
)

// Client is the slice of the back-of-house API the planner needs.
type Client interface {
	AvailableTables(ctx context.Context, q restohost.Query) (restohost.Availability, error)
	CreateReservation(ctx context.Context, req restohost.CreateReservationRequest) (restohost.Reservation, error)
}

// Params are the inputs that scope one availability query. Any change
// invalidates the previous query and selection wholesale.
type Params struct {
	AreaID     string
	Date       booking.Date
	SlotID     string
	Time       booking.ClockTime
	GuestCount int
}

func (p Params) query() restohost.Query {
	return restohost.Query{
		AreaID:     p.AreaID,
		Date:       p.Date,
		SlotID:     p.SlotID,
		Time:       p.Time,
		GuestCount: p.GuestCount,
	}
}

// Snapshot is a consistent read of the attempt state for display.
type Snapshot struct {
	Params       Params
	Loading      bool
	Tables       []seating.Table
	Combinations seating.Combinations
	Selection    seating.TableSet

	// ContactRequired means the party exceeds the online ceiling and must
	// be routed to offline contact; no allocation was attempted.
	ContactRequired bool

	// FetchErr is the retryable transport failure of the last fetch, if
	// any. While set, tables and combinations are guaranteed empty.
	FetchErr error
}

type Planner struct {
	client  Client
	seatPol seating.Policy
	bookPol booking.Policy

	mu              sync.Mutex
	gen             uint64
	cancel          context.CancelFunc
	params          Params
	loading         bool
	tables          []seating.Table
	combos          seating.Combinations
	selection       seating.Selection
	contactRequired bool
	fetchErr        error

	wg sync.WaitGroup
}

func New(client Client, seatPol seating.Policy, bookPol booking.Policy) *Planner {
	return &Planner{client: client, seatPol: seatPol, bookPol: bookPol}
}

// SetParams records new query inputs and refreshes availability. Any prior
// in-flight fetch is cancelled and its late response discarded: only the
// response tagged with the latest generation is ever applied. Parties above
// the online ceiling skip the fetch entirely.
func (p *Planner) SetParams(ctx context.Context, params Params) {
	p.mu.Lock()
	p.gen++
	gen := p.gen
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.params = params
	p.reset()

	if booking.ExceedsOnlineLimit(params.GuestCount, p.bookPol) {
		p.contactRequired = true
		p.mu.Unlock()
		return
	}

	fetchCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.loading = true
	p.mu.Unlock()

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer cancel()
		av, err := p.client.AvailableTables(fetchCtx, params.query())
		p.apply(gen, params.GuestCount, av, err)
	}()
}

// reset clears everything a fresh query invalidates. Caller holds mu.
func (p *Planner) reset() {
	p.loading = false
	p.tables = nil
	p.combos = seating.Combinations{}
	p.selection.Clear()
	p.contactRequired = false
	p.fetchErr = nil
}

func (p *Planner) apply(gen uint64, guestCount int, av restohost.Availability, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if gen != p.gen {
		// Stale response from a superseded query; never merged.
		return
	}
	p.loading = false
	if err != nil {
		p.tables = nil
		p.combos = seating.Combinations{}
		p.selection.Clear()
		p.fetchErr = err
		return
	}

	p.fetchErr = nil
	p.tables = av.Tables
	if av.Combinations != nil && !av.Combinations.Empty() {
		p.combos = *av.Combinations
	} else {
		p.combos = seating.Resolve(av.Tables, guestCount, p.seatPol)
	}
	p.selection.SetCombination(seating.AutoSelect(av.Tables, p.combos, guestCount, p.seatPol))
}

// Wait blocks until no fetch is in flight. For the CLI and tests; a UI would
// instead poll Snapshot.
func (p *Planner) Wait() {
	p.wg.Wait()
}

func (p *Planner) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Snapshot{
		Params:          p.params,
		Loading:         p.loading,
		Tables:          append([]seating.Table(nil), p.tables...),
		Combinations:    p.combos,
		Selection:       p.selection.Tables(),
		ContactRequired: p.contactRequired,
		FetchErr:        p.fetchErr,
	}
}

func (p *Planner) ToggleTable(t seating.Table) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.selection.Toggle(t)
}

func (p *Planner) SelectCombination(set seating.TableSet) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.selection.SetCombination(set)
}

func (p *Planner) IsCombinationSelected(set seating.TableSet) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.selection.IsCombinationSelected(set)
}

// Validate reports whether the attempt may be submitted right now. now must
// already be in the restaurant's civil timezone.
func (p *Planner) Validate(now time.Time) booking.Outcome {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.validateLocked(now)
}

func (p *Planner) validateLocked(now time.Time) booking.Outcome {
	if p.contactRequired {
		return booking.Outcome{Reason: fmt.Sprintf("parties of %d or more must book by phone", p.bookPol.MaxOnlineParty)}
	}
	if out := booking.ValidateTime(p.params.Date, p.params.Time, now, p.bookPol); !out.Valid {
		return out
	}
	if !p.selection.IsAdequate(p.params.GuestCount) {
		return booking.Outcome{Reason: "selected tables do not seat the party"}
	}
	return booking.Outcome{Valid: true}
}

// Submit validates the attempt and creates the reservation. Invalid input
// never reaches the network. A transport failure preserves the selection so
// the guest can retry without re-picking tables.
func (p *Planner) Submit(ctx context.Context, now time.Time, contact booking.Contact) (restohost.Reservation, error) {
	p.mu.Lock()
	if out := p.validateLocked(now); !out.Valid {
		p.mu.Unlock()
		return restohost.Reservation{}, fmt.Errorf("booking not allowed: %s", out.Reason)
	}
	req := restohost.CreateReservationRequest{
		TableIDs:     p.selection.Tables().IDs(),
		Date:         p.params.Date.String(),
		SlotID:       p.params.SlotID,
		GuestCount:   p.params.GuestCount,
		ContactName:  contact.Name,
		ContactPhone: contact.Phone,
		ContactEmail: contact.Email,
		ClientRef:    uuid.NewString(),
	}
	if p.params.SlotID == "" {
		req.Time = p.params.Time.String()
	}
	p.mu.Unlock()

	return p.client.CreateReservation(ctx, req)
}
