package planner

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/table-booker/internal/domain/booking"
	"github.com/example/table-booker/internal/domain/seating"
	"github.com/example/table-booker/internal/restohost"
)

func tbl(id string, capacity int) seating.Table {
	return seating.Table{ID: id, Name: "T" + id, Capacity: capacity}
}

type availResult struct {
	av  restohost.Availability
	err error
}

// fakeClient blocks each AvailableTables call on a per-guest-count channel so
// tests control response ordering. It deliberately ignores context
// cancellation: a superseded fetch still delivers its (stale) response.
type fakeClient struct {
	mu        sync.Mutex
	gates     map[int]chan availResult
	fetches   int
	createReq *restohost.CreateReservationRequest
	createRes restohost.Reservation
	createErr error
}

func newFakeClient() *fakeClient {
	return &fakeClient{gates: make(map[int]chan availResult)}
}

func (f *fakeClient) gate(guestCount int) chan availResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch, ok := f.gates[guestCount]
	if !ok {
		ch = make(chan availResult, 1)
		f.gates[guestCount] = ch
	}
	return ch
}

func (f *fakeClient) AvailableTables(ctx context.Context, q restohost.Query) (restohost.Availability, error) {
	f.mu.Lock()
	f.fetches++
	f.mu.Unlock()
	res := <-f.gate(q.GuestCount)
	return res.av, res.err
}

func (f *fakeClient) CreateReservation(ctx context.Context, req restohost.CreateReservationRequest) (restohost.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r := req
	f.createReq = &r
	return f.createRes, f.createErr
}

func (f *fakeClient) fetchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetches
}

func params(guestCount int) Params {
	return Params{
		AreaID:     "patio",
		Date:       booking.Date{Year: 2030, Month: time.June, Day: 1},
		Time:       booking.ClockTime{Hour: 19, Minute: 0},
		GuestCount: guestCount,
	}
}

func avail(tables ...seating.Table) restohost.Availability {
	return restohost.Availability{Tables: tables}
}

func newPlanner(c Client) *Planner {
	return New(c, seating.DefaultPolicy(), booking.DefaultPolicy())
}

func TestPlannerAppliesFetchAndSeedsSelection(t *testing.T) {
	fc := newFakeClient()
	p := newPlanner(fc)

	p.SetParams(context.Background(), params(3))
	fc.gate(3) <- availResult{av: avail(tbl("a", 2), tbl("b", 4), tbl("c", 6))}
	p.Wait()

	snap := p.Snapshot()
	require.NoError(t, snap.FetchErr)
	assert.Len(t, snap.Tables, 3)
	require.Len(t, snap.Combinations.Single, 2)
	assert.Equal(t, 4, snap.Combinations.Single[0].TotalCapacity())
	require.Len(t, snap.Selection, 1)
	assert.Equal(t, "b", snap.Selection[0].ID)
}

func TestPlannerStaleResponseIsDiscarded(t *testing.T) {
	fc := newFakeClient()
	p := newPlanner(fc)
	ctx := context.Background()

	// Fetch A for a party of 2 is issued but hangs.
	p.SetParams(ctx, params(2))
	// The guest bumps the party to 6 before A resolves.
	p.SetParams(ctx, params(6))

	// The newer fetch resolves first.
	fc.gate(6) <- availResult{av: avail(tbl("a", 2), tbl("b", 2), tbl("c", 2))}
	// Now A's slow, party-of-2-scoped response finally arrives.
	fc.gate(2) <- availResult{av: avail(tbl("z", 2))}
	p.Wait()

	snap := p.Snapshot()
	require.NoError(t, snap.FetchErr)
	assert.Equal(t, 6, snap.Params.GuestCount)
	require.Len(t, snap.Tables, 3, "stale response must not overwrite the newer state")
	assert.Equal(t, "a", snap.Tables[0].ID)
	require.Len(t, snap.Combinations.Triple, 1)
	assert.Len(t, snap.Selection, 3)
}

func TestPlannerFetchErrorClearsState(t *testing.T) {
	fc := newFakeClient()
	p := newPlanner(fc)
	ctx := context.Background()

	p.SetParams(ctx, params(3))
	fc.gate(3) <- availResult{av: avail(tbl("a", 4))}
	p.Wait()
	require.NotEmpty(t, p.Snapshot().Selection)

	p.SetParams(ctx, params(3))
	fc.gate(3) <- availResult{err: errors.New("availability service unreachable")}
	p.Wait()

	snap := p.Snapshot()
	assert.Error(t, snap.FetchErr)
	assert.Empty(t, snap.Tables, "no stale data may remain visible")
	assert.True(t, snap.Combinations.Empty())
	assert.Empty(t, snap.Selection)

	// A retry with the same inputs recovers.
	p.SetParams(ctx, params(3))
	fc.gate(3) <- availResult{av: avail(tbl("a", 4))}
	p.Wait()
	snap = p.Snapshot()
	assert.NoError(t, snap.FetchErr)
	assert.NotEmpty(t, snap.Selection)
}

func TestPlannerLargePartySkipsAllocation(t *testing.T) {
	fc := newFakeClient()
	p := newPlanner(fc)

	p.SetParams(context.Background(), params(25))
	p.Wait()

	snap := p.Snapshot()
	assert.True(t, snap.ContactRequired)
	assert.Empty(t, snap.Tables)
	assert.Empty(t, snap.Selection)
	assert.Equal(t, 0, fc.fetchCount(), "allocation pipeline must not run")

	out := p.Validate(time.Date(2030, time.May, 1, 12, 0, 0, 0, time.UTC))
	assert.False(t, out.Valid)
	assert.Contains(t, out.Reason, "book by phone")
}

func TestPlannerSubmit(t *testing.T) {
	fc := newFakeClient()
	fc.createRes = restohost.Reservation{ID: "res-1", Status: "pending"}
	p := newPlanner(fc)

	p.SetParams(context.Background(), params(3))
	fc.gate(3) <- availResult{av: avail(tbl("a", 4), tbl("b", 6))}
	p.Wait()

	now := time.Date(2030, time.May, 1, 12, 0, 0, 0, time.UTC)
	res, err := p.Submit(context.Background(), now, booking.Contact{Name: "Dana", Phone: "555-0101"})
	require.NoError(t, err)
	assert.Equal(t, "res-1", res.ID)

	require.NotNil(t, fc.createReq)
	assert.Equal(t, []string{"a"}, fc.createReq.TableIDs)
	assert.Equal(t, "2030-06-01", fc.createReq.Date)
	assert.Equal(t, "19:00", fc.createReq.Time)
	assert.Equal(t, 3, fc.createReq.GuestCount)
	assert.Equal(t, "Dana", fc.createReq.ContactName)
	assert.NotEmpty(t, fc.createReq.ClientRef)
}

func TestPlannerSubmitFailurePreservesSelection(t *testing.T) {
	fc := newFakeClient()
	fc.createErr = errors.New("reservation service unavailable")
	p := newPlanner(fc)

	p.SetParams(context.Background(), params(3))
	fc.gate(3) <- availResult{av: avail(tbl("a", 4))}
	p.Wait()

	now := time.Date(2030, time.May, 1, 12, 0, 0, 0, time.UTC)
	_, err := p.Submit(context.Background(), now, booking.Contact{Name: "Dana", Phone: "555-0101"})
	require.Error(t, err)

	snap := p.Snapshot()
	require.Len(t, snap.Selection, 1, "the guest retries without re-selecting")
	assert.Equal(t, "a", snap.Selection[0].ID)
}

func TestPlannerSubmitBlocksInvalidTime(t *testing.T) {
	fc := newFakeClient()
	p := newPlanner(fc)

	p.SetParams(context.Background(), params(3))
	fc.gate(3) <- availResult{av: avail(tbl("a", 4))}
	p.Wait()

	// "Now" is after the reservation date: the request is in the past and
	// must never reach the network.
	now := time.Date(2031, time.January, 1, 12, 0, 0, 0, time.UTC)
	_, err := p.Submit(context.Background(), now, booking.Contact{Name: "Dana", Phone: "555-0101"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "past")
	assert.Nil(t, fc.createReq)
}

func TestPlannerUsesServerCombinationHints(t *testing.T) {
	fc := newFakeClient()
	p := newPlanner(fc)

	hinted := seating.Combinations{
		Double: []seating.TableSet{{tbl("x", 4), tbl("y", 4)}},
	}
	p.SetParams(context.Background(), params(7))
	fc.gate(7) <- availResult{av: restohost.Availability{
		Tables:       []seating.Table{tbl("a", 2), tbl("b", 2)},
		Combinations: &hinted,
	}}
	p.Wait()

	snap := p.Snapshot()
	assert.Equal(t, hinted, snap.Combinations, "server hints take precedence over local recomputation")
	assert.ElementsMatch(t, []string{"x", "y"}, snap.Selection.IDs())
}

func TestPlannerToggleAndCombinationSelection(t *testing.T) {
	fc := newFakeClient()
	p := newPlanner(fc)

	p.SetParams(context.Background(), params(6))
	a, b, c := tbl("a", 2), tbl("b", 2), tbl("c", 2)
	fc.gate(6) <- availResult{av: avail(a, b, c)}
	p.Wait()

	combo := p.Snapshot().Combinations.Triple[0]
	p.SelectCombination(combo)
	assert.True(t, p.IsCombinationSelected(combo))

	p.ToggleTable(a)
	snap := p.Snapshot()
	require.Len(t, snap.Selection, 1)
	assert.Equal(t, "a", snap.Selection[0].ID)
	assert.False(t, p.IsCombinationSelected(combo))
}
