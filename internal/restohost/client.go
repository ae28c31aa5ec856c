// Package restohost is the HTTP client for the restaurant back-of-house API.
// It owns the wire contract only; allocation and validation logic live in
// the domain packages.
package restohost

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/example/table-booker/internal/domain/booking"
	"github.com/example/table-booker/internal/domain/seating"
)

type Client struct {
	hc    *http.Client
	base  string
	token string
}

func New(baseURL, token string) *Client {
	return &Client{
		hc:    &http.Client{Timeout: 10 * time.Second},
		base:  baseURL,
		token: token,
	}
}

type Area struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// Query identifies one availability lookup. SlotID and Time are
// alternatives; whichever is set goes on the wire.
type Query struct {
	AreaID     string
	Date       booking.Date
	SlotID     string
	Time       booking.ClockTime
	GuestCount int
}

// Availability is the server's snapshot for a query: the flat table list
// plus optional precomputed combination hints. Hints, when present, take
// precedence over local recomputation.
type Availability struct {
	Tables       []seating.Table       `json:"data"`
	Combinations *seating.Combinations `json:"combinations"`
}

type CreateReservationRequest struct {
	TableIDs     []string `json:"table_ids"`
	Date         string   `json:"date"`
	SlotID       string   `json:"slot_id,omitempty"`
	Time         string   `json:"time,omitempty"`
	GuestCount   int      `json:"guest_count"`
	ContactName  string   `json:"contact_name"`
	ContactPhone string   `json:"contact_phone"`
	ContactEmail string   `json:"contact_email,omitempty"`

	// ClientRef is a client-generated idempotency reference so a retried
	// submission cannot double-create.
	ClientRef string `json:"client_ref"`
}

type Reservation struct {
	ID     string `json:"_id"`
	Status string `json:"status"`
}

func (c *Client) Areas(ctx context.Context) ([]Area, error) {
	status, body, err := c.do(ctx, http.MethodGet, "/areas", nil, nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, apiError("list areas", status, body)
	}
	var areas []Area
	if err := json.Unmarshal(body, &areas); err != nil {
		return nil, fmt.Errorf("parse areas: %w", err)
	}
	return areas, nil
}

func (c *Client) AvailableTables(ctx context.Context, q Query) (Availability, error) {
	params := map[string]string{
		"area_id":     q.AreaID,
		"date":        q.Date.String(),
		"guest_count": strconv.Itoa(q.GuestCount),
	}
	if q.SlotID != "" {
		params["slot_id"] = q.SlotID
	} else {
		params["time"] = q.Time.String()
	}

	status, body, err := c.do(ctx, http.MethodGet, "/reservations/available-tables", params, nil)
	if err != nil {
		return Availability{}, err
	}
	if status != http.StatusOK {
		return Availability{}, apiError("fetch available tables", status, body)
	}
	var av Availability
	if err := json.Unmarshal(body, &av); err != nil {
		return Availability{}, fmt.Errorf("parse available tables: %w", err)
	}
	return av, nil
}

func (c *Client) CreateReservation(ctx context.Context, req CreateReservationRequest) (Reservation, error) {
	jb, err := json.Marshal(req)
	if err != nil {
		return Reservation{}, err
	}
	status, body, err := c.do(ctx, http.MethodPost, "/reservations", nil, jb)
	if err != nil {
		return Reservation{}, err
	}
	if status != http.StatusOK && status != http.StatusCreated {
		return Reservation{}, apiError("create reservation", status, body)
	}
	var res Reservation
	if err := json.Unmarshal(body, &res); err != nil {
		return Reservation{}, fmt.Errorf("parse reservation: %w", err)
	}
	if res.ID == "" {
		return Reservation{}, fmt.Errorf("create reservation: response missing _id")
	}
	return res, nil
}

func (c *Client) do(ctx context.Context, method, path string, query map[string]string, body []byte) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, bytes.NewReader(body))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("accept", "application/json")
	if body != nil {
		req.Header.Set("content-type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("authorization", "Bearer "+c.token)
	}

	if query != nil {
		qv := req.URL.Query()
		for k, v := range query {
			qv.Add(k, v)
		}
		req.URL.RawQuery = qv.Encode()
	}

	res, err := c.hc.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer res.Body.Close()
	b, err := io.ReadAll(res.Body)
	if err != nil {
		return res.StatusCode, nil, err
	}
	return res.StatusCode, b, nil
}

// apiError surfaces the server's message field when it sends one.
func apiError(op string, status int, body []byte) error {
	var r struct {
		Message string `json:"message"`
	}
	_ = json.Unmarshal(body, &r)
	if r.Message != "" {
		return fmt.Errorf("%s: %s (status=%d)", op, r.Message, status)
	}
	return fmt.Errorf("%s failed (status=%d)", op, status)
}
