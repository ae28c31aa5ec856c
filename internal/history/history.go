// Package history keeps a local audit log of submitted booking attempts.
// The reservation lifecycle itself stays with the reservation service; this
// is a write-once record for the operator running the CLI.
package history

import (
	"context"
	"strings"
	"time"

	"github.com/example/table-booker/internal/db"
)

type Entry struct {
	ID            int64
	ReservationID string
	AreaID        string
	Date          string
	SlotID        string
	Time          string
	GuestCount    int
	TableIDs      []string
	Success       bool
	Error         *string
	CreatedAt     time.Time
}

type Repo struct{ db *db.DB }

func NewRepo(d *db.DB) *Repo { return &Repo{db: d} }

func (r *Repo) Record(ctx context.Context, e Entry) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
INSERT INTO reservation_log(reservation_id,area_id,reservation_date,slot_id,reservation_time,guest_count,table_ids,success,error)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
RETURNING id`,
		e.ReservationID, e.AreaID, e.Date, e.SlotID, e.Time, e.GuestCount, strings.Join(e.TableIDs, ","), e.Success, e.Error,
	).Scan(&id)
	return id, err
}

func (r *Repo) List(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := r.db.Query(ctx, `
SELECT id,reservation_id,area_id,reservation_date,slot_id,reservation_time,guest_count,table_ids,success,error,created_at
FROM reservation_log
ORDER BY created_at DESC
LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var tableIDs string
		if err := rows.Scan(&e.ID, &e.ReservationID, &e.AreaID, &e.Date, &e.SlotID, &e.Time, &e.GuestCount, &tableIDs, &e.Success, &e.Error, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.TableIDs = splitIDs(tableIDs)
		out = append(out, e)
	}
	return out, rows.Err()
}

func splitIDs(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
