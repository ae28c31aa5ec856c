package booking

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Date is a calendar date with no time or zone attached. Booking rules
// compare calendar dates, never instants, so a reservation for "tomorrow"
// stays tomorrow regardless of where the process runs.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate parses YYYY-MM-DD.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return DateOf(t), nil
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func (d Date) Before(o Date) bool {
	if d.Year != o.Year {
		return d.Year < o.Year
	}
	if d.Month != o.Month {
		return d.Month < o.Month
	}
	return d.Day < o.Day
}

func (d Date) Equal(o Date) bool {
	return d.Year == o.Year && d.Month == o.Month && d.Day == o.Day
}

// ClockTime is a civil wall-clock time of day, minute granularity.
type ClockTime struct {
	Hour   int
	Minute int
}

// ParseClockTime parses HH:MM, tolerating a trailing seconds component.
func ParseClockTime(s string) (ClockTime, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return ClockTime{}, fmt.Errorf("invalid time %q (want HH:MM)", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return ClockTime{}, fmt.Errorf("invalid time %q (want HH:MM)", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return ClockTime{}, fmt.Errorf("invalid time %q (want HH:MM)", s)
	}
	return ClockTime{Hour: h, Minute: m}, nil
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

func (c ClockTime) MinutesIntoDay() int {
	return c.Hour*60 + c.Minute
}

// Contact identifies the booking owner. It is passed explicitly; the core
// never reads an ambient logged-in identity.
type Contact struct {
	Name  string
	Phone string
	Email string
}

// Request carries one booking attempt's form input. It is rebuilt on every
// field change and consumed once at submission.
type Request struct {
	AreaID     string
	Date       Date
	SlotID     string
	Time       ClockTime
	GuestCount int
}

// Outcome is the ephemeral result of validating a request. Recomputed on
// every relevant input change, never persisted.
type Outcome struct {
	Valid  bool
	Reason string
}

func valid() Outcome { return Outcome{Valid: true} }

func invalid(reason string) Outcome { return Outcome{Valid: false, Reason: reason} }
