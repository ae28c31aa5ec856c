package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/example/table-booker/internal/domain/booking"
)

type Config struct {
	// APIBaseURL is the root of the restaurant back-of-house API.
	APIBaseURL string
	// APIToken is the bearer token for the API, when the deployment
	// requires one.
	APIToken string

	// Timezone is the restaurant's civil timezone. All booking-time rules
	// evaluate against this zone, never the process-local one.
	Timezone string

	// DatabaseURL enables the local reservation-attempt log when set.
	DatabaseURL string

	// WatchInterval is the availability poll interval for watch mode.
	WatchInterval time.Duration

	Booking booking.Policy
}

func FromEnv() (Config, error) {
	cfg := Config{
		APIBaseURL:  envDefault("API_BASE_URL", "http://localhost:8080/api"),
		APIToken:    strings.TrimSpace(os.Getenv("API_TOKEN")),
		Timezone:    envDefault("RESTAURANT_TZ", "America/New_York"),
		DatabaseURL: strings.TrimSpace(os.Getenv("DATABASE_URL")),
		Booking:     booking.DefaultPolicy(),
	}
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")

	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return Config{}, fmt.Errorf("invalid RESTAURANT_TZ: %w", err)
	}

	watchSec, err := strconv.Atoi(envDefault("WATCH_POLL_SECONDS", "30"))
	if err != nil || watchSec < 1 {
		return Config{}, fmt.Errorf("invalid WATCH_POLL_SECONDS")
	}
	cfg.WatchInterval = time.Duration(watchSec) * time.Second

	if v := strings.TrimSpace(os.Getenv("MAX_ONLINE_PARTY")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return Config{}, fmt.Errorf("invalid MAX_ONLINE_PARTY")
		}
		cfg.Booking.MaxOnlineParty = n
	}
	if v := strings.TrimSpace(os.Getenv("MIN_LEAD_MINUTES")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return Config{}, fmt.Errorf("invalid MIN_LEAD_MINUTES")
		}
		cfg.Booking.MinLeadMinutes = n
	}

	return cfg, nil
}

// Location resolves the restaurant timezone. FromEnv already validated it.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func envDefault(k, d string) string {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return d
	}
	return v
}
