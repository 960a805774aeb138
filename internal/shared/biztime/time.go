// Package biztime renders timestamps in the site's timezone. The backend
// sends UTC; only presentation converts.
package biztime

import (
	"fmt"
	"sync"
	"time"
	_ "time/tzdata"
)

const (
	// DefaultTimezone is used until Init is called.
	DefaultTimezone = "Europe/Istanbul"

	// DateTimeLayout is the layout used by admin tables.
	DateTimeLayout = "2006-01-02 15:04"
)

var (
	mu       sync.RWMutex
	location *time.Location
)

// Init sets the display timezone. An empty tz selects DefaultTimezone.
func Init(tz string) error {
	if tz == "" {
		tz = DefaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return fmt.Errorf("failed to load timezone %q: %w", tz, err)
	}

	mu.Lock()
	location = loc
	mu.Unlock()
	return nil
}

// Location returns the display timezone, initializing the default on first use.
func Location() *time.Location {
	mu.RLock()
	loc := location
	mu.RUnlock()
	if loc != nil {
		return loc
	}

	if err := Init(""); err != nil {
		panic(fmt.Sprintf("biztime: failed to load default timezone: %v", err))
	}
	return Location()
}

// In converts t to the display timezone.
func In(t time.Time) time.Time {
	return t.In(Location())
}

// Format renders t in the display timezone; the zero time renders as "".
func Format(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return In(t).Format(DateTimeLayout)
}
