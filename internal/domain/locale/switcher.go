package locale

import (
	"errors"
	"sync"
	"time"
)

var (
	// ErrSwitchInProgress is returned while a previous switch is cooling down.
	ErrSwitchInProgress = errors.New("language change already in progress")
	// ErrUnsupportedLanguage is returned for targets outside the supported set.
	ErrUnsupportedLanguage = errors.New("unsupported language")
)

// Environment is the document-level capability a language switch mutates:
// text direction, language attribute and the persisted active language.
type Environment interface {
	SetDirection(dir Direction)
	SetLanguage(lang Language)
	ChangeLanguage(lang Language) error
}

// Switcher applies language changes and suppresses rapid re-triggering per
// client for a fixed cooldown.
type Switcher struct {
	cooldown time.Duration
	now      func() time.Time

	mu       sync.Mutex
	changing map[string]time.Time
}

// NewSwitcher creates a switcher with the given cooldown window.
func NewSwitcher(cooldown time.Duration) *Switcher {
	return &Switcher{
		cooldown: cooldown,
		now:      time.Now,
		changing: make(map[string]time.Time),
	}
}

// WithClock replaces the time source; used by tests.
func (s *Switcher) WithClock(now func() time.Time) *Switcher {
	s.now = now
	return s
}

// Switch moves client from current to target. It reports whether a change
// happened; switching to the current language is a no-op.
func (s *Switcher) Switch(env Environment, client string, current, target Language) (bool, error) {
	if !target.Valid() {
		return false, ErrUnsupportedLanguage
	}
	if target == current {
		return false, nil
	}

	if !s.begin(client) {
		return false, ErrSwitchInProgress
	}

	env.SetDirection(target.Dir())
	env.SetLanguage(target)
	if err := env.ChangeLanguage(target); err != nil {
		s.end(client)
		return false, err
	}

	return true, nil
}

// Changing reports whether client is inside its cooldown window.
func (s *Switcher) Changing(client string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	until, ok := s.changing[client]
	return ok && s.now().Before(until)
}

func (s *Switcher) begin(client string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if until, ok := s.changing[client]; ok && now.Before(until) {
		return false
	}
	s.changing[client] = now.Add(s.cooldown)

	// Drop expired entries so the map tracks only active cooldowns.
	for k, until := range s.changing {
		if !now.Before(until) {
			delete(s.changing, k)
		}
	}
	return true
}

func (s *Switcher) end(client string) {
	s.mu.Lock()
	delete(s.changing, client)
	s.mu.Unlock()
}
