// Package settings serves the site-wide settings shown on every page. The
// backend copy is reused for a short interval and the configured defaults
// stand in until the first successful fetch.
package settings

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/ilim-academy/website/internal/infrastructure/backend"
	"github.com/ilim-academy/website/internal/shared/fetch"
	"github.com/ilim-academy/website/internal/shared/logger"
)

const refreshKey = "settings"

// API is the backend surface the service needs.
type API interface {
	Get(ctx context.Context) (*backend.Settings, error)
	Update(ctx context.Context, in backend.Settings) (*backend.Settings, error)
}

type Service struct {
	api      API
	resource *fetch.Resource[backend.Settings]
	ttl      time.Duration
	now      func() time.Time
	group    singleflight.Group
	logger   logger.Interface

	mu          sync.Mutex
	refreshedAt time.Time
}

// NewService creates the settings service. fallback is served until the
// backend answers; a failed refresh keeps the last good copy.
func NewService(api API, fallback backend.Settings, ttl time.Duration, log logger.Interface) *Service {
	if log == nil {
		log = logger.Nop()
	}
	s := &Service{
		api:    api,
		ttl:    ttl,
		now:    time.Now,
		logger: log,
	}
	s.resource = fetch.New(s.fetch,
		fetch.WithFallback(fallback),
		fetch.WithPolicy[backend.Settings](fetch.KeepLastOnError),
		fetch.WithErrorHook[backend.Settings](func(ctx context.Context, err error) {
			s.logger.Ctx(ctx).Warnw("failed to fetch site settings", "error", err)
		}),
	)
	return s
}

func (s *Service) fetch(ctx context.Context) (backend.Settings, error) {
	out, err := s.api.Get(ctx)
	if err != nil {
		return backend.Settings{}, err
	}
	return *out, nil
}

// Current returns the settings state, refreshing it when the held copy is
// older than the TTL. Concurrent refreshes share one backend call.
func (s *Service) Current(ctx context.Context) fetch.State[backend.Settings] {
	if !s.stale() {
		return s.resource.Snapshot()
	}
	return s.Refresh(ctx)
}

// Refresh fetches the settings now, regardless of age.
func (s *Service) Refresh(ctx context.Context) fetch.State[backend.Settings] {
	v, _, _ := s.group.Do(refreshKey, func() (any, error) {
		state := s.resource.Load(context.WithoutCancel(ctx))
		s.mu.Lock()
		s.refreshedAt = s.now()
		s.mu.Unlock()
		return state, nil
	})
	return v.(fetch.State[backend.Settings])
}

// Update saves the settings and makes the next read refetch them.
func (s *Service) Update(ctx context.Context, in backend.Settings) (*backend.Settings, error) {
	out, err := s.api.Update(ctx, in)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.refreshedAt = time.Time{}
	s.mu.Unlock()
	return out, nil
}

func (s *Service) stale() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refreshedAt.IsZero() || s.now().Sub(s.refreshedAt) >= s.ttl
}
