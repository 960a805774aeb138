package backend

import (
	"context"
	"fmt"
	"net/http"
)

type SettingsService struct {
	client *Client
}

func (s *SettingsService) Get(ctx context.Context) (*Settings, error) {
	var settings Settings
	if err := s.client.doJSON(ctx, http.MethodGet, "/settings", nil, nil, &settings); err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return &settings, nil
}

// Update replaces the settings document.
func (s *SettingsService) Update(ctx context.Context, in Settings) (*Settings, error) {
	var settings Settings
	if err := s.client.doJSON(ctx, http.MethodPut, "/settings", nil, in, &settings); err != nil {
		return nil, fmt.Errorf("update settings: %w", err)
	}
	return &settings, nil
}
