package backend

import (
	"context"
	"fmt"
	"net/http"
)

type DashboardService struct {
	client *Client
}

func (s *DashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats
	if err := s.client.doJSON(ctx, http.MethodGet, "/dashboard/stats", nil, nil, &stats); err != nil {
		return nil, fmt.Errorf("get dashboard stats: %w", err)
	}
	return &stats, nil
}
