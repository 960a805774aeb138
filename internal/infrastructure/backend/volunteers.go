package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// VolunteersService covers volunteer applications.
type VolunteersService struct {
	client *Client
}

func (s *VolunteersService) Submit(ctx context.Context, in VolunteerApplication) (*Volunteer, error) {
	var v Volunteer
	if err := s.client.doJSON(ctx, http.MethodPost, "/volunteers", nil, in, &v); err != nil {
		return nil, fmt.Errorf("submit volunteer application: %w", err)
	}
	return &v, nil
}

func (s *VolunteersService) List(ctx context.Context, params ListParams) (*VolunteerList, error) {
	var list VolunteerList
	if err := s.client.doJSON(ctx, http.MethodGet, "/volunteers", params.values(), nil, &list); err != nil {
		return nil, fmt.Errorf("list volunteers: %w", err)
	}
	return &list, nil
}

func (s *VolunteersService) Get(ctx context.Context, id string) (*Volunteer, error) {
	var v Volunteer
	if err := s.client.doJSON(ctx, http.MethodGet, "/volunteers/"+url.PathEscape(id), nil, nil, &v); err != nil {
		return nil, fmt.Errorf("get volunteer %s: %w", id, err)
	}
	return &v, nil
}

func (s *VolunteersService) Review(ctx context.Context, id string, review VolunteerReview) (*Volunteer, error) {
	var v Volunteer
	if err := s.client.doJSON(ctx, http.MethodPatch, "/volunteers/"+url.PathEscape(id)+"/review", nil, review, &v); err != nil {
		return nil, fmt.Errorf("review volunteer %s: %w", id, err)
	}
	return &v, nil
}

func (s *VolunteersService) Delete(ctx context.Context, id string) error {
	if err := s.client.doJSON(ctx, http.MethodDelete, "/volunteers/"+url.PathEscape(id), nil, nil, nil); err != nil {
		return fmt.Errorf("delete volunteer %s: %w", id, err)
	}
	return nil
}
