package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// UsersService covers admin accounts. All calls require an access token.
type UsersService struct {
	client *Client
}

func (s *UsersService) List(ctx context.Context, params ListParams) (*UserList, error) {
	var list UserList
	if err := s.client.doJSON(ctx, http.MethodGet, "/users", params.values(), nil, &list); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return &list, nil
}

func (s *UsersService) Get(ctx context.Context, id string) (*User, error) {
	var u User
	if err := s.client.doJSON(ctx, http.MethodGet, "/users/"+url.PathEscape(id), nil, nil, &u); err != nil {
		return nil, fmt.Errorf("get user %s: %w", id, err)
	}
	return &u, nil
}

func (s *UsersService) Update(ctx context.Context, id string, update UserUpdate) (*User, error) {
	var u User
	if err := s.client.doJSON(ctx, http.MethodPatch, "/users/"+url.PathEscape(id), nil, update, &u); err != nil {
		return nil, fmt.Errorf("update user %s: %w", id, err)
	}
	return &u, nil
}

func (s *UsersService) Delete(ctx context.Context, id string) error {
	if err := s.client.doJSON(ctx, http.MethodDelete, "/users/"+url.PathEscape(id), nil, nil, nil); err != nil {
		return fmt.Errorf("delete user %s: %w", id, err)
	}
	return nil
}
