package backend

import (
	"context"
	"fmt"
	"net/http"
)

type AuthService struct {
	client *Client
}

// Login exchanges credentials for an access and refresh token pair.
func (s *AuthService) Login(ctx context.Context, creds Credentials) (*Session, error) {
	var session Session
	if err := s.client.doJSON(ctx, http.MethodPost, "/auth/login", nil, creds, &session); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	return &session, nil
}

// Logout revokes the session bound to the context's access token.
func (s *AuthService) Logout(ctx context.Context) error {
	if err := s.client.doJSON(ctx, http.MethodPost, "/auth/logout", nil, nil, nil); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}
