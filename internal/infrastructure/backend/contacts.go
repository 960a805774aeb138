package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// ContactsService covers messages sent through the public contact form.
type ContactsService struct {
	client *Client
}

// Submit creates a contact message.
func (s *ContactsService) Submit(ctx context.Context, in ContactSubmission) (*Contact, error) {
	var contact Contact
	if err := s.client.doJSON(ctx, http.MethodPost, "/contacts", nil, in, &contact); err != nil {
		return nil, fmt.Errorf("submit contact: %w", err)
	}
	return &contact, nil
}

func (s *ContactsService) List(ctx context.Context, params ListParams) (*ContactList, error) {
	var list ContactList
	if err := s.client.doJSON(ctx, http.MethodGet, "/contacts", params.values(), nil, &list); err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	return &list, nil
}

func (s *ContactsService) Get(ctx context.Context, id string) (*Contact, error) {
	var contact Contact
	if err := s.client.doJSON(ctx, http.MethodGet, "/contacts/"+url.PathEscape(id), nil, nil, &contact); err != nil {
		return nil, fmt.Errorf("get contact %s: %w", id, err)
	}
	return &contact, nil
}

// UpdateStatus transitions a message (new, read, replied, archived).
func (s *ContactsService) UpdateStatus(ctx context.Context, id, status string) (*Contact, error) {
	body := map[string]string{"status": status}

	var contact Contact
	if err := s.client.doJSON(ctx, http.MethodPatch, "/contacts/"+url.PathEscape(id)+"/status", nil, body, &contact); err != nil {
		return nil, fmt.Errorf("update contact %s status: %w", id, err)
	}
	return &contact, nil
}

func (s *ContactsService) Delete(ctx context.Context, id string) error {
	if err := s.client.doJSON(ctx, http.MethodDelete, "/contacts/"+url.PathEscape(id), nil, nil, nil); err != nil {
		return fmt.Errorf("delete contact %s: %w", id, err)
	}
	return nil
}
