package dto

import (
	"strings"

	"github.com/ilim-academy/website/internal/domain/locale"
	"github.com/ilim-academy/website/internal/infrastructure/backend"
)

// VolunteerAreas lists the selectable volunteer areas in display order.
var VolunteerAreas = []string{"teaching", "events", "media", "administration"}

type ContactForm struct {
	Name    string `form:"name" validate:"required,min=2,max=100"`
	Email   string `form:"email" validate:"required,email,max=254"`
	Phone   string `form:"phone" validate:"omitempty,e164"`
	Subject string `form:"subject" validate:"required,min=2,max=200"`
	Message string `form:"message" validate:"required,min=10,max=5000"`
}

// Normalize trims whitespace and strips phone separators before validation.
func (f *ContactForm) Normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.Phone = normalizePhone(f.Phone)
	f.Subject = strings.TrimSpace(f.Subject)
	f.Message = strings.TrimSpace(f.Message)
}

// Values returns the submitted fields for re-rendering the form.
func (f *ContactForm) Values() map[string]string {
	return map[string]string{
		"name":    f.Name,
		"email":   f.Email,
		"phone":   f.Phone,
		"subject": f.Subject,
		"message": f.Message,
	}
}

func (f *ContactForm) ToSubmission(lang locale.Language) backend.ContactSubmission {
	return backend.ContactSubmission{
		Name:     f.Name,
		Email:    f.Email,
		Phone:    f.Phone,
		Subject:  f.Subject,
		Message:  f.Message,
		Language: lang.String(),
	}
}

type VolunteerForm struct {
	Name         string `form:"name" validate:"required,min=2,max=100"`
	Email        string `form:"email" validate:"required,email,max=254"`
	Phone        string `form:"phone" validate:"required,e164"`
	Area         string `form:"area" validate:"required,oneof=teaching events media administration"`
	Availability string `form:"availability" validate:"required,max=200"`
	Message      string `form:"message" validate:"max=2000"`
}

func (f *VolunteerForm) Normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.Phone = normalizePhone(f.Phone)
	f.Area = strings.TrimSpace(f.Area)
	f.Availability = strings.TrimSpace(f.Availability)
	f.Message = strings.TrimSpace(f.Message)
}

func (f *VolunteerForm) Values() map[string]string {
	return map[string]string{
		"name":         f.Name,
		"email":        f.Email,
		"phone":        f.Phone,
		"area":         f.Area,
		"availability": f.Availability,
		"message":      f.Message,
	}
}

func (f *VolunteerForm) ToApplication(lang locale.Language) backend.VolunteerApplication {
	return backend.VolunteerApplication{
		Name:         f.Name,
		Email:        f.Email,
		Phone:        f.Phone,
		Area:         f.Area,
		Availability: f.Availability,
		Message:      f.Message,
		Language:     lang.String(),
	}
}

// normalizePhone removes spaces, dashes, dots and parentheses, and turns a
// leading 00 into +.
func normalizePhone(s string) string {
	s = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '.', '(', ')':
			return -1
		}
		return r
	}, strings.TrimSpace(s))
	if rest, ok := strings.CutPrefix(s, "00"); ok {
		s = "+" + rest
	}
	return s
}
