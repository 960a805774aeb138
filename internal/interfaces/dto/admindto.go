package dto

import (
	"strings"

	"github.com/ilim-academy/website/internal/infrastructure/backend"
	"github.com/ilim-academy/website/internal/shared/constants"
)

// ContactStatuses lists the statuses an inquiry can be moved to.
var ContactStatuses = []string{
	constants.ContactStatusNew,
	constants.ContactStatusRead,
	constants.ContactStatusReplied,
	constants.ContactStatusArchived,
}

// VolunteerStatuses lists the statuses used to filter applications.
var VolunteerStatuses = []string{
	constants.VolunteerStatusPending,
	constants.VolunteerStatusApproved,
	constants.VolunteerStatusRejected,
}

type LoginForm struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required,min=6,max=128"`
	Next     string `form:"next"`
}

func (f *LoginForm) ToCredentials() backend.Credentials {
	return backend.Credentials{
		Email:    strings.TrimSpace(f.Email),
		Password: f.Password,
	}
}

// SafeNext returns Next when it is a local admin path, otherwise /admin.
func (f *LoginForm) SafeNext() string {
	next := strings.TrimSpace(f.Next)
	if strings.HasPrefix(next, "/admin") && !strings.HasPrefix(next, "//") && !strings.Contains(next, `\`) {
		return next
	}
	return "/admin"
}

type StatusForm struct {
	Status string `form:"status" validate:"required,oneof=new read replied archived"`
}

type ReviewForm struct {
	Status string `form:"status" validate:"required,oneof=approved rejected"`
	Notes  string `form:"notes" validate:"max=1000"`
}

func (f *ReviewForm) ToReview() backend.VolunteerReview {
	return backend.VolunteerReview{
		Status: f.Status,
		Notes:  strings.TrimSpace(f.Notes),
	}
}

type SettingsForm struct {
	SiteName string `form:"site_name" validate:"required,max=100"`
	Email    string `form:"email" validate:"required,email"`
	Phone    string `form:"phone" validate:"omitempty,max=40"`
	Address  string `form:"address" validate:"max=300"`
	Logo     string `form:"logo" validate:"omitempty,url"`
}

// SettingsFormFrom fills the form from the current settings.
func SettingsFormFrom(s backend.Settings) SettingsForm {
	return SettingsForm{
		SiteName: s.SiteName,
		Email:    s.Email,
		Phone:    s.Phone,
		Address:  s.Address,
		Logo:     s.Logo,
	}
}

func (f *SettingsForm) Values() map[string]string {
	return map[string]string{
		"site_name": f.SiteName,
		"email":     f.Email,
		"phone":     f.Phone,
		"address":   f.Address,
		"logo":      f.Logo,
	}
}

// ToSettings applies the form onto current, keeping fields the form does not edit.
func (f *SettingsForm) ToSettings(current backend.Settings) backend.Settings {
	current.SiteName = strings.TrimSpace(f.SiteName)
	current.Email = strings.TrimSpace(f.Email)
	current.Phone = strings.TrimSpace(f.Phone)
	current.Address = strings.TrimSpace(f.Address)
	current.Logo = strings.TrimSpace(f.Logo)
	return current
}

type UploadForm struct {
	Folder string `form:"folder"`
}
