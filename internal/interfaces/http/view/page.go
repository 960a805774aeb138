// Package view holds the page models and the embedded HTML templates.
package view

import (
	"github.com/ilim-academy/website/internal/domain/locale"
	"github.com/ilim-academy/website/internal/infrastructure/backend"
)

// Document carries the <html> element attributes for one response. It is the
// request-scoped target of a language switch.
type Document struct {
	Lang locale.Language
	Dir  locale.Direction
}

// NewDocument returns the document attributes for lang.
func NewDocument(lang locale.Language) *Document {
	return &Document{Lang: lang, Dir: lang.Dir()}
}

func (d *Document) SetDirection(dir locale.Direction) {
	d.Dir = dir
}

func (d *Document) SetLanguage(lang locale.Language) {
	d.Lang = lang
}

type AlertKind string

const (
	AlertSuccess AlertKind = "success"
	AlertError   AlertKind = "error"
	AlertInfo    AlertKind = "info"
)

type Alert struct {
	Kind    AlertKind
	Message string
}

type LanguageOption struct {
	Code   locale.Language
	Label  string
	Active bool
}

// Page is the model every template renders.
type Page struct {
	Doc       Document
	Languages []LanguageOption
	Path      string
	Topic     locale.Topic
	Common    locale.Bundle
	Content   locale.Bundle
	// Defaulted is true when Content was served from the default language.
	Defaulted bool

	Settings    backend.Settings
	SettingsErr string

	Alert       *Alert
	Form        map[string]string
	FieldErrors map[string]string
	CSRFToken   string

	Admin bool
	Data  any
}

// T reads a string from the common bundle.
func (p *Page) T(path string) string {
	return p.Common.String(path)
}

// C reads a string from the page's topic bundle.
func (p *Page) C(path string) string {
	return p.Content.String(path)
}

func (p *Page) Items(path string) []locale.Bundle {
	return p.Content.Items(path)
}

func (p *Page) Strings(path string) []string {
	return p.Content.Strings(path)
}

// Value returns the submitted value of a form field.
func (p *Page) Value(field string) string {
	return p.Form[field]
}

// FieldError returns the localized error for a form field, if any.
func (p *Page) FieldError(field string) string {
	return p.FieldErrors[field]
}

// Title is the document title: the page's meta title followed by the site name.
func (p *Page) Title() string {
	site := p.Settings.SiteName
	if site == "" {
		site = p.T("site.name")
	}
	if title := p.C("meta.title"); title != "" {
		return title + " | " + site
	}
	return site
}

// Pager links the previous and next pages of a list view.
type Pager struct {
	Page       int
	TotalPages int
	Total      int
	PrevURL    string
	NextURL    string
}
