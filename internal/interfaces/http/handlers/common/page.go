// Package common provides shared HTTP handler utilities: page models, error
// pages and the admin session policy.
package common

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ilim-academy/website/internal/domain/locale"
	"github.com/ilim-academy/website/internal/infrastructure/backend"
	"github.com/ilim-academy/website/internal/interfaces/http/middleware"
	"github.com/ilim-academy/website/internal/interfaces/http/view"
	"github.com/ilim-academy/website/internal/shared/config"
	apperrors "github.com/ilim-academy/website/internal/shared/errors"
	"github.com/ilim-academy/website/internal/shared/fetch"
	"github.com/ilim-academy/website/internal/shared/logger"
	"github.com/ilim-academy/website/internal/shared/utils"
)

const contextKeySessionCleared = "session_cleared"

// SettingsSource provides the site settings shown in the layout.
type SettingsSource interface {
	Current(ctx context.Context) fetch.State[backend.Settings]
}

// PageBase builds page models and renders them. Every handler that renders
// HTML embeds one.
type PageBase struct {
	resolver     *locale.Resolver
	settings     SettingsSource
	cookieConfig config.CookieConfig
	logger       logger.Interface
}

func NewPageBase(resolver *locale.Resolver, settings SettingsSource, cookieConfig config.CookieConfig, log logger.Interface) *PageBase {
	return &PageBase{
		resolver:     resolver,
		settings:     settings,
		cookieConfig: cookieConfig,
		logger:       log,
	}
}

// GetLogger returns the logger instance.
func (b *PageBase) GetLogger() logger.Interface {
	return b.logger
}

// CookieConfig returns the cookie attributes used for session cookies.
func (b *PageBase) CookieConfig() config.CookieConfig {
	return b.cookieConfig
}

// NewPage resolves the common bundle and topic's bundle for the request
// language, and loads the site settings.
func (b *PageBase) NewPage(c *gin.Context, topic locale.Topic) *view.Page {
	doc := middleware.GetDocument(c)
	common := b.resolver.Resolve(locale.TopicCommon, doc.Lang)

	page := &view.Page{
		Doc:         *doc,
		Path:        c.Request.URL.Path,
		Topic:       topic,
		Common:      common.Bundle,
		Form:        map[string]string{},
		FieldErrors: map[string]string{},
		CSRFToken:   middleware.CSRFToken(c),
	}
	page.Languages = languageOptions(common.Bundle, doc.Lang)

	if topic != "" && topic != locale.TopicCommon {
		res := b.resolver.Resolve(topic, doc.Lang)
		page.Content = res.Bundle
		page.Defaulted = res.Defaulted
	}

	if b.settings != nil {
		state := b.settings.Current(c.Request.Context())
		if state.Data != nil {
			page.Settings = *state.Data
		}
		if state.Failed() {
			page.SettingsErr = state.Err
		}
	}

	return page
}

// NewAdminPage is NewPage for the admin area.
func (b *PageBase) NewAdminPage(c *gin.Context) *view.Page {
	page := b.NewPage(c, locale.TopicCommon)
	page.Admin = true
	return page
}

func languageOptions(common locale.Bundle, active locale.Language) []view.LanguageOption {
	langs := locale.Languages()
	out := make([]view.LanguageOption, 0, len(langs))
	for _, l := range langs {
		label := common.String("languages." + l.String())
		if label == "" {
			label = l.String()
		}
		out = append(out, view.LanguageOption{Code: l, Label: label, Active: l == active})
	}
	return out
}

// Render writes page with the named template.
func (b *PageBase) Render(c *gin.Context, status int, name string, page *view.Page) {
	c.HTML(status, name, page)
}

// RenderError renders the error page. It matches middleware.Rejector.
func (b *PageBase) RenderError(c *gin.Context, status int, message string) {
	page := b.NewPage(c, locale.TopicCommon)
	page.Data = errorText(page, status, message)
	b.Render(c, status, "error", page)
}

// NotFound renders the 404 page.
func (b *PageBase) NotFound(c *gin.Context) {
	if middleware.WantsJSON(c) {
		utils.ErrorResponse(c, http.StatusNotFound, "not found")
		return
	}
	b.RenderError(c, http.StatusNotFound, "")
}

func errorText(page *view.Page, status int, message string) string {
	var key string
	switch {
	case status == http.StatusNotFound:
		key = "messages.not_found"
	case status == http.StatusForbidden:
		key = "messages.forbidden"
	case status == http.StatusTooManyRequests:
		key = "messages.rate_limited"
	case status >= http.StatusInternalServerError:
		key = "messages.error_generic"
	}
	if key != "" {
		if text := page.T(key); text != "" {
			return text
		}
	}
	if message != "" {
		return message
	}
	return apperrors.GenericMessage
}

// SetFieldErrors localizes validation failures onto page.
func SetFieldErrors(page *view.Page, fields []utils.FieldError) {
	for _, f := range fields {
		msg := page.T("validation." + f.Tag)
		if msg == "" {
			msg = page.T("messages.validation_failed")
		}
		page.FieldErrors[f.Field] = msg
	}
}

// SetAlert shows a banner above the page content.
func SetAlert(page *view.Page, kind view.AlertKind, message string) {
	page.Alert = &view.Alert{Kind: kind, Message: message}
}
