// Package admin serves the administration area: sign-in, dashboard, inbox
// moderation, users and site settings. All data lives in the backend.
package admin

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ilim-academy/website/internal/infrastructure/backend"
	"github.com/ilim-academy/website/internal/interfaces/dto"
	"github.com/ilim-academy/website/internal/interfaces/http/handlers/common"
	"github.com/ilim-academy/website/internal/interfaces/http/middleware"
	"github.com/ilim-academy/website/internal/interfaces/http/view"
	apperrors "github.com/ilim-academy/website/internal/shared/errors"
	"github.com/ilim-academy/website/internal/shared/utils"
)

type AuthAPI interface {
	Login(ctx context.Context, creds backend.Credentials) (*backend.Session, error)
	Logout(ctx context.Context) error
}

type AuthHandler struct {
	*common.PageBase
	auth AuthAPI
}

func NewAuthHandler(base *common.PageBase, auth AuthAPI) *AuthHandler {
	return &AuthHandler{
		PageBase: base,
		auth:     auth,
	}
}

// LoginPage handles GET /admin/login
func (h *AuthHandler) LoginPage(c *gin.Context) {
	if middleware.HasSession(c) && c.Query("expired") == "" {
		c.Redirect(http.StatusSeeOther, "/admin")
		return
	}

	page := h.NewPage(c, "")
	page.Form["next"] = c.Query("next")
	if c.Query("expired") != "" {
		common.SetAlert(page, view.AlertInfo, page.T("admin.session_expired"))
	}
	h.Render(c, http.StatusOK, "admin_login", page)
}

// Login handles POST /admin/login
func (h *AuthHandler) Login(c *gin.Context) {
	var form dto.LoginForm
	page := h.NewPage(c, "")
	if err := c.ShouldBind(&form); err != nil {
		common.SetAlert(page, view.AlertError, page.T("messages.validation_failed"))
		h.Render(c, http.StatusBadRequest, "admin_login", page)
		return
	}
	page.Form["email"] = form.Email
	page.Form["next"] = form.Next

	if fields, err := utils.ValidateStruct(&form); err != nil {
		common.SetFieldErrors(page, fields)
		h.Render(c, http.StatusUnprocessableEntity, "admin_login", page)
		return
	}

	session, err := h.auth.Login(c.Request.Context(), form.ToCredentials())
	if err != nil {
		h.GetLogger().Ctx(c.Request.Context()).Warnw("admin login failed", "email", form.Email, "error", err)
		status := http.StatusBadGateway
		if appErr := apperrors.GetAppError(err); appErr != nil && appErr.Code >= 400 && appErr.Code < 500 {
			status = appErr.Code
		}
		common.SetAlert(page, view.AlertError, apperrors.Message(err, page.T("messages.error_generic")))
		h.Render(c, status, "admin_login", page)
		return
	}

	cfg := h.CookieConfig()
	maxAge := int(cfg.SessionMaxAge.Seconds())
	utils.SetAuthCookies(c, cfg, session.AccessToken, session.RefreshToken, maxAge)
	utils.SetCSRFCookie(c, cfg, maxAge)

	h.GetLogger().Ctx(c.Request.Context()).Infow("admin signed in", "user_id", session.User.ID, "role", session.User.Role)
	c.Redirect(http.StatusSeeOther, form.SafeNext())
}

// Logout handles POST /admin/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.auth.Logout(c.Request.Context()); err != nil {
		h.GetLogger().Ctx(c.Request.Context()).Warnw("backend logout failed", "error", err)
	}
	h.ClearSession(c)
	c.Redirect(http.StatusSeeOther, middleware.LoginPath)
}
