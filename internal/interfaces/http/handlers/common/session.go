package common

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ilim-academy/website/internal/interfaces/http/middleware"
	apperrors "github.com/ilim-academy/website/internal/shared/errors"
	"github.com/ilim-academy/website/internal/shared/fetch"
	"github.com/ilim-academy/website/internal/shared/utils"
)

// ClearSession drops both backend tokens and the CSRF cookie.
func (b *PageBase) ClearSession(c *gin.Context) {
	utils.ClearAuthCookies(c, b.cookieConfig)
	utils.ClearCSRFCookie(c, b.cookieConfig)
	c.Set(contextKeySessionCleared, true)
}

// SessionHook returns an error hook that clears the session when the backend
// answers 401.
func (b *PageBase) SessionHook(c *gin.Context) fetch.ErrorHook {
	return func(ctx context.Context, err error) {
		if !apperrors.IsUnauthorized(err) {
			return
		}
		b.logger.Ctx(ctx).Infow("backend rejected session, clearing tokens", "path", c.Request.URL.Path)
		b.ClearSession(c)
	}
}

// SessionCleared reports whether ClearSession ran during this request.
func SessionCleared(c *gin.Context) bool {
	return c.GetBool(contextKeySessionCleared)
}

// RedirectToLogin sends the browser to the login page after the session was
// dropped; JSON clients get a 401.
func RedirectToLogin(c *gin.Context) {
	if middleware.WantsJSON(c) {
		utils.ErrorResponse(c, http.StatusUnauthorized, "session expired")
		return
	}
	c.Redirect(http.StatusSeeOther, middleware.LoginPath+"?expired=1")
}

// HandleMutationError applies the session policy to a failed write: a 401
// clears the session and reports true after redirecting.
func (b *PageBase) HandleMutationError(c *gin.Context, err error) bool {
	if !apperrors.IsUnauthorized(err) {
		return false
	}
	b.ClearSession(c)
	RedirectToLogin(c)
	return true
}

// MutationFailed reports a failed admin write: 401 ends the session, anything
// else renders the error page with the backend's status and message.
func (b *PageBase) MutationFailed(c *gin.Context, err error) {
	b.logger.Ctx(c.Request.Context()).Warnw("admin action failed", "path", c.Request.URL.Path, "error", err)
	if b.HandleMutationError(c, err) {
		return
	}
	status := http.StatusBadGateway
	if appErr := apperrors.GetAppError(err); appErr != nil && appErr.Code >= http.StatusBadRequest {
		status = appErr.Code
	}
	b.RenderError(c, status, apperrors.Message(err, apperrors.GenericMessage))
}
