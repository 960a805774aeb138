package middleware

import (
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/ilim-academy/website/internal/infrastructure/backend"
	"github.com/ilim-academy/website/internal/shared/config"
	"github.com/ilim-academy/website/internal/shared/constants"
	"github.com/ilim-academy/website/internal/shared/logger"
	"github.com/ilim-academy/website/internal/shared/utils"
)

const LoginPath = "/admin/login"

// AuthMiddleware guards the admin area. Tokens are issued and verified by the
// backend; the site only forwards them and drops ones that have visibly expired.
type AuthMiddleware struct {
	cookieConfig config.CookieConfig
	logger       logger.Interface
	now          func() time.Time
}

func NewAuthMiddleware(cookieConfig config.CookieConfig, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		cookieConfig: cookieConfig,
		logger:       logger,
		now:          time.Now,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := utils.GetTokenFromCookie(c, utils.AccessTokenCookie)
		if token == "" {
			m.redirectToLogin(c, false)
			return
		}

		if tokenExpired(token, m.now()) {
			m.logger.Ctx(c.Request.Context()).Infow("access token expired, clearing session")
			utils.ClearAuthCookies(c, m.cookieConfig)
			utils.ClearCSRFCookie(c, m.cookieConfig)
			m.redirectToLogin(c, true)
			return
		}

		c.Set(constants.ContextKeyToken, token)
		c.Request = c.Request.WithContext(backend.WithAccessToken(c.Request.Context(), token))

		c.Next()
	}
}

// OptionalAuth forwards the token when present without requiring it.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := utils.GetTokenFromCookie(c, utils.AccessTokenCookie)
		if token != "" && !tokenExpired(token, m.now()) {
			c.Set(constants.ContextKeyToken, token)
			c.Request = c.Request.WithContext(backend.WithAccessToken(c.Request.Context(), token))
		}
		c.Next()
	}
}

func (m *AuthMiddleware) redirectToLogin(c *gin.Context, expired bool) {
	if WantsJSON(c) {
		utils.ErrorResponse(c, http.StatusUnauthorized, constants.ErrMsgUnauthorized)
		c.Abort()
		return
	}

	q := url.Values{}
	if c.Request.Method == http.MethodGet && c.Request.URL.Path != LoginPath {
		q.Set("next", c.Request.URL.RequestURI())
	}
	if expired {
		q.Set("expired", "1")
	}

	target := LoginPath
	if len(q) > 0 {
		target += "?" + q.Encode()
	}
	c.Redirect(http.StatusSeeOther, target)
	c.Abort()
}

// HasSession reports whether the request carries an access token cookie.
func HasSession(c *gin.Context) bool {
	return c.GetString(constants.ContextKeyToken) != "" || utils.GetTokenFromCookie(c, utils.AccessTokenCookie) != ""
}

// tokenExpired reads the exp claim without verifying the signature. Tokens
// that are not JWTs, or carry no exp, are left for the backend to judge.
func tokenExpired(token string, now time.Time) bool {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return !claims.ExpiresAt.After(now)
}
