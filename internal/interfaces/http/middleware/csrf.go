package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ilim-academy/website/internal/shared/config"
	"github.com/ilim-academy/website/internal/shared/utils"
)

const (
	contextKeyCSRFToken = "csrf_token"
	csrfCookieMaxAge    = 12 * 60 * 60
)

// CSRF validates mutating requests with the Double Submit Cookie pattern: the
// csrf_token cookie must match either the X-CSRF-Token header or the
// csrf_token form field. Safe requests get a token issued when the cookie is
// missing, so every rendered form can embed one.
func CSRF(cookieConfig config.CookieConfig, onReject Rejector, exemptPaths ...string) gin.HandlerFunc {
	exempt := make(map[string]struct{}, len(exemptPaths))
	for _, p := range exemptPaths {
		exempt[p] = struct{}{}
	}

	return func(c *gin.Context) {
		cookieToken, _ := c.Cookie(utils.CSRFTokenCookie)

		if isSafeMethod(c.Request.Method) {
			if cookieToken == "" {
				cookieToken = utils.SetCSRFCookie(c, cookieConfig, csrfCookieMaxAge)
			}
			c.Set(contextKeyCSRFToken, cookieToken)
			c.Next()
			return
		}

		if _, ok := exempt[c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		if cookieToken == "" {
			reject(c, onReject, http.StatusForbidden, "missing CSRF token")
			return
		}

		submitted := c.GetHeader(utils.CSRFTokenHeader)
		if submitted == "" {
			submitted = c.PostForm(utils.CSRFTokenField)
		}
		if submitted == "" {
			reject(c, onReject, http.StatusForbidden, "missing CSRF token")
			return
		}

		// Constant-time comparison to prevent timing attacks
		if subtle.ConstantTimeCompare([]byte(cookieToken), []byte(submitted)) != 1 {
			reject(c, onReject, http.StatusForbidden, "invalid CSRF token")
			return
		}

		c.Set(contextKeyCSRFToken, cookieToken)
		c.Next()
	}
}

// CSRFToken returns the token to embed in forms rendered for this request.
func CSRFToken(c *gin.Context) string {
	return c.GetString(contextKeyCSRFToken)
}

// isSafeMethod returns true for HTTP methods that do not mutate state.
func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	default:
		return false
	}
}
