package utils

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ilim-academy/website/internal/shared/config"
)

const (
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"
	LanguageCookie     = "lang"
	CSRFTokenCookie    = "csrf_token"
	CSRFTokenHeader    = "X-CSRF-Token"
	CSRFTokenField     = "csrf_token"

	languageCookieMaxAge = int(365 * 24 * time.Hour / time.Second)
	csrfTokenBytes       = 32
)

// SetAuthCookies stores the backend session tokens as HttpOnly cookies.
func SetAuthCookies(c *gin.Context, cookieConfig config.CookieConfig, accessToken, refreshToken string, maxAge int) {
	c.SetSameSite(parseSameSite(cookieConfig.SameSite))
	c.SetCookie(AccessTokenCookie, accessToken, maxAge, cookieConfig.Path, cookieConfig.Domain, cookieConfig.Secure, true)
	c.SetCookie(RefreshTokenCookie, refreshToken, maxAge, cookieConfig.Path, cookieConfig.Domain, cookieConfig.Secure, true)
}

// ClearAuthCookies removes both session tokens.
func ClearAuthCookies(c *gin.Context, cookieConfig config.CookieConfig) {
	c.SetSameSite(parseSameSite(cookieConfig.SameSite))
	c.SetCookie(AccessTokenCookie, "", -1, cookieConfig.Path, cookieConfig.Domain, cookieConfig.Secure, true)
	c.SetCookie(RefreshTokenCookie, "", -1, cookieConfig.Path, cookieConfig.Domain, cookieConfig.Secure, true)
}

// GetTokenFromCookie retrieves a token cookie, empty when absent.
func GetTokenFromCookie(c *gin.Context, cookieName string) string {
	token, err := c.Cookie(cookieName)
	if err != nil {
		return ""
	}
	return token
}

// SetLanguageCookie persists the selected interface language.
func SetLanguageCookie(c *gin.Context, cookieConfig config.CookieConfig, lang string) {
	c.SetSameSite(parseSameSite(cookieConfig.SameSite))
	c.SetCookie(LanguageCookie, lang, languageCookieMaxAge, cookieConfig.Path, cookieConfig.Domain, cookieConfig.Secure, false)
}

// SetCSRFCookie generates a random double-submit token, stores it as a
// non-HttpOnly cookie and returns it for embedding in forms.
func SetCSRFCookie(c *gin.Context, cookieConfig config.CookieConfig, maxAge int) string {
	token := generateCSRFToken()
	c.SetSameSite(parseSameSite(cookieConfig.SameSite))
	c.SetCookie(CSRFTokenCookie, token, maxAge, cookieConfig.Path, cookieConfig.Domain, cookieConfig.Secure, false)
	return token
}

// ClearCSRFCookie removes the double-submit token.
func ClearCSRFCookie(c *gin.Context, cookieConfig config.CookieConfig) {
	c.SetSameSite(parseSameSite(cookieConfig.SameSite))
	c.SetCookie(CSRFTokenCookie, "", -1, cookieConfig.Path, cookieConfig.Domain, cookieConfig.Secure, false)
}

// generateCSRFToken generates a cryptographically random hex token.
func generateCSRFToken() string {
	b := make([]byte, csrfTokenBytes)
	if _, err := rand.Read(b); err != nil {
		panic("csrf: failed to generate random token: " + err.Error())
	}
	return hex.EncodeToString(b)
}

// parseSameSite converts string to http.SameSite
func parseSameSite(sameSite string) http.SameSite {
	switch sameSite {
	case "Strict":
		return http.SameSiteStrictMode
	case "None":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
