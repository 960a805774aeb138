package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilim-academy/website/internal/domain/locale"
	"github.com/ilim-academy/website/internal/infrastructure/ratelimit"
	"github.com/ilim-academy/website/internal/shared/config"
	"github.com/ilim-academy/website/internal/shared/constants"
	"github.com/ilim-academy/website/internal/shared/logger"
	"github.com/ilim-academy/website/internal/shared/utils"
)

var testCookies = config.CookieConfig{Path: "/", SameSite: "Lax"}

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func cookiesOf(w *httptest.ResponseRecorder) map[string]*http.Cookie {
	out := make(map[string]*http.Cookie)
	for _, c := range (&http.Response{Header: w.Header()}).Cookies() {
		out[c.Name] = c
	}
	return out
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("backend-secret"))
	require.NoError(t, err)
	return token
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, GetRequestID(c)) })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := w.Header().Get(constants.HeaderXRequestID)
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(constants.HeaderXRequestID, "abc-123")
	w = serve(r, req)
	assert.Equal(t, "abc-123", w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(constants.HeaderXRequestID, strings.Repeat("x", 100))
	w = serve(r, req)
	assert.Len(t, w.Body.String(), 36)
}

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		cookie     string
		accept     string
		wantLang   locale.Language
		wantSource LanguageSource
	}{
		{"query wins", "/?lang=tr", "en", "ar", locale.Turkish, SourceQuery},
		{"cookie over header", "/", "en", "tr", locale.English, SourceCookie},
		{"header", "/", "", "tr-TR,tr;q=0.9", locale.Turkish, SourceHeader},
		{"default", "/", "", "de-DE", locale.Arabic, SourceDefault},
		{"unsupported query skipped", "/?lang=fr", "en", "", locale.English, SourceCookie},
		{"unsupported cookie skipped", "/", "xx", "en", locale.English, SourceHeader},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.cookie != "" {
				c.Request.AddCookie(&http.Cookie{Name: utils.LanguageCookie, Value: tt.cookie})
			}
			if tt.accept != "" {
				c.Request.Header.Set(constants.HeaderAcceptLang, tt.accept)
			}

			lang, source := DetectLanguage(c, locale.Arabic)
			assert.Equal(t, tt.wantLang, lang)
			assert.Equal(t, tt.wantSource, source)
		})
	}
}

func TestLanguage_SetsDocumentAndPersistsQuery(t *testing.T) {
	r := gin.New()
	r.Use(Language(locale.Arabic, testCookies))
	r.GET("/", func(c *gin.Context) {
		doc := GetDocument(c)
		c.String(http.StatusOK, "%s %s %s", GetLanguage(c), doc.Lang, doc.Dir)
	})

	w := serve(r, httptest.NewRequest(http.MethodGet, "/?lang=en", nil))
	assert.Equal(t, "en en ltr", w.Body.String())
	assert.Equal(t, "en", w.Header().Get("Content-Language"))
	require.Contains(t, cookiesOf(w), utils.LanguageCookie)
	assert.Equal(t, "en", cookiesOf(w)[utils.LanguageCookie].Value)

	w = serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "ar ar rtl", w.Body.String())
	assert.NotContains(t, cookiesOf(w), utils.LanguageCookie)
}

func TestGetLanguage_WithoutMiddleware(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Equal(t, locale.Arabic, GetLanguage(c))
	assert.Equal(t, locale.RTL, GetDocument(c).Dir)
}

func newCSRFRouter() *gin.Engine {
	r := gin.New()
	r.Use(CSRF(testCookies, nil, "/admin/login"))
	r.GET("/form", func(c *gin.Context) { c.String(http.StatusOK, CSRFToken(c)) })
	r.POST("/submit", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.POST("/admin/login", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	return r
}

func TestCSRF_IssuesTokenOnSafeRequest(t *testing.T) {
	r := newCSRFRouter()

	w := serve(r, httptest.NewRequest(http.MethodGet, "/form", nil))
	issued := cookiesOf(w)[utils.CSRFTokenCookie]
	require.NotNil(t, issued)
	assert.Equal(t, issued.Value, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/form", nil)
	req.AddCookie(&http.Cookie{Name: utils.CSRFTokenCookie, Value: "existing"})
	w = serve(r, req)
	assert.Equal(t, "existing", w.Body.String())
	assert.NotContains(t, cookiesOf(w), utils.CSRFTokenCookie)
}

func TestCSRF_Validation(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		cookie     string
		header     string
		field      string
		wantStatus int
	}{
		{"form field matches", "/submit", "tok", "", "tok", http.StatusNoContent},
		{"header matches", "/submit", "tok", "tok", "", http.StatusNoContent},
		{"missing cookie", "/submit", "", "tok", "", http.StatusForbidden},
		{"missing submitted token", "/submit", "tok", "", "", http.StatusForbidden},
		{"mismatch", "/submit", "tok", "", "other", http.StatusForbidden},
		{"exempt path", "/admin/login", "", "", "", http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := url.Values{}
			if tt.field != "" {
				form.Set(utils.CSRFTokenField, tt.field)
			}
			req := httptest.NewRequest(http.MethodPost, tt.path, strings.NewReader(form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: utils.CSRFTokenCookie, Value: tt.cookie})
			}
			if tt.header != "" {
				req.Header.Set(utils.CSRFTokenHeader, tt.header)
			}

			w := serve(newCSRFRouter(), req)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestCSRF_UsesRejector(t *testing.T) {
	r := gin.New()
	r.Use(CSRF(testCookies, func(c *gin.Context, status int, message string) {
		c.String(status, "page: %s", message)
	}))
	r.POST("/submit", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := serve(r, httptest.NewRequest(http.MethodPost, "/submit", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "page: missing CSRF token", w.Body.String())

	req := httptest.NewRequest(http.MethodPost, "/submit", nil)
	req.Header.Set("Accept", "application/json")
	w = serve(r, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func newAuthRouter(now time.Time) *gin.Engine {
	m := NewAuthMiddleware(testCookies, logger.Nop())
	m.now = func() time.Time { return now }

	r := gin.New()
	admin := r.Group("/admin", m.RequireAuth())
	admin.GET("/contacts", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(constants.ContextKeyToken))
	})
	return r
}

func TestRequireAuth_NoCookieRedirectsToLogin(t *testing.T) {
	w := serve(newAuthRouter(time.Now()), httptest.NewRequest(http.MethodGet, "/admin/contacts?page=2", nil))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/login?next=%2Fadmin%2Fcontacts%3Fpage%3D2", w.Header().Get("Location"))
}

func TestRequireAuth_ExpiredTokenClearsSession(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	req := httptest.NewRequest(http.MethodGet, "/admin/contacts", nil)
	req.AddCookie(&http.Cookie{Name: utils.AccessTokenCookie, Value: signedToken(t, now.Add(-time.Minute))})
	req.AddCookie(&http.Cookie{Name: utils.RefreshTokenCookie, Value: "refresh"})

	w := serve(newAuthRouter(now), req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "expired=1")
	cookies := cookiesOf(w)
	require.Contains(t, cookies, utils.AccessTokenCookie)
	require.Contains(t, cookies, utils.RefreshTokenCookie)
	assert.Equal(t, -1, cookies[utils.AccessTokenCookie].MaxAge)
	assert.Equal(t, -1, cookies[utils.RefreshTokenCookie].MaxAge)
}

func TestRequireAuth_ValidTokenForwarded(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	token := signedToken(t, now.Add(time.Hour))
	req := httptest.NewRequest(http.MethodGet, "/admin/contacts", nil)
	req.AddCookie(&http.Cookie{Name: utils.AccessTokenCookie, Value: token})

	w := serve(newAuthRouter(now), req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, token, w.Body.String())
}

func TestRequireAuth_OpaqueTokenLeftToBackend(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/admin/contacts", nil)
	req.AddCookie(&http.Cookie{Name: utils.AccessTokenCookie, Value: "opaque"})

	w := serve(newAuthRouter(time.Now()), req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "opaque", w.Body.String())
}

func TestRequireAuth_JSONClientsGet401(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/admin/contacts", nil)
	req.Header.Set("Accept", "application/json")

	w := serve(newAuthRouter(time.Now()), req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), constants.ErrMsgUnauthorized)
}

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string, ratelimit.RateLimitConfig) (bool, error) {
	return false, errors.New("redis down")
}

func (failingLimiter) Reset(context.Context, string) error { return nil }

func TestRateLimiter_Limit(t *testing.T) {
	rl := NewRateLimiter(ratelimit.NewMemoryRateLimiter(), ratelimit.RateLimitConfig{RequestsPerMinute: 2}, "forms", logger.Nop())

	r := gin.New()
	r.POST("/contact", rl.Limit(func(c *gin.Context, status int, message string) {
		c.String(status, "slow down")
	}), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	for i := 0; i < 2; i++ {
		w := serve(r, httptest.NewRequest(http.MethodPost, "/contact", nil))
		assert.Equal(t, http.StatusNoContent, w.Code)
	}

	w := serve(r, httptest.NewRequest(http.MethodPost, "/contact", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "slow down", w.Body.String())
}

func TestRateLimiter_StoreFailureAllows(t *testing.T) {
	rl := NewRateLimiter(failingLimiter{}, ratelimit.RateLimitConfig{RequestsPerMinute: 1}, "forms", logger.Nop())

	r := gin.New()
	r.POST("/contact", rl.Limit(nil), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := serve(r, httptest.NewRequest(http.MethodPost, "/contact", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(Recovery(logger.Nop(), func(c *gin.Context, status int, message string) {
		c.String(status, "error page")
	}))
	r.GET("/panic", func(c *gin.Context) { panic("boom") })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "error page", w.Body.String())
}

func TestErrorHandler(t *testing.T) {
	r := gin.New()
	r.Use(ErrorHandler(logger.Nop()))
	r.POST("/upload", func(c *gin.Context) {
		_ = c.Error(errors.New("disk on fire"))
	})

	w := serve(r, httptest.NewRequest(http.MethodPost, "/upload", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), constants.ErrMsgInternalServerError)
	assert.NotContains(t, w.Body.String(), "disk on fire")
}

func TestSecurityHeadersAndCORS(t *testing.T) {
	r := gin.New()
	r.Use(SecurityHeaders(), CORS([]string{"https://ilim.academy"}))
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://ilim.academy")
	w := serve(r, req)
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "https://ilim.academy", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/health", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = serve(r, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
