package testutil

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/ilim-academy/website/internal/domain/locale"
	"github.com/ilim-academy/website/internal/infrastructure/backend"
	localeloader "github.com/ilim-academy/website/internal/infrastructure/locale"
	"github.com/ilim-academy/website/internal/interfaces/http/handlers/common"
	"github.com/ilim-academy/website/internal/interfaces/http/middleware"
	"github.com/ilim-academy/website/internal/interfaces/http/view"
	"github.com/ilim-academy/website/internal/shared/config"
	"github.com/ilim-academy/website/internal/shared/fetch"
	"github.com/ilim-academy/website/internal/shared/logger"
	"github.com/ilim-academy/website/internal/shared/services/markdown"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// CookieConfig is the cookie setup used by handler tests.
var CookieConfig = config.CookieConfig{Path: "/", SameSite: "Lax", SessionMaxAge: time.Hour}

// StaticSettings is a SettingsSource that always returns the same state.
type StaticSettings struct {
	State fetch.State[backend.Settings]
}

func (s StaticSettings) Current(context.Context) fetch.State[backend.Settings] {
	return s.State
}

// Settings returns a successful settings state holding in.
func Settings(in backend.Settings) StaticSettings {
	return StaticSettings{State: fetch.State[backend.Settings]{Data: &in, Status: fetch.StatusSuccess}}
}

// NewPageBase returns a PageBase over the embedded locale bundles.
func NewPageBase(t *testing.T, settings common.SettingsSource) *common.PageBase {
	t.Helper()
	set, err := localeloader.NewLoader("", nil).Load()
	require.NoError(t, err)
	resolver := locale.NewResolver(set, locale.Arabic, nil)
	return common.NewPageBase(resolver, settings, CookieConfig, NewMockLogger())
}

// NewEngine returns an engine with the HTML renderer, language detection and
// request ids installed.
func NewEngine(t *testing.T) *gin.Engine {
	t.Helper()
	r, err := view.NewRenderer(markdown.NewRenderer())
	require.NoError(t, err)

	engine := gin.New()
	engine.HTMLRender = r
	engine.Use(middleware.RequestID(), middleware.Language(locale.Arabic, CookieConfig))
	return engine
}

// NewTestContext creates a test gin.Context with the given method, path, and optional body.
func NewTestContext(method, path string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()

	var req *http.Request
	if body != nil {
		jsonBytes, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, strings.NewReader(string(jsonBytes)))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	return c, w
}

// NewFormRequest builds a urlencoded POST request.
func NewFormRequest(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// Serve runs req through engine and returns the recorded response.
func Serve(engine *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

// Cookies returns the Set-Cookie headers of w keyed by name.
func Cookies(w *httptest.ResponseRecorder) map[string]*http.Cookie {
	out := make(map[string]*http.Cookie)
	for _, c := range (&http.Response{Header: w.Header()}).Cookies() {
		out[c.Name] = c
	}
	return out
}

// SetURLParam sets a URL parameter on the gin context.
func SetURLParam(c *gin.Context, key, value string) {
	c.Params = append(c.Params, gin.Param{Key: key, Value: value})
}

// SetQueryParams sets query parameters on the gin context.
func SetQueryParams(c *gin.Context, params map[string]string) {
	q := url.Values{}
	for k, v := range params {
		q.Set(k, v)
	}
	c.Request.URL.RawQuery = q.Encode()
}

// ParseResponse parses the JSON response body into the target struct.
func ParseResponse(w *httptest.ResponseRecorder, target interface{}) error {
	return json.Unmarshal(w.Body.Bytes(), target)
}

// APIResponse mirrors utils.APIResponse for test assertions.
type APIResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *ErrorInfo      `json:"error,omitempty"`
	Message string          `json:"message,omitempty"`
}

// ErrorInfo mirrors utils.ErrorInfo for test assertions.
type ErrorInfo struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// NewMockLogger returns a no-op logger.Interface for tests.
func NewMockLogger() logger.Interface {
	return &mockLogger{}
}

type mockLogger struct{}

func (m *mockLogger) Ctx(ctx context.Context) logger.Interface { return m }
func (m *mockLogger) With(args ...any) logger.Interface { return m }
func (m *mockLogger) Named(name string) logger.Interface { return m }
func (m *mockLogger) Debugw(msg string, keysAndValues ...interface{}) {}
func (m *mockLogger) Infow(msg string, keysAndValues ...interface{}) {}
func (m *mockLogger) Warnw(msg string, keysAndValues ...interface{}) {}
func (m *mockLogger) Errorw(msg string, keysAndValues ...interface{}) {}
