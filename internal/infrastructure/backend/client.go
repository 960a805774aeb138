// Package backend is the typed client for the institution's REST API.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ilim-academy/website/internal/shared/constants"
	apperrors "github.com/ilim-academy/website/internal/shared/errors"
	"github.com/ilim-academy/website/internal/shared/logger"
)

const (
	defaultTimeout       = 15 * time.Second
	defaultUploadTimeout = 30 * time.Second
)

// Client talks to the backend API. Each resource group is exposed as a
// service; every operation issues exactly one HTTP request.
type Client struct {
	baseURL       string
	httpClient    *http.Client
	uploadTimeout time.Duration
	logger        logger.Interface

	Contacts   *ContactsService
	Volunteers *VolunteersService
	Users      *UsersService
	Auth       *AuthService
	Settings   *SettingsService
	Uploads    *UploadsService
	Dashboard  *DashboardService
}

// Option is a function that configures the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		client.httpClient = c
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(client *Client) {
		if d > 0 {
			client.httpClient.Timeout = d
		}
	}
}

// WithUploadTimeout bounds the image upload call.
func WithUploadTimeout(d time.Duration) Option {
	return func(client *Client) {
		if d > 0 {
			client.uploadTimeout = d
		}
	}
}

func WithLogger(l logger.Interface) Option {
	return func(client *Client) {
		if l != nil {
			client.logger = l
		}
	}
}

// NewClient creates a backend client rooted at baseURL
// (e.g. "https://api.example.org/api").
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		uploadTimeout: defaultUploadTimeout,
		logger:        logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.Contacts = &ContactsService{client: c}
	c.Volunteers = &VolunteersService{client: c}
	c.Users = &UsersService{client: c}
	c.Auth = &AuthService{client: c}
	c.Settings = &SettingsService{client: c}
	c.Uploads = &UploadsService{client: c}
	c.Dashboard = &DashboardService{client: c}
	return c
}

type accessTokenKey struct{}

// WithAccessToken returns a context whose backend calls carry token as a
// bearer credential.
func WithAccessToken(ctx context.Context, token string) context.Context {
	if token == "" {
		return ctx
	}
	return context.WithValue(ctx, accessTokenKey{}, token)
}

func accessToken(ctx context.Context) string {
	token, _ := ctx.Value(accessTokenKey{}).(string)
	return token
}

// envelope is the wire wrapper around every response payload.
type envelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   json.RawMessage `json:"error"`
}

func (e envelope) errorMessage() string {
	if e.Message != "" {
		return e.Message
	}
	if len(e.Error) == 0 {
		return ""
	}
	var text string
	if err := json.Unmarshal(e.Error, &text); err == nil {
		return text
	}
	var obj struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(e.Error, &obj); err == nil {
		return obj.Message
	}
	return ""
}

func hasData(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// doJSON sends body as JSON and decodes the envelope's data into result.
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body any, result any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set(constants.HeaderContentType, constants.ContentTypeJSON)
	}

	return c.do(req, result)
}

// do sends req and validates the response envelope.
func (c *Client) do(req *http.Request, result any) error {
	ctx := req.Context()
	log := c.logger.Ctx(ctx)

	req.Header.Set("Accept", constants.ContentTypeJSON)
	if token := accessToken(ctx); token != "" {
		req.Header.Set(constants.HeaderAuthorization, "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warnw("backend request failed",
			"method", req.Method,
			"path", req.URL.Path,
			"error", err,
		)
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	log.Debugw("backend request",
		"method", req.Method,
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"latency", time.Since(start),
	)

	var env envelope
	decodeErr := json.Unmarshal(respBody, &env)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := ""
		if decodeErr == nil {
			msg = env.errorMessage()
		}
		log.Warnw("backend returned error status",
			"method", req.Method,
			"path", req.URL.Path,
			"status", resp.StatusCode,
			"message", msg,
		)
		return apperrors.FromStatus(resp.StatusCode, msg)
	}

	if decodeErr != nil {
		if result == nil && len(bytes.TrimSpace(respBody)) == 0 {
			return nil
		}
		return apperrors.NewEnvelopeError("invalid response body", decodeErr.Error())
	}

	if env.Success != nil && !*env.Success {
		return &apperrors.AppError{
			Type:    apperrors.ErrorTypeBadRequest,
			Message: env.errorMessage(),
			Code:    resp.StatusCode,
		}
	}

	if result == nil {
		return nil
	}

	if !hasData(env.Data) {
		return apperrors.NewEnvelopeError("response has no data")
	}
	if err := json.Unmarshal(env.Data, result); err != nil {
		return apperrors.NewEnvelopeError("response data does not match contract", err.Error())
	}

	return nil
}
