package admin

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ilim-academy/website/internal/infrastructure/backend"
	"github.com/ilim-academy/website/internal/interfaces/http/handlers/common"
	"github.com/ilim-academy/website/internal/interfaces/http/handlers/testutil"
	"github.com/ilim-academy/website/internal/interfaces/http/middleware"
	apperrors "github.com/ilim-academy/website/internal/shared/errors"
	"github.com/ilim-academy/website/internal/shared/fetch"
	"github.com/ilim-academy/website/internal/shared/utils"
)

type mockAPI struct {
	mock.Mock
}

func (m *mockAPI) Login(ctx context.Context, creds backend.Credentials) (*backend.Session, error) {
	args := m.Called(ctx, creds)
	if s, ok := args.Get(0).(*backend.Session); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAPI) Logout(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockAPI) Stats(ctx context.Context) (*backend.DashboardStats, error) {
	args := m.Called(ctx)
	if s, ok := args.Get(0).(*backend.DashboardStats); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockContacts struct {
	mock.Mock
}

func (m *mockContacts) List(ctx context.Context, params backend.ListParams) (*backend.ContactList, error) {
	args := m.Called(ctx, params)
	if l, ok := args.Get(0).(*backend.ContactList); ok {
		return l, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockContacts) UpdateStatus(ctx context.Context, id, status string) (*backend.Contact, error) {
	args := m.Called(ctx, id, status)
	if c, ok := args.Get(0).(*backend.Contact); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockContacts) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockVolunteers struct {
	mock.Mock
}

func (m *mockVolunteers) List(ctx context.Context, params backend.ListParams) (*backend.VolunteerList, error) {
	args := m.Called(ctx, params)
	if l, ok := args.Get(0).(*backend.VolunteerList); ok {
		return l, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockVolunteers) Review(ctx context.Context, id string, review backend.VolunteerReview) (*backend.Volunteer, error) {
	args := m.Called(ctx, id, review)
	if v, ok := args.Get(0).(*backend.Volunteer); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockVolunteers) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockUsers struct {
	mock.Mock
}

func (m *mockUsers) List(ctx context.Context, params backend.ListParams) (*backend.UserList, error) {
	args := m.Called(ctx, params)
	if l, ok := args.Get(0).(*backend.UserList); ok {
		return l, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUsers) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockSettings struct {
	mock.Mock
}

func (m *mockSettings) Refresh(ctx context.Context) fetch.State[backend.Settings] {
	return m.Called(ctx).Get(0).(fetch.State[backend.Settings])
}

func (m *mockSettings) Update(ctx context.Context, in backend.Settings) (*backend.Settings, error) {
	args := m.Called(ctx, in)
	if s, ok := args.Get(0).(*backend.Settings); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockUploader struct {
	mock.Mock
}

func (m *mockUploader) UploadImage(ctx context.Context, filename string, data []byte, folder string) (*backend.UploadResult, error) {
	args := m.Called(ctx, filename, data, folder)
	if r, ok := args.Get(0).(*backend.UploadResult); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

var currentSettings = backend.Settings{SiteName: "Ilim Academy", Email: "info@ilim.academy"}

type deps struct {
	api      *mockAPI
	contacts *mockContacts
	vols     *mockVolunteers
	users    *mockUsers
	settings *mockSettings
	uploader *mockUploader
}

func newAdminEngine(t *testing.T) (*gin.Engine, *deps) {
	t.Helper()
	d := &deps{
		api:      &mockAPI{},
		contacts: &mockContacts{},
		vols:     &mockVolunteers{},
		users:    &mockUsers{},
		settings: &mockSettings{},
		uploader: &mockUploader{},
	}
	base := testutil.NewPageBase(t, testutil.Settings(currentSettings))
	auth := NewAuthHandler(base, d.api)
	dashboard := NewDashboardHandler(base, d.api)
	contacts := NewContactHandler(base, d.contacts)
	volunteers := NewVolunteerHandler(base, d.vols)
	users := NewUserHandler(base, d.users)
	settings := NewSettingHandler(base, d.settings, d.uploader)

	engine := testutil.NewEngine(t)
	engine.GET("/admin/login", auth.LoginPage)
	engine.POST("/admin/login", auth.Login)

	group := engine.Group("/admin", middleware.NewAuthMiddleware(testutil.CookieConfig, testutil.NewMockLogger()).RequireAuth())
	group.POST("/logout", auth.Logout)
	group.GET("", dashboard.Dashboard)
	group.GET("/contacts", contacts.List)
	group.POST("/contacts/:id/status", contacts.UpdateStatus)
	group.POST("/contacts/:id/delete", contacts.Delete)
	group.GET("/volunteers", volunteers.List)
	group.POST("/volunteers/:id/review", volunteers.Review)
	group.GET("/users", users.List)
	group.POST("/users/:id/delete", users.Delete)
	group.GET("/settings", settings.Page)
	group.POST("/settings", settings.Save)
	group.POST("/uploads", middleware.ErrorHandler(testutil.NewMockLogger()), settings.Upload)
	return engine, d
}

func withSession(req *http.Request) *http.Request {
	req.AddCookie(&http.Cookie{Name: utils.AccessTokenCookie, Value: "access-token"})
	req.AddCookie(&http.Cookie{Name: utils.RefreshTokenCookie, Value: "refresh-token"})
	return req
}

func assertSessionCleared(t *testing.T, w *httptest.ResponseRecorder) {
	t.Helper()
	cookies := testutil.Cookies(w)
	require.Contains(t, cookies, utils.AccessTokenCookie)
	require.Contains(t, cookies, utils.RefreshTokenCookie)
	assert.Equal(t, -1, cookies[utils.AccessTokenCookie].MaxAge)
	assert.Equal(t, -1, cookies[utils.RefreshTokenCookie].MaxAge)
}

func TestLogin_Success(t *testing.T) {
	engine, d := newAdminEngine(t)
	d.api.On("Login", mock.Anything, backend.Credentials{Email: "admin@ilim.academy", Password: "secret123"}).
		Return(&backend.Session{AccessToken: "at", RefreshToken: "rt", User: backend.User{ID: "u1"}}, nil).Once()

	w := testutil.Serve(engine, testutil.NewFormRequest("/admin/login", url.Values{
		"email":    {"admin@ilim.academy"},
		"password": {"secret123"},
		"next":     {"/admin/users"},
	}))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/users", w.Header().Get("Location"))
	cookies := testutil.Cookies(w)
	assert.Equal(t, "at", cookies[utils.AccessTokenCookie].Value)
	assert.Equal(t, "rt", cookies[utils.RefreshTokenCookie].Value)
	assert.True(t, cookies[utils.AccessTokenCookie].HttpOnly)
	assert.NotEmpty(t, cookies[utils.CSRFTokenCookie].Value)
	d.api.AssertExpectations(t)
}

func TestLogin_RejectedByBackend(t *testing.T) {
	engine, d := newAdminEngine(t)
	d.api.On("Login", mock.Anything, mock.Anything).
		Return(nil, apperrors.FromStatus(http.StatusUnauthorized, "Invalid credentials")).Once()

	w := testutil.Serve(engine, testutil.NewFormRequest("/admin/login?lang=en", url.Values{
		"email":    {"admin@ilim.academy"},
		"password": {"wrong-password"},
	}))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid credentials")
	assert.NotContains(t, testutil.Cookies(w), utils.AccessTokenCookie)
}

func TestLogin_ValidationDoesNotCallBackend(t *testing.T) {
	engine, d := newAdminEngine(t)

	w := testutil.Serve(engine, testutil.NewFormRequest("/admin/login?lang=en", url.Values{
		"email": {"not-an-email"},
	}))

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Please enter a valid email address.")
	d.api.AssertNotCalled(t, "Login", mock.Anything, mock.Anything)
}

func TestLoginPage_ExpiredNotice(t *testing.T) {
	engine, _ := newAdminEngine(t)

	w := testutil.Serve(engine, httptest.NewRequest(http.MethodGet, "/admin/login?expired=1&lang=en", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Your session has expired. Please sign in again.")
}

func TestLoginPage_RedirectsWhenSignedIn(t *testing.T) {
	engine, _ := newAdminEngine(t)

	w := testutil.Serve(engine, withSession(httptest.NewRequest(http.MethodGet, "/admin/login", nil)))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin", w.Header().Get("Location"))
}

func TestLogout(t *testing.T) {
	engine, d := newAdminEngine(t)
	d.api.On("Logout", mock.Anything).Return(errors.New("backend down")).Once()

	w := testutil.Serve(engine, withSession(testutil.NewFormRequest("/admin/logout", url.Values{})))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, middleware.LoginPath, w.Header().Get("Location"))
	assertSessionCleared(t, w)
}

func TestUsersList_UnauthorizedClearsBothTokens(t *testing.T) {
	engine, d := newAdminEngine(t)
	d.users.On("List", mock.Anything, mock.Anything).
		Return(nil, apperrors.FromStatus(http.StatusUnauthorized, "Token expired")).Once()

	w := testutil.Serve(engine, withSession(httptest.NewRequest(http.MethodGet, "/admin/users", nil)))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/login?expired=1", w.Header().Get("Location"))
	assertSessionCleared(t, w)
}

func TestUsersList_OtherErrorsKeepSession(t *testing.T) {
	engine, d := newAdminEngine(t)
	d.users.On("List", mock.Anything, mock.Anything).
		Return(nil, apperrors.FromStatus(http.StatusInternalServerError, "Database unavailable")).Once()

	w := testutil.Serve(engine, withSession(httptest.NewRequest(http.MethodGet, "/admin/users?lang=en", nil)))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Database unavailable")
	assert.NotContains(t, testutil.Cookies(w), utils.AccessTokenCookie)
}

func TestUsersList_ForwardsQuery(t *testing.T) {
	engine, d := newAdminEngine(t)
	d.users.On("List", mock.Anything, backend.ListParams{Page: 2, Limit: 20, Search: "ali"}).
		Return(&backend.UserList{
			Users:      []backend.User{{ID: "u7", Name: "Ali", Email: "ali@example.org", Role: "editor"}},
			Pagination: backend.Pagination{Page: 2, Limit: 20, Total: 41, TotalPages: 3},
		}, nil).Once()

	w := testutil.Serve(engine, withSession(httptest.NewRequest(http.MethodGet, "/admin/users?page=2&search=ali", nil)))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `action="/admin/users/u7/delete"`)
	assert.Contains(t, body, "page=1")
	assert.Contains(t, body, "page=3")
	d.users.AssertExpectations(t)
}

func TestDashboard_ZeroStatsOnFailure(t *testing.T) {
	engine, d := newAdminEngine(t)
	d.api.On("Stats", mock.Anything).Return(nil, errors.New("timeout")).Once()

	w := testutil.Serve(engine, withSession(httptest.NewRequest(http.MethodGet, "/admin", nil)))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<strong>0</strong>")
	assert.Contains(t, w.Body.String(), "timeout")
}

func TestDashboard_Stats(t *testing.T) {
	engine, d := newAdminEngine(t)
	d.api.On("Stats", mock.Anything).Return(&backend.DashboardStats{TotalContacts: 12, PendingVolunteers: 3}, nil).Once()

	w := testutil.Serve(engine, withSession(httptest.NewRequest(http.MethodGet, "/admin", nil)))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<strong>12</strong>")
	assert.Contains(t, w.Body.String(), "pending: 3")
}

func TestContacts_UpdateStatus(t *testing.T) {
	engine, d := newAdminEngine(t)
	d.contacts.On("UpdateStatus", mock.Anything, "c9", "replied").Return(&backend.Contact{ID: "c9"}, nil).Once()

	w := testutil.Serve(engine, withSession(testutil.NewFormRequest("/admin/contacts/c9/status", url.Values{"status": {"replied"}})))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/contacts", w.Header().Get("Location"))
	d.contacts.AssertExpectations(t)
}

func TestContacts_UpdateStatusRejectsUnknownStatus(t *testing.T) {
	engine, d := newAdminEngine(t)

	w := testutil.Serve(engine, withSession(testutil.NewFormRequest("/admin/contacts/c9/status", url.Values{"status": {"spam"}})))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	d.contacts.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestContacts_DeleteUnauthorized(t *testing.T) {
	engine, d := newAdminEngine(t)
	d.contacts.On("Delete", mock.Anything, "c9").Return(apperrors.FromStatus(http.StatusUnauthorized, "")).Once()

	w := testutil.Serve(engine, withSession(testutil.NewFormRequest("/admin/contacts/c9/delete", url.Values{})))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/login?expired=1", w.Header().Get("Location"))
	assertSessionCleared(t, w)
}

func TestContacts_DeleteNotFound(t *testing.T) {
	engine, d := newAdminEngine(t)
	d.contacts.On("Delete", mock.Anything, "missing").Return(apperrors.FromStatus(http.StatusNotFound, "Contact not found")).Once()

	w := testutil.Serve(engine, withSession(testutil.NewFormRequest("/admin/contacts/missing/delete?lang=en", url.Values{})))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Page not found.")
}

func TestVolunteers_Review(t *testing.T) {
	engine, d := newAdminEngine(t)
	d.vols.On("Review", mock.Anything, "v3", backend.VolunteerReview{Status: "approved", Notes: "Welcome aboard"}).
		Return(&backend.Volunteer{ID: "v3", Status: "approved"}, nil).Once()

	w := testutil.Serve(engine, withSession(testutil.NewFormRequest("/admin/volunteers/v3/review", url.Values{
		"status": {"approved"},
		"notes":  {"  Welcome aboard "},
	})))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/volunteers", w.Header().Get("Location"))
	d.vols.AssertExpectations(t)
}

func TestVolunteersList_UnauthorizedClearsSession(t *testing.T) {
	engine, d := newAdminEngine(t)
	d.vols.On("List", mock.Anything, mock.Anything).
		Return(nil, apperrors.FromStatus(http.StatusUnauthorized, "")).Once()

	w := testutil.Serve(engine, withSession(httptest.NewRequest(http.MethodGet, "/admin/volunteers", nil)))

	assert.Equal(t, "/admin/login?expired=1", w.Header().Get("Location"))
	assertSessionCleared(t, w)
}

func TestSettings_Save(t *testing.T) {
	engine, d := newAdminEngine(t)
	held := backend.Settings{SiteName: "Old", SocialLinks: map[string]string{"x": "https://x.com/ilim"}}
	d.settings.On("Refresh", mock.Anything).Return(fetch.State[backend.Settings]{Data: &held, Status: fetch.StatusSuccess}).Once()
	d.settings.On("Update", mock.Anything, mock.MatchedBy(func(in backend.Settings) bool {
		return in.SiteName == "New Name" && in.SocialLinks["x"] == "https://x.com/ilim"
	})).Return(&backend.Settings{SiteName: "New Name", Email: "hello@ilim.academy"}, nil).Once()

	w := testutil.Serve(engine, withSession(testutil.NewFormRequest("/admin/settings?lang=en", url.Values{
		"site_name": {"New Name"},
		"email":     {"hello@ilim.academy"},
	})))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Changes saved.")
	assert.Contains(t, w.Body.String(), `value="New Name"`)
	d.settings.AssertExpectations(t)
}

func TestSettings_SaveValidation(t *testing.T) {
	engine, d := newAdminEngine(t)

	w := testutil.Serve(engine, withSession(testutil.NewFormRequest("/admin/settings?lang=en", url.Values{
		"site_name": {""},
		"email":     {"hello@ilim.academy"},
	})))

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "This field is required.")
	d.settings.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func multipartUpload(t *testing.T, field, filename string, data []byte, folder string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if field != "" {
		part, err := mw.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	if folder != "" {
		require.NoError(t, mw.WriteField("folder", folder))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/admin/uploads", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")
	return req
}

func TestUpload_Success(t *testing.T) {
	engine, d := newAdminEngine(t)
	data := []byte("fake image bytes")
	d.uploader.On("UploadImage", mock.Anything, "logo.png", data, "branding").
		Return(&backend.UploadResult{URL: "https://cdn.example/logo.jpg", Filename: "logo.jpg", Size: 1234}, nil).Once()

	w := testutil.Serve(engine, withSession(multipartUpload(t, "image", "logo.png", data, "branding")))

	require.Equal(t, http.StatusCreated, w.Code)
	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.True(t, resp.Success)
	assert.JSONEq(t, `{"url":"https://cdn.example/logo.jpg","filename":"logo.jpg","size":1234}`, string(resp.Data))
}

func TestUpload_DefaultFolder(t *testing.T) {
	engine, d := newAdminEngine(t)
	d.uploader.On("UploadImage", mock.Anything, "a.jpg", mock.Anything, defaultUploadFolder).
		Return(&backend.UploadResult{URL: "u"}, nil).Once()

	w := testutil.Serve(engine, withSession(multipartUpload(t, "image", "a.jpg", []byte("x"), "")))

	assert.Equal(t, http.StatusCreated, w.Code)
	d.uploader.AssertExpectations(t)
}

func TestUpload_MissingFile(t *testing.T) {
	engine, d := newAdminEngine(t)

	w := testutil.Serve(engine, withSession(multipartUpload(t, "", "", nil, "branding")))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "image file is required", resp.Error.Message)
	d.uploader.AssertNotCalled(t, "UploadImage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpload_TooLargeAfterCompression(t *testing.T) {
	engine, d := newAdminEngine(t)
	d.uploader.On("UploadImage", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, apperrors.NewValidationError("image must be at most 1024 KB after compression")).Once()

	w := testutil.Serve(engine, withSession(multipartUpload(t, "image", "big.png", []byte("x"), "")))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "at most 1024 KB")
}

func TestUpload_Unauthorized(t *testing.T) {
	engine, d := newAdminEngine(t)
	d.uploader.On("UploadImage", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, apperrors.FromStatus(http.StatusUnauthorized, "Token expired")).Once()

	w := testutil.Serve(engine, withSession(multipartUpload(t, "image", "a.png", []byte("x"), "")))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assertSessionCleared(t, w)
}

func TestAdmin_RequiresSession(t *testing.T) {
	engine, _ := newAdminEngine(t)

	w := testutil.Serve(engine, httptest.NewRequest(http.MethodGet, "/admin/users", nil))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Contains(t, w.Header().Get("Location"), middleware.LoginPath)
}

func TestNewPager(t *testing.T) {
	c, _ := testutil.NewTestContext(http.MethodGet, "/admin/contacts?status=new&page=2", nil)

	pager := common.NewPager(c, backend.Pagination{Page: 2, TotalPages: 2, Total: 30})

	assert.Equal(t, "/admin/contacts?page=1&status=new", pager.PrevURL)
	assert.Empty(t, pager.NextURL)
}
