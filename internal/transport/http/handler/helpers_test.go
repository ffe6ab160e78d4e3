package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/Vishal-43/img-craft/internal/domain"
	"github.com/Vishal-43/img-craft/internal/session"
	"github.com/Vishal-43/img-craft/internal/transport/http/middleware"
	"github.com/Vishal-43/img-craft/internal/transport/http/view"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockAccounts struct{ mock.Mock }

func (m *mockAccounts) CreateUser(ctx context.Context, username, email, password string) (*domain.User, error) {
	args := m.Called(ctx, username, email, password)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockAccounts) CheckVerificationStatus(ctx context.Context, email string) (domain.VerificationStatus, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(domain.VerificationStatus), args.Error(1)
}
func (m *mockAccounts) UpdateVerificationStatus(ctx context.Context, email string, status domain.VerificationStatus) error {
	return m.Called(ctx, email, status).Error(0)
}
func (m *mockAccounts) GetUserForLogin(ctx context.Context, email, password string) (*domain.User, error) {
	args := m.Called(ctx, email, password)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockAccounts) GetUser(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockAccounts) UpdateUserPassword(ctx context.Context, email, password string) error {
	return m.Called(ctx, email, password).Error(0)
}

type mockMail struct{ mock.Mock }

func (m *mockMail) SendVerificationCode(ctx context.Context, email string) (string, error) {
	args := m.Called(ctx, email)
	return args.String(0), args.Error(1)
}
func (m *mockMail) SendPasswordResetCode(ctx context.Context, email string) (string, error) {
	args := m.Called(ctx, email)
	return args.String(0), args.Error(1)
}

// --- fixture ---

type fixture struct {
	accounts *mockAccounts
	mail     *mockMail
	views    *view.Renderer
	sessions *session.Manager
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	views, err := view.New()
	require.NoError(t, err)
	store := session.NewCookieStore([]byte("0123456789abcdef0123456789abcdef"), session.Options(3600, false))
	return &fixture{
		accounts: new(mockAccounts),
		mail:     new(mockMail),
		views:    views,
		sessions: session.NewManager(store, "session"),
	}
}

// do runs h behind the session middleware. seed pre-populates the session cookie.
func (f *fixture) do(t *testing.T, h http.HandlerFunc, method, target string, form url.Values, seed map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if len(seed) > 0 {
		for _, c := range f.seedCookies(t, seed) {
			req.AddCookie(c)
		}
	}
	rr := httptest.NewRecorder()
	middleware.Session(f.sessions)(h).ServeHTTP(rr, req)
	return rr
}

func (f *fixture) seedCookies(t *testing.T, values map[string]string) []*http.Cookie {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	sess := f.sessions.Load(req)
	for k, v := range values {
		sess.Set(k, v)
	}
	rec := httptest.NewRecorder()
	require.NoError(t, sess.Save(req, rec))
	return rec.Result().Cookies()
}

// sessionAfter loads the session a browser would hold after receiving rr.
func (f *fixture) sessionAfter(rr *httptest.ResponseRecorder) *session.Session {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rr.Result().Cookies() {
		if c.MaxAge >= 0 {
			req.AddCookie(c)
		}
	}
	return f.sessions.Load(req)
}

func (f *fixture) assertExpectations(t *testing.T) {
	f.accounts.AssertExpectations(t)
	f.mail.AssertExpectations(t)
}
