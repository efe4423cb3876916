package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cmlabs-hris/hrops-backend-go/internal/config"
	"github.com/cmlabs-hris/hrops-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/hrops-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hrops-backend-go/internal/pkg/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	handlerTestSecret    = "test-secret-key-for-jwt"
	handlerTestAccessExp = "1h"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
	Meta *struct {
		Page       int   `json:"page"`
		Limit      int   `json:"limit"`
		TotalItems int64 `json:"total_items"`
		TotalPages int   `json:"total_pages"`
	} `json:"meta"`
}

type testServer struct {
	router     *chi.Mux
	jwt        jwt.Service
	auth       *stubAuthService
	attendance *stubAttendanceService
	leave      *stubLeaveService
	users      *stubUserService
}

func newTestServer(t *testing.T, rateLimit int) *testServer {
	t.Helper()

	jwtService, err := jwt.NewJWTService(handlerTestSecret, handlerTestAccessExp)
	require.NoError(t, err)

	cfg := &config.Config{
		App: config.AppConfig{
			Env:            "test",
			AllowedOrigins: []string{"http://localhost:5173"},
			AdminRole:      "admin",
		},
		Auth: config.AuthConfig{RateLimitPerMinute: rateLimit},
	}

	ts := &testServer{
		jwt:        jwtService,
		auth:       &stubAuthService{},
		attendance: &stubAttendanceService{},
		leave:      &stubLeaveService{},
		users:      &stubUserService{},
	}
	ts.router = NewRouter(
		cfg,
		jwtService,
		metrics.New(),
		NewAuthHandler(ts.auth),
		NewAttendanceHandler(ts.attendance),
		NewLeaveHandler(ts.leave, time.UTC),
		NewUserHandler(ts.users),
	)
	return ts
}

func (ts *testServer) token(t *testing.T, role string) string {
	t.Helper()
	token, _, err := ts.jwt.IssueToken(auth.Principal{
		Email:      "kim@example.com",
		Name:       "Kim Minji",
		Department: "Engineering",
		Role:       role,
	})
	require.NoError(t, err)
	return token
}

func (ts *testServer) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)

	var env envelope
	if rec.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func TestRouter_Heartbeat(t *testing.T) {
	ts := newTestServer(t, 100)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_Metrics(t *testing.T) {
	ts := newTestServer(t, 100)
	ts.do(t, http.MethodPost, "/api/auth/find-email", "", "not json")

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/api/auth/find-email")
}

func TestRouter_ProtectedRoutes_RequireToken(t *testing.T) {
	ts := newTestServer(t, 100)

	rec, env := ts.do(t, http.MethodGet, "/api/attendance/today", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "TOKEN_REQUIRED", env.Error.Code)

	rec, env = ts.do(t, http.MethodGet, "/api/attendance/today", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "INVALID_TOKEN", env.Error.Code)
}

func TestRouter_AdminRoutes_RequireAdminRole(t *testing.T) {
	ts := newTestServer(t, 100)
	memberToken := ts.token(t, "member")

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/leaves/types"},
		{http.MethodGet, "/api/leaves/policy"},
		{http.MethodPatch, "/api/leaves/1/approve"},
		{http.MethodGet, "/api/users"},
	} {
		rec, env := ts.do(t, tc.method, tc.path, memberToken, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code, tc.path)
		require.NotNil(t, env.Error, tc.path)
		assert.Equal(t, "ADMIN_ROLE_REQUIRED", env.Error.Code, tc.path)
	}
	assert.Zero(t, ts.leave.calls)
	assert.Zero(t, ts.users.calls)
}

func TestRouter_AuthRoutes_RateLimited(t *testing.T) {
	ts := newTestServer(t, 2)
	body := map[string]string{"email": "kim@example.com"}

	for range 2 {
		rec, _ := ts.do(t, http.MethodPost, "/api/auth/find-email", "", body)
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	rec, env := ts.do(t, http.MethodPost, "/api/auth/login", "", body)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))
	require.NotNil(t, env.Error)
	assert.Equal(t, "RATE_LIMITED", env.Error.Code)
}
