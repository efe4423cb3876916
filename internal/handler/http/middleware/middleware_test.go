package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cmlabs-hris/hrops-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/hrops-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hrops-backend-go/internal/pkg/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProtectedRouter(t *testing.T, svc jwt.Service, extra ...func(http.Handler) http.Handler) http.Handler {
	t.Helper()
	r := chi.NewRouter()
	r.Use(jwtauth.Verifier(svc.JWTAuth()))
	r.Use(AuthRequired)
	for _, mw := range extra {
		r.Use(mw)
	}
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	return r
}

func doGet(h http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAuthRequired(t *testing.T) {
	svc, err := jwt.NewJWTService("middleware-secret", "1h")
	require.NoError(t, err)
	h := newProtectedRouter(t, svc)

	rec := doGet(h, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "TOKEN_REQUIRED")

	rec = doGet(h, "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_TOKEN")

	other, err := jwt.NewJWTService("other-secret", "1h")
	require.NoError(t, err)
	forged, _, err := other.IssueToken(auth.Principal{Email: "kim@example.com"})
	require.NoError(t, err)
	rec = doGet(h, forged)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token, _, err := svc.IssueToken(auth.Principal{Email: "kim@example.com"})
	require.NoError(t, err)
	rec = doGet(h, token)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRequireRole(t *testing.T) {
	svc, err := jwt.NewJWTService("middleware-secret", "1h")
	require.NoError(t, err)
	h := newProtectedRouter(t, svc, RequireRole("admin"))

	staff, _, err := svc.IssueToken(auth.Principal{Email: "kim@example.com", Role: "staff"})
	require.NoError(t, err)
	rec := doGet(h, staff)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "ADMIN_ROLE_REQUIRED")

	admin, _, err := svc.IssueToken(auth.Principal{Email: "boss@example.com", Role: "admin"})
	require.NoError(t, err)
	rec = doGet(h, admin)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRateLimitByIP(t *testing.T) {
	h := RateLimitByIP(2, time.Minute)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func(addr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, send("10.0.0.1:5555").Code)
	assert.Equal(t, http.StatusOK, send("10.0.0.1:6666").Code)

	rec := send("10.0.0.1:5555")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))
	assert.Contains(t, rec.Body.String(), "RATE_LIMITED")

	assert.Equal(t, http.StatusOK, send("10.0.0.2:5555").Code)
}

func TestMetrics_RecordsRoutePattern(t *testing.T) {
	m := metrics.New()
	r := chi.NewRouter()
	r.Use(Metrics(m))
	r.Get("/leaves/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/leaves/42", nil))

	assert.Equal(t, float64(1), testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "/leaves/{id}", "202")))
}
