package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mikombo-backend/internal/auth"
	"mikombo-backend/internal/models"
	"mikombo-backend/internal/store"
)

type fakeVerifier struct {
	claims *auth.Claims
	err    error
}

func (f fakeVerifier) Verify(ctx context.Context, token string) (*auth.Claims, error) {
	return f.claims, f.err
}

type fakeUsers struct {
	users map[string]models.User
	err   error
	calls int
}

func (f *fakeUsers) GetByID(ctx context.Context, id string) (models.User, error) {
	f.calls++
	if f.err != nil {
		return models.User{}, f.err
	}
	u, ok := f.users[id]
	if !ok {
		return models.User{}, store.ErrNotFound
	}
	return u, nil
}

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := UserFromContext(r.Context()); !ok {
			w.WriteHeader(http.StatusTeapot)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
}

func serve(h http.Handler, token string) int {
	req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Code
}

func TestRequireUserWithoutTokenSkipsStore(t *testing.T) {
	users := &fakeUsers{}
	h := RequireUser(fakeVerifier{}, users, discard)(okHandler())
	if code := serve(h, ""); code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
	if users.calls != 0 {
		t.Fatalf("expected no user lookup, got %d", users.calls)
	}
}

func TestRequireUserTokenErrors(t *testing.T) {
	users := &fakeUsers{}
	for _, err := range []error{auth.ErrExpiredToken, auth.ErrInvalidToken, auth.ErrRevokedToken} {
		h := RequireUser(fakeVerifier{err: err}, users, discard)(okHandler())
		if code := serve(h, "tok"); code != http.StatusUnauthorized {
			t.Fatalf("expected 401 for %v, got %d", err, code)
		}
	}
}

func TestRequireUserDeletedUser(t *testing.T) {
	users := &fakeUsers{users: map[string]models.User{}}
	h := RequireUser(fakeVerifier{claims: &auth.Claims{UserID: "gone"}}, users, discard)(okHandler())
	if code := serve(h, "tok"); code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
}

func TestRequireUserStoreFailure(t *testing.T) {
	users := &fakeUsers{err: errors.New("connection refused")}
	h := RequireUser(fakeVerifier{claims: &auth.Claims{UserID: "u"}}, users, discard)(okHandler())
	if code := serve(h, "tok"); code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
}

func TestRequireAdmin(t *testing.T) {
	users := &fakeUsers{users: map[string]models.User{
		"client": {ID: "client", Role: models.RoleClient},
		"admin":  {ID: "admin", Role: models.RoleAdmin},
	}}

	h := RequireAdmin(fakeVerifier{claims: &auth.Claims{UserID: "client"}}, users, discard)(okHandler())
	if code := serve(h, "tok"); code != http.StatusForbidden {
		t.Fatalf("expected 403 for client, got %d", code)
	}

	h = RequireAdmin(fakeVerifier{claims: &auth.Claims{UserID: "admin"}}, users, discard)(okHandler())
	if code := serve(h, "tok"); code != http.StatusOK {
		t.Fatalf("expected 200 for admin, got %d", code)
	}

	h = RequireAdmin(fakeVerifier{}, users, discard)(okHandler())
	if code := serve(h, ""); code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", code)
	}
}

func TestBearerToken(t *testing.T) {
	if got := bearerToken("bearer abc"); got != "abc" {
		t.Fatalf("expected case-insensitive scheme, got %q", got)
	}
	if got := bearerToken("Basic abc"); got != "" {
		t.Fatalf("expected empty token for basic auth, got %q", got)
	}
	if got := bearerToken("Bearer"); got != "" {
		t.Fatalf("expected empty token, got %q", got)
	}
}

func TestRateLimiter(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(2, time.Minute)
	rl.now = func() time.Time { return now }

	if !rl.Allow("ip:/contact") || !rl.Allow("ip:/contact") {
		t.Fatalf("expected first two requests allowed")
	}
	if rl.Allow("ip:/contact") {
		t.Fatalf("expected third request rejected")
	}
	if !rl.Allow("other:/contact") {
		t.Fatalf("expected other client allowed")
	}

	now = now.Add(time.Minute + time.Second)
	if !rl.Allow("ip:/contact") {
		t.Fatalf("expected request allowed after window reset")
	}
}

func TestCORS(t *testing.T) {
	h := CORS([]string{"http://park.test"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodOptions, "/api/produits", nil)
	req.Header.Set("Origin", "http://park.test")
	req.Header.Set("Access-Control-Request-Method", "PUT")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 preflight, got %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "http://park.test" {
		t.Fatalf("expected origin echoed, got %q", rec.Header().Get("Access-Control-Allow-Origin"))
	}

	req = httptest.NewRequest(http.MethodGet, "/api/produits", nil)
	req.Header.Set("Origin", "http://evil.test")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Fatalf("expected no CORS header for unknown origin")
	}
}

func TestCORSWildcardOmitsCredentials(t *testing.T) {
	h := CORS([]string{"*"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/api/produits", nil)
	req.Header.Set("Origin", "http://any.test")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Header().Get("Access-Control-Allow-Origin") != "http://any.test" {
		t.Fatalf("expected origin echoed, got %q", rec.Header().Get("Access-Control-Allow-Origin"))
	}
	if got := rec.Header().Get("Access-Control-Allow-Credentials"); got != "" {
		t.Fatalf("expected no credentials header for wildcard, got %q", got)
	}

	listed := CORS([]string{"http://park.test"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	req = httptest.NewRequest(http.MethodGet, "/api/produits", nil)
	req.Header.Set("Origin", "http://park.test")
	rec = httptest.NewRecorder()
	listed.ServeHTTP(rec, req)
	if rec.Header().Get("Access-Control-Allow-Credentials") != "true" {
		t.Fatalf("expected credentials header for listed origin")
	}
}

func TestLoggerLevelFollowsStatus(t *testing.T) {
	cases := map[int]string{
		http.StatusOK:                  "INFO",
		http.StatusNotFound:            "WARN",
		http.StatusInternalServerError: "ERROR",
	}
	for status, want := range cases {
		var buf bytes.Buffer
		log := slog.New(slog.NewJSONHandler(&buf, nil))
		h := Logger(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/produits", nil))

		var line map[string]interface{}
		if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
			t.Fatalf("decode log line %q: %v", buf.String(), err)
		}
		if line["level"] != want || line["status"] != float64(status) || line["path"] != "/api/produits" {
			t.Fatalf("status %d: unexpected log line %v", status, line)
		}
	}
}
