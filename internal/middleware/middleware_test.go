package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SafeCircle/SC-Backend/internal/middleware"
	"github.com/SafeCircle/SC-Backend/internal/utils"
)

// mockFetcher implements middleware.SessionFetcher without any database dependency.
type mockFetcher struct {
	session utils.SessionData
	err     error
}

func (m mockFetcher) FindSessionByID(id string) (utils.SessionData, error) {
	return m.session, m.err
}

// mockWardFetcher implements middleware.WardFetcher in memory.
type mockWardFetcher struct {
	wardID string
	err    error
}

func (m mockWardFetcher) FindWardByDeviceCode(code string) (string, error) {
	return m.wardID, m.err
}

// callWithCookie wraps a simple 200-OK inner handler in the provided middleware,
// optionally setting one cookie on the request, and returns the recorded response.
func callWithCookie(t *testing.T, mw func(http.Handler) http.Handler, cookieName, cookieValue string) *httptest.ResponseRecorder {
	t.Helper()

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	handler := mw(inner)
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if cookieName != "" {
		req.AddCookie(&http.Cookie{Name: cookieName, Value: cookieValue})
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

// TestSessionMiddleware_MissingCookie verifies that a request with no session_id
// cookie receives a 401 response.
func TestSessionMiddleware_MissingCookie(t *testing.T) {
	mw := middleware.SessionMiddleware(mockFetcher{})

	rec := callWithCookie(t, mw, "", "")

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

// TestSessionMiddleware_ExpiredSession verifies that a valid cookie with an
// expired session receives a 401 containing "Session expired".
func TestSessionMiddleware_ExpiredSession(t *testing.T) {
	fetcher := mockFetcher{
		session: utils.SessionData{
			UserID:    "some-user",
			ExpiresAt: time.Now().Add(-1 * time.Hour),
		},
	}
	mw := middleware.SessionMiddleware(fetcher)

	rec := callWithCookie(t, mw, "session_id", "expired-session-id")

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Session expired") {
		t.Errorf("expected body to contain %q, got: %q", "Session expired", rec.Body.String())
	}
}

// TestSessionMiddleware_ValidSession verifies that a live session passes through
// and the user id lands in the request context.
func TestSessionMiddleware_ValidSession(t *testing.T) {
	const wantUserID = "supervisor-123"
	fetcher := mockFetcher{
		session: utils.SessionData{
			UserID:    wantUserID,
			ExpiresAt: time.Now().Add(1 * time.Hour),
		},
	}
	mw := middleware.SessionMiddleware(fetcher)

	var gotUserID string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = utils.GetUserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "valid-session"})
	rec := httptest.NewRecorder()
	mw(inner).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if gotUserID != wantUserID {
		t.Errorf("expected userID %q in context, got %q", wantUserID, gotUserID)
	}
}

// TestWearableMiddleware_MissingCode verifies that a wearable request without a
// bearer device code receives a 401.
func TestWearableMiddleware_MissingCode(t *testing.T) {
	mw := middleware.WearableMiddleware(mockWardFetcher{wardID: "ward-1"})

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	req := httptest.NewRequest(http.MethodPost, "/location/ward", nil)
	rec := httptest.NewRecorder()
	mw(inner).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

// TestWearableMiddleware_UnknownCode verifies that an unrecognized device code
// receives a 401.
func TestWearableMiddleware_UnknownCode(t *testing.T) {
	mw := middleware.WearableMiddleware(mockWardFetcher{err: errors.New("no such code")})

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	req := httptest.NewRequest(http.MethodPost, "/location/ward", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	rec := httptest.NewRecorder()
	mw(inner).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

// TestWearableMiddleware_ValidCode verifies that a paired device code passes
// through and the ward id lands in the request context.
func TestWearableMiddleware_ValidCode(t *testing.T) {
	const wantWardID = "ward-42"
	mw := middleware.WearableMiddleware(mockWardFetcher{wardID: wantWardID})

	var gotWardID string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotWardID, _ = utils.GetWardIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	req := httptest.NewRequest(http.MethodPost, "/location/ward", nil)
	req.Header.Set("Authorization", "Bearer ABC123")
	rec := httptest.NewRecorder()
	mw(inner).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if gotWardID != wantWardID {
		t.Errorf("expected wardID %q in context, got %q", wantWardID, gotWardID)
	}
}
