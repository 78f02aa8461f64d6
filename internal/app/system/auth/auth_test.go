package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

type stubFetcher struct {
	users map[string]*SessionUser
}

func (f *stubFetcher) FetchUser(_ context.Context, id string) *SessionUser {
	return f.users[id]
}

func okHandler(t *testing.T, called *bool) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireSignedIn(t *testing.T) {
	var called bool
	h := RequireSignedIn(okHandler(t, &called))

	r := httptest.NewRequest(http.MethodGet, "/clubs", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("anonymous: status = %d, want 401", w.Code)
	}
	if called {
		t.Errorf("handler ran for anonymous request")
	}

	r = WithTestUser(httptest.NewRequest(http.MethodGet, "/clubs", nil), &SessionUser{ID: "u1"})
	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)
	if w.Code != http.StatusOK || !called {
		t.Errorf("signed in: status = %d, called = %v", w.Code, called)
	}
}

func TestRequireSuperAdmin(t *testing.T) {
	var called bool
	h := RequireSuperAdmin(okHandler(t, &called))

	r := httptest.NewRequest(http.MethodPost, "/clubs", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("anonymous: status = %d, want 401", w.Code)
	}

	r = WithTestUser(httptest.NewRequest(http.MethodPost, "/clubs", nil), &SessionUser{ID: "u1"})
	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)
	if w.Code != http.StatusForbidden {
		t.Errorf("non-super-admin: status = %d, want 403", w.Code)
	}
	if called {
		t.Errorf("handler ran for non-super-admin")
	}

	r = WithTestUser(httptest.NewRequest(http.MethodPost, "/clubs", nil), &SessionUser{ID: "u1", SuperAdmin: true})
	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)
	if w.Code != http.StatusOK || !called {
		t.Errorf("super-admin: status = %d, called = %v", w.Code, called)
	}
}

func TestSessionRoundTrip(t *testing.T) {
	mgr, err := NewSessionManager("0123456789abcdef0123456789abcdef", "clubhub-session", "", false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager: %v", err)
	}
	mgr.SetUserFetcher(&stubFetcher{users: map[string]*SessionUser{
		"u1": {ID: "u1", Name: "Alice", Email: "alice@example.com"},
	}})

	// Sign in and capture the cookie.
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/login", nil)
	if err := mgr.SignIn(w, r, "u1"); err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	cookies := w.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatalf("SignIn set no cookie")
	}

	// Replay the cookie through the middleware.
	var got *SessionUser
	h := mgr.LoadSessionUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = CurrentUser(r)
	}))
	r = httptest.NewRequest(http.MethodGet, "/clubs", nil)
	for _, c := range cookies {
		r.AddCookie(c)
	}
	h.ServeHTTP(httptest.NewRecorder(), r)

	if got == nil || got.ID != "u1" || got.Email != "alice@example.com" {
		t.Fatalf("CurrentUser = %+v, want u1", got)
	}
}

func TestLoadSessionUser_UnknownUserIsAnonymous(t *testing.T) {
	mgr, err := NewSessionManager("0123456789abcdef0123456789abcdef", "clubhub-session", "", false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager: %v", err)
	}
	mgr.SetUserFetcher(&stubFetcher{users: map[string]*SessionUser{}})

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/login", nil)
	if err := mgr.SignIn(w, r, "gone"); err != nil {
		t.Fatalf("SignIn: %v", err)
	}

	var ok bool
	h := mgr.LoadSessionUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok = CurrentUser(r)
	}))
	r = httptest.NewRequest(http.MethodGet, "/clubs", nil)
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}
	h.ServeHTTP(httptest.NewRecorder(), r)

	if ok {
		t.Errorf("deleted user still resolved from session")
	}
}
