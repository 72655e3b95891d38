package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hitoshi/socialhub/internal/model"
)

func testAuthConfig() AuthHandlerConfig {
	return AuthHandlerConfig{
		CookieSecure:  false,
		SessionMaxAge: 86400,
	}
}

func TestLogin_CreatesSessionAndCookie(t *testing.T) {
	svc := &mockAuthService{
		signInFn: func(ctx context.Context) (*model.User, *model.Session, error) {
			return &model.User{ID: "user-1"},
				&model.Session{ID: "session-abc", UserID: "user-1", ExpiresAt: time.Now().Add(24 * time.Hour)},
				nil
		},
	}
	h := NewAuthHandler(svc, testAuthConfig())

	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	w := httptest.NewRecorder()

	h.Login(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusCreated {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusCreated)
	}

	var sessionCookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == "session_id" {
			sessionCookie = c
		}
	}
	if sessionCookie == nil {
		t.Fatal("session cookie should be set")
	}
	if sessionCookie.Value != "session-abc" {
		t.Errorf("cookie value = %q, want session-abc", sessionCookie.Value)
	}
	if !sessionCookie.HttpOnly {
		t.Error("session cookie should be HttpOnly")
	}

	var body userResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.ID != "user-1" {
		t.Errorf("user ID = %q, want user-1", body.ID)
	}
}

func TestLogin_ReusesValidSession(t *testing.T) {
	svc := &mockAuthService{
		signInFn: func(ctx context.Context) (*model.User, *model.Session, error) {
			t.Error("sign-in must not run when a valid session exists")
			return nil, nil, errors.New("unexpected call")
		},
		getCurrentUserFn: func(ctx context.Context, sessionID string) (*model.User, error) {
			if sessionID != "existing-session" {
				return nil, errors.New("unknown session")
			}
			return &model.User{ID: "user-existing"}, nil
		},
	}
	h := NewAuthHandler(svc, testAuthConfig())

	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "existing-session"})
	w := httptest.NewRecorder()

	h.Login(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var body userResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.ID != "user-existing" {
		t.Errorf("user ID = %q, want user-existing", body.ID)
	}
}

func TestLogin_ExpiredSessionCreatesNewOne(t *testing.T) {
	svc := &mockAuthService{
		signInFn: func(ctx context.Context) (*model.User, *model.Session, error) {
			return &model.User{ID: "user-new"},
				&model.Session{ID: "session-new", UserID: "user-new"},
				nil
		},
		getCurrentUserFn: func(ctx context.Context, sessionID string) (*model.User, error) {
			return nil, errors.New("セッションが無効です")
		},
	}
	h := NewAuthHandler(svc, testAuthConfig())

	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "stale-session"})
	w := httptest.NewRecorder()

	h.Login(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusCreated {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusCreated)
	}

	var body userResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.ID != "user-new" {
		t.Errorf("user ID = %q, want user-new", body.ID)
	}
}

func TestLogin_SignInError(t *testing.T) {
	svc := &mockAuthService{
		signInFn: func(ctx context.Context) (*model.User, *model.Session, error) {
			return nil, nil, errors.New("DB接続エラー")
		},
	}
	h := NewAuthHandler(svc, testAuthConfig())

	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	w := httptest.NewRecorder()

	h.Login(w, req)

	if w.Result().StatusCode != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusInternalServerError)
	}
}

func TestLogout_DeletesSessionAndClearsCookie(t *testing.T) {
	var loggedOut string
	svc := &mockAuthService{
		logoutFn: func(ctx context.Context, sessionID string) error {
			loggedOut = sessionID
			return nil
		},
	}
	h := NewAuthHandler(svc, testAuthConfig())

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "session-abc"})
	w := httptest.NewRecorder()

	h.Logout(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusNoContent)
	}
	if loggedOut != "session-abc" {
		t.Errorf("logged out session = %q, want session-abc", loggedOut)
	}

	var cleared *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == "session_id" {
			cleared = c
		}
	}
	if cleared == nil {
		t.Fatal("session cookie should be cleared")
	}
	if cleared.MaxAge != -1 {
		t.Errorf("cleared cookie MaxAge = %d, want -1", cleared.MaxAge)
	}
}

func TestLogout_WithoutCookie(t *testing.T) {
	svc := &mockAuthService{
		logoutFn: func(ctx context.Context, sessionID string) error {
			t.Error("logout must not be called without a session cookie")
			return nil
		},
	}
	h := NewAuthHandler(svc, testAuthConfig())

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	w := httptest.NewRecorder()

	h.Logout(w, req)

	if w.Result().StatusCode != http.StatusNoContent {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusNoContent)
	}
}

func TestLogout_ServiceErrorStillClearsCookie(t *testing.T) {
	svc := &mockAuthService{
		logoutFn: func(ctx context.Context, sessionID string) error {
			return errors.New("削除失敗")
		},
	}
	h := NewAuthHandler(svc, testAuthConfig())

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "session-abc"})
	w := httptest.NewRecorder()

	h.Logout(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusNoContent)
	}

	found := false
	for _, c := range resp.Cookies() {
		if c.Name == "session_id" && c.MaxAge == -1 {
			found = true
		}
	}
	if !found {
		t.Error("session cookie should be cleared even when logout fails")
	}
}

func TestMe_ReturnsCurrentUser(t *testing.T) {
	svc := &mockAuthService{
		getCurrentUserFn: func(ctx context.Context, sessionID string) (*model.User, error) {
			if sessionID != "session-abc" {
				return nil, errors.New("unknown session")
			}
			return &model.User{ID: "user-1"}, nil
		},
	}
	h := NewAuthHandler(svc, testAuthConfig())

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "session-abc"})
	w := httptest.NewRecorder()

	h.Me(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var body userResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.ID != "user-1" {
		t.Errorf("user ID = %q, want user-1", body.ID)
	}
}

func TestMe_WithoutCookie(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{}, testAuthConfig())

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	w := httptest.NewRecorder()

	h.Me(w, req)

	if w.Result().StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusUnauthorized)
	}
}

func TestMe_InvalidSession(t *testing.T) {
	svc := &mockAuthService{
		getCurrentUserFn: func(ctx context.Context, sessionID string) (*model.User, error) {
			return nil, model.NewUserNotFoundError()
		},
	}
	h := NewAuthHandler(svc, testAuthConfig())

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "bogus"})
	w := httptest.NewRecorder()

	h.Me(w, req)

	if w.Result().StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusUnauthorized)
	}
}
