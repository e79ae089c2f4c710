package gateway

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/clinicware/portal-client/internal/session"
)

func signTestToken(t *testing.T, username, role string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":  username,
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestLogin_StoresSessionFromClaims(t *testing.T) {
	token := signTestToken(t, "frontdesk", "FRONT_DESK")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/token" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if r.PostFormValue("username") != "frontdesk" || r.PostFormValue("password") != "pw" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"detail":"Incorrect username or password"}`))
			return
		}
		w.Write([]byte(`{"access_token":"` + token + `","token_type":"bearer"}`))
	}))
	defer srv.Close()

	store := session.NewMemoryStore()
	gw := New(srv.URL, store, 5*time.Second, nil)

	sess, err := gw.Login(context.Background(), "frontdesk", "pw")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.Role != session.RoleFrontDesk {
		t.Errorf("expected FRONT_DESK role, got %s", sess.Role)
	}
	if sess.DisplayName != "frontdesk" {
		t.Errorf("expected display name from sub claim, got %q", sess.DisplayName)
	}

	stored, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("expected persisted session: %v", err)
	}
	if stored.Credential != token {
		t.Error("persisted credential does not match issued token")
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"Incorrect username or password"}`))
	}))
	defer srv.Close()

	store := session.NewMemoryStore()
	gw := New(srv.URL, store, 5*time.Second, nil)

	_, err := gw.Login(context.Background(), "frontdesk", "wrong")

	var rej *BackendRejection
	if !errors.As(err, &rej) {
		t.Fatalf("expected BackendRejection, got %v", err)
	}
	if rej.Detail != "Incorrect username or password" {
		t.Errorf("unexpected detail %q", rej.Detail)
	}
	if _, err := store.Load(context.Background()); !errors.Is(err, session.ErrNoSession) {
		t.Error("no session must be stored on failed login")
	}
}

func TestLogout_ClearsSession(t *testing.T) {
	store := session.NewMemoryStore()
	store.Save(context.Background(), session.Session{Credential: "tok"})

	gw := New("http://localhost:0", store, time.Second, nil)
	if err := gw.Logout(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := store.Load(context.Background()); !errors.Is(err, session.ErrNoSession) {
		t.Error("expected session cleared")
	}
}
