package gateway

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/clinicware/portal-client/internal/portal"
	"github.com/clinicware/portal-client/internal/session"
)

// Login exchanges operator credentials for a session at the backend's token
// endpoint and persists it. The only unauthenticated call in the client.
func (g *Gateway) Login(ctx context.Context, username, password string) (session.Session, error) {
	form := url.Values{
		"username": {username},
		"password": {password},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/token", strings.NewReader(form.Encode()))
	if err != nil {
		return session.Session{}, fmt.Errorf("build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.client.Do(req)
	if err != nil {
		return session.Session{}, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return session.Session{}, &NetworkError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return session.Session{}, newBackendRejection(resp.StatusCode, raw)
	}

	var token portal.TokenResponse
	if err := (&Response{Status: resp.StatusCode, Raw: raw}).Decode(&token); err != nil {
		return session.Session{}, err
	}

	sess, err := session.FromCredential(token.AccessToken)
	if err != nil {
		return session.Session{}, fmt.Errorf("parse issued credential: %w", err)
	}

	if err := g.store.Save(ctx, sess); err != nil {
		return session.Session{}, fmt.Errorf("persist session: %w", err)
	}

	return sess, nil
}

// Logout drops the persisted session. Purely local; the backend token simply
// expires on its own.
func (g *Gateway) Logout(ctx context.Context) error {
	return g.store.Clear(ctx)
}
