package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/clinicware/portal-client/internal/session"
)

// Gateway is the single path every user action takes to the backend. It
// attaches the session credential to each call, classifies the outcome and
// handles auth rejection centrally. Each call is attempted exactly once; there
// is no retry and no backoff.
type Gateway struct {
	baseURL  string
	store    session.Store
	client   *http.Client
	redirect func()
}

// Response is a successful backend reply. Raw is kept verbatim so workflows
// can render it for audit before decoding.
type Response struct {
	Status int
	Raw    json.RawMessage
}

func (r *Response) Decode(v any) error {
	if err := json.Unmarshal(r.Raw, v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// New builds a gateway. redirect is the login-boundary hook: it is invoked
// whenever a protected call is attempted without a session or the backend
// signals the credential is no longer valid.
func New(baseURL string, store session.Store, timeout time.Duration, redirect func()) *Gateway {
	if redirect == nil {
		redirect = func() {}
	}
	return &Gateway{
		baseURL: baseURL,
		store:   store,
		client: &http.Client{
			Timeout: timeout,
		},
		redirect: redirect,
	}
}

// Do issues one authenticated request. body may be nil; otherwise it is JSON
// encoded. Error taxonomy: session.ErrNoSession (redirected, no request made),
// *NetworkError (no response), ErrAuthExpired (session cleared and redirected),
// *BackendRejection (any other non-2xx).
func (g *Gateway) Do(ctx context.Context, method, path string, body any) (*Response, error) {
	sess, err := g.store.Load(ctx)
	if err != nil {
		if errors.Is(err, session.ErrNoSession) {
			g.redirect()
		}
		return nil, err
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+sess.Credential)
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}

	if resp.StatusCode == http.StatusUnauthorized {
		// Central auth handling: the in-flight workflow must not keep
		// processing the body after this.
		if err := g.store.Clear(ctx); err != nil {
			return nil, fmt.Errorf("clear session after auth rejection: %w", err)
		}
		g.redirect()
		return nil, ErrAuthExpired
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newBackendRejection(resp.StatusCode, raw)
	}

	return &Response{Status: resp.StatusCode, Raw: raw}, nil
}
