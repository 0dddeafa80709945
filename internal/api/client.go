package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Session supplies the bearer credential for every request and is told
// when the server rejects it, so the forced-logout policy lives in one
// place instead of being re-implemented per call site.
type Session interface {
	Token() string
	// Invalidate discards the stored credential. Called on the first
	// authentication failure; subsequent requests fail fast client-side.
	Invalidate()
}

// StaticSession is a Session over a fixed token. Used by tests and by
// one-shot invocations that read the token from the environment.
type StaticSession struct {
	mu    sync.Mutex
	token string
}

// NewStaticSession wraps a raw token.
func NewStaticSession(token string) *StaticSession {
	return &StaticSession{token: token}
}

func (s *StaticSession) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *StaticSession) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
}

// Recorder observes completed HTTP exchanges. The inspector plugs in
// here; when unset, recording costs nothing.
type Recorder interface {
	Record(req *http.Request, reqBody []byte, resp *http.Response, respBody []byte, duration time.Duration)
}

// defaultTimeout bounds every request. No retries anywhere: a failed
// call is surfaced and the moderator decides whether to repeat it.
const defaultTimeout = 30 * time.Second

// Client is the typed client for the Science Pioneers backend. All
// methods are plain request/response; mutations return no body worth
// keeping because callers always re-fetch afterwards.
type Client struct {
	baseURL    string
	session    Session
	httpClient *http.Client
	recorder   Recorder
}

// NewClient creates a client for the backend at baseURL.
func NewClient(baseURL string, session Session) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		session:    session,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// SetRecorder attaches an exchange recorder (used by the inspector).
func (c *Client) SetRecorder(r Recorder) {
	c.recorder = r
}

// SetHTTPClient overrides the underlying HTTP client.
func (c *Client) SetHTTPClient(hc *http.Client) {
	c.httpClient = hc
}

// BaseURL returns the configured backend address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// do issues one JSON request. body and out may be nil. Non-2xx maps to
// the error taxonomy: 401 invalidates the session, 403 and 404 get
// sentinels, everything else becomes *Error with the server detail.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody []byte
	if body != nil {
		var err error
		reqBody, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(reqBody))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if c.recorder != nil {
		c.recorder.Record(req, reqBody, resp, respBody, time.Since(start))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.statusError(resp.StatusCode, respBody)
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

func (c *Client) statusError(status int, body []byte) error {
	detail := parseDetail(body)
	switch status {
	case http.StatusUnauthorized:
		c.session.Invalidate()
		if detail != "" {
			return fmt.Errorf("%w (%s)", ErrSessionExpired, detail)
		}
		return ErrSessionExpired
	case http.StatusForbidden:
		if detail != "" {
			return fmt.Errorf("%w: %s", ErrForbidden, detail)
		}
		return ErrForbidden
	case http.StatusNotFound:
		if detail != "" {
			return fmt.Errorf("%w: %s", ErrNotFound, detail)
		}
		return ErrNotFound
	}
	return &Error{Status: status, Detail: detail}
}

// parseDetail pulls the "detail" field out of an error payload. The
// backend wraps every error that way; anything else is used verbatim.
func parseDetail(body []byte) string {
	var envelope struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Detail != "" {
		return envelope.Detail
	}
	s := strings.TrimSpace(string(body))
	if len(s) > 200 {
		s = s[:200]
	}
	return s
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}
