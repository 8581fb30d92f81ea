package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dereksuun/ocr-frontend/internal/client/session"
)

// Backend endpoint paths, relative to the base URL.
const (
	pathLogin                = "/api/v1/auth/token"
	pathRefresh              = "/api/v1/auth/token/refresh"
	pathLogout               = "/api/v1/auth/logout"
	pathPasswordReset        = "/api/v1/auth/password-reset"
	pathPasswordResetConfirm = "/api/v1/auth/password-reset/confirm"
	pathUsers                = "/api/v1/users"
	pathWhoami               = "/api/v1/users/me"
	pathDocuments            = "/api/v1/documents"
	pathPresets              = "/api/v1/presets"
	pathSectors              = "/api/v1/sectors"
	pathExtractionSettings   = "/api/v1/settings/extraction"
	pathKeywords             = "/api/v1/keywords"
	pathBillingOverview      = "/api/v1/billing/overview"
)

const defaultTimeout = 30 * time.Second

// Compile-time check that Client implements session.Refresher
var _ session.Refresher = (*Client)(nil)

// Client is the HTTP client for the OCR backend. A single instance is shared
// by the whole program; it attaches the session's access token to outgoing
// requests and recovers once from a 401 through the session manager.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *session.Manager
	csrfToken  string
	log        *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithCSRFToken sets a token sent as X-CSRF-Token on every request.
func WithCSRFToken(token string) Option {
	return func(c *Client) { c.csrfToken = token }
}

// WithLogger sets the client logger.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// NewClient creates an API client for the given base URL.
func NewClient(baseURL string, sess *session.Manager, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		session: sess,
		log:     slog.Default(),
		httpClient: &http.Client{
			Timeout: defaultTimeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Carry the Authorization header across redirects.
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// authEndpoint reports whether path is the login or refresh endpoint.
// Those requests never carry a bearer token and never enter the
// refresh-retry path on 401.
func authEndpoint(path string) bool {
	return path == pathLogin || path == pathRefresh
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, contentType string, body []byte, token string) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.csrfToken != "" {
		req.Header.Set("X-CSRF-Token", c.csrfToken)
	}
	if token != "" && req.Header.Get("Authorization") == "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req, nil
}

// roundTrip sends the request, attaching the current access token, and
// recovers at most once from a 401 by refreshing the session and replaying
// the request with the new token. The body must be fully buffered so the
// replay sends identical bytes.
//
// Non-401 responses pass through unchanged. A 403, or a 401 that cannot be
// recovered, additionally emits an auth-required event before returning.
func (c *Client) roundTrip(ctx context.Context, method, path string, query url.Values, contentType string, body []byte) (*http.Response, error) {
	isAuth := authEndpoint(path)
	token := ""
	if !isAuth {
		token = c.session.Store().AccessToken()
	}

	for attempt := 0; ; attempt++ {
		req, err := c.newRequest(ctx, method, path, query, contentType, body, token)
		if err != nil {
			return nil, err
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("request failed: %w", err)
		}

		if resp.StatusCode == http.StatusForbidden {
			c.session.Events().Emit(session.AuthRequiredEvent{Status: resp.StatusCode})
			return resp, nil
		}
		if resp.StatusCode != http.StatusUnauthorized {
			return resp, nil
		}

		// 401: no recovery for the auth endpoints themselves, and never
		// more than one retry per original request.
		if isAuth || attempt > 0 {
			c.session.Events().Emit(session.AuthRequiredEvent{Status: resp.StatusCode})
			return resp, nil
		}

		// Keep the original error body so the caller sees the original
		// failure if recovery does not pan out.
		original, readErr := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		_ = resp.Body.Close()
		if readErr != nil {
			original = nil
		}

		c.log.Debug("got 401, refreshing session", "method", method, "path", path)
		newToken, refreshErr := c.session.Refresh(ctx)
		if refreshErr != nil {
			// The manager already cleared the pair and emitted the
			// auth-required event, exactly once for all waiters.
			c.log.Debug("session refresh failed", "error", refreshErr)
			resp.Body = io.NopCloser(bytes.NewReader(original))
			return resp, nil
		}
		if newToken == "" {
			// Nothing persisted to refresh with.
			c.session.Fail(ctx, http.StatusUnauthorized)
			resp.Body = io.NopCloser(bytes.NewReader(original))
			return resp, nil
		}

		token = newToken
	}
}

// do performs a JSON request/response cycle. in (when non-nil) is marshaled
// as the request body; out (when non-nil) receives the decoded 2xx body.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	var body []byte
	contentType := ""
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = data
		contentType = "application/json"
	}

	resp, err := c.roundTrip(ctx, method, path, query, contentType, body)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.errorFromResponse(resp)
	}

	if out != nil {
		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("failed to read response body: %w", err)
		}
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// download performs a request whose 2xx body is handed back to the caller
// as a stream. The caller must close it.
func (c *Client) download(ctx context.Context, method, path string, query url.Values, in any) (io.ReadCloser, error) {
	var body []byte
	contentType := ""
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = data
		contentType = "application/json"
	}

	resp, err := c.roundTrip(ctx, method, path, query, contentType, body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer func() {
			_ = resp.Body.Close()
		}()
		return nil, c.errorFromResponse(resp)
	}

	return resp.Body, nil
}

// upload performs a multipart POST. The form callback writes the parts; the
// body is buffered so a 401 recovery can replay it.
func (c *Client) upload(ctx context.Context, path string, form func(*multipart.Writer) error, out any) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if err := form(writer); err != nil {
		return fmt.Errorf("failed to build multipart body: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	resp, err := c.roundTrip(ctx, http.MethodPost, path, nil, writer.FormDataContentType(), buf.Bytes())
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.errorFromResponse(resp)
	}

	if out != nil {
		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("failed to read response body: %w", err)
		}
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
