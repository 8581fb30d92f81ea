package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	apitypes "github.com/dereksuun/ocr-frontend/pkg/api"
)

// Login posts credentials to the token endpoint. No existing bearer token is
// attached. On success the session is established with the returned pair;
// failures propagate untouched for the caller to present.
func (c *Client) Login(ctx context.Context, username, password string) error {
	req := apitypes.LoginRequest{
		Username: username,
		Password: password,
	}

	var resp apitypes.TokenResponse
	if err := c.do(ctx, http.MethodPost, pathLogin, nil, req, &resp); err != nil {
		return fmt.Errorf("login request failed: %w", err)
	}

	c.session.Establish(ctx, username, resp.AccessToken, resp.RefreshToken)
	return nil
}

// ExchangeRefreshToken implements session.Refresher. It posts the refresh
// token directly, outside the interception pipeline: no bearer token, no
// retry, no event emission. The session manager owns the consequences of a
// failed exchange.
func (c *Client) ExchangeRefreshToken(ctx context.Context, refreshToken string) (string, string, error) {
	body, err := json.Marshal(apitypes.RefreshRequest{RefreshToken: refreshToken})
	if err != nil {
		return "", "", fmt.Errorf("failed to marshal refresh request: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, pathRefresh, nil, "application/json", body, "")
	if err != nil {
		return "", "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("refresh request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", "", c.errorFromResponse(resp)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", "", fmt.Errorf("failed to read refresh response: %w", err)
	}

	var tokens apitypes.TokenResponse
	if err := json.Unmarshal(respBody, &tokens); err != nil {
		return "", "", fmt.Errorf("failed to decode refresh response: %w", err)
	}

	return tokens.AccessToken, tokens.RefreshToken, nil
}

// Logout notifies the backend that the session is over. Local tokens are
// cleared by the caller regardless of the outcome.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, pathLogout, nil, nil, nil)
}

// RequestPasswordReset asks the backend to send a reset link.
func (c *Client) RequestPasswordReset(ctx context.Context, email string) error {
	req := apitypes.PasswordResetRequest{Email: email}
	if err := c.do(ctx, http.MethodPost, pathPasswordReset, nil, req, nil); err != nil {
		return fmt.Errorf("password reset request failed: %w", err)
	}
	return nil
}

// ConfirmPasswordReset completes a password reset with the emailed token.
func (c *Client) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	req := apitypes.PasswordResetConfirm{
		Token:       token,
		NewPassword: newPassword,
	}
	if err := c.do(ctx, http.MethodPost, pathPasswordResetConfirm, nil, req, nil); err != nil {
		return fmt.Errorf("password reset confirmation failed: %w", err)
	}
	return nil
}
