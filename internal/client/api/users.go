package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	apitypes "github.com/dereksuun/ocr-frontend/pkg/api"
)

// Whoami fetches the current-user document as raw fields. The backend's
// field naming varies across deployments, so normalization is left to the
// identity layer.
func (c *Client) Whoami(ctx context.Context) (map[string]json.RawMessage, error) {
	var resp map[string]json.RawMessage
	if err := c.do(ctx, http.MethodGet, pathWhoami, nil, nil, &resp); err != nil {
		return nil, fmt.Errorf("whoami request failed: %w", err)
	}
	return resp, nil
}

// ListUsers fetches all accounts (admin only).
func (c *Client) ListUsers(ctx context.Context) ([]apitypes.User, error) {
	var resp []apitypes.User
	if err := c.do(ctx, http.MethodGet, pathUsers, nil, nil, &resp); err != nil {
		return nil, fmt.Errorf("list users request failed: %w", err)
	}
	return resp, nil
}

// CreateUser registers a new account (admin only).
func (c *Client) CreateUser(ctx context.Context, req apitypes.CreateUserRequest) (*apitypes.User, error) {
	var resp apitypes.User
	if err := c.do(ctx, http.MethodPost, pathUsers, nil, req, &resp); err != nil {
		return nil, fmt.Errorf("create user request failed: %w", err)
	}
	return &resp, nil
}

// UpdateUser changes account attributes (admin only).
func (c *Client) UpdateUser(ctx context.Context, id string, req apitypes.UpdateUserRequest) (*apitypes.User, error) {
	var resp apitypes.User
	path := fmt.Sprintf("%s/%s", pathUsers, url.PathEscape(id))
	if err := c.do(ctx, http.MethodPatch, path, nil, req, &resp); err != nil {
		return nil, fmt.Errorf("update user request failed: %w", err)
	}
	return &resp, nil
}

// DeleteUser removes an account (admin only).
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	path := fmt.Sprintf("%s/%s", pathUsers, url.PathEscape(id))
	if err := c.do(ctx, http.MethodDelete, path, nil, nil, nil); err != nil {
		return fmt.Errorf("delete user request failed: %w", err)
	}
	return nil
}

// ResetUserPassword sets a new password for an account (admin only).
func (c *Client) ResetUserPassword(ctx context.Context, id, newPassword string) error {
	req := apitypes.ResetUserPasswordRequest{NewPassword: newPassword}
	path := fmt.Sprintf("%s/%s/password", pathUsers, url.PathEscape(id))
	if err := c.do(ctx, http.MethodPost, path, nil, req, nil); err != nil {
		return fmt.Errorf("reset user password request failed: %w", err)
	}
	return nil
}
