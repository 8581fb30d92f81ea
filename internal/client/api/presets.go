package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	apitypes "github.com/dereksuun/ocr-frontend/pkg/api"
)

// ListPresets fetches all saved filter presets.
func (c *Client) ListPresets(ctx context.Context) ([]apitypes.Preset, error) {
	var resp []apitypes.Preset
	if err := c.do(ctx, http.MethodGet, pathPresets, nil, nil, &resp); err != nil {
		return nil, fmt.Errorf("list presets request failed: %w", err)
	}
	return resp, nil
}

// GetPreset fetches one preset by id.
func (c *Client) GetPreset(ctx context.Context, id string) (*apitypes.Preset, error) {
	var resp apitypes.Preset
	path := fmt.Sprintf("%s/%s", pathPresets, url.PathEscape(id))
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &resp); err != nil {
		return nil, fmt.Errorf("get preset request failed: %w", err)
	}
	return &resp, nil
}

// CreatePreset saves a new filter preset.
func (c *Client) CreatePreset(ctx context.Context, req apitypes.PresetRequest) (*apitypes.Preset, error) {
	var resp apitypes.Preset
	if err := c.do(ctx, http.MethodPost, pathPresets, nil, req, &resp); err != nil {
		return nil, fmt.Errorf("create preset request failed: %w", err)
	}
	return &resp, nil
}

// UpdatePreset replaces an existing preset.
func (c *Client) UpdatePreset(ctx context.Context, id string, req apitypes.PresetRequest) (*apitypes.Preset, error) {
	var resp apitypes.Preset
	path := fmt.Sprintf("%s/%s", pathPresets, url.PathEscape(id))
	if err := c.do(ctx, http.MethodPut, path, nil, req, &resp); err != nil {
		return nil, fmt.Errorf("update preset request failed: %w", err)
	}
	return &resp, nil
}

// DeletePreset removes a preset.
func (c *Client) DeletePreset(ctx context.Context, id string) error {
	path := fmt.Sprintf("%s/%s", pathPresets, url.PathEscape(id))
	if err := c.do(ctx, http.MethodDelete, path, nil, nil, nil); err != nil {
		return fmt.Errorf("delete preset request failed: %w", err)
	}
	return nil
}
