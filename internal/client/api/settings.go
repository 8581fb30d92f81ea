package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	apitypes "github.com/dereksuun/ocr-frontend/pkg/api"
)

// GetExtractionSettings fetches the extraction configuration.
func (c *Client) GetExtractionSettings(ctx context.Context) (*apitypes.ExtractionSettings, error) {
	var resp apitypes.ExtractionSettings
	if err := c.do(ctx, http.MethodGet, pathExtractionSettings, nil, nil, &resp); err != nil {
		return nil, fmt.Errorf("get extraction settings request failed: %w", err)
	}
	return &resp, nil
}

// UpdateExtractionSettings replaces the extraction configuration.
func (c *Client) UpdateExtractionSettings(ctx context.Context, settings apitypes.ExtractionSettings) (*apitypes.ExtractionSettings, error) {
	var resp apitypes.ExtractionSettings
	if err := c.do(ctx, http.MethodPut, pathExtractionSettings, nil, settings, &resp); err != nil {
		return nil, fmt.Errorf("update extraction settings request failed: %w", err)
	}
	return &resp, nil
}

// ListKeywords fetches all extraction keywords.
func (c *Client) ListKeywords(ctx context.Context) ([]apitypes.Keyword, error) {
	var resp []apitypes.Keyword
	if err := c.do(ctx, http.MethodGet, pathKeywords, nil, nil, &resp); err != nil {
		return nil, fmt.Errorf("list keywords request failed: %w", err)
	}
	return resp, nil
}

// AddKeyword creates an extraction keyword.
func (c *Client) AddKeyword(ctx context.Context, req apitypes.KeywordRequest) (*apitypes.Keyword, error) {
	var resp apitypes.Keyword
	if err := c.do(ctx, http.MethodPost, pathKeywords, nil, req, &resp); err != nil {
		return nil, fmt.Errorf("add keyword request failed: %w", err)
	}
	return &resp, nil
}

// DeleteKeyword removes an extraction keyword.
func (c *Client) DeleteKeyword(ctx context.Context, id string) error {
	path := fmt.Sprintf("%s/%s", pathKeywords, url.PathEscape(id))
	if err := c.do(ctx, http.MethodDelete, path, nil, nil, nil); err != nil {
		return fmt.Errorf("delete keyword request failed: %w", err)
	}
	return nil
}
