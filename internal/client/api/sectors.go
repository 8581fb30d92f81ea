package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	apitypes "github.com/dereksuun/ocr-frontend/pkg/api"
)

// ListSectors fetches all sectors.
func (c *Client) ListSectors(ctx context.Context) ([]apitypes.Sector, error) {
	var resp []apitypes.Sector
	if err := c.do(ctx, http.MethodGet, pathSectors, nil, nil, &resp); err != nil {
		return nil, fmt.Errorf("list sectors request failed: %w", err)
	}
	return resp, nil
}

// CreateSector creates a sector.
func (c *Client) CreateSector(ctx context.Context, req apitypes.SectorRequest) (*apitypes.Sector, error) {
	var resp apitypes.Sector
	if err := c.do(ctx, http.MethodPost, pathSectors, nil, req, &resp); err != nil {
		return nil, fmt.Errorf("create sector request failed: %w", err)
	}
	return &resp, nil
}

// UpdateSector replaces a sector's attributes.
func (c *Client) UpdateSector(ctx context.Context, id string, req apitypes.SectorRequest) (*apitypes.Sector, error) {
	var resp apitypes.Sector
	path := fmt.Sprintf("%s/%s", pathSectors, url.PathEscape(id))
	if err := c.do(ctx, http.MethodPut, path, nil, req, &resp); err != nil {
		return nil, fmt.Errorf("update sector request failed: %w", err)
	}
	return &resp, nil
}

// DeleteSector removes a sector.
func (c *Client) DeleteSector(ctx context.Context, id string) error {
	path := fmt.Sprintf("%s/%s", pathSectors, url.PathEscape(id))
	if err := c.do(ctx, http.MethodDelete, path, nil, nil, nil); err != nil {
		return fmt.Errorf("delete sector request failed: %w", err)
	}
	return nil
}
