package api

import (
	"context"
	"fmt"
	"net/http"

	apitypes "github.com/dereksuun/ocr-frontend/pkg/api"
)

// GetBillingOverview fetches the usage summary for the current period.
func (c *Client) GetBillingOverview(ctx context.Context) (*apitypes.BillingOverview, error) {
	var resp apitypes.BillingOverview
	if err := c.do(ctx, http.MethodGet, pathBillingOverview, nil, nil, &resp); err != nil {
		return nil, fmt.Errorf("billing overview request failed: %w", err)
	}
	return &resp, nil
}
