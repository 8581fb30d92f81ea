package api

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"time"

	apitypes "github.com/dereksuun/ocr-frontend/pkg/api"
)

// DocumentListParams are the filter and pagination query parameters for the
// document collection endpoint. Zero values are omitted from the query.
type DocumentListParams struct {
	Status         string
	Search         string
	SectorID       string
	UploadedAfter  time.Time
	UploadedBefore time.Time
	Ordering       string
	Page           int
	PageSize       int
}

// ApplyPreset overlays saved preset filters onto the params. Explicitly set
// params win over preset values.
func (p *DocumentListParams) ApplyPreset(filters map[string]string) {
	if p.Status == "" {
		p.Status = filters["status"]
	}
	if p.Search == "" {
		p.Search = filters["search"]
	}
	if p.SectorID == "" {
		p.SectorID = filters["sector_id"]
	}
	if p.Ordering == "" {
		p.Ordering = filters["ordering"]
	}
}

func (p DocumentListParams) query() url.Values {
	q := url.Values{}
	if p.Status != "" {
		q.Set("status", p.Status)
	}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	if p.SectorID != "" {
		q.Set("sector_id", p.SectorID)
	}
	if !p.UploadedAfter.IsZero() {
		q.Set("uploaded_after", p.UploadedAfter.Format(time.RFC3339))
	}
	if !p.UploadedBefore.IsZero() {
		q.Set("uploaded_before", p.UploadedBefore.Format(time.RFC3339))
	}
	if p.Ordering != "" {
		q.Set("ordering", p.Ordering)
	}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.PageSize > 0 {
		q.Set("page_size", strconv.Itoa(p.PageSize))
	}
	return q
}

// ListDocuments fetches a filtered, paginated page of documents.
func (c *Client) ListDocuments(ctx context.Context, params DocumentListParams) (*apitypes.DocumentList, error) {
	var resp apitypes.DocumentList
	if err := c.do(ctx, http.MethodGet, pathDocuments, params.query(), nil, &resp); err != nil {
		return nil, fmt.Errorf("list documents request failed: %w", err)
	}
	return &resp, nil
}

// GetDocument fetches a single document with its processing state.
func (c *Client) GetDocument(ctx context.Context, id string) (*apitypes.Document, error) {
	var resp apitypes.Document
	path := fmt.Sprintf("%s/%s", pathDocuments, url.PathEscape(id))
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &resp); err != nil {
		return nil, fmt.Errorf("get document request failed: %w", err)
	}
	return &resp, nil
}

// UploadDocument uploads a file for processing via multipart form data.
// sectorID is optional.
func (c *Client) UploadDocument(ctx context.Context, filename string, content io.Reader, sectorID string) (*apitypes.Document, error) {
	var resp apitypes.Document
	err := c.upload(ctx, pathDocuments, func(w *multipart.Writer) error {
		part, err := w.CreateFormFile("file", filename)
		if err != nil {
			return err
		}
		if _, err := io.Copy(part, content); err != nil {
			return err
		}
		if sectorID != "" {
			if err := w.WriteField("sector_id", sectorID); err != nil {
				return err
			}
		}
		return nil
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("upload document request failed: %w", err)
	}
	return &resp, nil
}

// ReprocessDocument queues a single document for reprocessing.
func (c *Client) ReprocessDocument(ctx context.Context, id string) error {
	path := fmt.Sprintf("%s/%s/reprocess", pathDocuments, url.PathEscape(id))
	if err := c.do(ctx, http.MethodPost, path, nil, nil, nil); err != nil {
		return fmt.Errorf("reprocess document request failed: %w", err)
	}
	return nil
}

// BulkReprocess queues several documents for reprocessing in one call.
func (c *Client) BulkReprocess(ctx context.Context, ids []string) (*apitypes.BulkReprocessResponse, error) {
	var resp apitypes.BulkReprocessResponse
	req := apitypes.BulkReprocessRequest{IDs: ids}
	path := pathDocuments + "/reprocess"
	if err := c.do(ctx, http.MethodPost, path, nil, req, &resp); err != nil {
		return nil, fmt.Errorf("bulk reprocess request failed: %w", err)
	}
	return &resp, nil
}

// DownloadDocumentJSON streams the extracted JSON for one document.
// The caller must close the returned reader.
func (c *Client) DownloadDocumentJSON(ctx context.Context, id string) (io.ReadCloser, error) {
	path := fmt.Sprintf("%s/%s/download", pathDocuments, url.PathEscape(id))
	body, err := c.download(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("download document request failed: %w", err)
	}
	return body, nil
}

// BulkDownload streams an archive containing the selected documents.
// The caller must close the returned reader.
func (c *Client) BulkDownload(ctx context.Context, ids []string) (io.ReadCloser, error) {
	req := apitypes.BulkDownloadRequest{IDs: ids}
	path := pathDocuments + "/download"
	body, err := c.download(ctx, http.MethodPost, path, nil, req)
	if err != nil {
		return nil, fmt.Errorf("bulk download request failed: %w", err)
	}
	return body, nil
}
