package api

import "time"

// Document processing statuses reported by the backend.
const (
	DocumentStatusPending    = "pending"
	DocumentStatusProcessing = "processing"
	DocumentStatusDone       = "done"
	DocumentStatusFailed     = "failed"
)

// Document describes an uploaded document and its processing state.
type Document struct {
	ID          string            `json:"id"`
	Filename    string            `json:"filename"`
	Status      string            `json:"status"`
	SectorID    string            `json:"sector_id,omitempty"`
	PageCount   int               `json:"page_count,omitempty"`
	Extracted   map[string]string `json:"extracted,omitempty"`
	Error       string            `json:"error,omitempty"`
	UploadedAt  time.Time         `json:"uploaded_at"`
	ProcessedAt *time.Time        `json:"processed_at,omitempty"`
}

// Terminal reports whether the document has finished processing.
func (d *Document) Terminal() bool {
	return d.Status == DocumentStatusDone || d.Status == DocumentStatusFailed
}

// DocumentList is a paginated page of documents.
type DocumentList struct {
	Items    []Document `json:"items"`
	Total    int        `json:"total"`
	Page     int        `json:"page"`
	PageSize int        `json:"page_size"`
}

// BulkReprocessRequest queues several documents for reprocessing.
type BulkReprocessRequest struct {
	IDs []string `json:"ids"`
}

// BulkReprocessResponse reports how many documents were queued.
type BulkReprocessResponse struct {
	Queued  int      `json:"queued"`
	Skipped []string `json:"skipped,omitempty"`
}

// BulkDownloadRequest selects documents for an archive download.
type BulkDownloadRequest struct {
	IDs []string `json:"ids"`
}
