package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apitypes "github.com/dereksuun/ocr-frontend/pkg/api"
)

func TestDocumentListParams_Query(t *testing.T) {
	params := DocumentListParams{
		Status:        apitypes.DocumentStatusFailed,
		Search:        "invoice",
		SectorID:      "sec-1",
		UploadedAfter: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Ordering:      "-uploaded_at",
		Page:          2,
		PageSize:      50,
	}

	q := params.query()
	assert.Equal(t, "failed", q.Get("status"))
	assert.Equal(t, "invoice", q.Get("search"))
	assert.Equal(t, "sec-1", q.Get("sector_id"))
	assert.Equal(t, "2026-01-01T00:00:00Z", q.Get("uploaded_after"))
	assert.Equal(t, "-uploaded_at", q.Get("ordering"))
	assert.Equal(t, "2", q.Get("page"))
	assert.Equal(t, "50", q.Get("page_size"))
	assert.False(t, q.Has("uploaded_before"))
}

func TestDocumentListParams_ApplyPreset(t *testing.T) {
	params := DocumentListParams{Status: apitypes.DocumentStatusDone}
	params.ApplyPreset(map[string]string{
		"status":   "failed",
		"search":   "receipt",
		"ordering": "filename",
	})

	// Explicit params win over preset values.
	assert.Equal(t, apitypes.DocumentStatusDone, params.Status)
	assert.Equal(t, "receipt", params.Search)
	assert.Equal(t, "filename", params.Ordering)
}

func TestClient_ListDocuments_QueryString(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/documents", r.URL.Path)
		assert.Equal(t, "pending", r.URL.Query().Get("status"))
		assert.Equal(t, "3", r.URL.Query().Get("page"))
		writeJSON(w, http.StatusOK, apitypes.DocumentList{})
	}))
	defer server.Close()

	client, sess := newTestClient(t, server.URL)
	sess.Establish(context.Background(), "alice", "access-1", "refresh-1")

	_, err := client.ListDocuments(context.Background(), DocumentListParams{
		Status: apitypes.DocumentStatusPending,
		Page:   3,
	})
	require.NoError(t, err)
}

func TestClient_UploadDocument(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/documents", r.URL.Path)

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "sec-7", r.FormValue("sector_id"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "scan.pdf", header.Filename)

		content, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "%PDF-1.4 fake", string(content))

		writeJSON(w, http.StatusCreated, apitypes.Document{
			ID: "doc-9", Filename: "scan.pdf", Status: apitypes.DocumentStatusPending,
		})
	}))
	defer server.Close()

	client, sess := newTestClient(t, server.URL)
	sess.Establish(context.Background(), "alice", "access-1", "refresh-1")

	doc, err := client.UploadDocument(context.Background(), "scan.pdf", strings.NewReader("%PDF-1.4 fake"), "sec-7")
	require.NoError(t, err)
	assert.Equal(t, "doc-9", doc.ID)
	assert.Equal(t, apitypes.DocumentStatusPending, doc.Status)
}

func TestClient_DownloadDocumentJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/documents/doc-1/download", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"fields":{"total":"42.00"}}`))
	}))
	defer server.Close()

	client, sess := newTestClient(t, server.URL)
	sess.Establish(context.Background(), "alice", "access-1", "refresh-1")

	rc, err := client.DownloadDocumentJSON(context.Background(), "doc-1")
	require.NoError(t, err)
	defer rc.Close()

	content, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.JSONEq(t, `{"fields":{"total":"42.00"}}`, string(content))
}

func TestClient_BulkReprocess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/documents/reprocess", r.URL.Path)
		writeJSON(w, http.StatusOK, apitypes.BulkReprocessResponse{Queued: 2})
	}))
	defer server.Close()

	client, sess := newTestClient(t, server.URL)
	sess.Establish(context.Background(), "alice", "access-1", "refresh-1")

	resp, err := client.BulkReprocess(context.Background(), []string{"doc-1", "doc-2"})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Queued)
}

func TestDocument_Terminal(t *testing.T) {
	assert.False(t, (&apitypes.Document{Status: apitypes.DocumentStatusPending}).Terminal())
	assert.False(t, (&apitypes.Document{Status: apitypes.DocumentStatusProcessing}).Terminal())
	assert.True(t, (&apitypes.Document{Status: apitypes.DocumentStatusDone}).Terminal())
	assert.True(t, (&apitypes.Document{Status: apitypes.DocumentStatusFailed}).Terminal())
}
