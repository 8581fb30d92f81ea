package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dereksuun/ocr-frontend/internal/client/api"
	"github.com/dereksuun/ocr-frontend/internal/client/poll"
)

const (
	watchInterval = 3 * time.Second

	// How many extracted-JSON downloads run at once.
	downloadConcurrency = 4
)

func (c *Cli) runDocs(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing subcommand. Usage: ocrctl docs <list|get|upload|reprocess|download|archive|watch>")
	}

	if _, err := c.restore(ctx); err != nil {
		return err
	}

	switch args[0] {
	case "list":
		return c.runDocsList(ctx, args[1:])
	case "get":
		return c.runDocsGet(ctx, args[1:])
	case "upload":
		return c.runDocsUpload(ctx, args[1:])
	case "reprocess":
		return c.runDocsReprocess(ctx, args[1:])
	case "download":
		return c.runDocsDownload(ctx, args[1:])
	case "archive":
		return c.runDocsArchive(ctx, args[1:])
	case "watch":
		return c.runDocsWatch(ctx, args[1:])
	default:
		return fmt.Errorf("unknown docs subcommand: %s", args[0])
	}
}

func (c *Cli) runDocsList(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("docs list", flag.ContinueOnError)
	status := fs.String("status", "", "Filter by status (pending, processing, done, failed)")
	search := fs.String("search", "", "Filter by filename or extracted content")
	sector := fs.String("sector", "", "Filter by sector id")
	after := fs.String("after", "", "Only documents uploaded after this date (YYYY-MM-DD)")
	before := fs.String("before", "", "Only documents uploaded before this date (YYYY-MM-DD)")
	ordering := fs.String("ordering", "", "Sort order, e.g. -uploaded_at")
	preset := fs.String("preset", "", "Apply a saved preset by name or id")
	page := fs.Int("page", 0, "Page number")
	pageSize := fs.Int("page-size", 0, "Page size")
	if err := fs.Parse(args); err != nil {
		return err
	}

	params := api.DocumentListParams{
		Status:   *status,
		Search:   *search,
		SectorID: *sector,
		Ordering: *ordering,
		Page:     *page,
		PageSize: *pageSize,
	}
	if *after != "" {
		t, err := time.Parse("2006-01-02", *after)
		if err != nil {
			return fmt.Errorf("invalid --after date: %w", err)
		}
		params.UploadedAfter = t
	}
	if *before != "" {
		t, err := time.Parse("2006-01-02", *before)
		if err != nil {
			return fmt.Errorf("invalid --before date: %w", err)
		}
		params.UploadedBefore = t
	}

	if *preset != "" {
		found, err := c.findPreset(ctx, *preset)
		if err != nil {
			return err
		}
		params.ApplyPreset(found.Filters)
	}

	list, err := c.client.ListDocuments(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	return c.render("documents", documentListTemplate, list)
}

func (c *Cli) runDocsGet(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: ocrctl docs get <id>")
	}

	doc, err := c.client.GetDocument(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to fetch document: %w", err)
	}

	return c.render("document", documentTemplate, doc)
}

func (c *Cli) runDocsUpload(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("docs upload", flag.ContinueOnError)
	sector := fs.String("sector", "", "Assign the document to this sector id")
	watch := fs.Bool("watch", false, "Wait for processing to finish")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: ocrctl docs upload [--sector ID] [--watch] <file>")
	}

	path := fs.Arg(0)
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	c.io.Printf("Uploading %s...\n", filepath.Base(path))

	doc, err := c.client.UploadDocument(ctx, filepath.Base(path), file, *sector)
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}

	c.io.Printf("✓ Uploaded. Document ID: %s (status: %s)\n", doc.ID, doc.Status)

	if *watch {
		return c.watchDocument(ctx, doc.ID)
	}
	return nil
}

func (c *Cli) runDocsReprocess(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: ocrctl docs reprocess <id> [id...]")
	}

	if len(args) == 1 {
		if err := c.client.ReprocessDocument(ctx, args[0]); err != nil {
			return fmt.Errorf("failed to queue reprocessing: %w", err)
		}
		c.io.Printf("✓ Document %s queued for reprocessing.\n", args[0])
		return nil
	}

	resp, err := c.client.BulkReprocess(ctx, args)
	if err != nil {
		return fmt.Errorf("failed to queue reprocessing: %w", err)
	}
	c.io.Printf("✓ %d document(s) queued for reprocessing.\n", resp.Queued)
	for _, id := range resp.Skipped {
		c.io.Printf("  skipped: %s\n", id)
	}
	return nil
}

func (c *Cli) runDocsDownload(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("docs download", flag.ContinueOnError)
	outDir := fs.String("out", ".", "Directory to write the JSON files into")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("usage: ocrctl docs download [--out DIR] <id> [id...]")
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(downloadConcurrency)

	for _, id := range fs.Args() {
		g.Go(func() error {
			return c.downloadJSON(gctx, id, *outDir)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	c.io.Printf("✓ Downloaded %d file(s) to %s\n", fs.NArg(), *outDir)
	return nil
}

func (c *Cli) downloadJSON(ctx context.Context, id, outDir string) error {
	body, err := c.client.DownloadDocumentJSON(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to download %s: %w", id, err)
	}
	defer body.Close()

	path := filepath.Join(outDir, id+".json")
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, body); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func (c *Cli) runDocsArchive(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("docs archive", flag.ContinueOnError)
	outPath := fs.String("out", "documents.zip", "Archive file to write")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("usage: ocrctl docs archive [--out FILE] <id> [id...]")
	}

	body, err := c.client.BulkDownload(ctx, fs.Args())
	if err != nil {
		return fmt.Errorf("failed to download archive: %w", err)
	}
	defer body.Close()

	out, err := os.Create(*outPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", *outPath, err)
	}
	defer out.Close()

	n, err := io.Copy(out, body)
	if err != nil {
		return fmt.Errorf("failed to write archive: %w", err)
	}

	c.io.Printf("✓ Wrote %s (%d bytes)\n", *outPath, n)
	return nil
}

func (c *Cli) runDocsWatch(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: ocrctl docs watch <id>")
	}
	return c.watchDocument(ctx, args[0])
}

// watchDocument polls the document until it reaches a terminal status.
func (c *Cli) watchDocument(ctx context.Context, id string) error {
	c.io.Printf("Watching document %s (interval %s, Ctrl-C to stop)...\n", id, watchInterval)

	lastStatus := ""
	poller := poll.New(watchInterval)
	err := poller.Run(ctx, func(ctx context.Context) (bool, error) {
		doc, err := c.client.GetDocument(ctx, id)
		if err != nil {
			return false, fmt.Errorf("failed to fetch document: %w", err)
		}
		if doc.Status != lastStatus {
			lastStatus = doc.Status
			c.io.Printf("  status: %s\n", doc.Status)
		}
		if !doc.Terminal() {
			return false, nil
		}
		if doc.Error != "" {
			c.io.Printf("Processing failed: %s\n", doc.Error)
		} else {
			c.io.Println("✓ Processing finished.")
		}
		return true, nil
	})
	if err != nil {
		return err
	}
	return nil
}
