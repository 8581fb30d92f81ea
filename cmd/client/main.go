package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/dereksuun/ocr-frontend/internal/client/api"
	"github.com/dereksuun/ocr-frontend/internal/client/cli"
	"github.com/dereksuun/ocr-frontend/internal/client/config"
	"github.com/dereksuun/ocr-frontend/internal/client/identity"
	"github.com/dereksuun/ocr-frontend/internal/client/iocli"
	"github.com/dereksuun/ocr-frontend/internal/client/session"
	"github.com/dereksuun/ocr-frontend/internal/client/storage"
	"github.com/dereksuun/ocr-frontend/internal/client/storage/boltdb"
	"github.com/dereksuun/ocr-frontend/internal/crypto"
	"github.com/dereksuun/ocr-frontend/internal/logging"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	serverURL := flag.String("server", "", "Backend URL (overrides OCR_API_URL)")
	dataDir := flag.String("data-dir", "", "Local data directory (overrides OCR_DATA_DIR)")
	debug := flag.Bool("debug", false, "Enable debug logging")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		fmt.Print(cli.Usage())
		os.Exit(1)
	}
	command := args[0]

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *serverURL != "" {
		cfg.APIURL = *serverURL
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}

	ctx := context.Background()

	if err := os.MkdirAll(cfg.DataDir, 0o700); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create data directory: %v\n", err)
		os.Exit(1)
	}

	boltStorage, err := boltdb.New(ctx, cfg.DatabasePath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := boltStorage.Close(); err != nil {
			slog.Error("failed to close database", "error", err)
		}
	}()

	// Debug can come from the environment, the flag, or the stored setting.
	debugEnabled := cfg.Debug || *debug
	if !debugEnabled {
		if stored, err := boltStorage.GetFlag(ctx, storage.FlagDebugLogging); err == nil {
			debugEnabled = stored
		}
	}
	log := logging.New(os.Stderr, debugEnabled)

	seed, err := crypto.LoadOrCreateSeed(cfg.KeySeedPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load storage key: %v\n", err)
		os.Exit(1)
	}
	key := crypto.DeriveStorageKey(seed)

	store := session.NewStore(session.NewVault(boltStorage, key), log)
	events := session.NewBroadcaster()
	sess := session.NewManager(store, events, log)

	opts := []api.Option{api.WithTimeout(cfg.Timeout()), api.WithLogger(log)}
	if cfg.CSRFToken != "" {
		opts = append(opts, api.WithCSRFToken(cfg.CSRFToken))
	}
	apiClient := api.NewClient(cfg.APIURL, sess, opts...)
	sess.SetRefresher(apiClient)

	ident := identity.NewService(apiClient, sess, log)

	events.Subscribe(func(ev session.AuthRequiredEvent) {
		ident.Clear()
		fmt.Fprintf(os.Stderr, "Session expired (HTTP %d). Please run 'ocrctl login' again.\n", ev.Status)
	})

	app := cli.New(iocli.NewStdio(), apiClient, sess, ident, boltStorage, log)
	if err := app.Run(ctx, command, args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printVersion() {
	fmt.Printf("OCR Frontend Client\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
