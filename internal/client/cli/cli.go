package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dereksuun/ocr-frontend/internal/client/api"
	"github.com/dereksuun/ocr-frontend/internal/client/identity"
	"github.com/dereksuun/ocr-frontend/internal/client/iocli"
	"github.com/dereksuun/ocr-frontend/internal/client/session"
	"github.com/dereksuun/ocr-frontend/internal/client/storage"
)

// Cli dispatches terminal commands to the API client and local services.
type Cli struct {
	io       iocli.IO
	client   *api.Client
	session  *session.Manager
	identity *identity.Service
	settings storage.SettingsStorage
	log      *slog.Logger
}

func New(io iocli.IO, client *api.Client, sess *session.Manager, ident *identity.Service, settings storage.SettingsStorage, log *slog.Logger) *Cli {
	return &Cli{
		io:       io,
		client:   client,
		session:  sess,
		identity: ident,
		settings: settings,
		log:      log,
	}
}

// Run executes one command. The returned error is meant for the terminal.
func (c *Cli) Run(ctx context.Context, command string, args []string) error {
	switch command {
	case "login":
		return c.runLogin(ctx)
	case "logout":
		return c.runLogout(ctx)
	case "status":
		return c.runStatus(ctx)
	case "whoami":
		return c.runWhoami(ctx)
	case "docs":
		return c.runDocs(ctx, args)
	case "preset":
		return c.runPreset(ctx, args)
	case "sector":
		return c.runSector(ctx, args)
	case "user":
		return c.runUser(ctx, args)
	case "settings":
		return c.runSettings(ctx, args)
	case "keyword":
		return c.runKeyword(ctx, args)
	case "billing":
		return c.runBilling(ctx)
	case "password-reset":
		return c.runPasswordReset(ctx, args)
	case "help":
		c.PrintUsage()
		return nil
	default:
		c.PrintUsage()
		return fmt.Errorf("unknown command: %s", command)
	}
}

func (c *Cli) PrintUsage() {
	c.io.Printf("%s", usageTemplate)
}

// Usage returns the top-level usage text for callers outside the package.
func Usage() string {
	return usageTemplate
}

// restore resumes the persisted session before an authenticated command.
func (c *Cli) restore(ctx context.Context) (*identity.Profile, error) {
	profile, err := c.identity.Restore(ctx)
	if err != nil {
		if errors.Is(err, identity.ErrNoSession) {
			return nil, fmt.Errorf("not authenticated. Please run 'ocrctl login' first")
		}
		return nil, fmt.Errorf("failed to restore session: %w", err)
	}
	return profile, nil
}

// requireAdmin restores the session and rejects non-admin users early, so
// the terminal message is clearer than a bare 403 from the backend.
func (c *Cli) requireAdmin(ctx context.Context) error {
	profile, err := c.restore(ctx)
	if err != nil {
		return err
	}
	if profile.Degraded {
		return fmt.Errorf("could not verify administrator rights, please try again")
	}
	if !profile.IsAdmin {
		return fmt.Errorf("this command requires an administrator account")
	}
	return nil
}

// confirm asks a yes/no question and treats anything but "y"/"yes" as no.
func (c *Cli) confirm(prompt string) (bool, error) {
	answer, err := c.io.ReadInput(prompt + " [y/N]: ")
	if err != nil {
		return false, fmt.Errorf("failed to read confirmation: %w", err)
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes", nil
}
