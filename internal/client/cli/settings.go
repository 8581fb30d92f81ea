package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dereksuun/ocr-frontend/internal/client/storage"
	apitypes "github.com/dereksuun/ocr-frontend/pkg/api"
)

func (c *Cli) runSettings(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing subcommand. Usage: ocrctl settings <show|enable|disable|pattern|debug>")
	}

	// The debug flag is local; everything else talks to the backend.
	if args[0] == "debug" {
		return c.runSettingsDebug(ctx, args[1:])
	}

	if _, err := c.restore(ctx); err != nil {
		return err
	}

	switch args[0] {
	case "show":
		return c.runSettingsShow(ctx)
	case "enable":
		return c.runSettingsToggle(ctx, args[1:], true)
	case "disable":
		return c.runSettingsToggle(ctx, args[1:], false)
	case "pattern":
		return c.runSettingsPattern(ctx, args[1:])
	default:
		return fmt.Errorf("unknown settings subcommand: %s", args[0])
	}
}

func (c *Cli) runSettingsShow(ctx context.Context) error {
	settings, err := c.client.GetExtractionSettings(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch extraction settings: %w", err)
	}
	return c.render("settings", extractionSettingsTemplate, settings)
}

func (c *Cli) runSettingsToggle(ctx context.Context, args []string, enabled bool) error {
	if len(args) != 1 {
		verb := "enable"
		if !enabled {
			verb = "disable"
		}
		return fmt.Errorf("usage: ocrctl settings %s <field>", verb)
	}
	return c.updateField(ctx, args[0], func(f *apitypes.ExtractionField) {
		f.Enabled = enabled
	})
}

func (c *Cli) runSettingsPattern(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: ocrctl settings pattern <field> <pattern>")
	}
	return c.updateField(ctx, args[0], func(f *apitypes.ExtractionField) {
		f.Pattern = args[1]
	})
}

// updateField applies a read-modify-write on one extraction field.
func (c *Cli) updateField(ctx context.Context, name string, apply func(*apitypes.ExtractionField)) error {
	settings, err := c.client.GetExtractionSettings(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch extraction settings: %w", err)
	}

	found := false
	for i := range settings.Fields {
		if strings.EqualFold(settings.Fields[i].Name, name) {
			apply(&settings.Fields[i])
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("extraction field not found: %s", name)
	}

	if _, err := c.client.UpdateExtractionSettings(ctx, *settings); err != nil {
		return fmt.Errorf("failed to update extraction settings: %w", err)
	}
	c.io.Printf("✓ Field %q updated.\n", name)
	return nil
}

func (c *Cli) runSettingsDebug(ctx context.Context, args []string) error {
	if c.settings == nil {
		return fmt.Errorf("local settings storage is not available")
	}

	if len(args) == 0 {
		enabled, err := c.settings.GetFlag(ctx, storage.FlagDebugLogging)
		if err != nil {
			return fmt.Errorf("failed to read debug flag: %w", err)
		}
		if enabled {
			c.io.Println("Debug logging: enabled")
		} else {
			c.io.Println("Debug logging: disabled")
		}
		return nil
	}

	var value bool
	switch args[0] {
	case "on":
		value = true
	case "off":
		value = false
	default:
		return fmt.Errorf("usage: ocrctl settings debug [on|off]")
	}

	if err := c.settings.SetFlag(ctx, storage.FlagDebugLogging, value); err != nil {
		return fmt.Errorf("failed to store debug flag: %w", err)
	}
	if value {
		c.io.Println("✓ Debug logging enabled. Takes effect on the next run.")
	} else {
		c.io.Println("✓ Debug logging disabled.")
	}
	return nil
}
